package main

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
	"github.com/stretchr/testify/require"

	"github.com/jonathan/jobuine/internal/config"
)

// getBinaryPath returns the path to the jobuine binary for testing
func getBinaryPath(t *testing.T) string {
	binaryName := "jobuine"
	if testing.Short() {
		t.Skip("Skipping CLI tests in short mode")
	}

	binaryPath := filepath.Join("..", "..", "bin", binaryName)
	if _, err := os.Stat(binaryPath); os.IsNotExist(err) {
		t.Skipf("Binary not found at %s, build it first with 'go build -o bin/jobuine ./cmd/jobuine'", binaryPath)
	}

	return binaryPath
}

// testEnv is a throwaway config.yaml with its own ledger, applies and data
// directories.
type testEnv struct {
	root       string
	configPath string
	storeFile  string
	appliesDir string
	dataDir    string
}

func newTestEnv(t *testing.T) *testEnv {
	t.Helper()
	for _, key := range []string{config.EnvStoreFile, config.EnvAppliesDir, config.EnvCurrentApplyDir, config.EnvDataDir} {
		t.Setenv(key, "")
	}

	root := t.TempDir()
	env := &testEnv{
		root:       root,
		configPath: filepath.Join(root, "config.yaml"),
		storeFile:  filepath.Join(root, "All_applyDetail.xlsx"),
		appliesDir: filepath.Join(root, "applies"),
		dataDir:    filepath.Join(root, "data"),
	}

	content := "store_file: " + env.storeFile + "\n" +
		"applies_dir: " + env.appliesDir + "\n" +
		"data_dir: " + env.dataDir + "\n" +
		"logger:\n  level: error\n  format: json\n"
	require.NoError(t, os.WriteFile(env.configPath, []byte(content), 0644))
	require.NoError(t, os.MkdirAll(env.dataDir, 0755))
	require.NoError(t, os.WriteFile(filepath.Join(env.dataDir, "career.json"), []byte(`{"name":"Jane Doe"}`), 0644))
	return env
}

// writeRecord writes a cv_data file into dir and returns its path.
func writeRecord(t *testing.T, dir, name, content string) string {
	t.Helper()
	require.NoError(t, os.MkdirAll(dir, 0755))
	path := filepath.Join(dir, name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))
	return path
}

// executeCommand runs the root command in-process with the given stdin and
// returns everything written to stdout and stderr.
func (e *testEnv) executeCommand(t *testing.T, stdin string, args ...string) (string, error) {
	t.Helper()
	resetFlags(rootCmd)
	cfg = nil

	var out bytes.Buffer
	rootCmd.SetIn(strings.NewReader(stdin))
	rootCmd.SetOut(&out)
	rootCmd.SetErr(&out)
	rootCmd.SetArgs(append([]string{"--config", e.configPath}, args...))

	err := rootCmd.Execute()
	return out.String(), err
}

// resetFlags restores every flag to its default; cobra keeps parsed values
// between Execute calls.
func resetFlags(cmd *cobra.Command) {
	reset := func(f *pflag.Flag) {
		_ = f.Value.Set(f.DefValue)
		f.Changed = false
	}
	cmd.Flags().VisitAll(reset)
	cmd.PersistentFlags().VisitAll(reset)
	for _, sub := range cmd.Commands() {
		resetFlags(sub)
	}
}

const sampleRecord = `{
	"name": "Jane Doe",
	"role": "Backend Engineer",
	"contact": {"email": "jane@example.com"},
	"summary": "Builds reliable services.",
	"coreSkills": [{"category": "Languages", "skills": ["Go", "SQL"]}],
	"experiences": [
		{
			"role": "Engineer",
			"company": "Acme",
			"start": {"year": 2021, "month": 3},
			"end": "Present",
			"detail": "- Shipped the billing service\n- Cut latency in half"
		}
	],
	"applyDetail": {
		"role": "Backend Engineer",
		"company": "Acme Corp",
		"location": "Berlin",
		"status": "applied",
		"applyDateTime": "2025-10-12T09:30:00Z"
	}
}`
