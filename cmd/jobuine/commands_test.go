package main

import (
	"os"
	"os/exec"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"
)

func TestApply_WithFlags(t *testing.T) {
	env := newTestEnv(t)

	out, err := env.executeCommand(t, "We need a Go engineer.\n",
		"apply", "--company", "Acme Corp", "--role", "Backend Engineer")
	require.NoError(t, err)
	assert.Contains(t, out, "APPLY WORKSPACE")

	dir := filepath.Join(env.appliesDir, time.Now().Format("2006_01_02"), "apl_Acme_Corp")
	prompt, err := os.ReadFile(filepath.Join(dir, "prompt.txt"))
	require.NoError(t, err)
	assert.Contains(t, string(prompt), "role : Backend Engineer")
	assert.Contains(t, string(prompt), "We need a Go engineer.")

	cvData, err := os.ReadFile(filepath.Join(dir, "cv_data.json"))
	require.NoError(t, err)
	assert.Equal(t, "{}", string(cvData))

	data, err := os.ReadFile(env.configPath)
	require.NoError(t, err)
	var saved map[string]any
	require.NoError(t, yaml.Unmarshal(data, &saved))
	assert.Equal(t, dir, saved["current_apply_dir"])
	assert.Equal(t, env.storeFile, saved["store_file"])
}

func TestApply_PromptsOnStdin(t *testing.T) {
	env := newTestEnv(t)

	out, err := env.executeCommand(t, "Globex\nData Engineer\nPipelines all day.\nMore text.\n", "apply")
	require.NoError(t, err)
	assert.Contains(t, out, "Company name: ")
	assert.Contains(t, out, "Role: ")

	dir := filepath.Join(env.appliesDir, time.Now().Format("2006_01_02"), "apl_Globex")
	prompt, err := os.ReadFile(filepath.Join(dir, "prompt.txt"))
	require.NoError(t, err)
	assert.Contains(t, string(prompt), "role : Data Engineer")
	assert.Contains(t, string(prompt), "Pipelines all day.\nMore text.")
}

func TestApply_EmptyDescription(t *testing.T) {
	env := newTestEnv(t)

	_, err := env.executeCommand(t, "", "apply", "--company", "Acme", "--role", "Engineer")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "job description cannot be empty")
}

func TestApply_MissingCareer(t *testing.T) {
	env := newTestEnv(t)
	require.NoError(t, os.Remove(filepath.Join(env.dataDir, "career.json")))

	_, err := env.executeCommand(t, "desc", "apply", "--company", "Acme", "--role", "Engineer")
	assert.Error(t, err)
}

func TestGenerate_RendersAndUpdatesLedger(t *testing.T) {
	env := newTestEnv(t)
	dir := filepath.Join(env.root, "work")
	writeRecord(t, dir, "cv_data.json", sampleRecord)

	out, err := env.executeCommand(t, "", "generate", "--dir", dir, "--format", "latex")
	require.NoError(t, err)
	assert.Contains(t, out, "GENERATE")
	assert.Contains(t, out, "1 ok, 0 failed")
	assert.Contains(t, out, "added 1 rows")

	assert.FileExists(t, filepath.Join(dir, "JaneDoe.tex"))
	assert.FileExists(t, env.storeFile)

	out, err = env.executeCommand(t, "", "check", "--search", "acme corp")
	require.NoError(t, err)
	assert.Contains(t, out, "Found \"acme corp\" in 1 cells")

	out, err = env.executeCommand(t, "", "stats", "--date", "2025-10-12")
	require.NoError(t, err)
	assert.Contains(t, out, "Total applications: 1")
	assert.Contains(t, out, "Berlin: 1")
}

func TestGenerate_DefaultsToCurrentApplyDir(t *testing.T) {
	env := newTestEnv(t)
	dir := filepath.Join(env.root, "current")
	writeRecord(t, dir, "cv_data.json", sampleRecord)
	t.Setenv("JOBUINE_CURRENT_APPLY_DIR", dir)

	_, err := env.executeCommand(t, "", "generate", "--format", "markdown")
	require.NoError(t, err)
	assert.FileExists(t, filepath.Join(dir, "JaneDoe.md"))
}

func TestGenerate_NoCurrentApplyDir(t *testing.T) {
	env := newTestEnv(t)

	_, err := env.executeCommand(t, "", "generate")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "Run 'jobuine apply' first")
}

func TestGenerate_FailedRecordExitsWithError(t *testing.T) {
	env := newTestEnv(t)
	dir := filepath.Join(env.root, "work")
	writeRecord(t, dir, "a.json", sampleRecord)
	writeRecord(t, dir, "b.json", `{"name": "Broken", "experiences": [{"company": "NoRole"}]}`)

	out, err := env.executeCommand(t, "", "generate", "--dir", dir, "--format", "markdown")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "1 of 2 documents failed")
	assert.Contains(t, out, "1 ok, 1 failed")
	assert.FileExists(t, env.storeFile, "the ledger is saved even when a document fails")
}

func TestGenerate_UnknownFormat(t *testing.T) {
	env := newTestEnv(t)

	_, err := env.executeCommand(t, "", "generate", "--dir", env.root, "--format", "docx")
	assert.Error(t, err)
}

func TestCheck_RequiresSearch(t *testing.T) {
	env := newTestEnv(t)

	_, err := env.executeCommand(t, "", "check")
	require.Error(t, err)
	assert.Contains(t, err.Error(), `required flag(s) "search" not set`)
}

func TestCheck_MissingLedger(t *testing.T) {
	env := newTestEnv(t)

	_, err := env.executeCommand(t, "", "check", "--search", "acme")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "ledger file not found")
	assert.NoFileExists(t, env.storeFile)
}

func TestStats_InvalidDate(t *testing.T) {
	env := newTestEnv(t)

	_, err := env.executeCommand(t, "", "stats", "--date", "12/10/2025")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "expected YYYY-MM-DD")
}

func TestValidate(t *testing.T) {
	env := newTestEnv(t)
	valid := writeRecord(t, env.root, "valid.json", sampleRecord)
	invalid := writeRecord(t, env.root, "invalid.json", `{"name": "Jane"}`)

	out, err := env.executeCommand(t, "", "validate", valid)
	require.NoError(t, err)
	assert.Contains(t, out, "valid.json is valid")

	out, err = env.executeCommand(t, "", "validate", invalid)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "validation failed")
	assert.Contains(t, out, "role")

	_, err = env.executeCommand(t, "", "validate")
	assert.Error(t, err)
}

func TestPreview(t *testing.T) {
	env := newTestEnv(t)
	path := writeRecord(t, env.root, "cv_data.json", sampleRecord)

	out, err := env.executeCommand(t, "", "preview", "--raw", path)
	require.NoError(t, err)
	assert.Contains(t, out, "# Jane Doe")
	assert.Contains(t, out, "Shipped the billing service")

	out, err = env.executeCommand(t, "", "preview", "--width", "80", path)
	require.NoError(t, err)
	assert.Contains(t, out, "Jane Doe")
}

func TestInvalidLogLevel(t *testing.T) {
	env := newTestEnv(t)
	path := writeRecord(t, env.root, "cv_data.json", sampleRecord)

	_, err := env.executeCommand(t, "", "--log-level", "loud", "preview", "--raw", path)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "logger.level")
}

func TestBinary_Help(t *testing.T) {
	binaryPath := getBinaryPath(t)

	cmd := exec.Command(binaryPath, "--help")
	output, err := cmd.CombinedOutput()

	assert.NoError(t, err)
	for _, sub := range []string{"apply", "check", "generate", "stats", "validate", "preview"} {
		assert.Contains(t, string(output), sub)
	}
}

func TestBinary_ValidateFailureExitCode(t *testing.T) {
	binaryPath := getBinaryPath(t)
	path := writeRecord(t, t.TempDir(), "invalid.json", `{"name": "Jane"}`)

	cmd := exec.Command(binaryPath, "--config", filepath.Join(t.TempDir(), "config.yaml"), "validate", path)
	output, err := cmd.CombinedOutput()

	assert.Error(t, err, "command should fail")
	assert.Contains(t, string(output), "validation failed")
	if exitError, ok := err.(*exec.ExitError); ok {
		assert.Equal(t, 1, exitError.ExitCode(), "should exit with code 1 on validation failure")
	}
}

const nicknameSchema = `{
	"$schema": "http://json-schema.org/draft-07/schema#",
	"type": "object",
	"required": ["nickname"]
}`

func TestValidate_UsesDataDirSchema(t *testing.T) {
	env := newTestEnv(t)
	path := writeRecord(t, env.root, "cv_data.json", sampleRecord)
	writeRecord(t, env.dataDir, "schema.json", nicknameSchema)

	out, err := env.executeCommand(t, "", "validate", path)
	require.Error(t, err)
	assert.Contains(t, out, "nickname")
}

func TestValidate_SchemaFlag(t *testing.T) {
	env := newTestEnv(t)
	path := writeRecord(t, env.root, "cv_data.json", `{"nickname": "JD"}`)
	schema := writeRecord(t, env.root, "custom.schema.json", nicknameSchema)

	out, err := env.executeCommand(t, "", "validate", "--schema", schema, path)
	require.NoError(t, err)
	assert.Contains(t, out, "cv_data.json is valid")

	_, err = env.executeCommand(t, "", "validate", "--schema", filepath.Join(env.root, "missing.json"), path)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "schema file not found")
}
