package main

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/jonathan/jobuine/internal/logger"
	"github.com/jonathan/jobuine/internal/observability"
	"github.com/jonathan/jobuine/internal/workspace"
)

var applyCmd = &cobra.Command{
	Use:   "apply",
	Short: "Create the workspace for a new job application",
	Long: `Creates <applies_dir>/<YYYY_MM_DD>/apl_<Company> with a filled-in prompt.txt
and an empty cv_data.json, and records it as current_apply_dir in the config.

Values not given as flags are asked for on stdin; the job description is read
until EOF (Ctrl-D).`,
	RunE: runApply,
}

var (
	applyCompany string
	applyRole    string
	applyJobFile string
)

func init() {
	applyCmd.Flags().StringVarP(&applyCompany, "company", "c", "", "Company name")
	applyCmd.Flags().StringVarP(&applyRole, "role", "r", "", "Role applied for")
	applyCmd.Flags().StringVarP(&applyJobFile, "job", "j", "", "Path to a job description text file")

	rootCmd.AddCommand(applyCmd)
}

func runApply(cmd *cobra.Command, _ []string) error {
	appliesDir, err := cfg.AppliesDir()
	if err != nil {
		return err
	}
	dataDir, err := cfg.DataDir()
	if err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	in := bufio.NewReader(cmd.InOrStdin())

	company := applyCompany
	if company == "" {
		if company, err = promptLine(in, out, "Company name: "); err != nil {
			return err
		}
	}
	role := applyRole
	if role == "" {
		if role, err = promptLine(in, out, "Role: "); err != nil {
			return err
		}
	}

	var description string
	if applyJobFile != "" {
		content, err := os.ReadFile(applyJobFile)
		if err != nil {
			return fmt.Errorf("failed to read job description file: %w", err)
		}
		description = string(content)
	} else {
		_, _ = fmt.Fprintln(out, "Paste the job description, then press Ctrl-D:")
		content, err := io.ReadAll(in)
		if err != nil {
			return fmt.Errorf("failed to read job description: %w", err)
		}
		description = string(content)
	}

	ws, err := workspace.Create(workspace.Options{
		AppliesDir:     appliesDir,
		DataDir:        dataDir,
		Company:        company,
		Role:           role,
		JobDescription: description,
		Now:            time.Now(),
	})
	if err != nil {
		return err
	}

	cfg.SetCurrentApplyDir(ws.Dir)
	if err := cfg.Save(""); err != nil {
		return fmt.Errorf("workspace created but config not updated: %w", err)
	}
	if ws.Reused {
		logger.Warn().Str("file", ws.CVDataPath).Msg("cv_data.json already has content, left unchanged")
	}
	logger.Info().Str("dir", ws.Dir).Bool("reused", ws.Reused).Msg("workspace ready")

	observability.NewPrinter(out).PrintWorkspace(ws, cfg.Path())
	return nil
}

// promptLine writes label and reads one trimmed line. EOF after some input
// is accepted.
func promptLine(in *bufio.Reader, out io.Writer, label string) (string, error) {
	_, _ = fmt.Fprint(out, label)
	line, err := in.ReadString('\n')
	if err != nil && !(errors.Is(err, io.EOF) && line != "") {
		return "", fmt.Errorf("failed to read %s: %w", strings.TrimSuffix(strings.ToLower(label), ": "), err)
	}
	return strings.TrimSpace(line), nil
}
