// Package main provides the entry point for the jobuine CLI.
package main

import (
	"fmt"
	"os"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"

	"github.com/jonathan/jobuine/internal/config"
	"github.com/jonathan/jobuine/internal/logger"
)

var rootCmd = &cobra.Command{
	Use:   "jobuine",
	Short: "Resume renderer and job application ledger",
	Long: `jobuine prepares one workspace per job application, renders the filled-in
cv_data.json files to PDF or LaTeX, and keeps every application in a single
XLSX ledger.`,
	SilenceUsage:      true,
	PersistentPreRunE: loadConfig,
}

var (
	configPath string
	logLevel   string
	logFormat  string

	// cfg is set by loadConfig before any subcommand runs.
	cfg *config.Config
)

func init() {
	rootCmd.PersistentFlags().StringVar(&configPath, "config", "config.yaml", "Path to config.yaml")
	rootCmd.PersistentFlags().StringVar(&logLevel, "log-level", "", "Log level (debug, info, warn, error); overrides config")
	rootCmd.PersistentFlags().StringVar(&logFormat, "log-format", "", "Log format (json or pretty); overrides config")
}

func loadConfig(cmd *cobra.Command, _ []string) error {
	loaded, err := config.LoadOrDefault(configPath)
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}

	merged := loaded.MergeWithDefaults(config.Default())
	if cmd.Flags().Changed("log-level") {
		merged.Logger.Level = logLevel
	}
	if cmd.Flags().Changed("log-format") {
		merged.Logger.Format = logFormat
	}
	if err := merged.Validate(); err != nil {
		return err
	}

	logger.Init(merged.Logger)
	logger.Debug().Str("config", merged.Path()).Msg("configuration loaded")

	cfg = &merged
	return nil
}

func main() {
	// Load .env file if it exists
	_ = godotenv.Load()

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
