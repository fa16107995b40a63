package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"

	"github.com/spf13/cobra"

	"github.com/jonathan/jobuine/internal/generate"
	"github.com/jonathan/jobuine/internal/logger"
	"github.com/jonathan/jobuine/internal/observability"
	"github.com/jonathan/jobuine/internal/rendering"
)

var generateCmd = &cobra.Command{
	Use:   "generate",
	Short: "Render every cv_data file of a workspace and update the ledger",
	Long: `Renders each *.json file in the directory to a document placed next to it,
then appends the applyDetail of every file to the XLSX ledger.

The directory defaults to current_apply_dir from the config. The format and
template default to the render section of the config.`,
	RunE: runGenerate,
}

var (
	generateDir      string
	generateFormat   string
	generateTemplate string
	generateStrict   bool
	generateVerbose  bool
)

func init() {
	generateCmd.Flags().StringVarP(&generateDir, "dir", "d", "", "Directory holding the cv_data JSON files (default current_apply_dir)")
	generateCmd.Flags().StringVarP(&generateFormat, "format", "f", "", "Output format: pdf, latex or markdown (default from config)")
	generateCmd.Flags().StringVarP(&generateTemplate, "template", "t", "", "LaTeX template overriding the built-in one")
	generateCmd.Flags().BoolVar(&generateStrict, "strict", false, "Validate each file against the resume schema before rendering")
	generateCmd.Flags().BoolVarP(&generateVerbose, "verbose", "v", false, "Print progress for each file")

	rootCmd.AddCommand(generateCmd)
}

func runGenerate(cmd *cobra.Command, _ []string) error {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	dir := generateDir
	if dir == "" {
		current, err := cfg.CurrentApplyDir()
		if err != nil {
			return err
		}
		dir = current
	}

	storeFile, err := cfg.StoreFile()
	if err != nil {
		return err
	}

	formatName := cfg.Render.Format
	if cmd.Flags().Changed("format") {
		formatName = generateFormat
	}
	format, err := rendering.ParseFormat(formatName)
	if err != nil {
		return err
	}

	template := cfg.Render.Template
	if cmd.Flags().Changed("template") {
		template = generateTemplate
	}

	log := logger.With("generate")
	opts := generate.Options{
		Dir:          dir,
		StoreFile:    storeFile,
		Format:       format,
		TemplatePath: template,
		Strict:       generateStrict,
		Logger:       &log,
	}
	if generateVerbose {
		errOut := cmd.ErrOrStderr()
		opts.OnProgress = func(event generate.ProgressEvent) {
			if event.File != "" {
				_, _ = fmt.Fprintf(errOut, "[%s] %s: %s\n", event.Step, event.File, event.Message)
				return
			}
			_, _ = fmt.Fprintf(errOut, "[%s] %s\n", event.Step, event.Message)
		}
	}

	result, err := generate.Run(ctx, opts)
	if result != nil {
		observability.NewPrinter(cmd.OutOrStdout()).PrintGenerateResult(result)
	}
	if err != nil {
		return err
	}

	if n := len(result.Failures); n > 0 {
		return fmt.Errorf("%d of %d documents failed", n, result.Records)
	}
	return nil
}
