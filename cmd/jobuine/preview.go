package main

import (
	"fmt"

	"github.com/charmbracelet/glamour"
	"github.com/spf13/cobra"

	"github.com/jonathan/jobuine/internal/rendering"
	"github.com/jonathan/jobuine/internal/resume"
)

var previewCmd = &cobra.Command{
	Use:   "preview <file>",
	Short: "Show a cv_data file as it will be laid out",
	Long:  "Assembles the resume document of a cv_data JSON file and prints it to the terminal as styled Markdown.",
	Args:  cobra.ExactArgs(1),
	RunE:  runPreview,
}

var (
	previewWidth int
	previewRaw   bool
)

func init() {
	previewCmd.Flags().IntVarP(&previewWidth, "width", "w", 100, "Word wrap width")
	previewCmd.Flags().BoolVar(&previewRaw, "raw", false, "Print the Markdown source without styling")

	rootCmd.AddCommand(previewCmd)
}

func runPreview(cmd *cobra.Command, args []string) error {
	markdown, err := previewMarkdown(args[0])
	if err != nil {
		return err
	}

	if previewRaw {
		_, err = fmt.Fprint(cmd.OutOrStdout(), markdown)
		return err
	}

	renderer, err := glamour.NewTermRenderer(
		glamour.WithAutoStyle(),
		glamour.WithWordWrap(previewWidth),
	)
	if err != nil {
		return fmt.Errorf("failed to create terminal renderer: %w", err)
	}
	styled, err := renderer.Render(markdown)
	if err != nil {
		return fmt.Errorf("failed to render preview: %w", err)
	}

	_, err = fmt.Fprint(cmd.OutOrStdout(), styled)
	return err
}

// previewMarkdown loads a record and lays it out as Markdown.
func previewMarkdown(path string) (string, error) {
	rec, err := resume.LoadRecord(path)
	if err != nil {
		return "", err
	}

	doc, err := rendering.NewAssembler().Assemble(rec)
	if err != nil {
		return "", err
	}

	engine := rendering.NewMarkdownEngine()
	if err := rendering.Render(doc, engine); err != nil {
		return "", err
	}
	return engine.String(), nil
}
