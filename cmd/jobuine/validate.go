package main

import (
	"errors"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/jonathan/jobuine/internal/observability"
	"github.com/jonathan/jobuine/internal/schemas"
	"github.com/jonathan/jobuine/internal/workspace"
)

var validateCmd = &cobra.Command{
	Use:   "validate <file>",
	Short: "Validate a cv_data file against the resume schema",
	Long: `Checks a cv_data JSON file against a JSON Schema and lists every violation.

The schema is --schema if given, else <data_dir>/schema.json (the schema
that apply puts into the prompt) when it exists, else the built-in one.`,
	Args: cobra.ExactArgs(1),
	RunE: runValidate,
}

var validateSchema string

func init() {
	validateCmd.Flags().StringVarP(&validateSchema, "schema", "s", "", "Path to a JSON Schema file (default <data_dir>/schema.json or built-in)")

	rootCmd.AddCommand(validateCmd)
}

func runValidate(cmd *cobra.Command, args []string) error {
	path := args[0]

	var err error
	if schemaPath := resolveSchema(); schemaPath != "" {
		err = schemas.ValidateJSON(schemaPath, path)
	} else {
		err = schemas.ValidateResume(path)
	}

	var validationErr *schemas.ValidationError
	if err != nil && !errors.As(err, &validationErr) {
		return err
	}

	observability.NewPrinter(cmd.OutOrStdout()).PrintValidation(path, err)
	if err != nil {
		return errors.New("validation failed")
	}
	return nil
}

// resolveSchema returns the schema file to validate against, or "" for the
// built-in schema.
func resolveSchema() string {
	if validateSchema != "" {
		return validateSchema
	}

	dataDir, err := cfg.DataDir()
	if err != nil {
		return ""
	}
	candidate := filepath.Join(dataDir, workspace.SchemaFile)
	if _, err := os.Stat(candidate); err == nil {
		return candidate
	}
	return ""
}
