package main

import (
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/jonathan/jobuine/internal/ledger"
	"github.com/jonathan/jobuine/internal/logger"
	"github.com/jonathan/jobuine/internal/observability"
)

var checkCmd = &cobra.Command{
	Use:   "check",
	Short: "Search the application ledger",
	Long:  "Looks for a text in every cell of every sheet of the ledger, ignoring case. Use it to see whether you already applied somewhere.",
	RunE:  runCheck,
}

var checkSearch string

func init() {
	checkCmd.Flags().StringVarP(&checkSearch, "search", "s", "", "Text to look for (required)")

	if err := checkCmd.MarkFlagRequired("search"); err != nil {
		panic(fmt.Sprintf("failed to mark search flag as required: %v", err))
	}

	rootCmd.AddCommand(checkCmd)
}

func runCheck(cmd *cobra.Command, _ []string) error {
	term := strings.TrimSpace(checkSearch)
	if term == "" {
		return fmt.Errorf("--search must not be empty")
	}

	store, storeFile, err := openExistingLedger()
	if err != nil {
		return err
	}
	defer store.Close() //nolint:errcheck // read-only use

	matches, err := store.Search(term)
	if err != nil {
		return err
	}

	observability.NewPrinter(cmd.OutOrStdout()).PrintSearch(term, matches)
	logger.Debug().Str("ledger", storeFile).Str("sheet", store.Sheet()).Int("matches", len(matches)).Msg("search finished")
	return nil
}

// openExistingLedger opens the configured ledger. Unlike generate, the
// read-only commands refuse to work on a ledger that does not exist yet.
func openExistingLedger() (*ledger.Store, string, error) {
	storeFile, err := cfg.StoreFile()
	if err != nil {
		return nil, "", err
	}
	if _, err := os.Stat(storeFile); err != nil {
		if os.IsNotExist(err) {
			return nil, "", fmt.Errorf("ledger file not found: %s", storeFile)
		}
		return nil, "", fmt.Errorf("failed to stat ledger file: %w", err)
	}

	store, err := ledger.OpenOrCreate(storeFile, ledger.WithLogger(logger.With("ledger")))
	if err != nil {
		return nil, "", err
	}
	return store, storeFile, nil
}
