package main

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/jonathan/jobuine/internal/observability"
)

var statsCmd = &cobra.Command{
	Use:   "stats",
	Short: "Count the applications of one day",
	Long:  "Counts the ledger rows whose applyDateTime falls on the given day, grouped by location.",
	RunE:  runStats,
}

var statsDate string

func init() {
	statsCmd.Flags().StringVarP(&statsDate, "date", "d", "", "Day to count, YYYY-MM-DD (default today)")

	rootCmd.AddCommand(statsCmd)
}

func runStats(cmd *cobra.Command, _ []string) error {
	day := time.Now()
	if statsDate != "" {
		parsed, err := time.ParseInLocation("2006-01-02", statsDate, time.Local)
		if err != nil {
			return fmt.Errorf("invalid --date %q, expected YYYY-MM-DD", statsDate)
		}
		day = parsed
	}

	store, storeFile, err := openExistingLedger()
	if err != nil {
		return err
	}
	defer store.Close() //nolint:errcheck // read-only use

	stats, err := store.DailyStats(day)
	if err != nil {
		return err
	}

	observability.NewPrinter(cmd.OutOrStdout()).PrintStats(storeFile, stats)
	return nil
}
