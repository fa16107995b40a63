// Package observability provides formatted output for the CLI commands.
package observability

import (
	"fmt"
	"io"
	"path/filepath"
	"strings"

	"github.com/jonathan/jobuine/internal/generate"
	"github.com/jonathan/jobuine/internal/ledger"
	"github.com/jonathan/jobuine/internal/workspace"
)

const (
	// boxWidth is the default width for formatted output boxes
	boxWidth = 60
	// maxItemsToShow is the default number of items to display in lists
	maxItemsToShow = 5
)

// Printer writes human-readable summaries
type Printer struct {
	out io.Writer
}

// NewPrinter creates a new Printer that writes to the given writer
func NewPrinter(out io.Writer) *Printer {
	return &Printer{out: out}
}

// truncate shortens s to n runes, marking the cut with "...".
func truncate(s string, n int) string {
	r := []rune(s)
	if len(r) <= n {
		return s
	}
	return string(r[:n-3]) + "..."
}

// printBox prints a formatted box with a title and content
//
//nolint:errcheck // writing to stdout; errors are not recoverable
func (p *Printer) printBox(title string, content string) {
	border := strings.Repeat("─", boxWidth-2)
	fmt.Fprintf(p.out, "┌%s┐\n", border)
	fmt.Fprintf(p.out, "│ %-*s │\n", boxWidth-4, truncate(title, boxWidth-4))
	fmt.Fprintf(p.out, "├%s┤\n", border)

	for _, line := range strings.Split(content, "\n") {
		fmt.Fprintf(p.out, "│ %-*s │\n", boxWidth-4, truncate(line, boxWidth-4))
	}

	fmt.Fprintf(p.out, "└%s┘\n", border)
}

// PrintGenerateResult outputs the documents written, the failures and the
// ledger update of a generate run.
func (p *Printer) PrintGenerateResult(res *generate.Result) {
	if res == nil {
		return
	}

	var sb strings.Builder
	sb.WriteString(fmt.Sprintf("Directory: %s\n", filepath.Base(res.Dir)))
	if res.Records == 0 {
		sb.WriteString("No .json files found.")
		p.printBox("GENERATE", sb.String())
		return
	}

	sb.WriteString(fmt.Sprintf("Documents: %d ok, %d failed\n", res.Succeeded(), len(res.Failures)))
	count := min(len(res.Artifacts), maxItemsToShow)
	for i := 0; i < count; i++ {
		sb.WriteString(fmt.Sprintf("  ✓ %s\n", filepath.Base(res.Artifacts[i])))
	}
	if len(res.Artifacts) > maxItemsToShow {
		sb.WriteString(fmt.Sprintf("  ... and %d more\n", len(res.Artifacts)-maxItemsToShow))
	}
	for _, f := range res.Failures {
		sb.WriteString(fmt.Sprintf("  ✗ %s: %v\n", f.File, f.Err))
	}

	sb.WriteString("\n")
	if res.RowsAdded > 0 {
		sb.WriteString(fmt.Sprintf("Ledger: added %d rows\n", res.RowsAdded))
	} else {
		sb.WriteString("Ledger: no applyDetail found\n")
	}
	sb.WriteString(fmt.Sprintf("  %s", res.StoreFile))

	p.printBox("GENERATE", sb.String())
}

// PrintStats outputs the applications counted for one day.
func (p *Printer) PrintStats(storeFile string, stats *ledger.Stats) {
	if stats == nil {
		return
	}

	var sb strings.Builder
	sb.WriteString(fmt.Sprintf("Ledger: %s\n", filepath.Base(storeFile)))
	sb.WriteString(fmt.Sprintf("Date:   %s\n", stats.Day.Format("2006-01-02")))
	sb.WriteString(fmt.Sprintf("Total applications: %d", stats.Total))

	if stats.Total == 0 {
		sb.WriteString("\nNo applications found for this day.")
	}
	if len(stats.ByLocation) > 0 {
		sb.WriteString("\n\nBy location:")
		for _, lc := range stats.ByLocation {
			sb.WriteString(fmt.Sprintf("\n  • %s: %d", lc.Location, lc.Count))
		}
	}

	p.printBox("APPLICATION STATISTICS", sb.String())
}

// PrintSearch outputs the ledger cells matching term.
func (p *Printer) PrintSearch(term string, matches []ledger.Match) {
	var sb strings.Builder
	if len(matches) == 0 {
		sb.WriteString(fmt.Sprintf("%q not found.", term))
		p.printBox("SEARCH", sb.String())
		return
	}

	sb.WriteString(fmt.Sprintf("Found %q in %d cells:\n", term, len(matches)))
	count := min(len(matches), maxItemsToShow)
	for i := 0; i < count; i++ {
		m := matches[i]
		sb.WriteString(fmt.Sprintf("\n  %s!%s  %s", m.Sheet, m.Cell, m.Value))
	}
	if len(matches) > maxItemsToShow {
		sb.WriteString(fmt.Sprintf("\n\n... and %d more", len(matches)-maxItemsToShow))
	}

	p.printBox("SEARCH", sb.String())
}

// PrintWorkspace outputs the files of a newly created workspace.
func (p *Printer) PrintWorkspace(ws *workspace.Workspace, configPath string) {
	if ws == nil {
		return
	}

	var sb strings.Builder
	sb.WriteString(fmt.Sprintf("Directory: %s\n\n", ws.Dir))
	sb.WriteString(fmt.Sprintf("  • %s\n", filepath.Base(ws.PromptPath)))
	if ws.Reused {
		sb.WriteString(fmt.Sprintf("  • %s (kept, already filled)\n", filepath.Base(ws.CVDataPath)))
	} else {
		sb.WriteString(fmt.Sprintf("  • %s\n", filepath.Base(ws.CVDataPath)))
	}
	if configPath != "" {
		sb.WriteString(fmt.Sprintf("\ncurrent_apply_dir saved to %s", filepath.Base(configPath)))
	}

	p.printBox("APPLY WORKSPACE", strings.TrimSuffix(sb.String(), "\n"))
}

// PrintValidation outputs the schema check of one file.
func (p *Printer) PrintValidation(path string, err error) {
	if err == nil {
		p.printBox("VALIDATE", fmt.Sprintf("✓ %s is valid", filepath.Base(path)))
		return
	}
	p.printBox("VALIDATE", strings.TrimSuffix(err.Error(), "\n"))
}
