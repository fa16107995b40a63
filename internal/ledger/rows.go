package ledger

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/jonathan/jobuine/internal/resume"
	"github.com/jonathan/jobuine/internal/types"
)

// DisplayLayout is how apply timestamps are written to the ledger.
const DisplayLayout = "Mon Jan 02 2006 15:04"

// isoLayouts are the ISO-8601 shapes FormatApplyDateTime understands.
var isoLayouts = []string{
	time.RFC3339Nano,
	"2006-01-02T15:04:05.999999999",
	"2006-01-02T15:04Z07:00",
	"2006-01-02T15:04",
	"2006-01-02 15:04:05.999999999Z07:00",
	"2006-01-02 15:04:05.999999999",
	"2006-01-02 15:04",
	"2006-01-02",
}

// Row is one ledger line.
type Row struct {
	Dir           string
	Role          string
	Company       string
	Location      string
	JobType       string
	Salary        string
	Link          string
	Address       string
	Status        string
	ApplyDateTime string
}

// RowFromDetail builds the ledger row for an applyDetail found under dir.
func RowFromDetail(dir string, ad *types.ApplyDetail) Row {
	if ad == nil {
		return Row{Dir: dir}
	}
	return Row{
		Dir:           dir,
		Role:          ad.Role.String(),
		Company:       ad.Company.String(),
		Location:      ad.Location.String(),
		JobType:       ad.JobType.String(),
		Salary:        ad.Salary.String(),
		Link:          ad.Link.String(),
		Address:       ad.Address.String(),
		Status:        ad.Status.String(),
		ApplyDateTime: FormatApplyDateTime(ad.ApplyDateTime.String()),
	}
}

// IsEmpty reports whether every field except Dir is blank.
func (r Row) IsEmpty() bool {
	for _, v := range r.Values()[1:] {
		if strings.TrimSpace(v) != "" {
			return false
		}
	}
	return true
}

// Values returns the fields in Header order.
func (r Row) Values() []string {
	return []string{
		r.Dir, r.Role, r.Company, r.Location, r.JobType,
		r.Salary, r.Link, r.Address, r.Status, r.ApplyDateTime,
	}
}

// FormatApplyDateTime renders an ISO-8601 timestamp ("Z" accepted) as
// "Sun Oct 12 2025 19:15". Anything it cannot parse is returned unchanged.
func FormatApplyDateTime(raw string) string {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return ""
	}
	for _, layout := range isoLayouts {
		if t, err := time.Parse(layout, raw); err == nil {
			return t.Format(DisplayLayout)
		}
	}
	return raw
}

// AppendRow appends r unless it is empty. It reports whether a row was added.
func (s *Store) AppendRow(r Row) (bool, error) {
	if r.IsEmpty() {
		return false, nil
	}
	if err := s.appendValues(r.Values()); err != nil {
		return false, err
	}
	return true, nil
}

// AppendRows appends one row per *.json file directly under sourceDir whose
// applyDetail has any non-empty field. The Dir column is the base name of
// sourceDir. Unreadable or malformed files are logged and skipped. It
// returns the number of rows added.
func (s *Store) AppendRows(sourceDir string) (int, error) {
	abs, err := filepath.Abs(sourceDir)
	if err != nil {
		return 0, &StoreError{Path: s.path, Message: fmt.Sprintf("failed to resolve %s", sourceDir), Cause: err}
	}
	info, err := os.Stat(abs)
	if err != nil {
		return 0, &StoreError{Path: s.path, Message: fmt.Sprintf("source directory %s is not readable", abs), Cause: err}
	}
	if !info.IsDir() {
		return 0, &StoreError{Path: s.path, Message: fmt.Sprintf("%s is not a directory", abs)}
	}

	files, err := resume.ListRecords(abs)
	if err != nil {
		return 0, &StoreError{Path: s.path, Message: "failed to list source files", Cause: err}
	}

	dirName := filepath.Base(abs)
	added := 0
	for _, path := range files {
		rec, err := resume.LoadApplication(path)
		if err != nil {
			s.log.Warn().Err(err).Str("file", filepath.Base(path)).Msg("skipping file for ledger")
			continue
		}

		ok, err := s.AppendRow(RowFromDetail(dirName, rec.ApplyDetail))
		if err != nil {
			s.log.Warn().Err(err).Str("file", filepath.Base(path)).Msg("failed to append ledger row")
			continue
		}
		if ok {
			added++
		}
	}

	s.log.Debug().Int("added", added).Str("dir", dirName).Msg("ledger rows appended")
	return added, nil
}
