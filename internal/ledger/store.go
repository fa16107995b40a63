// Package ledger keeps the append-only XLSX ledger of job applications.
//
// The whole workbook is read into memory, mutated and rewritten on Save.
// Nothing coordinates concurrent writers: two invocations saving the same
// file race and the last one to rename its copy into place wins. Callers
// that need parallel runs must serialize them through a single writer.
package ledger

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"unicode/utf8"

	"github.com/rs/zerolog"
	"github.com/xuri/excelize/v2"

	"github.com/jonathan/jobuine/internal/logger"
)

// Header is the fixed first row of a new ledger.
var Header = []string{
	"Dir", "role", "company", "location", "jobType",
	"salary", "link", "address", "status", "applyDateTime",
}

// DefaultSheet names the sheet of a newly created ledger.
const DefaultSheet = "Applications"

// Column width bounds used by AutosizeColumns.
const (
	minColumnWidth = 12
	maxColumnWidth = 60
)

// Store is an open ledger workbook.
type Store struct {
	path  string
	file  *excelize.File
	sheet string
	rows  int
	log   zerolog.Logger
}

// Option configures a Store.
type Option func(*Store)

// WithLogger sets the logger used for skipped source files.
func WithLogger(l zerolog.Logger) Option {
	return func(s *Store) {
		s.log = l
	}
}

// OpenOrCreate opens the ledger at path and targets its first sheet, or
// starts a new workbook with the header row when the file does not exist.
// Nothing is written to disk until Save.
func OpenOrCreate(path string, opts ...Option) (*Store, error) {
	s := &Store{path: path, log: logger.With("ledger")}
	for _, opt := range opts {
		opt(s)
	}

	_, err := os.Stat(path)
	switch {
	case err == nil:
		if err := s.open(); err != nil {
			return nil, err
		}
	case errors.Is(err, fs.ErrNotExist):
		if err := s.create(); err != nil {
			return nil, err
		}
	default:
		return nil, &StoreError{Path: path, Message: fmt.Sprintf("failed to stat %s", path), Cause: err}
	}
	return s, nil
}

func (s *Store) open() error {
	f, err := excelize.OpenFile(s.path)
	if err != nil {
		return &StoreError{Path: s.path, Message: fmt.Sprintf("failed to open %s", s.path), Cause: err}
	}
	s.file = f

	sheets := f.GetSheetList()
	if len(sheets) == 0 {
		return &StoreError{Path: s.path, Message: "workbook has no sheets"}
	}
	s.sheet = sheets[0]

	rows, err := f.GetRows(s.sheet)
	if err != nil {
		return &StoreError{Path: s.path, Message: fmt.Sprintf("failed to read sheet %s", s.sheet), Cause: err}
	}
	s.rows = len(rows)

	// an existing but blank sheet still needs its header
	if s.rows == 0 {
		return s.appendValues(Header)
	}
	return nil
}

func (s *Store) create() error {
	f := excelize.NewFile()
	s.file = f

	first := f.GetSheetName(f.GetActiveSheetIndex())
	if err := f.SetSheetName(first, DefaultSheet); err != nil {
		return &StoreError{Path: s.path, Message: "failed to name sheet", Cause: err}
	}
	s.sheet = DefaultSheet
	return s.appendValues(Header)
}

// appendValues writes values into the row after the last one in use.
func (s *Store) appendValues(values []string) error {
	cell, err := excelize.CoordinatesToCellName(1, s.rows+1)
	if err != nil {
		return err
	}

	row := make([]any, len(values))
	for i, v := range values {
		row[i] = v
	}
	if err := s.file.SetSheetRow(s.sheet, cell, &row); err != nil {
		return &StoreError{Path: s.path, Message: fmt.Sprintf("failed to write row %d", s.rows+1), Cause: err}
	}
	s.rows++
	return nil
}

// Path returns the ledger file path.
func (s *Store) Path() string {
	return s.path
}

// Sheet returns the name of the sheet rows are appended to.
func (s *Store) Sheet() string {
	return s.sheet
}

// Len returns the number of rows in use, header included.
func (s *Store) Len() int {
	return s.rows
}

// Rows returns the cell values of the target sheet.
func (s *Store) Rows() ([][]string, error) {
	rows, err := s.file.GetRows(s.sheet)
	if err != nil {
		return nil, &StoreError{Path: s.path, Message: fmt.Sprintf("failed to read sheet %s", s.sheet), Cause: err}
	}
	return rows, nil
}

// AutosizeColumns sets each column's width to the longest value in it plus
// two, clamped to [12, 60]. Running it again yields the same widths.
func (s *Store) AutosizeColumns() error {
	rows, err := s.Rows()
	if err != nil {
		return err
	}

	cols := len(Header)
	for _, row := range rows {
		cols = max(cols, len(row))
	}

	for c := 0; c < cols; c++ {
		longest := 0
		for _, row := range rows {
			if c < len(row) {
				longest = max(longest, utf8.RuneCountInString(row[c]))
			}
		}

		name, err := excelize.ColumnNumberToName(c + 1)
		if err != nil {
			return err
		}
		width := min(max(minColumnWidth, longest+2), maxColumnWidth)
		if err := s.file.SetColWidth(s.sheet, name, name, float64(width)); err != nil {
			return &StoreError{Path: s.path, Message: fmt.Sprintf("failed to size column %s", name), Cause: err}
		}
	}
	return nil
}

// Save rewrites the whole ledger file. The workbook is written to a temp
// file next to the ledger and renamed over it.
func (s *Store) Save() error {
	dir := filepath.Dir(s.path)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return &StoreError{Path: s.path, Message: fmt.Sprintf("failed to create directory %s", dir), Cause: err}
	}

	tmp, err := os.CreateTemp(dir, "."+filepath.Base(s.path)+".*")
	if err != nil {
		return &StoreError{Path: s.path, Message: "failed to create temp file", Cause: err}
	}
	tmpName := tmp.Name()
	defer os.Remove(tmpName) //nolint:errcheck // gone after a successful rename

	if err := s.file.Write(tmp); err != nil {
		_ = tmp.Close()
		return &StoreError{Path: s.path, Message: "failed to write workbook", Cause: err}
	}
	if err := tmp.Close(); err != nil {
		return &StoreError{Path: s.path, Message: "failed to close workbook", Cause: err}
	}
	mode := os.FileMode(0644)
	if info, err := os.Stat(s.path); err == nil {
		mode = info.Mode().Perm()
	}
	if err := os.Chmod(tmpName, mode); err != nil {
		return &StoreError{Path: s.path, Message: "failed to set ledger permissions", Cause: err}
	}
	if err := os.Rename(tmpName, s.path); err != nil {
		return &StoreError{Path: s.path, Message: fmt.Sprintf("failed to replace %s", s.path), Cause: err}
	}
	return nil
}

// Close releases the workbook.
func (s *Store) Close() error {
	if s.file == nil {
		return nil
	}
	return s.file.Close()
}
