package ledger

import (
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/xuri/excelize/v2"
)

// Match is a cell whose value contains the search term.
type Match struct {
	Sheet string
	Cell  string
	Value string
}

// Search returns every cell, across all sheets, containing term
// case-insensitively.
func (s *Store) Search(term string) ([]Match, error) {
	needle := strings.ToLower(strings.TrimSpace(term))
	if needle == "" {
		return nil, nil
	}

	var matches []Match
	for _, sheet := range s.file.GetSheetList() {
		rows, err := s.file.GetRows(sheet)
		if err != nil {
			return nil, &StoreError{Path: s.path, Message: fmt.Sprintf("failed to read sheet %s", sheet), Cause: err}
		}
		for r, row := range rows {
			for c, value := range row {
				if !strings.Contains(strings.ToLower(value), needle) {
					continue
				}
				cell, err := excelize.CoordinatesToCellName(c+1, r+1)
				if err != nil {
					return nil, err
				}
				matches = append(matches, Match{Sheet: sheet, Cell: cell, Value: value})
			}
		}
	}
	return matches, nil
}

// LocationCount is the number of applications sent to one location.
type LocationCount struct {
	Location string
	Count    int
}

// Stats summarizes the applications of a single day.
type Stats struct {
	Day        time.Time
	Total      int
	ByLocation []LocationCount
}

// statsLayouts parses applyDateTime cells: the display layout first, then
// raw ISO values that could not be reformatted when they were appended.
var statsLayouts = append([]string{DisplayLayout}, isoLayouts...)

// DailyStats counts the rows whose applyDateTime falls on day's calendar
// date, grouped by location (most applications first, then by name). Rows
// with an unparsable timestamp are ignored; rows without a location count
// toward the total only.
func (s *Store) DailyStats(day time.Time) (*Stats, error) {
	rows, err := s.Rows()
	if err != nil {
		return nil, err
	}
	stats := &Stats{Day: day}
	if len(rows) == 0 {
		return stats, nil
	}

	dateCol, locCol := -1, -1
	for i, name := range rows[0] {
		switch strings.TrimSpace(name) {
		case "applyDateTime":
			dateCol = i
		case "location":
			locCol = i
		}
	}
	var missing []string
	if locCol < 0 {
		missing = append(missing, "location")
	}
	if dateCol < 0 {
		missing = append(missing, "applyDateTime")
	}
	if len(missing) > 0 {
		return nil, &StoreError{
			Path:    s.path,
			Message: fmt.Sprintf("missing required columns: %s", strings.Join(missing, ", ")),
		}
	}

	y, m, d := day.Date()
	counts := make(map[string]int)
	for _, row := range rows[1:] {
		t, ok := parseStamp(cellAt(row, dateCol))
		if !ok {
			continue
		}
		if ty, tm, td := t.Date(); ty != y || tm != m || td != d {
			continue
		}
		stats.Total++
		if loc := strings.TrimSpace(cellAt(row, locCol)); loc != "" {
			counts[loc]++
		}
	}

	for loc, n := range counts {
		stats.ByLocation = append(stats.ByLocation, LocationCount{Location: loc, Count: n})
	}
	sort.Slice(stats.ByLocation, func(i, j int) bool {
		a, b := stats.ByLocation[i], stats.ByLocation[j]
		if a.Count != b.Count {
			return a.Count > b.Count
		}
		return a.Location < b.Location
	})
	return stats, nil
}

func cellAt(row []string, i int) string {
	if i < len(row) {
		return row[i]
	}
	return ""
}

func parseStamp(v string) (time.Time, bool) {
	v = strings.TrimSpace(v)
	if v == "" {
		return time.Time{}, false
	}
	for _, layout := range statsLayouts {
		if t, err := time.Parse(layout, v); err == nil {
			return t, true
		}
	}
	return time.Time{}, false
}
