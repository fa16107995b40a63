package timeline

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/jonathan/jobuine/internal/types"
)

// rangeSeparator joins the start and end side of a range
const rangeSeparator = " - "

// FormatRange renders "start - end" with each side as "year/month".
// A side with no data is left out together with the separator. The ongoing
// sentinel is shown as written, never as today's date.
func FormatRange(start, end types.DatePart) string {
	parts := make([]string, 0, 2)
	for _, side := range []types.DatePart{start, end} {
		if s := formatSide(side); s != "" {
			parts = append(parts, s)
		}
	}
	return strings.Join(parts, rangeSeparator)
}

func formatSide(d types.DatePart) string {
	if !d.Raw.IsEmpty() {
		return d.Raw.String()
	}

	y, m := d.Year.String(), d.Month.String()
	switch {
	case y != "" && m != "":
		return y + "/" + m
	case y != "":
		return y
	default:
		return m
	}
}

// ComputeDuration returns the whole-month span between start and end as
// "N yr(s) M mo(s)". An ongoing or absent end is measured up to now.
func ComputeDuration(start, end types.DatePart, now time.Time) (string, error) {
	startYear, startMonth, err := resolve(start, "start")
	if err != nil {
		return "", err
	}

	endYear, endMonth := now.Year(), int(now.Month())
	if !end.IsOngoing() && !end.IsZero() {
		endYear, endMonth, err = resolve(end, "end")
		if err != nil {
			return "", err
		}
	}

	delta := (endYear-startYear)*12 + (endMonth - startMonth)
	return FormatMonths(max(delta, 0)), nil
}

// FormatMonths renders a month count as years and months.
func FormatMonths(total int) string {
	if total < 0 {
		total = 0
	}
	years, months := total/12, total%12

	var parts []string
	if years > 0 {
		parts = append(parts, fmt.Sprintf("%d yr%s", years, plural(years)))
	}
	if months > 0 {
		parts = append(parts, fmt.Sprintf("%d mo%s", months, plural(months)))
	}
	if len(parts) == 0 {
		return "0 mos"
	}
	return strings.Join(parts, " ")
}

func plural(n int) string {
	if n > 1 {
		return "s"
	}
	return ""
}

// resolve reads the year and month of d as integers.
func resolve(d types.DatePart, side string) (int, int, error) {
	year, err := strconv.Atoi(d.Year.String())
	if err != nil {
		return 0, 0, &InvalidDateError{Field: side + ".year", Value: d.Year.String(), Cause: err}
	}

	month, err := strconv.Atoi(d.Month.String())
	if err != nil {
		return 0, 0, &InvalidDateError{Field: side + ".month", Value: d.Month.String(), Cause: err}
	}
	if month < 1 || month > 12 {
		return 0, 0, &InvalidDateError{Field: side + ".month", Value: d.Month.String()}
	}

	return year, month, nil
}

// Validate checks that an experience's dates can be resolved: start always,
// end unless it is ongoing or absent.
func Validate(start, end types.DatePart) error {
	if _, _, err := resolve(start, "start"); err != nil {
		return err
	}
	if end.IsOngoing() || end.IsZero() {
		return nil
	}
	_, _, err := resolve(end, "end")
	return err
}
