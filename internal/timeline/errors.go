// Package timeline formats resume date ranges and the durations between them.
package timeline

import "fmt"

// InvalidDateError is returned when a year or month cannot be read as an integer
type InvalidDateError struct {
	Field string
	Value string
	Cause error
}

func (e *InvalidDateError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("invalid date: %s %q: %v", e.Field, e.Value, e.Cause)
	}
	return fmt.Sprintf("invalid date: %s %q", e.Field, e.Value)
}

func (e *InvalidDateError) Unwrap() error {
	return e.Cause
}
