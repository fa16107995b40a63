// Package types provides type definitions for the resume and application records handled by jobuine.
//
//nolint:revive // types is a standard Go package name pattern
package types

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strings"
)

// Text is a string field that also accepts JSON numbers, booleans and null.
// Hand-written cv_data files mix `"year": 2020` and `"year": "2020"`, and
// salaries are often plain numbers.
type Text string

// UnmarshalJSON implements json.Unmarshaler.
func (t *Text) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if len(data) == 0 || bytes.Equal(data, []byte("null")) {
		*t = ""
		return nil
	}

	switch data[0] {
	case '"':
		var s string
		if err := json.Unmarshal(data, &s); err != nil {
			return err
		}
		*t = Text(s)
	case '{', '[':
		return fmt.Errorf("cannot use JSON %s as text", kindOf(data[0]))
	default:
		// numbers and booleans keep their literal form
		*t = Text(data)
	}
	return nil
}

// String returns the value with surrounding whitespace removed.
func (t Text) String() string {
	return strings.TrimSpace(string(t))
}

// IsEmpty reports whether the value is blank.
func (t Text) IsEmpty() bool {
	return t.String() == ""
}

func kindOf(b byte) string {
	if b == '{' {
		return "object"
	}
	return "array"
}
