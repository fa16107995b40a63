package resume

import (
	"errors"
	"fmt"
	"strings"

	"github.com/go-playground/validator/v10"

	"github.com/jonathan/jobuine/internal/timeline"
	"github.com/jonathan/jobuine/internal/types"
)

// Normalize lowercases contact channel names and trims surrounding whitespace
// from the free-text fields. It never rejects a record.
func Normalize(rec *types.ResumeRecord) {
	if rec == nil {
		return
	}

	if rec.Contact != nil {
		contact := make(map[string]string, len(rec.Contact))
		for k, v := range rec.Contact {
			key := strings.ToLower(strings.TrimSpace(k))
			if v = strings.TrimSpace(v); v == "" {
				if _, exists := contact[key]; exists {
					continue
				}
			}
			contact[key] = v
		}
		rec.Contact = contact
	}

	rec.Name = strings.TrimSpace(rec.Name)
	rec.Role = strings.TrimSpace(rec.Role)
	rec.Summary = strings.TrimSpace(rec.Summary)

	for i := range rec.Experiences {
		exp := &rec.Experiences[i]
		exp.Role = strings.TrimSpace(exp.Role)
		exp.Company = strings.TrimSpace(exp.Company)
		exp.Location = strings.TrimSpace(exp.Location)
		exp.Type = strings.TrimSpace(exp.Type)
		exp.WorkType = strings.TrimSpace(exp.WorkType)
	}

	if rec.Education.IsZero() {
		rec.Education = nil
	}
}

var validate = validator.New()

// Check runs the checks required before rendering. The first missing field
// is reported as a MissingFieldError; experience dates that cannot be
// resolved are reported as a timeline.InvalidDateError.
func Check(rec *types.ResumeRecord) error {
	if rec == nil {
		return &MissingFieldError{Field: "record"}
	}

	if err := validate.Struct(rec); err != nil {
		var verrs validator.ValidationErrors
		if errors.As(err, &verrs) && len(verrs) > 0 {
			return &MissingFieldError{Field: fieldPath(verrs[0])}
		}
		return fmt.Errorf("failed to check record: %w", err)
	}

	for i, exp := range rec.Experiences {
		if err := timeline.Validate(exp.Start, exp.End); err != nil {
			return fmt.Errorf("experience %d (%s): %w", i, exp.Role, err)
		}
	}
	return nil
}

// fieldPath turns "ResumeRecord.Experiences[0].Role" into "experiences[0].role".
func fieldPath(fe validator.FieldError) string {
	ns := fe.Namespace()
	if i := strings.Index(ns, "."); i >= 0 {
		ns = ns[i+1:]
	}
	return strings.ToLower(ns)
}
