package resume

import (
	"errors"
	"strconv"
	"testing"

	"github.com/jonathan/jobuine/internal/timeline"
	"github.com/jonathan/jobuine/internal/types"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNormalize_ContactKeys(t *testing.T) {
	rec := &types.ResumeRecord{
		Contact: map[string]string{
			"LinkedIn": " janedoe ",
			"Phone":    "",
		},
	}

	Normalize(rec)

	assert.Equal(t, "janedoe", rec.Contact["linkedin"])
	v, ok := rec.Contact["phone"]
	assert.True(t, ok)
	assert.Empty(t, v)
}

func TestNormalize_Nil(t *testing.T) {
	assert.NotPanics(t, func() { Normalize(nil) })
}

func TestCheck_Valid(t *testing.T) {
	rec := &types.ResumeRecord{
		Experiences: []types.ExperienceEntry{{Role: "Engineer", Start: ym(2020, 1)}},
	}
	assert.NoError(t, Check(rec))
	assert.NoError(t, Check(&types.ResumeRecord{}))
}

func TestCheck_MissingRole(t *testing.T) {
	rec := &types.ResumeRecord{
		Experiences: []types.ExperienceEntry{
			{Role: "Engineer"},
			{Company: "Acme"},
		},
	}

	err := Check(rec)
	require.Error(t, err)

	var missing *MissingFieldError
	require.True(t, errors.As(err, &missing))
	assert.Equal(t, "experiences[1].role", missing.Field)
	assert.Equal(t, "missing field: experiences[1].role", err.Error())
}

func TestCheck_NilRecord(t *testing.T) {
	var missing *MissingFieldError
	assert.True(t, errors.As(Check(nil), &missing))
}

func TestCheck_InvalidDates(t *testing.T) {
	tests := []struct {
		name  string
		exp   types.ExperienceEntry
		field string
	}{
		{name: "missing start", exp: types.ExperienceEntry{Role: "Engineer"}, field: "start.year"},
		{name: "month out of range", exp: types.ExperienceEntry{Role: "Engineer", Start: ym(2020, 13)}, field: "start.month"},
		{name: "bad end", exp: types.ExperienceEntry{Role: "Engineer", Start: ym(2020, 1), End: types.DatePart{Year: "2021"}}, field: "end.month"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := &types.ResumeRecord{
				Experiences: []types.ExperienceEntry{
					{Role: "Lead", Start: ym(2022, 5), End: present()},
					tt.exp,
				},
			}

			err := Check(rec)
			require.Error(t, err)

			var dateErr *timeline.InvalidDateError
			require.True(t, errors.As(err, &dateErr))
			assert.Equal(t, tt.field, dateErr.Field)
			assert.Contains(t, err.Error(), "experience 1 (Engineer)")
		})
	}
}

// ym builds a DatePart from integers.
func ym(year, month int) types.DatePart {
	return types.DatePart{Year: types.Text(strconv.Itoa(year)), Month: types.Text(strconv.Itoa(month))}
}

// present is the ongoing end date as cv_data files write it.
func present() types.DatePart {
	return types.DatePart{Raw: "Present"}
}
