package types

import (
	"bytes"
	"encoding/json"
	"strings"
)

// OngoingMarker is the word that marks an end date as still current.
const OngoingMarker = "present"

// ResumeRecord is one cv_data document: the profile rendered into a single resume.
type ResumeRecord struct {
	Name        string            `json:"name"`
	Role        string            `json:"role"`
	Contact     map[string]string `json:"contact,omitempty"`
	Summary     string            `json:"summary"`
	CoreSkills  []SkillGroup      `json:"coreSkills,omitempty"`
	Experiences []ExperienceEntry `json:"experiences,omitempty" validate:"dive"`
	Education   *EducationEntry   `json:"education,omitempty"`
	Languages   []Language        `json:"languages,omitempty"`

	// ApplyDetail is read by the ledger, not by the renderer.
	ApplyDetail *ApplyDetail `json:"applyDetail,omitempty"`
}

// SkillGroup is one "<category>: skill, skill" line of the skills section
type SkillGroup struct {
	Category string   `json:"category"`
	Skills   []string `json:"skills"`
}

// ExperienceEntry is a single position held.
type ExperienceEntry struct {
	Role     string   `json:"role" validate:"required"`
	Company  string   `json:"company"`
	Location string   `json:"location"`
	Type     string   `json:"type"`
	WorkType string   `json:"workType"`
	Start    DatePart `json:"start"`
	End      DatePart `json:"end"`
	Detail   string   `json:"detail"`
}

// EducationEntry describes the highest degree listed on the resume.
type EducationEntry struct {
	Grade      string   `json:"grade"`
	University string   `json:"university"`
	Start      DatePart `json:"start"`
	End        DatePart `json:"end"`
}

// IsZero reports whether the entry carries no data at all.
func (e *EducationEntry) IsZero() bool {
	if e == nil {
		return true
	}
	return strings.TrimSpace(e.Grade) == "" && strings.TrimSpace(e.University) == "" &&
		e.Start.IsZero() && e.End.IsZero()
}

// Language is a spoken language and proficiency level.
type Language struct {
	Language string `json:"language"`
	Level    string `json:"level"`
}

// DatePart is a year/month pair as written in cv_data files.
//
// In JSON it is either an object {"year": 2020, "month": 3} (numbers or
// strings), a bare string such as "Present" which is kept in Raw, or absent.
type DatePart struct {
	Year  Text `json:"year,omitempty"`
	Month Text `json:"month,omitempty"`
	Raw   Text `json:"-"`
}

// UnmarshalJSON implements json.Unmarshaler.
func (d *DatePart) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	*d = DatePart{}
	if len(data) == 0 || bytes.Equal(data, []byte("null")) {
		return nil
	}

	if data[0] != '{' {
		return d.Raw.UnmarshalJSON(data)
	}

	var obj struct {
		Year  Text `json:"year"`
		Month Text `json:"month"`
	}
	if err := json.Unmarshal(data, &obj); err != nil {
		return err
	}
	d.Year = obj.Year
	d.Month = obj.Month
	return nil
}

// MarshalJSON implements json.Marshaler.
func (d DatePart) MarshalJSON() ([]byte, error) {
	if !d.Raw.IsEmpty() {
		return json.Marshal(d.Raw.String())
	}
	if d.Year.IsEmpty() && d.Month.IsEmpty() {
		return []byte("null"), nil
	}
	return json.Marshal(map[string]string{"year": d.Year.String(), "month": d.Month.String()})
}

// IsZero reports whether no part of the date is set.
func (d DatePart) IsZero() bool {
	return d.Year.IsEmpty() && d.Month.IsEmpty() && d.Raw.IsEmpty()
}

// IsOngoing reports whether the date is the "present" sentinel.
func (d DatePart) IsOngoing() bool {
	s := strings.ToLower(string(d.Raw) + " " + string(d.Year) + " " + string(d.Month))
	return strings.Contains(s, OngoingMarker)
}
