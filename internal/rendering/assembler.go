package rendering

import (
	"fmt"
	"strings"
	"time"

	"github.com/jonathan/jobuine/internal/detail"
	"github.com/jonathan/jobuine/internal/resume"
	"github.com/jonathan/jobuine/internal/timeline"
	"github.com/jonathan/jobuine/internal/types"
)

// Section headings
const (
	SectionSummary    = "Summary"
	SectionSkills     = "Skills"
	SectionExperience = "Experience"
	SectionEducation  = "Education"
	SectionLanguages  = "Languages"
)

// Assembler builds the block flow of a resume.
type Assembler struct {
	now func() time.Time
}

// Option configures an Assembler.
type Option func(*Assembler)

// WithClock sets the clock used to measure ongoing positions.
func WithClock(now func() time.Time) Option {
	return func(a *Assembler) {
		a.now = now
	}
}

// NewAssembler creates an Assembler.
func NewAssembler(opts ...Option) *Assembler {
	a := &Assembler{now: time.Now}
	for _, opt := range opts {
		opt(a)
	}
	return a
}

// Assemble returns the ordered blocks for rec. Experience, education and
// languages sections are left out when the record has none.
func (a *Assembler) Assemble(rec *types.ResumeRecord) (*Document, error) {
	if err := resume.Check(rec); err != nil {
		return nil, err
	}

	doc := &Document{Title: rec.Name}
	add := func(blocks ...Block) {
		doc.Blocks = append(doc.Blocks, blocks...)
	}

	add(Block{Kind: KindTitle, Text: rec.Name}, Block{Kind: KindSubtitle, Text: rec.Role})
	if contacts := buildContacts(rec.Contact); len(contacts) > 0 {
		add(Block{Kind: KindContactList, Contacts: contacts})
	}

	add(section(SectionSummary)...)
	add(Block{Kind: KindParagraph, Text: rec.Summary})

	add(section(SectionSkills)...)
	for _, group := range rec.CoreSkills {
		add(Block{Kind: KindSkillLine, Label: group.Category, Text: strings.Join(group.Skills, ", ")})
	}

	if len(rec.Experiences) > 0 {
		add(section(SectionExperience)...)
		for i, exp := range rec.Experiences {
			group, err := a.experience(exp)
			if err != nil {
				return nil, fmt.Errorf("experience %d (%s): %w", i, exp.Role, err)
			}
			add(group)
			if i < len(rec.Experiences)-1 {
				add(Block{Kind: KindDivider})
			}
		}
	}

	if rec.Education != nil && !rec.Education.IsZero() {
		add(section(SectionEducation)...)
		add(education(rec.Education)...)
	}

	if len(rec.Languages) > 0 {
		add(section(SectionLanguages)...)
		for _, lang := range rec.Languages {
			add(Block{Kind: KindParagraph, Text: lang.Language + ": " + lang.Level})
		}
	}

	add(Block{Kind: KindSectionRule})
	return doc, nil
}

func section(title string) []Block {
	return []Block{{Kind: KindSectionRule}, {Kind: KindSectionHeading, Text: title}}
}

// experience builds the keep-together group for one position.
func (a *Assembler) experience(exp types.ExperienceEntry) (Block, error) {
	duration, err := timeline.ComputeDuration(exp.Start, exp.End, a.now())
	if err != nil {
		return Block{}, err
	}

	right := fmt.Sprintf("%s (%s)", timeline.FormatRange(exp.Start, exp.End), duration)
	children := []Block{
		{Kind: KindTwoColumn, Text: exp.Role, Right: strings.TrimSpace(right)},
		{Kind: KindCompanyLine, Label: exp.Company, Text: companyTail(exp)},
	}
	children = append(children, fromDetail(detail.Render(exp.Detail))...)

	return Block{Kind: KindGroup, Children: children}, nil
}

// companyTail renders "location · type · workType", skipping empty parts.
func companyTail(exp types.ExperienceEntry) string {
	var rest []string
	for _, p := range []string{exp.Type, exp.WorkType} {
		if p != "" {
			rest = append(rest, p)
		}
	}

	tail := strings.Join(rest, " · ")
	switch {
	case exp.Location == "":
		return tail
	case tail == "":
		return exp.Location
	default:
		return exp.Location + " · " + tail
	}
}

func education(edu *types.EducationEntry) []Block {
	var header Block
	if r := timeline.FormatRange(edu.Start, edu.End); r != "" {
		header = Block{Kind: KindTwoColumn, Text: edu.Grade, Right: r}
	} else {
		header = Block{Kind: KindParagraph, Label: edu.Grade}
	}
	return []Block{header, {Kind: KindParagraph, Text: edu.University}}
}
