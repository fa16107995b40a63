// Package rendering assembles a resume record into an ordered sequence of
// blocks and hands them to a render engine (PDF, LaTeX or Markdown).
package rendering

import (
	"strings"

	"github.com/jonathan/jobuine/internal/detail"
)

// BlockKind identifies what a Block draws.
type BlockKind int

const (
	KindTitle BlockKind = iota
	KindSubtitle
	KindSectionHeading
	KindContactList
	KindParagraph
	KindSkillLine
	KindTwoColumn
	KindCompanyLine
	KindBulletList
	KindSectionRule
	KindDivider
	// KindGroup holds Children that must stay on the same page.
	KindGroup
)

var kindNames = map[BlockKind]string{
	KindTitle:          "title",
	KindSubtitle:       "subtitle",
	KindSectionHeading: "section_heading",
	KindContactList:    "contact_list",
	KindParagraph:      "paragraph",
	KindSkillLine:      "skill_line",
	KindTwoColumn:      "two_column",
	KindCompanyLine:    "company_line",
	KindBulletList:     "bullet_list",
	KindSectionRule:    "section_rule",
	KindDivider:        "divider",
	KindGroup:          "group",
}

func (k BlockKind) String() string {
	if name, ok := kindNames[k]; ok {
		return name
	}
	return "unknown"
}

// Contact is one entry of the contact block.
type Contact struct {
	Channel string
	Label   string
	Text    string
	// Link is empty when the channel has no link target (address).
	Link string
}

// Block is a single renderable unit.
//
// Field use depends on Kind: Label is the bold lead-in of skill and company
// lines, Text is the main or left-hand text, Right the right-aligned column
// of a two-column line, Items the entries of a bullet list.
type Block struct {
	Kind     BlockKind
	Label    string
	Text     string
	Right    string
	Items    []string
	Contacts []Contact
	Children []Block
}

// Plain returns the block's text content without styling.
func (b Block) Plain() string {
	switch b.Kind {
	case KindSkillLine:
		return b.Label + ": " + b.Text
	case KindCompanyLine:
		return joinNonEmpty(", ", b.Label, b.Text)
	case KindTwoColumn:
		return strings.TrimSpace(b.Text + " " + b.Right)
	case KindBulletList:
		return strings.Join(b.Items, "\n")
	case KindContactList:
		lines := make([]string, len(b.Contacts))
		for i, c := range b.Contacts {
			lines[i] = c.Label + ": " + c.Text
		}
		return strings.Join(lines, "\n")
	case KindGroup:
		parts := make([]string, len(b.Children))
		for i, c := range b.Children {
			parts[i] = c.Plain()
		}
		return strings.Join(parts, "\n")
	default:
		return joinNonEmpty(" ", b.Label, b.Text)
	}
}

func joinNonEmpty(sep string, parts ...string) string {
	kept := parts[:0:0]
	for _, p := range parts {
		if p != "" {
			kept = append(kept, p)
		}
	}
	return strings.Join(kept, sep)
}

// fromDetail converts detail blocks into document blocks.
func fromDetail(blocks []detail.Block) []Block {
	out := make([]Block, 0, len(blocks))
	for _, b := range blocks {
		switch b.Kind {
		case detail.BulletList:
			out = append(out, Block{Kind: KindBulletList, Items: b.Items})
		default:
			out = append(out, Block{Kind: KindParagraph, Text: b.Text})
		}
	}
	return out
}

// Document is the ordered block flow of one resume.
type Document struct {
	Title  string
	Blocks []Block
}
