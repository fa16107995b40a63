package rendering

import (
	"fmt"
	"io"
	"strings"
)

// MarkdownEngine renders blocks as Markdown for terminal previews.
type MarkdownEngine struct {
	sb strings.Builder
}

// NewMarkdownEngine creates a MarkdownEngine.
func NewMarkdownEngine() *MarkdownEngine {
	return &MarkdownEngine{}
}

var markdownEscaper = strings.NewReplacer(`*`, `\*`, `_`, `\_`, "`", "\\`", `[`, `\[`, `]`, `\]`)

func escapeMarkdown(s string) string {
	return markdownEscaper.Replace(s)
}

// AppendBlock implements Engine.
func (e *MarkdownEngine) AppendBlock(b Block) error {
	return e.write(b)
}

func (e *MarkdownEngine) write(b Block) error {
	sb := &e.sb
	switch b.Kind {
	case KindTitle:
		fmt.Fprintf(sb, "# %s\n\n", escapeMarkdown(b.Text))
	case KindSubtitle:
		writeLine(sb, strong(b.Text))
	case KindSectionHeading:
		fmt.Fprintf(sb, "## %s\n\n", escapeMarkdown(b.Text))
	case KindContactList:
		for _, c := range b.Contacts {
			text := escapeMarkdown(c.Text)
			if c.Link != "" {
				text = fmt.Sprintf("[%s](%s)", text, c.Link)
			}
			fmt.Fprintf(sb, "- %s: %s\n", c.Label, text)
		}
		sb.WriteString("\n")
	case KindParagraph:
		writeLine(sb, joinNonEmpty(" ", strong(b.Label), escapeMarkdown(b.Text)))
	case KindSkillLine:
		label := ""
		if b.Label != "" {
			label = strong(b.Label + ":")
		}
		writeLine(sb, joinNonEmpty(" ", label, escapeMarkdown(b.Text)))
	case KindTwoColumn:
		writeLine(sb, joinNonEmpty(" | ", strong(b.Text), escapeMarkdown(b.Right)))
	case KindCompanyLine:
		writeLine(sb, joinNonEmpty(", ", strong(b.Label), escapeMarkdown(b.Text)))
	case KindBulletList:
		for _, item := range b.Items {
			fmt.Fprintf(sb, "- %s\n", escapeMarkdown(item))
		}
		sb.WriteString("\n")
	case KindSectionRule:
		sb.WriteString("---\n\n")
	case KindDivider:
		sb.WriteString("* * *\n\n")
	case KindGroup:
		for _, child := range b.Children {
			if err := e.write(child); err != nil {
				return err
			}
		}
	default:
		return fmt.Errorf("unsupported block kind %s", b.Kind)
	}
	return nil
}

// String returns the Markdown rendered so far.
func (e *MarkdownEngine) String() string {
	return e.sb.String()
}

// WriteTo writes the Markdown document.
func (e *MarkdownEngine) WriteTo(w io.Writer) (int64, error) {
	n, err := io.WriteString(w, e.sb.String())
	return int64(n), err
}

// strong bolds s. Empty text yields "" since "****" reads as a thematic break.
func strong(s string) string {
	if s == "" {
		return ""
	}
	return "**" + escapeMarkdown(s) + "**"
}

// writeLine writes a paragraph, skipping it when there is no text.
func writeLine(sb *strings.Builder, text string) {
	if text != "" {
		sb.WriteString(text + "\n\n")
	}
}
