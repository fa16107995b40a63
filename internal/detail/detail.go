// Package detail turns the free-text "detail" of an experience into renderable
// blocks: either one bullet list or a run of paragraphs.
package detail

import "strings"

// Kind identifies the shape of a Block.
type Kind int

const (
	// Paragraph is a single prose paragraph held in Text.
	Paragraph Kind = iota
	// BulletList is a list whose entries are held in Items.
	BulletList
)

func (k Kind) String() string {
	switch k {
	case Paragraph:
		return "paragraph"
	case BulletList:
		return "bullet_list"
	default:
		return "unknown"
	}
}

// Block is one renderable unit derived from a detail field.
type Block struct {
	Kind  Kind
	Text  string
	Items []string
}

// bulletMarkers are the prefixes that make a line a bullet.
var bulletMarkers = []string{"- ", "• "}

// IsBulletLine reports whether line, once trimmed, starts with a bullet marker.
func IsBulletLine(line string) bool {
	_, ok := stripMarker(strings.TrimSpace(line))
	return ok
}

func stripMarker(line string) (string, bool) {
	for _, m := range bulletMarkers {
		if strings.HasPrefix(line, m) {
			return strings.TrimSpace(line[len(m):]), true
		}
	}
	return line, false
}

// Render classifies text and returns its blocks.
//
// If any line is a bullet the whole field becomes one bullet list; lines
// without a marker are dropped from it. Otherwise the text is split into
// paragraphs on blank lines.
func Render(text string) []Block {
	text = strings.ReplaceAll(text, "\r\n", "\n")
	lines := strings.Split(text, "\n")

	for _, line := range lines {
		if IsBulletLine(line) {
			return bulletBlocks(lines)
		}
	}
	return paragraphBlocks(text)
}

func bulletBlocks(lines []string) []Block {
	items := make([]string, 0, len(lines))
	for _, raw := range lines {
		line := strings.TrimSpace(raw)
		if line == "" {
			continue
		}
		// non-bullet lines inside a bulleted field are intentionally lost
		if item, ok := stripMarker(line); ok {
			items = append(items, item)
		}
	}
	if len(items) == 0 {
		return []Block{}
	}
	return []Block{{Kind: BulletList, Items: items}}
}

// paragraphBlocks splits on blank lines, keeping single newlines inside a
// paragraph. Single newlines are only split on when that yields nothing.
func paragraphBlocks(text string) []Block {
	if blocks := splitParagraphs(text, "\n\n"); len(blocks) > 0 {
		return blocks
	}
	return splitParagraphs(text, "\n")
}

func splitParagraphs(text, sep string) []Block {
	blocks := []Block{}
	for _, chunk := range strings.Split(text, sep) {
		if p := strings.TrimSpace(chunk); p != "" {
			blocks = append(blocks, Block{Kind: Paragraph, Text: p})
		}
	}
	return blocks
}
