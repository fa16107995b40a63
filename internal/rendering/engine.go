package rendering

import (
	"fmt"
	"io"
	"strings"
)

// Engine lays out blocks appended in order and writes the finished artifact.
type Engine interface {
	AppendBlock(b Block) error
	io.WriterTo
}

// Format names an output format.
type Format string

const (
	FormatPDF      Format = "pdf"
	FormatLaTeX    Format = "latex"
	FormatMarkdown Format = "markdown"
)

// ParseFormat parses a format name; the empty string means PDF.
func ParseFormat(s string) (Format, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "pdf":
		return FormatPDF, nil
	case "latex", "tex":
		return FormatLaTeX, nil
	case "markdown", "md":
		return FormatMarkdown, nil
	default:
		return "", fmt.Errorf("unknown render format: %q", s)
	}
}

// Extension returns the file extension of artifacts in format f.
func (f Format) Extension() string {
	switch f {
	case FormatLaTeX:
		return ".tex"
	case FormatMarkdown:
		return ".md"
	default:
		return ".pdf"
	}
}

// NewEngine returns a fresh engine for format f. LaTeX options are ignored
// by the other formats.
func NewEngine(f Format, opts ...LaTeXOption) (Engine, error) {
	switch f {
	case FormatPDF:
		return NewPDFEngine(), nil
	case FormatLaTeX:
		e, err := NewLaTeXEngine(opts...)
		if err != nil {
			return nil, err
		}
		return e, nil
	case FormatMarkdown:
		return NewMarkdownEngine(), nil
	default:
		return nil, &RenderError{Message: fmt.Sprintf("no engine for format %q", f)}
	}
}

// Render appends every block of doc to e.
func Render(doc *Document, e Engine) error {
	for i, b := range doc.Blocks {
		if err := e.AppendBlock(b); err != nil {
			return &RenderError{
				Message: fmt.Sprintf("failed to append block %d (%s)", i, b.Kind),
				Cause:   err,
			}
		}
	}
	return nil
}

// countingWriter counts bytes for io.WriterTo implementations.
type countingWriter struct {
	w io.Writer
	n int64
}

func (c *countingWriter) Write(p []byte) (int, error) {
	n, err := c.w.Write(p)
	c.n += int64(n)
	return n, err
}
