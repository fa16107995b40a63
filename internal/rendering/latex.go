package rendering

import (
	"embed"
	"fmt"
	"io"
	"os"
	"strings"
	"text/template"
)

//go:embed templates/resume.tex.tmpl
var templateFiles embed.FS

const defaultTemplate = "templates/resume.tex.tmpl"

// TemplateData is the data passed to the LaTeX document template
type TemplateData struct {
	Title string
	Body  string
}

// LaTeXEngine renders blocks as a LaTeX source file.
type LaTeXEngine struct {
	tmpl  *template.Template
	title string
	body  strings.Builder
}

// LaTeXOption configures a LaTeXEngine.
type LaTeXOption func(*latexOptions)

type latexOptions struct {
	templatePath string
}

// WithTemplateFile replaces the embedded document template.
func WithTemplateFile(path string) LaTeXOption {
	return func(o *latexOptions) {
		o.templatePath = path
	}
}

// NewLaTeXEngine creates a LaTeXEngine.
func NewLaTeXEngine(opts ...LaTeXOption) (*LaTeXEngine, error) {
	var o latexOptions
	for _, opt := range opts {
		opt(&o)
	}

	var (
		tmpl *template.Template
		err  error
	)
	if o.templatePath != "" {
		tmpl, err = parseTemplate(o.templatePath)
	} else {
		tmpl, err = parseEmbeddedTemplate()
	}
	if err != nil {
		return nil, err
	}
	return &LaTeXEngine{tmpl: tmpl}, nil
}

// parseTemplate reads and parses a LaTeX template file
func parseTemplate(templatePath string) (*template.Template, error) {
	content, err := os.ReadFile(templatePath)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, &TemplateError{
				Message: fmt.Sprintf("template file not found: %s", templatePath),
				Cause:   err,
			}
		}
		return nil, &TemplateError{
			Message: fmt.Sprintf("failed to read template file: %s", templatePath),
			Cause:   err,
		}
	}
	return newTemplate(string(content))
}

func parseEmbeddedTemplate() (*template.Template, error) {
	content, err := templateFiles.ReadFile(defaultTemplate)
	if err != nil {
		return nil, &TemplateError{Message: "failed to read embedded template", Cause: err}
	}
	return newTemplate(string(content))
}

func newTemplate(content string) (*template.Template, error) {
	tmpl, err := template.New("resume").Funcs(template.FuncMap{
		"escape": EscapeLaTeX,
	}).Parse(content)
	if err != nil {
		return nil, &TemplateError{
			Message: "failed to parse template",
			Cause:   err,
		}
	}
	return tmpl, nil
}

// AppendBlock implements Engine.
func (e *LaTeXEngine) AppendBlock(b Block) error {
	if b.Kind == KindTitle && e.title == "" {
		e.title = b.Text
	}
	return e.writeBlock(&e.body, b)
}

func (e *LaTeXEngine) writeBlock(sb *strings.Builder, b Block) error {
	switch b.Kind {
	case KindTitle:
		fmt.Fprintf(sb, "{\\fontsize{22}{26}\\selectfont\\bfseries %s}\\par\\smallskip\n", EscapeLaTeX(b.Text))
	case KindSubtitle:
		fmt.Fprintf(sb, "{\\large\\bfseries %s}\\par\\medskip\n", EscapeLaTeX(b.Text))
	case KindSectionHeading:
		fmt.Fprintf(sb, "{\\Large\\bfseries %s}\\par\\smallskip\n", EscapeLaTeX(b.Text))
	case KindContactList:
		lines := make([]string, len(b.Contacts))
		for i, c := range b.Contacts {
			text := EscapeLaTeX(c.Text)
			if c.Link != "" {
				text = fmt.Sprintf("\\href{%s}{%s}", escapeURL(c.Link), text)
			}
			lines[i] = EscapeLaTeX(c.Label) + ": " + text
		}
		fmt.Fprintf(sb, "{\\small %s}\\par\n", strings.Join(lines, "\\\\\n"))
	case KindParagraph:
		if b.Label != "" {
			fmt.Fprintf(sb, "\\textbf{%s} ", EscapeLaTeX(b.Label))
		}
		fmt.Fprintf(sb, "%s\\par\n", escapeLaTeXLines(b.Text))
	case KindSkillLine:
		fmt.Fprintf(sb, "\\textbf{%s:} %s\\par\n", EscapeLaTeX(b.Label), EscapeLaTeX(b.Text))
	case KindTwoColumn:
		fmt.Fprintf(sb, "\\textbf{%s}\\hfill\\textbf{%s}\\par\n", EscapeLaTeX(b.Text), EscapeLaTeX(b.Right))
	case KindCompanyLine:
		fmt.Fprintf(sb, "\\textbf{%s}", EscapeLaTeX(b.Label))
		if b.Text != "" {
			fmt.Fprintf(sb, ", %s", EscapeLaTeX(b.Text))
		}
		sb.WriteString("\\par\\vspace{3pt}\n")
	case KindBulletList:
		if len(b.Items) == 0 {
			return nil
		}
		sb.WriteString("\\begin{itemize}[leftmargin=16pt,itemsep=1pt,topsep=2pt,label={\\color{bulletgray}\\textbullet}]\n")
		for _, item := range b.Items {
			fmt.Fprintf(sb, "  \\item %s\n", EscapeLaTeX(item))
		}
		sb.WriteString("\\end{itemize}\n")
	case KindSectionRule:
		sb.WriteString("\\vspace{10pt}{\\color{rulegray}\\rule{\\linewidth}{0.8pt}}\\par\\vspace{10pt}\n")
	case KindDivider:
		sb.WriteString("\\vspace{6pt}{\\color{rulegray}\\rule{\\linewidth}{0.5pt}}\\par\\vspace{6pt}\n")
	case KindGroup:
		// a minipage is never split across pages
		sb.WriteString("\\noindent\\begin{minipage}{\\linewidth}\n")
		for _, child := range b.Children {
			if err := e.writeBlock(sb, child); err != nil {
				return err
			}
		}
		sb.WriteString("\\end{minipage}\\par\n")
	default:
		return fmt.Errorf("unsupported block kind %s", b.Kind)
	}
	return nil
}

// escapeURL escapes the characters hyperref cannot take verbatim.
func escapeURL(u string) string {
	return strings.NewReplacer(`%`, `\%`, `#`, `\#`, `\`, ``).Replace(u)
}

// WriteTo executes the document template and writes the LaTeX source.
func (e *LaTeXEngine) WriteTo(w io.Writer) (int64, error) {
	cw := &countingWriter{w: w}
	err := e.tmpl.Execute(cw, TemplateData{Title: e.title, Body: e.body.String()})
	if err != nil {
		return cw.n, &TemplateError{
			Message: "failed to execute template",
			Cause:   err,
		}
	}
	return cw.n, nil
}
