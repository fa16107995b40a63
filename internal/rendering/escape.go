package rendering

import "strings"

// latexReplacer escapes the characters LaTeX treats specially, plus the
// bullet and middle-dot separators used in company lines.
var latexReplacer = strings.NewReplacer(
	`\`, `\textbackslash{}`,
	`{`, `\{`,
	`}`, `\}`,
	`$`, `\$`,
	`&`, `\&`,
	`%`, `\%`,
	`#`, `\#`,
	`^`, `\textasciicircum{}`,
	`_`, `\_`,
	`~`, `\textasciitilde{}`,
	`•`, `\textbullet{}`,
	`·`, `\textperiodcentered{}`,
)

// EscapeLaTeX escapes special LaTeX characters in text
func EscapeLaTeX(text string) string {
	if text == "" {
		return ""
	}
	return latexReplacer.Replace(text)
}

// escapeLaTeXLines escapes text and turns its line breaks into forced breaks.
func escapeLaTeXLines(text string) string {
	lines := strings.Split(strings.TrimSpace(text), "\n")
	for i, l := range lines {
		lines[i] = EscapeLaTeX(strings.TrimSpace(l))
	}
	return strings.Join(lines, `\\`+"\n")
}
