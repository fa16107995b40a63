package rendering

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestEscapeLaTeX(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want string
	}{
		{name: "empty", in: "", want: ""},
		{name: "plain", in: "Backend Engineer", want: "Backend Engineer"},
		{name: "backslash", in: `a\b`, want: `a\textbackslash{}b`},
		{name: "braces", in: "{x}", want: `\{x\}`},
		{name: "money and percent", in: "$1M at 99.9%", want: `\$1M at 99.9\%`},
		{name: "ampersand and hash", in: "R&D #1", want: `R\&D \#1`},
		{name: "caret underscore tilde", in: "x^2_y~", want: `x\textasciicircum{}2\_y\textasciitilde{}`},
		{name: "separators", in: "Berlin · Full-time • Remote", want: `Berlin \textperiodcentered{} Full-time \textbullet{} Remote`},
		{name: "accents pass through", in: "résumé", want: "résumé"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, EscapeLaTeX(tt.in))
		})
	}
}

func TestEscapeLaTeXLines(t *testing.T) {
	got := escapeLaTeXLines(" first 50% \nsecond\n")
	assert.Equal(t, "first 50\\%\\\\\nsecond", got)
}
