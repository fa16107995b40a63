package rendering

import (
	"bytes"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMarkdownEngine_Document(t *testing.T) {
	doc, err := NewAssembler(WithClock(fixedClock)).Assemble(sampleRecord())
	require.NoError(t, err)

	engine := NewMarkdownEngine()
	require.NoError(t, Render(doc, engine))
	out := engine.String()

	assert.True(t, strings.HasPrefix(out, "# Jane Doe\n\n**Backend Engineer**\n\n"))
	assert.Contains(t, out, "- Email: [jane@example.com](mailto:jane@example.com)\n")
	assert.Contains(t, out, "## Experience\n")
	assert.Contains(t, out, "**Senior Engineer** | 2023/8 - Present (2 yrs 2 mos)\n")
	assert.Contains(t, out, "- Led the migration\n- Cut latency\n")
	assert.Contains(t, out, "**Initech**\n")
	assert.Equal(t, 1, strings.Count(out, "* * *"))

	// headings appear in document order
	last := -1
	for _, h := range []string{"## Summary", "## Skills", "## Experience", "## Education", "## Languages"} {
		idx := strings.Index(out, h)
		require.GreaterOrEqual(t, idx, 0, h)
		assert.Greater(t, idx, last, h)
		last = idx
	}
}

func TestMarkdownEngine_Escapes(t *testing.T) {
	engine := NewMarkdownEngine()
	require.NoError(t, engine.AppendBlock(Block{Kind: KindParagraph, Text: "snake_case *bold* [x]"}))
	assert.Equal(t, "snake\\_case \\*bold\\* \\[x\\]\n\n", engine.String())
}

func TestMarkdownEngine_WriteTo(t *testing.T) {
	engine := NewMarkdownEngine()
	require.NoError(t, engine.AppendBlock(Block{Kind: KindSectionHeading, Text: "Skills"}))

	var buf bytes.Buffer
	n, err := engine.WriteTo(&buf)
	require.NoError(t, err)
	assert.Equal(t, int64(buf.Len()), n)
	assert.Equal(t, "## Skills\n\n", buf.String())
}

func TestMarkdownEngine_EmptyBoldTextIsSkipped(t *testing.T) {
	tests := []struct {
		name  string
		block Block
		want  string
	}{
		{name: "empty subtitle", block: Block{Kind: KindSubtitle}, want: ""},
		{name: "empty skill category", block: Block{Kind: KindSkillLine, Text: "Go, SQL"}, want: "Go, SQL\n\n"},
		{name: "empty company", block: Block{Kind: KindCompanyLine, Text: "Berlin"}, want: "Berlin\n\n"},
		{name: "empty role", block: Block{Kind: KindTwoColumn, Right: "2020/1 - 2021/1"}, want: "2020/1 - 2021/1\n\n"},
		{name: "skill line", block: Block{Kind: KindSkillLine, Label: "Languages", Text: "Go"}, want: "**Languages:** Go\n\n"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			engine := NewMarkdownEngine()
			require.NoError(t, engine.AppendBlock(tt.block))
			assert.Equal(t, tt.want, engine.String())
			assert.NotContains(t, engine.String(), "****")
		})
	}
}
