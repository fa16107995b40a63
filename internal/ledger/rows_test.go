package ledger

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jonathan/jobuine/internal/types"
)

func TestFormatApplyDateTime(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want string
	}{
		{name: "zulu", in: "2025-10-12T19:15:00Z", want: "Sun Oct 12 2025 19:15"},
		{name: "milliseconds", in: "2025-10-12T19:15:42.123Z", want: "Sun Oct 12 2025 19:15"},
		{name: "offset kept", in: "2025-10-12T19:15:00+02:00", want: "Sun Oct 12 2025 19:15"},
		{name: "no zone", in: "2025-10-12T08:05:00", want: "Sun Oct 12 2025 08:05"},
		{name: "space separated", in: "2025-10-12 08:05", want: "Sun Oct 12 2025 08:05"},
		{name: "date only", in: "2025-10-12", want: "Sun Oct 12 2025 00:00"},
		{name: "unparsable kept", in: "yesterday evening", want: "yesterday evening"},
		{name: "empty", in: "", want: ""},
		{name: "whitespace", in: "  ", want: ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, FormatApplyDateTime(tt.in))
		})
	}
}

func TestRowFromDetail(t *testing.T) {
	row := RowFromDetail("apl_Acme", &types.ApplyDetail{
		Role:          "Engineer",
		Company:       "Acme",
		Salary:        "120000",
		ApplyDateTime: "2025-10-12T19:15:00Z",
	})

	assert.Equal(t, []string{"apl_Acme", "Engineer", "Acme", "", "", "120000", "", "", "", "Sun Oct 12 2025 19:15"}, row.Values())
	assert.False(t, row.IsEmpty())
	assert.True(t, RowFromDetail("apl_Acme", nil).IsEmpty())
	assert.Len(t, row.Values(), len(Header))
}

func TestAppendRow_SkipsEmpty(t *testing.T) {
	s, _ := openTemp(t)

	ok, err := s.AppendRow(Row{Dir: "apl_Acme"})
	require.NoError(t, err)
	assert.False(t, ok)
	assert.Equal(t, 1, s.Len())
}

func TestAppendRows_EmptyDetailAddsNothing(t *testing.T) {
	s, _ := openTemp(t)
	dir := t.TempDir()
	writeJSON(t, dir, "cv_data.json", `{"name": "Jane", "applyDetail": {}}`)

	added, err := s.AppendRows(dir)
	require.NoError(t, err)
	assert.Equal(t, 0, added)
	assert.Equal(t, 1, s.Len())
}

func TestAppendRows_SingleFieldAddsOneRow(t *testing.T) {
	s, _ := openTemp(t)
	dir := t.TempDir()
	writeJSON(t, dir, "cv_data.json", `{"applyDetail": {"status": "applied"}}`)

	added, err := s.AppendRows(dir)
	require.NoError(t, err)
	assert.Equal(t, 1, added)

	rows, err := s.Rows()
	require.NoError(t, err)
	require.Len(t, rows, 2)
	assert.Equal(t, "applied", rows[1][8])
}

func TestAppendRows_SkipsBadFilesAndKeepsOrder(t *testing.T) {
	s, _ := openTemp(t)
	dir := t.TempDir()
	writeJSON(t, dir, "b.json", `{"applyDetail": {"company": "Beta", "applyDateTime": "2025-10-12T09:00:00Z"}}`)
	writeJSON(t, dir, "a.json", `{"applyDetail": {"company": "Alpha", "salary": 90000}}`)
	writeJSON(t, dir, "c.json", `{not json`)
	writeJSON(t, dir, "d.json", `{"name": "no detail"}`)
	writeJSON(t, dir, "notes.txt", `ignored`)

	added, err := s.AppendRows(dir)
	require.NoError(t, err)
	assert.Equal(t, 2, added)

	rows, err := s.Rows()
	require.NoError(t, err)
	require.Len(t, rows, 3)
	assert.Equal(t, "Alpha", rows[1][2])
	assert.Equal(t, "90000", rows[1][5])
	assert.Equal(t, "Beta", rows[2][2])
	assert.Equal(t, "Sun Oct 12 2025 09:00", rows[2][9])
}

func TestAppendRows_MissingDirectory(t *testing.T) {
	s, _ := openTemp(t)
	_, err := s.AppendRows("/nonexistent/apl_Acme")
	require.Error(t, err)
	var storeErr *StoreError
	assert.ErrorAs(t, err, &storeErr)
}
