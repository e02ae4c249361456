package catalog

import (
	"bytes"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRead(t *testing.T) {
	input := "IE_NAME;IC_GROUP2;IE_PREVIEW_TEXT\n" +
		"Версия 7.1.1.;ЛБ 7.2;\"<ul><li>a; b</li></ul>\"\n" +
		"Версия 6.3.6.;ЛБ 6.1 Pro CM3;text with \"quote\n"

	tbl, err := Read(strings.NewReader(input), CSVOptions{})
	require.NoError(t, err)

	want := &Table{
		Header: []string{"IE_NAME", "IC_GROUP2", "IE_PREVIEW_TEXT"},
		Rows: []Row{
			{"IE_NAME": "Версия 7.1.1.", "IC_GROUP2": "ЛБ 7.2", "IE_PREVIEW_TEXT": "<ul><li>a; b</li></ul>"},
			{"IE_NAME": "Версия 6.3.6.", "IC_GROUP2": "ЛБ 6.1 Pro CM3", "IE_PREVIEW_TEXT": `text with "quote`},
		},
	}
	if diff := cmp.Diff(want, tbl); diff != "" {
		t.Errorf("Read() mismatch (-want +got):\n%s", diff)
	}
}

func TestRead_Errors(t *testing.T) {
	tests := map[string]struct {
		input   string
		wantRow int
	}{
		"short row":  {input: "A;B\n1;2\n3\n", wantRow: 3},
		"long row":   {input: "A;B\n1;2;3\n", wantRow: 2},
	}

	for name, tt := range tests {
		t.Run(name, func(t *testing.T) {
			_, err := Read(strings.NewReader(tt.input), CSVOptions{})
			var re *RowError
			require.ErrorAs(t, err, &re)
			assert.Equal(t, tt.wantRow, re.Row)
		})
	}
}

func TestRead_Empty(t *testing.T) {
	tbl, err := Read(strings.NewReader(""), CSVOptions{})
	require.NoError(t, err)
	assert.Empty(t, tbl.Header)
	assert.Empty(t, tbl.Rows)
}

func TestWrite(t *testing.T) {
	var buf bytes.Buffer
	rows := []Row{
		{"A": "1", "B": "x;y", "C": "ignored"},
		{"A": "2"},
	}
	require.NoError(t, Write(&buf, []string{"A", "B"}, rows, CSVOptions{}))
	assert.Equal(t, "A;B\n1;\"x;y\"\n2;\n", buf.String())
}

func TestWrite_CRLF(t *testing.T) {
	var buf bytes.Buffer
	rows := []Row{{"A": "1", "B": "2"}}
	require.NoError(t, Write(&buf, []string{"A", "B"}, rows, CSVOptions{CRLF: true}))
	assert.Equal(t, "A;B\r\n1;2\r\n", buf.String())
}

func TestWrite_ReadBack(t *testing.T) {
	rows := []Row{{"A": "<ul><li>Исправлено</li></ul>", "B": "005"}}
	opts := CSVOptions{Delimiter: '\t'}

	var buf bytes.Buffer
	require.NoError(t, Write(&buf, []string{"A", "B"}, rows, opts))

	tbl, err := Read(&buf, opts)
	require.NoError(t, err)
	if diff := cmp.Diff(rows, tbl.Rows); diff != "" {
		t.Errorf("rows mismatch (-want +got):\n%s", diff)
	}
}

func TestParseDelimiter(t *testing.T) {
	tests := map[string]struct {
		in      string
		want    rune
		wantErr bool
	}{
		"empty uses default": {in: "", want: ';'},
		"comma":              {in: ",", want: ','},
		"escaped tab":        {in: `\t`, want: '\t'},
		"multibyte rune":     {in: "¦", want: '¦'},
		"two characters":     {in: ";;", wantErr: true},
	}

	for name, tt := range tests {
		t.Run(name, func(t *testing.T) {
			got, err := ParseDelimiter(tt.in)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}
