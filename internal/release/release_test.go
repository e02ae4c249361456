package release

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/liftblock/fwrelease/internal/catalog"
	"github.com/liftblock/fwrelease/internal/changelog"
	"github.com/liftblock/fwrelease/internal/tables"
)

func newTestEngine() *Engine {
	t := tables.Default()
	return NewEngine(catalog.NewMatcher(catalog.DefaultColumns(), t))
}

func parse(t *testing.T, text string) *changelog.Document {
	t.Helper()
	doc, err := changelog.ParseReader(strings.NewReader(text), tables.Default())
	require.NoError(t, err)
	return doc
}

func catalogRow(name, category, model, xmlID, sort, path string) catalog.Row {
	return catalog.Row{
		"IE_NAME":         name,
		"IC_GROUP2":       category,
		"IC_GROUP1":       model,
		"IC_GROUP0":       "Прошивки",
		"IE_XML_ID":       xmlID,
		"IE_SORT":         sort,
		"IP_PROP23":       path,
		"IP_PROP12":       "01.01.2020",
		"IE_PREVIEW_TEXT": "<ul><li>old</li></ul>",
	}
}

func TestMerge_EndToEnd(t *testing.T) {
	doc := parse(t, "ЛБv7 Общая часть\nВерсия 7.1.2 от 05.06.20.\n- fix A\n- fix B\n")
	rows := []catalog.Row{
		catalogRow("Версия 7.1.1.", "ЛБ 7.2", "OTIS", "lb7_otis_711", "100", "/fw/otis_711.bin"),
	}

	res, err := newTestEngine().Merge(doc, rows)
	require.NoError(t, err)
	require.Len(t, res.Rows, 1)
	assert.Empty(t, res.Unmatched)

	assert.Equal(t, catalog.Row{
		"IE_XML_ID":       "lb7_otis_712",
		"IE_NAME":         "Версия 7.1.2.",
		"IE_PREVIEW_TEXT": "<ul><li>fix A</li><li>fix B</li></ul>",
		"IE_SORT":         "102",
		"IP_PROP12":       "05.06.2020",
		"IP_PROP23":       "/fw/otis_712.bin",
		"IC_GROUP0":       "Прошивки",
		"IC_GROUP1":       "OTIS",
		"IC_GROUP2":       "ЛБ 7.2",
	}, res.Rows[0])

	// The source row is not modified.
	assert.Equal(t, "Версия 7.1.1.", rows[0]["IE_NAME"])
}

func TestMerge_HierarchyDoesNotUndoRewrite(t *testing.T) {
	cols := catalog.DefaultColumns()
	cols.Hierarchy = append(cols.Hierarchy, "IE_NAME", "IE_SORT")
	engine := NewEngine(catalog.NewMatcher(cols, tables.Default()))

	doc := parse(t, "ЛБv7 Общая часть\nВерсия 7.1.2 от 05.06.20.\n- fix A\n")
	rows := []catalog.Row{
		catalogRow("Версия 7.1.1.", "ЛБ 7.2", "OTIS", "lb7_otis_711", "100", "/fw/otis_711.bin"),
	}

	res, err := engine.Merge(doc, rows)
	require.NoError(t, err)
	require.Len(t, res.Rows, 1)
	assert.Equal(t, "Версия 7.1.2.", res.Rows[0]["IE_NAME"])
	assert.Equal(t, "102", res.Rows[0]["IE_SORT"])
	assert.Equal(t, "OTIS", res.Rows[0]["IC_GROUP1"])
}

func TestMerge_ModelNotesFollowCommon(t *testing.T) {
	doc := parse(t, `ЛБv7 Общая часть
Версия 7.1.2 от 05.06.20.
- common

- THYSSEN:
- model specific
`)
	rows := []catalog.Row{
		catalogRow("Версия 7.1.1.", "ЛБ 7.2", "THYSSEN TCM", "t_711", "10", "t_711.bin"),
		catalogRow("Версия 7.1.1.", "ЛБ 7.2", "OTIS", "o_711", "12", "o_711.bin"),
	}

	res, err := newTestEngine().Merge(doc, rows)
	require.NoError(t, err)
	require.Len(t, res.Rows, 2)
	assert.Equal(t, "<ul><li>common</li><li>model specific</li></ul>", res.Rows[0]["IE_PREVIEW_TEXT"])
	assert.Equal(t, "<ul><li>common</li></ul>", res.Rows[1]["IE_PREVIEW_TEXT"])
}

func TestMerge_ParseOrder(t *testing.T) {
	doc := parse(t, `ЛБv7 Общая часть
Версия 7.1.2 от 05.06.20.
- seven

ЛБv6 Общая часть
Версия 6.0.5 от 06.06.20.
- six
`)
	rows := []catalog.Row{
		catalogRow("Версия 6.0.4.", "ЛБ 6 CM3", "OTIS", "o_604", "1", "o_604.bin"),
		catalogRow("Версия 7.1.1.", "ЛБ 7.2", "OTIS", "o_711", "1", "o_711.bin"),
	}

	res, err := newTestEngine().Merge(doc, rows)
	require.NoError(t, err)
	require.Len(t, res.Rows, 2)
	assert.Equal(t, "Версия 7.1.2.", res.Rows[0]["IE_NAME"])
	assert.Equal(t, "Версия 6.0.5.", res.Rows[1]["IE_NAME"])
	assert.Equal(t, "06.06.2020", res.Rows[1]["IP_PROP12"])
}

func TestMerge_NoMatchingRows(t *testing.T) {
	doc := parse(t, "ЛБv7 Общая часть\nВерсия 7.1.2 от 05.06.20.\n- fix\n")

	tests := map[string][]catalog.Row{
		"empty catalog": nil,
		"other version": {catalogRow("Версия 7.1.0.", "ЛБ 7.2", "OTIS", "o", "1", "p")},
		"other type":    {catalogRow("Версия 7.1.1.", "ЛБ 6 CM3", "OTIS", "o", "1", "p")},
	}

	for name, rows := range tests {
		t.Run(name, func(t *testing.T) {
			res, err := newTestEngine().Merge(doc, rows)
			require.NoError(t, err)
			assert.Empty(t, res.Rows)
			assert.Equal(t, []Unmatched{{Key: "lb7", Version: 711}}, res.Unmatched)
		})
	}
}

func TestMerge_Errors(t *testing.T) {
	tests := map[string]struct {
		text    string
		sort    string
		wantErr error
	}{
		"four digit year": {
			text:    "ЛБv7 Общая часть\nВерсия 7.1.2 от 05.06.2020.\n- fix\n",
			sort:    "1",
			wantErr: ErrMalformedDate,
		},
		"bad sort key": {
			text:    "ЛБv7 Общая часть\nВерсия 7.1.2 от 05.06.20.\n- fix\n",
			sort:    "n/a",
			wantErr: ErrMalformedSortKey,
		},
	}

	for name, tt := range tests {
		t.Run(name, func(t *testing.T) {
			doc := parse(t, tt.text)
			rows := []catalog.Row{catalogRow("Версия 7.1.1.", "ЛБ 7.2", "OTIS", "o", tt.sort, "p")}
			_, err := newTestEngine().Merge(doc, rows)
			assert.ErrorIs(t, err, tt.wantErr)
		})
	}
}

func TestMergeDevices(t *testing.T) {
	doc := parse(t, `KONE_ESC V1.0.4 05.06.20. (для новых плат)
- Исправлена обработка аварии

SCHINDLER V2.0.0 05.06.20.
- new
`)
	rows := []catalog.Row{
		catalogRow("Версия 1.0.3.", "ЛБ 7.2", "KONE ESC", "kone_103", "40", "kone_103.bin"),
		catalogRow("Версия 1.0.3.", "ЛБ 6 CM3", "KONE ESC", "kone6_103", "40", "kone6_103.bin"),
	}

	res, err := newTestEngine().MergeDevices(doc, rows)
	require.NoError(t, err)
	require.Len(t, res.Rows, 1)

	got := res.Rows[0]
	assert.Equal(t, "kone_104", got["IE_XML_ID"])
	assert.Equal(t, "Версия 1.0.4.", got["IE_NAME"])
	assert.Equal(t, "41", got["IE_SORT"])
	assert.Equal(t, "05.06.20", got["IP_PROP12"])
	assert.Equal(t, "<ul><li>Исправлена обработка аварии</li></ul>", got["IE_PREVIEW_TEXT"])

	assert.Equal(t, []Unmatched{{Key: "SCHINDLER", Version: 199}}, res.Unmatched)
}

func TestMergeAll(t *testing.T) {
	doc := parse(t, `ЛБv7 Общая часть
Версия 7.1.2 от 05.06.20.
- fix

KONE_ESC V1.0.4 05.06.20.
- device fix
`)
	rows := []catalog.Row{
		catalogRow("Версия 1.0.3.", "ЛБ 7.2", "KONE ESC", "kone_103", "40", "kone_103.bin"),
		catalogRow("Версия 7.1.1.", "ЛБ 7.2", "OTIS", "o_711", "1", "o_711.bin"),
	}

	res, err := newTestEngine().MergeAll(doc, rows)
	require.NoError(t, err)
	require.Len(t, res.Rows, 2)
	assert.Equal(t, "o_712", res.Rows[0]["IE_XML_ID"])
	assert.Equal(t, "kone_104", res.Rows[1]["IE_XML_ID"])
	assert.Empty(t, res.Unmatched)
}

func TestHeader(t *testing.T) {
	assert.Equal(t, catalog.DefaultColumns().Output(), newTestEngine().Header())
}
