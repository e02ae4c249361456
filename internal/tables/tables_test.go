package tables

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/liftblock/fwrelease/internal/catalog"
	"github.com/liftblock/fwrelease/internal/changelog"
)

var (
	_ changelog.Lookup   = (*Tables)(nil)
	_ catalog.Indicators = (*Tables)(nil)
)

func TestDefault(t *testing.T) {
	tbl := Default()
	require.NoError(t, tbl.Validate())

	typ, ok := tbl.DeviceType("ЛБv7")
	assert.True(t, ok)
	assert.Equal(t, "lb7", typ)

	_, ok = tbl.DeviceType("ЛБv9")
	assert.False(t, ok)

	ind, ok := tbl.Indicator("lb6pro")
	assert.True(t, ok)
	assert.Equal(t, "ЛБ 6.1 Pro CM3", ind)

	assert.Equal(t, []string{"lb6", "lb6pro", "lb7"}, tbl.Types())
}

func TestNormalize(t *testing.T) {
	tbl := Default()

	tests := map[string]struct {
		in, want string
	}{
		"replaced":          {in: "THYSSEN", want: "THYSSEN TCM"},
		"cyrillic":          {in: "ШУЛК17", want: "ШУЛК 17"},
		"unknown passes":    {in: "OTIS", want: "OTIS"},
		"case sensitive":    {in: "thyssen", want: "thyssen"},
		"already canonical": {in: "THYSSEN TCM", want: "THYSSEN TCM"},
	}

	for name, tt := range tests {
		t.Run(name, func(t *testing.T) {
			got := tbl.Normalize(tt.in)
			assert.Equal(t, tt.want, got)
			assert.Equal(t, got, tbl.Normalize(got), "normalization must be idempotent")
		})
	}
}

func TestMerge(t *testing.T) {
	base := Default()
	merged := base.Merge(&Tables{
		DeviceTypes: map[string]string{"ЛБv8": "lb8"},
		Indicators:  map[string]string{"lb8": "ЛБ 8", "lb7": "ЛБ 7.3"},
	})

	assert.Equal(t, "lb8", merged.DeviceTypes["ЛБv8"])
	assert.Equal(t, "ЛБ 7.3", merged.Indicators["lb7"])
	assert.Equal(t, base.Replacers, merged.Replacers)

	// The receiver is left untouched.
	assert.Equal(t, "ЛБ 7.2", base.Indicators["lb7"])
	_, ok := base.DeviceTypes["ЛБv8"]
	assert.False(t, ok)

	assert.Equal(t, base, base.Merge(nil))
}

func TestValidate(t *testing.T) {
	tests := map[string]struct {
		tables    *Tables
		wantTable string
		wantKey   string
	}{
		"valid": {
			tables: Default(),
		},
		"type without indicator": {
			tables: &Tables{
				DeviceTypes: map[string]string{"ЛБv8": "lb8"},
				Indicators:  map[string]string{},
			},
			wantTable: "device_types",
			wantKey:   "ЛБv8",
		},
		"chained replacement": {
			tables: &Tables{
				Replacers: map[string]string{"A": "B", "B": "C"},
			},
			wantTable: "replacers",
			wantKey:   "A",
		},
		"self replacement is allowed": {
			tables: &Tables{
				Replacers: map[string]string{"A": "A"},
			},
		},
	}

	for name, tt := range tests {
		t.Run(name, func(t *testing.T) {
			err := tt.tables.Validate()
			if tt.wantTable == "" {
				assert.NoError(t, err)
				return
			}
			var ve *ValidationError
			require.ErrorAs(t, err, &ve)
			assert.Equal(t, tt.wantTable, ve.Table)
			assert.Equal(t, tt.wantKey, ve.Key)
		})
	}
}

func TestLoadFromReader(t *testing.T) {
	tests := map[string]struct {
		yaml    string
		check   func(t *testing.T, tbl *Tables)
		wantErr string
	}{
		"empty document yields defaults": {
			yaml: "",
			check: func(t *testing.T, tbl *Tables) {
				assert.Equal(t, Default(), tbl)
			},
		},
		"overlay adds a type": {
			yaml: `
device_types:
  ЛБv8: lb8
indicators:
  lb8: ЛБ 8.0
replacers:
  OTIS_GEN2: OTIS GEN2
`,
			check: func(t *testing.T, tbl *Tables) {
				assert.Equal(t, []string{"lb6", "lb6pro", "lb7", "lb8"}, tbl.Types())
				assert.Equal(t, "OTIS GEN2", tbl.Normalize("OTIS_GEN2"))
				assert.Equal(t, "THYSSEN TCM", tbl.Normalize("THYSSEN"))
			},
		},
		"unknown key": {
			yaml:    "devices:\n  a: b\n",
			wantErr: "field devices not found",
		},
		"inconsistent overlay": {
			yaml:    "device_types:\n  ЛБv8: lb8\n",
			wantErr: "has no entry in indicators",
		},
	}

	for name, tt := range tests {
		t.Run(name, func(t *testing.T) {
			tbl, err := LoadFromReader(strings.NewReader(tt.yaml))
			if tt.wantErr != "" {
				require.Error(t, err)
				assert.Contains(t, err.Error(), tt.wantErr)
				return
			}
			require.NoError(t, err)
			tt.check(t, tbl)
		})
	}
}

func TestLoad(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "tables.yml")
	require.NoError(t, os.WriteFile(path, []byte("replacers:\n  SCH: SCHINDLER\n"), 0o644))

	tbl, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, "SCHINDLER", tbl.Normalize("SCH"))

	_, err = Load(filepath.Join(dir, "missing.yml"))
	assert.Error(t, err)
}

func TestEncode_LoadsBack(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, Default().Encode(&buf))
	encoded := buf.String()
	assert.Contains(t, encoded, "device_types:")

	tbl, err := LoadFromReader(strings.NewReader(encoded))
	require.NoError(t, err)
	assert.Equal(t, Default(), tbl)
}
