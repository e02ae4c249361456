package changelog

import (
	"bytes"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"
)

func TestRenderYAML(t *testing.T) {
	doc := mustParse(t, sampleChangelog)

	var buf bytes.Buffer
	require.NoError(t, RenderYAML(doc, &buf))

	var back Snapshot
	require.NoError(t, yaml.Unmarshal(buf.Bytes(), &back))
	assert.Equal(t, doc.Snapshot(), back)

	out := buf.String()
	assert.Contains(t, out, "device_type: lb7")
	assert.Contains(t, out, "version: 712")
	assert.Contains(t, out, "model: THYSSEN TCM")
}

func TestRenderText(t *testing.T) {
	doc := mustParse(t, "ЛБv6 Общая часть\nВерсия 0.0.9 от 01.02.21.\n- a\n\n- OTIS:\n- b\n")

	var buf bytes.Buffer
	require.NoError(t, RenderText(doc, &buf, DefaultVersionWidth))

	want := strings.Join([]string{
		"[lb6] 0.0.9 (01.02.21.)",
		"  - a",
		"[model] OTIS",
		"  - b",
		"",
	}, "\n")
	assert.Equal(t, want, buf.String())
}

func TestSnapshot_Order(t *testing.T) {
	doc := mustParse(t, sampleChangelog)
	s := doc.Snapshot()

	require.Len(t, s.Common, 2)
	assert.Equal(t, "lb7", s.Common[0].DeviceType)
	assert.Equal(t, "lb6pro", s.Common[1].DeviceType)
	require.Len(t, s.Special, 2)
	assert.Equal(t, "THYSSEN TCM", s.Special[0].Model)
	require.Len(t, s.Devices, 1)
}
