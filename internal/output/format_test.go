package output

import (
	"bytes"
	"testing"
	"unicode/utf8"

	"github.com/fatih/color"
	"github.com/stretchr/testify/assert"
)

func TestSeparator(t *testing.T) {
	tests := map[string]struct {
		label string
		width int
		want  string
	}{
		"centered":   {label: "12:00:00", width: 20, want: "───── 12:00:00 ─────"},
		"cyrillic":   {label: "запуск", width: 14, want: "─── запуск ───"},
		"too narrow": {label: "long label", width: 5, want: "─── long label ───"},
	}

	for name, tt := range tests {
		t.Run(name, func(t *testing.T) {
			got := Separator(tt.label, tt.width)
			assert.Equal(t, tt.want, got)
			assert.LessOrEqual(t, utf8.RuneCountInString(got), max(tt.width, utf8.RuneCountInString(tt.want)))
		})
	}
}

func TestPrintSuccess(t *testing.T) {
	old := color.NoColor
	color.NoColor = true
	t.Cleanup(func() { color.NoColor = old })

	var buf bytes.Buffer
	PrintSuccess(&buf, "Ок, записано строк: 2.")
	assert.Equal(t, "✓ Ок, записано строк: 2.\n", buf.String())
}
