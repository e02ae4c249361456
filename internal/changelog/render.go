package changelog

import (
	"fmt"
	"io"
	"strings"

	"gopkg.in/yaml.v3"
)

// Snapshot is a plain, serializable view of a Document in parse order.
type Snapshot struct {
	Common  []CommonLog  `yaml:"common"`
	Special []SpecialLog `yaml:"special"`
	Devices []DeviceLog  `yaml:"devices"`
}

// Snapshot returns the document's records in parse order.
func (d *Document) Snapshot() Snapshot {
	s := Snapshot{
		Common:  []CommonLog{},
		Special: []SpecialLog{},
		Devices: []DeviceLog{},
	}
	for _, c := range d.Common.All() {
		s.Common = append(s.Common, c)
	}
	for _, sp := range d.Special.All() {
		s.Special = append(s.Special, sp)
	}
	for _, dv := range d.Devices.All() {
		s.Devices = append(s.Devices, dv)
	}
	return s
}

// RenderYAML writes the document as YAML.
func RenderYAML(d *Document, w io.Writer) error {
	enc := yaml.NewEncoder(w)
	enc.SetIndent(2)
	if err := enc.Encode(d.Snapshot()); err != nil {
		return fmt.Errorf("encoding changelog YAML: %w", err)
	}
	return enc.Close()
}

// RenderText writes a compact human-readable listing of the document.
// Versions are shown dotted, padded to width digits.
func RenderText(d *Document, w io.Writer, width int) error {
	var b strings.Builder

	for _, c := range d.Common.All() {
		fmt.Fprintf(&b, "[%s] %s (%s)\n", c.DeviceType, FormatDotted(c.Version, width), c.Date)
		writeLines(&b, c.Lines)
	}
	for _, s := range d.Special.All() {
		fmt.Fprintf(&b, "[model] %s\n", s.Model)
		writeLines(&b, s.Lines)
	}
	for _, dv := range d.Devices.All() {
		fmt.Fprintf(&b, "[device] %s %s (%s)\n", dv.Model, FormatDotted(dv.Version, width), dv.Date)
		writeLines(&b, dv.Lines)
	}

	_, err := io.WriteString(w, b.String())
	return err
}

func writeLines(b *strings.Builder, lines []string) {
	for _, l := range lines {
		b.WriteString("  - ")
		b.WriteString(l)
		b.WriteString("\n")
	}
}
