// Package tables holds the fixed translation tables between the changelog text,
// the program's device type ids and the catalog export.
//
// The changelog and the catalog spell the same things differently:
//
//	changelog label   device type   catalog category (IC_GROUP2)
//	ЛБv6              lb6           ЛБ 6 CM3
//	ЛБv6Pro           lb6pro        ЛБ 6.1 Pro CM3
//	ЛБv7              lb7           ЛБ 7.2
//
// Model names written by firmware authors are mapped to catalog spellings by Replacers.
// A Tables value is built once at startup and passed to whoever needs it.
package tables

import (
	"fmt"
	"io"
	"maps"
	"os"
	"slices"

	"gopkg.in/yaml.v3"
)

// Tables is the set of static lookups used by the parser, matcher and merge engine.
type Tables struct {
	// DeviceTypes maps a changelog type label to a device type id.
	DeviceTypes map[string]string `yaml:"device_types"`
	// Indicators maps a device type id to the catalog category value.
	Indicators map[string]string `yaml:"indicators"`
	// Replacers maps author-side model names to catalog model names.
	Replacers map[string]string `yaml:"replacers"`
}

// Default returns the built-in tables.
func Default() *Tables {
	return &Tables{
		DeviceTypes: map[string]string{
			"ЛБv6":    "lb6",
			"ЛБv6Pro": "lb6pro",
			"ЛБv7":    "lb7",
		},
		Indicators: map[string]string{
			"lb6":    "ЛБ 6 CM3",
			"lb6pro": "ЛБ 6.1 Pro CM3",
			"lb7":    "ЛБ 7.2",
		},
		Replacers: map[string]string{
			"CLASSIC":    "Релейный",
			"iAStar":     "iASTAR",
			"KONE_ESC":   "KONE ESC",
			"SODIMAS_QI": "SODIMAS QI",
			"THYSSEN":    "THYSSEN TCM",
			"FT9x0":      "THYSSEN FT9X",
			"ШУЛК17":     "ШУЛК 17",
			"ШУЛК32":     "ШУЛК 32",
		},
	}
}

// DeviceType maps a changelog label to a device type id.
func (t *Tables) DeviceType(label string) (string, bool) {
	v, ok := t.DeviceTypes[label]
	return v, ok
}

// Indicator maps a device type id to its catalog category value.
func (t *Tables) Indicator(deviceType string) (string, bool) {
	v, ok := t.Indicators[deviceType]
	return v, ok
}

// Normalize returns the catalog spelling of a model name. Unknown names pass through.
func (t *Tables) Normalize(name string) string {
	if v, ok := t.Replacers[name]; ok {
		return v
	}
	return name
}

// Types returns the known device type ids, sorted.
func (t *Tables) Types() []string {
	return slices.Sorted(maps.Keys(t.Indicators))
}

// Clone returns a deep copy of t.
func (t *Tables) Clone() *Tables {
	return &Tables{
		DeviceTypes: maps.Clone(t.DeviceTypes),
		Indicators:  maps.Clone(t.Indicators),
		Replacers:   maps.Clone(t.Replacers),
	}
}

// Merge returns a copy of t with every entry of overlay added or replaced.
func (t *Tables) Merge(overlay *Tables) *Tables {
	merged := t.Clone()
	if overlay == nil {
		return merged
	}
	merged.DeviceTypes = mergeMap(merged.DeviceTypes, overlay.DeviceTypes)
	merged.Indicators = mergeMap(merged.Indicators, overlay.Indicators)
	merged.Replacers = mergeMap(merged.Replacers, overlay.Replacers)
	return merged
}

func mergeMap(dst, src map[string]string) map[string]string {
	if dst == nil {
		dst = make(map[string]string, len(src))
	}
	maps.Copy(dst, src)
	return dst
}

// ValidationError describes an inconsistent table entry.
type ValidationError struct {
	Table   string
	Key     string
	Message string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("%s[%q]: %s", e.Table, e.Key, e.Message)
}

// Validate checks that the tables are consistent:
// every device type has a catalog indicator, and normalization is idempotent
// (no replacement target is itself a replacer key).
func (t *Tables) Validate() error {
	for _, label := range slices.Sorted(maps.Keys(t.DeviceTypes)) {
		typ := t.DeviceTypes[label]
		if _, ok := t.Indicators[typ]; !ok {
			return &ValidationError{
				Table:   "device_types",
				Key:     label,
				Message: fmt.Sprintf("device type %q has no entry in indicators", typ),
			}
		}
	}

	for _, raw := range slices.Sorted(maps.Keys(t.Replacers)) {
		target := t.Replacers[raw]
		if target == raw {
			continue
		}
		if _, ok := t.Replacers[target]; ok {
			return &ValidationError{
				Table:   "replacers",
				Key:     raw,
				Message: fmt.Sprintf("target %q is itself replaced; normalization would not be idempotent", target),
			}
		}
	}

	return nil
}

// Load reads a YAML tables file and merges it over the defaults.
func Load(path string) (*Tables, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("opening tables file: %w", err)
	}
	defer f.Close()

	return LoadFromReader(f)
}

// LoadFromReader reads YAML tables from r and merges them over the defaults.
// An empty document yields the defaults.
func LoadFromReader(r io.Reader) (*Tables, error) {
	var overlay Tables
	dec := yaml.NewDecoder(r)
	dec.KnownFields(true)
	if err := dec.Decode(&overlay); err != nil && err != io.EOF {
		return nil, fmt.Errorf("parsing tables YAML: %w", err)
	}

	merged := Default().Merge(&overlay)
	if err := merged.Validate(); err != nil {
		return nil, err
	}
	return merged, nil
}

// Encode writes t as YAML.
func (t *Tables) Encode(w io.Writer) error {
	enc := yaml.NewEncoder(w)
	enc.SetIndent(2)
	if err := enc.Encode(t); err != nil {
		return fmt.Errorf("encoding tables YAML: %w", err)
	}
	return enc.Close()
}
