package changelog

import "iter"

// CommonLog is the changelog of a whole device type.
// Version is the new version being announced, encoded as concatenated digits (7.1.2 -> 712).
// Date keeps the source format "dd.mm.yy.".
type CommonLog struct {
	DeviceType string   `yaml:"device_type"`
	Version    int      `yaml:"version"`
	Date       string   `yaml:"date"`
	Lines      []string `yaml:"lines"`
}

// SpecialLog is the changelog of a single device model.
// Model holds the canonical catalog spelling.
type SpecialLog struct {
	Model string   `yaml:"model"`
	Lines []string `yaml:"lines"`
}

// DeviceLog is the changelog of a standalone device that has no common part.
type DeviceLog struct {
	Model   string   `yaml:"model"`
	Version int      `yaml:"version"`
	Date    string   `yaml:"date"`
	Lines   []string `yaml:"lines"`
}

// Table is an insertion-ordered keyed collection of records.
// Setting an existing key replaces its value but keeps the key's original position.
type Table[T any] struct {
	keys  []string
	items map[string]T
}

// Set stores v under key. The last write for a key wins.
func (t *Table[T]) Set(key string, v T) {
	if t.items == nil {
		t.items = make(map[string]T)
	}
	if _, ok := t.items[key]; !ok {
		t.keys = append(t.keys, key)
	}
	t.items[key] = v
}

// Get returns the record stored under key.
func (t *Table[T]) Get(key string) (T, bool) {
	v, ok := t.items[key]
	return v, ok
}

// Has reports whether key is present.
func (t *Table[T]) Has(key string) bool {
	_, ok := t.items[key]
	return ok
}

// Len returns the number of distinct keys.
func (t *Table[T]) Len() int {
	return len(t.keys)
}

// Keys returns the keys in insertion order.
func (t *Table[T]) Keys() []string {
	return append([]string(nil), t.keys...)
}

// All yields key/record pairs in insertion order.
func (t *Table[T]) All() iter.Seq2[string, T] {
	return func(yield func(string, T) bool) {
		for _, k := range t.keys {
			if !yield(k, t.items[k]) {
				return
			}
		}
	}
}

// Document holds every record parsed from one changelog text.
type Document struct {
	Common  Table[CommonLog]
	Special Table[SpecialLog]
	Devices Table[DeviceLog]
}

// IsEmpty returns true if no block of any kind was found.
func (d *Document) IsEmpty() bool {
	return d.Common.Len() == 0 && d.Special.Len() == 0 && d.Devices.Len() == 0
}

// SpecialModels returns the canonical model names that have a model block, in parse order.
func (d *Document) SpecialModels() []string {
	return d.Special.Keys()
}
