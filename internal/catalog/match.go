package catalog

import (
	"fmt"
	"iter"
	"slices"

	"github.com/liftblock/fwrelease/internal/changelog"
)

// DefaultNamePattern formats the display name column from a dotted version.
const DefaultNamePattern = "Версия %s."

// Indicators maps a device type id to its catalog category value.
type Indicators interface {
	Indicator(deviceType string) (string, bool)
}

// Matcher looks rows up by version, device type and model.
// Every lookup is a linear scan over the rows.
type Matcher struct {
	Columns     Columns
	Indicators  Indicators
	NamePattern string
	Width       int
}

// NewMatcher returns a Matcher with the default name pattern and version width.
func NewMatcher(cols Columns, ind Indicators) *Matcher {
	return &Matcher{
		Columns:     cols,
		Indicators:  ind,
		NamePattern: DefaultNamePattern,
		Width:       changelog.DefaultVersionWidth,
	}
}

// DisplayName returns the display name column value for version: 712 -> "Версия 7.1.2.".
func (m *Matcher) DisplayName(version int) string {
	return fmt.Sprintf(m.NamePattern, changelog.FormatDotted(version, m.Width))
}

// FindByVersionAndType yields every row of the given device type at version.
// Unknown device types match nothing.
func (m *Matcher) FindByVersionAndType(rows []Row, version int, deviceType string) iter.Seq[Row] {
	return func(yield func(Row) bool) {
		indicator, ok := m.Indicators.Indicator(deviceType)
		if !ok {
			return
		}
		name := m.DisplayName(version)
		for _, r := range rows {
			if r[m.Columns.Name] == name && r[m.Columns.Category] == indicator {
				if !yield(r) {
					return
				}
			}
		}
	}
}

// FindExact returns the first row of the given device type, model and version.
func (m *Matcher) FindExact(rows []Row, deviceType, model string, version int) (Row, bool) {
	indicator, ok := m.Indicators.Indicator(deviceType)
	if !ok {
		return nil, false
	}
	name := m.DisplayName(version)
	for _, r := range rows {
		if r[m.Columns.Category] == indicator && r[m.Columns.Model] == model && r[m.Columns.Name] == name {
			return r, true
		}
	}
	return nil, false
}

// ModelsAt returns the distinct model names of a device type at version, sorted.
func (m *Matcher) ModelsAt(rows []Row, version int, deviceType string) []string {
	seen := make(map[string]bool)
	var models []string
	for r := range m.FindByVersionAndType(rows, version, deviceType) {
		model := r[m.Columns.Model]
		if !seen[model] {
			seen[model] = true
			models = append(models, model)
		}
	}
	slices.Sort(models)
	return models
}
