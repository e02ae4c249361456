// Package catalog reads and queries the site catalog export (export.csv).
//
// Each row is one published firmware release. Rows are looked up by their display
// name ("Версия 7.1.1."), category (device type indicator) and model columns.
package catalog

import (
	"fmt"
	"slices"
	"strings"
)

// Row is one catalog entry keyed by column name.
type Row map[string]string

// Clone returns a copy of r.
func (r Row) Clone() Row {
	c := make(Row, len(r))
	for k, v := range r {
		c[k] = v
	}
	return c
}

// Columns names the export columns the tool reads or writes.
type Columns struct {
	Name       string   `koanf:"name" yaml:"name" validate:"required"`
	Category   string   `koanf:"category" yaml:"category" validate:"required"`
	Model      string   `koanf:"model" yaml:"model" validate:"required"`
	XMLID      string   `koanf:"xml_id" yaml:"xml_id" validate:"required"`
	Sort       string   `koanf:"sort" yaml:"sort" validate:"required"`
	UpdateDate string   `koanf:"update_date" yaml:"update_date" validate:"required"`
	FilePath   string   `koanf:"file_path" yaml:"file_path" validate:"required"`
	Notes      string   `koanf:"notes" yaml:"notes" validate:"required"`
	Hierarchy  []string `koanf:"hierarchy" yaml:"hierarchy"`
}

// DefaultColumns returns the column names of a Bitrix catalog export.
func DefaultColumns() Columns {
	return Columns{
		Name:       "IE_NAME",
		Category:   "IC_GROUP2",
		Model:      "IC_GROUP1",
		XMLID:      "IE_XML_ID",
		Sort:       "IE_SORT",
		UpdateDate: "IP_PROP12",
		FilePath:   "IP_PROP23",
		Notes:      "IE_PREVIEW_TEXT",
		Hierarchy:  []string{"IC_GROUP0", "IC_GROUP1", "IC_GROUP2"},
	}
}

// Required returns the columns an input export must contain.
// The notes and update date columns are output-only.
func (c Columns) Required() []string {
	req := []string{c.Name, c.Category, c.Model, c.XMLID, c.Sort, c.FilePath}
	for _, h := range c.Hierarchy {
		if !slices.Contains(req, h) {
			req = append(req, h)
		}
	}
	return req
}

// Rewritten returns the columns every synthesized row gets a new value for.
func (c Columns) Rewritten() []string {
	return []string{c.XMLID, c.Name, c.Notes, c.Sort, c.UpdateDate, c.FilePath}
}

// Validate rejects a hierarchy that names a rewritten column: hierarchy
// columns are copied unchanged and would undo the rewrite.
func (c Columns) Validate() error {
	rewritten := c.Rewritten()
	for _, h := range c.Hierarchy {
		if slices.Contains(rewritten, h) {
			return fmt.Errorf("hierarchy column %s is rewritten for every new row", h)
		}
	}
	return nil
}

// Output returns the column order of synthesized rows.
func (c Columns) Output() []string {
	out := c.Rewritten()
	for _, h := range c.Hierarchy {
		if !slices.Contains(out, h) {
			out = append(out, h)
		}
	}
	return out
}

// MissingColumnError is returned when an export lacks required columns.
type MissingColumnError struct {
	Columns []string
	Header  []string
}

func (e *MissingColumnError) Error() string {
	return fmt.Sprintf("catalog is missing required columns %s (header: %s)",
		strings.Join(e.Columns, ", "), strings.Join(e.Header, ";"))
}

// CheckHeader verifies that header contains every required column.
func (c Columns) CheckHeader(header []string) error {
	var missing []string
	for _, col := range c.Required() {
		if !slices.Contains(header, col) {
			missing = append(missing, col)
		}
	}
	if len(missing) > 0 {
		return &MissingColumnError{Columns: missing, Header: header}
	}
	return nil
}
