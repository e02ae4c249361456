package changelog

import (
	"fmt"
	"strings"
)

// DeviceTypeNotFoundError is returned when a document has no common block for a device type.
type DeviceTypeNotFoundError struct {
	DeviceType     string
	AvailableTypes []string
}

func (e *DeviceTypeNotFoundError) Error() string {
	return fmt.Sprintf("device type %q not found in changelog (available: %s)",
		e.DeviceType, strings.Join(e.AvailableTypes, ", "))
}

// GetCommon retrieves the common block of a device type.
// Returns DeviceTypeNotFoundError if the document has none.
func (d *Document) GetCommon(deviceType string) (CommonLog, error) {
	c, ok := d.Common.Get(deviceType)
	if !ok {
		return CommonLog{}, &DeviceTypeNotFoundError{
			DeviceType:     deviceType,
			AvailableTypes: d.Common.Keys(),
		}
	}
	return c, nil
}

// FullLog returns the complete changelog of one device instance: the common lines of
// its type followed by the lines of its model block, if the document has one.
// The returned slice never aliases the records' own slices.
func (d *Document) FullLog(deviceType, model string) ([]string, error) {
	c, err := d.GetCommon(deviceType)
	if err != nil {
		return nil, err
	}
	return d.WithModel(c.Lines, model), nil
}

// WithModel appends the model block lines for model (if any) to a copy of lines.
func (d *Document) WithModel(lines []string, model string) []string {
	full := make([]string, 0, len(lines))
	full = append(full, lines...)
	if s, ok := d.Special.Get(model); ok {
		full = append(full, s.Lines...)
	}
	return full
}

// EntryCount returns the total number of bullet lines across all records.
func (d *Document) EntryCount() int {
	count := 0
	for _, c := range d.Common.All() {
		count += len(c.Lines)
	}
	for _, s := range d.Special.All() {
		count += len(s.Lines)
	}
	for _, dv := range d.Devices.All() {
		count += len(dv.Lines)
	}
	return count
}
