// Package release builds next-version catalog rows from a parsed changelog.
//
// For every common changelog record the engine finds the catalog rows of the
// previous version of that device type and synthesizes one new row per match:
// bumped display name, identifier and file path, HTML release notes built from the
// common and model changelogs, a higher sort key and the release date.
package release

import (
	"fmt"

	"github.com/liftblock/fwrelease/internal/catalog"
	"github.com/liftblock/fwrelease/internal/changelog"
)

const (
	// DefaultSortStep is added to the sort key of rows built from common records.
	DefaultSortStep = 2
	// DefaultDeviceSortStep is added to the sort key of rows built from device records.
	DefaultDeviceSortStep = 1
	// DefaultDeviceType is the device type standalone device records are looked up under.
	DefaultDeviceType = "lb7"
)

// Engine synthesizes new catalog rows.
type Engine struct {
	Matcher        *catalog.Matcher
	SortStep       int
	DeviceSortStep int
	DeviceType     string
}

// NewEngine returns an Engine with default steps and device type.
func NewEngine(m *catalog.Matcher) *Engine {
	return &Engine{
		Matcher:        m,
		SortStep:       DefaultSortStep,
		DeviceSortStep: DefaultDeviceSortStep,
		DeviceType:     DefaultDeviceType,
	}
}

// Unmatched names a changelog record whose previous version has no catalog row.
type Unmatched struct {
	Key     string // device type or model name
	Version int    // previous version that was looked up
}

// Result is the outcome of a merge pass.
type Result struct {
	Rows      []catalog.Row
	Unmatched []Unmatched
}

// Header returns the output column order.
func (e *Engine) Header() []string {
	return e.Matcher.Columns.Output()
}

// Merge builds new rows for every common record of doc, in parse order.
// A record without prior-version rows contributes nothing and is listed in Unmatched.
func (e *Engine) Merge(doc *changelog.Document, rows []catalog.Row) (*Result, error) {
	res := &Result{}

	for deviceType, common := range doc.Common.All() {
		prev := common.Version - 1
		matched := 0

		for row := range e.Matcher.FindByVersionAndType(rows, prev, deviceType) {
			date, err := FixDate(common.Date)
			if err != nil {
				return nil, fmt.Errorf("%s %s: %w", deviceType, e.Matcher.DisplayName(common.Version), err)
			}

			model := row[e.Matcher.Columns.Model]
			notes := doc.WithModel(common.Lines, model)

			next, err := e.fill(row, prev, date, notes, e.SortStep)
			if err != nil {
				return nil, fmt.Errorf("%s %s: %w", deviceType, model, err)
			}
			res.Rows = append(res.Rows, next)
			matched++
		}

		if matched == 0 {
			res.Unmatched = append(res.Unmatched, Unmatched{Key: deviceType, Version: prev})
		}
	}

	return res, nil
}

// MergeDevices builds new rows for the standalone device records of doc.
// Each device is looked up by exact model and previous version under e.DeviceType;
// its own lines and date are used as they are.
func (e *Engine) MergeDevices(doc *changelog.Document, rows []catalog.Row) (*Result, error) {
	res := &Result{}

	for model, dev := range doc.Devices.All() {
		prev := dev.Version - 1
		row, ok := e.Matcher.FindExact(rows, e.DeviceType, model, prev)
		if !ok {
			res.Unmatched = append(res.Unmatched, Unmatched{Key: model, Version: prev})
			continue
		}

		next, err := e.fill(row, prev, dev.Date, dev.Lines, e.DeviceSortStep)
		if err != nil {
			return nil, fmt.Errorf("%s: %w", model, err)
		}
		res.Rows = append(res.Rows, next)
	}

	return res, nil
}

// MergeAll runs Merge followed by MergeDevices and concatenates the results.
func (e *Engine) MergeAll(doc *changelog.Document, rows []catalog.Row) (*Result, error) {
	common, err := e.Merge(doc, rows)
	if err != nil {
		return nil, err
	}
	devices, err := e.MergeDevices(doc, rows)
	if err != nil {
		return nil, err
	}
	return &Result{
		Rows:      append(common.Rows, devices.Rows...),
		Unmatched: append(common.Unmatched, devices.Unmatched...),
	}, nil
}

// fill derives the next-version row from row. Only the display name, identifier,
// file path, sort, update date and notes columns change; hierarchy columns are copied.
func (e *Engine) fill(row catalog.Row, prev int, date string, notes []string, step int) (catalog.Row, error) {
	cols := e.Matcher.Columns
	next := prev + 1

	sortKey, err := NextSortKey(row[cols.Sort], step)
	if err != nil {
		return nil, err
	}

	out := catalog.Row{
		cols.XMLID:      ReplaceVersion(row[cols.XMLID], prev, next),
		cols.Name:       e.Matcher.DisplayName(next),
		cols.Notes:      RenderHTML(notes),
		cols.Sort:       sortKey,
		cols.UpdateDate: date,
		cols.FilePath:   ReplaceVersion(row[cols.FilePath], prev, next),
	}
	for _, h := range cols.Hierarchy {
		if _, ok := out[h]; !ok {
			out[h] = row[h]
		}
	}
	return out, nil
}
