package changelog

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"iter"
	"strings"
	"unicode"
)

// Error kinds of ParseError. Use errors.Is against a returned error.
var (
	ErrUnknownDeviceType    = errors.New("unknown device type")
	ErrMalformedVersionLine = errors.New("malformed version line")
	ErrMalformedHeaderLine  = errors.New("malformed header line")
)

// ParseError reports a block that could not be extracted.
// Line is 1-based; Text is the offending line as it appeared in the input.
type ParseError struct {
	Kind    error
	Line    int
	Text    string
	Message string
}

func (e *ParseError) Error() string {
	msg := fmt.Sprintf("line %d: %v", e.Line, e.Kind)
	if e.Message != "" {
		msg += ": " + e.Message
	}
	return fmt.Sprintf("%s: %q", msg, e.Text)
}

func (e *ParseError) Unwrap() error {
	return e.Kind
}

// IsParseError returns true if the error is a ParseError.
func IsParseError(err error) bool {
	var pe *ParseError
	return errors.As(err, &pe)
}

// Lookup resolves the names found in the changelog text.
type Lookup interface {
	// DeviceType maps a changelog type label ("ЛБv7") to the device type id ("lb7").
	DeviceType(label string) (string, bool)
	// Normalize maps an author-side model name to its canonical catalog spelling.
	Normalize(name string) string
}

// Lines reads r and returns its lines with trailing whitespace removed.
func Lines(r io.Reader) ([]string, error) {
	var lines []string
	sc := bufio.NewScanner(r)
	sc.Buffer(make([]byte, 0, 64*1024), 1024*1024)
	for sc.Scan() {
		lines = append(lines, strings.TrimRightFunc(sc.Text(), unicode.IsSpace))
	}
	if err := sc.Err(); err != nil {
		return nil, fmt.Errorf("reading changelog lines: %w", err)
	}
	return lines, nil
}

// Parse extracts every common, model and device block from lines.
// Records are keyed by device type or canonical model name; a later block with the
// same key replaces the earlier one. The first malformed block aborts the parse.
func Parse(lines []string, names Lookup) (*Document, error) {
	doc := &Document{}

	if err := collect(&doc.Common, lines, CommonStarts, names, ExtractCommon,
		func(c CommonLog) string { return c.DeviceType }); err != nil {
		return nil, err
	}
	if err := collect(&doc.Special, lines, SpecialStarts, names, ExtractSpecial,
		func(s SpecialLog) string { return s.Model }); err != nil {
		return nil, err
	}
	if err := collect(&doc.Devices, lines, DeviceStarts, names, ExtractDevice,
		func(d DeviceLog) string { return d.Model }); err != nil {
		return nil, err
	}

	return doc, nil
}

// ParseReader reads lines from r and parses them.
func ParseReader(r io.Reader, names Lookup) (*Document, error) {
	lines, err := Lines(r)
	if err != nil {
		return nil, err
	}
	return Parse(lines, names)
}

type extractor[T any] func(lines []string, k int, names Lookup) (T, error)

// collect runs extract at every start yielded by find and stores the results in t.
func collect[T any](t *Table[T], lines []string, find func([]string) iter.Seq[int],
	names Lookup, extract extractor[T], key func(T) string) error {
	for k := range find(lines) {
		rec, err := extract(lines, k, names)
		if err != nil {
			return err
		}
		t.Set(key(rec), rec)
	}
	return nil
}
