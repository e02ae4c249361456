package catalog

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"unicode/utf8"
)

// DefaultDelimiter is the field separator of site exports.
const DefaultDelimiter = ';'

// Table is a parsed export: its header and rows in file order.
type Table struct {
	Header []string
	Rows   []Row
}

// CSVOptions configures the export dialect.
type CSVOptions struct {
	Delimiter rune
	// CRLF ends written lines with \r\n, as the site importer expects.
	CRLF bool
}

func (o CSVOptions) delimiter() rune {
	if o.Delimiter == 0 {
		return DefaultDelimiter
	}
	return o.Delimiter
}

// ParseDelimiter converts a configured delimiter string to a rune.
func ParseDelimiter(s string) (rune, error) {
	if s == "" {
		return DefaultDelimiter, nil
	}
	if s == `\t` {
		return '\t', nil
	}
	if utf8.RuneCountInString(s) != 1 {
		return 0, fmt.Errorf("delimiter must be a single character, got %q", s)
	}
	r, _ := utf8.DecodeRuneInString(s)
	return r, nil
}

// RowError reports a malformed record in the export.
type RowError struct {
	Row int
	Err error
}

func (e *RowError) Error() string {
	return fmt.Sprintf("catalog row %d: %v", e.Row, e.Err)
}

func (e *RowError) Unwrap() error {
	return e.Err
}

// Read parses a header-keyed export from r.
func Read(r io.Reader, opts CSVOptions) (*Table, error) {
	cr := csv.NewReader(r)
	cr.Comma = opts.delimiter()
	cr.LazyQuotes = true

	header, err := cr.Read()
	if errors.Is(err, io.EOF) {
		return &Table{}, nil
	}
	if err != nil {
		return nil, fmt.Errorf("reading catalog header: %w", err)
	}

	t := &Table{Header: header}
	for n := 2; ; n++ {
		rec, err := cr.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, &RowError{Row: n, Err: err}
		}

		row := make(Row, len(header))
		for i, col := range header {
			row[col] = rec[i]
		}
		t.Rows = append(t.Rows, row)
	}

	return t, nil
}

// Write emits header and rows. Columns missing from a row are written empty.
func Write(w io.Writer, header []string, rows []Row, opts CSVOptions) error {
	cw := csv.NewWriter(w)
	cw.Comma = opts.delimiter()
	cw.UseCRLF = opts.CRLF

	if err := cw.Write(header); err != nil {
		return fmt.Errorf("writing header: %w", err)
	}

	rec := make([]string, len(header))
	for i, row := range rows {
		for j, col := range header {
			rec[j] = row[col]
		}
		if err := cw.Write(rec); err != nil {
			return fmt.Errorf("writing row %d: %w", i+1, err)
		}
	}

	cw.Flush()
	return cw.Error()
}
