// Package textio opens the tool's input and output files in a configured text encoding.
// Site exports are usually UTF-8 with a byte order mark; older ones are windows-1251.
package textio

import (
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"strings"

	"golang.org/x/text/encoding"
	"golang.org/x/text/encoding/charmap"
	"golang.org/x/text/encoding/unicode"
	"golang.org/x/text/transform"
)

// ErrMissingInput is returned when an input file does not exist or cannot be read.
var ErrMissingInput = errors.New("missing input file")

// ErrUnknownEncoding is returned for an encoding name Lookup does not know.
var ErrUnknownEncoding = errors.New("unknown encoding")

// Encodings lists the accepted encoding names.
func Encodings() []string {
	return []string{"utf-8", "windows-1251", "koi8-r"}
}

// Lookup returns the encoding for name. UTF-8 decoding strips a leading BOM.
func Lookup(name string) (encoding.Encoding, error) {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "", "utf-8", "utf8":
		return unicode.UTF8BOM, nil
	case "windows-1251", "cp1251":
		return charmap.Windows1251, nil
	case "koi8-r", "koi8r":
		return charmap.KOI8R, nil
	default:
		return nil, fmt.Errorf("%w %q (supported: %s)", ErrUnknownEncoding, name, strings.Join(Encodings(), ", "))
	}
}

// MissingInputError wraps ErrMissingInput with the offending path.
type MissingInputError struct {
	Path string
	Err  error
}

func (e *MissingInputError) Error() string {
	return fmt.Sprintf("%v %s: %v", ErrMissingInput, e.Path, e.Err)
}

func (e *MissingInputError) Is(target error) bool {
	return target == ErrMissingInput
}

func (e *MissingInputError) Unwrap() error {
	return e.Err
}

type readCloser struct {
	io.Reader
	io.Closer
}

// Open opens path for reading and decodes it from enc to UTF-8.
func Open(path, enc string) (io.ReadCloser, error) {
	e, err := Lookup(enc)
	if err != nil {
		return nil, err
	}

	f, err := os.Open(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) || errors.Is(err, fs.ErrPermission) {
			return nil, &MissingInputError{Path: path, Err: err}
		}
		return nil, fmt.Errorf("opening %s: %w", path, err)
	}

	return readCloser{Reader: transform.NewReader(f, e.NewDecoder()), Closer: f}, nil
}

// ReadAll reads and decodes the whole of path.
func ReadAll(path, enc string) ([]byte, error) {
	rc, err := Open(path, enc)
	if err != nil {
		return nil, err
	}
	defer rc.Close()

	data, err := io.ReadAll(rc)
	if err != nil {
		return nil, fmt.Errorf("reading %s: %w", path, err)
	}
	return data, nil
}

type writeCloser struct {
	w *transform.Writer
	f *os.File
}

func (wc writeCloser) Write(p []byte) (int, error) {
	return wc.w.Write(p)
}

func (wc writeCloser) Close() error {
	if err := wc.w.Close(); err != nil {
		wc.f.Close()
		return err
	}
	return wc.f.Close()
}

// Create creates path and returns a writer that encodes UTF-8 text to enc.
// UTF-8 output is written without a BOM.
func Create(path, enc string) (io.WriteCloser, error) {
	e, err := Lookup(enc)
	if err != nil {
		return nil, err
	}
	if e == unicode.UTF8BOM {
		e = unicode.UTF8
	}

	f, err := os.Create(path)
	if err != nil {
		return nil, fmt.Errorf("creating %s: %w", path, err)
	}
	return writeCloser{w: transform.NewWriter(f, e.NewEncoder()), f: f}, nil
}
