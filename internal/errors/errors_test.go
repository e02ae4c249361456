package errors

import (
	"errors"
	"fmt"
	"os"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/liftblock/fwrelease/internal/catalog"
	"github.com/liftblock/fwrelease/internal/changelog"
	"github.com/liftblock/fwrelease/internal/release"
	"github.com/liftblock/fwrelease/internal/textio"
)

func TestCLIError_Unwrap(t *testing.T) {
	cause := errors.New("boom")
	err := WrapWithMessage(cause, Runtime, "while writing")

	assert.Equal(t, "while writing: boom", err.Error())
	assert.ErrorIs(t, err, cause)
	assert.True(t, IsCLIError(fmt.Errorf("outer: %w", err)))
	assert.Same(t, err, AsCLIError(fmt.Errorf("outer: %w", err)))
	assert.Nil(t, AsCLIError(cause))
}

func TestFromRunError(t *testing.T) {
	tests := map[string]struct {
		err          error
		wantCategory ErrorCategory
		wantLocation string
		wantFragment string
	}{
		"parse error": {
			err: &changelog.ParseError{
				Kind: changelog.ErrMalformedVersionLine, Line: 2, Text: "Версия 7.1.2 05.06.20.", Message: "expected 4 fields",
			},
			wantCategory: Format,
			wantLocation: "changes.txt:2",
			wantFragment: "Версия 7.1.2 05.06.20.",
		},
		"missing column": {
			err:          &catalog.MissingColumnError{Columns: []string{"IE_SORT"}},
			wantCategory: Format,
		},
		"missing input": {
			err:          &textio.MissingInputError{Path: "export.csv", Err: os.ErrNotExist},
			wantCategory: Input,
		},
		"unknown encoding": {
			err:          fmt.Errorf("%w \"x\"", textio.ErrUnknownEncoding),
			wantCategory: Configuration,
		},
		"malformed date": {
			err:          fmt.Errorf("lb7: %w", release.ErrMalformedDate),
			wantCategory: Format,
			wantLocation: "changes.txt",
		},
		"malformed sort key": {
			err:          release.ErrMalformedSortKey,
			wantCategory: Format,
		},
		"anything else": {
			err:          errors.New("disk full"),
			wantCategory: Runtime,
		},
	}

	for name, tt := range tests {
		t.Run(name, func(t *testing.T) {
			got := FromRunError(tt.err, "changes.txt")
			require.NotNil(t, got)
			assert.Equal(t, tt.wantCategory, got.Category)
			assert.Equal(t, tt.wantLocation, got.Location)
			assert.Equal(t, tt.wantFragment, got.Fragment)
			assert.ErrorIs(t, got, tt.err)
		})
	}

	assert.Nil(t, FromRunError(nil, "changes.txt"))

	cliErr := NewArgumentError("bad")
	assert.Same(t, cliErr, FromRunError(cliErr, "changes.txt"))
}

func TestFormatErrorPlain(t *testing.T) {
	err := NewFormatError("malformed version line: expected 4 fields", "changes.txt:2", "Версия 7.1.2",
		"Fix the line")
	out := FormatErrorPlain(err)

	assert.True(t, strings.HasPrefix(out, "Error [Format Error]: malformed version line"), out)
	assert.Contains(t, out, "changes.txt:2: Версия 7.1.2\n")
	assert.Contains(t, out, "To fix this:\n  • Fix the line\n")
}

func TestFormatWarning(t *testing.T) {
	out := FormatWarning("missing in export", []string{"X", "Y"}, false)
	assert.Equal(t, "Warning: missing in export\n  • X\n  • Y\n", out)
}
