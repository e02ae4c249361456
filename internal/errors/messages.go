package errors

import (
	"errors"
	"fmt"

	"github.com/liftblock/fwrelease/internal/catalog"
	"github.com/liftblock/fwrelease/internal/changelog"
	"github.com/liftblock/fwrelease/internal/release"
	"github.com/liftblock/fwrelease/internal/textio"
)

// Common error messages for the fwrelease CLI.
// These templates ensure consistent, actionable error messages.

// MissingChangelogFile creates an error for a missing changes.txt.
func MissingChangelogFile(path string, err error) *CLIError {
	e := NewInputError(
		fmt.Sprintf("changelog file %s is required", path),
		"Put the changelog next to the program as changes.txt",
		"Or pass its location with --changelog <path>",
	)
	e.Err = err
	return e
}

// MissingCatalogFile creates an error for a missing export.csv.
func MissingCatalogFile(path string, err error) *CLIError {
	e := NewInputError(
		fmt.Sprintf("catalog export %s is required", path),
		"Export the firmware catalog from the site as export.csv (UTF-8, ';' separated)",
		"Or pass its location with --catalog <path>",
	)
	e.Err = err
	return e
}

// ConfigFileNotFound creates an error for a config file passed with --config that does not exist.
func ConfigFileNotFound(path string) *CLIError {
	return NewConfigError(
		fmt.Sprintf("config file not found: %s", path),
		"Check the path passed to --config",
		"Or drop --config to use .fwrelease/config.yml and defaults",
	)
}

// ConfigParseError creates an error for an unreadable config or tables file.
func ConfigParseError(path string, err error) *CLIError {
	e := NewConfigError(
		fmt.Sprintf("failed to load %s: %v", path, err),
		"Check the YAML syntax of the file",
		"Print the effective translation tables with: fwrelease tables",
	)
	e.Err = err
	return e
}

// FileNotWritable creates an error for an output file that cannot be written.
func FileNotWritable(path string, err error) *CLIError {
	e := NewRuntimeError(
		fmt.Sprintf("cannot write %s: %v", path, err),
		"Close the file if it is open in a spreadsheet program",
		"Or choose another location with --output <path>",
	)
	e.Err = err
	return e
}

// NothingToWrite creates an error for a run that produced no rows.
func NothingToWrite(changelogPath string) *CLIError {
	return NewRuntimeError(
		"no catalog rows matched the previous versions named in "+changelogPath,
		"Check that the export contains the current published versions",
		"Compare with: fwrelease parse and fwrelease check",
	)
}

// FromRunError converts an error returned while loading, parsing or merging into a
// CLIError that names the offending input. changelogPath is used for locations.
// Errors that already are CLIErrors are returned as they are.
func FromRunError(err error, changelogPath string) *CLIError {
	if err == nil {
		return nil
	}
	if cliErr := AsCLIError(err); cliErr != nil {
		return cliErr
	}

	var pe *changelog.ParseError
	if errors.As(err, &pe) {
		return fromParseError(pe, changelogPath)
	}

	var mc *catalog.MissingColumnError
	if errors.As(err, &mc) {
		e := NewFormatError(err.Error(), "", "",
			"Export the catalog with all properties selected",
			"Or map the column names under 'columns:' in the config file",
		)
		e.Err = err
		return e
	}

	switch {
	case errors.Is(err, textio.ErrMissingInput):
		return Wrap(err, Input, "Check the file path and permissions")
	case errors.Is(err, textio.ErrUnknownEncoding):
		return Wrap(err, Configuration, "Set encoding to one of: utf-8, windows-1251, koi8-r")
	case errors.Is(err, release.ErrMalformedDate):
		e := Wrap(err, Format, "Write release dates as dd.mm.yy. (e.g. 05.06.20.)")
		e.Location = changelogPath
		return e
	case errors.Is(err, release.ErrMalformedSortKey):
		return Wrap(err, Format, "Check the sort column of the catalog export; it must hold integers")
	}

	return Wrap(err, Runtime)
}

func fromParseError(pe *changelog.ParseError, changelogPath string) *CLIError {
	var remediation []string
	switch {
	case errors.Is(pe, changelog.ErrUnknownDeviceType):
		remediation = []string{
			"Use one of the known type labels before \"" + changelog.CommonMarker + "\" (see: fwrelease tables)",
			"Or add the label under device_types in the tables file",
		}
	case errors.Is(pe, changelog.ErrMalformedVersionLine):
		remediation = []string{
			"The line after a common header must read: Версия X.Y.Z от dd.mm.yy.",
		}
	case errors.Is(pe, changelog.ErrMalformedHeaderLine):
		remediation = []string{
			"Device headers must read: NAME Vx.y.z dd.mm.yy. (optional trailing comment in parentheses)",
		}
	}

	e := NewFormatError(
		fmt.Sprintf("%v: %s", pe.Kind, pe.Message),
		fmt.Sprintf("%s:%d", changelogPath, pe.Line),
		pe.Text,
		remediation...,
	)
	e.Err = pe
	return e
}
