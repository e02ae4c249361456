package cli

import (
	"errors"
	"fmt"
)

// Exit codes for the fwrelease CLI
const (
	// ExitSuccess indicates successful command execution
	ExitSuccess = 0

	// ExitFailed indicates a failed run, or a consistency warning for 'check'
	ExitFailed = 1

	// ExitInvalidArguments indicates invalid command arguments or configuration
	ExitInvalidArguments = 3

	// ExitMissingInput indicates the changelog or catalog file is missing
	ExitMissingInput = 4
)

// Command groups shown in help output.
const (
	GroupRelease       = "release"
	GroupInspect       = "inspect"
	GroupConfiguration = "configuration"
)

// ExitError carries a process exit code without an additional message.
// The message, if any, has already been printed.
type ExitError struct {
	Code int
}

func (e *ExitError) Error() string {
	return fmt.Sprintf("exit code %d", e.Code)
}

// NewExitError returns an ExitError with the given code.
func NewExitError(code int) error {
	return &ExitError{Code: code}
}

// ExitCode maps an error returned by Execute to a process exit code.
func ExitCode(err error) int {
	if err == nil {
		return ExitSuccess
	}
	var exitErr *ExitError
	if errors.As(err, &exitErr) {
		return exitErr.Code
	}
	return ExitFailed
}
