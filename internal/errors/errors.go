// Package errors provides structured error reporting for the fwrelease CLI.
// Errors carry a category, the offending input fragment and remediation steps.
package errors

import (
	"errors"
	"fmt"
)

// ErrorCategory represents the type of error that occurred.
type ErrorCategory int

const (
	// Argument errors are caused by invalid command arguments or flags.
	Argument ErrorCategory = iota
	// Configuration errors are caused by an invalid config or tables file.
	Configuration
	// Input errors occur when an input file is missing or unreadable.
	Input
	// Format errors occur when the changelog or catalog text does not have the expected shape.
	Format
	// Runtime errors occur while writing output or watching files.
	Runtime
)

// String returns a human-readable name for the error category.
func (c ErrorCategory) String() string {
	switch c {
	case Argument:
		return "Argument Error"
	case Configuration:
		return "Configuration Error"
	case Input:
		return "Input Error"
	case Format:
		return "Format Error"
	case Runtime:
		return "Runtime Error"
	default:
		return "Error"
	}
}

// CLIError is a structured error with category and remediation guidance.
type CLIError struct {
	// Category is the type of error (Argument, Input, etc.)
	Category ErrorCategory
	// Message is a human-readable description of what went wrong.
	Message string
	// Location points into the input, e.g. "changes.txt:12". Optional.
	Location string
	// Fragment is the offending input text, shown verbatim. Optional.
	Fragment string
	// Remediation is a list of actionable steps to resolve the error.
	Remediation []string
	// Usage shows the correct command syntax (optional, for argument errors).
	Usage string
	// Err is the underlying error.
	Err error
}

// Error implements the error interface.
func (e *CLIError) Error() string {
	return e.Message
}

// Unwrap returns the underlying error so errors.Is sees through a CLIError.
func (e *CLIError) Unwrap() error {
	return e.Err
}

// NewArgumentError creates a new argument error with the given message and remediation steps.
func NewArgumentError(message string, remediation ...string) *CLIError {
	return &CLIError{
		Category:    Argument,
		Message:     message,
		Remediation: remediation,
	}
}

// NewArgumentErrorWithUsage creates a new argument error that includes correct usage syntax.
func NewArgumentErrorWithUsage(message, usage string, remediation ...string) *CLIError {
	return &CLIError{
		Category:    Argument,
		Message:     message,
		Usage:       usage,
		Remediation: remediation,
	}
}

// NewConfigError creates a new configuration error.
func NewConfigError(message string, remediation ...string) *CLIError {
	return &CLIError{
		Category:    Configuration,
		Message:     message,
		Remediation: remediation,
	}
}

// NewInputError creates a new input error.
func NewInputError(message string, remediation ...string) *CLIError {
	return &CLIError{
		Category:    Input,
		Message:     message,
		Remediation: remediation,
	}
}

// NewFormatError creates a format error pointing at a fragment of the input.
func NewFormatError(message, location, fragment string, remediation ...string) *CLIError {
	return &CLIError{
		Category:    Format,
		Message:     message,
		Location:    location,
		Fragment:    fragment,
		Remediation: remediation,
	}
}

// NewRuntimeError creates a new runtime error.
func NewRuntimeError(message string, remediation ...string) *CLIError {
	return &CLIError{
		Category:    Runtime,
		Message:     message,
		Remediation: remediation,
	}
}

// Wrap wraps an existing error with a CLIError, preserving the original message.
func Wrap(err error, category ErrorCategory, remediation ...string) *CLIError {
	if err == nil {
		return nil
	}
	return &CLIError{
		Category:    category,
		Message:     err.Error(),
		Remediation: remediation,
		Err:         err,
	}
}

// WrapWithMessage wraps an error with a custom message and category.
func WrapWithMessage(err error, category ErrorCategory, message string, remediation ...string) *CLIError {
	if err == nil {
		return nil
	}
	return &CLIError{
		Category:    category,
		Message:     fmt.Sprintf("%s: %v", message, err),
		Remediation: remediation,
		Err:         err,
	}
}

// IsCLIError checks if an error is, or wraps, a CLIError.
func IsCLIError(err error) bool {
	return AsCLIError(err) != nil
}

// AsCLIError attempts to convert an error to a CLIError.
// Returns nil if no CLIError is found in the chain.
func AsCLIError(err error) *CLIError {
	var cliErr *CLIError
	if errors.As(err, &cliErr) {
		return cliErr
	}
	return nil
}
