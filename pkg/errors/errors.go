// Package errors provides coded error types shared by the evotree libraries
// and the CLI.
//
// Codes are machine-readable and stable, so the CLI can map them to exit
// messages and tests can assert on them without string matching:
//
//   - INVALID_*: input that failed validation (trees, configs, formats)
//   - *_NOT_FOUND: lookups that found nothing
//   - UNSUPPORTED, INTERNAL_ERROR: everything else
//
// # Usage
//
//	err := errors.New(errors.ErrCodeInvalidTree, "duplicate node id %d", id)
//	if errors.Is(err, errors.ErrCodeInvalidTree) {
//	    // reject the tree file
//	}
//
//	err = errors.Wrap(errors.ErrCodeFileNotFound, origErr, "open %s", path)
package errors

import (
	"errors"
	"fmt"
)

// Code represents a machine-readable error code.
type Code string

const (
	// Validation failures
	ErrCodeInvalidInput  Code = "INVALID_INPUT"
	ErrCodeInvalidTree   Code = "INVALID_TREE"
	ErrCodeInvalidConfig Code = "INVALID_CONFIG"
	ErrCodeInvalidFormat Code = "INVALID_FORMAT"

	// Lookups
	ErrCodeNodeNotFound Code = "NODE_NOT_FOUND"
	ErrCodeFileNotFound Code = "FILE_NOT_FOUND"

	ErrCodeUnsupported Code = "UNSUPPORTED"
	ErrCodeInternal    Code = "INTERNAL_ERROR"
)

// Error is a structured error with a code and optional cause.
type Error struct {
	Code    Code   // Machine-readable error code
	Message string // Human-readable message
	Cause   error  // Underlying error (optional)
}

// Error implements the error interface.
func (e *Error) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("%s: %s: %v", e.Code, e.Message, e.Cause)
	}
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

// Unwrap returns the underlying cause for errors.Is/As compatibility.
func (e *Error) Unwrap() error {
	return e.Cause
}

// New creates a new Error with the given code and formatted message.
func New(code Code, format string, args ...any) *Error {
	return &Error{
		Code:    code,
		Message: fmt.Sprintf(format, args...),
	}
}

// Wrap creates a new Error wrapping cause.
func Wrap(code Code, cause error, format string, args ...any) *Error {
	return &Error{
		Code:    code,
		Message: fmt.Sprintf(format, args...),
		Cause:   cause,
	}
}

// Is reports whether the outermost *Error in err's chain carries code.
func Is(err error, code Code) bool {
	var e *Error
	if errors.As(err, &e) {
		return e.Code == code
	}
	return false
}

// GetCode extracts the error code from err, or "" if err is not an *Error.
func GetCode(err error) Code {
	var e *Error
	if errors.As(err, &e) {
		return e.Code
	}
	return ""
}

// UserMessage returns the message without the code prefix for *Error values
// and the plain error string otherwise.
func UserMessage(err error) string {
	var e *Error
	if errors.As(err, &e) {
		return e.Message
	}
	return err.Error()
}
