// Package errors defines the coded errors returned by tablecast.
//
// Every failure a caller can act on carries a [Code]: a bot can match on
// SCHEMA_MISMATCH to answer "your rows have different columns", while the
// CLI maps codes to exit statuses with [ExitCode]. [UserMessage] strips the
// code for replies shown to people.
//
// # Codes
//
//   - EMPTY_INPUT, SCHEMA_MISMATCH: the input cannot form a table
//   - INVALID_*: a malformed option, file or value
//   - FILE_NOT_FOUND: a named input, font or config file is missing
//   - INTERNAL_ERROR: a bug or an environment failure
//
// Coded errors are permanent; only cache backend failures are retried, and
// those are not coded.
//
//	err := errors.New(errors.ErrCodeSchemaMismatch, "record %d has keys %v", i, keys)
//	if errors.Is(err, errors.ErrCodeSchemaMismatch) {
//	    // reply with the expected columns
//	}
//
//	err = errors.Wrap(errors.ErrCodeInvalidFont, cause, "parse %s", path)
package errors

import (
	"errors"
	"fmt"
)

// Code represents a machine-readable error code.
type Code string

// Error codes for different error categories.
const (
	// Table shape errors
	ErrCodeEmptyInput     Code = "EMPTY_INPUT"
	ErrCodeSchemaMismatch Code = "SCHEMA_MISMATCH"

	// Input validation errors
	ErrCodeInvalidInput  Code = "INVALID_INPUT"
	ErrCodeInvalidAlign  Code = "INVALID_ALIGN"
	ErrCodeInvalidColor  Code = "INVALID_COLOR"
	ErrCodeInvalidFormat Code = "INVALID_FORMAT"
	ErrCodeInvalidFont   Code = "INVALID_FONT"
	ErrCodeInvalidConfig Code = "INVALID_CONFIG"
	ErrCodeInvalidPath   Code = "INVALID_PATH"

	// Resource not found errors
	ErrCodeFileNotFound Code = "FILE_NOT_FOUND"

	// Internal errors
	ErrCodeInternal Code = "INTERNAL_ERROR"
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

// Wrap creates a new Error wrapping an existing error.
func Wrap(code Code, cause error, format string, args ...any) *Error {
	return &Error{
		Code:    code,
		Message: fmt.Sprintf(format, args...),
		Cause:   cause,
	}
}

// Is reports whether err has the given error code.
// It unwraps the error chain looking for an *Error with a matching code.
func Is(err error, code Code) bool {
	var e *Error
	if errors.As(err, &e) {
		return e.Code == code
	}
	return false
}

// GetCode extracts the error code from an error, if available.
// Returns empty string if the error is not an *Error.
func GetCode(err error) Code {
	var e *Error
	if errors.As(err, &e) {
		return e.Code
	}
	return ""
}

// UserMessage returns a user-friendly message for the error.
// For *Error types, returns the message without the code prefix.
// For other errors, returns the error string as-is.
func UserMessage(err error) string {
	var e *Error
	if errors.As(err, &e) {
		return e.Message
	}
	return err.Error()
}

// Exit statuses returned by [ExitCode].
const (
	ExitOK       = 0
	ExitFailure  = 1
	ExitBadInput = 2
)

// ExitCode maps err to a process exit status: [ExitOK] for nil,
// [ExitBadInput] for coded errors other than INTERNAL_ERROR and
// [ExitFailure] for everything else.
func ExitCode(err error) int {
	switch GetCode(err) {
	case "":
		if err == nil {
			return ExitOK
		}
		return ExitFailure
	case ErrCodeInternal:
		return ExitFailure
	default:
		return ExitBadInput
	}
}
