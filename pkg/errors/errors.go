// Package errors provides structured error types for the due module.
//
// This package defines error codes and types that enable:
//   - Consistent error handling across the library and the CLI
//   - Machine-readable error codes for programmatic handling
//   - User-friendly error messages
//   - Error wrapping with context preservation
//
// # Error Codes
//
// Error codes follow a hierarchical naming convention:
//   - INVALID_*: Precondition and input validation failures
//   - NOT_FOUND_*: Missing files
//   - UNREACHABLE / INTERNAL_*: Logic defects, never user errors
//
// Construction algorithms only check preconditions at their public entry
// points. The unchecked fast paths treat a violated precondition as undefined
// behavior, and a case analysis that falls through panics with an
// [ErrCodeUnreachable] error.
//
// # Usage
//
//	err := errors.New(errors.ErrCodeInvalidDomain, "lower bound %d >= upper bound %d", lo, hi)
//	if errors.Is(err, errors.ErrCodeInvalidDomain) {
//	    // Handle validation error
//	}
//
//	// Wrap existing errors
//	err := errors.Wrap(errors.ErrCodeInvalidFormat, origErr, "failed to decode %s", path)
package errors

import (
	"errors"
	"fmt"
)

// Code represents a machine-readable error code.
type Code string

// Error codes for different error categories.
const (
	// Input validation errors
	ErrCodeInvalidInput  Code = "INVALID_INPUT"
	ErrCodeInvalidDomain Code = "INVALID_DOMAIN"
	ErrCodeInvalidSite   Code = "INVALID_SITE"
	ErrCodeInvalidFormat Code = "INVALID_FORMAT"
	ErrCodeInvalidPath   Code = "INVALID_PATH"

	// Resource not found errors
	ErrCodeFileNotFound Code = "FILE_NOT_FOUND"

	// Verification errors
	ErrCodeMismatch Code = "MISMATCH"

	// Internal errors
	ErrCodeInternal    Code = "INTERNAL_ERROR"
	ErrCodeUnreachable Code = "UNREACHABLE"
	ErrCodeUnsupported Code = "UNSUPPORTED"
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

// Unreachable panics with an [ErrCodeUnreachable] error. Algorithms call it
// when a predicate returns a value their case analysis does not handle.
func Unreachable(format string, args ...any) {
	panic(New(ErrCodeUnreachable, format, args...))
}

// MismatchError reports the first cell at which two envelopes disagree.
type MismatchError struct {
	Index int    // First differing cell index
	Want  string // Rendering of the reference side
	Got   string // Rendering of the checked side
}

// Error implements the error interface.
func (e *MismatchError) Error() string {
	return fmt.Sprintf("mismatch at cell %d: want %s, got %s", e.Index, e.Want, e.Got)
}

// Code returns the error code for this error type.
func (e *MismatchError) Code() Code {
	return ErrCodeMismatch
}
