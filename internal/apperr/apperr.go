// Package apperr provides the typed failures returned by registries and services.
package apperr

import (
	"errors"
	"fmt"
)

// Code is a machine-readable failure category.
type Code string

const (
	CodeUnknown         Code = "UNKNOWN"
	CodeNotFound        Code = "NOT_FOUND"
	CodeConflict        Code = "CONFLICT"
	CodeInvalidArgument Code = "INVALID_ARGUMENT"
	// CodeInternal marks a corrupted internal pointer. It aborts the current
	// operation only.
	CodeInternal Code = "INTERNAL"
)

// Error is the domain error type.
type Error struct {
	Code    Code
	Message string
	Cause   error
}

// Error implements the error interface.
func (e *Error) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Cause)
	}
	return e.Message
}

// Unwrap returns the underlying cause for error chain traversal.
func (e *Error) Unwrap() error {
	return e.Cause
}

// Is reports whether target matches this error by code.
func (e *Error) Is(target error) bool {
	if t, ok := target.(*Error); ok {
		return e.Code == t.Code
	}
	return false
}

// Sentinels for errors.Is comparisons.
var (
	ErrNotFound        = &Error{Code: CodeNotFound}
	ErrConflict        = &Error{Code: CodeConflict}
	ErrInvalidArgument = &Error{Code: CodeInvalidArgument}
	ErrInternal        = &Error{Code: CodeInternal}
)

// New creates a domain error with a code and message.
func New(code Code, message string) *Error {
	return &Error{Code: code, Message: message}
}

// Wrap creates a domain error that wraps an underlying cause.
func Wrap(code Code, message string, cause error) *Error {
	return &Error{Code: code, Message: message, Cause: cause}
}

// NotFound reports an unknown id or name.
func NotFound(format string, args ...any) *Error {
	return New(CodeNotFound, fmt.Sprintf(format, args...))
}

// Conflict reports that an invariant would be violated.
func Conflict(format string, args ...any) *Error {
	return New(CodeConflict, fmt.Sprintf(format, args...))
}

// InvalidArgument reports malformed input.
func InvalidArgument(format string, args ...any) *Error {
	return New(CodeInvalidArgument, fmt.Sprintf(format, args...))
}

// Internal reports a corrupted internal reference.
func Internal(format string, args ...any) *Error {
	return New(CodeInternal, fmt.Sprintf(format, args...))
}

// CodeOf extracts the code from err, or CodeUnknown when err carries none.
func CodeOf(err error) Code {
	var e *Error
	if errors.As(err, &e) {
		return e.Code
	}
	return CodeUnknown
}
