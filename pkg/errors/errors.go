// Package errors provides structured error types for globalplace.
//
// Placement failures fall into a small taxonomy, each with its own code:
//   - Configuration errors: a fixed-location attribute names a site that does
//     not exist, has an incompatible type, or is already taken by another cell
//   - Legality errors: a freshly bound site fails the device's legality check
//   - Input errors: malformed netlist, device or config files
//   - UNFINISHED: the run reached a phase that is not implemented yet
//
// Broken internal invariants (out-of-range bin coordinates, draining an
// unsorted bin) are not represented here; they panic.
//
// # Usage
//
//	err := errors.New(errors.ErrCodeSiteNotFound, "no site named %q", name)
//	if errors.Is(err, errors.ErrCodeSiteNotFound) {
//	    // fix the constraint file
//	}
//
//	err := errors.Wrap(errors.ErrCodeInvalidInput, origErr, "read %s", path)
package errors

import (
	"errors"
	"fmt"
)

// Code represents a machine-readable error code.
type Code string

// Error codes for different error categories.
const (
	// Input errors
	ErrCodeInvalidInput   Code = "INVALID_INPUT"
	ErrCodeInvalidNetlist Code = "INVALID_NETLIST"
	ErrCodeInvalidDevice  Code = "INVALID_DEVICE"
	ErrCodeInvalidConfig  Code = "INVALID_CONFIG"
	ErrCodeFileNotFound   Code = "FILE_NOT_FOUND"

	// Constraint configuration errors
	ErrCodeSiteNotFound     Code = "SITE_NOT_FOUND"
	ErrCodeSiteTypeMismatch Code = "SITE_TYPE_MISMATCH"
	ErrCodeSiteConflict     Code = "SITE_CONFLICT"

	// Legality errors
	ErrCodeIllegalLocation Code = "ILLEGAL_LOCATION"

	// Run state
	ErrCodeUnfinished Code = "UNFINISHED"
	ErrCodeInternal   Code = "INTERNAL_ERROR"
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

// IsConfiguration reports whether err is a constraint configuration error
// (missing site, type mismatch or conflicting binding).
func IsConfiguration(err error) bool {
	switch GetCode(err) {
	case ErrCodeSiteNotFound, ErrCodeSiteTypeMismatch, ErrCodeSiteConflict:
		return true
	}
	return false
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
