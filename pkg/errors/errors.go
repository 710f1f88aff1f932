// Package errors provides structured error types for the loomui engine.
//
// This package defines error codes and types that enable:
//   - Consistent error handling across CLI, API, and library consumers
//   - Machine-readable error codes for programmatic handling
//   - User-friendly error messages
//   - Error wrapping with context preservation
//
// # Error Codes
//
// Error codes are grouped by pipeline stage:
//   - DOCUMENT_*: structural failures of the whole document (fatal to the screen)
//   - LAYOUT_*: constraint failures scoped to individual views (non-fatal)
//   - RENDER_*: dispatch failures scoped to individual entities (non-fatal)
//
// Only DOCUMENT_* codes abort a screen. LAYOUT_* and RENDER_* codes are
// collected as diagnostics next to a best-effort result; see [Diagnostic].
//
// # Usage
//
//	err := errors.New(errors.ErrCodeMalformed, "entity %d has no id", i)
//	if errors.Is(err, errors.ErrCodeMalformed) {
//	    // Handle structural failure
//	}
//
//	// Wrap existing errors
//	err := errors.Wrap(errors.ErrCodeMalformed, jsonErr, "decode document")
package errors

import (
	"errors"
	"fmt"
)

// Code represents a machine-readable error code.
type Code string

// Error codes for each stage of the pipeline.
const (
	// Document errors - fatal to the whole screen, no partial result.
	ErrCodeMalformed   Code = "DOCUMENT_MALFORMED"
	ErrCodeDuplicateID Code = "DOCUMENT_DUPLICATE_ID"

	// Layout errors - scoped to the offending view(s).
	ErrCodeUnresolvedReference Code = "LAYOUT_UNRESOLVED_REFERENCE"
	ErrCodeAxisMismatch        Code = "LAYOUT_AXIS_MISMATCH"
	ErrCodeAmbiguousFill       Code = "LAYOUT_AMBIGUOUS_FILL"
	ErrCodeCyclicConstraint    Code = "LAYOUT_CYCLIC_CONSTRAINT"
	ErrCodeInvalidSize         Code = "LAYOUT_INVALID_SIZE"

	// Render errors - scoped to the offending entity.
	ErrCodeUnknownType      Code = "RENDER_UNKNOWN_TYPE"
	ErrCodeMissingAttribute Code = "RENDER_MISSING_ATTRIBUTE"

	// Collaborator errors (store, cache, config, API).
	ErrCodeNotFound      Code = "NOT_FOUND"
	ErrCodeInvalidInput  Code = "INVALID_INPUT"
	ErrCodeInvalidConfig Code = "INVALID_CONFIG"
	ErrCodeInternal      Code = "INTERNAL_ERROR"
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

// IsDocument reports whether the code identifies a document-level failure.
// Document failures abort the whole screen; all other codes are per-entity.
func (c Code) IsDocument() bool {
	return c == ErrCodeMalformed || c == ErrCodeDuplicateID
}
