// Package errors provides structured error types for phrasenet.
//
// This package defines error codes and types that enable:
//   - Consistent error handling across CLI and API
//   - Machine-readable error codes for programmatic handling
//   - User-friendly error messages
//   - Error wrapping with context preservation
//
// # Error Codes
//
// Codes map onto the failure kinds of an analysis request:
//   - INVALID_*: the request itself is wrong; never retried
//   - ANNOTATOR_UNAVAILABLE: the chosen annotator could not be loaded
//   - MISSING_CAPABILITY: the annotator lacks data the linking mode needs
//   - PROCESSING_FAILED: anything else that went wrong during a run
//
// [HTTPStatus] maps each code onto a response status for the API.
//
// # Usage
//
//	err := errors.New(errors.ErrCodeInvalidInput, "max_nodes must be >= 0, got %d", n)
//	if errors.Is(err, errors.ErrCodeInvalidInput) {
//	    // Handle validation error
//	}
//
//	// Wrap existing errors
//	err := errors.Wrap(errors.ErrCodeAnnotatorUnavailable, origErr, "load %s", choice)
package errors

import (
	"errors"
	"fmt"
	"net/http"
)

// Code represents a machine-readable error code.
type Code string

// Error codes for different error categories.
const (
	// Input validation errors
	ErrCodeInvalidInput       Code = "INVALID_INPUT"
	ErrCodeInvalidLinkingType Code = "INVALID_LINKING_TYPE"
	ErrCodeInvalidFile        Code = "INVALID_FILE"
	ErrCodeUnsupported        Code = "UNSUPPORTED"

	// Annotator errors
	ErrCodeAnnotatorUnavailable Code = "ANNOTATOR_UNAVAILABLE"
	ErrCodeMissingCapability    Code = "MISSING_CAPABILITY"

	// Resource not found errors
	ErrCodeNotFound Code = "NOT_FOUND"

	// Network errors
	ErrCodeNetwork Code = "NETWORK_ERROR"

	// Internal errors
	ErrCodeProcessingFailed Code = "PROCESSING_FAILED"
	ErrCodeInternal         Code = "INTERNAL_ERROR"
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

// IsInvalid reports whether err belongs to the invalid-request family:
// INVALID_INPUT, INVALID_LINKING_TYPE or INVALID_FILE.
func IsInvalid(err error) bool {
	switch GetCode(err) {
	case ErrCodeInvalidInput, ErrCodeInvalidLinkingType, ErrCodeInvalidFile:
		return true
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

// HTTPStatus returns the response status for code. Unknown and empty codes
// map to 500.
func HTTPStatus(code Code) int {
	switch code {
	case ErrCodeInvalidInput, ErrCodeUnsupported:
		return http.StatusBadRequest
	case ErrCodeInvalidLinkingType, ErrCodeInvalidFile, ErrCodeMissingCapability:
		return http.StatusUnprocessableEntity
	case ErrCodeAnnotatorUnavailable:
		return http.StatusServiceUnavailable
	case ErrCodeNotFound:
		return http.StatusNotFound
	case ErrCodeNetwork:
		return http.StatusBadGateway
	default:
		return http.StatusInternalServerError
	}
}
