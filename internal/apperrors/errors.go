// Package apperrors provides typed error handling for the userbase API.
// Every failure that reaches the HTTP boundary is classified into one of
// a fixed set of codes, each with a stable machine-readable identifier
// and an HTTP status. Failures that cannot be classified are carried by
// CodeInternal together with an ordered chain of context strings that
// preserves the full diagnostic narrative.
package apperrors

import (
	"fmt"
	"net/http"
)

// Code categorizes errors for consistent handling across the application.
type Code int

// Error codes for categorizing application errors.
const (
	// CodeInternal indicates an unclassified or explicitly escalated failure.
	// It is the zero value so that a coerced foreign error defaults to it.
	CodeInternal Code = iota
	// CodeBadRequest indicates structurally malformed input
	CodeBadRequest
	// CodeUnauthorized indicates missing or invalid credentials
	CodeUnauthorized
	// CodeForbidden indicates the caller is authenticated but not permitted
	CodeForbidden
	// CodeNotFound indicates a referenced resource does not exist
	CodeNotFound
	// CodeConflict indicates a state conflict such as a uniqueness violation
	CodeConflict
	// CodeValidation indicates semantically invalid input
	CodeValidation
	// CodeDatabase indicates a persistence-layer failure
	CodeDatabase
	// CodeConfig indicates a configuration-loading failure
	CodeConfig
	// CodeSerialization indicates a payload encode/decode failure
	CodeSerialization
)

// String returns the stable machine-readable code emitted in responses.
func (c Code) String() string {
	switch c {
	case CodeBadRequest:
		return "BAD_REQUEST"
	case CodeUnauthorized:
		return "UNAUTHORIZED"
	case CodeForbidden:
		return "FORBIDDEN"
	case CodeNotFound:
		return "NOT_FOUND"
	case CodeConflict:
		return "CONFLICT"
	case CodeValidation:
		return "VALIDATION_ERROR"
	case CodeDatabase:
		return "DATABASE_ERROR"
	case CodeConfig:
		return "CONFIG_ERROR"
	case CodeSerialization:
		return "SERIALIZATION_ERROR"
	case CodeInternal:
		return "INTERNAL_ERROR"
	default:
		return "INTERNAL_ERROR"
	}
}

// HTTPStatus returns the HTTP status code for this error code.
// Several codes legitimately share a status; each keeps its own
// stable code string.
func (c Code) HTTPStatus() int {
	switch c {
	case CodeBadRequest, CodeSerialization:
		return http.StatusBadRequest
	case CodeUnauthorized:
		return http.StatusUnauthorized
	case CodeForbidden:
		return http.StatusForbidden
	case CodeNotFound:
		return http.StatusNotFound
	case CodeConflict:
		return http.StatusConflict
	case CodeValidation:
		return http.StatusUnprocessableEntity
	default:
		return http.StatusInternalServerError
	}
}

// Error represents a classified application error. The Message field is
// always safe to expose to clients and is rendered verbatim. The cause
// and context chain are for logging only.
//
// An Error is immutable once it leaves its construction site: the
// context-attachment helpers in this package return new values instead
// of modifying existing ones. Construction performs no I/O and no
// logging; logging happens once, at translation time.
type Error struct {
	Code    Code   // Error category, fixed at construction
	Message string // User-safe message (always exposable)
	Details any    // Optional structured payload for the response body
	chain   []string
	cause   error
}

// Error implements the error interface.
// Returns the user-safe message.
func (e *Error) Error() string {
	return e.Message
}

// Unwrap returns the root cause for errors.Is/As support.
func (e *Error) Unwrap() error {
	return e.cause
}

// Is reports whether target matches this error's code.
func (e *Error) Is(target error) bool {
	if t, ok := target.(*Error); ok {
		return e.Code == t.Code
	}
	return false
}

// WithDetails attaches a structured payload that is rendered in the
// response body. For use at the construction site only.
func (e *Error) WithDetails(details any) *Error {
	e.Details = details
	return e
}

// Wrap records an underlying error without changing the classification.
// For use at the construction site only.
func (e *Error) Wrap(err error) *Error {
	e.cause = err
	return e
}

// Chain returns the full diagnostic narrative of the error, innermost
// (original failure) first. For distinguished codes this is the single
// message; for CodeInternal it is the root cause's display message
// followed by every attached context string in the order it was added.
func (e *Error) Chain() []string {
	out := make([]string, 0, len(e.chain)+1)
	out = append(out, e.Message)
	return append(out, e.chain...)
}

// BadRequest creates a new bad request error with the given message.
func BadRequest(message string) *Error {
	return &Error{Code: CodeBadRequest, Message: message}
}

// Unauthorized creates a new unauthorized error with the given message.
func Unauthorized(message string) *Error {
	return &Error{Code: CodeUnauthorized, Message: message}
}

// Forbidden creates a new forbidden error with the given message.
func Forbidden(message string) *Error {
	return &Error{Code: CodeForbidden, Message: message}
}

// NotFound creates a new not found error with the given message.
func NotFound(message string) *Error {
	return &Error{Code: CodeNotFound, Message: message}
}

// NotFoundf creates a new not found error with a formatted message.
func NotFoundf(format string, args ...any) *Error {
	return NotFound(fmt.Sprintf(format, args...))
}

// Conflict creates a new conflict error with the given message.
func Conflict(message string) *Error {
	return &Error{Code: CodeConflict, Message: message}
}

// Validation creates a new validation error with the given message.
func Validation(message string) *Error {
	return &Error{Code: CodeValidation, Message: message}
}

// Validationf creates a new validation error with a formatted message.
func Validationf(format string, args ...any) *Error {
	return Validation(fmt.Sprintf(format, args...))
}

// Database creates a new database error with the given message.
func Database(message string) *Error {
	return &Error{Code: CodeDatabase, Message: message}
}

// Config creates a new configuration error with the given message.
func Config(message string) *Error {
	return &Error{Code: CodeConfig, Message: message}
}

// Serialization creates a new serialization error with the given message.
func Serialization(message string) *Error {
	return &Error{Code: CodeSerialization, Message: message}
}

// Internal wraps an arbitrary failure as an unclassified error. The
// root cause is preserved, never discarded, and its display message
// becomes the error's client-facing message.
func Internal(cause error) *Error {
	if cause == nil {
		return &Error{Code: CodeInternal, Message: "internal error"}
	}
	return &Error{Code: CodeInternal, Message: cause.Error(), cause: cause}
}

// Internalf creates an unclassified error from a formatted message.
func Internalf(format string, args ...any) *Error {
	return &Error{Code: CodeInternal, Message: fmt.Sprintf(format, args...)}
}
