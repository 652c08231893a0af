package apperrors

import (
	"errors"
	"net/http"
	"strings"

	"github.com/avdwerf/userbase/pkg/logger"
)

// Response is the JSON body rendered for a failed request. Details is
// omitted from the encoded body entirely when no caller populated it.
type Response struct {
	Error   string `json:"error"`
	Message string `json:"message"`
	Details any    `json:"details,omitempty"`
}

// Translate maps an error to its HTTP status and response body. It is
// total: any error value, of any type (or nil), produces a well-formed
// response. Its single side effect is one diagnostic log entry per call,
// carrying the full context chain; the chain never leaks into the body.
//
// Translation is pure apart from logging: translating the same error
// twice yields identical results.
func Translate(err error) (int, Response) {
	e := coerce(err)
	logTranslated(e)
	return e.Code.HTTPStatus(), Response{
		Error:   e.Code.String(),
		Message: e.Message,
		Details: e.Details,
	}
}

// coerce converts any error into an *Error, wrapping foreign values as
// CodeInternal. A nil error, or a non-nil interface holding a typed-nil
// *Error, coerces to a generic internal error so the boundary never
// panics on a misused call site.
func coerce(err error) *Error {
	if err == nil {
		return &Error{Code: CodeInternal, Message: "unknown error"}
	}
	var e *Error
	if errors.As(err, &e) {
		if e == nil {
			return &Error{Code: CodeInternal, Message: "unknown error"}
		}
		return e
	}
	return Internal(err)
}

// logTranslated applies the severity policy. Server errors log at error
// level. Unauthorized and Forbidden log at warn level: they are client
// errors but operationally significant. Everything else logs at debug.
// Only Translate calls this, so each translation logs exactly once.
func logTranslated(e *Error) {
	diag := strings.Join(e.Chain(), ": ")
	switch {
	case e.Code.HTTPStatus() >= http.StatusInternalServerError:
		logger.Error("%s: %s", e.Code, diag)
	case e.Code == CodeUnauthorized || e.Code == CodeForbidden:
		logger.Warn("%s: %s", e.Code, diag)
	default:
		logger.Debug("%s: %s", e.Code, diag)
	}
}
