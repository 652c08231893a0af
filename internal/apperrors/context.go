package apperrors

import "fmt"

// Context converts err into a CodeInternal error and appends msg as the
// outermost entry of its context chain. Returns nil if err is nil.
//
// If err is already a CodeInternal *Error, the result is a new error
// sharing the same root cause with msg appended to a copy of the chain;
// the original error is never modified and no nesting occurs. Any other
// error, including distinguished *Error values, becomes the root cause
// of a fresh chain. The root's own nested causes stay reachable via
// errors.Unwrap.
func Context(err error, msg string) error {
	if err == nil {
		return nil
	}

	if e, ok := err.(*Error); ok && e.Code == CodeInternal {
		chain := make([]string, len(e.chain), len(e.chain)+1)
		copy(chain, e.chain)
		return &Error{
			Code:    CodeInternal,
			Message: e.Message,
			cause:   e.cause,
			chain:   append(chain, msg),
		}
	}

	return &Error{
		Code:    CodeInternal,
		Message: err.Error(),
		cause:   err,
		chain:   []string{msg},
	}
}

// Contextf is Context with a formatted message. The message is not
// formatted when err is nil.
func Contextf(err error, format string, args ...any) error {
	if err == nil {
		return nil
	}
	return Context(err, fmt.Sprintf(format, args...))
}

// ContextFunc is Context with a lazily computed message. The closure is
// only invoked on the failure path.
func ContextFunc(err error, fn func() string) error {
	if err == nil {
		return nil
	}
	return Context(err, fn())
}

// Attach adds context to the error half of a (value, error) result.
// On success the value passes through untouched.
//
// Usage:
//
//	cfg, err := apperrors.Attach(load(path), "loading config")
func Attach[T any](v T, err error, msg string) (T, error) {
	if err == nil {
		return v, nil
	}
	return v, Context(err, msg)
}

// AttachFunc is Attach with a lazily computed context message.
func AttachFunc[T any](v T, err error, fn func() string) (T, error) {
	if err == nil {
		return v, nil
	}
	return v, Context(err, fn())
}
