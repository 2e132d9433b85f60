// Package errors defines the error taxonomy returned by the OMDb client.
//
// Every error is a distinct pointer type so callers can branch with the IsXxx
// helpers (or errors.As) even when the error has been wrapped.
package errors

import (
	stdErrors "errors"
	"fmt"
)

// InvalidArgumentError reports a caller-supplied value that violates a
// precondition. It is always raised before any network call.
type InvalidArgumentError struct {
	Message string
}

func (e *InvalidArgumentError) Error() string {
	return e.Message
}

// NewInvalidArgumentError creates an InvalidArgumentError with a formatted message.
func NewInvalidArgumentError(format string, args ...any) *InvalidArgumentError {
	return &InvalidArgumentError{Message: fmt.Sprintf(format, args...)}
}

// IsInvalidArgumentError reports whether err is an InvalidArgumentError (even when wrapped).
func IsInvalidArgumentError(err error) bool {
	var argErr *InvalidArgumentError
	return stdErrors.As(err, &argErr)
}
