package errors

import (
	stdErrors "errors"
	"fmt"
)

// RequestError represents a transport failure or a 4xx (non-429) response.
type RequestError struct {
	Message string
	// StatusCode is zero when the request never produced a response.
	StatusCode int
	Err        error
}

func (e *RequestError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Err)
	}
	return e.Message
}

func (e *RequestError) Unwrap() error {
	return e.Err
}

// NewRequestError creates a RequestError wrapping a transport-level cause.
func NewRequestError(message string, cause error) *RequestError {
	return &RequestError{Message: message, Err: cause}
}

// NewRequestStatusError creates a RequestError for a rejected HTTP status.
func NewRequestStatusError(statusCode int, detail string) *RequestError {
	return &RequestError{
		Message:    fmt.Sprintf("error with request (%d): %s", statusCode, detail),
		StatusCode: statusCode,
	}
}

// IsRequestError reports whether err is a RequestError (even when wrapped).
func IsRequestError(err error) bool {
	var reqErr *RequestError
	return stdErrors.As(err, &reqErr)
}
