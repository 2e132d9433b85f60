package errors

import (
	stdErrors "errors"
	"fmt"
)

// ResponseError is returned for unsuccessful non-4xx statuses and for 200
// responses whose body reports a logical failure. For the latter, Message is
// the service's own error text, unchanged.
type ResponseError struct {
	Message    string
	StatusCode int
}

func (e *ResponseError) Error() string {
	return e.Message
}

// NewResponseError creates a ResponseError carrying a service-reported message.
func NewResponseError(message string) *ResponseError {
	return &ResponseError{Message: message}
}

// NewResponseStatusError creates a ResponseError for an unsuccessful HTTP status.
func NewResponseStatusError(statusCode int, detail string) *ResponseError {
	return &ResponseError{
		Message:    fmt.Sprintf("unsuccessful response (%d): %s", statusCode, detail),
		StatusCode: statusCode,
	}
}

// IsResponseError reports whether err is a ResponseError (even when wrapped).
func IsResponseError(err error) bool {
	var respErr *ResponseError
	return stdErrors.As(err, &respErr)
}
