package errors

import (
	stdErrors "errors"
	"fmt"
)

// ParseError reports a single field value that could not be converted.
type ParseError struct {
	// Field is the wire name of the field, when known.
	Field string
	Value string
	Err   error
}

func (e *ParseError) Error() string {
	msg := fmt.Sprintf("cannot parse %q", e.Value)
	if e.Field != "" {
		msg = fmt.Sprintf("field %s: %s", e.Field, msg)
	}
	if e.Err != nil {
		msg += ": " + e.Err.Error()
	}
	return msg
}

func (e *ParseError) Unwrap() error {
	return e.Err
}

// NewParseError creates a ParseError for a raw value.
func NewParseError(value string, cause error) *ParseError {
	return &ParseError{Value: value, Err: cause}
}

// IsParseError reports whether err is a ParseError (even when wrapped).
func IsParseError(err error) bool {
	var parseErr *ParseError
	return stdErrors.As(err, &parseErr)
}

// ResponseParseError is returned when a body does not have the JSON shape
// expected for the failure envelope or for the requested type.
type ResponseParseError struct {
	Message string
	Err     error
}

func (e *ResponseParseError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Err)
	}
	return e.Message
}

func (e *ResponseParseError) Unwrap() error {
	return e.Err
}

// NewResponseParseError wraps a decoding failure.
func NewResponseParseError(cause error) *ResponseParseError {
	return &ResponseParseError{Message: "error parsing response", Err: cause}
}

// IsResponseParseError reports whether err is a ResponseParseError (even when wrapped).
func IsResponseParseError(err error) bool {
	var parseErr *ResponseParseError
	return stdErrors.As(err, &parseErr)
}
