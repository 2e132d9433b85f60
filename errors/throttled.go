package errors

import (
	stdErrors "errors"
	"fmt"
	"time"
)

// ThrottledError is returned when the service answers 429 Too Many Requests.
// The client never retries; RetryAfter tells the caller when it may.
type ThrottledError struct {
	Message    string
	RetryAfter time.Duration
}

func (e *ThrottledError) Error() string {
	if e.RetryAfter > 0 {
		return fmt.Sprintf("%s (retry after %s)", e.Message, e.RetryAfter)
	}
	return e.Message
}

// NewThrottledError creates a ThrottledError with the given retry delay.
func NewThrottledError(message string, retryAfter time.Duration) *ThrottledError {
	return &ThrottledError{Message: message, RetryAfter: retryAfter}
}

// IsThrottledError reports whether err is a ThrottledError (even when wrapped).
func IsThrottledError(err error) bool {
	var throttled *ThrottledError
	return stdErrors.As(err, &throttled)
}

// RetryAfter extracts the retry delay from a wrapped ThrottledError.
func RetryAfter(err error) (time.Duration, bool) {
	var throttled *ThrottledError
	if stdErrors.As(err, &throttled) {
		return throttled.RetryAfter, true
	}
	return 0, false
}
