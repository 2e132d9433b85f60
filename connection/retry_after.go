package connection

import (
	"net/http"
	"strconv"
	"strings"
	"time"
)

// parseRetryAfter reads a Retry-After header given either as delta seconds
// or as an HTTP date. Missing, malformed or past values yield
// DefaultRetryAfter.
func parseRetryAfter(header string, now time.Time) time.Duration {
	header = strings.TrimSpace(header)
	if header == "" {
		return DefaultRetryAfter
	}

	if seconds, err := strconv.Atoi(header); err == nil {
		if seconds < 0 {
			return DefaultRetryAfter
		}
		return time.Duration(seconds) * time.Second
	}

	if when, err := http.ParseTime(header); err == nil {
		if delay := when.Sub(now); delay > 0 {
			return delay.Round(time.Second)
		}
	}
	return DefaultRetryAfter
}
