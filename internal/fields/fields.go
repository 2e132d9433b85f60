// Package fields converts the loosely typed scalar values OMDb returns into
// typed values. OMDb encodes numbers, dates and lists as strings and uses the
// literal "N/A" in place of null; every function here treats that sentinel
// and blank strings as absent.
package fields

import (
	"fmt"
	"math"
	"strconv"
	"strings"
	"time"

	"github.com/lepinkainen/omdb/errors"
)

const (
	// NotAvailable is the sentinel OMDb uses for missing scalar values.
	NotAvailable = "N/A"
	// ListDelimiter separates entries of list fields such as Genre or Actors.
	ListDelimiter = ","
	// MediaDateLayout matches movie and series dates, e.g. "05 May 2000".
	MediaDateLayout = "2 Jan 2006"
	// EpisodeDateLayout matches season episode dates, e.g. "2011-04-17".
	EpisodeDateLayout = "2006-01-02"
)

// IsAbsent reports whether raw is blank or the "N/A" sentinel.
func IsAbsent(raw string) bool {
	return strings.TrimSpace(raw) == "" || raw == NotAvailable
}

// String returns raw unchanged unless it is absent.
func String(raw string) (string, bool) {
	if IsAbsent(raw) {
		return "", false
	}
	return raw, true
}

// Int parses a base-10 integer, ignoring thousands separators ("1,728,425").
func Int(raw string) (*int, error) {
	value, ok := String(raw)
	if !ok {
		return nil, nil
	}

	n, err := strconv.Atoi(strings.ReplaceAll(value, ListDelimiter, ""))
	if err != nil {
		return nil, errors.NewParseError(raw, err)
	}
	return &n, nil
}

// Float parses a decimal value such as an IMDb rating ("8.5").
func Float(raw string) (*float64, error) {
	value, ok := String(raw)
	if !ok {
		return nil, nil
	}

	f, err := strconv.ParseFloat(value, 64)
	if err != nil {
		return nil, errors.NewParseError(raw, err)
	}
	if math.IsNaN(f) || math.IsInf(f, 0) {
		return nil, errors.NewParseError(raw, fmt.Errorf("not a finite number"))
	}
	return &f, nil
}

// List splits a comma-delimited value into its trimmed, non-blank entries.
// The result is never nil.
func List(raw string) []string {
	value, ok := String(raw)
	if !ok {
		return []string{}
	}

	parts := strings.Split(value, ListDelimiter)
	result := make([]string, 0, len(parts))
	for _, part := range parts {
		part = strings.TrimSpace(part)
		if part == "" {
			continue
		}
		result = append(result, part)
	}
	return result
}

// Date parses raw with MediaDateLayout, falling back to EpisodeDateLayout.
// The returned time is midnight UTC.
func Date(raw string) (*time.Time, error) {
	value, ok := String(raw)
	if !ok {
		return nil, nil
	}

	if t, err := time.Parse(MediaDateLayout, value); err == nil {
		return &t, nil
	}

	t, err := time.Parse(EpisodeDateLayout, value)
	if err != nil {
		return nil, errors.NewParseError(raw, err)
	}
	return &t, nil
}
