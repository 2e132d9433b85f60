package model

import (
	"fmt"

	"github.com/lepinkainen/omdb/errors"
)

// MediaType is the kind of a title as reported and accepted by OMDb.
type MediaType string

const (
	MediaTypeMovie   MediaType = "movie"
	MediaTypeSeries  MediaType = "series"
	MediaTypeEpisode MediaType = "episode"
)

// ParseMediaType converts the service literal into a MediaType. Matching is
// case-sensitive; anything other than "movie", "series" or "episode" fails.
func ParseMediaType(value string) (MediaType, error) {
	switch MediaType(value) {
	case MediaTypeMovie, MediaTypeSeries, MediaTypeEpisode:
		return MediaType(value), nil
	default:
		return "", errors.NewParseError(value, fmt.Errorf("unknown media type"))
	}
}

func (t MediaType) String() string {
	return string(t)
}

// MarshalText emits the service literal.
func (t MediaType) MarshalText() ([]byte, error) {
	return []byte(t), nil
}

// UnmarshalText accepts only the service literals. Empty text decodes to the
// absent type.
func (t *MediaType) UnmarshalText(text []byte) error {
	if len(text) == 0 {
		*t = ""
		return nil
	}
	parsed, err := ParseMediaType(string(text))
	if err != nil {
		return err
	}
	*t = parsed
	return nil
}
