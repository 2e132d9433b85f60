// Package codec converts OMDb JSON documents into model values and back.
package codec

import (
	"encoding/json"
	"fmt"
	"log/slog"
	"reflect"

	"github.com/lepinkainen/omdb/errors"
	"github.com/lepinkainen/omdb/internal/fields"
	"github.com/lepinkainen/omdb/internal/wire"
	"github.com/lepinkainen/omdb/model"
)

// Codec decodes response bodies into model types. It holds no mutable state
// and is safe for concurrent use.
type Codec struct {
	logger *slog.Logger
}

// Option configures a Codec.
type Option func(*Codec)

// WithLogger sets the logger used for decode diagnostics.
func WithLogger(logger *slog.Logger) Option {
	return func(c *Codec) {
		if logger != nil {
			c.logger = logger
		}
	}
}

// New creates a Codec.
func New(opts ...Option) *Codec {
	c := &Codec{logger: slog.Default()}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Decode parses body into target. The model types get field-by-field
// conversion; any other pointer is filled by encoding/json. In both cases
// "N/A" and blank strings end up as "". Every failure is returned as a
// *errors.ResponseParseError.
func (c *Codec) Decode(body []byte, target any) error {
	if rv := reflect.ValueOf(target); rv.Kind() != reflect.Pointer || rv.IsNil() {
		return errors.NewResponseParseError(fmt.Errorf("decode target must be a non-nil pointer, got %T", target))
	}

	conv := &converter{logger: c.logger}

	switch t := target.(type) {
	case *model.Movie:
		var w wire.Movie
		if err := unmarshal(body, &w); err != nil {
			return err
		}
		*t = conv.movie(w)
	case *model.Series:
		var w wire.Series
		if err := unmarshal(body, &w); err != nil {
			return err
		}
		*t = conv.series(w)
	case *model.Episode:
		var w wire.Episode
		if err := unmarshal(body, &w); err != nil {
			return err
		}
		*t = conv.episode(w)
	case *model.Season:
		var w wire.Season
		if err := unmarshal(body, &w); err != nil {
			return err
		}
		*t = conv.season(w)
	case *model.SearchResponse:
		var w wire.SearchResponse
		if err := unmarshal(body, &w); err != nil {
			return err
		}
		*t = conv.searchResponse(w)
	default:
		return unmarshal(body, target)
	}

	if conv.err != nil {
		return errors.NewResponseParseError(conv.err)
	}
	return nil
}

func unmarshal(body []byte, target any) error {
	if err := json.Unmarshal(body, target); err != nil {
		return errors.NewResponseParseError(err)
	}
	fields.Scrub(target)
	return nil
}

// Encode writes v in the shape OMDb sends it, so that decoding the result
// yields v again. Values that are not model types are marshalled as-is.
func (c *Codec) Encode(v any) ([]byte, error) {
	var out any
	switch t := v.(type) {
	case model.Movie:
		out = movieToWire(t)
	case *model.Movie:
		out = movieToWire(*t)
	case model.Series:
		out = seriesToWire(t)
	case *model.Series:
		out = seriesToWire(*t)
	case model.Episode:
		out = episodeToWire(t)
	case *model.Episode:
		out = episodeToWire(*t)
	case model.Season:
		out = seasonToWire(t)
	case *model.Season:
		out = seasonToWire(*t)
	case model.SearchResponse:
		out = searchResponseToWire(t)
	case *model.SearchResponse:
		out = searchResponseToWire(*t)
	default:
		out = v
	}

	data, err := json.Marshal(out)
	if err != nil {
		return nil, fmt.Errorf("failed to encode %T: %w", v, err)
	}
	return data, nil
}
