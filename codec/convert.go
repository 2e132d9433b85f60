package codec

import (
	stdErrors "errors"
	"log/slog"
	"strconv"
	"strings"
	"time"

	"github.com/lepinkainen/omdb/errors"
	"github.com/lepinkainen/omdb/internal/fields"
	"github.com/lepinkainen/omdb/internal/wire"
	"github.com/lepinkainen/omdb/model"
)

// wireDateLayout is the zero-padded form OMDb emits for media dates.
const wireDateLayout = "02 Jan 2006"

// converter turns scrubbed wire values into typed values and keeps the first
// conversion failure, tagged with the wire field name.
type converter struct {
	logger *slog.Logger
	err    error
}

func (c *converter) fail(field string, err error) {
	if err == nil || c.err != nil {
		return
	}
	var parseErr *errors.ParseError
	if stdErrors.As(err, &parseErr) {
		parseErr.Field = field
	}
	c.err = err
}

func (c *converter) int(field, raw string) *int {
	value, err := fields.Int(raw)
	c.fail(field, err)
	return value
}

func (c *converter) float(field, raw string) *float64 {
	value, err := fields.Float(raw)
	c.fail(field, err)
	return value
}

func (c *converter) date(field, raw string) *time.Time {
	if !fields.IsAbsent(raw) {
		if _, err := time.Parse(fields.MediaDateLayout, raw); err != nil {
			c.logger.Debug("Date is not in media layout, trying episode layout",
				"field", field, "value", raw)
		}
	}
	value, err := fields.Date(raw)
	c.fail(field, err)
	return value
}

func (c *converter) mediaType(field, raw string) model.MediaType {
	if fields.IsAbsent(raw) {
		return ""
	}
	value, err := model.ParseMediaType(raw)
	c.fail(field, err)
	return value
}

func (c *converter) media(w wire.Media) model.Media {
	ratings := make([]model.Rating, 0, len(w.Ratings))
	for _, r := range w.Ratings {
		ratings = append(ratings, model.Rating{Source: r.Source, Value: r.Value})
	}

	return model.Media{
		Title:      w.Title,
		Year:       w.Year,
		Rated:      w.Rated,
		Released:   c.date("Released", w.Released),
		Runtime:    w.Runtime,
		Genres:     fields.List(w.Genre),
		Directors:  fields.List(w.Director),
		Writers:    fields.List(w.Writer),
		Actors:     fields.List(w.Actors),
		Plot:       w.Plot,
		Languages:  fields.List(w.Language),
		Countries:  fields.List(w.Country),
		Awards:     w.Awards,
		Poster:     w.Poster,
		Ratings:    ratings,
		Metascore:  w.Metascore,
		IMDbRating: c.float("imdbRating", w.IMDbRating),
		IMDbVotes:  c.int("imdbVotes", w.IMDbVotes),
		IMDbID:     w.IMDbID,
	}
}

func (c *converter) movie(w wire.Movie) model.Movie {
	return model.Movie{
		Media:      c.media(w.Media),
		DVD:        c.date("DVD", w.DVD),
		BoxOffice:  w.BoxOffice,
		Production: w.Production,
		Website:    w.Website,
	}
}

func (c *converter) series(w wire.Series) model.Series {
	return model.Series{
		Media:        c.media(w.Media),
		TotalSeasons: c.int("totalSeasons", w.TotalSeasons),
	}
}

func (c *converter) episode(w wire.Episode) model.Episode {
	return model.Episode{
		Media:    c.media(w.Media),
		Season:   c.int("Season", w.Season),
		Episode:  c.int("Episode", w.Episode),
		SeriesID: w.SeriesID,
	}
}

func (c *converter) season(w wire.Season) model.Season {
	episodes := make([]model.SeasonEpisode, 0, len(w.Episodes))
	for _, e := range w.Episodes {
		episodes = append(episodes, model.SeasonEpisode{
			Title:      e.Title,
			Released:   c.date("Episodes.Released", e.Released),
			Episode:    c.int("Episodes.Episode", e.Episode),
			IMDbRating: c.float("Episodes.imdbRating", e.IMDbRating),
			IMDbID:     e.IMDbID,
		})
	}

	return model.Season{
		Title:        w.Title,
		Season:       c.int("Season", w.Season),
		TotalSeasons: c.int("totalSeasons", w.TotalSeasons),
		Episodes:     episodes,
	}
}

func (c *converter) searchResponse(w wire.SearchResponse) model.SearchResponse {
	results := make([]model.SearchResult, 0, len(w.Search))
	for _, r := range w.Search {
		results = append(results, model.SearchResult{
			Title:  r.Title,
			Year:   r.Year,
			IMDbID: r.IMDbID,
			Type:   c.mediaType("Search.Type", r.Type),
			Poster: r.Poster,
		})
	}

	return model.SearchResponse{
		Results:      results,
		TotalResults: c.int("totalResults", w.TotalResults),
	}
}

// Encoding back into the wire shape.

func formatInt(n *int) string {
	if n == nil {
		return ""
	}
	return strconv.Itoa(*n)
}

// formatCount renders n with thousands separators, the way imdbVotes is sent.
func formatCount(n *int) string {
	if n == nil {
		return ""
	}
	digits := strconv.Itoa(*n)
	sign := ""
	if strings.HasPrefix(digits, "-") {
		sign, digits = "-", digits[1:]
	}

	var b strings.Builder
	for i, d := range digits {
		if i > 0 && (len(digits)-i)%3 == 0 {
			b.WriteString(fields.ListDelimiter)
		}
		b.WriteRune(d)
	}
	return sign + b.String()
}

func formatFloat(f *float64) string {
	if f == nil {
		return ""
	}
	return strconv.FormatFloat(*f, 'f', -1, 64)
}

func formatDate(t *time.Time, layout string) string {
	if t == nil {
		return ""
	}
	return t.Format(layout)
}

func joinList(values []string) string {
	return strings.Join(values, fields.ListDelimiter+" ")
}

func mediaToWire(m model.Media, mediaType model.MediaType) wire.Media {
	var ratings []wire.Rating
	for _, r := range m.Ratings {
		ratings = append(ratings, wire.Rating{Source: r.Source, Value: r.Value})
	}

	return wire.Media{
		Title:      m.Title,
		Year:       m.Year,
		Rated:      m.Rated,
		Released:   formatDate(m.Released, wireDateLayout),
		Runtime:    m.Runtime,
		Genre:      joinList(m.Genres),
		Director:   joinList(m.Directors),
		Writer:     joinList(m.Writers),
		Actors:     joinList(m.Actors),
		Plot:       m.Plot,
		Language:   joinList(m.Languages),
		Country:    joinList(m.Countries),
		Awards:     m.Awards,
		Poster:     m.Poster,
		Ratings:    ratings,
		Metascore:  m.Metascore,
		IMDbRating: formatFloat(m.IMDbRating),
		IMDbVotes:  formatCount(m.IMDbVotes),
		IMDbID:     m.IMDbID,
		Type:       string(mediaType),
	}
}

func movieToWire(m model.Movie) wire.Movie {
	return wire.Movie{
		Media:      mediaToWire(m.Media, model.MediaTypeMovie),
		DVD:        formatDate(m.DVD, wireDateLayout),
		BoxOffice:  m.BoxOffice,
		Production: m.Production,
		Website:    m.Website,
	}
}

func seriesToWire(s model.Series) wire.Series {
	return wire.Series{
		Media:        mediaToWire(s.Media, model.MediaTypeSeries),
		TotalSeasons: formatInt(s.TotalSeasons),
	}
}

func episodeToWire(e model.Episode) wire.Episode {
	return wire.Episode{
		Media:    mediaToWire(e.Media, model.MediaTypeEpisode),
		Season:   formatInt(e.Season),
		Episode:  formatInt(e.Episode),
		SeriesID: e.SeriesID,
	}
}

func seasonToWire(s model.Season) wire.Season {
	episodes := make([]wire.SeasonEpisode, 0, len(s.Episodes))
	for _, e := range s.Episodes {
		episodes = append(episodes, wire.SeasonEpisode{
			Title:      e.Title,
			Released:   formatDate(e.Released, fields.EpisodeDateLayout),
			Episode:    formatInt(e.Episode),
			IMDbRating: formatFloat(e.IMDbRating),
			IMDbID:     e.IMDbID,
		})
	}

	return wire.Season{
		Title:        s.Title,
		Season:       formatInt(s.Season),
		TotalSeasons: formatInt(s.TotalSeasons),
		Episodes:     episodes,
	}
}

func searchResponseToWire(s model.SearchResponse) wire.SearchResponse {
	results := make([]wire.SearchResult, 0, len(s.Results))
	for _, r := range s.Results {
		results = append(results, wire.SearchResult{
			Title:  r.Title,
			Year:   r.Year,
			IMDbID: r.IMDbID,
			Type:   string(r.Type),
			Poster: r.Poster,
		})
	}

	return wire.SearchResponse{
		Search:       results,
		TotalResults: formatInt(s.TotalResults),
	}
}
