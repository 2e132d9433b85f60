package model

import (
	"net/url"
	"strconv"
	"strings"

	"github.com/lepinkainen/omdb/errors"
)

// ResponseTypeJSON is the only response format this client understands.
const ResponseTypeJSON = "json"

// Plot selects the plot length returned by the service.
type Plot string

const (
	// PlotDefault omits the parameter and lets the service decide (short).
	PlotDefault Plot = ""
	PlotShort   Plot = "short"
	PlotFull    Plot = "full"
)

func (p Plot) validate() error {
	switch p {
	case PlotDefault, PlotShort, PlotFull:
		return nil
	default:
		return errors.NewInvalidArgumentError("plot must be %q or %q, got %q", PlotShort, PlotFull, string(p))
	}
}

// QueryParameterRequest is implemented by every request that can be
// expressed as URL query parameters.
type QueryParameterRequest interface {
	// PopulateQueryParameters validates the request and adds its parameters to
	// q. The same q is returned for chaining.
	PopulateQueryParameters(q url.Values) (url.Values, error)
}

type lookupKind int

const (
	lookupUnset lookupKind = iota
	lookupID
	lookupTitle
)

// Lookup identifies a title either by IMDb id or by title and optional year.
// Build one with ByID, ByTitle or ByTitleYear; the zero value is invalid.
type Lookup struct {
	kind  lookupKind
	id    string
	title string
	year  *int
}

// ByID looks a title up by its IMDb id, e.g. "tt0172495".
func ByID(imdbID string) Lookup {
	return Lookup{kind: lookupID, id: imdbID}
}

// ByTitle looks a title up by name.
func ByTitle(title string) Lookup {
	return Lookup{kind: lookupTitle, title: title}
}

// ByTitleYear looks a title up by name and release year.
func ByTitleYear(title string, year int) Lookup {
	return Lookup{kind: lookupTitle, title: title, year: &year}
}

// IMDbID returns the id for id lookups and "" otherwise.
func (l Lookup) IMDbID() string {
	return l.id
}

// Title returns the title for title lookups and "" otherwise.
func (l Lookup) Title() string {
	return l.title
}

func (l Lookup) String() string {
	switch l.kind {
	case lookupID:
		return l.id
	case lookupTitle:
		if l.year != nil {
			return l.title + " (" + strconv.Itoa(*l.year) + ")"
		}
		return l.title
	default:
		return "<unset>"
	}
}

func (l Lookup) populate(q url.Values, plot Plot) error {
	if err := plot.validate(); err != nil {
		return err
	}

	switch l.kind {
	case lookupID:
		if strings.TrimSpace(l.id) == "" {
			return errors.NewInvalidArgumentError("imdbId must not be blank")
		}
		q.Add("i", l.id)
	case lookupTitle:
		if strings.TrimSpace(l.title) == "" {
			return errors.NewInvalidArgumentError("title must not be blank")
		}
		q.Add("t", l.title)
		if l.year != nil {
			q.Add("y", strconv.Itoa(*l.year))
		}
	default:
		return errors.NewInvalidArgumentError("lookup must be built with ByID, ByTitle or ByTitleYear")
	}

	if plot != PlotDefault {
		q.Add("plot", string(plot))
	}
	q.Set("r", ResponseTypeJSON)
	return nil
}

func requireAccumulator(q url.Values) error {
	if q == nil {
		return errors.NewInvalidArgumentError("query parameters must not be nil")
	}
	return nil
}

// MovieRequest fetches a single movie.
type MovieRequest struct {
	Lookup Lookup
	Plot   Plot
}

// GetMovieByID builds a MovieRequest for an IMDb id.
func GetMovieByID(imdbID string, plot Plot) *MovieRequest {
	return &MovieRequest{Lookup: ByID(imdbID), Plot: plot}
}

// GetMovieByTitle builds a MovieRequest for a title. A year of 0 is omitted.
func GetMovieByTitle(title string, year int, plot Plot) *MovieRequest {
	return &MovieRequest{Lookup: titleLookup(title, year), Plot: plot}
}

// PopulateQueryParameters adds the movie lookup with type=movie.
func (r MovieRequest) PopulateQueryParameters(q url.Values) (url.Values, error) {
	if err := requireAccumulator(q); err != nil {
		return nil, err
	}
	if err := r.Lookup.populate(q, r.Plot); err != nil {
		return nil, err
	}
	q.Add("type", string(MediaTypeMovie))
	return q, nil
}

// SeriesRequest fetches a single series.
type SeriesRequest struct {
	Lookup Lookup
	Plot   Plot
}

// GetSeriesByID builds a SeriesRequest for an IMDb id.
func GetSeriesByID(imdbID string, plot Plot) *SeriesRequest {
	return &SeriesRequest{Lookup: ByID(imdbID), Plot: plot}
}

// GetSeriesByTitle builds a SeriesRequest for a title. A year of 0 is omitted.
func GetSeriesByTitle(title string, year int, plot Plot) *SeriesRequest {
	return &SeriesRequest{Lookup: titleLookup(title, year), Plot: plot}
}

// PopulateQueryParameters adds the series lookup with type=series.
func (r SeriesRequest) PopulateQueryParameters(q url.Values) (url.Values, error) {
	if err := requireAccumulator(q); err != nil {
		return nil, err
	}
	if err := r.Lookup.populate(q, r.Plot); err != nil {
		return nil, err
	}
	q.Add("type", string(MediaTypeSeries))
	return q, nil
}

// SeasonRequest fetches the episode list of one season. Season must be > 0.
type SeasonRequest struct {
	Lookup Lookup
	Season int
	Plot   Plot
}

// GetSeasonByID builds a SeasonRequest for a series IMDb id.
func GetSeasonByID(imdbID string, season int) *SeasonRequest {
	return &SeasonRequest{Lookup: ByID(imdbID), Season: season}
}

// GetSeasonByTitle builds a SeasonRequest for a series title.
func GetSeasonByTitle(title string, year int, season int) *SeasonRequest {
	return &SeasonRequest{Lookup: titleLookup(title, year), Season: season}
}

// PopulateQueryParameters adds the series lookup and the Season number.
func (r SeasonRequest) PopulateQueryParameters(q url.Values) (url.Values, error) {
	if err := requireAccumulator(q); err != nil {
		return nil, err
	}
	if r.Season <= 0 {
		return nil, errors.NewInvalidArgumentError("season must be > 0")
	}
	if err := r.Lookup.populate(q, r.Plot); err != nil {
		return nil, err
	}
	q.Add("type", string(MediaTypeSeries))
	q.Add("Season", strconv.Itoa(r.Season))
	return q, nil
}

// EpisodeRequest fetches a single episode. Season must be > 0 and Episode
// must be >= 0.
type EpisodeRequest struct {
	Lookup  Lookup
	Season  int
	Episode int
	Plot    Plot
}

// GetEpisodeByID builds an EpisodeRequest for a series IMDb id.
func GetEpisodeByID(imdbID string, season, episode int, plot Plot) *EpisodeRequest {
	return &EpisodeRequest{Lookup: ByID(imdbID), Season: season, Episode: episode, Plot: plot}
}

// GetEpisodeByTitle builds an EpisodeRequest for a series title.
func GetEpisodeByTitle(title string, year int, season, episode int, plot Plot) *EpisodeRequest {
	return &EpisodeRequest{Lookup: titleLookup(title, year), Season: season, Episode: episode, Plot: plot}
}

// PopulateQueryParameters adds the series lookup with the Season and Episode numbers.
func (r EpisodeRequest) PopulateQueryParameters(q url.Values) (url.Values, error) {
	if err := requireAccumulator(q); err != nil {
		return nil, err
	}
	if r.Season <= 0 {
		return nil, errors.NewInvalidArgumentError("season must be > 0")
	}
	if r.Episode < 0 {
		return nil, errors.NewInvalidArgumentError("episode must be >= 0")
	}
	if err := r.Lookup.populate(q, r.Plot); err != nil {
		return nil, err
	}
	q.Add("type", string(MediaTypeEpisode))
	q.Add("Season", strconv.Itoa(r.Season))
	q.Add("Episode", strconv.Itoa(r.Episode))
	return q, nil
}

// SearchQuery holds the fields shared by the search requests. Year and Page
// are omitted when 0.
type SearchQuery struct {
	Title string
	Year  int
	Page  int
}

func (s SearchQuery) populate(q url.Values, mediaType MediaType) (url.Values, error) {
	if err := requireAccumulator(q); err != nil {
		return nil, err
	}
	if strings.TrimSpace(s.Title) == "" {
		return nil, errors.NewInvalidArgumentError("title must not be blank")
	}
	if s.Page < 0 {
		return nil, errors.NewInvalidArgumentError("page must not be negative")
	}

	q.Add("s", s.Title)
	if s.Year != 0 {
		q.Add("y", strconv.Itoa(s.Year))
	}
	if s.Page > 0 {
		q.Add("page", strconv.Itoa(s.Page))
	}
	q.Set("r", ResponseTypeJSON)
	q.Add("type", string(mediaType))
	return q, nil
}

// SearchMovieRequest searches movies by title.
type SearchMovieRequest struct {
	SearchQuery
}

// SearchMovies builds a SearchMovieRequest. Page 0 lets the service default
// to the first page.
func SearchMovies(title string, page int) *SearchMovieRequest {
	return &SearchMovieRequest{SearchQuery{Title: title, Page: page}}
}

// PopulateQueryParameters adds a movie search with type=movie.
func (r SearchMovieRequest) PopulateQueryParameters(q url.Values) (url.Values, error) {
	return r.populate(q, MediaTypeMovie)
}

// SearchSeriesRequest searches series by title.
type SearchSeriesRequest struct {
	SearchQuery
}

// SearchSeries builds a SearchSeriesRequest.
func SearchSeries(title string, page int) *SearchSeriesRequest {
	return &SearchSeriesRequest{SearchQuery{Title: title, Page: page}}
}

// PopulateQueryParameters adds a series search with type=series.
func (r SearchSeriesRequest) PopulateQueryParameters(q url.Values) (url.Values, error) {
	return r.populate(q, MediaTypeSeries)
}

func titleLookup(title string, year int) Lookup {
	if year == 0 {
		return ByTitle(title)
	}
	return ByTitleYear(title, year)
}
