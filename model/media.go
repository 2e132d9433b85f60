// Package model contains the OMDb domain types and the request variants used
// to query the service.
package model

import "time"

// Rating is a score from an external source, e.g. {"Rotten Tomatoes", "80%"}.
type Rating struct {
	Source string `yaml:"source"`
	Value  string `yaml:"value"`
}

// Media holds the fields shared by movies, series and episodes. Absent values
// are the zero value for strings, nil for pointers and empty for slices.
type Media struct {
	Title string `yaml:"title,omitempty"`
	// Year may be a range for series, e.g. "2011–2019" or "2014–".
	Year       string     `yaml:"year,omitempty"`
	Rated      string     `yaml:"rated,omitempty"`
	Released   *time.Time `yaml:"released,omitempty"`
	Runtime    string     `yaml:"runtime,omitempty"`
	Genres     []string   `yaml:"genres,omitempty"`
	Directors  []string   `yaml:"directors,omitempty"`
	Writers    []string   `yaml:"writers,omitempty"`
	Actors     []string   `yaml:"actors,omitempty"`
	Plot       string     `yaml:"plot,omitempty"`
	Languages  []string   `yaml:"languages,omitempty"`
	Countries  []string   `yaml:"countries,omitempty"`
	Awards     string     `yaml:"awards,omitempty"`
	Poster     string     `yaml:"poster,omitempty"`
	Ratings    []Rating   `yaml:"ratings,omitempty"`
	Metascore  string     `yaml:"metascore,omitempty"`
	IMDbRating *float64   `yaml:"imdb_rating,omitempty"`
	IMDbVotes  *int       `yaml:"imdb_votes,omitempty"`
	IMDbID     string     `yaml:"imdb_id,omitempty"`
}

// MediaRecord is implemented by every type that embeds Media.
type MediaRecord interface {
	Info() Media
}

// Info returns the shared media fields.
func (m Media) Info() Media {
	return m
}

// Movie is a feature film.
type Movie struct {
	Media `yaml:",inline"`
	// DVD is the home media release date.
	DVD        *time.Time `yaml:"dvd,omitempty"`
	BoxOffice  string     `yaml:"box_office,omitempty"`
	Production string     `yaml:"production,omitempty"`
	Website    string     `yaml:"website,omitempty"`
}

// Series is a TV series.
type Series struct {
	Media        `yaml:",inline"`
	TotalSeasons *int `yaml:"total_seasons,omitempty"`
}

// Episode is a single TV episode with full media details.
type Episode struct {
	Media    `yaml:",inline"`
	Season   *int   `yaml:"season,omitempty"`
	Episode  *int   `yaml:"episode,omitempty"`
	SeriesID string `yaml:"series_id,omitempty"`
}

// Season lists the episodes of one season of a series.
//
// Season 0 is a valid value here (OMDb files unaired pilots under it) even
// though SeasonRequest rejects it.
type Season struct {
	Title        string          `yaml:"title,omitempty"`
	Season       *int            `yaml:"season,omitempty"`
	TotalSeasons *int            `yaml:"total_seasons,omitempty"`
	Episodes     []SeasonEpisode `yaml:"episodes"`
}

// SeasonEpisode is the summary of an episode inside a Season.
type SeasonEpisode struct {
	Title      string     `yaml:"title,omitempty"`
	Released   *time.Time `yaml:"released,omitempty"`
	Episode    *int       `yaml:"episode,omitempty"`
	IMDbRating *float64   `yaml:"imdb_rating,omitempty"`
	IMDbID     string     `yaml:"imdb_id,omitempty"`
}

// SearchResult is a single hit of a search query.
type SearchResult struct {
	Title  string    `yaml:"title,omitempty"`
	Year   string    `yaml:"year,omitempty"`
	IMDbID string    `yaml:"imdb_id,omitempty"`
	Type   MediaType `yaml:"type,omitempty"`
	Poster string    `yaml:"poster,omitempty"`
}

// SearchResponse is one page of search results.
type SearchResponse struct {
	// Results is never nil; it is empty when the service omits it.
	Results      []SearchResult `yaml:"results"`
	TotalResults *int           `yaml:"total_results,omitempty"`
}
