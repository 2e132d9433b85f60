// Package wire mirrors the JSON documents OMDb returns. Every scalar is a
// string on the wire; the codec package converts them into model values.
package wire

// Rating is one entry of the Ratings array.
type Rating struct {
	Source string `json:"Source"`
	Value  string `json:"Value"`
}

// Media holds the keys shared by movie, series and episode documents.
type Media struct {
	Title      string   `json:"Title,omitempty"`
	Year       string   `json:"Year,omitempty"`
	Rated      string   `json:"Rated,omitempty"`
	Released   string   `json:"Released,omitempty"`
	Runtime    string   `json:"Runtime,omitempty"`
	Genre      string   `json:"Genre,omitempty"`
	Director   string   `json:"Director,omitempty"`
	Writer     string   `json:"Writer,omitempty"`
	Actors     string   `json:"Actors,omitempty"`
	Plot       string   `json:"Plot,omitempty"`
	Language   string   `json:"Language,omitempty"`
	Country    string   `json:"Country,omitempty"`
	Awards     string   `json:"Awards,omitempty"`
	Poster     string   `json:"Poster,omitempty"`
	Ratings    []Rating `json:"Ratings,omitempty"`
	Metascore  string   `json:"Metascore,omitempty"`
	IMDbRating string   `json:"imdbRating,omitempty"`
	IMDbVotes  string   `json:"imdbVotes,omitempty"`
	IMDbID     string   `json:"imdbID,omitempty"`
	Type       string   `json:"Type,omitempty"`
}

// Movie is a type=movie lookup document.
type Movie struct {
	Media
	DVD        string `json:"DVD,omitempty"`
	BoxOffice  string `json:"BoxOffice,omitempty"`
	Production string `json:"Production,omitempty"`
	Website    string `json:"Website,omitempty"`
}

// Series is a type=series lookup document.
type Series struct {
	Media
	TotalSeasons string `json:"totalSeasons,omitempty"`
}

// Episode is a type=episode lookup document.
type Episode struct {
	Media
	Season   string `json:"Season,omitempty"`
	Episode  string `json:"Episode,omitempty"`
	SeriesID string `json:"seriesID,omitempty"`
}

// SeasonEpisode is one row of a season listing.
type SeasonEpisode struct {
	Title      string `json:"Title,omitempty"`
	Released   string `json:"Released,omitempty"`
	Episode    string `json:"Episode,omitempty"`
	IMDbRating string `json:"imdbRating,omitempty"`
	IMDbID     string `json:"imdbID,omitempty"`
}

// Season is the document returned for a Season lookup.
type Season struct {
	Title        string          `json:"Title,omitempty"`
	Season       string          `json:"Season,omitempty"`
	TotalSeasons string          `json:"totalSeasons,omitempty"`
	Episodes     []SeasonEpisode `json:"Episodes"`
}

// SearchResult is one hit of a search.
type SearchResult struct {
	Title  string `json:"Title,omitempty"`
	Year   string `json:"Year,omitempty"`
	IMDbID string `json:"imdbID,omitempty"`
	Type   string `json:"Type,omitempty"`
	Poster string `json:"Poster,omitempty"`
}

// SearchResponse is the document returned for an s= search.
type SearchResponse struct {
	Search       []SearchResult `json:"Search"`
	TotalResults string         `json:"totalResults,omitempty"`
}
