package datastore

// Table names used by the --save export.
const (
	TitlesTable         = "titles"
	SeasonEpisodesTable = "season_episodes"
	SearchResultsTable  = "search_results"
)

// TitlesSchema stores movies, series and episodes, one row per IMDb id.
const TitlesSchema = `
CREATE TABLE IF NOT EXISTS titles (
	imdb_id TEXT PRIMARY KEY,
	type TEXT NOT NULL,
	title TEXT,
	year TEXT,
	rated TEXT,
	released TEXT,
	runtime TEXT,
	genres TEXT,
	directors TEXT,
	writers TEXT,
	actors TEXT,
	plot TEXT,
	languages TEXT,
	countries TEXT,
	awards TEXT,
	poster TEXT,
	metascore TEXT,
	imdb_rating REAL,
	imdb_votes INTEGER,
	dvd TEXT,
	box_office TEXT,
	production TEXT,
	website TEXT,
	total_seasons INTEGER,
	season INTEGER,
	episode INTEGER,
	series_id TEXT
);
`

// SeasonEpisodesSchema stores the episode summaries of fetched seasons.
const SeasonEpisodesSchema = `
CREATE TABLE IF NOT EXISTS season_episodes (
	imdb_id TEXT PRIMARY KEY,
	series_title TEXT,
	season INTEGER,
	episode INTEGER,
	title TEXT,
	released TEXT,
	imdb_rating REAL
);
`

// SearchResultsSchema stores search hits.
const SearchResultsSchema = `
CREATE TABLE IF NOT EXISTS search_results (
	imdb_id TEXT PRIMARY KEY,
	title TEXT,
	year TEXT,
	type TEXT,
	poster TEXT
);
`
