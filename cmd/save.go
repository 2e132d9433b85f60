package cmd

import (
	"github.com/lepinkainen/omdb/internal/cmdutil"
	"github.com/lepinkainen/omdb/internal/datastore"
	"github.com/lepinkainen/omdb/model"
)

var titleMapOptions = cmdutil.StructToMapOptions{
	OmitFields:       map[string]bool{"Ratings": true},
	JoinStringSlices: true,
	TimeLayout:       dateLayout,
}

func titleRecord[T model.MediaRecord](mediaType model.MediaType) func(T) map[string]any {
	return func(record T) map[string]any {
		row := cmdutil.StructToMap(record, titleMapOptions)
		row["type"] = mediaType.String()
		return row
	}
}

func saveMovies(movies []model.Movie) error {
	return cmdutil.WriteToDatastore(movies, datastore.TitlesSchema, datastore.TitlesTable,
		"movies", titleRecord[model.Movie](model.MediaTypeMovie))
}

func saveSeries(series []model.Series) error {
	return cmdutil.WriteToDatastore(series, datastore.TitlesSchema, datastore.TitlesTable,
		"series", titleRecord[model.Series](model.MediaTypeSeries))
}

func saveEpisodes(episodes []model.Episode) error {
	return cmdutil.WriteToDatastore(episodes, datastore.TitlesSchema, datastore.TitlesTable,
		"episodes", titleRecord[model.Episode](model.MediaTypeEpisode))
}

// saveSeason stores the episode summaries of a season. Episodes without an
// IMDb id have no key and are skipped.
func saveSeason(season model.Season) error {
	rows := make([]map[string]any, 0, len(season.Episodes))
	for _, e := range season.Episodes {
		if e.IMDbID == "" {
			continue
		}
		row := cmdutil.StructToMap(e, titleMapOptions)
		row["series_title"] = season.Title
		row["season"] = derefInt(season.Season)
		rows = append(rows, row)
	}

	return cmdutil.WriteToDatastore(rows, datastore.SeasonEpisodesSchema, datastore.SeasonEpisodesTable,
		"season episodes", func(row map[string]any) map[string]any { return row })
}

func saveSearchResults(results []model.SearchResult) error {
	return cmdutil.WriteToDatastore(results, datastore.SearchResultsSchema, datastore.SearchResultsTable,
		"search results", func(r model.SearchResult) map[string]any {
			return cmdutil.StructToMap(r, cmdutil.StructToMapOptions{})
		})
}

func derefInt(n *int) any {
	if n == nil {
		return nil
	}
	return *n
}
