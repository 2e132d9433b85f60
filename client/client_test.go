package client

import (
	"context"
	"net/http"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/lepinkainen/omdb/connection"
	"github.com/lepinkainen/omdb/errors"
	"github.com/lepinkainen/omdb/internal/testutil"
	"github.com/lepinkainen/omdb/model"
)

func newTestClient(t *testing.T, server *testutil.Server) *Client {
	t.Helper()

	c, err := New("test-key", WithBaseURL(server.URL+"/"), WithHTTPClient(server.Client()))
	require.NoError(t, err)
	return c
}

func TestNew_BlankAPIKey(t *testing.T) {
	for _, key := range []string{"", "   "} {
		_, err := New(key)
		require.Error(t, err)
		assert.True(t, errors.IsInvalidArgumentError(err))
		assert.Contains(t, err.Error(), "https://www.omdbapi.com/apikey.aspx")
	}
}

func TestNew_BlankUserAgent(t *testing.T) {
	_, err := New("key", WithUserAgent(" "))
	assert.True(t, errors.IsInvalidArgumentError(err))
}

func TestNew_Defaults(t *testing.T) {
	c, err := New("key")
	require.NoError(t, err)

	assert.Equal(t, DefaultBaseURL, c.Connection().BaseURL())
	assert.Equal(t, DefaultUserAgent, c.Connection().UserAgent())
}

func TestNew_WithConnection(t *testing.T) {
	conn := connection.New(connection.WithBaseURL("http://localhost:1234/"))
	c, err := New("key", WithConnection(conn), WithUserAgent(""))
	require.NoError(t, err)

	assert.Same(t, conn, c.Connection())
}

func TestGetMovie(t *testing.T) {
	server := testutil.NewFixtureServer(t, "Movie.json")
	c := newTestClient(t, server)

	movie, err := c.GetMovie(context.Background(), model.GetMovieByID("tt0172495", model.PlotFull))
	require.NoError(t, err)

	assert.Equal(t, "Gladiator", movie.Title)
	assert.Equal(t, 8.5, *movie.IMDbRating)

	query := server.LastRequest(t).URL.Query()
	assert.Equal(t, "test-key", query.Get("apikey"))
	assert.Equal(t, []string{"json"}, query["r"])
	assert.Equal(t, "tt0172495", query.Get("i"))
	assert.Equal(t, "full", query.Get("plot"))
	assert.Equal(t, "movie", query.Get("type"))
}

func TestGetMovie_NotFound(t *testing.T) {
	server := testutil.NewFixtureServer(t, "MovieNotFound.json")
	c := newTestClient(t, server)

	movie, err := c.GetMovie(context.Background(), model.GetMovieByTitle("No Such Film", 1999, model.PlotDefault))
	assert.Nil(t, movie)
	require.True(t, errors.IsResponseError(err))
	assert.Equal(t, "Movie not found!", err.Error())
}

func TestGetSeries(t *testing.T) {
	server := testutil.NewFixtureServer(t, "Series.json")
	c := newTestClient(t, server)

	series, err := c.GetSeries(context.Background(), model.GetSeriesByTitle("Game of Thrones", 0, model.PlotDefault))
	require.NoError(t, err)

	assert.Equal(t, 8, *series.TotalSeasons)
	query := server.LastRequest(t).URL.Query()
	assert.Equal(t, "Game of Thrones", query.Get("t"))
	assert.Equal(t, "series", query.Get("type"))
	assert.False(t, query.Has("y"))
}

func TestGetSeason(t *testing.T) {
	server := testutil.NewFixtureServer(t, "Season.json")
	c := newTestClient(t, server)

	season, err := c.GetSeason(context.Background(), model.GetSeasonByID("tt0944947", 1))
	require.NoError(t, err)
	require.Len(t, season.Episodes, 3)
	assert.Equal(t, 0, *season.Episodes[0].Episode)

	query := server.LastRequest(t).URL.Query()
	assert.Equal(t, "series", query.Get("type"))
	assert.Equal(t, "1", query.Get("Season"))
}

func TestGetSeason_SeasonZeroRejectedBeforeSending(t *testing.T) {
	server := testutil.NewFixtureServer(t, "Season.json")
	c := newTestClient(t, server)

	_, err := c.GetSeason(context.Background(), model.GetSeasonByID("tt0944947", 0))
	assert.True(t, errors.IsInvalidArgumentError(err))
	assert.Empty(t, server.Requests())
}

func TestGetEpisode(t *testing.T) {
	server := testutil.NewFixtureServer(t, "Episode.json")
	c := newTestClient(t, server)

	episode, err := c.GetEpisode(context.Background(), model.GetEpisodeByID("tt0944947", 1, 0, model.PlotDefault))
	require.NoError(t, err)
	assert.Equal(t, "tt0944947", episode.SeriesID)

	query := server.LastRequest(t).URL.Query()
	assert.Equal(t, "episode", query.Get("type"))
	assert.Equal(t, "1", query.Get("Season"))
	assert.Equal(t, "0", query.Get("Episode"))

	_, err = c.GetEpisode(context.Background(), model.GetEpisodeByID("tt0944947", 1, -1, model.PlotDefault))
	assert.True(t, errors.IsInvalidArgumentError(err))
	assert.Len(t, server.Requests(), 1)
}

func TestSearchMovies(t *testing.T) {
	server := testutil.NewFixtureServer(t, "MovieSearchResponse.json")
	c := newTestClient(t, server)

	response, err := c.SearchMovies(context.Background(), model.SearchMovies("Batman", 1))
	require.NoError(t, err)

	assert.Equal(t, 487, *response.TotalResults)
	assert.Len(t, response.Results, 4)

	query := server.LastRequest(t).URL.Query()
	assert.Equal(t, "Batman", query.Get("s"))
	assert.Equal(t, "1", query.Get("page"))
	assert.Equal(t, "movie", query.Get("type"))
}

func TestSearchSeries(t *testing.T) {
	server := testutil.NewFixtureServer(t, "SeriesSearchResponse.json")
	c := newTestClient(t, server)

	response, err := c.SearchSeries(context.Background(), model.SearchSeries("Game of Thrones", 0))
	require.NoError(t, err)

	assert.Equal(t, 5, *response.TotalResults)
	assert.Equal(t, model.MediaTypeSeries, response.Results[0].Type)
	assert.Equal(t, "series", server.LastRequest(t).URL.Query().Get("type"))
	assert.False(t, server.LastRequest(t).URL.Query().Has("page"))
}

func TestNilRequests(t *testing.T) {
	c, err := New("key")
	require.NoError(t, err)
	ctx := context.Background()

	_, err = c.GetMovie(ctx, nil)
	assert.True(t, errors.IsInvalidArgumentError(err))
	_, err = c.GetSeries(ctx, nil)
	assert.True(t, errors.IsInvalidArgumentError(err))
	_, err = c.GetSeason(ctx, nil)
	assert.True(t, errors.IsInvalidArgumentError(err))
	_, err = c.GetEpisode(ctx, nil)
	assert.True(t, errors.IsInvalidArgumentError(err))
	_, err = c.SearchMovies(ctx, nil)
	assert.True(t, errors.IsInvalidArgumentError(err))
	_, err = c.SearchSeries(ctx, nil)
	assert.True(t, errors.IsInvalidArgumentError(err))
}

func TestThrottled(t *testing.T) {
	server := testutil.NewServer(t, testutil.Response{
		Status:  http.StatusTooManyRequests,
		Headers: map[string]string{"Retry-After": "60"},
	})
	c := newTestClient(t, server)

	_, err := c.SearchMovies(context.Background(), model.SearchMovies("Batman", 1))
	retryAfter, ok := errors.RetryAfter(err)
	require.True(t, ok)
	assert.Equal(t, 60*time.Second, retryAfter)
}

func TestUserAgentSent(t *testing.T) {
	server := testutil.NewFixtureServer(t, "Movie.json")
	c, err := New("key", WithBaseURL(server.URL), WithHTTPClient(server.Client()), WithUserAgent("my-app/3"))
	require.NoError(t, err)

	_, err = c.GetMovie(context.Background(), model.GetMovieByID("tt0172495", model.PlotDefault))
	require.NoError(t, err)
	assert.Equal(t, "my-app/3", server.LastRequest(t).Header.Get("User-Agent"))
}

func TestBuildURL_Deterministic(t *testing.T) {
	c, err := New("k&ey")
	require.NoError(t, err)

	req := model.GetEpisodeByTitle("Game of Thrones", 2011, 1, 1, model.PlotShort)
	first, err := c.buildURL(req)
	require.NoError(t, err)
	second, err := c.buildURL(req)
	require.NoError(t, err)

	assert.Equal(t, first, second)
	assert.Equal(t,
		"http://www.omdbapi.com/?Episode=1&Season=1&apikey=k%26ey&plot=short&r=json&t=Game+of+Thrones&type=episode&y=2011",
		first)
}
