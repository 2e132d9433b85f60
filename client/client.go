// Package client is the entry point for querying OMDb. A Client validates
// requests, builds the query URL and hands it to a connection.Connection.
//
//	c, err := client.New(apiKey)
//	if err != nil {
//		return err
//	}
//	movie, err := c.GetMovie(ctx, model.GetMovieByID("tt0172495", model.PlotFull))
package client

import (
	"context"
	"log/slog"
	"net/url"
	"strings"

	"github.com/lepinkainen/omdb/connection"
	"github.com/lepinkainen/omdb/errors"
	"github.com/lepinkainen/omdb/model"
)

const (
	// DefaultUserAgent is sent when no other user agent is configured.
	DefaultUserAgent = connection.DefaultUserAgent
	// DefaultBaseURL is the public OMDb endpoint.
	DefaultBaseURL = connection.DefaultBaseURL
	// APIKeyURL is where OMDb API keys are issued.
	APIKeyURL = "https://www.omdbapi.com/apikey.aspx"
)

// Client runs typed queries against OMDb. It is immutable and safe for
// concurrent use.
type Client struct {
	apiKey string
	conn   *connection.Connection
}

type settings struct {
	userAgent  string
	baseURL    string
	httpClient connection.HTTPDoer
	conn       *connection.Connection
	logger     *slog.Logger
}

// Option configures a Client.
type Option func(*settings)

// WithUserAgent overrides DefaultUserAgent.
func WithUserAgent(userAgent string) Option {
	return func(s *settings) {
		s.userAgent = userAgent
	}
}

// WithBaseURL points the client at another endpoint, e.g. a test server.
func WithBaseURL(baseURL string) Option {
	return func(s *settings) {
		s.baseURL = baseURL
	}
}

// WithHTTPClient sets the transport used by the default connection.
func WithHTTPClient(httpClient connection.HTTPDoer) Option {
	return func(s *settings) {
		s.httpClient = httpClient
	}
}

// WithConnection supplies a fully configured connection. The user agent,
// base URL, HTTP client and logger options are then ignored.
func WithConnection(conn *connection.Connection) Option {
	return func(s *settings) {
		s.conn = conn
	}
}

// WithLogger sets the logger passed to the default connection.
func WithLogger(logger *slog.Logger) Option {
	return func(s *settings) {
		s.logger = logger
	}
}

// New creates a Client for apiKey.
func New(apiKey string, opts ...Option) (*Client, error) {
	if strings.TrimSpace(apiKey) == "" {
		return nil, errors.NewInvalidArgumentError("apiKey must not be blank. You can obtain one via %s", APIKeyURL)
	}

	s := settings{userAgent: DefaultUserAgent, baseURL: DefaultBaseURL}
	for _, opt := range opts {
		opt(&s)
	}

	conn := s.conn
	if conn == nil {
		if strings.TrimSpace(s.userAgent) == "" {
			return nil, errors.NewInvalidArgumentError("userAgent must not be blank")
		}
		conn = connection.New(
			connection.WithUserAgent(s.userAgent),
			connection.WithBaseURL(s.baseURL),
			connection.WithHTTPClient(s.httpClient),
			connection.WithLogger(s.logger),
		)
	}

	return &Client{apiKey: apiKey, conn: conn}, nil
}

// Connection returns the connection the client sends requests through.
func (c *Client) Connection() *connection.Connection {
	return c.conn
}

// GetMovie fetches a single movie.
func (c *Client) GetMovie(ctx context.Context, req *model.MovieRequest) (*model.Movie, error) {
	if req == nil {
		return nil, errors.NewInvalidArgumentError("request must not be nil")
	}
	var movie model.Movie
	if err := c.execute(ctx, req, &movie); err != nil {
		return nil, err
	}
	return &movie, nil
}

// GetSeries fetches a single series.
func (c *Client) GetSeries(ctx context.Context, req *model.SeriesRequest) (*model.Series, error) {
	if req == nil {
		return nil, errors.NewInvalidArgumentError("request must not be nil")
	}
	var series model.Series
	if err := c.execute(ctx, req, &series); err != nil {
		return nil, err
	}
	return &series, nil
}

// GetSeason fetches the episode list of one season.
func (c *Client) GetSeason(ctx context.Context, req *model.SeasonRequest) (*model.Season, error) {
	if req == nil {
		return nil, errors.NewInvalidArgumentError("request must not be nil")
	}
	var season model.Season
	if err := c.execute(ctx, req, &season); err != nil {
		return nil, err
	}
	return &season, nil
}

// GetEpisode fetches a single episode.
func (c *Client) GetEpisode(ctx context.Context, req *model.EpisodeRequest) (*model.Episode, error) {
	if req == nil {
		return nil, errors.NewInvalidArgumentError("request must not be nil")
	}
	var episode model.Episode
	if err := c.execute(ctx, req, &episode); err != nil {
		return nil, err
	}
	return &episode, nil
}

// SearchMovies returns one page of movies matching the request title.
func (c *Client) SearchMovies(ctx context.Context, req *model.SearchMovieRequest) (*model.SearchResponse, error) {
	if req == nil {
		return nil, errors.NewInvalidArgumentError("request must not be nil")
	}
	return c.search(ctx, req)
}

// SearchSeries returns one page of series matching the request title.
func (c *Client) SearchSeries(ctx context.Context, req *model.SearchSeriesRequest) (*model.SearchResponse, error) {
	if req == nil {
		return nil, errors.NewInvalidArgumentError("request must not be nil")
	}
	return c.search(ctx, req)
}

func (c *Client) search(ctx context.Context, req model.QueryParameterRequest) (*model.SearchResponse, error) {
	var response model.SearchResponse
	if err := c.execute(ctx, req, &response); err != nil {
		return nil, err
	}
	return &response, nil
}

func (c *Client) execute(ctx context.Context, req model.QueryParameterRequest, target any) error {
	rawURL, err := c.buildURL(req)
	if err != nil {
		return err
	}

	httpReq, err := c.conn.NewRequest(ctx, rawURL)
	if err != nil {
		return err
	}
	return c.conn.Execute(httpReq, target)
}

// buildURL renders base URL + apikey + r=json + the request's own parameters.
func (c *Client) buildURL(req model.QueryParameterRequest) (string, error) {
	base, err := url.Parse(c.conn.BaseURL())
	if err != nil {
		return "", errors.NewInvalidArgumentError("invalid base URL %q: %v", c.conn.BaseURL(), err)
	}

	q := base.Query()
	q.Set("apikey", c.apiKey)
	q.Set("r", model.ResponseTypeJSON)
	if _, err := req.PopulateQueryParameters(q); err != nil {
		return "", err
	}

	base.RawQuery = q.Encode()
	return base.String(), nil
}
