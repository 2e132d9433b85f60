package cmd

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"net/url"
	"os"
	"strings"

	"github.com/alecthomas/kong"
	"github.com/lepinkainen/humanlog"
	"github.com/spf13/viper"
	"golang.org/x/sync/errgroup"

	"github.com/lepinkainen/omdb/client"
	"github.com/lepinkainen/omdb/connection"
	"github.com/lepinkainen/omdb/errors"
	"github.com/lepinkainen/omdb/internal/cache"
	"github.com/lepinkainen/omdb/internal/cmdutil"
	"github.com/lepinkainen/omdb/internal/config"
	"github.com/lepinkainen/omdb/internal/poster"
	"github.com/lepinkainen/omdb/internal/tui"
	"github.com/lepinkainen/omdb/model"
)

// maxConcurrentLookups caps the requests in flight for a repeated --id.
const maxConcurrentLookups = 4

var (
	stdout        io.Writer = os.Stdout
	newClient               = newClientFromConfig
	selectResult            = tui.Select
	newDownloader           = func() *poster.Downloader {
		return poster.New(poster.WithUserAgent(viper.GetString(config.KeyUserAgent)))
	}
)

// CLI represents the complete command structure for the omdb application
type CLI struct {
	// Global flags
	APIKey    string `help:"OMDb API key (overrides OMDB_API_KEY and config.yaml)"`
	BaseURL   string `help:"OMDb endpoint"`
	UserAgent string `help:"User-Agent sent with every request"`
	RateLimit int    `help:"Maximum requests per second, 0 disables pacing" default:"-1"`
	Format    string `short:"F" help:"Output format: json, yaml or text"`
	Verbose   bool   `short:"v" help:"Enable debug logging"`

	// Datastore flags
	Save bool   `help:"Save fetched records to the SQLite datastore"`
	DB   string `help:"Path to SQLite database file"`

	// Cache flags
	Cache    bool   `help:"Cache responses in a local SQLite database"`
	CacheDB  string `help:"Path to cache SQLite database file"`
	CacheTTL string `help:"Cache time-to-live duration (e.g., 720h for 30 days)"`

	Movie   MovieCmd   `cmd:"" help:"Fetch movies by IMDb id or title"`
	Series  SeriesCmd  `cmd:"" help:"Fetch series by IMDb id or title"`
	Season  SeasonCmd  `cmd:"" help:"List the episodes of a season"`
	Episode EpisodeCmd `cmd:"" help:"Fetch a single episode"`
	Search  SearchCmd  `cmd:"" help:"Search movies or series by title"`
	Poster  PosterCmd  `cmd:"" help:"Download the poster of a movie or series"`

	CacheAdmin CacheCmd `cmd:"" name:"cache" help:"Manage the response cache"`
}

// LookupFlags selects titles by IMDb id or by title and year.
type LookupFlags struct {
	ID    []string `help:"IMDb id, repeatable" placeholder:"tt0000000"`
	Title string   `short:"t" help:"Title to look up"`
	Year  int      `short:"y" help:"Release year, used with --title"`
}

// MovieCmd represents the movie command
type MovieCmd struct {
	LookupFlags `embed:""`
	Plot        string `help:"Plot length: short or full"`
}

// SeriesCmd represents the series command
type SeriesCmd struct {
	LookupFlags `embed:""`
	Plot        string `help:"Plot length: short or full"`
}

// SeasonCmd represents the season command
type SeasonCmd struct {
	LookupFlags `embed:""`
	Season      int `short:"s" help:"Season number" required:""`
}

// EpisodeCmd represents the episode command
type EpisodeCmd struct {
	LookupFlags `embed:""`
	Season      int    `short:"s" help:"Season number" required:""`
	Episode     int    `short:"e" help:"Episode number" required:""`
	Plot        string `help:"Plot length: short or full"`
}

// SearchCmd represents the search command
type SearchCmd struct {
	Title       string `arg:"" help:"Title to search for"`
	Kind        string `short:"k" help:"What to search: movie or series" default:"movie" enum:"movie,series"`
	Year        int    `short:"y" help:"Release year"`
	Page        int    `short:"p" help:"Result page, starting at 1"`
	Interactive bool   `short:"i" help:"Pick a result interactively and show its details"`
}

// PosterCmd represents the poster command
type PosterCmd struct {
	LookupFlags `embed:""`
	Kind        string `short:"k" help:"Title kind: movie or series" default:"movie" enum:"movie,series"`
	Output      string `short:"o" help:"Directory posters are written to"`
	MaxWidth    int    `help:"Maximum poster width in pixels" default:"600"`
	Overwrite   bool   `help:"Replace an existing poster file"`
}

// CacheCmd groups the cache maintenance commands
type CacheCmd struct {
	Clear CacheClearCmd `cmd:"" help:"Remove every cached response"`
	Prune CachePruneCmd `cmd:"" help:"Remove responses older than the cache TTL"`
}

// CacheClearCmd represents the cache clear command
type CacheClearCmd struct{}

// CachePruneCmd represents the cache prune command
type CachePruneCmd struct{}

// Execute runs the Kong-based CLI
func Execute() {
	var cli CLI

	ctx := kong.Parse(&cli,
		kong.Name("omdb"),
		kong.Description("Query the Open Movie Database from the command line."),
		kong.UsageOnError(),
	)

	initLogging(cli.Verbose)

	if err := config.Load(); err != nil {
		slog.Error("Failed to load configuration", "error", err)
		os.Exit(1)
	}

	updateGlobalConfig(&cli)

	err := ctx.Run()
	if closeErr := cache.ResetGlobalCache(); closeErr != nil {
		slog.Warn("Failed to close cache", "error", closeErr)
	}
	if err != nil {
		if retryAfter, ok := errors.RetryAfter(err); ok {
			slog.Error("Command failed", "error", err, "retry_after", retryAfter)
		} else {
			slog.Error("Command failed", "error", err)
		}
		os.Exit(1)
	}
}

func updateGlobalConfig(cli *CLI) {
	if cli.APIKey != "" {
		viper.Set(config.KeyAPIKey, cli.APIKey)
	}
	if cli.BaseURL != "" {
		viper.Set(config.KeyBaseURL, cli.BaseURL)
	}
	if cli.UserAgent != "" {
		viper.Set(config.KeyUserAgent, cli.UserAgent)
	}
	if cli.RateLimit >= 0 {
		viper.Set(config.KeyRateLimit, cli.RateLimit)
	}
	if cli.Format != "" {
		config.SetOutputFormat(cli.Format)
	}

	// --save only ever turns saving on; datastore.enabled in config.yaml
	// can enable it as well.
	if cli.Save {
		viper.Set(config.KeySave, true)
	}
	if cli.DB != "" {
		viper.Set(config.KeyDBFile, cli.DB)
	}

	if cli.Cache {
		viper.Set(config.KeyCacheEnabled, true)
	}
	if cli.CacheDB != "" {
		viper.Set(config.KeyCacheDB, cli.CacheDB)
	}
	if cli.CacheTTL != "" {
		viper.Set(config.KeyCacheTTL, cli.CacheTTL)
	}
}

func newClientFromConfig() (*client.Client, error) {
	apiKey, err := config.GetAPIKey()
	if err != nil {
		return nil, err
	}

	userAgent := viper.GetString(config.KeyUserAgent)
	if strings.TrimSpace(userAgent) == "" {
		return nil, fmt.Errorf("user agent must not be blank")
	}

	conn := connection.New(
		connection.WithBaseURL(viper.GetString(config.KeyBaseURL)),
		connection.WithUserAgent(userAgent),
		connection.WithRateLimit(viper.GetInt(config.KeyRateLimit)),
		connection.WithLogger(slog.Default()),
	)
	return client.New(apiKey, client.WithConnection(conn))
}

// cachedFetch answers req from the response cache when caching is enabled and
// calls fetch otherwise. The cache key is the request's query without the
// API key.
func cachedFetch[T any](table string, req model.QueryParameterRequest, fetch func() (*T, error)) (*T, error) {
	q, err := req.PopulateQueryParameters(url.Values{})
	if err != nil {
		return nil, err
	}
	result, _, err := cache.GetOrFetch(table, q.Encode(), cache.FetchFunc[*T](fetch))
	return result, err
}

// lookups turns the flags into one lookup per --id, or a single title lookup.
func (l LookupFlags) lookups() ([]model.Lookup, error) {
	title := strings.TrimSpace(l.Title)
	switch {
	case len(l.ID) > 0 && title != "":
		return nil, fmt.Errorf("use either --id or --title, not both")
	case len(l.ID) > 0:
		result := make([]model.Lookup, 0, len(l.ID))
		for _, id := range l.ID {
			result = append(result, model.ByID(strings.TrimSpace(id)))
		}
		return result, nil
	case title != "":
		if l.Year != 0 {
			return []model.Lookup{model.ByTitleYear(title, l.Year)}, nil
		}
		return []model.Lookup{model.ByTitle(title)}, nil
	default:
		return nil, fmt.Errorf("an IMDb id (--id) or a title (--title) is required")
	}
}

func (l LookupFlags) single() (model.Lookup, error) {
	all, err := l.lookups()
	if err != nil {
		return model.Lookup{}, err
	}
	if len(all) > 1 {
		return model.Lookup{}, fmt.Errorf("only one --id can be given")
	}
	return all[0], nil
}

// fetchAll runs fetch for every lookup concurrently and returns the results
// in lookup order. The first failure cancels the rest.
func fetchAll[T any](ctx context.Context, lookups []model.Lookup, fetch func(context.Context, model.Lookup) (*T, error)) ([]T, error) {
	results := make([]T, len(lookups))

	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(maxConcurrentLookups)
	for i, lookup := range lookups {
		g.Go(func() error {
			item, err := fetch(ctx, lookup)
			if err != nil {
				return fmt.Errorf("failed to fetch %s: %w", lookup, err)
			}
			results[i] = *item
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return results, nil
}

// Run methods for each command

func (m *MovieCmd) Run() error {
	lookups, err := m.lookups()
	if err != nil {
		return err
	}
	c, err := newClient()
	if err != nil {
		return err
	}

	movies, err := fetchAll(context.Background(), lookups, func(ctx context.Context, l model.Lookup) (*model.Movie, error) {
		req := &model.MovieRequest{Lookup: l, Plot: model.Plot(m.Plot)}
		return cachedFetch(cache.LookupsTable, req, func() (*model.Movie, error) {
			return c.GetMovie(ctx, req)
		})
	})
	if err != nil {
		return err
	}

	if err := writeOutput(stdout, movies, writeMovieText); err != nil {
		return err
	}
	return saveMovies(movies)
}

func (s *SeriesCmd) Run() error {
	lookups, err := s.lookups()
	if err != nil {
		return err
	}
	c, err := newClient()
	if err != nil {
		return err
	}

	series, err := fetchAll(context.Background(), lookups, func(ctx context.Context, l model.Lookup) (*model.Series, error) {
		req := &model.SeriesRequest{Lookup: l, Plot: model.Plot(s.Plot)}
		return cachedFetch(cache.LookupsTable, req, func() (*model.Series, error) {
			return c.GetSeries(ctx, req)
		})
	})
	if err != nil {
		return err
	}

	if err := writeOutput(stdout, series, writeSeriesText); err != nil {
		return err
	}
	return saveSeries(series)
}

func (s *SeasonCmd) Run() error {
	lookup, err := s.single()
	if err != nil {
		return err
	}
	c, err := newClient()
	if err != nil {
		return err
	}

	req := &model.SeasonRequest{Lookup: lookup, Season: s.Season}
	season, err := cachedFetch(cache.LookupsTable, req, func() (*model.Season, error) {
		return c.GetSeason(context.Background(), req)
	})
	if err != nil {
		return fmt.Errorf("failed to fetch season %d of %s: %w", s.Season, lookup, err)
	}

	if err := writeOutput(stdout, []model.Season{*season}, writeSeasonText); err != nil {
		return err
	}
	return saveSeason(*season)
}

func (e *EpisodeCmd) Run() error {
	lookup, err := e.single()
	if err != nil {
		return err
	}
	c, err := newClient()
	if err != nil {
		return err
	}

	req := &model.EpisodeRequest{
		Lookup:  lookup,
		Season:  e.Season,
		Episode: e.Episode,
		Plot:    model.Plot(e.Plot),
	}
	episode, err := cachedFetch(cache.LookupsTable, req, func() (*model.Episode, error) {
		return c.GetEpisode(context.Background(), req)
	})
	if err != nil {
		return fmt.Errorf("failed to fetch S%dE%d of %s: %w", e.Season, e.Episode, lookup, err)
	}

	episodes := []model.Episode{*episode}
	if err := writeOutput(stdout, episodes, writeEpisodeText); err != nil {
		return err
	}
	return saveEpisodes(episodes)
}

func (s *SearchCmd) Run() error {
	c, err := newClient()
	if err != nil {
		return err
	}

	ctx := context.Background()
	query := model.SearchQuery{Title: s.Title, Year: s.Year, Page: s.Page}

	var response *model.SearchResponse
	if s.Kind == string(model.MediaTypeSeries) {
		req := &model.SearchSeriesRequest{SearchQuery: query}
		response, err = cachedFetch(cache.SearchesTable, req, func() (*model.SearchResponse, error) {
			return c.SearchSeries(ctx, req)
		})
	} else {
		req := &model.SearchMovieRequest{SearchQuery: query}
		response, err = cachedFetch(cache.SearchesTable, req, func() (*model.SearchResponse, error) {
			return c.SearchMovies(ctx, req)
		})
	}
	if err != nil {
		return fmt.Errorf("search for %q failed: %w", s.Title, err)
	}

	if err := saveSearchResults(response.Results); err != nil {
		return err
	}

	if !s.Interactive {
		return writeOutput(stdout, []model.SearchResponse{*response}, writeSearchText)
	}

	selection, err := selectResult(s.Title, response.Results)
	if err != nil {
		return fmt.Errorf("selection failed: %w", err)
	}
	if selection.Action != tui.ActionSelected || selection.Selection == nil {
		slog.Info("No result selected")
		return nil
	}

	return s.showDetails(ctx, c, *selection.Selection)
}

func (s *SearchCmd) showDetails(ctx context.Context, c *client.Client, result model.SearchResult) error {
	lookup := model.ByID(result.IMDbID)
	if result.Type == model.MediaTypeSeries {
		series, err := c.GetSeries(ctx, &model.SeriesRequest{Lookup: lookup})
		if err != nil {
			return fmt.Errorf("failed to fetch %s: %w", lookup, err)
		}
		return writeOutput(stdout, []model.Series{*series}, writeSeriesText)
	}

	movie, err := c.GetMovie(ctx, &model.MovieRequest{Lookup: lookup})
	if err != nil {
		return fmt.Errorf("failed to fetch %s: %w", lookup, err)
	}
	return writeOutput(stdout, []model.Movie{*movie}, writeMovieText)
}

func (p *PosterCmd) Run() error {
	lookup, err := p.single()
	if err != nil {
		return err
	}
	c, err := newClient()
	if err != nil {
		return err
	}

	ctx := context.Background()
	var record model.MediaRecord
	if p.Kind == string(model.MediaTypeSeries) {
		record, err = c.GetSeries(ctx, &model.SeriesRequest{Lookup: lookup})
	} else {
		record, err = c.GetMovie(ctx, &model.MovieRequest{Lookup: lookup})
	}
	if err != nil {
		return fmt.Errorf("failed to fetch %s: %w", lookup, err)
	}

	outputCfg := &cmdutil.OutputConfig{
		OutputDir: p.Output,
		ConfigKey: config.KeyPosterDir,
		Default:   config.DefaultPosterDir,
	}
	if err := cmdutil.SetupOutputDir(outputCfg); err != nil {
		return err
	}

	media := record.Info()
	result, err := newDownloader().Download(ctx, poster.Options{
		URL:       media.Poster,
		OutputDir: outputCfg.OutputDir,
		Filename:  poster.Filename(media),
		MaxWidth:  p.MaxWidth,
		Overwrite: p.Overwrite,
	})
	if err != nil {
		return fmt.Errorf("failed to download poster for %s: %w", lookup, err)
	}

	_, err = fmt.Fprintln(stdout, result.Path)
	return err
}

func (c *CacheClearCmd) Run() error {
	cacheDB, err := cache.GetGlobalCache()
	if err != nil {
		return fmt.Errorf("failed to open cache database: %w", err)
	}

	removed, err := cacheDB.ClearAll()
	if err != nil {
		return fmt.Errorf("failed to clear cache: %w", err)
	}

	slog.Info("Cache cleared", "database", cacheDB.Path(), "rows_deleted", removed)
	_, err = fmt.Fprintf(stdout, "Removed %d cached responses\n", removed)
	return err
}

func (p *CachePruneCmd) Run() error {
	cacheDB, err := cache.GetGlobalCache()
	if err != nil {
		return fmt.Errorf("failed to open cache database: %w", err)
	}

	removed, err := cacheDB.ClearExpired(cache.TTL())
	if err != nil {
		return fmt.Errorf("failed to prune cache: %w", err)
	}

	slog.Info("Cache pruned", "database", cacheDB.Path(), "rows_deleted", removed)
	_, err = fmt.Fprintf(stdout, "Removed %d expired responses\n", removed)
	return err
}

func initLogging(verbose bool) {
	level := slog.LevelInfo
	if verbose {
		level = slog.LevelDebug
	}

	handler := humanlog.NewHandler(os.Stderr, &humanlog.Options{
		Level: level,
	})

	slog.SetDefault(slog.New(handler))
}
