// Package poster downloads OMDb poster images and stores them as resized
// JPEG files.
package poster

import (
	"context"
	stdErrors "errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/disintegration/imaging"

	"github.com/lepinkainen/omdb/model"
)

// DefaultMaxWidth is the width posters are scaled down to when no other
// width is requested. Narrower images are kept as they are.
const DefaultMaxWidth = 600

// ErrNoPoster is returned when a title has no poster URL.
var ErrNoPoster = stdErrors.New("title has no poster")

// HTTPDoer is the subset of *http.Client used for downloads.
type HTTPDoer interface {
	Do(req *http.Request) (*http.Response, error)
}

// Downloader fetches poster images.
type Downloader struct {
	httpClient HTTPDoer
	userAgent  string
}

// Option configures a Downloader.
type Option func(*Downloader)

// WithHTTPClient sets the HTTP client used for downloads.
func WithHTTPClient(client HTTPDoer) Option {
	return func(d *Downloader) {
		if client != nil {
			d.httpClient = client
		}
	}
}

// WithUserAgent sets the User-Agent header sent with downloads.
func WithUserAgent(userAgent string) Option {
	return func(d *Downloader) {
		d.userAgent = userAgent
	}
}

// New creates a Downloader with a 30 second timeout.
func New(opts ...Option) *Downloader {
	d := &Downloader{httpClient: &http.Client{Timeout: 30 * time.Second}}
	for _, opt := range opts {
		opt(d)
	}
	return d
}

// Options describes one download.
type Options struct {
	// URL is the poster URL as returned by OMDb.
	URL string
	// OutputDir is the directory the file is written to.
	OutputDir string
	// Filename is the name of the file inside OutputDir.
	Filename string
	// MaxWidth caps the image width; 0 means DefaultMaxWidth.
	MaxWidth int
	// Overwrite replaces an existing file instead of skipping the download.
	Overwrite bool
}

// Result reports where a poster was written.
type Result struct {
	Path       string
	Downloaded bool
}

// Download fetches opts.URL, scales it down to opts.MaxWidth and saves it as
// JPEG. An existing file is left alone unless opts.Overwrite is set.
func (d *Downloader) Download(ctx context.Context, opts Options) (*Result, error) {
	if strings.TrimSpace(opts.URL) == "" {
		return nil, ErrNoPoster
	}
	maxWidth := opts.MaxWidth
	if maxWidth <= 0 {
		maxWidth = DefaultMaxWidth
	}

	result := &Result{Path: filepath.Join(opts.OutputDir, opts.Filename)}
	if fileExists(result.Path) && !opts.Overwrite {
		slog.Debug("Poster already exists, skipping download", "path", result.Path)
		return result, nil
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, opts.URL, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}
	if d.userAgent != "" {
		req.Header.Set("User-Agent", d.userAgent)
	}

	resp, err := d.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("failed to download poster: %w", err)
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return nil, fmt.Errorf("unexpected status %d downloading poster from %s", resp.StatusCode, opts.URL)
	}

	img, err := imaging.Decode(resp.Body, imaging.AutoOrientation(true))
	if err != nil {
		return nil, fmt.Errorf("failed to decode poster: %w", err)
	}

	if img.Bounds().Dx() > maxWidth {
		img = imaging.Resize(img, maxWidth, 0, imaging.Lanczos)
	}

	if err := os.MkdirAll(opts.OutputDir, 0o755); err != nil {
		return nil, fmt.Errorf("failed to create poster directory: %w", err)
	}
	if err := imaging.Save(img, result.Path, imaging.JPEGQuality(85)); err != nil {
		return nil, fmt.Errorf("failed to save poster: %w", err)
	}

	slog.Info("Downloaded poster", "path", result.Path)
	result.Downloaded = true
	return result, nil
}

// Filename builds "Title (Year) - poster.jpg" for a title, or
// "<imdb id> - poster.jpg" when the title is unknown.
func Filename(media model.Media) string {
	name := media.Title
	if name == "" {
		name = media.IMDbID
	}
	if media.Year != "" {
		name = fmt.Sprintf("%s (%s)", name, media.Year)
	}
	return SanitizeFilename(name) + " - poster.jpg"
}

// SanitizeFilename replaces characters that are not valid in file names.
func SanitizeFilename(name string) string {
	replacer := strings.NewReplacer(
		":", " -",
		"/", "-",
		"\\", "-",
		"?", "",
		"*", "",
		"\"", "'",
		"<", "",
		">", "",
		"|", "-",
	)
	return strings.TrimSpace(replacer.Replace(name))
}

func fileExists(path string) bool {
	info, err := os.Stat(path)
	if err != nil {
		return false
	}
	return !info.IsDir()
}
