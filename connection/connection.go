// Package connection issues HTTP requests against OMDb and translates
// transport failures, HTTP statuses and the service's failure envelope into
// the typed errors of the errors package.
package connection

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/lepinkainen/omdb/codec"
	"github.com/lepinkainen/omdb/errors"
	"github.com/lepinkainen/omdb/internal/ratelimit"
)

const (
	// DefaultBaseURL is the public OMDb endpoint.
	DefaultBaseURL = "http://www.omdbapi.com/"
	// DefaultUserAgent identifies this client to the service.
	DefaultUserAgent = "OMDbGoClient/2.0"
	// DefaultRetryAfter is reported for a 429 without a usable Retry-After header.
	DefaultRetryAfter = 10 * time.Second

	maxBaseURLLength = 256
	maxErrorSnippet  = 512
	contentTypeJSON  = "application/json"
)

// HTTPDoer is the subset of *http.Client the connection needs.
type HTTPDoer interface {
	Do(req *http.Request) (*http.Response, error)
}

// Authenticator decorates a request before it is sent. OMDb itself uses an
// apikey query parameter, so the default does nothing.
type Authenticator interface {
	Authenticate(req *http.Request) error
}

// AuthenticatorFunc adapts a function to the Authenticator interface.
type AuthenticatorFunc func(req *http.Request) error

// Authenticate calls f(req).
func (f AuthenticatorFunc) Authenticate(req *http.Request) error {
	return f(req)
}

type noAuth struct{}

func (noAuth) Authenticate(*http.Request) error { return nil }

// Connection executes requests and decodes successful responses. It is
// immutable once built and safe for concurrent use.
type Connection struct {
	httpClient    HTTPDoer
	baseURL       string
	userAgent     string
	codec         *codec.Codec
	authenticator Authenticator
	limiter       *ratelimit.Limiter
	logger        *slog.Logger
}

// New creates a Connection. Without options it talks to DefaultBaseURL using
// http.DefaultClient and a default codec.
func New(opts ...Option) *Connection {
	c := &Connection{
		httpClient:    http.DefaultClient,
		baseURL:       DefaultBaseURL,
		userAgent:     DefaultUserAgent,
		authenticator: noAuth{},
		logger:        slog.Default(),
	}
	for _, opt := range opts {
		opt(c)
	}
	if c.codec == nil {
		c.codec = codec.New(codec.WithLogger(c.logger))
	}
	return c
}

// BaseURL returns the endpoint requests are built against.
func (c *Connection) BaseURL() string {
	return c.baseURL
}

// UserAgent returns the User-Agent header value sent with every request.
func (c *Connection) UserAgent() string {
	return c.userAgent
}

// Codec returns the codec used to decode response bodies.
func (c *Connection) Codec() *codec.Codec {
	return c.codec
}

// NewRequest creates a GET request for rawURL carrying the client's
// User-Agent and a JSON Accept header.
func (c *Connection) NewRequest(ctx context.Context, rawURL string) (*http.Request, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, rawURL, nil)
	if err != nil {
		return nil, errors.NewRequestError("failed to create request", err)
	}
	req.Header.Set("User-Agent", c.userAgent)
	req.Header.Set("Accept", contentTypeJSON)
	return req, nil
}

// Execute sends req and decodes the response body into target, which must
// be a non-nil pointer. Failures are classified as follows:
//
//   - transport or body read failure: *errors.RequestError
//   - 429: *errors.ThrottledError
//   - any other 4xx: *errors.RequestError
//   - any other non-2xx: *errors.ResponseError
//   - a body with "Response" not "True": *errors.ResponseError with the
//     service's message
//   - a body that does not fit target: *errors.ResponseParseError
//
// Nothing is retried.
func (c *Connection) Execute(req *http.Request, target any) error {
	if req == nil {
		return errors.NewInvalidArgumentError("request must not be nil")
	}
	if target == nil {
		return errors.NewInvalidArgumentError("target must not be nil")
	}

	if err := c.authenticator.Authenticate(req); err != nil {
		return errors.NewRequestError("failed to authenticate request", err)
	}
	if c.limiter != nil {
		if err := c.limiter.Wait(req.Context()); err != nil {
			return errors.NewRequestError("unable to execute request", err)
		}
	}

	c.logger.Debug("Sending OMDb request", "url", redact(req.URL))

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return errors.NewRequestError("unable to execute request", err)
	}
	defer func() { _ = resp.Body.Close() }()

	c.logger.Debug("Received OMDb response", "status", resp.StatusCode)

	if err := validateResponseCode(resp); err != nil {
		return err
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return errors.NewRequestError("failed to read response body", err)
	}

	if err := c.validateResponseBody(body); err != nil {
		return err
	}

	return c.codec.Decode(body, target)
}

// failureResponse is the envelope every OMDb document carries.
type failureResponse struct {
	Response string `json:"Response"`
	Error    string `json:"Error"`
}

func (f failureResponse) succeeded() bool {
	return strings.EqualFold(strings.TrimSpace(f.Response), "true")
}

func (c *Connection) validateResponseBody(body []byte) error {
	var envelope failureResponse
	if err := c.codec.Decode(body, &envelope); err != nil {
		return err
	}
	if envelope.succeeded() {
		return nil
	}

	c.logger.Debug("OMDb reported failure", "error", envelope.Error)
	message := envelope.Error
	if message == "" {
		message = "service reported an unsuccessful response"
	}
	return errors.NewResponseError(message)
}

func validateResponseCode(resp *http.Response) error {
	code := resp.StatusCode
	switch {
	case code == http.StatusTooManyRequests:
		retryAfter := parseRetryAfter(resp.Header.Get("Retry-After"), time.Now())
		return errors.NewThrottledError("request throttled", retryAfter)
	case code >= 400 && code < 500:
		return errors.NewRequestStatusError(code, statusDetail(resp))
	case code < 200 || code >= 300:
		return errors.NewResponseStatusError(code, statusDetail(resp))
	default:
		return nil
	}
}

// statusDetail describes a rejected response using its status text and the
// start of its body.
func statusDetail(resp *http.Response) string {
	detail := http.StatusText(resp.StatusCode)
	snippet, err := io.ReadAll(io.LimitReader(resp.Body, maxErrorSnippet))
	if err != nil {
		return detail
	}
	if text := string(bytes.TrimSpace(snippet)); text != "" {
		detail = fmt.Sprintf("%s: %s", detail, text)
	}
	return detail
}

// redact hides the apikey parameter so URLs can be logged.
func redact(u *url.URL) string {
	if u == nil {
		return ""
	}
	q := u.Query()
	if !q.Has("apikey") {
		return u.String()
	}
	q.Set("apikey", "REDACTED")
	clone := *u
	clone.RawQuery = q.Encode()
	return clone.String()
}
