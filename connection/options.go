package connection

import (
	"log/slog"
	"strings"

	"github.com/lepinkainen/omdb/codec"
	"github.com/lepinkainen/omdb/internal/ratelimit"
)

// Option configures a Connection.
type Option func(*Connection)

// WithHTTPClient sets the HTTP client. A nil client is ignored.
func WithHTTPClient(client HTTPDoer) Option {
	return func(c *Connection) {
		if client != nil {
			c.httpClient = client
		}
	}
}

// WithBaseURL sets the service endpoint. Blank values and values of 256 or
// more characters are ignored and DefaultBaseURL is used instead.
func WithBaseURL(baseURL string) Option {
	return func(c *Connection) {
		if strings.TrimSpace(baseURL) == "" || len(baseURL) >= maxBaseURLLength {
			c.baseURL = DefaultBaseURL
			return
		}
		c.baseURL = baseURL
	}
}

// WithUserAgent sets the User-Agent header value.
func WithUserAgent(userAgent string) Option {
	return func(c *Connection) {
		c.userAgent = userAgent
	}
}

// WithCodec sets the codec used to decode bodies.
func WithCodec(cdc *codec.Codec) Option {
	return func(c *Connection) {
		c.codec = cdc
	}
}

// WithAuthenticator installs a hook that runs on every request before it is
// sent.
func WithAuthenticator(auth Authenticator) Option {
	return func(c *Connection) {
		if auth != nil {
			c.authenticator = auth
		}
	}
}

// WithRateLimit paces requests to at most requestsPerSecond. Pacing is off
// unless this option is given; a non-positive rate leaves it off.
func WithRateLimit(requestsPerSecond int) Option {
	return func(c *Connection) {
		if requestsPerSecond <= 0 {
			c.limiter = nil
			return
		}
		c.limiter = ratelimit.New("omdb", requestsPerSecond)
	}
}

// WithLogger sets the logger for request diagnostics.
func WithLogger(logger *slog.Logger) Option {
	return func(c *Connection) {
		if logger != nil {
			c.logger = logger
		}
	}
}
