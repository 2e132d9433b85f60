// Package ratelimit paces outgoing requests on the client side.
package ratelimit

import (
	"context"
	"fmt"
	"log/slog"

	"golang.org/x/time/rate"
)

// Limiter wraps rate.Limiter with a name used in logs and errors.
type Limiter struct {
	limiter *rate.Limiter
	name    string
}

// New creates a limiter allowing requestsPerSecond requests per second with
// no bursting. A non-positive rate yields a limiter that never blocks.
func New(name string, requestsPerSecond int) *Limiter {
	limit := rate.Limit(requestsPerSecond)
	if requestsPerSecond <= 0 {
		limit = rate.Inf
	}
	return &Limiter{
		limiter: rate.NewLimiter(limit, 1),
		name:    name,
	}
}

// Wait blocks until a request may proceed or ctx is done.
func (l *Limiter) Wait(ctx context.Context) error {
	if l.limiter.Tokens() < 1 {
		slog.Debug("Waiting for rate limiter", "limiter", l.name)
	}
	if err := l.limiter.Wait(ctx); err != nil {
		return fmt.Errorf("rate limit wait for %s: %w", l.name, err)
	}
	return nil
}

// Name returns the name of this rate limiter.
func (l *Limiter) Name() string {
	return l.name
}
