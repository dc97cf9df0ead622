// Package ratelimit throttles outbound provider calls.
package ratelimit

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"golang.org/x/time/rate"
)

// Limiter is a token bucket shared by every request to one provider. The
// name shows up in logs and wait errors.
type Limiter struct {
	bucket *rate.Limiter
	name   string
}

// New allows perSecond requests per second with an equal burst.
func New(name string, perSecond int) *Limiter {
	return NewWithBurst(name, perSecond, perSecond)
}

// NewWithBurst allows perSecond requests per second with the given burst,
// which is never below one.
func NewWithBurst(name string, perSecond, burst int) *Limiter {
	return newLimiter(name, rate.Limit(perSecond), burst)
}

// Every allows one request per interval. Used for providers without a
// published quota, such as the Apple store search.
func Every(name string, interval time.Duration) *Limiter {
	return newLimiter(name, rate.Every(interval), 1)
}

func newLimiter(name string, limit rate.Limit, burst int) *Limiter {
	return &Limiter{
		bucket: rate.NewLimiter(limit, max(burst, 1)),
		name:   name,
	}
}

// Wait blocks until a request may proceed or ctx is done.
func (l *Limiter) Wait(ctx context.Context) error {
	start := time.Now()
	if err := l.bucket.Wait(ctx); err != nil {
		return fmt.Errorf("rate limit wait for %s: %w", l.name, err)
	}
	if waited := time.Since(start); waited > time.Millisecond {
		slog.Debug("Rate limited", "limiter", l.name, "waited", waited)
	}
	return nil
}

// Allow takes a token without blocking and reports whether one was free.
func (l *Limiter) Allow() bool {
	return l.bucket.Allow()
}

// Name returns the limiter name.
func (l *Limiter) Name() string {
	return l.name
}
