package ratelimit

import (
	"log/slog"
	"net/http"
)

// Doer is the subset of *http.Client used by provider clients.
type Doer interface {
	Do(*http.Request) (*http.Response, error)
}

// Transport waits on a Limiter before handing each request to Next.
type Transport struct {
	Limiter *Limiter
	Next    Doer
}

// Wrap returns next throttled by l. A nil limiter returns next unchanged.
func Wrap(next Doer, l *Limiter) Doer {
	if l == nil {
		return next
	}
	return &Transport{Limiter: l, Next: next}
}

// Do implements Doer.
func (t *Transport) Do(req *http.Request) (*http.Response, error) {
	if err := t.Limiter.Wait(req.Context()); err != nil {
		slog.Debug("Rate limiter wait aborted", "limiter", t.Limiter.Name(), "url", req.URL.Redacted())
		return nil, err
	}
	return t.Next.Do(req)
}
