// Package tmdb provides a client for TheMovieDB API.
package tmdb

import (
	"net/http"
	"strings"
	"time"

	"github.com/lepinkainen/reelmeta/internal/ratelimit"
	"github.com/lepinkainen/reelmeta/internal/request"
)

const (
	defaultBaseURL       = "https://api.themoviedb.org/3"
	defaultImageBaseURL  = "https://image.tmdb.org/t/p/original"
	defaultRatePerSecond = 40
	seasonBatchSize      = 20
)

// Payload is a provider entity as decoded from JSON. Date strings have
// already been replaced by time.Time values.
type Payload = map[string]any

// HTTPDoer is an interface for making HTTP requests.
type HTTPDoer = request.Doer

// Client is a TMDB API client.
type Client struct {
	apiKey       string
	baseURL      string
	imageBaseURL string
	httpClient   HTTPDoer
	rateLimiter  *ratelimit.Limiter
	observer     request.Observer
	executor     *request.Executor
}

// NewClient creates a new TMDB API client.
func NewClient(apiKey string, opts ...Option) *Client {
	client := &Client{
		apiKey:       apiKey,
		baseURL:      defaultBaseURL,
		imageBaseURL: defaultImageBaseURL,
		httpClient:   &http.Client{Timeout: 10 * time.Second},
		rateLimiter:  ratelimit.New("TMDB", defaultRatePerSecond),
	}

	for _, opt := range opts {
		opt(client)
	}

	var execOpts []request.Option
	if client.observer != nil {
		execOpts = append(execOpts, request.WithObserver(client.observer))
	}
	client.executor = request.NewExecutor(ratelimit.Wrap(client.httpClient, client.rateLimiter), execOpts...)

	return client
}

// Option is a functional option for configuring the Client.
type Option func(*Client)

// WithHTTPClient sets a custom HTTP client.
func WithHTTPClient(c HTTPDoer) Option {
	return func(client *Client) {
		if c != nil {
			client.httpClient = c
		}
	}
}

// WithBaseURL sets a custom base URL for the TMDB API.
func WithBaseURL(base string) Option {
	return func(client *Client) {
		if base != "" {
			client.baseURL = strings.TrimSuffix(base, "/")
		}
	}
}

// WithImageBaseURL sets a custom base URL for TMDB images.
func WithImageBaseURL(base string) Option {
	return func(client *Client) {
		if base != "" {
			client.imageBaseURL = strings.TrimSuffix(base, "/")
		}
	}
}

// WithRateLimiter sets a custom rate limiter for the client. Passing nil
// disables throttling.
func WithRateLimiter(limiter *ratelimit.Limiter) Option {
	return func(client *Client) {
		client.rateLimiter = limiter
	}
}

// WithObserver reports every request made by the client to o.
func WithObserver(o request.Observer) Option {
	return func(client *Client) {
		client.observer = o
	}
}

// ImageBaseURL returns the root ImageURL prefixes file paths with.
func (c *Client) ImageBaseURL() string {
	return c.imageBaseURL
}

// ImageURL constructs the full image URL from a file path.
func (c *Client) ImageURL(filePath string) string {
	return c.imageBaseURL + filePath
}
