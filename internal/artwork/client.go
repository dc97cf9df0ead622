package artwork

import (
	"net/http"
	"strings"
	"time"

	"github.com/lepinkainen/reelmeta/internal/ratelimit"
	"github.com/lepinkainen/reelmeta/internal/request"
)

const (
	defaultFanArtBaseURL  = "https://webservice.fanart.tv/v3"
	defaultAppleLocaleURL = "https://itunesartwork.bendodson.com/url.php"
)

// Client fetches artwork from fanart.tv and the Apple store. It holds no
// state between calls.
type Client struct {
	fanArtBaseURL  string
	appleLocaleURL string
	httpClient     request.Doer
	rateLimiter    *ratelimit.Limiter
	observer       request.Observer
	executor       *request.Executor
}

// Option is a functional option for configuring the Client.
type Option func(*Client)

// NewClient creates an artwork client.
func NewClient(opts ...Option) *Client {
	client := &Client{
		fanArtBaseURL:  defaultFanArtBaseURL,
		appleLocaleURL: defaultAppleLocaleURL,
		httpClient:     &http.Client{Timeout: 10 * time.Second},
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

// WithHTTPClient sets a custom HTTP client.
func WithHTTPClient(c request.Doer) Option {
	return func(client *Client) {
		if c != nil {
			client.httpClient = c
		}
	}
}

// WithFanArtBaseURL overrides the fanart.tv API root.
func WithFanArtBaseURL(base string) Option {
	return func(client *Client) {
		if base != "" {
			client.fanArtBaseURL = strings.TrimSuffix(base, "/")
		}
	}
}

// WithAppleLocaleURL overrides the endpoint that turns a query and locale
// into an Apple store search URL.
func WithAppleLocaleURL(address string) Option {
	return func(client *Client) {
		if address != "" {
			client.appleLocaleURL = address
		}
	}
}

// WithRateLimiter throttles every outgoing request.
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
