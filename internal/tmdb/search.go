package tmdb

import (
	"context"
	"fmt"

	"github.com/lepinkainen/reelmeta/internal/envelope"
	"github.com/lepinkainen/reelmeta/internal/request"
)

// SearchOptions configures Search. Library selects the endpoint; an empty
// library searches movies, shows and people at once.
type SearchOptions struct {
	Library            LibraryType
	Language           string
	Page               int
	IncludeAdult       *bool
	Region             string
	Year               int
	PrimaryReleaseYear int
	FirstAirDateYear   int
}

// Search performs a text search.
func (c *Client) Search(ctx context.Context, query string, opts SearchOptions) envelope.Response[Payload] {
	return c.get(ctx, "/search/"+opts.Library.searchPath(), request.Query{
		"query":                query,
		"language":             optString(opts.Language),
		"page":                 optInt(opts.Page),
		"include_adult":        optBool(opts.IncludeAdult),
		"region":               optString(opts.Region),
		"year":                 optInt(opts.Year),
		"primary_release_year": optInt(opts.PrimaryReleaseYear),
		"first_air_date_year":  optInt(opts.FirstAirDateYear),
	})
}

// DiscoverOptions configures Discover. Params carries the provider's
// filters (sort_by, with_genres, ...) verbatim; Language and Page win over
// the same keys in Params.
type DiscoverOptions struct {
	Library  LibraryType
	Language string
	Page     int
	Params   map[string]any
}

// Discover lists media matching free-form filters.
func (c *Client) Discover(ctx context.Context, opts DiscoverOptions) envelope.Response[Payload] {
	query := make(request.Query, len(opts.Params)+2)
	for k, v := range opts.Params {
		query[k] = v
	}
	if opts.Language != "" {
		query["language"] = opts.Language
	}
	if opts.Page > 0 {
		query["page"] = opts.Page
	}
	return c.get(ctx, "/discover/"+opts.Library.listPath(), query)
}

// Trending windows.
const (
	WindowDay  = "day"
	WindowWeek = "week"
)

// TrendingOptions configures Trending. Window defaults to WindowDay.
type TrendingOptions struct {
	Library  LibraryType
	Window   string
	Language string
	Page     int
	Region   string
}

// Trending lists what is trending over the window.
func (c *Client) Trending(ctx context.Context, opts TrendingOptions) envelope.Response[Payload] {
	window := opts.Window
	if window == "" {
		window = WindowDay
	}
	return c.get(ctx, fmt.Sprintf("/trending/%s/%s", opts.Library.trendingPath(), window), request.Query{
		"language": optString(opts.Language),
		"page":     optInt(opts.Page),
		"region":   optString(opts.Region),
	})
}

// ListOptions configures the paged list endpoints. Library defaults to
// movies and is ignored by the movie-only lists.
type ListOptions struct {
	Library  LibraryType
	Language string
	Page     int
	Region   string
}

func (o ListOptions) query() request.Query {
	return request.Query{
		"language": optString(o.Language),
		"page":     optInt(o.Page),
		"region":   optString(o.Region),
	}
}

// Popular lists popular movies or shows.
func (c *Client) Popular(ctx context.Context, opts ListOptions) envelope.Response[Payload] {
	return c.get(ctx, "/"+opts.Library.listPath()+"/popular", opts.query())
}

// TopRated lists the best rated movies or shows.
func (c *Client) TopRated(ctx context.Context, opts ListOptions) envelope.Response[Payload] {
	return c.get(ctx, "/"+opts.Library.listPath()+"/top_rated", opts.query())
}

// Upcoming lists movies about to be released.
func (c *Client) Upcoming(ctx context.Context, opts ListOptions) envelope.Response[Payload] {
	return c.get(ctx, "/movie/upcoming", opts.query())
}

// NowPlaying lists movies currently in theatres.
func (c *Client) NowPlaying(ctx context.Context, opts ListOptions) envelope.Response[Payload] {
	return c.get(ctx, "/movie/now_playing", opts.query())
}

// Recommendations lists media recommended for the given movie or show.
func (c *Client) Recommendations(ctx context.Context, id int, opts ListOptions) envelope.Response[Payload] {
	return c.get(ctx, fmt.Sprintf("/%s/%d/recommendations", opts.Library.listPath(), id), opts.query())
}

// Similar lists media similar to the given movie or show.
func (c *Client) Similar(ctx context.Context, id int, opts ListOptions) envelope.Response[Payload] {
	return c.get(ctx, fmt.Sprintf("/%s/%d/similar", opts.Library.listPath(), id), opts.query())
}

// KeywordOptions configures ByKeyword.
type KeywordOptions struct {
	Library  LibraryType
	Language string
	Page     int
}

// ByKeyword lists media tagged with a keyword.
func (c *Client) ByKeyword(ctx context.Context, id int, opts KeywordOptions) envelope.Response[Payload] {
	return c.get(ctx, fmt.Sprintf("/keyword/%d/%s", id, opts.Library.listPath()), request.Query{
		"language": optString(opts.Language),
		"page":     optInt(opts.Page),
	})
}

// Airing windows.
const (
	WindowAiringToday = "airing_today"
	WindowOnTheAir    = "on_the_air"
)

// AiringOptions configures AiringToday. Window defaults to
// WindowAiringToday; WindowOnTheAir covers the next seven days.
type AiringOptions struct {
	Window   string
	Language string
	Page     int
	Timezone string
}

// AiringToday lists shows airing in the window.
func (c *Client) AiringToday(ctx context.Context, opts AiringOptions) envelope.Response[Payload] {
	window := opts.Window
	if window == "" {
		window = WindowAiringToday
	}
	return c.get(ctx, "/tv/"+window, request.Query{
		"language": optString(opts.Language),
		"page":     optInt(opts.Page),
		"timezone": optString(opts.Timezone),
	})
}
