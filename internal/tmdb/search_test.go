package tmdb

import (
	"net/http"
	"net/url"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func echoClient(t *testing.T) *Client {
	return newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		writeJSON(t, w, http.StatusOK, map[string]any{
			"path":  r.URL.Path,
			"query": r.URL.RawQuery,
		})
	})
}

func echoedQuery(t *testing.T, p Payload) url.Values {
	t.Helper()
	values, err := url.ParseQuery(p["query"].(string))
	require.NoError(t, err)
	return values
}

func TestSearchPaths(t *testing.T) {
	client := echoClient(t)

	tests := []struct {
		library LibraryType
		want    string
	}{
		{Movie, "/search/movie"},
		{Show, "/search/tv"},
		{Person, "/search/person"},
		{"", "/search/multi"},
	}
	for _, tt := range tests {
		resp := client.Search(t.Context(), "alien", SearchOptions{Library: tt.library})
		require.Equal(t, tt.want, resp.Data()["path"], "library %q", tt.library)
	}
}

func TestSearchQuery(t *testing.T) {
	client := echoClient(t)
	adult := false

	resp := client.Search(t.Context(), "alien", SearchOptions{
		Library:      Movie,
		Page:         2,
		IncludeAdult: &adult,
		Year:         1979,
	})
	q := echoedQuery(t, resp.Data())
	require.Equal(t, "alien", q.Get("query"))
	require.Equal(t, "2", q.Get("page"))
	require.Equal(t, "false", q.Get("include_adult"))
	require.Equal(t, "1979", q.Get("year"))
	require.False(t, q.Has("region"))
	require.False(t, q.Has("primary_release_year"))
}

func TestDiscoverSpreadsParams(t *testing.T) {
	client := echoClient(t)

	resp := client.Discover(t.Context(), DiscoverOptions{
		Library: Show,
		Page:    3,
		Params: map[string]any{
			"with_genres": []int{18, 80},
			"sort_by":     "popularity.desc",
			"page":        9,
		},
	})
	require.Equal(t, "/discover/tv", resp.Data()["path"])
	q := echoedQuery(t, resp.Data())
	require.Equal(t, "18,80", q.Get("with_genres"))
	require.Equal(t, "popularity.desc", q.Get("sort_by"))
	require.Equal(t, "3", q.Get("page"))
	require.Equal(t, "test-api-key", q.Get("api_key"))
}

func TestListPaths(t *testing.T) {
	client := echoClient(t)
	ctx := t.Context()

	tests := []struct {
		name string
		resp Payload
		want string
	}{
		{"trending default", client.Trending(ctx, TrendingOptions{}).Data(), "/trending/all/day"},
		{"trending week", client.Trending(ctx, TrendingOptions{Library: Show, Window: WindowWeek}).Data(), "/trending/tv/week"},
		{"popular", client.Popular(ctx, ListOptions{}).Data(), "/movie/popular"},
		{"top rated", client.TopRated(ctx, ListOptions{Library: Show}).Data(), "/tv/top_rated"},
		{"upcoming", client.Upcoming(ctx, ListOptions{Library: Show}).Data(), "/movie/upcoming"},
		{"now playing", client.NowPlaying(ctx, ListOptions{}).Data(), "/movie/now_playing"},
		{"recommendations", client.Recommendations(ctx, 7, ListOptions{Library: Show}).Data(), "/tv/7/recommendations"},
		{"similar", client.Similar(ctx, 7, ListOptions{}).Data(), "/movie/7/similar"},
		{"keyword", client.ByKeyword(ctx, 9715, KeywordOptions{}).Data(), "/keyword/9715/movie"},
		{"airing today", client.AiringToday(ctx, AiringOptions{}).Data(), "/tv/airing_today"},
		{"on the air", client.AiringToday(ctx, AiringOptions{Window: WindowOnTheAir}).Data(), "/tv/on_the_air"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			require.Equal(t, tt.want, tt.resp["path"])
		})
	}
}

func TestAiringTimezone(t *testing.T) {
	client := echoClient(t)

	resp := client.AiringToday(t.Context(), AiringOptions{Timezone: "Europe/Helsinki", Page: 1})
	q := echoedQuery(t, resp.Data())
	require.Equal(t, "Europe/Helsinki", q.Get("timezone"))
	require.Equal(t, "1", q.Get("page"))
}

func TestResultsFromPayload(t *testing.T) {
	payload := Payload{
		"results": []any{
			map[string]any{
				"id":           float64(603),
				"title":        "The Matrix",
				"release_date": time.Date(1999, 3, 30, 0, 0, 0, 0, time.UTC),
				"vote_average": 8.2,
				"vote_count":   float64(25000),
			},
			map[string]any{
				"id":             float64(1399),
				"media_type":     "tv",
				"name":           "Game of Thrones",
				"first_air_date": "2011-04-17",
			},
			map[string]any{"title": "no id"},
			"garbage",
		},
	}

	results := ResultsFromPayload(payload, "movie")
	require.Len(t, results, 2)

	require.Equal(t, 603, results[0].ID)
	require.Equal(t, "movie", results[0].MediaType)
	require.Equal(t, "The Matrix", results[0].DisplayTitle())
	require.Equal(t, 1999, results[0].YearInt())
	require.Equal(t, 25000, results[0].VoteCount)

	require.Equal(t, "tv", results[1].MediaType)
	require.Equal(t, "Game of Thrones", results[1].DisplayTitle())
	require.Equal(t, "2011", results[1].Year())
}

func TestSearchResultUnknownYear(t *testing.T) {
	require.Equal(t, "Unknown", SearchResult{MediaType: "movie"}.Year())
}
