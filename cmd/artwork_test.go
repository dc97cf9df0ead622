package cmd

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"strings"
	"testing"

	"github.com/alecthomas/assert/v2"
	"github.com/stretchr/testify/require"

	"github.com/lepinkainen/reelmeta/internal/artwork"
	"github.com/lepinkainen/reelmeta/internal/testutil"
	"github.com/lepinkainen/reelmeta/internal/tui"
)

func failingApple(mux *http.ServeMux) {
	mux.HandleFunc("/apple/url.php", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadGateway)
		_, _ = w.Write([]byte(`{"error":"upstream down"}`))
	})
}

func matrixMux(t *testing.T) *http.ServeMux {
	mux := http.NewServeMux()
	mux.HandleFunc("/tmdb/movie/603", func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "images,external_ids", r.URL.Query().Get("append_to_response"))
		testutil.ServeJSON(t, w, http.StatusOK, map[string]any{
			"id":           603,
			"title":        "The Matrix",
			"release_date": "1999-03-30",
			"external_ids": map[string]any{"imdb_id": "tt0133093"},
			"images": map[string]any{
				"backdrops": []any{map[string]any{"file_path": "/b.jpg", "aspect_ratio": 1.78, "iso_639_1": nil, "vote_count": 10, "vote_average": 5}},
				"posters":   []any{map[string]any{"file_path": "/p.jpg", "aspect_ratio": 0.667, "iso_639_1": "en", "vote_count": 2, "vote_average": 4}},
				"logos":     []any{},
			},
		})
	})
	mux.HandleFunc("/fanart/movies/603", func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "fan-key", r.URL.Query().Get("api_key"))
		testutil.ServeJSON(t, w, http.StatusOK, map[string]any{
			"name":        "The Matrix",
			"movieposter": []any{map[string]any{"id": "1", "url": "https://fanart.test/p.jpg", "lang": "en", "likes": "3"}},
			"hdmovielogo": []any{map[string]any{"id": "2", "url": "https://fanart.test/l.png", "lang": "en", "likes": "8"}},
		})
	})
	failingApple(mux)
	return mux
}

func urls(images []artwork.FrontImage) []string {
	out := make([]string, len(images))
	for i, img := range images {
		out[i] = img.URL
	}
	return out
}

func TestArtworkCommandMergesSources(t *testing.T) {
	app, out, _ := testApp(t, matrixMux(t), formatJSON)
	app.FanartKey = "fan-key"

	cmd := &ArtworkCmd{Type: "movie", ID: 603, Sources: defaultSources()}
	require.NoError(t, cmd.Run(app))

	var got artwork.FrontImages
	require.NoError(t, json.Unmarshal(out.Bytes(), &got))

	assert.Equal(t, []string{
		"https://image.tmdb.org/t/p/original/p.jpg",
		"https://image.tmdb.org/t/p/original/b.jpg",
		"https://fanart.test/p.jpg",
	}, urls(got.Posters))
	assert.Equal(t, []float64{208, 50, -1997}, []float64{got.Posters[0].Likes, got.Posters[1].Likes, got.Posters[2].Likes})
	assert.Equal(t, []string{
		"https://image.tmdb.org/t/p/original/b.jpg",
		"https://image.tmdb.org/t/p/original/p.jpg",
	}, urls(got.Backdrops))
	assert.Equal(t, []string{"https://fanart.test/l.png"}, urls(got.Logos))

	for _, img := range got.Posters {
		assert.Equal(t, 1999, img.Year)
	}
	assert.Equal(t, artwork.SourceFanArt, got.Logos[0].Source)
}

func TestArtworkCommandLimitAndBest(t *testing.T) {
	app, out, _ := testApp(t, matrixMux(t), formatTable)
	app.FanartKey = "fan-key"

	cmd := &ArtworkCmd{Type: "movie", ID: 603, Sources: defaultSources(), Limit: 1, Best: true}
	require.NoError(t, cmd.Run(app))

	lines := strings.Split(strings.TrimSpace(out.String()), "\n")
	assert.Equal(t, 4, len(lines))
	assert.Contains(t, lines[0], "SLOT")
	assert.Contains(t, lines[1], "poster")
	assert.Contains(t, lines[1], "/p.jpg")
	assert.Contains(t, lines[2], "backdrop")
	assert.Contains(t, lines[3], "X-ART")
}

func TestArtworkCommandSkipsFanArtWithoutKey(t *testing.T) {
	app, out, _ := testApp(t, matrixMux(t), formatJSON)

	cmd := &ArtworkCmd{Type: "movie", ID: 603, Sources: []string{"tmdb", "fanart"}}
	require.NoError(t, cmd.Run(app))

	var got artwork.FrontImages
	require.NoError(t, json.Unmarshal(out.Bytes(), &got))
	assert.Equal(t, 2, len(got.Posters))
	assert.Equal(t, 0, len(got.Logos))
}

func TestArtworkCommandShowUsesTVDBID(t *testing.T) {
	mux := http.NewServeMux()
	mux.HandleFunc("/tmdb/tv/1399", func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "external_ids", r.URL.Query().Get("append_to_response"))
		testutil.ServeJSON(t, w, http.StatusOK, map[string]any{
			"id":             1399,
			"name":           "Game of Thrones",
			"first_air_date": "2011-04-17",
			"external_ids":   map[string]any{"tvdb_id": 121361},
		})
	})
	mux.HandleFunc("/fanart/tv/121361", func(w http.ResponseWriter, r *http.Request) {
		testutil.ServeJSON(t, w, http.StatusOK, map[string]any{
			"tvposter": []any{map[string]any{"id": "9", "url": "https://fanart.test/got.jpg", "lang": "en", "likes": "5"}},
		})
	})

	app, out, _ := testApp(t, mux, formatYAML)
	app.FanartKey = "fan-key"

	cmd := &ArtworkCmd{Type: "show", ID: 1399, Sources: []string{"fanart"}}
	require.NoError(t, cmd.Run(app))

	text := out.String()
	assert.Contains(t, text, "url: https://fanart.test/got.jpg")
	assert.Contains(t, text, "year: 2011")
	assert.Contains(t, text, "likes: -1995")
}

func TestArtworkCommandShowWithoutTVDBID(t *testing.T) {
	mux := http.NewServeMux()
	mux.HandleFunc("/tmdb/tv/5", func(w http.ResponseWriter, r *http.Request) {
		testutil.ServeJSON(t, w, http.StatusOK, map[string]any{"id": 5, "name": "Obscure", "external_ids": map[string]any{"tvdb_id": nil}})
	})

	app, _, _ := testApp(t, mux, formatTable)
	app.FanartKey = "fan-key"

	err := (&ArtworkCmd{Type: "show", ID: 5, Sources: []string{"fanart"}}).Run(app)
	assert.Error(t, err)
	assert.Contains(t, err.Error(), "No TVDB id")
}

func TestArtworkCommandSkipsLookupWithTitleAndYear(t *testing.T) {
	mux := http.NewServeMux()
	failingApple(mux)

	app, _, _ := testApp(t, mux, formatTable)
	app.TMDBKey = ""

	cmd := &ArtworkCmd{Type: "movie", ID: 603, Title: "The Matrix", Year: 1999, Sources: []string{"apple"}}
	err := cmd.Run(app)
	assert.Error(t, err)
	assert.Contains(t, err.Error(), "no artwork for movie 603")
	assert.Contains(t, err.Error(), "apple")
	assert.NotContains(t, err.Error(), "TMDB API key")
}

func TestArtworkCommandInteractive(t *testing.T) {
	app, out, _ := testApp(t, matrixMux(t), formatJSON)
	app.FanartKey = "fan-key"

	orig := selectArtwork
	t.Cleanup(func() { selectArtwork = orig })

	var slots []string
	selectArtwork = func(title, slot string, candidates []artwork.FrontImage) (tui.ArtworkSelection, error) {
		assert.Equal(t, "The Matrix", title)
		slots = append(slots, slot)
		if slot == "poster" {
			// Take the lowest ranked candidate to prove the choice is honored.
			choice := candidates[len(candidates)-1]
			return tui.ArtworkSelection{Action: tui.ActionSelected, Image: &choice}, nil
		}
		return tui.ArtworkSelection{Action: tui.ActionStopped}, nil
	}

	cmd := &ArtworkCmd{Type: "movie", ID: 603, Sources: defaultSources(), Interactive: true}
	require.NoError(t, cmd.Run(app))

	assert.Equal(t, []string{"poster", "backdrop"}, slots)

	var picks artwork.Picks
	require.NoError(t, json.Unmarshal(out.Bytes(), &picks))
	require.NotNil(t, picks.Poster)
	assert.Equal(t, "https://fanart.test/p.jpg", picks.Poster.URL)
	assert.Zero(t, picks.Backdrop)
	assert.Zero(t, picks.Logo)
}

func TestArtworkCommandIgnoresRepeatedSources(t *testing.T) {
	app, out, _ := testApp(t, matrixMux(t), formatJSON)
	app.FanartKey = "fan-key"

	cmd := &ArtworkCmd{Type: "movie", ID: 603, Sources: []string{"tmdb", "fanart", "tmdb"}}
	require.NoError(t, cmd.Run(app))

	var got artwork.FrontImages
	require.NoError(t, json.Unmarshal(out.Bytes(), &got))
	assert.Equal(t, 3, len(got.Posters))
	assert.Equal(t, 2, len(got.Backdrops))
}

func TestArtworkCommandStopsWhenCanceled(t *testing.T) {
	mux := http.NewServeMux()
	failingApple(mux)

	app, _, _ := testApp(t, mux, formatTable)
	ctx, cancel := context.WithCancel(t.Context())
	cancel()
	app.Ctx = ctx

	cmd := &ArtworkCmd{Type: "movie", ID: 603, Title: "The Matrix", Year: 1999, Sources: []string{"apple"}}
	err := cmd.Run(app)
	assert.Error(t, err)
	assert.True(t, errors.Is(err, context.Canceled))
	assert.NotContains(t, err.Error(), "no artwork for")
}

func TestUniqueSources(t *testing.T) {
	assert.Equal(t, []string{"tmdb", "apple", "fanart"}, uniqueSources([]string{"tmdb", "apple", "tmdb", "fanart", "apple"}))
	assert.Equal(t, []string{}, uniqueSources(nil))
}

func TestLimitImages(t *testing.T) {
	images := artwork.FrontImages{
		Posters: []artwork.FrontImage{{URL: "a"}, {URL: "b"}, {URL: "c"}},
		Logos:   []artwork.FrontImage{{URL: "d"}},
	}

	limited := limitImages(images, 2)
	assert.Equal(t, []string{"a", "b"}, urls(limited.Posters))
	assert.Equal(t, []string{"d"}, urls(limited.Logos))
	assert.Equal(t, 0, len(limited.Backdrops))

	assert.Equal(t, images, limitImages(images, 0))
}
