package artwork

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestConvertFanArtMovie(t *testing.T) {
	images := BulkImages{
		Name:            "Alien",
		HDMovieLogo:     []FanArtImage{{URL: "https://fanart.test/logo.png", Lang: "en", Likes: "7"}},
		MovieBackground: []FanArtImage{{URL: "https://fanart.test/bg.jpg", Lang: "", Likes: "4"}},
		MoviePoster:     []FanArtImage{{URL: "https://fanart.test/poster.jpg", Lang: "en", Likes: "12"}},
		MovieThumb:      []FanArtImage{{URL: "https://fanart.test/thumb.jpg", Lang: "de", Likes: "3"}},
		HDMovieClearArt: []FanArtImage{{URL: "https://fanart.test/clear.png", Lang: "en", Likes: "5"}},
		// Show fields are ignored when the movie field is present.
		HDTVLogo: []FanArtImage{{URL: "https://fanart.test/tv-logo.png", Likes: "100"}},
	}

	got := ConvertFanArt(images, 1979)

	assert.Equal(t, []float64{7}, likesOf(got.Logos))
	assert.Equal(t, []float64{4}, likesOf(got.Backdrops))
	assert.Equal(t, []float64{-1988, 3, -995}, likesOf(got.Posters))

	assert.Equal(t, "https://fanart.test/poster.jpg", got.Posters[0].URL)
	assert.Equal(t, "https://fanart.test/thumb.jpg", got.Posters[1].URL)
	assert.Equal(t, "https://fanart.test/clear.png", got.Posters[2].URL)

	for _, img := range append(append(got.Posters, got.Logos...), got.Backdrops...) {
		assert.Equal(t, SourceFanArt, img.Source)
		assert.Equal(t, 1979, img.Year)
		assert.Equal(t, 0, img.Drift)
	}
	assert.Nil(t, got.Backdrops[0].Language)
	assert.Equal(t, "de", *got.Posters[1].Language)
}

func TestConvertFanArtShowFallback(t *testing.T) {
	images := BulkImages{
		HDTVLogo:       []FanArtImage{{URL: "logo", Likes: "2"}},
		ShowBackground: []FanArtImage{{URL: "bg", Likes: "not a number"}},
		TVPoster:       []FanArtImage{{URL: "poster", Likes: "1"}},
		HDClearArt:     []FanArtImage{{URL: "clear", Likes: "0"}},
		// An empty movie field still wins over the show field.
		MovieThumb: []FanArtImage{},
		TVThumb:    []FanArtImage{{URL: "thumb", Likes: "9"}},
	}

	got := ConvertFanArt(images, 0)

	assert.Equal(t, []float64{2}, likesOf(got.Logos))
	assert.Equal(t, []float64{0}, likesOf(got.Backdrops))
	assert.Equal(t, []float64{-1999, -1000}, likesOf(got.Posters))
}

func TestConvertFanArtLooseLikes(t *testing.T) {
	images := BulkImages{
		HDMovieLogo: []FanArtImage{{URL: "a", Likes: "12.5"}, {URL: "b", Likes: " 7"}, {URL: "c", Likes: ""}},
	}

	got := ConvertFanArt(images, 2000)
	assert.Equal(t, []float64{12.5, 7, 0}, likesOf(got.Logos))
}

func TestConvertFanArtEmpty(t *testing.T) {
	got := ConvertFanArt(BulkImages{}, 2000)
	assert.Equal(t, emptyImages(), got)
}

func TestFanArtFetch(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, "/tv/81189", r.URL.Path)
		require.Equal(t, "fanart-key", r.URL.Query().Get("api_key"))
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"name":"Breaking Bad","hdtvlogo":[{"id":"1","url":"https://fanart.test/l.png","lang":"en","likes":"11"}]}`))
	}))
	defer server.Close()

	client := NewClient(WithFanArtBaseURL(server.URL+"/"), WithHTTPClient(server.Client()))

	resp := client.FanArt(t.Context(), Show, 81189, 2008, "fanart-key")
	require.True(t, resp.HasData())
	require.Len(t, resp.Data().Logos, 1)
	assert.Equal(t, float64(11), resp.Data().Logos[0].Likes)
	assert.Equal(t, 2008, resp.Data().Logos[0].Year)
}

func TestFanArtNotFound(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, "/movies/1", r.URL.Path)
		w.WriteHeader(http.StatusNotFound)
		_, _ = w.Write([]byte(`{"status":"error","error message":"Not found"}`))
	}))
	defer server.Close()

	client := NewClient(WithFanArtBaseURL(server.URL), WithHTTPClient(server.Client()))

	resp := client.FanArt(t.Context(), Movie, 1, 0, "key")
	require.True(t, resp.HasError())
	assert.Equal(t, http.StatusNotFound, resp.Code())
}

func TestFanArtRejectsPeople(t *testing.T) {
	resp := NewClient().FanArt(t.Context(), "PERSON", 1, 0, "key")
	require.True(t, resp.HasError())
	assert.Equal(t, http.StatusBadRequest, resp.Code())
}
