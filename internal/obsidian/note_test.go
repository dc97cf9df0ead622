package obsidian

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNormalizeTag(t *testing.T) {
	tests := []struct {
		input string
		want  string
	}{
		{"movie", "movie"},
		{"#Sci Fi", "Sci-Fi"},
		{"Action & Adventure", "Action-and-Adventure"},
		{"genre/War & Politics", "genre/War-and-Politics"},
		{"a -- b", "a-b"},
		{"  ", ""},
		{"#", ""},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			assert.Equal(t, tt.want, NormalizeTag(tt.input))
		})
	}
}

func TestTagSet(t *testing.T) {
	ts := NewTagSet()
	ts.Add("tv")
	ts.Add("#tv")
	ts.Add("genre/Drama")
	ts.Add("")

	assert.Equal(t, []string{"genre/Drama", "tv"}, ts.Sorted())
}

func TestFrontmatterKeysSorted(t *testing.T) {
	fm := NewFrontmatter()
	fm.Set("year", 1999)
	fm.Set("title", "The Matrix")
	fm.Set("genres", []string{"Action"})
	fm.Set("title", "Matrix")
	fm.SetIf(false, "skipped", true)

	assert.Equal(t, []string{"genres", "title", "year"}, fm.Keys())

	title, ok := fm.Get("title")
	require.True(t, ok)
	assert.Equal(t, "Matrix", title)

	_, ok = fm.Get("skipped")
	assert.False(t, ok)
}

func TestBuildWithoutFrontmatter(t *testing.T) {
	note := &Note{Frontmatter: NewFrontmatter(), Body: "# Just a body\n"}

	out, err := note.Build()
	require.NoError(t, err)
	assert.Equal(t, "# Just a body\n", string(out))
}

func TestFromMediaMovie(t *testing.T) {
	payload := map[string]any{
		"id":             float64(603),
		"title":          "The Matrix",
		"original_title": "The Matrix",
		"release_date":   "1999-03-30",
		"imdb_id":        "tt0133093",
		"vote_average":   8.214,
		"vote_count":     float64(25000),
		"runtime":        float64(136),
		"status":         "Released",
		"tagline":        "Welcome to the Real World.",
		"overview":       "A hacker learns the truth about reality.",
		"genres": []any{
			map[string]any{"id": float64(28), "name": "Action"},
			map[string]any{"id": float64(878), "name": "Science Fiction"},
		},
	}

	note := FromMedia(payload, "movie")
	assert.Equal(t, []string{
		"genres", "imdb_id", "released", "runtime_mins", "status", "tags",
		"title", "tmdb_id", "tmdb_rating", "tmdb_type", "tmdb_votes", "year",
	}, note.Frontmatter.Keys())

	out, err := note.Build()
	require.NoError(t, err)
	text := string(out)

	assert.True(t, strings.HasPrefix(text, "---\n"))
	assert.Contains(t, text, "tags: [genre/Action, genre/Science-Fiction, movie]\n")
	assert.Contains(t, text, "title: The Matrix\n")
	assert.Contains(t, text, "tmdb_id: 603\n")
	assert.Contains(t, text, "tmdb_rating: 8.2\n")
	assert.Contains(t, text, "year: 1999\n")
	assert.Contains(t, text, "1999-03-30")
	assert.NotContains(t, text, "original_title")
	assert.True(t, strings.HasSuffix(text, "---\n# The Matrix\n\n> Welcome to the Real World.\n\nA hacker learns the truth about reality.\n"))
}

func TestFromMediaShow(t *testing.T) {
	payload := map[string]any{
		"id":                 float64(1399),
		"name":               "Game of Thrones",
		"original_name":      "GoT",
		"first_air_date":     "2011-04-17",
		"number_of_seasons":  float64(8),
		"number_of_episodes": float64(73),
		"vote_count":         float64(0),
		"external_ids":       map[string]any{"imdb_id": "tt0944947"},
		"genres":             []any{map[string]any{"name": "Sci-Fi & Fantasy"}},
	}

	note := FromMedia(payload, "tv")
	fm := note.Frontmatter

	get := func(key string) any {
		v, _ := fm.Get(key)
		return v
	}

	assert.Equal(t, "Game of Thrones", get("title"))
	assert.Equal(t, "GoT", get("original_title"))
	assert.Equal(t, "tt0944947", get("imdb_id"))
	assert.Equal(t, 2011, get("year"))
	assert.Equal(t, 8, get("seasons"))
	assert.Equal(t, 73, get("episodes"))
	assert.Equal(t, []string{"genre/Sci-Fi-and-Fantasy", "tv"}, get("tags"))

	_, ok := fm.Get("tmdb_rating")
	assert.False(t, ok, "no votes means no rating")
	_, ok = fm.Get("runtime_mins")
	assert.False(t, ok)

	assert.Equal(t, "# Game of Thrones\n", note.Body)
}
