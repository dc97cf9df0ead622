package tmdb

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestGetInt(t *testing.T) {
	tests := []struct {
		name   string
		input  map[string]any
		key    string
		want   int
		wantOK bool
	}{
		{
			name:   "float64",
			input:  map[string]any{"season_number": float64(3)},
			key:    "season_number",
			want:   3,
			wantOK: true,
		},
		{
			name:   "int",
			input:  map[string]any{"season_number": 4},
			key:    "season_number",
			want:   4,
			wantOK: true,
		},
		{
			name:   "json number",
			input:  map[string]any{"id": json.Number("88")},
			key:    "id",
			want:   88,
			wantOK: true,
		},
		{
			name:   "invalid type",
			input:  map[string]any{"id": "88"},
			key:    "id",
			wantOK: false,
		},
		{
			name:   "missing key",
			input:  map[string]any{},
			key:    "id",
			wantOK: false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := getInt(tt.input, tt.key)
			assert.Equal(t, tt.wantOK, ok)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestGetTime(t *testing.T) {
	want := time.Date(2011, 4, 17, 0, 0, 0, 0, time.UTC)

	got, ok := getTime(map[string]any{"d": want}, "d")
	assert.True(t, ok)
	assert.Equal(t, want, got)

	got, ok = getTime(map[string]any{"d": "2011-04-17"}, "d")
	assert.True(t, ok)
	assert.True(t, want.Equal(got))

	_, ok = getTime(map[string]any{"d": ""}, "d")
	assert.False(t, ok)
}

func TestGroupByLength(t *testing.T) {
	assert.Nil(t, groupByLength([]int{}, 20))
	assert.Equal(t, [][]int{{1, 2}, {3, 4}, {5}}, groupByLength([]int{1, 2, 3, 4, 5}, 2))
	assert.Equal(t, [][]int{{1, 2}}, groupByLength([]int{1, 2}, 2))
}

func TestSeasonNumbers(t *testing.T) {
	show := Payload{"seasons": []any{
		map[string]any{"season_number": float64(0)},
		map[string]any{"name": "broken"},
		map[string]any{"season_number": float64(1)},
	}}
	assert.Equal(t, []int{0, 1}, seasonNumbers(show))
	assert.Equal(t, []int{}, seasonNumbers(Payload{}))
}

func TestExtrasTokenOrder(t *testing.T) {
	movie := MovieExtras{WatchProviders: true, AlternativeTitles: true, Changes: true, Reviews: true, Collection: true}
	assert.Equal(t, []string{"changes", "reviews", "alternative_titles", "watch/providers"}, movie.tokens())

	show := ShowExtras{WatchProviders: true, ContentRatings: true, Seasons: Seasons(3, 1)}
	assert.Equal(t, []string{"content_ratings", "season/3", "season/1", "watch/providers"}, show.tokens())

	all := ShowExtras{Images: true, Seasons: AllSeasons()}
	assert.Equal(t, []string{"images"}, all.tokens())

	assert.Empty(t, PersonExtras{}.tokens())
}
