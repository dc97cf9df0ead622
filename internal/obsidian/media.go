package obsidian

import (
	"math"
	"regexp"
	"slices"
	"strings"
	"time"

	"github.com/spf13/cast"
)

var (
	whitespace = regexp.MustCompile(`\s+`)
	hyphens    = regexp.MustCompile(`-+`)
)

// NormalizeTag normalizes a tag according to Obsidian conventions: no
// leading #, whitespace becomes a single hyphen and & becomes "and". Case
// and / hierarchy separators are preserved.
func NormalizeTag(tag string) string {
	tag = strings.TrimSpace(strings.TrimPrefix(strings.TrimSpace(tag), "#"))
	if tag == "" {
		return ""
	}

	tag = strings.ReplaceAll(tag, "&", "and")
	tag = strings.ReplaceAll(tag, "#", "")
	tag = whitespace.ReplaceAllString(tag, "-")
	tag = hyphens.ReplaceAllString(tag, "-")
	return strings.Trim(tag, "-")
}

// TagSet provides tag collection with automatic normalization and deduplication.
type TagSet struct {
	tags map[string]struct{}
}

// NewTagSet creates a new TagSet for collecting tags.
func NewTagSet() *TagSet {
	return &TagSet{tags: make(map[string]struct{})}
}

// Add adds a tag to the set after normalization. Empty tags are dropped.
func (ts *TagSet) Add(tag string) {
	if normalized := NormalizeTag(tag); normalized != "" {
		ts.tags[normalized] = struct{}{}
	}
}

// Sorted returns all tags as a sorted slice.
func (ts *TagSet) Sorted() []string {
	result := make([]string, 0, len(ts.tags))
	for tag := range ts.tags {
		result = append(result, tag)
	}
	slices.Sort(result)
	return result
}

// FromMedia builds a note for a TMDB movie or show detail payload. kind is
// "movie" or "tv" and ends up in both tmdb_type and the tags.
func FromMedia(p map[string]any, kind string) *Note {
	fm := NewFrontmatter()
	tags := NewTagSet()
	tags.Add(kind)

	title := firstString(p, "title", "name")
	fm.Set("title", title)
	fm.Set("tmdb_type", kind)
	fm.SetIf(p["id"] != nil, "tmdb_id", cast.ToInt(p["id"]))

	if original := firstString(p, "original_title", "original_name"); original != "" && original != title {
		fm.Set("original_title", original)
	}

	if released, ok := firstTime(p, "release_date", "first_air_date"); ok {
		fm.Set("year", released.Year())
		fm.Set("released", released.Format(time.DateOnly))
	}

	imdbID := cast.ToString(p["imdb_id"])
	if ids, ok := p["external_ids"].(map[string]any); ok && imdbID == "" {
		imdbID = cast.ToString(ids["imdb_id"])
	}
	fm.SetIf(imdbID != "", "imdb_id", imdbID)

	if votes := cast.ToInt(p["vote_count"]); votes > 0 {
		fm.Set("tmdb_rating", math.Round(cast.ToFloat64(p["vote_average"])*10)/10)
		fm.Set("tmdb_votes", votes)
	}

	runtime := cast.ToInt(p["runtime"])
	fm.SetIf(runtime > 0, "runtime_mins", runtime)
	seasons := cast.ToInt(p["number_of_seasons"])
	fm.SetIf(seasons > 0, "seasons", seasons)
	episodes := cast.ToInt(p["number_of_episodes"])
	fm.SetIf(episodes > 0, "episodes", episodes)
	status := cast.ToString(p["status"])
	fm.SetIf(status != "", "status", status)

	var genres []string
	for _, g := range cast.ToSlice(p["genres"]) {
		if name := cast.ToString(cast.ToStringMap(g)["name"]); name != "" {
			genres = append(genres, name)
			tags.Add("genre/" + name)
		}
	}
	fm.SetIf(len(genres) > 0, "genres", genres)
	fm.Set("tags", tags.Sorted())

	return &Note{Frontmatter: fm, Body: mediaBody(p, title)}
}

func mediaBody(p map[string]any, title string) string {
	var b strings.Builder
	b.WriteString("# " + title + "\n")
	if tagline := strings.TrimSpace(cast.ToString(p["tagline"])); tagline != "" {
		b.WriteString("\n> " + tagline + "\n")
	}
	if overview := strings.TrimSpace(cast.ToString(p["overview"])); overview != "" {
		b.WriteString("\n" + overview + "\n")
	}
	return b.String()
}

func firstString(p map[string]any, keys ...string) string {
	for _, key := range keys {
		if s := cast.ToString(p[key]); s != "" {
			return s
		}
	}
	return ""
}

func firstTime(p map[string]any, keys ...string) (time.Time, bool) {
	for _, key := range keys {
		if t, err := cast.ToTimeE(p[key]); err == nil && !t.IsZero() {
			return t, true
		}
	}
	return time.Time{}, false
}
