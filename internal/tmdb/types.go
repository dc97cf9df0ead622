package tmdb

import (
	"strconv"
	"time"
)

// LibraryType selects the media family an endpoint works on.
type LibraryType string

// Supported library types.
const (
	Movie  LibraryType = "MOVIE"
	Show   LibraryType = "SHOW"
	Person LibraryType = "PERSON"
)

// searchPath maps a library type to the path segment used by search and
// trending. Anything else searches every family at once.
func (t LibraryType) searchPath() string {
	switch t {
	case Movie:
		return "movie"
	case Show:
		return "tv"
	case Person:
		return "person"
	default:
		return "multi"
	}
}

// listPath is searchPath for endpoints that have no mixed-family variant.
func (t LibraryType) listPath() string {
	if t == Show {
		return "tv"
	}
	return "movie"
}

// trendingPath is searchPath for the trending endpoint, which calls the
// mixed family "all".
func (t LibraryType) trendingPath() string {
	if p := t.searchPath(); p != "multi" {
		return p
	}
	return "all"
}

// SearchResult represents a single search result from TMDB.
type SearchResult struct {
	ID           int       `json:"id" yaml:"id"`
	MediaType    string    `json:"media_type" yaml:"media_type"`
	Title        string    `json:"title,omitempty" yaml:"title,omitempty"`
	Name         string    `json:"name,omitempty" yaml:"name,omitempty"`
	PosterPath   string    `json:"poster_path,omitempty" yaml:"poster_path,omitempty"`
	Overview     string    `json:"overview,omitempty" yaml:"overview,omitempty"`
	ReleaseDate  time.Time `json:"release_date,omitzero" yaml:"release_date,omitempty"`
	FirstAirDate time.Time `json:"first_air_date,omitzero" yaml:"first_air_date,omitempty"`
	VoteAverage  float64   `json:"vote_average" yaml:"vote_average"`
	VoteCount    int       `json:"vote_count" yaml:"vote_count"`
	Popularity   float64   `json:"popularity" yaml:"popularity"`
	OriginalLang string    `json:"original_language,omitempty" yaml:"original_language,omitempty"`
}

// DisplayTitle returns the appropriate title for the search result.
func (r SearchResult) DisplayTitle() string {
	if r.Title != "" {
		return r.Title
	}
	return r.Name
}

// YearInt returns the release year for movies or first air year for TV shows as int.
func (r SearchResult) YearInt() int {
	date := r.ReleaseDate
	if r.MediaType == "tv" {
		date = r.FirstAirDate
	}
	if date.IsZero() {
		return 0
	}
	return date.Year()
}

// Year extracts the year from the release or air date.
func (r SearchResult) Year() string {
	year := r.YearInt()
	if year == 0 {
		return "Unknown"
	}
	return strconv.Itoa(year)
}

// ResultsFromPayload turns a paged list payload into search results. Entries
// without a media_type inherit fallback.
func ResultsFromPayload(p Payload, fallback string) []SearchResult {
	raw, _ := p["results"].([]any)
	results := make([]SearchResult, 0, len(raw))
	for _, item := range raw {
		m, ok := item.(map[string]any)
		if !ok {
			continue
		}
		id, ok := getInt(m, "id")
		if !ok {
			continue
		}
		mediaType, _ := getString(m, "media_type")
		if mediaType == "" {
			mediaType = fallback
		}
		r := SearchResult{ID: id, MediaType: mediaType}
		r.Title, _ = getString(m, "title")
		r.Name, _ = getString(m, "name")
		r.PosterPath, _ = getString(m, "poster_path")
		r.Overview, _ = getString(m, "overview")
		r.OriginalLang, _ = getString(m, "original_language")
		r.ReleaseDate, _ = getTime(m, "release_date")
		r.FirstAirDate, _ = getTime(m, "first_air_date")
		r.VoteAverage, _ = getFloat(m, "vote_average")
		r.VoteCount, _ = getInt(m, "vote_count")
		r.Popularity, _ = getFloat(m, "popularity")
		results = append(results, r)
	}
	return results
}
