// Package artwork collects candidate posters, backdrops and logos for a
// movie or show from several image sources and scores them so a caller can
// rank them against each other.
package artwork

import (
	"strings"

	"github.com/lepinkainen/reelmeta/internal/tmdb"
)

// Source identifies where a candidate image came from.
type Source string

// Known image sources.
const (
	SourceTMDB   Source = "TmDB"
	SourceFanArt Source = "X-ART"
	SourceApple  Source = "APPLE"
)

// LibraryType is the media family being searched. Only movies and shows
// have artwork.
type LibraryType = tmdb.LibraryType

// Library types accepted by the fetchers.
const (
	Movie = tmdb.Movie
	Show  = tmdb.Show
)

// FrontImage is one scored candidate. Higher Likes rank first; Drift is the
// edit distance between the source's title and the searched name.
type FrontImage struct {
	URL      string  `json:"url" yaml:"url"`
	Source   Source  `json:"source" yaml:"source"`
	Language *string `json:"language" yaml:"language"`
	Year     int     `json:"year" yaml:"year"`
	Drift    int     `json:"drift" yaml:"drift"`
	Likes    float64 `json:"likes" yaml:"likes"`
}

// FrontImages groups candidates by the slot they can fill.
type FrontImages struct {
	Posters   []FrontImage `json:"posters" yaml:"posters"`
	Backdrops []FrontImage `json:"backdrops" yaml:"backdrops"`
	Logos     []FrontImage `json:"logos" yaml:"logos"`
}

// Options carries the caller's locale preference and the release year used
// as a matching hint.
type Options struct {
	LanguageCode string
	CountryCode  string
	Year         int

	// TMDBImageBaseURL prefixes TMDB file paths. Empty means the
	// original-size TMDB image CDN.
	TMDBImageBaseURL string
}

func (o Options) language() string {
	if o.LanguageCode == "" {
		return "en"
	}
	return o.LanguageCode
}

func (o Options) tmdbImageBase() string {
	if o.TMDBImageBaseURL == "" {
		return tmdbImageBaseURL
	}
	return strings.TrimSuffix(o.TMDBImageBaseURL, "/")
}

func emptyImages() FrontImages {
	return FrontImages{
		Posters:   []FrontImage{},
		Backdrops: []FrontImage{},
		Logos:     []FrontImage{},
	}
}
