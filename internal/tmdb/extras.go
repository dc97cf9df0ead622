package tmdb

import "strconv"

// Extras are sub-resources bundled into a detail response through the
// append_to_response parameter. Each flag maps to exactly one token and
// tokens are always emitted in the same order.

const watchProvidersToken = "watch/providers"

// SeasonSelection picks the seasons attached to a show under appendSeasons.
type SeasonSelection struct {
	// All fetches every season the show lists, in batches.
	All     bool
	Numbers []int
}

// AllSeasons selects every season of a show.
func AllSeasons() SeasonSelection { return SeasonSelection{All: true} }

// Seasons selects the given season numbers.
func Seasons(numbers ...int) SeasonSelection { return SeasonSelection{Numbers: numbers} }

func (s SeasonSelection) requested() bool {
	return s.All || len(s.Numbers) > 0
}

// MovieExtras are the sub-resources available on a movie.
type MovieExtras struct {
	Changes           bool
	Images            bool
	ReleaseDates      bool
	Keywords          bool
	Videos            bool
	Credits           bool
	Recommendations   bool
	Similar           bool
	ExternalIDs       bool
	Reviews           bool
	Translations      bool
	Lists             bool
	AlternativeTitles bool
	WatchProviders    bool
	// Collection attaches the full collection the movie belongs to. It is
	// resolved with a second request, not through append_to_response.
	Collection bool
}

func (e MovieExtras) tokens() []string {
	var t tokenList
	t.add(e.Changes, "changes")
	t.add(e.Images, "images")
	t.add(e.ReleaseDates, "release_dates")
	t.add(e.Keywords, "keywords")
	t.add(e.Videos, "videos")
	t.add(e.Credits, "credits")
	t.add(e.Recommendations, "recommendations")
	t.add(e.Similar, "similar")
	t.add(e.ExternalIDs, "external_ids")
	t.add(e.Reviews, "reviews")
	t.add(e.Translations, "translations")
	t.add(e.Lists, "lists")
	t.add(e.AlternativeTitles, "alternative_titles")
	t.add(e.WatchProviders, watchProvidersToken)
	return t
}

// ShowExtras are the sub-resources available on a TV show.
type ShowExtras struct {
	Changes         bool
	Images          bool
	Keywords        bool
	Videos          bool
	Credits         bool
	Recommendations bool
	Similar         bool
	ExternalIDs     bool
	Translations    bool
	ContentRatings  bool
	WatchProviders  bool
	Seasons         SeasonSelection
}

func (e ShowExtras) tokens() []string {
	var t tokenList
	t.add(e.Changes, "changes")
	t.add(e.Images, "images")
	t.add(e.Keywords, "keywords")
	t.add(e.Videos, "videos")
	t.add(e.Credits, "credits")
	t.add(e.Recommendations, "recommendations")
	t.add(e.Similar, "similar")
	t.add(e.ExternalIDs, "external_ids")
	t.add(e.Translations, "translations")
	t.add(e.ContentRatings, "content_ratings")
	if !e.Seasons.All {
		for _, n := range e.Seasons.Numbers {
			t.add(true, seasonKey(n))
		}
	}
	t.add(e.WatchProviders, watchProvidersToken)
	return t
}

// SeasonExtras are the sub-resources available on a season.
type SeasonExtras struct {
	Images         bool
	Videos         bool
	Credits        bool
	ExternalIDs    bool
	Translations   bool
	WatchProviders bool
}

func (e SeasonExtras) tokens() []string {
	var t tokenList
	t.add(e.Images, "images")
	t.add(e.Videos, "videos")
	t.add(e.Credits, "credits")
	t.add(e.ExternalIDs, "external_ids")
	t.add(e.Translations, "translations")
	t.add(e.WatchProviders, watchProvidersToken)
	return t
}

// EpisodeExtras are the sub-resources available on an episode.
type EpisodeExtras struct {
	Images       bool
	Videos       bool
	Credits      bool
	ExternalIDs  bool
	Translations bool
}

func (e EpisodeExtras) tokens() []string {
	var t tokenList
	t.add(e.Images, "images")
	t.add(e.Videos, "videos")
	t.add(e.Credits, "credits")
	t.add(e.ExternalIDs, "external_ids")
	t.add(e.Translations, "translations")
	return t
}

// PersonExtras are the sub-resources available on a person.
type PersonExtras struct {
	Changes         bool
	Images          bool
	ExternalIDs     bool
	Translations    bool
	MovieCredits    bool
	TVCredits       bool
	CombinedCredits bool
	TaggedImages    bool
}

func (e PersonExtras) tokens() []string {
	var t tokenList
	t.add(e.Changes, "changes")
	t.add(e.Images, "images")
	t.add(e.ExternalIDs, "external_ids")
	t.add(e.Translations, "translations")
	t.add(e.MovieCredits, "movie_credits")
	t.add(e.TVCredits, "tv_credits")
	t.add(e.CombinedCredits, "combined_credits")
	t.add(e.TaggedImages, "tagged_images")
	return t
}

type tokenList []string

func (t *tokenList) add(on bool, token string) {
	if on {
		*t = append(*t, token)
	}
}

func seasonKey(n int) string {
	return "season/" + strconv.Itoa(n)
}
