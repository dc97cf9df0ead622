package cmd

import (
	"fmt"
	"log/slog"
	"strconv"
	"strings"

	"github.com/lepinkainen/reelmeta/internal/tmdb"
	"github.com/lepinkainen/reelmeta/internal/tui"
)

// MovieCmd represents the movie details command
type MovieCmd struct {
	ID         int      `arg:"" help:"TMDB movie id"`
	Extras     []string `short:"e" sep:"," help:"Sub-resources to append (credits, images, videos, keywords, ...)"`
	Collection bool     `help:"Attach the collection the movie belongs to"`
}

// ShowCmd represents the show details command
type ShowCmd struct {
	ID      int      `arg:"" help:"TMDB show id"`
	Extras  []string `short:"e" sep:"," help:"Sub-resources to append (credits, images, content_ratings, ...)"`
	Seasons string   `short:"s" help:"Seasons to attach: all, or a comma separated list such as 1,2"`
}

// SearchCmd represents the search command
type SearchCmd struct {
	Query    string `arg:"" help:"Title or name to search for"`
	Type     string `short:"t" help:"Kind of result to search for" enum:"movie,tv,person,multi" default:"multi"`
	Year     int    `short:"y" help:"Restrict results to a release or first air year"`
	Page     int    `help:"Result page" default:"1"`
	Pick     bool   `help:"Pick a result interactively and continue into its artwork"`
	MinVotes int    `help:"Hide results with fewer votes in the picker" default:"0"`
}

var searchLibraries = map[string]tmdb.LibraryType{
	"movie":  tmdb.Movie,
	"tv":     tmdb.Show,
	"person": tmdb.Person,
	"multi":  "",
}

// selectResult is swapped out in tests to avoid starting a terminal UI.
var selectResult = tui.Select

func (m *MovieCmd) Run(app *App) error {
	if err := app.requireTMDBKey(); err != nil {
		return err
	}

	extras, err := movieExtras(m.Extras)
	if err != nil {
		return err
	}
	extras.Collection = m.Collection

	slog.Debug("Fetching movie", "id", m.ID, "extras", m.Extras)
	resp := app.TMDB.Movie(app.Ctx, m.ID, tmdb.MovieOptions{Language: app.Language, Extras: extras})
	if resp.HasError() {
		return fmt.Errorf("fetch movie %d: %w", m.ID, resp.Err())
	}
	return app.renderMedia(resp.Data(), "movie")
}

func (s *ShowCmd) Run(app *App) error {
	if err := app.requireTMDBKey(); err != nil {
		return err
	}

	extras, err := showExtras(s.Extras)
	if err != nil {
		return err
	}
	if extras.Seasons, err = parseSeasons(s.Seasons); err != nil {
		return err
	}

	slog.Debug("Fetching show", "id", s.ID, "extras", s.Extras, "seasons", s.Seasons)
	resp := app.TMDB.Show(app.Ctx, s.ID, tmdb.ShowOptions{Language: app.Language, Extras: extras})
	if resp.HasError() {
		return fmt.Errorf("fetch show %d: %w", s.ID, resp.Err())
	}
	return app.renderMedia(resp.Data(), "tv")
}

func (s *SearchCmd) Run(app *App) error {
	if err := app.requireTMDBKey(); err != nil {
		return err
	}

	library := searchLibraries[s.Type]
	opts := tmdb.SearchOptions{Library: library, Language: app.Language, Page: s.Page}
	switch library {
	case tmdb.Movie:
		opts.PrimaryReleaseYear = s.Year
	case tmdb.Show:
		opts.FirstAirDateYear = s.Year
	default:
		opts.Year = s.Year
	}

	resp := app.TMDB.Search(app.Ctx, s.Query, opts)
	if resp.HasError() {
		return fmt.Errorf("search %q: %w", s.Query, resp.Err())
	}
	results := tmdb.ResultsFromPayload(resp.Data(), s.Type)

	if !s.Pick {
		return app.render(results, resultsTable(results))
	}

	selection, err := selectResult(s.Query, results, tui.SelectOptions{MinVotes: s.MinVotes})
	if err != nil {
		return fmt.Errorf("pick result: %w", err)
	}
	if selection.Action != tui.ActionSelected || selection.Selection == nil {
		slog.Info("No result picked", "action", selection.Action)
		return nil
	}

	picked := selection.Selection
	kind := "movie"
	switch picked.MediaType {
	case "movie":
	case "tv":
		kind = "show"
	default:
		return fmt.Errorf("%q has no artwork (media type %s)", picked.DisplayTitle(), picked.MediaType)
	}

	artworkCmd := ArtworkCmd{
		Type:    kind,
		ID:      picked.ID,
		Title:   picked.DisplayTitle(),
		Year:    picked.YearInt(),
		Sources: defaultSources(),
		Limit:   defaultArtworkLimit,
	}
	return artworkCmd.Run(app)
}

func movieExtras(names []string) (tmdb.MovieExtras, error) {
	var e tmdb.MovieExtras
	fields := map[string]*bool{
		"changes":            &e.Changes,
		"images":             &e.Images,
		"release_dates":      &e.ReleaseDates,
		"keywords":           &e.Keywords,
		"videos":             &e.Videos,
		"credits":            &e.Credits,
		"recommendations":    &e.Recommendations,
		"similar":            &e.Similar,
		"external_ids":       &e.ExternalIDs,
		"reviews":            &e.Reviews,
		"translations":       &e.Translations,
		"lists":              &e.Lists,
		"alternative_titles": &e.AlternativeTitles,
		"watch_providers":    &e.WatchProviders,
		"collection":         &e.Collection,
	}
	return e, setExtras(fields, names)
}

func showExtras(names []string) (tmdb.ShowExtras, error) {
	var e tmdb.ShowExtras
	fields := map[string]*bool{
		"changes":         &e.Changes,
		"images":          &e.Images,
		"keywords":        &e.Keywords,
		"videos":          &e.Videos,
		"credits":         &e.Credits,
		"recommendations": &e.Recommendations,
		"similar":         &e.Similar,
		"external_ids":    &e.ExternalIDs,
		"translations":    &e.Translations,
		"content_ratings": &e.ContentRatings,
		"watch_providers": &e.WatchProviders,
	}
	return e, setExtras(fields, names)
}

func setExtras(fields map[string]*bool, names []string) error {
	for _, name := range names {
		key := strings.ReplaceAll(strings.ToLower(strings.TrimSpace(name)), "-", "_")
		if key == "" {
			continue
		}
		field, ok := fields[key]
		if !ok {
			return fmt.Errorf("unknown extra %q", name)
		}
		*field = true
	}
	return nil
}

func parseSeasons(value string) (tmdb.SeasonSelection, error) {
	value = strings.TrimSpace(value)
	switch value {
	case "":
		return tmdb.SeasonSelection{}, nil
	case "all":
		return tmdb.AllSeasons(), nil
	}

	var numbers []int
	for part := range strings.SplitSeq(value, ",") {
		n, err := strconv.Atoi(strings.TrimSpace(part))
		if err != nil || n < 0 {
			return tmdb.SeasonSelection{}, fmt.Errorf("invalid season %q", part)
		}
		numbers = append(numbers, n)
	}
	return tmdb.Seasons(numbers...), nil
}
