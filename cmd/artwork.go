package cmd

import (
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"slices"
	"strings"

	"github.com/spf13/cast"
	"golang.org/x/sync/errgroup"

	"github.com/lepinkainen/reelmeta/internal/artwork"
	"github.com/lepinkainen/reelmeta/internal/envelope"
	"github.com/lepinkainen/reelmeta/internal/request"
	"github.com/lepinkainen/reelmeta/internal/tmdb"
	"github.com/lepinkainen/reelmeta/internal/tui"
)

const (
	sourceTMDB   = "tmdb"
	sourceFanArt = "fanart"
	sourceApple  = "apple"

	defaultArtworkLimit = 5
)

func defaultSources() []string {
	return []string{sourceTMDB, sourceFanArt, sourceApple}
}

// ArtworkCmd represents the artwork command
type ArtworkCmd struct {
	Type        string   `short:"t" help:"Media type" enum:"movie,show" default:"movie"`
	ID          int      `help:"TMDB id of the movie or show" required:""`
	Title       string   `help:"Title used for the Apple TV search (looked up on TMDB when empty)"`
	Year        int      `short:"y" help:"Release year used to score matches (looked up on TMDB when empty)"`
	Sources     []string `sep:"," help:"Image sources to query" enum:"tmdb,fanart,apple" default:"tmdb,fanart,apple"`
	Limit       int      `short:"n" help:"Candidates to keep per slot (0 keeps all)" default:"5"`
	Best        bool     `help:"Only print the top candidate of each slot"`
	Interactive bool     `short:"i" help:"Choose the poster, backdrop and logo interactively"`
}

// selectArtwork is swapped out in tests to avoid starting a terminal UI.
var selectArtwork = tui.SelectArtwork

// mediaInfo is what the fetchers need to know about the title being
// decorated.
type mediaInfo struct {
	title  string
	year   int
	tvdbID int
	images artwork.FrontImages
}

type sourceResult struct {
	name string
	resp envelope.Response[artwork.FrontImages]
}

func (a *ArtworkCmd) Run(app *App) error {
	library := tmdb.Movie
	if a.Type == "show" {
		library = tmdb.Show
	}
	opts := artwork.Options{LanguageCode: app.Language, CountryCode: app.Country, Year: a.Year}

	info := mediaInfo{title: a.Title, year: a.Year}
	if a.needsLookup(library) {
		if err := app.requireTMDBKey(); err != nil {
			return err
		}
		var err error
		if info, err = a.lookup(app, library, opts); err != nil {
			return err
		}
		opts.Year = info.year
	}

	results := a.fetch(app, library, info, opts)

	var (
		sets []artwork.FrontImages
		errs []error
	)
	for _, r := range results {
		if request.IsCanceled(r.resp) {
			return fmt.Errorf("%s: %w", r.name, r.resp.Err())
		}
		if r.resp.HasError() {
			slog.Warn("Artwork source failed", "source", r.name, "code", r.resp.Code(), "error", r.resp.Message())
			errs = append(errs, fmt.Errorf("%s: %w", r.name, r.resp.Err()))
			continue
		}
		sets = append(sets, r.resp.Data())
	}
	if len(sets) == 0 {
		return fmt.Errorf("no artwork for %s %d: %w", a.Type, a.ID, errors.Join(errs...))
	}

	ranked := limitImages(artwork.Merge(sets...).Sorted(), a.Limit)

	switch {
	case a.Interactive:
		picks, err := chooseArtwork(info.title, ranked)
		if err != nil {
			return err
		}
		return app.render(picks, picksTable(picks))
	case a.Best:
		picks := ranked.Best()
		return app.render(picks, picksTable(picks))
	default:
		return app.render(ranked, imagesTable(ranked))
	}
}

func (a *ArtworkCmd) has(source string) bool {
	return slices.Contains(a.Sources, source)
}

// needsLookup reports whether a TMDB detail request is required: for TMDB's
// own images, to fill in a missing title or year, or to find the TVDB id
// fanart.tv indexes shows by.
func (a *ArtworkCmd) needsLookup(library tmdb.LibraryType) bool {
	if a.has(sourceTMDB) || a.Title == "" || a.Year == 0 {
		return true
	}
	return library == tmdb.Show && a.has(sourceFanArt)
}

func (a *ArtworkCmd) lookup(app *App, library tmdb.LibraryType, opts artwork.Options) (mediaInfo, error) {
	media := tmdb.MediaOptions{
		Language: app.Language,
		Movie:    tmdb.MovieExtras{ExternalIDs: true},
		Show:     tmdb.ShowExtras{ExternalIDs: true},
	}

	info := mediaInfo{title: a.Title, year: a.Year}
	var data tmdb.Payload
	if a.has(sourceTMDB) {
		resp := app.Artwork.TMDBLookup(app.Ctx, app.TMDB, library, a.ID, opts, media)
		if resp.HasError() {
			return mediaInfo{}, fmt.Errorf("fetch %s %d: %w", a.Type, a.ID, resp.Err())
		}
		data, info.images = resp.Data().Payload, resp.Data().Images
	} else {
		resp := app.TMDB.Media(app.Ctx, a.ID, library, media)
		if resp.HasError() {
			return mediaInfo{}, fmt.Errorf("fetch %s %d: %w", a.Type, a.ID, resp.Err())
		}
		data = resp.Data()
	}

	if info.title == "" {
		info.title = firstString(data, "title", "name")
	}
	if info.year == 0 {
		info.year = artwork.ReleaseYear(data)
	}
	if ids, ok := data["external_ids"].(map[string]any); ok {
		info.tvdbID = cast.ToInt(ids["tvdb_id"])
	}

	slog.Debug("Resolved media", "title", info.title, "year", info.year, "tvdb_id", info.tvdbID)
	return info, nil
}

// fetch queries the external sources concurrently. Results keep the order of
// the requested sources so merging stays deterministic.
func (a *ArtworkCmd) fetch(app *App, library tmdb.LibraryType, info mediaInfo, opts artwork.Options) []sourceResult {
	sources := uniqueSources(a.Sources)
	results := make([]sourceResult, len(sources))

	var g errgroup.Group
	for i, source := range sources {
		results[i].name = source
		g.Go(func() error {
			results[i].resp = a.fetchOne(app, source, library, info, opts)
			return nil
		})
	}
	_ = g.Wait()

	return results
}

func (a *ArtworkCmd) fetchOne(app *App, source string, library tmdb.LibraryType, info mediaInfo, opts artwork.Options) envelope.Response[artwork.FrontImages] {
	switch source {
	case sourceTMDB:
		return envelope.Success(info.images, http.StatusOK)
	case sourceFanArt:
		if app.FanartKey == "" {
			return envelope.Invalid[artwork.FrontImages]("fanart_api_key", "fanart.tv API key is not configured")
		}
		id := a.ID
		if library == tmdb.Show {
			if info.tvdbID == 0 {
				return envelope.NotFound[artwork.FrontImages]("No TVDB id for show %d", a.ID)
			}
			id = info.tvdbID
		}
		return app.Artwork.FanArt(app.Ctx, library, id, opts.Year, app.FanartKey)
	case sourceApple:
		if strings.TrimSpace(info.title) == "" {
			return envelope.Invalid[artwork.FrontImages]("title", "a title is required for the Apple TV search")
		}
		return app.Artwork.Apple(app.Ctx, library, info.title, opts)
	default:
		return envelope.Invalid[artwork.FrontImages]("source", fmt.Sprintf("unknown source %q", source))
	}
}

// chooseArtwork walks the user through each slot. Stopping keeps the picks
// made so far.
func chooseArtwork(title string, ranked artwork.FrontImages) (artwork.Picks, error) {
	var picks artwork.Picks
	slots := []struct {
		name       string
		candidates []artwork.FrontImage
		target     **artwork.FrontImage
	}{
		{"poster", ranked.Posters, &picks.Poster},
		{"backdrop", ranked.Backdrops, &picks.Backdrop},
		{"logo", ranked.Logos, &picks.Logo},
	}

	for _, slot := range slots {
		choice, err := selectArtwork(title, slot.name, slot.candidates)
		if err != nil {
			return picks, fmt.Errorf("choose %s: %w", slot.name, err)
		}
		if choice.Action == tui.ActionStopped {
			break
		}
		*slot.target = choice.Image
	}
	return picks, nil
}

func limitImages(images artwork.FrontImages, limit int) artwork.FrontImages {
	if limit <= 0 {
		return images
	}
	clip := func(list []artwork.FrontImage) []artwork.FrontImage {
		return list[:min(len(list), limit)]
	}
	return artwork.FrontImages{
		Posters:   clip(images.Posters),
		Backdrops: clip(images.Backdrops),
		Logos:     clip(images.Logos),
	}
}

func firstString(p tmdb.Payload, keys ...string) string {
	for _, key := range keys {
		if s := cast.ToString(p[key]); s != "" {
			return s
		}
	}
	return ""
}

// uniqueSources drops repeated sources, keeping the first occurrence.
func uniqueSources(sources []string) []string {
	seen := make(map[string]bool, len(sources))
	out := make([]string, 0, len(sources))
	for _, source := range sources {
		if !seen[source] {
			seen[source] = true
			out = append(out, source)
		}
	}
	return out
}
