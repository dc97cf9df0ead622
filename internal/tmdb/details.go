package tmdb

import (
	"context"
	"fmt"
	"log/slog"

	"golang.org/x/sync/errgroup"

	"github.com/lepinkainen/reelmeta/internal/envelope"
	"github.com/lepinkainen/reelmeta/internal/request"
)

// MovieOptions configures Movie.
type MovieOptions struct {
	Language string
	// IncludeImageLanguage filters the images extra, e.g. {"en", "null"}.
	IncludeImageLanguage []string
	Extras               MovieExtras
}

// ShowOptions configures Show.
type ShowOptions struct {
	Language             string
	IncludeImageLanguage []string
	Extras               ShowExtras
}

// MediaOptions configures Media. Only the extras matching the resolved
// library type are used.
type MediaOptions struct {
	Language             string
	IncludeImageLanguage []string
	Movie                MovieExtras
	Show                 ShowExtras
}

// SeasonOptions configures Season.
type SeasonOptions struct {
	Language             string
	IncludeImageLanguage []string
	Extras               SeasonExtras
}

// EpisodeOptions configures Episode.
type EpisodeOptions struct {
	Language             string
	IncludeImageLanguage []string
	Extras               EpisodeExtras
}

// PersonOptions configures Person.
type PersonOptions struct {
	Language             string
	IncludeImageLanguage []string
	Extras               PersonExtras
}

func detailQuery(language string, imageLanguages, tokens []string) request.Query {
	return request.Query{
		"language":               optString(language),
		"append_to_response":     tokens,
		"include_image_language": imageLanguages,
	}
}

// Collection fetches a collection together with its images.
func (c *Client) Collection(ctx context.Context, id int, language string) envelope.Response[Payload] {
	if id <= 0 {
		return envelope.Invalid[Payload]("id", "Collection id is required")
	}
	return c.get(ctx, fmt.Sprintf("/collection/%d", id), request.Query{
		"language":           optString(language),
		"append_to_response": "images",
	})
}

// Movie fetches a movie. With Extras.Collection set and the movie belonging
// to a collection, the collection is fetched afterwards and attached under
// "collection"; a failed lookup attaches nil.
func (c *Client) Movie(ctx context.Context, id int, opts MovieOptions) envelope.Response[Payload] {
	resp := c.get(ctx, fmt.Sprintf("/movie/%d", id), detailQuery(opts.Language, opts.IncludeImageLanguage, opts.Extras.tokens()))
	resp = renameWatchProviders(resp, opts.Extras.WatchProviders)
	if resp.HasError() || !opts.Extras.Collection {
		return resp
	}

	movie := clonePayload(resp.Data())
	movie["collection"] = nil

	belongsTo, _ := getMap(movie, "belongs_to_collection")
	collectionID, ok := getInt(belongsTo, "id")
	if !ok {
		return envelope.Success(movie, resp.Code())
	}

	collection := c.Collection(ctx, collectionID, opts.Language)
	if collection.HasError() {
		slog.Warn("Collection lookup failed", "movie_id", id, "collection_id", collectionID, "error", collection.Err())
	} else {
		movie["collection"] = collection.Data()
	}
	return envelope.Success(movie, resp.Code())
}

// Show fetches a TV show. Selected seasons are attached as a list under
// "appendSeasons"; with AllSeasons every season listed by the show is
// fetched in concurrent batches.
func (c *Client) Show(ctx context.Context, id int, opts ShowOptions) envelope.Response[Payload] {
	resp := c.get(ctx, fmt.Sprintf("/tv/%d", id), detailQuery(opts.Language, opts.IncludeImageLanguage, opts.Extras.tokens()))
	resp = renameWatchProviders(resp, opts.Extras.WatchProviders)
	if resp.HasError() || !opts.Extras.Seasons.requested() {
		return resp
	}

	if opts.Extras.Seasons.All {
		return c.attachAllSeasons(ctx, id, opts, resp)
	}
	return envelope.Success(extractSeasons(resp.Data(), opts.Extras.Seasons.Numbers), resp.Code())
}

// attachAllSeasons waits for every batch even after one fails; the first
// failing batch in season order decides the result.
func (c *Client) attachAllSeasons(ctx context.Context, id int, opts ShowOptions, show envelope.Response[Payload]) envelope.Response[Payload] {
	batches := groupByLength(seasonNumbers(show.Data()), seasonBatchSize)
	results := make([]envelope.Response[Payload], len(batches))

	var g errgroup.Group
	for i, batch := range batches {
		g.Go(func() error {
			results[i] = c.Show(ctx, id, ShowOptions{
				Language:             opts.Language,
				IncludeImageLanguage: opts.IncludeImageLanguage,
				Extras:               ShowExtras{Seasons: Seasons(batch...)},
			})
			return results[i].Err()
		})
	}
	if err := g.Wait(); err != nil {
		slog.Debug("Season batch failed", "show_id", id, "error", err)
	}

	seasons := make([]any, 0)
	for _, r := range results {
		if r.HasError() {
			return r
		}
		list, _ := r.Data()["appendSeasons"].([]any)
		seasons = append(seasons, list...)
	}

	out := clonePayload(show.Data())
	out["appendSeasons"] = seasons
	return envelope.Success(out, show.Code())
}

// extractSeasons moves the season/<n> entries of a show into appendSeasons.
// Seasons the provider did not return are dropped.
func extractSeasons(show Payload, numbers []int) Payload {
	out := clonePayload(show)
	seasons := make([]any, 0, len(numbers))
	for _, n := range numbers {
		key := seasonKey(n)
		if season, ok := out[key]; ok && season != nil {
			seasons = append(seasons, season)
		}
		delete(out, key)
	}
	out["appendSeasons"] = seasons
	return out
}

// Media fetches a movie or a show depending on library.
func (c *Client) Media(ctx context.Context, id int, library LibraryType, opts MediaOptions) envelope.Response[Payload] {
	switch library {
	case Movie:
		return c.Movie(ctx, id, MovieOptions{Language: opts.Language, IncludeImageLanguage: opts.IncludeImageLanguage, Extras: opts.Movie})
	case Show:
		return c.Show(ctx, id, ShowOptions{Language: opts.Language, IncludeImageLanguage: opts.IncludeImageLanguage, Extras: opts.Show})
	default:
		return envelope.Invalid[Payload]("library", fmt.Sprintf("unsupported library type %q", library))
	}
}

// Season fetches one season of a show.
func (c *Client) Season(ctx context.Context, showID, season int, opts SeasonOptions) envelope.Response[Payload] {
	resp := c.get(ctx, fmt.Sprintf("/tv/%d/season/%d", showID, season), detailQuery(opts.Language, opts.IncludeImageLanguage, opts.Extras.tokens()))
	return renameWatchProviders(resp, opts.Extras.WatchProviders)
}

// Episode fetches one episode of a show.
func (c *Client) Episode(ctx context.Context, showID, season, episode int, opts EpisodeOptions) envelope.Response[Payload] {
	return c.get(ctx, fmt.Sprintf("/tv/%d/season/%d/episode/%d", showID, season, episode), detailQuery(opts.Language, opts.IncludeImageLanguage, opts.Extras.tokens()))
}

// Person fetches a person.
func (c *Client) Person(ctx context.Context, id int, opts PersonOptions) envelope.Response[Payload] {
	return c.get(ctx, fmt.Sprintf("/person/%d", id), detailQuery(opts.Language, opts.IncludeImageLanguage, opts.Extras.tokens()))
}

// Company fetches a production company.
func (c *Client) Company(ctx context.Context, id int, language string) envelope.Response[Payload] {
	return c.get(ctx, fmt.Sprintf("/company/%d", id), request.Query{"language": optString(language)})
}

// Network fetches a TV network.
func (c *Client) Network(ctx context.Context, id int, language string) envelope.Response[Payload] {
	return c.get(ctx, fmt.Sprintf("/network/%d", id), request.Query{"language": optString(language)})
}

// renameWatchProviders exposes the watch/providers extra as watch_providers.
// Payloads are left alone unless the caller asked for the extra.
func renameWatchProviders(resp envelope.Response[Payload], requested bool) envelope.Response[Payload] {
	if !requested || resp.HasError() {
		return resp
	}
	providers, ok := resp.Data()[watchProvidersToken]
	if !ok {
		return resp
	}
	out := clonePayload(resp.Data())
	out["watch_providers"] = providers
	delete(out, watchProvidersToken)
	return envelope.Success(out, resp.Code())
}
