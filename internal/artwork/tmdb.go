package artwork

import (
	"context"
	"math"

	"github.com/spf13/cast"

	"github.com/lepinkainen/reelmeta/internal/envelope"
	"github.com/lepinkainen/reelmeta/internal/tmdb"
)

const tmdbImageBaseURL = "https://image.tmdb.org/t/p/original"

// wideAspect separates landscape artwork from portrait artwork.
const wideAspect = 1.5

// ConvertTMDB scores a TMDB image set. Backdrops and posters are pooled and
// scored twice, once for the poster slot and once for the backdrop slot;
// logos are scored on votes and language. Images without a file path are
// skipped.
func ConvertTMDB(images tmdb.ImageSet, opts Options) FrontImages {
	lang := opts.language()
	base := opts.tmdbImageBase()
	out := emptyImages()

	pool := make([]tmdb.Image, 0, len(images.Backdrops)+len(images.Posters))
	pool = append(pool, images.Backdrops...)
	pool = append(pool, images.Posters...)

	for _, img := range pool {
		if img.FilePath == nil {
			continue
		}
		out.Posters = append(out.Posters, tmdbFrontImage(base, img, opts.Year, posterLikes(img, lang)))
		out.Backdrops = append(out.Backdrops, tmdbFrontImage(base, img, opts.Year, backdropLikes(img, lang)))
	}

	for _, img := range images.Logos {
		if img.FilePath == nil {
			continue
		}
		out.Logos = append(out.Logos, tmdbFrontImage(base, img, opts.Year, logoLikes(img, lang)))
	}
	return out
}

func posterLikes(img tmdb.Image, lang string) float64 {
	likes := 500.0
	if img.AspectRatio > wideAspect {
		likes += pickByLanguage(img.Language, lang, -500, 500, 200)
	} else {
		likes += pickByLanguage(img.Language, lang, -400, -300, -200)
	}
	return likes + float64(img.VoteCount)*img.VoteAverage
}

func backdropLikes(img tmdb.Image, lang string) float64 {
	if img.AspectRatio > wideAspect {
		return pickByLanguage(img.Language, lang, 500, -200, -500)
	}
	return pickByLanguage(img.Language, lang, 400, -200, -500)
}

func logoLikes(img tmdb.Image, lang string) float64 {
	likes := math.Floor(float64(img.VoteCount) * img.VoteAverage)
	return likes + pickByLanguage(img.Language, lang, -1000, 1000, 0)
}

// pickByLanguage returns none for text-free images, match when the image is
// in the wanted language and other otherwise.
func pickByLanguage(imageLang *string, want string, none, match, other float64) float64 {
	switch {
	case imageLang == nil:
		return none
	case *imageLang == want:
		return match
	default:
		return other
	}
}

func tmdbFrontImage(base string, img tmdb.Image, year int, likes float64) FrontImage {
	return FrontImage{
		URL:      base + *img.FilePath,
		Source:   SourceTMDB,
		Language: img.Language,
		Year:     year,
		Likes:    likes,
	}
}

// TMDBMedia is a TMDB detail payload together with its scored images.
type TMDBMedia struct {
	Payload tmdb.Payload
	Images  FrontImages
}

// TMDBLookup fetches a movie or show with the images extra plus whatever
// else media asks for, and scores the images. A zero opts.Year is read from
// the payload, and image URLs follow the metadata client's image base.
func (c *Client) TMDBLookup(ctx context.Context, metadata *tmdb.Client, library LibraryType, id int, opts Options, media tmdb.MediaOptions) envelope.Response[TMDBMedia] {
	media.Movie.Images = true
	media.Show.Images = true

	resp := metadata.Media(ctx, id, library, media)
	if resp.HasError() {
		return envelope.Propagate[TMDBMedia](resp)
	}

	images, err := tmdb.ImagesFromPayload(resp.Data())
	if err != nil {
		return envelope.Failure[TMDBMedia](err, 0)
	}
	if opts.Year == 0 {
		opts.Year = ReleaseYear(resp.Data())
	}
	if opts.TMDBImageBaseURL == "" {
		opts.TMDBImageBaseURL = metadata.ImageBaseURL()
	}
	return envelope.Success(TMDBMedia{Payload: resp.Data(), Images: ConvertTMDB(images, opts)}, resp.Code())
}

// TMDBImages fetches a movie or show with its images and scores them.
func (c *Client) TMDBImages(ctx context.Context, metadata *tmdb.Client, library LibraryType, id int, opts Options) envelope.Response[FrontImages] {
	return envelope.Map(c.TMDBLookup(ctx, metadata, library, id, opts, tmdb.MediaOptions{}), func(m TMDBMedia) FrontImages {
		return m.Images
	})
}

// ReleaseYear is the year of a movie's release date or a show's first air
// date, or 0 when the payload has neither.
func ReleaseYear(p tmdb.Payload) int {
	for _, key := range []string{"release_date", "first_air_date"} {
		if t, err := cast.ToTimeE(p[key]); err == nil && !t.IsZero() {
			return t.Year()
		}
	}
	return 0
}
