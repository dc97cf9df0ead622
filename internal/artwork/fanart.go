package artwork

import (
	"context"
	"fmt"
	"net/http"
	"strings"

	"github.com/spf13/cast"

	"github.com/lepinkainen/reelmeta/internal/envelope"
	"github.com/lepinkainen/reelmeta/internal/request"
)

// FanArtImage is one image in a fanart.tv listing.
type FanArtImage struct {
	ID    string `json:"id"`
	URL   string `json:"url"`
	Lang  string `json:"lang"`
	Likes string `json:"likes"`
}

// BulkImages is the fanart.tv response for one movie or show. Movies and
// shows use different field names for the same categories.
type BulkImages struct {
	Name            string        `json:"name"`
	HDMovieLogo     []FanArtImage `json:"hdmovielogo"`
	HDTVLogo        []FanArtImage `json:"hdtvlogo"`
	MovieThumb      []FanArtImage `json:"moviethumb"`
	TVThumb         []FanArtImage `json:"tvthumb"`
	MovieBackground []FanArtImage `json:"moviebackground"`
	ShowBackground  []FanArtImage `json:"showbackground"`
	HDClearArt      []FanArtImage `json:"hdclearart"`
	HDMovieClearArt []FanArtImage `json:"hdmovieclearart"`
	MoviePoster     []FanArtImage `json:"movieposter"`
	TVPoster        []FanArtImage `json:"tvposter"`
}

// Score offsets for fanart.tv categories that fit a slot less well.
const (
	fanArtPosterOffset   = -2000
	fanArtClearArtOffset = -1000
)

// FanArt fetches and scores the fanart.tv images of a movie (by TMDB id) or
// show (by TVDB id).
func (c *Client) FanArt(ctx context.Context, library LibraryType, id, year int, apiKey string) envelope.Response[FrontImages] {
	endpoint, ok := fanArtEndpoint(library)
	if !ok {
		return envelope.Invalid[FrontImages]("library", fmt.Sprintf("unsupported library type %q", library))
	}

	resp := request.RequireSuccess(request.Do[BulkImages](ctx, c.executor, request.Request{
		Method:  http.MethodGet,
		Address: fmt.Sprintf("%s/%s/%d", c.fanArtBaseURL, endpoint, id),
		Query:   request.Query{"api_key": apiKey},
	}))
	if resp.HasError() {
		return envelope.Propagate[FrontImages](resp)
	}
	return envelope.Success(ConvertFanArt(resp.Data(), year), resp.Code())
}

func fanArtEndpoint(library LibraryType) (string, bool) {
	switch library {
	case Movie:
		return "movies", true
	case Show:
		return "tv", true
	default:
		return "", false
	}
}

// ConvertFanArt scores a fanart.tv listing. Posters are padded with thumbs
// and clear art, which rank below real posters.
func ConvertFanArt(images BulkImages, year int) FrontImages {
	out := emptyImages()

	out.Logos = appendFanArt(out.Logos, pickFanArt(images.HDMovieLogo, images.HDTVLogo), year, 0)
	out.Backdrops = appendFanArt(out.Backdrops, pickFanArt(images.MovieBackground, images.ShowBackground), year, 0)
	out.Posters = appendFanArt(out.Posters, pickFanArt(images.MoviePoster, images.TVPoster), year, fanArtPosterOffset)
	out.Posters = appendFanArt(out.Posters, pickFanArt(images.MovieThumb, images.TVThumb), year, 0)
	out.Posters = appendFanArt(out.Posters, pickFanArt(images.HDMovieClearArt, images.HDClearArt), year, fanArtClearArtOffset)
	return out
}

// pickFanArt prefers the movie field whenever the response carried it, even
// empty.
func pickFanArt(movie, show []FanArtImage) []FanArtImage {
	if movie != nil {
		return movie
	}
	return show
}

func appendFanArt(dst []FrontImage, images []FanArtImage, year int, offset float64) []FrontImage {
	for _, img := range images {
		likes, err := cast.ToFloat64E(strings.TrimSpace(img.Likes))
		if err != nil {
			likes = 0
		}
		var lang *string
		if img.Lang != "" {
			lang = &img.Lang
		}
		dst = append(dst, FrontImage{
			URL:      img.URL,
			Source:   SourceFanArt,
			Language: lang,
			Year:     year,
			Likes:    likes + offset,
		})
	}
	return dst
}
