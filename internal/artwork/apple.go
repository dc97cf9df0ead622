package artwork

import (
	"context"
	"fmt"
	"log/slog"
	"math"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/lepinkainen/reelmeta/internal/envelope"
	"github.com/lepinkainen/reelmeta/internal/request"
	"github.com/lepinkainen/reelmeta/internal/similarity"
)

// Apple store image templates carry {w}, {h} and {f} placeholders.
type appleImage struct {
	Width  float64 `json:"width"`
	Height float64 `json:"height"`
	URL    string  `json:"url"`
}

type appleItem struct {
	ID    string `json:"id"`
	Type  string `json:"type"`
	Title string `json:"title"`
	// ReleaseDate is in milliseconds since the epoch.
	ReleaseDate float64 `json:"releaseDate"`
	Images      struct {
		CoverArt16X9           *appleImage `json:"coverArt16X9"`
		PreviewFrame           *appleImage `json:"previewFrame"`
		FullColorContentLogo   *appleImage `json:"fullColorContentLogo"`
		SingleColorContentLogo *appleImage `json:"singleColorContentLogo"`
	} `json:"images"`
}

type appleSearch struct {
	Data *struct {
		Canvas *struct {
			Shelves []struct {
				Title string      `json:"title"`
				Items []appleItem `json:"items"`
			} `json:"shelves"`
		} `json:"canvas"`
	} `json:"data"`
}

type appleLocaleRequest struct {
	Locale     string `json:"locale"`
	Query      string `json:"query"`
	StoreFront int    `json:"storeFront"`
}

type appleLocaleResponse struct {
	URL string `json:"url"`
}

const applePosterWidth = 1280

// Apple searches the Apple store for name and scores the artwork of every
// result of the requested type. Results are scored by how closely their
// title matches name and whether their release year matches opts.Year.
func (c *Client) Apple(ctx context.Context, library LibraryType, name string, opts Options) envelope.Response[FrontImages] {
	itemType, shelfTitle, ok := appleKind(library)
	if !ok {
		return envelope.Invalid[FrontImages]("library", fmt.Sprintf("unsupported library type %q", library))
	}

	items := c.appleSearch(ctx, name, shelfTitle, opts)
	if items.HasError() {
		return envelope.Propagate[FrontImages](items)
	}

	lang := opts.language()
	out := emptyImages()
	matched := 0
	for _, item := range items.Data() {
		if item.Type != itemType {
			continue
		}
		matched++

		drift := similarity.Levenshtein(item.Title, name)
		year := opts.Year
		if item.ReleaseDate != 0 {
			year = time.UnixMilli(int64(item.ReleaseDate)).UTC().Year()
		}
		likes := math.Ceil(2000 / float64(max(drift, 1)))
		if year == opts.Year {
			likes += 1000
		} else {
			likes -= 3000
		}

		candidate := func(address string) FrontImage {
			return FrontImage{URL: address, Source: SourceApple, Language: &lang, Year: year, Drift: drift, Likes: likes}
		}
		if img := item.Images.CoverArt16X9; img != nil {
			out.Posters = append(out.Posters, candidate(fillTemplate(*img, "jpg", applePosterWidth)))
		}
		if img := item.Images.PreviewFrame; img != nil {
			out.Backdrops = append(out.Backdrops, candidate(fillTemplate(*img, "jpg", 0)))
		}
		logo := item.Images.FullColorContentLogo
		if logo == nil {
			logo = item.Images.SingleColorContentLogo
		}
		if logo != nil {
			out.Logos = append(out.Logos, candidate(fillTemplate(*logo, "png", 0)))
		}
	}

	if matched == 0 {
		return envelope.NotFound[FrontImages]("No Apple images found for %s", name)
	}
	return envelope.Success(out, items.Code())
}

func appleKind(library LibraryType) (itemType, shelfTitle string, ok bool) {
	switch library {
	case Movie:
		return "Movie", "Movies", true
	case Show:
		return "Show", "TV Shows", true
	default:
		return "", "", false
	}
}

// appleSearch resolves the search URL for the store front, runs the search
// and returns the items of the wanted shelf.
func (c *Client) appleSearch(ctx context.Context, name, shelfTitle string, opts Options) envelope.Response[[]appleItem] {
	resolved := ResolveStoreFront(opts)
	store := storeFronts[0]
	if resolved.HasData() {
		store = resolved.Data()
	} else {
		slog.Debug("Falling back to default store front", "language", opts.LanguageCode, "country", opts.CountryCode)
	}

	locale := request.RequireSuccess(request.Do[appleLocaleResponse](ctx, c.executor, request.Request{
		Method:  http.MethodPost,
		Address: c.appleLocaleURL,
		Body:    appleLocaleRequest{Locale: store.Locale(), Query: name, StoreFront: store.StoreFrontID},
	}))
	if locale.HasError() {
		return envelope.Propagate[[]appleItem](locale)
	}

	searchURL, err := url.Parse(locale.Data().URL)
	if err != nil || searchURL.Scheme == "" || searchURL.Host == "" {
		return envelope.Failure[[]appleItem](fmt.Errorf("invalid search url %q", locale.Data().URL), http.StatusBadGateway)
	}

	query := request.Query{}
	for key, values := range searchURL.Query() {
		query[key] = values[len(values)-1]
	}
	query["sf"] = store.StoreFrontID
	query["l"] = store.LanguageCode
	query["c"] = store.CountryCode
	query["q"] = name

	search := request.RequireSuccess(request.Do[appleSearch](ctx, c.executor, request.Request{
		Method:  http.MethodGet,
		Address: searchURL.Scheme + "://" + searchURL.Host + searchURL.Path,
		Query:   query,
	}))
	if search.HasError() {
		return envelope.Propagate[[]appleItem](search)
	}

	if data := search.Data().Data; data != nil && data.Canvas != nil {
		for _, shelf := range data.Canvas.Shelves {
			if shelf.Title != shelfTitle {
				continue
			}
			if len(shelf.Items) > 0 {
				return envelope.Success(shelf.Items, search.Code())
			}
			break
		}
	}
	return envelope.NotFound[[]appleItem]("No Apple images found for %s", name)
}

// fillTemplate substitutes the size and format placeholders of an image
// template. With a width, the height keeps the source aspect ratio.
func fillTemplate(img appleImage, format string, width float64) string {
	w, h := img.Width, img.Height
	if width > 0 {
		h = width / (img.Width / img.Height)
		w = width
	}
	out := strings.Replace(img.URL, "{w}", formatNumber(w), 1)
	out = strings.Replace(out, "{h}", formatNumber(h), 1)
	return strings.Replace(out, "{f}", format, 1)
}

func formatNumber(f float64) string {
	return strconv.FormatFloat(f, 'f', -1, 64)
}
