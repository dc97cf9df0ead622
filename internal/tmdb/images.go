package tmdb

import (
	"fmt"

	"github.com/go-viper/mapstructure/v2"
)

// Image is one entry of a media's images extra.
type Image struct {
	FilePath    *string `json:"file_path"`
	AspectRatio float64 `json:"aspect_ratio"`
	VoteCount   int     `json:"vote_count"`
	VoteAverage float64 `json:"vote_average"`
	// Language is nil for text-free artwork.
	Language *string `json:"iso_639_1"`
	Width    int     `json:"width"`
	Height   int     `json:"height"`
}

// ImageSet is the images extra of a movie, show or collection.
type ImageSet struct {
	Backdrops []Image `json:"backdrops"`
	Posters   []Image `json:"posters"`
	Logos     []Image `json:"logos"`
}

// ImagesFromPayload decodes the images extra of p. A payload fetched without
// the extra yields an empty set.
func ImagesFromPayload(p Payload) (ImageSet, error) {
	var set ImageSet
	raw, ok := p["images"]
	if !ok || raw == nil {
		return set, nil
	}

	decoder, err := mapstructure.NewDecoder(&mapstructure.DecoderConfig{
		TagName:          "json",
		WeaklyTypedInput: true,
		Result:           &set,
	})
	if err != nil {
		return set, err
	}
	if err := decoder.Decode(raw); err != nil {
		return ImageSet{}, fmt.Errorf("failed to decode images: %w", err)
	}
	return set, nil
}
