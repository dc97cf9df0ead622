package artwork

import (
	"cmp"
	"slices"
)

// Merge concatenates candidate sets in argument order.
func Merge(sets ...FrontImages) FrontImages {
	out := emptyImages()
	for _, set := range sets {
		out.Posters = append(out.Posters, set.Posters...)
		out.Backdrops = append(out.Backdrops, set.Backdrops...)
		out.Logos = append(out.Logos, set.Logos...)
	}
	return out
}

// Sorted returns a copy with every slot ordered by Likes, best first. Ties
// keep their original order.
func (f FrontImages) Sorted() FrontImages {
	return FrontImages{
		Posters:   sortByLikes(f.Posters),
		Backdrops: sortByLikes(f.Backdrops),
		Logos:     sortByLikes(f.Logos),
	}
}

func sortByLikes(images []FrontImage) []FrontImage {
	out := slices.Clone(images)
	if out == nil {
		out = []FrontImage{}
	}
	slices.SortStableFunc(out, func(a, b FrontImage) int {
		return cmp.Compare(b.Likes, a.Likes)
	})
	return out
}

// Picks holds the winning candidate of each slot. A slot without candidates
// is nil.
type Picks struct {
	Poster   *FrontImage `json:"poster" yaml:"poster"`
	Backdrop *FrontImage `json:"backdrop" yaml:"backdrop"`
	Logo     *FrontImage `json:"logo" yaml:"logo"`
}

// Best returns the highest scored candidate of each slot.
func (f FrontImages) Best() Picks {
	sorted := f.Sorted()
	return Picks{
		Poster:   first(sorted.Posters),
		Backdrop: first(sorted.Backdrops),
		Logo:     first(sorted.Logos),
	}
}

func first(images []FrontImage) *FrontImage {
	if len(images) == 0 {
		return nil
	}
	return &images[0]
}
