package poster

import (
	"errors"
	"fmt"
)

var (
	ErrUnknownSize = errors.New("unknown poster size")
	ErrInvalidSize = errors.New("invalid poster dimensions")
)

// Size is a canvas preset. Width and height are in pixels.
type Size struct {
	Name   string `json:"name"`
	Width  int    `json:"width"`
	Height int    `json:"height"`
}

// IsZero reports whether s carries no dimensions.
func (s Size) IsZero() bool {
	return s.Width == 0 && s.Height == 0
}

var catalog = []Size{
	{Name: "print", Width: 800, Height: 1200},
	{Name: "instagram-post", Width: 1080, Height: 1080},
	{Name: "instagram-story", Width: 1080, Height: 1920},
	{Name: "facebook", Width: 1920, Height: 1080},
	{Name: "a4", Width: 2480, Height: 3508},
}

// generic names used by the share sheet and older clients
var aliases = map[string]string{
	"social-post":    "instagram-post",
	"social-story":   "instagram-story",
	"banner":         "facebook",
	"print-document": "a4",
}

// DefaultSize is the preset used when nothing was selected.
const DefaultSize = "print"

// Sizes returns a copy of the preset catalog in display order.
func Sizes() []Size {
	out := make([]Size, len(catalog))
	copy(out, catalog)
	return out
}

// LookupSize resolves a preset name or alias.
func LookupSize(name string) (Size, error) {
	if canonical, ok := aliases[name]; ok {
		name = canonical
	}
	for _, s := range catalog {
		if s.Name == name {
			return s, nil
		}
	}
	return Size{}, fmt.Errorf("%w: %q", ErrUnknownSize, name)
}

// MaxDimension caps each side of a custom size. The largest preset (a4)
// fits well below it.
const MaxDimension = 8192

// CustomSize builds an explicit override.
func CustomSize(width, height int) (Size, error) {
	return CustomSizeWithin(width, height, MaxDimension)
}

// CustomSizeWithin is CustomSize with a tighter per-side limit. A limit
// outside (0, MaxDimension] means MaxDimension.
func CustomSizeWithin(width, height, limit int) (Size, error) {
	if width <= 0 || height <= 0 {
		return Size{}, fmt.Errorf("%w: %dx%d", ErrInvalidSize, width, height)
	}
	if limit <= 0 || limit > MaxDimension {
		limit = MaxDimension
	}
	if width > limit || height > limit {
		return Size{}, fmt.Errorf("%w: %dx%d exceeds %d px per side", ErrInvalidSize, width, height, limit)
	}
	return Size{Name: "custom", Width: width, Height: height}, nil
}
