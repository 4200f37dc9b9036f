package imagepkg

import (
	"fmt"
	"image/color"

	"golang.org/x/image/font"
	"golang.org/x/image/font/basicfont"
	"golang.org/x/image/font/gofont/gobold"
	"golang.org/x/image/font/gofont/gomedium"
	"golang.org/x/image/font/gofont/gomono"
	"golang.org/x/image/font/gofont/gomonobold"
	"golang.org/x/image/font/gofont/goregular"
	"golang.org/x/image/font/opentype"
)

type Family int

const (
	Sans Family = iota
	Mono
)

type Weight int

const (
	Regular Weight = iota
	Medium
	Bold
)

// Font selects a face. Size is in pixels.
type Font struct {
	Family Family
	Weight Weight
	Size   float64
}

type Align int

const (
	AlignLeft Align = iota
	AlignCenter
)

// TextStyle carries everything a text draw needs; nothing is inherited
// from earlier calls.
type TextStyle struct {
	Font   Font
	Color  color.NRGBA
	Align  Align
	Shadow Shadow
}

type fontKey struct {
	family Family
	weight Weight
}

// Fonts holds the parsed embedded Go fonts. Parsed fonts are read-only
// and may be shared between surfaces; faces are created per surface.
type Fonts struct {
	fonts map[fontKey]*opentype.Font
}

// NewFonts parses the embedded font files.
func NewFonts() (*Fonts, error) {
	sources := map[fontKey][]byte{
		{Sans, Regular}: goregular.TTF,
		{Sans, Medium}:  gomedium.TTF,
		{Sans, Bold}:    gobold.TTF,
		{Mono, Regular}: gomono.TTF,
		{Mono, Medium}:  gomono.TTF,
		{Mono, Bold}:    gomonobold.TTF,
	}
	fs := &Fonts{fonts: make(map[fontKey]*opentype.Font, len(sources))}
	for key, ttf := range sources {
		f, err := opentype.Parse(ttf)
		if err != nil {
			return nil, fmt.Errorf("parse font %d/%d: %w", key.family, key.weight, err)
		}
		fs.fonts[key] = f
	}
	return fs, nil
}

// newFace creates a face for f, falling back to basicfont.Face7x13.
func (fs *Fonts) newFace(f Font) font.Face {
	if fs == nil || f.Size <= 0 {
		return basicfont.Face7x13
	}
	otf, ok := fs.fonts[fontKey{f.Family, f.Weight}]
	if !ok {
		return basicfont.Face7x13
	}
	face, err := opentype.NewFace(otf, &opentype.FaceOptions{
		Size:    f.Size,
		DPI:     72,
		Hinting: font.HintingNone,
	})
	if err != nil {
		return basicfont.Face7x13
	}
	return face
}
