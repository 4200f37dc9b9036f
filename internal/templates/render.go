// Package templates holds the four poster recipes and the skeleton that
// runs them: background, decoration, title, info block, call to action.
package templates

import (
	"fmt"
	"image"
	"image/color"
	"math"
	"strings"

	imagepkg "github.com/youruser/posterapp/internal/image"
	"github.com/youruser/posterapp/internal/poster"
)

// Canvas is the drawing target a recipe paints on.
type Canvas interface {
	imagepkg.TextCanvas
	Width() float64
	Height() float64
	DrawImage(img image.Image)
	FillRect(x, y, w, h float64, paint image.Image, sh imagepkg.Shadow)
	FillPath(p *imagepkg.Path, paint image.Image, sh imagepkg.Shadow)
}

// Options tweak a single render.
type Options struct {
	// TitleOffset moves the title block down (positive) or up.
	TitleOffset float64 `json:"title_offset" form:"title_offset"`
}

// Title describes where and how the event name is set.
type Title struct {
	X, Y       float64
	MaxWidth   float64
	LineHeight float64
	Style      imagepkg.TextStyle
}

// Recipe is one template's visual identity.
type Recipe interface {
	// Background paints the image with a tint, or the template fill when
	// bg is nil.
	Background(c Canvas, l Layout, bg image.Image)
	Decorate(c Canvas, l Layout)
	Title(l Layout) Title
	Info(c Canvas, l Layout, f poster.EventFields)
	CallToAction(c Canvas, l Layout)
}

// Render paints a complete poster. The canvas is expected to be cleared
// and f to carry placeholders already.
func Render(c Canvas, r Recipe, f poster.EventFields, bg image.Image, opts Options) {
	l := NewLayout(c.Width(), c.Height())
	r.Background(c, l, bg)
	r.Decorate(c, l)
	t := r.Title(l)
	imagepkg.WrapText(c, strings.ToUpper(f.Name), t.X, t.Y+opts.TitleOffset, t.MaxWidth, t.LineHeight, t.Style)
	r.Info(c, l, f)
	r.CallToAction(c, l)
}

// ReferenceWidth is the canvas width the recipes were drawn for.
const ReferenceWidth = 800

// Layout scales dimensions to the canvas: every size is the smaller of
// a pixel cap and a fraction of the canvas width.
type Layout struct {
	W, H float64
}

func NewLayout(w, h float64) Layout {
	return Layout{W: w, H: h}
}

// Fit returns min(limit, frac*W).
func (l Layout) Fit(limit, frac float64) float64 {
	return math.Min(limit, l.W*frac)
}

// Px scales a reference-width pixel value: it is v on canvases at least
// ReferenceWidth wide and shrinks proportionally below that.
func (l Layout) Px(v float64) float64 {
	return l.Fit(v, v/ReferenceWidth)
}

// Factory builds a recipe from its palette. Roles lists every palette
// role the recipe reads.
type Factory struct {
	Roles []poster.Role
	New   func(p poster.Palette) Recipe
}

var factories = map[poster.TemplateID]Factory{
	poster.Modern:  {Roles: modernRoles, New: func(p poster.Palette) Recipe { return modern{p} }},
	poster.Bold:    {Roles: boldRoles, New: func(p poster.Palette) Recipe { return bold{p} }},
	poster.Minimal: {Roles: minimalRoles, New: func(p poster.Palette) Recipe { return minimal{p} }},
	poster.Retro:   {Roles: retroRoles, New: func(p poster.Palette) Recipe { return retro{p} }},
}

// Lookup returns the factory for id.
func Lookup(id poster.TemplateID) (Factory, error) {
	f, ok := factories[id]
	if !ok {
		return Factory{}, fmt.Errorf("%w: %q", poster.ErrUnknownTemplate, id)
	}
	return f, nil
}

// Validate checks that reg holds every role every recipe reads.
func Validate(reg *poster.Registry) error {
	for _, id := range poster.Templates() {
		f, err := Lookup(id)
		if err != nil {
			return err
		}
		if err := reg.Require(id, f.Roles...); err != nil {
			return err
		}
	}
	return nil
}

// shade is black at the given opacity.
func shade(alpha float64) color.NRGBA {
	return color.NRGBA{A: uint8(math.Round(alpha * 255))}
}

// backdrop draws bg with the palette's overlay and reports whether it
// did anything.
func backdrop(c Canvas, l Layout, p poster.Palette, bg image.Image) bool {
	if bg == nil {
		return false
	}
	c.DrawImage(bg)
	top, bottom := p.Color(poster.RoleOverlayTop), p.Color(poster.RoleOverlayBottom)
	var tint image.Image = imagepkg.Solid(top)
	if top != bottom {
		tint = imagepkg.NewLinearGradient(0, 0, 0, l.H, top, bottom)
	}
	c.FillRect(0, 0, l.W, l.H, tint, imagepkg.NoShadow)
	return true
}
