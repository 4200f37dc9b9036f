package imagepkg

import (
	"image"
	"image/color"
	"math"

	"github.com/lucasb-eyer/go-colorful"
)

// Solid returns a uniform paint source.
func Solid(c color.Color) image.Image {
	return image.NewUniform(c)
}

// LinearGradient is an unbounded paint source blending two colors along
// the axis from (x0,y0) to (x1,y1). Colors are clamped beyond the ends.
type LinearGradient struct {
	x0, y0, dx, dy, len2 float64
	from, to             colorful.Color
	fromA, toA           float64
}

func NewLinearGradient(x0, y0, x1, y1 float64, from, to color.NRGBA) *LinearGradient {
	dx, dy := x1-x0, y1-y0
	return &LinearGradient{
		x0: x0, y0: y0, dx: dx, dy: dy, len2: dx*dx + dy*dy,
		from:  toColorful(from),
		to:    toColorful(to),
		fromA: float64(from.A),
		toA:   float64(to.A),
	}
}

func (g *LinearGradient) ColorModel() color.Model {
	return color.NRGBAModel
}

func (g *LinearGradient) Bounds() image.Rectangle {
	return unbounded
}

func (g *LinearGradient) At(x, y int) color.Color {
	t := 0.0
	if g.len2 > 0 {
		px, py := float64(x)+0.5-g.x0, float64(y)+0.5-g.y0
		t = math.Max(0, math.Min(1, (px*g.dx+py*g.dy)/g.len2))
	}
	return blend(g.from, g.to, g.fromA, g.toA, t)
}

var unbounded = image.Rectangle{Min: image.Point{X: -1e9, Y: -1e9}, Max: image.Point{X: 1e9, Y: 1e9}}

func toColorful(c color.NRGBA) colorful.Color {
	return colorful.Color{R: float64(c.R) / 255, G: float64(c.G) / 255, B: float64(c.B) / 255}
}

func blend(from, to colorful.Color, fromA, toA, t float64) color.NRGBA {
	r, g, b := from.BlendRgb(to, t).RGB255()
	return color.NRGBA{R: r, G: g, B: b, A: uint8(math.Round(fromA + (toA-fromA)*t))}
}

// Shadow describes a drop shadow cast by a fill. Blur follows the canvas
// convention: the Gaussian standard deviation is Blur/2.
type Shadow struct {
	Color            color.NRGBA
	Blur             float64
	OffsetX, OffsetY float64
}

// NoShadow is the zero shadow.
var NoShadow = Shadow{}

func (s Shadow) visible() bool {
	return s.Color.A != 0 && (s.Blur > 0 || s.OffsetX != 0 || s.OffsetY != 0)
}

// RadialGradient blends two colors by distance from a center, from radius
// r0 out to r1. Both circles share the center.
type RadialGradient struct {
	cx, cy, r0, r1 float64
	from, to       colorful.Color
	fromA, toA     float64
}

func NewRadialGradient(cx, cy, r0, r1 float64, from, to color.NRGBA) *RadialGradient {
	return &RadialGradient{
		cx: cx, cy: cy, r0: r0, r1: r1,
		from:  toColorful(from),
		to:    toColorful(to),
		fromA: float64(from.A),
		toA:   float64(to.A),
	}
}

func (g *RadialGradient) ColorModel() color.Model {
	return color.NRGBAModel
}

func (g *RadialGradient) Bounds() image.Rectangle {
	return unbounded
}

func (g *RadialGradient) At(x, y int) color.Color {
	d := math.Hypot(float64(x)+0.5-g.cx, float64(y)+0.5-g.cy)
	t := 0.0
	if g.r1 > g.r0 {
		t = math.Max(0, math.Min(1, (d-g.r0)/(g.r1-g.r0)))
	}
	return blend(g.from, g.to, g.fromA, g.toA, t)
}
