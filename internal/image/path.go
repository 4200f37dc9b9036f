package imagepkg

import (
	"image"
	"image/draw"
	"math"

	"golang.org/x/image/vector"
)

// Point is a position in canvas pixels.
type Point struct {
	X, Y float64
}

// OpKind identifies a path command.
type OpKind int

const (
	OpMove OpKind = iota
	OpLine
	OpQuad
	OpClose
)

// Op is one recorded path command. Quad ops carry the control point
// followed by the end point.
type Op struct {
	Kind OpKind
	Pts  []Point
}

// quadSteps is the number of line segments a quadratic curve is split into.
const quadSteps = 16

// Path records drawing commands to be filled later. Its zero value is an
// empty path ready to use.
type Path struct {
	ops    []Op
	cur    Point
	start  Point
	hasCur bool
}

// NewPath returns an empty path.
func NewPath() *Path {
	return &Path{}
}

// Ops returns the recorded commands.
func (p *Path) Ops() []Op {
	return p.ops
}

func (p *Path) MoveTo(x, y float64) {
	p.ops = append(p.ops, Op{Kind: OpMove, Pts: []Point{{x, y}}})
	p.cur = Point{x, y}
	p.start = p.cur
	p.hasCur = true
}

// LineTo adds a straight segment. Without a current point it behaves
// like MoveTo.
func (p *Path) LineTo(x, y float64) {
	if !p.hasCur {
		p.MoveTo(x, y)
		return
	}
	p.ops = append(p.ops, Op{Kind: OpLine, Pts: []Point{{x, y}}})
	p.cur = Point{x, y}
}

func (p *Path) QuadTo(cx, cy, x, y float64) {
	if !p.hasCur {
		p.MoveTo(cx, cy)
	}
	p.ops = append(p.ops, Op{Kind: OpQuad, Pts: []Point{{cx, cy}, {x, y}}})
	p.cur = Point{x, y}
}

// Arc appends a clockwise circular arc from angle a0 to a1 (radians, y
// axis pointing down). A line joins the current point to the arc start.
// Arcs are stored already flattened into line segments.
func (p *Path) Arc(cx, cy, r, a0, a1 float64) {
	sweep := a1 - a0
	if sweep > 2*math.Pi {
		sweep = 2 * math.Pi
	}
	sx, sy := cx+r*math.Cos(a0), cy+r*math.Sin(a0)
	if p.hasCur {
		p.LineTo(sx, sy)
	} else {
		p.MoveTo(sx, sy)
	}
	n := int(math.Ceil(math.Abs(sweep) * math.Sqrt(math.Max(r, 1)) / 2))
	if n < 4 {
		n = 4
	}
	for i := 1; i <= n; i++ {
		a := a0 + sweep*float64(i)/float64(n)
		p.LineTo(cx+r*math.Cos(a), cy+r*math.Sin(a))
	}
}

// Close ends the current subpath. The current point returns to the
// subpath start.
func (p *Path) Close() {
	if !p.hasCur {
		return
	}
	p.ops = append(p.ops, Op{Kind: OpClose})
	p.cur = p.start
}

// RoundedRect builds a closed rectangle whose corners are quadratic
// curves with the rectangle corner as control point. The radius is taken
// as given: one larger than half the shorter side makes the edges cross.
func RoundedRect(x, y, w, h, r float64) *Path {
	p := NewPath()
	p.MoveTo(x+r, y)
	p.LineTo(x+w-r, y)
	p.QuadTo(x+w, y, x+w, y+r)
	p.LineTo(x+w, y+h-r)
	p.QuadTo(x+w, y+h, x+w-r, y+h)
	p.LineTo(x+r, y+h)
	p.QuadTo(x, y+h, x, y+h-r)
	p.LineTo(x, y+r)
	p.QuadTo(x, y, x+r, y)
	p.Close()
	return p
}

func Rect(x, y, w, h float64) *Path {
	p := NewPath()
	p.MoveTo(x, y)
	p.LineTo(x+w, y)
	p.LineTo(x+w, y+h)
	p.LineTo(x, y+h)
	p.Close()
	return p
}

func Circle(cx, cy, r float64) *Path {
	p := NewPath()
	p.Arc(cx, cy, r, 0, 2*math.Pi)
	p.Close()
	return p
}

// Sector is a pie slice: center, arc from a0 to a1, back to center.
func Sector(cx, cy, r, a0, a1 float64) *Path {
	p := NewPath()
	p.MoveTo(cx, cy)
	p.Arc(cx, cy, r, a0, a1)
	p.Close()
	return p
}

// polygons flattens the path into closed point lists, one per subpath.
func (p *Path) polygons() [][]Point {
	var (
		out  [][]Point
		poly []Point
		last Point
		open bool
	)
	flush := func() {
		if len(poly) >= 3 {
			out = append(out, poly)
		}
		poly = nil
	}
	for _, op := range p.ops {
		switch op.Kind {
		case OpMove:
			flush()
			poly = []Point{op.Pts[0]}
			last = op.Pts[0]
			open = true
		case OpLine:
			if !open {
				poly = []Point{last}
				open = true
			}
			poly = append(poly, op.Pts[0])
			last = op.Pts[0]
		case OpQuad:
			if !open {
				poly = []Point{last}
				open = true
			}
			c, e := op.Pts[0], op.Pts[1]
			for i := 1; i <= quadSteps; i++ {
				t := float64(i) / quadSteps
				u := 1 - t
				poly = append(poly, Point{
					X: u*u*last.X + 2*u*t*c.X + t*t*e.X,
					Y: u*u*last.Y + 2*u*t*c.Y + t*t*e.Y,
				})
			}
			last = e
		case OpClose:
			if len(poly) > 0 {
				last = poly[0]
			}
			flush()
			open = false
		}
	}
	flush()
	return out
}

// bounds is the pixel rectangle covering every flattened point, grown by
// one pixel for antialiasing.
func (p *Path) bounds() image.Rectangle {
	var r image.Rectangle
	for _, poly := range p.polygons() {
		for _, pt := range poly {
			px := image.Rect(int(math.Floor(pt.X)), int(math.Floor(pt.Y)), int(math.Ceil(pt.X))+1, int(math.Ceil(pt.Y))+1)
			r = r.Union(px)
		}
	}
	if r.Empty() {
		return r
	}
	return r.Inset(-1)
}

// clipPolygon clips a polygon to the rectangle [0,w]x[0,h]
// (Sutherland-Hodgman). Concave input may leave zero-area seams which
// do not affect coverage.
func clipPolygon(poly []Point, w, h float64) []Point {
	type edge struct {
		inside func(Point) bool
		cross  func(a, b Point) Point
	}
	lerpX := func(a, b Point, x float64) Point {
		t := (x - a.X) / (b.X - a.X)
		return Point{x, a.Y + t*(b.Y-a.Y)}
	}
	lerpY := func(a, b Point, y float64) Point {
		t := (y - a.Y) / (b.Y - a.Y)
		return Point{a.X + t*(b.X-a.X), y}
	}
	edges := []edge{
		{func(p Point) bool { return p.X >= 0 }, func(a, b Point) Point { return lerpX(a, b, 0) }},
		{func(p Point) bool { return p.X <= w }, func(a, b Point) Point { return lerpX(a, b, w) }},
		{func(p Point) bool { return p.Y >= 0 }, func(a, b Point) Point { return lerpY(a, b, 0) }},
		{func(p Point) bool { return p.Y <= h }, func(a, b Point) Point { return lerpY(a, b, h) }},
	}
	out := poly
	for _, e := range edges {
		if len(out) == 0 {
			break
		}
		in := out
		out = make([]Point, 0, len(in)+4)
		prev := in[len(in)-1]
		for _, cur := range in {
			switch {
			case e.inside(cur):
				if !e.inside(prev) {
					out = append(out, e.cross(prev, cur))
				}
				out = append(out, cur)
			case e.inside(prev):
				out = append(out, e.cross(prev, cur))
			}
			prev = cur
		}
	}
	return out
}

// fillPath rasterizes p onto dst using src as the paint source, with src
// coordinates aligned to dst coordinates.
func fillPath(dst draw.Image, p *Path, src image.Image) {
	b := dst.Bounds()
	w, h := float64(b.Dx()), float64(b.Dy())
	z := vector.NewRasterizer(b.Dx(), b.Dy())
	drawn := false
	for _, poly := range p.polygons() {
		for i := range poly {
			poly[i].X -= float64(b.Min.X)
			poly[i].Y -= float64(b.Min.Y)
		}
		clipped := clipPolygon(poly, w, h)
		if len(clipped) < 3 {
			continue
		}
		z.MoveTo(float32(clipped[0].X), float32(clipped[0].Y))
		for _, pt := range clipped[1:] {
			z.LineTo(float32(pt.X), float32(pt.Y))
		}
		z.ClosePath()
		drawn = true
	}
	if drawn {
		z.Draw(dst, b, src, b.Min)
	}
}
