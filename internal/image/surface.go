package imagepkg

import (
	"image"
	"image/draw"
	"math"

	"github.com/disintegration/imaging"
	"golang.org/x/image/font"
	"golang.org/x/image/math/fixed"
)

// Surface is a raster canvas. Every drawing call takes its complete
// style as arguments. A Surface is not safe for concurrent use.
type Surface struct {
	img   *image.RGBA
	fonts *Fonts
	faces map[Font]font.Face
}

// NewSurface allocates a transparent canvas of the given size.
func NewSurface(width, height int, fonts *Fonts) *Surface {
	return &Surface{
		img:   image.NewRGBA(image.Rect(0, 0, width, height)),
		fonts: fonts,
		faces: make(map[Font]font.Face),
	}
}

// Resize reallocates the pixel buffer when the dimensions change and
// reports whether it did. The new buffer is transparent.
func (s *Surface) Resize(width, height int) bool {
	b := s.img.Bounds()
	if b.Dx() == width && b.Dy() == height {
		return false
	}
	s.img = image.NewRGBA(image.Rect(0, 0, width, height))
	return true
}

// Clear resets every pixel to transparent black.
func (s *Surface) Clear() {
	clear(s.img.Pix)
}

func (s *Surface) Width() float64  { return float64(s.img.Bounds().Dx()) }
func (s *Surface) Height() float64 { return float64(s.img.Bounds().Dy()) }

// Image returns the backing image. It is overwritten by the next render.
func (s *Surface) Image() *image.RGBA {
	return s.img
}

// Snapshot returns a copy of the current pixels.
func (s *Surface) Snapshot() *image.RGBA {
	out := image.NewRGBA(s.img.Bounds())
	copy(out.Pix, s.img.Pix)
	return out
}

func (s *Surface) FillRect(x, y, w, h float64, paint image.Image, sh Shadow) {
	s.FillPath(Rect(x, y, w, h), paint, sh)
}

func (s *Surface) FillPath(p *Path, paint image.Image, sh Shadow) {
	s.withShadow(sh, p.bounds(), func(dst *image.RGBA) {
		fillPath(dst, p, paint)
	})
}

// FillText draws a single line with its baseline at y. With AlignCenter
// x is the horizontal center of the line, otherwise its left edge.
func (s *Surface) FillText(text string, x, y float64, st TextStyle) {
	face := s.face(st.Font)
	if st.Align == AlignCenter {
		x -= measure(face, text) / 2
	}
	dot := fixed.Point26_6{
		X: fixed.Int26_6(math.Round(x * 64)),
		Y: fixed.Int26_6(math.Round(y * 64)),
	}
	s.withShadow(st.Shadow, textBounds(face, text, dot), func(dst *image.RGBA) {
		d := &font.Drawer{
			Dst:  dst,
			Src:  image.NewUniform(st.Color),
			Face: face,
			Dot:  dot,
		}
		d.DrawString(text)
	})
}

// MeasureText returns the advance width of text in pixels.
func (s *Surface) MeasureText(text string, f Font) float64 {
	return measure(s.face(f), text)
}

// Close releases the cached font faces.
func (s *Surface) Close() error {
	for k, f := range s.faces {
		f.Close()
		delete(s.faces, k)
	}
	return nil
}

func (s *Surface) face(f Font) font.Face {
	if face, ok := s.faces[f]; ok {
		return face
	}
	face := s.fonts.newFace(f)
	s.faces[f] = face
	return face
}

func measure(face font.Face, text string) float64 {
	return float64(font.MeasureString(face, text)) / 64
}

// textBounds is the pixel rectangle text covers when drawn at dot, grown
// by one pixel.
func textBounds(face font.Face, text string, dot fixed.Point26_6) image.Rectangle {
	b, _ := font.BoundString(face, text)
	r := image.Rect(
		(dot.X + b.Min.X).Floor(), (dot.Y + b.Min.Y).Floor(),
		(dot.X + b.Max.X).Ceil(), (dot.Y + b.Max.Y).Ceil(),
	)
	if r.Empty() {
		return r
	}
	return r.Inset(-1)
}

// withShadow runs paint directly on the canvas, or, when sh is visible,
// on a scratch layer covering area whose alpha casts the shadow before
// the layer itself is composited. area must hold everything paint draws.
func (s *Surface) withShadow(sh Shadow, area image.Rectangle, paint func(dst *image.RGBA)) {
	if !sh.visible() {
		paint(s.img)
		return
	}
	area = area.Intersect(s.img.Bounds())
	if area.Empty() {
		return
	}
	layer := image.NewRGBA(area)
	paint(layer)
	s.castShadow(layer, sh)
	draw.Draw(s.img, area, layer, area.Min, draw.Over)
}

func (s *Surface) castShadow(layer *image.RGBA, sh Shadow) {
	ob := opaqueBounds(layer)
	if ob.Empty() {
		return
	}
	sigma := sh.Blur / 2
	pad := int(math.Ceil(sigma*3)) + 1
	region := ob.Inset(-pad)

	mask := image.NewNRGBA(image.Rect(0, 0, region.Dx(), region.Dy()))
	for i := 0; i < len(mask.Pix); i += 4 {
		mask.Pix[i+0] = sh.Color.R
		mask.Pix[i+1] = sh.Color.G
		mask.Pix[i+2] = sh.Color.B
	}
	for y := ob.Min.Y; y < ob.Max.Y; y++ {
		for x := ob.Min.X; x < ob.Max.X; x++ {
			a := layer.Pix[layer.PixOffset(x, y)+3]
			if a == 0 {
				continue
			}
			mask.Pix[mask.PixOffset(x-region.Min.X, y-region.Min.Y)+3] = uint8(uint32(a) * uint32(sh.Color.A) / 255)
		}
	}

	var shadow image.Image = mask
	if sigma > 0 {
		shadow = imaging.Blur(mask, sigma)
	}
	off := image.Pt(int(math.Round(sh.OffsetX)), int(math.Round(sh.OffsetY)))
	draw.Draw(s.img, region.Add(off), shadow, image.Point{}, draw.Over)
}

// opaqueBounds is the smallest rectangle holding every non-transparent
// pixel of img.
func opaqueBounds(img *image.RGBA) image.Rectangle {
	b := img.Bounds()
	minX, minY, maxX, maxY := b.Max.X, b.Max.Y, b.Min.X-1, b.Min.Y-1
	for y := b.Min.Y; y < b.Max.Y; y++ {
		row := img.Pix[img.PixOffset(b.Min.X, y):img.PixOffset(b.Max.X-1, y)+4]
		for x := 0; x < b.Dx(); x++ {
			if row[x*4+3] == 0 {
				continue
			}
			px := b.Min.X + x
			minX, maxX = min(minX, px), max(maxX, px)
			minY, maxY = min(minY, y), max(maxY, y)
		}
	}
	if maxX < minX {
		return image.Rectangle{}
	}
	return image.Rect(minX, minY, maxX+1, maxY+1)
}
