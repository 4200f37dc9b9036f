package composer

import (
	"image/color"

	imagepkg "github.com/youruser/posterapp/internal/image"
)

var (
	welcomeBackground = color.NRGBA{R: 0x0f, G: 0x0f, B: 0x1e, A: 0xff}
	welcomeGlow       = color.NRGBA{R: 102, G: 92, B: 238, A: 38}
	welcomeTitle      = color.NRGBA{R: 0xe8, G: 0xe9, B: 0xf3, A: 0xff}
	welcomeBody       = color.NRGBA{R: 0xb8, G: 0xb9, B: 0xc7, A: 0xff}
	welcomeHint       = color.NRGBA{R: 0xec, G: 0xc8, B: 0x27, A: 0xff}
)

// Welcome paints the screen shown before the first poster is generated.
func (d *Driver) Welcome(s *imagepkg.Surface) {
	w, h := s.Width(), s.Height()
	cx, cy := w/2, h/2
	s.FillRect(0, 0, w, h, imagepkg.Solid(welcomeBackground), imagepkg.NoShadow)
	glow := imagepkg.NewRadialGradient(cx, cy, 100, 600, welcomeGlow, color.NRGBA{R: 102, G: 92, B: 238})
	s.FillRect(0, 0, w, h, glow, imagepkg.NoShadow)

	text := func(weight imagepkg.Weight, size float64, c color.NRGBA) imagepkg.TextStyle {
		return imagepkg.TextStyle{
			Font:  imagepkg.Font{Family: imagepkg.Sans, Weight: weight, Size: size},
			Color: c,
			Align: imagepkg.AlignCenter,
		}
	}
	s.FillText("Event Poster Generator", cx, cy-100, text(imagepkg.Bold, 50, welcomeTitle))
	body := text(imagepkg.Regular, 30, welcomeBody)
	s.FillText("Fill in your event details", cx, cy, body)
	s.FillText("Choose a template", cx, cy+50, body)
	s.FillText("Then click Generate!", cx, cy+100, body)
	s.FillText("Start here", cx, cy+180, text(imagepkg.Bold, 25, welcomeHint))
}
