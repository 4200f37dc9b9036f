package templates

import (
	"image"
	"math"

	imagepkg "github.com/youruser/posterapp/internal/image"
	"github.com/youruser/posterapp/internal/poster"
)

var retroRoles = []poster.Role{
	poster.RoleBackground, poster.RoleOverlayTop, poster.RoleOverlayBottom,
	poster.RoleDecor, poster.RoleDecorAlt,
	poster.RolePrimary, poster.RoleSecondary, poster.RoleAccent,
	poster.RoleInk, poster.RoleCard,
}

const retroRays = 16

// retro: cream paper, sunburst, monospace type with hard shadows.
type retro struct {
	p poster.Palette
}

func (r retro) Background(c Canvas, l Layout, bg image.Image) {
	if backdrop(c, l, r.p, bg) {
		return
	}
	c.FillRect(0, 0, l.W, l.H, imagepkg.Solid(r.p.Color(poster.RoleBackground)), imagepkg.NoShadow)
}

func (r retro) Decorate(c Canvas, l Layout) {
	even := imagepkg.Solid(r.p.Color(poster.RoleDecor))
	odd := imagepkg.Solid(r.p.Color(poster.RoleDecorAlt))
	slice := 2 * math.Pi / retroRays
	for i := 0; i < retroRays; i++ {
		paint := even
		if i%2 == 1 {
			paint = odd
		}
		a := slice * float64(i)
		c.FillPath(imagepkg.Sector(l.W/2, 0, l.Px(800), a, a+slice), paint, imagepkg.NoShadow)
	}
}

func (r retro) Title(l Layout) Title {
	return Title{
		X:          l.W / 2,
		Y:          l.Px(230),
		MaxWidth:   l.W - l.Px(100),
		LineHeight: l.Px(120),
		Style: imagepkg.TextStyle{
			Font:   imagepkg.Font{Family: imagepkg.Mono, Weight: imagepkg.Bold, Size: l.Fit(110, 0.125)},
			Color:  r.p.Color(poster.RolePrimary),
			Align:  imagepkg.AlignCenter,
			Shadow: imagepkg.Shadow{Color: r.p.Color(poster.RoleAccent), OffsetX: l.Px(10), OffsetY: l.Px(10)},
		},
	}
}

func (r retro) Info(c Canvas, l Layout, f poster.EventFields) {
	boxY, boxH := l.Px(500), l.Px(500)
	borders := []struct {
		inset, radius float64
		role          poster.Role
	}{
		{0, 30, poster.RolePrimary},
		{10, 25, poster.RoleSecondary},
		{20, 20, poster.RoleCard},
	}
	for _, b := range borders {
		in := l.Px(b.inset)
		c.FillPath(imagepkg.RoundedRect(l.Px(100)+in, boxY+in, l.W-l.Px(200)-2*in, boxH-2*in, l.Px(b.radius)),
			imagepkg.Solid(r.p.Color(b.role)), imagepkg.NoShadow)
	}

	text := func(w imagepkg.Weight, size float64) imagepkg.TextStyle {
		return imagepkg.TextStyle{
			Font:  imagepkg.Font{Family: imagepkg.Mono, Weight: w, Size: size},
			Color: r.p.Color(poster.RoleInk),
			Align: imagepkg.AlignCenter,
		}
	}
	width := l.W - l.Px(300)

	y := boxY + l.Px(110)
	c.FillText(f.Date, l.W/2, y, text(imagepkg.Bold, l.Fit(50, 0.058)))

	y += l.Px(100)
	c.FillText(f.Time, l.W/2, y, text(imagepkg.Bold, l.Fit(50, 0.058)))

	y += l.Px(110)
	imagepkg.WrapText(c, f.Location, l.W/2, y, width, l.Px(52), text(imagepkg.Bold, l.Fit(42, 0.048)))

	if f.Details != "" {
		y += l.Px(120)
		imagepkg.WrapText(c, f.Details, l.W/2, y, width, l.Px(42), text(imagepkg.Regular, l.Fit(34, 0.039)))
	}
}

func (r retro) CallToAction(c Canvas, l Layout) {
	c.FillText("PEACE & LOVE!", l.W/2, l.H-l.Px(80), imagepkg.TextStyle{
		Font:   imagepkg.Font{Family: imagepkg.Mono, Weight: imagepkg.Bold, Size: l.Fit(48, 0.055)},
		Color:  r.p.Color(poster.RolePrimary),
		Align:  imagepkg.AlignCenter,
		Shadow: imagepkg.Shadow{Color: r.p.Color(poster.RoleSecondary), OffsetX: l.Px(6), OffsetY: l.Px(6)},
	})
}
