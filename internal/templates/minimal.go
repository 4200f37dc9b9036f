package templates

import (
	"image"

	imagepkg "github.com/youruser/posterapp/internal/image"
	"github.com/youruser/posterapp/internal/poster"
)

var minimalRoles = []poster.Role{
	poster.RoleBackground, poster.RoleOverlayTop, poster.RoleOverlayBottom,
	poster.RoleDecor, poster.RoleAccent, poster.RoleInk, poster.RoleMuted,
	poster.RoleCard,
}

const minimalLeft = 80

// minimal: paper white, faint grid, left aligned type.
type minimal struct {
	p poster.Palette
}

func (m minimal) Background(c Canvas, l Layout, bg image.Image) {
	if backdrop(c, l, m.p, bg) {
		return
	}
	c.FillRect(0, 0, l.W, l.H, imagepkg.Solid(m.p.Color(poster.RoleBackground)), imagepkg.NoShadow)

	step := l.Px(50)
	if step < 1 {
		return
	}
	grid := imagepkg.NewPath()
	for x := 0.0; x < l.W; x += step {
		// one pixel wide line centered on x
		grid.MoveTo(x-0.5, 0)
		grid.LineTo(x+0.5, 0)
		grid.LineTo(x+0.5, l.H)
		grid.LineTo(x-0.5, l.H)
		grid.Close()
	}
	c.FillPath(grid, imagepkg.Solid(m.p.Color(poster.RoleDecor)), imagepkg.NoShadow)
}

func (m minimal) Decorate(c Canvas, l Layout) {
	accent := imagepkg.Solid(m.p.Color(poster.RoleAccent))
	c.FillRect(0, 0, l.Px(12), l.H, accent, imagepkg.NoShadow)
	c.FillRect(0, l.H-l.Px(12), l.W, l.Px(12), accent, imagepkg.NoShadow)
	c.FillRect(l.Px(minimalLeft), l.Px(320), l.Px(80), l.Px(6), accent, imagepkg.NoShadow)
}

func (m minimal) Title(l Layout) Title {
	return Title{
		X:          l.Px(minimalLeft),
		Y:          l.Px(180),
		MaxWidth:   l.W - l.Px(minimalLeft) - l.Px(60),
		LineHeight: l.Px(110),
		Style: imagepkg.TextStyle{
			Font:  imagepkg.Font{Family: imagepkg.Sans, Weight: imagepkg.Bold, Size: l.Fit(100, 0.115)},
			Color: m.p.Color(poster.RoleInk),
		},
	}
}

func (m minimal) Info(c Canvas, l Layout, f poster.EventFields) {
	left := l.Px(minimalLeft)
	width := l.W - left - l.Px(60)
	y := l.Px(450)
	spacing := l.Px(160)

	// the card ends below the last block drawn
	cardH := l.Px(470)
	if f.Details != "" {
		cardH = l.Px(620)
	}
	c.FillPath(imagepkg.RoundedRect(left-l.Px(30), y-l.Px(60), l.W-left, cardH, l.Px(8)),
		imagepkg.Solid(m.p.Color(poster.RoleCard)), imagepkg.NoShadow)

	label := imagepkg.TextStyle{
		Font:  imagepkg.Font{Family: imagepkg.Sans, Weight: imagepkg.Bold, Size: l.Fit(22, 0.026)},
		Color: m.p.Color(poster.RoleAccent),
	}
	value := func(size float64) imagepkg.TextStyle {
		return imagepkg.TextStyle{
			Font:  imagepkg.Font{Family: imagepkg.Sans, Weight: imagepkg.Medium, Size: size},
			Color: m.p.Color(poster.RoleInk),
		}
	}

	c.FillText("DATE", left, y, label)
	c.FillText(f.Date, left, y+l.Px(52), value(l.Fit(44, 0.05)))

	y += spacing
	c.FillText("TIME", left, y, label)
	c.FillText(f.Time, left, y+l.Px(52), value(l.Fit(44, 0.05)))

	y += spacing
	c.FillText("LOCATION", left, y, label)
	imagepkg.WrapText(c, f.Location, left, y+l.Px(52), width, l.Px(48), value(l.Fit(40, 0.046)))

	if f.Details != "" {
		y += l.Px(180)
		imagepkg.WrapText(c, f.Details, left, y, width, l.Px(40), imagepkg.TextStyle{
			Font:  imagepkg.Font{Family: imagepkg.Sans, Weight: imagepkg.Regular, Size: l.Fit(32, 0.037)},
			Color: m.p.Color(poster.RoleMuted),
		})
	}
}

func (m minimal) CallToAction(c Canvas, l Layout) {
	c.FillText("SAVE THE DATE", l.Px(minimalLeft), l.H-l.Px(50), imagepkg.TextStyle{
		Font:  imagepkg.Font{Family: imagepkg.Sans, Weight: imagepkg.Bold, Size: l.Fit(22, 0.026)},
		Color: m.p.Color(poster.RoleAccent),
	})
}
