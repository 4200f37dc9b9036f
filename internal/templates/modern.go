package templates

import (
	"image"

	imagepkg "github.com/youruser/posterapp/internal/image"
	"github.com/youruser/posterapp/internal/poster"
)

var modernRoles = []poster.Role{
	poster.RoleGradientStart, poster.RoleGradientEnd,
	poster.RoleOverlayTop, poster.RoleOverlayBottom,
	poster.RoleDecor, poster.RoleAccent, poster.RoleText,
	poster.RoleInk, poster.RoleMuted, poster.RoleCard,
}

const modernMargin = 120

// modern: dark gradient, violet accents, one white card.
type modern struct {
	p poster.Palette
}

func (m modern) Background(c Canvas, l Layout, bg image.Image) {
	if backdrop(c, l, m.p, bg) {
		return
	}
	grad := imagepkg.NewLinearGradient(0, 0, l.W, l.H, m.p.Color(poster.RoleGradientStart), m.p.Color(poster.RoleGradientEnd))
	c.FillRect(0, 0, l.W, l.H, grad, imagepkg.NoShadow)
	c.FillRect(0, 0, l.Px(8), l.H, imagepkg.Solid(m.p.Color(poster.RoleDecor)), imagepkg.NoShadow)
}

func (m modern) Decorate(c Canvas, l Layout) {
	accent := imagepkg.Solid(m.p.Color(poster.RoleAccent))
	bar := l.Px(120)
	c.FillRect((l.W-bar)/2, l.Px(modernMargin+80), bar, l.Px(4), accent, imagepkg.NoShadow)
	c.FillRect(0, l.H-l.Px(8), l.W, l.Px(8), accent, imagepkg.NoShadow)
}

func (m modern) Title(l Layout) Title {
	return Title{
		X:          l.W / 2,
		Y:          l.Px(modernMargin),
		MaxWidth:   l.W - l.Px(140),
		LineHeight: l.Px(95),
		Style: imagepkg.TextStyle{
			Font:   imagepkg.Font{Family: imagepkg.Sans, Weight: imagepkg.Bold, Size: l.Fit(85, 0.095)},
			Color:  m.p.Color(poster.RoleText),
			Align:  imagepkg.AlignCenter,
			Shadow: imagepkg.Shadow{Color: shade(0.4), Blur: l.Px(20), OffsetY: l.Px(4)},
		},
	}
}

func (m modern) Info(c Canvas, l Layout, f poster.EventFields) {
	cardX, cardY := l.Px(80), l.Px(modernMargin)+l.Px(200)
	cardW := l.W - l.Px(160)
	pad := l.Px(60)
	c.FillPath(imagepkg.RoundedRect(cardX, cardY, cardW, l.Px(600), l.Px(16)),
		imagepkg.Solid(m.p.Color(poster.RoleCard)),
		imagepkg.Shadow{Color: shade(0.3), Blur: l.Px(40), OffsetY: l.Px(15)})

	left := cardX + pad
	label := imagepkg.TextStyle{
		Font:  imagepkg.Font{Family: imagepkg.Sans, Weight: imagepkg.Medium, Size: l.Fit(20, 0.025)},
		Color: m.p.Color(poster.RoleAccent),
	}
	value := func(w imagepkg.Weight, size float64) imagepkg.TextStyle {
		return imagepkg.TextStyle{
			Font:  imagepkg.Font{Family: imagepkg.Sans, Weight: w, Size: size},
			Color: m.p.Color(poster.RoleInk),
		}
	}

	y := cardY + l.Px(80)
	c.FillText("DATE", left, y, label)
	c.FillText(f.Date, left, y+l.Px(45), value(imagepkg.Bold, l.Fit(42, 0.048)))

	y += l.Px(130)
	c.FillText("TIME", left, y, label)
	c.FillText(f.Time, left, y+l.Px(42), value(imagepkg.Medium, l.Fit(38, 0.045)))

	y += l.Px(130)
	c.FillText("LOCATION", left, y, label)
	imagepkg.WrapText(c, f.Location, left, y+l.Px(42), cardW-2*pad, l.Px(42), value(imagepkg.Medium, l.Fit(35, 0.042)))

	if f.Details != "" {
		y += l.Px(150)
		details := value(imagepkg.Regular, l.Fit(28, 0.033))
		details.Color = m.p.Color(poster.RoleMuted)
		imagepkg.WrapText(c, f.Details, left, y, cardW-2*pad, l.Px(36), details)
	}
}

func (m modern) CallToAction(c Canvas, l Layout) {
	c.FillText("ALL WELCOME", l.W/2, l.H-l.Px(80), imagepkg.TextStyle{
		Font:  imagepkg.Font{Family: imagepkg.Sans, Weight: imagepkg.Bold, Size: l.Fit(24, 0.028)},
		Color: m.p.Color(poster.RoleText),
		Align: imagepkg.AlignCenter,
	})
}
