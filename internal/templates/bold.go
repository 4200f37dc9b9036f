package templates

import (
	"image"

	imagepkg "github.com/youruser/posterapp/internal/image"
	"github.com/youruser/posterapp/internal/poster"
)

var boldRoles = []poster.Role{
	poster.RoleGradientStart, poster.RoleGradientEnd,
	poster.RoleOverlayTop, poster.RoleOverlayBottom,
	poster.RoleDecor, poster.RoleDecorAlt,
	poster.RolePrimary, poster.RoleAccent, poster.RoleSecondary,
	poster.RoleText, poster.RoleInk, poster.RoleCard, poster.RolePanel,
}

// bold: bright gradient, corner circles, three cards in a row.
type bold struct {
	p poster.Palette
}

func (b bold) Background(c Canvas, l Layout, bg image.Image) {
	if backdrop(c, l, b.p, bg) {
		return
	}
	grad := imagepkg.NewLinearGradient(0, 0, l.W, l.H, b.p.Color(poster.RoleGradientStart), b.p.Color(poster.RoleGradientEnd))
	c.FillRect(0, 0, l.W, l.H, grad, imagepkg.NoShadow)
}

func (b bold) Decorate(c Canvas, l Layout) {
	c.FillPath(imagepkg.Circle(l.W-l.Px(100), l.Px(150), l.Px(200)), imagepkg.Solid(b.p.Color(poster.RoleDecor)), imagepkg.NoShadow)
	c.FillPath(imagepkg.Circle(l.Px(100), l.H-l.Px(150), l.Px(180)), imagepkg.Solid(b.p.Color(poster.RoleDecorAlt)), imagepkg.NoShadow)
}

func (b bold) Title(l Layout) Title {
	return Title{
		X:          l.W / 2,
		Y:          l.Px(200),
		MaxWidth:   l.W - l.Px(120),
		LineHeight: l.Px(105),
		Style: imagepkg.TextStyle{
			Font:   imagepkg.Font{Family: imagepkg.Sans, Weight: imagepkg.Bold, Size: l.Fit(95, 0.11)},
			Color:  b.p.Color(poster.RoleText),
			Align:  imagepkg.AlignCenter,
			Shadow: imagepkg.Shadow{Color: shade(0.6), Blur: l.Px(30), OffsetX: l.Px(5), OffsetY: l.Px(5)},
		},
	}
}

func (b bold) Info(c Canvas, l Layout, f poster.EventFields) {
	cardY := l.Px(450)
	gap := l.Px(15)
	cardW := (l.W - l.Px(140) - 2*gap) / 3
	cardH := l.Px(200)
	cardShadow := imagepkg.Shadow{Color: shade(0.25), Blur: l.Px(20), OffsetY: l.Px(10)}

	cards := []struct {
		label, value string
		tone         poster.Role
		size, lh     float64
	}{
		{"DATE", f.Date, poster.RolePrimary, l.Fit(24, 0.028), l.Px(28)},
		{"TIME", f.Time, poster.RoleAccent, l.Fit(24, 0.028), l.Px(28)},
		{"PLACE", f.Location, poster.RoleSecondary, l.Fit(22, 0.026), l.Px(26)},
	}
	for i, card := range cards {
		x := l.Px(70) + float64(i)*(cardW+gap)
		cx := x + cardW/2
		c.FillPath(imagepkg.RoundedRect(x, cardY, cardW, cardH, l.Px(20)), imagepkg.Solid(b.p.Color(poster.RoleCard)), cardShadow)
		b.badge(c, l, cx, cardY+l.Px(62), card.label, card.tone)
		imagepkg.WrapText(c, card.value, cx, cardY+l.Px(145), cardW-l.Px(30), card.lh, imagepkg.TextStyle{
			Font:  imagepkg.Font{Family: imagepkg.Sans, Weight: imagepkg.Bold, Size: card.size},
			Color: b.p.Color(poster.RoleInk),
			Align: imagepkg.AlignCenter,
		})
	}

	if f.Details != "" {
		top := cardY + cardH + l.Px(40)
		c.FillPath(imagepkg.RoundedRect(l.Px(70), top, l.W-l.Px(140), l.Px(180), l.Px(20)),
			imagepkg.Solid(b.p.Color(poster.RolePanel)),
			imagepkg.Shadow{Color: shade(0.3), Blur: l.Px(25), OffsetY: l.Px(12)})
		imagepkg.WrapText(c, f.Details, l.W/2, top+l.Px(70), l.W-l.Px(200), l.Px(38), imagepkg.TextStyle{
			Font:  imagepkg.Font{Family: imagepkg.Sans, Weight: imagepkg.Medium, Size: l.Fit(30, 0.035)},
			Color: b.p.Color(poster.RoleInk),
			Align: imagepkg.AlignCenter,
		})
	}
}

// badge is the round icon at the top of each info card.
func (b bold) badge(c Canvas, l Layout, cx, cy float64, label string, tone poster.Role) {
	c.FillPath(imagepkg.Circle(cx, cy, l.Fit(32, 0.04)), imagepkg.Solid(b.p.Color(tone)), imagepkg.NoShadow)
	size := l.Fit(13, 0.016)
	c.FillText(label, cx, cy+size*0.35, imagepkg.TextStyle{
		Font:  imagepkg.Font{Family: imagepkg.Sans, Weight: imagepkg.Bold, Size: size},
		Color: b.p.Color(poster.RoleText),
		Align: imagepkg.AlignCenter,
	})
}

func (b bold) CallToAction(c Canvas, l Layout) {
	c.FillPath(imagepkg.RoundedRect(l.Px(100), l.H-l.Px(180), l.W-l.Px(200), l.Px(110), l.Px(20)),
		imagepkg.Solid(b.p.Color(poster.RoleInk)),
		imagepkg.Shadow{Color: shade(0.4), Blur: l.Px(25), OffsetY: l.Px(12)})
	c.FillText("JOIN US!", l.W/2, l.H-l.Px(108), imagepkg.TextStyle{
		Font:  imagepkg.Font{Family: imagepkg.Sans, Weight: imagepkg.Bold, Size: l.Fit(50, 0.058)},
		Color: b.p.Color(poster.RoleSecondary),
		Align: imagepkg.AlignCenter,
	})
}
