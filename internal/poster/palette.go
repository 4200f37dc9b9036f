package poster

import (
	"errors"
	"fmt"
	"image/color"
)

var (
	ErrUnknownTemplate = errors.New("unknown template")
	ErrMissingRole     = errors.New("palette is missing a color role")
	ErrUnknownRole     = errors.New("unknown color role")
)

// TemplateID names one of the visual recipes.
type TemplateID string

const (
	Modern  TemplateID = "modern"
	Bold    TemplateID = "bold"
	Minimal TemplateID = "minimal"
	Retro   TemplateID = "retro"
)

// Templates lists every known template in display order.
func Templates() []TemplateID {
	return []TemplateID{Modern, Bold, Minimal, Retro}
}

// ParseTemplateID validates a template name.
func ParseTemplateID(s string) (TemplateID, error) {
	for _, id := range Templates() {
		if string(id) == s {
			return id, nil
		}
	}
	return "", fmt.Errorf("%w: %q", ErrUnknownTemplate, s)
}

// Role is a named color slot within a palette.
type Role string

const (
	RoleBackground    Role = "background"
	RoleGradientStart Role = "gradient-start"
	RoleGradientEnd   Role = "gradient-end"
	RoleOverlayTop    Role = "overlay-top"
	RoleOverlayBottom Role = "overlay-bottom"
	RoleDecor         Role = "decor"
	RoleDecorAlt      Role = "decor-alt"
	RolePrimary       Role = "primary"
	RoleSecondary     Role = "secondary"
	RoleAccent        Role = "accent"
	RoleText          Role = "text"
	RoleInk           Role = "ink"
	RoleMuted         Role = "muted"
	RoleCard          Role = "card"
	RolePanel         Role = "panel"
)

var knownRoles = map[Role]bool{
	RoleBackground: true, RoleGradientStart: true, RoleGradientEnd: true,
	RoleOverlayTop: true, RoleOverlayBottom: true, RoleDecor: true,
	RoleDecorAlt: true, RolePrimary: true, RoleSecondary: true,
	RoleAccent: true, RoleText: true, RoleInk: true,
	RoleMuted: true, RoleCard: true, RolePanel: true,
}

// ParseRole validates a role name.
func ParseRole(s string) (Role, error) {
	if r := Role(s); knownRoles[r] {
		return r, nil
	}
	return "", fmt.Errorf("%w: %q", ErrUnknownRole, s)
}

// Palette maps roles to colors. It is read-only once built.
type Palette struct {
	colors map[Role]color.NRGBA
}

// Color returns the color for role, or transparent black when absent.
// Registries are validated up front so renderers never hit the zero case.
func (p Palette) Color(role Role) color.NRGBA {
	return p.colors[role]
}

// Has reports whether role is defined.
func (p Palette) Has(role Role) bool {
	_, ok := p.colors[role]
	return ok
}

// Hex returns the palette as role -> "#RRGGBBAA" strings.
func (p Palette) Hex() map[string]string {
	out := make(map[string]string, len(p.colors))
	for r, c := range p.colors {
		out[string(r)] = FormatColor(c)
	}
	return out
}

var defaultPalettes = map[TemplateID]map[Role]string{
	Modern: {
		RoleGradientStart: "#1A1A2E",
		RoleGradientEnd:   "#16213E",
		RoleOverlayTop:    "#0F0F1EBF",
		RoleOverlayBottom: "#0F0F1EEB",
		RoleDecor:         "#665CEE4D",
		RoleAccent:        "#6C5CE7",
		RoleText:          "#FFFFFF",
		RoleInk:           "#2D3436",
		RoleMuted:         "#7F8C8D",
		RoleCard:          "#FFFFFFFA",
	},
	Bold: {
		RoleGradientStart: "#FF6B6B",
		RoleGradientEnd:   "#4ECDC4",
		RoleOverlayTop:    "#FF6B6BD9",
		RoleOverlayBottom: "#FF6B6BA6",
		RoleDecor:         "#FFE66D40",
		RoleDecorAlt:      "#4ECDC440",
		RolePrimary:       "#FF6B6B",
		RoleAccent:        "#4ECDC4",
		RoleSecondary:     "#FFE66D",
		RoleText:          "#FFFFFF",
		RoleInk:           "#2D3436",
		RoleCard:          "#FFFFFF",
		RolePanel:         "#FFFFFFF2",
	},
	Minimal: {
		RoleBackground:    "#FAFAFA",
		RoleOverlayTop:    "#FFFFFFEB",
		RoleOverlayBottom: "#FFFFFFEB",
		RoleDecor:         "#00000008",
		RoleAccent:        "#E74C3C",
		RoleInk:           "#1A1A1A",
		RoleMuted:         "#4A4A4A",
		RoleCard:          "#FFFFFFB3",
	},
	Retro: {
		RoleBackground:    "#FFF8E7",
		RoleOverlayTop:    "#FFF4E6BF",
		RoleOverlayBottom: "#FFF4E6BF",
		RoleDecor:         "#FFD33D26",
		RoleDecorAlt:      "#FF6B9D26",
		RolePrimary:       "#FF6B9D",
		RoleSecondary:     "#FFD93D",
		RoleAccent:        "#6BCF7F",
		RoleInk:           "#2D3436",
		RoleCard:          "#FFFFFFFA",
	},
}

// Registry holds one palette per template. It never changes after
// NewRegistry returns and is safe for concurrent readers.
type Registry struct {
	palettes map[TemplateID]Palette
}

// NewRegistry builds the default palettes and applies overrides keyed by
// template id and role name.
func NewRegistry(overrides map[string]map[string]string) (*Registry, error) {
	reg := &Registry{palettes: make(map[TemplateID]Palette, len(defaultPalettes))}
	for id, roles := range defaultPalettes {
		colors := make(map[Role]color.NRGBA, len(roles))
		for role, hex := range roles {
			c, err := ParseColor(hex)
			if err != nil {
				return nil, fmt.Errorf("default palette %s/%s: %w", id, role, err)
			}
			colors[role] = c
		}
		reg.palettes[id] = Palette{colors: colors}
	}

	for name, roles := range overrides {
		id, err := ParseTemplateID(name)
		if err != nil {
			return nil, fmt.Errorf("palette override: %w", err)
		}
		p := reg.palettes[id]
		for name, hex := range roles {
			role, err := ParseRole(name)
			if err != nil {
				return nil, fmt.Errorf("palette override %s: %w", id, err)
			}
			c, err := ParseColor(hex)
			if err != nil {
				return nil, fmt.Errorf("palette override %s/%s: %w", id, role, err)
			}
			p.colors[role] = c
		}
	}
	return reg, nil
}

// Palette returns the palette registered for id.
func (r *Registry) Palette(id TemplateID) (Palette, error) {
	p, ok := r.palettes[id]
	if !ok {
		return Palette{}, fmt.Errorf("%w: %q", ErrUnknownTemplate, id)
	}
	return p, nil
}

// Require checks that the palette for id defines every role.
func (r *Registry) Require(id TemplateID, roles ...Role) error {
	p, err := r.Palette(id)
	if err != nil {
		return err
	}
	for _, role := range roles {
		if !p.Has(role) {
			return fmt.Errorf("%w: %s/%s", ErrMissingRole, id, role)
		}
	}
	return nil
}
