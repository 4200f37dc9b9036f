// Package composer turns a template id, a size and event fields into a
// finished poster on a render surface.
package composer

import (
	"fmt"
	"image"

	"github.com/sirupsen/logrus"

	imagepkg "github.com/youruser/posterapp/internal/image"
	"github.com/youruser/posterapp/internal/poster"
	"github.com/youruser/posterapp/internal/templates"
)

// Driver dispatches renders to the template recipes. It holds only
// immutable configuration and may be shared between goroutines.
type Driver struct {
	palettes     *poster.Registry
	fonts        *imagepkg.Fonts
	maxDimension int
}

// NewDriver validates that every recipe finds its palette roles.
func NewDriver(palettes *poster.Registry, fonts *imagepkg.Fonts) (*Driver, error) {
	if err := templates.Validate(palettes); err != nil {
		return nil, fmt.Errorf("validate palettes: %w", err)
	}
	return &Driver{palettes: palettes, fonts: fonts, maxDimension: poster.MaxDimension}, nil
}

// SetMaxDimension lowers the per-side limit for custom sizes. Values
// outside (0, poster.MaxDimension] restore the default. Call it before
// the driver is shared.
func (d *Driver) SetMaxDimension(n int) {
	if n <= 0 || n > poster.MaxDimension {
		n = poster.MaxDimension
	}
	d.maxDimension = n
}

// NewSurface allocates a surface sized to s that shares the driver fonts.
func (d *Driver) NewSurface(s poster.Size) *imagepkg.Surface {
	return imagepkg.NewSurface(s.Width, s.Height, d.fonts)
}

// Generate repaints surface with a poster. A zero size keeps the
// surface's current dimensions. An unknown template leaves the surface
// untouched.
func (d *Driver) Generate(surface *imagepkg.Surface, id poster.TemplateID, size poster.Size, f poster.EventFields, bg image.Image, opts templates.Options) error {
	recipe, err := d.recipe(id)
	if err != nil {
		return err
	}
	if !size.IsZero() {
		if _, err := poster.CustomSizeWithin(size.Width, size.Height, d.maxDimension); err != nil {
			return err
		}
		surface.Resize(size.Width, size.Height)
	}
	surface.Clear()
	templates.Render(surface, recipe, f.WithDefaults(), bg, opts)

	logrus.WithFields(logrus.Fields{
		"template":   id,
		"width":      surface.Image().Bounds().Dx(),
		"height":     surface.Image().Bounds().Dy(),
		"background": bg != nil,
	}).Debug("poster rendered")
	return nil
}

// Palette returns the colors the template id renders with.
func (d *Driver) Palette(id poster.TemplateID) (poster.Palette, error) {
	return d.palettes.Palette(id)
}

func (d *Driver) recipe(id poster.TemplateID) (templates.Recipe, error) {
	factory, err := templates.Lookup(id)
	if err != nil {
		return nil, err
	}
	palette, err := d.palettes.Palette(id)
	if err != nil {
		return nil, err
	}
	return factory.New(palette), nil
}
