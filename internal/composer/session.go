package composer

import (
	"image"

	imagepkg "github.com/youruser/posterapp/internal/image"
	"github.com/youruser/posterapp/internal/poster"
	"github.com/youruser/posterapp/internal/templates"
)

// Session is one user's editing state: the surface, the current size and
// the chosen background image. It lives in memory only.
type Session struct {
	driver     *Driver
	surface    *imagepkg.Surface
	size       poster.Size
	background image.Image
}

// NewSession starts a session at the default print size.
func NewSession(d *Driver) *Session {
	size, _ := poster.LookupSize(poster.DefaultSize)
	return &Session{driver: d, surface: d.NewSurface(size), size: size}
}

// Size returns the current canvas size.
func (s *Session) Size() poster.Size {
	return s.size
}

// SetSize switches to a catalog preset.
func (s *Session) SetSize(name string) error {
	size, err := poster.LookupSize(name)
	if err != nil {
		return err
	}
	s.resize(size)
	return nil
}

// SetDimensions applies an explicit override, limited to the driver's
// maximum side length.
func (s *Session) SetDimensions(width, height int) error {
	size, err := poster.CustomSizeWithin(width, height, s.driver.maxDimension)
	if err != nil {
		return err
	}
	s.resize(size)
	return nil
}

func (s *Session) resize(size poster.Size) {
	s.size = size
	s.surface.Resize(size.Width, size.Height)
}

// SetBackground replaces the background image; nil removes it.
func (s *Session) SetBackground(img image.Image) {
	s.background = img
}

// Background returns the current background image, if any.
func (s *Session) Background() image.Image {
	return s.background
}

// Generate renders a poster at the session size and returns the surface
// image, which stays owned by the session.
func (s *Session) Generate(id poster.TemplateID, f poster.EventFields, opts templates.Options) (*image.RGBA, error) {
	if err := s.driver.Generate(s.surface, id, s.size, f, s.background, opts); err != nil {
		return nil, err
	}
	return s.surface.Image(), nil
}

// Welcome paints the intro screen.
func (s *Session) Welcome() *image.RGBA {
	s.surface.Clear()
	s.driver.Welcome(s.surface)
	return s.surface.Image()
}

// Close releases font faces held by the surface.
func (s *Session) Close() error {
	return s.surface.Close()
}
