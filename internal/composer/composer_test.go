package composer

import (
	"image"
	"image/color"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	imagepkg "github.com/youruser/posterapp/internal/image"
	"github.com/youruser/posterapp/internal/poster"
	"github.com/youruser/posterapp/internal/templates"
)

func newDriver(t *testing.T) *Driver {
	t.Helper()
	reg, err := poster.NewRegistry(nil)
	require.NoError(t, err)
	fonts, err := imagepkg.NewFonts()
	require.NoError(t, err)
	d, err := NewDriver(reg, fonts)
	require.NoError(t, err)
	return d
}

var party = poster.EventFields{
	Name:     "Summer Bash",
	Date:     "June 21",
	Time:     "7 PM",
	Location: "Riverside Park",
	Details:  "Food, music and games for everyone",
}

func TestGenerateIsDeterministic(t *testing.T) {
	d := newDriver(t)
	size, err := poster.CustomSize(200, 300)
	require.NoError(t, err)

	for _, id := range poster.Templates() {
		t.Run(string(id), func(t *testing.T) {
			s := d.NewSurface(size)
			defer s.Close()

			require.NoError(t, d.Generate(s, id, size, party, nil, templates.Options{}))
			first := s.Snapshot()
			require.NoError(t, d.Generate(s, id, size, party, nil, templates.Options{}))
			assert.Equal(t, first.Pix, s.Image().Pix)
		})
	}
}

func TestGenerateFillsCanvas(t *testing.T) {
	d := newDriver(t)
	size, err := poster.CustomSize(160, 240)
	require.NoError(t, err)

	for _, id := range poster.Templates() {
		s := d.NewSurface(size)
		require.NoError(t, d.Generate(s, id, size, poster.EventFields{}, nil, templates.Options{}))
		for _, pt := range []image.Point{{0, 0}, {159, 0}, {0, 239}, {159, 239}, {80, 120}} {
			assert.Equal(t, uint8(255), s.Image().RGBAAt(pt.X, pt.Y).A, "%s at %v", id, pt)
		}
		s.Close()
	}
}

func TestGenerateUnknownTemplateLeavesSurface(t *testing.T) {
	d := newDriver(t)
	size, err := poster.CustomSize(120, 180)
	require.NoError(t, err)
	s := d.NewSurface(size)
	defer s.Close()

	require.NoError(t, d.Generate(s, poster.Minimal, size, party, nil, templates.Options{}))
	before := s.Snapshot()

	other, err := poster.CustomSize(300, 300)
	require.NoError(t, err)
	err = d.Generate(s, "neon", other, party, nil, templates.Options{})
	assert.ErrorIs(t, err, poster.ErrUnknownTemplate)
	assert.Equal(t, before.Bounds(), s.Image().Bounds())
	assert.Equal(t, before.Pix, s.Image().Pix)
}

func TestGenerateRejectsInvalidSize(t *testing.T) {
	d := newDriver(t)
	s := d.NewSurface(poster.Size{Width: 10, Height: 10})
	err := d.Generate(s, poster.Modern, poster.Size{Width: -5, Height: 10}, party, nil, templates.Options{})
	assert.ErrorIs(t, err, poster.ErrInvalidSize)
}

func TestGenerateZeroSizeKeepsDimensions(t *testing.T) {
	d := newDriver(t)
	s := d.NewSurface(poster.Size{Width: 90, Height: 130})
	require.NoError(t, d.Generate(s, poster.Retro, poster.Size{}, party, nil, templates.Options{}))
	assert.Equal(t, image.Rect(0, 0, 90, 130), s.Image().Bounds())
}

func TestSessionResizeLeavesNoTrace(t *testing.T) {
	d := newDriver(t)

	sess := NewSession(d)
	defer sess.Close()
	assert.Equal(t, poster.DefaultSize, sess.Size().Name)

	require.NoError(t, sess.SetDimensions(240, 240))
	_, err := sess.Generate(poster.Bold, party, templates.Options{})
	require.NoError(t, err)

	require.NoError(t, sess.SetDimensions(150, 300))
	got, err := sess.Generate(poster.Bold, party, templates.Options{})
	require.NoError(t, err)

	fresh := NewSession(d)
	defer fresh.Close()
	require.NoError(t, fresh.SetDimensions(150, 300))
	want, err := fresh.Generate(poster.Bold, party, templates.Options{})
	require.NoError(t, err)

	assert.Equal(t, image.Rect(0, 0, 150, 300), got.Bounds())
	assert.Equal(t, want.Pix, got.Pix)
}

func TestSessionSetSize(t *testing.T) {
	sess := NewSession(newDriver(t))
	defer sess.Close()

	require.NoError(t, sess.SetSize("social-post"))
	assert.Equal(t, poster.Size{Name: "instagram-post", Width: 1080, Height: 1080}, sess.Size())

	assert.ErrorIs(t, sess.SetSize("billboard"), poster.ErrUnknownSize)
	assert.Equal(t, "instagram-post", sess.Size().Name)

	assert.ErrorIs(t, sess.SetDimensions(0, 10), poster.ErrInvalidSize)
	assert.ErrorIs(t, sess.SetDimensions(100_000, 100_000), poster.ErrInvalidSize)
	assert.Equal(t, "instagram-post", sess.Size().Name)
}

func TestDriverMaxDimension(t *testing.T) {
	d := newDriver(t)
	d.SetMaxDimension(400)
	sess := NewSession(d)
	defer sess.Close()

	require.NoError(t, sess.SetDimensions(400, 300))
	assert.ErrorIs(t, sess.SetDimensions(401, 300), poster.ErrInvalidSize)

	surface := d.NewSurface(poster.Size{Width: 10, Height: 10})
	err := d.Generate(surface, poster.Modern, poster.Size{Width: 500, Height: 10}, poster.EventFields{}, nil, templates.Options{})
	assert.ErrorIs(t, err, poster.ErrInvalidSize)
	assert.Equal(t, 10, surface.Image().Bounds().Dx())
}

func TestSessionBackground(t *testing.T) {
	d := newDriver(t)
	sess := NewSession(d)
	defer sess.Close()
	require.NoError(t, sess.SetDimensions(100, 150))

	plain, err := sess.Generate(poster.Minimal, party, templates.Options{})
	require.NoError(t, err)
	plainCorner := plain.RGBAAt(50, 5)

	bg := image.NewRGBA(image.Rect(0, 0, 8, 8))
	for i := 0; i < len(bg.Pix); i += 4 {
		copy(bg.Pix[i:], []uint8{0, 255, 0, 255})
	}
	sess.SetBackground(bg)
	require.NotNil(t, sess.Background())
	tinted, err := sess.Generate(poster.Minimal, party, templates.Options{})
	require.NoError(t, err)
	assert.NotEqual(t, plainCorner, tinted.RGBAAt(50, 5))

	sess.SetBackground(nil)
	again, err := sess.Generate(poster.Minimal, party, templates.Options{})
	require.NoError(t, err)
	assert.Equal(t, plainCorner, again.RGBAAt(50, 5))
}

func TestWelcome(t *testing.T) {
	sess := NewSession(newDriver(t))
	defer sess.Close()
	require.NoError(t, sess.SetDimensions(1400, 1400))

	img := sess.Welcome()
	// the glow fades out before reaching the corners
	assert.Equal(t, color.RGBA{R: 0x0f, G: 0x0f, B: 0x1e, A: 0xff}, img.RGBAAt(0, 0))
	assert.Equal(t, uint8(255), img.RGBAAt(700, 700).A)
	assert.NotEqual(t, img.RGBAAt(0, 0), img.RGBAAt(700, 560))
}

func TestSessionPresetSwitchToA4(t *testing.T) {
	if testing.Short() {
		t.Skip("renders two a4 canvases")
	}
	d := newDriver(t)

	sess := NewSession(d)
	defer sess.Close()
	require.NoError(t, sess.SetSize("instagram-post"))
	_, err := sess.Generate(poster.Minimal, party, templates.Options{})
	require.NoError(t, err)

	require.NoError(t, sess.SetSize("a4"))
	got, err := sess.Generate(poster.Minimal, party, templates.Options{})
	require.NoError(t, err)
	assert.Equal(t, image.Rect(0, 0, 2480, 3508), got.Bounds())

	fresh := NewSession(d)
	defer fresh.Close()
	require.NoError(t, fresh.SetSize("a4"))
	want, err := fresh.Generate(poster.Minimal, party, templates.Options{})
	require.NoError(t, err)
	assert.Equal(t, want.Pix, got.Pix)
}
