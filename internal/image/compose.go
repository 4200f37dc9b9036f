package imagepkg

import (
	"bytes"
	"errors"
	"fmt"
	"image"
	"image/draw"
	"io"

	"github.com/disintegration/imaging"
)

// DrawImage paints img stretched over the whole canvas.
func (s *Surface) DrawImage(img image.Image) {
	if img == nil {
		return
	}
	b := s.img.Bounds()
	scaled := imaging.Resize(img, b.Dx(), b.Dy(), imaging.Lanczos)
	draw.Draw(s.img, b, scaled, image.Point{}, draw.Over)
}

// DefaultMaxPixels bounds decoded pictures when no other limit is set.
const DefaultMaxPixels int64 = 40_000_000

var ErrImageTooLarge = errors.New("image dimensions too large")

// DecodeImage decodes an uploaded or downloaded picture, applying its
// EXIF orientation.
func DecodeImage(r io.Reader) (image.Image, error) {
	return DecodeImageLimit(r, DefaultMaxPixels)
}

// DecodeImageLimit is DecodeImage that reads the header first and refuses
// pictures with more than maxPixels pixels before allocating them.
// maxPixels <= 0 means DefaultMaxPixels.
func DecodeImageLimit(r io.Reader, maxPixels int64) (image.Image, error) {
	if maxPixels <= 0 {
		maxPixels = DefaultMaxPixels
	}
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("read image: %w", err)
	}
	cfg, _, err := image.DecodeConfig(bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("decode image header: %w", err)
	}
	if cfg.Width <= 0 || cfg.Height <= 0 || int64(cfg.Width)*int64(cfg.Height) > maxPixels {
		return nil, fmt.Errorf("%w: %dx%d, limit %d pixels", ErrImageTooLarge, cfg.Width, cfg.Height, maxPixels)
	}
	img, err := imaging.Decode(bytes.NewReader(data), imaging.AutoOrientation(true))
	if err != nil {
		return nil, fmt.Errorf("decode image: %w", err)
	}
	return img, nil
}

// EncodePNG returns the PNG encoding of img.
func EncodePNG(img image.Image) ([]byte, error) {
	buf := new(bytes.Buffer)
	if err := imaging.Encode(buf, img, imaging.PNG); err != nil {
		return nil, fmt.Errorf("encode png: %w", err)
	}
	return buf.Bytes(), nil
}
