package imagepkg

import (
	"bytes"
	"context"
	"image"
	"net/http"

	"github.com/youruser/posterapp/internal/util"
)

// DownloadImage fetches a picture (a picked search result) and decodes it
// within the byte and pixel limits.
func DownloadImage(ctx context.Context, client *http.Client, url string, maxBytes, maxPixels int64) (image.Image, error) {
	body, err := util.GetBytes(ctx, client, url, maxBytes)
	if err != nil {
		return nil, err
	}
	return DecodeImageLimit(bytes.NewReader(body), maxPixels)
}
