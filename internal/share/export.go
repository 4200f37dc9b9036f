// Package share builds the download and share artifacts for a finished
// poster: file name, share intents and a QR code for the page link.
package share

import (
	"net/url"
	"strings"

	imagepkg "github.com/youruser/posterapp/internal/image"
	"github.com/youruser/posterapp/internal/util"
)

const (
	Title   = "Event Poster"
	Message = "Check out this event poster!"
)

// FileName is the download name for a poster of the given event.
func FileName(eventName string) string {
	if strings.TrimSpace(eventName) == "" {
		eventName = "event"
	}
	return util.Slug(eventName) + "-poster.png"
}

// Links are share intents for the social platforms. Instagram has no web
// intent: clients share natively or fall back to the download.
type Links struct {
	FileName           string `json:"file_name"`
	WhatsApp           string `json:"whatsapp"`
	Facebook           string `json:"facebook"`
	Twitter            string `json:"twitter"`
	InstagramFallback  string `json:"instagram_fallback"`
	NativeShareTitle   string `json:"native_share_title"`
	NativeShareMessage string `json:"native_share_message"`
}

// BuildLinks returns share intents for an event poster hosted at pageURL.
func BuildLinks(eventName, pageURL string) Links {
	name := strings.TrimSpace(eventName)
	if name == "" {
		name = "Event"
	}
	fb := url.Values{}
	fb.Set("u", pageURL)
	fb.Set("quote", name)

	tw := url.Values{}
	tw.Set("text", "Just created a poster for "+name+"! Check out this free tool:")
	tw.Set("url", pageURL)

	wa := url.Values{}
	wa.Set("text", "Check out this poster!")

	return Links{
		FileName:           FileName(eventName),
		WhatsApp:           "https://wa.me/?" + wa.Encode(),
		Facebook:           "https://www.facebook.com/sharer/sharer.php?" + fb.Encode(),
		Twitter:            "https://twitter.com/intent/tweet?" + tw.Encode(),
		InstagramFallback:  "Download the poster and share it manually on Instagram!",
		NativeShareTitle:   Title,
		NativeShareMessage: Message,
	}
}

// QRCode renders a QR code PNG pointing at pageURL.
func QRCode(pageURL string, size int) ([]byte, error) {
	if size <= 0 {
		size = 400
	}
	return imagepkg.GenerateQRPNG(pageURL, size)
}
