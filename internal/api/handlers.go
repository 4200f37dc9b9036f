package api

import (
	"context"
	"errors"
	"fmt"
	"image"
	"net/http"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"github.com/youruser/posterapp/internal/composer"
	imagepkg "github.com/youruser/posterapp/internal/image"
	"github.com/youruser/posterapp/internal/imagesearch"
	"github.com/youruser/posterapp/internal/poster"
	"github.com/youruser/posterapp/internal/recommend"
	"github.com/youruser/posterapp/internal/share"
	"github.com/youruser/posterapp/internal/templates"
	"github.com/youruser/posterapp/internal/util"
)

// User facing messages for failed external calls. The client keeps its
// current selection and lets the user continue by hand.
const (
	msgRecommendFailed = "AI recommendation failed. Please select template manually."
	msgSearchFailed    = "Error loading images!"
	msgNoImages        = "No images found!"
	msgBackgroundError = "Background image could not be loaded."
)

type Recommender interface {
	Recommend(ctx context.Context, req recommend.Request) (recommend.Recommendation, error)
}

type Searcher interface {
	Search(ctx context.Context, query string) ([]imagesearch.Photo, error)
}

// Server carries the dependencies of the HTTP handlers.
type Server struct {
	Driver      *composer.Driver
	Recommender Recommender
	Searcher    Searcher
	// Download fetches picked search results.
	Download *http.Client
	// BackgroundHosts lists the hosts a background_url may point at.
	// Only https is accepted.
	BackgroundHosts []string
	MaxUploadBytes  int64
	// MaxImagePixels bounds decoded backgrounds. Zero means the decoder
	// default.
	MaxImagePixels int64
	DefaultSize    string
	// RequestsPerMin and Burst limit each client on the recommend and
	// search endpoints. Zero disables the limit.
	RequestsPerMin int
	Burst          int
	// TrustedProxies may set X-Forwarded-For. Empty trusts none and the
	// limiter keys on the socket address.
	TrustedProxies []string
}

func health(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}

func sizesHandler(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"sizes": poster.Sizes()})
}

type templateInfo struct {
	ID      poster.TemplateID `json:"id"`
	Palette map[string]string `json:"palette"`
}

// templatesHandler lists the templates with their palettes.
func (s *Server) templatesHandler(c *gin.Context) {
	out := make([]templateInfo, 0, len(poster.Templates()))
	for _, id := range poster.Templates() {
		p, err := s.Driver.Palette(id)
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
			return
		}
		out = append(out, templateInfo{ID: id, Palette: p.Hex()})
	}
	c.JSON(http.StatusOK, gin.H{"templates": out})
}

type posterRequest struct {
	Template      string `json:"template" form:"template"`
	Size          string `json:"size" form:"size"`
	Width         int    `json:"width" form:"width"`
	Height        int    `json:"height" form:"height"`
	BackgroundURL string `json:"background_url" form:"background_url"`
	poster.EventFields
	templates.Options
}

// posterHandler renders a poster and returns it as a PNG download.
func (s *Server) posterHandler(c *gin.Context) {
	var req posterRequest
	if err := c.ShouldBind(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	if req.Template == "" {
		req.Template = string(poster.Modern)
	}
	id, err := poster.ParseTemplateID(req.Template)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	sess := composer.NewSession(s.Driver)
	defer sess.Close()
	if err := s.applySize(sess, req.Size, req.Width, req.Height); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	bg, status, err := s.background(c, req.BackgroundURL)
	if err != nil {
		logrus.WithError(err).Warn("background image rejected")
		c.JSON(status, gin.H{"error": msgBackgroundError, "detail": err.Error()})
		return
	}
	sess.SetBackground(bg)

	img, err := sess.Generate(id, req.EventFields, req.Options)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	s.writePNG(c, img, share.FileName(req.Name))
}

// welcomeHandler renders the intro screen at the requested size.
func (s *Server) welcomeHandler(c *gin.Context) {
	sess := composer.NewSession(s.Driver)
	defer sess.Close()
	if err := s.applySize(sess, c.Query("size"), 0, 0); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	s.writePNG(c, sess.Welcome(), "")
}

func (s *Server) applySize(sess *composer.Session, name string, width, height int) error {
	if width != 0 || height != 0 {
		return sess.SetDimensions(width, height)
	}
	if name == "" {
		name = s.DefaultSize
	}
	if name == "" {
		name = poster.DefaultSize
	}
	return sess.SetSize(name)
}

// background returns the uploaded file, the picked search result, or nil.
func (s *Server) background(c *gin.Context, pickedURL string) (image.Image, int, error) {
	if strings.HasPrefix(c.ContentType(), "multipart/") {
		fh, err := c.FormFile("background")
		switch {
		case errors.Is(err, http.ErrMissingFile):
		case err != nil:
			return nil, http.StatusBadRequest, err
		default:
			if s.MaxUploadBytes > 0 && fh.Size > s.MaxUploadBytes {
				return nil, http.StatusRequestEntityTooLarge, fmt.Errorf("upload is %d bytes, limit %d", fh.Size, s.MaxUploadBytes)
			}
			f, err := fh.Open()
			if err != nil {
				return nil, http.StatusBadRequest, err
			}
			defer f.Close()
			img, err := imagepkg.DecodeImageLimit(f, s.MaxImagePixels)
			if errors.Is(err, imagepkg.ErrImageTooLarge) {
				return nil, http.StatusRequestEntityTooLarge, err
			}
			if err != nil {
				return nil, http.StatusBadRequest, err
			}
			return img, http.StatusOK, nil
		}
	}
	if pickedURL == "" {
		return nil, http.StatusOK, nil
	}
	allow := util.HostAllowlist(s.BackgroundHosts)
	u, err := allow.Check(pickedURL)
	if err != nil {
		return nil, http.StatusBadRequest, err
	}
	client := s.Download
	if client == nil {
		client = util.NewClient(0)
	}
	img, err := imagepkg.DownloadImage(c.Request.Context(), allow.Client(client), u.String(), s.MaxUploadBytes, s.MaxImagePixels)
	switch {
	case errors.Is(err, imagepkg.ErrImageTooLarge), errors.Is(err, util.ErrTooLarge):
		return nil, http.StatusRequestEntityTooLarge, err
	case errors.Is(err, util.ErrHostNotAllowed):
		return nil, http.StatusBadRequest, err
	case err != nil:
		return nil, http.StatusBadGateway, err
	}
	return img, http.StatusOK, nil
}

func (s *Server) writePNG(c *gin.Context, img image.Image, fileName string) {
	b, err := imagepkg.EncodePNG(img)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	if fileName != "" {
		c.Header("Content-Disposition", fmt.Sprintf("attachment; filename=%q", fileName))
	}
	c.Data(http.StatusOK, "image/png", b)
}

func (s *Server) recommendHandler(c *gin.Context) {
	var req recommend.Request
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	rec, err := s.Recommender.Recommend(c.Request.Context(), req)
	if errors.Is(err, recommend.ErrMissingEventName) {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Please enter an event name first!"})
		return
	}
	if errors.Is(err, recommend.ErrNotConfigured) {
		c.JSON(http.StatusServiceUnavailable, gin.H{"error": msgRecommendFailed})
		return
	}
	if err != nil {
		logrus.WithError(err).Error("template recommendation failed")
		c.JSON(http.StatusBadGateway, gin.H{"error": msgRecommendFailed})
		return
	}
	c.JSON(http.StatusOK, rec)
}

func (s *Server) searchHandler(c *gin.Context) {
	photos, err := s.Searcher.Search(c.Request.Context(), c.Query("query"))
	if errors.Is(err, imagesearch.ErrEmptyQuery) {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Please enter a search term"})
		return
	}
	if errors.Is(err, imagesearch.ErrNotConfigured) {
		c.JSON(http.StatusServiceUnavailable, gin.H{"error": msgSearchFailed})
		return
	}
	if err != nil {
		logrus.WithError(err).Error("image search failed")
		c.JSON(http.StatusBadGateway, gin.H{"error": msgSearchFailed})
		return
	}
	resp := gin.H{"count": len(photos), "results": photos}
	if len(photos) == 0 {
		resp["message"] = msgNoImages
	}
	c.JSON(http.StatusOK, resp)
}

func suggestionsHandler(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"suggestions": imagesearch.Suggestions(c.Query("q"))})
}

func shareHandler(c *gin.Context) {
	var req struct {
		EventName string `json:"event_name"`
		PageURL   string `json:"page_url" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, share.BuildLinks(req.EventName, req.PageURL))
}

// qrHandler returns a PNG QR code for the "url" query param.
func qrHandler(c *gin.Context) {
	text := c.Query("url")
	if text == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "url is required"})
		return
	}
	size := 400
	if v, err := strconv.Atoi(c.Query("size")); err == nil && v > 0 && v <= 2048 {
		size = v
	}
	b, err := share.QRCode(text, size)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.Data(http.StatusOK, "image/png", b)
}
