package api

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"image"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/youruser/posterapp/internal/composer"
	imagepkg "github.com/youruser/posterapp/internal/image"
	"github.com/youruser/posterapp/internal/imagesearch"
	"github.com/youruser/posterapp/internal/poster"
	"github.com/youruser/posterapp/internal/recommend"
)

type fakeRecommender struct {
	rec recommend.Recommendation
	err error
}

func (f fakeRecommender) Recommend(_ context.Context, req recommend.Request) (recommend.Recommendation, error) {
	if strings.TrimSpace(req.EventName) == "" {
		return recommend.Recommendation{}, recommend.ErrMissingEventName
	}
	return f.rec, f.err
}

type fakeSearcher struct {
	photos []imagesearch.Photo
	err    error
}

func (f fakeSearcher) Search(_ context.Context, query string) ([]imagesearch.Photo, error) {
	if strings.TrimSpace(query) == "" {
		return nil, imagesearch.ErrEmptyQuery
	}
	return f.photos, f.err
}

func newTestServer(t *testing.T) *Server {
	t.Helper()
	gin.SetMode(gin.TestMode)
	reg, err := poster.NewRegistry(nil)
	require.NoError(t, err)
	fonts, err := imagepkg.NewFonts()
	require.NoError(t, err)
	d, err := composer.NewDriver(reg, fonts)
	require.NoError(t, err)
	return &Server{
		Driver:          d,
		Recommender:     fakeRecommender{rec: recommend.Recommendation{Template: poster.Bold, Text: "bold - fun"}},
		Searcher:        fakeSearcher{photos: []imagesearch.Photo{{ID: "a"}, {ID: "b"}}},
		MaxUploadBytes:  1 << 20,
		BackgroundHosts: []string{"images.unsplash.com"},
	}
}

func newRouter(t *testing.T, s *Server) *gin.Engine {
	t.Helper()
	r, err := NewRouter(s)
	require.NoError(t, err)
	return r
}

func serve(t *testing.T, s *Server, req *http.Request) *httptest.ResponseRecorder {
	t.Helper()
	w := httptest.NewRecorder()
	newRouter(t, s).ServeHTTP(w, req)
	return w
}

func jsonRequest(method, target string, body any) *http.Request {
	b, _ := json.Marshal(body)
	req := httptest.NewRequest(method, target, bytes.NewReader(b))
	req.Header.Set("Content-Type", "application/json")
	return req
}

func decodePNG(t *testing.T, w *httptest.ResponseRecorder) image.Image {
	t.Helper()
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	assert.Equal(t, "image/png", w.Header().Get("Content-Type"))
	img, err := imagepkg.DecodeImage(bytes.NewReader(w.Body.Bytes()))
	require.NoError(t, err)
	return img
}

func solidPNG(t *testing.T, w, h int) []byte {
	t.Helper()
	img := image.NewRGBA(image.Rect(0, 0, w, h))
	for i := 0; i < len(img.Pix); i += 4 {
		copy(img.Pix[i:], []uint8{200, 30, 30, 255})
	}
	b, err := imagepkg.EncodePNG(img)
	require.NoError(t, err)
	return b
}

func TestHealthAndCatalogs(t *testing.T) {
	s := newTestServer(t)

	w := serve(t, s, httptest.NewRequest(http.MethodGet, "/api/health", nil))
	assert.Equal(t, http.StatusOK, w.Code)
	assert.NotEmpty(t, w.Header().Get(requestIDHeader))

	w = serve(t, s, httptest.NewRequest(http.MethodGet, "/api/sizes", nil))
	var sizes struct {
		Sizes []poster.Size `json:"sizes"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &sizes))
	assert.Len(t, sizes.Sizes, 5)

	w = serve(t, s, httptest.NewRequest(http.MethodGet, "/api/templates", nil))
	var tpl struct {
		Templates []templateInfo `json:"templates"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &tpl))
	require.Len(t, tpl.Templates, 4)
	assert.Equal(t, poster.Modern, tpl.Templates[0].ID)
	assert.Equal(t, "#6C5CE7FF", tpl.Templates[0].Palette["accent"])
}

func TestRequestIDIsEchoed(t *testing.T) {
	req := httptest.NewRequest(http.MethodGet, "/api/health", nil)
	req.Header.Set(requestIDHeader, "abc-123")
	w := serve(t, newTestServer(t), req)
	assert.Equal(t, "abc-123", w.Header().Get(requestIDHeader))
}

func TestCORSPreflight(t *testing.T) {
	req := httptest.NewRequest(http.MethodOptions, "/api/poster", nil)
	req.Header.Set("Origin", "https://posters.example.com")
	req.Header.Set("Access-Control-Request-Method", http.MethodPost)
	req.Header.Set("Access-Control-Request-Headers", "Content-Type")
	w := serve(t, newTestServer(t), req)
	assert.Equal(t, http.StatusNoContent, w.Code)
	assert.Equal(t, "*", w.Header().Get("Access-Control-Allow-Origin"))
	assert.Contains(t, w.Header().Get("Access-Control-Allow-Methods"), http.MethodPost)

	req = httptest.NewRequest(http.MethodGet, "/api/health", nil)
	req.Header.Set("Origin", "https://posters.example.com")
	w = serve(t, newTestServer(t), req)
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "*", w.Header().Get("Access-Control-Allow-Origin"))
	assert.Contains(t, w.Header().Get("Access-Control-Expose-Headers"), "Content-Disposition")
}

func TestPosterJSON(t *testing.T) {
	w := serve(t, newTestServer(t), jsonRequest(http.MethodPost, "/api/poster", map[string]any{
		"template":   "retro",
		"width":      160,
		"height":     240,
		"event_name": "Summer Bash",
		"event_date": "June 21",
	}))
	img := decodePNG(t, w)
	assert.Equal(t, image.Rect(0, 0, 160, 240), img.Bounds())
	assert.Equal(t, `attachment; filename="summer-bash-poster.png"`, w.Header().Get("Content-Disposition"))
}

func TestPosterDefaultsToModern(t *testing.T) {
	w := serve(t, newTestServer(t), jsonRequest(http.MethodPost, "/api/poster", map[string]any{
		"width": 100, "height": 150,
	}))
	decodePNG(t, w)
	assert.Equal(t, `attachment; filename="event-poster.png"`, w.Header().Get("Content-Disposition"))
}

func TestPosterBadInput(t *testing.T) {
	s := newTestServer(t)
	tests := []struct {
		name string
		body map[string]any
	}{
		{"unknown template", map[string]any{"template": "neon", "width": 100, "height": 100}},
		{"unknown size", map[string]any{"size": "billboard"}},
		{"negative width", map[string]any{"width": -10, "height": 100}},
		{"oversized width", map[string]any{"width": 1_000_000, "height": 100}},
		{"oversized height", map[string]any{"width": 100, "height": poster.MaxDimension + 1}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := serve(t, s, jsonRequest(http.MethodPost, "/api/poster", tt.body))
			assert.Equal(t, http.StatusBadRequest, w.Code)
		})
	}
}

func multipartPoster(t *testing.T, fields map[string]string, file []byte) *http.Request {
	t.Helper()
	var buf bytes.Buffer
	mw := multipart.NewWriter(&buf)
	for k, v := range fields {
		require.NoError(t, mw.WriteField(k, v))
	}
	if file != nil {
		fw, err := mw.CreateFormFile("background", "bg.png")
		require.NoError(t, err)
		_, err = fw.Write(file)
		require.NoError(t, err)
	}
	require.NoError(t, mw.Close())
	req := httptest.NewRequest(http.MethodPost, "/api/poster", &buf)
	req.Header.Set("Content-Type", mw.FormDataContentType())
	return req
}

func TestPosterMultipartUpload(t *testing.T) {
	s := newTestServer(t)
	fields := map[string]string{
		"template":     "minimal",
		"width":        "120",
		"height":       "180",
		"event_name":   "Gallery Opening",
		"title_offset": "-10",
	}

	withBG := decodePNG(t, serve(t, s, multipartPoster(t, fields, solidPNG(t, 10, 10))))
	plain := decodePNG(t, serve(t, s, multipartPoster(t, fields, nil)))

	assert.Equal(t, image.Rect(0, 0, 120, 180), withBG.Bounds())
	assert.NotEqual(t, plain.At(60, 5), withBG.At(60, 5))
}

func TestPosterUploadLimits(t *testing.T) {
	s := newTestServer(t)
	fields := map[string]string{"width": "100", "height": "100"}

	s.MaxUploadBytes = 16
	w := serve(t, s, multipartPoster(t, fields, solidPNG(t, 10, 10)))
	assert.Equal(t, http.StatusRequestEntityTooLarge, w.Code)

	s.MaxUploadBytes = 1 << 20
	w = serve(t, s, multipartPoster(t, fields, []byte("not an image")))
	assert.Equal(t, http.StatusBadRequest, w.Code)

	s.MaxImagePixels = 50
	w = serve(t, s, multipartPoster(t, fields, solidPNG(t, 10, 10)))
	assert.Equal(t, http.StatusRequestEntityTooLarge, w.Code)
	assert.Contains(t, w.Body.String(), "image dimensions too large")
}

func TestPosterCustomSizeLimitedByDriver(t *testing.T) {
	s := newTestServer(t)
	s.Driver.SetMaxDimension(300)

	w := serve(t, s, jsonRequest(http.MethodPost, "/api/poster", map[string]any{"width": 300, "height": 200}))
	decodePNG(t, w)

	w = serve(t, s, jsonRequest(http.MethodPost, "/api/poster", map[string]any{"width": 301, "height": 200}))
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Contains(t, w.Body.String(), "invalid poster dimensions")
}

func TestPosterBackgroundURL(t *testing.T) {
	photo := solidPNG(t, 6, 6)
	upstream := httptest.NewTLSServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case "/photo.png":
			_, _ = w.Write(photo)
		case "/moved.png":
			http.Redirect(w, r, "https://metadata.internal/latest", http.StatusFound)
		default:
			http.NotFound(w, r)
		}
	}))
	defer upstream.Close()

	s := newTestServer(t)
	s.Download = upstream.Client()
	s.BackgroundHosts = []string{"127.0.0.1"}

	w := serve(t, s, jsonRequest(http.MethodPost, "/api/poster", map[string]any{
		"template": "bold", "width": 100, "height": 100,
		"background_url": upstream.URL + "/photo.png",
	}))
	decodePNG(t, w)

	w = serve(t, s, jsonRequest(http.MethodPost, "/api/poster", map[string]any{
		"width": 100, "height": 100,
		"background_url": upstream.URL + "/gone.png",
	}))
	assert.Equal(t, http.StatusBadGateway, w.Code)
	assert.Contains(t, w.Body.String(), msgBackgroundError)

	w = serve(t, s, jsonRequest(http.MethodPost, "/api/poster", map[string]any{
		"width": 100, "height": 100,
		"background_url": upstream.URL + "/moved.png",
	}))
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Contains(t, w.Body.String(), "metadata.internal")
}

func TestPosterBackgroundURLRefused(t *testing.T) {
	var hits int
	local := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		hits++
		_, _ = w.Write(solidPNG(t, 4, 4))
	}))
	defer local.Close()

	s := newTestServer(t)
	s.Download = local.Client()
	tests := []struct {
		name string
		url  string
	}{
		{"loopback over http", local.URL + "/photo.png"},
		{"loopback over https", "https://127.0.0.1/photo.png"},
		{"link local", "https://169.254.169.254/latest/meta-data"},
		{"lookalike host", "https://images.unsplash.com.evil.example/x.png"},
		{"userinfo", "https://user@images.unsplash.com/x.png"},
		{"not a url", "://"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := serve(t, s, jsonRequest(http.MethodPost, "/api/poster", map[string]any{
				"width": 100, "height": 100, "background_url": tt.url,
			}))
			assert.Equal(t, http.StatusBadRequest, w.Code)
			assert.Contains(t, w.Body.String(), "url not allowed")
		})
	}
	assert.Zero(t, hits)
}

func TestWelcome(t *testing.T) {
	s := newTestServer(t)
	img := decodePNG(t, serve(t, s, httptest.NewRequest(http.MethodGet, "/api/poster/welcome?size=social-post", nil)))
	assert.Equal(t, image.Rect(0, 0, 1080, 1080), img.Bounds())

	w := serve(t, s, httptest.NewRequest(http.MethodGet, "/api/poster/welcome?size=billboard", nil))
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestRecommend(t *testing.T) {
	s := newTestServer(t)

	w := serve(t, s, jsonRequest(http.MethodPost, "/api/recommend", map[string]string{"eventName": "Block Party"}))
	require.Equal(t, http.StatusOK, w.Code)
	var rec recommend.Recommendation
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &rec))
	assert.Equal(t, poster.Bold, rec.Template)

	w = serve(t, s, jsonRequest(http.MethodPost, "/api/recommend", map[string]string{"eventName": " "}))
	assert.Equal(t, http.StatusBadRequest, w.Code)

	s.Recommender = fakeRecommender{err: errors.New("boom")}
	w = serve(t, s, jsonRequest(http.MethodPost, "/api/recommend", map[string]string{"eventName": "Gala"}))
	assert.Equal(t, http.StatusBadGateway, w.Code)
	assert.Contains(t, w.Body.String(), msgRecommendFailed)

	s.Recommender = fakeRecommender{err: recommend.ErrNotConfigured}
	w = serve(t, s, jsonRequest(http.MethodPost, "/api/recommend", map[string]string{"eventName": "Gala"}))
	assert.Equal(t, http.StatusServiceUnavailable, w.Code)
}

func TestImageSearch(t *testing.T) {
	s := newTestServer(t)

	w := serve(t, s, httptest.NewRequest(http.MethodGet, "/api/images/search?query=party", nil))
	require.Equal(t, http.StatusOK, w.Code)
	var out struct {
		Count   int                 `json:"count"`
		Results []imagesearch.Photo `json:"results"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &out))
	assert.Equal(t, 2, out.Count)

	w = serve(t, s, httptest.NewRequest(http.MethodGet, "/api/images/search?query=", nil))
	assert.Equal(t, http.StatusBadRequest, w.Code)

	s.Searcher = fakeSearcher{}
	w = serve(t, s, httptest.NewRequest(http.MethodGet, "/api/images/search?query=zzz", nil))
	assert.Contains(t, w.Body.String(), msgNoImages)

	s.Searcher = fakeSearcher{err: errors.New("rate limited")}
	w = serve(t, s, httptest.NewRequest(http.MethodGet, "/api/images/search?query=party", nil))
	assert.Equal(t, http.StatusBadGateway, w.Code)
	assert.Contains(t, w.Body.String(), msgSearchFailed)
}

func TestSuggestions(t *testing.T) {
	w := serve(t, newTestServer(t), httptest.NewRequest(http.MethodGet, "/api/images/suggestions?q=wed", nil))
	require.Equal(t, http.StatusOK, w.Code)
	var out struct {
		Suggestions []string `json:"suggestions"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &out))
	assert.Equal(t, "wedding", out.Suggestions[0])
}

func TestShare(t *testing.T) {
	s := newTestServer(t)

	w := serve(t, s, jsonRequest(http.MethodPost, "/api/share", map[string]string{
		"event_name": "Summer Bash",
		"page_url":   "https://posters.example.com",
	}))
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "summer-bash-poster.png")
	assert.Contains(t, w.Body.String(), "wa.me")

	w = serve(t, s, jsonRequest(http.MethodPost, "/api/share", map[string]string{"event_name": "x"}))
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestShareQR(t *testing.T) {
	s := newTestServer(t)
	img := decodePNG(t, serve(t, s, httptest.NewRequest(http.MethodGet, "/api/share/qr?url=https%3A%2F%2Fexample.com&size=200", nil)))
	assert.Equal(t, 200, img.Bounds().Dx())

	w := serve(t, s, httptest.NewRequest(http.MethodGet, "/api/share/qr", nil))
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestRateLimitOnUpstreamRoutes(t *testing.T) {
	s := newTestServer(t)
	s.RequestsPerMin, s.Burst = 1, 2
	r := newRouter(t, s)

	codes := make([]int, 0, 3)
	for i := 0; i < 3; i++ {
		w := httptest.NewRecorder()
		r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/api/images/search?query=party", nil))
		codes = append(codes, w.Code)
	}
	assert.Equal(t, []int{http.StatusOK, http.StatusOK, http.StatusTooManyRequests}, codes)

	// unrelated routes are not limited
	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/api/images/suggestions?q=pa", nil))
	assert.Equal(t, http.StatusOK, w.Code)
}

func TestRateLimitIgnoresForwardedForFromUntrustedPeers(t *testing.T) {
	s := newTestServer(t)
	s.RequestsPerMin, s.Burst = 1, 1
	r := newRouter(t, s)

	codes := make([]int, 0, 2)
	for _, ip := range []string{"203.0.113.1", "203.0.113.2"} {
		req := httptest.NewRequest(http.MethodGet, "/api/images/search?query=party", nil)
		req.Header.Set("X-Forwarded-For", ip)
		w := httptest.NewRecorder()
		r.ServeHTTP(w, req)
		codes = append(codes, w.Code)
	}
	assert.Equal(t, []int{http.StatusOK, http.StatusTooManyRequests}, codes)

	s.TrustedProxies = []string{"192.0.2.1"}
	r = newRouter(t, s)
	for _, ip := range []string{"203.0.113.1", "203.0.113.2"} {
		req := httptest.NewRequest(http.MethodGet, "/api/images/search?query=party", nil)
		req.Header.Set("X-Forwarded-For", ip)
		w := httptest.NewRecorder()
		r.ServeHTTP(w, req)
		assert.Equal(t, http.StatusOK, w.Code, ip)
	}

	s.TrustedProxies = []string{"not-an-ip"}
	_, err := NewRouter(s)
	assert.Error(t, err)
}
