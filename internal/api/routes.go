package api

import (
	"fmt"

	"github.com/gin-gonic/gin"
)

// NewRouter builds the engine with middleware and every route.
func NewRouter(s *Server) (*gin.Engine, error) {
	r := gin.New()
	if err := r.SetTrustedProxies(s.TrustedProxies); err != nil {
		return nil, fmt.Errorf("trusted proxies: %w", err)
	}
	r.Use(gin.Recovery(), RequestLogger(), CORS())
	if s.MaxUploadBytes > 0 {
		r.MaxMultipartMemory = s.MaxUploadBytes
	}
	RegisterRoutes(r, s)
	return r, nil
}

func RegisterRoutes(r *gin.Engine, s *Server) {
	limited := RateLimit(s.RequestsPerMin, s.Burst)
	api := r.Group("/api")
	{
		api.GET("/health", health)
		api.GET("/sizes", sizesHandler)
		api.GET("/templates", s.templatesHandler)
		api.POST("/poster", s.posterHandler)
		api.GET("/poster/welcome", s.welcomeHandler)
		api.POST("/recommend", limited, s.recommendHandler)
		api.GET("/images/search", limited, s.searchHandler)
		api.GET("/images/suggestions", suggestionsHandler)
		api.POST("/share", shareHandler)
		api.GET("/share/qr", qrHandler)
	}
}
