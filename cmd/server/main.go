package main

import (
	"errors"
	"net/http"
	"os"

	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
	"github.com/sirupsen/logrus"

	"github.com/youruser/posterapp/internal/api"
	"github.com/youruser/posterapp/internal/composer"
	"github.com/youruser/posterapp/internal/config"
	imagepkg "github.com/youruser/posterapp/internal/image"
	"github.com/youruser/posterapp/internal/imagesearch"
	"github.com/youruser/posterapp/internal/logging"
	"github.com/youruser/posterapp/internal/poster"
	"github.com/youruser/posterapp/internal/recommend"
	"github.com/youruser/posterapp/internal/util"
)

func main() {
	// .env is optional
	if err := godotenv.Load(); err != nil && !errors.Is(err, os.ErrNotExist) {
		logrus.WithError(err).Warn("failed to load .env")
	}

	path := os.Getenv("POSTER_CONFIG")
	if path == "" {
		path = "config.yaml"
	}
	cfg, err := config.Load(path)
	if err != nil {
		logrus.WithError(err).Fatal("load config")
	}
	logging.Setup(cfg.Logger)
	gin.SetMode(cfg.Server.Mode)

	palettes, err := poster.NewRegistry(cfg.Palettes)
	if err != nil {
		logrus.WithError(err).Fatal("load palettes")
	}
	fonts, err := imagepkg.NewFonts()
	if err != nil {
		logrus.WithError(err).Fatal("load fonts")
	}
	driver, err := composer.NewDriver(palettes, fonts)
	if err != nil {
		logrus.WithError(err).Fatal("init renderer")
	}
	driver.SetMaxDimension(cfg.Render.MaxDimension)

	srv := &api.Server{
		Driver: driver,
		Recommender: recommend.New(recommend.Config{
			BaseURL:     cfg.OpenAI.BaseURL,
			APIKey:      cfg.OpenAI.APIKey,
			Model:       cfg.OpenAI.Model,
			MaxTokens:   cfg.OpenAI.MaxTokens,
			Temperature: cfg.OpenAI.Temperature,
			Timeout:     cfg.OpenAI.Timeout,
			Breaker:     cfg.OpenAI.Breaker,
		}),
		Searcher: imagesearch.New(imagesearch.Config{
			BaseURL:     cfg.Unsplash.BaseURL,
			AccessKey:   cfg.Unsplash.AccessKey,
			PerPage:     cfg.Unsplash.PerPage,
			Orientation: cfg.Unsplash.Orientation,
			Timeout:     cfg.Unsplash.Timeout,
			Breaker:     cfg.Unsplash.Breaker,
		}),
		Download:        util.NewClient(cfg.Render.DownloadTimeout),
		BackgroundHosts: cfg.Render.BackgroundHosts,
		MaxUploadBytes:  cfg.Render.MaxUploadBytes,
		MaxImagePixels:  cfg.Render.MaxImagePixels,
		DefaultSize:     cfg.Render.DefaultSize,
		RequestsPerMin:  cfg.Server.RateLimit.RequestsPerMin,
		Burst:           cfg.Server.RateLimit.Burst,
		TrustedProxies:  cfg.Server.TrustedProxies,
	}
	if cfg.OpenAI.APIKey == "" {
		logrus.Warn("OPENAI_KEY not set, template recommendations disabled")
	}
	if cfg.Unsplash.AccessKey == "" {
		logrus.Warn("UNSPLASH_KEY not set, image search disabled")
	}

	r, err := api.NewRouter(srv)
	if err != nil {
		logrus.WithError(err).Fatal("build router")
	}
	logrus.WithField("addr", cfg.Server.Addr).Info("starting server")
	if err := r.Run(cfg.Server.Addr); err != nil && !errors.Is(err, http.ErrServerClosed) {
		logrus.WithError(err).Fatal("server stopped")
	}
}
