// Package config loads server settings from an optional YAML file and
// the environment.
package config

import (
	"errors"
	"fmt"
	"net"
	"os"
	"strconv"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/youruser/posterapp/internal/logging"
	"github.com/youruser/posterapp/internal/poster"
	"github.com/youruser/posterapp/internal/util"
)

type Config struct {
	Server   ServerConfig                 `yaml:"server"`
	Logger   logging.Config               `yaml:"logger"`
	OpenAI   OpenAIConfig                 `yaml:"openai"`
	Unsplash UnsplashConfig               `yaml:"unsplash"`
	Render   RenderConfig                 `yaml:"render"`
	Palettes map[string]map[string]string `yaml:"palettes"`
}

type ServerConfig struct {
	Addr string `yaml:"addr"`
	Mode string `yaml:"mode"` // gin mode: debug, release, test
	// RateLimit applies per client to the endpoints that call paid APIs.
	RateLimit RateLimitConfig `yaml:"rate_limit"`
	// TrustedProxies are the IPs or CIDRs whose X-Forwarded-For header is
	// believed when resolving the client IP. Empty trusts none.
	TrustedProxies []string `yaml:"trusted_proxies"`
}

type RateLimitConfig struct {
	RequestsPerMin int `yaml:"requests_per_min"` // 0 disables
	Burst          int `yaml:"burst"`
}

type OpenAIConfig struct {
	BaseURL     string             `yaml:"base_url"`
	APIKey      string             `yaml:"api_key"`
	Model       string             `yaml:"model"`
	MaxTokens   int                `yaml:"max_tokens"`
	Temperature float64            `yaml:"temperature"`
	Timeout     time.Duration      `yaml:"timeout"`
	Breaker     util.BreakerConfig `yaml:"breaker"`
}

type UnsplashConfig struct {
	BaseURL     string             `yaml:"base_url"`
	AccessKey   string             `yaml:"access_key"`
	PerPage     int                `yaml:"per_page"`
	Orientation string             `yaml:"orientation"`
	Timeout     time.Duration      `yaml:"timeout"`
	Breaker     util.BreakerConfig `yaml:"breaker"`
}

type RenderConfig struct {
	DefaultSize     string        `yaml:"default_size"`
	MaxUploadBytes  int64         `yaml:"max_upload_bytes"`
	DownloadTimeout time.Duration `yaml:"download_timeout"`
	// MaxDimension caps each side of a custom poster size.
	MaxDimension int `yaml:"max_dimension"`
	// MaxImagePixels caps width*height of a decoded background.
	MaxImagePixels int64 `yaml:"max_image_pixels"`
	// BackgroundHosts are the https hosts background_url may point at.
	BackgroundHosts []string `yaml:"background_hosts"`
}

// Defaults returns the built-in configuration.
func Defaults() Config {
	return Config{
		Server: ServerConfig{
			Addr:      ":8080",
			Mode:      "release",
			RateLimit: RateLimitConfig{RequestsPerMin: 30, Burst: 5},
		},
		Logger: logging.Config{Level: "info", Format: "text"},
		OpenAI: OpenAIConfig{
			BaseURL:     "https://api.openai.com",
			Model:       "gpt-4o-mini",
			MaxTokens:   50,
			Temperature: 0.7,
			Timeout:     15 * time.Second,
		},
		Unsplash: UnsplashConfig{
			BaseURL:     "https://api.unsplash.com",
			PerPage:     3,
			Orientation: "squarish",
			Timeout:     15 * time.Second,
		},
		Render: RenderConfig{
			DefaultSize:     poster.DefaultSize,
			MaxUploadBytes:  10 << 20,
			DownloadTimeout: 12 * time.Second,
			MaxDimension:    poster.MaxDimension,
			MaxImagePixels:  40_000_000,
			BackgroundHosts: []string{"images.unsplash.com"},
		},
	}
}

// Load reads path over the defaults, then applies environment overrides.
// A missing file is not an error.
func Load(path string) (Config, error) {
	cfg := Defaults()
	if path != "" {
		data, err := os.ReadFile(path)
		switch {
		case errors.Is(err, os.ErrNotExist):
		case err != nil:
			return Config{}, fmt.Errorf("read config %s: %w", path, err)
		default:
			if err := yaml.Unmarshal(data, &cfg); err != nil {
				return Config{}, fmt.Errorf("parse config %s: %w", path, err)
			}
		}
	}
	if err := applyEnv(&cfg, os.LookupEnv); err != nil {
		return Config{}, err
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

func applyEnv(cfg *Config, lookup func(string) (string, bool)) error {
	str := func(dst *string, keys ...string) {
		for _, k := range keys {
			if v, ok := lookup(k); ok && v != "" {
				*dst = v
				return
			}
		}
	}
	if port, ok := lookup("PORT"); ok && port != "" {
		cfg.Server.Addr = ":" + port
	}
	str(&cfg.Server.Mode, "GIN_MODE")
	str(&cfg.Logger.Level, "LOG_LEVEL")
	str(&cfg.Logger.Format, "LOG_FORMAT")
	str(&cfg.OpenAI.APIKey, "OPENAI_KEY", "OPENAI_API_KEY")
	str(&cfg.OpenAI.BaseURL, "OPENAI_BASE_URL")
	str(&cfg.Unsplash.AccessKey, "UNSPLASH_KEY", "UNSPLASH_ACCESS_KEY")
	str(&cfg.Unsplash.BaseURL, "UNSPLASH_BASE_URL")

	if v, ok := lookup("MAX_UPLOAD_BYTES"); ok && v != "" {
		n, err := strconv.ParseInt(v, 10, 64)
		if err != nil {
			return fmt.Errorf("MAX_UPLOAD_BYTES: %w", err)
		}
		cfg.Render.MaxUploadBytes = n
	}
	return nil
}

// Validate rejects settings the server cannot start with.
func (c Config) Validate() error {
	switch c.Server.Mode {
	case "debug", "release", "test":
	default:
		return fmt.Errorf("server.mode %q: want debug, release or test", c.Server.Mode)
	}
	if _, err := poster.LookupSize(c.Render.DefaultSize); err != nil {
		return fmt.Errorf("render.default_size: %w", err)
	}
	if c.Render.MaxUploadBytes <= 0 {
		return errors.New("render.max_upload_bytes must be positive")
	}
	if c.Server.RateLimit.RequestsPerMin < 0 || c.Server.RateLimit.Burst < 0 {
		return errors.New("server.rate_limit values must not be negative")
	}
	if c.Render.MaxDimension <= 0 || c.Render.MaxDimension > poster.MaxDimension {
		return fmt.Errorf("render.max_dimension must be in 1..%d", poster.MaxDimension)
	}
	if c.Render.MaxImagePixels <= 0 {
		return errors.New("render.max_image_pixels must be positive")
	}
	for _, p := range c.Server.TrustedProxies {
		if net.ParseIP(p) != nil {
			continue
		}
		if _, _, err := net.ParseCIDR(p); err != nil {
			return fmt.Errorf("server.trusted_proxies: %q is not an IP or CIDR", p)
		}
	}
	if c.OpenAI.Timeout <= 0 || c.Unsplash.Timeout <= 0 || c.Render.DownloadTimeout <= 0 {
		return errors.New("timeouts must be positive")
	}
	return nil
}
