// Package logging configures the process wide logrus logger.
package logging

import (
	"io"
	"os"
	"strings"

	"github.com/sirupsen/logrus"
)

type Config struct {
	Level  string `yaml:"level"`
	Format string `yaml:"format"`
}

// Setup applies cfg to the standard logrus logger. Unknown levels fall
// back to info.
func Setup(cfg Config) {
	SetupWriter(cfg, os.Stderr)
}

func SetupWriter(cfg Config, w io.Writer) {
	logrus.SetOutput(w)
	level, err := logrus.ParseLevel(strings.ToLower(cfg.Level))
	if err != nil {
		level = logrus.InfoLevel
	}
	logrus.SetLevel(level)
	switch strings.ToLower(cfg.Format) {
	case "json":
		logrus.SetFormatter(&logrus.JSONFormatter{})
	default:
		logrus.SetFormatter(&logrus.TextFormatter{FullTimestamp: true})
	}
}
