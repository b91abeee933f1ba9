// Package logger provides a configured zerolog logger.
package logger

import (
	"io"
	"os"
	"time"

	"github.com/rs/zerolog"

	"github.com/at-ishikawa/penguins/internal/config"
)

// New returns a zerolog.Logger writing to stdout for the given service.
func New(serviceName string, cfg config.LogConfig) zerolog.Logger {
	return NewWithWriter(os.Stdout, serviceName, cfg)
}

// NewWithWriter is New with an explicit destination.
func NewWithWriter(w io.Writer, serviceName string, cfg config.LogConfig) zerolog.Logger {
	if cfg.Format == "console" {
		w = zerolog.ConsoleWriter{Out: w, TimeFormat: time.RFC3339}
	}

	level, err := zerolog.ParseLevel(cfg.Level)
	if err != nil || level == zerolog.NoLevel {
		level = zerolog.InfoLevel
	}

	return zerolog.New(w).Level(level).With().
		Str("service", serviceName).
		Timestamp().
		Logger()
}
