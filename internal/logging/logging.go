// Package logging provides zerolog setup and context helpers shared by every
// component. Loggers travel on the context; components attach their own
// component/operation fields rather than holding globals.
package logging

import (
	"context"
	"io"
	"os"
	"time"

	"github.com/rs/zerolog"
)

// Config controls logger construction.
type Config struct {
	// Level is the minimum level emitted ("trace".."error"). Invalid or empty
	// values fall back to "info".
	Level string `yaml:"level" json:"level"`
	// Format selects "console" (human-readable, stderr) or "json".
	Format string `yaml:"format" json:"format"`
}

// DefaultConfig returns the logging configuration used when nothing is set.
func DefaultConfig() Config {
	return Config{Level: "info", Format: "console"}
}

// New builds a zerolog.Logger from cfg, writing to w.
func New(cfg Config, w io.Writer) zerolog.Logger {
	lvl, err := zerolog.ParseLevel(cfg.Level)
	if err != nil || cfg.Level == "" {
		lvl = zerolog.InfoLevel
	}

	out := w
	if cfg.Format != "json" {
		out = zerolog.ConsoleWriter{Out: w, TimeFormat: time.RFC3339}
	}

	return zerolog.New(out).Level(lvl).With().Timestamp().Logger()
}

// NewDefault returns a console logger on stderr at info level.
func NewDefault() zerolog.Logger {
	return New(DefaultConfig(), os.Stderr)
}

// ComponentLogger returns a child logger tagged with a component field.
func ComponentLogger(logger zerolog.Logger, component string) zerolog.Logger {
	return logger.With().Str("component", component).Logger()
}

// WithContext attaches logger to ctx for retrieval via FromContext.
func WithContext(ctx context.Context, logger zerolog.Logger) context.Context {
	return logger.WithContext(ctx)
}

// FromContext retrieves the logger attached to ctx. When none is attached,
// zerolog returns a disabled logger, so library code can log unconditionally.
func FromContext(ctx context.Context) zerolog.Logger {
	return *zerolog.Ctx(ctx)
}
