// Package logging builds the zerolog loggers handed to services and keeps a
// couple of env-gated print helpers for low level debugging.
package logging

import (
	"io"
	"os"
	"strings"

	"github.com/rs/zerolog"
)

// Options configures New.
type Options struct {
	// Level is a zerolog level name; empty or unknown falls back to info.
	Level string
	// Console selects the human readable writer instead of JSON lines.
	Console bool
	// Writer defaults to stderr.
	Writer io.Writer
}

// New builds a logger from opts. MOMENTUM_DEBUG forces the debug level.
func New(opts Options) zerolog.Logger {
	w := opts.Writer
	if w == nil {
		w = os.Stderr
	}
	if opts.Console {
		w = zerolog.ConsoleWriter{Out: w, TimeFormat: "15:04:05"}
	}

	level := ParseLevel(opts.Level)
	if DebugEnabled() {
		level = zerolog.DebugLevel
	}

	return zerolog.New(w).Level(level).With().Timestamp().Logger()
}

// ParseLevel maps a level name to a zerolog level, defaulting to info.
func ParseLevel(name string) zerolog.Level {
	name = strings.TrimSpace(strings.ToLower(name))
	if name == "" {
		return zerolog.InfoLevel
	}
	level, err := zerolog.ParseLevel(name)
	if err != nil || level == zerolog.NoLevel {
		return zerolog.InfoLevel
	}
	return level
}

// Nop returns a disabled logger.
func Nop() zerolog.Logger {
	return zerolog.Nop()
}
