// Package logging builds the zerolog loggers used across uqplanner.
package logging

import (
	"io"
	"os"
	"time"

	"github.com/rs/zerolog"
)

// New returns a JSON logger writing to w at the named level. An unknown
// level falls back to info.
func New(level string, w io.Writer) zerolog.Logger {
	lvl, err := zerolog.ParseLevel(level)
	if err != nil || level == "" {
		lvl = zerolog.InfoLevel
	}
	return zerolog.New(w).Level(lvl).With().
		Str("service", "uqplanner").
		Timestamp().
		Logger()
}

// NewConsole returns a human-readable logger for interactive use.
func NewConsole(level string, w io.Writer) zerolog.Logger {
	return New(level, zerolog.ConsoleWriter{Out: w, TimeFormat: time.Kitchen})
}

// Stderr returns a console logger on stderr, switching to debug when verbose.
func Stderr(level string, verbose bool) zerolog.Logger {
	if verbose {
		level = zerolog.DebugLevel.String()
	}
	return NewConsole(level, os.Stderr)
}
