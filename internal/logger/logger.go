// SPDX-License-Identifier: EPL-2.0

// Package logger builds the zerolog loggers used by the command line tools.
package logger

import (
	"fmt"
	"io"
	"os"
	"strings"
	"time"

	"github.com/rs/zerolog"
)

// EnvLevel is the environment variable that overrides the configured level.
const EnvLevel = "LOG_LEVEL"

// New returns a logger writing JSON lines to w at the given level. An empty
// level means info.
func New(level string, w io.Writer) (zerolog.Logger, error) {
	lvl, err := ParseLevel(level)
	if err != nil {
		return zerolog.Nop(), err
	}

	zerolog.TimeFieldFormat = zerolog.TimeFormatUnixMs
	return zerolog.New(w).Level(lvl).With().Timestamp().Logger(), nil
}

// NewConsole is New with human readable output, for interactive use.
func NewConsole(level string, w io.Writer) (zerolog.Logger, error) {
	return New(level, zerolog.ConsoleWriter{Out: w, TimeFormat: time.TimeOnly})
}

// ParseLevel accepts zerolog level names in any case.
func ParseLevel(level string) (zerolog.Level, error) {
	if level == "" {
		return zerolog.InfoLevel, nil
	}
	lvl, err := zerolog.ParseLevel(strings.ToLower(level))
	if err != nil {
		return zerolog.NoLevel, fmt.Errorf("log level %q: %w", level, err)
	}
	return lvl, nil
}

// LevelFromEnv returns $LOG_LEVEL when set, fallback otherwise.
func LevelFromEnv(fallback string) string {
	if v, ok := os.LookupEnv(EnvLevel); ok && v != "" {
		return v
	}
	return fallback
}
