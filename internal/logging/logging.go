// Package logging configures the leveled logger. alog writes through the
// standard log package, so redirecting log output redirects everything.
package logging

import (
	"fmt"
	"io"
	"log"
	"os"
	"strings"

	"go.alis.build/alog"
)

// ParseLevel maps a config level name to an alog level.
func ParseLevel(s string) (alog.LogLevel, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "debug":
		return alog.LevelDebug, nil
	case "", "info":
		return alog.LevelInfo, nil
	case "warn", "warning":
		return alog.LevelWarning, nil
	case "error":
		return alog.LevelError, nil
	default:
		return alog.LevelInfo, fmt.Errorf("unknown log level %q", s)
	}
}

// SetLevel applies a level name.
func SetLevel(s string) error {
	lvl, err := ParseLevel(s)
	alog.SetLevel(lvl)
	return err
}

// Redirect sends log output to path, or discards it when path is empty.
func Redirect(path string) (io.Closer, error) {
	if path == "" {
		log.SetOutput(io.Discard)
		return nopCloser{}, nil
	}
	f, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
	if err != nil {
		return nil, fmt.Errorf("open log file: %w", err)
	}
	log.SetOutput(f)
	return f, nil
}

type nopCloser struct{}

func (nopCloser) Close() error { return nil }
