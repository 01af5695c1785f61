// Package logging configures the process-wide slog logger.
package logging

import (
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/lmittmann/tint"
	"github.com/mattn/go-colorable"
)

// Options selects where and how much to log.
type Options struct {
	Level string // error, warn, info, debug
	File  string // empty logs to stderr
}

// Setup installs a tint handler as the slog default and returns a closer for
// the log file, if any.
func Setup(opts Options) (io.Closer, error) {
	var (
		w       io.Writer
		closer  io.Closer = nopCloser{}
		noColor bool
	)
	if opts.File == "" {
		w = colorable.NewColorableStderr()
	} else {
		if err := os.MkdirAll(filepath.Dir(opts.File), 0o755); err != nil {
			return nil, fmt.Errorf("log dir init failed: %w", err)
		}
		f, err := os.OpenFile(opts.File, os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0o644)
		if err != nil {
			return nil, fmt.Errorf("log file %q init failed: %w", opts.File, err)
		}
		w, closer, noColor = f, f, true
	}

	slog.SetDefault(slog.New(NewHandler(w, opts.Level, noColor)))
	return closer, nil
}

// NewHandler builds the tint handler used by Setup.
func NewHandler(w io.Writer, level string, noColor bool) slog.Handler {
	return tint.NewHandler(w, &tint.Options{
		Level:      ParseLevel(level),
		TimeFormat: time.RFC3339,
		NoColor:    noColor,
	})
}

// ParseLevel maps a level name to a slog.Level, defaulting to info.
func ParseLevel(level string) slog.Level {
	switch strings.ToLower(level) {
	case "debug":
		return slog.LevelDebug
	case "warn":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}

type nopCloser struct{}

func (nopCloser) Close() error { return nil }
