// Package logging builds the process logger.
package logging

import (
	"fmt"
	"io"
	"log/slog"
	"os"
	"strings"
	"time"

	"github.com/lmittmann/tint"
)

// Options configure the logger
type Options struct {
	Writer io.Writer // defaults to os.Stderr
	Level  string    // debug, info, warn, error
	Format string    // text (colored), json
	Quiet  bool      // only warnings and errors
}

// New returns a logger writing colored text or JSON
func New(opts Options) (*slog.Logger, error) {
	if opts.Writer == nil {
		opts.Writer = os.Stderr
	}

	level, err := ParseLevel(opts.Level)
	if err != nil {
		return nil, err
	}
	if opts.Quiet && level < slog.LevelWarn {
		level = slog.LevelWarn
	}

	var handler slog.Handler
	switch strings.ToLower(opts.Format) {
	case "json":
		handler = slog.NewJSONHandler(opts.Writer, &slog.HandlerOptions{Level: level})
	case "", "text":
		handler = tint.NewHandler(opts.Writer, &tint.Options{
			Level:      level,
			TimeFormat: time.DateTime,
			NoColor:    !isTerminal(opts.Writer),
		})
	default:
		return nil, fmt.Errorf("unknown log format %q (use text or json)", opts.Format)
	}

	return slog.New(handler), nil
}

// ParseLevel maps a level name to a slog.Level
func ParseLevel(s string) (slog.Level, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "debug":
		return slog.LevelDebug, nil
	case "", "info":
		return slog.LevelInfo, nil
	case "warn", "warning":
		return slog.LevelWarn, nil
	case "error":
		return slog.LevelError, nil
	default:
		return slog.LevelInfo, fmt.Errorf("unknown log level %q", s)
	}
}

func isTerminal(w io.Writer) bool {
	f, ok := w.(*os.File)
	if !ok {
		return false
	}
	info, err := f.Stat()
	if err != nil {
		return false
	}
	return info.Mode()&os.ModeCharDevice != 0
}
