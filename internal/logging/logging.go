// Package logging provides structured JSON logging for pipeterm components.
package logging

import (
	"io"
	"log/slog"
	"os"
	"strings"
	"sync"

	"github.com/pkg/errors"
	"gopkg.in/natefinch/lumberjack.v2"

	"pipeterm/internal/config"
)

var (
	root   = slog.New(slog.NewJSONHandler(io.Discard, nil))
	rootMu sync.RWMutex
)

// Options controls where logs go.
type Options struct {
	// File is rotated by lumberjack. Empty logs to Stderr.
	File  string
	Level string
	// Stderr is used when File is empty. Defaults to os.Stderr.
	Stderr io.Writer
}

// Setup installs the process-wide logger and returns a closer for the
// underlying file.
func Setup(opts Options) (io.Closer, error) {
	var w io.Writer
	var closer io.Closer = io.NopCloser(nil)
	if opts.File == "" {
		w = opts.Stderr
		if w == nil {
			w = os.Stderr
		}
	} else {
		if err := config.EnsureDir(opts.File); err != nil {
			return nil, errors.Wrap(err, "creating log directory")
		}
		lj := &lumberjack.Logger{
			Filename:   opts.File,
			MaxSize:    10, // megabytes
			MaxBackups: 3,
			MaxAge:     28, // days
			Compress:   true,
		}
		w, closer = lj, lj
	}
	h := slog.NewJSONHandler(w, &slog.HandlerOptions{Level: ParseLevel(opts.Level)})
	rootMu.Lock()
	root = slog.New(h)
	rootMu.Unlock()
	return closer, nil
}

// New creates a logger for a component.
func New(component string) *slog.Logger {
	rootMu.RLock()
	defer rootMu.RUnlock()
	return root.With("component", component)
}

// ParseLevel maps debug/info/warn/error to a slog level, defaulting to info.
func ParseLevel(s string) slog.Level {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "debug":
		return slog.LevelDebug
	case "warn", "warning":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}
