// Package logging sets up the process logger. The terminal belongs to the
// TUI, so records go to a file rather than stdout.
package logging

import (
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"time"

	"github.com/lepinkainen/humanlog"
)

// Options configure New.
type Options struct {
	Path  string
	Debug bool
}

// New opens (or creates) the log file at opts.Path and returns a logger
// writing human-readable lines to it. The returned closer releases the file.
func New(opts Options) (*slog.Logger, io.Closer, error) {
	if err := os.MkdirAll(filepath.Dir(opts.Path), 0o755); err != nil {
		return nil, nil, fmt.Errorf("create log dir: %w", err)
	}
	file, err := os.OpenFile(opts.Path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
	if err != nil {
		return nil, nil, fmt.Errorf("open log file: %w", err)
	}
	return NewWriter(file, opts.Debug), file, nil
}

// TimeFormat stamps each log line.
const TimeFormat = time.DateTime

// NewWriter returns a logger writing to w.
func NewWriter(w io.Writer, debug bool) *slog.Logger {
	opts := humanlog.DefaultOptions()
	opts.Level = level(debug)
	opts.TimeFormat = TimeFormat
	opts.DisableColor = true
	opts.AddSource = false
	return slog.New(humanlog.NewHandler(w, opts))
}

func level(debug bool) slog.Level {
	if debug {
		return slog.LevelDebug
	}
	return slog.LevelInfo
}
