// Package logging builds the application loggers and maps the verbosity
// levels inherited from the layer this tool replaces onto slog levels.
package logging

import (
	"io"
	"log/slog"
	"os"

	"github.com/lmittmann/tint"
	"golang.org/x/term"
)

// Verbosity levels. Silent drops everything, User is the default
// human-facing level, Debug adds detail, Trace is granular.
const (
	Silent = 0
	User   = 1
	Debug  = 2
	Trace  = 3
)

// Level maps a verbosity level to a slog level. Out-of-range values clamp to
// User.
func Level(verbosity int) slog.Level {
	switch verbosity {
	case Silent:
		// Above every level slog emits.
		return slog.LevelError + 4
	case Debug:
		return slog.LevelDebug
	case Trace:
		return slog.LevelDebug - 4
	default:
		return slog.LevelInfo
	}
}

// New creates a configured application logger writing to stderr (keeping
// stdout free for report output). Terminals get the tint handler; anything
// else gets the plain text handler with the common "error" -> "err" key
// rewrite.
func New(verbosity int) *slog.Logger {
	level := Level(verbosity)
	if term.IsTerminal(int(os.Stderr.Fd())) {
		return slog.New(tint.NewHandler(os.Stderr, &tint.Options{Level: level}))
	}
	return slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
		Level: level,
		ReplaceAttr: func(groups []string, a slog.Attr) slog.Attr {
			if a.Key == "error" {
				a.Key = "err"
			}
			return a
		},
	}))
}

// NewNop returns a no-op logger.
func NewNop() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}
