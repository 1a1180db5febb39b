// Package diag provides an opt-in structured debug logger shared by the
// lexer and parser for step tracing. It is silent in production builds.
package diag

import (
	"log/slog"
	"os"
)

// EnableEnv is the environment variable that turns step tracing on.
const EnableEnv = "EELIC_DEBUG"

// Enabled reports whether EELIC_DEBUG is set to a non-empty value.
func Enabled() bool {
	return os.Getenv(EnableEnv) != ""
}

// NewDebugLogger returns a text-handler slog.Logger with timestamps
// stripped. When enabled is false, every call is routed to a discard
// handler so callers can log unconditionally without checking first.
func NewDebugLogger(enabled bool) *slog.Logger {
	if !enabled {
		return slog.New(slog.NewTextHandler(discard{}, nil))
	}
	opts := &slog.HandlerOptions{
		ReplaceAttr: func(groups []string, a slog.Attr) slog.Attr {
			if a.Key == slog.TimeKey {
				return slog.Attr{}
			}
			return a
		},
	}
	return slog.New(slog.NewTextHandler(os.Stderr, opts))
}

type discard struct{}

func (discard) Write(p []byte) (int, error) { return len(p), nil }
