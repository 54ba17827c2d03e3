// Package logger builds the structured logger shared by services, the
// directory clients and the search component.
package logger

import (
	"io"
	"log/slog"
	"os"
	"strings"
)

// New returns a text logger at debug level in development and a JSON
// logger at info level everywhere else.
func New(env string) *slog.Logger {
	return NewWithWriter(env, os.Stdout)
}

func NewWithWriter(env string, w io.Writer) *slog.Logger {
	opts := &slog.HandlerOptions{Level: slog.LevelInfo}

	var handler slog.Handler
	if strings.EqualFold(env, "development") {
		opts.Level = slog.LevelDebug
		handler = slog.NewTextHandler(w, opts)
	} else {
		handler = slog.NewJSONHandler(w, opts)
	}
	return slog.New(handler)
}

// Discard drops everything. Used by tests and by the terminal client,
// which owns stdout.
func Discard() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}
