package testutil

import (
	"io"
	"log/slog"
)

// NopLogger discards everything. Keeps test output readable when services
// log per-action.
func NopLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, &slog.HandlerOptions{Level: slog.LevelError}))
}
