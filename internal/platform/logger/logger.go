package logger

import (
	"log/slog"
	"os"
)

// New returns the process-wide structured logger. Services and handlers
// receive it by injection so tests can discard output.
func New() *slog.Logger {
	return slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{
		Level: slog.LevelInfo,
	}))
}
