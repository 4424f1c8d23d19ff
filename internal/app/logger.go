package app

import (
	"log/slog"
	"os"

	"github.com/afercon/delivery-notifier/internal/logx"
)

// NewLogger builds the process-wide structured logger, JSON to stdout at info.
func NewLogger() logx.Logger {
	base := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{
		Level: slog.LevelInfo,
	}))
	return logx.NewSlogAdapter(base)
}
