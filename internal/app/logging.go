package app

import (
	"io"
	"log/slog"
	"os"
	"strings"

	"github.com/dshills/asciicanvas/internal/config"
)

// ParseLogLevel parses a string into a slog.Level.
// Unknown names map to warn.
func ParseLogLevel(s string) slog.Level {
	switch strings.ToLower(s) {
	case "debug":
		return slog.LevelDebug
	case "info":
		return slog.LevelInfo
	case "warn", "warning":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelWarn
	}
}

// NewLogger builds the diagnostic logger described by cfg. Output
// defaults to os.Stderr so it never mixes with canvas renders.
func NewLogger(cfg config.LoggingConfig, output io.Writer) *slog.Logger {
	if output == nil {
		output = os.Stderr
	}
	opts := &slog.HandlerOptions{Level: ParseLogLevel(cfg.Level)}

	var h slog.Handler
	if cfg.Format == "json" {
		h = slog.NewJSONHandler(output, opts)
	} else {
		h = slog.NewTextHandler(output, opts)
	}
	return slog.New(h).With(slog.String("app", "asciicanvas"))
}
