package config

import (
	"io"
	"log/slog"
)

// SetupLogging installs the default slog logger for the configured level and format.
func SetupLogging(w io.Writer, cfg *Config) {
	opts := &slog.HandlerOptions{Level: cfg.LogLevel}

	var handler slog.Handler
	switch cfg.LogFormat {
	case "json":
		handler = slog.NewJSONHandler(w, opts)
	default:
		handler = slog.NewTextHandler(w, opts)
	}
	slog.SetDefault(slog.New(handler))
}
