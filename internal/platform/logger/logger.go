package logger

import (
	"log/slog"
	"os"
	"strings"
)

// New builds the application logger. Level can be debug, info, warn or
// error; anything else falls back to info. Output is structured JSON so
// log aggregation can index the stage/component attributes the services
// attach.
func New(level string) *slog.Logger {
	var logLevel slog.Level

	switch strings.ToLower(level) {
	case "debug":
		logLevel = slog.LevelDebug
	case "warn":
		logLevel = slog.LevelWarn
	case "error":
		logLevel = slog.LevelError
	default:
		logLevel = slog.LevelInfo
	}

	handler := slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{Level: logLevel})
	return slog.New(handler).With("service", "batiku")
}
