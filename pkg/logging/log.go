package logging

import (
	"io"
	"log/slog"
	"os"
	"strings"
)

// Logger is usable before Init; it falls back to the slog default.
var Logger = slog.Default()

func Init() {
	Logger = New(os.Stdout, os.Getenv("APP_ENV"), os.Getenv("LOG_LEVEL"))
}

func New(w io.Writer, env, level string) *slog.Logger {
	opts := &slog.HandlerOptions{Level: parseLevel(level)}
	if env == "prod" {
		return slog.New(slog.NewJSONHandler(w, opts))
	}
	return slog.New(slog.NewTextHandler(w, opts))
}

func parseLevel(level string) slog.Level {
	switch strings.ToLower(level) {
	case "debug":
		return slog.LevelDebug
	case "warn":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}
