package logger

import (
	"io"
	"log/slog"
	"os"
	"strings"
)

// Log is usable before Init so packages can log from tests and tooling.
var Log = slog.New(slog.NewJSONHandler(os.Stdout, nil))

func Init(level string) {
	InitWithWriter(os.Stdout, level)
}

// InitWithWriter installs the JSON handler on w at the given level
// (debug, info, warn, error; anything else means info).
func InitWithWriter(w io.Writer, level string) {
	handler := slog.NewJSONHandler(w, &slog.HandlerOptions{
		Level: parseLevel(level),
	})
	Log = slog.New(handler)
	slog.SetDefault(Log)
}

func parseLevel(level string) slog.Level {
	switch strings.ToLower(level) {
	case "debug":
		return slog.LevelDebug
	case "warn", "warning":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}
