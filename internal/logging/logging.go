package logging

import (
	"io"
	"log/slog"
	"os"
	"strings"
)

// Setup configures the process-wide logger at the given level ("debug",
// "info", "warn", "error") and returns it. Logs go to stderr so stdout stays
// free for tooling.
func Setup(level string) *slog.Logger {
	logger := newLogger(os.Stderr, level)
	slog.SetDefault(logger)
	return logger
}

func newLogger(w io.Writer, level string) *slog.Logger {
	var lvl slog.Level
	switch strings.ToLower(level) {
	case "debug":
		lvl = slog.LevelDebug
	case "warn":
		lvl = slog.LevelWarn
	case "error":
		lvl = slog.LevelError
	default:
		lvl = slog.LevelInfo
	}

	return slog.New(slog.NewTextHandler(w, &slog.HandlerOptions{
		Level: lvl,
	}))
}
