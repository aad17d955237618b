package logging

import (
	"bytes"
	"context"
	"log/slog"
	"strings"
	"testing"
)

func TestLoggerLevels(t *testing.T) {
	tests := []struct {
		level   string
		debugOn bool
		warnOn  bool
	}{
		{"debug", true, true},
		{"info", false, true},
		{"warn", false, true},
		{"error", false, false},
		{"nonsense", false, true}, // falls back to info
	}

	for _, tt := range tests {
		logger := newLogger(&bytes.Buffer{}, tt.level)
		if got := logger.Enabled(context.Background(), slog.LevelDebug); got != tt.debugOn {
			t.Errorf("level %q: debug enabled = %v, want %v", tt.level, got, tt.debugOn)
		}
		if got := logger.Enabled(context.Background(), slog.LevelWarn); got != tt.warnOn {
			t.Errorf("level %q: warn enabled = %v, want %v", tt.level, got, tt.warnOn)
		}
	}
}

func TestLoggerWritesToGivenWriter(t *testing.T) {
	var buf bytes.Buffer
	logger := newLogger(&buf, "info")

	logger.Info("hello", "key", "value")
	out := buf.String()
	if !strings.Contains(out, "hello") || !strings.Contains(out, "key=value") {
		t.Errorf("unexpected log output: %q", out)
	}
}
