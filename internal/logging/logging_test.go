package logging

import (
	"context"
	"log/slog"
	"testing"
)

func TestParseLevel(t *testing.T) {
	cases := []struct {
		name string
		want slog.Level
	}{
		{"debug", slog.LevelDebug},
		{"info", slog.LevelInfo},
		{"WARN", slog.LevelWarn},
		{"warning", slog.LevelWarn},
		{"error", slog.LevelError},
		{"unknown", slog.LevelInfo},
		{"", slog.LevelInfo},
	}
	for _, tc := range cases {
		if got := ParseLevel(tc.name); got != tc.want {
			t.Errorf("ParseLevel(%q) = %v, want %v", tc.name, got, tc.want)
		}
	}
}

func TestNew_ReturnsUsableLogger(t *testing.T) {
	for _, format := range []Format{FormatText, FormatJSON} {
		logger := New(slog.LevelInfo, format)
		if logger == nil {
			t.Fatalf("Expected a logger for format %v", format)
		}
		if logger.Enabled(context.Background(), slog.LevelDebug) {
			t.Errorf("Expected debug disabled at info level (format %v)", format)
		}
		if !logger.Enabled(context.Background(), slog.LevelInfo) {
			t.Errorf("Expected info enabled (format %v)", format)
		}
	}
}
