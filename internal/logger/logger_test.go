package logger

import (
	"bytes"
	"log/slog"
	"strings"
	"testing"
)

func TestParseLevel(t *testing.T) {
	cases := map[string]slog.Level{
		"debug":   slog.LevelDebug,
		" WARN ":  slog.LevelWarn,
		"error":   slog.LevelError,
		"":        slog.LevelInfo,
		"verbose": slog.LevelInfo,
	}
	for in, want := range cases {
		if got := ParseLevel(in); got != want {
			t.Fatalf("ParseLevel(%q) = %v, want %v", in, got, want)
		}
	}
}

func TestInitWritesAtLevel(t *testing.T) {
	var buf bytes.Buffer
	Init("warn", &buf)

	With("mode", "race").Info("hidden")
	With("mode", "race").Warn("failed to submit result")

	out := buf.String()
	if strings.Contains(out, "hidden") {
		t.Fatalf("expected info to be filtered: %s", out)
	}
	if !strings.Contains(out, "failed to submit result") || !strings.Contains(out, "mode=race") {
		t.Fatalf("expected warn line with attrs: %s", out)
	}
}
