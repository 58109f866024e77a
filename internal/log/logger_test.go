package log

import (
	"bytes"
	"encoding/json"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func resetDefault(t *testing.T) {
	t.Helper()
	prev := slog.Default()
	t.Cleanup(func() {
		_ = Close()
		mu.Lock()
		defaultLogger = nil
		mu.Unlock()
		slog.SetDefault(prev)
	})
}

func TestInitWriterJSON(t *testing.T) {
	resetDefault(t)
	var buf bytes.Buffer
	InitWriter(&buf, Options{Level: "warn", Format: "json"})

	WithComponent("engine").Info("dropped")
	WithOperation(WithComponent("engine"), "resize").Warn("kept", "width", 0)

	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	if len(lines) != 1 {
		t.Fatalf("got %d records, want 1:\n%s", len(lines), buf.String())
	}
	var rec map[string]any
	if err := json.Unmarshal([]byte(lines[0]), &rec); err != nil {
		t.Fatalf("record is not json: %v", err)
	}
	for k, want := range map[string]any{
		"msg":       "kept",
		"level":     "WARN",
		"app":       "cycloid-progress",
		"component": "engine",
		"op":        "resize",
	} {
		if rec[k] != want {
			t.Errorf("%s = %v, want %v", k, rec[k], want)
		}
	}
}

func TestInitWriterFile(t *testing.T) {
	resetDefault(t)
	path := filepath.Join(t.TempDir(), "app.log")
	var console bytes.Buffer
	InitWriter(&console, Options{Level: "debug", File: path})

	L().Debug("to both", "n", 1)
	if err := Close(); err != nil {
		t.Fatalf("Close: %v", err)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("read log file: %v", err)
	}
	if !strings.Contains(string(data), `"msg":"to both"`) {
		t.Fatalf("file log missing record: %s", data)
	}
	if !strings.Contains(console.String(), "msg=\"to both\"") {
		t.Fatalf("console log missing record: %s", console.String())
	}
}

func TestParseLevel(t *testing.T) {
	tests := map[string]slog.Level{
		"debug":   slog.LevelDebug,
		" WARN ":  slog.LevelWarn,
		"warning": slog.LevelWarn,
		"error":   slog.LevelError,
		"":        slog.LevelInfo,
		"loud":    slog.LevelInfo,
	}
	for in, want := range tests {
		if got := ParseLevel(in); got != want {
			t.Errorf("ParseLevel(%q) = %v, want %v", in, got, want)
		}
	}
}

func TestFromEnv(t *testing.T) {
	t.Setenv(EnvLogLevel, "error")
	t.Setenv(EnvLogFormat, "json")
	t.Setenv(EnvLogSource, "TRUE")
	t.Setenv(EnvLogFile, "")
	want := Options{Level: "error", Format: "json", AddSource: true}
	if got := FromEnv(); got != want {
		t.Fatalf("FromEnv = %+v, want %+v", got, want)
	}
}
