package logger

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

func reset(t *testing.T) {
	t.Cleanup(func() { Log = zap.NewNop() })
}

func TestParseLevel(t *testing.T) {
	tests := []struct {
		in   string
		want zapcore.Level
	}{
		{"debug", zapcore.DebugLevel},
		{"info", zapcore.InfoLevel},
		{"warn", zapcore.WarnLevel},
		{"ERROR", zapcore.ErrorLevel},
		{"loud", zapcore.InfoLevel},
		{"", zapcore.InfoLevel},
	}

	for _, tc := range tests {
		t.Run(tc.in, func(t *testing.T) {
			if got := ParseLevel(tc.in); got != tc.want {
				t.Errorf("ParseLevel(%q) = %v, want %v", tc.in, got, tc.want)
			}
		})
	}
}

func TestFileOutput(t *testing.T) {
	reset(t)
	path := filepath.Join(t.TempDir(), "logs", "lowpoly.log")

	if err := Init(Options{Level: "warn", File: path}); err != nil {
		t.Fatalf("init: %v", err)
	}

	Info("hidden below level")
	Named("loop").Warn("large frame delta", zap.Float64("dt", 0.5))
	Error("render failed")
	Sync()

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("read log: %v", err)
	}
	out := string(data)

	if strings.Contains(out, "hidden below level") {
		t.Error("info entry written at warn level")
	}
	if !strings.Contains(out, "WARN") || !strings.Contains(out, "loop") || !strings.Contains(out, "large frame delta") {
		t.Errorf("named warning missing from log:\n%s", out)
	}
	if !strings.Contains(out, "render failed") {
		t.Errorf("error entry missing:\n%s", out)
	}
}

func TestConsoleOutput(t *testing.T) {
	reset(t)
	var buf bytes.Buffer

	if err := Init(Options{Level: "debug", Console: &buf}); err != nil {
		t.Fatalf("init: %v", err)
	}
	Named("snapshot").Debug("frame rendered", zap.Int("polygons", 12))
	Sync()

	out := buf.String()
	if !strings.Contains(out, "frame rendered") || !strings.Contains(out, "polygons") {
		t.Errorf("console output = %q", out)
	}
}

func TestNopBeforeInit(t *testing.T) {
	// Helpers must be safe to call before Init.
	Info("nothing")
	Error("nothing")
	Sync()
}
