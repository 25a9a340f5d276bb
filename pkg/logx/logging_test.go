package logx

import (
	"bytes"
	"encoding/json"
	"errors"
	"strings"
	"testing"

	"github.com/rs/zerolog"
)

func TestZeroLoggerIsNoop(t *testing.T) {
	var l Logger
	if !l.IsZero() {
		t.Fatal("expected zero logger")
	}
	// Must not panic.
	l.Info("hello", String("k", "v"))
}

func TestWithAppliesFieldsInOrder(t *testing.T) {
	var buf bytes.Buffer
	l := New(zerolog.New(&buf)).With(String("comp", "pager"), String("comp", "discord"))
	l.Warn("click failed", Err(errors.New("boom")), Int("page", 2))

	var m map[string]any
	if err := json.Unmarshal(buf.Bytes(), &m); err != nil {
		t.Fatalf("unmarshal log line: %v (%q)", err, buf.String())
	}
	if m["comp"] != "discord" {
		t.Fatalf("comp = %v, want discord", m["comp"])
	}
	if m["err"] != "boom" {
		t.Fatalf("err = %v, want boom", m["err"])
	}
	if m["page"] != float64(2) {
		t.Fatalf("page = %v, want 2", m["page"])
	}
	if m["level"] != "warn" {
		t.Fatalf("level = %v, want warn", m["level"])
	}
}

func TestParseLevel(t *testing.T) {
	t.Parallel()
	tests := []struct {
		in   string
		want zerolog.Level
	}{
		{"debug", zerolog.DebugLevel},
		{" WARNING ", zerolog.WarnLevel},
		{"error", zerolog.ErrorLevel},
		{"nonsense", zerolog.InfoLevel},
	}
	for _, tt := range tests {
		if got := parseLevel(tt.in, zerolog.InfoLevel); got != tt.want {
			t.Fatalf("parseLevel(%q) = %v, want %v", tt.in, got, tt.want)
		}
	}
}

func TestEnabledRespectsLevel(t *testing.T) {
	l := New(zerolog.New(&bytes.Buffer{}).Level(zerolog.WarnLevel))
	if l.Enabled(LevelDebug) {
		t.Fatal("debug should be disabled at warn level")
	}
	if !l.Enabled(LevelError) {
		t.Fatal("error should be enabled at warn level")
	}
}

func TestComponentTagsLine(t *testing.T) {
	var buf bytes.Buffer
	New(zerolog.New(&buf)).With(Component("telegram")).Info("callback routed")

	var m map[string]any
	if err := json.Unmarshal(buf.Bytes(), &m); err != nil {
		t.Fatalf("unmarshal log line: %v (%q)", err, buf.String())
	}
	if m["comp"] != "telegram" {
		t.Fatalf("comp = %v, want telegram", m["comp"])
	}
	if c, _ := m["caller"].(string); !strings.HasPrefix(c, "logging_test.go:") {
		t.Fatalf("caller = %v, want logging_test.go:<line>", m["caller"])
	}
}

func TestNewConsoleLevel(t *testing.T) {
	l := NewConsole("warn")
	if l.Enabled(LevelInfo) {
		t.Fatal("info enabled on a warn console logger")
	}
	if !l.Enabled(LevelError) {
		t.Fatal("error disabled on a warn console logger")
	}
}
