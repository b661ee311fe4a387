package logger

import (
	"bytes"
	"encoding/json"
	"os"
	"testing"

	"github.com/rs/zerolog"
)

func TestParseLevel(t *testing.T) {
	cases := []struct {
		in   string
		want zerolog.Level
	}{
		{"debug", zerolog.DebugLevel},
		{"warn", zerolog.WarnLevel},
		{"warning", zerolog.WarnLevel},
		{"error", zerolog.ErrorLevel},
		{"ERR", zerolog.ErrorLevel},
		{" info ", zerolog.InfoLevel},
		{"", zerolog.InfoLevel},
		{"something", zerolog.InfoLevel},
	}
	for _, c := range cases {
		if got := parseLevel(c.in); got != c.want {
			t.Fatalf("parseLevel(%q)=%v, want %v", c.in, got, c.want)
		}
	}
}

func TestGetenv(t *testing.T) {
	t.Setenv("X", "val")
	if v := getenv("X", "def"); v != "val" {
		t.Fatalf("getenv returned %q, want 'val'", v)
	}
	if v := getenv("Y_UNSET_FOR_TEST", "def"); v != "def" {
		t.Fatalf("getenv returned %q, want 'def'", v)
	}
}

func TestInitAndL(t *testing.T) {
	Init("info", false)
	if L() == nil {
		t.Fatalf("L() returned nil")
	}
	if L().GetLevel() != zerolog.InfoLevel {
		t.Fatalf("expected info level, got %v", L().GetLevel())
	}

	Init("debug", true)
	if L().GetLevel() != zerolog.DebugLevel {
		t.Fatalf("expected debug level, got %v", L().GetLevel())
	}
}

func TestInitFromEnv(t *testing.T) {
	t.Setenv("LOG_LEVEL", "error")
	t.Setenv("LOG_PRETTY", "false")
	InitFromEnv()
	if L().GetLevel() != zerolog.ErrorLevel {
		t.Fatalf("expected error level, got %v", L().GetLevel())
	}
}

func TestWith_TagsComponent(t *testing.T) {
	var buf bytes.Buffer
	SetOutput(&buf)
	t.Cleanup(func() { SetOutput(os.Stdout); Init("info", false) })
	Init("info", false)

	l := With("polygon")
	l.Info().Msg("hello")

	var line map[string]any
	if err := json.Unmarshal(buf.Bytes(), &line); err != nil {
		t.Fatalf("log line is not JSON: %v (%q)", err, buf.String())
	}
	if line["component"] != "polygon" || line["message"] != "hello" || line["service"] != "volseason" {
		t.Fatalf("unexpected fields: %v", line)
	}
}

// Ensure L() never returns nil and initializes level if not set
func TestLoggerAccessor_NotNil(t *testing.T) {
	t.Setenv("LOG_LEVEL", "warn")
	mu.Lock()
	base = zerolog.Logger{}
	ready = false
	mu.Unlock()
	lg := L()
	if lg == nil {
		t.Fatalf("logger is nil")
	}
	if lg.GetLevel() != zerolog.WarnLevel {
		t.Fatalf("logger not initialized from env, level=%v", lg.GetLevel())
	}
}

func TestWith_ChainsEvents(t *testing.T) {
	var buf bytes.Buffer
	SetOutput(&buf)
	t.Cleanup(func() { SetOutput(os.Stdout); Init("info", false) })
	Init("debug", false)

	With("service").Warn().Str("ticker", "SPY").Msg("fetch bars failed")
	With("service").Debug().Msg("second")

	lines := bytes.Split(bytes.TrimSpace(buf.Bytes()), []byte("\n"))
	if len(lines) != 2 {
		t.Fatalf("want 2 lines, got %d: %q", len(lines), buf.String())
	}
	var first map[string]any
	if err := json.Unmarshal(lines[0], &first); err != nil {
		t.Fatalf("log line is not JSON: %v", err)
	}
	if first["level"] != "warn" || first["ticker"] != "SPY" || first["component"] != "service" {
		t.Fatalf("unexpected fields: %v", first)
	}
}
