package logger

import (
	"io"
	"os"
	"strings"
	"sync"
	"time"

	"github.com/rs/zerolog"
)

var (
	mu    sync.RWMutex
	base  zerolog.Logger
	ready bool
	out   io.Writer = os.Stdout
)

// Init configures the global JSON logger.
//
// Parameters:
//   - level: debug|info|warn|error (anything else means info).
//   - pretty: human-readable console output instead of JSON lines.
func Init(level string, pretty bool) {
	zerolog.TimeFieldFormat = time.RFC3339Nano

	mu.Lock()
	defer mu.Unlock()
	w := out
	if pretty {
		w = zerolog.ConsoleWriter{Out: out, TimeFormat: time.RFC3339}
	}
	base = zerolog.New(w).With().Timestamp().Str("service", "volseason").Logger().Level(parseLevel(level))
	ready = true
}

// InitFromEnv configures the logger from LOG_LEVEL and LOG_PRETTY, for
// code paths that run before configuration is loaded.
func InitFromEnv() {
	Init(getenv("LOG_LEVEL", "info"), strings.EqualFold(getenv("LOG_PRETTY", "false"), "true"))
}

// SetOutput redirects log output; call Init afterwards to apply it.
func SetOutput(w io.Writer) {
	mu.Lock()
	out = w
	mu.Unlock()
}

// L returns the global logger. Call Init() once on startup.
func L() *zerolog.Logger {
	mu.RLock()
	ok := ready
	mu.RUnlock()
	if !ok {
		InitFromEnv()
	}
	mu.RLock()
	defer mu.RUnlock()
	l := base
	return &l
}

// With returns a child logger tagged with the given component name.
func With(component string) *zerolog.Logger {
	l := L().With().Str("component", component).Logger()
	return &l
}

func getenv(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}

func parseLevel(s string) zerolog.Level {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "debug":
		return zerolog.DebugLevel
	case "warn", "warning":
		return zerolog.WarnLevel
	case "error", "err":
		return zerolog.ErrorLevel
	default:
		return zerolog.InfoLevel
	}
}
