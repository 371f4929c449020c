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
	mu          sync.RWMutex
	base        zerolog.Logger
	initialized bool
)

// Init configures the global JSON logger.
//
// Parameters:
//   - level: debug|info|warn|error (unknown values fall back to info).
//   - pretty: write human-readable console output instead of JSON.
//
// Init is normally called once from main with the values of config.AppConfig.Log.
func Init(level string, pretty bool) {
	zerolog.TimeFieldFormat = time.RFC3339Nano

	var w io.Writer = os.Stdout
	if pretty {
		w = zerolog.ConsoleWriter{Out: os.Stdout, TimeFormat: time.RFC3339}
	}

	mu.Lock()
	base = zerolog.New(w).With().Timestamp().Logger().Level(parseLevel(level))
	initialized = true
	mu.Unlock()
}

// L returns the global logger. When Init was never called, LOG_LEVEL and
// LOG_PRETTY are read from the environment.
func L() *zerolog.Logger {
	mu.RLock()
	ready := initialized
	mu.RUnlock()
	if !ready {
		Init(getenv("LOG_LEVEL", "info"), strings.EqualFold(getenv("LOG_PRETTY", "false"), "true"))
	}

	mu.RLock()
	defer mu.RUnlock()
	l := base
	return &l
}

// For returns a child logger tagged with component.
func For(component string) zerolog.Logger {
	return L().With().Str("component", component).Logger()
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
	case "disabled", "off":
		return zerolog.Disabled
	default:
		return zerolog.InfoLevel
	}
}
