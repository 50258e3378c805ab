// Package logging centralizes zerolog setup. Configure is called once per
// process (or per test binary); everything after that asks for a component
// logger with New.
package logging

import (
	"io"
	"os"
	"strconv"
	"strings"
	"sync"
	"time"

	"github.com/rs/zerolog"
)

// Profile selects a base configuration before env overrides apply.
type Profile int

const (
	// Runtime is console output at info level.
	Runtime Profile = iota
	// Test is plain output at debug level, no color, no timestamps.
	Test
)

var (
	mu     sync.Mutex
	root   zerolog.Logger
	loaded bool
)

// Configure initializes the process logger. Later calls replace the earlier
// configuration, which the test bootstrap relies on.
//
// Env overrides:
//
//	MQLINK_LOG_LEVEL      trace|debug|info|warn|error|off
//	MQLINK_LOG_TIMESTAMP  bool, include timestamps
//	MQLINK_LOG_NOCOLOR    bool, strip color from console output
func Configure(profile Profile, out io.Writer) {
	if out == nil {
		out = os.Stderr
	}

	level := zerolog.InfoLevel
	color := true
	timestamp := true
	if profile == Test {
		level = zerolog.DebugLevel
		color = false
		timestamp = false
	}

	if v := os.Getenv("MQLINK_LOG_LEVEL"); v != "" {
		level = parseLevel(v, level)
	}
	if v := os.Getenv("MQLINK_LOG_TIMESTAMP"); v != "" {
		timestamp = parseBool(v, timestamp)
	}
	if v := os.Getenv("MQLINK_LOG_NOCOLOR"); v != "" {
		color = !parseBool(v, !color)
	}

	cw := zerolog.ConsoleWriter{Out: out, NoColor: !color, TimeFormat: time.TimeOnly}
	logger := zerolog.New(cw).Level(level)
	if timestamp {
		logger = logger.With().Timestamp().Logger()
	}

	mu.Lock()
	root = logger
	loaded = true
	mu.Unlock()
}

// New returns a logger tagged with a component name, configuring the
// Runtime profile first if nothing has run Configure yet.
func New(component string) zerolog.Logger {
	mu.Lock()
	ready := loaded
	mu.Unlock()
	if !ready {
		Configure(Runtime, os.Stderr)
	}
	mu.Lock()
	defer mu.Unlock()
	return root.With().Str("component", component).Logger()
}

func parseLevel(s string, fallback zerolog.Level) zerolog.Level {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "trace":
		return zerolog.TraceLevel
	case "debug":
		return zerolog.DebugLevel
	case "info":
		return zerolog.InfoLevel
	case "warn", "warning":
		return zerolog.WarnLevel
	case "error":
		return zerolog.ErrorLevel
	case "off", "disabled":
		return zerolog.Disabled
	}
	return fallback
}

func parseBool(s string, fallback bool) bool {
	b, err := strconv.ParseBool(strings.TrimSpace(s))
	if err != nil {
		return fallback
	}
	return b
}
