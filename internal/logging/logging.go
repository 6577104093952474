// Package logging builds the JSON line logger shared by every component.
package logging

import (
	"io"
	"os"
	"strings"
	"time"

	"github.com/phuslu/log"
)

// New returns a logger writing one JSON object per line to w, stamped with a
// "ts" field in loc.
func New(w io.Writer, loc *time.Location, level string) *log.Logger {
	if w == nil {
		w = os.Stdout
	}
	if loc == nil {
		loc = time.UTC
	}
	return &log.Logger{
		Level:        ParseLevel(level),
		TimeField:    "ts",
		TimeFormat:   time.RFC3339Nano,
		TimeLocation: loc,
		Writer:       &log.IOWriter{Writer: w},
	}
}

// Nop discards everything. Used by tests and optional collaborators.
func Nop() *log.Logger {
	return &log.Logger{Level: log.PanicLevel + 1, Writer: &log.IOWriter{Writer: io.Discard}}
}

// ParseLevel maps a config string onto a level, defaulting to info.
func ParseLevel(s string) log.Level {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "trace":
		return log.TraceLevel
	case "debug":
		return log.DebugLevel
	case "warn", "warning":
		return log.WarnLevel
	case "error":
		return log.ErrorLevel
	default:
		return log.InfoLevel
	}
}
