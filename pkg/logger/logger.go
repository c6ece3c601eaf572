package logger

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"strings"
	"sync"
)

// Leveled logger used by the server.
// - printf-style Debugf/Infof/Warnf/Errorf/Fatalf for call sites that just want a line
// - With(...) for structured fields (request id, route, status)
// - Init(level, format) selects level and text/json output

type Level int

const (
	LevelDebug Level = iota
	LevelInfo
	LevelWarn
	LevelError
	LevelFatal
)

// levelFatal sits above slog's error level so fatal lines are never filtered.
const levelFatal = slog.Level(12)

var (
	mu       sync.RWMutex
	out      io.Writer = os.Stdout
	format             = "text"
	level              = LevelInfo
	levelVar           = new(slog.LevelVar)
	base               = newSlog(out, format)
	exit               = os.Exit
)

func newSlog(w io.Writer, f string) *slog.Logger {
	opts := &slog.HandlerOptions{
		Level: levelVar,
		ReplaceAttr: func(groups []string, a slog.Attr) slog.Attr {
			if a.Key == slog.LevelKey {
				if l, ok := a.Value.Any().(slog.Level); ok && l == levelFatal {
					a.Value = slog.StringValue("FATAL")
				}
			}
			return a
		},
	}
	if f == "json" {
		return slog.New(slog.NewJSONHandler(w, opts))
	}
	return slog.New(slog.NewTextHandler(w, opts))
}

// Init sets the global log level (case-insensitive: debug, info, warn, error, fatal)
// and output format ("json" or "text"). Default level is Info, default format text.
func Init(l string, f ...string) {
	mu.Lock()
	defer mu.Unlock()
	switch strings.ToLower(strings.TrimSpace(l)) {
	case "debug":
		level = LevelDebug
	case "warn", "warning":
		level = LevelWarn
	case "error":
		level = LevelError
	case "fatal":
		level = LevelFatal
	default:
		level = LevelInfo
	}
	levelVar.Set(toSlog(level))
	if len(f) > 0 {
		format = strings.ToLower(strings.TrimSpace(f[0]))
		base = newSlog(out, format)
	}
	slog.SetDefault(base)
}

// SetOutput redirects log output; used by tests and by main when LOG_FILE is set.
func SetOutput(w io.Writer) {
	mu.Lock()
	defer mu.Unlock()
	out = w
	base = newSlog(out, format)
}

func toSlog(l Level) slog.Level {
	switch l {
	case LevelDebug:
		return slog.LevelDebug
	case LevelWarn:
		return slog.LevelWarn
	case LevelError:
		return slog.LevelError
	case LevelFatal:
		return levelFatal
	}
	return slog.LevelInfo
}

func current() *slog.Logger {
	mu.RLock()
	defer mu.RUnlock()
	return base
}

func logf(l slog.Level, f string, v ...interface{}) {
	lg := current()
	if !lg.Enabled(context.Background(), l) {
		return
	}
	lg.Log(context.Background(), l, fmt.Sprintf(f, v...))
}

func Debugf(f string, v ...interface{}) { logf(slog.LevelDebug, f, v...) }
func Infof(f string, v ...interface{})  { logf(slog.LevelInfo, f, v...) }
func Warnf(f string, v ...interface{})  { logf(slog.LevelWarn, f, v...) }
func Errorf(f string, v ...interface{}) { logf(slog.LevelError, f, v...) }

func Fatalf(f string, v ...interface{}) {
	current().Log(context.Background(), levelFatal, fmt.Sprintf(f, v...))
	exit(1)
}

// Debug/Info/Warn/Error helpers that accept a single string
func Debug(v string) { Debugf("%s", v) }
func Info(v string)  { Infof("%s", v) }
func Warn(v string)  { Warnf("%s", v) }
func Error(v string) { Errorf("%s", v) }

// With returns a structured logger carrying the given key/value pairs.
func With(args ...any) *slog.Logger {
	return current().With(args...)
}

// LevelString returns the current level as text.
func LevelString() string {
	mu.RLock()
	defer mu.RUnlock()
	switch level {
	case LevelDebug:
		return "debug"
	case LevelInfo:
		return "info"
	case LevelWarn:
		return "warn"
	case LevelError:
		return "error"
	case LevelFatal:
		return "fatal"
	}
	return "info"
}
