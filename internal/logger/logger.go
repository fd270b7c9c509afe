// Package logger provides the application's leveled file logger.
//
// The terminal UI owns stdout, so log output goes to a file (or nowhere when no
// file is configured).
package logger

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"sync"
)

// LogLevel is the minimum severity that is written.
type LogLevel int

const (
	LevelDebug LogLevel = iota
	LevelInfo
	LevelWarning
	LevelError
)

// String returns the config spelling of the level.
func (l LogLevel) String() string {
	switch l {
	case LevelDebug:
		return "debug"
	case LevelInfo:
		return "info"
	case LevelWarning:
		return "warning"
	case LevelError:
		return "error"
	default:
		return fmt.Sprintf("level(%d)", int(l))
	}
}

func (l LogLevel) slogLevel() slog.Level {
	switch l {
	case LevelDebug:
		return slog.LevelDebug
	case LevelInfo:
		return slog.LevelInfo
	case LevelError:
		return slog.LevelError
	default:
		return slog.LevelWarn
	}
}

// ParseLevel converts a config string to a LogLevel. Unknown values map to warning.
func ParseLevel(level string) LogLevel {
	switch strings.ToLower(strings.TrimSpace(level)) {
	case "debug":
		return LevelDebug
	case "info":
		return LevelInfo
	case "warning", "warn":
		return LevelWarning
	case "error":
		return LevelError
	default:
		return LevelWarning
	}
}

var (
	mu   sync.RWMutex
	log  = slog.New(slog.NewTextHandler(io.Discard, nil))
	file *os.File
)

// Init opens path for appending and routes all log calls to it.
// An empty path discards output.
func Init(path string, level LogLevel) error {
	mu.Lock()
	defer mu.Unlock()
	return initLocked(path, level)
}

// Reinit closes the current log file and opens a new one.
func Reinit(path string, level LogLevel) error {
	return Init(path, level)
}

// InitWriter routes log output to w. Used by tests and the CLI --verbose flag.
func InitWriter(w io.Writer, level LogLevel) {
	mu.Lock()
	defer mu.Unlock()
	closeLocked()
	log = slog.New(slog.NewTextHandler(w, &slog.HandlerOptions{Level: level.slogLevel()}))
}

func initLocked(path string, level LogLevel) error {
	closeLocked()
	if path == "" {
		log = slog.New(slog.NewTextHandler(io.Discard, nil))
		return nil
	}
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("create log directory %s: %w", dir, err)
		}
	}
	f, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
	if err != nil {
		return fmt.Errorf("open log file %s: %w", path, err)
	}
	file = f
	log = slog.New(slog.NewTextHandler(f, &slog.HandlerOptions{Level: level.slogLevel()}))
	return nil
}

// Close flushes and closes the log file, if any.
func Close() {
	mu.Lock()
	defer mu.Unlock()
	closeLocked()
	log = slog.New(slog.NewTextHandler(io.Discard, nil))
}

func closeLocked() {
	if file != nil {
		_ = file.Sync()
		_ = file.Close()
		file = nil
	}
}

func write(level slog.Level, msg string, attrs ...slog.Attr) {
	mu.RLock()
	l := log
	mu.RUnlock()
	l.LogAttrs(context.Background(), level, msg, attrs...)
}

// Debug logs a printf-style debug message.
func Debug(format string, args ...any) {
	write(slog.LevelDebug, fmt.Sprintf(format, args...))
}

// Info logs a printf-style info message.
func Info(format string, args ...any) {
	write(slog.LevelInfo, fmt.Sprintf(format, args...))
}

// Warning logs a printf-style warning.
func Warning(format string, args ...any) {
	write(slog.LevelWarn, fmt.Sprintf(format, args...))
}

// Error logs a printf-style error message.
func Error(format string, args ...any) {
	write(slog.LevelError, fmt.Sprintf(format, args...))
}

// ErrorWithErr logs an error message with err attached.
func ErrorWithErr(err error, format string, args ...any) {
	if err == nil {
		Error(format, args...)
		return
	}
	write(slog.LevelError, fmt.Sprintf(format, args...), slog.String("error", err.Error()))
}
