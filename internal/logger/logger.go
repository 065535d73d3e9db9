package logger

import (
	"io"
	"log/slog"
	"os"
)

var (
	log   *slog.Logger
	level = new(slog.LevelVar)
)

func init() {
	if os.Getenv("BRANDCHAT_DEBUG") == "true" {
		level.Set(slog.LevelDebug)
	}

	SetOutput(os.Stderr)
}

// SetOutput redirects all log output to w, keeping the current level.
func SetOutput(w io.Writer) {
	opts := &slog.HandlerOptions{Level: level}
	log = slog.New(slog.NewTextHandler(w, opts))
}

// SetDebug toggles debug-level output.
func SetDebug(enabled bool) {
	if enabled {
		level.Set(slog.LevelDebug)
		return
	}
	level.Set(slog.LevelInfo)
}

func Debug(msg string, args ...any) {
	log.Debug(msg, args...)
}

func Info(msg string, args ...any) {
	log.Info(msg, args...)
}

func Warn(msg string, args ...any) {
	log.Warn(msg, args...)
}

func Error(msg string, args ...any) {
	log.Error(msg, args...)
}

func Fatal(msg string, args ...any) {
	log.Error(msg, args...)
	os.Exit(1)
}
