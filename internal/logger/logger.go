package logger

import (
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
)

// Logger discards everything until Init is called
var Logger = slog.New(slog.NewTextHandler(io.Discard, nil))

// Init points Logger at <dir>/sheetmerge.log with the given level name
// (debug, info, warn, error). The returned function closes the log file.
func Init(dir, level string) (func() error, error) {
	var lvl slog.Level
	if err := lvl.UnmarshalText([]byte(strings.ToUpper(level))); err != nil {
		return nil, fmt.Errorf("invalid log level %q: %w", level, err)
	}

	// Create logs directory
	if err := os.MkdirAll(dir, 0755); err != nil {
		return nil, fmt.Errorf("failed to create log directory: %w", err)
	}

	// Create log file
	logFile, err := os.OpenFile(filepath.Join(dir, "sheetmerge.log"), os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0666)
	if err != nil {
		return nil, fmt.Errorf("failed to open log file: %w", err)
	}

	Logger = slog.New(slog.NewTextHandler(logFile, &slog.HandlerOptions{
		Level: lvl,
	}))
	return logFile.Close, nil
}

// Get returns the process logger for handing to core packages
func Get() *slog.Logger {
	return Logger
}

func Info(msg string, args ...any) {
	Logger.Info(msg, args...)
}

func Error(msg string, args ...any) {
	Logger.Error(msg, args...)
}

func Debug(msg string, args ...any) {
	Logger.Debug(msg, args...)
}

func Warn(msg string, args ...any) {
	Logger.Warn(msg, args...)
}
