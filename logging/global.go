package logging

import (
	"log/slog"
	"os"
	"strings"
)

type LoggingService struct {
	Logger     *slog.Logger
	rotatingFn *RotatingLogger
}

var DefaultLoggingService *LoggingService

// InitLogger initializes the global logger instance.
// Console output uses level, the file in logDir always records debug and above.
func InitLogger(logDir string, level string, retentionWeeks int) {
	logger, rotating := SetupLogger(logDir, parseLogLevel(level), retentionWeeks)
	DefaultLoggingService = &LoggingService{
		Logger:     logger,
		rotatingFn: rotating,
	}
	slog.SetDefault(DefaultLoggingService.Logger)
}

// Close flushes and closes the log file of the global logger, if any
func Close() error {
	if DefaultLoggingService == nil || DefaultLoggingService.rotatingFn == nil {
		return nil
	}
	return DefaultLoggingService.rotatingFn.Close()
}

func parseLogLevel(level string) slog.Level {
	switch strings.ToLower(level) {
	case "debug":
		return slog.LevelDebug
	case "warn", "warning":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}

// Package-level functions for direct access

func Info(msg string, args ...any) {
	logger(slog.LevelInfo).Info(msg, args...)
}

func Error(msg string, args ...any) {
	logger(slog.LevelError).Error(msg, args...)
}

func Warn(msg string, args ...any) {
	logger(slog.LevelWarn).Warn(msg, args...)
}

func Debug(msg string, args ...any) {
	logger(slog.LevelDebug).Debug(msg, args...)
}

// logger returns the global logger, or a stderr fallback at the given level when not initialized
func logger(level slog.Level) *slog.Logger {
	if DefaultLoggingService == nil || DefaultLoggingService.Logger == nil {
		return slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
			Level: level,
		}))
	}
	return DefaultLoggingService.Logger
}
