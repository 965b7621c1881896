package logging

import (
	"io"
	"log/slog"
	"os"
	"strings"
)

// Logger is the structured logger used across jsonfold
type Logger interface {
	Debug(msg string, args ...any)
	Info(msg string, args ...any)
	Warn(msg string, args ...any)
	Error(msg string, args ...any)
	With(args ...any) Logger
	SetLevel(level slog.Level)
}

// Config holds logger configuration
type Config struct {
	Level   slog.Level
	Format  Format
	Output  io.Writer
	AddTime bool
}

// Format represents the output format
type Format int

const (
	FormatText Format = iota
	FormatJSON
)

// slogLogger wraps slog.Logger; loggers derived with With share the level
type slogLogger struct {
	logger *slog.Logger
	level  *slog.LevelVar
}

// NewLogger creates a new logger with the given configuration
func NewLogger(config Config) Logger {
	if config.Output == nil {
		config.Output = os.Stderr
	}

	level := new(slog.LevelVar)
	level.Set(config.Level)
	opts := &slog.HandlerOptions{Level: level}
	if !config.AddTime {
		opts.ReplaceAttr = dropTime
	}

	var handler slog.Handler
	switch config.Format {
	case FormatJSON:
		handler = slog.NewJSONHandler(config.Output, opts)
	default:
		handler = slog.NewTextHandler(config.Output, opts)
	}

	return &slogLogger{logger: slog.New(handler), level: level}
}

func dropTime(groups []string, a slog.Attr) slog.Attr {
	if a.Key == slog.TimeKey && len(groups) == 0 {
		return slog.Attr{}
	}
	return a
}

// NewDefaultLogger logs warnings and errors to stderr
func NewDefaultLogger() Logger {
	return NewLogger(Config{Level: slog.LevelWarn, Format: FormatText, Output: os.Stderr})
}

// NewQuietLogger creates a logger that only shows errors
func NewQuietLogger() Logger {
	return NewLogger(Config{Level: slog.LevelError, Format: FormatText, Output: os.Stderr})
}

// NewVerboseLogger creates a logger that shows debug information
func NewVerboseLogger() Logger {
	return NewLogger(Config{Level: slog.LevelDebug, Format: FormatText, Output: os.Stderr})
}

// NewDisabledLogger discards everything (useful for tests)
func NewDisabledLogger() Logger {
	return NewLogger(Config{Level: slog.Level(1000), Output: io.Discard})
}

// ParseLevel maps a level name to a slog level, falling back to def
func ParseLevel(name string, def slog.Level) slog.Level {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "debug":
		return slog.LevelDebug
	case "info":
		return slog.LevelInfo
	case "warn", "warning":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return def
	}
}

// NewFileLoggerFromEnv returns a file logger when JSONFOLD_DEBUG_FILE is set.
// JSONFOLD_DEBUG_LEVEL picks the level (debug by default). The second result is
// false when the variable is unset or the file cannot be opened.
func NewFileLoggerFromEnv() (Logger, bool) {
	path := os.Getenv("JSONFOLD_DEBUG_FILE")
	if path == "" {
		return nil, false
	}
	file, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0644)
	if err != nil {
		return nil, false
	}
	return NewLogger(Config{
		Level:   ParseLevel(os.Getenv("JSONFOLD_DEBUG_LEVEL"), slog.LevelDebug),
		Format:  FormatText,
		Output:  file,
		AddTime: true,
	}), true
}

func (l *slogLogger) Debug(msg string, args ...any) {
	l.logger.Debug(msg, args...)
}

func (l *slogLogger) Info(msg string, args ...any) {
	l.logger.Info(msg, args...)
}

func (l *slogLogger) Warn(msg string, args ...any) {
	l.logger.Warn(msg, args...)
}

func (l *slogLogger) Error(msg string, args ...any) {
	l.logger.Error(msg, args...)
}

// With returns a logger with additional attributes
func (l *slogLogger) With(args ...any) Logger {
	return &slogLogger{logger: l.logger.With(args...), level: l.level}
}

// SetLevel changes the level of this logger and every logger derived from it
func (l *slogLogger) SetLevel(level slog.Level) {
	l.level.Set(level)
}

var globalLogger Logger = NewDefaultLogger()

// SetGlobalLogger sets the global logger instance
func SetGlobalLogger(logger Logger) {
	globalLogger = logger
}

// GetGlobalLogger returns the global logger instance
func GetGlobalLogger() Logger {
	return globalLogger
}

func Debug(msg string, args ...any) {
	globalLogger.Debug(msg, args...)
}

func Info(msg string, args ...any) {
	globalLogger.Info(msg, args...)
}

func Warn(msg string, args ...any) {
	globalLogger.Warn(msg, args...)
}

func Error(msg string, args ...any) {
	globalLogger.Error(msg, args...)
}

// NewComponentLogger derives a logger tagged with the component name from the global logger
func NewComponentLogger(component string) Logger {
	return globalLogger.With("component", component)
}
