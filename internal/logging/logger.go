package logging

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"strings"
	"time"

	"gopkg.in/natefinch/lumberjack.v2"
)

// LogLevel represents different log levels
type LogLevel int

const (
	LevelDebug LogLevel = iota
	LevelInfo
	LevelWarn
	LevelError
	LevelFatal
)

// String returns the string representation of the log level
func (l LogLevel) String() string {
	switch l {
	case LevelDebug:
		return "DEBUG"
	case LevelInfo:
		return "INFO"
	case LevelWarn:
		return "WARN"
	case LevelError:
		return "ERROR"
	case LevelFatal:
		return "FATAL"
	default:
		return "UNKNOWN"
	}
}

// ParseLevel maps a configuration string onto a LogLevel.
func ParseLevel(level string) (LogLevel, error) {
	switch strings.ToLower(strings.TrimSpace(level)) {
	case "debug":
		return LevelDebug, nil
	case "info", "":
		return LevelInfo, nil
	case "warn", "warning":
		return LevelWarn, nil
	case "error":
		return LevelError, nil
	case "fatal":
		return LevelFatal, nil
	default:
		return LevelInfo, fmt.Errorf("unknown log level %q", level)
	}
}

// Logger interface for structured logging
type Logger interface {
	Debug(ctx context.Context, msg string, fields ...interface{})
	Info(ctx context.Context, msg string, fields ...interface{})
	Warn(ctx context.Context, err error, msg string, fields ...interface{})
	Error(ctx context.Context, err error, msg string, fields ...interface{})
	Fatal(ctx context.Context, err error, msg string, fields ...interface{})

	With(fields ...interface{}) Logger
	WithComponent(component string) Logger
}

// PulseLogger implements Logger on top of log/slog.
type PulseLogger struct {
	logger    *slog.Logger
	level     LogLevel
	component string
	fields    []interface{}
}

// LoggerConfig holds logger configuration
type LoggerConfig struct {
	Level     LogLevel
	Format    string // "json" or "text"
	Output    io.Writer
	AddSource bool
	Component string
}

// DefaultConfig returns default logger configuration. Logs go to stderr so
// that reports written to stdout stay machine readable.
func DefaultConfig() *LoggerConfig {
	return &LoggerConfig{
		Level:  LevelInfo,
		Format: "text",
		Output: os.Stderr,
	}
}

// NewLogger creates a new structured logger
func NewLogger(config *LoggerConfig) *PulseLogger {
	if config == nil {
		config = DefaultConfig()
	}
	output := config.Output
	if output == nil {
		output = os.Stderr
	}

	var handler slog.Handler

	opts := &slog.HandlerOptions{
		Level:     toSlogLevel(config.Level),
		AddSource: config.AddSource,
	}

	if config.Format == "json" {
		handler = slog.NewJSONHandler(output, opts)
	} else {
		handler = slog.NewTextHandler(output, opts)
	}

	return &PulseLogger{
		logger:    slog.New(handler),
		level:     config.Level,
		component: config.Component,
	}
}

// NewNop returns a logger that discards everything.
func NewNop() *PulseLogger {
	return NewLogger(&LoggerConfig{Level: LevelFatal + 1, Output: io.Discard})
}

func toSlogLevel(level LogLevel) slog.Level {
	switch level {
	case LevelDebug:
		return slog.LevelDebug
	case LevelInfo:
		return slog.LevelInfo
	case LevelWarn:
		return slog.LevelWarn
	default:
		return slog.LevelError
	}
}

// Debug logs a debug message
func (l *PulseLogger) Debug(ctx context.Context, msg string, fields ...interface{}) {
	if l.level > LevelDebug {
		return
	}
	l.log(ctx, slog.LevelDebug, nil, msg, fields...)
}

// Info logs an info message
func (l *PulseLogger) Info(ctx context.Context, msg string, fields ...interface{}) {
	if l.level > LevelInfo {
		return
	}
	l.log(ctx, slog.LevelInfo, nil, msg, fields...)
}

// Warn logs a warning message
func (l *PulseLogger) Warn(ctx context.Context, err error, msg string, fields ...interface{}) {
	if l.level > LevelWarn {
		return
	}
	l.log(ctx, slog.LevelWarn, err, msg, fields...)
}

// Error logs an error message
func (l *PulseLogger) Error(ctx context.Context, err error, msg string, fields ...interface{}) {
	if l.level > LevelError {
		return
	}
	l.log(ctx, slog.LevelError, err, msg, fields...)
}

// Fatal logs at ERROR level. It does not exit; the caller decides.
func (l *PulseLogger) Fatal(ctx context.Context, err error, msg string, fields ...interface{}) {
	if l.level > LevelFatal {
		return
	}
	l.log(ctx, slog.LevelError, err, msg, fields...)
}

// With creates a new logger with additional fields
func (l *PulseLogger) With(fields ...interface{}) Logger {
	merged := make([]interface{}, 0, len(l.fields)+len(fields))
	merged = append(merged, l.fields...)
	merged = append(merged, fields...)

	return &PulseLogger{
		logger:    l.logger,
		level:     l.level,
		component: l.component,
		fields:    merged,
	}
}

// WithComponent creates a new logger with component context
func (l *PulseLogger) WithComponent(component string) Logger {
	return &PulseLogger{
		logger:    l.logger,
		level:     l.level,
		component: component,
		fields:    l.fields,
	}
}

func (l *PulseLogger) log(ctx context.Context, level slog.Level, err error, msg string, fields ...interface{}) {
	if !l.logger.Handler().Enabled(ctx, level) {
		return
	}

	attrs := make([]slog.Attr, 0, (len(l.fields)+len(fields))/2+2)

	if l.component != "" {
		attrs = append(attrs, slog.String("component", l.component))
	}

	if err != nil {
		attrs = append(attrs, slog.String("error", err.Error()))
	}

	attrs = appendPairs(attrs, l.fields)
	attrs = appendPairs(attrs, fields)

	record := slog.NewRecord(time.Now(), level, msg, 0)
	record.AddAttrs(attrs...)

	_ = l.logger.Handler().Handle(ctx, record)
}

// appendPairs converts alternating key/value fields into attributes. Pairs
// with a non-string key and a trailing odd value are dropped.
func appendPairs(attrs []slog.Attr, fields []interface{}) []slog.Attr {
	for i := 0; i+1 < len(fields); i += 2 {
		if key, ok := fields[i].(string); ok {
			attrs = append(attrs, slog.Any(key, fields[i+1]))
		}
	}
	return attrs
}

// RotationConfig controls the size based rotation of a log file.
type RotationConfig struct {
	Path       string
	MaxSizeMB  int
	MaxBackups int
	MaxAgeDays int
}

// FileLogger writes to a rotating log file.
type FileLogger struct {
	*PulseLogger
	writer *lumberjack.Logger
}

// NewFileLogger creates a file-based logger rotated by lumberjack.
func NewFileLogger(config *LoggerConfig, rotation RotationConfig) (*FileLogger, error) {
	if strings.TrimSpace(rotation.Path) == "" {
		return nil, fmt.Errorf("log file path cannot be empty")
	}
	if config == nil {
		config = DefaultConfig()
	}

	writer := &lumberjack.Logger{
		Filename:   rotation.Path,
		MaxSize:    rotation.MaxSizeMB,
		MaxBackups: rotation.MaxBackups,
		MaxAge:     rotation.MaxAgeDays,
	}

	fileConfig := *config
	fileConfig.Output = writer
	fileConfig.Format = "json"

	return &FileLogger{
		PulseLogger: NewLogger(&fileConfig),
		writer:      writer,
	}, nil
}

// Close closes the underlying log file.
func (f *FileLogger) Close() error {
	if f.writer != nil {
		return f.writer.Close()
	}
	return nil
}

// MultiLogger writes to multiple loggers
type MultiLogger struct {
	loggers []Logger
}

// NewMultiLogger creates a logger that writes to multiple destinations
func NewMultiLogger(loggers ...Logger) *MultiLogger {
	return &MultiLogger{loggers: loggers}
}

// Debug logs to all loggers
func (m *MultiLogger) Debug(ctx context.Context, msg string, fields ...interface{}) {
	for _, logger := range m.loggers {
		logger.Debug(ctx, msg, fields...)
	}
}

// Info logs to all loggers
func (m *MultiLogger) Info(ctx context.Context, msg string, fields ...interface{}) {
	for _, logger := range m.loggers {
		logger.Info(ctx, msg, fields...)
	}
}

// Warn logs to all loggers
func (m *MultiLogger) Warn(ctx context.Context, err error, msg string, fields ...interface{}) {
	for _, logger := range m.loggers {
		logger.Warn(ctx, err, msg, fields...)
	}
}

// Error logs to all loggers
func (m *MultiLogger) Error(ctx context.Context, err error, msg string, fields ...interface{}) {
	for _, logger := range m.loggers {
		logger.Error(ctx, err, msg, fields...)
	}
}

// Fatal logs to all loggers
func (m *MultiLogger) Fatal(ctx context.Context, err error, msg string, fields ...interface{}) {
	for _, logger := range m.loggers {
		logger.Fatal(ctx, err, msg, fields...)
	}
}

// With creates a new multi-logger with additional fields
func (m *MultiLogger) With(fields ...interface{}) Logger {
	newLoggers := make([]Logger, len(m.loggers))
	for i, logger := range m.loggers {
		newLoggers[i] = logger.With(fields...)
	}
	return &MultiLogger{loggers: newLoggers}
}

// WithComponent creates a new multi-logger with component context
func (m *MultiLogger) WithComponent(component string) Logger {
	newLoggers := make([]Logger, len(m.loggers))
	for i, logger := range m.loggers {
		newLoggers[i] = logger.WithComponent(component)
	}
	return &MultiLogger{loggers: newLoggers}
}

// PerfLogger tracks the duration of one operation.
type PerfLogger struct {
	Logger
	startTime time.Time
	operation string
}

// StartOperation begins performance tracking on any Logger.
func StartOperation(logger Logger, operation string) *PerfLogger {
	return &PerfLogger{
		Logger:    logger.With("operation", operation),
		startTime: time.Now(),
		operation: operation,
	}
}

// End completes performance tracking and logs the duration
func (p *PerfLogger) End(ctx context.Context, fields ...interface{}) {
	duration := time.Since(p.startTime)
	fields = append(fields,
		"duration_ms", duration.Milliseconds(),
		"duration", duration.String(),
	)
	p.Info(ctx, "Operation completed", fields...)
}

// EndWithError completes performance tracking and logs an error
func (p *PerfLogger) EndWithError(ctx context.Context, err error) {
	duration := time.Since(p.startTime)
	p.Error(ctx, err, "Operation failed",
		"duration_ms", duration.Milliseconds(),
		"duration", duration.String(),
	)
}
