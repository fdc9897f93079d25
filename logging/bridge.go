package logging

import (
	"context"
	"io"
	"log/slog"
	"os"
	"time"
)

// BridgeLogger wraps slog.Logger adding contextual cloning helpers and
// domain convenience methods. With* methods return modified copies.
type BridgeLogger struct {
	logger    *slog.Logger
	level     LogLevel
	context   map[string]any
	component string
	sessionID string
}

// LoggerConfig configures construction of a BridgeLogger.
type LoggerConfig struct {
	Level       LogLevel
	Format      string // json or text
	Output      io.Writer
	AddSource   bool
	Component   string
	SessionID   string
	CustomAttrs map[string]any
}

// DefaultLoggerConfig returns a text info level configuration on stderr.
func DefaultLoggerConfig() *LoggerConfig {
	return &LoggerConfig{Level: LogLevelInfo, Format: "text", Output: os.Stderr, CustomAttrs: map[string]any{}}
}

// NewLogger builds a BridgeLogger from a config (or defaults if nil).
func NewLogger(cfg *LoggerConfig) *BridgeLogger {
	if cfg == nil {
		cfg = DefaultLoggerConfig()
	}
	out := cfg.Output
	if out == nil {
		out = os.Stderr
	}
	opts := &slog.HandlerOptions{Level: slogLevel(cfg.Level), AddSource: cfg.AddSource}
	var handler slog.Handler
	if cfg.Format == "json" {
		handler = slog.NewJSONHandler(out, opts)
	} else {
		handler = slog.NewTextHandler(out, opts)
	}
	l := &BridgeLogger{logger: slog.New(handler), level: cfg.Level, context: map[string]any{}, component: cfg.Component, sessionID: cfg.SessionID}
	for k, v := range cfg.CustomAttrs {
		l.context[k] = v
	}
	return l
}

func slogLevel(l LogLevel) slog.Level {
	switch l {
	case LogLevelDebug:
		return slog.LevelDebug
	case LogLevelWarn:
		return slog.LevelWarn
	case LogLevelError:
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}

func (l *BridgeLogger) clone() *BridgeLogger {
	nl := *l
	nl.context = make(map[string]any, len(l.context))
	for k, v := range l.context {
		nl.context[k] = v
	}
	return &nl
}

// WithContext adds a key/value attribute that will be attached to every log entry.
func (l *BridgeLogger) WithContext(key string, value any) *BridgeLogger {
	nl := l.clone()
	nl.context[key] = value
	return nl
}

// WithComponent sets the logical component (session, engine, runner, cli).
func (l *BridgeLogger) WithComponent(c string) *BridgeLogger {
	nl := l.clone()
	nl.component = c
	return nl
}

// WithSession attaches a session identifier.
func (l *BridgeLogger) WithSession(sid string) *BridgeLogger {
	nl := l.clone()
	nl.sessionID = sid
	return nl
}

func (l *BridgeLogger) buildAttrs() []any {
	attrs := make([]any, 0, len(l.context)+2)
	if l.component != "" {
		attrs = append(attrs, slog.String("component", l.component))
	}
	if l.sessionID != "" {
		attrs = append(attrs, slog.String("session_id", l.sessionID))
	}
	for k, v := range l.context {
		attrs = append(attrs, slog.Any(k, v))
	}
	return attrs
}

func (l *BridgeLogger) log(level slog.Level, msg string, args ...any) {
	if level < slogLevel(l.level) {
		return
	}
	l.logger.Log(context.Background(), level, msg, append(l.buildAttrs(), args...)...)
}

// Debug logs at debug level.
func (l *BridgeLogger) Debug(msg string, args ...any) { l.log(slog.LevelDebug, msg, args...) }

// Info logs at info level.
func (l *BridgeLogger) Info(msg string, args ...any) { l.log(slog.LevelInfo, msg, args...) }

// Warn logs at warn level.
func (l *BridgeLogger) Warn(msg string, args ...any) { l.log(slog.LevelWarn, msg, args...) }

// Error logs at error level.
func (l *BridgeLogger) Error(msg string, args ...any) { l.log(slog.LevelError, msg, args...) }

// LogEvaluation records one Eval call. Failures are expected user mistakes,
// so they are logged at info rather than error.
func (l *BridgeLogger) LogEvaluation(sessionID string, dur time.Duration, success bool, err error) {
	args := []any{slog.String("session_id", sessionID), slog.Duration("duration", dur), slog.Bool("success", success)}
	if err != nil {
		args = append(args, slog.String("error", err.Error()))
	}
	msg := "Evaluation completed"
	level := slog.LevelDebug
	if !success {
		msg = "Evaluation failed"
		level = slog.LevelInfo
	}
	l.log(level, msg, args...)
}

// LogBootstrap records the outcome of running a session's bootstrap directives.
func (l *BridgeLogger) LogBootstrap(sessionID string, directives []string, err error) {
	args := []any{slog.String("session_id", sessionID), slog.Any("directives", directives)}
	if err != nil {
		l.log(slog.LevelWarn, "Session bootstrap failed", append(args, slog.String("error", err.Error()))...)
		return
	}
	l.log(slog.LevelDebug, "Session bootstrapped", args...)
}

// StartTimer returns a closure that logs the elapsed duration when invoked.
func (l *BridgeLogger) StartTimer(op string) func() {
	start := time.Now()
	return func() { l.Debug("Operation completed", "operation", op, "duration", time.Since(start)) }
}

// NewSlogLogger creates a BridgeLogger with the given level and format.
func NewSlogLogger(level LogLevel, format string, addSource bool) *BridgeLogger {
	cfg := DefaultLoggerConfig()
	cfg.Level = level
	if format != "" {
		cfg.Format = format
	}
	cfg.AddSource = addSource
	return NewLogger(cfg)
}
