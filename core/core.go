package core

import "github.com/hupe1980/numbridge/logging"

// loggerAdapter wraps a logging.Logger and exposes convenience methods
// (LogDebug/LogWarn) that always carry the session id. It
// guarantees a non-nil logger by substituting a NoOpLogger when
// constructed with nil.
type loggerAdapter struct {
	logger    logging.Logger
	sessionID string
}

func newLoggerAdapter(l logging.Logger, sessionID string) *loggerAdapter {
	if l == nil {
		l = logging.NoOpLogger{}
	}
	return &loggerAdapter{logger: l, sessionID: sessionID}
}

// Logger returns the underlying logger.
func (l *loggerAdapter) Logger() logging.Logger {
	return l.logger
}

func (l *loggerAdapter) with(args []any) []any {
	return append([]any{"session_id", l.sessionID}, args...)
}

// LogDebug logs a debug message.
func (l *loggerAdapter) LogDebug(msg string, args ...any) {
	l.logger.Debug(msg, l.with(args)...)
}

// LogWarn logs a warning message.
func (l *loggerAdapter) LogWarn(msg string, args ...any) {
	l.logger.Warn(msg, l.with(args)...)
}
