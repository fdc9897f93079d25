package logging

import (
	"fmt"
	"io"

	"github.com/rs/zerolog"
)

// ZerologAdapter implements Logger on top of zerolog. The CLI uses it for
// human friendly console output.
type ZerologAdapter struct {
	logger zerolog.Logger
}

// NewZerologAdapter wraps an existing zerolog.Logger.
func NewZerologAdapter(logger zerolog.Logger) *ZerologAdapter {
	return &ZerologAdapter{logger: logger}
}

// NewConsoleLogger writes colorized, human readable lines to w at the given level.
func NewConsoleLogger(w io.Writer, level LogLevel, noColor bool) *ZerologAdapter {
	out := zerolog.ConsoleWriter{Out: w, NoColor: noColor, TimeFormat: "15:04:05"}
	return NewZerologAdapter(zerolog.New(out).Level(zerologLevel(level)).With().Timestamp().Logger())
}

func zerologLevel(l LogLevel) zerolog.Level {
	switch l {
	case LogLevelDebug:
		return zerolog.DebugLevel
	case LogLevelWarn:
		return zerolog.WarnLevel
	case LogLevelError:
		return zerolog.ErrorLevel
	default:
		return zerolog.InfoLevel
	}
}

func (z *ZerologAdapter) Debug(msg string, args ...any) { emit(z.logger.Debug(), msg, args) }
func (z *ZerologAdapter) Info(msg string, args ...any)  { emit(z.logger.Info(), msg, args) }
func (z *ZerologAdapter) Warn(msg string, args ...any)  { emit(z.logger.Warn(), msg, args) }
func (z *ZerologAdapter) Error(msg string, args ...any) { emit(z.logger.Error(), msg, args) }

// emit attaches slog-style key/value pairs to a zerolog event. A trailing
// key without a value is logged under "!BADKEY", matching slog.
func emit(ev *zerolog.Event, msg string, args []any) {
	if ev == nil {
		return
	}
	for i := 0; i < len(args); i++ {
		key, ok := args[i].(string)
		if !ok || i+1 == len(args) {
			ev = ev.Interface("!BADKEY", args[i])
			continue
		}
		i++
		switch v := args[i].(type) {
		case error:
			ev = ev.AnErr(key, v)
		case fmt.Stringer:
			ev = ev.Str(key, v.String())
		default:
			ev = ev.Interface(key, v)
		}
	}
	ev.Msg(msg)
}
