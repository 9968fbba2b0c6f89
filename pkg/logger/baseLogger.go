package logger

import (
	"io"
	"os"

	"github.com/rs/zerolog"
)

// BaseLogger is a thin wrapper over zerolog that carries a component prefix.
type BaseLogger struct {
	zl     zerolog.Logger
	writer io.Writer
	prefix string
}

func NewLogger(writer io.Writer, prefix string) *BaseLogger {
	if writer == nil {
		writer = os.Stdout
	}
	zl := zerolog.New(writer).With().Timestamp().Str("component", prefix).Logger()
	return &BaseLogger{zl: zl, writer: writer, prefix: prefix}
}

// NewConsoleLogger writes human-readable output, used by cmd/application.
func NewConsoleLogger(prefix string) *BaseLogger {
	out := zerolog.ConsoleWriter{Out: os.Stdout, TimeFormat: "2006-01-02 15:04:05"}
	return NewLogger(out, prefix)
}

func (l *BaseLogger) Log(format string, v ...interface{}) {
	l.zl.Info().Msgf(format, v...)
}

func (l *BaseLogger) Warn(format string, v ...interface{}) {
	l.zl.Warn().Msgf(format, v...)
}

func (l *BaseLogger) Error(format string, v ...interface{}) {
	l.zl.Error().Msgf(format, v...)
}

func (l *BaseLogger) WithPrefix(extraPrefix string) Logger {
	return NewLogger(l.writer, l.prefix+" "+extraPrefix)
}
