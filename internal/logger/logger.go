// Package logger wraps zerolog behind the small surface the roster core
// needs. Field errors never reach the log; only invariant violations and
// operational events do.
package logger

import (
	"io"
	"os"
	"time"

	"github.com/rs/zerolog"
)

// Logger emits structured log lines.
type Logger struct {
	zl zerolog.Logger
}

// New returns a logger writing JSON lines to stdout at info level.
func New() *Logger {
	zerolog.TimeFieldFormat = time.RFC3339Nano
	zl := zerolog.New(os.Stdout).
		With().
		Timestamp().
		Logger()
	return &Logger{zl: zl}
}

// NewFromEnv builds a logger honoring ROSTERCORE_LOG_LEVEL
// (trace|debug|info|warn|error, default info).
func NewFromEnv() *Logger {
	l := New()
	level, err := zerolog.ParseLevel(os.Getenv("ROSTERCORE_LOG_LEVEL"))
	if err != nil || level == zerolog.NoLevel {
		level = zerolog.InfoLevel
	}
	l.zl = l.zl.Level(level)
	return l
}

// Nop returns a logger that discards everything. Used as the default in
// constructors so callers opt in to output.
func Nop() *Logger {
	return &Logger{zl: zerolog.Nop()}
}

// WithOutput redirects log output, returning the logger for chaining.
func (l *Logger) WithOutput(w io.Writer) *Logger {
	l.zl = l.zl.Output(w)
	return l
}

// WithLevel adjusts the minimum emitted level.
func (l *Logger) WithLevel(level zerolog.Level) *Logger {
	l.zl = l.zl.Level(level)
	return l
}

// Debug logs at debug level.
func (l *Logger) Debug(msg string) {
	l.zl.Debug().Msg(msg)
}

// Debugf logs a formatted debug message.
func (l *Logger) Debugf(format string, v ...any) {
	l.zl.Debug().Msgf(format, v...)
}

// Info logs at info level.
func (l *Logger) Info(msg string) {
	l.zl.Info().Msg(msg)
}

// Infof logs a formatted info message.
func (l *Logger) Infof(format string, v ...any) {
	l.zl.Info().Msgf(format, v...)
}

// Warnf logs a formatted warning.
func (l *Logger) Warnf(format string, v ...any) {
	l.zl.Warn().Msgf(format, v...)
}

// Errorf logs a formatted error.
func (l *Logger) Errorf(format string, v ...any) {
	l.zl.Error().Msgf(format, v...)
}
