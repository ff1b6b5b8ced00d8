package logging

import (
	"context"
	"io"
	"os"
	"time"

	"github.com/rs/zerolog"
)

type loggerKey struct{}

// New builds the process logger. Production emits JSON lines; every other
// environment gets the human-readable console format.
func New(appName, env, level string) zerolog.Logger {
	return newWithWriter(os.Stdout, appName, env, level)
}

func newWithWriter(out io.Writer, appName, env, level string) zerolog.Logger {
	if env != "production" {
		out = zerolog.ConsoleWriter{Out: out, TimeFormat: time.RFC3339Nano}
	}
	return zerolog.New(out).
		Level(parseLevel(level)).
		With().
		Timestamp().
		Str("app", appName).
		Str("env", env).
		Logger()
}

func parseLevel(level string) zerolog.Level {
	lvl, err := zerolog.ParseLevel(level)
	if err != nil || lvl == zerolog.NoLevel {
		return zerolog.InfoLevel
	}
	return lvl
}

// IntoContext stores a request-scoped logger.
func IntoContext(ctx context.Context, logger zerolog.Logger) context.Context {
	return context.WithValue(ctx, loggerKey{}, logger)
}

// FromContext returns the logger stored by IntoContext, or a disabled logger.
func FromContext(ctx context.Context) zerolog.Logger {
	if ctx != nil {
		if logger, ok := ctx.Value(loggerKey{}).(zerolog.Logger); ok {
			return logger
		}
	}
	return zerolog.Nop()
}
