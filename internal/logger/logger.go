package logger

import (
	"context"
	"fmt"
	"io"
	"time"

	"github.com/rs/zerolog"
)

// Output formats accepted by NewFormat.
const (
	FormatConsole = "console"
	FormatJSON    = "json"
)

func level(verbose bool) zerolog.Level {
	if verbose {
		return zerolog.DebugLevel
	}
	return zerolog.InfoLevel
}

// New creates a console logger writing to w. verbose enables debug output.
// Writes are serialized so the logger can be shared across goroutines.
func New(w io.Writer, verbose bool) zerolog.Logger {
	output := zerolog.ConsoleWriter{
		Out:        zerolog.SyncWriter(w),
		TimeFormat: time.RFC3339,
		NoColor:    true,
	}
	return zerolog.New(output).Level(level(verbose)).With().Timestamp().Logger()
}

// NewWithWriter creates a JSON logger with a custom writer.
func NewWithWriter(w io.Writer, verbose bool) zerolog.Logger {
	return zerolog.New(zerolog.SyncWriter(w)).Level(level(verbose)).With().Timestamp().Logger()
}

// NewFormat creates a logger in the named output format.
func NewFormat(w io.Writer, format string, verbose bool) (zerolog.Logger, error) {
	switch format {
	case "", FormatConsole:
		return New(w, verbose), nil
	case FormatJSON:
		return NewWithWriter(w, verbose), nil
	}
	return zerolog.Nop(), fmt.Errorf("unknown log format %q (want %s or %s)", format, FormatConsole, FormatJSON)
}

// WithContext adds the logger to the context.
func WithContext(ctx context.Context, l zerolog.Logger) context.Context {
	return l.WithContext(ctx)
}

// FromContext retrieves the logger from the context. Without one, logging is
// disabled.
func FromContext(ctx context.Context) *zerolog.Logger {
	return zerolog.Ctx(ctx)
}
