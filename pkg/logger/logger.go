// Package logger builds the process-wide structured logger.
package logger

import (
	"io"
	"os"
	"time"

	"github.com/rs/zerolog"
)

// Options configures the logger built by New.
type Options struct {
	// Level is the minimum level name ("trace", "debug", "info", "warn",
	// "error"). Empty or unknown values fall back to info.
	Level string
	// Pretty switches from JSON to colourised console output for local
	// development.
	Pretty bool
	// Output defaults to os.Stdout.
	Output io.Writer
}

// New builds a zerolog.Logger from opts. The parsed level is also set
// globally so libraries logging through zerolog's package-level logger
// honour it.
func New(opts Options) zerolog.Logger {
	zerolog.TimeFieldFormat = time.RFC3339Nano

	out := opts.Output
	if out == nil {
		out = os.Stdout
	}
	if opts.Pretty {
		out = zerolog.ConsoleWriter{Out: out, TimeFormat: time.RFC3339}
	}

	lvl, err := zerolog.ParseLevel(opts.Level)
	if err != nil || lvl == zerolog.NoLevel {
		lvl = zerolog.InfoLevel
	}
	zerolog.SetGlobalLevel(lvl)

	return zerolog.New(out).
		Level(lvl).
		With().
		Timestamp().
		Caller().
		Logger()
}
