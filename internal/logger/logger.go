// Package logger provides a singleton structured logger backed by zerolog.
//
// Initialise once at startup with Init, then retrieve anywhere with Get, or
// with FromContext inside a request.
package logger

import (
	"context"
	"io"
	"os"
	"strings"
	"sync"
	"time"

	"github.com/rs/zerolog"
)

// Options controls logger behaviour at initialisation time.
type Options struct {
	// Level is the minimum log level: trace, debug, info, warn, error.
	// Defaults to "info" when empty or unrecognised.
	Level string
	// Pretty enables human-friendly console output.
	Pretty bool
	// Output is the writer logs are sent to. Defaults to os.Stdout.
	Output io.Writer
	// QuietLookupMisses drops the "not found" lines logged by LookupMiss.
	// Set when running under ENV=test.
	QuietLookupMisses bool
}

var (
	instance    zerolog.Logger
	once        sync.Once
	initialized bool
	quietMisses bool
)

// Init initialises the singleton logger. Only the first call has any effect.
func Init(opts Options) zerolog.Logger {
	once.Do(func() {
		zerolog.TimeFieldFormat = time.RFC3339Nano

		out := opts.Output
		if out == nil {
			out = os.Stdout
		}
		if opts.Pretty {
			out = zerolog.ConsoleWriter{Out: out, TimeFormat: time.RFC3339}
		}

		lvl := parseLevel(opts.Level)
		zerolog.SetGlobalLevel(lvl)

		instance = zerolog.New(out).
			Level(lvl).
			With().
			Timestamp().
			Logger()

		// zerolog.Ctx falls back to this for contexts without a request logger
		zerolog.DefaultContextLogger = &instance
		quietMisses = opts.QuietLookupMisses
		initialized = true
	})
	return instance
}

// Get returns the singleton logger, or a disabled logger if Init was never called.
func Get() zerolog.Logger {
	if !initialized {
		return zerolog.Nop()
	}
	return instance
}

// Reset tears down the singleton so that the next Init call rebuilds it.
// Intended for use in tests only.
func Reset() {
	once = sync.Once{}
	instance = zerolog.Logger{}
	zerolog.DefaultContextLogger = nil
	zerolog.SetGlobalLevel(zerolog.TraceLevel)
	initialized = false
	quietMisses = false
}

// FromContext returns the request logger stored in ctx, falling back to the
// singleton.
func FromContext(ctx context.Context) *zerolog.Logger {
	if ctx == nil {
		l := Get()
		return &l
	}
	return zerolog.Ctx(ctx)
}

// LookupMiss logs a lookup that found no row. Suppressed with QuietLookupMisses.
func LookupMiss(ctx context.Context, err error) {
	if quietMisses {
		return
	}
	FromContext(ctx).Info().Err(err).Msg("lookup miss")
}

func parseLevel(s string) zerolog.Level {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "trace":
		return zerolog.TraceLevel
	case "debug":
		return zerolog.DebugLevel
	case "warn", "warning":
		return zerolog.WarnLevel
	case "error":
		return zerolog.ErrorLevel
	default:
		return zerolog.InfoLevel
	}
}
