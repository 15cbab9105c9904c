// Package logging builds the CLI's zerolog logger.
package logging

import (
	"io"
	"time"

	"github.com/rs/zerolog"
)

// Level selects the minimum level from the CLI verbosity flags.
// quiet wins over verbose.
func Level(quiet, verbose bool) zerolog.Level {
	switch {
	case quiet:
		return zerolog.ErrorLevel
	case verbose:
		return zerolog.DebugLevel
	default:
		return zerolog.WarnLevel
	}
}

// New returns a human-readable logger writing to w at the given level.
// Colors are disabled when noColor is set, e.g. when w is not a terminal.
func New(w io.Writer, level zerolog.Level, noColor bool) zerolog.Logger {
	output := zerolog.ConsoleWriter{
		Out:        w,
		TimeFormat: time.RFC3339,
		NoColor:    noColor,
	}
	return zerolog.New(output).Level(level).With().Timestamp().Logger()
}
