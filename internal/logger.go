package internal

import (
	"os"
	"time"

	"github.com/rs/zerolog"
)

// Log is the package-wide logger. Commands configure it once at startup via
// SetVerbose; everything below internal/ writes through it.
var Log = newLogger(zerolog.InfoLevel)

// SetVerbose switches the logger between info and debug level.
func SetVerbose(verbose bool) {
	if verbose {
		Log = newLogger(zerolog.DebugLevel)
	} else {
		Log = newLogger(zerolog.InfoLevel)
	}
}

func newLogger(level zerolog.Level) zerolog.Logger {
	output := zerolog.ConsoleWriter{
		Out:        os.Stderr,
		TimeFormat: time.DateTime,
	}
	return zerolog.New(output).Level(level).With().Timestamp().Logger()
}
