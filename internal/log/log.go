// Package log is a thin facade over zerolog for the CLI's own chatter.
// Wire-level tracing (the "> " and "< " lines) does not go through here.
package log

import (
	"io"
	"os"

	"github.com/rs/zerolog"
)

var logger = newLogger(os.Stderr).Level(zerolog.WarnLevel)

func newLogger(w io.Writer) zerolog.Logger {
	return zerolog.New(zerolog.ConsoleWriter{
		Out:          w,
		NoColor:      true,
		PartsExclude: []string{zerolog.TimestampFieldName},
	})
}

// SetOutput redirects the facade, keeping the current level. Tests use it to
// capture what would otherwise land on stderr.
func SetOutput(w io.Writer) {
	logger = newLogger(w).Level(logger.GetLevel())
}

// SetVerbosity maps the counted -v flag onto a zerolog level. Silent mode
// wins over any verbosity and keeps only errors.
func SetVerbosity(count int, silent bool) {
	switch {
	case silent:
		logger = logger.Level(zerolog.ErrorLevel)
	case count <= 0:
		logger = logger.Level(zerolog.WarnLevel)
	case count == 1:
		logger = logger.Level(zerolog.InfoLevel)
	case count == 2:
		logger = logger.Level(zerolog.DebugLevel)
	default:
		logger = logger.Level(zerolog.TraceLevel)
	}
}

func GetLevel() zerolog.Level { return logger.GetLevel() }

func Trace() *zerolog.Event { return logger.Trace() }
func Debug() *zerolog.Event { return logger.Debug() }
func Info() *zerolog.Event  { return logger.Info() }
func Warn() *zerolog.Event  { return logger.Warn() }
func Error() *zerolog.Event { return logger.Error() }

func Err(err error) *zerolog.Event { return logger.Err(err) }
