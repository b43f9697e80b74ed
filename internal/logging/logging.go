package logging

import (
	"io"

	"github.com/sirupsen/logrus"
)

// NewLogger creates the diagnostics logger. Quiet keeps warnings and
// errors only; verbose adds per-phase debug entries.
func NewLogger(w io.Writer, quiet, verbose bool) *logrus.Logger {
	log := logrus.New()
	log.SetOutput(w)
	log.SetFormatter(&logrus.TextFormatter{
		DisableTimestamp: true,
	})

	switch {
	case verbose:
		log.SetLevel(logrus.DebugLevel)
	case quiet:
		log.SetLevel(logrus.WarnLevel)
	default:
		log.SetLevel(logrus.InfoLevel)
	}
	return log
}
