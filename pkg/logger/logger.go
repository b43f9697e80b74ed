package logger

import (
	"fmt"
	"io"
	"path/filepath"

	"github.com/sirupsen/logrus"
)

// Logger receives the events of a sync run.
type Logger interface {
	PhaseStart(phase string, totalItems int)
	PhaseComplete(phase string, processedItems int)
	Missing(name, relativeDirectory string)
	Error(operation, path string, err error)
}

// SyncLogger writes the human-facing report to Out and phase diagnostics
// to Log.
type SyncLogger struct {
	Out      io.Writer
	Log      logrus.FieldLogger
	IsDryRun bool
	IsQuiet  bool
}

func (l *SyncLogger) PhaseStart(phase string, totalItems int) {
	l.fieldLogger().WithFields(logrus.Fields{"phase": phase, "items": totalItems}).Debug("phase started")
}

func (l *SyncLogger) PhaseComplete(phase string, processedItems int) {
	l.fieldLogger().WithFields(logrus.Fields{"phase": phase, "items": processedItems}).Debug("phase complete")
}

// Missing prints one missing file. Only dry runs list them.
func (l *SyncLogger) Missing(name, relativeDirectory string) {
	if !l.IsDryRun || l.IsQuiet {
		return
	}
	fmt.Fprintf(l.Out, "missing %s from .../%s\n", name, filepath.ToSlash(relativeDirectory))
}

func (l *SyncLogger) Error(operation, path string, err error) {
	l.fieldLogger().WithFields(logrus.Fields{"op": operation, "path": path}).Error(err)
}

// Header prints the two roots being compared.
func (l *SyncLogger) Header(source, dest string) {
	if l.IsQuiet {
		return
	}
	fmt.Fprintln(l.Out, "Analyzing files between:")
	fmt.Fprintf(l.Out, "source      : %s\n", source)
	fmt.Fprintf(l.Out, "destination : %s\n", dest)
}

// Found prints the dry-run total.
func (l *SyncLogger) Found(count int) {
	if l.IsQuiet {
		return
	}
	fmt.Fprintf(l.Out, "\nfound %d files missing at destination.\n", count)
}

// Copying announces the start of an apply run.
func (l *SyncLogger) Copying(count int) {
	if l.IsQuiet {
		return
	}
	fmt.Fprintf(l.Out, "copying %d files...\n\n", count)
}

// Done prints the apply-run summary.
func (l *SyncLogger) Done(copied, skipped int, bytes int64) {
	if l.IsQuiet {
		return
	}
	fmt.Fprintln(l.Out, "\ndone.")
	fmt.Fprintf(l.Out, "copied %d files (%s), skipped %d existing\n", copied, FormatBytes(bytes), skipped)
}

func (l *SyncLogger) fieldLogger() logrus.FieldLogger {
	if l.Log == nil {
		return logrus.StandardLogger()
	}
	return l.Log
}

type NullLogger struct{}

func (l *NullLogger) PhaseStart(phase string, totalItems int) {}

func (l *NullLogger) PhaseComplete(phase string, processedItems int) {}

func (l *NullLogger) Missing(name, relativeDirectory string) {}

func (l *NullLogger) Error(operation, path string, err error) {}

// FormatBytes formats bytes in human readable format
func FormatBytes(bytes int64) string {
	const unit = 1024
	if bytes < unit {
		return fmt.Sprintf("%d B", bytes)
	}
	div, exp := int64(unit), 0
	for n := bytes / unit; n >= unit; n /= unit {
		div *= unit
		exp++
	}
	return fmt.Sprintf("%.1f %cB", float64(bytes)/float64(div), "KMGTPE"[exp])
}
