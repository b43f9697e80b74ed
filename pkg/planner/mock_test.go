package planner

import (
	"os"

	"github.com/spf13/afero"
)

// mockLogger is a mock implementation of logger.Logger for testing
type mockLogger struct {
	phaseStarts    []string
	phaseCompletes []phaseCall
	missingCalls   []string
	errorCalls     []errorCall
}

type phaseCall struct {
	phase string
	items int
}

type errorCall struct {
	operation string
	path      string
	err       error
}

func (m *mockLogger) PhaseStart(phase string, totalItems int) {
	m.phaseStarts = append(m.phaseStarts, phase)
}

func (m *mockLogger) PhaseComplete(phase string, processedItems int) {
	m.phaseCompletes = append(m.phaseCompletes, phaseCall{phase, processedItems})
}

func (m *mockLogger) Missing(name, relativeDirectory string) {
	m.missingCalls = append(m.missingCalls, name)
}

func (m *mockLogger) Error(operation, path string, err error) {
	m.errorCalls = append(m.errorCalls, errorCall{operation, path, err})
}

// failingStatFs fails Stat for one path and delegates everything else.
type failingStatFs struct {
	afero.Fs
	failPath string
	err      error
}

func (f *failingStatFs) Stat(name string) (os.FileInfo, error) {
	if name == f.failPath {
		return nil, f.err
	}
	return f.Fs.Stat(name)
}

func writeTree(fs afero.Fs, files map[string]string) error {
	for path, content := range files {
		if err := afero.WriteFile(fs, path, []byte(content), 0644); err != nil {
			return err
		}
	}
	return nil
}
