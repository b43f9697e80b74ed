// Package syncerr defines the error types surfaced by a sync run.
package syncerr

import "fmt"

// ConfigError is returned when the configuration file is missing, cannot
// be parsed, or holds invalid values. It is always fatal and happens before
// any tree is walked.
type ConfigError struct {
	Path string
	Err  error
}

func (e *ConfigError) Error() string {
	if e.Err == nil {
		return fmt.Sprintf("config %q is invalid", e.Path)
	}
	return fmt.Sprintf("config %q: %v", e.Path, e.Err)
}

func (e *ConfigError) Unwrap() error {
	return e.Err
}

// NotFoundError is returned when a tree root does not exist at the time it
// is listed.
type NotFoundError struct {
	Path string
}

func (e *NotFoundError) Error() string {
	return fmt.Sprintf("directory %q does not exist", e.Path)
}

// IOError wraps a filesystem failure on an individual path.
type IOError struct {
	Op   string
	Path string
	Err  error
}

func (e *IOError) Error() string {
	return fmt.Sprintf("%s %s: %v", e.Op, e.Path, e.Err)
}

func (e *IOError) Unwrap() error {
	return e.Err
}
