package walker

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/afero"

	"github.com/yuya-takeyama/missing-sync/pkg/syncerr"
)

// Walker enumerates the regular files of a directory tree.
//
// The root itself may be a symbolic link to a directory. Entries beneath
// it are lstat'ed, so symbolic links inside the tree are never followed
// and never returned, whether they point at files or directories.
type Walker struct {
	fs afero.Fs
}

// NewWalker creates a new file walker on fs
func NewWalker(fs afero.Fs) *Walker {
	return &Walker{fs: fs}
}

// Walk returns the absolute path of every regular file under root, in
// lexical order per directory.
func (w *Walker) Walk(root string) ([]string, error) {
	absRoot, err := filepath.Abs(root)
	if err != nil {
		return nil, fmt.Errorf("get absolute path: %w", err)
	}

	// The check and the walk are not atomic; a root removed in between
	// surfaces as an IOError from the walk itself.
	info, err := w.fs.Stat(absRoot)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil, &syncerr.NotFoundError{Path: absRoot}
		}
		return nil, &syncerr.IOError{Op: "stat", Path: absRoot, Err: err}
	}
	if !info.IsDir() {
		return nil, &syncerr.NotFoundError{Path: absRoot}
	}

	// Read the root through Open, which follows a symlinked root, and walk
	// each child from there. afero.Walk would lstat the root and see a link.
	entries, err := afero.ReadDir(w.fs, absRoot)
	if err != nil {
		return nil, &syncerr.IOError{Op: "walk", Path: absRoot, Err: err}
	}

	var files []string
	walkFn := func(path string, info os.FileInfo, err error) error {
		if err != nil {
			return &syncerr.IOError{Op: "walk", Path: path, Err: err}
		}

		// Skip directories, symlinks and special files
		if !info.Mode().IsRegular() {
			return nil
		}

		files = append(files, path)
		return nil
	}

	for _, entry := range entries {
		if err := afero.Walk(w.fs, filepath.Join(absRoot, entry.Name()), walkFn); err != nil {
			return nil, err
		}
	}

	return files, nil
}

// RelDir returns dir relative to base, or "" when dir is base itself.
func RelDir(base, dir string) string {
	rel, err := filepath.Rel(base, dir)
	if err != nil || rel == "." {
		return ""
	}
	return rel
}
