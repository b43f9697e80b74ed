package executor

import (
	"context"
	"errors"
	"io"
	"os"
	"path/filepath"

	"github.com/spf13/afero"

	"github.com/yuya-takeyama/missing-sync/pkg/logger"
	"github.com/yuya-takeyama/missing-sync/pkg/planner"
	"github.com/yuya-takeyama/missing-sync/pkg/syncerr"
)

// Executor copies planned files one at a time, in plan order.
type Executor struct {
	fs     afero.Fs
	logger logger.Logger
}

func NewExecutor(fs afero.Fs, logger logger.Logger) *Executor {
	return &Executor{
		fs:     fs,
		logger: logger,
	}
}

type Result struct {
	Copied  int
	Skipped int
	Bytes   int64
}

// Execute runs ops sequentially. onProgress, when set, is called once after
// each completed operation. The first failure stops the run; files copied
// before it are left in place.
func (e *Executor) Execute(ctx context.Context, ops []planner.CopyDescriptor, onProgress func()) (Result, error) {
	var result Result

	for _, op := range ops {
		if err := ctx.Err(); err != nil {
			return result, err
		}

		copied, n, err := e.copyNoClobber(op)
		// A failed metadata update still leaves the copied bytes on disk.
		if copied {
			result.Copied++
			result.Bytes += n
		}
		if err != nil {
			var ioErr *syncerr.IOError
			if errors.As(err, &ioErr) {
				e.logger.Error(ioErr.Op, ioErr.Path, ioErr.Err)
			}
			return result, err
		}

		if !copied {
			result.Skipped++
		}

		if onProgress != nil {
			onProgress()
		}
	}

	return result, nil
}

// copyNoClobber copies op.Source to op.Dest unless op.Dest already exists,
// creating parent directories as needed. Like cp -pn it keeps the source's
// permission bits and modification time on a new copy.
func (e *Executor) copyNoClobber(op planner.CopyDescriptor) (bool, int64, error) {
	dir := filepath.Dir(op.Dest)
	if err := e.fs.MkdirAll(dir, 0755); err != nil {
		return false, 0, &syncerr.IOError{Op: "mkdir", Path: dir, Err: err}
	}

	if _, err := e.fs.Stat(op.Dest); err == nil {
		return false, 0, nil
	} else if !errors.Is(err, os.ErrNotExist) {
		return false, 0, &syncerr.IOError{Op: "stat", Path: op.Dest, Err: err}
	}

	src, err := e.fs.Open(op.Source)
	if err != nil {
		return false, 0, &syncerr.IOError{Op: "open", Path: op.Source, Err: err}
	}
	defer src.Close()

	info, err := src.Stat()
	if err != nil {
		return false, 0, &syncerr.IOError{Op: "stat", Path: op.Source, Err: err}
	}

	dst, err := e.fs.OpenFile(op.Dest, os.O_WRONLY|os.O_CREATE|os.O_EXCL, info.Mode().Perm())
	if err != nil {
		if errors.Is(err, os.ErrExist) {
			return false, 0, nil
		}
		return false, 0, &syncerr.IOError{Op: "create", Path: op.Dest, Err: err}
	}

	n, err := io.Copy(dst, src)
	if cerr := dst.Close(); err == nil {
		err = cerr
	}
	if err != nil {
		// Do not leave a truncated file behind for the next run to skip.
		_ = e.fs.Remove(op.Dest)
		return false, 0, &syncerr.IOError{Op: "copy", Path: op.Dest, Err: err}
	}

	if err := e.fs.Chmod(op.Dest, info.Mode().Perm()); err != nil {
		return true, n, &syncerr.IOError{Op: "chmod", Path: op.Dest, Err: err}
	}
	if err := e.fs.Chtimes(op.Dest, info.ModTime(), info.ModTime()); err != nil {
		return true, n, &syncerr.IOError{Op: "chtimes", Path: op.Dest, Err: err}
	}

	return true, n, nil
}
