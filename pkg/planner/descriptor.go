package planner

import (
	"context"
	"path/filepath"

	"github.com/spf13/afero"
	"golang.org/x/sync/errgroup"

	"github.com/yuya-takeyama/missing-sync/internal/walker"
	"github.com/yuya-takeyama/missing-sync/pkg/syncerr"
)

// DefaultStatConcurrency bounds concurrent stat calls when Options leaves
// it unset.
const DefaultStatConcurrency = 16

// NewFileDescriptor builds the descriptor of path under baseDirectory.
func NewFileDescriptor(path, baseDirectory string, size int64) FileDescriptor {
	dir := filepath.Dir(path)
	return FileDescriptor{
		Name:              filepath.Base(path),
		Directory:         dir,
		BaseDirectory:     baseDirectory,
		RelativeDirectory: walker.RelDir(baseDirectory, dir),
		Path:              path,
		Size:              size,
	}
}

// BuildDescriptors stats every path concurrently, at most limit at a time.
// The result is in input order. Any stat failure fails the whole batch.
func BuildDescriptors(ctx context.Context, fs afero.Fs, baseDirectory string, paths []string, limit int) ([]FileDescriptor, error) {
	if limit <= 0 {
		limit = DefaultStatConcurrency
	}

	descriptors := make([]FileDescriptor, len(paths))

	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(limit)

	for i, path := range paths {
		i, path := i, path
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}
			info, err := fs.Stat(path)
			if err != nil {
				return &syncerr.IOError{Op: "stat", Path: path, Err: err}
			}
			descriptors[i] = NewFileDescriptor(path, baseDirectory, info.Size())
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return nil, err
	}
	return descriptors, nil
}
