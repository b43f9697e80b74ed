package planner

import (
	"context"
	"fmt"
	"path/filepath"

	"github.com/spf13/afero"

	"github.com/yuya-takeyama/missing-sync/internal/walker"
	"github.com/yuya-takeyama/missing-sync/pkg/config"
	"github.com/yuya-takeyama/missing-sync/pkg/ignore"
	"github.com/yuya-takeyama/missing-sync/pkg/logger"
)

var _ Planner = (*DirPlanner)(nil)

// DirPlanner diffs two local directory trees.
type DirPlanner struct {
	fs     afero.Fs
	walker *walker.Walker
	logger logger.Logger
}

func NewDirPlanner(fs afero.Fs, logger logger.Logger) *DirPlanner {
	return &DirPlanner{
		fs:     fs,
		walker: walker.NewWalker(fs),
		logger: logger,
	}
}

// Plan computes the files of cfg.Source missing from cfg.Dest and the copy
// operations that would fill the gap. It performs no writes.
func (p *DirPlanner) Plan(ctx context.Context, cfg config.Config, opts Options) (*Plan, error) {
	matcher, err := ignore.New(cfg.Ignore)
	if err != nil {
		return nil, fmt.Errorf("invalid ignore pattern: %w", err)
	}

	sourceFiles, err := p.gatherFiles(ctx, "source", cfg.Source, matcher, opts)
	if err != nil {
		return nil, fmt.Errorf("failed to gather source files: %w", err)
	}

	destFiles, err := p.gatherFiles(ctx, "dest", cfg.Dest, matcher, opts)
	if err != nil {
		return nil, fmt.Errorf("failed to gather dest files: %w", err)
	}

	sourceIndex := NewIndex(sourceFiles)
	destIndex := NewIndex(destFiles)
	p.logger.PhaseStart("diff", sourceIndex.Len())
	missing := Diff(sourceIndex, destIndex)
	p.logger.PhaseComplete("diff", len(missing))

	return &Plan{
		Missing:     missing,
		Operations:  PlanCopies(missing, cfg.Dest),
		SourceCount: len(sourceFiles),
		DestCount:   len(destFiles),
	}, nil
}

func (p *DirPlanner) gatherFiles(ctx context.Context, phase, root string, matcher *ignore.Matcher, opts Options) ([]FileDescriptor, error) {
	p.logger.PhaseStart(phase, 0)

	// Walked paths are absolute; descriptors must share that base.
	root, err := filepath.Abs(root)
	if err != nil {
		return nil, err
	}

	paths, err := p.walker.Walk(root)
	if err != nil {
		return nil, err
	}

	paths = matcher.Filter(paths)

	paths, err = filterExcluded(root, paths, opts.Excludes)
	if err != nil {
		return nil, fmt.Errorf("failed to check exclude pattern: %w", err)
	}

	descriptors, err := BuildDescriptors(ctx, p.fs, root, paths, opts.StatConcurrency)
	if err != nil {
		return nil, err
	}

	p.logger.PhaseComplete(phase, len(descriptors))
	return descriptors, nil
}
