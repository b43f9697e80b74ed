// Package syncer copies the files of a source tree that are missing from a
// destination tree.
//
// A file counts as present when the destination holds any file with the
// same base name and byte size, wherever it lives. Contents are never
// compared.
package syncer

import (
	"context"
	"fmt"
	"io"
	"os"

	"github.com/jonboulle/clockwork"
	"github.com/spf13/afero"

	"github.com/yuya-takeyama/missing-sync/pkg/config"
	"github.com/yuya-takeyama/missing-sync/pkg/executor"
	"github.com/yuya-takeyama/missing-sync/pkg/logger"
	"github.com/yuya-takeyama/missing-sync/pkg/planner"
	"github.com/yuya-takeyama/missing-sync/pkg/progress"
)

// Sync runs one configuration, either as a dry run or for real.
type Sync struct {
	cfg         config.Config
	fs          afero.Fs
	logger      *logger.SyncLogger
	clock       clockwork.Clock
	progressOut io.Writer
	planOpts    planner.Options
}

type Option func(*Sync)

// WithFs replaces the OS filesystem.
func WithFs(fs afero.Fs) Option {
	return func(s *Sync) { s.fs = fs }
}

func WithLogger(l *logger.SyncLogger) Option {
	return func(s *Sync) { s.logger = l }
}

func WithClock(clock clockwork.Clock) Option {
	return func(s *Sync) { s.clock = clock }
}

// WithProgressOutput sets where the progress bar is drawn. Nil disables it.
func WithProgressOutput(w io.Writer) Option {
	return func(s *Sync) { s.progressOut = w }
}

func WithPlannerOptions(opts planner.Options) Option {
	return func(s *Sync) { s.planOpts = opts }
}

func New(cfg config.Config, opts ...Option) *Sync {
	s := &Sync{
		cfg:         cfg,
		fs:          afero.NewOsFs(),
		logger:      &logger.SyncLogger{Out: os.Stdout},
		clock:       clockwork.NewRealClock(),
		progressOut: os.Stderr,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Report is the outcome of a run.
type Report struct {
	Plan   *planner.Plan
	Result executor.Result
}

// MissingFiles computes the plan without printing anything.
func (s *Sync) MissingFiles(ctx context.Context) (*planner.Plan, error) {
	var p planner.Planner = planner.NewDirPlanner(s.fs, s.logger)
	plan, err := p.Plan(ctx, s.cfg, s.planOpts)
	if err != nil {
		return nil, fmt.Errorf("failed to generate plan: %w", err)
	}
	return plan, nil
}

// DryRun prints every missing file and the total. It never writes to the
// filesystem.
func (s *Sync) DryRun(ctx context.Context) (*Report, error) {
	s.logger.IsDryRun = true
	s.logger.Header(s.cfg.Source, s.cfg.Dest)

	plan, err := s.MissingFiles(ctx)
	if err != nil {
		return nil, err
	}

	for _, fd := range plan.Missing {
		s.logger.Missing(fd.Name, fd.RelativeDirectory)
	}
	s.logger.Found(len(plan.Missing))

	return &Report{Plan: plan}, nil
}

// Run copies every missing file, one at a time, drawing a progress bar.
func (s *Sync) Run(ctx context.Context) (*Report, error) {
	s.logger.IsDryRun = false
	s.logger.Header(s.cfg.Source, s.cfg.Dest)

	plan, err := s.MissingFiles(ctx)
	if err != nil {
		return nil, err
	}

	s.logger.Copying(len(plan.Operations))

	tracker := progress.NewTracker(len(plan.Operations), s.clock)
	var onProgress func()
	var bar *progress.Bar
	if s.progressOut != nil && !s.logger.IsQuiet && len(plan.Operations) > 0 {
		bar = progress.NewBar(s.progressOut, tracker)
		onProgress = func() {
			tracker.Tick()
			bar.Update()
		}
	} else {
		onProgress = tracker.Tick
	}

	result, err := executor.NewExecutor(s.fs, s.logger).Execute(ctx, plan.Operations, onProgress)
	if bar != nil {
		bar.Finish()
	}
	report := &Report{Plan: plan, Result: result}
	if err != nil {
		return report, fmt.Errorf("copy aborted after %d of %d files: %w", tracker.Completed(), tracker.Total(), err)
	}

	s.logger.Done(result.Copied, result.Skipped, result.Bytes)
	return report, nil
}
