package planner

import (
	"context"

	"github.com/yuya-takeyama/missing-sync/pkg/config"
)

type Planner interface {
	Plan(ctx context.Context, cfg config.Config, opts Options) (*Plan, error)
}

// FileDescriptor describes one enumerated file of a tree.
type FileDescriptor struct {
	Name              string
	Directory         string
	BaseDirectory     string
	RelativeDirectory string // "" when Directory == BaseDirectory
	Path              string
	Size              int64
}

// CopyDescriptor is one source→destination copy operation.
type CopyDescriptor struct {
	Source string
	Dest   string
}

type Options struct {
	// Excludes are doublestar globs matched against slash-separated paths
	// relative to each tree root, applied after the config's ignore list.
	Excludes []string
	// StatConcurrency bounds concurrent stat calls per tree. Zero means
	// DefaultStatConcurrency.
	StatConcurrency int
}

// Plan is the result of one diff computation.
type Plan struct {
	Missing     []FileDescriptor
	Operations  []CopyDescriptor
	SourceCount int
	DestCount   int
}
