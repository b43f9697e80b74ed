package main

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/spf13/afero"
	"github.com/spf13/cobra"

	"github.com/yuya-takeyama/missing-sync/internal/logging"
	"github.com/yuya-takeyama/missing-sync/pkg/config"
	"github.com/yuya-takeyama/missing-sync/pkg/logger"
	"github.com/yuya-takeyama/missing-sync/pkg/planner"
	"github.com/yuya-takeyama/missing-sync/pkg/syncer"
)

var (
	version = "dev"
	commit  = "none"
	date    = "unknown"
	builtBy = "unknown"
)

var (
	configPath      string
	doCopy          bool
	excludes        []string
	quiet           bool
	verbose         bool
	statConcurrency int
	planJSONFile    string
)

// PlanResult represents the planned copies
type PlanResult struct {
	Operations []PlanOperation `json:"operations"`
	Summary    PlanSummary     `json:"summary"`
}

type PlanOperation struct {
	Source string `json:"source"`
	Dest   string `json:"dest"`
	Name   string `json:"name"`
	Size   int64  `json:"size"`
}

type PlanSummary struct {
	Missing     int `json:"missing"`
	SourceFiles int `json:"source_files"`
	DestFiles   int `json:"dest_files"`
}

func main() {
	if err := newRootCmd().Execute(); err != nil {
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:   "missing-sync",
		Short: "Copy files missing from a destination tree",
		Long: `missing-sync compares a source and a destination directory and copies the
source files the destination lacks. A file counts as present when the
destination holds a file with the same name and size anywhere in its tree.

Without --copy it only lists the missing files.`,
		Version:      fmt.Sprintf("%s (commit: %s, built at: %s by %s)", version, commit, date, builtBy),
		Args:         cobra.NoArgs,
		SilenceUsage: true,
		RunE:         run,
	}

	rootCmd.Flags().StringVar(&configPath, "config", config.DefaultPath, "Path to the config file (JSON, YAML or TOML)")
	rootCmd.Flags().BoolVar(&doCopy, "copy", false, "Copy missing files instead of listing them")
	rootCmd.Flags().StringSliceVar(&excludes, "exclude", nil, "Exclude glob relative to each root (multiple allowed)")
	rootCmd.Flags().BoolVar(&quiet, "quiet", false, "Suppress non-error output")
	rootCmd.Flags().BoolVar(&verbose, "verbose", false, "Log each phase")
	rootCmd.Flags().IntVar(&statConcurrency, "stat-concurrency", planner.DefaultStatConcurrency, "Number of concurrent stat calls while scanning")
	rootCmd.Flags().StringVar(&planJSONFile, "plan-json-file", "", "Path to output plan as JSON file")

	return rootCmd
}

func run(cmd *cobra.Command, args []string) error {
	cwd, err := os.Getwd()
	if err != nil {
		return fmt.Errorf("failed to get working directory: %w", err)
	}

	fs := afero.NewOsFs()

	cfg, err := config.Load(fs, configPath, cwd)
	if err != nil {
		return err
	}

	syncLogger := &logger.SyncLogger{
		Out:     cmd.OutOrStdout(),
		Log:     logging.NewLogger(cmd.ErrOrStderr(), quiet, verbose),
		IsQuiet: quiet,
	}

	s := syncer.New(cfg,
		syncer.WithFs(fs),
		syncer.WithLogger(syncLogger),
		syncer.WithProgressOutput(cmd.ErrOrStderr()),
		syncer.WithPlannerOptions(planner.Options{
			Excludes:        excludes,
			StatConcurrency: statConcurrency,
		}),
	)

	var report *syncer.Report
	if doCopy {
		report, err = s.Run(cmd.Context())
	} else {
		report, err = s.DryRun(cmd.Context())
	}

	// A failed copy still has a plan worth writing.
	if planJSONFile != "" && report != nil {
		if werr := writePlanResult(fs, planJSONFile, report.Plan); werr != nil {
			return fmt.Errorf("failed to write plan JSON: %w", werr)
		}
	}

	return err
}

func writePlanResult(fs afero.Fs, path string, plan *planner.Plan) error {
	result := PlanResult{
		Operations: []PlanOperation{},
		Summary: PlanSummary{
			Missing:     len(plan.Missing),
			SourceFiles: plan.SourceCount,
			DestFiles:   plan.DestCount,
		},
	}

	for i, op := range plan.Operations {
		result.Operations = append(result.Operations, PlanOperation{
			Source: op.Source,
			Dest:   op.Dest,
			Name:   plan.Missing[i].Name,
			Size:   plan.Missing[i].Size,
		})
	}

	data, err := json.MarshalIndent(result, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal JSON: %w", err)
	}

	if err := afero.WriteFile(fs, path, data, 0644); err != nil {
		return fmt.Errorf("failed to write file: %w", err)
	}

	return nil
}
