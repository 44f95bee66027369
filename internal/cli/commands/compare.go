package commands

import (
	"context"
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/plasmahydro/hydrocmp/pkg/compare"
	"github.com/plasmahydro/hydrocmp/pkg/config"
	"github.com/plasmahydro/hydrocmp/pkg/output"
	"github.com/plasmahydro/hydrocmp/pkg/pipeline"
	"github.com/plasmahydro/hydrocmp/pkg/series"
)

// CompareOptions holds command-line options for the compare command.
type CompareOptions struct {
	Output  string
	Quiet   bool
	Verbose bool

	Mode   string
	TimePs float64
	Zone   int
}

// NewCompareCommand creates the compare command.
func NewCompareCommand() *cobra.Command {
	opts := &CompareOptions{}

	cmd := &cobra.Command{
		Use:   "compare <manifest>",
		Short: "Align runs from different codes and report the comparison",
		Long: `Ingest every run of the case manifest, normalize them onto the
canonical schema and align them for comparison.

Modes:
  profile  value vs position at the snapshot nearest --time-ps (default)
  trace    value vs time at a fixed --zone
  shock    derived shock front position vs time

Exit codes:
  0 - Comparison produced
  2 - Configuration or data error`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runCompare(cmd, args, opts)
		},
	}

	cmd.Flags().StringVarP(&opts.Output, "output", "o", "text", "Output format (text|json)")
	cmd.Flags().BoolVarP(&opts.Quiet, "quiet", "q", false, "Summary only, no details")
	cmd.Flags().BoolVarP(&opts.Verbose, "verbose", "v", false, "Log ingestion progress")
	cmd.Flags().StringVar(&opts.Mode, "mode", "profile", "Comparison mode (profile|trace|shock)")
	cmd.Flags().Float64Var(&opts.TimePs, "time-ps", 0, "Profile snapshot time in ps (default: last snapshot)")
	cmd.Flags().IntVar(&opts.Zone, "zone", 0, "Zone index for trace mode (default: middle zone)")

	return cmd
}

func runCompare(cmd *cobra.Command, args []string, opts *CompareOptions) error {
	manifestPath := args[0]
	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}
	started := time.Now()

	logger, err := newLogger(opts.Verbose)
	if err != nil {
		return err
	}
	defer func() { _ = logger.Sync() }()

	cfg, err := config.Load(ctx, manifestPath)
	if err != nil {
		return fmt.Errorf("loading manifest: %w", err)
	}

	runs, err := pipeline.BuildRuns(ctx, cfg, logger)
	if err != nil {
		return err
	}

	cs, err := buildComparison(cfg, runs, opts)
	if err != nil {
		return err
	}

	report := output.BuildReport(manifestPath, runs, cs, output.Metadata{
		Tolerance:     cfg.Align.Tolerance,
		Interpolation: cfg.Align.Interpolation,
		AnalyzedAt:    started,
		Duration:      time.Since(started),
	})

	formatter, err := output.NewFormatter(opts.Output, output.FormatOptions{Quiet: opts.Quiet})
	if err != nil {
		return err
	}
	return formatter.Format(ctx, report, os.Stdout)
}

func buildComparison(cfg *config.Config, runs []*series.Run, opts *CompareOptions) (*series.ComparisonSet, error) {
	engine, err := compare.New(compare.Options{
		Tolerance:     cfg.Align.Tolerance,
		Interpolation: compare.Interpolation(cfg.Align.Interpolation),
	})
	if err != nil {
		return nil, err
	}

	if opts.Mode == "shock" {
		return engine.ShockTrace(runs...)
	}

	quantities := cfg.CompareQuantities()
	if len(quantities) == 0 {
		quantities = pipeline.SharedQuantities(runs)
	}
	quantities = comparable(quantities, opts.Mode == "profile")
	if len(quantities) == 0 {
		return nil, fmt.Errorf("runs share no comparable quantity")
	}

	var sets []*series.ComparisonSet
	switch opts.Mode {
	case "profile":
		target := opts.TimePs * 1e-12
		if opts.TimePs == 0 {
			target = lastTime(runs[0])
		}
		for _, q := range quantities {
			cs, err := engine.Profile(q, target, runs...)
			if err != nil {
				return nil, err
			}
			sets = append(sets, cs)
		}
	case "trace":
		zone := opts.Zone
		if zone == 0 {
			zone = middleZone(runs[0])
		}
		for _, q := range quantities {
			cs, err := engine.Trace(q, zone, runs...)
			if err != nil {
				return nil, err
			}
			sets = append(sets, cs)
		}
	default:
		return nil, fmt.Errorf("unknown mode %q (want profile, trace or shock)", opts.Mode)
	}
	return compare.Merge(sets...)
}

// middleZone picks the middle cell of the run's first spatial snapshot.
func middleZone(run *series.Run) int {
	for _, ts := range run.Series {
		times := ts.Times()
		if len(times) == 0 {
			continue
		}
		snap := ts.Snapshot(times[0])
		if len(snap) > 1 {
			return snap[len(snap)/2].Zone
		}
	}
	return 1
}
