package commands

import (
	"context"
	"fmt"
	"path/filepath"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/plasmahydro/hydrocmp/pkg/compare"
	"github.com/plasmahydro/hydrocmp/pkg/config"
	"github.com/plasmahydro/hydrocmp/pkg/pipeline"
	"github.com/plasmahydro/hydrocmp/pkg/render"
	"github.com/plasmahydro/hydrocmp/pkg/series"
)

// PlotOptions holds command-line options for the plot command.
type PlotOptions struct {
	OutDir  string
	TimePs  float64
	Step    int
	Smooth  int
	Verbose bool
}

// NewPlotCommand creates the plot command.
func NewPlotCommand() *cobra.Command {
	opts := &PlotOptions{}

	cmd := &cobra.Command{
		Use:   "plot <manifest>",
		Short: "Render overlay charts of the compared runs",
		Long: `Ingest every run of the case manifest and write one PNG overlay
chart per compared quantity: spatial profiles at the selected snapshot,
plus the derived shock front trajectory when two or more runs carry
density and position.

The snapshot is selected with --step (solver step number) or --time-ps
(nearest snapshot); default is the last snapshot of the first run.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runPlot(cmd, args, opts)
		},
	}

	cmd.Flags().StringVar(&opts.OutDir, "out-dir", "", "Chart output directory (default: manifest charts.out_dir)")
	cmd.Flags().Float64Var(&opts.TimePs, "time-ps", 0, "Snapshot time in ps")
	cmd.Flags().IntVar(&opts.Step, "step", 0, "Snapshot by solver step number (wins over --time-ps)")
	cmd.Flags().IntVar(&opts.Smooth, "smooth", 0, "Boxcar smoothing over K cells (default: manifest charts.smooth)")
	cmd.Flags().BoolVarP(&opts.Verbose, "verbose", "v", false, "Log ingestion progress")

	return cmd
}

func runPlot(cmd *cobra.Command, args []string, opts *PlotOptions) error {
	manifestPath := args[0]
	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}

	logger, err := newLogger(opts.Verbose)
	if err != nil {
		return err
	}
	defer func() { _ = logger.Sync() }()

	cfg, err := config.Load(ctx, manifestPath)
	if err != nil {
		return fmt.Errorf("loading manifest: %w", err)
	}
	if opts.OutDir != "" {
		cfg.Charts.OutDir = opts.OutDir
	}
	if opts.Smooth > 0 {
		cfg.Charts.Smooth = opts.Smooth
	}
	if opts.TimePs != 0 {
		cfg.Charts.TimePs = &opts.TimePs
	}
	if opts.Step != 0 {
		cfg.Charts.Step = &opts.Step
	}

	runs, err := pipeline.BuildRuns(ctx, cfg, logger)
	if err != nil {
		return err
	}

	engine, err := compare.New(compare.Options{
		Tolerance:     cfg.Align.Tolerance,
		Interpolation: compare.Interpolation(cfg.Align.Interpolation),
	})
	if err != nil {
		return err
	}

	target, stepLabel := plotTarget(cfg, runs)

	quantities := cfg.CompareQuantities()
	if len(quantities) == 0 {
		quantities = pipeline.SharedQuantities(runs)
	}
	quantities = comparable(quantities, true)

	chartOpts := render.Options{
		Width:  cfg.Charts.Width,
		Height: cfg.Charts.Height,
		Smooth: cfg.Charts.Smooth,
		XLabel: "position (um)",
	}

	var written []string
	for _, q := range quantities {
		cs, err := engine.Profile(q, target, runs...)
		if err != nil {
			return err
		}
		chartOpts.Title = fmt.Sprintf("%s - %s at t = %.3g ps%s", cfg.Label, q, target*1e12, stepLabel)
		path := filepath.Join(cfg.Charts.OutDir, fmt.Sprintf("%s_%s.png", cfg.Label, q))
		if err := render.WriteComparison(cs, q, chartOpts, path); err != nil {
			return err
		}
		written = append(written, path)
	}

	if path, err := plotShock(cfg, engine, runs, logger); err != nil {
		return err
	} else if path != "" {
		written = append(written, path)
	}

	for _, path := range written {
		fmt.Printf("wrote %s\n", path)
	}
	return nil
}

// plotTarget resolves the snapshot selection: explicit step, explicit
// time, or the last snapshot of the first run.
func plotTarget(cfg *config.Config, runs []*series.Run) (target float64, stepLabel string) {
	if cfg.Charts.Step != nil {
		for _, r := range runs {
			if t, ok := timeForStep(r, *cfg.Charts.Step); ok {
				return t, fmt.Sprintf(" (step %d)", *cfg.Charts.Step)
			}
		}
	}
	if cfg.Charts.TimePs != nil {
		return *cfg.Charts.TimePs * 1e-12, ""
	}
	return lastTime(runs[0]), ""
}

// plotShock renders the derived shock trajectory when every run can carry
// it; runs without density or position are reported and the chart skipped.
func plotShock(cfg *config.Config, engine *compare.Engine, runs []*series.Run, logger *zap.Logger) (string, error) {
	if len(runs) < 2 {
		return "", nil
	}
	for _, r := range runs {
		if _, err := r.Get(series.QuantityDensity); err != nil {
			logger.Warn("skipping shock chart", zap.String("run", r.Label), zap.Error(err))
			return "", nil
		}
		if _, err := r.Get(series.QuantityPosition); err != nil {
			logger.Warn("skipping shock chart", zap.String("run", r.Label), zap.Error(err))
			return "", nil
		}
	}
	cs, err := engine.ShockTrace(runs...)
	if err != nil {
		return "", err
	}
	opts := render.Options{
		Width:  cfg.Charts.Width,
		Height: cfg.Charts.Height,
		Title:  fmt.Sprintf("%s - shock front trajectory", cfg.Label),
		XLabel: "time (s)",
	}
	path := filepath.Join(cfg.Charts.OutDir, fmt.Sprintf("%s_shock_position.png", cfg.Label))
	if err := render.WriteComparison(cs, series.QuantityShockPosition, opts, path); err != nil {
		return "", err
	}
	return path, nil
}
