// Package commands implements the hydrocmp subcommands.
package commands

import (
	"go.uber.org/zap"

	"github.com/plasmahydro/hydrocmp/pkg/series"
)

// ExitCode is set by commands to indicate the result
var ExitCode = 0

// newLogger builds the CLI logger: quiet warnings by default, full debug
// output with --verbose. Logs go to stderr so reports stay clean on
// stdout.
func newLogger(verbose bool) (*zap.Logger, error) {
	cfg := zap.NewProductionConfig()
	cfg.OutputPaths = []string{"stderr"}
	cfg.ErrorOutputPaths = []string{"stderr"}
	if verbose {
		cfg = zap.NewDevelopmentConfig()
		cfg.Level = zap.NewAtomicLevelAt(zap.DebugLevel)
	} else {
		cfg.Level = zap.NewAtomicLevelAt(zap.WarnLevel)
	}
	return cfg.Build()
}

// lastTime returns the latest snapshot timestamp present in the run.
func lastTime(run *series.Run) float64 {
	last := 0.0
	for _, ts := range run.Series {
		if n := ts.Len(); n > 0 {
			if t := ts.Samples[n-1].Time; t > last {
				last = t
			}
		}
	}
	return last
}

// timeForStep resolves a solver step number to its snapshot time using
// the run's step series. ok is false when the run has no such step.
func timeForStep(run *series.Run, step int) (float64, bool) {
	ts, ok := run.Series[series.QuantityStep]
	if !ok {
		return 0, false
	}
	for _, t := range ts.Times() {
		snap := ts.Snapshot(t)
		if len(snap) > 0 && int(snap[0].Value) == step {
			return t, true
		}
	}
	return 0, false
}

// comparable filters a quantity list down to those that make sense on the
// given axis: the step counter never compares, and position is the axis
// itself in profile mode.
func comparable(quantities []series.Quantity, profileAxis bool) []series.Quantity {
	var out []series.Quantity
	for _, q := range quantities {
		if q == series.QuantityStep {
			continue
		}
		if profileAxis && q == series.QuantityPosition {
			continue
		}
		out = append(out, q)
	}
	return out
}
