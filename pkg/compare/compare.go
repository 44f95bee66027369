// Package compare aligns normalized runs from different codes onto a
// shared axis and derives secondary quantities. It performs no I/O and
// never mutates the runs it is given.
package compare

import (
	"fmt"
	"math"

	"github.com/plasmahydro/hydrocmp/pkg/series"
)

// Interpolation names an explicit resampling method. The zero value
// disables interpolation: a base timestamp with no match inside the
// tolerance is excluded, never filled in.
type Interpolation string

const (
	InterpolationNone   Interpolation = ""
	InterpolationLinear Interpolation = "linear"
)

// Options configure alignment.
type Options struct {
	// Tolerance is the maximum |Δt| in seconds for nearest-timestamp
	// matching. Zero disables the tolerance check (pure nearest match).
	Tolerance float64

	// Interpolation, when set, resamples other runs onto the base axis
	// with the named method instead of nearest-only matching.
	Interpolation Interpolation
}

// Engine aligns runs and computes derived quantities.
type Engine struct {
	opts Options
}

// New creates an engine, rejecting unknown interpolation methods.
func New(opts Options) (*Engine, error) {
	switch opts.Interpolation {
	case InterpolationNone, InterpolationLinear:
	default:
		return nil, fmt.Errorf("unknown interpolation method %q", opts.Interpolation)
	}
	if opts.Tolerance < 0 {
		return nil, fmt.Errorf("negative tolerance %g", opts.Tolerance)
	}
	return &Engine{opts: opts}, nil
}

// Trace aligns the value of q at a fixed zone across runs, on the time
// axis of the first run. Base timestamps with no match within tolerance in
// another run are excluded from that run's series, not interpolated,
// unless an interpolation method was opted into.
func (e *Engine) Trace(q series.Quantity, zone int, runs ...*series.Run) (*series.ComparisonSet, error) {
	if len(runs) < 2 {
		return nil, fmt.Errorf("trace comparison needs at least 2 runs, got %d", len(runs))
	}
	all := make([]*series.TimeSeries, len(runs))
	for i, r := range runs {
		ts, err := r.Get(q)
		if err != nil {
			return nil, err
		}
		all[i] = ts
	}

	base := all[0]
	baseTimes := base.Times()

	aligned := make([]series.AlignedSeries, 0, len(runs))
	aligned = append(aligned, traceOf(runs[0].Label, base, baseTimes, zone))

	for i := 1; i < len(runs); i++ {
		as := series.AlignedSeries{RunLabel: runs[i].Label}
		for _, t := range baseTimes {
			v, ok := e.valueAt(all[i], t, zone)
			if !ok {
				continue
			}
			as.Axis = append(as.Axis, t)
			as.Values = append(as.Values, v)
		}
		aligned = append(aligned, as)
	}

	return &series.ComparisonSet{
		Quantities: map[series.Quantity][]series.AlignedSeries{q: aligned},
		AxisLabel:  "time (s)",
	}, nil
}

// Profile builds, for each run, the spatial profile of q at the snapshot
// nearest t. Each run contributes its own position axis in canonical um.
// A run with no snapshot within tolerance is excluded from the set.
func (e *Engine) Profile(q series.Quantity, t float64, runs ...*series.Run) (*series.ComparisonSet, error) {
	if len(runs) == 0 {
		return nil, fmt.Errorf("profile comparison needs at least 1 run")
	}
	var aligned []series.AlignedSeries
	for _, r := range runs {
		ts, err := r.Get(q)
		if err != nil {
			return nil, err
		}
		pos, err := r.Get(series.QuantityPosition)
		if err != nil {
			return nil, err
		}
		nearest, dist, ok := ts.NearestTime(t)
		if !ok {
			return nil, &series.IncompleteSeriesError{Source: r.Source, Quantity: q}
		}
		if e.opts.Tolerance > 0 && dist > e.opts.Tolerance {
			continue
		}
		values := ts.Snapshot(nearest)
		axis := pos.Snapshot(nearest)
		if len(values) != len(axis) {
			return nil, fmt.Errorf("run %q: %q and position snapshots differ in size at t=%g", r.Label, q, nearest)
		}
		as := series.AlignedSeries{
			RunLabel: r.Label,
			Axis:     make([]float64, len(axis)),
			Values:   make([]float64, len(values)),
		}
		for i := range axis {
			as.Axis[i] = axis[i].Value
			as.Values[i] = values[i].Value
		}
		aligned = append(aligned, as)
	}
	return &series.ComparisonSet{
		Quantities: map[series.Quantity][]series.AlignedSeries{q: aligned},
		AxisLabel:  "position (um)",
	}, nil
}

// valueAt resolves the value of ts at (t, zone) under the engine's
// alignment policy. ok is false when the sample point is excluded.
func (e *Engine) valueAt(ts *series.TimeSeries, t float64, zone int) (float64, bool) {
	if e.opts.Interpolation == InterpolationLinear {
		return interpolateLinear(ts, t, zone)
	}
	nearest, dist, ok := ts.NearestTime(t)
	if !ok {
		return 0, false
	}
	if e.opts.Tolerance > 0 && dist > e.opts.Tolerance {
		return 0, false
	}
	return zoneValue(ts.Snapshot(nearest), zone)
}

// interpolateLinear resamples ts at time t for one zone, between the two
// bracketing snapshots. Points outside the series' time range are
// excluded, not extrapolated.
func interpolateLinear(ts *series.TimeSeries, t float64, zone int) (float64, bool) {
	times := ts.Times()
	if len(times) == 0 || t < times[0] || t > times[len(times)-1] {
		return 0, false
	}
	lo, hi := times[0], times[0]
	for _, tt := range times {
		if tt <= t {
			lo = tt
		}
		if tt >= t {
			hi = tt
			break
		}
	}
	vLo, okLo := zoneValue(ts.Snapshot(lo), zone)
	if !okLo {
		return 0, false
	}
	if hi == lo {
		return vLo, true
	}
	vHi, okHi := zoneValue(ts.Snapshot(hi), zone)
	if !okHi {
		return 0, false
	}
	frac := (t - lo) / (hi - lo)
	return vLo + frac*(vHi-vLo), true
}

func zoneValue(snapshot []series.Sample, zone int) (float64, bool) {
	for _, s := range snapshot {
		if s.Zone == zone {
			return s.Value, true
		}
	}
	return 0, false
}

func traceOf(label string, ts *series.TimeSeries, times []float64, zone int) series.AlignedSeries {
	as := series.AlignedSeries{RunLabel: label}
	for _, t := range times {
		v, ok := zoneValue(ts.Snapshot(t), zone)
		if !ok {
			continue
		}
		as.Axis = append(as.Axis, t)
		as.Values = append(as.Values, v)
	}
	return as
}

// Merge combines comparison sets sharing one axis into a single set.
// Axis labels must agree.
func Merge(sets ...*series.ComparisonSet) (*series.ComparisonSet, error) {
	if len(sets) == 0 {
		return nil, fmt.Errorf("nothing to merge")
	}
	out := &series.ComparisonSet{
		Quantities: make(map[series.Quantity][]series.AlignedSeries),
		AxisLabel:  sets[0].AxisLabel,
	}
	for _, cs := range sets {
		if cs.AxisLabel != out.AxisLabel {
			return nil, fmt.Errorf("cannot merge axis %q with %q", cs.AxisLabel, out.AxisLabel)
		}
		for q, aligned := range cs.Quantities {
			out.Quantities[q] = append(out.Quantities[q], aligned...)
		}
	}
	return out, nil
}

// ShockFront derives the shock front trajectory of a run: per snapshot,
// the position of the steepest density gradient. Deterministic for
// identical inputs; ties resolve to the innermost zone pair.
func ShockFront(run *series.Run) (*series.TimeSeries, error) {
	rho, err := run.Get(series.QuantityDensity)
	if err != nil {
		return nil, err
	}
	pos, err := run.Get(series.QuantityPosition)
	if err != nil {
		return nil, err
	}

	out := &series.TimeSeries{Quantity: series.QuantityShockPosition}
	for _, t := range rho.Times() {
		r := rho.Snapshot(t)
		x := pos.Snapshot(t)
		if len(r) != len(x) || len(r) < 2 {
			continue
		}
		bestGrad := math.Inf(-1)
		bestIdx := -1
		for i := 0; i+1 < len(r); i++ {
			dx := x[i+1].Value - x[i].Value
			if dx == 0 {
				continue
			}
			grad := math.Abs((r[i+1].Value - r[i].Value) / dx)
			if grad > bestGrad {
				bestGrad = grad
				bestIdx = i
			}
		}
		if bestIdx < 0 {
			continue
		}
		out.Samples = append(out.Samples, series.Sample{
			Time:  t,
			Zone:  r[bestIdx].Zone,
			Value: (x[bestIdx].Value + x[bestIdx+1].Value) / 2,
		})
	}
	return out, nil
}

// ShockTrace aligns the derived shock trajectories of several runs on the
// first run's time axis.
func (e *Engine) ShockTrace(runs ...*series.Run) (*series.ComparisonSet, error) {
	if len(runs) < 2 {
		return nil, fmt.Errorf("shock trace needs at least 2 runs, got %d", len(runs))
	}
	derived := make([]*series.Run, len(runs))
	for i, r := range runs {
		shock, err := ShockFront(r)
		if err != nil {
			return nil, err
		}
		derived[i] = &series.Run{
			Source: r.Source,
			Label:  r.Label,
			Series: map[series.Quantity]*series.TimeSeries{series.QuantityShockPosition: shock},
		}
	}
	return e.traceAnyZone(series.QuantityShockPosition, derived)
}

// traceAnyZone is Trace for series that carry one sample per snapshot
// with varying zone indices (derived series).
func (e *Engine) traceAnyZone(q series.Quantity, runs []*series.Run) (*series.ComparisonSet, error) {
	base, err := runs[0].Get(q)
	if err != nil {
		return nil, err
	}
	baseTimes := base.Times()

	aligned := make([]series.AlignedSeries, 0, len(runs))
	first := series.AlignedSeries{RunLabel: runs[0].Label}
	for _, t := range baseTimes {
		snap := base.Snapshot(t)
		if len(snap) == 0 {
			continue
		}
		first.Axis = append(first.Axis, t)
		first.Values = append(first.Values, snap[0].Value)
	}
	aligned = append(aligned, first)

	for i := 1; i < len(runs); i++ {
		ts, err := runs[i].Get(q)
		if err != nil {
			return nil, err
		}
		as := series.AlignedSeries{RunLabel: runs[i].Label}
		for _, t := range baseTimes {
			nearest, dist, ok := ts.NearestTime(t)
			if !ok {
				continue
			}
			if e.opts.Tolerance > 0 && dist > e.opts.Tolerance {
				continue
			}
			snap := ts.Snapshot(nearest)
			if len(snap) == 0 {
				continue
			}
			as.Axis = append(as.Axis, t)
			as.Values = append(as.Values, snap[0].Value)
		}
		aligned = append(aligned, as)
	}

	return &series.ComparisonSet{
		Quantities: map[series.Quantity][]series.AlignedSeries{q: aligned},
		AxisLabel:  "time (s)",
	}, nil
}
