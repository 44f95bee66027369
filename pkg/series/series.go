// Package series defines the canonical data model shared by the parsing,
// assembly, normalization and comparison stages: quantities, time series,
// runs and comparison sets, plus the pipeline error taxonomy.
package series

import "sort"

// Source identifies which simulation code (or experiment) produced a run.
type Source string

const (
	SourceMultiFs    Source = "multi-fs"
	SourceMedusa     Source = "medusa"
	SourceExperiment Source = "experiment"
)

// Quantity is a canonical physical quantity identifier, consistent across
// sources after normalization.
type Quantity string

const (
	QuantityTime     Quantity = "time"
	QuantityPosition Quantity = "position"
	QuantityVelocity Quantity = "velocity"
	QuantityDensity  Quantity = "density"
	QuantityTe       Quantity = "te"
	QuantityTi       Quantity = "ti"
	QuantityDepo     Quantity = "depo"

	// QuantityStep is the solver's step counter, carried through for
	// labeling; dimensionless.
	QuantityStep Quantity = "step"

	// QuantityShockPosition is derived, not parsed: the position of the
	// steepest density gradient per timestep.
	QuantityShockPosition Quantity = "shock_position"
)

// QuantityInfo describes the canonical unit and the physically plausible
// value range for a quantity.
type QuantityInfo struct {
	// Unit is the canonical unit after normalization.
	Unit string

	// Min and Max bound the physically valid range, inclusive.
	Min float64
	Max float64
}

// Catalog maps every canonical quantity to its unit and valid range.
var Catalog = map[Quantity]QuantityInfo{
	QuantityTime:          {Unit: "s", Min: 0, Max: 1},
	QuantityPosition:      {Unit: "um", Min: -1e6, Max: 1e6},
	QuantityVelocity:      {Unit: "cm/s", Min: -1e10, Max: 1e10},
	QuantityDensity:       {Unit: "g/cc", Min: 0, Max: 1e6},
	QuantityTe:            {Unit: "eV", Min: 0, Max: 1e9},
	QuantityTi:            {Unit: "eV", Min: 0, Max: 1e9},
	QuantityDepo:          {Unit: "", Min: -1e30, Max: 1e30},
	QuantityStep:          {Unit: "", Min: 0, Max: 1e9},
	QuantityShockPosition: {Unit: "um", Min: -1e6, Max: 1e6},
}

// Sample is one (timestamp, zone, value) triple.
type Sample struct {
	// Time is the simulation timestamp in seconds.
	Time float64

	// Zone is the Lagrangian cell index within the snapshot.
	Zone int

	// Value is the quantity value in source-local units before
	// normalization, canonical units after.
	Value float64
}

// TimeSeries is the ordered samples of one quantity from one run.
// Timestamps are strictly increasing across snapshots and zone indices are
// contiguous within a snapshot. A TimeSeries is immutable after assembly.
type TimeSeries struct {
	Quantity Quantity
	Samples  []Sample
}

// Len returns the number of samples.
func (ts *TimeSeries) Len() int { return len(ts.Samples) }

// Times returns the distinct snapshot timestamps in order.
func (ts *TimeSeries) Times() []float64 {
	var out []float64
	for _, s := range ts.Samples {
		if len(out) == 0 || s.Time != out[len(out)-1] {
			out = append(out, s.Time)
		}
	}
	return out
}

// Snapshot returns the samples belonging to the given timestamp, in zone
// order. Returns nil when the timestamp is not present.
func (ts *TimeSeries) Snapshot(t float64) []Sample {
	i := sort.Search(len(ts.Samples), func(i int) bool { return ts.Samples[i].Time >= t })
	if i == len(ts.Samples) || ts.Samples[i].Time != t {
		return nil
	}
	j := i
	for j < len(ts.Samples) && ts.Samples[j].Time == t {
		j++
	}
	return ts.Samples[i:j]
}

// NearestTime returns the snapshot timestamp closest to t and its distance.
// ok is false for an empty series.
func (ts *TimeSeries) NearestTime(t float64) (nearest, dist float64, ok bool) {
	times := ts.Times()
	if len(times) == 0 {
		return 0, 0, false
	}
	i := sort.SearchFloat64s(times, t)
	best := -1.0
	for _, j := range []int{i - 1, i} {
		if j < 0 || j >= len(times) {
			continue
		}
		d := t - times[j]
		if d < 0 {
			d = -d
		}
		if best < 0 || d < best {
			best = d
			nearest = times[j]
		}
	}
	return nearest, best, true
}

// Run is one simulation execution: source identity, case label, provenance
// tags from the parameter file, and the per-quantity time series. A Run is
// immutable after construction.
type Run struct {
	// Source identifies the producing code.
	Source Source

	// Label names the run inside its case, e.g. "multi" or "medusa";
	// used in reports and chart legends.
	Label string

	// Case is the case label, e.g. an intensity/pulse-duration tag.
	Case string

	// Provenance holds opaque parameter-block group names attached to the
	// run (e.g. "pulse_wkb"). Never interpreted by the pipeline.
	Provenance []string

	// Series maps each canonical quantity to its time series.
	Series map[Quantity]*TimeSeries
}

// Get returns the series for q, or a MissingQuantityError naming this run.
func (r *Run) Get(q Quantity) (*TimeSeries, error) {
	ts, ok := r.Series[q]
	if !ok {
		return nil, &MissingQuantityError{RunLabel: r.Label, Quantity: q}
	}
	return ts, nil
}

// Quantities returns the quantities present in the run, sorted.
func (r *Run) Quantities() []Quantity {
	out := make([]Quantity, 0, len(r.Series))
	for q := range r.Series {
		out = append(out, q)
	}
	sort.Slice(out, func(i, j int) bool { return out[i] < out[j] })
	return out
}

// AlignedSeries is one run's contribution to a comparison: its label, the
// axis values it was aligned onto, and the quantity values at those axis
// points. Axis and Values have equal length.
type AlignedSeries struct {
	RunLabel string
	Axis     []float64
	Values   []float64
}

// ComparisonSet is the read-only result of aligning two or more runs.
// It is consumed by rendering and never mutates the runs it came from.
type ComparisonSet struct {
	// Quantities maps each compared quantity to the aligned series of
	// every participating run.
	Quantities map[Quantity][]AlignedSeries

	// AxisLabel names the shared axis ("time (s)" or "position (um)").
	AxisLabel string
}
