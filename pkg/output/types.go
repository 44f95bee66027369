// Package output provides formatting of comparison results as text or
// JSON reports.
package output

import (
	"math"
	"sort"
	"time"

	"github.com/plasmahydro/hydrocmp/pkg/series"
)

// Report is the complete comparison output.
type Report struct {
	// Summary provides aggregate statistics.
	Summary Summary `json:"summary"`

	// Comparisons holds one entry per compared quantity.
	Comparisons []QuantityComparison `json:"comparisons"`

	// Metadata provides context about the comparison.
	Metadata Metadata `json:"metadata"`
}

// Summary provides aggregate statistics.
type Summary struct {
	RunsIngested       int `json:"runs_ingested"`
	QuantitiesCompared int `json:"quantities_compared"`
	AlignedPoints      int `json:"aligned_points"`
}

// QuantityComparison summarizes the aligned series of one quantity.
type QuantityComparison struct {
	Quantity string          `json:"quantity"`
	Unit     string          `json:"unit,omitempty"`
	Axis     string          `json:"axis"`
	Series   []SeriesSummary `json:"series"`
}

// SeriesSummary summarizes one run's aligned series.
type SeriesSummary struct {
	RunLabel string  `json:"run"`
	Points   int     `json:"points"`
	Min      float64 `json:"min"`
	Max      float64 `json:"max"`
}

// Metadata provides context about the comparison run.
type Metadata struct {
	ManifestFile  string        `json:"manifest"`
	CaseLabel     string        `json:"case"`
	Sources       []string      `json:"sources"`
	Provenance    []string      `json:"provenance,omitempty"`
	Tolerance     float64       `json:"tolerance"`
	Interpolation string        `json:"interpolation,omitempty"`
	AnalyzedAt    time.Time     `json:"analyzed_at"`
	Duration      time.Duration `json:"duration"`
}

// BuildReport assembles a report from a comparison set and its inputs.
func BuildReport(manifest string, runs []*series.Run, cs *series.ComparisonSet, meta Metadata) *Report {
	report := &Report{Metadata: meta}
	report.Metadata.ManifestFile = manifest
	if len(runs) > 0 {
		report.Metadata.CaseLabel = runs[0].Case
		report.Metadata.Provenance = runs[0].Provenance
	}
	for _, r := range runs {
		report.Metadata.Sources = append(report.Metadata.Sources, string(r.Source)+":"+r.Label)
	}
	report.Summary.RunsIngested = len(runs)

	quantities := make([]series.Quantity, 0, len(cs.Quantities))
	for q := range cs.Quantities {
		quantities = append(quantities, q)
	}
	sort.Slice(quantities, func(i, j int) bool { return quantities[i] < quantities[j] })

	for _, q := range quantities {
		qc := QuantityComparison{
			Quantity: string(q),
			Unit:     series.Catalog[q].Unit,
			Axis:     cs.AxisLabel,
		}
		for _, as := range cs.Quantities[q] {
			ss := SeriesSummary{RunLabel: as.RunLabel, Points: len(as.Values)}
			ss.Min, ss.Max = bounds(as.Values)
			qc.Series = append(qc.Series, ss)
			report.Summary.AlignedPoints += ss.Points
		}
		report.Comparisons = append(report.Comparisons, qc)
	}
	report.Summary.QuantitiesCompared = len(report.Comparisons)
	return report
}

func bounds(values []float64) (min, max float64) {
	min, max = math.Inf(1), math.Inf(-1)
	for _, v := range values {
		if v < min {
			min = v
		}
		if v > max {
			max = v
		}
	}
	if len(values) == 0 {
		return 0, 0
	}
	return min, max
}
