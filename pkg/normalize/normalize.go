// Package normalize maps heterogeneous source schemas onto the canonical
// quantity set and rescales values into canonical units, producing an
// immutable Run per input file.
package normalize

import (
	"github.com/plasmahydro/hydrocmp/pkg/assembler"
	"github.com/plasmahydro/hydrocmp/pkg/parser"
	"github.com/plasmahydro/hydrocmp/pkg/series"
)

// Tag lookup tables, one per source. Exhaustive on purpose: a field the
// table does not know is schema drift in the external code and must be
// surfaced, not dropped.
var tagTables = map[series.Source]map[string]series.Quantity{
	series.SourceMultiFs: {
		"step": series.QuantityStep,
		"x":    series.QuantityPosition,
		"v":    series.QuantityVelocity,
		"rho":  series.QuantityDensity,
		"te":   series.QuantityTe,
		"ti":   series.QuantityTi,
		"depo": series.QuantityDepo,
	},
	series.SourceMedusa: {
		"x":   series.QuantityPosition,
		"rho": series.QuantityDensity,
		"te":  series.QuantityTe,
		"ti":  series.QuantityTi,
	},
	series.SourceExperiment: {
		"x":        series.QuantityPosition,
		"position": series.QuantityPosition,
		"v":        series.QuantityVelocity,
		"velocity": series.QuantityVelocity,
		"rho":      series.QuantityDensity,
		"density":  series.QuantityDensity,
		"te":       series.QuantityTe,
		"Te":       series.QuantityTe,
		"ti":       series.QuantityTi,
		"Ti":       series.QuantityTi,
		"depo":     series.QuantityDepo,
	},
}

// Per-source multiplicative conversion into canonical units. Quantities
// not listed are already canonical (factor 1).
var conversions = map[series.Source]map[series.Quantity]float64{
	// MULTI-fs writes positions in cm; canonical is um.
	series.SourceMultiFs: {
		series.QuantityPosition: 1e4,
	},
	// Medusa exports are already in um / eV / g/cc.
	series.SourceMedusa:     {},
	series.SourceExperiment: {},
}

// Factor returns the conversion factor from source-local into canonical
// units for q, 1.0 when the source is already canonical.
func Factor(source series.Source, q series.Quantity) float64 {
	if f, ok := conversions[source][q]; ok {
		return f
	}
	return 1.0
}

// MappingFor builds the assembler mapping for one file of the given
// source: the format's time and zone fields take their structural roles,
// every other field is resolved through the source's tag table. A field
// with no table entry yields an UnknownQuantityError naming the tag.
func MappingFor(source series.Source, format parser.Format, file string, mandatory []series.Quantity) (assembler.Mapping, error) {
	tags := tagTables[source]
	m := assembler.Mapping{
		Quantities: make(map[series.Quantity]string),
		Mandatory:  mandatory,
	}
	for _, field := range format.Fields() {
		switch field {
		case "time":
			m.TimeField = field
		case "zone":
			m.ZoneField = field
		default:
			q, ok := tags[field]
			if !ok {
				return assembler.Mapping{}, &series.UnknownQuantityError{Source: source, Tag: field, File: file}
			}
			m.Quantities[q] = field
		}
	}
	return m, nil
}

// DefaultMandatory returns the quantities a well-formed file of the given
// source must carry.
func DefaultMandatory(source series.Source) []series.Quantity {
	switch source {
	case series.SourceMultiFs:
		return []series.Quantity{series.QuantityPosition, series.QuantityDensity, series.QuantityTe, series.QuantityTi}
	case series.SourceMedusa:
		return []series.Quantity{series.QuantityPosition, series.QuantityDensity, series.QuantityTe, series.QuantityTi}
	default:
		return nil
	}
}

// Build rescales the assembled raw series into canonical units and wraps
// them into an immutable Run. The input series are copied, never mutated.
func Build(source series.Source, label, caseLabel string, provenance []string, raw map[series.Quantity]*series.TimeSeries) *series.Run {
	out := make(map[series.Quantity]*series.TimeSeries, len(raw))
	for q, ts := range raw {
		f := Factor(source, q)
		samples := make([]series.Sample, len(ts.Samples))
		for i, s := range ts.Samples {
			samples[i] = series.Sample{Time: s.Time, Zone: s.Zone, Value: s.Value * f}
		}
		out[q] = &series.TimeSeries{Quantity: q, Samples: samples}
	}
	return &series.Run{
		Source:     source,
		Label:      label,
		Case:       caseLabel,
		Provenance: provenance,
		Series:     out,
	}
}
