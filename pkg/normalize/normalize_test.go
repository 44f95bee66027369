package normalize

import (
	"errors"
	"math"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/plasmahydro/hydrocmp/pkg/parser"
	"github.com/plasmahydro/hydrocmp/pkg/series"
)

func TestMappingFor_MultiFs(t *testing.T) {
	m, err := MappingFor(series.SourceMultiFs, parser.MultiFsFormat{}, "fort.11", nil)
	if err != nil {
		t.Fatalf("MappingFor() error = %v", err)
	}
	if m.TimeField != "time" || m.ZoneField != "zone" {
		t.Errorf("Time/Zone fields = %q/%q, want time/zone", m.TimeField, m.ZoneField)
	}
	want := map[series.Quantity]string{
		series.QuantityStep:     "step",
		series.QuantityPosition: "x",
		series.QuantityVelocity: "v",
		series.QuantityDensity:  "rho",
		series.QuantityTe:       "te",
		series.QuantityTi:       "ti",
		series.QuantityDepo:     "depo",
	}
	if diff := cmp.Diff(want, m.Quantities); diff != "" {
		t.Errorf("Quantities mismatch (-want +got):\n%s", diff)
	}
}

func TestMappingFor_UnknownTag(t *testing.T) {
	format := parser.ColumnsFormat{FieldNames: []string{"time", "zone", "Te", "vorticity"}}

	_, err := MappingFor(series.SourceExperiment, format, "exp.dat", nil)
	var unknown *series.UnknownQuantityError
	if !errors.As(err, &unknown) {
		t.Fatalf("err = %v, want UnknownQuantityError", err)
	}
	if unknown.Tag != "vorticity" {
		t.Errorf("Tag = %q, want vorticity", unknown.Tag)
	}
	if unknown.Source != series.SourceExperiment {
		t.Errorf("Source = %q, want experiment", unknown.Source)
	}
}

func TestFactor_RoundTrip(t *testing.T) {
	const relTol = 1e-9
	values := []float64{1.3e-4, 2.7, 1500.0, 5e-12}

	for _, source := range []series.Source{series.SourceMultiFs, series.SourceMedusa, series.SourceExperiment} {
		for q := range series.Catalog {
			f := Factor(source, q)
			for _, v := range values {
				back := (v * f) / f
				if rel := math.Abs(back-v) / math.Abs(v); rel > relTol {
					t.Errorf("%s/%s: round trip of %g drifted by %g", source, q, v, rel)
				}
			}
		}
	}
}

func TestFactor_MultiFsPosition(t *testing.T) {
	// MULTI-fs positions are cm; canonical is um.
	if got := Factor(series.SourceMultiFs, series.QuantityPosition); got != 1e4 {
		t.Errorf("Factor = %g, want 1e4", got)
	}
	if got := Factor(series.SourceMedusa, series.QuantityPosition); got != 1.0 {
		t.Errorf("Medusa factor = %g, want 1", got)
	}
}

func TestBuild_ConvertsAndCopies(t *testing.T) {
	raw := map[series.Quantity]*series.TimeSeries{
		series.QuantityPosition: {
			Quantity: series.QuantityPosition,
			Samples:  []series.Sample{{Time: 1e-12, Zone: 1, Value: 1.3e-4}},
		},
	}

	run := Build(series.SourceMultiFs, "multi", "7eV_run", []string{"pulse_wkb"}, raw)

	if got := run.Series[series.QuantityPosition].Samples[0].Value; math.Abs(got-1.3) > 1e-12 {
		t.Errorf("Converted position = %g um, want 1.3", got)
	}
	// The input series stays in source units.
	if got := raw[series.QuantityPosition].Samples[0].Value; got != 1.3e-4 {
		t.Errorf("Input mutated: %g", got)
	}
	if run.Label != "multi" || run.Case != "7eV_run" {
		t.Errorf("Label/Case = %q/%q", run.Label, run.Case)
	}
	if len(run.Provenance) != 1 || run.Provenance[0] != "pulse_wkb" {
		t.Errorf("Provenance = %v", run.Provenance)
	}
}

func TestDefaultMandatory(t *testing.T) {
	for _, source := range []series.Source{series.SourceMultiFs, series.SourceMedusa} {
		got := DefaultMandatory(source)
		if len(got) == 0 {
			t.Errorf("%s: no default mandatory set", source)
		}
	}
	if got := DefaultMandatory(series.SourceExperiment); got != nil {
		t.Errorf("experiment mandatory = %v, want nil", got)
	}
}
