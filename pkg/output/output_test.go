package output

import (
	"bytes"
	"context"
	"encoding/json"
	"strings"
	"testing"
	"time"

	"github.com/plasmahydro/hydrocmp/pkg/series"
)

func testReport() *Report {
	runs := []*series.Run{
		{Source: series.SourceMultiFs, Label: "multi", Case: "7eV_run", Provenance: []string{"pulse_wkb"}},
		{Source: series.SourceMedusa, Label: "medusa", Case: "7eV_run"},
	}
	cs := &series.ComparisonSet{
		Quantities: map[series.Quantity][]series.AlignedSeries{
			series.QuantityDensity: {
				{RunLabel: "multi", Axis: []float64{0, 1}, Values: []float64{2.7, 2.9}},
				{RunLabel: "medusa", Axis: []float64{0, 1}, Values: []float64{2.6, 2.8}},
			},
			series.QuantityTe: {
				{RunLabel: "multi", Axis: []float64{0, 1}, Values: []float64{1500, 1600}},
				{RunLabel: "medusa"},
			},
		},
		AxisLabel: "position (um)",
	}
	return BuildReport("case.yaml", runs, cs, Metadata{
		Tolerance:  1e-12,
		AnalyzedAt: time.Now(),
		Duration:   42 * time.Millisecond,
	})
}

func TestBuildReport(t *testing.T) {
	report := testReport()

	if report.Summary.RunsIngested != 2 {
		t.Errorf("RunsIngested = %d", report.Summary.RunsIngested)
	}
	if report.Summary.QuantitiesCompared != 2 {
		t.Errorf("QuantitiesCompared = %d", report.Summary.QuantitiesCompared)
	}
	if report.Summary.AlignedPoints != 6 {
		t.Errorf("AlignedPoints = %d, want 6", report.Summary.AlignedPoints)
	}
	if report.Metadata.CaseLabel != "7eV_run" {
		t.Errorf("CaseLabel = %q", report.Metadata.CaseLabel)
	}

	// Quantities are sorted for stable output.
	if report.Comparisons[0].Quantity != "density" || report.Comparisons[1].Quantity != "te" {
		t.Errorf("Order = %q, %q", report.Comparisons[0].Quantity, report.Comparisons[1].Quantity)
	}

	density := report.Comparisons[0].Series[0]
	if density.Min != 2.7 || density.Max != 2.9 {
		t.Errorf("density min/max = %g/%g", density.Min, density.Max)
	}
}

func TestTextFormatter(t *testing.T) {
	var buf bytes.Buffer
	f := NewTextFormatter(FormatOptions{})
	if err := f.Format(context.Background(), testReport(), &buf); err != nil {
		t.Fatalf("Format() error = %v", err)
	}

	out := buf.String()
	for _, want := range []string{"density [g/cc]", "pulse_wkb", "multi", "excluded"} {
		if !strings.Contains(out, want) {
			t.Errorf("Text output missing %q:\n%s", want, out)
		}
	}
}

func TestTextFormatter_Quiet(t *testing.T) {
	var buf bytes.Buffer
	f := NewTextFormatter(FormatOptions{Quiet: true})
	if err := f.Format(context.Background(), testReport(), &buf); err != nil {
		t.Fatalf("Format() error = %v", err)
	}
	if lines := strings.Count(buf.String(), "\n"); lines != 1 {
		t.Errorf("Quiet output has %d lines, want 1", lines)
	}
}

func TestJSONFormatter(t *testing.T) {
	var buf bytes.Buffer
	f := NewJSONFormatter(FormatOptions{})
	if err := f.Format(context.Background(), testReport(), &buf); err != nil {
		t.Fatalf("Format() error = %v", err)
	}

	var decoded Report
	if err := json.Unmarshal(buf.Bytes(), &decoded); err != nil {
		t.Fatalf("Output is not valid JSON: %v", err)
	}
	if decoded.Summary.AlignedPoints != 6 {
		t.Errorf("Round-tripped AlignedPoints = %d", decoded.Summary.AlignedPoints)
	}
}

func TestNewFormatter(t *testing.T) {
	if _, err := NewFormatter("text", FormatOptions{}); err != nil {
		t.Errorf("text: %v", err)
	}
	if _, err := NewFormatter("json", FormatOptions{}); err != nil {
		t.Errorf("json: %v", err)
	}
	if _, err := NewFormatter("yaml", FormatOptions{}); err == nil {
		t.Error("NewFormatter accepted unknown format")
	}
}
