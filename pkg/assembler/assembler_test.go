package assembler

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/plasmahydro/hydrocmp/pkg/parser"
	"github.com/plasmahydro/hydrocmp/pkg/series"
)

var specFormat = parser.ColumnsFormat{
	FormatName: "experiment",
	FieldNames: []string{"time", "zone", "Te", "Ti", "rho"},
}

var specMapping = Mapping{
	TimeField: "time",
	ZoneField: "zone",
	Quantities: map[series.Quantity]string{
		series.QuantityTe:      "Te",
		series.QuantityTi:      "Ti",
		series.QuantityDensity: "rho",
	},
	Mandatory: []series.Quantity{series.QuantityTe},
}

func writeFixture(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "out.dat")
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatal(err)
	}
	return path
}

func assemble(t *testing.T, format parser.Format, m Mapping, path string) (map[series.Quantity]*series.TimeSeries, error) {
	t.Helper()
	a, err := New(format, m, path, series.SourceExperiment)
	if err != nil {
		t.Fatalf("New() error = %v", err)
	}
	src := parser.NewFileSource(path, format)
	defer src.Close()
	return a.Assemble(context.Background(), src)
}

func TestAssemble_SingleRecord(t *testing.T) {
	path := writeFixture(t, "5.0e-14  1  1500.0  300.0  2.70\n")

	out, err := assemble(t, specFormat, specMapping, path)
	if err != nil {
		t.Fatalf("Assemble() error = %v", err)
	}

	te, ok := out[series.QuantityTe]
	if !ok {
		t.Fatal("No series for quantity te")
	}
	want := []series.Sample{{Time: 5.0e-14, Zone: 1, Value: 1500.0}}
	if diff := cmp.Diff(want, te.Samples); diff != "" {
		t.Errorf("te samples mismatch (-want +got):\n%s", diff)
	}

	if got := out[series.QuantityDensity].Samples[0].Value; got != 2.70 {
		t.Errorf("density = %g, want 2.70", got)
	}
}

func TestAssemble_OrderedSnapshots(t *testing.T) {
	content := `1.0e-12  1  1500.0  300.0  2.70
1.0e-12  2  1400.0  310.0  2.65
2.0e-12  1  1600.0  320.0  2.80
2.0e-12  2  1500.0  330.0  2.60
`
	path := writeFixture(t, content)

	out, err := assemble(t, specFormat, specMapping, path)
	if err != nil {
		t.Fatalf("Assemble() error = %v", err)
	}

	te := out[series.QuantityTe]
	times := te.Times()
	if len(times) != 2 {
		t.Fatalf("Got %d snapshots, want 2", len(times))
	}
	for i := 1; i < len(times); i++ {
		if times[i] <= times[i-1] {
			t.Errorf("Timestamps not strictly increasing: %v", times)
		}
	}
	if got := len(te.Snapshot(2.0e-12)); got != 2 {
		t.Errorf("Second snapshot has %d zones, want 2", got)
	}
}

func TestAssemble_OutOfOrderTimestamps(t *testing.T) {
	content := `2.0e-12  1  1600.0  320.0  2.80
1.0e-12  1  1500.0  300.0  2.70
`
	path := writeFixture(t, content)

	_, err := assemble(t, specFormat, specMapping, path)
	var ordering *series.OrderingViolationError
	if !errors.As(err, &ordering) {
		t.Fatalf("err = %v, want OrderingViolationError", err)
	}
	if ordering.Line != 2 {
		t.Errorf("Line = %d, want 2", ordering.Line)
	}
	if ordering.Prev != 2.0e-12 || ordering.Next != 1.0e-12 {
		t.Errorf("Prev/Next = %g/%g, want 2e-12/1e-12", ordering.Prev, ordering.Next)
	}
}

func TestAssemble_NonContiguousZones(t *testing.T) {
	content := `1.0e-12  1  1500.0  300.0  2.70
1.0e-12  3  1400.0  310.0  2.65
`
	path := writeFixture(t, content)

	_, err := assemble(t, specFormat, specMapping, path)
	var ordering *series.OrderingViolationError
	if !errors.As(err, &ordering) {
		t.Fatalf("err = %v, want OrderingViolationError", err)
	}
}

func TestAssemble_EmptyFile(t *testing.T) {
	path := writeFixture(t, "# comments only\n\n")

	_, err := assemble(t, specFormat, specMapping, path)
	var incomplete *series.IncompleteSeriesError
	if !errors.As(err, &incomplete) {
		t.Fatalf("err = %v, want IncompleteSeriesError", err)
	}
	if incomplete.Quantity != series.QuantityTe {
		t.Errorf("Quantity = %q, want te", incomplete.Quantity)
	}
	if incomplete.File != path {
		t.Errorf("File = %q, want %q", incomplete.File, path)
	}
}

func TestAssemble_Idempotent(t *testing.T) {
	content := `1.0e-12  1  1500.0  300.0  2.70
1.0e-12  2  1400.0  310.0  2.65
2.0e-12  1  1600.0  320.0  2.80
2.0e-12  2  1500.0  330.0  2.60
`
	path := writeFixture(t, content)

	first, err := assemble(t, specFormat, specMapping, path)
	if err != nil {
		t.Fatalf("First Assemble() error = %v", err)
	}
	second, err := assemble(t, specFormat, specMapping, path)
	if err != nil {
		t.Fatalf("Second Assemble() error = %v", err)
	}
	if diff := cmp.Diff(first, second); diff != "" {
		t.Errorf("Re-assembly differs (-first +second):\n%s", diff)
	}
}

func TestAssemble_MultiFs(t *testing.T) {
	content := `step=    31  time=  1.00e-12
  1  1.00e-04  0.0  2.70  1500.0  300.0  0.0
  2  2.00e-04  0.0  2.65  1400.0  310.0  0.0
`
	path := writeFixture(t, content)

	format := parser.MultiFsFormat{}
	m := Mapping{
		TimeField: "time",
		ZoneField: "zone",
		Quantities: map[series.Quantity]string{
			series.QuantityPosition: "x",
			series.QuantityDensity:  "rho",
			series.QuantityTi:       "ti",
		},
		Mandatory: []series.Quantity{series.QuantityPosition, series.QuantityDensity},
	}
	a, err := New(format, m, path, series.SourceMultiFs)
	if err != nil {
		t.Fatalf("New() error = %v", err)
	}
	src := parser.NewFileSource(path, format)
	defer src.Close()

	out, err := a.Assemble(context.Background(), src)
	if err != nil {
		t.Fatalf("Assemble() error = %v", err)
	}
	pos := out[series.QuantityPosition]
	if pos.Len() != 2 {
		t.Fatalf("position has %d samples, want 2", pos.Len())
	}
	if pos.Samples[1].Zone != 2 || pos.Samples[1].Value != 2.00e-04 {
		t.Errorf("Sample = %+v, want zone 2 value 2e-4", pos.Samples[1])
	}
}

func TestNew_UnknownField(t *testing.T) {
	m := Mapping{
		TimeField:  "time",
		Quantities: map[series.Quantity]string{series.QuantityTe: "nope"},
	}
	if _, err := New(specFormat, m, "x.dat", series.SourceExperiment); err == nil {
		t.Error("New() accepted a mapping onto a missing field")
	}
}
