package output

import (
	"context"
	"fmt"
	"io"
	"strings"
)

// TextFormatter formats reports as human-readable text.
type TextFormatter struct {
	opts FormatOptions
}

// NewTextFormatter creates a new text formatter with the given options.
func NewTextFormatter(opts FormatOptions) *TextFormatter {
	return &TextFormatter{opts: opts}
}

// Name returns the format name.
func (f *TextFormatter) Name() string {
	return "text"
}

// Format renders the report as text.
func (f *TextFormatter) Format(ctx context.Context, report *Report, w io.Writer) error {
	if f.opts.Quiet {
		return f.formatQuiet(report, w)
	}
	return f.formatFull(report, w)
}

func (f *TextFormatter) formatQuiet(report *Report, w io.Writer) error {
	fmt.Fprintf(w, "hydrocmp: %d runs, %d quantities compared, %d aligned points\n",
		report.Summary.RunsIngested,
		report.Summary.QuantitiesCompared,
		report.Summary.AlignedPoints)
	return nil
}

func (f *TextFormatter) formatFull(report *Report, w io.Writer) error {
	fmt.Fprintln(w, "=== Comparison Report ===")
	fmt.Fprintln(w)
	fmt.Fprintf(w, "Case:      %s\n", report.Metadata.CaseLabel)
	fmt.Fprintf(w, "Runs:      %s\n", strings.Join(report.Metadata.Sources, ", "))
	if len(report.Metadata.Provenance) > 0 {
		fmt.Fprintf(w, "Tags:      %s\n", strings.Join(report.Metadata.Provenance, ", "))
	}
	fmt.Fprintf(w, "Tolerance: %g s", report.Metadata.Tolerance)
	if report.Metadata.Interpolation != "" {
		fmt.Fprintf(w, " (interpolation: %s)", report.Metadata.Interpolation)
	}
	fmt.Fprintln(w)
	fmt.Fprintln(w)

	for _, qc := range report.Comparisons {
		name := qc.Quantity
		if qc.Unit != "" {
			name = fmt.Sprintf("%s [%s]", qc.Quantity, qc.Unit)
		}
		fmt.Fprintf(w, "%s on %s\n", name, qc.Axis)
		for _, ss := range qc.Series {
			if ss.Points == 0 {
				fmt.Fprintf(w, "  %-16s excluded (no samples within tolerance)\n", ss.RunLabel)
				continue
			}
			fmt.Fprintf(w, "  %-16s %4d points  min %.6g  max %.6g\n",
				ss.RunLabel, ss.Points, ss.Min, ss.Max)
		}
		fmt.Fprintln(w)
	}

	fmt.Fprintf(w, "Summary: %d runs, %d quantities, %d aligned points (%.2fs)\n",
		report.Summary.RunsIngested,
		report.Summary.QuantitiesCompared,
		report.Summary.AlignedPoints,
		report.Metadata.Duration.Seconds())
	return nil
}
