// Package render draws comparison sets as PNG overlay charts, one curve
// per run, in the style of the original overlay plots (Medusa dashed vs
// MULTI solid is approximated with a fixed color palette).
package render

import (
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/wcharczuk/go-chart/v2"
	"github.com/wcharczuk/go-chart/v2/drawing"

	"github.com/plasmahydro/hydrocmp/pkg/series"
)

// Options control chart appearance.
type Options struct {
	Title  string
	XLabel string
	YLabel string
	Width  int
	Height int

	// Smooth applies a boxcar filter over this many points; <=1 disables.
	Smooth int
}

var palette = []drawing.Color{
	chart.ColorBlue,
	chart.ColorOrange,
	chart.ColorGreen,
	chart.ColorRed,
	chart.ColorAlternateGray,
}

func lineStyle(i int) chart.Style {
	return chart.Style{
		StrokeColor: palette[i%len(palette)],
		StrokeWidth: 1.8,
	}
}

// Comparison renders the aligned series of one quantity to w as PNG.
// Series with fewer than two points are dropped; an empty chart is an
// error, not a blank image.
func Comparison(cs *series.ComparisonSet, q series.Quantity, opts Options, w io.Writer) error {
	aligned, ok := cs.Quantities[q]
	if !ok {
		return fmt.Errorf("comparison set has no quantity %q", q)
	}

	var chartSeries []chart.Series
	for i, as := range aligned {
		if len(as.Values) < 2 {
			continue
		}
		chartSeries = append(chartSeries, chart.ContinuousSeries{
			Name:    as.RunLabel,
			XValues: as.Axis,
			YValues: Boxcar(as.Values, opts.Smooth),
			Style:   lineStyle(i),
		})
	}
	if len(chartSeries) == 0 {
		return fmt.Errorf("quantity %q: no series with enough points to render", q)
	}

	width, height := opts.Width, opts.Height
	if width <= 0 {
		width = 800
	}
	if height <= 0 {
		height = 500
	}
	xlabel := opts.XLabel
	if xlabel == "" {
		xlabel = cs.AxisLabel
	}
	ylabel := opts.YLabel
	if ylabel == "" {
		ylabel = string(q)
		if unit := series.Catalog[q].Unit; unit != "" {
			ylabel = fmt.Sprintf("%s (%s)", q, unit)
		}
	}

	ch := chart.Chart{
		Title:      opts.Title,
		Width:      width,
		Height:     height,
		Background: chart.Style{Padding: chart.Box{Top: 14, Left: 16, Right: 12, Bottom: 10}},
		XAxis:      chart.XAxis{Name: xlabel},
		YAxis:      chart.YAxis{Name: ylabel},
		Series:     chartSeries,
	}
	ch.Elements = []chart.Renderable{chart.Legend(&ch)}

	return ch.Render(chart.PNG, w)
}

// WriteComparison renders one quantity of a comparison set to a PNG file,
// creating the directory if needed.
func WriteComparison(cs *series.ComparisonSet, q series.Quantity, opts Options, path string) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("creating chart directory: %w", err)
	}
	f, err := os.Create(path) // #nosec G304 -- chart output path comes from the manifest
	if err != nil {
		return fmt.Errorf("creating chart file: %w", err)
	}
	if err := Comparison(cs, q, opts, f); err != nil {
		_ = f.Close()
		return err
	}
	return f.Close()
}

// Boxcar smooths values with a centered moving average over k points.
// Returns the input unchanged for k <= 1.
func Boxcar(values []float64, k int) []float64 {
	if k <= 1 || len(values) == 0 {
		return values
	}
	half := k / 2
	out := make([]float64, len(values))
	for i := range values {
		lo := i - half
		if lo < 0 {
			lo = 0
		}
		hi := i + half
		if hi >= len(values) {
			hi = len(values) - 1
		}
		sum := 0.0
		for j := lo; j <= hi; j++ {
			sum += values[j]
		}
		out[i] = sum / float64(hi-lo+1)
	}
	return out
}
