// Package assembler groups raw records into ordered per-quantity time
// series, enforcing the monotonicity and completeness invariants of the
// source formats.
package assembler

import (
	"context"
	"fmt"
	"io"

	"github.com/plasmahydro/hydrocmp/pkg/parser"
	"github.com/plasmahydro/hydrocmp/pkg/series"
)

// Mapping declares how the fields of one format map onto quantities.
type Mapping struct {
	// TimeField is the field carrying the snapshot timestamp.
	TimeField string

	// ZoneField is the field carrying the zone index.
	ZoneField string

	// Quantities maps each target quantity to the field that carries it.
	Quantities map[series.Quantity]string

	// Mandatory lists quantities that must have at least one record; a
	// mandatory quantity with zero records is an IncompleteSeriesError.
	Mandatory []series.Quantity
}

// Assembler builds time series for one run's output file.
type Assembler struct {
	format  parser.Format
	mapping Mapping
	file    string
	source  series.Source
}

// New creates an assembler for the given format and mapping. The file and
// source identify the run in error reports.
func New(format parser.Format, mapping Mapping, file string, source series.Source) (*Assembler, error) {
	index := fieldIndex(format.Fields())
	if _, ok := index[mapping.TimeField]; !ok {
		return nil, fmt.Errorf("time field %q not in format %q", mapping.TimeField, format.Name())
	}
	if mapping.ZoneField != "" {
		if _, ok := index[mapping.ZoneField]; !ok {
			return nil, fmt.Errorf("zone field %q not in format %q", mapping.ZoneField, format.Name())
		}
	}
	for q, field := range mapping.Quantities {
		if _, ok := index[field]; !ok {
			return nil, fmt.Errorf("quantity %q: field %q not in format %q", q, field, format.Name())
		}
	}
	return &Assembler{format: format, mapping: mapping, file: file, source: source}, nil
}

// Assemble drains src and returns one time series per mapped quantity,
// ordered by timestamp then zone.
func (a *Assembler) Assemble(ctx context.Context, src parser.RecordSource) (map[series.Quantity]*series.TimeSeries, error) {
	index := fieldIndex(a.format.Fields())
	timeIdx := index[a.mapping.TimeField]
	zoneIdx := -1
	if a.mapping.ZoneField != "" {
		zoneIdx = index[a.mapping.ZoneField]
	}

	out := make(map[series.Quantity]*series.TimeSeries, len(a.mapping.Quantities))
	for q := range a.mapping.Quantities {
		out[q] = &series.TimeSeries{Quantity: q}
	}

	var (
		haveAny  bool
		lastTime float64
		lastZone int
		row      int
	)

	for {
		rec, err := src.Next(ctx)
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, err
		}

		t := rec.Fields[timeIdx]
		var zone int
		if zoneIdx >= 0 {
			zone = int(rec.Fields[zoneIdx])
		} else {
			row++
			zone = row
		}

		if haveAny {
			switch {
			case t < lastTime:
				return nil, &series.OrderingViolationError{
					File: rec.Source, Quantity: series.QuantityTime, Line: rec.Line,
					Prev: lastTime, Next: t,
					Reason: "timestamps out of order",
				}
			case t == lastTime && zone != lastZone+1:
				return nil, &series.OrderingViolationError{
					File: rec.Source, Quantity: series.QuantityTime, Line: rec.Line,
					Prev: float64(lastZone), Next: float64(zone),
					Reason: "zone indices not contiguous within snapshot",
				}
			}
		}
		haveAny = true
		lastTime = t
		lastZone = zone

		for q, field := range a.mapping.Quantities {
			out[q].Samples = append(out[q].Samples, series.Sample{
				Time:  t,
				Zone:  zone,
				Value: rec.Fields[index[field]],
			})
		}
	}

	for _, q := range a.mapping.Mandatory {
		ts, ok := out[q]
		if !ok || ts.Len() == 0 {
			return nil, &series.IncompleteSeriesError{File: a.file, Source: a.source, Quantity: q}
		}
	}
	return out, nil
}

func fieldIndex(fields []string) map[string]int {
	index := make(map[string]int, len(fields))
	for i, name := range fields {
		index[name] = i
	}
	return index
}
