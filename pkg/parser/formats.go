package parser

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/plasmahydro/hydrocmp/pkg/series"
)

// MultiFsFormat describes a MULTI-fs fort.11-style step dump: repeated
// blocks of a "step=  N  stepi=  M  time=  T" header followed by rows of
// seven whitespace-delimited columns (i x v rho te ti depo). The header's
// time and step are folded into every record of the block.
type MultiFsFormat struct{}

var multiFsFields = []string{"time", "step", "zone", "x", "v", "rho", "te", "ti", "depo"}

func (MultiFsFormat) Name() string { return "multi-fs" }

func (MultiFsFormat) Fields() []string { return multiFsFields }

func (f MultiFsFormat) newLineParser() lineParser { return &multiFsLineParser{} }

type multiFsLineParser struct {
	haveHeader bool
	step       float64
	time       float64
}

func (p *multiFsLineParser) parse(file string, lineNum int, line string) (*RawRecord, error) {
	tokens := strings.Fields(line)

	if tokens[0] == "step=" {
		if len(tokens) < 4 {
			return nil, &series.MalformedRecordError{
				File: file, Line: lineNum,
				Reason: fmt.Sprintf("step header has %d tokens, want at least 4", len(tokens)),
			}
		}
		step, err := strconv.ParseFloat(tokens[1], 64)
		if err != nil {
			return nil, &series.MalformedRecordError{
				File: file, Line: lineNum,
				Reason: fmt.Sprintf("step header: bad step number %q", tokens[1]),
			}
		}
		t, err := strconv.ParseFloat(tokens[3], 64)
		if err != nil {
			return nil, &series.MalformedRecordError{
				File: file, Line: lineNum,
				Reason: fmt.Sprintf("step header: bad time %q", tokens[3]),
			}
		}
		p.haveHeader = true
		p.step = step
		p.time = t
		return nil, nil
	}

	// Column header row repeated inside each block.
	if tokens[0] == "i" {
		return nil, nil
	}

	if !p.haveHeader {
		return nil, &series.MalformedRecordError{
			File: file, Line: lineNum,
			Reason: "data row before first step header",
		}
	}
	if len(tokens) != 7 {
		return nil, &series.MalformedRecordError{
			File: file, Line: lineNum,
			Reason: fmt.Sprintf("got %d fields, want 7 (i x v rho te ti depo)", len(tokens)),
		}
	}

	fields := make([]float64, 0, len(multiFsFields))
	fields = append(fields, p.time, p.step)
	for i, tok := range tokens {
		v, err := strconv.ParseFloat(tok, 64)
		if err != nil {
			return nil, &series.MalformedRecordError{
				File: file, Line: lineNum,
				Reason: fmt.Sprintf("field %q: not a number: %q", multiFsFields[i+2], tok),
			}
		}
		fields = append(fields, v)
	}
	return &RawRecord{Tag: MultiFsFormat{}.Name(), Fields: fields, Source: file, Line: lineNum}, nil
}

// MedusaFormat describes a Medusa comparison export: rows of four
// whitespace-delimited columns (x rho te ti), one spatial snapshot per
// file. The zone index is the 1-based row order; the snapshot time comes
// from the run manifest, not the file.
type MedusaFormat struct {
	// SnapshotTime is the timestamp of the exported profile, in seconds.
	SnapshotTime float64
}

var medusaFields = []string{"time", "zone", "x", "rho", "te", "ti"}

func (MedusaFormat) Name() string { return "medusa" }

func (MedusaFormat) Fields() []string { return medusaFields }

func (f MedusaFormat) newLineParser() lineParser {
	return &medusaLineParser{time: f.SnapshotTime}
}

type medusaLineParser struct {
	time float64
	row  int
}

func (p *medusaLineParser) parse(file string, lineNum int, line string) (*RawRecord, error) {
	tokens := strings.Fields(line)
	if len(tokens) != 4 {
		return nil, &series.MalformedRecordError{
			File: file, Line: lineNum,
			Reason: fmt.Sprintf("got %d fields, want 4 (x rho te ti)", len(tokens)),
		}
	}
	p.row++
	fields := make([]float64, 0, len(medusaFields))
	fields = append(fields, p.time, float64(p.row))
	for i, tok := range tokens {
		v, err := strconv.ParseFloat(tok, 64)
		if err != nil {
			return nil, &series.MalformedRecordError{
				File: file, Line: lineNum,
				Reason: fmt.Sprintf("field %q: not a number: %q", medusaFields[i+2], tok),
			}
		}
		fields = append(fields, v)
	}
	return &RawRecord{Tag: MedusaFormat{}.Name(), Fields: fields, Source: file, Line: lineNum}, nil
}

// ColumnsFormat describes a generic whitespace-delimited layout, used for
// experimental data files: an ordered list of field names, one record per
// line, every line carrying exactly that many numeric fields.
type ColumnsFormat struct {
	// FormatName identifies the layout; defaults to "columns".
	FormatName string

	// FieldNames is the ordered field list a record carries.
	FieldNames []string
}

func (f ColumnsFormat) Name() string {
	if f.FormatName == "" {
		return "columns"
	}
	return f.FormatName
}

func (f ColumnsFormat) Fields() []string { return f.FieldNames }

func (f ColumnsFormat) newLineParser() lineParser { return &columnsLineParser{format: f} }

type columnsLineParser struct {
	format ColumnsFormat
}

func (p *columnsLineParser) parse(file string, lineNum int, line string) (*RawRecord, error) {
	tokens := strings.Fields(line)
	want := len(p.format.FieldNames)
	if len(tokens) != want {
		return nil, &series.MalformedRecordError{
			File: file, Line: lineNum,
			Reason: fmt.Sprintf("got %d fields, want %d", len(tokens), want),
		}
	}
	fields := make([]float64, 0, want)
	for i, tok := range tokens {
		v, err := strconv.ParseFloat(tok, 64)
		if err != nil {
			return nil, &series.MalformedRecordError{
				File: file, Line: lineNum,
				Reason: fmt.Sprintf("field %q: not a number: %q", p.format.FieldNames[i], tok),
			}
		}
		fields = append(fields, v)
	}
	return &RawRecord{Tag: p.format.Name(), Fields: fields, Source: file, Line: lineNum}, nil
}
