// Package parser reads fixed-format simulation output files into raw
// numeric records. The column layout of each source is supplied as a
// format descriptor; the parser itself knows nothing about physics.
package parser

// RawRecord is one parsed data line, plus any block-header context the
// format folds into it (the MULTI-fs step number and time). Immutable once
// parsed; consumed by the assembler and then discarded.
type RawRecord struct {
	// Tag is the name of the format that produced the record.
	Tag string

	// Fields are the numeric field values, ordered as the format's
	// Fields() list.
	Fields []float64

	// Source is the file path this record came from.
	Source string

	// Line is the 1-based line number in the source file.
	Line int
}
