package parser

import "context"

// RecordSource provides an iterator over parsed records.
// Implementations must be safe for sequential access (not concurrent).
type RecordSource interface {
	// Next returns the next raw record.
	// Returns io.EOF when no more records are available.
	// Blank lines and comment lines are skipped, not errors.
	Next(ctx context.Context) (*RawRecord, error)

	// Close releases any resources held by the source.
	Close() error
}

// Format describes one source file layout: the ordered field names each
// record carries and how a single line maps onto them. Variants exist for
// MULTI-fs step dumps, Medusa exports and generic experimental columns.
type Format interface {
	// Name identifies the format; used as the record tag.
	Name() string

	// Fields returns the ordered names of the numeric fields every
	// record of this format carries.
	Fields() []string

	// newLineParser returns a fresh per-file parse state. Called once
	// per opened file so a source is restartable.
	newLineParser() lineParser
}

// lineParser holds the per-file scan state of one format. parse returns
// (nil, nil) for lines that are structural (block headers, column header
// rows) rather than data.
type lineParser interface {
	parse(file string, lineNum int, line string) (*RawRecord, error)
}
