package series

import "fmt"

// MalformedRecordError reports a line whose field count or numeric content
// does not match the format descriptor.
type MalformedRecordError struct {
	// File is the source file path.
	File string

	// Line is the 1-based line number of the bad record.
	Line int

	// Reason describes what was wrong with the line.
	Reason string
}

func (e *MalformedRecordError) Error() string {
	return fmt.Sprintf("%s:%d: malformed record: %s", e.File, e.Line, e.Reason)
}

// IncompleteSeriesError reports a mandatory quantity with zero records,
// which indicates a truncated or wrong-format input file.
type IncompleteSeriesError struct {
	File     string
	Source   Source
	Quantity Quantity
}

func (e *IncompleteSeriesError) Error() string {
	return fmt.Sprintf("%s: %s: no records for mandatory quantity %q", e.File, e.Source, e.Quantity)
}

// OrderingViolationError reports a broken monotonicity invariant: a
// timestamp going backwards, or a non-contiguous zone index within a
// snapshot. The source format guarantees ordering, so this means corrupt
// input.
type OrderingViolationError struct {
	File     string
	Quantity Quantity
	Line     int

	// Prev and Next are the offending consecutive timestamps (or zone
	// indices, see Reason).
	Prev   float64
	Next   float64
	Reason string
}

func (e *OrderingViolationError) Error() string {
	return fmt.Sprintf("%s:%d: quantity %q: %s (%g then %g)",
		e.File, e.Line, e.Quantity, e.Reason, e.Prev, e.Next)
}

// UnknownQuantityError reports a source-local tag with no entry in the
// normalizer's lookup table. Surfaced, never dropped, so schema drift in
// the external code is caught early.
type UnknownQuantityError struct {
	Source Source
	Tag    string
	File   string
}

func (e *UnknownQuantityError) Error() string {
	return fmt.Sprintf("%s: %s: unknown quantity tag %q", e.File, e.Source, e.Tag)
}

// MissingQuantityError reports a comparison requested against a run that
// does not carry the required quantity.
type MissingQuantityError struct {
	RunLabel string
	Quantity Quantity
}

func (e *MissingQuantityError) Error() string {
	return fmt.Sprintf("run %q: missing quantity %q", e.RunLabel, e.Quantity)
}
