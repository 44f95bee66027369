package commands

import (
	"context"
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/plasmahydro/hydrocmp/pkg/parser"
)

// NewInspectCommand creates the inspect command.
func NewInspectCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "inspect <output-file>",
		Short: "Detect the format of a simulation output file and summarize it",
		Long: `Peek at a simulation output file, guess its format (MULTI-fs step
dump or Medusa export) and summarize its records: field layout, record
count, snapshots and time range.

Medusa exports carry no time column; their snapshot time shows as 0 here
and comes from the manifest during comparison.`,
		Args: cobra.ExactArgs(1),
		RunE: runInspect,
	}
}

func runInspect(cmd *cobra.Command, args []string) error {
	path := args[0]
	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}

	format, err := parser.DetectFormat(path)
	if err != nil {
		return err
	}

	src := parser.NewFileSource(path, format)
	defer func() { _ = src.Close() }()

	records, err := parser.ReadAll(ctx, src)
	if err != nil {
		return err
	}

	fmt.Printf("File:    %s\n", path)
	fmt.Printf("Format:  %s\n", format.Name())
	fmt.Printf("Fields:  %s\n", strings.Join(format.Fields(), ", "))
	fmt.Printf("Records: %d\n", len(records))

	if len(records) == 0 {
		return nil
	}

	// Fields()[0] is the timestamp for every built-in format.
	first := records[0].Fields[0]
	last := records[len(records)-1].Fields[0]
	snapshots := 1
	prev := first
	for _, rec := range records[1:] {
		if rec.Fields[0] != prev {
			snapshots++
			prev = rec.Fields[0]
		}
	}
	fmt.Printf("Snapshots: %d\n", snapshots)
	fmt.Printf("Time range: %g s .. %g s\n", first, last)
	return nil
}
