package commands

import (
	"context"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/plasmahydro/hydrocmp/pkg/config"
)

// NewValidateCommand creates the validate command.
func NewValidateCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "validate <manifest>",
		Short: "Validate a case manifest",
		Long: `Validate a case manifest without ingesting any data.

Checks:
  - YAML syntax
  - Required fields per run and source type
  - Quantity names against the canonical catalog
  - Alignment policy (tolerance, interpolation method)
  - Input file existence (warning only)`,
		Args: cobra.ExactArgs(1),
		RunE: runValidate,
	}
}

func runValidate(cmd *cobra.Command, args []string) error {
	manifestPath := args[0]
	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}

	fmt.Printf("Validating %s...\n", manifestPath)

	cfg, err := config.Load(ctx, manifestPath)
	if err != nil {
		return fmt.Errorf("validation failed: %w", err)
	}

	fmt.Printf("\nManifest valid!\n")
	fmt.Printf("  Case:  %s\n", cfg.Label)
	fmt.Printf("  Runs:  %d\n", len(cfg.Runs))

	fmt.Printf("\nRuns:\n")
	for i, r := range cfg.Runs {
		fmt.Printf("  %d. [%s] %s -> %s\n", i+1, r.Source, r.Name, r.File)
		if _, err := os.Stat(r.File); err != nil {
			fmt.Printf("     Warning: input file not readable: %v\n", err)
		}
	}

	if cfg.Namelist != "" {
		if _, err := os.Stat(cfg.Namelist); err != nil {
			fmt.Printf("\nWarning: namelist not readable: %v\n", err)
		}
	}
	return nil
}
