// Package cli provides the command-line interface for hydrocmp.
package cli

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/plasmahydro/hydrocmp/internal/cli/commands"
)

// Execute runs the root command and returns the exit code.
func Execute() int {
	rootCmd := NewRootCommand()
	if err := rootCmd.Execute(); err != nil {
		// Print error to stderr (SilenceErrors prevents Cobra from doing this)
		_, _ = fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return 2 // Configuration or runtime error
	}
	return commands.ExitCode
}

// NewRootCommand creates the root cobra command.
func NewRootCommand() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:   "hydrocmp",
		Short: "Compare MULTI-fs and Medusa simulation output",
		Long: `hydrocmp ingests fixed-format output of the MULTI-fs radiation-
hydrodynamics code (fort.11-style step dumps) and Medusa comparison
exports, normalizes both onto one canonical schema, aligns them for
cross-code comparison and renders overlay charts.

A case manifest (YAML) maps every run to its input file explicitly:
nothing is discovered from the working directory.`,
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	// Add subcommands
	rootCmd.AddCommand(commands.NewCompareCommand())
	rootCmd.AddCommand(commands.NewPlotCommand())
	rootCmd.AddCommand(commands.NewInspectCommand())
	rootCmd.AddCommand(commands.NewValidateCommand())
	rootCmd.AddCommand(commands.NewRunCommand())
	rootCmd.AddCommand(commands.NewVersionCommand())

	return rootCmd
}
