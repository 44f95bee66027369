package commands

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/plasmahydro/hydrocmp/pkg/config"
	"github.com/plasmahydro/hydrocmp/pkg/runner"
)

// RunOptions holds command-line options for the run command.
type RunOptions struct {
	Verbose bool
}

// NewRunCommand creates the run command.
func NewRunCommand() *cobra.Command {
	opts := &RunOptions{}

	cmd := &cobra.Command{
		Use:   "run <manifest>",
		Short: "Launch the external solver for this case",
		Long: `Launch the external solver binary declared in the manifest's solver
block: environment entries are appended, the working directory is changed
into, and combined stdout+stderr goes to the configured log file.

The exit code of hydrocmp is the solver's exit code.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runSolver(cmd, args, opts)
		},
	}

	cmd.Flags().BoolVarP(&opts.Verbose, "verbose", "v", false, "Log launch details")
	return cmd
}

func runSolver(cmd *cobra.Command, args []string, opts *RunOptions) error {
	manifestPath := args[0]
	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}

	logger, err := newLogger(opts.Verbose)
	if err != nil {
		return err
	}
	defer func() { _ = logger.Sync() }()

	cfg, err := config.Load(ctx, manifestPath)
	if err != nil {
		return fmt.Errorf("loading manifest: %w", err)
	}
	if cfg.Solver == nil {
		return fmt.Errorf("manifest %s has no solver block", manifestPath)
	}

	code, err := runner.New(cfg.Solver, logger).Run(ctx)
	if err != nil {
		return err
	}
	ExitCode = code
	return nil
}
