// Package runner launches the external solver binary: environment setup,
// working directory, combined output redirected to a log file. The solver
// itself is opaque; its exit code is passed through unchanged.
package runner

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/exec"
	"sort"

	"go.uber.org/zap"

	"github.com/plasmahydro/hydrocmp/pkg/config"
)

// Runner invokes one solver configuration.
type Runner struct {
	cfg    *config.SolverConfig
	logger *zap.Logger
}

// New creates a runner for the given solver block.
func New(cfg *config.SolverConfig, logger *zap.Logger) *Runner {
	return &Runner{cfg: cfg, logger: logger}
}

// Run launches the solver and blocks until it exits. Returns the solver's
// exit code; err is non-nil only for launch failures, not for a non-zero
// solver exit.
func (r *Runner) Run(ctx context.Context) (int, error) {
	cmd := exec.CommandContext(ctx, r.cfg.Binary, r.cfg.Args...) // #nosec G204 -- solver binary comes from the manifest
	if r.cfg.Workdir != "" {
		cmd.Dir = r.cfg.Workdir
	}

	cmd.Env = os.Environ()
	for _, k := range sortedKeys(r.cfg.Env) {
		cmd.Env = append(cmd.Env, k+"="+r.cfg.Env[k])
	}

	if r.cfg.Log != "" {
		logFile, err := os.Create(r.cfg.Log) // #nosec G304 -- log path comes from the manifest
		if err != nil {
			return -1, fmt.Errorf("creating solver log %s: %w", r.cfg.Log, err)
		}
		defer func() { _ = logFile.Close() }()
		cmd.Stdout = logFile
		cmd.Stderr = logFile
	} else {
		cmd.Stdout = os.Stdout
		cmd.Stderr = os.Stderr
	}

	r.logger.Info("launching solver",
		zap.String("binary", r.cfg.Binary),
		zap.Strings("args", r.cfg.Args),
		zap.String("workdir", r.cfg.Workdir),
		zap.String("log", r.cfg.Log),
	)

	err := cmd.Run()
	if err == nil {
		r.logger.Info("solver finished", zap.Int("exit_code", 0))
		return 0, nil
	}

	var exitErr *exec.ExitError
	if errors.As(err, &exitErr) {
		code := exitErr.ExitCode()
		r.logger.Warn("solver exited non-zero", zap.Int("exit_code", code))
		return code, nil
	}
	return -1, fmt.Errorf("launching solver %s: %w", r.cfg.Binary, err)
}

func sortedKeys(m map[string]string) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
