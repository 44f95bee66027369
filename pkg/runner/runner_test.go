package runner

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"go.uber.org/zap"

	"github.com/plasmahydro/hydrocmp/pkg/config"
)

func TestRun_LogAndExitCode(t *testing.T) {
	dir := t.TempDir()
	logPath := filepath.Join(dir, "solver.log")

	cfg := &config.SolverConfig{
		Binary:  "sh",
		Args:    []string{"-c", "echo solver output; pwd; exit 3"},
		Workdir: dir,
		Log:     logPath,
		Env:     map[string]string{"LD_LIBRARY_PATH": "/opt/pgi/lib"},
	}

	code, err := New(cfg, zap.NewNop()).Run(context.Background())
	if err != nil {
		t.Fatalf("Run() error = %v", err)
	}
	if code != 3 {
		t.Errorf("Exit code = %d, want 3", code)
	}

	data, err := os.ReadFile(logPath)
	if err != nil {
		t.Fatalf("Reading solver log: %v", err)
	}
	out := string(data)
	if !strings.Contains(out, "solver output") {
		t.Errorf("Log missing solver stdout: %q", out)
	}
	if !strings.Contains(out, dir) {
		t.Errorf("Solver did not run in workdir: %q", out)
	}
}

func TestRun_Success(t *testing.T) {
	cfg := &config.SolverConfig{
		Binary: "sh",
		Args:   []string{"-c", "true"},
	}
	code, err := New(cfg, zap.NewNop()).Run(context.Background())
	if err != nil {
		t.Fatalf("Run() error = %v", err)
	}
	if code != 0 {
		t.Errorf("Exit code = %d, want 0", code)
	}
}

func TestRun_MissingBinary(t *testing.T) {
	cfg := &config.SolverConfig{Binary: filepath.Join(t.TempDir(), "no-such-solver")}
	if _, err := New(cfg, zap.NewNop()).Run(context.Background()); err == nil {
		t.Error("Run() succeeded with a missing binary")
	}
}
