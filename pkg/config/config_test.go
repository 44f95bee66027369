package config

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

const validManifest = `label: 0d70e13Wcm2_5ps
runs:
  - name: multi
    source: multi-fs
    file: runs/0d70e13Wcm2_5ps/fort.11
  - name: medusa
    source: medusa
    file: Medusa/Med103_0d70e13Wcm2_5ps.txt
    snapshot_time: 5.0e-12
quantities: [density, te, ti]
align:
  tolerance: 1.0e-12
`

func writeManifest(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatal(err)
	}
	return path
}

func TestLoad_Valid(t *testing.T) {
	path := writeManifest(t, "case.yaml", validManifest)

	cfg, err := Load(context.Background(), path)
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}

	if cfg.Label != "0d70e13Wcm2_5ps" {
		t.Errorf("Label = %q", cfg.Label)
	}
	if len(cfg.Runs) != 2 {
		t.Fatalf("Got %d runs, want 2", len(cfg.Runs))
	}
	if cfg.Runs[1].SnapshotTime != 5.0e-12 {
		t.Errorf("SnapshotTime = %g", cfg.Runs[1].SnapshotTime)
	}
	if cfg.Align.Tolerance != 1.0e-12 {
		t.Errorf("Tolerance = %g", cfg.Align.Tolerance)
	}
	// Chart defaults survive a manifest without a charts block.
	if cfg.Charts.OutDir != DefaultChartDir {
		t.Errorf("OutDir = %q, want %q", cfg.Charts.OutDir, DefaultChartDir)
	}
	if got := cfg.CompareQuantities(); len(got) != 3 {
		t.Errorf("CompareQuantities = %v", got)
	}
}

func TestLoad_LabelDefaultsToFilename(t *testing.T) {
	content := strings.Replace(validManifest, "label: 0d70e13Wcm2_5ps\n", "", 1)
	path := writeManifest(t, "7eV_run.yaml", content)

	cfg, err := Load(context.Background(), path)
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if cfg.Label != "7eV_run" {
		t.Errorf("Label = %q, want 7eV_run", cfg.Label)
	}
}

func TestLoad_Invalid(t *testing.T) {
	tests := []struct {
		name    string
		content string
		wantErr string
	}{
		{
			name:    "no runs",
			content: "label: x\n",
			wantErr: "no runs",
		},
		{
			name: "medusa without snapshot time",
			content: `runs:
  - name: medusa
    source: medusa
    file: med.txt
`,
			wantErr: "snapshot_time",
		},
		{
			name: "unknown source",
			content: `runs:
  - name: a
    source: flash
    file: out.txt
`,
			wantErr: "unknown source",
		},
		{
			name: "duplicate run name",
			content: `runs:
  - name: a
    source: multi-fs
    file: fort.11
  - name: a
    source: multi-fs
    file: fort.12
`,
			wantErr: "duplicate",
		},
		{
			name: "unknown quantity",
			content: `runs:
  - name: a
    source: multi-fs
    file: fort.11
quantities: [entropy]
`,
			wantErr: "unknown quantity",
		},
		{
			name: "bad interpolation",
			content: `runs:
  - name: a
    source: multi-fs
    file: fort.11
align:
  interpolation: cubic
`,
			wantErr: "interpolation",
		},
		{
			name: "experiment without fields",
			content: `runs:
  - name: exp
    source: experiment
    file: shots.dat
`,
			wantErr: "fields",
		},
		{
			name: "solver without binary",
			content: `runs:
  - name: a
    source: multi-fs
    file: fort.11
solver:
  workdir: runs/x
`,
			wantErr: "solver.binary",
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			path := writeManifest(t, "case.yaml", tt.content)
			_, err := Load(context.Background(), path)
			if err == nil {
				t.Fatal("Load() accepted invalid manifest")
			}
			if !strings.Contains(err.Error(), tt.wantErr) {
				t.Errorf("error = %v, want mention of %q", err, tt.wantErr)
			}
		})
	}
}

func TestLoad_EnvOverride(t *testing.T) {
	t.Setenv(EnvChartDir, "/tmp/charts")
	path := writeManifest(t, "case.yaml", validManifest)

	cfg, err := Load(context.Background(), path)
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if cfg.Charts.OutDir != "/tmp/charts" {
		t.Errorf("OutDir = %q, want env override", cfg.Charts.OutDir)
	}
}
