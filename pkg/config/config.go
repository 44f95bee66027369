package config

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/plasmahydro/hydrocmp/pkg/series"
)

// Load reads and validates a case manifest.
func Load(_ context.Context, path string) (*Config, error) {
	data, err := os.ReadFile(path) // #nosec G304 -- user-provided config path is expected
	if err != nil {
		return nil, fmt.Errorf("reading manifest: %w", err)
	}

	cfg := DefaultConfig()
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("parsing manifest: %w", err)
	}

	if cfg.Label == "" {
		cfg.Label = strings.TrimSuffix(filepath.Base(path), filepath.Ext(path))
	}
	cfg.applyEnvironmentOverrides()

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Validate checks the manifest for internal consistency.
func (c *Config) Validate() error {
	if len(c.Runs) == 0 {
		return fmt.Errorf("manifest declares no runs")
	}

	seen := make(map[string]bool)
	for i := range c.Runs {
		r := &c.Runs[i]
		if r.Name == "" {
			return fmt.Errorf("run %d: missing name", i)
		}
		if seen[r.Name] {
			return fmt.Errorf("run %q: duplicate name", r.Name)
		}
		seen[r.Name] = true
		if r.File == "" {
			return fmt.Errorf("run %q: missing file", r.Name)
		}
		switch r.SourceType() {
		case series.SourceMultiFs:
		case series.SourceMedusa:
			if r.SnapshotTime <= 0 {
				return fmt.Errorf("run %q: medusa runs need snapshot_time > 0", r.Name)
			}
		case series.SourceExperiment:
			if len(r.Fields) == 0 {
				return fmt.Errorf("run %q: experiment runs need an explicit fields list", r.Name)
			}
			if !contains(r.Fields, "time") {
				return fmt.Errorf("run %q: experiment fields must include %q", r.Name, "time")
			}
		default:
			return fmt.Errorf("run %q: unknown source %q (want multi-fs, medusa or experiment)", r.Name, r.Source)
		}
	}

	for _, name := range append(append([]string{}, c.Quantities...), c.Mandatory...) {
		if _, ok := series.Catalog[series.Quantity(name)]; !ok {
			return fmt.Errorf("unknown quantity %q in manifest", name)
		}
	}

	if c.Align.Tolerance < 0 {
		return fmt.Errorf("align.tolerance must not be negative")
	}
	switch c.Align.Interpolation {
	case "", "linear":
	default:
		return fmt.Errorf("unknown interpolation method %q", c.Align.Interpolation)
	}

	if c.Charts.Smooth < 0 {
		return fmt.Errorf("charts.smooth must not be negative")
	}

	if c.Solver != nil && c.Solver.Binary == "" {
		return fmt.Errorf("solver.binary is required when a solver block is present")
	}
	return nil
}

// CompareQuantities returns the manifest's quantity selection as typed
// identifiers.
func (c *Config) CompareQuantities() []series.Quantity {
	out := make([]series.Quantity, 0, len(c.Quantities))
	for _, name := range c.Quantities {
		out = append(out, series.Quantity(name))
	}
	return out
}

// MandatoryQuantities returns the manifest override of the mandatory set,
// or nil when the per-source defaults apply.
func (c *Config) MandatoryQuantities() []series.Quantity {
	if len(c.Mandatory) == 0 {
		return nil
	}
	out := make([]series.Quantity, 0, len(c.Mandatory))
	for _, name := range c.Mandatory {
		out = append(out, series.Quantity(name))
	}
	return out
}

func contains(list []string, want string) bool {
	for _, s := range list {
		if s == want {
			return true
		}
	}
	return false
}
