// Package config provides loading and validation of the case manifest.
// The manifest maps every run to its input file explicitly; nothing is
// discovered from the working directory.
package config

import "github.com/plasmahydro/hydrocmp/pkg/series"

// Config is the root manifest structure loaded from YAML.
type Config struct {
	// Label is the case label (e.g. an intensity/pulse-duration tag)
	// attached to every run of this manifest.
	Label string `yaml:"label"`

	// Runs lists the simulation outputs to ingest.
	Runs []RunConfig `yaml:"runs"`

	// Namelist optionally points at the solver parameter file; only its
	// group names are read, as opaque provenance tags.
	Namelist string `yaml:"namelist,omitempty"`

	// Quantities selects what to compare. Empty means every quantity
	// shared by all runs.
	Quantities []string `yaml:"quantities,omitempty"`

	// Mandatory overrides the per-source default set of quantities a
	// file must carry.
	Mandatory []string `yaml:"mandatory,omitempty"`

	Align  AlignConfig  `yaml:"align,omitempty"`
	Charts ChartConfig  `yaml:"charts,omitempty"`
	Solver *SolverConfig `yaml:"solver,omitempty"`
}

// RunConfig identifies one simulation output file.
type RunConfig struct {
	// Name labels the run in reports and chart legends.
	Name string `yaml:"name"`

	// Source is the producing code: multi-fs, medusa or experiment.
	Source string `yaml:"source"`

	// File is the path of the output file.
	File string `yaml:"file"`

	// SnapshotTime is the export timestamp in seconds; required for
	// medusa runs, whose files carry no time column.
	SnapshotTime float64 `yaml:"snapshot_time,omitempty"`

	// CommentMarker overrides the default '#' comment prefix.
	CommentMarker *string `yaml:"comment_marker,omitempty"`

	// Fields is the ordered column list for experiment runs.
	Fields []string `yaml:"fields,omitempty"`
}

// SourceType returns the run's source as a typed constant.
func (r *RunConfig) SourceType() series.Source { return series.Source(r.Source) }

// AlignConfig sets the comparison alignment policy.
type AlignConfig struct {
	// Tolerance is the maximum timestamp distance in seconds for
	// nearest matching.
	Tolerance float64 `yaml:"tolerance,omitempty"`

	// Interpolation opts into a named resampling method ("linear").
	// Empty keeps the default exclude-beyond-tolerance behavior.
	Interpolation string `yaml:"interpolation,omitempty"`
}

// ChartConfig controls rendered output.
type ChartConfig struct {
	// OutDir is where PNG charts are written.
	OutDir string `yaml:"out_dir,omitempty"`

	// Smooth applies a boxcar filter over this many cells; 1 disables.
	Smooth int `yaml:"smooth,omitempty"`

	// TimePs selects the profile snapshot by time in picoseconds.
	TimePs *float64 `yaml:"time_ps,omitempty"`

	// Step selects the profile snapshot by solver step number; wins
	// over TimePs when both are set.
	Step *int `yaml:"step,omitempty"`

	Width  int `yaml:"width,omitempty"`
	Height int `yaml:"height,omitempty"`
}

// SolverConfig describes how to launch the external solver binary.
type SolverConfig struct {
	// Binary is the solver executable path.
	Binary string `yaml:"binary"`

	// Workdir is changed into before launching.
	Workdir string `yaml:"workdir,omitempty"`

	// Log receives the combined stdout+stderr of the solver.
	Log string `yaml:"log,omitempty"`

	// Env entries are appended to the environment (e.g. library paths).
	Env map[string]string `yaml:"env,omitempty"`

	// Args are passed to the binary verbatim.
	Args []string `yaml:"args,omitempty"`
}
