package config

import "os"

// Default values for configuration.
const (
	// DefaultTolerance matches timestamps to within a femtosecond-scale
	// window; simulation dumps are picosecond-spaced.
	DefaultTolerance = 1e-12

	DefaultChartDir    = "plots"
	DefaultChartWidth  = 800
	DefaultChartHeight = 500
)

// Environment variable names.
const (
	EnvChartDir = "HYDROCMP_CHART_DIR"
)

// DefaultConfig returns a configuration with sensible defaults.
func DefaultConfig() *Config {
	return &Config{
		Align: AlignConfig{Tolerance: DefaultTolerance},
		Charts: ChartConfig{
			OutDir: DefaultChartDir,
			Smooth: 1,
			Width:  DefaultChartWidth,
			Height: DefaultChartHeight,
		},
	}
}

// applyEnvironmentOverrides applies environment variable overrides.
func (c *Config) applyEnvironmentOverrides() {
	if dir := os.Getenv(EnvChartDir); dir != "" {
		c.Charts.OutDir = dir
	}
}
