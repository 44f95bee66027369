// hydrocmp - Cross-code comparison of 1-D radiation-hydrodynamics output
//
// hydrocmp parses MULTI-fs step dumps and Medusa comparison exports,
// normalizes them onto one canonical schema and compares them against
// each other on shared axes.
package main

import (
	"os"

	"github.com/plasmahydro/hydrocmp/internal/cli"
)

func main() {
	os.Exit(cli.Execute())
}
