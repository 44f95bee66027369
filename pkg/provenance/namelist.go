// Package provenance extracts case-provenance metadata from the
// namelist-style parameter blocks consumed by the external solver. The
// blocks are opaque to the pipeline: only group names (e.g. "pulse_wkb",
// "pulse_maxwell") are read, values are never interpreted.
package provenance

import (
	"bufio"
	"fmt"
	"os"
	"strings"
)

// GroupTags returns the parameter group names declared in a namelist
// file, in order of first appearance. Both "&group" and "$group" headers
// are recognized. Missing files are an error; an empty tag list is not.
func GroupTags(path string) ([]string, error) {
	f, err := os.Open(path) // #nosec G304 -- user-provided paths are expected
	if err != nil {
		return nil, fmt.Errorf("opening namelist %s: %w", path, err)
	}
	defer func() { _ = f.Close() }()

	var tags []string
	seen := make(map[string]bool)
	scanner := bufio.NewScanner(f)
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if len(line) < 2 {
			continue
		}
		if line[0] != '&' && line[0] != '$' {
			continue
		}
		fields := strings.Fields(line[1:])
		if len(fields) == 0 {
			continue
		}
		name := strings.ToLower(fields[0])
		if name == "end" || name == "" {
			continue
		}
		if !seen[name] {
			seen[name] = true
			tags = append(tags, name)
		}
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("reading namelist %s: %w", path, err)
	}
	return tags, nil
}
