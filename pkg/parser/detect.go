package parser

import (
	"fmt"
	"os"
	"strconv"
	"strings"
)

// DetectFormat guesses the format of path by peeking at its head. Used by
// the inspect command only; the pipeline proper always takes an explicit
// descriptor.
func DetectFormat(path string) (Format, error) {
	f, err := os.Open(path) // #nosec G304 -- user-provided paths are expected
	if err != nil {
		return nil, fmt.Errorf("opening %s: %w", path, err)
	}
	defer func() { _ = f.Close() }()

	head := make([]byte, 4096)
	n, err := f.Read(head)
	if err != nil && n == 0 {
		return nil, fmt.Errorf("reading %s: %w", path, err)
	}
	sample := string(head[:n])

	lower := strings.ToLower(sample)
	if strings.Contains(lower, "step=") && strings.Contains(lower, "time=") {
		return MultiFsFormat{}, nil
	}

	// Fall back on the column count of the first data line.
	for _, line := range strings.Split(sample, "\n") {
		line = strings.TrimSpace(line)
		if line == "" || strings.HasPrefix(line, DefaultCommentMarker) {
			continue
		}
		tokens := strings.Fields(line)
		numeric := true
		for _, tok := range tokens {
			if _, err := strconv.ParseFloat(tok, 64); err != nil {
				numeric = false
				break
			}
		}
		if !numeric {
			continue
		}
		if len(tokens) == 4 {
			return MedusaFormat{}, nil
		}
		break
	}
	return nil, fmt.Errorf("%s: unrecognized output format", path)
}
