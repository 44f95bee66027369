package parser

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"os"
	"strings"
)

// DefaultCommentMarker prefixes lines that are skipped as comments.
const DefaultCommentMarker = "#"

// FileSource implements RecordSource for one simulation output file.
// The file is opened lazily on the first Next call, so a FileSource is
// restartable: constructing a new one re-reads the file from the start.
type FileSource struct {
	path          string
	format        Format
	commentMarker string

	file    *os.File
	scanner *bufio.Scanner
	lp      lineParser
	line    int
	done    bool
}

// NewFileSource creates a RecordSource reading path with the given format.
func NewFileSource(path string, format Format) *FileSource {
	return &FileSource{
		path:          path,
		format:        format,
		commentMarker: DefaultCommentMarker,
	}
}

// SetCommentMarker overrides the comment prefix. An empty marker disables
// comment skipping.
func (s *FileSource) SetCommentMarker(marker string) { s.commentMarker = marker }

// Next returns the next raw record.
// Skips blank lines, comment lines and the format's structural lines.
// Returns io.EOF when the file is exhausted.
func (s *FileSource) Next(ctx context.Context) (*RawRecord, error) {
	for {
		// Check for context cancellation
		select {
		case <-ctx.Done():
			return nil, ctx.Err()
		default:
		}

		if s.done {
			return nil, io.EOF
		}
		if s.scanner == nil {
			if err := s.open(); err != nil {
				return nil, err
			}
		}

		if !s.scanner.Scan() {
			if err := s.scanner.Err(); err != nil {
				return nil, fmt.Errorf("reading %s: %w", s.path, err)
			}
			s.done = true
			if err := s.Close(); err != nil {
				return nil, err
			}
			return nil, io.EOF
		}

		s.line++
		line := strings.TrimSpace(s.scanner.Text())
		if line == "" {
			continue
		}
		if s.commentMarker != "" && strings.HasPrefix(line, s.commentMarker) {
			continue
		}

		rec, err := s.lp.parse(s.path, s.line, line)
		if err != nil {
			return nil, err
		}
		if rec == nil {
			// Structural line (block header, column header row).
			continue
		}
		return rec, nil
	}
}

// Close releases the underlying file handle.
func (s *FileSource) Close() error {
	if s.file != nil {
		err := s.file.Close()
		s.file = nil
		s.scanner = nil
		return err
	}
	return nil
}

func (s *FileSource) open() error {
	f, err := os.Open(s.path) // #nosec G304 -- user-provided paths are expected
	if err != nil {
		return fmt.Errorf("opening output file %s: %w", s.path, err)
	}
	s.file = f
	s.scanner = bufio.NewScanner(f)
	s.scanner.Buffer(make([]byte, 0, 64*1024), 1024*1024) // 1MB max line size
	s.lp = s.format.newLineParser()
	s.line = 0
	return nil
}

// ReadAll drains a source into a slice. Convenience for callers that do
// not need streaming.
func ReadAll(ctx context.Context, src RecordSource) ([]*RawRecord, error) {
	var out []*RawRecord
	for {
		rec, err := src.Next(ctx)
		if err == io.EOF {
			return out, nil
		}
		if err != nil {
			return nil, err
		}
		out = append(out, rec)
	}
}
