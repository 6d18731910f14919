package timeline

import (
	"fmt"
	"os"
	"strings"

	"owlwatch/internal/fileutil"
)

// Store persists the timeline as a newest-first text file, one entry per
// line. Reads and writes always go through the full file; there is no
// in-memory caching.
type Store struct {
	path string
}

// NewStore returns a store over the given file path. The file is created
// lazily on first append.
func NewStore(path string) *Store {
	return &Store{path: path}
}

// Path returns the backing file path.
func (s *Store) Path() string {
	return s.path
}

// Load returns timeline lines from the top of the file. A limit of zero or
// less returns everything. A missing file is an empty timeline.
func (s *Store) Load(limit int) ([]string, error) {
	data, err := os.ReadFile(s.path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("read timeline: %w", err)
	}

	var lines []string
	for _, line := range strings.Split(string(data), "\n") {
		line = strings.TrimSpace(line)
		if line == "" {
			continue
		}
		lines = append(lines, line)
		if limit > 0 && len(lines) == limit {
			break
		}
	}
	return lines, nil
}

// Append inserts lines at the top of the file, keeping the newest entries
// first.
func (s *Store) Append(lines []string) error {
	if len(lines) == 0 {
		return nil
	}
	existing, err := s.Load(0)
	if err != nil {
		return err
	}
	return s.write(append(append([]string{}, lines...), existing...))
}

// Prune keeps only the newest keep lines, returning the number removed.
func (s *Store) Prune(keep int) (int, error) {
	if keep <= 0 {
		return 0, nil
	}
	lines, err := s.Load(0)
	if err != nil {
		return 0, err
	}
	if len(lines) <= keep {
		return 0, nil
	}
	removed := len(lines) - keep
	if err := s.write(lines[:keep]); err != nil {
		return 0, err
	}
	return removed, nil
}

func (s *Store) write(lines []string) error {
	var builder strings.Builder
	for _, line := range lines {
		builder.WriteString(line)
		builder.WriteByte('\n')
	}
	if err := fileutil.WriteFileAtomic(s.path, []byte(builder.String()), 0o644); err != nil {
		return fmt.Errorf("write timeline: %w", err)
	}
	return nil
}
