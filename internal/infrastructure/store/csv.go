package store

import (
	"strings"

	"github.com/pkg/errors"
)

// columnIndex maps lowercased header names to positions and verifies that
// every required column is present
func columnIndex(header []string, required ...string) (map[string]int, error) {
	idx := make(map[string]int, len(header))
	for i, name := range header {
		idx[strings.ToLower(strings.TrimSpace(name))] = i
	}
	for _, name := range required {
		if _, ok := idx[name]; !ok {
			return nil, errors.Errorf("missing required column %q", name)
		}
	}
	return idx, nil
}

// field returns the trimmed value of a named column, or "" when the row is
// short
func field(row []string, cols map[string]int, name string) string {
	i := cols[name]
	if i >= len(row) {
		return ""
	}
	return strings.TrimSpace(row[i])
}
