// Package runsource provides sources for the served run's identifier.
package runsource

import (
	"fmt"
	"os"
)

// File reads the run identifier from a one-line text file, the way a
// training pipeline publishes its best run.
type File struct {
	path string
}

// NewFile creates a file-backed run source.
func NewFile(path string) *File {
	return &File{path: path}
}

// RunID returns the file's contents. Surrounding whitespace is the
// store's concern; the raw contents are returned as read.
func (f *File) RunID() (string, error) {
	data, err := os.ReadFile(f.path)
	if err != nil {
		return "", fmt.Errorf("failed to read run identifier file: %w", err)
	}
	return string(data), nil
}
