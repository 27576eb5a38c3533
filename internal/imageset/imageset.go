// Package imageset holds the ordered list of files the viewer steps through.
package imageset

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sort"

	"imageviewer/pkg/formats"
)

var (
	ErrNoImages    = errors.New("Open with at least one image selected.")
	ErrUnsupported = fmt.Errorf("Expected an image. Supported formats: %s.", formats.List())
)

// Set is an ordered, non-empty sequence of paths with a current position
type Set struct {
	paths   []string
	index   int
	scanErr error
}

// New creates a set over paths positioned at index. An out of range index is
// clamped.
func New(paths []string, index int) (*Set, error) {
	if len(paths) == 0 {
		return nil, ErrNoImages
	}
	s := &Set{paths: append([]string(nil), paths...)}
	s.index = s.clamp(index)
	return s, nil
}

// Resolve builds the set from command line paths (program name excluded).
// Several paths, or a single bare file name, are used as given. A single
// path with a directory part expands to every recognised image in that
// directory, sorted, positioned at the given file. An unreadable directory
// leaves the single path, so the viewer reports it like any failed image.
func Resolve(args []string) (*Set, error) {
	if len(args) == 0 {
		return nil, ErrNoImages
	}
	first := args[0]
	if !formats.IsSupported(first) {
		return nil, ErrUnsupported
	}

	dir, _ := filepath.Split(first)
	if len(args) > 1 || dir == "" {
		return New(args, 0)
	}

	paths, err := scanDir(dir)
	if err != nil {
		s, _ := New([]string{first}, 0)
		s.scanErr = err
		return s, nil
	}

	index := 0
	for i, p := range paths {
		if p == first {
			index = i
			break
		}
	}
	if len(paths) == 0 {
		paths = []string{first}
	}
	return New(paths, index)
}

// scanDir lists the recognised image files in dir. Returned paths keep dir
// as given, so they compare equal to a path the user typed.
func scanDir(dir string) ([]string, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, fmt.Errorf("scanning %s: %w", dir, err)
	}

	paths := make([]string, 0, len(entries))
	for _, e := range entries {
		if e.IsDir() || !formats.IsSupported(e.Name()) {
			continue
		}
		paths = append(paths, dir+e.Name())
	}
	sort.Strings(paths)
	return paths, nil
}

// ScanErr returns why the directory of a single path could not be listed
func (s *Set) ScanErr() error {
	return s.scanErr
}

// Len returns the number of paths
func (s *Set) Len() int {
	return len(s.paths)
}

// Index returns the current position
func (s *Set) Index() int {
	return s.index
}

// Current returns the path at the current position
func (s *Set) Current() string {
	return s.paths[s.index]
}

// Paths returns a copy of the paths
func (s *Set) Paths() []string {
	return append([]string(nil), s.paths...)
}

// Next moves forward one position, wrapping from the last to the first
func (s *Set) Next() string {
	s.index = (s.index + 1) % len(s.paths)
	return s.Current()
}

// Previous moves back one position, wrapping from the first to the last
func (s *Set) Previous() string {
	n := len(s.paths)
	s.index = (s.index - 1 + n) % n
	return s.Current()
}

// Jump moves to index, clamped to the last valid position
func (s *Set) Jump(index int) string {
	s.index = s.clamp(index)
	return s.Current()
}

func (s *Set) clamp(i int) int {
	if i < 0 {
		return 0
	}
	if i >= len(s.paths) {
		return len(s.paths) - 1
	}
	return i
}
