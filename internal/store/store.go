// Package store owns the persisted mapping from root-relative paths to
// descriptions, and finds it by searching upward from a starting directory.
//
// Every mutation rewrites the whole backing file before returning, so an
// interrupted process loses at most the decision in flight.
package store

import (
	"errors"
	"fmt"
	"io/fs"
	"maps"
	"os"
	"path/filepath"

	"github.com/papapumpkin/sunrise/internal/relpath"
)

// FileName is the name of the backing file in the root directory.
const FileName = ".sunrise"

// Store is the path to description mapping bound to the root it governs.
type Store struct {
	root         string
	path         string
	descriptions map[relpath.Path]string
}

// Locate walks upward from start until it finds a directory containing
// FileName, then loads it. start may be a file, in which case the search begins
// at its parent directory. The returned store's root is canonical and its file
// always lives directly in the root.
func Locate(start string) (*Store, error) {
	abs, err := filepath.Abs(start)
	if err != nil {
		return nil, fmt.Errorf("resolving %s: %w", start, err)
	}

	current := abs
	if info, err := os.Stat(abs); err == nil && !info.IsDir() {
		current = filepath.Dir(abs)
	}

	for {
		if _, err := os.Stat(filepath.Join(current, FileName)); err == nil {
			return Load(current)
		}
		parent := filepath.Dir(current)
		if parent == current {
			return nil, fmt.Errorf("%w in %s or any parent directory", ErrNotFound, abs)
		}
		current = parent
	}
}

// Load reads the store file in dir. A store file that does not decode is a
// *FormatError and is never retried.
func Load(dir string) (*Store, error) {
	root, err := filepath.EvalSymlinks(dir)
	if err != nil {
		return nil, fmt.Errorf("resolving %s: %w", dir, err)
	}
	path := filepath.Join(root, FileName)

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading %s: %w", path, err)
	}

	descriptions, err := Decode(data)
	if err != nil {
		return nil, &FormatError{Path: path, Op: "decode", Err: err}
	}

	return &Store{root: root, path: path, descriptions: descriptions}, nil
}

// Create writes an empty store file into dir. It reports false without
// touching anything when the file already exists.
func Create(dir string) (path string, created bool, err error) {
	abs, err := filepath.Abs(dir)
	if err != nil {
		return "", false, fmt.Errorf("resolving %s: %w", dir, err)
	}
	path = filepath.Join(abs, FileName)

	if _, err := os.Stat(path); err == nil {
		return path, false, nil
	}

	data, err := Encode(nil)
	if err != nil {
		return path, false, &FormatError{Path: path, Op: "encode", Err: err}
	}

	f, err := os.OpenFile(path, os.O_WRONLY|os.O_CREATE|os.O_EXCL, 0o644)
	if err != nil {
		if errors.Is(err, fs.ErrExist) {
			return path, false, nil
		}
		return path, false, fmt.Errorf("creating %s: %w", path, err)
	}
	defer f.Close()

	if _, err := f.Write(data); err != nil {
		return path, false, fmt.Errorf("writing %s: %w", path, err)
	}
	return path, true, nil
}

// Root returns the canonical directory the store governs.
func (s *Store) Root() string { return s.root }

// Path returns the backing file location.
func (s *Store) Path() string { return s.path }

// Len returns the number of described paths.
func (s *Store) Len() int { return len(s.descriptions) }

// Relative normalizes target against the store root.
func (s *Store) Relative(target string) (relpath.Path, error) {
	return relpath.Normalize(s.root, target)
}

// Get returns the description for p, if any.
func (s *Store) Get(p relpath.Path) (string, bool) {
	d, ok := s.descriptions[p]
	return d, ok
}

// Contains reports whether p has a description.
func (s *Store) Contains(p relpath.Path) bool {
	_, ok := s.descriptions[p]
	return ok
}

// Set stores text for p and saves. Empty text removes the entry instead.
func (s *Store) Set(p relpath.Path, text string) error {
	if text == "" {
		return s.Remove(p)
	}
	if p.IsRoot() {
		return ErrRootPath
	}
	s.descriptions[p] = text
	return s.Save()
}

// Remove deletes the entry for p, if present, and saves regardless.
func (s *Store) Remove(p relpath.Path) error {
	delete(s.descriptions, p)
	return s.Save()
}

// KnownPaths returns every described path in component-wise order.
func (s *Store) KnownPaths() []relpath.Path {
	paths := make([]relpath.Path, 0, len(s.descriptions))
	for p := range s.descriptions {
		paths = append(paths, p)
	}
	relpath.Sort(paths)
	return paths
}

// Descriptions returns a copy of the full mapping.
func (s *Store) Descriptions() map[relpath.Path]string {
	return maps.Clone(s.descriptions)
}

// Save overwrites the backing file with the full mapping.
func (s *Store) Save() error {
	data, err := Encode(s.descriptions)
	if err != nil {
		return &FormatError{Path: s.path, Op: "encode", Err: err}
	}
	if err := os.WriteFile(s.path, data, 0o644); err != nil {
		return fmt.Errorf("writing %s: %w", s.path, err)
	}
	return nil
}
