// Package relpath maps filesystem paths to stable, root-relative identities.
//
// A Path is always slash-separated and cleaned, so two paths that name the same
// entry compare equal regardless of how the caller spelled them. Targets are
// canonicalized before the difference against the root is computed: "." and
// ".." are removed and every directory leading to the target has its symlinks
// resolved. The final element keeps its own name, so a symlink is keyed as the
// link, the same way a directory walk lists it. A lookup with an
// uncanonicalized path would silently miss.
package relpath

import (
	"errors"
	"io/fs"
	"os"
	"path"
	"path/filepath"
	"slices"
	"strings"
)

// Path is a path relative to a store root. The zero value denotes the root itself.
type Path string

// Clean converts a slash- or native-separated relative path into a Path.
func Clean(s string) Path {
	c := path.Clean(filepath.ToSlash(s))
	if c == "." {
		return ""
	}
	return Path(c)
}

// String returns the slash-separated form used as the store key.
func (p Path) String() string { return string(p) }

// Native returns the path with platform separators.
func (p Path) Native() string { return filepath.FromSlash(string(p)) }

// IsRoot reports whether p denotes the root directory.
func (p Path) IsRoot() bool { return p == "" }

// Components splits p into its path elements. The root has none.
func (p Path) Components() []string {
	if p.IsRoot() {
		return nil
	}
	return strings.Split(string(p), "/")
}

// Depth is the number of components in p.
func (p Path) Depth() int {
	return len(p.Components())
}

// Abs joins p onto root.
func (p Path) Abs(root string) string {
	return filepath.Join(root, p.Native())
}

// Compare orders paths component by component, so "a/b" sorts before "a-b".
func Compare(a, b Path) int {
	return slices.Compare(a.Components(), b.Components())
}

// Sort orders paths in place using Compare.
func Sort(paths []Path) {
	slices.SortFunc(paths, Compare)
}

// Normalize resolves target to its canonical form and expresses it relative to
// root. root must already be absolute and canonical. target may be relative to
// the process working directory or absolute, and must exist; a dangling
// symlink exists.
func Normalize(root, target string) (Path, error) {
	abs, err := filepath.Abs(target)
	if err != nil {
		return "", &Error{Path: target, Err: err}
	}

	if _, err := os.Lstat(abs); err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return "", &Error{Path: target, Err: ErrNotExist}
		}
		return "", &Error{Path: target, Err: err}
	}

	resolved := abs
	if parent := filepath.Dir(abs); parent != abs {
		dir, err := filepath.EvalSymlinks(parent)
		if err != nil {
			return "", &Error{Path: target, Err: err}
		}
		resolved = filepath.Join(dir, filepath.Base(abs))
	}

	rel, err := filepath.Rel(root, resolved)
	if err != nil {
		return "", &Error{Path: target, Err: ErrUnrelated}
	}

	p := Clean(rel)
	if p == ".." || strings.HasPrefix(string(p), "../") {
		return "", &Error{Path: target, Err: ErrOutsideRoot}
	}
	return p, nil
}
