// Package walk enumerates a directory tree the way a project listing should:
// depth-first, ignore rules honored, paths expressed relative to the store root.
package walk

import (
	"fmt"
	"io/fs"
	"path/filepath"
	"strings"

	"github.com/go-git/go-billy/v5/osfs"
	"github.com/go-git/go-git/v5/plumbing/format/gitignore"

	"github.com/papapumpkin/sunrise/internal/relpath"
	"github.com/papapumpkin/sunrise/internal/store"
)

// Walker produces the non-ignored entries under dir, relative to root, in
// display order. root must be canonical and dir must lie inside it.
type Walker interface {
	Walk(root, dir string) ([]relpath.Path, error)
}

// FS walks the real filesystem.
type FS struct {
	// Hidden includes entries whose name starts with a dot.
	Hidden bool
}

// Walk lists dir depth-first with each directory's entries in lexical order,
// directories interleaved with files. dir itself is included unless it is the
// root. Symlinks are listed under their own name and never followed.
func (w FS) Walk(root, dir string) ([]relpath.Path, error) {
	patterns, err := gitignore.ReadPatterns(osfs.New(root), nil)
	if err != nil {
		return nil, fmt.Errorf("reading ignore rules under %s: %w", root, err)
	}
	matcher := gitignore.NewMatcher(patterns)

	start, err := relpath.Normalize(root, dir)
	if err != nil {
		return nil, err
	}
	startAbs := start.Abs(root)

	var out []relpath.Path
	err = filepath.WalkDir(startAbs, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			if path == startAbs {
				return err
			}
			// Unreadable entries are left out rather than aborting the listing.
			return nil
		}

		rel, err := filepath.Rel(root, path)
		if err != nil {
			return err
		}
		p := relpath.Clean(rel)

		if path == startAbs {
			if !p.IsRoot() {
				out = append(out, p)
			}
			return nil
		}

		if w.excluded(p, d, matcher) {
			if d.IsDir() {
				return filepath.SkipDir
			}
			return nil
		}
		out = append(out, p)
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("walking %s: %w", startAbs, err)
	}
	return out, nil
}

func (w FS) excluded(p relpath.Path, d fs.DirEntry, matcher gitignore.Matcher) bool {
	name := d.Name()
	switch {
	case name == ".git":
		return true
	case p == relpath.Path(store.FileName):
		return true
	case !w.Hidden && strings.HasPrefix(name, "."):
		return true
	}
	return matcher.Match(p.Components(), d.IsDir())
}
