// Package reconcile compares a store's described paths with the live tree.
//
// Discovery offers every live, undescribed path for a description. The
// staleness pass offers every described path that no longer exists for
// removal. Both passes mutate only through the caller's Decider answers, and
// each mutation is saved before the next path is considered.
package reconcile

import (
	"errors"
	"io"
	"io/fs"
	"os"

	"github.com/sirupsen/logrus"

	"github.com/papapumpkin/sunrise/internal/relpath"
)

// Annotations is the store surface the passes need.
type Annotations interface {
	Root() string
	Contains(p relpath.Path) bool
	Set(p relpath.Path, text string) error
	Remove(p relpath.Path) error
	KnownPaths() []relpath.Path
}

// Decider supplies the human decisions for each pass.
type Decider interface {
	// Describe returns the description for an undescribed path. Empty means leave it alone.
	Describe(p relpath.Path) (string, error)
	// ConfirmRemoval reports whether a stale path should be removed.
	ConfirmRemoval(p relpath.Path) (bool, error)
}

// Synchronizer runs the passes against one store.
type Synchronizer struct {
	Store   Annotations
	Decider Decider
	Log     logrus.FieldLogger
}

// discard serves a Synchronizer built without a logger.
var discard = &logrus.Logger{
	Out:       io.Discard,
	Formatter: new(logrus.TextFormatter),
	Hooks:     make(logrus.LevelHooks),
	Level:     logrus.PanicLevel,
}

func (s *Synchronizer) log() logrus.FieldLogger {
	if s.Log != nil {
		return s.Log
	}
	return discard
}

// Undescribed returns the entries that have no description, in enumeration order.
func Undescribed(a Annotations, entries []relpath.Path) []relpath.Path {
	var out []relpath.Path
	for _, p := range entries {
		if !p.IsRoot() && !a.Contains(p) {
			out = append(out, p)
		}
	}
	return out
}

// Stale returns the described paths that no longer exist under the root, in path order.
func Stale(a Annotations) []relpath.Path {
	var out []relpath.Path
	for _, p := range a.KnownPaths() {
		if !exists(a.Root(), p) {
			out = append(out, p)
		}
	}
	return out
}

// exists reports whether p is present under root. A symlink counts by its own
// name, dangling or not. Permission failures count as existing so an
// unreadable entry is never offered for removal.
func exists(root string, p relpath.Path) bool {
	_, err := os.Lstat(p.Abs(root))
	return err == nil || errors.Is(err, fs.ErrPermission)
}

// Discover offers each undescribed entry to the Decider and stores non-empty
// answers. It reports whether any description was added.
func (s *Synchronizer) Discover(entries []relpath.Path) (bool, error) {
	changed := false
	for _, p := range Undescribed(s.Store, entries) {
		text, err := s.Decider.Describe(p)
		if err != nil {
			return changed, err
		}
		if text == "" {
			continue
		}
		if err := s.Store.Set(p, text); err != nil {
			return changed, err
		}
		s.log().WithField("path", p).Debug("description added")
		changed = true
	}
	return changed, nil
}

// Clean offers each stale entry for removal. The set of stale paths is taken
// before the first prompt. It reports whether any entry was removed.
func (s *Synchronizer) Clean() (bool, error) {
	changed := false
	for _, p := range Stale(s.Store) {
		remove, err := s.Decider.ConfirmRemoval(p)
		if err != nil {
			return changed, err
		}
		if !remove {
			continue
		}
		if err := s.Store.Remove(p); err != nil {
			return changed, err
		}
		s.log().WithField("path", p).Debug("stale description removed")
		changed = true
	}
	return changed, nil
}
