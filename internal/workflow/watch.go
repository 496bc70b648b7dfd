package workflow

import (
	"context"
	"fmt"
	"os"
	"time"

	"github.com/papapumpkin/sunrise/internal/relpath"
	"github.com/papapumpkin/sunrise/internal/render"
	"github.com/papapumpkin/sunrise/internal/store"
	"github.com/papapumpkin/sunrise/internal/watch"
)

// Watch prints the tree under dir, then prints it again after every settled
// change to the tree or the store file, until ctx is done.
func Watch(ctx context.Context, env Env, dir string, debounce time.Duration) error {
	s, err := env.open(dir)
	if err != nil {
		return err
	}

	w, err := watch.New(debounce)
	if err != nil {
		return fmt.Errorf("creating watcher: %w", err)
	}
	w.Start()
	defer w.Stop()

	for {
		paths, err := env.entries(s, dir)
		if err != nil {
			return err
		}
		if err := w.Add(watchedDirs(s.Root(), dir, paths)...); err != nil {
			return fmt.Errorf("watching %s: %w", dir, err)
		}
		if err := render.Write(env.Printer.Out(), s.Descriptions(), paths, env.renderOptions()); err != nil {
			return err
		}

		select {
		case <-ctx.Done():
			return nil
		case <-w.Changes:
		}

		// The store file may have been rewritten by another invocation.
		if s, err = store.Load(s.Root()); err != nil {
			return err
		}
		fmt.Fprintln(env.Printer.Out())
	}
}

// watchedDirs lists the root (for the store file), dir and every directory entry.
func watchedDirs(root, dir string, paths []relpath.Path) []string {
	dirs := []string{root, dir}
	for _, p := range paths {
		abs := p.Abs(root)
		if info, err := os.Stat(abs); err == nil && info.IsDir() {
			dirs = append(dirs, abs)
		}
	}
	return dirs
}
