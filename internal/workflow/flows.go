package workflow

import (
	"errors"
	"io/fs"
	"os"

	"github.com/sirupsen/logrus"

	"github.com/papapumpkin/sunrise/internal/prompt"
	"github.com/papapumpkin/sunrise/internal/reconcile"
	"github.com/papapumpkin/sunrise/internal/relpath"
	"github.com/papapumpkin/sunrise/internal/render"
	"github.com/papapumpkin/sunrise/internal/store"
)

// Init creates an empty store file in dir, or reports that one already exists.
func Init(env Env, dir string) error {
	path, created, err := store.Create(dir)
	if err != nil {
		return err
	}
	if !created {
		env.Printer.Info("%s already exists.", path)
		return nil
	}
	env.Printer.Info("Initialised %s", path)
	return nil
}

// Print renders the annotated tree under dir.
func Print(env Env, dir string) error {
	s, err := env.open(dir)
	if err != nil {
		return err
	}
	paths, err := env.entries(s, dir)
	if err != nil {
		return err
	}
	return render.Write(env.Printer.Out(), s.Descriptions(), paths, env.renderOptions())
}

// Interactive offers every undescribed path under dir for a description, then
// offers every stale entry for removal.
func Interactive(env Env, dir string) error {
	s, err := env.open(dir)
	if err != nil {
		return err
	}
	paths, err := env.entries(s, dir)
	if err != nil {
		return err
	}

	sync := &reconcile.Synchronizer{Store: s, Decider: decider{env: env}, Log: env.Log}
	added, err := sync.Discover(paths)
	if err != nil {
		return err
	}
	removed, err := sync.Clean()
	if err != nil {
		return err
	}

	if !added && !removed {
		env.Printer.Info(nothingToDo)
	}
	return nil
}

// Clean offers every stale entry for removal; the default answer is yes.
func Clean(env Env, dir string) error {
	s, err := env.open(dir)
	if err != nil {
		return err
	}

	sync := &reconcile.Synchronizer{Store: s, Decider: decider{env: env}, Log: env.Log}
	removed, err := sync.Clean()
	if err != nil {
		return err
	}
	if !removed {
		env.Printer.Info(nothingToDo)
	}
	return nil
}

// Edit shows the current description of target and replaces it with the
// response. An empty response never mutates the store.
func Edit(env Env, target string) error {
	if _, err := os.Lstat(target); err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			err = relpath.ErrNotExist
		}
		return &relpath.Error{Path: target, Err: err}
	}

	s, err := env.open(target)
	if err != nil {
		return err
	}
	p, err := s.Relative(target)
	if err != nil {
		return err
	}
	if p.IsRoot() {
		return store.ErrRootPath
	}

	if prev, ok := s.Get(p); ok {
		env.Printer.Info("Previous description: %s", prev)
	}

	text, err := env.Prompter.Line(env.Printer.Bold(p.Native()) + ": " + editPrompt + ": ")
	if err != nil {
		return err
	}
	if text == "" {
		env.Log.WithField("path", p).Debug("empty input, description unchanged")
		return nil
	}
	if err := s.Set(p, text); err != nil {
		return err
	}
	env.Log.WithField("path", p).Debug("description updated")
	return nil
}

// Review walks every described path, as of the start of the review, and lets
// the user update, skip or delete each description.
func Review(env Env, dir string) error {
	s, err := env.open(dir)
	if err != nil {
		return err
	}

	for _, p := range s.KnownPaths() {
		desc, ok := s.Get(p)
		if !ok {
			continue
		}
		env.Printer.Notice("%s", p.Native())
		env.Printer.Info("Current Description: %s", desc)

		decision, err := prompt.Ask(env.Prompter, reviewPrompt, prompt.ParseReviewDecision, nil)
		if err != nil {
			return err
		}

		switch decision.Action {
		case prompt.ReviewUpdate:
			err = s.Set(p, decision.Text)
		case prompt.ReviewDelete:
			err = s.Remove(p)
		}
		if err != nil {
			return err
		}
		if decision.Action != prompt.ReviewSkip {
			env.Log.WithFields(logrus.Fields{"path": p, "action": decision.Action}).Debug("review applied")
		}
	}
	return nil
}
