// Package workflow implements the user-facing flows over a store: init,
// print, interactive scan, single-path edit, review and stale cleanup.
//
// Every flow takes its starting directory explicitly and never consults the
// process working directory. Any error aborts the flow; mutations already
// saved stay saved.
package workflow

import (
	"fmt"

	"github.com/sirupsen/logrus"

	"github.com/papapumpkin/sunrise/internal/prompt"
	"github.com/papapumpkin/sunrise/internal/relpath"
	"github.com/papapumpkin/sunrise/internal/render"
	"github.com/papapumpkin/sunrise/internal/store"
	"github.com/papapumpkin/sunrise/internal/ui"
	"github.com/papapumpkin/sunrise/internal/walk"
)

// Messages shown by the flows.
const (
	describePrompt = "Add description or press enter to ignore"
	editPrompt     = "Enter a new description"
	reviewPrompt   = "Add a description, press enter to ignore or '" + prompt.DeleteKey + "' to delete: "
	nothingToDo    = "Nothing to do :^)"
)

// Env carries the collaborators every flow needs.
type Env struct {
	Printer  *ui.Printer
	Prompter prompt.Prompter
	Walker   walk.Walker
	Log      logrus.FieldLogger
	// Inline and Indent control tree rendering.
	Inline bool
	Indent int
}

func (e Env) renderOptions() render.Options {
	return render.Options{
		Inline:   e.Inline,
		Indent:   e.Indent,
		Emphasis: e.Printer.Bold,
	}
}

// open locates the store governing start and announces which file is used.
func (e Env) open(start string) (*store.Store, error) {
	s, err := store.Locate(start)
	if err != nil {
		return nil, err
	}
	e.Printer.Notice("Using %s", s.Path())
	e.Log.WithFields(logrus.Fields{
		"store_file":   s.Path(),
		"root":         s.Root(),
		"descriptions": s.Len(),
	}).Debug("store located")
	return s, nil
}

// entries enumerates dir for the store.
func (e Env) entries(s *store.Store, dir string) ([]relpath.Path, error) {
	paths, err := e.Walker.Walk(s.Root(), dir)
	if err != nil {
		return nil, err
	}
	e.Log.WithField("entries", len(paths)).Debug("tree enumerated")
	return paths, nil
}

// decider turns the reconcile questions into prompts.
type decider struct {
	env Env
}

func (d decider) Describe(p relpath.Path) (string, error) {
	return d.env.Prompter.Line(fmt.Sprintf("%s: %s: ", d.env.Printer.Bold(p.Native()), describePrompt))
}

func (d decider) ConfirmRemoval(p relpath.Path) (bool, error) {
	def := prompt.Yes
	msg := fmt.Sprintf("%s no longer exists. Would you like to remove it? [Y/n]: ", p.Native())
	answer, err := prompt.Ask(d.env.Prompter, msg, prompt.ParseDecision, &def)
	if err != nil {
		return false, err
	}
	return answer == prompt.Yes, nil
}
