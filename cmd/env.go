package cmd

import (
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/papapumpkin/sunrise/internal/config"
	"github.com/papapumpkin/sunrise/internal/prompt"
	"github.com/papapumpkin/sunrise/internal/ui"
	"github.com/papapumpkin/sunrise/internal/walk"
	"github.com/papapumpkin/sunrise/internal/workflow"
)

// newEnv builds the workflow collaborators from the loaded configuration and
// the command's streams.
func newEnv(cmd *cobra.Command) (workflow.Env, config.Config, error) {
	if configErr != nil {
		return workflow.Env{}, config.Config{}, configErr
	}
	cfg, err := config.Load()
	if err != nil {
		return workflow.Env{}, config.Config{}, fmt.Errorf("failed to load config: %w", err)
	}

	log := newLogger(cmd.ErrOrStderr(), cfg.Verbose)
	log.WithFields(logrus.Fields{
		"command": cmd.Name(),
		"inline":  cfg.Inline,
		"hidden":  cfg.Hidden,
		"indent":  cfg.Indent,
		"color":   cfg.Color,
	}).Debug("configuration loaded")

	env := workflow.Env{
		Printer:  ui.New(cmd.OutOrStdout(), cmd.ErrOrStderr(), cfg.Color),
		Prompter: prompt.NewTerminal(cmd.InOrStdin(), cmd.OutOrStdout()),
		Walker:   walk.FS{Hidden: cfg.Hidden},
		Log:      log,
		Inline:   cfg.Inline,
		Indent:   cfg.Indent,
	}
	return env, cfg, nil
}

// newLogger returns a diagnostics logger: warnings only, or everything when verbose.
func newLogger(w io.Writer, verbose bool) *logrus.Logger {
	log := logrus.New()
	log.SetOutput(w)
	log.SetFormatter(&logrus.TextFormatter{DisableTimestamp: true})
	log.SetLevel(logrus.WarnLevel)
	if verbose {
		log.SetLevel(logrus.DebugLevel)
	}
	return log
}

// directoryArg returns the absolute directory named by the optional argument,
// defaulting to the working directory.
func directoryArg(args []string) (string, error) {
	if len(args) == 0 {
		wd, err := os.Getwd()
		if err != nil {
			return "", fmt.Errorf("getting working directory: %w", err)
		}
		return wd, nil
	}
	dir, err := filepath.Abs(args[0])
	if err != nil {
		return "", fmt.Errorf("resolving %s: %w", args[0], err)
	}
	return dir, nil
}
