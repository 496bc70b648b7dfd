package cmd

import (
	"fmt"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/papapumpkin/sunrise/internal/workflow"
)

var editCmd = &cobra.Command{
	Use:   "edit <path>...",
	Short: "Set the description of a path",
	Long: `Shows the current description of the first path and prompts for a new
one. An empty answer leaves the description as it was.`,
	Args: cobra.MinimumNArgs(1),
	RunE: runEdit,
}

func init() {
	rootCmd.AddCommand(editCmd)
}

func runEdit(cmd *cobra.Command, args []string) error {
	env, _, err := newEnv(cmd)
	if err != nil {
		return err
	}
	if len(args) > 1 {
		env.Log.WithField("ignored", args[1:]).Warn("only the first path is edited")
	}

	target, err := filepath.Abs(args[0])
	if err != nil {
		return fmt.Errorf("resolving %s: %w", args[0], err)
	}
	return workflow.Edit(env, target)
}
