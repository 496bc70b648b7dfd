package cmd

import (
	"github.com/spf13/cobra"

	"github.com/papapumpkin/sunrise/internal/workflow"
)

var interactiveCmd = &cobra.Command{
	Use:   "interactive [directory]",
	Short: "Describe new paths and clean up stale ones",
	Long: `Prompts for a description of every path under the directory that has
none (press enter to leave it), then offers to remove every description whose
path no longer exists.`,
	Args: cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		env, _, err := newEnv(cmd)
		if err != nil {
			return err
		}
		dir, err := directoryArg(args)
		if err != nil {
			return err
		}
		return workflow.Interactive(env, dir)
	},
}

var cleanCmd = &cobra.Command{
	Use:   "clean [directory]",
	Short: "Remove descriptions of paths that no longer exist",
	Args:  cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		env, _, err := newEnv(cmd)
		if err != nil {
			return err
		}
		dir, err := directoryArg(args)
		if err != nil {
			return err
		}
		return workflow.Clean(env, dir)
	},
}

func init() {
	rootCmd.AddCommand(interactiveCmd)
	rootCmd.AddCommand(cleanCmd)
}
