package cmd

import (
	"github.com/spf13/cobra"

	"github.com/papapumpkin/sunrise/internal/workflow"
)

var initCmd = &cobra.Command{
	Use:   "init [directory]",
	Short: "Create an empty .sunrise file",
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
		return workflow.Init(env, dir)
	},
}

func init() {
	rootCmd.AddCommand(initCmd)
}
