package cmd

import (
	"github.com/spf13/cobra"

	"github.com/papapumpkin/sunrise/internal/workflow"
)

var reviewCmd = &cobra.Command{
	Use:   "review [directory]",
	Short: "Update, keep or delete every existing description",
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
		return workflow.Review(env, dir)
	},
}

func init() {
	rootCmd.AddCommand(reviewCmd)
}
