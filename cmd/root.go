package cmd

import (
	"errors"
	"fmt"
	"os"
	"os/signal"
	"path/filepath"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/papapumpkin/sunrise/internal/config"
	"github.com/papapumpkin/sunrise/internal/ui"
	"github.com/papapumpkin/sunrise/internal/workflow"
)

var rootCmd = &cobra.Command{
	Use:   "sunrise [directory]",
	Short: "Describe the files and directories of a project",
	Long: `Sunrise keeps human-written descriptions of files and directories in a
.sunrise file at the project root and prints the tree with them attached.

Without a subcommand, prints the annotated tree of the given directory
(default: the current directory).`,
	Args:          cobra.MaximumNArgs(1),
	SilenceErrors: true,
	SilenceUsage:  true,
	RunE:          runPrint,
}

// configErr holds a failure to read an explicitly requested config file.
var configErr error

func Execute() {
	if err := rootCmd.Execute(); err != nil {
		cfg, _ := config.Load()
		ui.New(os.Stdout, os.Stderr, cfg.Color).Error(err)
		os.Exit(1)
	}
}

func init() {
	cobra.OnInitialize(initConfig)

	rootCmd.PersistentFlags().String("config", "", "config file (default <user config dir>/sunrise/config.toml)")
	rootCmd.PersistentFlags().BoolP("verbose", "v", false, "verbose diagnostics")
	rootCmd.PersistentFlags().BoolP("inline", "i", false, "print descriptions on the same line as their path")
	rootCmd.Flags().BoolP("watch", "w", false, "print again whenever the tree or the store changes")

	_ = viper.BindPFlag("verbose", rootCmd.PersistentFlags().Lookup("verbose"))
	_ = viper.BindPFlag("inline", rootCmd.PersistentFlags().Lookup("inline"))
}

func initConfig() {
	configErr = nil
	if cfgFile, _ := rootCmd.PersistentFlags().GetString("config"); cfgFile != "" {
		viper.SetConfigFile(cfgFile)
		if err := viper.ReadInConfig(); err != nil {
			configErr = fmt.Errorf("reading config %s: %w", cfgFile, err)
		}
		return
	}

	viper.SetConfigName("config")
	viper.SetConfigType("toml")
	if dir, err := os.UserConfigDir(); err == nil {
		viper.AddConfigPath(filepath.Join(dir, "sunrise"))
	}

	// It's fine if no config file is found; we use defaults.
	if err := viper.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			configErr = fmt.Errorf("reading config: %w", err)
		}
	}
}

func runPrint(cmd *cobra.Command, args []string) error {
	env, cfg, err := newEnv(cmd)
	if err != nil {
		return err
	}
	dir, err := directoryArg(args)
	if err != nil {
		return err
	}

	if watch, _ := cmd.Flags().GetBool("watch"); watch {
		ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt)
		defer stop()
		return workflow.Watch(ctx, env, dir, cfg.WatchDebounce)
	}
	return workflow.Print(env, dir)
}
