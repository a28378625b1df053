package cli

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/devbush/likewrapped/internal/config"
)

var forceFlag bool

// NewConfigCmd creates the config subcommand
func NewConfigCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "config",
		Short: "Show or create the configuration file",
		RunE: func(cmd *cobra.Command, args []string) error {
			fmt.Fprintln(cmd.OutOrStdout(), configFilePath())
			return nil
		},
	}

	initCmd := &cobra.Command{
		Use:   "init",
		Short: "Write a config file with default values",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			path := configFilePath()
			if err := initConfig(path, forceFlag); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Wrote %s\n", path)
			return nil
		},
	}
	initCmd.Flags().BoolVar(&forceFlag, "force", false, "Overwrite an existing config file")

	cmd.AddCommand(initCmd)
	return cmd
}

func configFilePath() string {
	if configFlag != "" {
		return configFlag
	}
	return config.ConfigPath()
}

// initConfig writes the defaults to path, refusing to clobber an existing
// file unless force is set.
func initConfig(path string, force bool) error {
	if _, err := os.Stat(path); err == nil && !force {
		return fmt.Errorf("%s already exists (use --force to overwrite)", path)
	}
	return config.DefaultConfig().Save(path)
}
