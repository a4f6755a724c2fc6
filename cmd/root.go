package cmd

import (
	"os"

	"github.com/spf13/cobra"
)

var rootCmd = newRootCmd()

// newRootCmd 构建根命令；不带子命令运行时等同于 show。
func newRootCmd() *cobra.Command {
	opts := &showOptions{}
	cmd := &cobra.Command{
		Use:   "blogconf",
		Short: "Layered settings for the static blog build",
		Long: `blogconf defines the site settings consumed by the static-site generator.

The base profile is used for local preview builds. The publish profile is the
base profile with a small set of production overrides merged on top.`,
		Args:         cobra.NoArgs,
		SilenceUsage: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runShow(cmd, opts)
		},
	}
	addShowFlags(cmd, opts)
	return cmd
}

func Execute() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}
