package cmd

import (
	"fmt"
	"runtime/debug"
	"strings"

	"github.com/spf13/cobra"
)

// Version 在发布构建时通过 -ldflags "-X blogconf/cmd.Version=..." 注入。
var Version = "0.1.0"

var versionCmd = newVersionCmd()

func newVersionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Show version and build information",
		Args:  cobra.NoArgs,
		Run: func(cmd *cobra.Command, _ []string) {
			info, _ := debug.ReadBuildInfo()
			fmt.Fprintln(cmd.OutOrStdout(), versionString(Version, info))
		},
	}
}

func init() {
	rootCmd.AddCommand(versionCmd)
}

// versionString 返回 "blogconf <版本> (<修订>, <Go 版本>)"，构建信息缺失的部分省略。
func versionString(version string, info *debug.BuildInfo) string {
	if info == nil {
		return "blogconf " + version
	}

	var details []string
	for _, setting := range info.Settings {
		if setting.Key != "vcs.revision" || setting.Value == "" {
			continue
		}
		rev := setting.Value
		if len(rev) > 7 {
			rev = rev[:7]
		}
		details = append(details, rev)
	}
	for _, setting := range info.Settings {
		if setting.Key == "vcs.modified" && setting.Value == "true" && len(details) > 0 {
			details[0] += "-dirty"
		}
	}
	if info.GoVersion != "" {
		details = append(details, info.GoVersion)
	}

	if len(details) == 0 {
		return "blogconf " + version
	}
	return fmt.Sprintf("blogconf %s (%s)", version, strings.Join(details, ", "))
}
