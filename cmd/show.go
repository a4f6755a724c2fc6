package cmd

import (
	"fmt"
	"strings"

	"blogconf/internal/render"

	"github.com/spf13/cobra"
)

// showOptions 保存 show 命令的标志值。
type showOptions struct {
	profile   string // 环境名称，为空时使用配置值
	format    string // 输出格式：table/json/py，为空时使用配置值
	overrides string // 额外的覆盖文件
}

// showCmd 实现 show 子命令，输出某个环境的有效设置。
// 这是默认命令，当不带子命令运行 blogconf 时也会执行。
// 用法: blogconf show [-p profile] [-f format] [--overrides file]
var showCmd = newShowCmd()

func newShowCmd() *cobra.Command {
	opts := &showOptions{}
	cmd := &cobra.Command{
		Use:   "show",
		Short: "Show effective settings of a profile",
		Example: `  blogconf show
  blogconf show -p publish
  blogconf show -p publish -f py
  blogconf show --overrides staging.yaml -f json`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runShow(cmd, opts)
		},
	}
	addShowFlags(cmd, opts)
	return cmd
}

// init 注册 show 命令。
func init() {
	rootCmd.AddCommand(showCmd)
}

// addShowFlags 为指定命令添加 show 相关的标志。
// 这样根命令和 show 子命令可以共享相同的标志。
func addShowFlags(cmd *cobra.Command, opts *showOptions) {
	cmd.Flags().StringVarP(&opts.profile, "profile", "p", "", "Profile: base/publish (default: config value)")
	cmd.Flags().StringVarP(&opts.format, "format", "f", "", "Output format: table/json/py (default: config value)")
	cmd.Flags().StringVar(&opts.overrides, "overrides", "", "Extra overrides file (yaml/json/toml) merged last")
}

// runShow 是 show 命令的核心逻辑：解析环境、合并覆盖项，然后按指定格式输出。
func runShow(cmd *cobra.Command, opts *showOptions) error {
	runCtx, err := prepareRun(opts.overrides)
	if err != nil {
		return err
	}

	p, err := runCtx.profile(opts.profile)
	if err != nil {
		return err
	}
	s, err := runCtx.resolve(p)
	if err != nil {
		return err
	}

	format := opts.format
	if strings.TrimSpace(format) == "" {
		format = runCtx.Config.Format
	}

	out := cmd.OutOrStdout()
	switch strings.ToLower(strings.TrimSpace(format)) {
	case "", "table":
		return render.Table(out, s)
	case "json":
		return render.JSON(out, s)
	case "py", "python":
		return render.Python(out, s, p)
	default:
		return fmt.Errorf("unsupported format %q (supported: table, json, py)", format)
	}
}
