package cmd

import (
	"fmt"
	"strings"

	"blogconf/internal/config"
	"blogconf/internal/settings"
	"blogconf/internal/site"

	"github.com/spf13/cobra"
)

// setCmd 实现 set 子命令，用于查看或修改工具偏好配置。
// 支持两种模式：
// 1. blogconf set - 显示当前配置
// 2. blogconf set <key> <value> - 设置配置项（root、profile、format、overrides）
var setCmd = newSetCmd()

// newSetCmd 构建 set 命令，便于在测试中复用。
func newSetCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "set [key] [value]",
		Short: "Set or show tool preferences",
		Long: `View or modify blogconf preferences (root, profile, format, overrides).

Without arguments, displays the current preferences.
With key/value, sets the specified option. An empty overrides value clears it.`,
		Example: `  blogconf set
  blogconf set root ~/code/blog
  blogconf set profile publish
  blogconf set format json
  blogconf set overrides staging.yaml`,
		Args: validateSetArgs,
		RunE: runSet,
	}
}

// validateSetArgs 校验 set 参数格式。
func validateSetArgs(cmd *cobra.Command, args []string) error {
	// 无参数：显示配置
	if len(args) == 0 {
		return nil
	}
	// 设置配置需要正好两个参数
	if len(args) != 2 {
		return fmt.Errorf("usage: blogconf set [root|profile|format|overrides] <value>")
	}
	return nil
}

// runSet 执行 set 逻辑（显示或设置配置项）。
func runSet(cmd *cobra.Command, args []string) error {
	cfg, err := config.Load()
	if err != nil {
		return err
	}

	// 无参数时显示当前配置
	if len(args) == 0 {
		out := cmd.OutOrStdout()
		overrides := cfg.OverridesFile
		if overrides == "" {
			overrides = "(none)"
		}
		fmt.Fprintf(out, "root: %s\nprofile: %s\nformat: %s\noverrides: %s\n", cfg.SiteRoot, cfg.Profile, cfg.Format, overrides)
		return nil
	}

	key := args[0]
	val := strings.TrimSpace(args[1])

	// 根据 key 修改对应配置项
	switch key {
	case "root":
		root, err := site.NormalizeRoot(val)
		if err != nil {
			return fmt.Errorf("invalid root %q: %w", val, err)
		}
		cfg.SiteRoot = root
	case "profile":
		p, err := settings.ParseProfile(val)
		if err != nil {
			return err
		}
		cfg.Profile = string(p)
	case "format":
		if !config.IsShowFormat(val) {
			return fmt.Errorf("unsupported format %q (supported: table, json, py)", val)
		}
		cfg.Format = strings.ToLower(val)
	case "overrides":
		cfg.OverridesFile = val
	default:
		return fmt.Errorf("unsupported key %q (supported: root, profile, format, overrides)", key)
	}

	if err := config.Save(*cfg); err != nil {
		return err
	}
	fmt.Fprintf(cmd.OutOrStdout(), "%s set to %q\n", key, savedValue(key, cfg))
	return nil
}

// savedValue 返回保存后的配置值，用于回显。
func savedValue(key string, cfg *config.Config) string {
	switch key {
	case "root":
		return cfg.SiteRoot
	case "profile":
		return cfg.Profile
	case "format":
		return cfg.Format
	default:
		return cfg.OverridesFile
	}
}

// init 注册 set 命令。
func init() {
	rootCmd.AddCommand(setCmd)
}
