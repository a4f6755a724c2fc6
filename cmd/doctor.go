package cmd

import (
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"blogconf/internal/config"
	"blogconf/internal/render"
	"blogconf/internal/settings"
	"blogconf/internal/site"
	"blogconf/internal/snapshot"

	"github.com/spf13/cobra"
)

// doctorCmd 实现 doctor 子命令，一站式诊断配置和站点目录问题。
// 依次执行 6 项检查：工具配置、设置校验、内容目录、主题、工作区、导出快照。
// 有错误时返回非零退出码，仅警告时返回 0。
// 用法: blogconf doctor
var doctorCmd = &cobra.Command{
	Use:   "doctor",
	Short: "Diagnose settings and site layout issues",
	Args:  cobra.NoArgs,
	RunE:  runDoctor,
}

// init 注册 doctor 命令。
func init() {
	rootCmd.AddCommand(doctorCmd)
}

// runDoctor 是 doctor 命令的核心逻辑，按顺序执行 6 项诊断检查：
//  1. 工具配置合法性（环境名称、输出格式、覆盖文件）
//  2. 每个环境的设置校验
//  3. 内容目录与静态资源是否存在
//  4. 主题目录及其 Git 检出
//  5. 内容目录下未提交的修改
//  6. 已导出文件是否与当前设置一致
//
// 输出使用 ✅/⚠️/❌ 分类显示，有错误时返回 error（exit 非零）。
func runDoctor(cmd *cobra.Command, _ []string) error {
	out := cmd.OutOrStdout()

	fmt.Fprintln(out, "Running diagnostics...")

	hasError := false

	// 1. 工具配置检查
	runCtx, ctxErr := prepareRun("")
	if ctxErr != nil {
		fmt.Fprintf(out, "❌ Config: %v\n", ctxErr)
		return fmt.Errorf("doctor found issues")
	}
	issues := config.ValidateConfig(runCtx.Config)
	if len(issues) == 0 {
		fmt.Fprintln(out, "✅ Config: OK")
	} else {
		fmt.Fprintf(out, "⚠️  Config: %d issue(s)\n", len(issues))
		printLines(out, issues)
	}

	// 2. 设置校验（所有环境）
	resolved := make(map[settings.Profile]settings.Settings, 2)
	var settingsIssues []string
	for _, p := range settings.Profiles() {
		s, err := runCtx.resolve(p)
		if err != nil {
			settingsIssues = append(settingsIssues, fmt.Sprintf("%s: %v", p, err))
			continue
		}
		resolved[p] = s
		if err := settings.Validate(s); err != nil {
			for _, line := range strings.Split(err.Error(), "\n") {
				settingsIssues = append(settingsIssues, fmt.Sprintf("%s: %s", p, line))
			}
		}
	}
	if len(settingsIssues) == 0 {
		fmt.Fprintf(out, "✅ Settings: %d profile(s) valid\n", len(resolved))
	} else {
		hasError = true
		fmt.Fprintf(out, "❌ Settings: %d issue(s)\n", len(settingsIssues))
		printLines(out, settingsIssues)
	}

	// 后续检查只依赖与目录相关的设置，base 环境即可代表
	base, ok := resolved[settings.ProfileBase]
	if !ok {
		fmt.Fprintln(out, "⚠️  Content: skipped (base profile unavailable)")
		return fmt.Errorf("doctor found issues")
	}

	// 3. 内容目录检查
	if err := site.CheckContent(runCtx.SiteRoot, base); err != nil {
		hasError = true
		lines := strings.Split(err.Error(), "\n")
		fmt.Fprintf(out, "❌ Content: %d issue(s)\n", len(lines))
		printLines(out, lines)
	} else {
		fmt.Fprintln(out, "✅ Content: OK")
	}

	// 4. 主题检查
	themeWarnings, themeErr := site.CheckTheme(runCtx.SiteRoot, base.Theme)
	switch {
	case themeErr != nil:
		hasError = true
		fmt.Fprintf(out, "❌ Theme: %v\n", themeErr)
	case len(themeWarnings) > 0:
		fmt.Fprintf(out, "⚠️  Theme: %d warning(s)\n", len(themeWarnings))
		printLines(out, themeWarnings)
	default:
		fmt.Fprintln(out, "✅ Theme: OK")
	}

	// 5. 工作区检查
	wtWarnings, wtErr := site.CheckWorktree(runCtx.SiteRoot, base)
	switch {
	case wtErr != nil:
		hasError = true
		fmt.Fprintf(out, "❌ Worktree: %v\n", wtErr)
	case len(wtWarnings) > 0:
		fmt.Fprintf(out, "⚠️  Worktree: %d warning(s)\n", len(wtWarnings))
		printLines(out, wtWarnings)
	default:
		fmt.Fprintln(out, "✅ Worktree: OK")
	}

	// 6. 导出快照检查
	exportWarnings := checkExports(runCtx.SiteRoot, resolved)
	if len(exportWarnings) == 0 {
		fmt.Fprintln(out, "✅ Exports: up to date")
	} else {
		fmt.Fprintf(out, "⚠️  Exports: %d warning(s)\n", len(exportWarnings))
		printLines(out, exportWarnings)
	}

	if hasError {
		return fmt.Errorf("doctor found issues")
	}
	return nil
}

// checkExports 对比每个环境最近一次 py 导出的快照与当前设置。
func checkExports(root string, resolved map[settings.Profile]settings.Settings) []string {
	warnings := make([]string, 0)
	for _, p := range settings.Profiles() {
		s, ok := resolved[p]
		if !ok {
			continue
		}

		key := snapshot.Key{SiteRoot: root, Profile: string(p), Format: string(render.FormatPython)}
		entry, err := snapshot.Load(key)
		if err != nil {
			if errors.Is(err, os.ErrNotExist) {
				warnings = append(warnings, fmt.Sprintf("%s: never exported", render.FileName(p, render.FormatPython)))
			} else {
				warnings = append(warnings, fmt.Sprintf("%s: cannot read snapshot: %v", p, err))
			}
			continue
		}
		if _, err := os.Stat(entry.OutputPath); err != nil {
			warnings = append(warnings, fmt.Sprintf("%s: exported file is missing, run blogconf export", entry.OutputPath))
			continue
		}
		if entry.Digest != settings.Digest(s) {
			warnings = append(warnings, fmt.Sprintf("%s: out of date, run blogconf export", entry.OutputPath))
		}
	}
	return warnings
}

// printLines 将字符串列表以缩进列表形式输出，每行前加 "   - " 前缀。
func printLines(out io.Writer, lines []string) {
	for _, line := range lines {
		fmt.Fprintf(out, "   - %s\n", line)
	}
}
