package cmd

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"blogconf/internal/render"
	"blogconf/internal/settings"
	"blogconf/internal/snapshot"

	"github.com/schollz/progressbar/v3"
	"github.com/spf13/cobra"
	"golang.org/x/term"
)

// exportOptions 保存 export 命令的标志值。
type exportOptions struct {
	profiles  []string // 要导出的环境，为空时导出全部
	format    string   // 导出格式：py/json/yaml/toml
	output    string   // 输出目录，为空时使用站点根目录
	overrides string
	force     bool // 校验失败时仍然写出
}

// exportCmd 实现 export 子命令，将有效设置写成生成器可读取的文件。
// 每个环境一个文件，写入后记录快照供 doctor 检查是否过期。
var exportCmd = newExportCmd()

func newExportCmd() *cobra.Command {
	opts := &exportOptions{}
	cmd := &cobra.Command{
		Use:   "export",
		Short: "Write settings files for the generator",
		Long: `Write one settings file per profile.

The py format produces pelicanconf.py and publishconf.py. The publish module
is self-contained and does not import the base module. Settings are validated
before writing; use --force to write invalid settings anyway.`,
		Example: `  blogconf export
  blogconf export -p publish -o build/
  blogconf export -f yaml`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runExport(cmd, opts)
		},
	}
	cmd.Flags().StringArrayVarP(&opts.profiles, "profile", "p", nil, "Profile to export (repeatable, default: all)")
	cmd.Flags().StringVarP(&opts.format, "format", "f", string(render.FormatPython), "Output format: py/json/yaml/toml")
	cmd.Flags().StringVarP(&opts.output, "output", "o", "", "Output directory (default: site root)")
	cmd.Flags().StringVar(&opts.overrides, "overrides", "", "Extra overrides file (yaml/json/toml) merged last")
	cmd.Flags().BoolVar(&opts.force, "force", false, "Write files even if validation fails")
	return cmd
}

func init() {
	rootCmd.AddCommand(exportCmd)
}

func runExport(cmd *cobra.Command, opts *exportOptions) error {
	runCtx, err := prepareRun(opts.overrides)
	if err != nil {
		return err
	}

	format, err := render.ParseFormat(opts.format)
	if err != nil {
		return err
	}

	profiles, err := exportProfiles(opts.profiles)
	if err != nil {
		return err
	}

	outDir := runCtx.SiteRoot
	if strings.TrimSpace(opts.output) != "" {
		outDir = opts.output
		if !filepath.IsAbs(outDir) {
			outDir = filepath.Join(runCtx.SiteRoot, outDir)
		}
	}

	// 先全部解析和校验，避免写出一半后失败
	resolved := make([]settings.Settings, 0, len(profiles))
	for _, p := range profiles {
		s, err := runCtx.resolve(p)
		if err != nil {
			return err
		}
		if err := settings.Validate(s); err != nil {
			if !opts.force {
				return fmt.Errorf("profile %s is invalid:\n%w", p, err)
			}
			fmt.Fprintf(cmd.ErrOrStderr(), "warning: profile %s is invalid, writing anyway: %v\n", p, err)
		}
		resolved = append(resolved, s)
	}

	bar := newExportProgressBar(len(profiles))
	if bar != nil {
		defer func() { _ = bar.Finish() }()
	}

	out := cmd.OutOrStdout()
	for i, p := range profiles {
		path := filepath.Join(outDir, render.FileName(p, format))
		if err := render.WriteFile(path, format, resolved[i], p); err != nil {
			return err
		}

		key := snapshot.Key{SiteRoot: runCtx.SiteRoot, Profile: string(p), Format: string(format)}
		if err := snapshot.Save(key, settings.Digest(resolved[i]), path); err != nil {
			// 快照只影响 doctor 的过期检查，不影响导出结果
			fmt.Fprintln(cmd.ErrOrStderr(), "warning: save snapshot:", err)
		}

		if bar != nil {
			_ = bar.Add(1)
		}
		fmt.Fprintf(out, "wrote %s\n", path)
	}
	return nil
}

// exportProfiles 解析并去重 --profile 参数，未指定时返回全部环境。
func exportProfiles(names []string) ([]settings.Profile, error) {
	if len(names) == 0 {
		return settings.Profiles(), nil
	}

	seen := make(map[settings.Profile]struct{}, len(names))
	profiles := make([]settings.Profile, 0, len(names))
	for _, name := range names {
		p, err := settings.ParseProfile(name)
		if err != nil {
			return nil, err
		}
		if _, ok := seen[p]; ok {
			continue
		}
		seen[p] = struct{}{}
		profiles = append(profiles, p)
	}
	return profiles, nil
}

// newExportProgressBar 创建导出进度条。
// 仅当文件数量 > 1 且在终端环境下才显示。
func newExportProgressBar(total int) *progressbar.ProgressBar {
	if total <= 1 {
		return nil
	}
	if !term.IsTerminal(int(os.Stderr.Fd())) {
		return nil
	}

	return progressbar.NewOptions(
		total,
		progressbar.OptionSetWriter(os.Stderr),
		progressbar.OptionClearOnFinish(),
		progressbar.OptionSetDescription("exporting settings"),
		progressbar.OptionShowCount(),
		progressbar.OptionSetPredictTime(false),
		progressbar.OptionThrottle(65*time.Millisecond),
	)
}
