package cmd

import (
	"encoding/json"
	"fmt"
	"io"
	"slices"
	"strings"

	"blogconf/internal/render"
	"blogconf/internal/settings"

	"github.com/spf13/cobra"
)

// diffOptions 保存 diff 命令的标志值。
type diffOptions struct {
	all       bool
	format    string
	overrides string
}

// diffCmd 实现 diff 子命令，对比两个环境的有效设置。
// 默认对比 base 与 publish。
var diffCmd = newDiffCmd()

func newDiffCmd() *cobra.Command {
	opts := &diffOptions{}
	cmd := &cobra.Command{
		Use:   "diff [from] [to]",
		Short: "Show settings that differ between two profiles",
		Long: `Compare the effective settings of two profiles (default: base publish).

With --all, override keys of the target profile whose value is unchanged
are listed as well.`,
		Example: `  blogconf diff
  blogconf diff base publish --all
  blogconf diff -f json`,
		Args: validateDiffArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runDiff(cmd, args, opts)
		},
	}
	cmd.Flags().BoolVar(&opts.all, "all", false, "Also list override keys whose value did not change")
	cmd.Flags().StringVarP(&opts.format, "format", "f", "table", "Output format: table/json")
	cmd.Flags().StringVar(&opts.overrides, "overrides", "", "Extra overrides file (yaml/json/toml) merged last")
	return cmd
}

func init() {
	rootCmd.AddCommand(diffCmd)
}

// validateDiffArgs 校验参数个数：0 个或 2 个。
func validateDiffArgs(cmd *cobra.Command, args []string) error {
	if len(args) != 0 && len(args) != 2 {
		return fmt.Errorf("usage: blogconf diff [from] [to]")
	}
	return nil
}

// diffRow 是一项对比结果。
type diffRow struct {
	Key     string `json:"key"`
	From    any    `json:"from"`
	To      any    `json:"to"`
	Changed bool   `json:"changed"`
}

func runDiff(cmd *cobra.Command, args []string, opts *diffOptions) error {
	runCtx, err := prepareRun(opts.overrides)
	if err != nil {
		return err
	}

	from, to := settings.ProfileBase, settings.ProfilePublish
	if len(args) == 2 {
		if from, err = settings.ParseProfile(args[0]); err != nil {
			return err
		}
		if to, err = settings.ParseProfile(args[1]); err != nil {
			return err
		}
	}

	left, err := runCtx.resolve(from)
	if err != nil {
		return err
	}
	right, err := runCtx.resolve(to)
	if err != nil {
		return err
	}

	rows := buildDiffRows(left, right, opts.all, runCtx.overrideKeys(to))

	out := cmd.OutOrStdout()
	switch strings.ToLower(strings.TrimSpace(opts.format)) {
	case "", "table":
		writeDiffTable(out, from, to, rows)
		return nil
	case "json":
		enc := json.NewEncoder(out)
		enc.SetIndent("", "  ")
		return enc.Encode(rows)
	default:
		return fmt.Errorf("unsupported format %q (supported: table, json)", opts.format)
	}
}

// buildDiffRows 按声明顺序生成对比结果。
// all 为 true 时，未改变取值的覆盖键也会列出。
func buildDiffRows(left, right settings.Settings, all bool, overrideKeys []string) []diffRow {
	changed := make(map[string]settings.Change)
	for _, c := range settings.Diff(left, right) {
		changed[c.Key] = c
	}

	rows := make([]diffRow, 0, len(changed))
	for _, e := range right.Entries() {
		if c, ok := changed[e.Key]; ok {
			rows = append(rows, diffRow{Key: e.Key, From: c.From, To: c.To, Changed: true})
			continue
		}
		if all && slices.Contains(overrideKeys, e.Key) {
			rows = append(rows, diffRow{Key: e.Key, From: e.Value, To: e.Value})
		}
	}
	return rows
}

func writeDiffTable(out io.Writer, from, to settings.Profile, rows []diffRow) {
	changed := 0
	for _, r := range rows {
		if r.Changed {
			changed++
		}
	}

	fmt.Fprintf(out, "%s -> %s: %d changed\n", from, to, changed)
	for _, r := range rows {
		if !r.Changed {
			fmt.Fprintf(out, "  %s: %s (unchanged)\n", r.Key, render.FormatValue(r.To))
			continue
		}
		fmt.Fprintf(out, "  %s: %s -> %s\n", r.Key, render.FormatValue(r.From), render.FormatValue(r.To))
	}
}
