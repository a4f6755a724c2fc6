package render

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"sort"
	"strconv"
	"strings"
	"text/tabwriter"

	"blogconf/internal/settings"
)

// Table 以两列对齐的形式输出设置（键名，值）。
func Table(w io.Writer, s settings.Settings) error {
	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
	for _, e := range s.Entries() {
		fmt.Fprintf(tw, "%s\t%s\n", e.Key, FormatValue(e.Value))
	}
	return tw.Flush()
}

// JSON 输出按声明顺序排列键名的 JSON 对象。
func JSON(w io.Writer, s settings.Settings) error {
	var buf bytes.Buffer
	buf.WriteByte('{')
	for i, e := range s.Entries() {
		if i > 0 {
			buf.WriteByte(',')
		}
		value, err := json.Marshal(plain(e.Value))
		if err != nil {
			return fmt.Errorf("encode %s: %w", e.Key, err)
		}
		buf.WriteString(strconv.Quote(e.Key))
		buf.WriteByte(':')
		buf.Write(value)
	}
	buf.WriteByte('}')

	var out bytes.Buffer
	if err := json.Indent(&out, buf.Bytes(), "", "  "); err != nil {
		return err
	}
	out.WriteByte('\n')
	_, err := w.Write(out.Bytes())
	return err
}

// FormatValue 返回设置值的单行可读形式。
func FormatValue(v any) string {
	switch val := v.(type) {
	case string:
		return strconv.Quote(val)
	case []string:
		quoted := make([]string, 0, len(val))
		for _, s := range val {
			quoted = append(quoted, strconv.Quote(s))
		}
		return "[" + strings.Join(quoted, ", ") + "]"
	case []settings.Link:
		pairs := make([]string, 0, len(val))
		for _, l := range val {
			pairs = append(pairs, fmt.Sprintf("(%q, %q)", l.Label, l.URL))
		}
		return "[" + strings.Join(pairs, ", ") + "]"
	case map[string]settings.PathMetadata:
		keys := make([]string, 0, len(val))
		for k := range val {
			keys = append(keys, k)
		}
		sort.Strings(keys)
		pairs := make([]string, 0, len(keys))
		for _, k := range keys {
			pairs = append(pairs, fmt.Sprintf("%q -> %q", k, val[k].Path))
		}
		return "{" + strings.Join(pairs, ", ") + "}"
	case settings.MarkdownConfig:
		names := make([]string, 0, len(val.ExtensionConfigs))
		for name := range val.ExtensionConfigs {
			names = append(names, name)
		}
		sort.Strings(names)
		return fmt.Sprintf("extensions=[%s] output_format=%q", strings.Join(names, ", "), val.OutputFormat)
	default:
		return fmt.Sprint(v)
	}
}
