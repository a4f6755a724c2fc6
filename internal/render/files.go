package render

import (
	"bytes"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"blogconf/internal/settings"

	"github.com/spf13/viper"
)

// Format 是导出文件的格式。
type Format string

const (
	FormatPython Format = "py"
	FormatJSON   Format = "json"
	FormatYAML   Format = "yaml"
	FormatTOML   Format = "toml"
)

// ErrUnsupportedFormat 表示不支持的导出格式。
var ErrUnsupportedFormat = errors.New("unsupported format")

// ParseFormat 解析导出格式名称，"python" 和 "yml" 作为别名接受。
func ParseFormat(name string) (Format, error) {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "py", "python":
		return FormatPython, nil
	case "json":
		return FormatJSON, nil
	case "yaml", "yml":
		return FormatYAML, nil
	case "toml":
		return FormatTOML, nil
	default:
		return "", fmt.Errorf("%w %q (supported: py, json, yaml, toml)", ErrUnsupportedFormat, name)
	}
}

// FileName 返回指定环境与格式的导出文件名。
// Python 格式沿用生成器的约定：pelicanconf.py 与 publishconf.py。
func FileName(p settings.Profile, format Format) string {
	if format == FormatPython {
		if p == settings.ProfilePublish {
			return "publishconf.py"
		}
		return "pelicanconf.py"
	}
	return string(p) + "." + string(format)
}

// WriteFile 将设置以指定格式写入 path。
// 写入使用 tmp + rename 的原子策略，失败时不会留下半写文件。
func WriteFile(path string, format Format, s settings.Settings, p settings.Profile) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return err
	}

	// 临时文件保留扩展名，viper 依据扩展名选择编码器
	tmpPath := filepath.Join(filepath.Dir(path), "."+filepath.Base(path)+".tmp."+string(format))

	var err error
	switch format {
	case FormatPython:
		var buf bytes.Buffer
		if err = Python(&buf, s, p); err == nil {
			err = os.WriteFile(tmpPath, buf.Bytes(), 0o644)
		}
	case FormatJSON, FormatYAML, FormatTOML:
		err = writeViper(tmpPath, s)
	default:
		return fmt.Errorf("%w %q", ErrUnsupportedFormat, format)
	}
	if err != nil {
		_ = os.Remove(tmpPath)
		return fmt.Errorf("write %s: %w", path, err)
	}

	if err := os.Rename(tmpPath, path); err != nil {
		_ = os.Remove(tmpPath)
		return err
	}
	return nil
}

// writeViper 通过 viper 写出结构化格式，键名为小写的生成器键名。
func writeViper(path string, s settings.Settings) error {
	v := newViper()
	for _, e := range s.Entries() {
		v.Set(strings.ToLower(e.Key), plain(e.Value))
	}
	return v.WriteConfigAs(path)
}

// newViper 返回以 "::" 作为键分隔符的 viper 实例。
// Markdown 扩展名和静态文件路径中含有 "."，不能使用默认分隔符。
func newViper() *viper.Viper {
	return viper.NewWithOptions(viper.KeyDelimiter("::"))
}

// plain 将设置值转换为编码器可处理的类型。
// 嵌套结构使用具体类型的 map 而非 map[string]any，
// viper 会将其视为叶子值整体保留（包括空的扩展配置）。
func plain(v any) any {
	switch val := v.(type) {
	case []settings.Link:
		out := make([]map[string]string, 0, len(val))
		for _, l := range val {
			out = append(out, map[string]string{"label": l.Label, "url": l.URL})
		}
		return out
	case map[string]settings.PathMetadata:
		out := make(map[string]map[string]string, len(val))
		for src, meta := range val {
			out[src] = map[string]string{"path": meta.Path}
		}
		return out
	case settings.MarkdownConfig:
		exts := val.ExtensionConfigs
		if exts == nil {
			exts = map[string]map[string]string{}
		}
		return map[string]any{
			"extension_configs": exts,
			"output_format":     val.OutputFormat,
		}
	default:
		return v
	}
}
