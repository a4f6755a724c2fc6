// Package render 将有效设置输出为生成器可直接读取的配置文件，
// 以及终端展示用的表格和 JSON。
package render

import (
	"fmt"
	"io"
	"sort"
	"strconv"
	"strings"

	"blogconf/internal/settings"
)

// Python 将设置写为 Python 设置模块（每行 KEY = value）。
// 发布环境的模块同样是完整的，不依赖通配符导入基础模块。
func Python(w io.Writer, s settings.Settings, p settings.Profile) error {
	var b strings.Builder
	b.WriteString("#!/usr/bin/env python\n")
	b.WriteString("# -*- coding: utf-8 -*- #\n")
	fmt.Fprintf(&b, "# Generated by blogconf for profile %q. Do not edit.\n\n", p)

	for _, e := range s.Entries() {
		literal, err := pyLiteral(e.Value)
		if err != nil {
			return fmt.Errorf("render %s: %w", e.Key, err)
		}
		fmt.Fprintf(&b, "%s = %s\n", e.Key, literal)
	}

	_, err := io.WriteString(w, b.String())
	return err
}

// pyLiteral 返回值对应的 Python 字面量。
// （标签，URL）对输出为元组，外层序列输出为列表。
func pyLiteral(v any) (string, error) {
	switch val := v.(type) {
	case string:
		return pyString(val), nil
	case bool:
		if val {
			return "True", nil
		}
		return "False", nil
	case int:
		return strconv.Itoa(val), nil
	case []string:
		items := make([]string, 0, len(val))
		for _, s := range val {
			items = append(items, pyString(s))
		}
		return pyList(items), nil
	case []settings.Link:
		items := make([]string, 0, len(val))
		for _, l := range val {
			items = append(items, fmt.Sprintf("(%s, %s)", pyString(l.Label), pyString(l.URL)))
		}
		return pyList(items), nil
	case map[string]settings.PathMetadata:
		items := make(map[string]string, len(val))
		for src, meta := range val {
			items[src] = pyDict(map[string]string{"path": pyString(meta.Path)}, false)
		}
		return pyDict(items, true), nil
	case settings.MarkdownConfig:
		exts := make(map[string]string, len(val.ExtensionConfigs))
		for name, opts := range val.ExtensionConfigs {
			quoted := make(map[string]string, len(opts))
			for k, o := range opts {
				quoted[k] = pyString(o)
			}
			exts[name] = pyDict(quoted, false)
		}
		return pyDict(map[string]string{
			"extension_configs": pyDict(exts, true),
			"output_format":     pyString(val.OutputFormat),
		}, true), nil
	default:
		return "", fmt.Errorf("unsupported value type %T", v)
	}
}

// pyString 使用双引号输出 Python 字符串。
// strconv.Quote 的转义序列（\n、\t、\"、\\、\uXXXX）在 Python 中含义相同。
func pyString(s string) string {
	return strconv.Quote(s)
}

func pyList(items []string) string {
	if len(items) == 0 {
		return "[]"
	}
	return "[\n    " + strings.Join(items, ",\n    ") + ",\n]"
}

// pyDict 按键排序输出字典；multiline 为 true 时每项一行。
// items 的值必须已是 Python 字面量。
func pyDict(items map[string]string, multiline bool) string {
	if len(items) == 0 {
		return "{}"
	}

	keys := make([]string, 0, len(items))
	for k := range items {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	parts := make([]string, 0, len(keys))
	for _, k := range keys {
		value := items[k]
		if multiline {
			value = strings.ReplaceAll(value, "\n", "\n    ")
		}
		parts = append(parts, pyString(k)+": "+value)
	}

	if !multiline {
		return "{" + strings.Join(parts, ", ") + "}"
	}
	return "{\n    " + strings.Join(parts, ",\n    ") + ",\n}"
}
