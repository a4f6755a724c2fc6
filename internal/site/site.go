// Package site 检查站点项目目录是否处于可构建状态。
//
// 主要功能：
//   - CheckContent: 内容目录与静态资源是否存在
//   - CheckTheme: 主题目录及其 Git 检出是否完整
//   - CheckWorktree: 内容目录下是否有未提交的修改
package site

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"blogconf/internal/settings"
)

// NormalizeRoot 标准化站点根目录：
// 1. 去除首尾空白
// 2. 展开 ~ 为用户主目录
// 3. 转换为绝对路径
// 4. 清理路径（移除多余的分隔符和 . 或 ..）
func NormalizeRoot(p string) (string, error) {
	p = strings.TrimSpace(p)
	if p == "" {
		return "", errors.New("empty path")
	}

	if p == "~" || strings.HasPrefix(p, "~/") {
		home, err := os.UserHomeDir()
		if err != nil {
			return "", err
		}
		if p == "~" {
			p = home
		} else {
			p = filepath.Join(home, p[2:])
		}
	}

	abs, err := filepath.Abs(p)
	if err != nil {
		return "", err
	}
	return filepath.Clean(abs), nil
}

// CheckContent 检查 PATH、STATIC_PATHS 以及 EXTRA_PATH_METADATA 的源文件。
// 静态路径相对于内容目录解析，与生成器一致。
// 返回所有缺失项组合成的错误，全部存在时返回 nil。
func CheckContent(root string, s settings.Settings) error {
	contentDir := filepath.Join(root, filepath.FromSlash(s.Path))
	if !isDir(contentDir) {
		return fmt.Errorf("content directory %s not found", contentDir)
	}

	var errs []error
	for _, p := range s.StaticPaths {
		if !exists(filepath.Join(contentDir, filepath.FromSlash(p))) {
			errs = append(errs, fmt.Errorf("static path %q not found under %s", p, s.Path))
		}
	}
	for _, src := range sortedSources(s.ExtraPathMetadata) {
		if !exists(filepath.Join(contentDir, filepath.FromSlash(src))) {
			errs = append(errs, fmt.Errorf("extra file %q not found under %s", src, s.Path))
		}
	}
	return errors.Join(errs...)
}

func isDir(path string) bool {
	st, err := os.Stat(path)
	return err == nil && st.IsDir()
}

func exists(path string) bool {
	_, err := os.Stat(path)
	return err == nil
}
