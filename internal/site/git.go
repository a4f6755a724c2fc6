package site

import (
	"errors"
	"fmt"
	"path/filepath"
	"sort"
	"strings"

	"blogconf/internal/settings"

	"github.com/go-git/go-git/v5"
)

// CheckTheme 检查主题目录是否存在且包含 templates/。
// 主题是独立的 Git 检出（普通仓库或子模块）时，HEAD 必须指向可读取的提交；
// 不是 Git 检出时仅返回警告。
func CheckTheme(root, theme string) (warnings []string, err error) {
	themeDir := filepath.Join(root, filepath.FromSlash(theme))
	if !isDir(themeDir) {
		return nil, fmt.Errorf("theme directory %s not found", themeDir)
	}
	if !isDir(filepath.Join(themeDir, "templates")) {
		return nil, fmt.Errorf("theme %s has no templates directory", theme)
	}

	r, err := git.PlainOpen(themeDir)
	if err != nil {
		if errors.Is(err, git.ErrRepositoryNotExists) {
			return []string{fmt.Sprintf("theme %s is not a git checkout, its version is not pinned", theme)}, nil
		}
		return nil, fmt.Errorf("cannot open theme repo: %w", err)
	}

	headRef, err := r.Head()
	if err != nil {
		return nil, fmt.Errorf("cannot resolve theme HEAD: %w", err)
	}
	if headRef.Hash().IsZero() {
		return nil, fmt.Errorf("theme HEAD has no commits")
	}
	if _, err := r.CommitObject(headRef.Hash()); err != nil {
		return nil, fmt.Errorf("theme HEAD commit is unreachable: %w", err)
	}
	return nil, nil
}

// CheckWorktree 报告内容目录下未提交的修改（含未跟踪文件）。
// 站点根目录不是 Git 仓库时返回一条警告。
func CheckWorktree(root string, s settings.Settings) ([]string, error) {
	r, err := git.PlainOpen(root)
	if err != nil {
		if errors.Is(err, git.ErrRepositoryNotExists) {
			return []string{fmt.Sprintf("%s is not a git repository", root)}, nil
		}
		return nil, fmt.Errorf("cannot open site repo: %w", err)
	}

	wt, err := r.Worktree()
	if err != nil {
		return nil, fmt.Errorf("cannot open worktree: %w", err)
	}
	status, err := wt.Status()
	if err != nil {
		return nil, fmt.Errorf("cannot read worktree status: %w", err)
	}

	prefix := strings.TrimSuffix(filepath.ToSlash(s.Path), "/") + "/"
	var dirty []string
	for path, st := range status {
		if !strings.HasPrefix(path, prefix) {
			continue
		}
		if st.Worktree == git.Unmodified && st.Staging == git.Unmodified {
			continue
		}
		dirty = append(dirty, path)
	}
	if len(dirty) == 0 {
		return nil, nil
	}

	sort.Strings(dirty)
	warnings := make([]string, 0, len(dirty))
	for _, path := range dirty {
		warnings = append(warnings, fmt.Sprintf("uncommitted change: %s", path))
	}
	return warnings, nil
}

func sortedSources(m map[string]settings.PathMetadata) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
