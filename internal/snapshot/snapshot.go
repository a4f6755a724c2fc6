// Package snapshot 记录每次导出的设置摘要，用于发现导出文件与当前设置不一致。
// 快照文件存储在 ~/.config/blogconf/snapshots/ 目录下，
// 以站点目录名 + 参数哈希命名。
package snapshot

import (
	"crypto/sha256"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"
)

// Key 唯一标识一次导出：哪个站点、哪个环境、哪种格式。
type Key struct {
	SiteRoot string
	Profile  string
	Format   string
}

// Entry 是持久化到磁盘的快照条目。
type Entry struct {
	Key        Key       `json:"key"`
	Digest     string    `json:"digest"`      // settings.Digest 的结果
	OutputPath string    `json:"output_path"` // 导出文件的位置
	CreatedAt  time.Time `json:"created_at"`
}

// String 返回稳定的短文件名，格式为 "{siteName}_{hash}.json"。
// 对 key 先做规范化，再取 SHA-256 前 8 字节作为摘要。
func (k Key) String() string {
	normalized := normalizeKey(k)
	siteName := sanitizeFileComponent(filepath.Base(normalized.SiteRoot))
	if siteName == "" {
		siteName = "site"
	}

	payload := strings.Join([]string{
		normalized.SiteRoot,
		normalized.Profile,
		normalized.Format,
	}, "\n")
	digest := sha256.Sum256([]byte(payload))
	return fmt.Sprintf("%s_%x.json", siteName, digest[:8])
}

// Load 从磁盘读取一条快照。
// 未找到时返回 os.ErrNotExist。
func Load(key Key) (*Entry, error) {
	path, err := snapshotPath(key)
	if err != nil {
		return nil, err
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}

	var entry Entry
	if err := json.Unmarshal(data, &entry); err != nil {
		return nil, err
	}
	return &entry, nil
}

// Save 写入一条快照，已存在时覆盖。
// 写入使用 tmp + rename 的原子策略，避免读到半写文件。
func Save(key Key, digest, outputPath string) error {
	path, err := snapshotPath(key)
	if err != nil {
		return err
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o700); err != nil {
		return err
	}

	entry := Entry{
		Key:        normalizeKey(key),
		Digest:     digest,
		OutputPath: outputPath,
		CreatedAt:  time.Now().UTC(),
	}

	data, err := json.MarshalIndent(entry, "", "  ")
	if err != nil {
		return err
	}

	tmpPath := path + ".tmp"
	if err := os.WriteFile(tmpPath, data, 0o600); err != nil {
		return err
	}
	if err := os.Rename(tmpPath, path); err != nil {
		_ = os.Remove(tmpPath)
		return err
	}
	return nil
}

// snapshotPath 返回快照文件的完整路径。
func snapshotPath(key Key) (string, error) {
	homeDir, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(homeDir, ".config", "blogconf", "snapshots", key.String()), nil
}

// normalizeKey 规范化快照键：清理路径、去除空白、统一小写。
func normalizeKey(key Key) Key {
	return Key{
		SiteRoot: filepath.Clean(strings.TrimSpace(key.SiteRoot)),
		Profile:  strings.ToLower(strings.TrimSpace(key.Profile)),
		Format:   strings.ToLower(strings.TrimSpace(key.Format)),
	}
}

// sanitizeFileComponent 清理文件名组成部分，将路径分隔符、空格、冒号替换为下划线。
func sanitizeFileComponent(name string) string {
	name = strings.TrimSpace(name)
	if name == "" || name == "." || name == string(filepath.Separator) {
		return ""
	}
	replacer := strings.NewReplacer(
		string(filepath.Separator), "_",
		" ", "_",
		":", "_",
	)
	return replacer.Replace(name)
}
