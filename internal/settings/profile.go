package settings

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/mitchellh/mapstructure"
	"github.com/pelletier/go-toml/v2"
	"gopkg.in/yaml.v3"
)

// Profile 标识一套构建环境。
type Profile string

const (
	// ProfileBase 用于本地开发预览。
	ProfileBase Profile = "base"
	// ProfilePublish 用于生产构建。
	ProfilePublish Profile = "publish"
)

// ErrUnknownProfile 表示未知的构建环境名称。
var ErrUnknownProfile = errors.New("unknown profile")

// Profiles 按构建顺序返回全部环境：先开发预览，后生产构建。
func Profiles() []Profile {
	return []Profile{ProfileBase, ProfilePublish}
}

// ParseProfile 解析环境名称（大小写不敏感，忽略首尾空白）。
// "dev" 是 base 的别名，"prod" 是 publish 的别名。
func ParseProfile(name string) (Profile, error) {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "base", "dev":
		return ProfileBase, nil
	case "publish", "prod":
		return ProfilePublish, nil
	default:
		return "", fmt.Errorf("%w %q (supported: base, publish)", ErrUnknownProfile, name)
	}
}

// Resolve 计算指定环境的有效设置。
// 合并顺序：基础配置 → 环境覆盖项 → extra（从左到右）。
func Resolve(p Profile, now time.Time, extra ...Overrides) (Settings, error) {
	s := Base(now)
	switch p {
	case ProfileBase:
	case ProfilePublish:
		s = Merge(s, PublishOverrides())
	default:
		return Settings{}, fmt.Errorf("%w %q", ErrUnknownProfile, p)
	}

	for _, o := range extra {
		s = Merge(s, o)
	}
	return s, nil
}

// LoadOverrides 从 YAML/JSON/TOML 文件读取覆盖项，格式由扩展名决定。
// 文件中出现不属于设置集合的键时返回错误。
// 顶层键名不区分大小写；嵌套 map 的键（文件路径、扩展名）保持原样，
// 空的扩展配置也会保留。
func LoadOverrides(path string) (Overrides, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Overrides{}, fmt.Errorf("read overrides %s: %w", path, err)
	}

	raw := make(map[string]any)
	switch ext := strings.ToLower(filepath.Ext(path)); ext {
	case ".yaml", ".yml":
		err = yaml.Unmarshal(data, &raw)
	case ".toml":
		err = toml.Unmarshal(data, &raw)
	case ".json":
		err = json.Unmarshal(data, &raw)
	default:
		return Overrides{}, fmt.Errorf("read overrides %s: unsupported file type %q (supported: .yaml, .yml, .json, .toml)", path, ext)
	}
	if err != nil {
		return Overrides{}, fmt.Errorf("parse overrides %s: %w", path, err)
	}

	o, err := decodeOverrides(raw)
	if err != nil {
		return Overrides{}, fmt.Errorf("decode overrides %s: %w", path, err)
	}
	return o, nil
}

func decodeOverrides(raw map[string]any) (Overrides, error) {
	var o Overrides
	dec, err := mapstructure.NewDecoder(&mapstructure.DecoderConfig{
		ErrorUnused: true,
		Result:      &o,
	})
	if err != nil {
		return Overrides{}, err
	}
	if err := dec.Decode(raw); err != nil {
		return Overrides{}, err
	}
	return o, nil
}
