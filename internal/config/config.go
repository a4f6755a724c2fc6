package config

import (
	"fmt"
	"os"
	"path/filepath"
	"slices"
	"strings"

	"blogconf/internal/settings"

	"github.com/spf13/viper"
)

const (
	DefaultSiteRoot = "."
	DefaultProfile  = "base"
	DefaultFormat   = "table"
)

// envPrefix 是环境变量前缀，例如 BLOGCONF_PROFILE=publish。
const envPrefix = "BLOGCONF"

// Config 是 blogconf 自身的偏好设置（不是站点设置）。
type Config struct {
	SiteRoot      string // 站点项目根目录
	Profile       string // 默认环境
	Format        string // show 的默认输出格式
	OverridesFile string // 额外叠加的覆盖文件，为空表示不使用
}

func Dir() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(home, ".config", "blogconf"), nil
}

func File() (string, error) {
	dir, err := Dir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, "config.yaml"), nil
}

func EnsureDir() error {
	dir, err := Dir()
	if err != nil {
		return err
	}
	return os.MkdirAll(dir, 0o755)
}

// Load 读取配置文件，文件不存在时返回默认值。
// 环境变量优先于文件中的值。
func Load() (*Config, error) {
	configFile, err := File()
	if err != nil {
		return nil, err
	}

	v := viper.New()
	v.SetConfigFile(configFile)
	v.SetConfigType("yaml")
	v.SetEnvPrefix(envPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	v.AutomaticEnv()
	v.SetDefault("site-root", DefaultSiteRoot)
	v.SetDefault("profile", DefaultProfile)
	v.SetDefault("format", DefaultFormat)
	v.SetDefault("overrides", "")

	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok && !os.IsNotExist(err) {
			return nil, err
		}
	}

	return &Config{
		SiteRoot:      v.GetString("site-root"),
		Profile:       v.GetString("profile"),
		Format:        v.GetString("format"),
		OverridesFile: v.GetString("overrides"),
	}, nil
}

func Save(config Config) error {
	if err := EnsureDir(); err != nil {
		return err
	}

	configFile, err := File()
	if err != nil {
		return err
	}

	v := viper.New()
	v.SetConfigType("yaml")
	v.Set("site-root", config.SiteRoot)
	v.Set("profile", config.Profile)
	v.Set("format", config.Format)
	v.Set("overrides", config.OverridesFile)

	return v.WriteConfigAs(configFile)
}

// showFormats 是 show 命令支持的输出格式。
var showFormats = []string{"table", "json", "py"}

// ValidateConfig 检查配置项取值，返回问题列表（无问题时为空）。
func ValidateConfig(cfg *Config) []string {
	var issues []string

	if strings.TrimSpace(cfg.SiteRoot) == "" {
		issues = append(issues, "site-root must not be empty")
	}
	if _, err := settings.ParseProfile(cfg.Profile); err != nil {
		issues = append(issues, err.Error())
	}
	if !IsShowFormat(cfg.Format) {
		issues = append(issues, fmt.Sprintf("unsupported format %q (supported: %s)", cfg.Format, strings.Join(showFormats, ", ")))
	}
	return issues
}

// IsShowFormat 判断 format 是否为 show 支持的输出格式（大小写不敏感）。
func IsShowFormat(format string) bool {
	return slices.Contains(showFormats, strings.ToLower(strings.TrimSpace(format)))
}
