package cmd

import (
	"path/filepath"
	"strings"
	"time"

	"blogconf/internal/config"
	"blogconf/internal/settings"
	"blogconf/internal/site"
)

// now 返回当前时间，测试中可替换以固定版权年份。
var now = time.Now

// RunContext holds the common initialization result for commands.
type RunContext struct {
	Config    *config.Config
	SiteRoot  string
	Overrides []settings.Overrides
}

// prepareRun performs common command initialization:
// load config, resolve site root, load the optional overrides file.
func prepareRun(overridesFile string) (*RunContext, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, err
	}

	root, err := site.NormalizeRoot(cfg.SiteRoot)
	if err != nil {
		return nil, err
	}

	// 命令行参数优先于配置文件
	path := strings.TrimSpace(overridesFile)
	if path == "" {
		path = strings.TrimSpace(cfg.OverridesFile)
	}

	runCtx := &RunContext{Config: cfg, SiteRoot: root}
	if path == "" {
		return runCtx, nil
	}

	// 相对路径按站点根目录解析
	if !filepath.IsAbs(path) && !strings.HasPrefix(path, "~") {
		path = filepath.Join(root, path)
	}
	path, err = site.NormalizeRoot(path)
	if err != nil {
		return nil, err
	}
	o, err := settings.LoadOverrides(path)
	if err != nil {
		return nil, err
	}
	runCtx.Overrides = []settings.Overrides{o}
	return runCtx, nil
}

// profile 解析环境名称，为空时使用配置中的默认环境。
func (rc *RunContext) profile(name string) (settings.Profile, error) {
	if strings.TrimSpace(name) == "" {
		name = rc.Config.Profile
	}
	return settings.ParseProfile(name)
}

// resolve 计算指定环境叠加覆盖文件后的有效设置。
func (rc *RunContext) resolve(p settings.Profile) (settings.Settings, error) {
	return settings.Resolve(p, now(), rc.Overrides...)
}

// overrideKeys 返回环境 p 相对基础配置覆盖的全部键名，按声明顺序去重。
func (rc *RunContext) overrideKeys(p settings.Profile) []string {
	var layers []settings.Overrides
	if p == settings.ProfilePublish {
		layers = append(layers, settings.PublishOverrides())
	}
	layers = append(layers, rc.Overrides...)

	set := make(map[string]struct{})
	for _, o := range layers {
		for _, key := range o.Keys() {
			set[key] = struct{}{}
		}
	}

	keys := make([]string, 0, len(set))
	for _, key := range settings.Keys() {
		if _, ok := set[key]; ok {
			keys = append(keys, key)
		}
	}
	return keys
}
