package settings

import (
	"maps"
	"slices"
	"strings"
	"time"
)

// 基础配置使用的站点地址，即开发服务器地址。
const devSiteURL = "http://127.0.0.1:8000"

// 站点内静态资源的相对路径，SITELOGO 和 FAVICON 由站点地址拼接而来。
const (
	logoPath    = "images/logo/logo_3.png"
	faviconPath = "extra/favicon.ico"
)

// Link 是菜单项或社交链接，即有序的（标签，URL）对。
type Link struct {
	Label string `mapstructure:"label" json:"label"`
	URL   string `mapstructure:"url" json:"url"`
}

// PathMetadata 描述额外静态文件的输出位置。
type PathMetadata struct {
	Path string `mapstructure:"path" json:"path"`
}

// MarkdownConfig 是传给 Markdown 渲染器的扩展配置。
type MarkdownConfig struct {
	ExtensionConfigs map[string]map[string]string `mapstructure:"extension_configs" json:"extension_configs"`
	OutputFormat     string                       `mapstructure:"output_format" json:"output_format"`
}

func (m MarkdownConfig) clone() MarkdownConfig {
	out := MarkdownConfig{OutputFormat: m.OutputFormat}
	if m.ExtensionConfigs != nil {
		out.ExtensionConfigs = make(map[string]map[string]string, len(m.ExtensionConfigs))
		for name, opts := range m.ExtensionConfigs {
			out.ExtensionConfigs[name] = maps.Clone(opts)
		}
	}
	return out
}

// Settings 是生成器读取的完整设置集合。
type Settings struct {
	// 站点标识
	SiteName        string
	Author          string
	SiteURL         string
	SiteTitle       string
	SiteSubtitle    string
	SiteDescription string

	// 路径与输出模板
	Path              string
	StaticPaths       []string
	ExtraPathMetadata map[string]PathMetadata
	ArticleURL        string
	ArticleSaveAs     string
	PageURL           string
	PageSaveAs        string
	CategoriesSaveAs  string
	TagsSaveAs        string
	CustomCSS         string

	// 主题选项
	Theme                                 string
	SiteLogo                              string
	Favicon                               string
	ThemeColor                            string
	ThemeColorAutoDetectBrowserPreference bool
	ThemeColorEnableUserOverride          bool
	DisableURLHash                        bool
	MainMenu                              bool
	PygmentsStyle                         string
	Robots                                string
	DisqusSiteName                        string
	CopyrightName                         string
	CopyrightYear                         int

	// 内容行为
	Markdown          MarkdownConfig
	DefaultPagination int
	ArticleOrderBy    string
	LoadContentCache  bool
	Timezone          string
	DefaultLang       string

	// 导航
	MenuItems []Link
	Social    []Link

	// Feed 输出路径
	FeedAllAtom      string
	CategoryFeedAtom string

	// 部署开关
	RelativeURLs          bool
	DeleteOutputDirectory bool
}

// Base 返回本地开发使用的基础配置。
// 除 CopyrightYear 取 now 所在年份外，其余均为固定值。
func Base(now time.Time) Settings {
	return Settings{
		SiteName:        "Alone Djangonaut",
		Author:          "Nick Mavrakis",
		SiteURL:         devSiteURL,
		SiteTitle:       "Alone Djangonaut",
		SiteSubtitle:    "living in the pale blue dot",
		SiteDescription: "Tutorials, blog posts and thoughts of a Django developer. He/him. Music lover.",

		Path:        "content",
		StaticPaths: []string{"images", "extra"},
		ExtraPathMetadata: map[string]PathMetadata{
			"extra/favicon.ico":       {Path: "extra/favicon.ico"},
			"extra/manikos_style.css": {Path: "extra/manikos_style.css"},
		},
		ArticleURL:       "{slug}.html",
		ArticleSaveAs:    "{slug}.html",
		PageURL:          "page/{slug}/",
		PageSaveAs:       "page/{slug}/index.html",
		CategoriesSaveAs: "categories.html",
		TagsSaveAs:       "tags.html",
		CustomCSS:        "extra/manikos_style.css",

		Theme:                                 "themes/Flex",
		SiteLogo:                              AssetURL(devSiteURL, logoPath),
		Favicon:                               AssetURL(devSiteURL, faviconPath),
		ThemeColor:                            "dark",
		ThemeColorAutoDetectBrowserPreference: true,
		ThemeColorEnableUserOverride:          true,
		DisableURLHash:                        true,
		MainMenu:                              true,
		PygmentsStyle:                         "monokai",
		Robots:                                "all",
		DisqusSiteName:                        "manikos",
		CopyrightName:                         "Nick Mavrakis",
		CopyrightYear:                         now.Year(),

		Markdown: MarkdownConfig{
			ExtensionConfigs: map[string]map[string]string{
				"markdown.extensions.codehilite": {"css_class": "highlight"},
				"markdown.extensions.extra":      {},
				"markdown.extensions.meta":       {},
				"markdown.extensions.toc":        {},
			},
			OutputFormat: "html5",
		},
		DefaultPagination: 10,
		ArticleOrderBy:    "reversed-date",
		LoadContentCache:  false,
		Timezone:          "Europe/Athens",
		DefaultLang:       "en",

		MenuItems: []Link{
			{Label: "Archives", URL: "/archives.html"},
			{Label: "Categories", URL: "/categories.html"},
			{Label: "Tags", URL: "/tags.html"},
		},
		Social: []Link{
			{Label: "twitter", URL: "https://twitter.com/manikosN"},
			{Label: "github", URL: "https://github.com/manikos"},
			{Label: "stack-overflow", URL: "https://stackoverflow.com/users/2231182/nik-m"},
			{Label: "rss", URL: "feeds/all.atom.xml"},
		},

		FeedAllAtom:      "feeds/all.atom.xml",
		CategoryFeedAtom: "feeds/{slug}.atom.xml",

		RelativeURLs:          false,
		DeleteOutputDirectory: false,
	}
}

// AssetURL 将站点地址与站内相对路径拼接为绝对 URL。
func AssetURL(siteURL, path string) string {
	return strings.TrimRight(siteURL, "/") + "/" + strings.TrimLeft(path, "/")
}

// Clone 返回深拷贝，切片和 map 不与原值共享。
func (s Settings) Clone() Settings {
	out := s
	out.StaticPaths = slices.Clone(s.StaticPaths)
	out.ExtraPathMetadata = maps.Clone(s.ExtraPathMetadata)
	out.Markdown = s.Markdown.clone()
	out.MenuItems = slices.Clone(s.MenuItems)
	out.Social = slices.Clone(s.Social)
	return out
}
