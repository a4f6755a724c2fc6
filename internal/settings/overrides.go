package settings

import (
	"maps"
	"slices"
)

// 生产环境站点地址。
const publishSiteURL = "https://alone-djangonaut.com"

// Overrides 是叠加在 Settings 之上的覆盖项。
// 每个字段对应 Settings 的同名字段，nil 表示保留基础值，
// 因此覆盖项的键永远是基础配置键的子集。
// mapstructure 标签为小写的生成器键名，供覆盖文件解码使用。
type Overrides struct {
	SiteName        *string `mapstructure:"sitename"`
	Author          *string `mapstructure:"author"`
	SiteURL         *string `mapstructure:"siteurl"`
	SiteTitle       *string `mapstructure:"sitetitle"`
	SiteSubtitle    *string `mapstructure:"sitesubtitle"`
	SiteDescription *string `mapstructure:"sitedescription"`

	Path              *string                 `mapstructure:"path"`
	StaticPaths       []string                `mapstructure:"static_paths"`
	ExtraPathMetadata map[string]PathMetadata `mapstructure:"extra_path_metadata"`
	ArticleURL        *string                 `mapstructure:"article_url"`
	ArticleSaveAs     *string                 `mapstructure:"article_save_as"`
	PageURL           *string                 `mapstructure:"page_url"`
	PageSaveAs        *string                 `mapstructure:"page_save_as"`
	CategoriesSaveAs  *string                 `mapstructure:"categories_save_as"`
	TagsSaveAs        *string                 `mapstructure:"tags_save_as"`
	CustomCSS         *string                 `mapstructure:"custom_css"`

	Theme                                 *string `mapstructure:"theme"`
	SiteLogo                              *string `mapstructure:"sitelogo"`
	Favicon                               *string `mapstructure:"favicon"`
	ThemeColor                            *string `mapstructure:"theme_color"`
	ThemeColorAutoDetectBrowserPreference *bool   `mapstructure:"theme_color_auto_detect_browser_preference"`
	ThemeColorEnableUserOverride          *bool   `mapstructure:"theme_color_enable_user_override"`
	DisableURLHash                        *bool   `mapstructure:"disable_url_hash"`
	MainMenu                              *bool   `mapstructure:"main_menu"`
	PygmentsStyle                         *string `mapstructure:"pygments_style"`
	Robots                                *string `mapstructure:"robots"`
	DisqusSiteName                        *string `mapstructure:"disqus_sitename"`
	CopyrightName                         *string `mapstructure:"copyright_name"`
	CopyrightYear                         *int    `mapstructure:"copyright_year"`

	Markdown          *MarkdownConfig `mapstructure:"markdown"`
	DefaultPagination *int            `mapstructure:"default_pagination"`
	ArticleOrderBy    *string         `mapstructure:"article_order_by"`
	LoadContentCache  *bool           `mapstructure:"load_content_cache"`
	Timezone          *string         `mapstructure:"timezone"`
	DefaultLang       *string         `mapstructure:"default_lang"`

	MenuItems []Link `mapstructure:"menuitems"`
	Social    []Link `mapstructure:"social"`

	FeedAllAtom      *string `mapstructure:"feed_all_atom"`
	CategoryFeedAtom *string `mapstructure:"category_feed_atom"`

	RelativeURLs          *bool `mapstructure:"relative_urls"`
	DeleteOutputDirectory *bool `mapstructure:"delete_output_directory"`
}

// PublishOverrides 返回生产构建相对基础配置的覆盖项。
func PublishOverrides() Overrides {
	return Overrides{
		SiteURL:               ptr(publishSiteURL),
		RelativeURLs:          ptr(false),
		ArticleURL:            ptr("{slug}"),
		FeedAllAtom:           ptr("feeds/all.atom.xml"),
		CategoryFeedAtom:      ptr("feeds/{slug}.atom.xml"),
		DeleteOutputDirectory: ptr(true),
		SiteLogo:              ptr(AssetURL(publishSiteURL, logoPath)),
		Favicon:               ptr(AssetURL(publishSiteURL, faviconPath)),
	}
}

// Keys 按声明顺序返回已设置字段对应的生成器键名。
func (o Overrides) Keys() []string {
	set := []struct {
		key string
		ok  bool
	}{
		{KeySiteName, o.SiteName != nil},
		{KeyAuthor, o.Author != nil},
		{KeySiteURL, o.SiteURL != nil},
		{KeySiteTitle, o.SiteTitle != nil},
		{KeySiteSubtitle, o.SiteSubtitle != nil},
		{KeySiteDescription, o.SiteDescription != nil},

		{KeyPath, o.Path != nil},
		{KeyStaticPaths, o.StaticPaths != nil},
		{KeyExtraPathMetadata, o.ExtraPathMetadata != nil},
		{KeyArticleURL, o.ArticleURL != nil},
		{KeyArticleSaveAs, o.ArticleSaveAs != nil},
		{KeyPageURL, o.PageURL != nil},
		{KeyPageSaveAs, o.PageSaveAs != nil},
		{KeyCategoriesSaveAs, o.CategoriesSaveAs != nil},
		{KeyTagsSaveAs, o.TagsSaveAs != nil},
		{KeyCustomCSS, o.CustomCSS != nil},

		{KeyTheme, o.Theme != nil},
		{KeySiteLogo, o.SiteLogo != nil},
		{KeyFavicon, o.Favicon != nil},
		{KeyThemeColor, o.ThemeColor != nil},
		{KeyThemeColorAutoDetectBrowserPreference, o.ThemeColorAutoDetectBrowserPreference != nil},
		{KeyThemeColorEnableUserOverride, o.ThemeColorEnableUserOverride != nil},
		{KeyDisableURLHash, o.DisableURLHash != nil},
		{KeyMainMenu, o.MainMenu != nil},
		{KeyPygmentsStyle, o.PygmentsStyle != nil},
		{KeyRobots, o.Robots != nil},
		{KeyDisqusSiteName, o.DisqusSiteName != nil},
		{KeyCopyrightName, o.CopyrightName != nil},
		{KeyCopyrightYear, o.CopyrightYear != nil},

		{KeyMarkdown, o.Markdown != nil},
		{KeyDefaultPagination, o.DefaultPagination != nil},
		{KeyArticleOrderBy, o.ArticleOrderBy != nil},
		{KeyLoadContentCache, o.LoadContentCache != nil},
		{KeyTimezone, o.Timezone != nil},
		{KeyDefaultLang, o.DefaultLang != nil},

		{KeyMenuItems, o.MenuItems != nil},
		{KeySocial, o.Social != nil},

		{KeyFeedAllAtom, o.FeedAllAtom != nil},
		{KeyCategoryFeedAtom, o.CategoryFeedAtom != nil},

		{KeyRelativeURLs, o.RelativeURLs != nil},
		{KeyDeleteOutputDirectory, o.DeleteOutputDirectory != nil},
	}

	keys := make([]string, 0, len(set))
	for _, s := range set {
		if s.ok {
			keys = append(keys, s.key)
		}
	}
	return keys
}

// Merge 返回以 base 为底、用 o 中非 nil 字段替换后的有效设置。
// 结果是独立副本，base 和 o 均不会被修改。
func Merge(base Settings, o Overrides) Settings {
	s := base.Clone()

	apply(&s.SiteName, o.SiteName)
	apply(&s.Author, o.Author)
	apply(&s.SiteURL, o.SiteURL)
	apply(&s.SiteTitle, o.SiteTitle)
	apply(&s.SiteSubtitle, o.SiteSubtitle)
	apply(&s.SiteDescription, o.SiteDescription)

	apply(&s.Path, o.Path)
	if o.StaticPaths != nil {
		s.StaticPaths = slices.Clone(o.StaticPaths)
	}
	if o.ExtraPathMetadata != nil {
		s.ExtraPathMetadata = maps.Clone(o.ExtraPathMetadata)
	}
	apply(&s.ArticleURL, o.ArticleURL)
	apply(&s.ArticleSaveAs, o.ArticleSaveAs)
	apply(&s.PageURL, o.PageURL)
	apply(&s.PageSaveAs, o.PageSaveAs)
	apply(&s.CategoriesSaveAs, o.CategoriesSaveAs)
	apply(&s.TagsSaveAs, o.TagsSaveAs)
	apply(&s.CustomCSS, o.CustomCSS)

	apply(&s.Theme, o.Theme)
	apply(&s.SiteLogo, o.SiteLogo)
	apply(&s.Favicon, o.Favicon)
	apply(&s.ThemeColor, o.ThemeColor)
	apply(&s.ThemeColorAutoDetectBrowserPreference, o.ThemeColorAutoDetectBrowserPreference)
	apply(&s.ThemeColorEnableUserOverride, o.ThemeColorEnableUserOverride)
	apply(&s.DisableURLHash, o.DisableURLHash)
	apply(&s.MainMenu, o.MainMenu)
	apply(&s.PygmentsStyle, o.PygmentsStyle)
	apply(&s.Robots, o.Robots)
	apply(&s.DisqusSiteName, o.DisqusSiteName)
	apply(&s.CopyrightName, o.CopyrightName)
	apply(&s.CopyrightYear, o.CopyrightYear)

	if o.Markdown != nil {
		s.Markdown = o.Markdown.clone()
	}
	apply(&s.DefaultPagination, o.DefaultPagination)
	apply(&s.ArticleOrderBy, o.ArticleOrderBy)
	apply(&s.LoadContentCache, o.LoadContentCache)
	apply(&s.Timezone, o.Timezone)
	apply(&s.DefaultLang, o.DefaultLang)

	if o.MenuItems != nil {
		s.MenuItems = slices.Clone(o.MenuItems)
	}
	if o.Social != nil {
		s.Social = slices.Clone(o.Social)
	}

	apply(&s.FeedAllAtom, o.FeedAllAtom)
	apply(&s.CategoryFeedAtom, o.CategoryFeedAtom)

	apply(&s.RelativeURLs, o.RelativeURLs)
	apply(&s.DeleteOutputDirectory, o.DeleteOutputDirectory)

	return s
}

func apply[T any](dst *T, src *T) {
	if src != nil {
		*dst = *src
	}
}

func ptr[T any](v T) *T {
	return &v
}
