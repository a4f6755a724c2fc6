package settings

import (
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"reflect"
)

// 生成器识别的设置键名。
const (
	KeySiteName        = "SITENAME"
	KeyAuthor          = "AUTHOR"
	KeySiteURL         = "SITEURL"
	KeySiteTitle       = "SITETITLE"
	KeySiteSubtitle    = "SITESUBTITLE"
	KeySiteDescription = "SITEDESCRIPTION"

	KeyPath              = "PATH"
	KeyStaticPaths       = "STATIC_PATHS"
	KeyExtraPathMetadata = "EXTRA_PATH_METADATA"
	KeyArticleURL        = "ARTICLE_URL"
	KeyArticleSaveAs     = "ARTICLE_SAVE_AS"
	KeyPageURL           = "PAGE_URL"
	KeyPageSaveAs        = "PAGE_SAVE_AS"
	KeyCategoriesSaveAs  = "CATEGORIES_SAVE_AS"
	KeyTagsSaveAs        = "TAGS_SAVE_AS"
	KeyCustomCSS         = "CUSTOM_CSS"

	KeyTheme                                 = "THEME"
	KeySiteLogo                              = "SITELOGO"
	KeyFavicon                               = "FAVICON"
	KeyThemeColor                            = "THEME_COLOR"
	KeyThemeColorAutoDetectBrowserPreference = "THEME_COLOR_AUTO_DETECT_BROWSER_PREFERENCE"
	KeyThemeColorEnableUserOverride          = "THEME_COLOR_ENABLE_USER_OVERRIDE"
	KeyDisableURLHash                        = "DISABLE_URL_HASH"
	KeyMainMenu                              = "MAIN_MENU"
	KeyPygmentsStyle                         = "PYGMENTS_STYLE"
	KeyRobots                                = "ROBOTS"
	KeyDisqusSiteName                        = "DISQUS_SITENAME"
	KeyCopyrightName                         = "COPYRIGHT_NAME"
	KeyCopyrightYear                         = "COPYRIGHT_YEAR"

	KeyMarkdown          = "MARKDOWN"
	KeyDefaultPagination = "DEFAULT_PAGINATION"
	KeyArticleOrderBy    = "ARTICLE_ORDER_BY"
	KeyLoadContentCache  = "LOAD_CONTENT_CACHE"
	KeyTimezone          = "TIMEZONE"
	KeyDefaultLang       = "DEFAULT_LANG"

	KeyMenuItems = "MENUITEMS"
	KeySocial    = "SOCIAL"

	KeyFeedAllAtom      = "FEED_ALL_ATOM"
	KeyCategoryFeedAtom = "CATEGORY_FEED_ATOM"

	KeyRelativeURLs          = "RELATIVE_URLS"
	KeyDeleteOutputDirectory = "DELETE_OUTPUT_DIRECTORY"
)

// Entry 是一项设置：生成器键名及其值。
// Value 的动态类型为 string、bool、int、[]string、[]Link、
// map[string]PathMetadata 或 MarkdownConfig 之一。
type Entry struct {
	Key   string
	Value any
}

// Entries 按声明顺序返回全部设置项，值为深拷贝。
func (s Settings) Entries() []Entry {
	c := s.Clone()
	return []Entry{
		{KeySiteName, c.SiteName},
		{KeyAuthor, c.Author},
		{KeySiteURL, c.SiteURL},
		{KeySiteTitle, c.SiteTitle},
		{KeySiteSubtitle, c.SiteSubtitle},
		{KeySiteDescription, c.SiteDescription},

		{KeyPath, c.Path},
		{KeyStaticPaths, c.StaticPaths},
		{KeyExtraPathMetadata, c.ExtraPathMetadata},
		{KeyArticleURL, c.ArticleURL},
		{KeyArticleSaveAs, c.ArticleSaveAs},
		{KeyPageURL, c.PageURL},
		{KeyPageSaveAs, c.PageSaveAs},
		{KeyCategoriesSaveAs, c.CategoriesSaveAs},
		{KeyTagsSaveAs, c.TagsSaveAs},
		{KeyCustomCSS, c.CustomCSS},

		{KeyTheme, c.Theme},
		{KeySiteLogo, c.SiteLogo},
		{KeyFavicon, c.Favicon},
		{KeyThemeColor, c.ThemeColor},
		{KeyThemeColorAutoDetectBrowserPreference, c.ThemeColorAutoDetectBrowserPreference},
		{KeyThemeColorEnableUserOverride, c.ThemeColorEnableUserOverride},
		{KeyDisableURLHash, c.DisableURLHash},
		{KeyMainMenu, c.MainMenu},
		{KeyPygmentsStyle, c.PygmentsStyle},
		{KeyRobots, c.Robots},
		{KeyDisqusSiteName, c.DisqusSiteName},
		{KeyCopyrightName, c.CopyrightName},
		{KeyCopyrightYear, c.CopyrightYear},

		{KeyMarkdown, c.Markdown},
		{KeyDefaultPagination, c.DefaultPagination},
		{KeyArticleOrderBy, c.ArticleOrderBy},
		{KeyLoadContentCache, c.LoadContentCache},
		{KeyTimezone, c.Timezone},
		{KeyDefaultLang, c.DefaultLang},

		{KeyMenuItems, c.MenuItems},
		{KeySocial, c.Social},

		{KeyFeedAllAtom, c.FeedAllAtom},
		{KeyCategoryFeedAtom, c.CategoryFeedAtom},

		{KeyRelativeURLs, c.RelativeURLs},
		{KeyDeleteOutputDirectory, c.DeleteOutputDirectory},
	}
}

// Keys 按声明顺序返回全部设置键名。
func Keys() []string {
	entries := Settings{}.Entries()
	keys := make([]string, 0, len(entries))
	for _, e := range entries {
		keys = append(keys, e.Key)
	}
	return keys
}

// Change 描述两份设置之间不同的一项。
type Change struct {
	Key  string
	From any
	To   any
}

// Diff 按声明顺序返回 a 与 b 中取值不同的设置项。
func Diff(a, b Settings) []Change {
	left := a.Entries()
	right := b.Entries()

	var changes []Change
	for i := range left {
		if reflect.DeepEqual(left[i].Value, right[i].Value) {
			continue
		}
		changes = append(changes, Change{
			Key:  left[i].Key,
			From: left[i].Value,
			To:   right[i].Value,
		})
	}
	return changes
}

// Digest 返回设置内容的稳定 SHA-256 摘要（十六进制）。
// map 按键排序序列化，因此摘要与 map 遍历顺序无关。
func Digest(s Settings) string {
	h := sha256.New()
	for _, e := range s.Entries() {
		value, err := json.Marshal(e.Value)
		if err != nil {
			// Entries 中只有可序列化的类型
			panic(err)
		}
		h.Write([]byte(e.Key))
		h.Write([]byte{'='})
		h.Write(value)
		h.Write([]byte{0})
	}
	return hex.EncodeToString(h.Sum(nil))
}
