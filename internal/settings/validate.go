package settings

import (
	"errors"
	"fmt"
	"net/url"
	"slices"
	"sort"
	"strings"
	"time"
	_ "time/tzdata"
	"unicode"
	"unicode/utf8"
)

// FieldError 描述某个设置项的校验失败。
type FieldError struct {
	Key string
	Msg string
}

func (e *FieldError) Error() string {
	return fmt.Sprintf("%s: %s", e.Key, e.Msg)
}

// 主题支持的社交图标名称。
var socialNetworks = []string{
	"bitbucket", "email", "facebook", "github", "gitlab", "google",
	"instagram", "linkedin", "medium", "pinterest", "reddit", "rss",
	"soundcloud", "stack-overflow", "tumblr", "twitter", "xing", "youtube",
}

// 文章排序字段，均可加 "reversed-" 前缀。
var articleOrderings = []string{"basename", "date", "modified", "slug", "title"}

var themeColors = []string{"dark", "light"}

var markdownOutputFormats = []string{"html", "html5", "xhtml", "xhtml1"}

// Validate 检查设置是否满足生成器的基本要求。
// 返回的错误由所有 *FieldError 通过 errors.Join 组合而成，无问题时返回 nil。
func Validate(s Settings) error {
	v := &validator{}

	v.text(KeySiteName, s.SiteName)
	v.text(KeyAuthor, s.Author)
	v.text(KeySiteTitle, s.SiteTitle)
	v.siteURL(s.SiteURL)

	v.path(KeyPath, s.Path)
	if len(s.StaticPaths) == 0 {
		v.fail(KeyStaticPaths, "must list at least one path")
	}
	for i, p := range s.StaticPaths {
		v.path(fmt.Sprintf("%s[%d]", KeyStaticPaths, i), p)
	}
	for _, src := range sortedKeys(s.ExtraPathMetadata) {
		key := fmt.Sprintf("%s[%q]", KeyExtraPathMetadata, src)
		v.path(key, src)
		v.path(key+".path", s.ExtraPathMetadata[src].Path)
	}
	v.template(KeyArticleURL, s.ArticleURL)
	v.template(KeyArticleSaveAs, s.ArticleSaveAs)
	v.template(KeyPageURL, s.PageURL)
	v.template(KeyPageSaveAs, s.PageSaveAs)
	v.path(KeyCategoriesSaveAs, s.CategoriesSaveAs)
	v.path(KeyTagsSaveAs, s.TagsSaveAs)
	v.path(KeyCustomCSS, s.CustomCSS)

	v.path(KeyTheme, s.Theme)
	v.assetURL(KeySiteLogo, s.SiteLogo, s.SiteURL)
	v.assetURL(KeyFavicon, s.Favicon, s.SiteURL)
	v.oneOf(KeyThemeColor, s.ThemeColor, themeColors)
	v.text(KeyPygmentsStyle, s.PygmentsStyle)
	v.text(KeyCopyrightName, s.CopyrightName)
	if s.CopyrightYear <= 0 {
		v.fail(KeyCopyrightYear, fmt.Sprintf("must be a positive year, got %d", s.CopyrightYear))
	}

	v.markdown(s.Markdown)
	if s.DefaultPagination <= 0 {
		v.fail(KeyDefaultPagination, fmt.Sprintf("must be > 0, got %d", s.DefaultPagination))
	}
	v.oneOf(KeyArticleOrderBy, strings.TrimPrefix(s.ArticleOrderBy, "reversed-"), articleOrderings)
	if _, err := time.LoadLocation(s.Timezone); err != nil || strings.TrimSpace(s.Timezone) == "" {
		v.fail(KeyTimezone, fmt.Sprintf("unknown time zone %q", s.Timezone))
	}
	v.text(KeyDefaultLang, s.DefaultLang)

	v.links(KeyMenuItems, s.MenuItems, nil)
	v.links(KeySocial, s.Social, socialNetworks)

	v.template(KeyFeedAllAtom, s.FeedAllAtom)
	v.template(KeyCategoryFeedAtom, s.CategoryFeedAtom)

	// 生成的 Python 模块无法表示非 UTF-8 字节
	for _, e := range s.Entries() {
		if !validUTF8(e.Value) {
			v.fail(e.Key, "contains invalid UTF-8")
		}
	}

	return errors.Join(v.errs...)
}

type validator struct {
	errs []error
}

func (v *validator) fail(key, msg string) {
	v.errs = append(v.errs, &FieldError{Key: key, Msg: msg})
}

func (v *validator) text(key, value string) {
	if strings.TrimSpace(value) == "" {
		v.fail(key, "must not be empty")
	}
}

// path 要求非空且不含空白字符。
func (v *validator) path(key, value string) bool {
	if value == "" {
		v.fail(key, "must not be empty")
		return false
	}
	if strings.ContainsFunc(value, unicode.IsSpace) {
		v.fail(key, fmt.Sprintf("contains whitespace: %q", value))
		return false
	}
	return true
}

// template 在 path 的基础上要求 {name} 占位符括号配对且名称非空。
func (v *validator) template(key, value string) {
	if !v.path(key, value) {
		return
	}
	if err := checkPlaceholders(value); err != nil {
		v.fail(key, err.Error())
	}
}

func (v *validator) siteURL(value string) {
	if !v.path(KeySiteURL, value) {
		return
	}
	u, err := url.Parse(value)
	if err != nil {
		v.fail(KeySiteURL, err.Error())
		return
	}
	if u.Scheme != "http" && u.Scheme != "https" {
		v.fail(KeySiteURL, fmt.Sprintf("scheme must be http or https, got %q", u.Scheme))
	}
	if u.Host == "" {
		v.fail(KeySiteURL, "missing host")
	}
}

// assetURL 要求值为以站点地址开头的绝对 URL。
func (v *validator) assetURL(key, value, siteURL string) {
	if !v.path(key, value) {
		return
	}
	prefix := strings.TrimRight(siteURL, "/") + "/"
	if !strings.HasPrefix(value, prefix) {
		v.fail(key, fmt.Sprintf("%q is not under %s %q", value, KeySiteURL, siteURL))
	}
}

func (v *validator) oneOf(key, value string, allowed []string) {
	if !slices.Contains(allowed, value) {
		v.fail(key, fmt.Sprintf("unsupported value %q (supported: %s)", value, strings.Join(allowed, ", ")))
	}
}

func (v *validator) markdown(m MarkdownConfig) {
	for _, name := range sortedKeys(m.ExtensionConfigs) {
		v.path(fmt.Sprintf("%s.extension_configs[%q]", KeyMarkdown, name), name)
	}
	v.oneOf(KeyMarkdown+".output_format", m.OutputFormat, markdownOutputFormats)
}

// links 检查（标签，URL）对；names 非空时标签必须在其中。
func (v *validator) links(key string, links []Link, names []string) {
	for i, l := range links {
		itemKey := fmt.Sprintf("%s[%d]", key, i)
		if strings.TrimSpace(l.Label) == "" {
			v.fail(itemKey, "label must not be empty")
		} else if names != nil && !slices.Contains(names, l.Label) {
			v.fail(itemKey, fmt.Sprintf("unknown social network %q", l.Label))
		}
		v.path(itemKey+".url", l.URL)
	}
}

func validUTF8(value any) bool {
	switch val := value.(type) {
	case string:
		return utf8.ValidString(val)
	case []string:
		for _, item := range val {
			if !utf8.ValidString(item) {
				return false
			}
		}
	case []Link:
		for _, l := range val {
			if !utf8.ValidString(l.Label) || !utf8.ValidString(l.URL) {
				return false
			}
		}
	case map[string]PathMetadata:
		for src, meta := range val {
			if !utf8.ValidString(src) || !utf8.ValidString(meta.Path) {
				return false
			}
		}
	case MarkdownConfig:
		if !utf8.ValidString(val.OutputFormat) {
			return false
		}
		for name, opts := range val.ExtensionConfigs {
			if !utf8.ValidString(name) {
				return false
			}
			for k, v := range opts {
				if !utf8.ValidString(k) || !utf8.ValidString(v) {
					return false
				}
			}
		}
	}
	return true
}

func checkPlaceholders(value string) error {
	depth := 0
	start := 0
	for i, r := range value {
		switch r {
		case '{':
			if depth > 0 {
				return fmt.Errorf("nested '{' at offset %d", i)
			}
			depth++
			start = i
		case '}':
			if depth == 0 {
				return fmt.Errorf("unmatched '}' at offset %d", i)
			}
			depth--
			if i == start+1 {
				return fmt.Errorf("empty placeholder at offset %d", start)
			}
		}
	}
	if depth != 0 {
		return fmt.Errorf("unclosed '{' at offset %d", start)
	}
	return nil
}

func sortedKeys[V any](m map[string]V) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
