package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func withTempHome(t *testing.T) string {
	t.Helper()

	home := t.TempDir()
	t.Setenv("HOME", home)
	return home
}

func TestLoad_MissingFileReturnsDefaults(t *testing.T) {
	withTempHome(t)

	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, &Config{
		SiteRoot: DefaultSiteRoot,
		Profile:  DefaultProfile,
		Format:   DefaultFormat,
	}, cfg)
}

func TestSaveThenLoad(t *testing.T) {
	home := withTempHome(t)

	want := Config{
		SiteRoot:      "/srv/blog",
		Profile:       "publish",
		Format:        "json",
		OverridesFile: "/srv/blog/staging.yaml",
	}
	require.NoError(t, Save(want))

	_, err := os.Stat(filepath.Join(home, ".config", "blogconf", "config.yaml"))
	require.NoError(t, err)

	got, err := Load()
	require.NoError(t, err)
	assert.Equal(t, want, *got)
}

func TestLoad_EnvironmentOverridesFile(t *testing.T) {
	withTempHome(t)
	require.NoError(t, Save(Config{SiteRoot: ".", Profile: "base", Format: "table"}))

	t.Setenv("BLOGCONF_PROFILE", "publish")
	t.Setenv("BLOGCONF_SITE_ROOT", "/tmp/site")

	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, "publish", cfg.Profile)
	assert.Equal(t, "/tmp/site", cfg.SiteRoot)
	assert.Equal(t, "table", cfg.Format)
}

func TestLoad_MalformedFileReturnsError(t *testing.T) {
	home := withTempHome(t)

	dir := filepath.Join(home, ".config", "blogconf")
	require.NoError(t, os.MkdirAll(dir, 0o755))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "config.yaml"), []byte("profile: [unterminated\n"), 0o600))

	_, err := Load()
	assert.Error(t, err)
}

func TestValidateConfig(t *testing.T) {
	t.Run("defaults pass", func(t *testing.T) {
		issues := ValidateConfig(&Config{SiteRoot: ".", Profile: "base", Format: "table"})
		assert.Empty(t, issues)
	})

	t.Run("unknown profile fails", func(t *testing.T) {
		issues := ValidateConfig(&Config{SiteRoot: ".", Profile: "staging", Format: "table"})
		require.Len(t, issues, 1)
		assert.Contains(t, issues[0], "unknown profile")
	})

	t.Run("unsupported format fails", func(t *testing.T) {
		issues := ValidateConfig(&Config{SiteRoot: ".", Profile: "publish", Format: "csv"})
		require.Len(t, issues, 1)
		assert.Contains(t, issues[0], `unsupported format "csv"`)
	})

	t.Run("empty site root fails", func(t *testing.T) {
		issues := ValidateConfig(&Config{SiteRoot: " ", Profile: "base", Format: "py"})
		require.Len(t, issues, 1)
		assert.Equal(t, "site-root must not be empty", issues[0])
	})
}
