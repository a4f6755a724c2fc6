package site

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"blogconf/internal/settings"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var testNow = time.Date(2026, 1, 2, 0, 0, 0, 0, time.UTC)

// createSite 按基础配置在临时目录中搭建一个完整的站点目录。
func createSite(t *testing.T) string {
	t.Helper()

	root := t.TempDir()
	for _, dir := range []string{
		"content/images",
		"content/extra",
		"themes/Flex/templates",
	} {
		require.NoError(t, os.MkdirAll(filepath.Join(root, dir), 0o755))
	}
	for _, file := range []string{
		"content/extra/favicon.ico",
		"content/extra/manikos_style.css",
		"content/hello.md",
		"themes/Flex/templates/base.html",
	} {
		require.NoError(t, os.WriteFile(filepath.Join(root, file), []byte("x\n"), 0o644))
	}
	return root
}

func TestNormalizeRoot(t *testing.T) {
	t.Run("empty path", func(t *testing.T) {
		_, err := NormalizeRoot("  ")
		require.Error(t, err)
	})

	t.Run("tilde expands to home", func(t *testing.T) {
		home := t.TempDir()
		t.Setenv("HOME", home)

		got, err := NormalizeRoot("~/blog")
		require.NoError(t, err)
		assert.Equal(t, filepath.Join(home, "blog"), got)
	})

	t.Run("relative path becomes absolute", func(t *testing.T) {
		got, err := NormalizeRoot("./blog/../site")
		require.NoError(t, err)
		assert.True(t, filepath.IsAbs(got))
		assert.Equal(t, "site", filepath.Base(got))
	})
}

func TestCheckContent_CompleteSite(t *testing.T) {
	root := createSite(t)
	assert.NoError(t, CheckContent(root, settings.Base(testNow)))
}

func TestCheckContent_MissingContentDir(t *testing.T) {
	err := CheckContent(t.TempDir(), settings.Base(testNow))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "content directory")
}

func TestCheckContent_ReportsAllMissingFiles(t *testing.T) {
	root := createSite(t)
	require.NoError(t, os.RemoveAll(filepath.Join(root, "content", "images")))
	require.NoError(t, os.Remove(filepath.Join(root, "content", "extra", "favicon.ico")))

	err := CheckContent(root, settings.Base(testNow))
	require.Error(t, err)
	assert.Contains(t, err.Error(), `static path "images" not found`)
	assert.Contains(t, err.Error(), `extra file "extra/favicon.ico" not found`)
	assert.NotContains(t, err.Error(), "manikos_style.css")
}
