package cmd

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"
	"time"

	"blogconf/internal/config"

	"github.com/spf13/cobra"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func runDoctorForTest(t *testing.T) (string, error) {
	t.Helper()

	var out bytes.Buffer
	var errBuf bytes.Buffer
	c := &cobra.Command{}
	c.SetOut(&out)
	c.SetErr(&errBuf)

	err := runDoctor(c, nil)
	return out.String(), err
}

func TestDoctor_HealthySite_AllOK(t *testing.T) {
	home := withTempHome(t)
	withFixedNow(t)
	root := createSite(t, home)
	setTestConfig(t, config.Config{SiteRoot: root, Profile: "base", Format: "table"})

	_, err := executeCommand(t, newExportCmd(), "-o", filepath.Join(home, "exports"))
	require.NoError(t, err)

	s, err := runDoctorForTest(t)
	require.NoError(t, err)

	assert.Contains(t, s, "Running diagnostics...")
	assert.Contains(t, s, "✅ Config: OK")
	assert.Contains(t, s, "✅ Settings: 2 profile(s) valid")
	assert.Contains(t, s, "✅ Content: OK")
	assert.Contains(t, s, "✅ Theme: OK")
	assert.Contains(t, s, "✅ Worktree: OK")
	assert.Contains(t, s, "✅ Exports: up to date")
}

func TestDoctor_MissingContent_ReturnsError(t *testing.T) {
	home := withTempHome(t)
	withFixedNow(t)
	root := createSite(t, home)
	require.NoError(t, os.RemoveAll(filepath.Join(root, "content", "images")))
	setTestConfig(t, config.Config{SiteRoot: root, Profile: "base", Format: "table"})

	s, err := runDoctorForTest(t)
	require.Error(t, err)
	assert.Contains(t, s, "❌ Content: 1 issue(s)")
	assert.Contains(t, s, `static path "images" not found`)
}

func TestDoctor_InvalidOverrides_ReturnsError(t *testing.T) {
	home := withTempHome(t)
	withFixedNow(t)
	root := createSite(t, home)
	require.NoError(t, os.WriteFile(filepath.Join(home, "bad.yaml"), []byte("theme_color: blue\n"), 0o600))
	setTestConfig(t, config.Config{SiteRoot: root, Profile: "base", Format: "table", OverridesFile: filepath.Join(home, "bad.yaml")})

	s, err := runDoctorForTest(t)
	require.Error(t, err)
	assert.Contains(t, s, "❌ Settings: 2 issue(s)")
	assert.Contains(t, s, `base: THEME_COLOR: unsupported value "blue"`)
	assert.Contains(t, s, `publish: THEME_COLOR: unsupported value "blue"`)
}

func TestDoctor_WarningsOnly(t *testing.T) {
	home := withTempHome(t)
	withFixedNow(t)
	root := createSite(t, home)
	require.NoError(t, os.WriteFile(filepath.Join(root, "content", "draft.md"), []byte("wip\n"), 0o644))
	setTestConfig(t, config.Config{SiteRoot: root, Profile: "base", Format: "table"})

	s, err := runDoctorForTest(t)
	require.NoError(t, err)
	assert.Contains(t, s, "⚠️  Worktree: 1 warning(s)")
	assert.Contains(t, s, "uncommitted change: content/draft.md")
	assert.Contains(t, s, "⚠️  Exports: 2 warning(s)")
	assert.Contains(t, s, "pelicanconf.py: never exported")
}

func TestDoctor_StaleExport(t *testing.T) {
	home := withTempHome(t)
	root := createSite(t, home)
	setTestConfig(t, config.Config{SiteRoot: root, Profile: "base", Format: "table"})

	withFixedNow(t)
	_, err := executeCommand(t, newExportCmd(), "-o", filepath.Join(home, "exports"))
	require.NoError(t, err)

	// 跨年后版权年份变化，已导出的文件过期
	old := now
	now = func() time.Time { return testNow.AddDate(1, 0, 0) }
	t.Cleanup(func() { now = old })

	s, err := runDoctorForTest(t)
	require.NoError(t, err)
	assert.Contains(t, s, "⚠️  Exports: 2 warning(s)")
	assert.Contains(t, s, "out of date, run blogconf export")
}

func TestDoctor_MissingTheme_ReturnsError(t *testing.T) {
	home := withTempHome(t)
	withFixedNow(t)
	root := createSite(t, home)
	require.NoError(t, os.RemoveAll(filepath.Join(root, "themes")))
	setTestConfig(t, config.Config{SiteRoot: root, Profile: "base", Format: "table"})

	s, err := runDoctorForTest(t)
	require.Error(t, err)
	assert.Contains(t, s, "❌ Theme: theme directory")
}
