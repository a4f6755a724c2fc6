package cmd

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"
	"time"

	"blogconf/internal/config"
	"blogconf/internal/settings"

	"github.com/go-git/go-git/v5"
	"github.com/go-git/go-git/v5/plumbing/object"
	"github.com/spf13/cobra"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var testNow = time.Date(2026, 4, 20, 10, 0, 0, 0, time.UTC)

func withTempHome(t *testing.T) string {
	t.Helper()

	home := t.TempDir()
	t.Setenv("HOME", home)
	return home
}

// withFixedNow 固定版权年份所用的时钟。
func withFixedNow(t *testing.T) {
	t.Helper()

	old := now
	now = func() time.Time { return testNow }
	t.Cleanup(func() { now = old })
}

func setTestConfig(t *testing.T, cfg config.Config) {
	t.Helper()
	require.NoError(t, config.Save(cfg))
}

// createSite 在 dir 下按基础配置搭建站点目录并提交，主题另有独立的 Git 仓库。
func createSite(t *testing.T, dir string) string {
	t.Helper()

	root := filepath.Join(dir, "blog")
	for _, d := range []string{"content/images", "content/extra", "themes/Flex/templates"} {
		require.NoError(t, os.MkdirAll(filepath.Join(root, d), 0o755))
	}
	for _, f := range []string{
		"content/extra/favicon.ico",
		"content/extra/manikos_style.css",
		"content/first-post.md",
		"themes/Flex/templates/base.html",
	} {
		require.NoError(t, os.WriteFile(filepath.Join(root, f), []byte("x\n"), 0o644))
	}

	commitAll(t, root)
	commitAll(t, filepath.Join(root, "themes", "Flex"))
	return root
}

func commitAll(t *testing.T, path string) {
	t.Helper()

	r, err := git.PlainOpen(path)
	if err == git.ErrRepositoryNotExists {
		r, err = git.PlainInit(path, false)
	}
	require.NoError(t, err)

	wt, err := r.Worktree()
	require.NoError(t, err)
	require.NoError(t, wt.AddWithOptions(&git.AddOptions{All: true}))

	_, err = wt.Commit("test commit", &git.CommitOptions{
		Author: &object.Signature{
			Name:  "Test",
			Email: "test@example.com",
			When:  time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC),
		},
	})
	require.NoError(t, err)
}

func executeCommand(t *testing.T, cmd *cobra.Command, args ...string) (string, error) {
	t.Helper()

	var out bytes.Buffer
	cmd.SetOut(&out)
	cmd.SetErr(&out)
	cmd.SetArgs(args)

	err := cmd.Execute()
	return out.String(), err
}

func TestPrepareRun_DefaultsWithoutConfig(t *testing.T) {
	withTempHome(t)

	runCtx, err := prepareRun("")
	require.NoError(t, err)
	assert.True(t, filepath.IsAbs(runCtx.SiteRoot))
	assert.Equal(t, config.DefaultProfile, runCtx.Config.Profile)
	assert.Empty(t, runCtx.Overrides)
}

func TestPrepareRun_RelativeOverridesResolvedAgainstRoot(t *testing.T) {
	home := withTempHome(t)
	root := filepath.Join(home, "blog")
	require.NoError(t, os.MkdirAll(root, 0o755))
	require.NoError(t, os.WriteFile(filepath.Join(root, "staging.yaml"), []byte("sitename: Staging\n"), 0o600))
	setTestConfig(t, config.Config{SiteRoot: root, Profile: "base", Format: "table", OverridesFile: "staging.yaml"})

	runCtx, err := prepareRun("")
	require.NoError(t, err)
	require.Len(t, runCtx.Overrides, 1)
	require.NotNil(t, runCtx.Overrides[0].SiteName)
	assert.Equal(t, "Staging", *runCtx.Overrides[0].SiteName)
}

func TestPrepareRun_FlagOverridesConfigFile(t *testing.T) {
	home := withTempHome(t)
	root := filepath.Join(home, "blog")
	require.NoError(t, os.MkdirAll(root, 0o755))
	require.NoError(t, os.WriteFile(filepath.Join(root, "a.yaml"), []byte("sitename: A\n"), 0o600))
	require.NoError(t, os.WriteFile(filepath.Join(root, "b.yaml"), []byte("sitename: B\n"), 0o600))
	setTestConfig(t, config.Config{SiteRoot: root, Profile: "base", Format: "table", OverridesFile: "a.yaml"})

	runCtx, err := prepareRun("b.yaml")
	require.NoError(t, err)
	require.Len(t, runCtx.Overrides, 1)
	assert.Equal(t, "B", *runCtx.Overrides[0].SiteName)
}

func TestPrepareRun_MissingOverridesFile(t *testing.T) {
	withTempHome(t)

	_, err := prepareRun("/nonexistent/overrides.yaml")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "read overrides")
}

func TestRunContext_OverrideKeys(t *testing.T) {
	rc := &RunContext{
		Config:    &config.Config{Profile: "base"},
		Overrides: []settings.Overrides{{SiteName: ptrTo("X"), SiteURL: ptrTo("https://x.example")}},
	}

	assert.Equal(t, []string{settings.KeySiteName, settings.KeySiteURL}, rc.overrideKeys(settings.ProfileBase))

	publishKeys := rc.overrideKeys(settings.ProfilePublish)
	assert.Contains(t, publishKeys, settings.KeySiteName)
	assert.Contains(t, publishKeys, settings.KeyDeleteOutputDirectory)
	assert.Equal(t, settings.KeySiteName, publishKeys[0])
}

func ptrTo[T any](v T) *T {
	return &v
}
