package cmd

import (
	"os"
	"path/filepath"
	"testing"

	"blogconf/internal/config"
	"blogconf/internal/settings"
	"blogconf/internal/snapshot"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestExport_WritesBothPythonModules(t *testing.T) {
	home := withTempHome(t)
	withFixedNow(t)
	root := filepath.Join(home, "blog")
	require.NoError(t, os.MkdirAll(root, 0o755))
	setTestConfig(t, config.Config{SiteRoot: root, Profile: "base", Format: "table"})

	out, err := executeCommand(t, newExportCmd())
	require.NoError(t, err)
	assert.Contains(t, out, "wrote "+filepath.Join(root, "pelicanconf.py"))
	assert.Contains(t, out, "wrote "+filepath.Join(root, "publishconf.py"))

	data, err := os.ReadFile(filepath.Join(root, "publishconf.py"))
	require.NoError(t, err)
	assert.Contains(t, string(data), "SITEURL = \"https://alone-djangonaut.com\"\n")
	assert.Contains(t, string(data), "COPYRIGHT_YEAR = 2026\n")
	assert.NotContains(t, string(data), "from pelicanconf import")
}

func TestExport_RecordsSnapshot(t *testing.T) {
	home := withTempHome(t)
	withFixedNow(t)
	root := filepath.Join(home, "blog")
	require.NoError(t, os.MkdirAll(root, 0o755))
	setTestConfig(t, config.Config{SiteRoot: root, Profile: "base", Format: "table"})

	_, err := executeCommand(t, newExportCmd(), "-p", "publish")
	require.NoError(t, err)

	entry, err := snapshot.Load(snapshot.Key{SiteRoot: root, Profile: "publish", Format: "py"})
	require.NoError(t, err)

	s, err := settings.Resolve(settings.ProfilePublish, testNow)
	require.NoError(t, err)
	assert.Equal(t, settings.Digest(s), entry.Digest)
	assert.Equal(t, filepath.Join(root, "publishconf.py"), entry.OutputPath)

	_, err = os.Stat(filepath.Join(root, "pelicanconf.py"))
	assert.True(t, os.IsNotExist(err))
}

func TestExport_YAMLIntoOutputDir(t *testing.T) {
	home := withTempHome(t)
	withFixedNow(t)
	root := filepath.Join(home, "blog")
	require.NoError(t, os.MkdirAll(root, 0o755))
	setTestConfig(t, config.Config{SiteRoot: root, Profile: "base", Format: "table"})

	_, err := executeCommand(t, newExportCmd(), "-f", "yaml", "-o", "build", "-p", "base", "-p", "dev")
	require.NoError(t, err)

	assert.FileExists(t, filepath.Join(root, "build", "base.yaml"))
	assert.NoFileExists(t, filepath.Join(root, "build", "publish.yaml"))
}

func TestExport_InvalidSettingsRefused(t *testing.T) {
	home := withTempHome(t)
	withFixedNow(t)
	root := filepath.Join(home, "blog")
	require.NoError(t, os.MkdirAll(root, 0o755))
	require.NoError(t, os.WriteFile(filepath.Join(root, "bad.yaml"), []byte("default_pagination: 0\n"), 0o600))
	setTestConfig(t, config.Config{SiteRoot: root, Profile: "base", Format: "table"})

	_, err := executeCommand(t, newExportCmd(), "--overrides", "bad.yaml")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "DEFAULT_PAGINATION: must be > 0")
	assert.NoFileExists(t, filepath.Join(root, "pelicanconf.py"))

	out, err := executeCommand(t, newExportCmd(), "--overrides", "bad.yaml", "--force")
	require.NoError(t, err)
	assert.Contains(t, out, "writing anyway")
	assert.FileExists(t, filepath.Join(root, "pelicanconf.py"))
}

func TestExport_UnsupportedFormat(t *testing.T) {
	withTempHome(t)

	_, err := executeCommand(t, newExportCmd(), "-f", "ini")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "unsupported format")
}

func TestExportProfiles_DefaultsAndDedup(t *testing.T) {
	profiles, err := exportProfiles(nil)
	require.NoError(t, err)
	assert.Equal(t, settings.Profiles(), profiles)

	profiles, err = exportProfiles([]string{"publish", "prod", "base"})
	require.NoError(t, err)
	assert.Equal(t, []settings.Profile{settings.ProfilePublish, settings.ProfileBase}, profiles)
}

func TestNewExportProgressBar_SingleFileHasNoBar(t *testing.T) {
	assert.Nil(t, newExportProgressBar(1))
}
