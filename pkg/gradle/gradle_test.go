package gradle

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/glorpus-work/artifactswap/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeFile(t *testing.T, dir, name, content string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestPropertiesProvider(t *testing.T) {
	path := writeFile(t, t.TempDir(), "gradle.properties", `# generated
square.protosGeneratedVersion=20240101.1
square.protosSchemaVersion = 7.3.0
org.gradle.jvmargs=-Xmx4g -Dfile.encoding=${encoding}
`)

	props, err := LoadProperties(path)
	require.NoError(t, err)

	v, err := props.Get("square.protosGeneratedVersion")
	require.NoError(t, err)
	assert.Equal(t, "20240101.1", v)

	v, err = props.Get("square.protosSchemaVersion")
	require.NoError(t, err)
	assert.Equal(t, "7.3.0", v)

	v, err = props.Get("org.gradle.jvmargs")
	require.NoError(t, err)
	assert.Equal(t, "-Xmx4g -Dfile.encoding=${encoding}", v)

	_, err = props.Get("missing.key")
	require.ErrorIs(t, err, errors.ErrPropertyNotSet)
	assert.Contains(t, err.Error(), "missing.key")
}

func TestLoadPropertiesMissingFile(t *testing.T) {
	_, err := LoadProperties(filepath.Join(t.TempDir(), "gradle.properties"))
	require.Error(t, err)
}

func TestSettingsProjectsProvider(t *testing.T) {
	root := t.TempDir()
	settings := writeFile(t, root, "settings_modules_all.gradle", `
include ':app'
include(":feature:ui")
include ":common:utils"
  // include ':commented:out'
include ':tooling:idea-toolkit:public'
rootProject.name = 'register'
`)

	provider := NewSettingsProjectsProvider("", settings, []string{":tooling:idea-toolkit:public"})
	projects, err := provider.ProjectHashingInfos(context.Background())
	require.NoError(t, err)

	assert.Equal(t, []ProjectHashingInfo{
		{ProjectPath: ":app", ProjectDirectory: filepath.Join(root, "app")},
		{ProjectPath: ":feature:ui", ProjectDirectory: filepath.Join(root, "feature", "ui")},
		{ProjectPath: ":common:utils", ProjectDirectory: filepath.Join(root, "common", "utils")},
	}, projects)
}

func TestSettingsProjectsProviderRootDir(t *testing.T) {
	settings := writeFile(t, t.TempDir(), "settings.gradle", "include ':lib'\n")

	projects, err := NewSettingsProjectsProvider("/src/register", settings, nil).ProjectHashingInfos(context.Background())
	require.NoError(t, err)
	require.Len(t, projects, 1)
	assert.Equal(t, filepath.Join("/src/register", "lib"), projects[0].ProjectDirectory)
}

func TestSettingsProjectsProviderMissingFile(t *testing.T) {
	provider := NewSettingsProjectsProvider("", filepath.Join(t.TempDir(), "settings.gradle"), nil)
	_, err := provider.ProjectHashingInfos(context.Background())
	require.ErrorIs(t, err, errors.ErrProjectsUnavailable)
}
