//go:build integration

package main

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/glorpus-work/artifactswap/pkg/config"
	pkgerrors "github.com/glorpus-work/artifactswap/pkg/errors"
	"github.com/glorpus-work/artifactswap/pkg/model"
	"github.com/glorpus-work/artifactswap/test/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const group = "com.example.sandbags"

// executeCommand runs the root command with args and returns its stdout.
func executeCommand(t *testing.T, args ...string) (string, error) {
	t.Helper()
	oldStdout := os.Stdout
	r, w, err := os.Pipe()
	require.NoError(t, err)
	os.Stdout = w

	cmd := newRootCmd()
	cmd.SetArgs(args)
	runErr := cmd.ExecuteContext(context.Background())

	_ = w.Close()
	os.Stdout = oldStdout

	var buf bytes.Buffer
	_, _ = buf.ReadFrom(r)
	return buf.String(), runErr
}

// writeConfig saves a config pointing at baseURL and a fresh local repository.
func writeConfig(t *testing.T, baseURL string) (string, *config.Config) {
	t.Helper()
	dir := t.TempDir()
	cfg := config.DefaultConfig()
	cfg.Repository.BaseURL = baseURL
	cfg.Repository.PrimaryRepository = "sandbags"
	cfg.Repository.PublicRepository = "public"
	cfg.Repository.ArtifactGroup = group
	cfg.Repository.ProtosGroup = "com.example.protos"
	cfg.HTTP.Timeout = 5 * time.Second
	cfg.Paths.MavenLocal = filepath.Join(dir, "m2")
	cfg.Eventstream.Textfile = filepath.Join(dir, "textfile")
	cfg.Settings.LogLevel = "warn"

	path := filepath.Join(dir, "config.yaml")
	require.NoError(t, cfg.SaveConfig(path))
	return path, cfg
}

func TestVersionCommand(t *testing.T) {
	output, err := executeCommand(t, "version")
	require.NoError(t, err)
	assert.Contains(t, output, "artifactswap version")
}

func TestConfigCommands(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")

	_, err := executeCommand(t, "--config", path, "config", "init")
	require.NoError(t, err)
	require.FileExists(t, path)

	_, err = executeCommand(t, "--config", path, "config", "init")
	require.ErrorIs(t, err, pkgerrors.ErrConfigFileExists)

	_, err = executeCommand(t, "--config", path, "config", "set", "remover.boms_to_keep", "7")
	require.NoError(t, err)

	output, err := executeCommand(t, "--config", path, "config", "get", "remover.boms_to_keep")
	require.NoError(t, err)
	assert.Equal(t, "7", strings.TrimSpace(output))

	output, err = executeCommand(t, "--config", path, "config", "show")
	require.NoError(t, err)
	assert.Contains(t, output, "remover.boms_to_keep")
	assert.Contains(t, output, "repository.base_url")
}

func TestDownloadArtifactsCommand(t *testing.T) {
	server := testutil.NewMavenServer(t)
	path, cfg := writeConfig(t, server.URL())

	core := model.Artifact{GroupID: group, ArtifactID: "core", Version: "1.0.0", Repo: "sandbags"}
	bom := model.Artifact{GroupID: group, ArtifactID: "bom", Version: "b1", Repo: "sandbags"}
	server.AddFile(bom.RemotePath(model.FileTypePOM), testutil.BomPom(t, group, "b1", map[string]string{"core": "1.0.0"}))
	server.AddFile(core.RemotePath(model.FileTypePOM), []byte("<project/>"))
	server.AddFile(core.RemotePath(model.FileTypeJAR), []byte("jar"))

	gradleDir := t.TempDir()
	propsFile := filepath.Join(gradleDir, "gradle.properties")
	settingsFile := filepath.Join(gradleDir, "settings_modules_all.gradle")
	require.NoError(t, os.WriteFile(propsFile, []byte("square.protosGeneratedVersion=g1\nsquare.protosSchemaVersion=s1\n"), 0o644))
	require.NoError(t, os.WriteFile(settingsFile, []byte("include ':payments:api'\n"), 0o644))

	_, err := executeCommand(t, "--config", path, "download-artifacts",
		"--bom-version", "b1",
		"--gradle-properties-file", propsFile,
		"--settings-gradle-file", settingsFile)
	require.NoError(t, err)

	assert.FileExists(t, core.LocalPath(cfg.Paths.MavenLocal, model.FileTypePOM))
	assert.FileExists(t, core.LocalPath(cfg.Paths.MavenLocal, model.FileTypeJAR))
	assert.FileExists(t, bom.LocalPath(cfg.Paths.MavenLocal, model.FileTypePOM))

	prom, err := os.ReadFile(filepath.Join(cfg.Eventstream.Textfile, "artifactswap_artifact_sync_artifact_downloader.prom"))
	require.NoError(t, err)
	assert.Contains(t, string(prom), `result="SUCCESS"`)
}

func TestArtifactRemoverCommand(t *testing.T) {
	path, cfg := writeConfig(t, "http://127.0.0.1:1")
	root := cfg.Paths.MavenLocal

	now := time.Now()
	testutil.InstallBom(t, root, group, "b1", map[string]string{"core": "1.0.0"}, now.Add(-2*time.Hour))
	testutil.InstallBom(t, root, group, "b2", map[string]string{"core": "1.1.0"}, now.Add(-time.Hour))
	testutil.InstallProjectVersions(t, root, group, "core", 10, "1.0.0", "1.1.0")

	_, err := executeCommand(t, "--config", path, "artifact-remover", "--boms-to-keep", "1")
	require.NoError(t, err)

	coreDir := filepath.Join(root, filepath.FromSlash(model.GroupPath(group)), "core")
	assert.NoDirExists(t, filepath.Join(coreDir, "1.0.0"))
	assert.DirExists(t, filepath.Join(coreDir, "1.1.0"))
	assert.FileExists(t, filepath.Join(cfg.Eventstream.Textfile, "artifactswap_artifact_sync_artifact_remover.prom"))

	output, err := executeCommand(t, "--config", path, "repo-stats")
	require.NoError(t, err)
	assert.Contains(t, output, "BOMs:")
	assert.Contains(t, output, "10 B")
}

func TestArtifactRemoverRejectsNegativeKeep(t *testing.T) {
	path, cfg := writeConfig(t, "http://127.0.0.1:1")
	root := cfg.Paths.MavenLocal
	bomPath := testutil.InstallBom(t, root, group, "b1", nil, time.Now())

	_, err := executeCommand(t, "--config", path, "artifact-remover", "--boms-to-keep=-1")
	require.ErrorIs(t, err, pkgerrors.ErrNegativeBomsToKeep)
	assert.FileExists(t, bomPath)
}

func TestRepoStatsMissingRepository(t *testing.T) {
	path, _ := writeConfig(t, "http://127.0.0.1:1")

	_, err := executeCommand(t, "--config", path, "repo-stats", "--maven-local-path", filepath.Join(t.TempDir(), "missing"))
	require.ErrorIs(t, err, pkgerrors.ErrMavenRootNotExists)
}
