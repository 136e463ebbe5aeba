package model

import (
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestArtifactPaths(t *testing.T) {
	a := Artifact{GroupID: "com.example.sandbags", ArtifactID: "feature_ui", Version: "abc123", Repo: "sandbags"}

	tests := []struct {
		fileType   DownloadFileType
		wantName   string
		wantRemote string
	}{
		{FileTypePOM, "feature_ui-abc123.pom", "sandbags/com/example/sandbags/feature_ui/abc123/feature_ui-abc123.pom"},
		{FileTypeAAR, "feature_ui-abc123.aar", "sandbags/com/example/sandbags/feature_ui/abc123/feature_ui-abc123.aar"},
		{FileTypeSourcesJAR, "feature_ui-abc123-sources.jar", "sandbags/com/example/sandbags/feature_ui/abc123/feature_ui-abc123-sources.jar"},
	}
	for _, tt := range tests {
		t.Run(tt.fileType.String(), func(t *testing.T) {
			assert.Equal(t, tt.wantName, a.FileName(tt.fileType))
			assert.Equal(t, tt.wantRemote, a.RemotePath(tt.fileType))
		})
	}

	root := filepath.Join("m2", "repository")
	assert.Equal(t,
		filepath.Join(root, "com", "example", "sandbags", "feature_ui", "abc123", "feature_ui-abc123.module"),
		a.LocalPath(root, FileTypeModule))
	assert.Equal(t, "com.example.sandbags:feature_ui:abc123", a.Key())
	assert.Equal(t, "com.example.sandbags:feature_ui:abc123@sandbags", a.String())
}

func TestDownloadFileTypes(t *testing.T) {
	types := AllFileTypes()
	assert.Len(t, types, 5)
	suffixes := make([]string, 0, len(types))
	for _, ft := range types {
		suffixes = append(suffixes, ft.Suffix())
	}
	assert.Equal(t, []string{".pom", ".aar", ".jar", ".module", "-sources.jar"}, suffixes)
	assert.Equal(t, "UNKNOWN", DownloadFileType(42).String())
	assert.Equal(t, "", DownloadFileType(-1).Suffix())
}

func TestVersionSet(t *testing.T) {
	installed := NewVersionSet("1.0.0", "1.1.0", "0.9.0")
	keep := NewVersionSet("1.0.0", "1.1.0")

	assert.True(t, installed.Has("0.9.0"))
	assert.Equal(t, []string{"0.9.0"}, installed.Minus(keep).Sorted())
	assert.Empty(t, keep.Minus(installed))
	assert.Equal(t, []string{"0.9.0", "1.0.0", "1.1.0"}, installed.Sorted())
}

func TestInstalledProjectOnlyVersions(t *testing.T) {
	p := InstalledProject{ProjectPath: ":app", RepositoryPath: "/m2/app", Versions: NewVersionSet("1", "2", "3")}
	only := p.OnlyVersions(NewVersionSet("2"))

	assert.Equal(t, []string{"2"}, only.Versions.Sorted())
	assert.Equal(t, ":app", only.ProjectPath)
	assert.Len(t, p.Versions, 3, "original must be untouched")
}

func TestProjectPathFromArtifactID(t *testing.T) {
	assert.Equal(t, ":app", ProjectPathFromArtifactID("app"))
	assert.Equal(t, ":feature:ui:public", ProjectPathFromArtifactID("feature_ui_public"))
}

func TestInstalledBomArtifactsAndVersions(t *testing.T) {
	bom := InstalledBom{
		Version: "b1",
		InstalledProjects: []InstalledProject{
			{ProjectPath: ":app", Versions: NewVersionSet("1.0.0")},
			{ProjectPath: ":lib", Versions: NewVersionSet("2.0.0")},
		},
	}
	assert.Equal(t, map[string]string{":app": "1.0.0", ":lib": "2.0.0"}, bom.ArtifactsAndVersions())
}

func TestMillisIfFinite(t *testing.T) {
	assert.Equal(t, int64(-1), MillisIfFinite(InfiniteDuration))
	assert.Equal(t, int64(-1), MillisIfFinite(-1))
	assert.Equal(t, int64(1500), MillisIfFinite(1500*time.Millisecond))
}

func TestNewRepositoryStatsUnknown(t *testing.T) {
	s := NewRepositoryStats()
	assert.Equal(t, Unknown, s.CountInstalledBoms)
	assert.Equal(t, Unknown, s.OverallRepoSizeBytes)
	assert.Equal(t, int64(-1), MillisIfFinite(s.MeasurementDuration))
}
