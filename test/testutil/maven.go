package testutil

import (
	"encoding/xml"
	"maps"
	"os"
	"path/filepath"
	"slices"
	"testing"
	"time"

	"github.com/glorpus-work/artifactswap/pkg/maven"
	"github.com/glorpus-work/artifactswap/pkg/model"
	"github.com/stretchr/testify/require"
)

// BomPom renders a BOM whose managed dependencies are artifactID -> version.
func BomPom(t *testing.T, group, bomVersion string, deps map[string]string) []byte {
	t.Helper()
	project := &maven.Project{
		GroupID:    group,
		ArtifactID: "bom",
		Version:    bomVersion,
		Packaging:  "pom",
	}
	for _, id := range slices.Sorted(maps.Keys(deps)) {
		project.DependencyManagement.Dependencies = append(project.DependencyManagement.Dependencies, maven.Dependency{
			GroupID:    group,
			ArtifactID: id,
			Version:    deps[id],
		})
	}
	data, err := project.Marshal()
	require.NoError(t, err)
	return data
}

// MetadataXML renders a maven-metadata.xml document.
func MetadataXML(t *testing.T, group, artifactID, latest string, versions ...string) []byte {
	t.Helper()
	m := maven.Metadata{GroupID: group, ArtifactID: artifactID}
	m.Versioning.Latest = latest
	m.Versioning.Versions = versions
	data, err := xml.MarshalIndent(m, "", "  ")
	require.NoError(t, err)
	return append([]byte(xml.Header), data...)
}

// InstallBom writes a BOM into a local Maven repository and sets the
// modification time of its version directory.
func InstallBom(t *testing.T, mavenRoot, group, bomVersion string, deps map[string]string, modTime time.Time) string {
	t.Helper()
	dir := filepath.Join(mavenRoot, filepath.FromSlash(model.GroupPath(group)), "bom", bomVersion)
	require.NoError(t, os.MkdirAll(dir, 0o755))
	pomPath := filepath.Join(dir, "bom-"+bomVersion+".pom")
	require.NoError(t, os.WriteFile(pomPath, BomPom(t, group, bomVersion, deps), 0o644))
	require.NoError(t, os.Chtimes(pomPath, modTime, modTime))
	require.NoError(t, os.Chtimes(dir, modTime, modTime))
	return pomPath
}

// InstallArtifact writes the given file types of an artifact into a local
// Maven repository. Each file contains content.
func InstallArtifact(t *testing.T, mavenRoot string, a model.Artifact, content []byte, fileTypes ...model.DownloadFileType) {
	t.Helper()
	for _, ft := range fileTypes {
		path := a.LocalPath(mavenRoot, ft)
		require.NoError(t, os.MkdirAll(filepath.Dir(path), 0o755))
		require.NoError(t, os.WriteFile(path, content, 0o644))
	}
}

// InstallProjectVersions creates version directories for a project, each holding one jar of size bytes.
func InstallProjectVersions(t *testing.T, mavenRoot, group, artifactID string, size int, versions ...string) {
	t.Helper()
	for _, v := range versions {
		a := model.Artifact{GroupID: group, ArtifactID: artifactID, Version: v}
		InstallArtifact(t, mavenRoot, a, make([]byte, size), model.FileTypeJAR)
	}
}
