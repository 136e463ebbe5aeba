package maven

import (
	"bytes"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const bomPom = `<?xml version="1.0" encoding="UTF-8"?>
<project xmlns="http://maven.apache.org/POM/4.0.0" xmlns:xsi="http://www.w3.org/2001/XMLSchema-instance">
  <modelVersion>4.0.0</modelVersion>
  <groupId>com.example.sandbags</groupId>
  <artifactId>bom</artifactId>
  <version>abc123</version>
  <packaging>pom</packaging>
  <dependencyManagement>
    <dependencies>
      <dependency>
        <groupId>com.example.sandbags</groupId>
        <artifactId>app</artifactId>
        <version>1.0.0</version>
      </dependency>
      <dependency>
        <groupId>com.example.sandbags</groupId>
        <artifactId>feature_ui</artifactId>
        <version>2.0.0</version>
        <scope>import</scope>
      </dependency>
    </dependencies>
  </dependencyManagement>
</project>`

func TestParseProject(t *testing.T) {
	p, err := ParseProject(strings.NewReader(bomPom))
	require.NoError(t, err)

	assert.Equal(t, "com.example.sandbags", p.GroupID)
	assert.Equal(t, "bom", p.ArtifactID)
	assert.Equal(t, "abc123", p.Version)
	require.Len(t, p.DependencyManagement.Dependencies, 2)
	assert.Equal(t, Dependency{GroupID: "com.example.sandbags", ArtifactID: "feature_ui", Version: "2.0.0"},
		p.DependencyManagement.Dependencies[1])
}

func TestParseProject_Invalid(t *testing.T) {
	_, err := ParseProject(strings.NewReader("<project><groupId>"))
	assert.Error(t, err)
}

func TestProjectMarshalRoundTrip(t *testing.T) {
	p := &Project{
		GroupID:    "com.example.sandbags",
		ArtifactID: "bom",
		Version:    "v1",
		DependencyManagement: DependencyManagement{Dependencies: []Dependency{
			{GroupID: "com.example.sandbags", ArtifactID: "app", Version: "1"},
		}},
	}
	data, err := p.Marshal()
	require.NoError(t, err)
	assert.Contains(t, string(data), `xmlns="http://maven.apache.org/POM/4.0.0"`)
	assert.Contains(t, string(data), "<packaging>pom</packaging>")

	back, err := ParseProject(bytes.NewReader(data))
	require.NoError(t, err)
	assert.Equal(t, p.DependencyManagement, back.DependencyManagement)
	assert.Equal(t, "4.0.0", back.ModelVersion)
}

func TestMetadataCandidateVersions(t *testing.T) {
	doc := `<metadata>
  <groupId>com.example.sandbags</groupId>
  <artifactId>bom</artifactId>
  <versioning>
    <latest>c</latest>
    <release>c</release>
    <versions><version>a</version><version>b</version><version>c</version></versions>
    <lastUpdated>20240101120000</lastUpdated>
  </versioning>
</metadata>`
	m, err := ParseMetadata(strings.NewReader(doc))
	require.NoError(t, err)
	assert.Equal(t, int64(20240101120000), m.Versioning.LastUpdated)
	assert.Equal(t, []string{"c", "b", "a"}, m.CandidateVersions())

	empty := &Metadata{}
	assert.Empty(t, empty.CandidateVersions())
}

func TestProjectMarshal_DecodedNamespaceNotDuplicated(t *testing.T) {
	p, err := ParseProject(strings.NewReader(bomPom))
	require.NoError(t, err)

	data, err := p.Marshal()
	require.NoError(t, err)
	assert.Equal(t, 1, strings.Count(string(data), "xmlns="))

	back, err := ParseProject(bytes.NewReader(data))
	require.NoError(t, err)
	assert.Len(t, back.DependencyManagement.Dependencies, 2)
}
