package maven

import (
	"encoding/xml"
	"fmt"
	"io"
)

// Metadata is a maven-metadata.xml document.
type Metadata struct {
	XMLName    xml.Name   `xml:"metadata"`
	GroupID    string     `xml:"groupId"`
	ArtifactID string     `xml:"artifactId"`
	Versioning Versioning `xml:"versioning"`
}

// Versioning is the versioning block of maven-metadata.xml.
type Versioning struct {
	Latest      string   `xml:"latest"`
	Release     string   `xml:"release"`
	Versions    []string `xml:"versions>version"`
	LastUpdated int64    `xml:"lastUpdated"`
}

// ParseMetadata decodes maven-metadata.xml.
func ParseMetadata(r io.Reader) (*Metadata, error) {
	var m Metadata
	if err := xml.NewDecoder(r).Decode(&m); err != nil {
		return nil, fmt.Errorf("failed to decode maven metadata: %w", err)
	}
	return &m, nil
}

// CandidateVersions returns the latest version followed by the listed
// versions, newest published first. Duplicates and blanks are dropped.
func (m *Metadata) CandidateVersions() []string {
	seen := make(map[string]bool, len(m.Versioning.Versions)+1)
	out := make([]string, 0, len(m.Versioning.Versions)+1)
	add := func(v string) {
		if v == "" || seen[v] {
			return
		}
		seen[v] = true
		out = append(out, v)
	}
	add(m.Versioning.Latest)
	for i := len(m.Versioning.Versions) - 1; i >= 0; i-- {
		add(m.Versioning.Versions[i])
	}
	return out
}
