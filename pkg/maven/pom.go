// Package maven holds the XML documents exchanged with a Maven repository:
// the project object model of a BOM and maven-metadata.xml.
package maven

import (
	"bytes"
	"encoding/xml"
	"fmt"
	"io"
)

const (
	pomNamespace    = "http://maven.apache.org/POM/4.0.0"
	pomModelVersion = "4.0.0"
)

// Project is the subset of a POM that a BOM carries.
type Project struct {
	XMLName              xml.Name             `xml:"project"`
	Xmlns                string               `xml:"xmlns,attr,omitempty"`
	ModelVersion         string               `xml:"modelVersion,omitempty"`
	GroupID              string               `xml:"groupId"`
	ArtifactID           string               `xml:"artifactId"`
	Version              string               `xml:"version"`
	Name                 string               `xml:"name,omitempty"`
	Packaging            string               `xml:"packaging,omitempty"`
	DependencyManagement DependencyManagement `xml:"dependencyManagement"`
}

// DependencyManagement lists the managed dependencies of a BOM.
type DependencyManagement struct {
	Dependencies []Dependency `xml:"dependencies>dependency"`
}

// Dependency is one managed dependency.
type Dependency struct {
	GroupID    string `xml:"groupId"`
	ArtifactID string `xml:"artifactId"`
	Version    string `xml:"version"`
}

// ParseProject decodes a POM. Unknown elements are ignored.
func ParseProject(r io.Reader) (*Project, error) {
	var p Project
	if err := xml.NewDecoder(r).Decode(&p); err != nil {
		return nil, fmt.Errorf("failed to decode pom: %w", err)
	}
	return &p, nil
}

// Marshal encodes the project as an indented POM document.
func (p *Project) Marshal() ([]byte, error) {
	out := *p
	out.XMLName = xml.Name{}
	if out.Xmlns == "" {
		out.Xmlns = pomNamespace
	}
	if out.ModelVersion == "" {
		out.ModelVersion = pomModelVersion
	}
	if out.Packaging == "" {
		out.Packaging = "pom"
	}

	var buf bytes.Buffer
	buf.WriteString(xml.Header)
	enc := xml.NewEncoder(&buf)
	enc.Indent("", "  ")
	if err := enc.Encode(out); err != nil {
		return nil, fmt.Errorf("failed to encode pom: %w", err)
	}
	buf.WriteByte('\n')
	return buf.Bytes(), nil
}
