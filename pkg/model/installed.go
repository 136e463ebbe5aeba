package model

import (
	"maps"
	"slices"
	"strings"
	"time"
)

// VersionSet is an unordered set of version strings.
type VersionSet map[string]struct{}

// NewVersionSet returns a set holding versions.
func NewVersionSet(versions ...string) VersionSet {
	s := make(VersionSet, len(versions))
	for _, v := range versions {
		s[v] = struct{}{}
	}
	return s
}

// Has reports whether v is in the set.
func (s VersionSet) Has(v string) bool {
	_, ok := s[v]
	return ok
}

// Minus returns the versions of s that are not in other.
func (s VersionSet) Minus(other VersionSet) VersionSet {
	out := make(VersionSet)
	for v := range s {
		if !other.Has(v) {
			out[v] = struct{}{}
		}
	}
	return out
}

// Sorted returns the versions in lexical order.
func (s VersionSet) Sorted() []string {
	return slices.Sorted(maps.Keys(s))
}

// ProjectPathFromArtifactID maps a published artifact id back to the Gradle
// project path it was built from: "feature_ui" becomes ":feature:ui".
func ProjectPathFromArtifactID(artifactID string) string {
	return ":" + strings.ReplaceAll(artifactID, "_", ":")
}

// InstalledProject is one project directory of the local repository, or one
// project declared by a BOM.
type InstalledProject struct {
	ProjectPath    string
	RepositoryPath string
	Versions       VersionSet
}

// OnlyVersions returns a copy of p restricted to versions.
func (p InstalledProject) OnlyVersions(versions VersionSet) InstalledProject {
	p.Versions = maps.Clone(versions)
	return p
}

// InstalledBom is a BOM snapshot found in the local repository.
// RepositoryPath points at the BOM's POM file. InstalledProjects lists what
// the BOM declares, which may differ from what is on disk.
type InstalledBom struct {
	Version           string
	RepositoryPath    string
	InstalledProjects []InstalledProject
}

// ArtifactsAndVersions maps each declared project path to its version.
func (b InstalledBom) ArtifactsAndVersions() map[string]string {
	out := make(map[string]string, len(b.InstalledProjects))
	for _, p := range b.InstalledProjects {
		for v := range p.Versions {
			out[p.ProjectPath] = v
			break
		}
	}
	return out
}

// RepositoryStats is a point-in-time measurement of the local repository.
// Counts and sizes are Unknown and durations are negative until measured.
type RepositoryStats struct {
	CountInstalledProjects                int64
	CountInstalledArtifacts               int64
	CountInstalledBoms                    int64
	SizeOfInstalledArtifactsBytes         int64
	SizeOfInstalledBomsBytes              int64
	OverallRepoSizeBytes                  int64
	InstalledArtifactsMeasurementDuration time.Duration
	InstalledBomsMeasurementDuration      time.Duration
	MeasurementDuration                   time.Duration
}

// NewRepositoryStats returns stats with every field unknown.
func NewRepositoryStats() RepositoryStats {
	return RepositoryStats{
		CountInstalledProjects:                Unknown,
		CountInstalledArtifacts:               Unknown,
		CountInstalledBoms:                    Unknown,
		SizeOfInstalledArtifactsBytes:         Unknown,
		SizeOfInstalledBomsBytes:              Unknown,
		OverallRepoSizeBytes:                  Unknown,
		InstalledArtifactsMeasurementDuration: -1,
		InstalledBomsMeasurementDuration:      -1,
		MeasurementDuration:                   -1,
	}
}
