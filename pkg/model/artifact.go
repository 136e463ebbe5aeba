// Package model provides the value types shared by the download pipeline and
// the local cache collector: artifact coordinates, file types, result unions
// and local inventory records.
package model

import (
	"fmt"
	"path"
	"path/filepath"
	"strings"
)

// Artifact identifies one published build output by its Maven coordinates.
// Repo names the remote repository segment the artifact is served from and
// is not part of its identity.
type Artifact struct {
	GroupID    string `json:"group_id"`
	ArtifactID string `json:"artifact_id"`
	Version    string `json:"version"`
	Repo       string `json:"repo,omitempty"`
}

// Key returns the identity triple of the artifact.
func (a Artifact) Key() string {
	return a.GroupID + ":" + a.ArtifactID + ":" + a.Version
}

func (a Artifact) String() string {
	if a.Repo == "" {
		return a.Key()
	}
	return fmt.Sprintf("%s@%s", a.Key(), a.Repo)
}

// GroupPath returns the group id with dots turned into URL path separators.
func GroupPath(groupID string) string {
	return strings.ReplaceAll(groupID, ".", "/")
}

// FileName returns the file name of one of the artifact's files.
func (a Artifact) FileName(fileType DownloadFileType) string {
	return a.ArtifactID + "-" + a.Version + fileType.Suffix()
}

// RemotePath returns the path of the file relative to the repository base
// URL: {repo}/{groupPath}/{artifact}/{version}/{artifact}-{version}{suffix}.
func (a Artifact) RemotePath(fileType DownloadFileType) string {
	return path.Join(a.Repo, GroupPath(a.GroupID), a.ArtifactID, a.Version, a.FileName(fileType))
}

// LocalDir returns the version directory of the artifact under a Maven root.
func (a Artifact) LocalDir(mavenRoot string) string {
	groupDir := filepath.FromSlash(GroupPath(a.GroupID))
	return filepath.Join(mavenRoot, groupDir, a.ArtifactID, a.Version)
}

// LocalPath returns the expected location of the file under a Maven root.
func (a Artifact) LocalPath(mavenRoot string, fileType DownloadFileType) string {
	return filepath.Join(a.LocalDir(mavenRoot), a.FileName(fileType))
}
