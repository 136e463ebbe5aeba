// Package archive checks that downloaded jar and aar files are readable archives
// before they replace anything in the local repository.
package archive

import (
	"bytes"
	"context"
	"io"
	"io/fs"
	"path/filepath"
	"strings"

	"github.com/glorpus-work/artifactswap/pkg/errors"
	"github.com/mholt/archives"
)

// Manager verifies archive payloads.
type Manager struct{}

// NewManager creates a new Manager instance.
func NewManager() *Manager {
	return &Manager{}
}

// IsArchiveName reports whether name is a file type that is expected to be a zip archive.
func IsArchiveName(name string) bool {
	switch strings.ToLower(filepath.Ext(name)) {
	case ".jar", ".aar":
		return true
	default:
		return false
	}
}

// Verify identifies data as an archive and walks every entry of it. name is
// only used as a hint for format detection and in errors.
func (am *Manager) Verify(ctx context.Context, name string, data []byte) error {
	format, _, err := archives.Identify(ctx, name, bytes.NewReader(data))
	if err != nil {
		return errors.Wrapf(errors.ErrInvalidArchive, "%s: %v", name, err)
	}
	archival, ok := format.(archives.Archival)
	if !ok {
		return errors.Wrapf(errors.ErrInvalidArchive, "%s: %s is not an archive format", name, format.Extension())
	}

	fsys := &archives.ArchiveFS{
		Stream:  io.NewSectionReader(bytes.NewReader(data), 0, int64(len(data))),
		Format:  archival,
		Context: ctx,
	}

	entries := 0
	err = fs.WalkDir(fsys, ".", func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if path != "." {
			entries++
		}
		return nil
	})
	if err != nil {
		return errors.Wrapf(errors.ErrInvalidArchive, "%s: %v", name, err)
	}
	if entries == 0 {
		return errors.Wrapf(errors.ErrInvalidArchive, "%s: archive is empty", name)
	}
	return nil
}
