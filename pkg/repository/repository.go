// Package repository talks to the remote Maven repository artifacts are
// published to and installs what it downloads into the local repository.
package repository

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"slices"
	"strings"
	"sync"
	"time"

	"github.com/glorpus-work/artifactswap/pkg/archive"
	"github.com/glorpus-work/artifactswap/pkg/errors"
	"github.com/glorpus-work/artifactswap/pkg/fsutil"
	mavenhttp "github.com/glorpus-work/artifactswap/pkg/http"
	"github.com/glorpus-work/artifactswap/pkg/logger"
	"github.com/glorpus-work/artifactswap/pkg/maven"
	"github.com/glorpus-work/artifactswap/pkg/model"
	"github.com/google/uuid"
	"github.com/hashicorp/go-multierror"
	lru "github.com/hashicorp/golang-lru/v2"
	"github.com/sirupsen/logrus"
	"golang.org/x/sync/errgroup"
)

// BomArtifactID is the artifact id BOM snapshots are published under.
const BomArtifactID = "bom"

const defaultBomCacheSize = 16

// ArchiveVerifier checks a payload before it is installed.
type ArchiveVerifier interface {
	Verify(ctx context.Context, name string, data []byte) error
}

// Options configures a Remote.
type Options struct {
	// MavenRoot is the local repository files are installed into.
	MavenRoot string
	// PrimaryRepository is the repository segment BOMs and artifacts are fetched from.
	PrimaryRepository string
	// ArtifactGroup is the group id BOMs are published under.
	ArtifactGroup string
	// BomCacheSize bounds the number of BOMs kept in memory. Zero means the default.
	BomCacheSize int
	// Verifier, if set, is run over jar and aar payloads before they are installed.
	Verifier ArchiveVerifier
}

// Remote is the artifact repository backed by a remote Maven repository.
type Remote struct {
	client mavenhttp.Client
	opts   Options
	temps  *TempFileTracker
	boms   *lru.Cache[string, []model.Artifact]
}

// NewRemote creates a remote repository. temps records the staging files
// created while installing.
func NewRemote(client mavenhttp.Client, opts Options, temps *TempFileTracker) (*Remote, error) {
	size := opts.BomCacheSize
	if size <= 0 {
		size = defaultBomCacheSize
	}
	boms, err := lru.New[string, []model.Artifact](size)
	if err != nil {
		return nil, Wrap(err, "failed to create bom cache")
	}
	if temps == nil {
		temps = NewTempFileTracker()
	}
	return &Remote{client: client, opts: opts, temps: temps, boms: boms}, nil
}

// Bom returns the coordinates of a BOM version in the primary repository.
func (r *Remote) Bom(bomVersion string) model.Artifact {
	return model.Artifact{
		GroupID:    r.opts.ArtifactGroup,
		ArtifactID: BomArtifactID,
		Version:    bomVersion,
		Repo:       r.opts.PrimaryRepository,
	}
}

// ArtifactsInBom fetches a BOM and returns the artifacts it manages. A BOM
// that is not installed locally yet is cached into the local repository.
func (r *Remote) ArtifactsInBom(ctx context.Context, bomVersion string) ([]model.Artifact, error) {
	if cached, ok := r.boms.Get(bomVersion); ok {
		return slices.Clone(cached), nil
	}

	bom := r.Bom(bomVersion)
	resp, err := r.client.Get(ctx, bom.RemotePath(model.FileTypePOM))
	if err != nil {
		return nil, Wrapf(err, "failed to fetch bom %s", bomVersion)
	}
	if !resp.IsSuccess() {
		return nil, Wrapf(errors.ErrBomNotFound, "bom %s: status %d", bomVersion, resp.StatusCode)
	}
	if len(resp.Body) == 0 {
		return nil, Wrapf(errors.ErrBomEmpty, "bom %s", bomVersion)
	}

	project, err := maven.ParseProject(bytes.NewReader(resp.Body))
	if err != nil {
		return nil, Wrapf(err, "bom %s", bomVersion)
	}

	artifacts := make([]model.Artifact, 0, len(project.DependencyManagement.Dependencies))
	for _, dep := range project.DependencyManagement.Dependencies {
		groupID := dep.GroupID
		if groupID == "" {
			groupID = r.opts.ArtifactGroup
		}
		artifacts = append(artifacts, model.Artifact{
			GroupID:    groupID,
			ArtifactID: dep.ArtifactID,
			Version:    dep.Version,
			Repo:       r.opts.PrimaryRepository,
		})
	}
	logger.Debug("Fetched bom", logrus.Fields{
		"bom_version": bomVersion,
		"artifacts":   len(artifacts),
		"duration_ms": resp.Duration.Milliseconds(),
	})

	if r.LocalArtifactState(bom, model.FileTypePOM) == model.NotInstalled {
		if err := r.writeFile(ctx, bom.LocalPath(r.opts.MavenRoot, model.FileTypePOM), resp.Body); err != nil {
			logger.Warn("Failed to cache bom locally", logrus.Fields{
				"bom_version": bomVersion,
				"error":       err,
			})
		}
	}

	r.boms.Add(bomVersion, artifacts)
	return slices.Clone(artifacts), nil
}

// DownloadArtifactFile fetches one file of an artifact. Failures are
// reported through the result, never as an error.
func (r *Remote) DownloadArtifactFile(ctx context.Context, a model.Artifact, fileType model.DownloadFileType) model.DownloadedArtifactFileResult {
	file := model.ArtifactFile{Artifact: a, FileType: fileType}
	start := time.Now()

	resp, err := r.client.Get(ctx, a.RemotePath(fileType))
	if err != nil {
		logger.Debug("Download failed", logrus.Fields{"artifact": a.String(), "file_type": fileType.String(), "error": err})
		return model.DownloadFailure{ArtifactFile: file, Err: err, Duration: time.Since(start)}
	}

	switch {
	case resp.IsSuccess():
		return model.DownloadSuccess{
			ArtifactFile: file,
			Contents:     resp.Body,
			SizeBytes:    int64(len(resp.Body)),
			Duration:     time.Since(start),
		}
	case resp.IsClientError():
		return model.NoFileExists{ArtifactFile: file}
	default:
		logger.Debug("Download failed", logrus.Fields{"artifact": a.String(), "file_type": fileType.String(), "status": resp.StatusCode})
		return model.DownloadFailure{
			ArtifactFile: file,
			Err:          errors.Wrapf(errors.ErrUnexpectedStatus, "%d for %s", resp.StatusCode, a.FileName(fileType)),
			Duration:     time.Since(start),
		}
	}
}

// LocalArtifactState reports whether a file of the artifact is present in
// the local repository. An aar counts as present when the jar of the same
// name exists and the other way around.
func (r *Remote) LocalArtifactState(a model.Artifact, fileType model.DownloadFileType) model.LocalArtifactState {
	path := a.LocalPath(r.opts.MavenRoot, fileType)
	if fsutil.Exists(path) {
		return model.Installed
	}
	if sibling, ok := substitute(path); ok && fsutil.Exists(sibling) {
		return model.Installed
	}
	return model.NotInstalled
}

func substitute(path string) (string, bool) {
	switch {
	case strings.HasSuffix(path, ".aar"):
		return strings.TrimSuffix(path, ".aar") + ".jar", true
	case strings.HasSuffix(path, ".jar"):
		return strings.TrimSuffix(path, ".jar") + ".aar", true
	default:
		return "", false
	}
}

// InstallDownloadedArtifactFiles writes the successfully downloaded files of
// one artifact into the local repository. Files are written concurrently and
// files written before a failure are kept.
func (r *Remote) InstallDownloadedArtifactFiles(ctx context.Context, results []model.DownloadedArtifactFileResult) model.InstallArtifactFilesResult {
	var files []model.DownloadSuccess
	for _, res := range results {
		if s, ok := res.(model.DownloadSuccess); ok {
			files = append(files, s)
		}
	}
	if len(files) == 0 {
		return model.InstallNoOp{}
	}

	start := time.Now()
	var (
		mu   sync.Mutex
		merr *multierror.Error
		g    errgroup.Group
	)
	for _, f := range files {
		g.Go(func() error {
			dst := f.Artifact.LocalPath(r.opts.MavenRoot, f.FileType)
			if err := r.writeFile(ctx, dst, f.Contents); err != nil {
				mu.Lock()
				merr = multierror.Append(merr, err)
				mu.Unlock()
			}
			return nil
		})
	}
	_ = g.Wait()
	duration := time.Since(start)

	if err := merr.ErrorOrNil(); err != nil {
		logger.Warn("Failed to install artifact files", logrus.Fields{
			"artifact":    files[0].Artifact.String(),
			"failed":      len(merr.Errors),
			"files":       len(files),
			"duration_ms": duration.Milliseconds(),
			"error":       err,
		})
		return model.InstallFailure{Duration: duration, Err: err}
	}
	logger.Debug("Installed artifact files", logrus.Fields{
		"artifact":    files[0].Artifact.String(),
		"files":       len(files),
		"duration_ms": duration.Milliseconds(),
	})
	return model.InstallSuccess{Duration: duration}
}

// writeFile stages data next to dst under a random name and renames it into place.
func (r *Remote) writeFile(ctx context.Context, dst string, data []byte) error {
	if r.opts.Verifier != nil && archive.IsArchiveName(dst) {
		if err := r.opts.Verifier.Verify(ctx, filepath.Base(dst), data); err != nil {
			return err
		}
	}
	if err := fsutil.EnsureFileDir(dst); err != nil {
		return err
	}

	tmp := filepath.Join(filepath.Dir(dst), "."+uuid.NewString()+".tmp")
	r.temps.Track(tmp)
	if err := os.WriteFile(tmp, data, fsutil.FileModeDefault); err != nil {
		return Wrapf(err, "failed to write %s", tmp)
	}
	if err := fsutil.Replace(tmp, dst); err != nil {
		return err
	}
	r.temps.Forget(tmp)
	return nil
}
