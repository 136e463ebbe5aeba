package repository

import (
	"bytes"
	"context"
	stderrors "errors"
	"fmt"
	"path"

	"github.com/glorpus-work/artifactswap/pkg/cache"
	"github.com/glorpus-work/artifactswap/pkg/errors"
	mavenhttp "github.com/glorpus-work/artifactswap/pkg/http"
	"github.com/glorpus-work/artifactswap/pkg/logger"
	"github.com/glorpus-work/artifactswap/pkg/maven"
	"github.com/glorpus-work/artifactswap/pkg/model"
	"github.com/sirupsen/logrus"
)

const metadataFile = "maven-metadata.xml"

// MetadataBomVersionFinder picks the BOM version to sync against from the
// BOM's maven-metadata.xml.
type MetadataBomVersionFinder struct {
	client mavenhttp.Client
	opts   Options
	local  *cache.LocalRepository
}

// NewMetadataBomVersionFinder creates a finder. Only MavenRoot,
// PrimaryRepository and ArtifactGroup of opts are used.
func NewMetadataBomVersionFinder(client mavenhttp.Client, opts Options) *MetadataBomVersionFinder {
	return &MetadataBomVersionFinder{
		client: client,
		opts:   opts,
		local:  cache.NewLocalRepository(opts.MavenRoot, opts.ArtifactGroup),
	}
}

// FindBestBomVersion returns the newest published BOM version whose POM is
// either installed locally and parses or present remotely.
func (f *MetadataBomVersionFinder) FindBestBomVersion(ctx context.Context) (string, error) {
	metadataPath := path.Join(f.opts.PrimaryRepository, model.GroupPath(f.opts.ArtifactGroup), BomArtifactID, metadataFile)
	resp, err := f.client.Get(ctx, metadataPath)
	if err != nil {
		return "", fmt.Errorf("repository: %s: %w: %w", metadataPath, ErrMetadataUnavailable, err)
	}
	if !resp.IsSuccess() {
		return "", Wrapf(ErrMetadataUnavailable, "%s: status %d", metadataPath, resp.StatusCode)
	}
	metadata, err := maven.ParseMetadata(bytes.NewReader(resp.Body))
	if err != nil {
		return "", fmt.Errorf("repository: %s: %w: %w", metadataPath, ErrMetadataUnavailable, err)
	}

	candidates := metadata.CandidateVersions()
	for _, v := range candidates {
		if err := ctx.Err(); err != nil {
			return "", err
		}
		bom := model.Artifact{
			GroupID:    f.opts.ArtifactGroup,
			ArtifactID: BomArtifactID,
			Version:    v,
			Repo:       f.opts.PrimaryRepository,
		}
		_, err := f.local.InstalledBom(v)
		switch {
		case err == nil:
			logger.Debug("Using locally installed bom", logrus.Fields{"bom_version": v})
			return v, nil
		case !stderrors.Is(err, cache.ErrBomNotInstalled):
			logger.Debug("Ignoring unreadable local bom", logrus.Fields{"bom_version": v, "error": err})
		}
		head, err := f.client.Head(ctx, bom.RemotePath(model.FileTypePOM))
		if err != nil {
			logger.Debug("Bom lookup failed", logrus.Fields{"bom_version": v, "error": err})
			continue
		}
		if head.IsSuccess() {
			logger.Debug("Using published bom", logrus.Fields{"bom_version": v})
			return v, nil
		}
	}
	return "", errors.Wrapf(errors.ErrNoValidBomVersion, "checked %d candidates", len(candidates))
}
