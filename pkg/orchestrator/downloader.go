// Package orchestrator runs the two jobs of the tool: syncing the artifacts
// of a BOM into the local repository and collecting the ones no longer needed.
package orchestrator

import (
	"context"
	"strconv"
	"strings"
	"time"

	"github.com/glorpus-work/artifactswap/pkg/download"
	"github.com/glorpus-work/artifactswap/pkg/errors"
	"github.com/glorpus-work/artifactswap/pkg/logger"
	"github.com/glorpus-work/artifactswap/pkg/model"
	"github.com/sirupsen/logrus"
	"golang.org/x/sync/errgroup"
)

// AllProtosArtifactID is the artifact bundling every proto schema.
const AllProtosArtifactID = "all-protos"

// DownloaderOptions locates the proto artifacts synced alongside the BOM.
type DownloaderOptions struct {
	PublicRepository               string
	ProtosGroup                    string
	ProtosGeneratedVersionProperty string
	ProtosSchemaVersionProperty    string
}

// Downloader syncs every artifact of a BOM, plus the proto artifacts of the
// Gradle build, into the local repository.
type Downloader struct {
	Repository ArtifactRepository
	BomFinder  BomVersionFinder
	Properties PropertiesProvider
	Projects   ProjectsProvider
	Sink       EventSink
	Options    DownloaderOptions
	Hooks      Hooks // OnEvent is called from the goroutine running the sync
}

// DownloadAndInstallArtifacts syncs the artifacts of bomVersion, or of the
// version picked by BomFinder when bomVersion is blank. Exactly one event is
// sent to the sink once the BOM could be resolved or failed to resolve.
// Errors are returned only for proto discovery failures.
func (d *Downloader) DownloadAndInstallArtifacts(ctx context.Context, bomVersion string) (DownloaderEvent, error) {
	event := NewDownloaderEvent()

	d.Hooks.emit("resolving", "protos", "discovering proto artifacts")
	protosStart := time.Now()
	protos, err := d.protoArtifacts(ctx)
	if err != nil {
		d.Hooks.emit("error", "protos", err.Error())
		return event, err
	}
	protosDuration := time.Since(protosStart)

	bomVersion = strings.TrimSpace(bomVersion)
	if bomVersion == "" {
		d.Hooks.emit("resolving", "bom", "finding bom version")
		bomVersion, err = d.BomFinder.FindBestBomVersion(ctx)
		if err != nil {
			logger.Error("Failed to find a valid bom version", logrus.Fields{"error": err})
			event.Result = model.DownloaderFailedToFindValidBomVersion
			d.finish(ctx, event)
			return event, nil
		}
	}
	logger.Info("Using bom", logrus.Fields{"bom_version": bomVersion})

	bomStart := time.Now()
	bomArtifacts, err := d.Repository.ArtifactsInBom(ctx, bomVersion)
	if err != nil {
		logger.Error("Failed to download bom", logrus.Fields{"bom_version": bomVersion, "error": err})
		event.Result = model.DownloaderFailedToDownloadBom
		d.finish(ctx, event)
		return event, nil
	}
	bomDuration := time.Since(bomStart)

	artifacts := append(bomArtifacts, protos...)
	event.CountArtifactsToDownload = int64(len(artifacts))
	event.GetArtifactsToDownloadDurationMs = bomDuration.Milliseconds() + protosDuration.Milliseconds()

	d.Hooks.emit("downloading", bomVersion, strconv.Itoa(len(artifacts))+" artifacts")
	tracker := download.NewTracker()
	start := time.Now()
	var g errgroup.Group
	for _, a := range artifacts {
		g.Go(func() error {
			d.syncArtifact(ctx, tracker, a)
			return nil
		})
	}
	_ = g.Wait()
	tracker.RecordWallClockDuration(time.Since(start))

	event.applyData(tracker.DownloadAndInstallData())
	d.finish(ctx, event)
	return event, nil
}

// protoArtifacts lists one artifact per top-level project at the generated
// protos version, plus the schema bundle.
func (d *Downloader) protoArtifacts(ctx context.Context) ([]model.Artifact, error) {
	generated, err := d.Properties.Get(d.Options.ProtosGeneratedVersionProperty)
	if err != nil {
		return nil, err
	}
	schema, err := d.Properties.Get(d.Options.ProtosSchemaVersionProperty)
	if err != nil {
		return nil, err
	}
	projects, err := d.Projects.ProjectHashingInfos(ctx)
	if err != nil {
		return nil, errors.Wrap(err, "failed to list projects")
	}

	artifacts := make([]model.Artifact, 0, len(projects)+1)
	for _, p := range projects {
		artifacts = append(artifacts, d.protoArtifact(protoArtifactID(p.ProjectPath), generated))
	}
	artifacts = append(artifacts, d.protoArtifact(AllProtosArtifactID, schema))
	return artifacts, nil
}

func (d *Downloader) protoArtifact(artifactID, version string) model.Artifact {
	return model.Artifact{
		GroupID:    d.Options.ProtosGroup,
		ArtifactID: artifactID,
		Version:    version,
		Repo:       d.Options.PublicRepository,
	}
}

// protoArtifactID returns the first segment of a project path: ":a:b" gives "a".
func protoArtifactID(projectPath string) string {
	id, _, _ := strings.Cut(strings.TrimPrefix(projectPath, ":"), ":")
	return id
}

func (d *Downloader) syncArtifact(ctx context.Context, tracker *download.Tracker, a model.Artifact) {
	all := model.AllFileTypes()
	var missing []model.DownloadFileType
	for _, ft := range all {
		if d.Repository.LocalArtifactState(a, ft) == model.NotInstalled {
			missing = append(missing, ft)
		}
	}
	tracker.UpdateLocalArtifactFileCount(len(all) - len(missing))
	tracker.UpdateArtifactFilesToDownloadCount(len(missing))

	results := make([]model.DownloadedArtifactFileResult, len(missing))
	var g errgroup.Group
	for i, ft := range missing {
		g.Go(func() error {
			results[i] = d.Repository.DownloadArtifactFile(ctx, a, ft)
			return nil
		})
	}
	_ = g.Wait()
	tracker.RecordFilesDownloaded(results)
	tracker.RecordInstallResult(d.Repository.InstallDownloadedArtifactFiles(ctx, results))
}

// finish publishes event. Sink failures never fail the run.
func (d *Downloader) finish(ctx context.Context, event DownloaderEvent) {
	d.Hooks.emit("done", string(event.Result), "")
	if d.Sink == nil {
		return
	}
	if err := d.Sink.Send(ctx, event); err != nil {
		logger.Debug("Failed to send downloader event", logrus.Fields{"error": err})
	}
}
