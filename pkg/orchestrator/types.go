//go:generate mockgen -destination=./mocks/orchestrator.go . ArtifactRepository,BomVersionFinder,PropertiesProvider,ProjectsProvider,LocalArtifactRepository,EventSink

package orchestrator

import (
	"context"
	"iter"

	"github.com/glorpus-work/artifactswap/pkg/eventstream"
	"github.com/glorpus-work/artifactswap/pkg/gradle"
	"github.com/glorpus-work/artifactswap/pkg/model"
)

// ArtifactRepository is the remote repository used by the downloader.
type ArtifactRepository interface {
	ArtifactsInBom(ctx context.Context, bomVersion string) ([]model.Artifact, error)
	DownloadArtifactFile(ctx context.Context, a model.Artifact, fileType model.DownloadFileType) model.DownloadedArtifactFileResult
	LocalArtifactState(a model.Artifact, fileType model.DownloadFileType) model.LocalArtifactState
	InstallDownloadedArtifactFiles(ctx context.Context, results []model.DownloadedArtifactFileResult) model.InstallArtifactFilesResult
}

// BomVersionFinder picks a BOM version when none was requested.
type BomVersionFinder interface {
	FindBestBomVersion(ctx context.Context) (string, error)
}

// PropertiesProvider reads gradle.properties values.
type PropertiesProvider interface {
	Get(key string) (string, error)
}

// ProjectsProvider lists the projects of the Gradle build.
type ProjectsProvider interface {
	ProjectHashingInfos(ctx context.Context) ([]gradle.ProjectHashingInfo, error)
}

// LocalArtifactRepository is the subset of the local cache used by the remover.
type LocalArtifactRepository interface {
	AllInstalledProjects(ctx context.Context) iter.Seq2[model.InstalledProject, error]
	InstalledBomsByRecency(ctx context.Context, count int) ([]model.InstalledBom, error)
	DeleteInstalledProjectVersions(ctx context.Context, p model.InstalledProject) model.VersionSet
	DeleteInstalledBom(ctx context.Context, b model.InstalledBom) bool
	MeasureRepository(ctx context.Context) (model.RepositoryStats, error)
}

// EventSink receives the record of a finished run.
type EventSink interface {
	Send(ctx context.Context, event eventstream.Event) error
}

// Event represents a simple progress notification.
type Event struct {
	Phase string // resolving|downloading|done|error
	ID    string
	Msg   string
}

// Hooks carries callbacks for progress events.
type Hooks struct {
	OnEvent func(Event)
}

func (h Hooks) emit(phase, id, msg string) {
	if h.OnEvent != nil {
		h.OnEvent(Event{Phase: phase, ID: id, Msg: msg})
	}
}
