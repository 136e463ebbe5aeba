// Package cache inspects and prunes the artifacts installed into a local
// Maven repository such as ~/.m2/repository.
package cache

import (
	"context"
	"errors"
	"io/fs"
	"iter"
	"os"
	"path/filepath"
	"slices"
	"strings"
	"sync"
	"time"

	pkgerrors "github.com/glorpus-work/artifactswap/pkg/errors"
	"github.com/glorpus-work/artifactswap/pkg/fsutil"
	"github.com/glorpus-work/artifactswap/pkg/logger"
	"github.com/glorpus-work/artifactswap/pkg/maven"
	"github.com/glorpus-work/artifactswap/pkg/model"
	"github.com/hashicorp/go-version"
	"github.com/sirupsen/logrus"
	"golang.org/x/sync/errgroup"
)

// BomArtifactID is the artifact id BOM snapshots are published under.
const BomArtifactID = "bom"

// LocalRepository reads the part of a local Maven repository that belongs
// to one artifact group.
type LocalRepository struct {
	mavenRoot string
	group     string
}

// NewLocalRepository creates a repository for group under mavenRoot.
func NewLocalRepository(mavenRoot, group string) *LocalRepository {
	return &LocalRepository{mavenRoot: mavenRoot, group: group}
}

// GroupDir returns the directory holding one subdirectory per project and the bom directory.
func (r *LocalRepository) GroupDir() string {
	return filepath.Join(r.mavenRoot, filepath.FromSlash(model.GroupPath(r.group)))
}

// BomDir returns the directory holding one subdirectory per installed BOM version.
func (r *LocalRepository) BomDir() string {
	return filepath.Join(r.GroupDir(), BomArtifactID)
}

// BomPath returns the location of the POM of a BOM version.
func (r *LocalRepository) BomPath(bomVersion string) string {
	return filepath.Join(r.BomDir(), bomVersion, BomArtifactID+"-"+bomVersion+model.FileTypePOM.Suffix())
}

// subDirs lists subdirectories, treating a missing directory as empty.
func subDirs(dir string) ([]os.DirEntry, error) {
	entries, err := fsutil.SubDirs(dir)
	if errors.Is(err, fs.ErrNotExist) {
		return nil, nil
	}
	return entries, err
}

// AllInstalledProjects lazily yields every installed project. Iteration stops
// at the first error, which is yielded with a zero project.
func (r *LocalRepository) AllInstalledProjects(ctx context.Context) iter.Seq2[model.InstalledProject, error] {
	return func(yield func(model.InstalledProject, error) bool) {
		groupDir := r.GroupDir()
		projectDirs, err := subDirs(groupDir)
		if err != nil {
			yield(model.InstalledProject{}, pkgerrors.Wrapf(err, "failed to list %s", groupDir))
			return
		}
		logger.Debug("Found installed projects", logrus.Fields{"count": len(projectDirs)})

		for _, projectDir := range projectDirs {
			if projectDir.Name() == BomArtifactID {
				continue
			}
			if err := ctx.Err(); err != nil {
				yield(model.InstalledProject{}, err)
				return
			}
			repositoryPath := filepath.Join(groupDir, projectDir.Name())
			versionDirs, err := subDirs(repositoryPath)
			if err != nil {
				yield(model.InstalledProject{}, pkgerrors.Wrapf(err, "failed to list %s", repositoryPath))
				return
			}
			versions := make(model.VersionSet, len(versionDirs))
			for _, v := range versionDirs {
				versions[v.Name()] = struct{}{}
			}
			project := model.InstalledProject{
				ProjectPath:    model.ProjectPathFromArtifactID(projectDir.Name()),
				RepositoryPath: repositoryPath,
				Versions:       versions,
			}
			if !yield(project, nil) {
				return
			}
		}
	}
}

type bomDir struct {
	version string
	modTime time.Time
}

// InstalledBomsByRecency returns up to count installed BOMs, most recently
// modified first. Version directories without a POM are skipped.
func (r *LocalRepository) InstalledBomsByRecency(ctx context.Context, count int) ([]model.InstalledBom, error) {
	entries, err := subDirs(r.BomDir())
	if err != nil {
		return nil, pkgerrors.Wrapf(err, "failed to list %s", r.BomDir())
	}

	dirs := make([]bomDir, 0, len(entries))
	for _, e := range entries {
		info, err := e.Info()
		if err != nil {
			return nil, pkgerrors.Wrapf(err, "failed to stat bom directory %s", e.Name())
		}
		dirs = append(dirs, bomDir{version: e.Name(), modTime: info.ModTime()})
	}
	slices.SortFunc(dirs, func(a, b bomDir) int {
		if c := b.modTime.Compare(a.modTime); c != 0 {
			return c
		}
		return compareVersions(b.version, a.version)
	})
	if count >= 0 && count < len(dirs) {
		dirs = dirs[:count]
	}

	boms := make([]*model.InstalledBom, len(dirs))
	g, ctx := errgroup.WithContext(ctx)
	for i, d := range dirs {
		pomPath := r.BomPath(d.version)
		if !fsutil.Exists(pomPath) {
			logger.Debug("Skipping bom directory without pom", logrus.Fields{"bom_version": d.version})
			continue
		}
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}
			bom, err := r.readBom(d.version, pomPath)
			if err != nil {
				return err
			}
			boms[i] = &bom
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	out := make([]model.InstalledBom, 0, len(boms))
	for _, b := range boms {
		if b != nil {
			out = append(out, *b)
		}
	}
	return out, nil
}

// InstalledBom reads a single installed BOM.
func (r *LocalRepository) InstalledBom(bomVersion string) (model.InstalledBom, error) {
	pomPath := r.BomPath(bomVersion)
	if !fsutil.Exists(pomPath) {
		return model.InstalledBom{}, pkgerrors.Wrapf(ErrBomNotInstalled, "bom %s", bomVersion)
	}
	return r.readBom(bomVersion, pomPath)
}

func (r *LocalRepository) readBom(bomVersion, pomPath string) (model.InstalledBom, error) {
	f, err := os.Open(pomPath)
	if err != nil {
		return model.InstalledBom{}, pkgerrors.Wrapf(err, "failed to open %s", pomPath)
	}
	defer func() { _ = f.Close() }()

	project, err := maven.ParseProject(f)
	if err != nil {
		return model.InstalledBom{}, pkgerrors.Wrapf(ErrInvalidBom, "%s: %v", pomPath, err)
	}

	groupDir := r.GroupDir()
	projects := make([]model.InstalledProject, 0, len(project.DependencyManagement.Dependencies))
	for _, dep := range project.DependencyManagement.Dependencies {
		projects = append(projects, model.InstalledProject{
			ProjectPath:    model.ProjectPathFromArtifactID(dep.ArtifactID),
			RepositoryPath: filepath.Join(groupDir, dep.ArtifactID),
			Versions:       model.NewVersionSet(dep.Version),
		})
	}
	return model.InstalledBom{
		Version:           bomVersion,
		RepositoryPath:    pomPath,
		InstalledProjects: projects,
	}, nil
}

// compareVersions orders semantically when both sides parse, lexically otherwise.
func compareVersions(a, b string) int {
	va, errA := version.NewVersion(a)
	vb, errB := version.NewVersion(b)
	if errA == nil && errB == nil {
		return va.Compare(vb)
	}
	return strings.Compare(a, b)
}

// DeleteInstalledProjectVersions removes the version directories of p
// concurrently and returns the versions that existed and were removed.
func (r *LocalRepository) DeleteInstalledProjectVersions(ctx context.Context, p model.InstalledProject) model.VersionSet {
	var (
		mu      sync.Mutex
		deleted = make(model.VersionSet)
		wg      sync.WaitGroup
	)
	for v := range p.Versions {
		wg.Add(1)
		go func() {
			defer wg.Done()
			if ctx.Err() != nil {
				return
			}
			dir := filepath.Join(p.RepositoryPath, v)
			if !fsutil.IsDir(dir) {
				return
			}
			if err := os.RemoveAll(dir); err != nil {
				logger.Warn("Failed to delete artifact version", logrus.Fields{
					"project": p.ProjectPath,
					"version": v,
					"error":   err,
				})
				return
			}
			mu.Lock()
			deleted[v] = struct{}{}
			mu.Unlock()
		}()
	}
	wg.Wait()
	return deleted
}

// DeleteInstalledBom removes the version directory containing the BOM's POM.
func (r *LocalRepository) DeleteInstalledBom(_ context.Context, b model.InstalledBom) bool {
	dir := filepath.Dir(b.RepositoryPath)
	if err := os.RemoveAll(dir); err != nil {
		logger.Error("Failed to delete bom directory", logrus.Fields{
			"bom_version": b.Version,
			"path":        dir,
			"error":       err,
		})
		return false
	}
	return true
}

// MeasureRepository measures the installed artifacts and the installed BOMs concurrently.
func (r *LocalRepository) MeasureRepository(ctx context.Context) (model.RepositoryStats, error) {
	start := time.Now()
	stats := model.NewRepositoryStats()

	var artifacts, boms model.RepositoryStats
	g, ctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		logger.Debug("Measuring installed artifacts")
		var err error
		artifacts, err = r.measureArtifacts(ctx)
		return err
	})
	g.Go(func() error {
		logger.Debug("Measuring installed boms")
		var err error
		boms, err = r.measureBoms()
		return err
	})
	if err := g.Wait(); err != nil {
		return stats, err
	}

	stats.CountInstalledProjects = artifacts.CountInstalledProjects
	stats.CountInstalledArtifacts = artifacts.CountInstalledArtifacts
	stats.SizeOfInstalledArtifactsBytes = artifacts.SizeOfInstalledArtifactsBytes
	stats.InstalledArtifactsMeasurementDuration = artifacts.InstalledArtifactsMeasurementDuration
	stats.CountInstalledBoms = boms.CountInstalledBoms
	stats.SizeOfInstalledBomsBytes = boms.SizeOfInstalledBomsBytes
	stats.InstalledBomsMeasurementDuration = boms.InstalledBomsMeasurementDuration
	stats.OverallRepoSizeBytes = artifacts.SizeOfInstalledArtifactsBytes + boms.SizeOfInstalledBomsBytes
	stats.MeasurementDuration = time.Since(start)
	return stats, nil
}

func (r *LocalRepository) measureArtifacts(ctx context.Context) (model.RepositoryStats, error) {
	start := time.Now()
	var stats model.RepositoryStats
	for project, err := range r.AllInstalledProjects(ctx) {
		if err != nil {
			return stats, err
		}
		stats.CountInstalledProjects++
		stats.CountInstalledArtifacts += int64(len(project.Versions))
		for v := range project.Versions {
			size, err := fsutil.SumFileSizes(filepath.Join(project.RepositoryPath, v))
			if err != nil {
				return stats, pkgerrors.Wrapf(err, "failed to measure %s %s", project.ProjectPath, v)
			}
			stats.SizeOfInstalledArtifactsBytes += size
		}
	}
	stats.InstalledArtifactsMeasurementDuration = time.Since(start)
	return stats, nil
}

func (r *LocalRepository) measureBoms() (model.RepositoryStats, error) {
	start := time.Now()
	var stats model.RepositoryStats
	dirs, err := subDirs(r.BomDir())
	if err != nil {
		return stats, pkgerrors.Wrapf(err, "failed to list %s", r.BomDir())
	}
	for _, d := range dirs {
		size, err := fsutil.SumFileSizes(filepath.Join(r.BomDir(), d.Name()))
		if err != nil {
			return stats, pkgerrors.Wrapf(err, "failed to measure bom %s", d.Name())
		}
		stats.CountInstalledBoms++
		stats.SizeOfInstalledBomsBytes += size
	}
	stats.InstalledBomsMeasurementDuration = time.Since(start)
	return stats, nil
}
