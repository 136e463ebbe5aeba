package orchestrator

import (
	"context"
	"math"
	"sync"
	"time"

	"github.com/glorpus-work/artifactswap/pkg/errors"
	"github.com/glorpus-work/artifactswap/pkg/logger"
	"github.com/glorpus-work/artifactswap/pkg/model"
	"github.com/sirupsen/logrus"
	"golang.org/x/sync/errgroup"
)

// DeleteOldArtifactsResult lists the project versions the artifact pass touched.
type DeleteOldArtifactsResult struct {
	AttemptedToDelete  []model.InstalledProject
	SuccessfulDeletion []model.InstalledProject
	FailedDeletion     []model.InstalledProject
}

// DeleteOldBomsResult lists the BOMs the BOM pass touched.
type DeleteOldBomsResult struct {
	AttemptedDeletionBoms  []model.InstalledBom
	SuccessfulDeletionBoms []model.InstalledBom
	FailedDeletionBoms     []model.InstalledBom
}

// RemoverResult is the outcome of one garbage collection run. Nil parts
// were not measured or did not run.
type RemoverResult struct {
	Result                     model.RemoverResult
	StartRepoStats             *model.RepositoryStats
	EndRepoStats               *model.RepositoryStats
	DeleteOldArtifacts         *DeleteOldArtifactsResult
	DeleteOldArtifactsDuration time.Duration
	DeleteOldBoms              *DeleteOldBomsResult
	DeleteOldBomsDuration      time.Duration
	TotalDuration              time.Duration
}

// Remover deletes project versions and BOMs that none of the most recent
// BOMs reference.
type Remover struct {
	Repository LocalArtifactRepository
	Sink       EventSink
}

// RemoveArtifacts keeps the keep most recent BOMs and every project version
// they declare and deletes the rest. A listing failure in either pass makes
// the run a FAILURE; deletions that already happened are kept. A negative
// keep is a FAILURE before anything is touched.
func (r *Remover) RemoveArtifacts(ctx context.Context, keep int) RemoverResult {
	start := time.Now()
	res := RemoverResult{Result: model.RemoverUnknown}
	if keep < 0 {
		logger.Error("Refusing to remove artifacts", logrus.Fields{
			"error": errors.Wrapf(errors.ErrNegativeBomsToKeep, "got %d", keep),
		})
		res.Result = model.RemoverFailure
		res.TotalDuration = time.Since(start)
		return res
	}
	res.StartRepoStats = r.measure(ctx, "start")

	var (
		artifacts         DeleteOldArtifactsResult
		boms              DeleteOldBomsResult
		artifactsDuration time.Duration
		bomsDuration      time.Duration
	)
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		passStart := time.Now()
		defer func() { artifactsDuration = time.Since(passStart) }()
		var err error
		artifacts, err = r.deleteOldArtifacts(gctx, keep)
		return err
	})
	g.Go(func() error {
		passStart := time.Now()
		defer func() { bomsDuration = time.Since(passStart) }()
		var err error
		boms, err = r.deleteOldBoms(gctx, keep)
		return err
	})
	if err := g.Wait(); err != nil {
		logger.Error("Failed to remove old artifacts", logrus.Fields{"error": err})
		res.Result = model.RemoverFailure
		res.TotalDuration = time.Since(start)
		return res
	}

	res.DeleteOldArtifacts = &artifacts
	res.DeleteOldArtifactsDuration = artifactsDuration
	res.DeleteOldBoms = &boms
	res.DeleteOldBomsDuration = bomsDuration
	res.EndRepoStats = r.measure(ctx, "end")
	res.Result = model.RemoverSuccess
	res.TotalDuration = time.Since(start)
	return res
}

// measure returns nil when the repository could not be measured.
func (r *Remover) measure(ctx context.Context, when string) *model.RepositoryStats {
	stats, err := r.Repository.MeasureRepository(ctx)
	if err != nil {
		logger.Warn("Failed to measure repository", logrus.Fields{"when": when, "error": err})
		return nil
	}
	return &stats
}

func (r *Remover) deleteOldArtifacts(ctx context.Context, keep int) (DeleteOldArtifactsResult, error) {
	var res DeleteOldArtifactsResult

	recent, err := r.Repository.InstalledBomsByRecency(ctx, keep)
	if err != nil {
		return res, err
	}
	kept := make(map[string]model.VersionSet)
	for _, b := range recent {
		for projectPath, version := range b.ArtifactsAndVersions() {
			if kept[projectPath] == nil {
				kept[projectPath] = model.NewVersionSet()
			}
			kept[projectPath][version] = struct{}{}
		}
	}

	var stale []model.InstalledProject
	for p, err := range r.Repository.AllInstalledProjects(ctx) {
		if err != nil {
			return res, err
		}
		versions := p.Versions.Minus(kept[p.ProjectPath])
		if len(versions) > 0 {
			stale = append(stale, p.OnlyVersions(versions))
		}
	}

	var (
		mu sync.Mutex
		g  errgroup.Group
	)
	for _, p := range stale {
		g.Go(func() error {
			deleted := r.Repository.DeleteInstalledProjectVersions(ctx, p)
			failed := p.Versions.Minus(deleted)

			mu.Lock()
			defer mu.Unlock()
			res.AttemptedToDelete = append(res.AttemptedToDelete, p)
			if len(deleted) > 0 {
				res.SuccessfulDeletion = append(res.SuccessfulDeletion, p.OnlyVersions(deleted))
			}
			if len(failed) > 0 {
				res.FailedDeletion = append(res.FailedDeletion, p.OnlyVersions(failed))
			}
			return nil
		})
	}
	_ = g.Wait()

	logger.Debug("Deleted old artifacts", logrus.Fields{
		"attempted": len(res.AttemptedToDelete),
		"deleted":   len(res.SuccessfulDeletion),
		"failed":    len(res.FailedDeletion),
	})
	return res, nil
}

func (r *Remover) deleteOldBoms(ctx context.Context, keep int) (DeleteOldBomsResult, error) {
	var res DeleteOldBomsResult

	all, err := r.Repository.InstalledBomsByRecency(ctx, math.MaxInt)
	if err != nil {
		return res, err
	}
	if keep < len(all) {
		res.AttemptedDeletionBoms = all[keep:]
	}

	deleted := make([]bool, len(res.AttemptedDeletionBoms))
	var g errgroup.Group
	for i, b := range res.AttemptedDeletionBoms {
		g.Go(func() error {
			deleted[i] = r.Repository.DeleteInstalledBom(ctx, b)
			return nil
		})
	}
	_ = g.Wait()

	for i, b := range res.AttemptedDeletionBoms {
		if deleted[i] {
			res.SuccessfulDeletionBoms = append(res.SuccessfulDeletionBoms, b)
		} else {
			res.FailedDeletionBoms = append(res.FailedDeletionBoms, b)
		}
	}

	logger.Debug("Deleted old boms", logrus.Fields{
		"attempted": len(res.AttemptedDeletionBoms),
		"deleted":   len(res.SuccessfulDeletionBoms),
		"failed":    len(res.FailedDeletionBoms),
	})
	return res, nil
}

// LogResult publishes the record of res. Sink failures are only logged.
func (r *Remover) LogResult(ctx context.Context, res RemoverResult) {
	if r.Sink == nil {
		return
	}
	if err := r.Sink.Send(ctx, res.Event()); err != nil {
		logger.Debug("Failed to send remover event", logrus.Fields{"error": err})
	}
}
