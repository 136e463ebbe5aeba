package cache_test

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/glorpus-work/artifactswap/pkg/cache"
	"github.com/glorpus-work/artifactswap/pkg/model"
	"github.com/glorpus-work/artifactswap/test/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const group = "com.example.sandbags"

func newRepo(t *testing.T) (*cache.LocalRepository, string) {
	t.Helper()
	root := t.TempDir()
	return cache.NewLocalRepository(root, group), root
}

func collectProjects(t *testing.T, repo *cache.LocalRepository) map[string]model.InstalledProject {
	t.Helper()
	out := make(map[string]model.InstalledProject)
	for p, err := range repo.AllInstalledProjects(context.Background()) {
		require.NoError(t, err)
		out[p.ProjectPath] = p
	}
	return out
}

func TestPaths(t *testing.T) {
	repo := cache.NewLocalRepository("/m2/repository", group)
	assert.Equal(t, filepath.FromSlash("/m2/repository/com/example/sandbags"), repo.GroupDir())
	assert.Equal(t, filepath.FromSlash("/m2/repository/com/example/sandbags/bom"), repo.BomDir())
	assert.Equal(t, filepath.FromSlash("/m2/repository/com/example/sandbags/bom/abc/bom-abc.pom"), repo.BomPath("abc"))
}

func TestAllInstalledProjects(t *testing.T) {
	repo, root := newRepo(t)
	testutil.InstallProjectVersions(t, root, group, "feature_ui", 1, "1.0.0", "1.1.0")
	testutil.InstallProjectVersions(t, root, group, "core", 1, "2.0.0")
	testutil.InstallBom(t, root, group, "b1", map[string]string{"core": "2.0.0"}, time.Now())

	projects := collectProjects(t, repo)

	require.Len(t, projects, 2, "bom directory is not a project")
	ui := projects[":feature:ui"]
	assert.Equal(t, model.NewVersionSet("1.0.0", "1.1.0"), ui.Versions)
	assert.Equal(t, filepath.Join(repo.GroupDir(), "feature_ui"), ui.RepositoryPath)
	assert.Equal(t, model.NewVersionSet("2.0.0"), projects[":core"].Versions)
}

func TestAllInstalledProjectsMissingGroupDir(t *testing.T) {
	repo, _ := newRepo(t)
	assert.Empty(t, collectProjects(t, repo))
}

func TestAllInstalledProjectsStopsEarly(t *testing.T) {
	repo, root := newRepo(t)
	testutil.InstallProjectVersions(t, root, group, "a", 1, "1")
	testutil.InstallProjectVersions(t, root, group, "b", 1, "1")

	seen := 0
	for _, err := range repo.AllInstalledProjects(context.Background()) {
		require.NoError(t, err)
		seen++
		break
	}
	assert.Equal(t, 1, seen)
}

func TestInstalledBomsByRecency(t *testing.T) {
	repo, root := newRepo(t)
	base := time.Now().Add(-time.Hour)

	testutil.InstallBom(t, root, group, "old", map[string]string{"core": "1.0.0"}, base)
	testutil.InstallBom(t, root, group, "mid", map[string]string{"core": "1.1.0", "feature_ui": "3.0.0"}, base.Add(time.Minute))
	testutil.InstallBom(t, root, group, "new", map[string]string{"core": "1.2.0"}, base.Add(2*time.Minute))
	// directory without a pom is ignored
	require.NoError(t, os.MkdirAll(filepath.Join(repo.BomDir(), "empty"), 0o755))
	require.NoError(t, os.Chtimes(filepath.Join(repo.BomDir(), "empty"), base.Add(3*time.Minute), base.Add(3*time.Minute)))

	boms, err := repo.InstalledBomsByRecency(context.Background(), 10)
	require.NoError(t, err)
	require.Len(t, boms, 3)
	assert.Equal(t, "new", boms[0].Version)
	assert.Equal(t, "mid", boms[1].Version)
	assert.Equal(t, "old", boms[2].Version)
	assert.Equal(t, repo.BomPath("mid"), boms[1].RepositoryPath)
	assert.Equal(t, map[string]string{":core": "1.1.0", ":feature:ui": "3.0.0"}, boms[1].ArtifactsAndVersions())
	assert.Equal(t, filepath.Join(repo.GroupDir(), "feature_ui"), boms[1].InstalledProjects[1].RepositoryPath)

	// the pom-less directory counts towards the limit before being skipped
	top, err := repo.InstalledBomsByRecency(context.Background(), 2)
	require.NoError(t, err)
	require.Len(t, top, 1)
	assert.Equal(t, "new", top[0].Version)

	none, err := repo.InstalledBomsByRecency(context.Background(), 0)
	require.NoError(t, err)
	assert.Empty(t, none)
}

func TestInstalledBomsByRecencyTieBreak(t *testing.T) {
	repo, root := newRepo(t)
	same := time.Now().Add(-time.Hour).Truncate(time.Second)

	testutil.InstallBom(t, root, group, "1.9.0", nil, same)
	testutil.InstallBom(t, root, group, "1.10.0", nil, same)
	testutil.InstallBom(t, root, group, "1.2.0", nil, same)

	boms, err := repo.InstalledBomsByRecency(context.Background(), 10)
	require.NoError(t, err)
	require.Len(t, boms, 3)
	assert.Equal(t, []string{"1.10.0", "1.9.0", "1.2.0"}, []string{boms[0].Version, boms[1].Version, boms[2].Version})
}

func TestInstalledBomsByRecencyInvalidPom(t *testing.T) {
	repo, _ := newRepo(t)
	require.NoError(t, os.MkdirAll(filepath.Dir(repo.BomPath("bad")), 0o755))
	require.NoError(t, os.WriteFile(repo.BomPath("bad"), []byte("<project><oops"), 0o644))

	_, err := repo.InstalledBomsByRecency(context.Background(), 10)
	require.ErrorIs(t, err, cache.ErrInvalidBom)
}

func TestInstalledBom(t *testing.T) {
	repo, root := newRepo(t)
	testutil.InstallBom(t, root, group, "b7", map[string]string{"core": "7"}, time.Now())

	bom, err := repo.InstalledBom("b7")
	require.NoError(t, err)
	assert.Equal(t, "b7", bom.Version)
	assert.Equal(t, map[string]string{":core": "7"}, bom.ArtifactsAndVersions())

	_, err = repo.InstalledBom("missing")
	require.ErrorIs(t, err, cache.ErrBomNotInstalled)
}

func TestDeleteInstalledProjectVersions(t *testing.T) {
	repo, root := newRepo(t)
	testutil.InstallProjectVersions(t, root, group, "core", 1, "1.0.0", "1.1.0", "1.2.0")

	project := collectProjects(t, repo)[":core"]
	target := project.OnlyVersions(model.NewVersionSet("1.0.0", "1.1.0", "9.9.9"))

	deleted := repo.DeleteInstalledProjectVersions(context.Background(), target)

	assert.Equal(t, model.NewVersionSet("1.0.0", "1.1.0"), deleted, "absent versions are not reported")
	assert.NoDirExists(t, filepath.Join(project.RepositoryPath, "1.0.0"))
	assert.DirExists(t, filepath.Join(project.RepositoryPath, "1.2.0"))
}

func TestDeleteInstalledBom(t *testing.T) {
	repo, root := newRepo(t)
	pom := testutil.InstallBom(t, root, group, "b1", nil, time.Now())

	ok := repo.DeleteInstalledBom(context.Background(), model.InstalledBom{Version: "b1", RepositoryPath: pom})

	assert.True(t, ok)
	assert.NoDirExists(t, filepath.Dir(pom))
	assert.DirExists(t, repo.BomDir())
}

func TestMeasureRepository(t *testing.T) {
	repo, root := newRepo(t)
	testutil.InstallProjectVersions(t, root, group, "feature_ui", 100, "1.0.0", "1.1.0")
	testutil.InstallProjectVersions(t, root, group, "core", 50, "2.0.0")
	pom1 := testutil.InstallBom(t, root, group, "b1", map[string]string{"core": "2.0.0"}, time.Now())
	pom2 := testutil.InstallBom(t, root, group, "b2", map[string]string{"core": "2.0.0", "feature_ui": "1.1.0"}, time.Now())

	info1, err := os.Stat(pom1)
	require.NoError(t, err)
	info2, err := os.Stat(pom2)
	require.NoError(t, err)

	stats, err := repo.MeasureRepository(context.Background())
	require.NoError(t, err)

	assert.Equal(t, int64(2), stats.CountInstalledProjects)
	assert.Equal(t, int64(3), stats.CountInstalledArtifacts)
	assert.Equal(t, int64(250), stats.SizeOfInstalledArtifactsBytes)
	assert.Equal(t, int64(2), stats.CountInstalledBoms)
	assert.Equal(t, info1.Size()+info2.Size(), stats.SizeOfInstalledBomsBytes)
	assert.Equal(t, stats.SizeOfInstalledArtifactsBytes+stats.SizeOfInstalledBomsBytes, stats.OverallRepoSizeBytes)
	assert.GreaterOrEqual(t, stats.MeasurementDuration, time.Duration(0))
	assert.GreaterOrEqual(t, stats.InstalledArtifactsMeasurementDuration, time.Duration(0))
	assert.GreaterOrEqual(t, stats.InstalledBomsMeasurementDuration, time.Duration(0))
}

func TestMeasureEmptyRepository(t *testing.T) {
	repo, _ := newRepo(t)

	stats, err := repo.MeasureRepository(context.Background())
	require.NoError(t, err)
	assert.Equal(t, int64(0), stats.CountInstalledProjects)
	assert.Equal(t, int64(0), stats.CountInstalledBoms)
	assert.Equal(t, int64(0), stats.OverallRepoSizeBytes)
}
