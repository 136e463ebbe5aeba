// Package download accumulates statistics about one download-and-install run.
package download

import (
	"slices"
	"sync"
	"time"

	"github.com/glorpus-work/artifactswap/pkg/model"
)

const bytesInMB = 1024 * 1024

// failureRateThreshold is the fraction of failures, relative to successes,
// above which a run is classified as failed.
const failureRateThreshold = 0.1

// Percentiles summarises a list of durations. Every value is
// model.InfiniteDuration when there were no samples.
type Percentiles struct {
	P50 time.Duration
	P90 time.Duration
	P99 time.Duration
	Max time.Duration
}

// DownloadAndInstallData is the final snapshot of a Tracker.
type DownloadAndInstallData struct {
	Result                            model.DownloaderResult
	CountLocallyPresentArtifactFiles  int64
	CountFilesToCheckInArtifactory    int64
	CountSuccessfulDownloadedFiles    int64
	CountFailedDownloadedFiles        int64
	CountSuccessfulInstalledArtifacts int64
	CountFailedInstalledArtifacts     int64
	TotalDurationMs                   int64
	TotalDownloadSizeMB               float64
	Download                          Percentiles
	Install                           Percentiles
}

// Tracker is a concurrency-safe accumulator of download and install results.
// Counters start out as model.Unknown and become 0 on their first update.
type Tracker struct {
	mu sync.Mutex

	countLocallyPresentFiles int64
	countFilesToCheck        int64
	totalDurationMs          int64

	downloadTimes          []time.Duration
	successfulDownloads    int64
	failedDownloads        int64
	totalDownloadResults   int64
	totalDownloadSizeBytes int64

	installTimes       []time.Duration
	successfulInstalls int64
	failedInstalls     int64
}

// NewTracker creates a tracker with every counter unknown.
func NewTracker() *Tracker {
	return &Tracker{
		countLocallyPresentFiles: model.Unknown,
		countFilesToCheck:        model.Unknown,
		totalDurationMs:          model.Unknown,
		successfulDownloads:      model.Unknown,
		failedDownloads:          model.Unknown,
		totalDownloadResults:     model.Unknown,
		totalDownloadSizeBytes:   model.Unknown,
		successfulInstalls:       model.Unknown,
		failedInstalls:           model.Unknown,
	}
}

func add(counter *int64, n int64) {
	if *counter == model.Unknown {
		*counter = 0
	}
	*counter += n
}

// RecordFilesDownloaded records the results of downloading the files of one artifact.
// NoFileExists results are counted in the total but contribute no latency sample.
func (t *Tracker) RecordFilesDownloaded(results []model.DownloadedArtifactFileResult) {
	t.mu.Lock()
	defer t.mu.Unlock()

	var succeeded, failed, size int64
	for _, r := range results {
		switch r := r.(type) {
		case model.DownloadSuccess:
			succeeded++
			if r.SizeBytes != model.Unknown {
				size += r.SizeBytes
			}
			t.downloadTimes = append(t.downloadTimes, r.Duration)
		case model.DownloadFailure:
			failed++
			t.downloadTimes = append(t.downloadTimes, r.Duration)
		case model.NoFileExists:
		}
	}

	add(&t.successfulDownloads, succeeded)
	add(&t.failedDownloads, failed)
	add(&t.totalDownloadResults, int64(len(results)))
	add(&t.totalDownloadSizeBytes, size)
}

// RecordInstallResult records the outcome of installing one artifact's files.
func (t *Tracker) RecordInstallResult(result model.InstallArtifactFilesResult) {
	t.mu.Lock()
	defer t.mu.Unlock()

	add(&t.successfulInstalls, 0)
	add(&t.failedInstalls, 0)

	switch r := result.(type) {
	case model.InstallSuccess:
		t.successfulInstalls++
		t.installTimes = append(t.installTimes, r.Duration)
	case model.InstallFailure:
		t.failedInstalls++
		t.installTimes = append(t.installTimes, r.Duration)
	case model.InstallNoOp:
	}
}

// UpdateLocalArtifactFileCount adds to the number of files already present locally.
func (t *Tracker) UpdateLocalArtifactFileCount(n int) {
	t.mu.Lock()
	defer t.mu.Unlock()
	add(&t.countLocallyPresentFiles, int64(n))
}

// UpdateArtifactFilesToDownloadCount adds to the number of files that had to be checked remotely.
func (t *Tracker) UpdateArtifactFilesToDownloadCount(n int) {
	t.mu.Lock()
	defer t.mu.Unlock()
	add(&t.countFilesToCheck, int64(n))
}

// RecordWallClockDuration records the duration of the whole fan-out.
func (t *Tracker) RecordWallClockDuration(d time.Duration) {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.totalDurationMs = d.Milliseconds()
}

// DownloadAndInstallData returns the final snapshot and classification.
func (t *Tracker) DownloadAndInstallData() DownloadAndInstallData {
	t.mu.Lock()
	defer t.mu.Unlock()

	sizeMB := -1.0
	if t.totalDownloadSizeBytes != model.Unknown {
		sizeMB = float64(t.totalDownloadSizeBytes) / bytesInMB
	}

	return DownloadAndInstallData{
		Result:                            t.classify(),
		CountLocallyPresentArtifactFiles:  t.countLocallyPresentFiles,
		CountFilesToCheckInArtifactory:    t.countFilesToCheck,
		CountSuccessfulDownloadedFiles:    t.successfulDownloads,
		CountFailedDownloadedFiles:        t.failedDownloads,
		CountSuccessfulInstalledArtifacts: t.successfulInstalls,
		CountFailedInstalledArtifacts:     t.failedInstalls,
		TotalDurationMs:                   t.totalDurationMs,
		TotalDownloadSizeMB:               sizeMB,
		Download:                          ComputePercentiles(t.downloadTimes),
		Install:                           ComputePercentiles(t.installTimes),
	}
}

// classify checks download failures before install failures. The comparison
// is strict, so a run that recorded nothing is a success.
func (t *Tracker) classify() model.DownloaderResult {
	switch {
	case float64(t.failedDownloads) > float64(t.successfulDownloads)*failureRateThreshold:
		return model.DownloaderManyDownloadsFailed
	case float64(t.failedInstalls) > float64(t.successfulInstalls)*failureRateThreshold:
		return model.DownloaderManyInstallsFailed
	default:
		return model.DownloaderSuccess
	}
}

// ComputePercentiles picks p50, p90, p99 and max from a sorted copy of
// durations by plain indexing, without interpolation.
func ComputePercentiles(durations []time.Duration) Percentiles {
	if len(durations) == 0 {
		return Percentiles{
			P50: model.InfiniteDuration,
			P90: model.InfiniteDuration,
			P99: model.InfiniteDuration,
			Max: model.InfiniteDuration,
		}
	}
	sorted := slices.Clone(durations)
	slices.Sort(sorted)
	n := len(sorted)
	return Percentiles{
		P50: sorted[n/2],
		P90: sorted[int(float64(n)*0.9)],
		P99: sorted[int(float64(n)*0.99)],
		Max: sorted[n-1],
	}
}
