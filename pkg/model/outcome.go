package model

import (
	"math"
	"time"
)

// DownloaderResult classifies one downloader run.
type DownloaderResult string

const (
	DownloaderSuccess                     DownloaderResult = "SUCCESS"
	DownloaderFailedToFindValidBomVersion DownloaderResult = "FAILED_TO_FIND_VALID_BOM_VERSION"
	DownloaderFailedToDownloadBom         DownloaderResult = "FAILED_TO_DOWNLOAD_BOM"
	DownloaderManyDownloadsFailed         DownloaderResult = "MANY_DOWNLOADS_FAILED"
	DownloaderManyInstallsFailed          DownloaderResult = "MANY_INSTALLS_FAILED"
	DownloaderNotSet                      DownloaderResult = "NOT_SET"
)

// RemoverResult classifies one remover run.
type RemoverResult string

const (
	RemoverSuccess RemoverResult = "SUCCESS"
	RemoverFailure RemoverResult = "FAILURE"
	RemoverUnknown RemoverResult = "UNKNOWN"
)

// Unknown is the value of counters and sizes that were never measured.
const Unknown int64 = -1

// InfiniteDuration marks a duration that could not be computed, such as a
// percentile over an empty sample.
const InfiniteDuration = time.Duration(math.MaxInt64)

// MillisIfFinite returns d in whole milliseconds, or -1 when d is infinite or
// negative (unknown).
func MillisIfFinite(d time.Duration) int64 {
	if d == InfiniteDuration || d < 0 {
		return -1
	}
	return d.Milliseconds()
}
