package orchestrator

import (
	"os"
	"os/user"

	"github.com/glorpus-work/artifactswap/pkg/download"
	"github.com/glorpus-work/artifactswap/pkg/model"
)

// Catalog names under which run records are published.
const (
	DownloaderCatalog = "artifact_sync_artifact_downloader"
	RemoverCatalog    = "artifact_sync_artifact_remover"
)

// DownloaderEvent is the record of one download-and-install run. Numeric
// fields that were never measured hold -1.
type DownloaderEvent struct {
	Result                            model.DownloaderResult `json:"result"`
	CountArtifactsToDownload          int64                  `json:"count_artifacts_to_download"`
	CountSuccessfulDownloadedFiles    int64                  `json:"count_artifacts_successfully_downloaded"`
	CountFailedDownloadedFiles        int64                  `json:"count_artifacts_failed_to_download"`
	CountSuccessfulInstalledArtifacts int64                  `json:"count_artifacts_successfully_installed"`
	CountFailedInstalledArtifacts     int64                  `json:"count_artifacts_failed_to_install"`
	TotalDurationMs                   int64                  `json:"total_duration_ms"`
	TotalDownloadSizeMB               int64                  `json:"total_download_size_mb"`
	GetArtifactsToDownloadDurationMs  int64                  `json:"get_artifacts_to_download_duration_ms"`
	DownloadP50DurationMs             int64                  `json:"download_artifacts_p50_duration_ms"`
	DownloadP90DurationMs             int64                  `json:"download_artifacts_p90_duration_ms"`
	DownloadP99DurationMs             int64                  `json:"download_artifacts_p99_duration_ms"`
	DownloadMaxDurationMs             int64                  `json:"download_artifacts_max_duration_ms"`
	InstallP50DurationMs              int64                  `json:"install_artifacts_p50_duration_ms"`
	InstallP90DurationMs              int64                  `json:"install_artifacts_p90_duration_ms"`
	InstallP99DurationMs              int64                  `json:"install_artifacts_p99_duration_ms"`
	InstallMaxDurationMs              int64                  `json:"install_artifacts_max_duration_ms"`
	CountLocallyPresentArtifactFiles  int64                  `json:"count_locally_present_artifact_files"`
	CountFilesToCheckInArtifactory    int64                  `json:"count_files_to_check_in_artifactory"`
	UserLdap                          string                 `json:"user_ldap"`
}

// NewDownloaderEvent returns an event with result NOT_SET and every number unknown.
func NewDownloaderEvent() DownloaderEvent {
	return DownloaderEvent{
		Result:                            model.DownloaderNotSet,
		CountArtifactsToDownload:          model.Unknown,
		CountSuccessfulDownloadedFiles:    model.Unknown,
		CountFailedDownloadedFiles:        model.Unknown,
		CountSuccessfulInstalledArtifacts: model.Unknown,
		CountFailedInstalledArtifacts:     model.Unknown,
		TotalDurationMs:                   model.Unknown,
		TotalDownloadSizeMB:               model.Unknown,
		GetArtifactsToDownloadDurationMs:  model.Unknown,
		DownloadP50DurationMs:             model.Unknown,
		DownloadP90DurationMs:             model.Unknown,
		DownloadP99DurationMs:             model.Unknown,
		DownloadMaxDurationMs:             model.Unknown,
		InstallP50DurationMs:              model.Unknown,
		InstallP90DurationMs:              model.Unknown,
		InstallP99DurationMs:              model.Unknown,
		InstallMaxDurationMs:              model.Unknown,
		CountLocallyPresentArtifactFiles:  model.Unknown,
		CountFilesToCheckInArtifactory:    model.Unknown,
		UserLdap:                          currentUser(),
	}
}

// CatalogName implements eventstream.Event.
func (DownloaderEvent) CatalogName() string { return DownloaderCatalog }

// applyData copies a tracker snapshot into e. The size is truncated to whole megabytes.
func (e *DownloaderEvent) applyData(d download.DownloadAndInstallData) {
	e.Result = d.Result
	e.CountSuccessfulDownloadedFiles = d.CountSuccessfulDownloadedFiles
	e.CountFailedDownloadedFiles = d.CountFailedDownloadedFiles
	e.CountSuccessfulInstalledArtifacts = d.CountSuccessfulInstalledArtifacts
	e.CountFailedInstalledArtifacts = d.CountFailedInstalledArtifacts
	e.TotalDurationMs = d.TotalDurationMs
	e.TotalDownloadSizeMB = int64(d.TotalDownloadSizeMB)
	e.DownloadP50DurationMs = model.MillisIfFinite(d.Download.P50)
	e.DownloadP90DurationMs = model.MillisIfFinite(d.Download.P90)
	e.DownloadP99DurationMs = model.MillisIfFinite(d.Download.P99)
	e.DownloadMaxDurationMs = model.MillisIfFinite(d.Download.Max)
	e.InstallP50DurationMs = model.MillisIfFinite(d.Install.P50)
	e.InstallP90DurationMs = model.MillisIfFinite(d.Install.P90)
	e.InstallP99DurationMs = model.MillisIfFinite(d.Install.P99)
	e.InstallMaxDurationMs = model.MillisIfFinite(d.Install.Max)
	e.CountLocallyPresentArtifactFiles = d.CountLocallyPresentArtifactFiles
	e.CountFilesToCheckInArtifactory = d.CountFilesToCheckInArtifactory
}

// RemoverEvent is the record of one garbage collection run. The BOM count
// field names keep their historical spelling.
type RemoverEvent struct {
	Result model.RemoverResult `json:"result"`

	StartCountInstalledProjects                  int64 `json:"repo_stats_start_count_installed_projects"`
	StartCountInstalledArtifacts                 int64 `json:"repo_stats_start_count_installed_artifacts"`
	StartCountInstalledBoms                      int64 `json:"repo_stats_start_count_boms_insalled"`
	StartSizeOfInstalledArtifactsBytes           int64 `json:"repo_stats_start_size_of_installed_artifacts_bytes"`
	StartSizeOfInstalledBomsBytes                int64 `json:"repo_stats_start_size_of_installed_boms_bytes"`
	StartOverallRepoSizeBytes                    int64 `json:"repo_stats_start_overall_repo_size_bytes"`
	StartInstalledArtifactsMeasurementDurationMs int64 `json:"repo_stats_start_installed_artifacts_measurement_duration_ms"`
	StartInstalledBomsMeasurementDurationMs      int64 `json:"repo_stats_start_installed_boms_measurement_duration_ms"`
	StartMeasureRepoDurationMs                   int64 `json:"repo_stats_start_measure_repo_duration_ms"`

	EndCountInstalledProjects                  int64 `json:"repo_stats_end_count_installed_projects"`
	EndCountInstalledArtifacts                 int64 `json:"repo_stats_end_count_installed_artifacts"`
	EndCountInstalledBoms                      int64 `json:"repo_stats_end_count_boms_insalled"`
	EndSizeOfInstalledArtifactsBytes           int64 `json:"repo_stats_end_size_of_installed_artifacts_bytes"`
	EndSizeOfInstalledBomsBytes                int64 `json:"repo_stats_end_size_of_installed_boms_bytes"`
	EndOverallRepoSizeBytes                    int64 `json:"repo_stats_end_overall_repo_size_bytes"`
	EndInstalledArtifactsMeasurementDurationMs int64 `json:"repo_stats_end_installed_artifacts_measurement_duration_ms"`
	EndInstalledBomsMeasurementDurationMs      int64 `json:"repo_stats_end_installed_boms_measurement_duration_ms"`
	EndMeasureRepoDurationMs                   int64 `json:"repo_stats_end_measure_repo_duration_ms"`

	CountArtifactsAttemptedDelete     int64 `json:"count_artifacts_attempted_delete"`
	CountArtifactsSuccessfullyDeleted int64 `json:"count_artifacts_successfully_deleted"`
	CountArtifactsFailedToDelete      int64 `json:"count_artifacts_failed_to_delete"`
	DeleteOldArtifactsDurationMs      int64 `json:"delete_old_artifacts_duration_ms"`
	CountBomsAttemptedDelete          int64 `json:"count_boms_attempted_delete"`
	CountBomsSuccessfullyDeleted      int64 `json:"count_boms_successfully_deleted"`
	CountBomsFailedToDelete           int64 `json:"count_boms_failed_to_delete"`
	DeleteOldBomsDurationMs           int64 `json:"delete_old_boms_duration_ms"`
	TotalDurationMs                   int64 `json:"total_duration_ms"`

	UserLdap string `json:"user_ldap"`
}

// CatalogName implements eventstream.Event.
func (RemoverEvent) CatalogName() string { return RemoverCatalog }

// Event flattens the result into its published record.
func (r RemoverResult) Event() RemoverEvent {
	start := statsOrUnknown(r.StartRepoStats)
	end := statsOrUnknown(r.EndRepoStats)

	e := RemoverEvent{
		Result: r.Result,

		StartCountInstalledProjects:                  start.CountInstalledProjects,
		StartCountInstalledArtifacts:                 start.CountInstalledArtifacts,
		StartCountInstalledBoms:                      start.CountInstalledBoms,
		StartSizeOfInstalledArtifactsBytes:           start.SizeOfInstalledArtifactsBytes,
		StartSizeOfInstalledBomsBytes:                start.SizeOfInstalledBomsBytes,
		StartOverallRepoSizeBytes:                    start.OverallRepoSizeBytes,
		StartInstalledArtifactsMeasurementDurationMs: model.MillisIfFinite(start.InstalledArtifactsMeasurementDuration),
		StartInstalledBomsMeasurementDurationMs:      model.MillisIfFinite(start.InstalledBomsMeasurementDuration),
		StartMeasureRepoDurationMs:                   model.MillisIfFinite(start.MeasurementDuration),

		EndCountInstalledProjects:                  end.CountInstalledProjects,
		EndCountInstalledArtifacts:                 end.CountInstalledArtifacts,
		EndCountInstalledBoms:                      end.CountInstalledBoms,
		EndSizeOfInstalledArtifactsBytes:           end.SizeOfInstalledArtifactsBytes,
		EndSizeOfInstalledBomsBytes:                end.SizeOfInstalledBomsBytes,
		EndOverallRepoSizeBytes:                    end.OverallRepoSizeBytes,
		EndInstalledArtifactsMeasurementDurationMs: model.MillisIfFinite(end.InstalledArtifactsMeasurementDuration),
		EndInstalledBomsMeasurementDurationMs:      model.MillisIfFinite(end.InstalledBomsMeasurementDuration),
		EndMeasureRepoDurationMs:                   model.MillisIfFinite(end.MeasurementDuration),

		CountArtifactsAttemptedDelete:     model.Unknown,
		CountArtifactsSuccessfullyDeleted: model.Unknown,
		CountArtifactsFailedToDelete:      model.Unknown,
		DeleteOldArtifactsDurationMs:      model.Unknown,
		CountBomsAttemptedDelete:          model.Unknown,
		CountBomsSuccessfullyDeleted:      model.Unknown,
		CountBomsFailedToDelete:           model.Unknown,
		DeleteOldBomsDurationMs:           model.Unknown,
		TotalDurationMs:                   model.Unknown,

		UserLdap: currentUser(),
	}

	if a := r.DeleteOldArtifacts; a != nil {
		e.CountArtifactsAttemptedDelete = int64(len(a.AttemptedToDelete))
		e.CountArtifactsSuccessfullyDeleted = int64(len(a.SuccessfulDeletion))
		e.CountArtifactsFailedToDelete = int64(len(a.FailedDeletion))
		e.DeleteOldArtifactsDurationMs = model.MillisIfFinite(r.DeleteOldArtifactsDuration)
	}
	if b := r.DeleteOldBoms; b != nil {
		e.CountBomsAttemptedDelete = int64(len(b.AttemptedDeletionBoms))
		e.CountBomsSuccessfullyDeleted = int64(len(b.SuccessfulDeletionBoms))
		e.CountBomsFailedToDelete = int64(len(b.FailedDeletionBoms))
		e.DeleteOldBomsDurationMs = model.MillisIfFinite(r.DeleteOldBomsDuration)
	}
	switch r.Result {
	case model.RemoverSuccess, model.RemoverFailure:
		e.TotalDurationMs = model.MillisIfFinite(r.TotalDuration)
	}
	return e
}

func statsOrUnknown(s *model.RepositoryStats) model.RepositoryStats {
	if s == nil {
		return model.NewRepositoryStats()
	}
	return *s
}

func currentUser() string {
	if u, err := user.Current(); err == nil && u.Username != "" {
		return u.Username
	}
	return os.Getenv("USER")
}
