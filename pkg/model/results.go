package model

import "time"

// ArtifactFile names one file of one artifact.
type ArtifactFile struct {
	Artifact Artifact
	FileType DownloadFileType
}

// File returns the artifact file the result refers to.
func (f ArtifactFile) File() ArtifactFile { return f }

// DownloadedArtifactFileResult is the outcome of fetching one remote file. It
// is one of DownloadSuccess, NoFileExists or DownloadFailure.
type DownloadedArtifactFileResult interface {
	File() ArtifactFile
	isDownloadResult()
}

// DownloadSuccess carries the fetched bytes. SizeBytes is -1 when unknown.
type DownloadSuccess struct {
	ArtifactFile
	Contents  []byte
	SizeBytes int64
	Duration  time.Duration
}

// NoFileExists means the remote answered 4xx: the file is legitimately absent.
type NoFileExists struct {
	ArtifactFile
}

// DownloadFailure means a 5xx or transport error.
type DownloadFailure struct {
	ArtifactFile
	Err      error
	Duration time.Duration
}

func (DownloadSuccess) isDownloadResult() {}
func (NoFileExists) isDownloadResult() {}
func (DownloadFailure) isDownloadResult() {}

// InstallArtifactFilesResult is the outcome of installing one artifact's
// downloaded files. It is one of InstallNoOp, InstallSuccess or InstallFailure.
type InstallArtifactFilesResult interface {
	isInstallResult()
}

// InstallNoOp means there was nothing to install.
type InstallNoOp struct{}

// InstallSuccess means every file was written.
type InstallSuccess struct {
	Duration time.Duration
}

// InstallFailure means at least one file write failed. Files written before
// the failure are left in place.
type InstallFailure struct {
	Duration time.Duration
	Err      error
}

func (InstallNoOp) isInstallResult() {}
func (InstallSuccess) isInstallResult() {}
func (InstallFailure) isInstallResult() {}
