package model

// DownloadFileType is one of the files that make up an artifact installation.
type DownloadFileType int

const (
	FileTypePOM DownloadFileType = iota
	FileTypeAAR
	FileTypeJAR
	FileTypeModule
	FileTypeSourcesJAR
)

var fileTypeSuffixes = [...]string{
	FileTypePOM:        ".pom",
	FileTypeAAR:        ".aar",
	FileTypeJAR:        ".jar",
	FileTypeModule:     ".module",
	FileTypeSourcesJAR: "-sources.jar",
}

var fileTypeNames = [...]string{
	FileTypePOM:        "POM",
	FileTypeAAR:        "AAR",
	FileTypeJAR:        "JAR",
	FileTypeModule:     "MODULE",
	FileTypeSourcesJAR: "SOURCES_JAR",
}

// AllFileTypes returns every file type in declaration order.
func AllFileTypes() []DownloadFileType {
	return []DownloadFileType{FileTypePOM, FileTypeAAR, FileTypeJAR, FileTypeModule, FileTypeSourcesJAR}
}

// Suffix returns the file name suffix appended to "{artifact}-{version}".
func (t DownloadFileType) Suffix() string {
	if int(t) < 0 || int(t) >= len(fileTypeSuffixes) {
		return ""
	}
	return fileTypeSuffixes[t]
}

func (t DownloadFileType) String() string {
	if int(t) < 0 || int(t) >= len(fileTypeNames) {
		return "UNKNOWN"
	}
	return fileTypeNames[t]
}

// LocalArtifactState is derived from the file system for one artifact file.
type LocalArtifactState int

const (
	NotInstalled LocalArtifactState = iota
	Installed
)

func (s LocalArtifactState) String() string {
	if s == Installed {
		return "INSTALLED"
	}
	return "NOT_INSTALLED"
}
