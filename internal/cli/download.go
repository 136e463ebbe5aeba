package cli

import (
	"fmt"

	"github.com/glorpus-work/artifactswap/pkg/fsutil"
	"github.com/glorpus-work/artifactswap/pkg/gradle"
	"github.com/glorpus-work/artifactswap/pkg/logger"
	"github.com/glorpus-work/artifactswap/pkg/orchestrator"
	"github.com/glorpus-work/artifactswap/pkg/repository"
	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
)

type downloadOptions struct {
	bomVersion           string
	gradlePropertiesFile string
	settingsGradleFile   string
	mavenLocalPath       string
}

// NewDownloadArtifactsCmd creates the download-artifacts command.
func NewDownloadArtifactsCmd() *cobra.Command {
	var opts downloadOptions

	cmd := &cobra.Command{
		Use:   "download-artifacts",
		Short: "Download and install the artifacts of a BOM",
		Long: `Download every artifact managed by a BOM, plus the proto artifacts of the
Gradle build, into the local Maven repository. Files already present locally
are skipped. Without --bom-version the newest published BOM is used.`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runDownloadArtifacts(cmd, opts)
		},
	}

	cmd.Flags().StringVar(&opts.bomVersion, "bom-version", "", "BOM version to sync (default: newest published)")
	cmd.Flags().StringVar(&opts.gradlePropertiesFile, "gradle-properties-file", "", "gradle.properties to read proto versions from (defaults to config)")
	cmd.Flags().StringVar(&opts.settingsGradleFile, "settings-gradle-file", "", "settings file listing the Gradle projects (defaults to config)")
	cmd.Flags().StringVar(&opts.mavenLocalPath, "maven-local-path", "", "local Maven repository (defaults to config)")

	return cmd
}

func runDownloadArtifacts(cmd *cobra.Command, opts downloadOptions) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}

	root := mavenRoot(cfg, opts.mavenLocalPath)
	if err := fsutil.EnsureDir(root); err != nil {
		return fmt.Errorf("failed to create maven local repository: %w", err)
	}

	propertiesFile := firstNonEmpty(opts.gradlePropertiesFile, cfg.Gradle.PropertiesFile)
	settingsFile := firstNonEmpty(opts.settingsGradleFile, cfg.Gradle.SettingsFile)

	properties, err := gradle.LoadProperties(propertiesFile)
	if err != nil {
		return err
	}
	projects := gradle.NewSettingsProjectsProvider("", settingsFile, cfg.Gradle.ExcludedProjects)

	client, err := loadMavenClient(cfg)
	if err != nil {
		return err
	}
	repoOpts := repositoryOptions(cfg, root)
	remote, err := repository.NewRemote(client, repoOpts, TempFiles)
	if err != nil {
		return err
	}
	sink, err := loadEventSink(cfg)
	if err != nil {
		return err
	}

	downloader := &orchestrator.Downloader{
		Repository: remote,
		BomFinder:  repository.NewMetadataBomVersionFinder(client, repoOpts),
		Properties: properties,
		Projects:   projects,
		Sink:       sink,
		Options: orchestrator.DownloaderOptions{
			PublicRepository:               cfg.Repository.PublicRepository,
			ProtosGroup:                    cfg.Repository.ProtosGroup,
			ProtosGeneratedVersionProperty: cfg.Gradle.ProtosGeneratedVersionProperty,
			ProtosSchemaVersionProperty:    cfg.Gradle.ProtosSchemaVersionProperty,
		},
		Hooks: orchestrator.Hooks{OnEvent: func(e orchestrator.Event) {
			logger.Debug(e.Msg, logrus.Fields{"phase": e.Phase, "id": e.ID})
		}},
	}

	logger.Info("Starting artifact downloader", logrus.Fields{"maven_local": root})
	event, err := downloader.DownloadAndInstallArtifacts(cmd.Context(), opts.bomVersion)
	if err != nil {
		return fmt.Errorf("failed to download artifacts: %w", err)
	}
	logger.Info("Artifact downloader completed", logrus.Fields{"result": event.Result})
	return nil
}

func firstNonEmpty(values ...string) string {
	for _, v := range values {
		if v != "" {
			return v
		}
	}
	return ""
}
