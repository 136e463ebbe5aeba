package cli

import (
	"fmt"

	"github.com/glorpus-work/artifactswap/pkg/archive"
	"github.com/glorpus-work/artifactswap/pkg/config"
	"github.com/glorpus-work/artifactswap/pkg/errors"
	"github.com/glorpus-work/artifactswap/pkg/eventstream"
	"github.com/glorpus-work/artifactswap/pkg/fsutil"
	mavenhttp "github.com/glorpus-work/artifactswap/pkg/http"
	"github.com/glorpus-work/artifactswap/pkg/logger"
	"github.com/glorpus-work/artifactswap/pkg/repository"
	"github.com/sirupsen/logrus"
)

// These variables will be set by the main package
var (
	ConfigPath *string
	LogLevel   *string
	NoColor    *bool
)

// TempFiles tracks the staging files of installs in flight. The main package
// cleans it up on exit.
var TempFiles = repository.NewTempFileTracker()

// loadConfig loads the configuration and applies the global flag overrides.
func loadConfig() (*config.Config, error) {
	cfg, err := config.LoadConfig(getConfigPath())
	if err != nil {
		return nil, fmt.Errorf("failed to load config: %w", err)
	}

	if LogLevel != nil && *LogLevel != "" {
		cfg.Settings.LogLevel = *LogLevel
	}
	logger.InitLogger(cfg.Settings.LogLevel, NoColor != nil && *NoColor)
	if cfg.Settings.LogFile != "" {
		logger.SetOutputFile(cfg.Settings.LogFile)
	}

	return cfg, nil
}

func getConfigPath() string {
	if ConfigPath != nil && *ConfigPath != "" {
		return *ConfigPath
	}

	defaultPath, err := config.DefaultConfigPath()
	if err != nil {
		logger.Warn("Failed to get default config path, using empty path", logrus.Fields{"error": err})
		return ""
	}
	return defaultPath
}

// mavenRoot returns the local repository, preferring the flag value over the config.
func mavenRoot(cfg *config.Config, flagValue string) string {
	if flagValue != "" {
		return flagValue
	}
	return cfg.Paths.MavenLocal
}

func requireMavenRoot(root string) error {
	if !fsutil.IsDir(root) {
		return errors.Wrapf(errors.ErrMavenRootNotExists, "%s", root)
	}
	return nil
}

func loadMavenClient(cfg *config.Config) (*mavenhttp.MavenClient, error) {
	authenticator, err := cfg.Repository.Authenticator()
	if err != nil {
		return nil, err
	}
	return mavenhttp.NewMavenClient(cfg.Repository.BaseURL, cfg.HTTP, authenticator)
}

func repositoryOptions(cfg *config.Config, root string) repository.Options {
	opts := repository.Options{
		MavenRoot:         root,
		PrimaryRepository: cfg.Repository.PrimaryRepository,
		ArtifactGroup:     cfg.Repository.ArtifactGroup,
	}
	if cfg.Settings.VerifyArchives {
		opts.Verifier = archive.NewManager()
	}
	return opts
}

// loadEventSink always logs the record and also publishes it wherever the
// eventstream config asks for.
func loadEventSink(cfg *config.Config) (eventstream.Sink, error) {
	sinks := eventstream.MultiSink{eventstream.LogSink{}}
	if cfg.Eventstream.Enabled {
		httpSink, err := eventstream.NewHTTPSink(cfg.Eventstream.BaseURL, cfg.Eventstream.GzipHeader, cfg.HTTP.Timeout)
		if err != nil {
			return nil, err
		}
		sinks = append(sinks, httpSink)
	}
	if cfg.Eventstream.Textfile != "" {
		sinks = append(sinks, eventstream.NewTextfileSink(cfg.Eventstream.Textfile))
	}
	return sinks, nil
}
