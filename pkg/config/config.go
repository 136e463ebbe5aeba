// Package config provides configuration management for artifactswap.
// It handles loading, validating and saving the YAML configuration file that
// describes the remote Maven repository, the HTTP transport, the Gradle
// workspace, the local Maven cache and where events are reported.
package config

import (
	"fmt"
	"io"
	"net/url"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/glorpus-work/artifactswap/pkg/errors"
	"github.com/glorpus-work/artifactswap/pkg/fsutil"
	"gopkg.in/yaml.v3"
)

// Config represents the application configuration.
type Config struct {
	Repository  RepositoryConfig  `yaml:"repository"`
	HTTP        HTTPConfig        `yaml:"http"`
	Gradle      GradleConfig      `yaml:"gradle"`
	Paths       PathsConfig       `yaml:"paths"`
	Remover     RemoverConfig     `yaml:"remover"`
	Eventstream EventstreamConfig `yaml:"eventstream"`
	Settings    Settings          `yaml:"settings"`
}

// RepositoryConfig describes the remote Maven repository the artifacts are fetched from.
type RepositoryConfig struct {
	BaseURL           string `yaml:"base_url"`
	PrimaryRepository string `yaml:"primary_repository"`
	PublicRepository  string `yaml:"public_repository"`
	ArtifactGroup     string `yaml:"artifact_group"`
	ProtosGroup       string `yaml:"protos_group"`

	// TokenFile holds the bearer token on its first line. Empty disables auth.
	TokenFile string `yaml:"token_file,omitempty"`
	// AuthReads also authenticates GET and HEAD requests.
	AuthReads bool `yaml:"auth_reads"`
}

// HTTPConfig tunes the shared HTTP transport.
type HTTPConfig struct {
	Timeout         time.Duration `yaml:"timeout"`
	MaxConnsPerHost int           `yaml:"max_conns_per_host"`
	MaxIdleConns    int           `yaml:"max_idle_conns"`
	MaxRequests     int           `yaml:"max_requests"`
	RetryMax        int           `yaml:"retry_max"`
	UserAgent       string        `yaml:"user_agent"`
}

// GradleConfig points at the Gradle workspace the proto artifacts are discovered from.
type GradleConfig struct {
	ProtosGeneratedVersionProperty string   `yaml:"protos_generated_version_property"`
	ProtosSchemaVersionProperty    string   `yaml:"protos_schema_version_property"`
	PropertiesFile                 string   `yaml:"properties_file"`
	SettingsFile                   string   `yaml:"settings_file"`
	ExcludedProjects               []string `yaml:"excluded_projects,omitempty"`
}

// PathsConfig holds local file system locations.
type PathsConfig struct {
	// MavenLocal is the maven local repository root, usually ~/.m2/repository.
	MavenLocal string `yaml:"maven_local"`
}

// RemoverConfig configures the cache garbage collector.
type RemoverConfig struct {
	BomsToKeep int `yaml:"boms_to_keep"`
}

// EventstreamConfig configures where run results are reported.
type EventstreamConfig struct {
	Enabled    bool   `yaml:"enabled"`
	BaseURL    string `yaml:"base_url"`
	GzipHeader string `yaml:"gzip_header,omitempty"`
	// Textfile is a node-exporter textfile collector directory. Empty disables it.
	Textfile string `yaml:"textfile,omitempty"`
}

// Settings represents general application settings.
type Settings struct {
	LogLevel       string `yaml:"log_level"`
	LogFile        string `yaml:"log_file,omitempty"`
	VerifyArchives bool   `yaml:"verify_archives"`
}

// Default configuration values.
const (
	DefaultBaseURL           = "https://artifactory.example.com/artifactory"
	DefaultPrimaryRepository = "artifact-swap-demo"
	DefaultPublicRepository  = "square-public"
	DefaultArtifactGroup     = "com.squareup.register.sandbags"
	DefaultProtosGroup       = "com.squareup.protos"

	DefaultHTTPTimeout     = 30 * time.Second
	DefaultMaxConnsPerHost = 128
	DefaultMaxIdleConns    = 512
	DefaultMaxRequests     = 512
	DefaultRetryMax        = 3
	DefaultUserAgent       = "artifactswap"

	DefaultProtosGeneratedVersionProperty = "square.protosGeneratedVersion"
	DefaultProtosSchemaVersionProperty    = "square.protosSchemaVersion"
	DefaultPropertiesFile                 = "gradle.properties"
	DefaultSettingsFile                   = "settings_modules_all.gradle"

	// DefaultBomsToKeep is two BOMs a day for two weeks.
	DefaultBomsToKeep = 28

	DefaultEventstreamBaseURL = "https://api.squareup.com"
	DefaultGzipHeader         = "X-Square-Gzip"

	DefaultLogLevel = "info"

	// YAMLIndent is the number of spaces used for YAML indentation.
	YAMLIndent = 2
)

var validLogLevels = []string{"panic", "fatal", "error", "warn", "warning", "info", "debug", "trace"}

// DefaultConfig returns a configuration with default values.
func DefaultConfig() *Config {
	return &Config{
		Repository: RepositoryConfig{
			BaseURL:           DefaultBaseURL,
			PrimaryRepository: DefaultPrimaryRepository,
			PublicRepository:  DefaultPublicRepository,
			ArtifactGroup:     DefaultArtifactGroup,
			ProtosGroup:       DefaultProtosGroup,
		},
		HTTP: HTTPConfig{
			Timeout:         DefaultHTTPTimeout,
			MaxConnsPerHost: DefaultMaxConnsPerHost,
			MaxIdleConns:    DefaultMaxIdleConns,
			MaxRequests:     DefaultMaxRequests,
			RetryMax:        DefaultRetryMax,
			UserAgent:       DefaultUserAgent,
		},
		Gradle: GradleConfig{
			ProtosGeneratedVersionProperty: DefaultProtosGeneratedVersionProperty,
			ProtosSchemaVersionProperty:    DefaultProtosSchemaVersionProperty,
			PropertiesFile:                 DefaultPropertiesFile,
			SettingsFile:                   DefaultSettingsFile,
		},
		Paths: PathsConfig{
			MavenLocal: defaultMavenLocal(),
		},
		Remover: RemoverConfig{
			BomsToKeep: DefaultBomsToKeep,
		},
		Eventstream: EventstreamConfig{
			BaseURL:    DefaultEventstreamBaseURL,
			GzipHeader: DefaultGzipHeader,
		},
		Settings: Settings{
			LogLevel: DefaultLogLevel,
		},
	}
}

// LoadConfig loads configuration from a file. A missing file yields the defaults.
func LoadConfig(path string) (*Config, error) {
	if path == "" {
		return nil, errors.ErrEmptyConfigPath
	}

	absPath, err := filepath.Abs(path)
	if err != nil {
		return nil, errors.Wrapf(err, "invalid config path %s", path)
	}

	file, err := os.Open(absPath)
	if err != nil {
		if os.IsNotExist(err) {
			return DefaultConfig(), nil
		}
		return nil, errors.Wrapf(err, "failed to open config file: %s", path)
	}
	defer func() { _ = file.Close() }()

	return LoadConfigFromReader(file)
}

// LoadConfigFromReader loads configuration from an io.Reader.
func LoadConfigFromReader(reader io.Reader) (*Config, error) {
	data, err := io.ReadAll(reader)
	if err != nil {
		return nil, errors.Wrap(err, "failed to read config data")
	}

	// Zero is a meaningful boms_to_keep, so its default is seeded before decoding.
	config := Config{Remover: RemoverConfig{BomsToKeep: DefaultBomsToKeep}}
	if err := yaml.Unmarshal(data, &config); err != nil {
		return nil, errors.Wrap(errors.ErrConfigParse, err.Error())
	}

	config.applyDefaults()

	if err := config.Validate(); err != nil {
		return nil, err
	}

	return &config, nil
}

// SaveConfig writes the configuration to a file, replacing it atomically.
func (c *Config) SaveConfig(path string) error {
	if path == "" {
		return errors.ErrEmptyConfigPath
	}

	absPath, err := filepath.Abs(path)
	if err != nil {
		return errors.Wrapf(err, "invalid config path %s", path)
	}

	if err := fsutil.EnsureDir(filepath.Dir(absPath)); err != nil {
		return errors.Wrap(errors.ErrConfigDirectory, err.Error())
	}

	tempPath := absPath + ".tmp"
	file, err := os.OpenFile(tempPath, os.O_WRONLY|os.O_CREATE|os.O_TRUNC, fsutil.FileModeDefault)
	if err != nil {
		return errors.Wrapf(err, "failed to create %s", tempPath)
	}

	encoder := yaml.NewEncoder(file)
	encoder.SetIndent(YAMLIndent)

	if err := encoder.Encode(c); err != nil {
		_ = file.Close()
		_ = os.Remove(tempPath)
		return errors.Wrap(errors.ErrConfigEncode, err.Error())
	}

	_ = encoder.Close()
	_ = file.Close()

	if err := fsutil.Replace(tempPath, absPath); err != nil {
		_ = os.Remove(tempPath)
		return errors.Wrapf(err, "failed to write config file %s", absPath)
	}

	return nil
}

// ToYAML converts the config to YAML bytes.
func (c *Config) ToYAML() ([]byte, error) {
	data, err := yaml.Marshal(c)
	if err != nil {
		return nil, errors.Wrap(errors.ErrConfigEncode, err.Error())
	}
	return data, nil
}

// Validate checks if the configuration is valid.
func (c *Config) Validate() error {
	if c == nil {
		return errors.ErrConfigValidation
	}
	for _, check := range []func() error{
		c.Repository.validate,
		c.HTTP.validate,
		c.Gradle.validate,
		c.Remover.validate,
		c.Eventstream.validate,
		c.Settings.validate,
	} {
		if err := check(); err != nil {
			return errors.Wrap(errors.ErrConfigValidation, err.Error())
		}
	}
	if c.Paths.MavenLocal == "" {
		return errors.Wrap(errors.ErrConfigValidation, "paths.maven_local must be set")
	}
	return nil
}

func (r RepositoryConfig) validate() error {
	if err := validateURL("repository.base_url", r.BaseURL); err != nil {
		return err
	}
	for key, value := range map[string]string{
		"repository.primary_repository": r.PrimaryRepository,
		"repository.public_repository":  r.PublicRepository,
		"repository.artifact_group":     r.ArtifactGroup,
		"repository.protos_group":       r.ProtosGroup,
	} {
		if strings.TrimSpace(value) == "" {
			return fmt.Errorf("%s must be set", key)
		}
	}
	return nil
}

func (h HTTPConfig) validate() error {
	if h.Timeout <= 0 {
		return fmt.Errorf("http.timeout must be positive, got %s", h.Timeout)
	}
	if h.MaxConnsPerHost <= 0 {
		return fmt.Errorf("http.max_conns_per_host must be positive, got %d", h.MaxConnsPerHost)
	}
	if h.MaxIdleConns < h.MaxConnsPerHost {
		return fmt.Errorf("http.max_idle_conns (%d) must not be lower than http.max_conns_per_host (%d)",
			h.MaxIdleConns, h.MaxConnsPerHost)
	}
	if h.MaxRequests <= 0 {
		return fmt.Errorf("http.max_requests must be positive, got %d", h.MaxRequests)
	}
	if h.RetryMax < 0 {
		return fmt.Errorf("http.retry_max must not be negative, got %d", h.RetryMax)
	}
	return nil
}

func (g GradleConfig) validate() error {
	if g.ProtosGeneratedVersionProperty == "" || g.ProtosSchemaVersionProperty == "" {
		return fmt.Errorf("gradle proto version properties must be set")
	}
	return nil
}

func (r RemoverConfig) validate() error {
	if r.BomsToKeep < 0 {
		return fmt.Errorf("remover.boms_to_keep must not be negative, got %d", r.BomsToKeep)
	}
	return nil
}

func (e EventstreamConfig) validate() error {
	if !e.Enabled {
		return nil
	}
	return validateURL("eventstream.base_url", e.BaseURL)
}

func (s Settings) validate() error {
	for _, level := range validLogLevels {
		if strings.EqualFold(s.LogLevel, level) {
			return nil
		}
	}
	return fmt.Errorf("invalid log level %q, must be one of: %s", s.LogLevel, strings.Join(validLogLevels, ", "))
}

func validateURL(key, raw string) error {
	u, err := url.Parse(raw)
	if err != nil {
		return fmt.Errorf("%s is not a valid URL: %w", key, err)
	}
	if u.Scheme != "http" && u.Scheme != "https" {
		return fmt.Errorf("%s must use http or https, got %q", key, raw)
	}
	return nil
}

// applyDefaults fills zero values left by a partial config file.
func (c *Config) applyDefaults() {
	defaults := DefaultConfig()

	setIfEmpty(&c.Repository.BaseURL, defaults.Repository.BaseURL)
	setIfEmpty(&c.Repository.PrimaryRepository, defaults.Repository.PrimaryRepository)
	setIfEmpty(&c.Repository.PublicRepository, defaults.Repository.PublicRepository)
	setIfEmpty(&c.Repository.ArtifactGroup, defaults.Repository.ArtifactGroup)
	setIfEmpty(&c.Repository.ProtosGroup, defaults.Repository.ProtosGroup)
	c.Repository.TokenFile = expandHome(c.Repository.TokenFile)

	if c.HTTP.Timeout == 0 {
		c.HTTP.Timeout = defaults.HTTP.Timeout
	}
	if c.HTTP.MaxConnsPerHost == 0 {
		c.HTTP.MaxConnsPerHost = defaults.HTTP.MaxConnsPerHost
	}
	if c.HTTP.MaxIdleConns == 0 {
		c.HTTP.MaxIdleConns = defaults.HTTP.MaxIdleConns
	}
	if c.HTTP.MaxRequests == 0 {
		c.HTTP.MaxRequests = defaults.HTTP.MaxRequests
	}
	setIfEmpty(&c.HTTP.UserAgent, defaults.HTTP.UserAgent)

	setIfEmpty(&c.Gradle.ProtosGeneratedVersionProperty, defaults.Gradle.ProtosGeneratedVersionProperty)
	setIfEmpty(&c.Gradle.ProtosSchemaVersionProperty, defaults.Gradle.ProtosSchemaVersionProperty)
	setIfEmpty(&c.Gradle.PropertiesFile, defaults.Gradle.PropertiesFile)
	setIfEmpty(&c.Gradle.SettingsFile, defaults.Gradle.SettingsFile)

	setIfEmpty(&c.Paths.MavenLocal, defaults.Paths.MavenLocal)
	c.Paths.MavenLocal = expandHome(c.Paths.MavenLocal)

	setIfEmpty(&c.Eventstream.BaseURL, defaults.Eventstream.BaseURL)
	c.Eventstream.Textfile = expandHome(c.Eventstream.Textfile)

	setIfEmpty(&c.Settings.LogLevel, defaults.Settings.LogLevel)
	c.Settings.LogFile = expandHome(c.Settings.LogFile)
}

func setIfEmpty(field *string, value string) {
	if *field == "" {
		*field = value
	}
}

func expandHome(path string) string {
	if path != "~" && !strings.HasPrefix(path, "~/") && !strings.HasPrefix(path, "~"+string(filepath.Separator)) {
		return path
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return path
	}
	return filepath.Join(home, strings.TrimPrefix(path, "~"))
}

func defaultMavenLocal() string {
	return expandHome(filepath.Join("~", ".m2", "repository"))
}

// DefaultConfigPath returns the default path to the configuration file.
func DefaultConfigPath() (string, error) {
	configDir, err := os.UserConfigDir()
	if err != nil {
		return "", errors.Wrap(err, "failed to get user config directory")
	}
	return filepath.Join(configDir, "artifactswap", "config.yaml"), nil
}
