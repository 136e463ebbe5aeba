package gradle

import (
	"bufio"
	"context"
	"os"
	"path/filepath"
	"regexp"
	"slices"
	"strings"
	"time"

	"github.com/glorpus-work/artifactswap/pkg/errors"
	"github.com/glorpus-work/artifactswap/pkg/logger"
	"github.com/sirupsen/logrus"
)

var includeProject = regexp.MustCompile(`include *[( ]['"](.+)['"][) ]?`)

// ProjectHashingInfo describes one Gradle project of the build.
type ProjectHashingInfo struct {
	ProjectPath      string
	ProjectDirectory string
}

// SettingsProjectsProvider lists the projects included by a settings file
// without running Gradle.
type SettingsProjectsProvider struct {
	rootDir      string
	settingsFile string
	excluded     []string
}

// NewSettingsProjectsProvider creates a provider. Project directories are
// resolved against rootDir; when rootDir is empty the directory of
// settingsFile is used.
func NewSettingsProjectsProvider(rootDir, settingsFile string, excluded []string) *SettingsProjectsProvider {
	if rootDir == "" {
		rootDir = filepath.Dir(settingsFile)
	}
	return &SettingsProjectsProvider{rootDir: rootDir, settingsFile: settingsFile, excluded: excluded}
}

// ProjectHashingInfos parses the include statements of the settings file.
// Commented out lines and excluded projects are skipped.
func (p *SettingsProjectsProvider) ProjectHashingInfos(ctx context.Context) ([]ProjectHashingInfo, error) {
	start := time.Now()
	f, err := os.Open(p.settingsFile)
	if err != nil {
		return nil, errors.Wrapf(errors.ErrProjectsUnavailable, "%s: %v", p.settingsFile, err)
	}
	defer func() { _ = f.Close() }()

	var projects []ProjectHashingInfo
	scanner := bufio.NewScanner(f)
	for scanner.Scan() {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		line := scanner.Text()
		if strings.HasPrefix(strings.TrimSpace(line), "//") {
			continue
		}
		m := includeProject.FindStringSubmatch(line)
		if m == nil {
			continue
		}
		projectPath := m[1]
		if slices.Contains(p.excluded, projectPath) {
			continue
		}
		relative := strings.TrimPrefix(strings.ReplaceAll(projectPath, ":", string(filepath.Separator)), string(filepath.Separator))
		projects = append(projects, ProjectHashingInfo{
			ProjectPath:      projectPath,
			ProjectDirectory: filepath.Join(p.rootDir, relative),
		})
	}
	if err := scanner.Err(); err != nil {
		return nil, errors.Wrapf(errors.ErrProjectsUnavailable, "%s: %v", p.settingsFile, err)
	}

	logger.Debug("Parsed gradle settings", logrus.Fields{
		"projects":    len(projects),
		"file":        p.settingsFile,
		"duration_ms": time.Since(start).Milliseconds(),
	})
	return projects, nil
}
