package cli

import (
	"fmt"
	"os"
	"text/tabwriter"
	"time"

	"github.com/dustin/go-humanize"
	"github.com/glorpus-work/artifactswap/pkg/cache"
	"github.com/glorpus-work/artifactswap/pkg/model"
	"github.com/spf13/cobra"
)

// NewRepoStatsCmd creates the repo-stats command.
func NewRepoStatsCmd() *cobra.Command {
	var mavenLocalPath string

	cmd := &cobra.Command{
		Use:   "repo-stats",
		Short: "Show local repository statistics",
		Long:  "Measure the installed artifacts and BOMs of the local Maven repository",
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg, err := loadConfig()
			if err != nil {
				return err
			}
			root := mavenRoot(cfg, mavenLocalPath)
			if err := requireMavenRoot(root); err != nil {
				return err
			}

			repo := cache.NewLocalRepository(root, cfg.Repository.ArtifactGroup)
			stats, err := repo.MeasureRepository(cmd.Context())
			if err != nil {
				return fmt.Errorf("failed to measure repository: %w", err)
			}
			printRepoStats(repo.GroupDir(), stats)
			return nil
		},
	}

	cmd.Flags().StringVar(&mavenLocalPath, "maven-local-path", "", "local Maven repository (defaults to config)")

	return cmd
}

func printRepoStats(groupDir string, stats model.RepositoryStats) {
	tabWriter := tabwriter.NewWriter(os.Stdout, 0, 0, TabWidth, ' ', 0)
	_, _ = fmt.Fprintf(tabWriter, "Group directory:\t%s\n", groupDir)
	_, _ = fmt.Fprintf(tabWriter, "Projects:\t%s\n", humanize.Comma(stats.CountInstalledProjects))
	_, _ = fmt.Fprintf(tabWriter, "Artifacts:\t%s (%s)\n", humanize.Comma(stats.CountInstalledArtifacts), humanize.IBytes(uint64(max(stats.SizeOfInstalledArtifactsBytes, 0))))
	_, _ = fmt.Fprintf(tabWriter, "BOMs:\t%s (%s)\n", humanize.Comma(stats.CountInstalledBoms), humanize.IBytes(uint64(max(stats.SizeOfInstalledBomsBytes, 0))))
	_, _ = fmt.Fprintf(tabWriter, "Total size:\t%s\n", humanize.IBytes(uint64(max(stats.OverallRepoSizeBytes, 0))))
	_, _ = fmt.Fprintf(tabWriter, "Measured in:\t%s\n", stats.MeasurementDuration.Round(time.Millisecond))
	_ = tabWriter.Flush()
}
