package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/glorpus-work/artifactswap/internal/cli"
	"github.com/glorpus-work/artifactswap/pkg/logger"
	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
)

var (
	configPath string
	logLevel   string
	noColor    bool
)

func main() {
	os.Exit(run())
}

func run() int {
	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer cancel()
	defer func() {
		if err := cli.TempFiles.Cleanup(); err != nil {
			logger.Warn("Failed to remove temporary files", logrus.Fields{"error": err})
		}
	}()

	if err := newRootCmd().ExecuteContext(ctx); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return 1
	}
	return 0
}

func newRootCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "artifactswap",
		Short: "Keep the local Maven repository in sync with published build artifacts",
		Long: `artifactswap syncs prebuilt artifacts into the local Maven repository:
- download-artifacts: fetch everything a BOM snapshot manages
- artifact-remover: collect versions no recent BOM needs
- repo-stats: measure the local repository`,
		SilenceUsage: true,
	}

	cmd.PersistentFlags().StringVar(&configPath, "config", "", "config file path (default: auto-detect)")
	cmd.PersistentFlags().StringVar(&logLevel, "log-level", "", "log level (overrides config)")
	cmd.PersistentFlags().BoolVar(&noColor, "no-color", false, "disable colored output")

	cli.ConfigPath = &configPath
	cli.LogLevel = &logLevel
	cli.NoColor = &noColor

	cmd.AddCommand(
		cli.NewDownloadArtifactsCmd(),
		cli.NewArtifactRemoverCmd(),
		cli.NewRepoStatsCmd(),
		cli.NewConfigCmd(),
		cli.NewVersionCmd(),
	)

	return cmd
}
