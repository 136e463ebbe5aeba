package cli

import (
	"github.com/glorpus-work/artifactswap/pkg/cache"
	"github.com/glorpus-work/artifactswap/pkg/errors"
	"github.com/glorpus-work/artifactswap/pkg/logger"
	"github.com/glorpus-work/artifactswap/pkg/orchestrator"
	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
)

// NewArtifactRemoverCmd creates the artifact-remover command.
func NewArtifactRemoverCmd() *cobra.Command {
	var (
		mavenLocalPath string
		bomsToKeep     int
	)

	cmd := &cobra.Command{
		Use:   "artifact-remover",
		Short: "Remove artifacts no recent BOM needs",
		Long: `Examine the local Maven repository and remove the project versions that none
of the most recently installed BOMs declare, along with every older BOM.`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg, err := loadConfig()
			if err != nil {
				return err
			}
			root := mavenRoot(cfg, mavenLocalPath)
			if err := requireMavenRoot(root); err != nil {
				return err
			}
			if !cmd.Flags().Changed("boms-to-keep") {
				bomsToKeep = cfg.Remover.BomsToKeep
			}
			if bomsToKeep < 0 {
				return errors.Wrapf(errors.ErrNegativeBomsToKeep, "--boms-to-keep %d", bomsToKeep)
			}
			sink, err := loadEventSink(cfg)
			if err != nil {
				return err
			}

			remover := &orchestrator.Remover{
				Repository: cache.NewLocalRepository(root, cfg.Repository.ArtifactGroup),
				Sink:       sink,
			}
			logger.Info("Starting artifact remover", logrus.Fields{"maven_local": root, "boms_to_keep": bomsToKeep})
			res := remover.RemoveArtifacts(cmd.Context(), bomsToKeep)
			remover.LogResult(cmd.Context(), res)
			return nil
		},
	}

	cmd.Flags().StringVar(&mavenLocalPath, "maven-local-path", "", "local Maven repository (defaults to config)")
	cmd.Flags().IntVar(&bomsToKeep, "boms-to-keep", 0, "number of most recent BOMs to keep (defaults to config)")

	return cmd
}
