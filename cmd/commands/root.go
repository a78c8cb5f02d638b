package commands

import (
	"github.com/spf13/cobra"

	"github.com/ncobase/facet/config"
	"github.com/ncobase/facet/log"
	"github.com/ncobase/facet/version"
)

// NewRootCmd creates the root command
func NewRootCmd() *cobra.Command {
	var configPath string
	var cleanup func()

	rootCmd := &cobra.Command{
		Use:   "facet",
		Short: "Faceted search toolkit for Elasticsearch, OpenSearch and Meilisearch",
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			var paths []string
			if configPath != "" {
				paths = append(paths, configPath)
			}
			cfg, err := config.Init(paths...)
			if err != nil {
				return err
			}
			cleanup, err = log.Init(cfg.Logger)
			if err != nil {
				return err
			}
			log.SetVersion(version.GetVersionInfo().Version)
			return nil
		},
		PersistentPostRun: func(cmd *cobra.Command, args []string) {
			if cleanup != nil {
				cleanup()
			}
		},
	}

	rootCmd.PersistentFlags().StringVarP(&configPath, "config", "c", "", "config file path")

	// Add subcommands
	rootCmd.AddCommand(
		newHealthCommand(),
		newSearchCommand(),
		newIndexCommand(),
		NewVersionCommand(),
	)

	return rootCmd
}
