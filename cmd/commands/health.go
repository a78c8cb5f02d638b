package commands

import (
	"context"
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/ncobase/facet"
	"github.com/ncobase/facet/config"
)

func newHealthCommand() *cobra.Command {
	var timeout time.Duration

	cmd := &cobra.Command{
		Use:   "health",
		Short: "Probe the configured search engines",
		RunE: func(cmd *cobra.Command, args []string) error {
			client, err := facet.NewClient(config.GetConfig())
			if err != nil {
				return err
			}

			ctx, cancel := context.WithTimeout(cmd.Context(), timeout)
			defer cancel()

			for engine, probeErr := range client.Health(ctx) {
				if probeErr != nil {
					fmt.Printf("%-14s unhealthy: %v\n", engine, probeErr)
					continue
				}
				fmt.Printf("%-14s ok\n", engine)
			}
			fmt.Printf("serving engine: %s\n", client.Engine())
			return nil
		},
	}

	cmd.Flags().DurationVar(&timeout, "timeout", 10*time.Second, "probe timeout")
	return cmd
}
