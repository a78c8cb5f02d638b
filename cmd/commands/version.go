package commands

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/ncobase/facet/version"
)

// NewVersionCommand creates the version command
func NewVersionCommand() *cobra.Command {
	var asJSON bool

	cmd := &cobra.Command{
		Use:   "version",
		Short: "Print version information",
		RunE: func(cmd *cobra.Command, args []string) error {
			if asJSON {
				out, err := version.GetVersionInfo().JSON()
				if err != nil {
					return err
				}
				fmt.Println(out)
				return nil
			}
			version.Print()
			return nil
		},
	}

	cmd.Flags().BoolVar(&asJSON, "json", false, "print as JSON")
	return cmd
}
