package commands

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/ncobase/facet"
	"github.com/ncobase/facet/config"
	"github.com/ncobase/facet/search"
	"github.com/ncobase/facet/utils/convert"
)

func newSearchCommand() *cobra.Command {
	var (
		index     string
		queryText string
		from      int
		size      int
	)

	cmd := &cobra.Command{
		Use:   "search",
		Short: "Run a search against the serving engine",
		RunE: func(cmd *cobra.Command, args []string) error {
			client, err := facet.NewClient(config.GetConfig())
			if err != nil {
				return err
			}

			resp, err := client.Search(cmd.Context(), &search.Request{
				Index: index,
				Query: queryText,
				From:  from,
				Size:  size,
			})
			if err != nil {
				return err
			}

			out, err := convert.PrettyJSON(resp)
			if err != nil {
				return err
			}
			fmt.Println(out)
			return nil
		},
	}

	cmd.Flags().StringVarP(&index, "index", "i", "", "index to search (without prefix)")
	cmd.Flags().StringVarP(&queryText, "query", "q", "", "free text query")
	cmd.Flags().IntVar(&from, "from", 0, "result window offset")
	cmd.Flags().IntVar(&size, "size", 10, "result window size")
	_ = cmd.MarkFlagRequired("index")
	return cmd
}
