package commands

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/ncobase/facet"
	"github.com/ncobase/facet/config"
	"github.com/ncobase/facet/search"
)

func newIndexCommand() *cobra.Command {
	var (
		index      string
		documentID string
		file       string
	)

	cmd := &cobra.Command{
		Use:   "index [document-json]",
		Short: "Index a document into the serving engine",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			var raw []byte
			switch {
			case file != "":
				data, err := os.ReadFile(file)
				if err != nil {
					return err
				}
				raw = data
			case len(args) == 1:
				raw = []byte(args[0])
			default:
				return fmt.Errorf("provide a document as an argument or via --file")
			}

			var doc map[string]any
			if err := json.Unmarshal(raw, &doc); err != nil {
				return fmt.Errorf("document is not valid JSON: %w", err)
			}

			client, err := facet.NewClient(config.GetConfig())
			if err != nil {
				return err
			}
			if err := client.Index(cmd.Context(), &search.IndexRequest{
				Index:      index,
				DocumentID: documentID,
				Document:   doc,
			}); err != nil {
				return err
			}

			fmt.Printf("indexed into %s\n", index)
			return nil
		},
	}

	cmd.Flags().StringVarP(&index, "index", "i", "", "index to write to (without prefix)")
	cmd.Flags().StringVar(&documentID, "id", "", "document ID, engine-assigned when empty")
	cmd.Flags().StringVarP(&file, "file", "f", "", "file holding the document JSON")
	_ = cmd.MarkFlagRequired("index")
	return cmd
}
