package cmd

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"
)

func metadataCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "metadata",
		Short: "Show dataset metadata",
		Long: "Show the unique states, districts, commodities, and markets in\n" +
			"the price dataset.",
		Example: `  # Summarize the dataset
  mpt metadata

  # Full metadata as JSON
  mpt metadata --output json`,
		RunE: func(_ *cobra.Command, _ []string) error {
			c := newClient()
			resp, err := c.GetMetadata(context.Background())
			if err != nil {
				return err
			}

			if jsonOutput() {
				return outputJSON(resp)
			}

			fmt.Println(resp.Message)
			return printMetadataDetail(resp)
		},
	}
}
