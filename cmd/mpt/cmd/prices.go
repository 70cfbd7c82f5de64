package cmd

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	apiclient "github.com/khetdata/mandi-price-tracker/internal/api/client"
)

func pricesCmd() *cobra.Command {
	var (
		commodity string
		state     string
		district  string
	)

	cmd := &cobra.Command{
		Use:   "prices",
		Short: "Look up mandi prices",
		Long: "Look up commodity prices by state and optional district.\n" +
			"All filters match as case-insensitive substrings.",
		Example: `  # Tomato prices in Karnataka
  mpt prices --commodity Tomato --state Karnataka

  # Narrow to a district
  mpt prices --commodity Tomato --state Karnataka --district Kalaburgi

  # Partial names work too
  mpt prices --commodity toma --state karna`,
		RunE: func(_ *cobra.Command, _ []string) error {
			c := newClient()
			resp, err := c.GetPrices(context.Background(), &apiclient.PricesParams{
				Commodity: commodity,
				State:     state,
				District:  district,
			})
			if err != nil {
				return err
			}

			if jsonOutput() {
				return outputJSON(resp)
			}

			fmt.Println(resp.Message)
			if len(resp.Prices) == 0 {
				if resp.Suggestions != nil && resp.Suggestions.WorkingCombination != "" {
					fmt.Printf("Try: %s\n", resp.Suggestions.WorkingCombination)
				}
				return nil
			}
			return printQuotesTable(resp.Prices)
		},
	}

	cmd.Flags().StringVar(&commodity, "commodity", "", "commodity name")
	cmd.Flags().StringVar(&state, "state", "", "state name")
	cmd.Flags().StringVar(&district, "district", "", "district name")

	return cmd
}
