// Package cmd implements the CLI commands for mandi-price-tracker.
package cmd

import (
	"github.com/spf13/cobra"
)

var cfgFile string

var rootCmd = &cobra.Command{
	Use:   "mandi-price-tracker",
	Short: "Serve mandi (wholesale market) commodity prices",
	Long: "An API-first service that answers agricultural commodity price queries " +
		"from a local CSV dataset, falls back to the data.gov.in open-data API " +
		"when the local dataset has no match, and serves dataset metadata for " +
		"selection UIs.",
}

func init() {
	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "config.yaml", "config file path")
}

// Execute runs the root command.
func Execute() error {
	return rootCmd.Execute()
}
