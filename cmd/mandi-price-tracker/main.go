// Package main is the entry point for the mandi-price-tracker server.
package main

import (
	"os"

	"github.com/khetdata/mandi-price-tracker/cmd/mandi-price-tracker/cmd"
)

func main() {
	if err := cmd.Execute(); err != nil {
		os.Exit(1)
	}
}
