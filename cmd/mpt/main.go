// Package main is the entry point for the mpt CLI client.
package main

import "github.com/khetdata/mandi-price-tracker/cmd/mpt/cmd"

func main() {
	cmd.Execute()
}
