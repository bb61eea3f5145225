// Package main is the entry point for the pricing-calc CLI.
package main

import (
	"os"

	"pricing-calc/cmd/cli/cmd"
)

func main() {
	if err := cmd.Execute(); err != nil {
		os.Exit(1)
	}
}
