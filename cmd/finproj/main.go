// Package main is the entry point for the finproj CLI.
package main

import (
	"os"

	"github.com/finkit/finproj/cmd/finproj/cmd"
)

func main() {
	if err := cmd.Execute(); err != nil {
		os.Exit(1)
	}
}
