// Package main provides the arxium command-line client.
package main

import (
	"os"

	"github.com/raphaelgruber/arxium/internal/cli"
)

func main() {
	if err := cli.Execute(); err != nil {
		os.Exit(1)
	}
}
