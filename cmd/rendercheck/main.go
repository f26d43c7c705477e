// Package main provides the entry point for the rendercheck CLI.
package main

import (
	"errors"
	"fmt"
	"os"

	"github.com/raphaelgruber/rendercheck/internal/cli"
)

func main() {
	if err := cli.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		if errors.Is(err, cli.ErrBlockingFindings) {
			os.Exit(2)
		}
		os.Exit(1)
	}
}
