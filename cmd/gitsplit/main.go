// Package main provides the entry point for the gitsplit CLI tool.
package main

import (
	"os"

	"github.com/randalmurphal/gitsplit/internal/cli"
)

func main() {
	os.Exit(cli.Execute())
}
