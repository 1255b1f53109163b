// Package main is the entry point for the loko CLI.
// loko compiles a narrative Markdown document through a layout fixpoint,
// resolving forward references like page numbers once layout converges.
package main

import (
	"fmt"
	"os"

	"github.com/madstone-tech/loko/cmd"
)

var (
	version = "dev"
	commit  = "none"
	date    = "unknown"
	builtBy = "unknown"
)

func main() {
	cmd.SetVersionInfo(version, commit, date, builtBy)

	if err := cmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
