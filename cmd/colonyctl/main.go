// Package main is the entry point for the colonyctl CLI.
//
// colonyctl deploys and manages colony clusters assembled from a shared pool
// of nodes. It resolves requested nodes against the pool, imports new
// infrastructure, waits for discovering nodes, and drives the backend to
// create, deploy and scale clusters.
//
// Commands: clusters, nodes, version, completion.
//
// For detailed usage information, run:
//
//	colonyctl --help
package main

import (
	"fmt"
	"os"

	"github.com/imamik/colonyctl/cmd/colonyctl/commands"
)

// Version information set by goreleaser at build time.
var (
	version = "dev"
	commit  = "none"
	date    = "unknown"
)

func main() {
	commands.SetVersionInfo(version, commit, date)
	if err := commands.Root().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
