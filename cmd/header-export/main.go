// Package main is the entry point for the header-export CLI.
//
// This binary copies the logging library's public headers into the export
// directory used for packaging. It delegates all functionality to the
// internal/cli package, which defines cobra commands.
//
// Build-time variables (version, commit, date) are injected via ldflags.
// During development, they default to "dev", "none", and "unknown".
package main

import (
	"github.com/shinji-kodama/header-export/internal/cli"
)

// version, commit, and date are set at build time via ldflags and shown
// by the --version flag.
var (
	version = "dev"
	commit  = "none"
	date    = "unknown"
)

func main() {
	cli.Version = version
	cli.Commit = commit
	cli.Date = date

	rootCmd := cli.NewRootCommand()
	cli.Execute(rootCmd)
}
