// Package cli implements the cobra-based CLI commands for header-export.
//
// The root command performs the export itself, so running the binary with
// no arguments reproduces the packaging step exactly. The list subcommand
// is a dry run. This file defines the root command and handles global
// flags, error output and exit codes.
package cli

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"os/signal"

	"github.com/spf13/cobra"

	"github.com/shinji-kodama/header-export/internal/config"
	"github.com/shinji-kodama/header-export/internal/model"
)

// Global flag variables shared across all subcommands.
var (
	// jsonOutput controls whether command output is formatted as JSON.
	jsonOutput bool

	// verbose enables per-file trace output on stderr.
	verbose bool

	// configPath points to an optional YAML or JSONC override file.
	configPath string
)

// version, commit, and date are set at build time via ldflags.
// They are injected from the main package to display version information.
var (
	// Version is the semantic version of the binary (e.g., "1.0.0").
	Version = "dev"

	// Commit is the Git commit hash the binary was built from.
	Commit = "none"

	// Date is the build timestamp.
	Date = "unknown"
)

// NewRootCommand creates and configures the root cobra command.
//
// Unlike most multi-command CLIs, the root command is not just a help
// page: with no arguments it runs the full export using the built-in
// parameters (or those of --config).
func NewRootCommand() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:   "header-export",
		Short: "Export the logging library's public headers",
		Long: `header-export collects every .h file from the logger source tree into a
flat export directory, then copies the fixed headers that ship with it.

With no arguments it uses the built-in layout:
  source:      ../comm/xlogger
  destination: export_include/xlogger/ (must already exist)
  fixed files: ./comipler_util.h ./appender2.h

Headers with the same name in different subdirectories overwrite each
other; the last one in lexical path order wins.`,

		Args: cobra.NoArgs,

		// SilenceUsage prevents cobra from printing usage on every error.
		SilenceUsage: true,

		// SilenceErrors prevents cobra from printing errors automatically.
		// We format errors ourselves (text or JSON based on --json flag).
		SilenceErrors: true,

		Version: fmt.Sprintf("%s (commit: %s, built: %s)", Version, Commit, Date),

		RunE: func(cmd *cobra.Command, args []string) error {
			return runExport(cmd.Context(), cmd.OutOrStdout())
		},
	}

	rootCmd.PersistentFlags().BoolVar(&jsonOutput, "json", false, "Output in JSON format")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "Enable verbose output")
	rootCmd.PersistentFlags().StringVar(&configPath, "config", "", "Override file for export parameters (.yaml, .yml, .json, .jsonc)")

	rootCmd.AddCommand(NewListCommand())

	return rootCmd
}

// Execute runs the root command and handles exit codes.
// This is the main entry point called from main.go.
//
// Errors are mapped to exit codes by kind: a missing path, a permission
// problem and other I/O failures each get their own code so build scripts
// can react without parsing the message.
func Execute(rootCmd *cobra.Command) {
	// An interrupt cancels the context; the exporter stops before the next
	// file instead of dying halfway through a copy.
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	err := rootCmd.ExecuteContext(ctx)
	stop()

	if err != nil {
		if cliErr, ok := err.(*model.CLIError); ok {
			printError(rootCmd.ErrOrStderr(), cliErr.Message, cliErr.Err)
			os.Exit(int(cliErr.Code))
		}

		printError(rootCmd.ErrOrStderr(), err.Error(), nil)
		os.Exit(int(model.ExitCodeFor(err)))
	}
}

// loadConfig returns the configuration for this run: the --config file
// when given, the built-in defaults otherwise.
func loadConfig() (*config.Config, error) {
	if configPath == "" {
		return config.Default(), nil
	}

	cfg, err := config.Load(configPath)
	if err != nil {
		return nil, model.WrapCLIError(model.ExitConfigError, "failed to load configuration", err)
	}
	VerboseLog("Loaded configuration from %s", configPath)
	return cfg, nil
}

// printError writes an error message to w in the appropriate format
// (JSON or text) based on the --json global flag. w is stderr in normal
// use; stdout is reserved for successful command output.
func printError(w io.Writer, message string, underlying error) {
	if jsonOutput {
		errObj := map[string]interface{}{
			"error": map[string]interface{}{
				"message": message,
			},
		}
		if underlying != nil {
			if errMap, ok := errObj["error"].(map[string]interface{}); ok {
				errMap["detail"] = underlying.Error()
			}
		}
		data, _ := json.MarshalIndent(errObj, "", "  ")
		fmt.Fprintln(w, string(data))
	} else {
		if underlying != nil {
			fmt.Fprintf(w, "%s %s: %v\n", errorLabel(), message, underlying)
		} else {
			fmt.Fprintf(w, "%s %s\n", errorLabel(), message)
		}
	}
}

// VerboseLog prints a message to stderr only when verbose mode is enabled.
// The exporter receives it as its trace function.
func VerboseLog(format string, args ...interface{}) {
	if verbose {
		fmt.Fprintf(os.Stderr, "[verbose] "+format+"\n", args...)
	}
}

// IsJSONOutput returns whether the --json flag is set.
// Subcommands use this to decide their output format.
func IsJSONOutput() bool {
	return jsonOutput
}
