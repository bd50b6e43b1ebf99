// Package cli — list.go implements the "header-export list" command.
//
// The list command is a dry run: it scans the source tree with the same
// parameters as the export and prints which files would end up in the
// export directory, without writing anything. Names exported more than
// once are marked so collisions can be spotted before a build.
package cli

import (
	"encoding/json"
	"fmt"
	"io"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/shinji-kodama/header-export/internal/export"
	"github.com/shinji-kodama/header-export/internal/model"
)

// NewListCommand creates the "list" cobra command.
// It is called from NewRootCommand to register as a subcommand.
func NewListCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "Show the files an export would copy",
		Long: `List the headers found in the source tree and the fixed files, in the
order they would be copied. Nothing is written.

Examples:
  header-export list
  header-export list --config export.yaml
  header-export list --json`,

		Args: cobra.NoArgs,

		RunE: func(cmd *cobra.Command, args []string) error {
			return runList(cmd.OutOrStdout())
		},
	}
}

// ListEntry is one planned copy in the list output.
type ListEntry struct {
	Source    string `json:"source"`
	Name      string `json:"name"`
	Fixed     bool   `json:"fixed,omitempty"`
	Collision bool   `json:"collision,omitempty"`
}

// runList scans the source tree and writes the planned copies to out.
func runList(out io.Writer) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}

	files, err := export.NewExporter(VerboseLog).Plan(cfg.SourceRoot, cfg.Suffix)
	if err != nil {
		return model.WrapCLIError(model.ExitCodeFor(err), "scan failed", err)
	}

	entries := BuildListEntries(cfg.SourceRoot, files, cfg.FixedFiles)
	if IsJSONOutput() {
		printListJSON(out, cfg.DestDir, entries)
	} else {
		printListText(out, cfg.DestDir, entries)
	}
	return nil
}

// BuildListEntries combines scanned headers and fixed files into the copy
// order used by an export, marking every entry whose name is written more
// than once. Header sources are shown relative to sourceRoot.
func BuildListEntries(sourceRoot string, headers []model.HeaderFile, fixedFiles []string) []ListEntry {
	all := make([]model.HeaderFile, 0, len(headers)+len(fixedFiles))
	all = append(all, headers...)
	for _, p := range fixedFiles {
		all = append(all, model.HeaderFile{SourcePath: p, Name: filepath.Base(p)})
	}

	dups := make(map[string]bool)
	for _, name := range model.FindCollisions(all) {
		dups[name] = true
	}

	entries := make([]ListEntry, 0, len(all))
	for i, f := range all {
		fixed := i >= len(headers)
		source := f.SourcePath
		if !fixed {
			source = relOrSelf(sourceRoot, f.SourcePath)
		}
		entries = append(entries, ListEntry{
			Source:    source,
			Name:      f.Name,
			Fixed:     fixed,
			Collision: dups[f.Name],
		})
	}
	return entries
}

func printListJSON(w io.Writer, destDir string, entries []ListEntry) {
	type resultJSON struct {
		DestDir string      `json:"destDir"`
		Files   []ListEntry `json:"files"`
	}

	data, _ := json.MarshalIndent(resultJSON{DestDir: destDir, Files: entries}, "", "  ")
	fmt.Fprintln(w, string(data))
}

// printListText prints one row per planned copy:
//
//	SOURCE                    NAME              NOTE
//	a.h                       a.h
//	sub/dup.h                 dup.h             collision
//	./appender2.h             appender2.h       fixed
func printListText(w io.Writer, destDir string, entries []ListEntry) {
	fmt.Fprintf(w, "Export directory: %s\n", destDir)
	if len(entries) == 0 {
		fmt.Fprintln(w, "No files to export.")
		return
	}

	fmt.Fprintf(w, "%-40s %-24s %s\n", "SOURCE", "NAME", "NOTE")
	for _, e := range entries {
		fmt.Fprintf(w, "%-40s %-24s %s\n", e.Source, e.Name, entryNote(e))
	}
}

// entryNote returns the NOTE column for an entry.
func entryNote(e ListEntry) string {
	switch {
	case e.Fixed && e.Collision:
		return "fixed, collision"
	case e.Fixed:
		return "fixed"
	case e.Collision:
		return "collision"
	default:
		return ""
	}
}
