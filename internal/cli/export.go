// Package cli — export.go implements the default action of the root
// command: the full header export.
//
// Orchestration steps:
//  1. Load configuration (built-in defaults or --config)
//  2. Lock the export directory
//  3. Scan the source tree and copy every matching header
//  4. Copy the fixed files
//  5. Output results (text or JSON)
package cli

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"path/filepath"

	"github.com/shinji-kodama/header-export/internal/export"
	"github.com/shinji-kodama/header-export/internal/model"
)

// runExport is the main orchestration function for the export.
func runExport(ctx context.Context, out io.Writer) error {
	if ctx == nil {
		ctx = context.Background()
	}

	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	VerboseLog("Source root: %s", cfg.SourceRoot)
	VerboseLog("Export directory: %s", cfg.DestDir)

	exporter := export.NewExporter(VerboseLog)
	result, err := exporter.Run(ctx, export.Options{
		SourceRoot: cfg.SourceRoot,
		DestDir:    cfg.DestDir,
		Suffix:     cfg.Suffix,
		FixedFiles: cfg.FixedFiles,
	})
	if err != nil {
		// Keep CLIErrors from the lock as they are; classify the rest so the
		// exit code tells a missing path from a permission problem.
		if cliErr, ok := err.(*model.CLIError); ok {
			return cliErr
		}
		return model.WrapCLIError(model.ExitCodeFor(err), "export failed", err)
	}

	VerboseLog("%d distinct file(s) written to %s", result.FileCount(), result.DestDir)
	printExportResult(out, result)
	return nil
}

// printExportResult writes the export summary to w in text or JSON format.
func printExportResult(w io.Writer, result *model.ExportResult) {
	if IsJSONOutput() {
		data, _ := json.MarshalIndent(result, "", "  ")
		fmt.Fprintln(w, string(data))
		return
	}

	fmt.Fprintln(w, FormatExportSummary(result))
	for _, name := range result.Collisions {
		fmt.Fprintf(w, "%s %s was exported more than once; the last copy was kept\n", warningLabel(), name)
	}
}

// FormatExportSummary returns the one-line summary printed after a
// successful export.
//
// Example:
//
//	Exported 12 header(s) and 2 fixed file(s) to export_include/xlogger/
func FormatExportSummary(result *model.ExportResult) string {
	return fmt.Sprintf("%s %d header(s) and %d fixed file(s) to %s",
		successLabel("Exported"),
		len(result.Headers),
		len(result.FixedFiles),
		result.DestDir,
	)
}

// relOrSelf returns path relative to base, or path unchanged if it cannot
// be expressed relative to base.
func relOrSelf(base, path string) string {
	rel, err := filepath.Rel(base, path)
	if err != nil {
		return path
	}
	return rel
}
