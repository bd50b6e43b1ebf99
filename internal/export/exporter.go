package export

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	"github.com/shinji-kodama/header-export/internal/model"
	"github.com/shinji-kodama/header-export/internal/scan"
)

// Options holds the parameters of a full export run.
type Options struct {
	// SourceRoot is the directory tree to search for headers.
	SourceRoot string

	// DestDir is the flat export directory. It must already exist.
	DestDir string

	// Suffix selects files by name suffix, e.g. ".h".
	Suffix string

	// FixedFiles are copied by literal path after the tree walk, in order.
	FixedFiles []string
}

// Exporter copies headers and fixed files into an export directory.
//
// The zero value is ready to use. Logf, when set, receives one trace line
// per copy; the CLI wires it to its verbose logger.
type Exporter struct {
	Logf func(format string, args ...interface{})
}

// NewExporter creates an Exporter that traces through logf.
// A nil logf discards trace output.
func NewExporter(logf func(format string, args ...interface{})) *Exporter {
	return &Exporter{Logf: logf}
}

func (e *Exporter) logf(format string, args ...interface{}) {
	if e.Logf != nil {
		e.Logf(format, args...)
	}
}

// Plan scans sourceRoot and returns the files that ExportHeaders would copy,
// without touching the filesystem outside of reading the tree.
func (e *Exporter) Plan(sourceRoot, suffix string) ([]model.HeaderFile, error) {
	files, err := scan.FindBySuffix(sourceRoot, suffix)
	if err != nil {
		return nil, err
	}
	e.logf("Found %d file(s) matching %q under %s", len(files), suffix, sourceRoot)
	return files, nil
}

// ExportHeaders copies every file under sourceRoot whose name ends with
// suffix into destDir, keeping the file name and dropping the relative
// subdirectory path.
//
// The whole tree is scanned before the first copy, so a missing or
// unreadable source root leaves destDir unchanged. Files that share a name
// overwrite each other; the one later in lexical walk order wins and the
// overwrite is flagged on its CopyRecord.
func (e *Exporter) ExportHeaders(sourceRoot, destDir, suffix string) ([]model.CopyRecord, error) {
	return e.exportHeaders(context.Background(), sourceRoot, destDir, suffix, make(map[string]bool))
}

// ExportFixedFiles copies each path, in order, into destDir.
//
// Every path is checked for existence before the first copy so that a
// missing fixed file fails the step without writing anything.
func (e *Exporter) ExportFixedFiles(paths []string, destDir string) ([]model.CopyRecord, error) {
	return e.exportFixedFiles(context.Background(), paths, destDir, make(map[string]bool))
}

// Run performs a complete export: traverse, filter, copy headers, then copy
// the fixed files. It holds the export lock for destDir for the whole run.
//
// The context is checked between copies only. Cancelling it stops the run
// before the next file; a copy already in progress always completes.
func (e *Exporter) Run(ctx context.Context, opts Options) (*model.ExportResult, error) {
	if err := checkDestDir(opts.DestDir); err != nil {
		return nil, err
	}

	lock, err := Lock(opts.DestDir)
	if err != nil {
		return nil, err
	}
	defer func() {
		if unlockErr := lock.Unlock(); unlockErr != nil {
			e.logf("Warning: %v", unlockErr)
		}
	}()
	e.logf("Acquired export lock %s", lock.Path())

	// written tracks destination paths written during this run, shared by
	// both steps so that a fixed file overwriting a header is also reported.
	written := make(map[string]bool)

	headers, err := e.exportHeaders(ctx, opts.SourceRoot, opts.DestDir, opts.Suffix, written)
	if err != nil {
		return nil, err
	}

	fixed, err := e.exportFixedFiles(ctx, opts.FixedFiles, opts.DestDir, written)
	if err != nil {
		return nil, err
	}

	result := &model.ExportResult{
		SourceRoot: opts.SourceRoot,
		DestDir:    opts.DestDir,
		Headers:    headers,
		FixedFiles: fixed,
		Collisions: collisions(headers, fixed),
	}
	return result, nil
}

func (e *Exporter) exportHeaders(ctx context.Context, sourceRoot, destDir, suffix string, written map[string]bool) ([]model.CopyRecord, error) {
	if err := checkDestDir(destDir); err != nil {
		return nil, err
	}

	files, err := e.Plan(sourceRoot, suffix)
	if err != nil {
		return nil, err
	}

	records := make([]model.CopyRecord, 0, len(files))
	for _, f := range files {
		rec, err := e.copyOne(ctx, f.SourcePath, destDir, written)
		if err != nil {
			return nil, err
		}
		records = append(records, rec)
	}
	return records, nil
}

func (e *Exporter) exportFixedFiles(ctx context.Context, paths []string, destDir string, written map[string]bool) ([]model.CopyRecord, error) {
	if err := checkDestDir(destDir); err != nil {
		return nil, err
	}

	for _, p := range paths {
		if _, err := os.Stat(p); err != nil {
			return nil, model.ClassifyPathError("copy", p, err)
		}
	}

	records := make([]model.CopyRecord, 0, len(paths))
	for _, p := range paths {
		rec, err := e.copyOne(ctx, p, destDir, written)
		if err != nil {
			return nil, err
		}
		records = append(records, rec)
	}
	return records, nil
}

// copyOne copies a single file and records whether it replaced a file
// written earlier in the same run.
func (e *Exporter) copyOne(ctx context.Context, src, destDir string, written map[string]bool) (model.CopyRecord, error) {
	if err := ctx.Err(); err != nil {
		return model.CopyRecord{}, fmt.Errorf("export interrupted before %s: %w", src, err)
	}

	dest, err := CopyFile(src, destDir)
	if err != nil {
		return model.CopyRecord{}, err
	}

	rec := model.CopyRecord{Source: src, Destination: dest, Overwrote: written[dest]}
	if rec.Overwrote {
		e.logf("Overwrote %s with %s (filename collision)", dest, src)
	} else {
		e.logf("Copied %s -> %s", src, dest)
	}
	written[dest] = true
	return rec, nil
}

// collisions returns the base names of destinations written more than once,
// in the order the overwrites happened, without duplicates.
func collisions(groups ...[]model.CopyRecord) []string {
	var names []string
	seen := make(map[string]bool)
	for _, group := range groups {
		for _, rec := range group {
			if !rec.Overwrote {
				continue
			}
			if !seen[rec.Destination] {
				seen[rec.Destination] = true
				names = append(names, filepath.Base(rec.Destination))
			}
		}
	}
	return names
}
