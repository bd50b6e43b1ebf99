// Package model defines the domain types for the header-export CLI.
//
// All entities in this package describe a single export run: which files
// were selected from the source tree, where each one was copied, and which
// export names were written more than once. These types are used throughout
// the application for passing data between the scanner, the exporter and
// the CLI output layer.
package model

import (
	"errors"
	"fmt"
	"io/fs"
	"sort"
)

// HeaderFile is a file selected from the source tree by its name suffix.
// Files are copied, never transformed, so only the location matters.
type HeaderFile struct {
	// SourcePath is the path of the file as discovered by the traversal,
	// rooted at the source directory passed to the scanner.
	SourcePath string `json:"sourcePath"`

	// Name is the base file name. The export directory is flat, so Name
	// alone determines the destination path.
	Name string `json:"name"`
}

// CopyRecord describes one completed copy into the export directory.
type CopyRecord struct {
	// Source is the path that was read.
	Source string `json:"source"`

	// Destination is the path that was written inside the export directory.
	Destination string `json:"destination"`

	// Overwrote is true when Destination already held a file written
	// earlier in the same run (a filename collision).
	Overwrote bool `json:"overwrote,omitempty"`
}

// ExportResult is the outcome of a full export run: the tree walk plus the
// fixed files copied afterwards.
type ExportResult struct {
	// SourceRoot is the directory that was traversed.
	SourceRoot string `json:"sourceRoot"`

	// DestDir is the flat export directory that received every copy.
	DestDir string `json:"destDir"`

	// Headers lists the copies made from the tree walk, in walk order.
	Headers []CopyRecord `json:"headers"`

	// FixedFiles lists the copies of the fixed files, in configured order.
	FixedFiles []CopyRecord `json:"fixedFiles"`

	// Collisions lists export names that were written more than once
	// during the run. The last copy wins; a collision is not an error.
	Collisions []string `json:"collisions,omitempty"`
}

// FileCount returns the number of distinct files left in the export
// directory by this run.
func (r *ExportResult) FileCount() int {
	seen := make(map[string]struct{}, len(r.Headers)+len(r.FixedFiles))
	for _, rec := range r.Headers {
		seen[rec.Destination] = struct{}{}
	}
	for _, rec := range r.FixedFiles {
		seen[rec.Destination] = struct{}{}
	}
	return len(seen)
}

// FindCollisions returns the names that occur more than once in files,
// sorted alphabetically. It returns nil when every name is unique.
func FindCollisions(files []HeaderFile) []string {
	counts := make(map[string]int, len(files))
	for _, f := range files {
		counts[f.Name]++
	}

	var dups []string
	for name, n := range counts {
		if n > 1 {
			dups = append(dups, name)
		}
	}
	sort.Strings(dups)
	return dups
}

// Error kinds. Every filesystem failure surfaced by this module matches
// exactly one of these via errors.Is.
var (
	// ErrNotFound means a required source path (directory or fixed file)
	// does not exist.
	ErrNotFound = errors.New("not found")

	// ErrPermission means read or write access was denied.
	ErrPermission = errors.New("permission denied")

	// ErrIO covers any other filesystem failure during traversal or copy,
	// such as a full disk or a destination that is not a directory.
	ErrIO = errors.New("i/o error")
)

// PathError records a failed filesystem operation together with the path
// that caused it, so that a build operator can see immediately which file
// is missing or inaccessible.
type PathError struct {
	// Op is a short verb describing the operation ("scan", "copy", "stat").
	Op string

	// Path is the path the operation failed on.
	Path string

	// Kind is one of ErrNotFound, ErrPermission or ErrIO.
	Kind error

	// Err is the underlying error returned by the OS, if any.
	Err error
}

// Error satisfies the error interface.
func (e *PathError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s %s: %v", e.Op, e.Path, e.Err)
	}
	return fmt.Sprintf("%s %s: %v", e.Op, e.Path, e.Kind)
}

// Is reports whether target is the error kind of e. This lets callers
// write errors.Is(err, model.ErrNotFound) without unwrapping manually.
func (e *PathError) Is(target error) bool {
	return e.Kind != nil && target == e.Kind
}

// Unwrap returns the underlying OS error.
func (e *PathError) Unwrap() error {
	return e.Err
}

// ClassifyPathError wraps err in a PathError whose Kind is derived from
// the OS error: fs.ErrNotExist maps to ErrNotFound, fs.ErrPermission to
// ErrPermission, and everything else to ErrIO. A nil err yields nil, and an
// err that is already a PathError is returned unchanged.
func ClassifyPathError(op, path string, err error) error {
	if err == nil {
		return nil
	}

	var pe *PathError
	if errors.As(err, &pe) {
		return err
	}

	kind := ErrIO
	switch {
	case errors.Is(err, fs.ErrNotExist):
		kind = ErrNotFound
	case errors.Is(err, fs.ErrPermission):
		kind = ErrPermission
	}
	return &PathError{Op: op, Path: path, Kind: kind, Err: err}
}

// ExitCode defines standard CLI exit codes. These codes allow build
// scripts and CI systems to tell a missing path from a permission problem
// without parsing the error text.
type ExitCode int

const (
	// ExitSuccess indicates the export completed successfully.
	ExitSuccess ExitCode = 0

	// ExitGeneralError indicates an unspecified error occurred.
	ExitGeneralError ExitCode = 1

	// ExitNotFound indicates the source root or a fixed file is missing,
	// or the export directory does not exist.
	ExitNotFound ExitCode = 2

	// ExitPermissionDenied indicates a file could not be read or the
	// export directory could not be written.
	ExitPermissionDenied ExitCode = 3

	// ExitIOError indicates any other filesystem failure.
	ExitIOError ExitCode = 4

	// ExitConfigError indicates the configuration file could not be loaded
	// or failed validation.
	ExitConfigError ExitCode = 5

	// ExitExportLocked indicates another export into the same directory is
	// already running.
	ExitExportLocked ExitCode = 6
)

// ExitCodeFor maps an error to the exit code of its kind. CLIError values
// keep their own code; unclassified errors map to ExitGeneralError.
func ExitCodeFor(err error) ExitCode {
	if err == nil {
		return ExitSuccess
	}

	var cliErr *CLIError
	if errors.As(err, &cliErr) {
		return cliErr.Code
	}

	switch {
	case errors.Is(err, ErrNotFound):
		return ExitNotFound
	case errors.Is(err, ErrPermission):
		return ExitPermissionDenied
	case errors.Is(err, ErrIO):
		return ExitIOError
	default:
		return ExitGeneralError
	}
}

// CLIError is a custom error type that carries an exit code.
// This allows the CLI layer to translate domain errors into
// appropriate process exit codes.
type CLIError struct {
	// Code is the exit code to return to the OS.
	Code ExitCode

	// Message is the human-readable error description.
	Message string

	// Err is the underlying error, if any.
	Err error
}

// Error satisfies the error interface. It returns the human-readable
// error message, optionally including the underlying error.
func (e *CLIError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Err)
	}
	return e.Message
}

// Unwrap returns the underlying error for use with errors.Is/errors.As.
func (e *CLIError) Unwrap() error {
	return e.Err
}

// NewCLIError creates a new CLIError with the given exit code and message.
func NewCLIError(code ExitCode, message string) *CLIError {
	return &CLIError{Code: code, Message: message}
}

// WrapCLIError creates a new CLIError that wraps an existing error.
func WrapCLIError(code ExitCode, message string, err error) *CLIError {
	return &CLIError{Code: code, Message: message, Err: err}
}
