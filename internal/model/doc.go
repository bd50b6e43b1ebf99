// Package model defines the domain types and value objects for the
// header-export CLI.
//
// This package contains pure data structures with no external dependencies.
// HeaderFile, CopyRecord and ExportResult describe a single export run;
// nothing is persisted between runs beyond the copied files themselves.
//
// The package also defines the error taxonomy (ErrNotFound, ErrPermission,
// ErrIO), exit codes (ExitCode) and a custom error type (CLIError) that
// carries exit codes for proper OS process exit handling.
package model
