// Package export copies selected header files and a list of fixed files
// into a flat export directory.
//
// This package handles:
//   - Exporting every file found by the scan package into one directory,
//     dropping the relative subdirectory path
//   - Copying fixed files by literal path after the tree walk
//   - Byte-for-byte copies written through a temp file and rename, so a
//     failed copy never leaves a truncated file behind
//   - An exclusive, cross-process lock on the export directory
//     (github.com/gofrs/flock) so two builds cannot export concurrently
//
// Every run is sequential and fail-fast: the first error aborts the run.
// The export directory must already exist; it is never created here.
package export
