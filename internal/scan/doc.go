// Package scan implements the source tree traversal for the header-export
// CLI.
//
// FindBySuffix walks a directory recursively and selects every regular file
// whose name ends with a fixed suffix. Selection is a plain, case-sensitive
// suffix match on the file name; there is no glob, regex or exclusion list.
//
// The walk is fail-fast: the first error aborts the scan and is returned as
// a model.PathError naming the offending path.
package scan
