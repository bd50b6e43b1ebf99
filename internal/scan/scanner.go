package scan

import (
	"errors"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
	"syscall"

	"github.com/shinji-kodama/header-export/internal/model"
)

// ErrEmptySuffix is returned when FindBySuffix is called without a suffix.
// An empty suffix would match every file in the tree.
var ErrEmptySuffix = errors.New("suffix must not be empty")

// FindBySuffix recursively enumerates every regular file under root and
// returns the ones whose name ends with suffix, in lexical walk order.
//
// Walk order matters only for filename collisions: when two files in
// different subdirectories share a name, the one returned later is the one
// that survives in the flat export directory.
//
// Symlinks are followed one level, the same way a plain file copy follows
// them: a link that resolves to a regular file is selected, a link to a
// directory is not descended into.
//
// Errors:
//   - root does not exist → model.ErrNotFound
//   - root or a subdirectory is unreadable → model.ErrPermission
//   - root is not a directory, or any other failure → model.ErrIO
func FindBySuffix(root, suffix string) ([]model.HeaderFile, error) {
	if suffix == "" {
		return nil, ErrEmptySuffix
	}

	// Stat the root up front so that a missing source directory is reported
	// as such, instead of surfacing as a generic walk failure.
	info, err := os.Stat(root)
	if err != nil {
		return nil, model.ClassifyPathError("scan", root, err)
	}
	if !info.IsDir() {
		return nil, &model.PathError{
			Op:   "scan",
			Path: root,
			Kind: model.ErrIO,
			Err:  syscall.ENOTDIR,
		}
	}

	var files []model.HeaderFile
	err = filepath.WalkDir(root, func(path string, d fs.DirEntry, walkErr error) error {
		if walkErr != nil {
			// Returning the error stops the walk: the first failure aborts
			// the whole run.
			return model.ClassifyPathError("scan", path, walkErr)
		}

		if d.IsDir() || !strings.HasSuffix(d.Name(), suffix) {
			return nil
		}

		regular, err := isRegularFile(path, d)
		if err != nil {
			return model.ClassifyPathError("stat", path, err)
		}
		if !regular {
			return nil
		}

		files = append(files, model.HeaderFile{
			SourcePath: path,
			Name:       d.Name(),
		})
		return nil
	})
	if err != nil {
		return nil, err
	}

	return files, nil
}

// isRegularFile reports whether the entry is a regular file, resolving a
// symlink to its target. Named pipes, sockets and devices are skipped.
func isRegularFile(path string, d fs.DirEntry) (bool, error) {
	if d.Type().IsRegular() {
		return true, nil
	}
	if d.Type()&fs.ModeSymlink == 0 {
		return false, nil
	}

	// os.Stat follows the link. A dangling link is reported as missing,
	// just as copying it would fail.
	info, err := os.Stat(path)
	if err != nil {
		return false, err
	}
	return info.Mode().IsRegular(), nil
}
