package export

import (
	"io"
	"os"
	"path/filepath"
	"syscall"

	"github.com/shinji-kodama/header-export/internal/model"
)

// CopyFile copies src into destDir under its base name and returns the
// destination path. An existing file of the same name is replaced.
//
// The data is written to a temporary file in destDir first and then renamed
// over the destination. The rename is atomic on the same filesystem, so a
// reader never sees a partially written header, and a failed copy leaves
// the previous file (if any) untouched. Permission bits of src are kept.
func CopyFile(src, destDir string) (string, error) {
	dest := filepath.Join(destDir, filepath.Base(src))

	in, err := os.Open(src)
	if err != nil {
		return "", model.ClassifyPathError("copy", src, err)
	}
	defer func() { _ = in.Close() }()

	info, err := in.Stat()
	if err != nil {
		return "", model.ClassifyPathError("copy", src, err)
	}
	if info.IsDir() {
		return "", &model.PathError{
			Op:   "copy",
			Path: src,
			Kind: model.ErrIO,
			Err:  syscall.EISDIR,
		}
	}

	// Create the temp file next to the destination so that the final
	// rename does not cross a filesystem boundary.
	tmp, err := os.CreateTemp(destDir, ".header-export-*")
	if err != nil {
		return "", model.ClassifyPathError("copy", dest, err)
	}
	tmpPath := tmp.Name()

	// Remove the temp file on any failure below. After a successful rename
	// tmpPath no longer exists and Remove is a no-op.
	defer func() { _ = os.Remove(tmpPath) }()

	if _, err := io.Copy(tmp, in); err != nil {
		_ = tmp.Close()
		return "", model.ClassifyPathError("copy", dest, err)
	}
	if err := tmp.Close(); err != nil {
		return "", model.ClassifyPathError("copy", dest, err)
	}
	if err := os.Chmod(tmpPath, info.Mode().Perm()); err != nil {
		return "", model.ClassifyPathError("copy", dest, err)
	}
	if err := os.Rename(tmpPath, dest); err != nil {
		return "", model.ClassifyPathError("copy", dest, err)
	}

	return dest, nil
}

// checkDestDir verifies that destDir exists and is a directory.
// The export directory is expected to pre-exist; it is never created.
func checkDestDir(destDir string) error {
	info, err := os.Stat(destDir)
	if err != nil {
		return model.ClassifyPathError("export", destDir, err)
	}
	if !info.IsDir() {
		return &model.PathError{
			Op:   "export",
			Path: destDir,
			Kind: model.ErrIO,
			Err:  syscall.ENOTDIR,
		}
	}
	return nil
}
