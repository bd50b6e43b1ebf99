package export

import (
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"os"
	"path/filepath"

	"github.com/gofrs/flock"

	"github.com/shinji-kodama/header-export/internal/model"
)

// lockDir returns the directory holding export locks. Tests replace it.
var lockDir = os.TempDir

// DirLock is an exclusive lock guarding one export directory.
type DirLock struct {
	flock *flock.Flock
	path  string
}

// LockPath returns the lock file used for destDir. Locks live in the
// system temp directory, named after a hash of the absolute export path,
// so neither the export directory nor its parent gains an extra entry and
// no write access beyond destDir is needed. Different spellings of the same
// directory share one lock.
func LockPath(destDir string) (string, error) {
	abs, err := filepath.Abs(destDir)
	if err != nil {
		return "", fmt.Errorf("failed to resolve export directory %s: %w", destDir, err)
	}

	sum := sha256.Sum256([]byte(filepath.Clean(abs)))
	name := "header-export-" + hex.EncodeToString(sum[:8]) + ".lock"
	return filepath.Join(lockDir(), name), nil
}

// Lock acquires the export lock for destDir without blocking. If another
// process holds it, a CLIError with ExitExportLocked is returned.
func Lock(destDir string) (*DirLock, error) {
	path, err := LockPath(destDir)
	if err != nil {
		return nil, err
	}
	fl := flock.New(path)

	acquired, err := fl.TryLock()
	if err != nil {
		return nil, model.ClassifyPathError("lock", path, err)
	}
	if !acquired {
		return nil, model.NewCLIError(model.ExitExportLocked,
			fmt.Sprintf("another export into %s is in progress (lock: %s)", destDir, path))
	}

	return &DirLock{flock: fl, path: path}, nil
}

// Path returns the lock file path.
func (l *DirLock) Path() string {
	return l.path
}

// Unlock releases the lock. The lock file stays in the temp directory;
// removing it would let a waiting process lock an unlinked file.
func (l *DirLock) Unlock() error {
	if err := l.flock.Unlock(); err != nil {
		return fmt.Errorf("failed to release lock on %s: %w", l.path, err)
	}
	return nil
}
