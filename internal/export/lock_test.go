package export

import (
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/shinji-kodama/header-export/internal/model"
)

// useLockDir points lock files at a per-test directory.
func useLockDir(t *testing.T) string {
	t.Helper()

	dir := t.TempDir()
	prev := lockDir
	lockDir = func() string { return dir }
	t.Cleanup(func() { lockDir = prev })
	return dir
}

// TestLockPath verifies lock files are named by the absolute export path
// and live in the lock directory, including for edge inputs.
func TestLockPath(t *testing.T) {
	dir := useLockDir(t)

	for _, destDir := range []string{"export_include/xlogger/", ".", "/", "../out"} {
		t.Run(destDir, func(t *testing.T) {
			path, err := LockPath(filepath.FromSlash(destDir))
			require.NoError(t, err)
			assert.Equal(t, dir, filepath.Dir(path))
			name := filepath.Base(path)
			assert.True(t, strings.HasPrefix(name, "header-export-"), name)
			assert.True(t, strings.HasSuffix(name, ".lock"), name)
		})
	}

	t.Run("same directory spelled differently", func(t *testing.T) {
		a, err := LockPath("export_include/xlogger/")
		require.NoError(t, err)
		b, err := LockPath("./export_include/../export_include/xlogger")
		require.NoError(t, err)
		assert.Equal(t, a, b)
	})

	t.Run("different directories", func(t *testing.T) {
		a, err := LockPath("out/a")
		require.NoError(t, err)
		b, err := LockPath("out/b")
		require.NoError(t, err)
		assert.NotEqual(t, a, b)
	})
}

// TestLock_Exclusive verifies that a second lock on the same directory is
// refused until the first is released.
func TestLock_Exclusive(t *testing.T) {
	useLockDir(t)
	dest := filepath.Join(t.TempDir(), "out")

	first, err := Lock(dest)
	require.NoError(t, err)
	assert.FileExists(t, first.Path())

	_, err = Lock(dest)
	require.Error(t, err)
	var cliErr *model.CLIError
	require.ErrorAs(t, err, &cliErr)
	assert.Equal(t, model.ExitExportLocked, cliErr.Code)
	assert.Contains(t, cliErr.Message, dest)

	require.NoError(t, first.Unlock())

	second, err := Lock(dest)
	require.NoError(t, err)
	require.NoError(t, second.Unlock())
}
