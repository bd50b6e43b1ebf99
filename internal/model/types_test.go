package model

import (
	"errors"
	"fmt"
	"io/fs"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// TestFindCollisions verifies that duplicate export names are detected
// regardless of which subdirectory the files came from.
func TestFindCollisions(t *testing.T) {
	tests := []struct {
		name     string
		files    []HeaderFile
		expected []string
	}{
		{
			name:     "no files",
			files:    nil,
			expected: nil,
		},
		{
			name: "unique names",
			files: []HeaderFile{
				{SourcePath: "root/a.h", Name: "a.h"},
				{SourcePath: "root/sub/c.h", Name: "c.h"},
			},
			expected: nil,
		},
		{
			name: "same name in two directories",
			files: []HeaderFile{
				{SourcePath: "root/a/dup.h", Name: "dup.h"},
				{SourcePath: "root/b/dup.h", Name: "dup.h"},
				{SourcePath: "root/c.h", Name: "c.h"},
			},
			expected: []string{"dup.h"},
		},
		{
			name: "results are sorted",
			files: []HeaderFile{
				{SourcePath: "x/z.h", Name: "z.h"},
				{SourcePath: "y/z.h", Name: "z.h"},
				{SourcePath: "x/b.h", Name: "b.h"},
				{SourcePath: "y/b.h", Name: "b.h"},
			},
			expected: []string{"b.h", "z.h"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, FindCollisions(tt.files))
		})
	}
}

// TestExportResult_FileCount checks that overwritten destinations are
// counted once.
func TestExportResult_FileCount(t *testing.T) {
	result := &ExportResult{
		Headers: []CopyRecord{
			{Source: "a/dup.h", Destination: "out/dup.h"},
			{Source: "b/dup.h", Destination: "out/dup.h", Overwrote: true},
			{Source: "c.h", Destination: "out/c.h"},
		},
		FixedFiles: []CopyRecord{
			{Source: "./appender2.h", Destination: "out/appender2.h"},
		},
	}
	assert.Equal(t, 3, result.FileCount())
	assert.Equal(t, 0, (&ExportResult{}).FileCount())
}

// TestClassifyPathError checks the mapping from OS errors to error kinds.
func TestClassifyPathError(t *testing.T) {
	tests := []struct {
		name string
		err  error
		kind error
	}{
		{"not exist", fs.ErrNotExist, ErrNotFound},
		{"wrapped not exist", &fs.PathError{Op: "open", Path: "x", Err: fs.ErrNotExist}, ErrNotFound},
		{"permission", fs.ErrPermission, ErrPermission},
		{"other", errors.New("disk full"), ErrIO},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ClassifyPathError("copy", "some/path.h", tt.err)
			require.Error(t, err)
			assert.ErrorIs(t, err, tt.kind)
			assert.ErrorIs(t, err, tt.err)
			assert.Contains(t, err.Error(), "some/path.h")
		})
	}

	t.Run("nil stays nil", func(t *testing.T) {
		assert.NoError(t, ClassifyPathError("copy", "x", nil))
	})

	t.Run("already classified is kept", func(t *testing.T) {
		inner := &PathError{Op: "scan", Path: "root", Kind: ErrNotFound}
		err := ClassifyPathError("copy", "other", fmt.Errorf("context: %w", inner))
		var pe *PathError
		require.ErrorAs(t, err, &pe)
		assert.Equal(t, "scan", pe.Op)
		assert.ErrorIs(t, err, ErrNotFound)
	})
}

// TestPathError_Is verifies that a PathError matches only its own kind.
func TestPathError_Is(t *testing.T) {
	err := &PathError{Op: "stat", Path: "missing", Kind: ErrNotFound}
	assert.True(t, errors.Is(err, ErrNotFound))
	assert.False(t, errors.Is(err, ErrPermission))
	assert.False(t, errors.Is(err, ErrIO))
	assert.Equal(t, "stat missing: not found", err.Error())
}

// TestExitCodeFor verifies error-kind to exit-code translation.
func TestExitCodeFor(t *testing.T) {
	tests := []struct {
		name     string
		err      error
		expected ExitCode
	}{
		{"nil", nil, ExitSuccess},
		{"not found", &PathError{Kind: ErrNotFound}, ExitNotFound},
		{"permission", &PathError{Kind: ErrPermission}, ExitPermissionDenied},
		{"io", &PathError{Kind: ErrIO}, ExitIOError},
		{"wrapped kind", fmt.Errorf("export: %w", &PathError{Kind: ErrNotFound}), ExitNotFound},
		{"cli error wins", WrapCLIError(ExitExportLocked, "locked", &PathError{Kind: ErrIO}), ExitExportLocked},
		{"plain error", errors.New("boom"), ExitGeneralError},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, ExitCodeFor(tt.err))
		})
	}
}

// TestCLIError verifies the custom error type used for exit code mapping.
func TestCLIError(t *testing.T) {
	t.Run("simple error", func(t *testing.T) {
		err := NewCLIError(ExitConfigError, "invalid configuration")
		assert.Equal(t, ExitConfigError, err.Code)
		assert.Equal(t, "invalid configuration", err.Error())
		assert.Nil(t, err.Unwrap())
	})

	t.Run("wrapped error", func(t *testing.T) {
		inner := errors.New("resource temporarily unavailable")
		err := WrapCLIError(ExitExportLocked, "export directory is locked", inner)
		assert.Equal(t, ExitExportLocked, err.Code)
		assert.Contains(t, err.Error(), "resource temporarily unavailable")
		assert.Equal(t, inner, err.Unwrap())
	})

	// Verify errors.Is works through the CLIError wrapper.
	t.Run("errors.Is chain", func(t *testing.T) {
		inner := &PathError{Op: "scan", Path: "../comm/xlogger", Kind: ErrNotFound}
		err := WrapCLIError(ExitNotFound, "export failed", inner)
		assert.True(t, errors.Is(err, ErrNotFound))
	})
}
