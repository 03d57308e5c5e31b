package intake

import (
	"context"
	"errors"
	"io"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// handle builds a FileHandle over in-memory content, recording whether
// Open was ever called.
func handle(name, content string, opened *bool) FileHandle {
	return FileHandle{
		Name: name,
		Size: int64(len(content)),
		Open: func() (io.ReadCloser, error) {
			if opened != nil {
				*opened = true
			}
			return io.NopCloser(strings.NewReader(content)), nil
		},
	}
}

func TestIntakeAcceptsValidBatch(t *testing.T) {
	v := NewValidator(DefaultLimits())

	result, err := v.Intake(context.Background(), []FileHandle{
		handle("main.py", "print('hi')", nil),
		handle("app.ts", "export {}", nil),
	})
	require.NoError(t, err)
	require.Len(t, result.Files, 2)

	assert.Equal(t, "main.py", result.Files[0].Name)
	assert.Equal(t, "python", result.Files[0].Language)
	assert.Equal(t, "print('hi')", result.Files[0].Content)
	assert.NotEmpty(t, result.Files[0].ID)
	assert.Equal(t, "typescript", result.Files[1].Language)
	assert.Empty(t, result.Warnings)
}

func TestIntakeRejectsTooManyFilesWithoutReading(t *testing.T) {
	v := NewValidator(Limits{MaxFileCount: 2, MaxTotalSize: 1 << 20, MaxFileSize: 1 << 19, WarnFileSize: 1 << 18})

	var opened bool
	handles := []FileHandle{
		handle("a.go", "package a", &opened),
		handle("b.go", "package b", &opened),
		handle("c.go", "package c", &opened),
	}

	_, err := v.Intake(context.Background(), handles)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "maximum is 2")
	assert.False(t, opened, "rejection must happen before any file read")
}

func TestIntakeRejectsAggregateSize(t *testing.T) {
	v := NewValidator(Limits{MaxFileCount: 10, MaxTotalSize: 10, MaxFileSize: 8, WarnFileSize: 8})

	var opened bool
	handles := []FileHandle{
		handle("a.go", "12345678", &opened),
		handle("b.go", "12345678", &opened),
	}

	_, err := v.Intake(context.Background(), handles)
	require.Error(t, err)
	// The message names the cap; individual files are under their own cap.
	assert.Contains(t, err.Error(), "10 byte batch cap")
	assert.False(t, opened)
}

func TestIntakeRejectsUnsupportedExtension(t *testing.T) {
	v := NewValidator(DefaultLimits())

	var opened bool
	_, err := v.Intake(context.Background(), []FileHandle{
		handle("binary.exe", "MZ", &opened),
	})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "unsupported file type")
	assert.False(t, opened)
}

func TestIntakeRejectsOversizedFile(t *testing.T) {
	v := NewValidator(Limits{MaxFileCount: 10, MaxTotalSize: 1 << 20, MaxFileSize: 4, WarnFileSize: 2})

	_, err := v.Intake(context.Background(), []FileHandle{
		handle("big.go", "package big", nil),
	})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "per-file cap")
}

func TestIntakeAggregatesFailures(t *testing.T) {
	v := NewValidator(Limits{MaxFileCount: 10, MaxTotalSize: 1 << 20, MaxFileSize: 4, WarnFileSize: 2})

	_, err := v.Intake(context.Background(), []FileHandle{
		handle("binary.exe", "MZ", nil),
		handle("big.go", "package big", nil),
	})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "binary.exe")
	assert.Contains(t, err.Error(), "big.go")
}

func TestIntakeWarnsOnLargeFile(t *testing.T) {
	v := NewValidator(Limits{MaxFileCount: 10, MaxTotalSize: 1 << 20, MaxFileSize: 100, WarnFileSize: 4})

	result, err := v.Intake(context.Background(), []FileHandle{
		handle("long.go", "package verylong", nil),
	})
	require.NoError(t, err)
	require.Len(t, result.Warnings, 1)
	assert.Contains(t, result.Warnings[0], "long.go")
	require.Len(t, result.Files, 1)
}

func TestIntakeReadFailureRejectsBatch(t *testing.T) {
	v := NewValidator(DefaultLimits())

	broken := FileHandle{
		Name: "a.go",
		Size: 5,
		Open: func() (io.ReadCloser, error) {
			return nil, errors.New("disk on fire")
		},
	}

	_, err := v.Intake(context.Background(), []FileHandle{broken})
	require.Error(t, err)
	// The surfaced message is generic; the underlying cause is only logged.
	assert.Contains(t, err.Error(), "failed to read selected files")
	assert.NotContains(t, err.Error(), "disk on fire")
}

func TestIntakeEmptyBatch(t *testing.T) {
	v := NewValidator(DefaultLimits())
	_, err := v.Intake(context.Background(), nil)
	assert.Error(t, err)
}

func TestFromPaths(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "main.py")
	require.NoError(t, os.WriteFile(path, []byte("print('hi')"), 0o600))

	handles, err := FromPaths([]string{path})
	require.NoError(t, err)
	require.Len(t, handles, 1)
	assert.Equal(t, "main.py", handles[0].Name)
	assert.Equal(t, int64(11), handles[0].Size)

	rc, err := handles[0].Open()
	require.NoError(t, err)
	data, err := io.ReadAll(rc)
	require.NoError(t, err)
	require.NoError(t, rc.Close())
	assert.Equal(t, "print('hi')", string(data))

	_, err = FromPaths([]string{filepath.Join(dir, "missing.py")})
	assert.Error(t, err)

	_, err = FromPaths([]string{dir})
	assert.Error(t, err)
}
