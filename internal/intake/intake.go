// Package intake accepts a batch of candidate files, enforces the
// count/size/type limits, and produces normalized file records tagged
// with their inferred source language.
package intake

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/critiq-cli/critiq/internal/common"
	"github.com/critiq-cli/critiq/internal/model"
	"github.com/google/uuid"
	"github.com/samber/lo"
)

// FileHandle describes a candidate file before its contents are read.
// Open is deliberately lazy: validation must reject bad batches without
// triggering a single read.
type FileHandle struct {
	Name string
	Size int64
	Open func() (io.ReadCloser, error)
}

// FromPaths builds handles for files on disk.
func FromPaths(paths []string) ([]FileHandle, error) {
	handles := make([]FileHandle, 0, len(paths))
	for _, path := range paths {
		info, err := os.Stat(path)
		if err != nil {
			return nil, fmt.Errorf("cannot access %s: %w", path, err)
		}
		if info.IsDir() {
			return nil, fmt.Errorf("%s is a directory, not a file", path)
		}

		p := path
		handles = append(handles, FileHandle{
			Name: filepath.Base(p),
			Size: info.Size(),
			Open: func() (io.ReadCloser, error) { return os.Open(p) },
		})
	}
	return handles, nil
}

// Limits holds the batch validation thresholds.
type Limits struct {
	MaxFileCount int
	MaxTotalSize int64
	MaxFileSize  int64
	WarnFileSize int64
}

// DefaultLimits returns the free-tier intake limits.
func DefaultLimits() Limits {
	return Limits{
		MaxFileCount: 10,
		MaxTotalSize: 2 << 20,   // 2 MiB across the batch
		MaxFileSize:  500 << 10, // 500 KiB per file
		WarnFileSize: 100 << 10, // soft threshold, truncation risk
	}
}

// Result is a successfully validated and read batch.
type Result struct {
	Files    []model.UploadedFile
	Warnings []string
}

// Validator applies intake rules to a batch of file handles.
type Validator struct {
	limits Limits
}

// NewValidator creates a validator with the given limits.
func NewValidator(limits Limits) *Validator {
	return &Validator{limits: limits}
}

// Intake validates the batch and, only if every rule passes, reads each
// file's contents. Validation is all-or-nothing: any hard failure rejects
// the whole batch before any file is opened. Oversized-but-accepted files
// produce non-blocking warnings.
func (v *Validator) Intake(ctx context.Context, handles []FileHandle) (*Result, error) {
	if len(handles) == 0 {
		return nil, common.NewUserError("no files selected", nil)
	}

	if len(handles) > v.limits.MaxFileCount {
		return nil, common.NewUserError(
			fmt.Sprintf("too many files: %d selected, maximum is %d per batch", len(handles), v.limits.MaxFileCount), nil)
	}

	totalSize := lo.SumBy(handles, func(h FileHandle) int64 { return h.Size })
	if totalSize > v.limits.MaxTotalSize {
		return nil, common.NewUserError(
			fmt.Sprintf("combined size %d bytes exceeds the %d byte batch cap", totalSize, v.limits.MaxTotalSize), nil)
	}

	var warnings []string
	var failures []string
	for _, h := range handles {
		if h.Size > v.limits.WarnFileSize && h.Size <= v.limits.MaxFileSize {
			warnings = append(warnings, fmt.Sprintf("%s is large (%d bytes); analysis may truncate it", h.Name, h.Size))
		}

		if !model.IsAcceptedExtension(h.Name) {
			failures = append(failures, fmt.Sprintf("%s: unsupported file type (accepted: %s)",
				h.Name, strings.Join(model.AcceptedExtensions(), ", ")))
		}
		if h.Size > v.limits.MaxFileSize {
			failures = append(failures, fmt.Sprintf("%s: %d bytes exceeds the %d byte per-file cap",
				h.Name, h.Size, v.limits.MaxFileSize))
		}
	}
	if len(failures) > 0 {
		return nil, common.NewUserError(strings.Join(failures, "; "), nil)
	}

	files := make([]model.UploadedFile, 0, len(handles))
	for _, h := range handles {
		if err := ctx.Err(); err != nil {
			return nil, err
		}

		content, err := readAll(h)
		if err != nil {
			common.LogError(err, "failed to read file", common.Fields{"file": h.Name})
			return nil, common.NewUserError("failed to read selected files", errors.New("read error"))
		}

		files = append(files, model.UploadedFile{
			ID:       uuid.NewString(),
			Name:     h.Name,
			Content:  content,
			Language: model.DetectLanguage(h.Name),
			Size:     h.Size,
		})
	}

	return &Result{Files: files, Warnings: warnings}, nil
}

func readAll(h FileHandle) (string, error) {
	rc, err := h.Open()
	if err != nil {
		return "", err
	}
	defer func() { _ = rc.Close() }()

	data, err := io.ReadAll(rc)
	if err != nil {
		return "", err
	}
	return string(data), nil
}
