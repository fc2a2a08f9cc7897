// Package validation checks run preconditions before the pipeline
// starts, so a missing input aborts up front rather than halfway
// through a transform.
package validation

import (
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	apperrors "mortality/internal/errors"
)

// supportedExtensions lists the input formats the loader understands.
var supportedExtensions = map[string]bool{
	".csv":  true,
	".xlsx": true,
}

// FileValidator provides input file validation for the pipeline
type FileValidator struct {
	logger *slog.Logger
}

// NewFileValidator creates a new file validator
func NewFileValidator(logger *slog.Logger) *FileValidator {
	if logger == nil {
		logger = slog.Default()
	}
	return &FileValidator{
		logger: logger,
	}
}

// ValidateInputFile validates that an input file exists, is a regular
// file, and has a supported extension.
func (v *FileValidator) ValidateInputFile(path string) error {
	info, err := os.Stat(path)
	if os.IsNotExist(err) {
		v.logger.Error("Input file does not exist",
			slog.String("path", path))
		return apperrors.NewInputError(fmt.Sprintf("input file %s does not exist", path), err)
	}
	if err != nil {
		v.logger.Error("Failed to stat input file",
			slog.String("path", path),
			slog.String("error", err.Error()))
		return apperrors.NewInputError(fmt.Sprintf("failed to stat %s", path), err)
	}
	if info.IsDir() {
		v.logger.Error("Input path is a directory",
			slog.String("path", path))
		return apperrors.NewInputError(fmt.Sprintf("%s is a directory, not a file", path), nil)
	}

	ext := strings.ToLower(filepath.Ext(path))
	if !supportedExtensions[ext] {
		v.logger.Error("Unsupported input file type",
			slog.String("path", path),
			slog.String("extension", ext))
		return apperrors.NewValidationError(fmt.Sprintf("unsupported input file type %q", ext), nil)
	}

	v.logger.Info("Input file validated",
		slog.String("path", path),
		slog.Int64("size_bytes", info.Size()))
	return nil
}

// ValidateInputFiles validates every path, reporting the first failure.
func (v *FileValidator) ValidateInputFiles(paths ...string) error {
	for _, p := range paths {
		if err := v.ValidateInputFile(p); err != nil {
			return err
		}
	}
	return nil
}
