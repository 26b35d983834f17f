package validation

import (
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	apperrors "github.com/phamthanhtung35NB/excel-to-chart/internal/errors"
)

// workbookExtensions are the formats excelize opens
var workbookExtensions = map[string]bool{
	".xlsx": true,
	".xlsm": true,
}

// WorkbookValidator checks an input path before the loader opens it
type WorkbookValidator struct {
	logger *slog.Logger
}

// NewWorkbookValidator creates a workbook validator
func NewWorkbookValidator(logger *slog.Logger) *WorkbookValidator {
	if logger == nil {
		logger = slog.Default()
	}
	return &WorkbookValidator{logger: logger}
}

// Validate reports FILE_NOT_FOUND for a missing path or a directory,
// VALIDATION for anything that is not a saved workbook and STORAGE when the
// file cannot be read.
func (v *WorkbookValidator) Validate(path string) error {
	info, err := os.Stat(path)
	switch {
	case os.IsNotExist(err):
		v.logger.Warn("Workbook not found", slog.String("file", path))
		return apperrors.NewFileNotFoundError(path, err)
	case err != nil:
		return apperrors.NewStorageError("cannot stat workbook", err).WithContext("file", path)
	case info.IsDir():
		v.logger.Warn("Workbook path is a directory", slog.String("file", path))
		return apperrors.NewFileNotFoundError(path, fmt.Errorf("%s is a directory", path))
	}

	name := filepath.Base(path)
	if strings.HasPrefix(name, "~$") {
		return apperrors.NewAppValidationError(fmt.Sprintf("%s is an Excel lock file, close the workbook and retry", name))
	}
	if ext := strings.ToLower(filepath.Ext(name)); !workbookExtensions[ext] {
		return apperrors.NewAppValidationError(fmt.Sprintf("%s is not an xlsx workbook", name))
	}

	f, err := os.Open(path)
	if err != nil {
		return apperrors.NewStorageError("cannot read workbook", err).WithContext("file", path)
	}
	f.Close()

	v.logger.Debug("Workbook validated",
		slog.String("file", path),
		slog.Int64("size_bytes", info.Size()))
	return nil
}
