package validation

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	apperrors "github.com/phamthanhtung35NB/excel-to-chart/internal/errors"
	"github.com/phamthanhtung35NB/excel-to-chart/internal/shared/testutil"
)

func TestWorkbookValidator_Validate(t *testing.T) {
	write := func(t *testing.T, name string) string {
		path := filepath.Join(t.TempDir(), name)
		require.NoError(t, os.WriteFile(path, []byte("x"), 0644))
		return path
	}

	tests := []struct {
		name     string
		setup    func(t *testing.T) string
		wantType apperrors.ErrorType
	}{
		{name: "xlsx", setup: func(t *testing.T) string { return write(t, "tien_trinh_hoc_tap.xlsx") }},
		{name: "upper case extension", setup: func(t *testing.T) string { return write(t, "BAO_CAO.XLSX") }},
		{name: "xlsm", setup: func(t *testing.T) string { return write(t, "macro.xlsm") }},
		{
			name:     "missing file",
			setup:    func(t *testing.T) string { return filepath.Join(t.TempDir(), "missing.xlsx") },
			wantType: apperrors.ErrTypeFileNotFound,
		},
		{
			name:     "directory",
			setup:    func(t *testing.T) string { return t.TempDir() },
			wantType: apperrors.ErrTypeFileNotFound,
		},
		{
			name:     "csv file",
			setup:    func(t *testing.T) string { return write(t, "ket_qua.csv") },
			wantType: apperrors.ErrTypeValidation,
		},
		{
			name:     "lock file",
			setup:    func(t *testing.T) string { return write(t, "~$tien_trinh_hoc_tap.xlsx") },
			wantType: apperrors.ErrTypeValidation,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			logger, _ := testutil.NewTestLogger(t)
			err := NewWorkbookValidator(logger).Validate(tt.setup(t))

			if tt.wantType == "" {
				assert.NoError(t, err)
				return
			}
			require.Error(t, err)
			assert.Equal(t, tt.wantType, apperrors.Classify(err))
		})
	}
}

func TestWorkbookValidator_LogsMissing(t *testing.T) {
	logger, handler := testutil.NewTestLogger(t)
	path := filepath.Join(t.TempDir(), "nope.xlsx")

	err := NewWorkbookValidator(logger).Validate(path)
	require.Error(t, err)
	assert.ErrorIs(t, err, apperrors.ErrFileNotFound)
	assert.True(t, handler.ContainsMessage("Workbook not found"))
	assert.True(t, handler.ContainsAttr("file", path))
}
