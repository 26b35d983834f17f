package errors

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAppError_Error(t *testing.T) {
	tests := []struct {
		name        string
		appError    *AppError
		wantMessage string
	}{
		{
			name: "error without cause",
			appError: &AppError{
				Type:    ErrTypeParsing,
				Message: "bad date",
			},
			wantMessage: "[PARSE_FAILURE] bad date",
		},
		{
			name: "error with cause",
			appError: &AppError{
				Type:    ErrTypeStorage,
				Message: "write chart",
				Cause:   fmt.Errorf("disk full"),
			},
			wantMessage: "[STORAGE] write chart: disk full",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.wantMessage, tt.appError.Error())
		})
	}
}

func TestAppError_IsMatchesByType(t *testing.T) {
	err := NewFileNotFoundError("tien_trinh_hoc_tap.xlsx", nil)
	wrapped := fmt.Errorf("load progress: %w", err)

	assert.True(t, errors.Is(wrapped, ErrFileNotFound))
	assert.False(t, errors.Is(wrapped, ErrMissingColumn))
	assert.Equal(t, "tien_trinh_hoc_tap.xlsx", err.Context["path"])
}

func TestAppError_UnwrapReachesCause(t *testing.T) {
	cause := errors.New("boom")
	err := NewUnexpectedError("render", cause)

	assert.True(t, errors.Is(err, cause))
	assert.True(t, errors.Is(err, ErrUnexpected))
}

func TestNewMissingColumnError(t *testing.T) {
	err := NewMissingColumnError("students.xlsx", []string{"Họ tên", "Trạng thái"})

	require.Equal(t, ErrTypeMissingColumn, err.Type)
	assert.Contains(t, err.Error(), "Họ tên")
	assert.Contains(t, err.Error(), "Trạng thái")
	assert.Equal(t, []string{"Họ tên", "Trạng thái"}, err.Context["columns"])
}
