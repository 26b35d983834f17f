package errors

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
)

// Classify returns the ErrorType of err. Errors that are not AppErrors are
// FILE_NOT_FOUND when they wrap fs.ErrNotExist and UNEXPECTED otherwise.
func Classify(err error) ErrorType {
	if err == nil {
		return ""
	}
	var appErr *AppError
	if errors.As(err, &appErr) {
		return appErr.Type
	}
	if errors.Is(err, fs.ErrNotExist) {
		return ErrTypeFileNotFound
	}
	return ErrTypeUnexpected
}

// UserMessage renders the console line printed when a run aborts.
func UserMessage(err error) string {
	switch Classify(err) {
	case ErrTypeFileNotFound:
		return fmt.Sprintf("❌ Lỗi: Không tìm thấy file - %v\n💡 Hãy đảm bảo các file Excel đã được đặt đúng đường dẫn", err)
	case ErrTypeMissingColumn:
		return fmt.Sprintf("❌ Lỗi: Thiếu cột dữ liệu - %v", err)
	case ErrTypeParsing:
		return fmt.Sprintf("❌ Lỗi: Dữ liệu không đúng định dạng - %v", err)
	case ErrTypeConfig:
		return fmt.Sprintf("❌ Lỗi cấu hình: %v", err)
	default:
		return fmt.Sprintf("❌ Lỗi không mong muốn: %v", err)
	}
}

// ErrorHandler logs pipeline failures with their classification.
type ErrorHandler struct {
	logger *slog.Logger
}

// NewErrorHandler creates a new error handler
func NewErrorHandler(logger *slog.Logger) *ErrorHandler {
	if logger == nil {
		logger = slog.Default()
	}
	return &ErrorHandler{
		logger: logger.With(slog.String("component", "error_handler")),
	}
}

// Handle logs err and returns the message for the user. A nil error returns "".
func (h *ErrorHandler) Handle(ctx context.Context, err error) string {
	if err == nil {
		return ""
	}

	attrs := []any{
		slog.String("error_type", string(Classify(err))),
		slog.String("error", err.Error()),
	}
	var appErr *AppError
	if errors.As(err, &appErr) {
		for k, v := range appErr.Context {
			attrs = append(attrs, slog.Any(k, v))
		}
	}
	h.logger.ErrorContext(ctx, "run aborted", attrs...)

	return UserMessage(err)
}
