package testutil

import (
	"path/filepath"
	"testing"

	"github.com/xuri/excelize/v2"
)

// Header rows of the three exports.
var (
	ProgressHeader = []string{"Họ tên", "Email", "Khóa học", "Giảng viên", "Ngày bắt đầu", "Ngày kết thúc", "Tiến trình học tập", "Kết quả học tập"}
	StudentsHeader = []string{"Họ tên", "Email", "Số điện thoại", "Ngày đăng ký", "Trạng thái", "Giới tính", "Năm sinh", "Tỉnh/Thành phố"}
	QuizHeader     = []string{"Họ tên", "Email", "Bài kiểm tra", "Khóa học", "Ngày nộp bài", "Điểm", "Kết quả", "Thời gian làm bài"}
)

// WriteWorkbook saves an xlsx under t.TempDir() laid out like a platform
// export: a title row, the header row, then rows. It returns the file path.
func WriteWorkbook(t *testing.T, name string, header []string, rows [][]string) string {
	t.Helper()

	f := excelize.NewFile()
	defer f.Close()
	sheet := f.GetSheetName(0)

	if err := f.SetCellValue(sheet, "A1", "Báo cáo xuất từ hệ thống"); err != nil {
		t.Fatalf("write title: %v", err)
	}
	writeRow(t, f, sheet, 2, header)
	for i, row := range rows {
		writeRow(t, f, sheet, i+3, row)
	}

	path := filepath.Join(t.TempDir(), name)
	if err := f.SaveAs(path); err != nil {
		t.Fatalf("save workbook %s: %v", path, err)
	}
	return path
}

func writeRow(t *testing.T, f *excelize.File, sheet string, rowNum int, values []string) {
	t.Helper()

	cell, err := excelize.CoordinatesToCellName(1, rowNum)
	if err != nil {
		t.Fatalf("cell name: %v", err)
	}
	row := make([]interface{}, len(values))
	for i, v := range values {
		row[i] = v
	}
	if err := f.SetSheetRow(sheet, cell, &row); err != nil {
		t.Fatalf("write row %d: %v", rowNum, err)
	}
}
