package exporter

import (
	"bytes"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/phamthanhtung35NB/excel-to-chart/internal/dataprocessing"
)

func TestSummaryWriter_Report(t *testing.T) {
	var buf bytes.Buffer
	NewSummaryWriter(&buf).Report(sampleReport(t))
	out := buf.String()

	rule := strings.Repeat("=", 60)
	assert.True(t, strings.HasPrefix(out, rule+"\n📋 BÁO CÁO TỔNG QUAN HỌC TẬP\n"+rule+"\n"))
	assert.True(t, strings.HasSuffix(out, rule+"\n"))

	for _, line := range []string{
		"📊 TIẾN TRÌNH HỌC TẬP:",
		"   • Tổng số đăng ký khóa học: 1,234",
		"   • Tiến trình trung bình: 62.5%",
		"   • Số học viên hoàn thành: 3",
		"   • Tỷ lệ hoàn thành: 60.0%",
		"   • Số khóa học khác nhau: 2",
		"   • Số giảng viên: 2",
		"👥 HỌC VIÊN:",
		"   • Tỷ lệ hoạt động: 66.7%",
		"   • Ngày đăng ký gần nhất: 18/06/2025",
		"   • Ngày đăng ký sớm nhất: 01/06/2025",
		"📝 BÀI KIỂM TRA:",
		"   • Tỷ lệ đạt: 75.0%",
		"   • Thời gian làm bài trung bình: 15.0 phút",
	} {
		assert.Contains(t, out, line+"\n")
	}
	assert.NotContains(t, out, "không hợp lệ")
}

func TestSummaryWriter_PartialReport(t *testing.T) {
	report := sampleReport(t)
	report.Roster = nil
	report.Quiz = nil
	report.Progress.Summary.ExcludedProgress = 2

	var buf bytes.Buffer
	NewSummaryWriter(&buf).Report(report)
	out := buf.String()

	assert.Contains(t, out, "📊 TIẾN TRÌNH HỌC TẬP:")
	assert.Contains(t, out, "   • Giá trị tiến trình không hợp lệ (bỏ qua): 2\n")
	assert.NotContains(t, out, "👥 HỌC VIÊN:")
	assert.NotContains(t, out, "📝 BÀI KIỂM TRA:")
}

func TestSummaryWriter_NoValidProgress(t *testing.T) {
	var buf bytes.Buffer
	NewSummaryWriter(&buf).Report(blankColumnsReport(t))
	out := buf.String()

	assert.Contains(t, out, "   • Tổng số đăng ký khóa học: 2\n")
	assert.NotContains(t, out, "Tiến trình trung bình")
	assert.NotContains(t, out, "NaN")
}

func TestSummaryWriter_EmptyReport(t *testing.T) {
	var buf bytes.Buffer
	NewSummaryWriter(&buf).Report(&dataprocessing.Report{})

	rule := strings.Repeat("=", 60)
	assert.Equal(t, rule+"\n📋 BÁO CÁO TỔNG QUAN HỌC TẬP\n"+rule+"\n"+rule+"\n", buf.String())
}

func TestSummaryWriter_Messages(t *testing.T) {
	var buf bytes.Buffer
	s := NewSummaryWriter(&buf)
	s.Loaded("tiến trình học tập", 12345)
	s.Saved("charts/bao_cao_thong_ke_hoc_tap.png")
	s.Done()

	assert.Equal(t,
		"✅ Đã load file tiến trình học tập: 12,345 dòng\n"+
			"✅ Đã lưu: charts/bao_cao_thong_ke_hoc_tap.png\n"+
			"\n✅ Hoàn thành tất cả biểu đồ!\n",
		buf.String())
}
