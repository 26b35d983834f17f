package exporter

import (
	"io"
	"strings"
	"time"

	"golang.org/x/text/language"
	"golang.org/x/text/message"

	"github.com/phamthanhtung35NB/excel-to-chart/internal/dataprocessing"
)

const summaryRuleWidth = 60

// SummaryWriter prints the human-readable report. Counts use thousands
// separators and rates one decimal place.
type SummaryWriter struct {
	w io.Writer
	p *message.Printer
}

// NewSummaryWriter creates a summary writer on w
func NewSummaryWriter(w io.Writer) *SummaryWriter {
	return &SummaryWriter{w: w, p: message.NewPrinter(language.English)}
}

// Loaded reports a loaded input table
func (s *SummaryWriter) Loaded(label string, rows int) {
	s.p.Fprintf(s.w, "✅ Đã load file %s: %d dòng\n", label, rows)
}

// Saved reports a written artifact
func (s *SummaryWriter) Saved(path string) {
	s.p.Fprintf(s.w, "✅ Đã lưu: %s\n", path)
}

// RenderingStarted announces chart generation
func (s *SummaryWriter) RenderingStarted() {
	s.p.Fprintln(s.w, "\n🎨 Đang tạo biểu đồ...")
}

// Done closes a successful run
func (s *SummaryWriter) Done() {
	s.p.Fprintln(s.w, "\n✅ Hoàn thành tất cả biểu đồ!")
}

// Message prints a free-form line, typically the error message of an aborted run
func (s *SummaryWriter) Message(msg string) {
	s.p.Fprintln(s.w, msg)
}

// Report prints the overview. Sections whose table is empty are left out.
func (s *SummaryWriter) Report(report *dataprocessing.Report) {
	rule := strings.Repeat("=", summaryRuleWidth)
	s.p.Fprintln(s.w, rule)
	s.p.Fprintln(s.w, "📋 BÁO CÁO TỔNG QUAN HỌC TẬP")
	s.p.Fprintln(s.w, rule)

	var sections int
	if report.Progress != nil {
		s.progress(report.Progress.Summary)
		sections++
	}
	if report.Roster != nil {
		if sections > 0 {
			s.p.Fprintln(s.w)
		}
		s.roster(report.Roster.Summary)
		sections++
	}
	if report.Quiz != nil {
		if sections > 0 {
			s.p.Fprintln(s.w)
		}
		s.quiz(report.Quiz.Summary)
	}

	s.p.Fprintln(s.w, rule)
}

func (s *SummaryWriter) progress(sum dataprocessing.ProgressSummary) {
	s.p.Fprintln(s.w, "📊 TIẾN TRÌNH HỌC TẬP:")
	s.p.Fprintf(s.w, "   • Tổng số đăng ký khóa học: %d\n", sum.Enrollments)
	if sum.ValidProgress > 0 {
		s.p.Fprintf(s.w, "   • Tiến trình trung bình: %.1f%%\n", sum.MeanProgress)
	}
	s.p.Fprintf(s.w, "   • Số học viên hoàn thành: %d\n", sum.Completed)
	s.p.Fprintf(s.w, "   • Tỷ lệ hoàn thành: %.1f%%\n", sum.CompletionRate)
	s.p.Fprintf(s.w, "   • Số khóa học khác nhau: %d\n", sum.Courses)
	s.p.Fprintf(s.w, "   • Số giảng viên: %d\n", sum.Instructors)
	if sum.ExcludedProgress > 0 {
		s.p.Fprintf(s.w, "   • Giá trị tiến trình không hợp lệ (bỏ qua): %d\n", sum.ExcludedProgress)
	}
}

func (s *SummaryWriter) roster(sum dataprocessing.RosterSummary) {
	s.p.Fprintln(s.w, "👥 HỌC VIÊN:")
	s.p.Fprintf(s.w, "   • Tổng số học viên: %d\n", sum.Students)
	s.p.Fprintf(s.w, "   • Học viên đang hoạt động: %d\n", sum.Active)
	s.p.Fprintf(s.w, "   • Tỷ lệ hoạt động: %.1f%%\n", sum.ActiveRate)
	if sum.Latest != nil {
		s.p.Fprintf(s.w, "   • Ngày đăng ký gần nhất: %s\n", formatDate(*sum.Latest))
	}
	if sum.Earliest != nil {
		s.p.Fprintf(s.w, "   • Ngày đăng ký sớm nhất: %s\n", formatDate(*sum.Earliest))
	}
}

func (s *SummaryWriter) quiz(sum dataprocessing.QuizSummary) {
	s.p.Fprintln(s.w, "📝 BÀI KIỂM TRA:")
	s.p.Fprintf(s.w, "   • Tổng số lượt làm bài: %d\n", sum.Attempts)
	s.p.Fprintf(s.w, "   • Số lượt đạt: %d\n", sum.Passed)
	s.p.Fprintf(s.w, "   • Tỷ lệ đạt: %.1f%%\n", sum.PassRate)
	if sum.ScoredAttempts > 0 {
		s.p.Fprintf(s.w, "   • Điểm trung bình: %.1f%%\n", sum.MeanScore)
	}
	s.p.Fprintf(s.w, "   • Số bài kiểm tra khác nhau: %d\n", sum.Exams)
	if sum.TimedAttempts > 0 {
		s.p.Fprintf(s.w, "   • Thời gian làm bài trung bình: %.1f phút\n", sum.MeanDuration.Minutes())
	}
}

func formatDate(t time.Time) string {
	return t.Format("02/01/2006")
}
