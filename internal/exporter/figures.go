package exporter

import (
	"bytes"
	"context"
	"fmt"
	"image/color"
	"log/slog"

	"gonum.org/v1/plot"
	"gonum.org/v1/plot/text"
	"gonum.org/v1/plot/vg"
	"gonum.org/v1/plot/vg/draw"
	"gonum.org/v1/plot/vg/vgimg"

	"github.com/phamthanhtung35NB/excel-to-chart/internal/dataprocessing"
	"github.com/phamthanhtung35NB/excel-to-chart/internal/files"
)

// Figure file names
const (
	LearningProgressFigure = "bao_cao_thong_ke_hoc_tap.png"
	RegistrationFigure     = "thong_ke_dang_ky_hoc_vien.png"
	CourseDetailFigure     = "phan_tich_chi_tiet_khoa_hoc.png"
	QuizFigure             = "phan_tich_bai_kiem_tra.png"
)

// Renderer draws report figures into PNG bytes
type Renderer struct {
	cfg    ChartConfig
	logger *slog.Logger
}

// NewRenderer creates a renderer
func NewRenderer(cfg ChartConfig, logger *slog.Logger) *Renderer {
	if logger == nil {
		logger = slog.Default()
	}
	return &Renderer{cfg: cfg, logger: logger}
}

// RenderAll renders every figure whose source section is present. Nothing is
// written; the caller decides when to persist the artifacts.
func (r *Renderer) RenderAll(ctx context.Context, report *dataprocessing.Report) ([]files.Artifact, error) {
	type figure struct {
		name   string
		skip   bool
		render func() ([]byte, error)
	}
	figures := []figure{
		{LearningProgressFigure, report.Progress == nil, func() ([]byte, error) { return r.LearningProgress(report.Progress) }},
		{RegistrationFigure, report.Roster == nil, func() ([]byte, error) { return r.Registration(report.Roster) }},
		{CourseDetailFigure, report.Progress == nil, func() ([]byte, error) { return r.CourseDetail(report.Progress) }},
		{QuizFigure, report.Quiz == nil, func() ([]byte, error) { return r.QuizAnalysis(report.Quiz) }},
	}

	var artifacts []files.Artifact
	for _, f := range figures {
		if f.skip {
			r.logger.InfoContext(ctx, "Figure skipped, source table is empty", slog.String("figure", f.name))
			continue
		}
		data, err := f.render()
		if err != nil {
			return nil, fmt.Errorf("render %s: %w", f.name, err)
		}
		r.logger.DebugContext(ctx, "Figure rendered",
			slog.String("figure", f.name),
			slog.Int("size_bytes", len(data)))
		artifacts = append(artifacts, files.Artifact{Name: f.name, Data: data})
	}
	return artifacts, nil
}

// LearningProgress is the 2x2 overview of the progress export
func (r *Renderer) LearningProgress(s *dataprocessing.ProgressSection) ([]byte, error) {
	dist, err := r.distributionPlot(s.Distribution)
	if err != nil {
		return nil, err
	}
	outcomes := r.piePlot("Kết quả học tập", s.Outcomes, r.paletteColors(len(s.Outcomes)))
	top, err := r.topCoursesPlot(s.TopCourses)
	if err != nil {
		return nil, err
	}
	instructors, err := r.instructorPlot(s.Instructors)
	if err != nil {
		return nil, err
	}

	return r.compose("THỐNG KÊ TIẾN TRÌNH HỌC TẬP", r.cfg.Width, r.cfg.Height, [][]*plot.Plot{
		{dist, outcomes},
		{top, instructors},
	})
}

// Registration is the 1x2 roster figure
func (r *Renderer) Registration(s *dataprocessing.RosterSection) ([]byte, error) {
	daily, err := r.registrationPlot(s.Daily)
	if err != nil {
		return nil, err
	}
	statuses, err := r.statusPlot(s.Statuses)
	if err != nil {
		return nil, err
	}

	return r.compose("THỐNG KÊ ĐĂNG KÝ HỌC VIÊN", r.cfg.Width, r.cfg.Height*3/4, [][]*plot.Plot{
		{daily, statuses},
	})
}

// CourseDetail is the 2x2 per-course breakdown
func (r *Renderer) CourseDetail(s *dataprocessing.ProgressSection) ([]byte, error) {
	heat, err := r.heatmapPlot(s.CourseOutcomes)
	if err != nil {
		return nil, err
	}
	box, err := r.boxPlot(s.CourseProgress)
	if err != nil {
		return nil, err
	}
	means, err := r.meanBarPlot("Tiến trình trung bình theo khóa học", "Tiến trình (%)", s.CourseMeans, r.cfg.InstructorLabelWidth)
	if err != nil {
		return nil, err
	}
	radar := r.radarPlot(s.CourseMeans)

	return r.compose("PHÂN TÍCH CHI TIẾT KHÓA HỌC", r.cfg.Width, r.cfg.Height, [][]*plot.Plot{
		{heat, box},
		{means, radar},
	})
}

// QuizAnalysis is the 2x2 quiz figure
func (r *Renderer) QuizAnalysis(s *dataprocessing.QuizSection) ([]byte, error) {
	results := r.piePlot("Kết quả bài kiểm tra", s.Results, []color.Color{r.cfg.Color(3), r.cfg.Color(0)})
	rates, err := r.passRatePlot(s.CoursePassRates)
	if err != nil {
		return nil, err
	}
	scatter, err := r.durationScorePlot(s.DurationScores)
	if err != nil {
		return nil, err
	}
	hours, err := r.hourPlot(s.Hours)
	if err != nil {
		return nil, err
	}

	return r.compose("PHÂN TÍCH BÀI KIỂM TRA", r.cfg.Width, r.cfg.Height, [][]*plot.Plot{
		{results, rates},
		{scatter, hours},
	})
}

// compose tiles the plots under a figure title and encodes the result as PNG
func (r *Renderer) compose(title string, width, height vg.Length, grid [][]*plot.Plot) ([]byte, error) {
	img := vgimg.NewWith(vgimg.UseWH(width, height), vgimg.UseDPI(r.cfg.DPI))
	dc := draw.New(img)

	titleHeight := r.cfg.TitleFontSize * 2
	sty := plot.New().Title.TextStyle
	sty.Font.Size = r.cfg.TitleFontSize
	sty.XAlign = text.XCenter
	sty.YAlign = text.YCenter
	dc.FillText(sty, vg.Point{X: (dc.Min.X + dc.Max.X) / 2, Y: dc.Max.Y - titleHeight/2}, title)

	body := draw.Crop(dc, 0, 0, 0, -titleHeight)
	tiles := draw.Tiles{
		Rows:      len(grid),
		Cols:      len(grid[0]),
		PadX:      vg.Millimeter * 6,
		PadY:      vg.Millimeter * 6,
		PadTop:    vg.Millimeter * 2,
		PadBottom: vg.Millimeter * 2,
		PadLeft:   vg.Millimeter * 2,
		PadRight:  vg.Millimeter * 2,
	}

	canvases := plot.Align(grid, tiles, body)
	for j := range grid {
		for i := range grid[j] {
			grid[j][i].Draw(canvases[j][i])
		}
	}

	var buf bytes.Buffer
	if _, err := (vgimg.PngCanvas{Canvas: img}).WriteTo(&buf); err != nil {
		return nil, fmt.Errorf("encode png: %w", err)
	}
	return buf.Bytes(), nil
}
