package exporter

import (
	"fmt"
	"image/color"
	"math"
	"strconv"

	"gonum.org/v1/plot"
	"gonum.org/v1/plot/palette"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/text"
	"gonum.org/v1/plot/vg"
	"gonum.org/v1/plot/vg/draw"

	"github.com/phamthanhtung35NB/excel-to-chart/internal/dataprocessing"
)

func newPlot(title string) *plot.Plot {
	p := plot.New()
	p.Title.Text = title
	p.Title.Padding = vg.Points(6)
	return p
}

func rotateTicks(axis *plot.Axis) {
	axis.Tick.Label.Rotation = math.Pi / 5
	axis.Tick.Label.XAlign = text.XRight
	axis.Tick.Label.YAlign = text.YCenter
}

// barWidth spreads n bars over a plot cell
func (r *Renderer) barWidth(n int) vg.Length {
	if n < 1 {
		n = 1
	}
	w := r.cfg.Width / 2 * 0.55 / vg.Length(n)
	if w > vg.Points(48) {
		w = vg.Points(48)
	}
	return w
}

// bars draws one bar per category, each in its own palette colour, with its
// label above it. Horizontal bars are listed top to bottom.
func (r *Renderer) bars(p *plot.Plot, labels []string, values []float64, valueLabels []string, horizontal bool, colors func(int) color.Color) error {
	n := len(values)
	if n == 0 {
		return nil
	}
	xys := make(plotter.XYs, n)
	for i, v := range values {
		pos := float64(i)
		if horizontal {
			pos = float64(n - 1 - i)
		}
		bar, err := plotter.NewBarChart(plotter.Values{v}, r.barWidth(n))
		if err != nil {
			return fmt.Errorf("bar %q: %w", labels[i], err)
		}
		bar.XMin = pos
		bar.Horizontal = horizontal
		bar.Color = colors(i)
		bar.LineStyle.Width = 0
		p.Add(bar)

		if horizontal {
			xys[i] = plotter.XY{X: v, Y: pos}
		} else {
			xys[i] = plotter.XY{X: pos, Y: v}
		}
	}

	if horizontal {
		reversed := make([]string, n)
		for i, l := range labels {
			reversed[n-1-i] = l
		}
		p.NominalY(reversed...)
	} else {
		p.NominalX(labels...)
	}

	l, err := plotter.NewLabels(plotter.XYLabels{XYs: xys, Labels: valueLabels})
	if err != nil {
		return err
	}
	for i := range l.TextStyle {
		if horizontal {
			l.TextStyle[i].YAlign = text.YCenter
		} else {
			l.TextStyle[i].XAlign = text.XCenter
		}
	}
	if horizontal {
		l.Offset = vg.Point{X: vg.Points(4)}
	} else {
		l.Offset = vg.Point{Y: vg.Points(3)}
	}
	p.Add(l)
	return nil
}

func countLabels(counts dataprocessing.Counts) []string {
	out := make([]string, len(counts))
	for i, c := range counts {
		out[i] = strconv.Itoa(c.Count)
	}
	return out
}

// distributionPlot is the progress bucket bar chart
func (r *Renderer) distributionPlot(dist dataprocessing.Counts) (*plot.Plot, error) {
	p := newPlot("Phân bố tiến trình học tập")
	p.Y.Label.Text = "Số lượng học viên"
	rotateTicks(&p.X)
	err := r.bars(p, dist.Keys(), dist.Values(), countLabels(dist), false, r.cfg.Color)
	return p, err
}

// piePlot draws counts as a labelled pie
func (r *Renderer) piePlot(title string, counts dataprocessing.Counts, colors []color.Color) *plot.Plot {
	p := newPlot(title)
	p.HideAxes()
	p.Add(newPieChart(counts.Keys(), counts.Values(), colors))
	return p
}

func (r *Renderer) paletteColors(n int) []color.Color {
	out := make([]color.Color, n)
	for i := range out {
		out[i] = r.cfg.Color(i)
	}
	return out
}

// topCoursesPlot is the horizontal bar chart of the most popular courses
func (r *Renderer) topCoursesPlot(top dataprocessing.Counts) (*plot.Plot, error) {
	p := newPlot(fmt.Sprintf("Top %d khóa học phổ biến", len(top)))
	p.X.Label.Text = "Số lượng học viên"
	labels := truncateAll(top.Keys(), r.cfg.CourseLabelWidth)
	err := r.bars(p, labels, top.Values(), countLabels(top), true, func(int) color.Color {
		return r.cfg.Color(6)
	})
	return p, err
}

// instructorPlot places each instructor by student count and mean progress.
// Point size grows with the student count.
func (r *Renderer) instructorPlot(stats []dataprocessing.GroupStat) (*plot.Plot, error) {
	p := newPlot("Hiệu quả giảng viên")
	p.X.Label.Text = "Số lượng học viên"
	p.Y.Label.Text = "Tiến trình trung bình (%)"
	if len(stats) == 0 {
		return p, nil
	}

	xys := make(plotter.XYs, len(stats))
	names := make([]string, len(stats))
	for i, s := range stats {
		xys[i] = plotter.XY{X: float64(s.Count), Y: s.Mean}
		names[i] = truncate(s.Key, r.cfg.InstructorLabelWidth)
	}

	sc, err := plotter.NewScatter(xys)
	if err != nil {
		return nil, err
	}
	pointColor := r.cfg.Color(7)
	sc.GlyphStyleFunc = func(i int) draw.GlyphStyle {
		return draw.GlyphStyle{
			Color:  pointColor,
			Radius: vg.Points(3 + 2*math.Sqrt(float64(stats[i].Count))),
			Shape:  draw.CircleGlyph{},
		}
	}

	labels, err := plotter.NewLabels(plotter.XYLabels{XYs: xys, Labels: names})
	if err != nil {
		return nil, err
	}
	labels.Offset = vg.Point{X: vg.Points(5), Y: vg.Points(5)}

	p.Add(plotter.NewGrid(), sc, labels)
	return p, nil
}

// registrationPlot is the registrations-per-day line with point labels
func (r *Renderer) registrationPlot(daily []dataprocessing.DateCount) (*plot.Plot, error) {
	p := newPlot("Lượng đăng ký theo ngày")
	p.Y.Label.Text = "Số lượt đăng ký"
	rotateTicks(&p.X)
	if len(daily) == 0 {
		return p, nil
	}

	xys := make(plotter.XYs, len(daily))
	ticks := make([]string, len(daily))
	counts := make([]string, len(daily))
	for i, d := range daily {
		xys[i] = plotter.XY{X: float64(i), Y: float64(d.Count)}
		ticks[i] = d.Date.Format("02/01/2006")
		counts[i] = strconv.Itoa(d.Count)
	}

	line, points, err := r.linePoints(xys, r.cfg.Color(3))
	if err != nil {
		return nil, err
	}
	labels, err := plotter.NewLabels(plotter.XYLabels{XYs: xys, Labels: counts})
	if err != nil {
		return nil, err
	}
	for i := range labels.TextStyle {
		labels.TextStyle[i].XAlign = text.XCenter
	}
	labels.Offset = vg.Point{Y: vg.Points(8)}

	p.Add(plotter.NewGrid(), line, points, labels)
	p.NominalX(ticks...)
	return p, nil
}

func (r *Renderer) linePoints(xys plotter.XYs, c color.Color) (*plotter.Line, *plotter.Scatter, error) {
	line, points, err := plotter.NewLinePoints(xys)
	if err != nil {
		return nil, nil, err
	}
	line.Color = c
	line.Width = vg.Points(2)
	points.Shape = draw.CircleGlyph{}
	points.Color = c
	points.Radius = vg.Points(4)
	return line, points, nil
}

// statusPlot is the roster status bar chart
func (r *Renderer) statusPlot(statuses dataprocessing.Counts) (*plot.Plot, error) {
	p := newPlot("Trạng thái học viên")
	p.Y.Label.Text = "Số lượng"
	err := r.bars(p, statuses.Keys(), statuses.Values(), countLabels(statuses), false, func(i int) color.Color {
		return r.cfg.Color(i + 3)
	})
	return p, err
}

// pivotGrid adapts a pivot to plotter.GridXYZ with the first row on top
type pivotGrid struct {
	pivot *dataprocessing.Pivot
}

func (g pivotGrid) Dims() (c, r int) { return len(g.pivot.Cols), len(g.pivot.Rows) }
func (g pivotGrid) Z(c, r int) float64 {
	return float64(g.pivot.Cells[len(g.pivot.Rows)-1-r][c])
}
func (g pivotGrid) X(c int) float64 { return float64(c) }
func (g pivotGrid) Y(r int) float64 { return float64(r) }

// heatmapPlot draws the course by outcome pivot with the count in each cell
func (r *Renderer) heatmapPlot(pivot *dataprocessing.Pivot) (*plot.Plot, error) {
	p := newPlot("Khóa học theo kết quả học tập")
	if pivot == nil || len(pivot.Rows) == 0 {
		return p, nil
	}

	grid := pivotGrid{pivot: pivot}
	hm := plotter.NewHeatMap(grid, palette.Heat(12, 1))
	hm.Min = 0
	hm.Max = math.Max(1, float64(pivot.Max()))

	cols, rows := grid.Dims()
	var xys plotter.XYs
	var counts []string
	for c := 0; c < cols; c++ {
		for row := 0; row < rows; row++ {
			xys = append(xys, plotter.XY{X: grid.X(c), Y: grid.Y(row)})
			counts = append(counts, strconv.Itoa(int(grid.Z(c, row))))
		}
	}
	labels, err := plotter.NewLabels(plotter.XYLabels{XYs: xys, Labels: counts})
	if err != nil {
		return nil, err
	}
	for i := range labels.TextStyle {
		labels.TextStyle[i].XAlign = text.XCenter
		labels.TextStyle[i].YAlign = text.YCenter
	}

	p.Add(hm, labels)
	p.NominalX(pivot.Cols...)

	ylabels := make([]string, rows)
	for i, name := range pivot.Rows {
		ylabels[rows-1-i] = truncate(name, r.cfg.InstructorLabelWidth)
	}
	p.NominalY(ylabels...)
	return p, nil
}

// boxPlot shows the spread of progress in each top course
func (r *Renderer) boxPlot(courses []dataprocessing.CourseValues) (*plot.Plot, error) {
	p := newPlot("Phân bố tiến trình theo khóa học")
	p.Y.Label.Text = "Tiến trình (%)"
	rotateTicks(&p.X)
	if len(courses) == 0 {
		return p, nil
	}

	names := make([]string, len(courses))
	for i, cv := range courses {
		names[i] = truncate(cv.Course, r.cfg.InstructorLabelWidth)
		if len(cv.Values) == 0 {
			continue
		}
		b, err := plotter.NewBoxPlot(r.barWidth(len(courses)), float64(i), plotter.Values(cv.Values))
		if err != nil {
			return nil, fmt.Errorf("box plot %q: %w", cv.Course, err)
		}
		b.FillColor = r.cfg.Color(i)
		p.Add(b)
	}
	p.NominalX(names...)
	return p, nil
}

// meanBarPlot draws group means with one-decimal labels
func (r *Renderer) meanBarPlot(title, ylabel string, stats []dataprocessing.GroupStat, width int) (*plot.Plot, error) {
	p := newPlot(title)
	p.Y.Label.Text = ylabel
	rotateTicks(&p.X)

	names := make([]string, len(stats))
	values := make([]float64, len(stats))
	labels := make([]string, len(stats))
	for i, s := range stats {
		names[i] = truncate(s.Key, width)
		values[i] = s.Mean
		labels[i] = strconv.FormatFloat(s.Mean, 'f', 1, 64)
	}
	err := r.bars(p, names, values, labels, false, r.cfg.Color)
	return p, err
}

// radarPlot shows mean progress of the top courses on a 0..100 scale
func (r *Renderer) radarPlot(stats []dataprocessing.GroupStat) *plot.Plot {
	p := newPlot("Tiến trình trung bình (radar)")
	p.HideAxes()

	names := make([]string, len(stats))
	values := make([]float64, len(stats))
	for i, s := range stats {
		names[i] = truncate(s.Key, r.cfg.InstructorLabelWidth)
		values[i] = s.Mean
	}
	p.Add(newRadarChart(names, values, 100, r.cfg.Color(4)))
	return p
}

// passRatePlot is the pass rate per course bar chart
func (r *Renderer) passRatePlot(rates []dataprocessing.RateStat) (*plot.Plot, error) {
	p := newPlot("Tỷ lệ đạt theo khóa học")
	p.Y.Label.Text = "Tỷ lệ đạt (%)"
	rotateTicks(&p.X)

	names := make([]string, len(rates))
	values := make([]float64, len(rates))
	labels := make([]string, len(rates))
	for i, s := range rates {
		names[i] = truncate(s.Key, r.cfg.InstructorLabelWidth)
		values[i] = s.Rate
		labels[i] = strconv.FormatFloat(s.Rate, 'f', 1, 64) + "%"
	}
	err := r.bars(p, names, values, labels, false, r.cfg.Color)
	return p, err
}

// durationScorePlot scatters time on task against score
func (r *Renderer) durationScorePlot(points []dataprocessing.ScorePoint) (*plot.Plot, error) {
	p := newPlot("Thời gian làm bài và điểm")
	p.X.Label.Text = "Thời gian làm bài (phút)"
	p.Y.Label.Text = "Điểm (%)"
	if len(points) == 0 {
		return p, nil
	}

	xys := make(plotter.XYs, len(points))
	for i, pt := range points {
		xys[i] = plotter.XY{X: pt.Minutes, Y: pt.Score}
	}
	sc, err := plotter.NewScatter(xys)
	if err != nil {
		return nil, err
	}
	sc.GlyphStyle = draw.GlyphStyle{Color: r.cfg.Color(4), Radius: vg.Points(3), Shape: draw.CircleGlyph{}}

	p.Add(plotter.NewGrid(), sc)
	return p, nil
}

// hourPlot is the submissions per hour-of-day line
func (r *Renderer) hourPlot(hours dataprocessing.Counts) (*plot.Plot, error) {
	p := newPlot("Lượt nộp bài theo giờ")
	p.X.Label.Text = "Giờ trong ngày"
	p.Y.Label.Text = "Số lượt nộp"
	if len(hours) == 0 {
		return p, nil
	}

	xys := make(plotter.XYs, len(hours))
	for i, h := range hours {
		xys[i] = plotter.XY{X: float64(i), Y: float64(h.Count)}
	}
	line, points, err := r.linePoints(xys, r.cfg.Color(5))
	if err != nil {
		return nil, err
	}
	p.Add(plotter.NewGrid(), line, points)
	p.NominalX(hours.Keys()...)
	return p, nil
}
