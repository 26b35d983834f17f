package exporter

import (
	"fmt"
	"image/color"
	"math"

	"gonum.org/v1/plot"
	"gonum.org/v1/plot/text"
	"gonum.org/v1/plot/vg"
	"gonum.org/v1/plot/vg/draw"
)

// arcSteps is the number of polygon segments per full turn of a pie
const arcSteps = 180

// pieChart draws counts as slices starting at 12 o'clock, clockwise, each
// labelled with its share of the total.
type pieChart struct {
	Labels []string
	Values []float64
	Colors []color.Color

	TextStyle text.Style
	LineStyle draw.LineStyle
}

func newPieChart(labels []string, values []float64, colors []color.Color) *pieChart {
	sty := plot.New().Legend.TextStyle
	sty.XAlign = text.XCenter
	sty.YAlign = text.YCenter

	return &pieChart{
		Labels:    labels,
		Values:    values,
		Colors:    colors,
		TextStyle: sty,
		LineStyle: draw.LineStyle{Color: color.White, Width: vg.Points(1)},
	}
}

// DataRange implements plot.DataRanger
func (pc *pieChart) DataRange() (xmin, xmax, ymin, ymax float64) {
	return -1, 1, -1, 1
}

// Plot implements plot.Plotter
func (pc *pieChart) Plot(c draw.Canvas, _ *plot.Plot) {
	var total float64
	for _, v := range pc.Values {
		total += v
	}
	if total <= 0 {
		return
	}

	center, radius := canvasCircle(c, 0.8)
	start := math.Pi / 2
	for i, v := range pc.Values {
		if v <= 0 {
			continue
		}
		sweep := 2 * math.Pi * v / total
		wedge := []vg.Point{center}
		steps := int(math.Ceil(arcSteps * sweep / (2 * math.Pi)))
		for s := 0; s <= steps; s++ {
			a := start - sweep*float64(s)/float64(steps)
			wedge = append(wedge, polar(center, radius, a))
		}
		c.FillPolygon(pc.Colors[i%len(pc.Colors)], wedge)
		c.StrokeLines(pc.LineStyle, append(wedge, center))

		mid := start - sweep/2
		share := fmt.Sprintf("%.1f%%", 100*v/total)
		c.FillText(pc.TextStyle, polar(center, radius*0.6, mid), share)
		c.FillText(pc.TextStyle, polar(center, radius*1.15, mid), pc.Labels[i])

		start -= sweep
	}
}

// radarChart draws one value per axis on a 0..Max scale as a closed polygon
type radarChart struct {
	Labels []string
	Values []float64
	Max    float64
	Color  color.Color

	TextStyle text.Style
	GridStyle draw.LineStyle
	LineStyle draw.LineStyle
}

func newRadarChart(labels []string, values []float64, limit float64, c color.Color) *radarChart {
	sty := plot.New().Legend.TextStyle
	sty.XAlign = text.XCenter
	sty.YAlign = text.YCenter

	return &radarChart{
		Labels:    labels,
		Values:    values,
		Max:       limit,
		Color:     c,
		TextStyle: sty,
		GridStyle: draw.LineStyle{Color: color.Gray{Y: 200}, Width: vg.Points(0.5)},
		LineStyle: draw.LineStyle{Color: c, Width: vg.Points(2)},
	}
}

// DataRange implements plot.DataRanger
func (rc *radarChart) DataRange() (xmin, xmax, ymin, ymax float64) {
	return -1, 1, -1, 1
}

// Plot implements plot.Plotter
func (rc *radarChart) Plot(c draw.Canvas, _ *plot.Plot) {
	n := len(rc.Values)
	if n < 3 || rc.Max <= 0 {
		return
	}

	center, radius := canvasCircle(c, 0.7)
	angle := func(i int) float64 {
		return math.Pi/2 - 2*math.Pi*float64(i)/float64(n)
	}

	for _, level := range []float64{0.25, 0.5, 0.75, 1} {
		ring := make([]vg.Point, 0, n+1)
		for i := 0; i <= n; i++ {
			ring = append(ring, polar(center, radius*vg.Length(level), angle(i%n)))
		}
		c.StrokeLines(rc.GridStyle, ring)
	}

	shape := make([]vg.Point, 0, n+1)
	for i, v := range rc.Values {
		end := polar(center, radius, angle(i))
		c.StrokeLine2(rc.GridStyle, center.X, center.Y, end.X, end.Y)
		c.FillText(rc.TextStyle, polar(center, radius*1.2, angle(i)), rc.Labels[i])

		r := radius * vg.Length(math.Min(math.Max(v/rc.Max, 0), 1))
		shape = append(shape, polar(center, r, angle(i)))
	}

	r, g, b, _ := rc.Color.RGBA()
	fill := color.NRGBA{R: uint8(r >> 8), G: uint8(g >> 8), B: uint8(b >> 8), A: 0x55}
	c.FillPolygon(fill, shape)
	c.StrokeLines(rc.LineStyle, append(shape, shape[0]))
}

// canvasCircle returns the centre of c and a radius filling frac of it
func canvasCircle(c draw.Canvas, frac float64) (vg.Point, vg.Length) {
	center := vg.Point{X: (c.Min.X + c.Max.X) / 2, Y: (c.Min.Y + c.Max.Y) / 2}
	w := c.Max.X - c.Min.X
	h := c.Max.Y - c.Min.Y
	return center, vg.Length(math.Min(float64(w), float64(h))/2) * vg.Length(frac)
}

func polar(center vg.Point, r vg.Length, angle float64) vg.Point {
	return vg.Point{
		X: center.X + r*vg.Length(math.Cos(angle)),
		Y: center.Y + r*vg.Length(math.Sin(angle)),
	}
}
