package exporter

import (
	"fmt"
	"image/color"
	"strconv"
	"strings"

	"gonum.org/v1/plot/vg"

	"github.com/phamthanhtung35NB/excel-to-chart/internal/config"
)

// ChartConfig is the complete styling of the rendered figures. Rendering
// reads nothing else, so two configs can render side by side.
type ChartConfig struct {
	DPI                  int
	Width                vg.Length
	Height               vg.Length
	TitleFontSize        vg.Length
	Palette              []color.Color
	CourseLabelWidth     int
	InstructorLabelWidth int
}

// NewChartConfig converts the report settings into a chart config
func NewChartConfig(cfg config.ReportConfig) (ChartConfig, error) {
	palette := make([]color.Color, 0, len(cfg.Palette))
	for _, hex := range cfg.Palette {
		c, err := ParseHexColor(hex)
		if err != nil {
			return ChartConfig{}, err
		}
		palette = append(palette, c)
	}
	if len(palette) == 0 {
		return ChartConfig{}, fmt.Errorf("chart palette is empty")
	}

	return ChartConfig{
		DPI:                  cfg.DPI,
		Width:                vg.Length(cfg.Width) * vg.Inch,
		Height:               vg.Length(cfg.Height) * vg.Inch,
		TitleFontSize:        vg.Points(cfg.TitleFontSize),
		Palette:              palette,
		CourseLabelWidth:     cfg.CourseLabelWidth,
		InstructorLabelWidth: cfg.InstructorLabelWidth,
	}, nil
}

// DefaultChartConfig returns the config built from the default settings
func DefaultChartConfig() ChartConfig {
	cfg, err := NewChartConfig(config.Default().Report)
	if err != nil {
		panic(err)
	}
	return cfg
}

// Color cycles through the palette
func (c ChartConfig) Color(i int) color.Color {
	return c.Palette[i%len(c.Palette)]
}

// ParseHexColor parses #rgb or #rrggbb
func ParseHexColor(s string) (color.RGBA, error) {
	hex := strings.TrimPrefix(strings.TrimSpace(s), "#")
	if len(hex) == 3 {
		hex = string([]byte{hex[0], hex[0], hex[1], hex[1], hex[2], hex[2]})
	}
	if len(hex) != 6 {
		return color.RGBA{}, fmt.Errorf("invalid hex color %q", s)
	}
	v, err := strconv.ParseUint(hex, 16, 32)
	if err != nil {
		return color.RGBA{}, fmt.Errorf("invalid hex color %q: %w", s, err)
	}
	return color.RGBA{R: uint8(v >> 16), G: uint8(v >> 8), B: uint8(v), A: 0xff}, nil
}

// truncate shortens labels to n runes, marking the cut with "..."
func truncate(label string, n int) string {
	r := []rune(label)
	if n <= 0 || len(r) <= n {
		return label
	}
	return string(r[:n]) + "..."
}

func truncateAll(labels []string, n int) []string {
	out := make([]string, len(labels))
	for i, l := range labels {
		out[i] = truncate(l, n)
	}
	return out
}
