package chart

import (
	"image/color"

	xfont "golang.org/x/image/font"
	"gonum.org/v1/plot"
	"gonum.org/v1/plot/font"
	"gonum.org/v1/plot/vg"
)

// Config holds the styling shared by every chart. It is passed explicitly so
// gonum/plot package defaults are never modified.
type Config struct {
	Typeface font.Typeface
	Variant  font.Variant

	TitleSize vg.Length
	LabelSize vg.Length
	TickSize  vg.Length

	DPI int

	HeatmapWidth     vg.Length
	HeatmapHeight    vg.Length
	TimeseriesWidth  vg.Length
	TimeseriesHeight vg.Length
}

// DefaultConfig returns Liberation Sans charts at 300 DPI
func DefaultConfig() Config {
	return Config{
		Typeface:         "Liberation",
		Variant:          "Sans",
		TitleSize:        14,
		LabelSize:        11,
		TickSize:         9,
		DPI:              300,
		HeatmapWidth:     20 * vg.Inch,
		HeatmapHeight:    12 * vg.Inch,
		TimeseriesWidth:  15 * vg.Inch,
		TimeseriesHeight: 8 * vg.Inch,
	}
}

func (cfg Config) face(size vg.Length, weight xfont.Weight) font.Font {
	return font.Font{
		Typeface: cfg.Typeface,
		Variant:  cfg.Variant,
		Weight:   weight,
		Size:     size,
	}
}

// newPlot creates a plot with a bold title and the configured fonts
func (cfg Config) newPlot(title, xLabel, yLabel string) *plot.Plot {
	p := plot.New()
	p.Title.Text = title
	p.Title.TextStyle.Font = cfg.face(cfg.TitleSize, xfont.WeightBold)
	p.Title.Padding = vg.Points(6)

	p.X.Label.Text = xLabel
	p.Y.Label.Text = yLabel
	for _, a := range []*plot.Axis{&p.X, &p.Y} {
		a.Label.TextStyle.Font = cfg.face(cfg.LabelSize, xfont.WeightNormal)
		a.Tick.Label.Font = cfg.face(cfg.TickSize, xfont.WeightNormal)
	}
	p.Legend.TextStyle.Font = cfg.face(cfg.TickSize, xfont.WeightNormal)
	return p
}

func colorRGBA(r, g, b, a uint8) color.RGBA {
	return color.RGBA{R: r, G: g, B: b, A: a}
}

var (
	lightCoral = colorRGBA(240, 128, 128, 255)
	lightBlue  = colorRGBA(173, 216, 230, 255)
	gridGray   = colorRGBA(0, 0, 0, 77)
)
