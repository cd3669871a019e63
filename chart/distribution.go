package chart

import (
	"fmt"
	"image/color"

	"gonum.org/v1/gonum/stat"
	"gonum.org/v1/plot"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/vg"
	"gonum.org/v1/plot/vg/draw"

	"github.com/214zzl995/perfcharts/monitor"
)

const (
	// estimated horizontal share of a figure column taken by the data area.
	// The real share shrinks as tick labels widen, so widths derived from
	// it are approximate.
	dataShare = 0.8
	boxSpan   = 0.3
	boxShift  = 0.4
)

var (
	cpuBarColor    = colorRGBA(31, 119, 180, 255)
	memoryBarColor = colorRGBA(255, 127, 14, 255)
)

// swatch is a legend thumbnail filled with a single color
type swatch struct {
	color color.Color
}

func (s swatch) Thumbnail(c *draw.Canvas) {
	pts := []vg.Point{
		{X: c.Min.X, Y: c.Min.Y},
		{X: c.Min.X, Y: c.Max.Y},
		{X: c.Max.X, Y: c.Max.Y},
		{X: c.Max.X, Y: c.Min.Y},
	}
	c.FillPolygon(s.color, c.ClipPolygonY(pts))
}

func modeNames(groups []monitor.Group) []string {
	names := make([]string, len(groups))
	for i, g := range groups {
		names[i] = g.Mode
	}
	return names
}

func cpuValues(g monitor.Group) plotter.Values {
	return monitor.Values(g.Samples, monitor.Sample.CPUTotal)
}

func memoryValues(g monitor.Group) plotter.Values {
	return monitor.Values(g.Samples, func(s monitor.Sample) float64 { return s.MemoryMB })
}

// unitWidth converts a length in x data units to an approximate canvas
// length, given the width of the figure column and the x range drawn in it.
// gonum/plot sizes bars and boxes in canvas units before layout, so the
// exact data area width is not known here.
func unitWidth(column vg.Length, units, xRange float64) vg.Length {
	return vg.Length(float64(column) * dataShare * units / xRange)
}

// meansPanel draws grouped bars of the mean cpu_total and memory_mb of each mode
func meansPanel(cfg Config, groups []monitor.Group) (*plot.Plot, error) {
	cpu := make(plotter.Values, len(groups))
	mem := make(plotter.Values, len(groups))
	for i, g := range groups {
		cpu[i] = stat.Mean(cpuValues(g), nil)
		mem[i] = stat.Mean(memoryValues(g), nil)
	}

	w := unitWidth(cfg.HeatmapWidth/2, 0.35, float64(len(groups)))
	cpuBars, err := plotter.NewBarChart(cpu, w)
	if err != nil {
		return nil, fmt.Errorf("cpu bars: %w", err)
	}
	cpuBars.Color = cpuBarColor
	cpuBars.LineStyle.Width = 0
	cpuBars.Offset = -w / 2

	memBars, err := plotter.NewBarChart(mem, w)
	if err != nil {
		return nil, fmt.Errorf("memory bars: %w", err)
	}
	memBars.Color = memoryBarColor
	memBars.LineStyle.Width = 0
	memBars.Offset = w / 2

	p := cfg.newPlot("Mean Resource Usage", "Mode", "Usage")
	p.Add(cpuBars, memBars)
	p.Legend.Add("CPU (%)", cpuBars)
	p.Legend.Add("Memory (MB)", memBars)
	p.Legend.Top = true
	p.NominalX(modeNames(groups)...)
	p.X.Min = -0.5
	p.X.Max = float64(len(groups)) - 0.5
	p.Y.Min = 0
	return p, nil
}

// spreadPanel draws one cpu_total and one memory_mb box per mode, side by
// side. Boxes are about boxSpan x-units wide; see unitWidth.
func spreadPanel(cfg Config, groups []monitor.Group) (*plot.Plot, error) {
	xRange := float64(len(groups)) + boxShift
	w := unitWidth(cfg.HeatmapWidth/2, boxSpan, xRange)

	p := cfg.newPlot("Resource Usage Distribution", "Mode", "Usage")
	ticks := make([]plot.Tick, len(groups))
	for i, g := range groups {
		loc := float64(i)

		cpuBox, err := plotter.NewBoxPlot(w, loc, cpuValues(g))
		if err != nil {
			return nil, fmt.Errorf("cpu box for %s: %w", g.Mode, err)
		}
		cpuBox.FillColor = lightCoral

		memBox, err := plotter.NewBoxPlot(w, loc+boxShift, memoryValues(g))
		if err != nil {
			return nil, fmt.Errorf("memory box for %s: %w", g.Mode, err)
		}
		memBox.FillColor = lightBlue

		p.Add(cpuBox, memBox)
		ticks[i] = plot.Tick{Value: loc + boxShift/2, Label: g.Mode}
	}
	p.Legend.Add("CPU (%)", swatch{color: lightCoral})
	p.Legend.Add("Memory (MB)", swatch{color: lightBlue})
	p.Legend.Top = true
	p.X.Tick.Marker = plot.ConstantTicks(ticks)
	p.X.Min = -0.5
	p.X.Max = xRange - 0.5
	return p, nil
}
