package chart

import (
	"fmt"

	"gonum.org/v1/plot"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/plotutil"
	"gonum.org/v1/plot/vg"

	"github.com/214zzl995/perfcharts/resample"
)

func seriesXYs(times, values []float64) plotter.XYs {
	xys := make(plotter.XYs, len(times))
	for i := range times {
		xys[i].X = times[i]
		xys[i].Y = values[i]
	}
	return xys
}

// timeseriesPanel overlays the raw values of every mode against relative time
func timeseriesPanel(cfg Config, title, yLabel string, modes []resample.ModeSeries,
	values func(resample.ModeSeries) []float64) (*plot.Plot, error) {

	p := cfg.newPlot(title, "Time (s)", yLabel)
	grid := plotter.NewGrid()
	grid.Vertical.Color = gridGray
	grid.Horizontal.Color = gridGray
	p.Add(grid)

	for i, m := range modes {
		if m.Len() == 0 {
			continue
		}
		line, points, err := plotter.NewLinePoints(seriesXYs(m.Times, values(m)))
		if err != nil {
			return nil, fmt.Errorf("%s line: %w", m.Mode, err)
		}
		line.Color = plotutil.Color(i)
		line.Width = vg.Points(2)
		points.Color = plotutil.Color(i)
		points.Shape = plotutil.Shape(i)
		points.Radius = vg.Points(1)
		p.Add(line, points)
		p.Legend.Add(m.Mode, line, points)
	}
	p.Legend.Top = true
	return p, nil
}

func cpuTimeseries(cfg Config, modes []resample.ModeSeries) (*plot.Plot, error) {
	return timeseriesPanel(cfg, "CPU Usage Over Time", "CPU usage (%)", modes,
		func(m resample.ModeSeries) []float64 { return m.CPUTotal })
}

func memoryTimeseries(cfg Config, modes []resample.ModeSeries) (*plot.Plot, error) {
	return timeseriesPanel(cfg, "Memory Usage Over Time", "Memory usage (MB)", modes,
		func(m resample.ModeSeries) []float64 { return m.Memory })
}
