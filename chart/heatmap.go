package chart

import (
	"fmt"

	"gonum.org/v1/gonum/mat"
	"gonum.org/v1/plot"
	"gonum.org/v1/plot/palette/brewer"
	"gonum.org/v1/plot/plotter"

	"github.com/214zzl995/perfcharts/resample"
)

const (
	paletteColors = 9
	// every tickEvery-th resampled index is labeled on the time axis
	tickEvery = 20
	// room right of the grid for the min/max legend
	legendRoom = 14
)

// modeGrid adapts a modes x Points matrix to plotter.GridXYZ. Row 0 of the
// matrix is the first mode and is drawn at the top.
type modeGrid struct {
	z *mat.Dense
}

func newModeGrid(series []resample.Series, values func(resample.Series) []float64) modeGrid {
	z := mat.NewDense(len(series), resample.Points, nil)
	for i, s := range series {
		z.SetRow(i, values(s))
	}
	return modeGrid{z: z}
}

func (g modeGrid) Dims() (c, r int) {
	r, c = g.z.Dims()
	return c, r
}

func (g modeGrid) Z(c, r int) float64 {
	rows, _ := g.z.Dims()
	return g.z.At(rows-1-r, c)
}

func (g modeGrid) X(c int) float64 { return float64(c) }
func (g modeGrid) Y(r int) float64 { return float64(r) }
func (g modeGrid) Min() float64    { return mat.Min(g.z) }
func (g modeGrid) Max() float64    { return mat.Max(g.z) }

func timeTicks() []plot.Tick {
	var ticks []plot.Tick
	for i := 0; i < resample.Points; i += tickEvery {
		ticks = append(ticks, plot.Tick{Value: float64(i), Label: fmt.Sprintf("%ds", i)})
	}
	return ticks
}

func modeTicks(series []resample.Series) []plot.Tick {
	ticks := make([]plot.Tick, len(series))
	for i, s := range series {
		ticks[i] = plot.Tick{Value: float64(len(series) - 1 - i), Label: s.Mode}
	}
	return ticks
}

// heatmapPanel draws one mode x time heatmap of the resampled series
func heatmapPanel(cfg Config, title, unit, paletteName string,
	series []resample.Series, values func(resample.Series) []float64) (*plot.Plot, error) {

	pal, err := brewer.GetPalette(brewer.TypeSequential, paletteName, paletteColors)
	if err != nil {
		return nil, fmt.Errorf("palette %s: %w", paletteName, err)
	}

	hm := plotter.NewHeatMap(newModeGrid(series, values), pal)
	lo, hi := hm.Min, hm.Max
	if hm.Min == hm.Max {
		hm.Max = hm.Min + 1
	}

	p := cfg.newPlot(title, "Time", "Mode")
	p.Add(hm)
	p.X.Padding = 0
	p.Y.Padding = 0
	p.X.Max += legendRoom
	p.X.Tick.Marker = plot.ConstantTicks(timeTicks())
	p.Y.Tick.Marker = plot.ConstantTicks(modeTicks(series))

	thumbs := plotter.PaletteThumbnailers(pal)
	p.Legend.Top = true
	p.Legend.Add(fmt.Sprintf("max %.1f %s", hi, unit), thumbs[len(thumbs)-1])
	p.Legend.Add(fmt.Sprintf("min %.1f %s", lo, unit), thumbs[0])
	return p, nil
}

func cpuHeatmap(cfg Config, series []resample.Series) (*plot.Plot, error) {
	return heatmapPanel(cfg, "CPU Usage Heatmap", "%", "YlOrRd", series,
		func(s resample.Series) []float64 { return s.CPU })
}

func memoryHeatmap(cfg Config, series []resample.Series) (*plot.Plot, error) {
	return heatmapPanel(cfg, "Memory Usage Heatmap", "MB", "Blues", series,
		func(s resample.Series) []float64 { return s.Memory })
}
