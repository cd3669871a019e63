package chart

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"gonum.org/v1/plot"
	"gonum.org/v1/plot/vg"
	"gonum.org/v1/plot/vg/draw"
	"gonum.org/v1/plot/vg/vgimg"

	"github.com/214zzl995/perfcharts/monitor"
	"github.com/214zzl995/perfcharts/resample"
)

const (
	HeatmapFile    = "resource_heatmap.png"
	TimeseriesFile = "resource_timeseries.png"
)

// ErrNoSeries is returned when there is no resampled series to draw
var ErrNoSeries = errors.New("no resampled series to chart")

// Files are the paths of the written charts
type Files struct {
	Heatmap    string
	Timeseries string
}

// Render draws the heatmap and time series figures into outDir. series are the
// resampled modes; ds supplies the raw samples behind the bar, box and line charts.
func Render(ds *monitor.Dataset, series []resample.Series, outDir string, cfg Config) (Files, error) {
	if len(series) == 0 {
		return Files{}, ErrNoSeries
	}
	if err := os.MkdirAll(outDir, 0o755); err != nil {
		return Files{}, fmt.Errorf("creating %s: %w", outDir, err)
	}

	files := Files{
		Heatmap:    filepath.Join(outDir, HeatmapFile),
		Timeseries: filepath.Join(outDir, TimeseriesFile),
	}
	if err := renderHeatmaps(ds, series, files.Heatmap, cfg); err != nil {
		return Files{}, err
	}
	if err := renderTimeseries(ds, files.Timeseries, cfg); err != nil {
		return Files{}, err
	}
	return files, nil
}

func renderHeatmaps(ds *monitor.Dataset, series []resample.Series, fileName string, cfg Config) error {
	groups := ds.Groups()

	cpuHeat, err := cpuHeatmap(cfg, series)
	if err != nil {
		return err
	}
	memHeat, err := memoryHeatmap(cfg, series)
	if err != nil {
		return err
	}
	means, err := meansPanel(cfg, groups)
	if err != nil {
		return err
	}
	spread, err := spreadPanel(cfg, groups)
	if err != nil {
		return err
	}

	return savePlots([][]*plot.Plot{
		{cpuHeat, memHeat},
		{means, spread},
	}, cfg.HeatmapWidth, cfg.HeatmapHeight, cfg.DPI, fileName)
}

func renderTimeseries(ds *monitor.Dataset, fileName string, cfg Config) error {
	modes := resample.NormalizeAll(ds)

	cpu, err := cpuTimeseries(cfg, modes)
	if err != nil {
		return err
	}
	mem, err := memoryTimeseries(cfg, modes)
	if err != nil {
		return err
	}

	return savePlots([][]*plot.Plot{
		{cpu},
		{mem},
	}, cfg.TimeseriesWidth, cfg.TimeseriesHeight, cfg.DPI, fileName)
}

// savePlots lays the plots out as aligned tiles and writes them as one PNG
func savePlots(plots [][]*plot.Plot, w, h vg.Length, dpi int, fileName string) error {
	img := vgimg.NewWith(vgimg.UseWH(w, h), vgimg.UseDPI(dpi))
	dc := draw.New(img)

	pad := vg.Points(8)
	t := draw.Tiles{
		Rows:      len(plots),
		Cols:      len(plots[0]),
		PadX:      vg.Points(20),
		PadY:      vg.Points(20),
		PadTop:    pad,
		PadBottom: pad,
		PadLeft:   pad,
		PadRight:  pad,
	}
	canvases := plot.Align(plots, t, dc)
	for j := range plots {
		for i := range plots[j] {
			plots[j][i].Draw(canvases[j][i])
		}
	}

	fp, err := os.Create(fileName)
	if err != nil {
		return fmt.Errorf("creating %s: %w", fileName, err)
	}
	if _, err := (vgimg.PngCanvas{Canvas: img}).WriteTo(fp); err != nil {
		fp.Close()
		return fmt.Errorf("encoding %s: %w", fileName, err)
	}
	return fp.Close()
}
