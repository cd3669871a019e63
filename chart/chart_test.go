package chart

import (
	"image/png"
	"math"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gonum.org/v1/plot/vg"

	"github.com/214zzl995/perfcharts/ingest"
	"github.com/214zzl995/perfcharts/monitor"
	"github.com/214zzl995/perfcharts/resample"
	"github.com/214zzl995/perfcharts/synth"
)

func testConfig() Config {
	cfg := DefaultConfig()
	cfg.DPI = 30
	return cfg
}

func testDataset() *monitor.Dataset {
	ds := monitor.NewDataset()
	for i, mode := range []string{"opencv", "ffmpeg", "wgpu"} {
		ds.Append(synth.NewSampleGenerator(mode, int64(i), synth.DefaultProfile).Generate(20 + 10*i)...)
	}
	return ds
}

func decodeSize(t *testing.T, fileName string) (int, int) {
	t.Helper()
	fp, err := os.Open(fileName)
	require.NoError(t, err)
	defer fp.Close()
	cfg, err := png.DecodeConfig(fp)
	require.NoError(t, err)
	return cfg.Width, cfg.Height
}

func TestRender(t *testing.T) {
	ds := testDataset()
	dir := filepath.Join(t.TempDir(), "out")

	files, err := Render(ds, resample.Resample(ds), dir, testConfig())
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(dir, HeatmapFile), files.Heatmap)
	assert.Equal(t, filepath.Join(dir, TimeseriesFile), files.Timeseries)

	w, h := decodeSize(t, files.Heatmap)
	assert.Equal(t, 20*30, w)
	assert.Equal(t, 12*30, h)

	w, h = decodeSize(t, files.Timeseries)
	assert.Equal(t, 15*30, w)
	assert.Equal(t, 8*30, h)
}

func TestRenderNonFiniteCells(t *testing.T) {
	in := "timestamp_ms,cpu_user,cpu_sys,memory_mb\n" +
		"0,10,0,100\n" +
		"1000,inf,Infinity,-inf\n" +
		"inf,30,0,300\n"
	samples, err := ingest.NewCSVReader().Read(strings.NewReader(in), "m", "m_monitor.csv")
	require.NoError(t, err)

	ds := monitor.NewDataset()
	ds.Append(samples...)
	series := resample.Resample(ds)
	require.Len(t, series, 1)
	for i := range series[0].CPU {
		require.False(t, math.IsInf(series[0].CPU[i], 0) || math.IsNaN(series[0].CPU[i]))
	}

	files, err := Render(ds, series, t.TempDir(), testConfig())
	require.NoError(t, err)
	assert.FileExists(t, files.Heatmap)
	assert.FileExists(t, files.Timeseries)
}

func TestRenderSingleSampleMode(t *testing.T) {
	ds := monitor.NewDataset()
	ds.Append(monitor.Sample{Mode: "b", TimestampMS: 0, CPUUser: 5, CPUSys: 5, MemoryMB: 50})

	files, err := Render(ds, resample.Resample(ds), t.TempDir(), testConfig())
	require.NoError(t, err)
	assert.FileExists(t, files.Heatmap)
	assert.FileExists(t, files.Timeseries)
}

func TestRenderNoSeries(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "out")
	_, err := Render(monitor.NewDataset(), nil, dir, testConfig())
	assert.ErrorIs(t, err, ErrNoSeries)
	assert.NoDirExists(t, dir)
}

func TestModeGrid(t *testing.T) {
	series := []resample.Series{
		{Mode: "top", CPU: make([]float64, resample.Points)},
		{Mode: "bottom", CPU: make([]float64, resample.Points)},
	}
	series[0].CPU[3] = 7
	series[1].CPU[3] = 2

	g := newModeGrid(series, func(s resample.Series) []float64 { return s.CPU })
	c, r := g.Dims()
	assert.Equal(t, resample.Points, c)
	assert.Equal(t, 2, r)
	assert.Equal(t, 7.0, g.Z(3, 1))
	assert.Equal(t, 2.0, g.Z(3, 0))
	assert.Equal(t, 0.0, g.Min())
	assert.Equal(t, 7.0, g.Max())

	ticks := modeTicks(series)
	assert.Equal(t, "top", ticks[0].Label)
	assert.Equal(t, 1.0, ticks[0].Value)
}

func TestTimeTicks(t *testing.T) {
	var labels []string
	for _, tk := range timeTicks() {
		labels = append(labels, tk.Label)
	}
	assert.Equal(t, []string{"0s", "20s", "40s", "60s", "80s"}, labels)
}

func TestUnitWidth(t *testing.T) {
	assert.InDelta(t, float64(vg.Inch)*dataShare*0.5, float64(unitWidth(vg.Inch, 1, 2)), 1e-9)
}
