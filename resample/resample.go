package resample

import (
	"errors"
	"sort"

	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/interp"
	"gonum.org/v1/gonum/stat"

	"github.com/214zzl995/perfcharts/monitor"
)

// Points is the number of evenly spaced time points every mode is resampled onto
const Points = 100

var errLengths = errors.New("resample: knot slices differ in length")

// ModeSeries is one mode's raw data ordered by time, with timestamps shifted
// so that the first sample is at zero seconds.
type ModeSeries struct {
	Mode string
	// Times is the relative time of each sample in seconds
	Times    []float64
	CPUTotal []float64
	Memory   []float64
}

// Len returns the number of raw samples
func (m ModeSeries) Len() int {
	return len(m.Times)
}

// Duration is the largest relative time of the mode
func (m ModeSeries) Duration() float64 {
	if len(m.Times) == 0 {
		return 0
	}
	return m.Times[len(m.Times)-1]
}

// Series is a mode resampled onto Points evenly spaced time points
type Series struct {
	Mode   string
	Times  []float64
	CPU    []float64
	Memory []float64
}

// Normalize sorts a mode's samples by timestamp and converts them to relative seconds.
// The input slice is not modified.
func Normalize(mode string, samples []monitor.Sample) ModeSeries {
	sorted := make([]monitor.Sample, len(samples))
	copy(sorted, samples)
	sort.Stable(monitor.ByTimestamp(sorted))

	ms := ModeSeries{
		Mode:     mode,
		Times:    make([]float64, len(sorted)),
		CPUTotal: make([]float64, len(sorted)),
		Memory:   make([]float64, len(sorted)),
	}
	if len(sorted) == 0 {
		return ms
	}
	origin := sorted[0].TimestampSec()
	for i, s := range sorted {
		ms.Times[i] = s.TimestampSec() - origin
		ms.CPUTotal[i] = s.CPUTotal()
		ms.Memory[i] = s.MemoryMB
	}
	return ms
}

// NormalizeAll normalizes every mode of the dataset in first-seen order
func NormalizeAll(ds *monitor.Dataset) []ModeSeries {
	groups := ds.Groups()
	out := make([]ModeSeries, 0, len(groups))
	for _, g := range groups {
		out = append(out, Normalize(g.Mode, g.Samples))
	}
	return out
}

// Resample interpolates one normalized mode onto Points evenly spaced times.
// ok is false when the mode has no samples.
func (m ModeSeries) Resample() (s Series, ok bool) {
	if m.Len() == 0 {
		return Series{}, false
	}
	times := floats.Span(make([]float64, Points), 0, m.Duration())

	cpu, err := Interpolate(times, m.Times, m.CPUTotal)
	if err != nil {
		return Series{}, false
	}
	mem, err := Interpolate(times, m.Times, m.Memory)
	if err != nil {
		return Series{}, false
	}
	return Series{Mode: m.Mode, Times: times, CPU: cpu, Memory: mem}, true
}

// Resample normalizes and resamples every mode of the dataset, skipping empty modes
func Resample(ds *monitor.Dataset) []Series {
	var out []Series
	for _, m := range NormalizeAll(ds) {
		if s, ok := m.Resample(); ok {
			out = append(out, s)
		}
	}
	return out
}

// Interpolate evaluates the piecewise linear function through the knots at
// every x. knotsX must be sorted ascending. Points outside the knots take the
// value of the nearest end knot. Repeated knot positions are merged into one
// knot holding the mean of their values.
func Interpolate(xs, knotsX, knotsY []float64) ([]float64, error) {
	if len(knotsX) != len(knotsY) {
		return nil, errLengths
	}
	out := make([]float64, len(xs))
	if len(knotsX) == 0 {
		return out, nil
	}

	kx, ky := mergeKnots(knotsX, knotsY)
	if len(kx) == 1 {
		for i := range out {
			out[i] = ky[0]
		}
		return out, nil
	}

	var pl interp.PiecewiseLinear
	if err := pl.Fit(kx, ky); err != nil {
		return nil, err
	}
	for i, x := range xs {
		out[i] = pl.Predict(x)
	}
	return out, nil
}

func mergeKnots(xs, ys []float64) ([]float64, []float64) {
	kx := make([]float64, 0, len(xs))
	ky := make([]float64, 0, len(ys))
	for i := 0; i < len(xs); {
		j := i + 1
		for j < len(xs) && xs[j] == xs[i] {
			j++
		}
		kx = append(kx, xs[i])
		ky = append(ky, stat.Mean(ys[i:j], nil))
		i = j
	}
	return kx, ky
}
