package resample

import (
	"math/rand"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/google/go-cmp/cmp/cmpopts"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/214zzl995/perfcharts/monitor"
	"github.com/214zzl995/perfcharts/synth"
)

var approx = cmpopts.EquateApprox(0, 1e-9)

func TestInterpolate(t *testing.T) {
	tests := []struct {
		name   string
		xs     []float64
		kx, ky []float64
		want   []float64
	}{
		{
			name: "linear",
			xs:   []float64{0, 0.5, 1, 1.5, 2},
			kx:   []float64{0, 1, 2},
			ky:   []float64{10, 20, 30},
			want: []float64{10, 15, 20, 25, 30},
		},
		{
			name: "clamped outside knots",
			xs:   []float64{-1, 0, 3, 10},
			kx:   []float64{0, 3},
			ky:   []float64{4, 7},
			want: []float64{4, 4, 7, 7},
		},
		{
			name: "single knot is constant",
			xs:   []float64{0, 1, 2},
			kx:   []float64{5},
			ky:   []float64{42},
			want: []float64{42, 42, 42},
		},
		{
			name: "repeated knots are averaged",
			xs:   []float64{0, 1, 2},
			kx:   []float64{0, 1, 1, 2},
			ky:   []float64{0, 10, 20, 0},
			want: []float64{0, 15, 0},
		},
		{
			name: "no knots",
			xs:   []float64{0, 1},
			want: []float64{0, 0},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := Interpolate(tt.xs, tt.kx, tt.ky)
			require.NoError(t, err)
			if diff := cmp.Diff(tt.want, got, approx); diff != "" {
				t.Errorf("Interpolate() mismatch (-want +got):\n%s", diff)
			}
		})
	}

	_, err := Interpolate([]float64{0}, []float64{0, 1}, []float64{1})
	assert.Error(t, err)
}

func TestNormalize(t *testing.T) {
	samples := []monitor.Sample{
		{TimestampMS: 5000, CPUUser: 30, CPUSys: 1, MemoryMB: 300},
		{TimestampMS: 3000, CPUUser: 10, CPUSys: 1, MemoryMB: 100},
		{TimestampMS: 4000, CPUUser: 20, CPUSys: 1, MemoryMB: 200},
	}
	ms := Normalize("m", samples)

	assert.Equal(t, "m", ms.Mode)
	assert.Equal(t, []float64{0, 1, 2}, ms.Times)
	assert.Equal(t, []float64{11, 21, 31}, ms.CPUTotal)
	assert.Equal(t, []float64{100, 200, 300}, ms.Memory)
	assert.Equal(t, 2.0, ms.Duration())
	// input order is untouched
	assert.Equal(t, 5000.0, samples[0].TimestampMS)
}

func TestResampleShape(t *testing.T) {
	ds := monitor.NewDataset()
	ds.Append(synth.NewSampleGenerator("ffmpeg", 1, synth.DefaultProfile).Generate(37)...)
	ds.Append(synth.NewSampleGenerator("opencv", 2, synth.DefaultProfile).Generate(5)...)

	series := Resample(ds)
	require.Len(t, series, 2)
	for _, s := range series {
		assert.Len(t, s.Times, Points)
		assert.Len(t, s.CPU, Points)
		assert.Len(t, s.Memory, Points)
		assert.Equal(t, 0.0, s.Times[0])
	}
	assert.Equal(t, "ffmpeg", series[0].Mode)
	assert.InDelta(t, 36*synth.DefaultProfile.IntervalMS/1000, series[0].Times[Points-1], 1e-9)
	assert.InDelta(t, 4*synth.DefaultProfile.IntervalMS/1000, series[1].Times[Points-1], 1e-9)

	// endpoints reproduce the first and last raw sample
	raw := Normalize("ffmpeg", ds.ByMode("ffmpeg"))
	assert.InDelta(t, raw.CPUTotal[0], series[0].CPU[0], 1e-9)
	assert.InDelta(t, raw.CPUTotal[raw.Len()-1], series[0].CPU[Points-1], 1e-9)
	assert.InDelta(t, raw.Memory[raw.Len()-1], series[0].Memory[Points-1], 1e-9)
}

func TestResampleSingleSample(t *testing.T) {
	ds := monitor.NewDataset()
	ds.Append(monitor.Sample{Mode: "b", TimestampMS: 0, CPUUser: 5, CPUSys: 5, MemoryMB: 50})

	series := Resample(ds)
	require.Len(t, series, 1)
	for i := 0; i < Points; i++ {
		assert.Equal(t, 0.0, series[0].Times[i])
		assert.Equal(t, 10.0, series[0].CPU[i])
		assert.Equal(t, 50.0, series[0].Memory[i])
	}
}

func TestResampleUnsortedMatchesSorted(t *testing.T) {
	samples := synth.NewSampleGenerator("m", 3, synth.DefaultProfile).Generate(25)
	shuffled := make([]monitor.Sample, len(samples))
	copy(shuffled, samples)
	rand.New(rand.NewSource(9)).Shuffle(len(shuffled), func(i, j int) {
		shuffled[i], shuffled[j] = shuffled[j], shuffled[i]
	})

	sorted := monitor.NewDataset()
	sorted.Append(samples...)
	unsorted := monitor.NewDataset()
	unsorted.Append(shuffled...)

	if diff := cmp.Diff(Resample(sorted), Resample(unsorted), approx); diff != "" {
		t.Errorf("resampling depends on input order (-sorted +unsorted):\n%s", diff)
	}
}

func TestResampleEmptyMode(t *testing.T) {
	_, ok := ModeSeries{Mode: "empty"}.Resample()
	assert.False(t, ok)
	assert.Empty(t, Resample(monitor.NewDataset()))
}

func BenchmarkResample(b *testing.B) {
	ds := monitor.NewDataset()
	for i, mode := range []string{"opencv", "ffmpeg", "wgpu", "manual"} {
		ds.Append(synth.NewSampleGenerator(mode, int64(i), synth.DefaultProfile).Generate(2000)...)
	}
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		_ = Resample(ds)
	}
}
