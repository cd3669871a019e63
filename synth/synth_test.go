package synth

import (
	"bytes"
	"encoding/csv"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/214zzl995/perfcharts/monitor"
)

func TestSampleGenerator(t *testing.T) {
	g := NewSampleGenerator("ffmpeg", 42, DefaultProfile)
	samples := g.Generate(50)
	require.Len(t, samples, 50)

	for i, s := range samples {
		assert.Equal(t, "ffmpeg", s.Mode)
		assert.GreaterOrEqual(t, s.CPUTotal(), 0.0)
		assert.LessOrEqual(t, s.CPUTotal(), 100.0)
		assert.GreaterOrEqual(t, s.MemoryMB, 0.0)
		if i > 0 {
			assert.Equal(t, DefaultProfile.IntervalMS, s.TimestampMS-samples[i-1].TimestampMS)
			assert.GreaterOrEqual(t, s.DiskIORead, samples[i-1].DiskIORead)
		}
	}
}

func TestSampleGeneratorDeterministic(t *testing.T) {
	a := NewSampleGenerator("x", 7, DefaultProfile).Generate(10)
	b := NewSampleGenerator("x", 7, DefaultProfile).Generate(10)
	assert.Equal(t, a, b)
}

func TestWriteCSV(t *testing.T) {
	samples := []monitor.Sample{{TimestampMS: 1000, CPUUser: 12.5, MemoryMB: 300, DiskIOWrite: 7}}

	var buf bytes.Buffer
	require.NoError(t, WriteCSV(&buf, samples))

	records, err := csv.NewReader(&buf).ReadAll()
	require.NoError(t, err)
	require.Len(t, records, 2)
	assert.Equal(t, monitor.DefaultSchema.Names(), records[0])
	assert.Equal(t, []string{"1000", "12.5", "0", "0", "300", "0", "0", "0", "0", "0", "7"}, records[1])
}

func BenchmarkGenerator(b *testing.B) {
	g := NewSampleGenerator("bench", 1, DefaultProfile)
	for i := 0; i < b.N; i++ {
		_ = g.Generate(100)
	}
}
