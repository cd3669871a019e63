package synth

import (
	"encoding/csv"
	"io"
	"math"
	"math/rand"
	"os"
	"path/filepath"
	"strconv"

	"github.com/214zzl995/perfcharts/monitor"
)

// Profile describes the steady-state load of a synthetic run
type Profile struct {
	CPUUser    float64
	CPUSys     float64
	MemoryMB   float64
	Load       float64
	IntervalMS float64
	// Jitter is the relative standard deviation applied to every value
	Jitter float64
}

// DefaultProfile resembles a moderately busy decoder run sampled every 500ms
var DefaultProfile = Profile{
	CPUUser:    35,
	CPUSys:     8,
	MemoryMB:   420,
	Load:       1.5,
	IntervalMS: 500,
	Jitter:     0.1,
}

// SampleGenerator generates synthetic monitor samples for benchmarking and tests
type SampleGenerator struct {
	profile Profile
	mode    string
	startMS float64

	ioRead  float64
	ioWrite float64

	rng *rand.Rand
}

// NewSampleGenerator creates a generator. The same seed always yields the same samples.
func NewSampleGenerator(mode string, seed int64, profile Profile) *SampleGenerator {
	return &SampleGenerator{
		profile: profile,
		mode:    mode,
		startMS: 1_700_000_000_000,
		rng:     rand.New(rand.NewSource(seed)),
	}
}

func (g *SampleGenerator) jitter(v float64) float64 {
	out := v * (1 + g.profile.Jitter*g.rng.NormFloat64())
	return math.Max(out, 0)
}

// Generate produces n samples at the profile interval
func (g *SampleGenerator) Generate(n int) []monitor.Sample {
	samples := make([]monitor.Sample, n)
	for i := 0; i < n; i++ {
		user := math.Min(g.jitter(g.profile.CPUUser), 100)
		sys := math.Min(g.jitter(g.profile.CPUSys), 100-user)
		mem := g.jitter(g.profile.MemoryMB)
		g.ioRead += g.jitter(64)
		g.ioWrite += g.jitter(16)
		samples[i] = monitor.Sample{
			Mode:          g.mode,
			TimestampMS:   g.startMS + float64(i)*g.profile.IntervalMS,
			CPUUser:       user,
			CPUSys:        sys,
			CPUIdle:       100 - user - sys,
			MemoryMB:      mem,
			MemoryFreeMB:  math.Max(16384-mem, 0),
			ProcessCPU:    user * 0.9,
			ProcessMemory: mem * 0.8,
			LoadAvg1m:     g.jitter(g.profile.Load),
			DiskIORead:    math.Round(g.ioRead),
			DiskIOWrite:   math.Round(g.ioWrite),
		}
	}
	return samples
}

func row(s monitor.Sample) []float64 {
	return []float64{
		s.TimestampMS, s.CPUUser, s.CPUSys, s.CPUIdle, s.MemoryMB, s.MemoryFreeMB,
		s.ProcessCPU, s.ProcessMemory, s.LoadAvg1m, s.DiskIORead, s.DiskIOWrite,
	}
}

// WriteCSV writes samples with the full monitor header
func WriteCSV(w io.Writer, samples []monitor.Sample) error {
	cw := csv.NewWriter(w)
	if err := cw.Write(monitor.DefaultSchema.Names()); err != nil {
		return err
	}
	record := make([]string, len(monitor.DefaultSchema.Columns))
	for _, s := range samples {
		for i, v := range row(s) {
			record[i] = strconv.FormatFloat(v, 'f', -1, 64)
		}
		if err := cw.Write(record); err != nil {
			return err
		}
	}
	cw.Flush()
	return cw.Error()
}

// WriteFile writes samples to fileName, creating parent directories
func WriteFile(fileName string, samples []monitor.Sample) error {
	if err := os.MkdirAll(filepath.Dir(fileName), 0o755); err != nil {
		return err
	}
	fp, err := os.Create(fileName)
	if err != nil {
		return err
	}
	if err := WriteCSV(fp, samples); err != nil {
		fp.Close()
		return err
	}
	return fp.Close()
}
