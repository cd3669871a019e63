package summary

import (
	"time"

	"golang.org/x/exp/slices"
	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/stat"

	"github.com/214zzl995/perfcharts/monitor"
	"github.com/214zzl995/perfcharts/resample"
)

// FileName is the report written into the output directory
const FileName = "performance_report.txt"

// ModeStats are the raw-data statistics of one mode
type ModeStats struct {
	Mode     string
	Samples  int
	Duration float64

	MeanCPU    float64
	MaxCPU     float64
	MeanMemory float64
	MaxMemory  float64
	MeanLoad   float64

	CPUQuantiles Quantiles
}

// Rank is one entry of a ranking
type Rank struct {
	Mode  string
	Value float64
}

// Report is the cross-mode summary of a monitoring run
type Report struct {
	GeneratedAt time.Time
	Modes       []ModeStats

	// CPURanking orders modes by mean cpu_total, lowest first
	CPURanking []Rank
	// MemoryRanking orders modes by mean memory_mb, lowest first
	MemoryRanking []Rank
}

// Compute builds the report for every mode of the dataset, in first-seen order
func Compute(ds *monitor.Dataset, now time.Time) Report {
	r := Report{GeneratedAt: now}
	for _, g := range ds.Groups() {
		if len(g.Samples) == 0 {
			continue
		}
		r.Modes = append(r.Modes, computeMode(g))
	}
	r.CPURanking = rank(r.Modes, func(m ModeStats) float64 { return m.MeanCPU })
	r.MemoryRanking = rank(r.Modes, func(m ModeStats) float64 { return m.MeanMemory })
	return r
}

func computeMode(g monitor.Group) ModeStats {
	cpu := monitor.Values(g.Samples, monitor.Sample.CPUTotal)
	mem := monitor.Values(g.Samples, func(s monitor.Sample) float64 { return s.MemoryMB })
	load := monitor.Values(g.Samples, func(s monitor.Sample) float64 { return s.LoadAvg1m })

	return ModeStats{
		Mode:         g.Mode,
		Samples:      len(g.Samples),
		Duration:     resample.Normalize(g.Mode, g.Samples).Duration(),
		MeanCPU:      stat.Mean(cpu, nil),
		MaxCPU:       floats.Max(cpu),
		MeanMemory:   stat.Mean(mem, nil),
		MaxMemory:    floats.Max(mem),
		MeanLoad:     stat.Mean(load, nil),
		CPUQuantiles: generateQuantiles(cpu),
	}
}

// rank sorts modes ascending by key. Equal values fall back to the mode name.
func rank(modes []ModeStats, key func(ModeStats) float64) []Rank {
	ranks := make([]Rank, len(modes))
	for i, m := range modes {
		ranks[i] = Rank{Mode: m.Mode, Value: key(m)}
	}
	slices.SortStableFunc(ranks, func(a, b Rank) bool {
		if a.Value != b.Value {
			return a.Value < b.Value
		}
		return a.Mode < b.Mode
	})
	return ranks
}

// Modes lists the ranked mode names in order
func Modes(ranks []Rank) []string {
	out := make([]string, len(ranks))
	for i, r := range ranks {
		out[i] = r.Mode
	}
	return out
}
