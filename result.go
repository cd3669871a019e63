package main

import (
	"time"

	"github.com/214zzl995/perfcharts/chart"
	"github.com/214zzl995/perfcharts/summary"
)

const (
	CurrentResultFormatVersion = "0.1"
)

// Result describes one completed pipeline run
type Result struct {
	ResultFormatVersion string

	// Run configs
	Pattern   string
	OutputDir string

	StartTime      int64
	EndTime        int64
	DurationMillis int64

	// Totals
	Records int
	Modes   []string

	// Per stage wall time
	Stages map[string]time.Duration

	Charts chart.Files
	Report string
	Stats  summary.Report
}

func newResult(opts Options) *Result {
	return &Result{
		ResultFormatVersion: CurrentResultFormatVersion,
		Pattern:             opts.Pattern,
		OutputDir:           opts.OutputDir,
		StartTime:           time.Now().UnixMilli(),
		Stages:              map[string]time.Duration{},
	}
}

func (r *Result) finish() {
	r.EndTime = time.Now().UnixMilli()
	r.DurationMillis = r.EndTime - r.StartTime
}
