package main

import (
	"errors"
	"fmt"
	"time"

	"github.com/214zzl995/perfcharts/chart"
	"github.com/214zzl995/perfcharts/ingest"
	"github.com/214zzl995/perfcharts/log"
	"github.com/214zzl995/perfcharts/monitor"
	"github.com/214zzl995/perfcharts/resample"
	"github.com/214zzl995/perfcharts/summary"
)

const (
	DefaultPattern   = "*_monitor.csv"
	DefaultOutputDir = "performance_charts"
)

// ErrNoData means the run stopped before writing anything because there was
// nothing to chart
var ErrNoData = errors.New("no monitoring data")

// Options configure one pipeline run
type Options struct {
	Pattern   string
	OutputDir string
	Chart     chart.Config

	// Now stamps the report. Defaults to time.Now.
	Now func() time.Time
}

// DefaultOptions returns the options used when no flags are given
func DefaultOptions() Options {
	return Options{
		Pattern:   DefaultPattern,
		OutputDir: DefaultOutputDir,
		Chart:     chart.DefaultConfig(),
		Now:       time.Now,
	}
}

// Run loads the monitor files matching opts.Pattern, charts them and writes
// the text report into opts.OutputDir
func Run(opts Options) (*Result, error) {
	if opts.Now == nil {
		opts.Now = time.Now
	}
	res := newResult(opts)

	var ds *monitor.Dataset
	err := res.stage("load", func() (err error) {
		ds, err = ingest.Load(opts.Pattern)
		return err
	})
	if errors.Is(err, ingest.ErrNoFiles) || errors.Is(err, ingest.ErrNoData) {
		return nil, fmt.Errorf("%w: %w", ErrNoData, err)
	}
	if err != nil {
		return nil, fmt.Errorf("loading %s: %w", opts.Pattern, err)
	}
	res.Records = ds.Len()
	res.Modes = ds.Modes()
	log.Info("Loaded %d records across %d modes (%.0f records/s)", res.Records, len(res.Modes),
		calculateRateMetrics(res.Records, res.Stages["load"]))

	start := time.Now()
	series := resample.Resample(ds)
	log.Info("Resampled %d modes in %s", len(series), res.record("resample", start).Round(time.Millisecond))

	err = res.stage("render", func() (err error) {
		res.Charts, err = chart.Render(ds, series, opts.OutputDir, opts.Chart)
		return err
	})
	if errors.Is(err, chart.ErrNoSeries) {
		log.Warn("No mode has data to chart")
		return nil, fmt.Errorf("%w: %w", ErrNoData, err)
	}
	if err != nil {
		return nil, fmt.Errorf("rendering charts: %w", err)
	}
	log.Info("Charts written to %s and %s", res.Charts.Heatmap, res.Charts.Timeseries)

	err = res.stage("report", func() (err error) {
		res.Stats = summary.Compute(ds, opts.Now())
		res.Report, err = summary.WriteFile(opts.OutputDir, res.Stats)
		return err
	})
	if err != nil {
		return nil, fmt.Errorf("writing report: %w", err)
	}
	log.Info("Report written to %s", res.Report)

	res.finish()
	return res, nil
}
