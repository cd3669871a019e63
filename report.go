package main

import (
	"sort"
	"strings"
	"time"

	"github.com/214zzl995/perfcharts/log"
)

func calculateRateMetrics(count int, took time.Duration) (rate float64) {
	if took <= 0 {
		return 0
	}
	rate = float64(count) / took.Seconds()
	return
}

// record stores the wall time of the named stage started at start
func (r *Result) record(name string, start time.Time) time.Duration {
	took := time.Since(start)
	r.Stages[name] = took
	return took
}

// stage runs f as the named pipeline stage and records how long it took
func (r *Result) stage(name string, f func() error) error {
	start := time.Now()
	err := f()
	took := r.record(name, start)
	if err != nil {
		log.Debug("Stage %s failed after %s: %s", name, took, err)
		return err
	}
	log.Info("Stage %s done in %s", name, took.Round(time.Millisecond))
	return nil
}

// Summary is a one line description of the run for the CLI
func (r *Result) Summary() string {
	names := make([]string, 0, len(r.Stages))
	for name := range r.Stages {
		names = append(names, name)
	}
	sort.Strings(names)

	var sb strings.Builder
	sb.WriteString(time.Duration(r.DurationMillis * int64(time.Millisecond)).String())
	for _, name := range names {
		sb.WriteString(" " + name + "=" + r.Stages[name].Round(time.Millisecond).String())
	}
	return sb.String()
}
