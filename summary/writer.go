package summary

import (
	"fmt"
	"io"
	"math"
	"os"
	"path/filepath"
	"strings"

	"code.cloudfoundry.org/bytefmt"
)

const timeLayout = "2006-01-02 15:04:05"

func humanMB(mb float64) string {
	if mb <= 0 || math.IsNaN(mb) {
		return "0B"
	}
	return bytefmt.ByteSize(uint64(mb * bytefmt.MEGABYTE))
}

// String renders the report as text
func (r Report) String() string {
	var sb strings.Builder

	// Header
	sb.WriteString("Performance Test Resource Usage Report\n")
	sb.WriteString(strings.Repeat("=", 50) + "\n\n")
	sb.WriteString(fmt.Sprintf("Generated: %s\n\n", r.GeneratedAt.Format(timeLayout)))

	// Per mode
	sb.WriteString("Resource usage by mode:\n")
	sb.WriteString(strings.Repeat("-", 30) + "\n")
	for _, m := range r.Modes {
		sb.WriteString(fmt.Sprintf("\n%s mode:\n", strings.ToUpper(m.Mode)))
		sb.WriteString(fmt.Sprintf("  - Samples: %d over %.2fs\n", m.Samples, m.Duration))
		sb.WriteString(fmt.Sprintf("  - Mean CPU usage: %.2f%%\n", m.MeanCPU))
		sb.WriteString(fmt.Sprintf("  - Peak CPU usage: %.2f%%\n", m.MaxCPU))
		sb.WriteString(fmt.Sprintf("  - CPU p50/p95/p99: %.2f%% / %.2f%% / %.2f%%\n",
			m.CPUQuantiles.P50, m.CPUQuantiles.P95, m.CPUQuantiles.P99))
		sb.WriteString(fmt.Sprintf("  - Mean memory usage: %.2f MB (%s)\n", m.MeanMemory, humanMB(m.MeanMemory)))
		sb.WriteString(fmt.Sprintf("  - Peak memory usage: %.2f MB (%s)\n", m.MaxMemory, humanMB(m.MaxMemory)))
		sb.WriteString(fmt.Sprintf("  - Mean system load: %.2f\n", m.MeanLoad))
	}

	// Rankings
	sb.WriteString("\nRankings:\n")
	sb.WriteString(strings.Repeat("-", 20) + "\n")
	sb.WriteString("\nCPU usage (low to high):\n")
	for i, rk := range r.CPURanking {
		sb.WriteString(fmt.Sprintf("  %d. %s: %.2f%%\n", i+1, rk.Mode, rk.Value))
	}
	sb.WriteString("\nMemory usage (low to high):\n")
	for i, rk := range r.MemoryRanking {
		sb.WriteString(fmt.Sprintf("  %d. %s: %.2f MB\n", i+1, rk.Mode, rk.Value))
	}
	return sb.String()
}

// WriteTo implements io.WriterTo
func (r Report) WriteTo(w io.Writer) (int64, error) {
	n, err := io.WriteString(w, r.String())
	return int64(n), err
}

// WriteFile writes the report as FileName inside outDir and returns its path
func WriteFile(outDir string, r Report) (string, error) {
	if err := os.MkdirAll(outDir, 0o755); err != nil {
		return "", fmt.Errorf("creating %s: %w", outDir, err)
	}
	path := filepath.Join(outDir, FileName)
	if err := os.WriteFile(path, []byte(r.String()), 0o644); err != nil {
		return "", fmt.Errorf("writing report: %w", err)
	}
	return path, nil
}
