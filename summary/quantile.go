package summary

import (
	"math"

	"github.com/HdrHistogram/hdrhistogram-go"
)

// valueScale keeps two decimal places when recording into the integer histogram
const valueScale = 100

// Quantiles holds the approximate percentiles of a distribution
type Quantiles struct {
	P50 float64
	P95 float64
	P99 float64
}

func generateQuantiles(values []float64) Quantiles {
	if len(values) == 0 {
		return Quantiles{}
	}

	var highest int64 = 2
	for _, v := range values {
		if s := scaled(v); s > highest {
			highest = s
		}
	}
	hist := hdrhistogram.New(1, highest, 3)
	for _, v := range values {
		// the histogram was sized from these values, so every record is in range
		_ = hist.RecordValue(scaled(v))
	}

	return Quantiles{
		P50: float64(hist.ValueAtQuantile(50.0)) / valueScale,
		P95: float64(hist.ValueAtQuantile(95.0)) / valueScale,
		P99: float64(hist.ValueAtQuantile(99.0)) / valueScale,
	}
}

func scaled(v float64) int64 {
	if v <= 0 || math.IsNaN(v) {
		return 0
	}
	if v >= math.MaxInt64/(2*valueScale) {
		return math.MaxInt64 / (2 * valueScale)
	}
	return int64(math.Round(v * valueScale))
}
