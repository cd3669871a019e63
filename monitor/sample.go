package monitor

// Sample is a single row of a resource monitor capture. Every numeric field
// is zero when the source file did not carry the column or the value could not
// be parsed.
type Sample struct {
	// Mode is the test run the sample belongs to
	Mode string
	// Source is the file the sample was read from
	Source string

	TimestampMS   float64
	CPUUser       float64
	CPUSys        float64
	CPUIdle       float64
	MemoryMB      float64
	MemoryFreeMB  float64
	ProcessCPU    float64
	ProcessMemory float64
	LoadAvg1m     float64
	DiskIORead    float64
	DiskIOWrite   float64
}

// CPUTotal is user plus system CPU percentage
func (s Sample) CPUTotal() float64 {
	return s.CPUUser + s.CPUSys
}

// TimestampSec returns the sample timestamp in seconds
func (s Sample) TimestampSec() float64 {
	return s.TimestampMS / 1000.0
}

// ByTimestamp implements sort.Interface based on the TimestampMS field of the Sample.
type ByTimestamp []Sample

func (a ByTimestamp) Len() int           { return len(a) }
func (a ByTimestamp) Less(i, j int) bool { return a[i].TimestampMS < a[j].TimestampMS }
func (a ByTimestamp) Swap(i, j int)      { a[i], a[j] = a[j], a[i] }

// Values extracts one float per sample using f
func Values(samples []Sample, f func(Sample) float64) []float64 {
	out := make([]float64, len(samples))
	for i, s := range samples {
		out[i] = f(s)
	}
	return out
}
