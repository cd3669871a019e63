package monitor

import (
	"golang.org/x/exp/slices"
)

// Dataset is the concatenation of every loaded sample. Modes are kept in the
// order they were first seen.
type Dataset struct {
	samples []Sample
	modes   []string
}

func NewDataset() *Dataset {
	return &Dataset{}
}

// Append adds samples in order, registering new modes as they appear
func (d *Dataset) Append(samples ...Sample) {
	for _, s := range samples {
		if !slices.Contains(d.modes, s.Mode) {
			d.modes = append(d.modes, s.Mode)
		}
		d.samples = append(d.samples, s)
	}
}

// Len returns the number of samples in the dataset
func (d *Dataset) Len() int {
	if d == nil {
		return 0
	}
	return len(d.samples)
}

// Samples returns a copy of all samples in load order
func (d *Dataset) Samples() []Sample {
	return slices.Clone(d.samples)
}

// Modes returns the modes in first-seen order
func (d *Dataset) Modes() []string {
	return slices.Clone(d.modes)
}

// ByMode returns the samples of one mode in load order
func (d *Dataset) ByMode(mode string) []Sample {
	var out []Sample
	for _, s := range d.samples {
		if s.Mode == mode {
			out = append(out, s)
		}
	}
	return out
}

// Group is the slice of samples sharing one mode
type Group struct {
	Mode    string
	Samples []Sample
}

// Groups partitions the dataset by mode, in first-seen mode order
func (d *Dataset) Groups() []Group {
	idx := make(map[string]int, len(d.modes))
	groups := make([]Group, len(d.modes))
	for i, m := range d.modes {
		idx[m] = i
		groups[i].Mode = m
	}
	for _, s := range d.samples {
		g := &groups[idx[s.Mode]]
		g.Samples = append(g.Samples, s)
	}
	return groups
}
