//go:build linux

package report

import "github.com/ja7ad/psaux/pkg/system/proc"

// Accumulator keeps running totals over report entries and skipped processes.
type Accumulator struct {
	listed  int
	tasks   int
	threads int
	sumCPU  float64
	rssKiB  uint64
	states  map[string]int
	skipped map[string]int
}

// NewAccumulator returns an empty Accumulator.
func NewAccumulator() *Accumulator {
	return &Accumulator{
		states:  make(map[string]int),
		skipped: make(map[string]int),
	}
}

// Apply adds one entry to the totals.
func (a *Accumulator) Apply(e Entry) {
	a.tasks++
	a.threads += e.Threads
	a.sumCPU += e.CPU
	a.rssKiB += e.RSS
	a.states[e.State]++
}

// Skip counts a process left out of the report.
func (a *Accumulator) Skip(s proc.Skip) {
	a.skipped[s.Outcome.String()]++
}

// Listed records how many processes were enumerated.
func (a *Accumulator) Listed(n int) { a.listed = n }

// Summary returns the totals so far. The maps are copies.
func (a *Accumulator) Summary() Summary {
	s := Summary{
		Listed:     a.listed,
		Tasks:      a.tasks,
		ByState:    make(map[string]int, len(a.states)),
		Threads:    a.threads,
		CPUPercent: a.sumCPU,
		RSSKiB:     a.rssKiB,
	}
	if a.tasks > 0 {
		s.AvgCPU = a.sumCPU / float64(a.tasks)
	}
	for k, v := range a.states {
		s.ByState[k] = v
	}
	if len(a.skipped) > 0 {
		s.Skipped = make(map[string]int, len(a.skipped))
		for k, v := range a.skipped {
			s.Skipped[k] = v
		}
	}
	return s
}

// Summarize accumulates entries and the skips of snap in one call.
func Summarize(entries []Entry, snap proc.Snapshot) Summary {
	acc := NewAccumulator()
	acc.Listed(snap.Listed)
	for _, e := range entries {
		acc.Apply(e)
	}
	for _, s := range snap.Skipped {
		acc.Skip(s)
	}
	return acc.Summary()
}
