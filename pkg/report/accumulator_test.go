//go:build linux

package report

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/ja7ad/psaux/pkg/system/proc"
)

func TestAccumulator(t *testing.T) {
	acc := NewAccumulator()
	assert.Equal(t, 0.0, acc.Summary().AvgCPU)

	acc.Listed(5)
	acc.Apply(Entry{State: "sleeping", CPU: 1.5, RSS: 100, Threads: 2})
	acc.Apply(Entry{State: "running", CPU: 2.5, RSS: 300, Threads: 4})
	acc.Apply(Entry{State: "sleeping", CPU: 2.0, RSS: 0, Threads: 1})
	acc.Skip(proc.Skip{PID: 9, Outcome: proc.ParseError})
	acc.Skip(proc.Skip{PID: 10, Outcome: proc.NotFound})

	s := acc.Summary()
	assert.Equal(t, 5, s.Listed)
	assert.Equal(t, 3, s.Tasks)
	assert.Equal(t, map[string]int{"sleeping": 2, "running": 1}, s.ByState)
	assert.Equal(t, 7, s.Threads)
	assert.InDelta(t, 6.0, s.CPUPercent, 1e-9)
	assert.InDelta(t, 2.0, s.AvgCPU, 1e-9)
	assert.Equal(t, uint64(400), s.RSSKiB)
	assert.Equal(t, map[string]int{"parse-error": 1, "not-found": 1}, s.Skipped)

	s.ByState["sleeping"] = 99
	assert.Equal(t, 2, acc.Summary().ByState["sleeping"])
}

func TestSummarize(t *testing.T) {
	snap := testSnapshot()
	s := Summarize(Build(snap, testContext(), nil), snap)
	assert.Equal(t, 3, s.Listed)
	assert.Equal(t, 2, s.Tasks)
	assert.Equal(t, map[string]int{"sleeping": 1, "other": 1}, s.ByState)
	assert.Equal(t, map[string]int{"parse-error": 1}, s.Skipped)
	assert.Nil(t, Summarize(nil, proc.Snapshot{}).Skipped)
}
