//go:build linux

package report

import (
	"strconv"
	"strings"
	"time"

	"github.com/ja7ad/psaux/pkg/system/proc"
)

// Placeholder is shown in place of a value that could not be read.
const Placeholder = "-"

// Namer resolves a uid to a display name.
type Namer interface {
	Name(uid uint32) string
}

// Build converts a snapshot into report entries, keeping snapshot order.
// A nil names shows numeric uids.
func Build(snap proc.Snapshot, sys proc.Context, names Namer) []Entry {
	out := make([]Entry, 0, len(snap.Entries))
	for _, e := range snap.Entries {
		out = append(out, entry(e, sys, names))
	}
	return out
}

func entry(e proc.Entry, sys proc.Context, names Namer) Entry {
	rec := e.Record
	started := sys.BootTime.Add(rec.StartTicks.Duration(sys.ClockTicks))

	out := Entry{
		UID:        rec.UID,
		PID:        rec.PID,
		PPID:       rec.PPID,
		CPU:        e.Metrics.CPUPercent,
		Mem:        e.Metrics.MemPercent,
		VSZ:        rec.VSize.KiB(),
		RSS:        e.Metrics.RSSKiB,
		TTY:        "?",
		Stat:       string(rec.StateCode),
		State:      rec.State.String(),
		Start:      FormatStart(started, sys.SampledAt),
		StartedAt:  started,
		Time:       rec.CPUTicks().CPUTime(sys.ClockTicks),
		CPUSeconds: rec.CPUTicks().Seconds(sys.ClockTicks),
		Threads:    rec.Threads,
		Name:       rec.Name,
		Args:       rec.Cmdline,
		Exe:        rec.Exe,
	}
	if names != nil {
		out.User = names.Name(rec.UID)
	} else {
		out.User = strconv.FormatUint(uint64(rec.UID), 10)
	}
	if rec.TTY != nil {
		out.TTY = rec.TTY.Name
	}
	if rec.StateCode == 0 {
		out.Stat = "?"
	}

	switch {
	case rec.Withheld.Has(proc.WithheldCmdline):
		out.Command = Placeholder
	case len(rec.Cmdline) == 0:
		out.Command = "[" + rec.Name + "]"
	default:
		out.Command = strings.Join(rec.Cmdline, " ")
	}

	if rec.Withheld.Has(proc.WithheldStatus) {
		out.Withheld = append(out.Withheld, "status")
	}
	if rec.Withheld.Has(proc.WithheldCmdline) {
		out.Withheld = append(out.Withheld, "cmdline")
	}
	return out
}

// FormatStart formats a start instant like the ps START column relative to
// now: "15:04" for today, "Jan02" for this year, the year otherwise.
func FormatStart(started, now time.Time) string {
	started = started.In(now.Location())
	y1, m1, d1 := started.Date()
	y2, m2, d2 := now.Date()
	switch {
	case y1 == y2 && m1 == m2 && d1 == d2:
		return started.Format("15:04")
	case y1 == y2:
		return started.Format("Jan02")
	default:
		return started.Format("2006")
	}
}
