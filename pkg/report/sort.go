package report

import (
	"cmp"
	"fmt"
	"slices"
	"strings"
)

// SortKey selects the order of report entries.
type SortKey string

const (
	SortNone  SortKey = "none"
	SortPID   SortKey = "pid"
	SortCPU   SortKey = "cpu"
	SortMem   SortKey = "mem"
	SortRSS   SortKey = "rss"
	SortVSZ   SortKey = "vsz"
	SortStart SortKey = "start"
	SortTime  SortKey = "time"
	SortUser  SortKey = "user"
)

var sortKeys = []SortKey{SortNone, SortPID, SortCPU, SortMem, SortRSS, SortVSZ, SortStart, SortTime, SortUser}

// ParseSortKey validates s; the empty string means SortNone.
func ParseSortKey(s string) (SortKey, error) {
	if s == "" {
		return SortNone, nil
	}
	k := SortKey(strings.ToLower(s))
	if !slices.Contains(sortKeys, k) {
		return "", fmt.Errorf("unknown sort key %q", s)
	}
	return k, nil
}

// Sort orders entries in place. Resource keys sort largest first; pid, start
// and user sort ascending. Ties are broken by pid. SortNone keeps the input order.
func Sort(entries []Entry, key SortKey) {
	var by func(a, b Entry) int
	switch key {
	case SortPID:
		by = func(a, b Entry) int { return 0 }
	case SortCPU:
		by = func(a, b Entry) int { return cmp.Compare(b.CPU, a.CPU) }
	case SortMem:
		by = func(a, b Entry) int { return cmp.Compare(b.Mem, a.Mem) }
	case SortRSS:
		by = func(a, b Entry) int { return cmp.Compare(b.RSS, a.RSS) }
	case SortVSZ:
		by = func(a, b Entry) int { return cmp.Compare(b.VSZ, a.VSZ) }
	case SortStart:
		by = func(a, b Entry) int { return a.StartedAt.Compare(b.StartedAt) }
	case SortTime:
		by = func(a, b Entry) int { return cmp.Compare(b.CPUSeconds, a.CPUSeconds) }
	case SortUser:
		by = func(a, b Entry) int { return cmp.Compare(a.User, b.User) }
	default:
		return
	}
	slices.SortStableFunc(entries, func(a, b Entry) int {
		if c := by(a, b); c != 0 {
			return c
		}
		return cmp.Compare(a.PID, b.PID)
	})
}
