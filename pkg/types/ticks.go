package types

import (
	"fmt"
	"time"
)

// Ticks is a count of kernel clock ticks (jiffies as exposed to userspace).
type Ticks uint64

// Seconds converts the tick count to seconds using the given clock-tick rate.
// A non-positive rate yields 0.
func (t Ticks) Seconds(hz int64) float64 {
	if hz <= 0 {
		return 0
	}
	return float64(t) / float64(hz)
}

// Duration converts the tick count to a time.Duration using the given rate.
func (t Ticks) Duration(hz int64) time.Duration {
	if hz <= 0 {
		return 0
	}
	whole := uint64(t) / uint64(hz)
	frac := uint64(t) % uint64(hz)
	return time.Duration(whole)*time.Second + time.Duration(frac)*time.Second/time.Duration(hz)
}

// CPUTime formats the tick count like the ps TIME column: minutes and
// zero-padded seconds, e.g. "0:03" or "125:42".
func (t Ticks) CPUTime(hz int64) string {
	secs := uint64(t.Duration(hz) / time.Second)
	return fmt.Sprintf("%d:%02d", secs/60, secs%60)
}
