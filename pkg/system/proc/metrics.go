//go:build linux

package proc

import (
	"github.com/ja7ad/psaux/pkg/system/util"
	"github.com/ja7ad/psaux/pkg/types"
)

// Metrics are the values derived from a Record and the system Context.
type Metrics struct {
	// CPUPercent is the lifetime-average CPU share. It is never negative
	// and may exceed 100 on multi-core hosts.
	CPUPercent float64
	// RSSKiB is the resident set in kibibytes.
	RSSKiB uint64
	// MemPercent is RSSKiB relative to total physical memory, in [0,100].
	MemPercent float64
}

// Derive computes Metrics from rec and c. It reads no state besides its
// arguments.
//
//	CPU% = 100 * (utime + stime) / (uptime_ticks - starttime)
//	MEM% = 100 * rss_kib / mem_total_kib
func Derive(rec Record, c Context) Metrics {
	var m Metrics

	elapsed := c.UptimeTicks() - float64(rec.StartTicks)
	if elapsed > 0 {
		m.CPUPercent = util.ClampMin0(100 * float64(rec.CPUTicks()) / elapsed)
	}

	m.RSSKiB = types.PagesToBytes(rec.RSSPages, c.PageSize).KiB()
	m.MemPercent = util.ClampPercent(util.SafeDiv(100*float64(m.RSSKiB), float64(c.MemTotalKiB)))
	return m
}
