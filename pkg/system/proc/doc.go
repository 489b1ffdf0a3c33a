// Package proc reads a single snapshot of the processes visible to the
// current user from Linux procfs and derives the figures `ps aux` reports.
//
// Overview
//
//   - Context (context.go):
//     Acquire(ContextOptions) (Context, error)
//
//     Reads the machine-wide constants once: clock ticks per second
//     (sysconf(_SC_CLK_TCK) via go-sysconf), page size, boot time
//     (now - <root>/uptime) and MemTotal (<root>/meminfo via prometheus/procfs).
//     Any failure is wrapped in ErrEnvironment and is fatal for the run.
//
//   - Reader (reader.go):
//     List() ([]int, error)
//     Read(pid) (Record, error)
//     Lookup(pid) Result
//
//     List keeps only all-digit directory names below the root. Read parses
//     <pid>/stat, <pid>/status and <pid>/cmdline. Lookup wraps Read into an
//     explicit Result{Outcome: Found|NotFound|PermissionDenied|ParseError}.
//
//   - Derive (metrics.go): pure function of (Record, Context) → Metrics.
//
//   - Assemble (snapshot.go): list once, read every pid with a bounded
//     errgroup pool, derive metrics, collect skipped pids separately.
//
//   - Collector (collector.go): Acquire + Assemble behind one value.
//
// # Stat record
//
// The second field of <pid>/stat is comm in parentheses. comm may contain
// spaces and parentheses, so the field is bounded by the first '(' and the
// last ')' on the line and the remaining fields are split by whitespace and
// read by position:
//
//	1234 (weird (name)) S 1 1234 1234 34816 ...
//	     ^-------------^ comm = "weird (name)"
//
// # Errors (errs.go)
//
//	ErrEnvironment : root or a system constant unreadable (fatal)
//	ErrNotFound    : process vanished between List and Read (skipped silently)
//	ErrPermission  : stat unreadable (skipped); status/cmdline unreadable
//	                 marks Record.Withheld instead
//	ErrParse       : record content violates the kernel grammar (skipped)
//
// # Derived metrics
//
//	CPU% = 100 * (utime + stime) / (uptime_ticks - starttime)   (≥ 0, may exceed 100)
//	RSS  = rss_pages * page_size / 1024                          (KiB)
//	MEM% = 100 * RSS / MemTotal                                  (clamped to [0,100])
//
// CPU% is the lifetime average, not a short-interval rate: only one sample
// is ever taken.
//
// Example
//
//	/*
//	col, err := proc.NewCollector(proc.Config{Workers: 4})
//	if err != nil { log.Fatal(err) }
//	snap, err := col.Snapshot(context.Background())
//	if err != nil { log.Fatal(err) }
//	for _, e := range snap.Entries {
//	    fmt.Printf("%d %s %.1f%% %dKiB\n", e.Record.PID, e.Record.Name,
//	        e.Metrics.CPUPercent, e.Metrics.RSSKiB)
//	}
//	*/
//
// Package import path: github.com/ja7ad/psaux/pkg/system/proc
package proc
