//go:build linux

package proc

import (
	"context"
	"log/slog"

	"golang.org/x/sync/errgroup"
)

// DefaultWorkers is the reader pool size used when AssembleOptions.Workers is unset.
const DefaultWorkers = 4

// Entry pairs a process record with its derived metrics.
type Entry struct {
	Record  Record
	Metrics Metrics
}

// Skip records a process that was listed but left out of the report.
type Skip struct {
	PID     int
	Outcome Outcome
	Err     error
}

// Snapshot is the result of one enumerate-read-derive pass. Entries keep
// enumeration order; the assembler never sorts.
type Snapshot struct {
	Entries []Entry
	Skipped []Skip
	// Listed is the number of process ids enumerated.
	Listed int
}

// AssembleOptions controls Assemble.
type AssembleOptions struct {
	// Workers bounds the number of concurrent readers; 1 reads sequentially.
	Workers int
	// Logger receives per-process diagnostics. Nil means slog.Default().
	Logger *slog.Logger
}

// Assemble enumerates the processes visible to r, reads each one and derives
// its metrics against sys. A failure for one process never aborts the pass:
// it is recorded in Snapshot.Skipped and the process is omitted. Only a
// failure to list the root (or cancellation of ctx) is returned as an error.
func Assemble(ctx context.Context, r *Reader, sys Context, opts AssembleOptions) (Snapshot, error) {
	log := opts.Logger
	if log == nil {
		log = slog.Default()
	}
	workers := opts.Workers
	if workers <= 0 {
		workers = DefaultWorkers
	}

	pids, err := r.List()
	if err != nil {
		return Snapshot{}, err
	}

	// Each goroutine owns exactly one slot, so no locking is needed.
	results := make([]Result, len(pids))
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(workers)
	for i, pid := range pids {
		i, pid := i, pid
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}
			results[i] = r.Lookup(pid)
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return Snapshot{}, err
	}

	snap := Snapshot{
		Entries: make([]Entry, 0, len(results)),
		Listed:  len(pids),
	}
	for _, res := range results {
		if res.Outcome == Found {
			snap.Entries = append(snap.Entries, Entry{
				Record:  res.Record,
				Metrics: Derive(res.Record, sys),
			})
			continue
		}
		snap.Skipped = append(snap.Skipped, Skip{PID: res.PID, Outcome: res.Outcome, Err: res.Err})
		if res.Outcome != NotFound {
			log.Debug("skipping process", "pid", res.PID, "outcome", res.Outcome.String(), "err", res.Err)
		}
	}
	return snap, nil
}
