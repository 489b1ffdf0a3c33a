//go:build linux

package proc

import (
	"context"
	"log/slog"
)

// Config configures a Collector.
type Config struct {
	// Root is the procfs root; empty means DefaultRoot.
	Root string
	// ClockTicks and PageSize override the host constants when > 0.
	ClockTicks int64
	PageSize   int
	// Workers bounds concurrent per-process reads.
	Workers int
	Logger  *slog.Logger
}

// Collector takes process snapshots against a fixed system Context.
type Collector struct {
	reader *Reader
	sys    Context
	opts   AssembleOptions
}

// NewCollector acquires the system Context for cfg. An error here is fatal
// for the run: no snapshot can be normalized without the constants.
func NewCollector(cfg Config) (*Collector, error) {
	sys, err := Acquire(ContextOptions{
		Root:       cfg.Root,
		ClockTicks: cfg.ClockTicks,
		PageSize:   cfg.PageSize,
	})
	if err != nil {
		return nil, err
	}
	return &Collector{
		reader: NewReader(cfg.Root),
		sys:    sys,
		opts:   AssembleOptions{Workers: cfg.Workers, Logger: cfg.Logger},
	}, nil
}

// Context returns the system constants the collector was built with.
func (c *Collector) Context() Context { return c.sys }

// Root returns the procfs root being read.
func (c *Collector) Root() string { return c.reader.Root() }

// Snapshot runs one enumerate-read-derive pass.
func (c *Collector) Snapshot(ctx context.Context) (Snapshot, error) {
	return Assemble(ctx, c.reader, c.sys, c.opts)
}
