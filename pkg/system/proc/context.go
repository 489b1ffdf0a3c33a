//go:build linux

package proc

import (
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/prometheus/procfs"
	"github.com/tklauser/go-sysconf"
	"golang.org/x/sys/unix"
)

// Context holds the machine-wide constants needed to normalize process
// records. It is acquired once per run and only read afterwards.
type Context struct {
	// ClockTicks is the number of clock ticks per second (USER_HZ).
	ClockTicks int64
	// PageSize is the memory page size in bytes.
	PageSize int
	// BootTime is the wall-clock instant the system booted.
	BootTime time.Time
	// MemTotalKiB is the total physical memory in kibibytes.
	MemTotalKiB uint64
	// SampledAt is the instant the uptime record was read; lifetime CPU
	// shares are computed against it.
	SampledAt time.Time
}

// ContextOptions controls Acquire. Zero values select the host defaults.
type ContextOptions struct {
	// Root is the procfs root holding the uptime and meminfo records.
	Root string
	// ClockTicks overrides sysconf(_SC_CLK_TCK) when > 0.
	ClockTicks int64
	// PageSize overrides the host page size when > 0.
	PageSize int
	// Now overrides the wall clock.
	Now func() time.Time
}

// Acquire reads the clock-tick rate, page size, boot time and total memory.
// Any missing or malformed source is an ErrEnvironment error; there are no retries.
func Acquire(opts ContextOptions) (Context, error) {
	var c Context

	root := opts.Root
	if root == "" {
		root = DefaultRoot
	}
	now := time.Now
	if opts.Now != nil {
		now = opts.Now
	}

	c.ClockTicks = opts.ClockTicks
	if c.ClockTicks <= 0 {
		hz, err := sysconf.Sysconf(sysconf.SC_CLK_TCK)
		if err != nil {
			return Context{}, fmt.Errorf("%w: clock ticks: %w", ErrEnvironment, err)
		}
		c.ClockTicks = hz
	}
	if c.ClockTicks <= 0 {
		return Context{}, fmt.Errorf("%w: clock ticks: non-positive rate %d", ErrEnvironment, c.ClockTicks)
	}

	c.PageSize = opts.PageSize
	if c.PageSize <= 0 {
		c.PageSize = unix.Getpagesize()
	}
	if c.PageSize <= 0 {
		return Context{}, fmt.Errorf("%w: page size: non-positive size %d", ErrEnvironment, c.PageSize)
	}

	uptime, err := readUptime(filepath.Join(root, "uptime"))
	if err != nil {
		return Context{}, fmt.Errorf("%w: boot time: %w", ErrEnvironment, err)
	}
	c.SampledAt = now()
	c.BootTime = c.SampledAt.Add(-uptime)

	c.MemTotalKiB, err = readMemTotal(root)
	if err != nil {
		return Context{}, fmt.Errorf("%w: total memory: %w", ErrEnvironment, err)
	}
	return c, nil
}

// UptimeTicks returns the clock ticks elapsed between boot and SampledAt.
func (c Context) UptimeTicks() float64 {
	return c.SampledAt.Sub(c.BootTime).Seconds() * float64(c.ClockTicks)
}

// readUptime parses the first field of the uptime record ("12345.67 54321.00").
func readUptime(path string) (time.Duration, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return 0, err
	}
	fields := strings.Fields(string(data))
	if len(fields) == 0 {
		return 0, ErrNoUptime
	}
	secs, err := strconv.ParseFloat(fields[0], 64)
	if err != nil {
		return 0, fmt.Errorf("%w: %w", ErrNoUptime, err)
	}
	if secs <= 0 {
		return 0, fmt.Errorf("%w: non-positive uptime %q", ErrNoUptime, fields[0])
	}
	return time.Duration(secs * float64(time.Second)), nil
}

func readMemTotal(root string) (uint64, error) {
	pfs, err := procfs.NewFS(root)
	if err != nil {
		return 0, err
	}
	mi, err := pfs.Meminfo()
	if err != nil {
		return 0, err
	}
	if mi.MemTotal == nil || *mi.MemTotal == 0 {
		return 0, ErrNoMemTotal
	}
	return *mi.MemTotal, nil
}
