//go:build linux

package proc

import "github.com/ja7ad/psaux/pkg/types"

// Withheld marks per-process records that could not be read for lack of privilege.
type Withheld uint8

const (
	WithheldStatus Withheld = 1 << iota
	WithheldCmdline
)

// Has reports whether all bits in w2 are set.
func (w Withheld) Has(w2 Withheld) bool { return w&w2 == w2 }

// Record is one process as read from its stat, status and cmdline records.
// It is built once per snapshot and never mutated afterwards.
type Record struct {
	PID  int
	PPID int
	// UID is the effective owner id. When the status record is withheld it is
	// the owner of the /proc/<pid> directory instead.
	UID uint32

	State RunState
	// StateCode is the raw kernel state character, kept for display.
	StateCode byte

	// Name is the executable short name (comm), verbatim from between the
	// first '(' and the last ')' of the stat record.
	Name string
	// Cmdline is the argument vector; empty for kernel threads and zombies.
	Cmdline []string
	// Exe is the resolved executable path, best-effort.
	Exe string

	UserTicks   types.Ticks
	KernelTicks types.Ticks
	// StartTicks is the start time in clock ticks since boot.
	StartTicks types.Ticks

	VSize    types.Bytes
	RSSPages uint64
	Threads  int

	// TTY is nil when the process has no controlling terminal.
	TTY *Terminal

	Withheld Withheld
}

// CPUTicks returns user plus kernel ticks.
func (r Record) CPUTicks() types.Ticks { return r.UserTicks + r.KernelTicks }
