//go:build linux

package proc

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
)

// DefaultRoot is the usual mount point of procfs.
const DefaultRoot = "/proc"

// Outcome is the per-process result of a read attempt.
type Outcome int

const (
	Found Outcome = iota
	NotFound
	PermissionDenied
	ParseError
)

func (o Outcome) String() string {
	switch o {
	case Found:
		return "found"
	case NotFound:
		return "not-found"
	case PermissionDenied:
		return "permission-denied"
	default:
		return "parse-error"
	}
}

// Result is the explicit outcome of reading one process. Record is only
// meaningful when Outcome is Found.
type Result struct {
	PID     int
	Outcome Outcome
	Record  Record
	Err     error
}

// Classify maps an error returned by Read to an Outcome. Per-process
// failures that fit no other kind are treated like malformed content.
func Classify(err error) Outcome {
	switch {
	case err == nil:
		return Found
	case errors.Is(err, ErrNotFound):
		return NotFound
	case errors.Is(err, ErrPermission):
		return PermissionDenied
	default:
		return ParseError
	}
}

// Reader reads process records below a procfs root.
type Reader struct {
	root string
	// readFile reads one per-process record; os.ReadFile outside tests.
	readFile func(name string) ([]byte, error)
}

// NewReader returns a Reader for root; an empty root means DefaultRoot.
func NewReader(root string) *Reader {
	if root == "" {
		root = DefaultRoot
	}
	return &Reader{root: filepath.Clean(root), readFile: os.ReadFile}
}

// Root returns the procfs root the reader was built for.
func (r *Reader) Root() string { return r.root }

// List returns the ids of all processes visible below the root, in directory
// order. Entries whose name is not entirely decimal digits are not processes
// and are skipped. Failure to list the root is an ErrEnvironment error.
func (r *Reader) List() ([]int, error) {
	d, err := os.Open(r.root)
	if err != nil {
		return nil, fmt.Errorf("%w: open %s: %w", ErrEnvironment, r.root, err)
	}
	defer d.Close()

	names, err := d.Readdirnames(-1)
	if err != nil {
		return nil, fmt.Errorf("%w: list %s: %w", ErrEnvironment, r.root, err)
	}

	pids := make([]int, 0, len(names))
	for _, name := range names {
		if !isDigits(name) {
			continue
		}
		pid, err := strconv.Atoi(name)
		if err != nil || pid <= 0 {
			continue
		}
		pids = append(pids, pid)
	}
	return pids, nil
}

// Lookup reads pid and reports the outcome explicitly.
func (r *Reader) Lookup(pid int) Result {
	rec, err := r.Read(pid)
	return Result{PID: pid, Outcome: Classify(err), Record: rec, Err: err}
}

// Read reads and parses the stat, status and cmdline records of pid.
//
// A process that disappears at any point yields ErrNotFound. If stat cannot
// be read for lack of privilege the result is ErrPermission; if only status
// or cmdline are denied, the record is returned with the matching Withheld
// bits set and the owner taken from the process directory.
func (r *Reader) Read(pid int) (Record, error) {
	var rec Record
	dir := r.pidDir(pid)

	data, err := r.readFile(filepath.Join(dir, "stat"))
	if err != nil {
		return rec, ioErr(pid, "stat", err)
	}
	st, err := parseStat(string(data))
	if err != nil {
		return rec, fmt.Errorf("pid %d stat: %w", pid, err)
	}
	if st.pid != pid {
		return rec, fmt.Errorf("pid %d stat: %w", pid, parseErr(ErrNoStat, "record is for pid %d", st.pid))
	}
	st.apply(&rec)

	data, err = r.readFile(filepath.Join(dir, "status"))
	switch {
	case err == nil:
		uid, err := parseStatusUID(string(data))
		if err != nil {
			return rec, fmt.Errorf("pid %d status: %w", pid, err)
		}
		rec.UID = uid
	case isDenied(err):
		rec.Withheld |= WithheldStatus
		uid, err := dirOwner(dir)
		if err != nil {
			return rec, ioErr(pid, "owner", err)
		}
		rec.UID = uid
	default:
		return rec, ioErr(pid, "status", err)
	}

	data, err = r.readFile(filepath.Join(dir, "cmdline"))
	switch {
	case err == nil:
		rec.Cmdline = parseCmdline(data)
	case isDenied(err):
		rec.Withheld |= WithheldCmdline
		rec.Cmdline = []string{}
	default:
		return rec, ioErr(pid, "cmdline", err)
	}

	if exe, err := os.Readlink(filepath.Join(dir, "exe")); err == nil {
		rec.Exe = exe
	}
	return rec, nil
}

func (r *Reader) pidDir(pid int) string {
	return filepath.Join(r.root, strconv.Itoa(pid))
}

// ioErr wraps a read failure with the sentinel matching its cause.
func ioErr(pid int, file string, err error) error {
	switch {
	case isGone(err):
		return fmt.Errorf("%w: pid %d %s: %w", ErrNotFound, pid, file, err)
	case isDenied(err):
		return fmt.Errorf("%w: pid %d %s: %w", ErrPermission, pid, file, err)
	default:
		return fmt.Errorf("pid %d %s: %w", pid, file, err)
	}
}
