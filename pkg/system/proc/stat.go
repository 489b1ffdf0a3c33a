//go:build linux

package proc

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/ja7ad/psaux/pkg/types"
)

// /proc/<pid>/stat field indices relative to the fields following the closing
// ')' of comm, so they are two lower than the numbering in proc(5).
const (
	statState      = 0
	statPPID       = 1
	statTTY        = 4
	statUtime      = 11
	statStime      = 12
	statNumThreads = 17
	statStartTime  = 19
	statVsize      = 20
	statRss        = 21
)

// statFields is the subset of the stat record the snapshot needs.
type statFields struct {
	pid        int
	name       string
	stateCode  byte
	ppid       int
	ttyNr      int64
	utime      uint64
	stime      uint64
	numThreads int
	startTime  uint64
	vsize      uint64
	rss        uint64
}

// parseStat parses the single-line stat record. comm is bounded by the first
// '(' and the last ')' because it may itself contain spaces and parentheses;
// the remaining fields are taken by position.
func parseStat(line string) (statFields, error) {
	var st statFields

	line = strings.TrimRight(line, "\n")
	open := strings.IndexByte(line, '(')
	closing := strings.LastIndexByte(line, ')')
	if open < 0 || closing < open {
		return st, parseErr(ErrNoStat, "no (comm) in %q", line)
	}

	pid, err := strconv.Atoi(strings.TrimSpace(line[:open]))
	if err != nil {
		return st, parseErr(ErrNoStat, "pid field: %v", err)
	}
	st.pid = pid
	st.name = line[open+1 : closing]

	fields := strings.Fields(line[closing+1:])
	if len(fields) <= statRss {
		return st, parseErr(ErrShortStat, "%d fields after comm, want > %d", len(fields), statRss)
	}

	if len(fields[statState]) != 1 {
		return st, parseErr(ErrNoStat, "state field %q", fields[statState])
	}
	st.stateCode = fields[statState][0]

	if st.ppid, err = strconv.Atoi(fields[statPPID]); err != nil {
		return st, parseErr(err, "ppid")
	}
	if st.ttyNr, err = strconv.ParseInt(fields[statTTY], 10, 64); err != nil {
		return st, parseErr(err, "tty_nr")
	}
	if st.utime, err = strconv.ParseUint(fields[statUtime], 10, 64); err != nil {
		return st, parseErr(err, "utime")
	}
	if st.stime, err = strconv.ParseUint(fields[statStime], 10, 64); err != nil {
		return st, parseErr(err, "stime")
	}
	if st.numThreads, err = strconv.Atoi(fields[statNumThreads]); err != nil {
		return st, parseErr(err, "num_threads")
	}
	if st.startTime, err = strconv.ParseUint(fields[statStartTime], 10, 64); err != nil {
		return st, parseErr(err, "starttime")
	}
	if st.vsize, err = strconv.ParseUint(fields[statVsize], 10, 64); err != nil {
		return st, parseErr(err, "vsize")
	}
	// rss is a signed long in the kernel; a transiently negative value reads as zero.
	rss, err := strconv.ParseInt(fields[statRss], 10, 64)
	if err != nil {
		return st, parseErr(err, "rss")
	}
	if rss > 0 {
		st.rss = uint64(rss)
	}
	return st, nil
}

// apply copies the parsed stat fields into r.
func (st statFields) apply(r *Record) {
	r.PID = st.pid
	r.PPID = st.ppid
	r.Name = st.name
	r.StateCode = st.stateCode
	r.State = ParseRunState(st.stateCode)
	r.UserTicks = types.Ticks(st.utime)
	r.KernelTicks = types.Ticks(st.stime)
	r.StartTicks = types.Ticks(st.startTime)
	r.VSize = types.ToBytes(st.vsize)
	r.RSSPages = st.rss
	r.Threads = st.numThreads
	r.TTY = decodeTerminal(st.ttyNr)
}

func parseErr(cause error, format string, args ...any) error {
	return fmt.Errorf("%w: %s: %w", ErrParse, fmt.Sprintf(format, args...), cause)
}
