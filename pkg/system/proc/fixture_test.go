//go:build linux

package proc

import (
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"testing"

	"github.com/stretchr/testify/require"
)

// fakeProc describes one process directory of a synthetic procfs tree.
type fakeProc struct {
	pid     int
	stat    string
	status  string
	cmdline []byte
	exe     string

	noStat    bool
	noStatus  bool
	noCmdline bool
}

func statLine(pid int, name string, state byte, ppid int, tty int64, utime, stime uint64, threads int, start, vsize uint64, rss int64) string {
	return fmt.Sprintf("%d (%s) %c %d %d %d %d -1 4194560 100 0 0 0 %d %d 0 0 20 0 %d 0 %d %d %d 18446744073709551615 1 1 0 0 0 0 0 0 0 0 0 0 17 0 0 0 0 0 0\n",
		pid, name, state, ppid, pid, pid, tty, utime, stime, threads, start, vsize, rss)
}

func statusText(name string, pid int, ruid, euid uint32) string {
	return fmt.Sprintf("Name:\t%s\nUmask:\t0022\nState:\tS (sleeping)\nTgid:\t%d\nPid:\t%d\nPPid:\t1\nUid:\t%d\t%d\t%d\t%d\nGid:\t100\t100\t100\t100\nThreads:\t1\n",
		name, pid, pid, ruid, euid, ruid, ruid)
}

// simpleProc returns a well-formed sleeping process owned by uid 1000.
func simpleProc(pid int, name string) fakeProc {
	return fakeProc{
		pid:     pid,
		stat:    statLine(pid, name, 'S', 1, 0, 10, 5, 1, 1000, 8192*1024, 256),
		status:  statusText(name, pid, 1000, 1000),
		cmdline: []byte("/usr/bin/" + name + "\x00--flag\x00"),
	}
}

// writeRoot builds a procfs-like tree with uptime and meminfo plus procs.
func writeRoot(t *testing.T, procs ...fakeProc) string {
	t.Helper()
	root := t.TempDir()
	writeFile(t, filepath.Join(root, "uptime"), "1000.00 3900.50\n")
	writeFile(t, filepath.Join(root, "meminfo"), "MemTotal:       16384 kB\nMemFree:         8192 kB\nMemAvailable:   12000 kB\n")
	for _, p := range procs {
		addProc(t, root, p)
	}
	return root
}

func addProc(t *testing.T, root string, p fakeProc) {
	t.Helper()
	dir := filepath.Join(root, strconv.Itoa(p.pid))
	require.NoError(t, os.MkdirAll(dir, 0o755))
	if !p.noStat {
		writeFile(t, filepath.Join(dir, "stat"), p.stat)
	}
	if !p.noStatus {
		writeFile(t, filepath.Join(dir, "status"), p.status)
	}
	if !p.noCmdline {
		require.NoError(t, os.WriteFile(filepath.Join(dir, "cmdline"), p.cmdline, 0o644))
	}
	if p.exe != "" {
		require.NoError(t, os.Symlink(p.exe, filepath.Join(dir, "exe")))
	}
}

func writeFile(t *testing.T, path, content string) {
	t.Helper()
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
}
