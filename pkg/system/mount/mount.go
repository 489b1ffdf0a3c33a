//go:build linux

package mount

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strconv"
	"strings"
)

// HidePID is the process visibility policy of a proc mount.
type HidePID int

const (
	HideOff        HidePID = iota // every process directory is visible
	HideNoAccess                  // other users' directories are visible but unreadable
	HideInvisible                 // other users' directories are not listed at all
	HidePtraceable                // only processes the caller may ptrace are visible
)

func (h HidePID) String() string {
	switch h {
	case HideNoAccess:
		return "noaccess"
	case HideInvisible:
		return "invisible"
	case HidePtraceable:
		return "ptraceable"
	default:
		return "off"
	}
}

// Info describes the filesystem mounted at a procfs root.
type Info struct {
	MountPoint string
	FSType     string
	Source     string
	HidePID    HidePID
}

// IsProc reports whether the mount is a proc filesystem.
func (i Info) IsProc() bool { return i.FSType == "proc" }

// Restricted reports whether the caller may not see every process.
func (i Info) Restricted() bool { return i.IsProc() && i.HidePID != HideOff }

// Detect looks up root in root/self/mountinfo.
//
// The second return is false when root is not a mount point, which is the
// normal case for a directory tree standing in for procfs.
func Detect(root string) (Info, bool, error) {
	root = filepath.Clean(root)
	f, err := os.Open(filepath.Join(root, "self", "mountinfo"))
	if err != nil {
		return Info{}, false, fmt.Errorf("open mountinfo: %w", err)
	}
	defer func() {
		_ = f.Close()
	}()
	return Find(f, root)
}

// Find scans a mountinfo stream for the last mount at mountPoint; later
// entries shadow earlier ones.
func Find(r io.Reader, mountPoint string) (Info, bool, error) {
	var (
		info  Info
		found bool
		sc    = bufio.NewScanner(r)
	)
	for sc.Scan() {
		line := sc.Text()
		// <id> <parent> <maj:min> <root> <mount point> <opts> [optional...] - <fstype> <source> <superopts>
		i := strings.LastIndex(line, " - ")
		if i < 0 {
			continue
		}
		pre := strings.Fields(line[:i])
		tail := strings.Fields(line[i+3:])
		if len(pre) < 6 || len(tail) < 1 {
			continue
		}
		if unescape(pre[4]) != mountPoint {
			continue
		}

		info = Info{MountPoint: mountPoint, FSType: tail[0]}
		if len(tail) > 1 {
			info.Source = tail[1]
		}
		opts := pre[5]
		if len(tail) > 2 {
			opts += "," + tail[2]
		}
		info.HidePID = parseHidePID(opts)
		found = true
	}
	if err := sc.Err(); err != nil {
		return Info{}, false, fmt.Errorf("scan mountinfo: %w", err)
	}
	return info, found, nil
}

func parseHidePID(opts string) HidePID {
	h := HideOff
	for _, o := range strings.Split(opts, ",") {
		v, ok := strings.CutPrefix(o, "hidepid=")
		if !ok {
			continue
		}
		switch v {
		case "1", "noaccess":
			h = HideNoAccess
		case "2", "invisible":
			h = HideInvisible
		case "4", "ptraceable":
			h = HidePtraceable
		default:
			h = HideOff
		}
	}
	return h
}

// unescape decodes the octal escapes (\040 for a space) used in mountinfo paths.
func unescape(s string) string {
	if !strings.Contains(s, `\`) {
		return s
	}
	var b strings.Builder
	for i := 0; i < len(s); i++ {
		if s[i] == '\\' && i+4 <= len(s) {
			if n, err := strconv.ParseUint(s[i+1:i+4], 8, 8); err == nil {
				b.WriteByte(byte(n))
				i += 3
				continue
			}
		}
		b.WriteByte(s[i])
	}
	return b.String()
}
