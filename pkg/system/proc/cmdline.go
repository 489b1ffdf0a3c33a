//go:build linux

package proc

import "strings"

// parseCmdline splits a NUL-separated argument record. A zero-length record
// (kernel threads, zombies) yields an empty, non-nil slice. Trailing NUL
// padding left by processes that rewrite their argv is dropped.
func parseCmdline(data []byte) []string {
	s := strings.TrimRight(string(data), "\x00")
	if s == "" {
		return []string{}
	}
	return strings.Split(s, "\x00")
}
