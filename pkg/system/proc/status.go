//go:build linux

package proc

import (
	"bufio"
	"strconv"
	"strings"
)

// parseStatusUID extracts the effective uid from a status record made of
// "Key:\tvalue" lines. The Uid line carries real, effective, saved-set and
// filesystem ids; the effective id is the owner ps reports.
func parseStatusUID(data string) (uint32, error) {
	sc := bufio.NewScanner(strings.NewReader(data))
	for sc.Scan() {
		line := sc.Text()
		if line == "" {
			continue
		}
		key, value, ok := strings.Cut(line, ":")
		if !ok {
			return 0, parseErr(ErrNoUID, "status line without key: %q", line)
		}
		if key != "Uid" {
			continue
		}
		ids := strings.Fields(value)
		if len(ids) == 0 {
			return 0, parseErr(ErrNoUID, "empty Uid line")
		}
		id := ids[0]
		if len(ids) > 1 {
			id = ids[1]
		}
		uid, err := strconv.ParseUint(id, 10, 32)
		if err != nil {
			return 0, parseErr(err, "Uid %q", id)
		}
		return uint32(uid), nil
	}
	if err := sc.Err(); err != nil {
		return 0, parseErr(err, "scan status")
	}
	return 0, parseErr(ErrNoUID, "no Uid line")
}
