//go:build linux

package proc

import (
	"strconv"

	"golang.org/x/sys/unix"
)

// Terminal is the controlling terminal of a process.
type Terminal struct {
	// Dev is the raw tty_nr device number from the stat record.
	Dev uint64
	// Name is the short device name ps prints, e.g. "pts/3" or "tty1".
	// Devices without a known naming rule are reported as "?".
	Name string
}

// decodeTerminal turns the stat tty_nr field into a Terminal. Zero means the
// process has no controlling terminal and yields nil.
func decodeTerminal(ttyNr int64) *Terminal {
	if ttyNr == 0 {
		return nil
	}
	dev := uint64(uint32(ttyNr))
	return &Terminal{Dev: dev, Name: terminalName(dev)}
}

func terminalName(dev uint64) string {
	major := unix.Major(dev)
	minor := unix.Minor(dev)
	switch {
	case major >= 136 && major <= 143:
		return "pts/" + strconv.FormatUint(uint64(minor)+uint64(major-136)*256, 10)
	case major == 4 && minor < 64:
		return "tty" + strconv.FormatUint(uint64(minor), 10)
	case major == 4:
		return "ttyS" + strconv.FormatUint(uint64(minor-64), 10)
	case major == 5 && minor == 0:
		return "tty"
	case major == 5 && minor == 1:
		return "console"
	default:
		return "?"
	}
}
