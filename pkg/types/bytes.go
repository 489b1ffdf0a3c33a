package types

import "fmt"

// Bytes is a uint64 wrapper representing a size in bytes.
type Bytes uint64

// ToBytes converts a raw byte counter into Bytes.
func ToBytes(v uint64) Bytes { return Bytes(v) }

// PagesToBytes converts a page count into Bytes for the given page size.
func PagesToBytes(pages uint64, pageSize int) Bytes {
	if pageSize <= 0 {
		return 0
	}
	return Bytes(pages * uint64(pageSize))
}

// ToUint64 returns the raw byte count.
func (b Bytes) ToUint64() uint64 { return uint64(b) }

// KiB returns the size in whole kibibytes, truncated, the unit ps uses for VSZ and RSS.
func (b Bytes) KiB() uint64 { return uint64(b) / 1024 }

// Humanized returns a human-readable string with automatic unit (B, KB, MB, GB, TB).
func (b Bytes) Humanized() string {
	v := float64(b)
	switch {
	case b >= 1<<40:
		return fmt.Sprintf("%.2f TB", v/(1<<40))
	case b >= 1<<30:
		return fmt.Sprintf("%.2f GB", v/(1<<30))
	case b >= 1<<20:
		return fmt.Sprintf("%.2f MB", v/(1<<20))
	case b >= 1<<10:
		return fmt.Sprintf("%.2f KB", v/(1<<10))
	default:
		return fmt.Sprintf("%d B", b)
	}
}

// KB returns the number of kilobytes (1024 base).
func (b Bytes) KB() float64 { return float64(b) / 1024 }

// MB returns the number of megabytes (1024 base).
func (b Bytes) MB() float64 { return float64(b) / (1024 * 1024) }
