package proc

import "errors"

var (
	// ErrEnvironment indicates that the metadata root or one of the
	// machine-wide constants could not be obtained. It is fatal for a run.
	ErrEnvironment = errors.New("proc: unusable environment")

	// ErrNotFound indicates that a process vanished between listing and reading.
	ErrNotFound = errors.New("proc: process not found")

	// ErrPermission indicates insufficient privilege to read a per-process record.
	ErrPermission = errors.New("proc: permission denied")

	// ErrParse indicates that a per-process record violated the expected grammar.
	ErrParse = errors.New("proc: malformed record")

	// ErrNoStat indicates that /proc/<pid>/stat was empty or had no "(comm)" field.
	ErrNoStat = errors.New("proc: malformed or empty stat")

	// ErrShortStat indicates that /proc/<pid>/stat had fewer fields than expected.
	ErrShortStat = errors.New("proc: short stat")

	// ErrNoUID indicates that /proc/<pid>/status carried no usable Uid line.
	ErrNoUID = errors.New("proc: no uid in status")

	// ErrNoUptime indicates that the uptime record was empty or malformed.
	ErrNoUptime = errors.New("proc: malformed uptime")

	// ErrNoMemTotal indicates that the memory record carried no MemTotal.
	ErrNoMemTotal = errors.New("proc: no MemTotal")
)
