//go:build linux

package util

import (
	"strconv"

	"github.com/shirou/gopsutil/v3/cpu"
	"github.com/shirou/gopsutil/v3/host"
	"github.com/shirou/gopsutil/v3/mem"

	"github.com/ja7ad/psaux/pkg/types"
)

// SystemSummary returns hostname, kernel version, logical CPU count and total
// memory for the report header. Fields that cannot be read are "unknown".
func SystemSummary() (hostname, kernel, cpus, memory string) {
	hostname, kernel, cpus, memory = "unknown", "unknown", "unknown", "unknown"

	if info, err := host.Info(); err == nil {
		hostname = info.Hostname
		kernel = info.KernelVersion
	}
	if n, err := cpu.Counts(true); err == nil && n > 0 {
		cpus = strconv.Itoa(n)
	}
	if vm, err := mem.VirtualMemory(); err == nil {
		memory = types.ToBytes(vm.Total).Humanized()
	}
	return hostname, kernel, cpus, memory
}
