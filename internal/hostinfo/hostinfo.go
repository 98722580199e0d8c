// Package hostinfo describes the machine a benchmark ran on.
package hostinfo

import (
	"context"
	"runtime"

	"github.com/shirou/gopsutil/v3/cpu"
	"github.com/shirou/gopsutil/v3/mem"
)

// Info is attached to benchmark reports so results from different machines are not mixed up.
type Info struct {
	OS         string `json:"os" yaml:"os"`
	Arch       string `json:"arch" yaml:"arch"`
	GoVersion  string `json:"go_version" yaml:"go_version"`
	CPUModel   string `json:"cpu_model,omitempty" yaml:"cpu_model,omitempty"`
	LogicalCPU int    `json:"logical_cpus" yaml:"logical_cpus"`
	MemoryMiB  uint64 `json:"memory_mib,omitempty" yaml:"memory_mib,omitempty"`
}

// Collect gathers host information. Fields gopsutil cannot determine stay empty;
// the runtime-derived fields are always set.
func Collect(ctx context.Context) Info {
	info := Info{
		OS:         runtime.GOOS,
		Arch:       runtime.GOARCH,
		GoVersion:  runtime.Version(),
		LogicalCPU: runtime.NumCPU(),
	}
	if cpus, err := cpu.InfoWithContext(ctx); err == nil && len(cpus) > 0 {
		info.CPUModel = cpus[0].ModelName
	}
	if vm, err := mem.VirtualMemoryWithContext(ctx); err == nil {
		info.MemoryMiB = vm.Total >> 20
	}
	return info
}
