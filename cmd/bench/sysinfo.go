package main

import (
	"runtime"

	"github.com/shirou/gopsutil/v3/cpu"
	"github.com/shirou/gopsutil/v3/mem"

	"github.com/makma3d/containers/internal/logging"
	"github.com/makma3d/containers/internal/testbench"
)

// gatherSystemInfo collects basic CPU and memory details.
func gatherSystemInfo() testbench.SystemInfo {
	info := testbench.SystemInfo{
		NumCPU: runtime.NumCPU(),
		GOARCH: runtime.GOARCH,
	}
	if infos, err := cpu.Info(); err == nil && len(infos) > 0 {
		info.CPUModel = infos[0].ModelName
		info.CPUSpeedMHz = infos[0].Mhz
	} else if err != nil {
		logging.Debug("cpu info: %v", err)
	}
	if vm, err := mem.VirtualMemory(); err == nil {
		info.TotalMemory = vm.Total
	} else {
		logging.Debug("memory info: %v", err)
	}
	return info
}
