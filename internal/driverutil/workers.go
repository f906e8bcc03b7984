// Package driverutil holds small helpers shared by the search driver and
// its transports — currently just the worker-count heuristic (spec
// section 4.F.1), which consults gopsutil's CPU count the same way
// cmd/monitor reads live core counts for its dashboards.
package driverutil

import (
	"runtime"

	"github.com/shirou/gopsutil/v3/cpu"

	"seedsearch/internal/config"
)

// WorkerCount picks a worker count for a seed range of the given size,
// per spec section 4.F.1: W=1 under 10^4, W=min(2,ncpu/2) under 10^5,
// W=min(4,ncpu/2) under 10^6, otherwise W=min(8,ncpu). Always at least 1.
// An operator override from SEEDSEARCH_WORKERS takes precedence over the
// heuristic entirely.
func WorkerCount(rangeSize int64) int {
	if override := config.GetWorkerOverride(); override > 0 {
		return override
	}

	ncpu := detectCPUCount()

	var w int
	switch {
	case rangeSize < 1e4:
		w = 1
	case rangeSize < 1e5:
		w = min(2, ncpu/2)
	case rangeSize < 1e6:
		w = min(4, ncpu/2)
	default:
		w = min(8, ncpu)
	}

	if w < 1 {
		w = 1
	}
	return w
}

// detectCPUCount prefers gopsutil's logical-CPU count (matching
// cmd/monitor's live system view) and falls back to runtime.NumCPU when
// the platform can't report it.
func detectCPUCount() int {
	if n, err := cpu.Counts(true); err == nil && n > 0 {
		return n
	}
	return runtime.NumCPU()
}
