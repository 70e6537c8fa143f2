package metrics

import (
	"runtime"
	"time"
)

// RegisterRuntime adds Go runtime gauges and an uptime gauge measured from
// start to r.
func RegisterRuntime(r *Registry, start time.Time) {
	r.NewGaugeFunc("go_goroutines", "Number of goroutines that currently exist", func() float64 {
		return float64(runtime.NumGoroutine())
	})
	r.NewGaugeFunc("go_memstats_heap_alloc_bytes", "Number of heap bytes allocated and still in use", func() float64 {
		return float64(readMemStats().HeapAlloc)
	})
	r.NewGaugeFunc("go_gc_cycles_total", "Number of completed GC cycles", func() float64 {
		return float64(readMemStats().NumGC)
	})
	r.NewGaugeFunc("influxmock_uptime_seconds", "Seconds since the process started", func() float64 {
		return time.Since(start).Seconds()
	})
}

func readMemStats() runtime.MemStats {
	var m runtime.MemStats
	runtime.ReadMemStats(&m)
	return m
}
