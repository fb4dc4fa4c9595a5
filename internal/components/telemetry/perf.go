package telemetry

import (
	"context"
	"runtime"

	"github.com/shirou/gopsutil/v4/cpu"
	"go.opentelemetry.io/otel"
)

type PerfSample struct {
	CPUPercent  float64
	AllocatedMB int64
	LiveObjects int64
	Goroutines  int64
}

// RecordPerfStats takes one sample of process resource usage and records it on
// the global meter. A run is short lived, so there is no background ticker.
func RecordPerfStats(ctx context.Context, tel API) PerfSample {
	meter := otel.Meter("hftrending/perf_stats")

	var memStats runtime.MemStats
	runtime.ReadMemStats(&memStats)

	sample := PerfSample{
		AllocatedMB: int64(memStats.Alloc / 1_000_000),
		LiveObjects: int64(memStats.Mallocs) - int64(memStats.Frees),
		Goroutines:  int64(runtime.NumGoroutine()),
	}

	// an interval of 0 compares against the last call, which is process start
	usage, err := cpu.PercentWithContext(ctx, 0, false)
	if err == nil && len(usage) > 0 {
		sample.CPUPercent = usage[0]
	} else if err != nil {
		tel.ReportWarning("perf-stats.cpu", err)
	}

	cpuGauge, err := meter.Float64Gauge("cpu_usage")
	if err == nil {
		cpuGauge.Record(ctx, sample.CPUPercent)
	}
	memoryGauge, err := meter.Int64Gauge("allocated_mb")
	if err == nil {
		memoryGauge.Record(ctx, sample.AllocatedMB)
	}
	liveObjectsGauge, err := meter.Int64Gauge("live_objects")
	if err == nil {
		liveObjectsGauge.Record(ctx, sample.LiveObjects)
	}
	goroutineGauge, err := meter.Int64Gauge("goroutine_count")
	if err == nil {
		goroutineGauge.Record(ctx, sample.Goroutines)
	}

	tel.ReportDebug("perf stats", sample.CPUPercent, sample.AllocatedMB, sample.Goroutines)
	return sample
}
