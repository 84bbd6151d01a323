package observability

// References:
// https://github.com/DataDog/dd-trace-go/blob/main/profiler/profiler.go#L118

import (
	"context"
	"os"
	"sync"

	"github.com/samber/lo"
	"github.com/shirou/gopsutil/v3/process"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/metric"
)

type ProfileType int8

const (
	CPUProfile ProfileType = iota
	MemProfile
	ThreadProfile
	FDProfile
)

var profilerOnce sync.Once

type processProfiler struct {
	proc    *process.Process
	cpu     metric.Float64ObservableGauge
	rss     metric.Int64ObservableGauge
	threads metric.Int64ObservableGauge
	fds     metric.Int64ObservableGauge
}

// InitProcessProfiler registers observable gauges for the current
// process sampled from the OS on each metrics collection. Sampling
// errors skip the observation instead of failing the reader, a
// platform without /proc simply reports nothing.
func InitProcessProfiler(name string) {
	profilerOnce.Do(func() {
		proc, err := process.NewProcess(int32(os.Getpid()))
		if err != nil {
			return
		}
		meter := otel.Meter(meterName(name))
		profiler := &processProfiler{proc: proc}
		profiler.cpu = lo.Must[metric.Float64ObservableGauge](meter.Float64ObservableGauge(
			"app.process.cpu.percent",
			metric.WithDescription(`The process CPU usage percent.`),
			metric.WithFloat64Callback(func(ctx context.Context, ob metric.Float64Observer) error {
				if percent, err := profiler.proc.CPUPercent(); err == nil {
					ob.Observe(percent)
				}
				return nil
			}),
		))
		profiler.rss = lo.Must[metric.Int64ObservableGauge](meter.Int64ObservableGauge(
			"app.process.memory.rss",
			metric.WithUnit("By"),
			metric.WithDescription(`The process resident set size in bytes.`),
			metric.WithInt64Callback(func(ctx context.Context, ob metric.Int64Observer) error {
				if memInfo, err := profiler.proc.MemoryInfo(); err == nil {
					ob.Observe(int64(memInfo.RSS))
				}
				return nil
			}),
		))
		profiler.threads = lo.Must[metric.Int64ObservableGauge](meter.Int64ObservableGauge(
			"app.process.threads",
			metric.WithDescription(`The process OS threads' info.`),
			metric.WithInt64Callback(func(ctx context.Context, ob metric.Int64Observer) error {
				if threads, err := profiler.proc.NumThreads(); err == nil {
					ob.Observe(int64(threads))
				}
				return nil
			}),
		))
		profiler.fds = lo.Must[metric.Int64ObservableGauge](meter.Int64ObservableGauge(
			"app.process.fds",
			metric.WithDescription(`The process open file descriptors' info.`),
			metric.WithInt64Callback(func(ctx context.Context, ob metric.Int64Observer) error {
				if fds, err := profiler.proc.NumFDs(); err == nil {
					ob.Observe(int64(fds))
				}
				return nil
			}),
		))
	})
}
