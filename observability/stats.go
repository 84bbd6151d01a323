package observability

import (
	"context"
	"runtime"
	"strings"
	"sync"

	"github.com/samber/lo"
	otelruntime "go.opentelemetry.io/contrib/instrumentation/runtime"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/metric"
	"go.uber.org/automaxprocs/maxprocs"
	"go.uber.org/zap/zapcore"

	"github.com/benz9527/xtree/lib/xlog"
)

var (
	once sync.Once
)

func meterName(name string) string {
	builder := &strings.Builder{}
	builder.WriteString("xtree/app")
	if len(strings.TrimSpace(name)) > 0 {
		builder.Write([]byte("/"))
		builder.WriteString(name)
	} else {
		builder.Write([]byte("/"))
		builder.WriteString("default")
	}
	return builder.String()
}

type appStats struct {
	ctx              context.Context
	shutdownCallback func(ctx context.Context) error
	goroutines       metric.Int64ObservableUpDownCounter
	processes        metric.Int64ObservableUpDownCounter
}

func (stats *appStats) waitForShutdown() {
	if stats == nil || stats.shutdownCallback == nil {
		return
	}
	go func() {
		select {
		case <-stats.ctx.Done():
			_ = stats.shutdownCallback(context.Background())
		}
	}()
}

func InitAppStats(ctx context.Context, name string, logger xlog.XLogger) {
	once.Do(func() {
		// Align GOMAXPROCS with the CPU quota before any counter
		// observes it, otherwise a container reports the host cores.
		if logger != nil {
			_, _ = maxprocs.Set(maxprocs.Logger(func(format string, args ...any) {
				logger.Logf(zapcore.InfoLevel, format, args...)
			}))
		} else {
			_, _ = maxprocs.Set()
		}
		name = meterName(name)
		stats := &appStats{
			ctx: ctx,
			goroutines: lo.Must[metric.Int64ObservableUpDownCounter](otel.Meter(
				name,
				metric.WithInstrumentationVersion(otelruntime.Version()),
			).Int64ObservableUpDownCounter(
				"app.core.goroutines",
				metric.WithDescription(`The application goroutines' info.`),
				metric.WithInt64Callback(func(ctx context.Context, ob metric.Int64Observer) error {
					gNum := runtime.NumGoroutine()
					ob.Observe(int64(gNum))
					return nil
				}),
			),
			),
			processes: lo.Must[metric.Int64ObservableUpDownCounter](otel.Meter(
				name,
				metric.WithInstrumentationVersion(otelruntime.Version()),
			).Int64ObservableUpDownCounter(
				"app.core.processes",
				metric.WithDescription(`The application processes' info.`),
				metric.WithInt64Callback(func(ctx context.Context, ob metric.Int64Observer) error {
					procs := runtime.GOMAXPROCS(0)
					ob.Observe(int64(procs))
					return nil
				}),
			),
			),
		}
		_ = otelruntime.Start()
		stats.waitForShutdown()
	})
}
