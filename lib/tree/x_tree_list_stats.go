package tree

import (
	"context"
	"fmt"
	"time"

	"github.com/samber/lo"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/metric"

	"github.com/benz9527/xtree/lib/hrtime"
)

const (
	TreeListStatsName = "xtree/treelist"
)

// treeListStats publishes the mutation counters of one list through the
// global OTEL meter provider. Every method tolerates a nil receiver, so
// the hot paths stay free of enablement branches.
type treeListStats struct {
	clock         hrtime.Clock
	insertedCount metric.Int64Counter
	removedCount  metric.Int64Counter
	rotationCount metric.Int64Counter
	mergeCount    metric.Int64Counter
	splitCount    metric.Int64Counter
	bulkDurations metric.Int64Histogram
}

func (stats *treeListStats) onInsert() {
	if stats == nil {
		return
	}
	stats.insertedCount.Add(context.Background(), 1)
}

func (stats *treeListStats) onRemove() {
	if stats == nil {
		return
	}
	stats.removedCount.Add(context.Background(), 1)
}

func (stats *treeListStats) onRotation(n int64) {
	if stats == nil {
		return
	}
	stats.rotationCount.Add(context.Background(), n)
}

// begin samples the monotonic clock for a later bulk record. Disabled
// stats hand back zero, which the matching record call ignores.
func (stats *treeListStats) begin() time.Duration {
	if stats == nil {
		return 0
	}
	return stats.clock.MonotonicElapsed()
}

func (stats *treeListStats) onMerge(start time.Duration) {
	if stats == nil {
		return
	}
	stats.mergeCount.Add(context.Background(), 1)
	stats.recordBulk("merge", start)
}

func (stats *treeListStats) onSplit(start time.Duration) {
	if stats == nil {
		return
	}
	stats.splitCount.Add(context.Background(), 1)
	stats.recordBulk("split", start)
}

func (stats *treeListStats) recordBulk(op string, start time.Duration) {
	as := attribute.NewSet(
		attribute.String("treelist.bulk.op", op),
	)
	stats.bulkDurations.Record(context.Background(),
		(stats.clock.MonotonicElapsed() - start).Microseconds(),
		metric.WithAttributeSet(as),
	)
}

func newTreeListStats(name string) *treeListStats {
	meterName := fmt.Sprintf("%s/%s", TreeListStatsName, name)
	return &treeListStats{
		clock: hrtime.SdkClock,
		insertedCount: lo.Must[metric.Int64Counter](otel.Meter(meterName).
			Int64Counter(
				"treelist.element.inserted.count",
				metric.WithDescription("The number of elements inserted into the tree list."),
			),
		),
		removedCount: lo.Must[metric.Int64Counter](otel.Meter(meterName).
			Int64Counter(
				"treelist.element.removed.count",
				metric.WithDescription("The number of elements removed from the tree list."),
			),
		),
		rotationCount: lo.Must[metric.Int64Counter](otel.Meter(meterName).
			Int64Counter(
				"treelist.rotation.count",
				metric.WithDescription("The number of rebalance rotations."),
			),
		),
		mergeCount: lo.Must[metric.Int64Counter](otel.Meter(meterName).
			Int64Counter(
				"treelist.merge.count",
				metric.WithDescription("The number of whole list merges."),
			),
		),
		splitCount: lo.Must[metric.Int64Counter](otel.Meter(meterName).
			Int64Counter(
				"treelist.split.count",
				metric.WithDescription("The number of whole list splits."),
			),
		),
		bulkDurations: lo.Must[metric.Int64Histogram](otel.Meter(meterName).
			Int64Histogram(
				"treelist.bulk.op.duration",
				metric.WithDescription("The duration of subtree level merge and split operations. In microseconds."),
				metric.WithUnit("us"),
			),
		),
	}
}
