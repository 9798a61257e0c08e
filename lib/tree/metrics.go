package tree

import (
	"context"
	"sync"

	"github.com/samber/lo"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/metric"
)

// Op counters go through the global otel meter, a no-op unless the
// host application installed a meter provider (see the observability
// package for exporter setup).

var (
	countersOnce    sync.Once
	insertCounter   metric.Int64Counter
	deleteCounter   metric.Int64Counter
	rotationCounter metric.Int64Counter
	fixupCounter    metric.Int64Counter
)

func loadCounters() {
	countersOnce.Do(func() {
		meter := otel.Meter("xtree/lib/tree")
		insertCounter = lo.Must(meter.Int64Counter(
			"rbtree.inserts",
			metric.WithDescription(`Structural insertions accepted by the tree.`),
		))
		deleteCounter = lo.Must(meter.Int64Counter(
			"rbtree.deletes",
			metric.WithDescription(`Nodes physically removed from the tree.`),
		))
		rotationCounter = lo.Must(meter.Int64Counter(
			"rbtree.rotations",
			metric.WithDescription(`Single rotations performed by fixups.`),
		))
		fixupCounter = lo.Must(meter.Int64Counter(
			"rbtree.fixups",
			metric.WithDescription(`Pending nodes consumed by rebalance steps.`),
		))
	})
}

func insertCounterAdd(n int64) {
	loadCounters()
	insertCounter.Add(context.Background(), n)
}

func deleteCounterAdd(n int64) {
	loadCounters()
	deleteCounter.Add(context.Background(), n)
}

func rotationCounterAdd(n int64) {
	loadCounters()
	rotationCounter.Add(context.Background(), n)
}

func fixupCounterAdd(n int64) {
	loadCounters()
	fixupCounter.Add(context.Background(), n)
}
