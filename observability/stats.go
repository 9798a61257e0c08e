package observability

import (
	"context"
	"strings"
	"sync"

	"github.com/samber/lo"
	otelruntime "go.opentelemetry.io/contrib/instrumentation/runtime"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/metric"
)

var (
	once sync.Once
)

type engineStats struct {
	ctx     context.Context
	backlog metric.Int64ObservableUpDownCounter
}

// InitEngineStats registers an observable gauge over the engine's
// pending-rebalance backlog and starts the Go runtime instrumentation.
// backlog is typically RBTree.PendingLen of the observed tree; it must
// be safe to call from the metrics reader's goroutine, so callers that
// mutate the tree concurrently have to serialize around it.
func InitEngineStats(ctx context.Context, name string, backlog func() int64) {
	once.Do(func() {
		builder := &strings.Builder{}
		builder.WriteString("xtree/engine")
		if len(strings.TrimSpace(name)) > 0 {
			builder.Write([]byte("/"))
			builder.WriteString(name)
		} else {
			builder.Write([]byte("/"))
			builder.WriteString("default")
		}
		name = builder.String()
		_ = &engineStats{
			ctx: ctx,
			backlog: lo.Must[metric.Int64ObservableUpDownCounter](otel.Meter(
				name,
				metric.WithInstrumentationVersion(otelruntime.Version()),
			).Int64ObservableUpDownCounter(
				"engine.rebalance.backlog",
				metric.WithDescription(`Nodes inserted structurally but not yet fixed up.`),
				metric.WithInt64Callback(func(ctx context.Context, ob metric.Int64Observer) error {
					ob.Observe(backlog())
					return nil
				}),
			),
			),
		}
		_ = otelruntime.Start()
	})
}
