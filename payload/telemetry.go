package payload

import (
	"context"
	"log/slog"

	otelattr "go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/metric"
	metricnoop "go.opentelemetry.io/otel/metric/noop"
)

// Span names and attribute keys recorded by the builder.
const (
	SpanBuild     = "writepayload.build"
	SpanReconcile = "writepayload.reconcile"

	AttrResourceType  = "writepayload.resource.type"
	AttrScope         = "writepayload.scope"
	AttrIncludedCount = "writepayload.included.count"
	AttrPrunedCount   = "writepayload.pruned.count"
)

type instruments struct {
	documents metric.Int64Counter
	included  metric.Int64Counter
	pruned    metric.Int64Counter
}

func newInstruments(meter metric.Meter, logger *slog.Logger) *instruments {
	fallback := metricnoop.NewMeterProvider().Meter(instrumentationName)

	counter := func(name, desc string) metric.Int64Counter {
		c, err := meter.Int64Counter(name, metric.WithDescription(desc))
		if err != nil {
			logger.Warn("failed to create counter, using no-op", "name", name, "error", err)
			c, _ = fallback.Int64Counter(name)
		}
		return c
	}

	return &instruments{
		documents: counter("writepayload.documents", "Write documents built"),
		included:  counter("writepayload.included", "Resources placed in included sets"),
		pruned:    counter("writepayload.pruned", "Related records pruned after a confirmed write"),
	}
}

func (i *instruments) recordBuild(ctx context.Context, resourceType string, included int) {
	attrs := metric.WithAttributes(otelattr.String(AttrResourceType, resourceType))
	i.documents.Add(ctx, 1, attrs)
	i.included.Add(ctx, int64(included), attrs)
}

func (i *instruments) recordPrune(ctx context.Context, resourceType string, pruned int) {
	i.pruned.Add(ctx, int64(pruned), metric.WithAttributes(otelattr.String(AttrResourceType, resourceType)))
}
