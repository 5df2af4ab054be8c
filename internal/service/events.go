package service

import (
	"context"
	"log/slog"

	"go.opentelemetry.io/otel/trace"

	"orgcatalog.app/catalog/internal/observability"
	"orgcatalog.app/catalog/internal/queue"
)

// publish announces a committed change. Delivery is best effort: the write has
// already committed, so a failure is logged and counted but not returned.
func publish(ctx context.Context, producer queue.Producer, event queue.CatalogEvent) {
	if producer == nil {
		return
	}
	if sc := trace.SpanContextFromContext(ctx); sc.IsValid() {
		traceID := sc.TraceID().String()
		event.TraceID = &traceID
	}
	if err := producer.Publish(ctx, event); err != nil {
		observability.RecordEventPublishFailure()
		slog.WarnContext(ctx, "failed to publish catalog event",
			"error", err,
			"event_type", event.Type,
			"entity_id", event.EntityID,
		)
	}
}
