package queue

import (
	"context"
	"fmt"
	"log/slog"
	"strconv"

	"github.com/redis/go-redis/v9"
)

type EventType string

const (
	EventOrganizationCreated EventType = "organization.created"
	EventOrganizationUpdated EventType = "organization.updated"
	EventOrganizationDeleted EventType = "organization.deleted"
	EventActivityCreated     EventType = "activity.created"
)

// CatalogEvent announces a committed change to the catalog.
type CatalogEvent struct {
	Type     EventType
	EntityID int64
	Name     string
	TraceID  *string
}

type Producer interface {
	Publish(ctx context.Context, event CatalogEvent) error
	Close() error
}

type redisProducer struct {
	client *redis.Client
	stream string
	logger *slog.Logger
}

func NewRedisProducer(client *redis.Client, stream string, logger *slog.Logger) Producer {
	if logger == nil {
		logger = slog.Default()
	}
	return &redisProducer{
		client: client,
		stream: stream,
		logger: logger,
	}
}

func (p *redisProducer) Publish(ctx context.Context, event CatalogEvent) error {
	fields := map[string]any{
		"event_type": string(event.Type),
		"entity_id":  strconv.FormatInt(event.EntityID, 10),
	}
	if event.Name != "" {
		fields["name"] = event.Name
	}
	if event.TraceID != nil && *event.TraceID != "" {
		fields["trace_id"] = *event.TraceID
	}

	if err := p.client.XAdd(ctx, &redis.XAddArgs{
		Stream: p.stream,
		Values: fields,
	}).Err(); err != nil {
		return fmt.Errorf("publish catalog event: %w", err)
	}

	p.logger.DebugContext(ctx, "published catalog event", "event_type", event.Type, "entity_id", event.EntityID)
	return nil
}

func (p *redisProducer) Close() error {
	return p.client.Close()
}

// NewNoopProducer returns a Producer that drops every event. Used when no stream is configured.
func NewNoopProducer() Producer {
	return noopProducer{}
}

type noopProducer struct{}

func (noopProducer) Publish(context.Context, CatalogEvent) error { return nil }

func (noopProducer) Close() error { return nil }
