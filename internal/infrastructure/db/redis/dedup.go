package redis

import (
	"context"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

// Webhook deliveries are retried by the payment processor for days; keep
// seen event IDs well past that window.
const dedupTTL = 72 * time.Hour

// EventDedup provides webhook replay checks backed by Redis.
// Key format: webhook:event:<event_id>
type EventDedup struct {
	client *redis.Client
}

// NewEventDedup creates an EventDedup wrapping the given Redis client.
func NewEventDedup(client *redis.Client) *EventDedup {
	return &EventDedup{client: client}
}

// IsDuplicate reports whether this event id has already been processed.
func (d *EventDedup) IsDuplicate(ctx context.Context, eventID string) (bool, error) {
	n, err := d.client.Exists(ctx, d.key(eventID)).Result()
	if err != nil {
		return false, fmt.Errorf("dedup check: %w", err)
	}
	return n > 0, nil
}

// Mark records that this event has been processed (expires after dedupTTL).
func (d *EventDedup) Mark(ctx context.Context, eventID string) error {
	return d.client.Set(ctx, d.key(eventID), "1", dedupTTL).Err()
}

func (d *EventDedup) key(eventID string) string {
	return "webhook:event:" + eventID
}
