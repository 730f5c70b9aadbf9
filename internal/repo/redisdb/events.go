package redisdb

import (
	"context"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

// EventsRepo remembers payment events that were already applied, so a
// redelivered webhook becomes a no-op instead of a second ownership write.
type EventsRepo struct {
	client *redis.Client
	ttl    time.Duration
}

func NewEventsRepo(client *redis.Client, ttl time.Duration) *EventsRepo {
	return &EventsRepo{client: client, ttl: ttl}
}

// MarkProcessed returns true when the event id was seen for the first time.
func (r *EventsRepo) MarkProcessed(ctx context.Context, eventId string) (bool, error) {
	key := fmt.Sprintf("payment_event:%s", eventId)

	first, err := r.client.SetNX(ctx, key, 1, r.ttl).Result()
	if err != nil {
		return false, fmt.Errorf("failed to mark payment event in redis: %w", err)
	}

	return first, nil
}

// ClearProcessed forgets an event id so the processor's redelivery can be
// applied after a failed attempt.
func (r *EventsRepo) ClearProcessed(ctx context.Context, eventId string) error {
	key := fmt.Sprintf("payment_event:%s", eventId)

	if err := r.client.Del(ctx, key).Err(); err != nil {
		return fmt.Errorf("failed to clear payment event in redis: %w", err)
	}

	return nil
}
