package services

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"

	"eventbroker/internal/config"
	"eventbroker/internal/models"
)

// Browse traffic dwarfs admin writes, so cached reads use a short TTL and
// writes simply drop the affected keys. A cache failure is never surfaced to
// the caller; reads fall through to the database.
const cacheTTL = 60 * time.Second

// EventCache caches public event reads in Redis
type EventCache struct {
	client *redis.Client
}

// NewEventCache connects to Redis and verifies the connection. Returns an
// error when Redis is unreachable; callers treat the cache as optional.
func NewEventCache(cfg config.RedisConfig) (*EventCache, error) {
	client := redis.NewClient(&redis.Options{
		Addr:     cfg.Addr,
		Password: cfg.Password,
		DB:       cfg.DB,
	})

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := client.Ping(ctx).Err(); err != nil {
		return nil, fmt.Errorf("failed to connect to redis: %w", err)
	}

	return &EventCache{client: client}, nil
}

func eventKey(id uuid.UUID) string { return "event:" + id.String() }
func listKey(limit int) string { return fmt.Sprintf("events:upcoming:%d", limit) }

// GetEvent returns a cached event, if present.
func (c *EventCache) GetEvent(ctx context.Context, id uuid.UUID) (*models.Event, bool) {
	data, err := c.client.Get(ctx, eventKey(id)).Bytes()
	if err != nil {
		if err != redis.Nil {
			log.Printf("event cache get failed: %v", err)
		}
		return nil, false
	}

	var event models.Event
	if err := json.Unmarshal(data, &event); err != nil {
		return nil, false
	}
	return &event, true
}

// SetEvent caches a single event.
func (c *EventCache) SetEvent(ctx context.Context, event *models.Event) {
	data, err := json.Marshal(event)
	if err != nil {
		return
	}
	if err := c.client.Set(ctx, eventKey(event.ID), data, cacheTTL).Err(); err != nil {
		log.Printf("event cache set failed: %v", err)
	}
}

// GetList returns a cached upcoming-events listing, if present.
func (c *EventCache) GetList(ctx context.Context, limit int) ([]*models.Event, bool) {
	data, err := c.client.Get(ctx, listKey(limit)).Bytes()
	if err != nil {
		if err != redis.Nil {
			log.Printf("event cache get failed: %v", err)
		}
		return nil, false
	}

	var events []*models.Event
	if err := json.Unmarshal(data, &events); err != nil {
		return nil, false
	}
	return events, true
}

// SetList caches an upcoming-events listing.
func (c *EventCache) SetList(ctx context.Context, limit int, events []*models.Event) {
	data, err := json.Marshal(events)
	if err != nil {
		return
	}
	if err := c.client.Set(ctx, listKey(limit), data, cacheTTL).Err(); err != nil {
		log.Printf("event cache set failed: %v", err)
	}
}

// Invalidate drops the cached event and all listing keys after a write.
func (c *EventCache) Invalidate(ctx context.Context, id uuid.UUID) {
	if err := c.client.Del(ctx, eventKey(id)).Err(); err != nil {
		log.Printf("event cache invalidate failed: %v", err)
	}

	iter := c.client.Scan(ctx, 0, "events:upcoming:*", 100).Iterator()
	for iter.Next(ctx) {
		if err := c.client.Del(ctx, iter.Val()).Err(); err != nil {
			log.Printf("event cache invalidate failed: %v", err)
		}
	}
	if err := iter.Err(); err != nil {
		log.Printf("event cache scan failed: %v", err)
	}
}

// Close releases the Redis connection.
func (c *EventCache) Close() error {
	return c.client.Close()
}
