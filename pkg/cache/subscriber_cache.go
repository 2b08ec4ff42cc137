package cache

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
)

const (
	// SubscriberCacheTTL is the time-to-live for cached subscribers.
	SubscriberCacheTTL = 24 * time.Hour

	subscriberCacheKeyPrefix = "subscriber"
)

// CachedSubscriber is the read model stored in Redis as a hash.
type CachedSubscriber struct {
	ID           uuid.UUID `json:"id"`
	Email        string    `json:"email"`
	Name         string    `json:"name"`
	Status       string    `json:"status"`
	SubscribedAt time.Time `json:"subscribed_at"`
}

// SubscriberCache reads and writes subscriber read-model entries.
// Key format: "subscriber:{id}"
type SubscriberCache struct {
	client *RedisClient
}

// NewSubscriberCache creates a SubscriberCache backed by the given RedisClient.
// A nil client yields a nil cache; callers treat nil as "caching disabled".
func NewSubscriberCache(r *RedisClient) *SubscriberCache {
	if r == nil {
		return nil
	}
	return &SubscriberCache{client: r}
}

// Get retrieves a cached subscriber.
// Returns redis.Nil when the key does not exist or has expired.
func (c *SubscriberCache) Get(ctx context.Context, id uuid.UUID) (*CachedSubscriber, error) {
	vals, err := c.client.Client().HGetAll(ctx, SubscriberKey(id)).Result()
	if err != nil {
		return nil, fmt.Errorf("cache get: %w", err)
	}
	if len(vals) == 0 {
		return nil, redis.Nil
	}
	return decodeSubscriber(vals)
}

// Set writes the subscriber hash and its TTL in one pipeline.
func (c *SubscriberCache) Set(ctx context.Context, s *CachedSubscriber) error {
	key := SubscriberKey(s.ID)
	pipe := c.client.Client().Pipeline()
	pipe.HSet(ctx, key, encodeSubscriber(s))
	pipe.Expire(ctx, key, SubscriberCacheTTL)
	if _, err := pipe.Exec(ctx); err != nil {
		return fmt.Errorf("cache set: %w", err)
	}
	return nil
}

// Delete removes a cached subscriber.
func (c *SubscriberCache) Delete(ctx context.Context, id uuid.UUID) error {
	if err := c.client.Client().Del(ctx, SubscriberKey(id)).Err(); err != nil {
		return fmt.Errorf("cache delete: %w", err)
	}
	return nil
}

// SubscriberKey builds the Redis key for a subscriber.
func SubscriberKey(id uuid.UUID) string {
	return subscriberCacheKeyPrefix + ":" + id.String()
}

func encodeSubscriber(s *CachedSubscriber) map[string]any {
	return map[string]any{
		"id":            s.ID.String(),
		"email":         s.Email,
		"name":          s.Name,
		"status":        s.Status,
		"subscribed_at": s.SubscribedAt.UTC().Format(time.RFC3339Nano),
	}
}

func decodeSubscriber(vals map[string]string) (*CachedSubscriber, error) {
	id, err := uuid.Parse(vals["id"])
	if err != nil {
		return nil, fmt.Errorf("cache parse id: %w", err)
	}
	at, err := time.Parse(time.RFC3339Nano, vals["subscribed_at"])
	if err != nil {
		return nil, fmt.Errorf("cache parse subscribed_at: %w", err)
	}
	return &CachedSubscriber{
		ID:           id,
		Email:        vals["email"],
		Name:         vals["name"],
		Status:       vals["status"],
		SubscribedAt: at,
	}, nil
}
