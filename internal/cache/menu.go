package cache

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"eats-backend/internal/domain"
)

// MenuCache keeps restaurant menus in Redis for the order-validation hot
// path. It is strictly best effort: a cache fault degrades to a database
// read, never to an error.
type MenuCache struct {
	rdb *redis.Client
	ttl time.Duration
}

// NewMenuCache connects to Redis. An empty addr disables caching and
// returns nil; all methods are nil-safe.
func NewMenuCache(addr string, ttl time.Duration) *MenuCache {
	if addr == "" {
		return nil
	}
	if ttl <= 0 {
		ttl = 30 * time.Second
	}
	return &MenuCache{
		rdb: redis.NewClient(&redis.Options{Addr: addr}),
		ttl: ttl,
	}
}

func menuKey(restaurantID int64) string {
	return fmt.Sprintf("menu:%d", restaurantID)
}

// Get returns the cached menu, or (nil, false) on a miss.
func (c *MenuCache) Get(ctx context.Context, restaurantID int64) ([]domain.Dish, bool) {
	if c == nil {
		return nil, false
	}
	raw, err := c.rdb.Get(ctx, menuKey(restaurantID)).Bytes()
	if err != nil {
		return nil, false
	}
	var dishes []domain.Dish
	if err := json.Unmarshal(raw, &dishes); err != nil {
		return nil, false
	}
	return dishes, true
}

// Set stores the menu under a TTL.
func (c *MenuCache) Set(ctx context.Context, restaurantID int64, dishes []domain.Dish) error {
	if c == nil {
		return nil
	}
	raw, err := json.Marshal(dishes)
	if err != nil {
		return fmt.Errorf("menu cache: encode: %w", err)
	}
	if err := c.rdb.Set(ctx, menuKey(restaurantID), raw, c.ttl).Err(); err != nil {
		return fmt.Errorf("menu cache: set: %w", err)
	}
	return nil
}

// Invalidate drops the cached menu after a dish mutation.
func (c *MenuCache) Invalidate(ctx context.Context, restaurantID int64) error {
	if c == nil {
		return nil
	}
	if err := c.rdb.Del(ctx, menuKey(restaurantID)).Err(); err != nil && !errors.Is(err, redis.Nil) {
		return fmt.Errorf("menu cache: invalidate: %w", err)
	}
	return nil
}

// Close releases the Redis connection.
func (c *MenuCache) Close() error {
	if c == nil {
		return nil
	}
	return c.rdb.Close()
}
