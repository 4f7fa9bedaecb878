// Package cache provides an optional Redis cache for recent product
// listings. Every mutation of an owner's inventory invalidates that owner's
// entry; the service degrades to the store when the cache is unavailable.
package cache

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/naresh-2026/warehouseProducts/internal/models"
)

const (
	recentKeyPrefix = "recent:"

	// RecentTTL bounds staleness between mutations from another process.
	RecentTTL = 30 * time.Second
)

// ErrCacheMiss is returned when no entry exists for the requested owner.
var ErrCacheMiss = errors.New("cache miss")

// Cache wraps a Redis client for recent-listing lookups.
type Cache struct {
	client *redis.Client
}

// New connects to Redis and verifies the connection.
func New(ctx context.Context, addr string) (*Cache, error) {
	client := redis.NewClient(&redis.Options{Addr: addr})
	if err := client.Ping(ctx).Err(); err != nil {
		return nil, fmt.Errorf("redis ping failed: %w", err)
	}
	return &Cache{client: client}, nil
}

// Close releases the underlying connection pool.
func (c *Cache) Close() error {
	return c.client.Close()
}

// GetRecent retrieves a cached recent listing for an owner.
// Returns ErrCacheMiss if not present.
func (c *Cache) GetRecent(ctx context.Context, owner string) ([]models.Product, error) {
	raw, err := c.client.Get(ctx, recentKeyPrefix+owner).Result()
	if err == redis.Nil {
		return nil, ErrCacheMiss
	}
	if err != nil {
		return nil, fmt.Errorf("redis get failed: %w", err)
	}

	var products []models.Product
	if err := json.Unmarshal([]byte(raw), &products); err != nil {
		// A corrupt entry behaves like a miss; the next set overwrites it.
		return nil, ErrCacheMiss
	}
	return products, nil
}

// SetRecent stores a recent listing for an owner.
func (c *Cache) SetRecent(ctx context.Context, owner string, products []models.Product) error {
	raw, err := json.Marshal(products)
	if err != nil {
		return fmt.Errorf("failed to encode listing: %w", err)
	}
	if err := c.client.Set(ctx, recentKeyPrefix+owner, raw, RecentTTL).Err(); err != nil {
		return fmt.Errorf("redis set failed: %w", err)
	}
	return nil
}

// InvalidateOwner drops the cached listing for an owner.
func (c *Cache) InvalidateOwner(ctx context.Context, owner string) error {
	if err := c.client.Del(ctx, recentKeyPrefix+owner).Err(); err != nil {
		return fmt.Errorf("redis del failed: %w", err)
	}
	return nil
}
