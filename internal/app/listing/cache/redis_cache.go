package cache

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strconv"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/murkotick/listing-pricing-service/internal/app/listing/domain"
	"github.com/murkotick/listing-pricing-service/internal/app/listing/dto"
)

const keyPrefix = "listing"

// RedisListingCache stores listing projections as JSON in Redis.
//
// Keys embed the pricing window the listing was computed in, so an entry is
// never served for an instant on the other side of a promotion boundary. The
// TTL only bounds how long catalog edits take to show up.
type RedisListingCache struct {
	client *redis.Client
	ttl    time.Duration
}

// NewRedisListingCache constructs the cache. A nil client or non-positive ttl
// yields a cache that never hits and never stores.
func NewRedisListingCache(client *redis.Client, ttl time.Duration) *RedisListingCache {
	return &RedisListingCache{client: client, ttl: ttl}
}

func (c *RedisListingCache) enabled() bool {
	return c != nil && c.client != nil && c.ttl > 0
}

// Key returns the cache key for productID priced within window.
func (c *RedisListingCache) Key(productID string, window domain.PricingWindow) string {
	return fmt.Sprintf("%s:%s:%s:%s", keyPrefix, productID, bound(window.From), bound(window.Until))
}

func bound(t time.Time) string {
	if t.IsZero() {
		return "-"
	}
	return strconv.FormatInt(t.UnixNano(), 10)
}

// Get returns the cached listing, reporting whether the key existed.
func (c *RedisListingCache) Get(ctx context.Context, productID string, window domain.PricingWindow) (*dto.ProductListingDTO, bool, error) {
	if !c.enabled() || productID == "" {
		return nil, false, nil
	}
	data, err := c.client.Get(ctx, c.Key(productID, window)).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, false, nil
		}
		return nil, false, err
	}
	var out dto.ProductListingDTO
	if err := json.Unmarshal(data, &out); err != nil {
		return nil, false, fmt.Errorf("decode cached listing %s: %w", productID, err)
	}
	return &out, true, nil
}

// Set serialises listing as JSON and stores it with the configured TTL.
func (c *RedisListingCache) Set(ctx context.Context, productID string, window domain.PricingWindow, listing *dto.ProductListingDTO) error {
	if !c.enabled() || productID == "" || listing == nil {
		return nil
	}
	data, err := json.Marshal(listing)
	if err != nil {
		return err
	}
	return c.client.Set(ctx, c.Key(productID, window), data, c.ttl).Err()
}
