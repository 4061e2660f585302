package cache

import (
	"context"
	"time"
)

const priceListImportKey = "import:price_list:last_import_at"

// ImportStatusCache keeps the last successful price-list import timestamp hot
// so the admin status poll does not hit Postgres. The meta table stays the
// source of truth; this is a read-through copy.
type ImportStatusCache struct {
	redis *RedisClient
}

// NewImportStatusCache creates a new ImportStatusCache.
func NewImportStatusCache(redis *RedisClient) *ImportStatusCache {
	return &ImportStatusCache{redis: redis}
}

// SetPriceListImportedAt records the timestamp of the latest import.
func (c *ImportStatusCache) SetPriceListImportedAt(ctx context.Context, at time.Time) error {
	return c.redis.Set(ctx, priceListImportKey, at.UTC().Format(time.RFC3339), 0)
}

// PriceListImportedAt returns the cached timestamp, or nil when not cached.
func (c *ImportStatusCache) PriceListImportedAt(ctx context.Context) (*time.Time, error) {
	raw, err := c.redis.Get(ctx, priceListImportKey)
	if err != nil {
		if IsNil(err) {
			return nil, nil
		}
		return nil, err
	}
	t, err := time.Parse(time.RFC3339, raw)
	if err != nil {
		return nil, err
	}
	return &t, nil
}
