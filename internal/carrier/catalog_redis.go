package carrier

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	"github.com/redis/go-redis/v9"
)

const carrierKeyPrefix = "carrier:id:"

// CachedCatalog decorates a Catalog with a Redis cache. Cache problems are
// never fatal: a miss or a Redis error falls through to the inner catalog.
type CachedCatalog struct {
	inner  Catalog
	client *redis.Client
	ttl    time.Duration
}

func NewCachedCatalog(inner Catalog, client *redis.Client, ttl time.Duration) *CachedCatalog {
	return &CachedCatalog{inner: inner, client: client, ttl: ttl}
}

func (c *CachedCatalog) Lookup(ctx context.Context, id string) (Carrier, error) {
	key := carrierKeyPrefix + id
	raw, err := c.client.Get(ctx, key).Result()
	if err == nil {
		var carrier Carrier
		if jsonErr := json.Unmarshal([]byte(raw), &carrier); jsonErr == nil {
			return carrier, nil
		}
		// A corrupt entry falls through and gets rewritten below.
	} else if !errors.Is(err, redis.Nil) {
		// Redis being down must not make the catalog unavailable.
		return c.inner.Lookup(ctx, id)
	}

	carrier, err := c.inner.Lookup(ctx, id)
	if err != nil {
		return Carrier{}, err
	}
	if payload, jsonErr := json.Marshal(carrier); jsonErr == nil {
		_ = c.client.Set(ctx, key, payload, c.ttl).Err()
	}
	return carrier, nil
}

func (c *CachedCatalog) List(ctx context.Context) ([]Carrier, error) {
	// The full list is small and rarely requested; serve it from the inner
	// catalog directly.
	return c.inner.List(ctx)
}

var _ Catalog = (*CachedCatalog)(nil)
var _ Catalog = (*MemoryCatalog)(nil)
