// Package redis dials the shared go-redis client backing the carrier
// catalog cache.
package redis

import (
	"context"
	"fmt"

	"github.com/redis/go-redis/v9"

	"polisflow/internal/platform/config"
)

// Client embeds *redis.Client; callers use the go-redis API directly.
type Client struct {
	*redis.Client
}

// New dials redis per the given config and verifies connectivity with a
// ping. An empty URL means redis is not configured; New returns nil.
func New(ctx context.Context, cfg config.RedisConfig) (*Client, error) {
	if cfg.URL == "" {
		return nil, nil
	}

	opts, err := redis.ParseURL(cfg.URL)
	if err != nil {
		return nil, fmt.Errorf("parse redis URL: %w", err)
	}
	opts.PoolSize = cfg.PoolSize
	opts.MinIdleConns = cfg.MinIdleConns
	opts.DialTimeout = cfg.DialTimeout
	opts.ReadTimeout = cfg.ReadTimeout
	opts.WriteTimeout = cfg.WriteTimeout

	client := redis.NewClient(opts)
	if err := client.Ping(ctx).Err(); err != nil {
		client.Close()
		return nil, fmt.Errorf("redis ping failed: %w", err)
	}
	return &Client{Client: client}, nil
}
