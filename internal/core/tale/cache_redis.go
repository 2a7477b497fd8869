// Copyright (c) 2026 O Quarto Selo. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package tale

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/taibuivan/quartoselo/internal/platform/constants"
)

// RedisCache implements [Cache] with one JSON value per tale.
type RedisCache struct {
	client redis.UniversalClient
	ttl    time.Duration
}

// NewRedisCache creates a cache whose entries expire after ttl.
func NewRedisCache(client redis.UniversalClient, ttl time.Duration) *RedisCache {
	return &RedisCache{client: client, ttl: ttl}
}

func cacheKey(id string) string {
	return constants.RedisPrefixTale + id
}

func (cache *RedisCache) Get(context context.Context, id string) (*Tale, error) {
	payload, err := cache.client.Get(context, cacheKey(id)).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("redis_tale_cache_get_failed: %w", err)
	}

	tale := &Tale{}
	if err := json.Unmarshal(payload, tale); err != nil {
		// Unreadable entries are treated as misses and overwritten on the next Set
		return nil, nil
	}
	return tale, nil
}

func (cache *RedisCache) Set(context context.Context, tale *Tale) error {
	payload, err := json.Marshal(tale)
	if err != nil {
		return fmt.Errorf("redis_tale_cache_encode_failed: %w", err)
	}

	if err := cache.client.Set(context, cacheKey(tale.ID), payload, cache.ttl).Err(); err != nil {
		return fmt.Errorf("redis_tale_cache_set_failed: %w", err)
	}
	return nil
}
