// Copyright (c) 2026 WH64.DEV. All rights reserved.
// Author: dev@wh64.dev

package hanriver

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/wh64dev/wh64-api/internal/platform/constants"
)

// Fetcher retrieves a fresh reading from the upstream gateway.
// [*Client] is the production implementation.
type Fetcher interface {
	Fetch(context context.Context, area int) (*Reading, error)
}

// Cache stores serialized readings with a TTL. The production implementation
// wraps go-redis; a cache miss is reported as [ErrCacheMiss].
type Cache interface {
	Get(context context.Context, key string) (string, error)
	Set(context context.Context, key, value string, ttl time.Duration) error
}

// ErrCacheMiss signals that a key has no cached value.
var ErrCacheMiss = errors.New("hanriver: cache miss")

// RedisCache implements [Cache] on a go-redis client.
type RedisCache struct {
	client *redis.Client
}

// NewRedisCache wraps a connected go-redis client.
func NewRedisCache(client *redis.Client) *RedisCache {
	return &RedisCache{client: client}
}

func (cache *RedisCache) Get(context context.Context, key string) (string, error) {
	value, err := cache.client.Get(context, key).Result()
	if errors.Is(err, redis.Nil) {
		return "", ErrCacheMiss
	}

	return value, err
}

func (cache *RedisCache) Set(context context.Context, key, value string, ttl time.Duration) error {
	return cache.client.Set(context, key, value, ttl).Err()
}

// Service serves readings through a short-lived Redis cache.
type Service struct {
	fetcher Fetcher
	cache   Cache
	logger  *slog.Logger
}

// NewService constructs a [Service] with its dependencies.
func NewService(fetcher Fetcher, cache Cache, logger *slog.Logger) *Service {
	return &Service{fetcher: fetcher, cache: cache, logger: logger}
}

/*
Reading returns the current sample for an area, served from cache when a
fetch happened within CacheTTL.

Cache failures are logged and bypassed: a broken Redis must degrade to
slower responses, not to an outage.

Parameters:
  - context: context.Context
  - area: measuring site index

Returns:
  - *Reading: cached or freshly fetched sample
  - error: upstream failure
*/
func (service *Service) Reading(context context.Context, area int) (*Reading, error) {
	key := fmt.Sprintf("%s%d", constants.RedisPrefixHanRiver, area)

	cached, err := service.cache.Get(context, key)
	if err == nil {
		reading := &Reading{}
		if err := json.Unmarshal([]byte(cached), reading); err == nil {
			return reading, nil
		}
		service.logger.Warn("discarding corrupt cache entry", slog.String("key", key))
	} else if !errors.Is(err, ErrCacheMiss) {
		service.logger.Warn("cache read failed", slog.String("error", err.Error()))
	}

	reading, err := service.fetcher.Fetch(context, area)
	if err != nil {
		return nil, err
	}

	if encoded, err := json.Marshal(reading); err == nil {
		if err := service.cache.Set(context, key, string(encoded), CacheTTL); err != nil {
			service.logger.Warn("cache write failed", slog.String("error", err.Error()))
		}
	}

	return reading, nil
}
