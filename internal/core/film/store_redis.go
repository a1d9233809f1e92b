// Copyright (c) 2026 Shortwave. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package film

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strconv"
	"time"

	"github.com/redis/go-redis/v9"
)

const (
	// generationKey counts invalidations.
	generationKey = "film:snapshot:generation"

	// snapshotPrefix + generation holds the JSON-encoded collection.
	snapshotPrefix = "film:snapshot:"
)

func snapshotKey(generation int64) string {
	return snapshotPrefix + strconv.FormatInt(generation, 10)
}

// RedisSnapshotCache implements [SnapshotCache] using Redis.
type RedisSnapshotCache struct {
	client *redis.Client
	ttl    time.Duration
}

// NewRedisSnapshotCache creates a cache whose entries expire after ttl.
func NewRedisSnapshotCache(client *redis.Client, ttl time.Duration) *RedisSnapshotCache {
	return &RedisSnapshotCache{client: client, ttl: ttl}
}

/*
Load retrieves the cached collection.

Returns:
  - []*Film: The cached films, in stored order
  - int64: The current generation, also on a miss
  - bool: false when the key is absent or expired
  - error: Connectivity or decoding failures
*/
func (cache *RedisSnapshotCache) Load(context context.Context) ([]*Film, int64, bool, error) {
	generation, err := cache.client.Get(context, generationKey).Int64()
	if err != nil && !errors.Is(err, redis.Nil) {
		return nil, 0, false, fmt.Errorf("redis_film_generation_get_failed: %w", err)
	}

	payload, err := cache.client.Get(context, snapshotKey(generation)).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, generation, false, nil
		}
		return nil, generation, false, fmt.Errorf("redis_film_snapshot_get_failed: %w", err)
	}

	var films []*Film
	if err := json.Unmarshal(payload, &films); err != nil {
		return nil, generation, false, fmt.Errorf("redis_film_snapshot_decode_failed: %w", err)
	}
	return films, generation, true, nil
}

// Store writes under the generation's own key. A write for a superseded
// generation lands on a key no reader asks for and expires with the TTL.
func (cache *RedisSnapshotCache) Store(context context.Context, generation int64, films []*Film) error {
	payload, err := json.Marshal(films)
	if err != nil {
		return fmt.Errorf("redis_film_snapshot_encode_failed: %w", err)
	}

	if err := cache.client.Set(context, snapshotKey(generation), payload, cache.ttl).Err(); err != nil {
		return fmt.Errorf("redis_film_snapshot_set_failed: %w", err)
	}
	return nil
}

func (cache *RedisSnapshotCache) Invalidate(context context.Context) error {
	if err := cache.client.Incr(context, generationKey).Err(); err != nil {
		return fmt.Errorf("redis_film_generation_incr_failed: %w", err)
	}
	return nil
}
