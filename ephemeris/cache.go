package ephemeris

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/go-redis/redis/v8"
	lru "github.com/hashicorp/golang-lru"

	"github.com/sabaa/horary/chart"
	"github.com/sabaa/horary/log"
)

var logger = log.WithComponent("ephemeris")

// Cache is the ephemeris Manager's caching collaborator.
type Cache interface {
	Get(ctx context.Context, key string) (interface{}, bool)
	Set(ctx context.Context, key string, value interface{}, ttl time.Duration)
	Close() error
}

// lruEntry pairs a cached value with its expiry so a hit past its TTL is
// treated as a miss without waiting for hashicorp/golang-lru's own
// eviction, which is capacity-driven rather than time-driven.
type lruEntry struct {
	value     interface{}
	expiresAt time.Time
}

// LRUCache is the Manager's default local cache, backed by
// hashicorp/golang-lru with a TTL layered on top.
type LRUCache struct {
	cache *lru.Cache
}

// NewLRUCache builds an LRUCache holding up to size entries.
func NewLRUCache(size int) (*LRUCache, error) {
	c, err := lru.New(size)
	if err != nil {
		return nil, fmt.Errorf("failed to create LRU cache: %w", err)
	}
	return &LRUCache{cache: c}, nil
}

func (c *LRUCache) Get(_ context.Context, key string) (interface{}, bool) {
	raw, ok := c.cache.Get(key)
	if !ok {
		return nil, false
	}
	entry := raw.(lruEntry)
	if time.Now().After(entry.expiresAt) {
		c.cache.Remove(key)
		return nil, false
	}
	return entry.value, true
}

func (c *LRUCache) Set(_ context.Context, key string, value interface{}, ttl time.Duration) {
	c.cache.Add(key, lruEntry{value: value, expiresAt: time.Now().Add(ttl)})
}

func (c *LRUCache) Close() error { return nil }

// RedisCache is the Manager's optional shared cache, grounded on
// cache/redis.go's connection handling and JSON envelope, generalized from
// panchangam-day keys to Julian-day position lookups.
type RedisCache struct {
	client *redis.Client
}

// NewRedisCache dials addr and verifies the connection before returning.
func NewRedisCache(addr, password string, db int) (*RedisCache, error) {
	client := redis.NewClient(&redis.Options{
		Addr:         addr,
		Password:     password,
		DB:           db,
		DialTimeout:  5 * time.Second,
		ReadTimeout:  3 * time.Second,
		WriteTimeout: 3 * time.Second,
	})

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := client.Ping(ctx).Err(); err != nil {
		return nil, fmt.Errorf("failed to connect to Redis: %w", err)
	}

	logger.Info("ephemeris Redis cache connected", "addr", addr, "db", db)
	return &RedisCache{client: client}, nil
}

// positionsEnvelope is what actually gets stored: the position map (its
// chart.Planet keys are strings, so it round-trips through JSON) together
// with the time it was cached. Expiry itself is left to Redis's TTL.
type positionsEnvelope struct {
	Positions map[chart.Planet]RawPosition `json:"positions"`
	CachedAt  time.Time                    `json:"cached_at"`
}

func (c *RedisCache) Get(ctx context.Context, key string) (interface{}, bool) {
	val, err := c.client.Get(ctx, key).Result()
	if err != nil {
		if err != redis.Nil {
			logger.Error("redis get failed", "key", key, "error", err)
		}
		return nil, false
	}

	var envelope positionsEnvelope
	if err := json.Unmarshal([]byte(val), &envelope); err != nil {
		logger.Error("failed to unmarshal cached ephemeris data", "key", key, "error", err)
		c.client.Del(ctx, key)
		return nil, false
	}

	return map[chart.Planet]RawPosition(envelope.Positions), true
}

func (c *RedisCache) Set(ctx context.Context, key string, value interface{}, ttl time.Duration) {
	positions, ok := value.(map[chart.Planet]RawPosition)
	if !ok {
		return
	}

	envelope := positionsEnvelope{Positions: positions, CachedAt: time.Now()}
	data, err := json.Marshal(envelope)
	if err != nil {
		logger.Error("failed to marshal ephemeris data for cache", "key", key, "error", err)
		return
	}

	if err := c.client.Set(ctx, key, data, ttl).Err(); err != nil {
		logger.Error("redis set failed", "key", key, "error", err)
	}
}

func (c *RedisCache) Close() error {
	return c.client.Close()
}
