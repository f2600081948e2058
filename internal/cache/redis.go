package cache

import (
	"context"
	"encoding/json"
	"time"

	"github.com/redis/go-redis/v9"

	"ledger-backend/internal/config"
	"ledger-backend/internal/logger"
)

// Cache keys
const (
	SummaryKey      = "summary:global"
	ClientsKey      = "clients:list"
	LabelsKeyPrefix = "labels:"
)

// DefaultTTL applies when Init was given a zero TTL.
const DefaultTTL = 5 * time.Minute

var (
	client *redis.Client
	ttl    = DefaultTTL
)

// Init connects to redis. On failure the client stays nil and every helper
// below becomes a no-op, so the server keeps working uncached.
func Init(cfg config.RedisConfig) error {
	if cfg.Addr == "" {
		return nil
	}
	if cfg.TTL > 0 {
		ttl = cfg.TTL
	}

	c := redis.NewClient(&redis.Options{
		Addr:     cfg.Addr,
		Password: cfg.Password,
		DB:       cfg.DB,
	})

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := c.Ping(ctx).Err(); err != nil {
		c.Close()
		return err
	}
	client = c
	logger.Log.Infow("[Cache] redis connected", "addr", cfg.Addr)
	return nil
}

func Close() {
	if client != nil {
		client.Close()
		client = nil
	}
}

// Enabled reports whether a redis client is configured.
func Enabled() bool {
	return client != nil
}

// GetCached returns cached data for a key
func GetCached(ctx context.Context, key string) ([]byte, bool) {
	if client == nil {
		return nil, false
	}
	data, err := client.Get(ctx, key).Bytes()
	if err != nil {
		return nil, false
	}
	return data, true
}

// SetCached stores data with the configured TTL.
func SetCached(ctx context.Context, key string, data []byte) {
	if client == nil {
		return
	}
	if err := client.Set(ctx, key, data, ttl).Err(); err != nil {
		logger.Log.Warnw("[Cache] set failed", "key", key, "error", err)
	}
}

// GetJSON decodes a cached value into dst. A decode error counts as a miss.
func GetJSON(ctx context.Context, key string, dst any) bool {
	data, ok := GetCached(ctx, key)
	if !ok {
		return false
	}
	return json.Unmarshal(data, dst) == nil
}

func SetJSON(ctx context.Context, key string, v any) {
	if client == nil {
		return
	}
	data, err := json.Marshal(v)
	if err != nil {
		return
	}
	SetCached(ctx, key, data)
}

// InvalidatePattern removes all keys matching a glob pattern
func InvalidatePattern(ctx context.Context, pattern string) {
	if client == nil {
		return
	}
	var keys []string
	iter := client.Scan(ctx, 0, pattern, 100).Iterator()
	for iter.Next(ctx) {
		keys = append(keys, iter.Val())
	}
	if len(keys) > 0 {
		client.Del(ctx, keys...)
	}
}

// InvalidateKeys removes specific cache keys
func InvalidateKeys(ctx context.Context, keys ...string) {
	if client == nil || len(keys) == 0 {
		return
	}
	client.Del(ctx, keys...)
}

// LabelsKey is the cache key of one reference list.
func LabelsKey(kind string) string {
	return LabelsKeyPrefix + kind
}

// InvalidateClientCaches clears the client list and the totals.
// Called when: CreateClient, UpdateClient, DeleteClient
func InvalidateClientCaches(ctx context.Context) {
	InvalidateKeys(ctx, ClientsKey, SummaryKey)
}

// InvalidateTransactionCaches clears the totals.
// Called when: any payment or purchase mutation
func InvalidateTransactionCaches(ctx context.Context) {
	InvalidateKeys(ctx, SummaryKey)
}

// InvalidateLabelCaches clears both reference lists.
func InvalidateLabelCaches(ctx context.Context) {
	InvalidatePattern(ctx, LabelsKeyPrefix+"*")
}

// IsHealthy returns true if Redis connection is working
func IsHealthy(ctx context.Context) bool {
	if client == nil {
		return false
	}
	ctx, cancel := context.WithTimeout(ctx, 2*time.Second)
	defer cancel()
	return client.Ping(ctx).Err() == nil
}
