package cache

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"time"

	"github.com/finmanager/backend/internal/domain/report"
	"github.com/finmanager/backend/internal/infrastructure/config"
	"github.com/redis/go-redis/v9"
)

const defaultStatisticsKeyPrefix = "stats:"

// RedisStatisticsCache implements report.StatisticsCache with one Redis
// hash per owner. The hash expires ttl after its first field was written,
// so Invalidate is a single DEL. EXPIRE NX needs Redis 7.0 or newer.
type RedisStatisticsCache struct {
	client    redis.UniversalClient
	keyPrefix string
	ttl       time.Duration
}

// NewRedisStatisticsCache connects to Redis and verifies the connection
func NewRedisStatisticsCache(cfg config.RedisConfig, ttl time.Duration) (*RedisStatisticsCache, error) {
	client := redis.NewClient(&redis.Options{
		Addr:     cfg.Addr(),
		Password: cfg.Password,
		DB:       cfg.DB,
	})

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := client.Ping(ctx).Err(); err != nil {
		_ = client.Close()
		return nil, fmt.Errorf("failed to connect to Redis: %w", err)
	}

	return NewRedisStatisticsCacheWithClient(client, "", ttl), nil
}

// NewRedisStatisticsCacheWithClient creates a cache over an existing client
func NewRedisStatisticsCacheWithClient(client redis.UniversalClient, keyPrefix string, ttl time.Duration) *RedisStatisticsCache {
	if keyPrefix == "" {
		keyPrefix = defaultStatisticsKeyPrefix
	}
	if ttl <= 0 {
		ttl = defaultStatisticsTTL
	}
	return &RedisStatisticsCache{
		client:    client,
		keyPrefix: keyPrefix,
		ttl:       ttl,
	}
}

func (c *RedisStatisticsCache) ownerKey(ownerID int64) string {
	return c.keyPrefix + strconv.FormatInt(ownerID, 10)
}

// Get reads one field of the owner's hash
func (c *RedisStatisticsCache) Get(ctx context.Context, ownerID int64, key string) ([]byte, bool, error) {
	payload, err := c.client.HGet(ctx, c.ownerKey(ownerID), key).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, fmt.Errorf("failed to read statistics cache: %w", err)
	}
	return payload, true, nil
}

// Set writes one field and starts the hash TTL if it has none
func (c *RedisStatisticsCache) Set(ctx context.Context, ownerID int64, key string, payload []byte) error {
	hashKey := c.ownerKey(ownerID)
	pipe := c.client.TxPipeline()
	pipe.HSet(ctx, hashKey, key, payload)
	pipe.ExpireNX(ctx, hashKey, c.ttl)
	if _, err := pipe.Exec(ctx); err != nil {
		return fmt.Errorf("failed to write statistics cache: %w", err)
	}
	return nil
}

// Invalidate deletes the owner's hash
func (c *RedisStatisticsCache) Invalidate(ctx context.Context, ownerID int64) error {
	if err := c.client.Del(ctx, c.ownerKey(ownerID)).Err(); err != nil {
		return fmt.Errorf("failed to invalidate statistics cache: %w", err)
	}
	return nil
}

// Close closes the Redis client
func (c *RedisStatisticsCache) Close() error {
	return c.client.Close()
}

var _ report.StatisticsCache = (*RedisStatisticsCache)(nil)
