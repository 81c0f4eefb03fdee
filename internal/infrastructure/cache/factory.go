package cache

import (
	"fmt"
	"io"
	"time"

	"github.com/finmanager/backend/internal/domain/report"
	"github.com/finmanager/backend/internal/infrastructure/config"
	"go.uber.org/zap"
)

// ClosableStatisticsCache is a statistics cache holding resources
type ClosableStatisticsCache interface {
	report.StatisticsCache
	io.Closer
}

// StatisticsCacheFactory creates statistics caches based on configuration
type StatisticsCacheFactory struct {
	redisConfig           config.RedisConfig
	ttl                   time.Duration
	logger                *zap.Logger
	allowInMemoryFallback bool
}

// StatisticsCacheFactoryOption is a functional option for configuring the factory
type StatisticsCacheFactoryOption func(*StatisticsCacheFactory)

// WithLogger sets the logger for the factory
func WithLogger(logger *zap.Logger) StatisticsCacheFactoryOption {
	return func(f *StatisticsCacheFactory) {
		f.logger = logger
	}
}

// WithInMemoryFallback controls whether an unreachable Redis falls back to
// the in-memory cache. Default is true.
func WithInMemoryFallback(allow bool) StatisticsCacheFactoryOption {
	return func(f *StatisticsCacheFactory) {
		f.allowInMemoryFallback = allow
	}
}

// NewStatisticsCacheFactory creates a new factory
func NewStatisticsCacheFactory(cfg config.RedisConfig, ttl time.Duration, opts ...StatisticsCacheFactoryOption) *StatisticsCacheFactory {
	f := &StatisticsCacheFactory{
		redisConfig:           cfg,
		ttl:                   ttl,
		logger:                zap.NewNop(),
		allowInMemoryFallback: true,
	}
	for _, opt := range opts {
		opt(f)
	}
	return f
}

// CreateRedisCache creates a Redis-backed cache
func (f *StatisticsCacheFactory) CreateRedisCache() (ClosableStatisticsCache, error) {
	c, err := NewRedisStatisticsCache(f.redisConfig, f.ttl)
	if err != nil {
		return nil, fmt.Errorf("failed to create Redis statistics cache: %w", err)
	}
	return c, nil
}

// CreateInMemoryCache creates a process-local cache
func (f *StatisticsCacheFactory) CreateInMemoryCache() ClosableStatisticsCache {
	return NewInMemoryStatisticsCache(f.ttl, WithInMemoryLogger(f.logger))
}

// CreateCache uses Redis when it is enabled and reachable, otherwise the
// in-memory cache if fallback is allowed
func (f *StatisticsCacheFactory) CreateCache() (ClosableStatisticsCache, error) {
	if !f.redisConfig.Enabled {
		f.logger.Info("Redis disabled, using in-memory statistics cache")
		return f.CreateInMemoryCache(), nil
	}

	c, err := f.CreateRedisCache()
	if err == nil {
		f.logger.Info("using Redis statistics cache", zap.String("addr", f.redisConfig.Addr()))
		return c, nil
	}

	if !f.allowInMemoryFallback {
		return nil, fmt.Errorf("Redis required for statistics cache but unavailable: %w", err)
	}

	f.logger.Warn("Redis unavailable, falling back to in-memory statistics cache. "+
		"Invalidations will not reach other server instances.",
		zap.Error(err),
	)
	return f.CreateInMemoryCache(), nil
}
