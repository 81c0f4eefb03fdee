package cache

import (
	"context"
	"sync"
	"sync/atomic"
	"time"

	"github.com/finmanager/backend/internal/domain/report"
	"go.uber.org/zap"
)

const (
	defaultCleanupInterval = 30 * time.Second
	defaultStatisticsTTL   = 60 * time.Second
)

// cacheEntry wraps a cached payload with its expiration time
type cacheEntry struct {
	payload   []byte
	expiresAt time.Time
}

func (e cacheEntry) isExpired(now time.Time) bool {
	return !now.Before(e.expiresAt)
}

// InMemoryStatisticsCache implements report.StatisticsCache in process
// memory. State is not shared between server instances.
type InMemoryStatisticsCache struct {
	mu      sync.Mutex
	owners  map[int64]map[string]cacheEntry
	ttl     time.Duration
	logger  *zap.Logger
	now     func() time.Time
	stopCh  chan struct{}
	stopped int32

	hits   int64
	misses int64
}

// InMemoryStatisticsCacheOption is a functional option for configuring the cache
type InMemoryStatisticsCacheOption func(*InMemoryStatisticsCache)

// WithInMemoryLogger sets the logger for the cache
func WithInMemoryLogger(logger *zap.Logger) InMemoryStatisticsCacheOption {
	return func(c *InMemoryStatisticsCache) {
		c.logger = logger
	}
}

// withClock replaces the time source, used by tests
func withClock(now func() time.Time) InMemoryStatisticsCacheOption {
	return func(c *InMemoryStatisticsCache) {
		c.now = now
	}
}

// NewInMemoryStatisticsCache creates a cache whose entries live for ttl.
// A non-positive ttl uses the 60s default.
func NewInMemoryStatisticsCache(ttl time.Duration, opts ...InMemoryStatisticsCacheOption) *InMemoryStatisticsCache {
	if ttl <= 0 {
		ttl = defaultStatisticsTTL
	}
	c := &InMemoryStatisticsCache{
		owners: make(map[int64]map[string]cacheEntry),
		ttl:    ttl,
		logger: zap.NewNop(),
		now:    time.Now,
		stopCh: make(chan struct{}),
	}
	for _, opt := range opts {
		opt(c)
	}

	go c.cleanupExpired()

	return c
}

// Get returns a live entry
func (c *InMemoryStatisticsCache) Get(_ context.Context, ownerID int64, key string) ([]byte, bool, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if entries, ok := c.owners[ownerID]; ok {
		if entry, ok := entries[key]; ok {
			if !entry.isExpired(c.now()) {
				atomic.AddInt64(&c.hits, 1)
				return entry.payload, true, nil
			}
			delete(entries, key)
		}
	}
	atomic.AddInt64(&c.misses, 1)
	return nil, false, nil
}

// Set stores a copy of payload
func (c *InMemoryStatisticsCache) Set(_ context.Context, ownerID int64, key string, payload []byte) error {
	stored := make([]byte, len(payload))
	copy(stored, payload)

	c.mu.Lock()
	defer c.mu.Unlock()

	entries, ok := c.owners[ownerID]
	if !ok {
		entries = make(map[string]cacheEntry)
		c.owners[ownerID] = entries
	}
	entries[key] = cacheEntry{payload: stored, expiresAt: c.now().Add(c.ttl)}
	return nil
}

// Invalidate drops every entry of the owner
func (c *InMemoryStatisticsCache) Invalidate(_ context.Context, ownerID int64) error {
	c.mu.Lock()
	delete(c.owners, ownerID)
	c.mu.Unlock()

	c.logger.Debug("Invalidated statistics cache", zap.Int64("owner_id", ownerID))
	return nil
}

// Close stops the cleanup goroutine
func (c *InMemoryStatisticsCache) Close() error {
	if atomic.CompareAndSwapInt32(&c.stopped, 0, 1) {
		close(c.stopCh)
	}
	return nil
}

// GetStats returns hit and miss counters
func (c *InMemoryStatisticsCache) GetStats() (hits, misses int64) {
	return atomic.LoadInt64(&c.hits), atomic.LoadInt64(&c.misses)
}

// Count returns the number of stored entries, expired ones included
func (c *InMemoryStatisticsCache) Count() int {
	c.mu.Lock()
	defer c.mu.Unlock()

	n := 0
	for _, entries := range c.owners {
		n += len(entries)
	}
	return n
}

func (c *InMemoryStatisticsCache) cleanupExpired() {
	ticker := time.NewTicker(defaultCleanupInterval)
	defer ticker.Stop()

	for {
		select {
		case <-c.stopCh:
			return
		case <-ticker.C:
			func() {
				defer func() {
					if r := recover(); r != nil {
						c.logger.Error("Panic in cache cleanup", zap.Any("panic", r))
					}
				}()
				c.doCleanup()
			}()
		}
	}
}

// doCleanup removes expired entries and empty owners
func (c *InMemoryStatisticsCache) doCleanup() {
	c.mu.Lock()
	defer c.mu.Unlock()

	now := c.now()
	removed := 0
	for ownerID, entries := range c.owners {
		for key, entry := range entries {
			if entry.isExpired(now) {
				delete(entries, key)
				removed++
			}
		}
		if len(entries) == 0 {
			delete(c.owners, ownerID)
		}
	}

	if removed > 0 {
		c.logger.Debug("Cleaned up expired statistics entries", zap.Int("removed", removed))
	}
}

var _ report.StatisticsCache = (*InMemoryStatisticsCache)(nil)
