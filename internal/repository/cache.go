package repository

import (
	"context"
	"crypto/sha1"
	"encoding/json"
	"fmt"
	"sync"
	"time"

	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
)

// TableCache stores query results keyed by SQL text.  Implementations
// must be safe for concurrent use.
type TableCache interface {
	Get(ctx context.Context, query string) (Table, bool)
	Set(ctx context.Context, query string, t Table)
	Clear(ctx context.Context) error
}

// MemoryCache keeps results for the lifetime of the process.
type MemoryCache struct {
	mu      sync.RWMutex
	entries map[string]Table
}

// NewMemoryCache returns an empty in-process cache.
func NewMemoryCache() *MemoryCache { return &MemoryCache{entries: map[string]Table{}} }

func (m *MemoryCache) Get(_ context.Context, query string) (Table, bool) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	t, ok := m.entries[query]
	return t, ok
}

func (m *MemoryCache) Set(_ context.Context, query string, t Table) {
	m.mu.Lock()
	m.entries[query] = t
	m.mu.Unlock()
}

func (m *MemoryCache) Clear(context.Context) error {
	m.mu.Lock()
	m.entries = map[string]Table{}
	m.mu.Unlock()
	return nil
}

// RedisCache shares results between server processes.  Redis failures
// are logged and treated as cache misses.
type RedisCache struct {
	rdb    *redis.Client
	prefix string
	ttl    time.Duration
	log    *zap.Logger
}

// NewRedisCache stores entries under prefix for ttl (an hour when ttl is
// not positive).
func NewRedisCache(rdb *redis.Client, prefix string, ttl time.Duration, log *zap.Logger) *RedisCache {
	if ttl <= 0 {
		ttl = time.Hour
	}
	if log == nil {
		log = zap.NewNop()
	}
	return &RedisCache{rdb: rdb, prefix: prefix, ttl: ttl, log: log}
}

// Key builds a stable cache key: <prefix>:<sha1 of the query text>.
func (c *RedisCache) Key(query string) string {
	sum := sha1.Sum([]byte(query))
	return fmt.Sprintf("%s:%x", c.prefix, sum[:])
}

func (c *RedisCache) Get(ctx context.Context, query string) (Table, bool) {
	bs, err := c.rdb.Get(ctx, c.Key(query)).Bytes()
	if err != nil {
		if err != redis.Nil {
			c.log.Warn("query cache get failed", zap.Error(err))
		}
		return Table{}, false
	}
	var t Table
	if err := json.Unmarshal(bs, &t); err != nil {
		c.log.Warn("query cache entry unreadable", zap.Error(err))
		return Table{}, false
	}
	return t, true
}

func (c *RedisCache) Set(ctx context.Context, query string, t Table) {
	bs, err := json.Marshal(t)
	if err != nil {
		c.log.Warn("query cache encode failed", zap.Error(err))
		return
	}
	if err := c.rdb.SetEx(ctx, c.Key(query), bs, c.ttl).Err(); err != nil {
		c.log.Warn("query cache set failed", zap.Error(err))
	}
}

// Clear deletes every key under the prefix.
func (c *RedisCache) Clear(ctx context.Context) error {
	var keys []string
	iter := c.rdb.Scan(ctx, 0, c.prefix+":*", 100).Iterator()
	for iter.Next(ctx) {
		keys = append(keys, iter.Val())
	}
	if err := iter.Err(); err != nil {
		return fmt.Errorf("query cache scan: %w", err)
	}
	if len(keys) == 0 {
		return nil
	}
	if err := c.rdb.Del(ctx, keys...).Err(); err != nil {
		return fmt.Errorf("query cache clear: %w", err)
	}
	return nil
}
