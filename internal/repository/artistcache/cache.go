// Package artistcache keeps assembled artist pages in a key-value store.
package artistcache

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"go.uber.org/zap"

	"github.com/gearsh/gearsh-api/internal/db"
	"github.com/gearsh/gearsh-api/internal/domain/catalog/profile"
)

const keyPrefix = "gearsh:artist:v1:"

// DefaultTTL is used when New receives a non-positive ttl.
const DefaultTTL = 5 * time.Minute

// store is the consumer interface for the artist cache (ISP).
type store interface {
	Get(ctx context.Context, key string) ([]byte, error)
	SetWithTTL(ctx context.Context, key string, value []byte, ttl time.Duration) error
	Del(ctx context.Context, keys ...string) error
}

// Cache stores artist details by id. Cache failures are logged and never
// surface to callers: a broken cache behaves like an empty one.
type Cache struct {
	store      store
	ttl        time.Duration
	cacheTotal *prometheus.CounterVec
	logger     *zap.Logger
}

// New creates an artist cache.
// cacheTotal is a counter vec with label "result" ("hit"/"miss"), passed explicitly.
func New(s store, ttl time.Duration, cacheTotal *prometheus.CounterVec, logger *zap.Logger) *Cache {
	if ttl <= 0 {
		ttl = DefaultTTL
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Cache{store: s, ttl: ttl, cacheTotal: cacheTotal, logger: logger}
}

// Get returns the cached detail for id.
func (c *Cache) Get(ctx context.Context, id string) (profile.Detail, bool) {
	data, err := c.store.Get(ctx, key(id))
	if err != nil {
		if !errors.Is(err, db.ErrKeyNotFound) {
			c.logger.Warn("artist cache get failed", zap.String("artist_id", id), zap.Error(err))
		}
		c.inc("miss")
		return profile.Detail{}, false
	}

	var d profile.Detail
	if err := json.Unmarshal(data, &d); err != nil {
		c.logger.Warn("artist cache entry corrupted", zap.String("artist_id", id), zap.Error(err))
		c.inc("miss")
		return profile.Detail{}, false
	}
	c.inc("hit")
	return d, true
}

// Put stores d under its id.
func (c *Cache) Put(ctx context.Context, d profile.Detail) {
	data, err := json.Marshal(d)
	if err != nil {
		c.logger.Warn("artist cache marshal failed", zap.String("artist_id", d.ID), zap.Error(err))
		return
	}
	if err := c.store.SetWithTTL(ctx, key(d.ID), data, c.ttl); err != nil {
		c.logger.Warn("artist cache put failed", zap.String("artist_id", d.ID), zap.Error(err))
	}
}

// Invalidate drops the cached detail for id.
func (c *Cache) Invalidate(ctx context.Context, id string) {
	if err := c.store.Del(ctx, key(id)); err != nil {
		c.logger.Warn("artist cache invalidate failed", zap.String("artist_id", id), zap.Error(err))
	}
}

func (c *Cache) inc(result string) {
	if c.cacheTotal != nil {
		c.cacheTotal.WithLabelValues(result).Inc()
	}
}

func key(id string) string {
	return keyPrefix + id
}
