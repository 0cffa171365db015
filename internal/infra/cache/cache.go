// Package cache provides the in-process TTL store used to memoize composed
// dashboard results. It is a pure key-value abstraction; key derivation is
// the caller's responsibility.
package cache

import (
	"sync"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	cacheHits = promauto.NewCounter(prometheus.CounterOpts{
		Name: "branchboard_cache_hits_total",
		Help: "Total number of cache hits",
	})

	cacheMisses = promauto.NewCounter(prometheus.CounterOpts{
		Name: "branchboard_cache_misses_total",
		Help: "Total number of cache misses",
	})

	cacheEvictions = promauto.NewCounter(prometheus.CounterOpts{
		Name: "branchboard_cache_evictions_total",
		Help: "Total number of expired entries evicted",
	})
)

type entry struct {
	value     any
	expiresAt time.Time
}

// Cache is a process-wide store with per-entry absolute expiry. It is safe
// for concurrent use; reads never return expired data. A background sweep
// bounds memory even for keys that are never read again.
type Cache struct {
	mu            sync.RWMutex
	entries       map[string]entry
	defaultTTL    time.Duration
	sweepInterval time.Duration
	stop          chan struct{}
	stopOnce      sync.Once
}

func New(defaultTTL, sweepInterval time.Duration) *Cache {
	return &Cache{
		entries:       make(map[string]entry),
		defaultTTL:    defaultTTL,
		sweepInterval: sweepInterval,
		stop:          make(chan struct{}),
	}
}

// Start launches the background sweep. Stop must be called to release it.
func (c *Cache) Start() {
	go func() {
		ticker := time.NewTicker(c.sweepInterval)
		defer ticker.Stop()

		for {
			select {
			case <-c.stop:
				return
			case <-ticker.C:
				c.sweep()
			}
		}
	}()
}

func (c *Cache) Stop() {
	c.stopOnce.Do(func() { close(c.stop) })
}

// Get returns the live value for key. An expired entry is evicted on the
// spot and reported as a miss.
func (c *Cache) Get(key string) (any, bool) {
	c.mu.RLock()
	e, ok := c.entries[key]
	c.mu.RUnlock()

	if !ok {
		cacheMisses.Inc()
		return nil, false
	}

	if time.Now().After(e.expiresAt) {
		c.mu.Lock()
		// Re-check under the write lock: a concurrent Set may have
		// refreshed the entry.
		if cur, still := c.entries[key]; still && time.Now().After(cur.expiresAt) {
			delete(c.entries, key)
			cacheEvictions.Inc()
		}
		c.mu.Unlock()
		cacheMisses.Inc()
		return nil, false
	}

	cacheHits.Inc()
	return e.value, true
}

// Set stores value under key with the cache's default TTL.
func (c *Cache) Set(key string, value any) {
	c.SetWithTTL(key, value, c.defaultTTL)
}

// SetWithTTL stores value under key with a per-entry TTL override.
func (c *Cache) SetWithTTL(key string, value any, ttl time.Duration) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.entries[key] = entry{
		value:     value,
		expiresAt: time.Now().Add(ttl),
	}
}

func (c *Cache) Delete(key string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	delete(c.entries, key)
}

func (c *Cache) Clear() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.entries = make(map[string]entry)
}

func (c *Cache) Len() int {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return len(c.entries)
}

func (c *Cache) sweep() {
	now := time.Now()
	c.mu.Lock()
	defer c.mu.Unlock()
	for key, e := range c.entries {
		if now.After(e.expiresAt) {
			delete(c.entries, key)
			cacheEvictions.Inc()
		}
	}
}
