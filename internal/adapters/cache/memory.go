package cache

import (
	"context"
	"strings"
	"sync"
	"time"

	"astrocards/internal/domain"
)

// MemoryCache is an in-memory astro cache. Each entry lives until its own
// ExpiresAt, the next local midnight of the location it belongs to.
type MemoryCache struct {
	entries sync.Map
	now     func() time.Time
	done    chan struct{}
	once    sync.Once
}

// NewMemoryCache creates a memory cache and starts its expiry sweep.
func NewMemoryCache() *MemoryCache {
	return newMemoryCache(time.Now, time.Minute)
}

func newMemoryCache(now func() time.Time, sweepEvery time.Duration) *MemoryCache {
	c := &MemoryCache{now: now, done: make(chan struct{})}
	go c.cleanup(sweepEvery)
	return c
}

// NormalizedKey returns the cache key for a location on a date:
// {lowercased trimmed location}:{YYYY-MM-DD}
func NormalizedKey(location, date string) string {
	return strings.ToLower(strings.TrimSpace(location)) + ":" + date
}

// Get retrieves an entry. Returns the entry and true if found and not
// expired, otherwise nil and false.
func (c *MemoryCache) Get(_ context.Context, location, date string) (*domain.CachedAstro, bool, error) {
	key := NormalizedKey(location, date)
	value, ok := c.entries.Load(key)
	if !ok {
		return nil, false, nil
	}

	entry := value.(*domain.CachedAstro)
	if entry.Expired(c.now()) {
		c.entries.Delete(key)
		return nil, false, nil
	}

	return entry, true, nil
}

// Set stores an entry until its ExpiresAt. Already expired entries are not
// stored.
func (c *MemoryCache) Set(_ context.Context, location, date string, entry *domain.CachedAstro) error {
	if entry.Expired(c.now()) {
		return nil
	}
	c.entries.Store(NormalizedKey(location, date), entry)
	return nil
}

// Close stops the expiry sweep.
func (c *MemoryCache) Close() error {
	c.once.Do(func() { close(c.done) })
	return nil
}

// cleanup periodically removes expired entries from the cache.
func (c *MemoryCache) cleanup(every time.Duration) {
	ticker := time.NewTicker(every)
	defer ticker.Stop()
	for {
		select {
		case <-c.done:
			return
		case <-ticker.C:
			c.sweep()
		}
	}
}

func (c *MemoryCache) sweep() {
	now := c.now()
	c.entries.Range(func(key, value any) bool {
		if value.(*domain.CachedAstro).Expired(now) {
			c.entries.Delete(key)
		}
		return true
	})
}
