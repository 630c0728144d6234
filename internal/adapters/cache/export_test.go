package cache

import "time"

// NewMemoryCacheWithClock exposes the clock and sweep interval to tests.
var NewMemoryCacheWithClock = newMemoryCache

// Sweep runs one expiry pass.
func (c *MemoryCache) Sweep() { c.sweep() }

// Len counts stored entries, expired or not.
func (c *MemoryCache) Len() int {
	n := 0
	c.entries.Range(func(_, _ any) bool {
		n++
		return true
	})
	return n
}

// SetClock replaces the clock used for expiry checks.
func (c *ValkeyCache) SetClock(now func() time.Time) { c.now = now }
