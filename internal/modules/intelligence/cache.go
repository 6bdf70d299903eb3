package intelligence

import (
	"sync"
	"time"
)

// cacheEntry pairs a cached result with its expiry time.
type cacheEntry struct {
	value     *UnifiedIntelligence
	expiresAt time.Time
}

// Cache is an in-memory TTL cache for unified intelligence results.
// Entries past their TTL are treated as absent on read and reclaimed
// by Sweep.
type Cache struct {
	mu      sync.RWMutex
	entries map[string]cacheEntry
	ttl     time.Duration
}

// NewCache creates a cache whose entries expire after ttl.
func NewCache(ttl time.Duration) *Cache {
	return &Cache{
		entries: make(map[string]cacheEntry),
		ttl:     ttl,
	}
}

// Get returns the cached value for key, or nil if absent or expired.
func (c *Cache) Get(key string) *UnifiedIntelligence {
	c.mu.RLock()
	defer c.mu.RUnlock()

	entry, ok := c.entries[key]
	if !ok || time.Now().After(entry.expiresAt) {
		return nil
	}
	return entry.value
}

// Set stores value under key with the cache's TTL.
func (c *Cache) Set(key string, value *UnifiedIntelligence) {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.entries[key] = cacheEntry{
		value:     value,
		expiresAt: time.Now().Add(c.ttl),
	}
}

// Sweep removes expired entries and returns how many were reclaimed.
func (c *Cache) Sweep() int {
	c.mu.Lock()
	defer c.mu.Unlock()

	now := time.Now()
	removed := 0
	for key, entry := range c.entries {
		if now.After(entry.expiresAt) {
			delete(c.entries, key)
			removed++
		}
	}
	return removed
}

// Len reports the number of entries currently held, expired or not.
func (c *Cache) Len() int {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return len(c.entries)
}
