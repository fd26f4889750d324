package cache

import (
	"sync"
	"time"
)

// item is a cached value with an absolute expiration.
type item struct {
	value      interface{}
	expiration int64
}

// Cache is a thread-safe in-memory TTL cache.
type Cache struct {
	items map[string]item
	mu    sync.RWMutex
	ttl   time.Duration
}

// New creates a cache with the specified default TTL.
func New(ttl time.Duration) *Cache {
	c := &Cache{
		items: make(map[string]item),
		ttl:   ttl,
	}

	go c.cleanup()

	return c
}

// Set stores a value with the default TTL.
func (c *Cache) Set(key string, value interface{}) {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.items[key] = item{
		value:      value,
		expiration: time.Now().Add(c.ttl).UnixNano(),
	}
}

// Get retrieves a value, reporting whether it exists and is fresh.
func (c *Cache) Get(key string) (interface{}, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()

	it, found := c.items[key]
	if !found || time.Now().UnixNano() > it.expiration {
		return nil, false
	}
	return it.value, true
}

// GetOrSet returns the cached value or computes and stores it.
func (c *Cache) GetOrSet(key string, fn func() (interface{}, error)) (interface{}, error) {
	if value, found := c.Get(key); found {
		return value, nil
	}

	value, err := fn()
	if err != nil {
		return nil, err
	}

	c.Set(key, value)
	return value, nil
}

// Delete removes one entry.
func (c *Cache) Delete(key string) {
	c.mu.Lock()
	defer c.mu.Unlock()

	delete(c.items, key)
}

// cleanup evicts expired items periodically.
func (c *Cache) cleanup() {
	ticker := time.NewTicker(time.Minute)
	defer ticker.Stop()

	for range ticker.C {
		c.mu.Lock()
		now := time.Now().UnixNano()
		for key, it := range c.items {
			if now > it.expiration {
				delete(c.items, key)
			}
		}
		c.mu.Unlock()
	}
}

// Snapshot cache keys, one per read endpoint.
const (
	KeySample     = "snapshot:sample"
	KeyReport     = "snapshot:report"
	KeyInterfaces = "snapshot:interfaces"
	KeyProcesses  = "snapshot:processes"
	KeyHost       = "snapshot:host"
)

// SnapshotCache holds recent endpoint payloads so dashboard auto-refresh
// doesn't re-run the samplers on every request.
type SnapshotCache struct {
	*Cache
}

// NewSnapshotCache creates a snapshot cache with a 2 second TTL.
func NewSnapshotCache() *SnapshotCache {
	return &SnapshotCache{Cache: New(2 * time.Second)}
}
