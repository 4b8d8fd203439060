// Package memory provides an in-process cache repository, used in tests and
// in deployments without a Redis instance.
package memory

import (
	"context"
	"sync"
	"time"
)

type cacheEntry struct {
	value     []byte
	expiresAt time.Time
}

// CacheRepository implements outbound.CacheRepository on a mutex-protected
// map. A background janitor evicts expired entries; reads also treat expired
// entries as misses so eviction latency is never observable.
type CacheRepository struct {
	mu      sync.RWMutex
	entries map[string]cacheEntry
	done    chan struct{}
	once    sync.Once
}

// NewCacheRepository creates an in-memory cache and starts its janitor.
func NewCacheRepository() *CacheRepository {
	c := &CacheRepository{
		entries: make(map[string]cacheEntry),
		done:    make(chan struct{}),
	}
	go c.janitor()
	return c
}

// Get retrieves a value. A miss or an expired entry returns (nil, nil).
func (c *CacheRepository) Get(ctx context.Context, key string) ([]byte, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	c.mu.RLock()
	entry, ok := c.entries[key]
	c.mu.RUnlock()

	if !ok || time.Now().After(entry.expiresAt) {
		return nil, nil
	}

	value := make([]byte, len(entry.value))
	copy(value, entry.value)
	return value, nil
}

// Set stores a value. A non-positive TTL stores the entry for 24 hours.
func (c *CacheRepository) Set(ctx context.Context, key string, value []byte, ttl time.Duration) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if ttl <= 0 {
		ttl = 24 * time.Hour
	}

	stored := make([]byte, len(value))
	copy(stored, value)

	c.mu.Lock()
	c.entries[key] = cacheEntry{
		value:     stored,
		expiresAt: time.Now().Add(ttl),
	}
	c.mu.Unlock()
	return nil
}

// Delete removes a value.
func (c *CacheRepository) Delete(ctx context.Context, key string) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	c.mu.Lock()
	delete(c.entries, key)
	c.mu.Unlock()
	return nil
}

// Exists checks whether a live entry is present.
func (c *CacheRepository) Exists(ctx context.Context, key string) (bool, error) {
	if err := ctx.Err(); err != nil {
		return false, err
	}

	c.mu.RLock()
	entry, ok := c.entries[key]
	c.mu.RUnlock()

	return ok && time.Now().Before(entry.expiresAt), nil
}

// Close stops the janitor goroutine.
func (c *CacheRepository) Close() error {
	c.once.Do(func() { close(c.done) })
	return nil
}

func (c *CacheRepository) janitor() {
	ticker := time.NewTicker(time.Minute)
	defer ticker.Stop()

	for {
		select {
		case <-c.done:
			return
		case now := <-ticker.C:
			c.mu.Lock()
			for key, entry := range c.entries {
				if now.After(entry.expiresAt) {
					delete(c.entries, key)
				}
			}
			c.mu.Unlock()
		}
	}
}
