package cache

import (
	"context"
	"sync"
	"time"

	"github.com/omarsaleh/bankd/pkg/dto"
)

type cacheEntry struct {
	acct      *dto.AccountRead
	expiresAt time.Time
}

// MemoryCache implements cache.AccountCache using in-memory storage. It is
// the fallback when no Redis URL is configured.
type MemoryCache struct {
	cache map[string]*cacheEntry
	mu    sync.RWMutex
}

// NewMemoryCache creates a new in-memory cache.
func NewMemoryCache() *MemoryCache {
	cache := &MemoryCache{
		cache: make(map[string]*cacheEntry),
	}

	// Start cleanup goroutine
	go cache.cleanup()

	return cache
}

// Get retrieves an account from cache.
func (c *MemoryCache) Get(ctx context.Context, email string) (*dto.AccountRead, error) {
	c.mu.RLock()
	defer c.mu.RUnlock()

	entry, exists := c.cache[email]
	if !exists {
		return nil, nil
	}
	if time.Now().After(entry.expiresAt) {
		return nil, nil
	}
	return entry.acct, nil
}

// Set stores an account in cache with TTL.
func (c *MemoryCache) Set(
	ctx context.Context,
	email string,
	acct *dto.AccountRead,
	ttl time.Duration,
) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.cache[email] = &cacheEntry{
		acct:      acct,
		expiresAt: time.Now().Add(ttl),
	}
	return nil
}

// Delete removes an account from cache.
func (c *MemoryCache) Delete(ctx context.Context, email string) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	delete(c.cache, email)
	return nil
}

// cleanup periodically removes expired entries.
func (c *MemoryCache) cleanup() {
	ticker := time.NewTicker(time.Minute)
	defer ticker.Stop()

	for range ticker.C {
		c.mu.Lock()
		now := time.Now()
		for key, entry := range c.cache {
			if now.After(entry.expiresAt) {
				delete(c.cache, key)
			}
		}
		c.mu.Unlock()
	}
}
