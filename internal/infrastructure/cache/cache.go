package cache

import (
	"fmt"
	"sync"
	"time"
)

// Item represents a cached item with expiration
type Item struct {
	Value      interface{}
	Expiration int64
}

// Cache is a simple in-memory cache with expiration and a generation
// counter. Invalidate bumps the generation, which orphans every entry
// written before it; orphans are swept together with expired items.
type Cache struct {
	items      map[string]Item
	mu         sync.RWMutex
	generation uint64
}

// New creates a new cache instance
func New() *Cache {
	cache := &Cache{
		items: make(map[string]Item),
	}

	// Background sweep of expired and orphaned items
	go func() {
		for {
			time.Sleep(time.Minute)
			cache.DeleteExpired()
		}
	}()

	return cache
}

// Set adds an item to the cache with the given expiration duration
func (c *Cache) Set(key string, value interface{}, duration time.Duration) {
	c.mu.Lock()
	defer c.mu.Unlock()

	expiration := time.Now().Add(duration).UnixNano()
	c.items[c.versionedKey(key)] = Item{
		Value:      value,
		Expiration: expiration,
	}
}

// Get retrieves an item from the cache
// Returns the item and a boolean indicating if the item was found
func (c *Cache) Get(key string) (interface{}, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()

	item, found := c.items[c.versionedKey(key)]
	if !found {
		return nil, false
	}

	// Check if the item has expired
	if time.Now().UnixNano() > item.Expiration {
		return nil, false
	}

	return item.Value, true
}

// Delete removes an item from the cache
func (c *Cache) Delete(key string) {
	c.mu.Lock()
	defer c.mu.Unlock()

	delete(c.items, c.versionedKey(key))
}

// Invalidate orphans every entry currently in the cache. Used after a
// pipeline run replaces the derived tables.
func (c *Cache) Invalidate() {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.generation++
}

// DeleteExpired removes all expired items from the cache
func (c *Cache) DeleteExpired() {
	c.mu.Lock()
	defer c.mu.Unlock()

	now := time.Now().UnixNano()
	prefix := fmt.Sprintf("%d:", c.generation)
	for k, v := range c.items {
		if now > v.Expiration || len(k) < len(prefix) || k[:len(prefix)] != prefix {
			delete(c.items, k)
		}
	}
}

// Clear removes all items from the cache
func (c *Cache) Clear() {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.items = make(map[string]Item)
}

func (c *Cache) versionedKey(key string) string {
	return fmt.Sprintf("%d:%s", c.generation, key)
}
