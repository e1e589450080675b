// Package cache provides a bounded in-memory TTL cache for per-source fetch
// results. A cold cache only costs a refetch, so nothing is persisted.
package cache

import (
	"container/list"
	"fmt"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/jobradar/jobradar/internal/jobs"
)

const defaultCapacity = 50

// Cache is a fixed-capacity LRU with per-entry expiry. Safe for concurrent
// use by parallel source workers.
type Cache struct {
	mu       sync.Mutex
	capacity int
	order    *list.List // front = most recently used
	items    map[string]*list.Element

	now func() time.Time
}

type entry struct {
	key      string
	listings []jobs.Listing
	expiry   time.Time
}

// New creates a cache bounded to the given entry count. A non-positive
// capacity falls back to the default of 50.
func New(capacity int) *Cache {
	if capacity <= 0 {
		capacity = defaultCapacity
	}
	return &Cache{
		capacity: capacity,
		order:    list.New(),
		items:    make(map[string]*list.Element, capacity),
		now:      time.Now,
	}
}

// Get returns the cached listings for key. An expired entry is removed and
// reported as a miss. A hit refreshes the entry's recency.
func (c *Cache) Get(key string) ([]jobs.Listing, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()

	elem, ok := c.items[key]
	if !ok {
		return nil, false
	}

	ent := elem.Value.(*entry)
	if c.now().After(ent.expiry) {
		c.order.Remove(elem)
		delete(c.items, key)
		return nil, false
	}

	c.order.MoveToFront(elem)
	return ent.listings, true
}

// Set stores listings under key with the given TTL, evicting the least
// recently used entry when at capacity.
func (c *Cache) Set(key string, listings []jobs.Listing, ttl time.Duration) {
	c.mu.Lock()
	defer c.mu.Unlock()

	expiry := c.now().Add(ttl)

	if elem, ok := c.items[key]; ok {
		ent := elem.Value.(*entry)
		ent.listings = listings
		ent.expiry = expiry
		c.order.MoveToFront(elem)
		return
	}

	if c.order.Len() >= c.capacity {
		oldest := c.order.Back()
		if oldest != nil {
			c.order.Remove(oldest)
			delete(c.items, oldest.Value.(*entry).key)
		}
	}

	c.items[key] = c.order.PushFront(&entry{key: key, listings: listings, expiry: expiry})
}

// Len reports the current entry count.
func (c *Cache) Len() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.order.Len()
}

// Key builds a deterministic cache key from a source name and its query
// parameters. Parameter names are sorted so equivalent requests collide
// regardless of map iteration order.
func Key(source string, params map[string]string) string {
	names := make([]string, 0, len(params))
	for name := range params {
		names = append(names, name)
	}
	sort.Strings(names)

	parts := make([]string, 0, len(names))
	for _, name := range names {
		parts = append(parts, fmt.Sprintf("%s:%s", name, params[name]))
	}

	return source + "|" + strings.Join(parts, "|")
}
