package feed

import (
	"context"
	"sync"
	"time"

	"github.com/jonboulle/clockwork"
)

// CachedSource wraps a Source with an in-memory LRU cache so repeated batch
// runs within a collector cycle do not refetch unchanged feeds.
type CachedSource struct {
	inner Source
	ttl   time.Duration
	clock clockwork.Clock
	cache *lruCache
}

// NewCachedSource creates a cache decorator around a source. Entries expire
// after ttl; the clock is injectable for tests.
func NewCachedSource(inner Source, maxEntries int, ttl time.Duration, clock clockwork.Clock) *CachedSource {
	return &CachedSource{
		inner: inner,
		ttl:   ttl,
		clock: clock,
		cache: newLRUCache(maxEntries),
	}
}

func (c *CachedSource) Fetch(ctx context.Context, slug string) ([]byte, error) {
	if e, ok := c.cache.get(slug); ok && c.clock.Since(e.fetchedAt) < c.ttl {
		return e.payload, nil
	}
	payload, err := c.inner.Fetch(ctx, slug)
	if err != nil {
		// Errors are never cached; a failed spot can recover next run.
		return nil, err
	}
	c.cache.put(slug, cached{payload: payload, fetchedAt: c.clock.Now()})
	return payload, nil
}

type cached struct {
	payload   []byte
	fetchedAt time.Time
}

// lruCache is a small thread-safe LRU keyed by slug.
type lruCache struct {
	maxEntries int
	mu         sync.Mutex
	entries    map[string]*entry
	head       *entry // most recently used
	tail       *entry // least recently used
}

type entry struct {
	key   string
	value cached
	prev  *entry
	next  *entry
}

func newLRUCache(maxEntries int) *lruCache {
	return &lruCache{
		maxEntries: maxEntries,
		entries:    make(map[string]*entry),
	}
}

func (c *lruCache) get(key string) (cached, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()

	e, ok := c.entries[key]
	if !ok {
		return cached{}, false
	}
	c.moveToFront(e)
	return e.value, true
}

func (c *lruCache) put(key string, value cached) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if e, ok := c.entries[key]; ok {
		e.value = value
		c.moveToFront(e)
		return
	}

	e := &entry{key: key, value: value}
	c.entries[key] = e
	c.addToFront(e)

	if len(c.entries) > c.maxEntries {
		c.evictTail()
	}
}

func (c *lruCache) moveToFront(e *entry) {
	if e == c.head {
		return
	}
	c.remove(e)
	c.addToFront(e)
}

func (c *lruCache) addToFront(e *entry) {
	e.next = c.head
	e.prev = nil
	if c.head != nil {
		c.head.prev = e
	}
	c.head = e
	if c.tail == nil {
		c.tail = e
	}
}

func (c *lruCache) remove(e *entry) {
	if e.prev != nil {
		e.prev.next = e.next
	} else {
		c.head = e.next
	}
	if e.next != nil {
		e.next.prev = e.prev
	} else {
		c.tail = e.prev
	}
}

func (c *lruCache) evictTail() {
	if c.tail == nil {
		return
	}
	delete(c.entries, c.tail.key)
	c.remove(c.tail)
}
