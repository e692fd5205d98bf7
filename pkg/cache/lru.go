// Package cache provides a generic, concurrency-safe LRU cache with optional
// per-entry expiry.
//
//	c := cache.NewLRU[string, string](256, cache.WithTTL[string, string](10*time.Minute))
//	c.Put("k", "v")
//	v, ok := c.Get("k")
//
// When the cache is full the least recently used entry is evicted. Expired
// entries are dropped lazily on access.
package cache

import (
	"container/list"
	"sync"
	"time"
)

type entry[K comparable, V any] struct {
	key     K
	value   V
	expires time.Time
}

// LRU is a fixed-capacity least-recently-used cache.
type LRU[K comparable, V any] struct {
	mu       sync.Mutex
	capacity int
	ttl      time.Duration
	now      func() time.Time
	items    map[K]*list.Element
	order    *list.List
	onEvict  func(key K, value V)
}

// Option configures an LRU.
type Option[K comparable, V any] func(*LRU[K, V])

// WithTTL expires entries d after they were last written. Zero disables
// expiry.
func WithTTL[K comparable, V any](d time.Duration) Option[K, V] {
	return func(c *LRU[K, V]) { c.ttl = d }
}

// WithClock replaces time.Now.
func WithClock[K comparable, V any](now func() time.Time) Option[K, V] {
	return func(c *LRU[K, V]) {
		if now != nil {
			c.now = now
		}
	}
}

// WithEvictCallback registers fn to be called for every entry removed by
// eviction, expiry, Remove or Clear.
func WithEvictCallback[K comparable, V any](fn func(key K, value V)) Option[K, V] {
	return func(c *LRU[K, V]) { c.onEvict = fn }
}

// NewLRU creates a cache holding at most capacity entries. It panics when
// capacity is not positive.
func NewLRU[K comparable, V any](capacity int, opts ...Option[K, V]) *LRU[K, V] {
	if capacity <= 0 {
		panic("cache: LRU capacity must be positive")
	}
	c := &LRU[K, V]{
		capacity: capacity,
		now:      time.Now,
		items:    make(map[K]*list.Element, capacity),
		order:    list.New(),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Get returns the value for key and marks it as recently used.
func (c *LRU[K, V]) Get(key K) (V, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()

	var zero V
	elem, ok := c.items[key]
	if !ok {
		return zero, false
	}

	e := elem.Value.(*entry[K, V])
	if c.expired(e) {
		c.remove(elem)
		return zero, false
	}

	c.order.MoveToFront(elem)
	return e.value, true
}

// Put stores value under key, evicting the least recently used entry when
// the cache is full.
func (c *LRU[K, V]) Put(key K, value V) {
	c.mu.Lock()
	defer c.mu.Unlock()

	var expires time.Time
	if c.ttl > 0 {
		expires = c.now().Add(c.ttl)
	}

	if elem, ok := c.items[key]; ok {
		e := elem.Value.(*entry[K, V])
		e.value = value
		e.expires = expires
		c.order.MoveToFront(elem)
		return
	}

	c.items[key] = c.order.PushFront(&entry[K, V]{key: key, value: value, expires: expires})
	if c.order.Len() > c.capacity {
		c.remove(c.order.Back())
	}
}

// Remove deletes key and reports whether it was present.
func (c *LRU[K, V]) Remove(key K) bool {
	c.mu.Lock()
	defer c.mu.Unlock()

	elem, ok := c.items[key]
	if ok {
		c.remove(elem)
	}
	return ok
}

// Len returns the number of stored entries, including expired ones not yet
// dropped.
func (c *LRU[K, V]) Len() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.order.Len()
}

// Clear removes every entry.
func (c *LRU[K, V]) Clear() {
	c.mu.Lock()
	defer c.mu.Unlock()

	for c.order.Len() > 0 {
		c.remove(c.order.Back())
	}
}

// Must be called with c.mu held.
func (c *LRU[K, V]) expired(e *entry[K, V]) bool {
	return !e.expires.IsZero() && !c.now().Before(e.expires)
}

// Must be called with c.mu held.
func (c *LRU[K, V]) remove(elem *list.Element) {
	c.order.Remove(elem)
	e := elem.Value.(*entry[K, V])
	delete(c.items, e.key)
	if c.onEvict != nil {
		c.onEvict(e.key, e.value)
	}
}
