// Package cache provides a bounded least-recently-used cache.
//
// The image editor keeps parsed font faces here, keyed by family, weight,
// style and size, so repeated text overlays do not re-rasterize glyph tables.
package cache

import (
	"container/list"
	"sync"
)

type entry[K comparable, V any] struct {
	key   K
	value V
}

// LRU is safe for concurrent use.
type LRU[K comparable, V any] struct {
	mu      sync.Mutex
	cap     int
	order   *list.List
	index   map[K]*list.Element
	onEvict func(K, V)
}

// NewLRU returns a cache holding at most capacity entries. It panics when
// capacity is not positive.
func NewLRU[K comparable, V any](capacity int) *LRU[K, V] {
	if capacity <= 0 {
		panic("cache: capacity must be positive")
	}
	return &LRU[K, V]{
		cap:   capacity,
		order: list.New(),
		index: make(map[K]*list.Element, capacity),
	}
}

// OnEvict registers fn to run for every entry pushed out by capacity.
func (c *LRU[K, V]) OnEvict(fn func(K, V)) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.onEvict = fn
}

// Get returns the cached value and marks it most recently used.
func (c *LRU[K, V]) Get(key K) (V, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if el, ok := c.index[key]; ok {
		c.order.MoveToFront(el)
		return el.Value.(*entry[K, V]).value, true
	}
	var zero V
	return zero, false
}

// Put stores value under key, evicting the least recently used entry when full.
func (c *LRU[K, V]) Put(key K, value V) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.put(key, value)
}

// GetOrCreate returns the cached value or stores the result of create.
// create runs under the cache lock and must not touch the cache.
// Errors are returned and nothing is cached.
func (c *LRU[K, V]) GetOrCreate(key K, create func() (V, error)) (V, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if el, ok := c.index[key]; ok {
		c.order.MoveToFront(el)
		return el.Value.(*entry[K, V]).value, nil
	}
	v, err := create()
	if err != nil {
		var zero V
		return zero, err
	}
	c.put(key, v)
	return v, nil
}

// Len returns the number of cached entries.
func (c *LRU[K, V]) Len() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.order.Len()
}

func (c *LRU[K, V]) put(key K, value V) {
	if el, ok := c.index[key]; ok {
		el.Value.(*entry[K, V]).value = value
		c.order.MoveToFront(el)
		return
	}
	c.index[key] = c.order.PushFront(&entry[K, V]{key: key, value: value})
	if c.order.Len() <= c.cap {
		return
	}
	oldest := c.order.Back()
	c.order.Remove(oldest)
	e := oldest.Value.(*entry[K, V])
	delete(c.index, e.key)
	if c.onEvict != nil {
		c.onEvict(e.key, e.value)
	}
}
