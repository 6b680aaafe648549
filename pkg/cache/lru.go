package cache

import (
	"container/list"
	"errors"
	"sync"
)

// ErrCreatePanicked is returned to callers waiting on a GetOrCreate whose
// create function panicked.
var ErrCreatePanicked = errors.New("cache: create panicked")

type entry[K comparable, V any] struct {
	key   K
	value V
}

// pending tracks a value being created for a missing key.
type pending[V any] struct {
	done  chan struct{}
	value V
	err   error
}

// LRU is a thread-safe cache bounded by capacity. When full, the least
// recently used entry is evicted.
type LRU[K comparable, V any] struct {
	mu       sync.Mutex
	capacity int
	items    map[K]*list.Element
	order    *list.List
	inflight map[K]*pending[V]
	onEvict  func(key K, value V)
}

// Option configures an LRU.
type Option[K comparable, V any] func(*LRU[K, V])

// WithEvictCallback registers fn to be called, with the lock held, for every
// entry dropped by eviction, Remove or Clear.
func WithEvictCallback[K comparable, V any](fn func(key K, value V)) Option[K, V] {
	return func(c *LRU[K, V]) { c.onEvict = fn }
}

// NewLRU creates a cache holding at most capacity entries.
// It panics if capacity is not positive.
func NewLRU[K comparable, V any](capacity int, opts ...Option[K, V]) *LRU[K, V] {
	if capacity <= 0 {
		panic("cache: LRU capacity must be positive")
	}
	c := &LRU[K, V]{
		capacity: capacity,
		items:    make(map[K]*list.Element, capacity),
		order:    list.New(),
		inflight: make(map[K]*pending[V]),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Get returns the cached value and marks it as recently used.
func (c *LRU[K, V]) Get(key K) (V, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.get(key)
}

// Put stores value under key, returning the replaced value if any.
func (c *LRU[K, V]) Put(key K, value V) (V, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.put(key, value)
}

// GetOrCreate returns the value cached under key, calling create on a miss.
// Concurrent callers asking for the same missing key wait for a single call
// to create. Errors are returned to every waiter and nothing is cached.
// A panic in create propagates to its caller; waiters get ErrCreatePanicked.
func (c *LRU[K, V]) GetOrCreate(key K, create func() (V, error)) (V, error) {
	c.mu.Lock()
	if v, ok := c.get(key); ok {
		c.mu.Unlock()
		return v, nil
	}
	if p, ok := c.inflight[key]; ok {
		c.mu.Unlock()
		<-p.done
		return p.value, p.err
	}
	p := &pending[V]{done: make(chan struct{})}
	c.inflight[key] = p
	c.mu.Unlock()

	// Stays set if create panics, so waiters fail and nothing is cached.
	p.err = ErrCreatePanicked
	defer func() {
		c.mu.Lock()
		delete(c.inflight, key)
		if p.err == nil {
			c.put(key, p.value)
		}
		c.mu.Unlock()
		close(p.done)
	}()

	value, err := create()
	p.value, p.err = value, err
	return value, err
}

// Remove drops key from the cache.
func (c *LRU[K, V]) Remove(key K) (V, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()

	elem, ok := c.items[key]
	if !ok {
		var zero V
		return zero, false
	}
	c.drop(elem)
	return elem.Value.(*entry[K, V]).value, true
}

func (c *LRU[K, V]) Len() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.order.Len()
}

// Clear drops every entry.
func (c *LRU[K, V]) Clear() {
	c.mu.Lock()
	defer c.mu.Unlock()

	for c.order.Len() > 0 {
		c.drop(c.order.Back())
	}
}

// Must be called with lock held.
func (c *LRU[K, V]) get(key K) (V, bool) {
	elem, ok := c.items[key]
	if !ok {
		var zero V
		return zero, false
	}
	c.order.MoveToFront(elem)
	return elem.Value.(*entry[K, V]).value, true
}

// Must be called with lock held.
func (c *LRU[K, V]) put(key K, value V) (V, bool) {
	if elem, ok := c.items[key]; ok {
		c.order.MoveToFront(elem)
		e := elem.Value.(*entry[K, V])
		old := e.value
		e.value = value
		return old, true
	}

	c.items[key] = c.order.PushFront(&entry[K, V]{key: key, value: value})
	if c.order.Len() > c.capacity {
		c.drop(c.order.Back())
	}

	var zero V
	return zero, false
}

// Must be called with lock held.
func (c *LRU[K, V]) drop(elem *list.Element) {
	c.order.Remove(elem)
	e := elem.Value.(*entry[K, V])
	delete(c.items, e.key)
	if c.onEvict != nil {
		c.onEvict(e.key, e.value)
	}
}
