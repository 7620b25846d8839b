// Package cache provides LRU caching for parsed tables.
package cache

import (
	"container/list"
	"sync"

	"github.com/Fenex/vangers-tool/core/tables"
)

// Cache is a generic LRU cache interface.
type Cache[K comparable, V any] interface {
	// Get retrieves a value and marks it most recently used.
	Get(key K) (V, bool)

	// Put stores a value, evicting the least recently used entry when full.
	Put(key K, value V)

	// Remove removes a value from the cache.
	Remove(key K)

	// Clear removes all entries from the cache.
	Clear()

	// Len returns the number of entries in the cache.
	Len() int

	// Stats returns cache statistics.
	Stats() Stats
}

// Stats contains cache statistics.
type Stats struct {
	Hits      int64
	Misses    int64
	Evictions int64
	Size      int
	MaxSize   int
}

// Config contains cache configuration options.
type Config[K comparable, V any] struct {
	// MaxSize is the maximum number of entries (0 = unlimited).
	MaxSize int

	// OnEvict is called when an entry leaves the cache for any reason other
	// than Clear.
	OnEvict func(key K, value V)
}

type entry[K comparable, V any] struct {
	key   K
	value V
}

// lruCache is a thread-safe LRU cache implementation.
type lruCache[K comparable, V any] struct {
	mu        sync.Mutex
	config    Config[K, V]
	entries   map[K]*list.Element
	evictList *list.List
	stats     Stats
}

// NewLRUCache creates a new LRU cache with the given configuration.
func NewLRUCache[K comparable, V any](config Config[K, V]) Cache[K, V] {
	if config.MaxSize < 0 {
		config.MaxSize = 0
	}
	return &lruCache[K, V]{
		config:    config,
		entries:   make(map[K]*list.Element),
		evictList: list.New(),
	}
}

func (c *lruCache[K, V]) Get(key K) (V, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()

	el, ok := c.entries[key]
	if !ok {
		c.stats.Misses++
		var zero V
		return zero, false
	}
	c.evictList.MoveToFront(el)
	c.stats.Hits++
	return el.Value.(*entry[K, V]).value, true
}

func (c *lruCache[K, V]) Put(key K, value V) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if el, ok := c.entries[key]; ok {
		c.evictList.MoveToFront(el)
		el.Value.(*entry[K, V]).value = value
		return
	}

	c.entries[key] = c.evictList.PushFront(&entry[K, V]{key: key, value: value})
	if c.config.MaxSize > 0 && c.evictList.Len() > c.config.MaxSize {
		if oldest := c.evictList.Back(); oldest != nil {
			c.removeElement(oldest)
			c.stats.Evictions++
		}
	}
}

func (c *lruCache[K, V]) Remove(key K) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if el, ok := c.entries[key]; ok {
		c.removeElement(el)
	}
}

func (c *lruCache[K, V]) Clear() {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.entries = make(map[K]*list.Element)
	c.evictList.Init()
}

func (c *lruCache[K, V]) Len() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.evictList.Len()
}

func (c *lruCache[K, V]) Stats() Stats {
	c.mu.Lock()
	defer c.mu.Unlock()

	s := c.stats
	s.Size = c.evictList.Len()
	s.MaxSize = c.config.MaxSize
	return s
}

func (c *lruCache[K, V]) removeElement(el *list.Element) {
	c.evictList.Remove(el)
	e := el.Value.(*entry[K, V])
	delete(c.entries, e.key)

	if c.config.OnEvict != nil {
		c.config.OnEvict(e.key, e.value)
	}
}

// Key identifies one parse of one file: a table parsed from identical bytes
// is the same table.
type Key struct {
	Table       string // Registry name
	Fingerprint string // BLAKE3 of the raw file
}

// TableCache caches parsed tables by Key.
type TableCache struct {
	cache Cache[Key, tables.Table]
}

// DefaultTableEntries is the capacity NewDefaultTableCache uses.
const DefaultTableEntries = 32

// NewTableCache creates a table cache holding at most maxEntries tables.
func NewTableCache(maxEntries int) *TableCache {
	return &TableCache{
		cache: NewLRUCache(Config[Key, tables.Table]{MaxSize: maxEntries}),
	}
}

// NewDefaultTableCache creates a table cache with DefaultTableEntries slots.
func NewDefaultTableCache() *TableCache {
	return NewTableCache(DefaultTableEntries)
}

// Get returns the table parsed from the file with the given fingerprint.
func (c *TableCache) Get(table, fingerprint string) (tables.Table, bool) {
	return c.cache.Get(Key{Table: table, Fingerprint: fingerprint})
}

// Put stores a parsed table.
func (c *TableCache) Put(table, fingerprint string, t tables.Table) {
	c.cache.Put(Key{Table: table, Fingerprint: fingerprint}, t)
}

// Clear removes all tables.
func (c *TableCache) Clear() {
	c.cache.Clear()
}

// Len returns the number of cached tables.
func (c *TableCache) Len() int {
	return c.cache.Len()
}

// Stats returns cache statistics.
func (c *TableCache) Stats() Stats {
	return c.cache.Stats()
}
