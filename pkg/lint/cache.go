package lint

import (
	"github.com/google/uuid"
	lru "github.com/hashicorp/golang-lru/v2"
)

// DefaultCacheCapacity is the number of documents a ContextCache remembers.
const DefaultCacheCapacity = 10

// ContextCache stores per-document values computed by a rule, keyed by
// Context.ID. Once full, the least recently used document is evicted. Safe
// for concurrent use, since one rule instance checks many documents in
// parallel.
type ContextCache[V any] struct {
	entries *lru.Cache[uuid.UUID, V]
}

// NewContextCache creates a cache holding at most capacity documents. A
// non-positive capacity uses DefaultCacheCapacity.
func NewContextCache[V any](capacity int) *ContextCache[V] {
	if capacity <= 0 {
		capacity = DefaultCacheCapacity
	}
	entries, err := lru.New[uuid.UUID, V](capacity)
	if err != nil {
		// lru.New only fails for a non-positive size.
		panic(err)
	}
	return &ContextCache[V]{entries: entries}
}

// Get returns the value stored for id and marks it as recently used.
func (c *ContextCache[V]) Get(id uuid.UUID) (V, bool) {
	return c.entries.Get(id)
}

// Put stores value for id, evicting the least recently used entry when the
// cache is full.
func (c *ContextCache[V]) Put(id uuid.UUID, value V) {
	c.entries.Add(id, value)
}

// GetOrCompute returns the value for id, computing and storing it on a miss.
func (c *ContextCache[V]) GetOrCompute(id uuid.UUID, compute func() V) V {
	if v, ok := c.entries.Get(id); ok {
		return v
	}
	v := compute()
	c.entries.Add(id, v)
	return v
}

// Len returns the number of cached documents.
func (c *ContextCache[V]) Len() int {
	return c.entries.Len()
}
