// Package cache memoizes OpenLibrary search results so repeated identical
// queries do not re-hit the rate-limited remote service.
package cache

import (
	"context"
	"fmt"
	"sync"

	lru "github.com/hashicorp/golang-lru"
	"golang.org/x/sync/singleflight"

	"libraryapi/internal/platform/openlibrary"
)

// DefaultCapacity matches the source memoizer's 64 resident entries.
const DefaultCapacity = 64

// SearchFunc is the remote call being memoized.
type SearchFunc func(ctx context.Context, query, author string, limit int) (*openlibrary.SearchResult, error)

// Info is a snapshot of the cache counters, monotonic since the last Clear.
type Info struct {
	Hits     uint64 `json:"hits"`
	Misses   uint64 `json:"misses"`
	MaxSize  int    `json:"maxsize"`
	CurrSize int    `json:"currsize"`
}

// SearchCache is a bounded LRU memoizer around a SearchFunc. It is explicitly
// constructed and injectable; tests instantiate isolated instances.
//
// Keys are the exact (query, author, limit) triple with no normalization, so
// case or whitespace differences produce distinct entries. Error outcomes are
// not cached: a transient rate-limit failure must not keep surfacing for the
// cache's lifetime.
type SearchCache struct {
	search   SearchFunc
	capacity int

	mu      sync.Mutex
	entries *lru.Cache
	hits    uint64
	misses  uint64

	group singleflight.Group
}

func NewSearchCache(capacity int, search SearchFunc) *SearchCache {
	if capacity < 1 {
		capacity = DefaultCapacity
	}
	entries, err := lru.New(capacity)
	if err != nil {
		// lru.New only fails on non-positive sizes, which the guard above
		// rules out.
		panic(err)
	}
	return &SearchCache{
		search:   search,
		capacity: capacity,
		entries:  entries,
	}
}

func cacheKey(query, author string, limit int) string {
	return fmt.Sprintf("%s\x00%s\x00%d", query, author, limit)
}

// Get returns the memoized result for the key triple, calling the remote
// search on a miss. Overlapping calls for the identical key share a single
// in-flight remote call.
func (c *SearchCache) Get(ctx context.Context, query, author string, limit int) (*openlibrary.SearchResult, error) {
	key := cacheKey(query, author, limit)

	c.mu.Lock()
	if v, ok := c.entries.Get(key); ok {
		c.hits++
		c.mu.Unlock()
		return v.(*openlibrary.SearchResult), nil
	}
	c.misses++
	c.mu.Unlock()

	v, err, _ := c.group.Do(key, func() (any, error) {
		result, err := c.search(ctx, query, author, limit)
		if err != nil {
			return nil, err
		}
		c.mu.Lock()
		c.entries.Add(key, result)
		c.mu.Unlock()
		return result, nil
	})
	if err != nil {
		return nil, err
	}
	return v.(*openlibrary.SearchResult), nil
}

// Info reports the current counters.
func (c *SearchCache) Info() Info {
	c.mu.Lock()
	defer c.mu.Unlock()
	return Info{
		Hits:     c.hits,
		Misses:   c.misses,
		MaxSize:  c.capacity,
		CurrSize: c.entries.Len(),
	}
}

// Clear evicts all entries and resets the counters. In-flight Get calls
// complete with whatever state they captured.
func (c *SearchCache) Clear() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.entries.Purge()
	c.hits = 0
	c.misses = 0
}
