package server

import (
	"sync"

	"github.com/golang/groupcache/lru"
	"github.com/jonathan/career-matcher/internal/matching"
)

// resultCache holds recent reports keyed by input fingerprint.
// A nil *resultCache is a valid, always-missing cache.
type resultCache struct {
	mu   sync.Mutex
	lru  *lru.Cache
	hits uint64
	miss uint64
}

func newResultCache(size int) *resultCache {
	if size <= 0 {
		return nil
	}
	return &resultCache{lru: lru.New(size)}
}

func (c *resultCache) get(key string) (matching.Report, bool) {
	if c == nil {
		return matching.Report{}, false
	}
	c.mu.Lock()
	defer c.mu.Unlock()

	v, ok := c.lru.Get(key)
	if !ok {
		c.miss++
		return matching.Report{}, false
	}
	c.hits++
	return v.(matching.Report), true
}

func (c *resultCache) put(key string, r matching.Report) {
	if c == nil {
		return
	}
	c.mu.Lock()
	c.lru.Add(key, r)
	c.mu.Unlock()
}

// cacheStats is logged at shutdown.
type cacheStats struct {
	Entries int    `json:"entries"`
	Hits    uint64 `json:"hits"`
	Misses  uint64 `json:"misses"`
}

func (c *resultCache) stats() *cacheStats {
	if c == nil {
		return nil
	}
	c.mu.Lock()
	defer c.mu.Unlock()
	return &cacheStats{Entries: c.lru.Len(), Hits: c.hits, Misses: c.miss}
}
