// Package cache holds finished analyses in memory so a re-submitted demande
// is served without re-running the pipeline. Entries expire after a TTL and
// the cache is bounded by LRU eviction.
package cache

import (
	"container/list"
	"sync"
	"time"

	"assurdoc/internal/domain"
)

type entry struct {
	key       string
	value     *domain.DemandeAnalysis
	expiresAt time.Time
}

// AnalysisCache is safe for concurrent use. All operations take the single
// internal mutex; none of them block on anything else, so hold times stay
// short.
type AnalysisCache struct {
	mu      sync.Mutex
	ttl     time.Duration
	maxSize int
	ll      *list.List
	items   map[string]*list.Element

	now func() time.Time
}

// New creates a cache holding at most maxSize entries for at most ttl each.
func New(ttl time.Duration, maxSize int) *AnalysisCache {
	return &AnalysisCache{
		ttl:     ttl,
		maxSize: maxSize,
		ll:      list.New(),
		items:   make(map[string]*list.Element),
		now:     time.Now,
	}
}

// Get returns the cached analysis for a demande. An expired entry is
// removed and reported as a miss; a hit becomes the most recently used.
func (c *AnalysisCache) Get(demandeID string) (*domain.DemandeAnalysis, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()

	el, ok := c.items[demandeID]
	if !ok {
		return nil, false
	}
	e := el.Value.(*entry)
	if c.now().After(e.expiresAt) {
		c.remove(el)
		return nil, false
	}
	c.ll.MoveToFront(el)
	return e.value, true
}

// Set stores an analysis. Expired entries are purged before the size bound
// is enforced, so a full-of-stale cache never evicts a live entry.
func (c *AnalysisCache) Set(demandeID string, a *domain.DemandeAnalysis) {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.purgeExpired()

	if el, ok := c.items[demandeID]; ok {
		e := el.Value.(*entry)
		e.value = a
		e.expiresAt = c.now().Add(c.ttl)
		c.ll.MoveToFront(el)
		return
	}

	el := c.ll.PushFront(&entry{
		key:       demandeID,
		value:     a,
		expiresAt: c.now().Add(c.ttl),
	})
	c.items[demandeID] = el

	for c.maxSize > 0 && c.ll.Len() > c.maxSize {
		c.remove(c.ll.Back())
	}
}

// Delete removes one entry, if present.
func (c *AnalysisCache) Delete(demandeID string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if el, ok := c.items[demandeID]; ok {
		c.remove(el)
	}
}

// Len reports the number of entries, expired ones included until their
// next touch.
func (c *AnalysisCache) Len() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.ll.Len()
}

func (c *AnalysisCache) purgeExpired() {
	now := c.now()
	for el := c.ll.Back(); el != nil; {
		prev := el.Prev()
		if now.After(el.Value.(*entry).expiresAt) {
			c.remove(el)
		}
		el = prev
	}
}

func (c *AnalysisCache) remove(el *list.Element) {
	c.ll.Remove(el)
	delete(c.items, el.Value.(*entry).key)
}
