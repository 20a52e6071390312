package matching

import (
	"strconv"
	"strings"
	"sync"
	"sync/atomic"

	"golang.org/x/sync/singleflight"

	"github.com/jonathan/portfolio-ranker/internal/types"
)

// Cache memoizes compiled matcher sets per role configuration.
//
// Role data is immutable for the life of a process, so entries never expire.
// Concurrent requests for the same key share one build. A nil *Cache is valid
// and builds on every call.
type Cache struct {
	mu    sync.RWMutex
	sets  map[string]*MatcherSet
	group singleflight.Group

	hits   atomic.Uint64
	misses atomic.Uint64
}

// CacheStats reports cache effectiveness.
type CacheStats struct {
	Hits   uint64
	Misses uint64
	Size   int
}

// NewCache creates an empty matcher cache.
func NewCache() *Cache {
	return &Cache{sets: make(map[string]*MatcherSet)}
}

// Get returns the matcher set for role, building it on first use.
func (c *Cache) Get(role *types.Role, weights Weights) (*MatcherSet, error) {
	if c == nil || role == nil {
		return BuildMatchers(role, weights)
	}

	key := cacheKey(role, weights)
	if set, ok := c.lookup(key); ok {
		c.hits.Add(1)
		return set, nil
	}

	v, err, _ := c.group.Do(key, func() (any, error) {
		if set, ok := c.lookup(key); ok {
			return set, nil
		}

		c.misses.Add(1)
		set, err := BuildMatchers(role, weights)
		if err != nil {
			return nil, err
		}

		c.mu.Lock()
		c.sets[key] = set
		c.mu.Unlock()
		return set, nil
	})
	if err != nil {
		return nil, err
	}
	return v.(*MatcherSet), nil
}

func (c *Cache) lookup(key string) (*MatcherSet, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	set, ok := c.sets[key]
	return set, ok
}

// Stats returns hit, miss and size counters.
func (c *Cache) Stats() CacheStats {
	if c == nil {
		return CacheStats{}
	}

	c.mu.RLock()
	size := len(c.sets)
	c.mu.RUnlock()

	return CacheStats{
		Hits:   c.hits.Load(),
		Misses: c.misses.Load(),
		Size:   size,
	}
}

// cacheKey identifies a (role phrase, matches, notMatches, weights) combination.
func cacheKey(role *types.Role, weights Weights) string {
	weights = weights.OrDefault()

	var sb strings.Builder
	sb.WriteString(role.ID)
	sb.WriteByte(0)
	sb.WriteString(strings.Join(role.MatchIDs(), "\x1f"))
	sb.WriteByte(0)
	sb.WriteString(strings.Join(role.NotMatchIDs(), "\x1f"))
	sb.WriteByte(0)
	sb.WriteString(strconv.FormatFloat(weights.PriorityStep, 'g', -1, 64))
	sb.WriteByte(0)
	sb.WriteString(string(weights.Specificity))
	return sb.String()
}
