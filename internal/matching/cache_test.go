package matching

import (
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jonathan/portfolio-ranker/internal/types"
)

func TestCache_ReusesSets(t *testing.T) {
	cache := NewCache()
	role := &types.Role{ID: "Game Designer", Matches: []types.Role{{ID: "Designer"}}}

	first, err := cache.Get(role, DefaultWeights())
	require.NoError(t, err)
	second, err := cache.Get(role, Weights{})
	require.NoError(t, err)

	assert.Same(t, first, second)
	assert.Equal(t, CacheStats{Hits: 1, Misses: 1, Size: 1}, cache.Stats())
}

func TestCache_KeyIncludesMatchesAndWeights(t *testing.T) {
	cache := NewCache()

	a, err := cache.Get(&types.Role{ID: "Game Designer"}, DefaultWeights())
	require.NoError(t, err)
	b, err := cache.Get(&types.Role{ID: "Game Designer", Matches: []types.Role{{ID: "Designer"}}}, DefaultWeights())
	require.NoError(t, err)
	c, err := cache.Get(&types.Role{ID: "Game Designer", NotMatches: []types.Role{{ID: "Level Designer"}}}, DefaultWeights())
	require.NoError(t, err)
	d, err := cache.Get(&types.Role{ID: "Game Designer"}, Weights{PriorityStep: 0.5})
	require.NoError(t, err)

	assert.NotSame(t, a, b)
	assert.NotSame(t, a, c)
	assert.NotSame(t, a, d)
	assert.Equal(t, 4, cache.Stats().Size)
}

func TestCache_ConcurrentGetBuildsOnce(t *testing.T) {
	cache := NewCache()
	role := &types.Role{ID: "AI Programmer", Matches: []types.Role{{ID: "Programmer"}}}

	const workers = 16
	results := make([]*MatcherSet, workers)
	var wg sync.WaitGroup
	for i := 0; i < workers; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			set, err := cache.Get(role, DefaultWeights())
			assert.NoError(t, err)
			results[i] = set
		}(i)
	}
	wg.Wait()

	for _, set := range results[1:] {
		assert.Same(t, results[0], set)
	}
	stats := cache.Stats()
	assert.Equal(t, uint64(1), stats.Misses)
	assert.Equal(t, 1, stats.Size)
}

func TestCache_ErrorsAreNotCached(t *testing.T) {
	cache := NewCache()

	_, err := cache.Get(&types.Role{ID: "  "}, DefaultWeights())
	assert.Error(t, err)
	assert.Equal(t, 0, cache.Stats().Size)
}

func TestCache_NilCacheBuilds(t *testing.T) {
	var cache *Cache

	set, err := cache.Get(&types.Role{ID: "Designer"}, DefaultWeights())
	require.NoError(t, err)
	assert.Equal(t, "Designer", set.Role)
	assert.Equal(t, CacheStats{}, cache.Stats())
}
