package sentiment

import (
	"fmt"
	"sync/atomic"

	lru "github.com/hashicorp/golang-lru/v2"

	"github.com/spacesedan/coinsignal/internal/models"
)

const DefaultCacheSize = 1000

// CachedAnalyzer wraps an Analyzer with a bounded LRU cache keyed by
// normalized text. Reposts and quote spam hit the same entry. The cache
// is invalidated only by Clear, never implicitly.
type CachedAnalyzer struct {
	inner  Analyzer
	cache  *lru.Cache[string, models.PostSentiment]
	hits   atomic.Int64
	misses atomic.Int64
}

func NewCachedAnalyzer(inner Analyzer, capacity int) (*CachedAnalyzer, error) {
	if capacity <= 0 {
		capacity = DefaultCacheSize
	}

	cache, err := lru.New[string, models.PostSentiment](capacity)
	if err != nil {
		return nil, fmt.Errorf("[SentimentCache] Failed to create cache: %w", err)
	}

	return &CachedAnalyzer{
		inner: inner,
		cache: cache,
	}, nil
}

func (c *CachedAnalyzer) Analyze(text string) (models.PostSentiment, error) {
	key := cacheKey(text)

	if scores, ok := c.cache.Get(key); ok {
		c.hits.Add(1)
		return scores, nil
	}

	scores, err := c.inner.Analyze(text)
	if err != nil {
		// Failures are not cached; the next attempt gets a fresh shot.
		return models.PostSentiment{}, err
	}

	c.cache.Add(key, scores)
	c.misses.Add(1)

	return scores, nil
}

// Clear drops every cached entry.
func (c *CachedAnalyzer) Clear() {
	c.cache.Purge()
}

// Stats reports cache hits and misses since construction.
func (c *CachedAnalyzer) Stats() (hits, misses int64) {
	return c.hits.Load(), c.misses.Load()
}

// Len reports the number of cached entries.
func (c *CachedAnalyzer) Len() int {
	return c.cache.Len()
}
