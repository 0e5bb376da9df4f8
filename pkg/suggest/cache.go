package suggest

import (
	"math"

	"github.com/bastiangx/wordkey/pkg/dictionary"
	"github.com/charmbracelet/log"
)

type cacheKey struct {
	prefix string
	limit  int
}

// ResultCache memoizes ranked query results with least-recently-used eviction.
// It must be reset whenever the index it fronts changes.
type ResultCache struct {
	results     map[cacheKey][]dictionary.WeightedString
	accessTime  map[cacheKey]int64
	accessCount int64
	hits        int
	maxEntries  int
}

// NewResultCache creates a cache holding up to maxEntries queries.
func NewResultCache(maxEntries int) *ResultCache {
	if maxEntries < 0 {
		maxEntries = 0
	}
	return &ResultCache{
		results:    make(map[cacheKey][]dictionary.WeightedString, maxEntries),
		accessTime: make(map[cacheKey]int64, maxEntries),
		maxEntries: maxEntries,
	}
}

// Get returns a copy of the memoized result for (prefix, limit).
func (rc *ResultCache) Get(prefix string, limit int) ([]dictionary.WeightedString, bool) {
	key := cacheKey{prefix, limit}
	result, ok := rc.results[key]
	if !ok {
		return nil, false
	}
	rc.hits++
	rc.accessTime[key] = rc.nextAccessTime()
	return append([]dictionary.WeightedString(nil), result...), true
}

// Put stores a copy of result for (prefix, limit).
func (rc *ResultCache) Put(prefix string, limit int, result []dictionary.WeightedString) {
	if rc.maxEntries == 0 {
		return
	}
	key := cacheKey{prefix, limit}
	if _, exists := rc.results[key]; !exists && len(rc.results) >= rc.maxEntries {
		rc.evictLRU()
	}
	rc.results[key] = append([]dictionary.WeightedString(nil), result...)
	rc.accessTime[key] = rc.nextAccessTime()
}

// Reset drops every memoized result.
func (rc *ResultCache) Reset() {
	clear(rc.results)
	clear(rc.accessTime)
	rc.accessCount = 0
	rc.hits = 0
}

// Len returns the number of memoized queries.
func (rc *ResultCache) Len() int {
	return len(rc.results)
}

func (rc *ResultCache) Stats() map[string]int {
	return map[string]int{
		"cachedQueries": len(rc.results),
		"maxCached":     rc.maxEntries,
		"cacheHits":     rc.hits,
	}
}

func (rc *ResultCache) nextAccessTime() int64 {
	rc.accessCount++
	return rc.accessCount
}

func (rc *ResultCache) evictLRU() {
	var oldest cacheKey
	var oldestTime int64 = math.MaxInt64
	found := false

	for key, accessTime := range rc.accessTime {
		if accessTime < oldestTime {
			oldestTime = accessTime
			oldest = key
			found = true
		}
	}

	if found {
		delete(rc.results, oldest)
		delete(rc.accessTime, oldest)
		log.Debugf("Evicted query '%s' (limit %d) from result cache", oldest.prefix, oldest.limit)
	}
}
