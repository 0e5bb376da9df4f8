package suggest

import (
	"github.com/bastiangx/wordkey/pkg/dictionary"
	"github.com/charmbracelet/log"

	"github.com/tchap/go-patricia/v2/patricia"
)

// DefaultCacheSize is the number of memoized queries kept by NewIndex.
const DefaultCacheSize = 128

// Index is a prefix trie over one language's vocabulary.
// It is not safe for concurrent use; the owning session serializes access.
type Index struct {
	trie      *patricia.Trie
	cache     *ResultCache
	words     int
	maxWeight int
}

var _ Suggester = (*Index)(nil)

// NewIndex creates an empty index with a result cache of DefaultCacheSize.
func NewIndex() *Index {
	return NewIndexWithCache(DefaultCacheSize)
}

// NewIndexWithCache creates an empty index; cacheSize <= 0 disables memoization.
func NewIndexWithCache(cacheSize int) *Index {
	return &Index{
		trie:  patricia.NewTrie(),
		cache: NewResultCache(cacheSize),
	}
}

// Load replaces the index contents with src. Duplicate words keep their highest weight.
func (ix *Index) Load(src dictionary.Source) {
	ix.Clear()
	if src == nil {
		return
	}

	for _, ws := range src.WeightedWords() {
		ix.insert(ws.Text, ws.Weight)
	}
	log.Debugf("Index loaded: %d words, max weight %d", ix.words, ix.maxWeight)
}

func (ix *Index) insert(word string, weight int) {
	if word == "" {
		return
	}
	key := patricia.Prefix(word)
	if existing := ix.trie.Get(key); existing != nil {
		if existing.(int) >= weight {
			return
		}
		ix.trie.Set(key, weight)
	} else {
		ix.trie.Insert(key, weight)
		ix.words++
	}
	if weight > ix.maxWeight {
		ix.maxWeight = weight
	}
}

// Clear drops every word and memoized result.
func (ix *Index) Clear() {
	ix.trie = patricia.NewTrie()
	ix.cache.Reset()
	ix.words = 0
	ix.maxWeight = 0
}

// Len returns the number of indexed words.
func (ix *Index) Len() int {
	return ix.words
}

// Weight returns the weight stored for word.
func (ix *Index) Weight(word string) (int, bool) {
	if word == "" {
		return 0, false
	}
	item := ix.trie.Get(patricia.Prefix(word))
	if item == nil {
		return 0, false
	}
	return item.(int), true
}

// Suggest returns up to limit words that start with prefix, ordered by
// descending weight, then shorter word, then lexicographically.
// An empty prefix or a non-positive limit yields no suggestions.
func (ix *Index) Suggest(prefix string, limit int) []string {
	ranked := ix.SuggestWeighted(prefix, limit)
	words := make([]string, len(ranked))
	for i, ws := range ranked {
		words[i] = ws.Text
	}
	return words
}

// SuggestWeighted is Suggest with the weights attached.
func (ix *Index) SuggestWeighted(prefix string, limit int) []dictionary.WeightedString {
	if prefix == "" || limit <= 0 {
		return []dictionary.WeightedString{}
	}
	if cached, ok := ix.cache.Get(prefix, limit); ok {
		return cached
	}

	top := newTopK(limit)
	err := ix.trie.VisitSubtree(patricia.Prefix(prefix), func(p patricia.Prefix, item patricia.Item) error {
		top.Offer(dictionary.WeightedString{Text: string(p), Weight: item.(int)})
		return nil
	})
	if err != nil {
		log.Errorf("Error visiting trie subtree: %v", err)
		return []dictionary.WeightedString{}
	}

	result := top.Sorted()
	ix.cache.Put(prefix, limit, result)
	return result
}

// Stats returns statistics about the loaded vocabulary
func (ix *Index) Stats() map[string]int {
	stats := map[string]int{
		"totalWords": ix.words,
		"maxWeight":  ix.maxWeight,
	}
	for k, v := range ix.cache.Stats() {
		stats[k] = v
	}
	return stats
}
