// Package suggest is the core, providing the trie traversals and top-k retrieval of
// ranked completions for a partial word.
package suggest

import "github.com/bastiangx/wordkey/pkg/dictionary"

// Suggester defines the interface for word completion engines
type Suggester interface {
	// Load discards the current contents and indexes every word of src
	Load(src dictionary.Source)

	// Clear empties the index
	Clear()

	// Suggest returns up to limit words starting with prefix, best first
	Suggest(prefix string, limit int) []string

	// SuggestWeighted is Suggest with the weights attached
	SuggestWeighted(prefix string, limit int) []dictionary.WeightedString

	// Len returns the number of indexed words
	Len() int
}
