package utils

// DedupFilter drops words it has already seen.
type DedupFilter struct {
	seen map[string]struct{}
}

// NewDedupFilter creates a filter sized for about n words.
func NewDedupFilter(n int) *DedupFilter {
	return &DedupFilter{seen: make(map[string]struct{}, n)}
}

// ShouldInclude reports whether word is new, and remembers it.
func (f *DedupFilter) ShouldInclude(word string) bool {
	if _, ok := f.seen[word]; ok {
		return false
	}
	f.seen[word] = struct{}{}
	return true
}
