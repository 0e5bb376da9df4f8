package language

import (
	"errors"
	"sort"
	"unicode/utf8"

	"github.com/tchap/go-patricia/v2/patricia"
)

var errMatched = errors.New("matched")

// SuffixSet answers "does this text end with any of these suffixes".
// Suffixes are stored reversed so a suffix match becomes a prefix walk.
type SuffixSet struct {
	trie   *patricia.Trie
	maxLen int
	count  int
}

// NewSuffixSet builds a set from suffixes, ignoring empty and repeated ones.
func NewSuffixSet(suffixes ...string) *SuffixSet {
	s := &SuffixSet{trie: patricia.NewTrie()}
	for _, suffix := range suffixes {
		if suffix == "" {
			continue
		}
		if s.trie.Insert(patricia.Prefix(reverse(suffix)), suffix) {
			s.count++
			if len(suffix) > s.maxLen {
				s.maxLen = len(suffix)
			}
		}
	}
	return s
}

// MatchAny reports whether text ends with a suffix in the set.
func (s *SuffixSet) MatchAny(text string) bool {
	if s == nil || s.count == 0 || text == "" {
		return false
	}

	// Only the last maxLen bytes can take part in a match.
	tail := text
	if len(tail) > s.maxLen {
		start := len(tail) - s.maxLen
		for start > 0 && !utf8.RuneStart(tail[start]) {
			start--
		}
		tail = tail[start:]
	}

	err := s.trie.VisitPrefixes(patricia.Prefix(reverse(tail)), func(_ patricia.Prefix, _ patricia.Item) error {
		return errMatched
	})
	return err == errMatched
}

// Len returns the number of suffixes.
func (s *SuffixSet) Len() int {
	if s == nil {
		return 0
	}
	return s.count
}

// Suffixes returns the members in sorted order.
func (s *SuffixSet) Suffixes() []string {
	if s == nil {
		return nil
	}
	out := make([]string, 0, s.count)
	_ = s.trie.Visit(func(_ patricia.Prefix, item patricia.Item) error {
		out = append(out, item.(string))
		return nil
	})
	sort.Strings(out)
	return out
}

func reverse(s string) string {
	runes := []rune(s)
	for i, j := 0, len(runes)-1; i < j; i, j = i+1, j-1 {
		runes[i], runes[j] = runes[j], runes[i]
	}
	return string(runes)
}
