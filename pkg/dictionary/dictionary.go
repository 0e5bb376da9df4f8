// Package dictionary holds the weighted vocabularies that feed the suggestion index.
//
// A vocabulary is a flat list of WeightedString entries, one per word. Sources can be
// plain text files, the chunked binary files produced for wordserve, or a SQLite table.
// Every source goes through Merge so duplicates collapse into their highest weight.
package dictionary

import (
	"strings"
	"unicode/utf8"
)

// WeightedString is a word paired with its preference score.
type WeightedString struct {
	Text   string
	Weight int
}

// Less reports whether a ranks before b: higher weight first,
// then the shorter word, then lexicographic order.
func Less(a, b WeightedString) bool {
	if a.Weight != b.Weight {
		return a.Weight > b.Weight
	}
	la, lb := utf8.RuneCountInString(a.Text), utf8.RuneCountInString(b.Text)
	if la != lb {
		return la < lb
	}
	return a.Text < b.Text
}

// Source supplies the weighted words of one language.
type Source interface {
	WeightedWords() []WeightedString
}

// Vocabulary is an in-memory Source with unique words.
type Vocabulary []WeightedString

// WeightedWords returns the entries.
func (v Vocabulary) WeightedWords() []WeightedString {
	return v
}

// Len returns the number of words.
func (v Vocabulary) Len() int {
	return len(v)
}

// Options filter entries while merging.
type Options struct {
	// MaxWords caps the vocabulary size, 0 keeps everything.
	MaxWords int
	// MinWeight drops entries weighted below it.
	MinWeight int
}

// Merge collapses duplicate words, keeping the highest weight seen, and drops
// empty words. Entries keep the order in which a word first appeared.
func Merge(entries []WeightedString, opts Options) Vocabulary {
	index := make(map[string]int, len(entries))
	out := make(Vocabulary, 0, len(entries))

	for _, e := range entries {
		word := strings.TrimSpace(e.Text)
		if word == "" || e.Weight < opts.MinWeight {
			continue
		}
		if i, ok := index[word]; ok {
			if e.Weight > out[i].Weight {
				out[i].Weight = e.Weight
			}
			continue
		}
		if opts.MaxWords > 0 && len(out) >= opts.MaxWords {
			continue
		}
		index[word] = len(out)
		out = append(out, WeightedString{Text: word, Weight: e.Weight})
	}
	return out
}

// FromMap builds a Vocabulary from a word -> weight map.
func FromMap(words map[string]int) Vocabulary {
	entries := make([]WeightedString, 0, len(words))
	for w, weight := range words {
		entries = append(entries, WeightedString{Text: w, Weight: weight})
	}
	return Merge(entries, Options{})
}
