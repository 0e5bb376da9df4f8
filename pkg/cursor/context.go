// Package cursor classifies the text immediately before the edit cursor and
// plans how much of it a delete gesture removes.
//
// All positions and counts are in grapheme clusters (user-perceived characters),
// so composed characters and emoji sequences are never split.
//
// A cluster is a letter when its base rune is a Unicode letter; combining marks
// belong to the cluster of their base and so never break a word. Digits,
// punctuation and symbols are word boundaries. Whitespace means horizontal
// space only: U+0020, tab and the Zs category. Line breaks classify as other.
package cursor

import (
	"strings"
	"unicode"
	"unicode/utf8"

	"github.com/rivo/uniseg"
)

// Kind is the classification of the run before the cursor.
type Kind int

const (
	// Empty means there is no text before the cursor.
	Empty Kind = iota
	// InWord means the cursor follows a letter.
	InWord
	// InWhitespace means the cursor follows horizontal whitespace.
	InWhitespace
	// InOther means the cursor follows anything else.
	InOther
)

func (k Kind) String() string {
	switch k {
	case Empty:
		return "empty"
	case InWord:
		return "word"
	case InWhitespace:
		return "whitespace"
	case InOther:
		return "other"
	}
	return "unknown"
}

// Context is derived from the text before the cursor and never stored.
type Context struct {
	Kind Kind
	// Run is the trailing letter run, whitespace run, or single other cluster.
	Run string
	// Length is the number of clusters in Run.
	Length int

	before string
}

// Before returns the text the context was derived from.
func (c Context) Before() string {
	return c.before
}

// Derive classifies the text before the cursor.
func Derive(before string) Context {
	if before == "" {
		return Context{Kind: Empty}
	}

	clusters := split(before)
	last := clusters[len(clusters)-1]
	ctx := Context{before: before}

	var member func(string) bool
	switch {
	case isLetter(last):
		ctx.Kind = InWord
		member = isLetter
	case isSpace(last):
		ctx.Kind = InWhitespace
		member = isSpace
	default:
		ctx.Kind = InOther
		ctx.Run = last
		ctx.Length = 1
		return ctx
	}

	start := len(clusters) - 1
	for start > 0 && member(clusters[start-1]) {
		start--
	}
	ctx.Run = strings.Join(clusters[start:], "")
	ctx.Length = len(clusters) - start
	return ctx
}

// TrailingWord returns the letter run ending at the cursor, or "".
func TrailingWord(before string) string {
	ctx := Derive(before)
	if ctx.Kind != InWord {
		return ""
	}
	return ctx.Run
}

// Graphemes returns the number of user-perceived characters in s.
func Graphemes(s string) int {
	return uniseg.GraphemeClusterCount(s)
}

// TrimGraphemes removes the last n user-perceived characters of s.
func TrimGraphemes(s string, n int) string {
	if n <= 0 || s == "" {
		return s
	}
	clusters := split(s)
	if n >= len(clusters) {
		return ""
	}
	return strings.Join(clusters[:len(clusters)-n], "")
}

// Tail returns at most the last n user-perceived characters of s.
func Tail(s string, n int) string {
	if n <= 0 {
		return ""
	}
	clusters := split(s)
	if n >= len(clusters) {
		return s
	}
	return strings.Join(clusters[len(clusters)-n:], "")
}

// SplitFirst returns the first user-perceived character of s and the rest.
func SplitFirst(s string) (first, rest string) {
	first, rest, _, _ = uniseg.FirstGraphemeClusterInString(s, -1)
	return first, rest
}

func split(s string) []string {
	clusters := make([]string, 0, utf8.RuneCountInString(s))
	state := -1
	var cluster string
	for len(s) > 0 {
		cluster, s, _, state = uniseg.FirstGraphemeClusterInString(s, state)
		clusters = append(clusters, cluster)
	}
	return clusters
}

func baseRune(cluster string) rune {
	r, _ := utf8.DecodeRuneInString(cluster)
	return r
}

func isLetter(cluster string) bool {
	return unicode.IsLetter(baseRune(cluster))
}

func isSpace(cluster string) bool {
	r := baseRune(cluster)
	return r == ' ' || r == '\t' || unicode.Is(unicode.Zs, r)
}
