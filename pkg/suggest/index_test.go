package suggest

import (
	"fmt"
	"reflect"
	"strings"
	"testing"

	"github.com/bastiangx/wordkey/pkg/dictionary"
)

func sampleVocabulary() dictionary.Vocabulary {
	return dictionary.Vocabulary{
		{Text: "hello", Weight: 10},
		{Text: "help", Weight: 8},
		{Text: "hi", Weight: 5},
	}
}

func TestSuggestScenario(t *testing.T) {
	ix := NewIndex()
	ix.Load(sampleVocabulary())

	got := ix.Suggest("he", 2)
	want := []string{"hello", "help"}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("Suggest(he, 2) = %v, want %v", got, want)
	}
}

func TestSuggestOrdering(t *testing.T) {
	ix := NewIndex()
	ix.Load(dictionary.Vocabulary{
		{Text: "cart", Weight: 3},
		{Text: "car", Weight: 3},
		{Text: "cab", Weight: 3},
		{Text: "cat", Weight: 9},
		{Text: "carbon", Weight: 1},
	})

	got := ix.Suggest("ca", 10)
	want := []string{"cat", "cab", "car", "cart", "carbon"}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("Suggest(ca) = %v, want %v", got, want)
	}
}

func TestSuggestEdgeCases(t *testing.T) {
	ix := NewIndex()
	ix.Load(sampleVocabulary())

	tests := []struct {
		name   string
		prefix string
		limit  int
	}{
		{"empty prefix", "", 5},
		{"no match", "xyz", 5},
		{"missing child mid-walk", "hex", 5},
		{"zero limit", "h", 0},
		{"negative limit", "h", -1},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := ix.Suggest(tt.prefix, tt.limit)
			if got == nil || len(got) != 0 {
				t.Errorf("expected empty non-nil result, got %#v", got)
			}
		})
	}
}

func TestSuggestIncludesExactWord(t *testing.T) {
	ix := NewIndex()
	ix.Load(sampleVocabulary())

	got := ix.Suggest("help", 5)
	if !reflect.DeepEqual(got, []string{"help"}) {
		t.Errorf("Suggest(help) = %v", got)
	}
}

func TestSuggestOnlyMatchingSortedWords(t *testing.T) {
	words := make(dictionary.Vocabulary, 0, 500)
	for i := 0; i < 500; i++ {
		words = append(words, dictionary.WeightedString{
			Text:   fmt.Sprintf("w%03d", i),
			Weight: (i * 37) % 101,
		})
	}
	ix := NewIndex()
	ix.Load(words)

	for _, prefix := range []string{"w", "w1", "w12", "w0"} {
		got := ix.SuggestWeighted(prefix, 17)
		if len(got) > 17 {
			t.Fatalf("prefix %s: limit exceeded: %d", prefix, len(got))
		}
		for i, ws := range got {
			if !strings.HasPrefix(ws.Text, prefix) {
				t.Errorf("prefix %s: %q does not match", prefix, ws.Text)
			}
			if i > 0 && !dictionary.Less(got[i-1], ws) {
				t.Errorf("prefix %s: %v ranked before %v", prefix, got[i-1], ws)
			}
		}

		// the cut must not drop anything better than the last kept entry
		if len(got) == 17 {
			last := got[len(got)-1]
			for _, w := range words {
				if strings.HasPrefix(w.Text, prefix) && dictionary.Less(w, last) {
					found := false
					for _, g := range got {
						if g == w {
							found = true
						}
					}
					if !found {
						t.Errorf("prefix %s: %v should have been kept", prefix, w)
					}
				}
			}
		}
	}
}

func TestLoadReplacesPreviousVocabulary(t *testing.T) {
	ix := NewIndex()
	ix.Load(dictionary.Vocabulary{{Text: "apple", Weight: 5}, {Text: "apricot", Weight: 4}})
	if got := ix.Suggest("ap", 5); len(got) != 2 {
		t.Fatalf("expected 2 suggestions, got %v", got)
	}

	ix.Load(dictionary.Vocabulary{{Text: "apricot", Weight: 1}, {Text: "banana", Weight: 9}})
	got := ix.Suggest("ap", 5)
	if !reflect.DeepEqual(got, []string{"apricot"}) {
		t.Errorf("stale words after reload: %v", got)
	}
	if ix.Len() != 2 {
		t.Errorf("expected 2 words, got %d", ix.Len())
	}
	if w, _ := ix.Weight("apricot"); w != 1 {
		t.Errorf("expected reloaded weight 1, got %d", w)
	}
}

func TestLoadDuplicatesKeepHighest(t *testing.T) {
	ix := NewIndex()
	ix.Load(dictionary.Vocabulary{
		{Text: "go", Weight: 2},
		{Text: "go", Weight: 7},
		{Text: "go", Weight: 4},
	})
	if ix.Len() != 1 {
		t.Errorf("expected one entry per word, got %d", ix.Len())
	}
	if w, ok := ix.Weight("go"); !ok || w != 7 {
		t.Errorf("expected weight 7, got %d (%v)", w, ok)
	}
}

func TestClearIdempotent(t *testing.T) {
	ix := NewIndex()
	ix.Load(sampleVocabulary())

	ix.Clear()
	first := ix.Suggest("h", 5)
	ix.Clear()
	second := ix.Suggest("h", 5)

	if len(first) != 0 || !reflect.DeepEqual(first, second) {
		t.Errorf("clear not idempotent: %v vs %v", first, second)
	}
	if ix.Len() != 0 {
		t.Errorf("expected empty index, got %d", ix.Len())
	}
}

func TestRepeatedSuggestIdentical(t *testing.T) {
	ix := NewIndex()
	ix.Load(sampleVocabulary())

	first := ix.Suggest("h", 3)
	first[0] = "mutated"
	second := ix.Suggest("h", 3)
	third := ix.Suggest("h", 3)

	if second[0] != "hello" || !reflect.DeepEqual(second, third) {
		t.Errorf("repeated queries differ: %v vs %v", second, third)
	}
	if ix.Stats()["cacheHits"] == 0 {
		t.Error("expected repeated query to be served from the cache")
	}
}

func TestLoadNilSource(t *testing.T) {
	ix := NewIndex()
	ix.Load(sampleVocabulary())
	ix.Load(nil)
	if ix.Len() != 0 {
		t.Errorf("expected nil source to leave an empty index, got %d", ix.Len())
	}
}

func TestCaseFolder(t *testing.T) {
	ix := NewIndex()
	ix.Load(sampleVocabulary())
	cf := NewCaseFolder("en")

	tests := []struct {
		prefix string
		want   []string
	}{
		{"he", []string{"hello", "help"}},
		{"He", []string{"Hello", "Help"}},
		{"HE", []string{"HEllo", "HElp"}},
	}
	for _, tt := range tests {
		got := cf.Suggest(ix, tt.prefix, 2)
		if !reflect.DeepEqual(got, tt.want) {
			t.Errorf("Suggest(%s) = %v, want %v", tt.prefix, got, tt.want)
		}
	}

	if got := ApplyCapitalization("über", "Ü"); got != "Über" {
		t.Errorf("ApplyCapitalization = %s", got)
	}
}

func TestCaseFolderKeepsCapitalizedWords(t *testing.T) {
	ix := NewIndex()
	ix.Load(dictionary.Vocabulary{
		{Text: "Swift", Weight: 10},
		{Text: "swim", Weight: 5},
		{Text: "Swim", Weight: 2},
		{Text: "sweet", Weight: 1},
	})
	cf := NewCaseFolder("en")

	tests := []struct {
		prefix string
		limit  int
		want   []string
	}{
		{"Sw", 5, []string{"Swift", "Swim", "Sweet"}},
		{"Sw", 1, []string{"Swift"}},
		{"sw", 5, []string{"swim", "sweet"}},
		{"Swi", 0, []string{}},
	}
	for _, tt := range tests {
		got := cf.Suggest(ix, tt.prefix, tt.limit)
		if !reflect.DeepEqual(got, tt.want) {
			t.Errorf("Suggest(%s, %d) = %v, want %v", tt.prefix, tt.limit, got, tt.want)
		}
	}
}
