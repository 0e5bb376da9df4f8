package language

import (
	"errors"
	"os"
	"path/filepath"
	"reflect"
	"strings"
	"testing"

	"github.com/bastiangx/wordkey/pkg/dictionary"
)

func testProfile(id string) *Profile {
	return &Profile{ID: id, Name: id, Secondary: PrimaryGrid, Tertiary: PrimaryGrid}
}

func TestCycleWraps(t *testing.T) {
	c, err := NewCycle(testProfile("a"), testProfile("b"), testProfile("c"))
	if err != nil {
		t.Fatalf("NewCycle: %v", err)
	}

	if p := c.Decrement(); p.ID != "c" || c.Index() != 2 {
		t.Errorf("decrement from 0 should wrap to c, got %s at %d", p.ID, c.Index())
	}
	if p := c.Increment(); p.ID != "a" || c.Index() != 0 {
		t.Errorf("increment from 2 should wrap to a, got %s at %d", p.ID, c.Index())
	}

	for n := 0; n < c.Len(); n++ {
		c.Increment()
	}
	if c.Index() != 0 || c.Current().ID != "a" {
		t.Errorf("N increments should return to start, got %d", c.Index())
	}
}

func TestCycleEmpty(t *testing.T) {
	if _, err := NewCycle(); !errors.Is(err, ErrEmptyCycle) {
		t.Errorf("expected ErrEmptyCycle, got %v", err)
	}
}

func TestCycleOwnsProfiles(t *testing.T) {
	list := []*Profile{testProfile("a"), testProfile("b")}
	c, _ := NewCycle(list...)
	list[0] = testProfile("z")
	if c.Current().ID != "a" {
		t.Error("cycle must not alias the caller's slice")
	}
}

func TestValidate(t *testing.T) {
	p := testProfile("ok")
	if err := p.Validate(PrimaryGrid); err != nil {
		t.Errorf("unexpected error: %v", err)
	}

	short := Grid{{"1"}, {"2"}, {"3"}}
	p.Tertiary = short
	if err := p.Validate(PrimaryGrid); !errors.Is(err, ErrGridShape) {
		t.Errorf("expected ErrGridShape, got %v", err)
	}
}

func TestGridAt(t *testing.T) {
	if s, ok := PrimaryGrid.At(1, 0); !ok || s != "a" {
		t.Errorf("At(1,0) = %q, %v", s, ok)
	}
	for _, pos := range [][2]int{{-1, 0}, {3, 0}, {2, 7}, {0, -1}} {
		if _, ok := PrimaryGrid.At(pos[0], pos[1]); ok {
			t.Errorf("At(%d,%d) should be out of range", pos[0], pos[1])
		}
	}
}

func TestSuffixSet(t *testing.T) {
	s := NewSuffixSet(".", "!", "?", "...", "", ".")
	if s.Len() != 4 {
		t.Errorf("Len = %d, want 4", s.Len())
	}

	tests := map[string]bool{
		"":         false,
		"Hi.":      true,
		"Hi":       false,
		"wow!":     true,
		"what?":    true,
		"so...":    true,
		"a.b":      false,
		"end. ":    false,
		"déjà vu?": true,
		"e.g":      false,
	}
	for text, want := range tests {
		if got := s.MatchAny(text); got != want {
			t.Errorf("MatchAny(%q) = %v, want %v", text, got, want)
		}
	}

	if got := s.Suffixes(); !reflect.DeepEqual(got, []string{"!", ".", "...", "?"}) {
		t.Errorf("Suffixes = %v", got)
	}

	var empty *SuffixSet
	if empty.MatchAny("x.") {
		t.Error("nil set must never match")
	}
}

func TestSuffixSetMultiByte(t *testing.T) {
	s := NewSuffixSet("。", "！")
	if !s.MatchAny("こんにちは。") {
		t.Error("expected ideographic full stop to match")
	}
	if s.MatchAny("こんにちは") {
		t.Error("unexpected match")
	}
}

func TestBuiltinProfiles(t *testing.T) {
	ids := BuiltinIDs()
	if !reflect.DeepEqual(ids, []string{"english", "highlevel"}) {
		t.Fatalf("BuiltinIDs = %v", ids)
	}

	en, err := Builtin("english", dictionary.Options{})
	if err != nil {
		t.Fatalf("english: %v", err)
	}
	if en.Name != "English" || en.Vocabulary.Len() == 0 {
		t.Errorf("unexpected english profile: %s, %d words", en.Name, en.Vocabulary.Len())
	}
	if !en.AutoCapitalizeAfter.MatchAny("done.") {
		t.Error("english should capitalize after a full stop")
	}
	if s, _ := en.Secondary.At(0, 0); s != "1" {
		t.Errorf("english secondary (0,0) = %q", s)
	}

	hl, err := Builtin("highlevel", dictionary.Options{MaxWords: 5})
	if err != nil {
		t.Fatalf("highlevel: %v", err)
	}
	if hl.Name != "High Level" {
		t.Errorf("name = %q", hl.Name)
	}
	if hl.Vocabulary.Len() != 5 {
		t.Errorf("MaxWords not applied: %d", hl.Vocabulary.Len())
	}
	if hl.AutoCapitalizeAfter.Len() != 0 {
		t.Error("high level profile has no capitalization triggers")
	}
	if s, _ := hl.Tertiary.At(0, 0); s != "func" {
		t.Errorf("highlevel tertiary (0,0) = %q", s)
	}

	if _, err := Builtin("klingon", dictionary.Options{}); err == nil {
		t.Error("expected error for unknown profile")
	}
}

const yamlProfile = `
name: Tiny
locale: de
auto_capitalize_after: ["."]
vocabulary: tiny.txt
words:
  straße: 40
  hallo: 99
secondary:
  - ["1", "2", "3", "4", "5", "6", "7", "8", "9", "0"]
  - ["a", "b", "c", "d", "e", "f", "g", "h", "i"]
  - ["j", "k", "l", "m", "n", "o", "p"]
tertiary:
  - ["1", "2", "3", "4", "5", "6", "7", "8", "9", "0"]
  - ["a", "b", "c", "d", "e", "f", "g", "h", "i"]
  - ["j", "k", "l", "m", "n", "o", "p"]
`

func TestLoadProfileFileYAML(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, filepath.Join(dir, "tiny.txt"), "hallo 10\nhaus 20\n")
	path := filepath.Join(dir, "tiny.yaml")
	writeFile(t, path, yamlProfile)

	p, err := LoadProfileFile(path, dictionary.Options{})
	if err != nil {
		t.Fatalf("LoadProfileFile: %v", err)
	}
	if p.ID != "tiny" || p.Name != "Tiny" || p.Locale != "de" {
		t.Errorf("unexpected profile header: %+v", p)
	}
	weights := map[string]int{}
	for _, ws := range p.Vocabulary {
		weights[ws.Text] = ws.Weight
	}
	want := map[string]int{"hallo": 99, "haus": 20, "straße": 40}
	if !reflect.DeepEqual(weights, want) {
		t.Errorf("vocabulary = %v, want %v", weights, want)
	}
}

func TestLoadProfileFileRejectsBadGrid(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "bad.toml")
	writeFile(t, path, "name = \"Bad\"\nsecondary = [[\"1\"]]\ntertiary = [[\"2\"]]\n")

	if _, err := LoadProfileFile(path, dictionary.Options{}); !errors.Is(err, ErrGridShape) {
		t.Errorf("expected ErrGridShape, got %v", err)
	}
}

func TestLoadProfilesPrefersDirectory(t *testing.T) {
	dir := t.TempDir()
	data, err := builtinFS.ReadFile("profiles/highlevel.toml")
	if err != nil {
		t.Fatal(err)
	}
	override := string(data) + "\n[words]\nzzz = 1\n"
	override = strings.Replace(override, `vocabulary = "highlevel.txt"`, "", 1)
	override = strings.Replace(override, `name = "High Level"`, `name = "Custom"`, 1)
	writeFile(t, filepath.Join(dir, "highlevel.toml"), override)

	profiles, err := LoadProfiles([]string{"english", "highlevel"}, dir, dictionary.Options{})
	if err != nil {
		t.Fatalf("LoadProfiles: %v", err)
	}
	if profiles[0].Name != "English" {
		t.Errorf("english should come from the built-ins, got %s", profiles[0].Name)
	}
	if profiles[1].Name != "Custom" || profiles[1].Vocabulary.Len() != 1 {
		t.Errorf("override not used: %s with %d words", profiles[1].Name, profiles[1].Vocabulary.Len())
	}

	if _, err := LoadProfiles(nil, dir, dictionary.Options{}); !errors.Is(err, ErrEmptyCycle) {
		t.Errorf("expected ErrEmptyCycle, got %v", err)
	}
}

func writeFile(t *testing.T, path, content string) {
	t.Helper()
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}
}

func TestGridFind(t *testing.T) {
	row, col, ok := PrimaryGrid.Find("m")
	if !ok || row != 2 || col != 6 {
		t.Errorf("Find(m) = %d, %d, %v", row, col, ok)
	}
	if _, _, ok := PrimaryGrid.Find("1"); ok {
		t.Error("digits are not on the primary grid")
	}
}
