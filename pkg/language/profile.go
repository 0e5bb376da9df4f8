// Package language holds the per-language keyboard data: the secondary and
// tertiary key layers, the vocabulary feeding suggestions and the suffixes
// that trigger auto-capitalization. Behaviour differences between languages
// live in Profile values, never in code paths.
package language

import (
	"errors"
	"fmt"

	"github.com/bastiangx/wordkey/pkg/dictionary"
)

var (
	// ErrGridShape is returned when a layer grid does not match the primary grid.
	ErrGridShape = errors.New("layer grid does not match primary grid shape")
	// ErrEmptyCycle is returned when a cycle is built without profiles.
	ErrEmptyCycle = errors.New("language cycle needs at least one profile")
)

// Grid is a row-major table of key strings.
type Grid [][]string

// PrimaryGrid is the QWERTY letter layout every layer grid is indexed against.
var PrimaryGrid = Grid{
	{"q", "w", "e", "r", "t", "y", "u", "i", "o", "p"},
	{"a", "s", "d", "f", "g", "h", "j", "k", "l"},
	{"z", "x", "c", "v", "b", "n", "m"},
}

// At returns the string at row, col and whether the position exists.
func (g Grid) At(row, col int) (string, bool) {
	if row < 0 || row >= len(g) || col < 0 || col >= len(g[row]) {
		return "", false
	}
	return g[row][col], true
}

// Find returns the position of the first cell equal to s.
func (g Grid) Find(s string) (row, col int, ok bool) {
	for r, cells := range g {
		for c, cell := range cells {
			if cell == s {
				return r, c, true
			}
		}
	}
	return 0, 0, false
}

// Shape returns the length of every row.
func (g Grid) Shape() []int {
	shape := make([]int, len(g))
	for i, row := range g {
		shape[i] = len(row)
	}
	return shape
}

// SameShape reports whether g and other have identical row lengths.
func (g Grid) SameShape(other Grid) bool {
	if len(g) != len(other) {
		return false
	}
	for i := range g {
		if len(g[i]) != len(other[i]) {
			return false
		}
	}
	return true
}

// Profile bundles everything the keyboard needs for one language.
type Profile struct {
	ID        string
	Name      string
	Locale    string
	Secondary Grid
	Tertiary  Grid
	// Vocabulary is already merged; duplicate words were collapsed on load.
	Vocabulary          dictionary.Vocabulary
	AutoCapitalizeAfter *SuffixSet
}

// WeightedWords makes a profile usable directly as a vocabulary source.
func (p *Profile) WeightedWords() []dictionary.WeightedString {
	return p.Vocabulary
}

// Validate checks that both layer grids have the shape of primary.
func (p *Profile) Validate(primary Grid) error {
	if p.Name == "" {
		return fmt.Errorf("profile %q: missing name", p.ID)
	}
	if !p.Secondary.SameShape(primary) {
		return fmt.Errorf("profile %q secondary layer %v, want %v: %w",
			p.ID, p.Secondary.Shape(), primary.Shape(), ErrGridShape)
	}
	if !p.Tertiary.SameShape(primary) {
		return fmt.Errorf("profile %q tertiary layer %v, want %v: %w",
			p.ID, p.Tertiary.Shape(), primary.Shape(), ErrGridShape)
	}
	return nil
}
