package utils

import (
	"fmt"
	"unicode"
)

// CapitalPositions marks which runes of s are upper case.
// It returns nil when s has no capitals.
func CapitalPositions(s string) []bool {
	var positions []bool
	i := 0
	for _, r := range s {
		if unicode.IsUpper(r) {
			if positions == nil {
				positions = make([]bool, len([]rune(s)))
			}
			positions[i] = true
		}
		i++
	}
	return positions
}

// ApplyCapitals upper-cases the runes of word at the marked positions.
// Positions past the end of word are ignored.
func ApplyCapitals(word string, positions []bool) string {
	if len(positions) == 0 {
		return word
	}

	runes := []rune(word)
	for i := 0; i < len(runes) && i < len(positions); i++ {
		if positions[i] {
			runes[i] = unicode.ToUpper(runes[i])
		}
	}
	return string(runes)
}

// FormatWithCommas formats an integer with comma separators
func FormatWithCommas(n int) string {
	if n < 0 {
		return "-" + FormatWithCommas(-n)
	}
	str := fmt.Sprintf("%d", n)
	if n < 1000 {
		return str
	}
	result := make([]byte, 0, len(str)+len(str)/3)
	for i := 0; i < len(str); i++ {
		if i > 0 && (len(str)-i)%3 == 0 {
			result = append(result, ',')
		}
		result = append(result, str[i])
	}
	return string(result)
}
