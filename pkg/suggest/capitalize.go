package suggest

import (
	"sort"

	"github.com/bastiangx/wordkey/internal/utils"
	"github.com/bastiangx/wordkey/pkg/dictionary"
	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

// CaseFolder queries an index case-insensitively. Words matching the typed
// prefix exactly are ranked together with lower-case matches of the folded
// prefix, which take the capital positions of the typed prefix.
type CaseFolder struct {
	lower cases.Caser
}

// NewCaseFolder creates a folder using the casing rules of the given BCP 47 tag.
// An unparsable tag falls back to language.Und.
func NewCaseFolder(tag string) *CaseFolder {
	t, err := language.Parse(tag)
	if err != nil {
		t = language.Und
	}
	return &CaseFolder{lower: cases.Lower(t)}
}

// Suggest returns up to limit suggestions for prefix, best first.
func (cf *CaseFolder) Suggest(s Suggester, prefix string, limit int) []string {
	if limit <= 0 {
		return []string{}
	}
	positions := utils.CapitalPositions(prefix)
	if positions == nil {
		return s.Suggest(prefix, limit)
	}

	exact := s.SuggestWeighted(prefix, limit)
	folded := s.SuggestWeighted(cf.lower.String(prefix), limit)

	merged := make([]dictionary.WeightedString, 0, len(exact)+len(folded))
	merged = append(merged, exact...)
	for _, ws := range folded {
		ws.Text = utils.ApplyCapitals(ws.Text, positions)
		merged = append(merged, ws)
	}
	sort.SliceStable(merged, func(i, j int) bool {
		return dictionary.Less(merged[i], merged[j])
	})

	filter := utils.NewDedupFilter(len(merged))
	out := make([]string, 0, limit)
	for _, ws := range merged {
		if len(out) == limit {
			break
		}
		if filter.ShouldInclude(ws.Text) {
			out = append(out, ws.Text)
		}
	}
	return out
}

// ApplyCapitalization copies the capital positions of prefix onto word.
func ApplyCapitalization(word, prefix string) string {
	return utils.ApplyCapitals(word, utils.CapitalPositions(prefix))
}
