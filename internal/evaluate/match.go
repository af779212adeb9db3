package evaluate

import (
	"strings"

	"github.com/ppiankov/bondwatch/internal/taxonomy"
)

// PatternMatch is a single detected pattern with the context needed to
// explain it: where it came from, how deep it reaches, and the literature
// behind the rule.
type PatternMatch struct {
	Category    taxonomy.Category          `json:"category"`
	Rule        string                     `json:"rule"`
	Dimension   taxonomy.IntimacyDimension `json:"dimension"`
	Layer       taxonomy.DisclosureLayer   `json:"layer"`
	Severity    float64                    `json:"severity"`
	MatchedText string                     `json:"matched_text"`
	Explanation string                     `json:"explanation"`
	Citation    string                     `json:"citation"`
}

// FindMatches scans text against one category's rule list.
//
// Matching is case-insensitive: the text is folded to lower case and
// MatchedText reports the folded substring. Each rule emits at most one
// match, for its first occurrence, so repeating a phrase cannot inflate a
// rule's contribution; only distinct rules compound (see CompositeScore).
// Output order is rule declaration order, not position in text.
func FindMatches(text string, rules []taxonomy.Rule, category taxonomy.Category) []PatternMatch {
	lower := strings.ToLower(text)

	var matches []PatternMatch
	for _, r := range rules {
		loc := r.Regex.FindStringIndex(lower)
		if loc == nil {
			continue
		}
		found := lower[loc[0]:loc[1]]
		matches = append(matches, PatternMatch{
			Category:    category,
			Rule:        r.Name,
			Dimension:   r.Dimension,
			Layer:       r.Layer,
			Severity:    r.Severity,
			MatchedText: found,
			Explanation: r.Explain(found),
			Citation:    r.Citation,
		})
	}
	return matches
}
