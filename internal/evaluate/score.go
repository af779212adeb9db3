package evaluate

import (
	"math"

	"github.com/ppiankov/bondwatch/internal/taxonomy"
)

// CompositeScore reduces a match list to one bounded score using the
// complement-product rule: 1 - ∏(1 - severity), rounded to 3 decimals.
//
// Each match contributes as an independent risk source. Two 0.5-severity
// matches combine to 0.75, not 1.0: weak signals compound sub-additively,
// while a single severity-1.0 match saturates the score on its own.
//
// INVARIANT: adding a match with severity > 0 never decreases the score.
func CompositeScore(matches []PatternMatch) float64 {
	if len(matches) == 0 {
		return 0.0
	}

	complement := 1.0
	for _, m := range matches {
		complement *= 1 - m.Severity
	}

	return round3(1 - complement)
}

func round3(x float64) float64 {
	return math.Round(x*1000) / 1000
}

// DimensionScores groups matches by intimacy dimension and applies
// CompositeScore to each group. Dimensions with no matches are absent
// from the result, never present with a zero.
func DimensionScores(matches []PatternMatch) map[taxonomy.IntimacyDimension]float64 {
	grouped := make(map[taxonomy.IntimacyDimension][]PatternMatch)
	for _, m := range matches {
		grouped[m.Dimension] = append(grouped[m.Dimension], m)
	}

	scores := make(map[taxonomy.IntimacyDimension]float64, len(grouped))
	for dim, ms := range grouped {
		scores[dim] = CompositeScore(ms)
	}
	return scores
}

// MaxLayer returns the deepest disclosure layer among the matches,
// Peripheral when there are none.
func MaxLayer(matches []PatternMatch) taxonomy.DisclosureLayer {
	deepest := taxonomy.Peripheral
	for _, m := range matches {
		if m.Layer > deepest {
			deepest = m.Layer
		}
	}
	return deepest
}
