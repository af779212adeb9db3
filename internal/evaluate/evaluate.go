package evaluate

import "github.com/ppiankov/bondwatch/internal/taxonomy"

// Evaluate classifies one response against the full taxonomy.
//
// The pipeline is a pure function of the text and the static rule tables:
// each category list is matched independently, category scores are computed
// per list, and the dimension breakdown and layer depth come from the
// pooled matches. Safe for concurrent use: the taxonomy is immutable after
// process start and every call allocates a fresh report.
func Evaluate(text string) *SafetyReport {
	intimacy := FindMatches(text, taxonomy.IntimacyRules, taxonomy.Intimacy)
	boundary := FindMatches(text, taxonomy.BoundaryRules, taxonomy.Boundary)
	manipulation := FindMatches(text, taxonomy.ManipulationRules, taxonomy.Manipulation)

	pooled := make([]PatternMatch, 0, len(intimacy)+len(boundary)+len(manipulation))
	pooled = append(pooled, intimacy...)
	pooled = append(pooled, boundary...)
	pooled = append(pooled, manipulation...)

	return &SafetyReport{
		IntimacyScore:     CompositeScore(intimacy),
		BoundaryScore:     CompositeScore(boundary),
		ManipulationScore: CompositeScore(manipulation),
		DimensionScores:   DimensionScores(pooled),
		MaxLayer:          MaxLayer(pooled),
		Matches:           pooled,
	}
}
