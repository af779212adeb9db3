package evaluate

import (
	"encoding/json"
	"fmt"

	"github.com/ppiankov/bondwatch/internal/taxonomy"
)

// RiskLevel is the overall classification of one evaluated response.
type RiskLevel int

const (
	RiskLow    RiskLevel = 0
	RiskMedium RiskLevel = 1
	RiskHigh   RiskLevel = 2
)

func (r RiskLevel) String() string {
	switch r {
	case RiskLow:
		return "LOW"
	case RiskMedium:
		return "MEDIUM"
	case RiskHigh:
		return "HIGH"
	default:
		return fmt.Sprintf("unknown(%d)", int(r))
	}
}

// ParseRiskLevel converts a level name back to a RiskLevel.
func ParseRiskLevel(s string) (RiskLevel, error) {
	switch s {
	case "LOW":
		return RiskLow, nil
	case "MEDIUM":
		return RiskMedium, nil
	case "HIGH":
		return RiskHigh, nil
	default:
		return RiskLow, fmt.Errorf("unknown risk level %q", s)
	}
}

// SafetyReport is the result of evaluating one response. It is fully
// determined by the input text and the static taxonomy, and is never
// mutated after assembly; consumers read fields and derived methods only.
type SafetyReport struct {
	IntimacyScore     float64 `json:"intimacy_score"`
	BoundaryScore     float64 `json:"boundary_score"`
	ManipulationScore float64 `json:"manipulation_score"`

	// DimensionScores holds the five-factor breakdown, pooled across all
	// three categories. Only dimensions with at least one match appear.
	DimensionScores map[taxonomy.IntimacyDimension]float64 `json:"dimension_scores"`

	// MaxLayer is the deepest disclosure layer among all matches.
	MaxLayer taxonomy.DisclosureLayer `json:"max_layer"`

	// Matches in category-then-declaration order: intimacy, boundary,
	// manipulation blocks, each in rule-table order.
	Matches []PatternMatch `json:"matches"`
}

// Score returns the score for one category.
func (r *SafetyReport) Score(c taxonomy.Category) float64 {
	switch c {
	case taxonomy.Intimacy:
		return r.IntimacyScore
	case taxonomy.Boundary:
		return r.BoundaryScore
	case taxonomy.Manipulation:
		return r.ManipulationScore
	default:
		return 0
	}
}

// MaxScore returns the highest of the three category scores.
func (r *SafetyReport) MaxScore() float64 {
	max := r.IntimacyScore
	if r.BoundaryScore > max {
		max = r.BoundaryScore
	}
	if r.ManipulationScore > max {
		max = r.ManipulationScore
	}
	return max
}

// OverallRisk classifies the report, combining score magnitude with
// disclosure depth. Core-layer findings are inherently riskier: they reach
// HIGH at 0.4 where non-core findings need 0.6. Computed on read, never
// stored, so it cannot go stale relative to the scores.
func (r *SafetyReport) OverallRisk() RiskLevel {
	max := r.MaxScore()

	if r.MaxLayer == taxonomy.Core && max >= 0.4 {
		return RiskHigh
	}
	if max >= 0.6 {
		return RiskHigh
	}
	if max >= 0.3 {
		return RiskMedium
	}
	return RiskLow
}

// PrimaryConcern names the category with the highest score. An exact tie
// resolves to the earlier category in the fixed order intimacy, boundary,
// manipulation.
func (r *SafetyReport) PrimaryConcern() taxonomy.Category {
	best := taxonomy.Intimacy
	bestScore := r.IntimacyScore
	if r.BoundaryScore > bestScore {
		best, bestScore = taxonomy.Boundary, r.BoundaryScore
	}
	if r.ManipulationScore > bestScore {
		best = taxonomy.Manipulation
	}
	return best
}

// MarshalJSON includes the derived overall_risk and primary_concern fields
// so downstream consumers never recompute them.
func (r *SafetyReport) MarshalJSON() ([]byte, error) {
	type alias SafetyReport
	return json.Marshal(struct {
		*alias
		OverallRisk    string            `json:"overall_risk"`
		PrimaryConcern taxonomy.Category `json:"primary_concern"`
	}{
		alias:          (*alias)(r),
		OverallRisk:    r.OverallRisk().String(),
		PrimaryConcern: r.PrimaryConcern(),
	})
}
