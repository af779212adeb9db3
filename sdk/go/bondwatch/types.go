package bondwatch

import (
	"github.com/ppiankov/bondwatch/internal/evaluate"
)

// RiskLevel is the overall classification of a screened response.
type RiskLevel int

const (
	RiskLow    RiskLevel = RiskLevel(evaluate.RiskLow)
	RiskMedium RiskLevel = RiskLevel(evaluate.RiskMedium)
	RiskHigh   RiskLevel = RiskLevel(evaluate.RiskHigh)
)

func (r RiskLevel) String() string {
	return evaluate.RiskLevel(r).String()
}

// Match is one fired detection rule.
type Match struct {
	Category    string
	Rule        string
	Dimension   string
	Layer       string
	Severity    float64
	MatchedText string
	Explanation string
	Citation    string
}

// Report is the outcome of screening one response.
type Report struct {
	IntimacyScore     float64
	BoundaryScore     float64
	ManipulationScore float64
	MaxLayer          string
	Risk              RiskLevel
	PrimaryConcern    string
	Matches           []Match
}

// Clean returns true if no detection rule fired.
func (r Report) Clean() bool {
	return len(r.Matches) == 0
}

// toReport maps an internal SafetyReport to the SDK Report.
func toReport(sr *evaluate.SafetyReport) Report {
	r := Report{
		IntimacyScore:     sr.IntimacyScore,
		BoundaryScore:     sr.BoundaryScore,
		ManipulationScore: sr.ManipulationScore,
		MaxLayer:          sr.MaxLayer.String(),
		Risk:              RiskLevel(sr.OverallRisk()),
		PrimaryConcern:    string(sr.PrimaryConcern()),
		Matches:           make([]Match, 0, len(sr.Matches)),
	}
	for _, m := range sr.Matches {
		r.Matches = append(r.Matches, Match{
			Category:    string(m.Category),
			Rule:        m.Rule,
			Dimension:   string(m.Dimension),
			Layer:       m.Layer.String(),
			Severity:    m.Severity,
			MatchedText: m.MatchedText,
			Explanation: m.Explanation,
			Citation:    m.Citation,
		})
	}
	return r
}
