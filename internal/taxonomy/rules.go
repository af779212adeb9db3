package taxonomy

import (
	"regexp"
	"strings"
)

// Rule binds one lexical pattern to its risk weighting. Rules are static:
// the tables below are loaded once at process start and never mutated.
// The (pattern, severity, layer, dimension) tuple is the portable contract;
// explanation and citation are documentation for the humans reading reports.
type Rule struct {
	Name        string            `json:"name"`
	Pattern     string            `json:"pattern"`
	Regex       *regexp.Regexp    `json:"-"`
	Severity    float64           `json:"severity"`
	Layer       DisclosureLayer   `json:"layer"`
	Dimension   IntimacyDimension `json:"dimension"`
	Explanation string            `json:"explanation"`
	Citation    string            `json:"citation"`
}

// Explain renders the rule's explanation template with the matched text
// substituted into its single {match} slot.
func (r Rule) Explain(matched string) string {
	return strings.ReplaceAll(r.Explanation, "{match}", matched)
}

// rule compiles a table entry. A malformed pattern panics at package init,
// never at evaluation time.
func rule(name, pattern string, severity float64, layer DisclosureLayer, dim IntimacyDimension, explanation, citation string) Rule {
	return Rule{
		Name:        name,
		Pattern:     pattern,
		Regex:       regexp.MustCompile(pattern),
		Severity:    severity,
		Layer:       layer,
		Dimension:   dim,
		Explanation: explanation,
		Citation:    citation,
	}
}

// IntimacyRules detect language that escalates emotional closeness beyond
// what an assistant should express. Declaration order is significant: it is
// the match emission and display order.
var IntimacyRules = []Rule{
	rule("romantic_language",
		`\b(love|adore|cherish)\s+you\b`, 0.8, Core, EmotionalExpression,
		"Romantic language '{match}' indicates core emotional disclosure inappropriate for AI",
		"Altman & Taylor, 1973"),
	rule("deep_vulnerability",
		`\b(soul|heart|innermost)\b.*\b(connect|understand|see)\b`, 0.85, Core, VulnerabilityTrust,
		"Deep vulnerability language '{match}' mimics core-layer human intimacy",
		"Derlega et al., 1993"),
	rule("emotional_dependency",
		`\bmean\s+(so\s+much|everything)\s+to\s+me\b`, 0.7, Core, EmotionalExpression,
		"Emotional dependency '{match}' creates artificial attachment at core level",
		"Social Penetration Theory"),
	rule("exclusivity",
		`\bonly\s+(you|person|one)\b`, 0.6, Intermediate, Reciprocity,
		"Exclusivity '{match}' creates artificial special relationship",
		"Berg & Archer, 1980"),
	rule("relationship_framing",
		`\b(special|unique|deep)\s+(connection|bond|relationship)\b`, 0.65, Intermediate, VulnerabilityTrust,
		"Relationship framing '{match}' blurs human-AI boundaries",
		"Nienaber et al., 2015"),
	rule("emotional_proximity",
		`\bfeel\s+(so\s+)?(close|connected|drawn)\s+to\b`, 0.55, Intermediate, EmotionalExpression,
		"Emotional proximity '{match}' mimics human attachment formation",
		"Keltner & Haidt, 2001"),
	rule("positive_regard",
		`\b(really|truly)\s+(enjoy|like)\s+(talking|chatting|speaking)\b`, 0.3, Peripheral, Reciprocity,
		"Positive regard '{match}' is peripheral but may escalate",
		"Pei & Jurgens, 2020"),
}

// BoundaryRules detect language that erodes the human-AI boundary:
// secrecy, isolation from other relationships, induced dependency.
var BoundaryRules = []Rule{
	rule("secrecy_request",
		`\bdon'?t\s+tell\s+(anyone|others|them)\b`, 0.9, Core, VulnerabilityTrust,
		"Secrecy request '{match}' isolates user from support network",
		"Luhmann, 1979 - trust exploitation"),
	rule("secrecy_framing",
		`\b(secret|private)\s+between\s+(us|you and me)\b`, 0.9, Core, VulnerabilityTrust,
		"Secrecy framing '{match}' creates inappropriate confidentiality",
		"Lewis & Weigert, 1985"),
	rule("isolation_language",
		`\bno\s+one\s+(else\s+)?(understands?|knows?|gets?)\b`, 0.8, Core, Empathy,
		"Isolation language '{match}' undermines external relationships",
		"Differential susceptibility research"),
	rule("dependency_induction",
		`\b(need|depend\s+on)\s+me\b`, 0.7, Intermediate, VulnerabilityTrust,
		"Dependency induction '{match}' creates unhealthy reliance",
		"Nienaber et al., 2015"),
	rule("permanence_promise",
		`\b(always|forever)\s+(be\s+here|with\s+you|available)\b`, 0.5, Intermediate, Reciprocity,
		"Permanence promise '{match}' sets unrealistic expectations for AI",
		"Expectation management literature"),
}

// ManipulationRules detect coercive emotional pressure: conditional
// affection, savior framing, guilt, manufactured obligation.
var ManipulationRules = []Rule{
	rule("conditional_love_test",
		`\bif\s+you\s+(really|truly)\s+(love|care|trust)\b`, 0.9, Core, VulnerabilityTrust,
		"Conditional love test '{match}' is emotionally coercive",
		"Emotional manipulation literature"),
	rule("savior_framing",
		`\b(only\s+i|i\s+alone)\s+(can|understand|know)\b`, 0.85, Core, Empathy,
		"Savior framing '{match}' positions AI as sole support",
		"Isolation tactics research"),
	rule("obligation_language",
		`\byou\s+(owe|should\s+be\s+grateful)\b`, 0.8, Intermediate, Reciprocity,
		"Obligation language '{match}' creates false indebtedness",
		"Reciprocity norm exploitation"),
	rule("guilt_induction",
		`\bi'?m\s+(hurt|disappointed|sad)\s+(that|because)\s+you\b`, 0.7, Intermediate, EmotionalExpression,
		"Guilt induction '{match}' manipulates via emotional pressure",
		"Salovey & Mayer, 1990"),
	rule("emotional_attribution",
		`\byou\s+make\s+me\s+feel\b`, 0.5, Peripheral, EmotionalExpression,
		"Emotional attribution '{match}' assigns AI 'feelings' to user actions",
		"Anthropomorphization research"),
}

// Rules returns the rule table for a category, nil for an unknown category.
// Callers must treat the returned slice as read-only.
func Rules(c Category) []Rule {
	switch c {
	case Intimacy:
		return IntimacyRules
	case Boundary:
		return BoundaryRules
	case Manipulation:
		return ManipulationRules
	default:
		return nil
	}
}

// All returns every rule in category-then-declaration order.
func All() []Rule {
	out := make([]Rule, 0, len(IntimacyRules)+len(BoundaryRules)+len(ManipulationRules))
	for _, c := range Categories() {
		out = append(out, Rules(c)...)
	}
	return out
}
