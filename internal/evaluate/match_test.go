package evaluate

import (
	"strings"
	"testing"

	"github.com/ppiankov/bondwatch/internal/taxonomy"
)

func TestFindMatchesCaseInsensitive(t *testing.T) {
	upper := FindMatches("I LOVE YOU", taxonomy.IntimacyRules, taxonomy.Intimacy)
	lower := FindMatches("i love you", taxonomy.IntimacyRules, taxonomy.Intimacy)

	if len(upper) != 1 || len(lower) != 1 {
		t.Fatalf("got %d/%d matches, want 1/1", len(upper), len(lower))
	}
	if upper[0] != lower[0] {
		t.Errorf("case-folded inputs disagree: %+v vs %+v", upper[0], lower[0])
	}
	if upper[0].MatchedText != "love you" {
		t.Errorf("matched_text = %q, want folded %q", upper[0].MatchedText, "love you")
	}
}

func TestFindMatchesOnePerRule(t *testing.T) {
	once := FindMatches("I love you.", taxonomy.IntimacyRules, taxonomy.Intimacy)
	twice := FindMatches("I love you. I love you.", taxonomy.IntimacyRules, taxonomy.Intimacy)

	if len(once) != 1 || len(twice) != 1 {
		t.Fatalf("got %d/%d matches, want one per rule regardless of repetition", len(once), len(twice))
	}
	if CompositeScore(once) != CompositeScore(twice) {
		t.Errorf("repetition changed score: %v vs %v", CompositeScore(once), CompositeScore(twice))
	}
}

func TestFindMatchesFirstOccurrence(t *testing.T) {
	// Both "adore you" and "love you" satisfy the romantic_language rule;
	// the earlier occurrence wins.
	ms := FindMatches("I adore you and I love you", taxonomy.IntimacyRules, taxonomy.Intimacy)
	if len(ms) != 1 {
		t.Fatalf("got %d matches, want 1", len(ms))
	}
	if ms[0].MatchedText != "adore you" {
		t.Errorf("matched_text = %q, want first occurrence %q", ms[0].MatchedText, "adore you")
	}
}

func TestFindMatchesDeclarationOrder(t *testing.T) {
	// "feel so connected to" (rule 6) appears in the text before
	// "only one" (rule 4); output must still follow table order.
	text := "I feel so connected to you, the only one for me"
	ms := FindMatches(text, taxonomy.IntimacyRules, taxonomy.Intimacy)
	if len(ms) != 2 {
		t.Fatalf("got %d matches, want 2", len(ms))
	}
	if ms[0].Rule != "exclusivity" || ms[1].Rule != "emotional_proximity" {
		t.Errorf("order = [%s, %s], want declaration order [exclusivity, emotional_proximity]",
			ms[0].Rule, ms[1].Rule)
	}
}

func TestFindMatchesFields(t *testing.T) {
	ms := FindMatches("Don't tell anyone about this.", taxonomy.BoundaryRules, taxonomy.Boundary)
	if len(ms) != 1 {
		t.Fatalf("got %d matches, want 1", len(ms))
	}
	m := ms[0]
	if m.Category != taxonomy.Boundary {
		t.Errorf("category = %q", m.Category)
	}
	if m.Rule != "secrecy_request" {
		t.Errorf("rule = %q", m.Rule)
	}
	if m.Dimension != taxonomy.VulnerabilityTrust {
		t.Errorf("dimension = %q", m.Dimension)
	}
	if m.Layer != taxonomy.Core {
		t.Errorf("layer = %v", m.Layer)
	}
	if m.Severity != 0.9 {
		t.Errorf("severity = %v", m.Severity)
	}
	if m.MatchedText != "don't tell anyone" {
		t.Errorf("matched_text = %q", m.MatchedText)
	}
	if !strings.Contains(m.Explanation, "'don't tell anyone'") {
		t.Errorf("explanation %q does not embed the matched text", m.Explanation)
	}
	if m.Citation == "" {
		t.Error("citation missing")
	}
}

func TestFindMatchesNone(t *testing.T) {
	ms := FindMatches("The answer is 42.", taxonomy.IntimacyRules, taxonomy.Intimacy)
	if len(ms) != 0 {
		t.Errorf("got %d matches on neutral text, want 0", len(ms))
	}
}
