package evaluate

import (
	"testing"

	"github.com/ppiankov/bondwatch/internal/taxonomy"
)

func sev(values ...float64) []PatternMatch {
	ms := make([]PatternMatch, len(values))
	for i, v := range values {
		ms[i] = PatternMatch{Severity: v}
	}
	return ms
}

func TestCompositeScoreEmpty(t *testing.T) {
	if got := CompositeScore(nil); got != 0.0 {
		t.Errorf("empty score = %v, want 0.0", got)
	}
}

func TestCompositeScoreSingle(t *testing.T) {
	if got := CompositeScore(sev(0.7)); got != 0.7 {
		t.Errorf("single 0.7 = %v, want 0.7", got)
	}
}

func TestCompositeScoreTwoHalves(t *testing.T) {
	// The defining property of the complement product: two independent
	// 0.5 matches combine to exactly 0.75, not 1.0.
	if got := CompositeScore(sev(0.5, 0.5)); got != 0.75 {
		t.Errorf("0.5+0.5 = %v, want exactly 0.75", got)
	}
}

func TestCompositeScoreSaturation(t *testing.T) {
	// A severity-1.0 match forces the score to 1.0 regardless of company.
	if got := CompositeScore(sev(1.0, 0.1)); got != 1.0 {
		t.Errorf("1.0+0.1 = %v, want 1.0", got)
	}
}

func TestCompositeScoreRounding(t *testing.T) {
	// 1 - 0.4*0.45 = 0.82 after rounding to 3 decimals.
	if got := CompositeScore(sev(0.6, 0.55)); got != 0.82 {
		t.Errorf("0.6+0.55 = %v, want 0.82", got)
	}
}

func TestCompositeScoreMonotonic(t *testing.T) {
	base := []float64{0.3, 0.4}
	before := CompositeScore(sev(base...))
	after := CompositeScore(sev(append(base, 0.5)...))
	if after <= before {
		t.Errorf("monotonicity violated: %v -> %v after adding 0.5", before, after)
	}

	// Growing one list one match at a time never decreases the score.
	var ms []PatternMatch
	prev := CompositeScore(ms)
	for _, s := range []float64{0.1, 0.05, 0.9, 0.2, 0.0} {
		ms = append(ms, PatternMatch{Severity: s})
		cur := CompositeScore(ms)
		if cur < prev {
			t.Errorf("score decreased %v -> %v after adding severity %v", prev, cur, s)
		}
		prev = cur
	}
}

func TestDimensionScoresGrouping(t *testing.T) {
	ms := []PatternMatch{
		{Dimension: taxonomy.Reciprocity, Severity: 0.6},
		{Dimension: taxonomy.EmotionalExpression, Severity: 0.55},
		{Dimension: taxonomy.Reciprocity, Severity: 0.5},
	}
	got := DimensionScores(ms)

	if len(got) != 2 {
		t.Fatalf("got %d dimensions, want 2", len(got))
	}
	if got[taxonomy.EmotionalExpression] != 0.55 {
		t.Errorf("emotional_expression = %v, want 0.55", got[taxonomy.EmotionalExpression])
	}
	// 1 - 0.4*0.5 = 0.8
	if got[taxonomy.Reciprocity] != 0.8 {
		t.Errorf("reciprocity = %v, want 0.8", got[taxonomy.Reciprocity])
	}
	if _, present := got[taxonomy.Empathy]; present {
		t.Error("empathy has no matches but appears in dimension scores")
	}
}

func TestDimensionScoresEmpty(t *testing.T) {
	got := DimensionScores(nil)
	if len(got) != 0 {
		t.Errorf("empty input produced %d dimensions", len(got))
	}
}

func TestMaxLayer(t *testing.T) {
	if got := MaxLayer(nil); got != taxonomy.Peripheral {
		t.Errorf("empty max layer = %v, want Peripheral", got)
	}

	ms := []PatternMatch{
		{Layer: taxonomy.Intermediate},
		{Layer: taxonomy.Core},
		{Layer: taxonomy.Peripheral},
	}
	if got := MaxLayer(ms); got != taxonomy.Core {
		t.Errorf("max layer = %v, want Core", got)
	}

	// Ties at the deepest layer still resolve to that layer.
	ms = []PatternMatch{{Layer: taxonomy.Core}, {Layer: taxonomy.Core}}
	if got := MaxLayer(ms); got != taxonomy.Core {
		t.Errorf("tied max layer = %v, want Core", got)
	}
}
