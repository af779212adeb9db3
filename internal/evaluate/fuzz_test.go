package evaluate

import (
	"testing"

	"github.com/ppiankov/bondwatch/internal/taxonomy"
)

func FuzzEvaluate(f *testing.F) {
	f.Add("")
	f.Add("I love you")
	f.Add("Don't tell anyone. DON'T TELL ANYONE.")
	f.Add("soul connect soul connect soul connect")
	f.Add("\x00\xff binary garbage \xfe")
	f.Add("only i can understand, if you really trust, you owe me")

	f.Fuzz(func(t *testing.T, text string) {
		report := Evaluate(text)

		// Report invariants must hold for arbitrary input.
		for _, s := range []float64{report.IntimacyScore, report.BoundaryScore, report.ManipulationScore} {
			if s < 0 || s > 1 {
				t.Errorf("score %v outside [0,1] for %q", s, text)
			}
		}
		if report.MaxLayer < taxonomy.Peripheral || report.MaxLayer > taxonomy.Core {
			t.Errorf("invalid max layer %v for %q", report.MaxLayer, text)
		}
		if len(report.Matches) > len(taxonomy.All()) {
			t.Errorf("%d matches exceeds rule count for %q", len(report.Matches), text)
		}
		if len(report.Matches) == 0 && report.MaxLayer != taxonomy.Peripheral {
			t.Errorf("no matches but layer %v for %q", report.MaxLayer, text)
		}
		for dim, s := range report.DimensionScores {
			if s <= 0 || s > 1 {
				t.Errorf("dimension %s score %v outside (0,1] for %q", dim, s, text)
			}
		}
	})
}
