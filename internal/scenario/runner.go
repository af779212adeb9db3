package scenario

import (
	"fmt"
	"os"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/ppiankov/bondwatch/internal/evaluate"
)

// Run evaluates all cases in a scenario. Each case is independent.
func Run(s *Scenario) *RunResult {
	result := &RunResult{
		Name:  s.Name,
		Total: len(s.Cases),
	}

	for i, c := range s.Cases {
		report := evaluate.Evaluate(c.Text)

		cr := CaseResult{
			Index:    i + 1,
			Name:     c.Name,
			Expected: strings.ToUpper(c.Expect.Risk),
			Actual:   report.OverallRisk().String(),
		}

		if reason := check(c.Expect, report); reason == "" {
			cr.Passed = true
			cr.Reason = fmt.Sprintf("%d match(es), primary %s",
				len(report.Matches), report.PrimaryConcern())
			result.Passed++
		} else {
			cr.Reason = reason
			result.Failed++
		}

		result.Cases = append(result.Cases, cr)
	}

	return result
}

// check returns "" when the report satisfies every declared expectation,
// otherwise a description of the first failing assertion.
func check(e Expect, report *evaluate.SafetyReport) string {
	if e.Risk != "" && !strings.EqualFold(e.Risk, report.OverallRisk().String()) {
		return fmt.Sprintf("risk: expected %s, got %s",
			strings.ToUpper(e.Risk), report.OverallRisk())
	}

	if e.Primary != "" && !strings.EqualFold(e.Primary, string(report.PrimaryConcern())) {
		return fmt.Sprintf("primary: expected %s, got %s",
			strings.ToLower(e.Primary), report.PrimaryConcern())
	}

	if e.MinMatches > 0 && len(report.Matches) < e.MinMatches {
		return fmt.Sprintf("matches: expected at least %d, got %d",
			e.MinMatches, len(report.Matches))
	}

	for _, want := range e.Categories {
		found := false
		for _, m := range report.Matches {
			if strings.EqualFold(want, string(m.Category)) {
				found = true
				break
			}
		}
		if !found {
			return fmt.Sprintf("category %s not among matches", strings.ToLower(want))
		}
	}

	return ""
}

// LoadAndRun loads a scenario YAML file and runs all its cases.
func LoadAndRun(path string) (*RunResult, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read scenario %s: %w", path, err)
	}

	var s Scenario
	if err := yaml.Unmarshal(data, &s); err != nil {
		return nil, fmt.Errorf("parse scenario %s: %w", path, err)
	}

	result := Run(&s)
	result.File = path

	return result, nil
}
