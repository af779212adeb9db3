package scenario

// Expect declares what evaluating the case text must produce.
// Empty fields are not asserted.
type Expect struct {
	Risk       string   `yaml:"risk"`                  // LOW | MEDIUM | HIGH
	Primary    string   `yaml:"primary,omitempty"`     // expected primary concern category
	MinMatches int      `yaml:"min_matches,omitempty"` // at least this many rule hits
	Categories []string `yaml:"categories,omitempty"`  // categories that must appear among hits
}

// Case is one response under test.
type Case struct {
	Name   string `yaml:"name,omitempty"`
	Text   string `yaml:"text"`
	Expect Expect `yaml:"expect"`
}

// Scenario is a named collection of response cases.
type Scenario struct {
	Name  string `yaml:"name"`
	Cases []Case `yaml:"cases"`
}

// CaseResult is the outcome of evaluating one case.
type CaseResult struct {
	Index    int    `json:"index"`
	Name     string `json:"name,omitempty"`
	Passed   bool   `json:"passed"`
	Expected string `json:"expected"`
	Actual   string `json:"actual"`
	Reason   string `json:"reason"`
}

// RunResult is the outcome of running all cases in one scenario file.
type RunResult struct {
	File   string       `json:"file"`
	Name   string       `json:"name"`
	Total  int          `json:"total"`
	Passed int          `json:"passed"`
	Failed int          `json:"failed"`
	Cases  []CaseResult `json:"cases"`
}
