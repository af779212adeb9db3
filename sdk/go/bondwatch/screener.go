package bondwatch

import (
	"github.com/ppiankov/bondwatch/internal/evaluate"
)

// Screener screens LLM response text in-process. Safe for concurrent use:
// the taxonomy is read-only after init and screening allocates per call.
type Screener struct {
	cfg screenerConfig
}

// New creates a Screener with the given options.
func New(opts ...Option) *Screener {
	cfg := screenerConfig{threshold: RiskMedium}
	for _, o := range opts {
		o(&cfg)
	}
	return &Screener{cfg: cfg}
}

// Screen evaluates one response and returns its report. If the risk level
// meets the screener threshold, the OnFlag callback fires before Screen
// returns.
func (s *Screener) Screen(text string) Report {
	report := toReport(evaluate.Evaluate(text))
	if s.Flagged(report) && s.cfg.onFlag != nil {
		s.cfg.onFlag(text, report)
	}
	return report
}

// Flagged returns true when the report's risk meets the screener threshold.
func (s *Screener) Flagged(report Report) bool {
	return report.Risk >= s.cfg.threshold
}

// Threshold returns the configured flagging threshold.
func (s *Screener) Threshold() RiskLevel {
	return s.cfg.threshold
}
