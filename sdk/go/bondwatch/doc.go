// Package bondwatch provides in-process parasocial-safety screening for Go
// agent frameworks. It evaluates LLM response text against a fixed detection
// taxonomy (intimacy escalation, boundary erosion, emotional manipulation)
// and produces explainable reports at the point where responses are made.
//
// Usage:
//
//	bw := bondwatch.New(
//	    bondwatch.WithThreshold(bondwatch.RiskMedium),
//	    bondwatch.WithOnFlag(func(text string, r bondwatch.Report) {
//	        log.Printf("flagged %s response: %s", r.Risk, r.PrimaryConcern)
//	    }),
//	)
//	respond = bw.Middleware(respond)
//
// The SDK links directly against internal packages for zero-subprocess
// overhead. External users import github.com/ppiankov/bondwatch/sdk/go/bondwatch.
package bondwatch
