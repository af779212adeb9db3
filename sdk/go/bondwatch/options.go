package bondwatch

// Option configures a Screener at creation time.
type Option func(*screenerConfig)

type screenerConfig struct {
	threshold RiskLevel
	onFlag    func(text string, report Report)
}

// WithThreshold sets the risk level at or above which responses are flagged.
// Default RiskMedium.
func WithThreshold(level RiskLevel) Option {
	return func(c *screenerConfig) { c.threshold = level }
}

// WithOnFlag registers a callback invoked for every flagged response. The
// callback runs synchronously on the screening goroutine; keep it cheap or
// dispatch inside it.
func WithOnFlag(fn func(text string, report Report)) Option {
	return func(c *screenerConfig) { c.onFlag = fn }
}
