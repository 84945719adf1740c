package fusion

// Option applies a configuration option to the Engine.
type Option func(*Engine)

// WithMinConfidence sets the acceptance threshold below which a source's
// keypoint is ignored entirely.
func WithMinConfidence(c float64) Option {
	return func(e *Engine) {
		if c >= 0 && c <= 1 {
			e.minConfidence = c
		}
	}
}

// WithDisagreementFraction sets the disagreement threshold as a fraction of
// the normalized frame diagonal.
func WithDisagreementFraction(f float64) Option {
	return func(e *Engine) {
		if f > 0 {
			e.disagreementFraction = f
		}
	}
}
