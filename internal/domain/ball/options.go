package ball

// Option applies a configuration option to the Locator.
type Option func(*Locator)

// WithMinConfidence sets the gate below which the primary detector's report
// is discarded in favor of the fallback.
func WithMinConfidence(c float64) Option {
	return func(l *Locator) {
		if c >= 0 && c <= 1 {
			l.minConfidence = c
		}
	}
}

// WithSearchRadius sets how far from the wrist anchor, in normalized
// coordinates, the fallback will accept a proxy candidate.
func WithSearchRadius(r float64) Option {
	return func(l *Locator) {
		if r > 0 {
			l.searchRadius = r
		}
	}
}

// WithAnchorFloor sets the minimum wrist confidence for fallback anchoring.
func WithAnchorFloor(c float64) Option {
	return func(l *Locator) {
		if c >= 0 && c <= 1 {
			l.anchorFloor = c
		}
	}
}
