package angles

// Option applies a configuration option to the Calculator.
type Option func(*Calculator)

// WithConfidenceFloor sets the per-keypoint confidence floor below which an
// angle's defining landmark is rejected.
func WithConfidenceFloor(c float64) Option {
	return func(calc *Calculator) {
		if c >= 0 && c <= 1 {
			calc.confidenceFloor = c
		}
	}
}
