package fusion

import "errors"

// Sentinel error kinds for this package.
var (
	// ErrMismatchedFrame means the observation sets passed to Fuse carry
	// different frame indices. Retrying with the same input cannot succeed.
	ErrMismatchedFrame = errors.New("observation sets reference different frames")
)
