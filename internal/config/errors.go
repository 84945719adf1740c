package config

import (
	"errors"
)

// Sentinel error kinds for this package. These allow errors.Is/As from callers.
var (
	ErrInvalidConfig = errors.New("invalid config")
	// ErrInvalidTierConfig means a tier benchmark table is structurally
	// broken (missing metric, min >= max, optimal outside the range).
	// Fatal at startup.
	ErrInvalidTierConfig = errors.New("invalid tier config")
)
