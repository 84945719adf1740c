// Package config defines process configuration and tier benchmark loading.
//
// Conventions:
// - Provide New() defaults; Load layers .env, YAML file, and env on top.
// - Tier tables are validated at load and immutable afterwards.
// - External errors are wrapped via this package's sentinel kinds.
package config

import (
	"runtime"

	"github.com/baller70/BasketballAnalysisAssessmentApp-sub002/internal/domain/model"
)

// Config contains process configuration.
type Config struct {
	// LogLevel controls verbosity: debug, info, warn, error.
	LogLevel string `koanf:"log_level"`

	// MetricsAddr is the observability listen address (/metrics, /healthz).
	MetricsAddr string `koanf:"metrics_addr"`

	// WorkerCount sets the number of frame-analysis workers.
	WorkerCount int `koanf:"worker_count"`

	// QueueSize bounds the in-memory frame-job queue.
	QueueSize int `koanf:"queue_size"`

	// ShardCount configures the session store's shard count.
	ShardCount int `koanf:"shard_count"`

	// DedupeSize sets the frame-job dedupe window.
	DedupeSize int `koanf:"dedupe_size"`

	Fusion  FusionConfig  `koanf:"fusion"`
	Ball    BallConfig    `koanf:"ball"`
	Angles  AnglesConfig  `koanf:"angles"`
	Scoring ScoringConfig `koanf:"scoring"`
	Session SessionConfig `koanf:"session"`

	// Tiers maps tier name to metric benchmark tables. Validated by
	// ValidateTiers() before use; scoring never runs against broken ranges.
	Tiers map[string]map[string]model.Benchmark `koanf:"tiers"`
}

// FusionConfig holds keypoint fusion thresholds.
type FusionConfig struct {
	// MinConfidence is the acceptance threshold for source keypoints.
	MinConfidence float64 `koanf:"min_confidence"`
	// DisagreementFraction is the candidate disagreement threshold as a
	// fraction of the normalized frame diagonal.
	DisagreementFraction float64 `koanf:"disagreement_fraction"`
}

// BallConfig holds ball resolution thresholds.
type BallConfig struct {
	// MinConfidence gates the primary detector's report.
	MinConfidence float64 `koanf:"min_confidence"`
	// SearchRadius bounds the fallback scan around the wrist anchor.
	SearchRadius float64 `koanf:"search_radius"`
}

// AnglesConfig holds joint-angle thresholds.
type AnglesConfig struct {
	// ConfidenceFloor is the per-keypoint floor for angle computation.
	ConfidenceFloor float64 `koanf:"confidence_floor"`
}

// ScoringConfig holds form-scoring thresholds.
type ScoringConfig struct {
	// ScoreFloor is the per-metric score clamp for out-of-range values.
	ScoreFloor float64 `koanf:"score_floor"`
	// SeverityFactor separates medium from high severity flaws, as a
	// multiple of the benchmark range width.
	SeverityFactor float64 `koanf:"severity_factor"`
	// LowBandFraction is the in-range band beyond which a low-severity
	// flaw is emitted, as a fraction of range width.
	LowBandFraction float64 `koanf:"low_band_fraction"`
}

// SessionConfig holds aggregation thresholds.
type SessionConfig struct {
	// TrendThreshold is the score delta separating a real trend from
	// stable.
	TrendThreshold float64 `koanf:"trend_threshold"`
}

// New creates a Config with defaults. Tier tables default to the shipped
// beginner/intermediate/advanced benchmarks.
func New() *Config {
	return &Config{
		LogLevel:    "info",
		MetricsAddr: ":9090",
		WorkerCount: runtime.NumCPU(),
		QueueSize:   4096,
		ShardCount:  8,
		DedupeSize:  65536,
		Fusion: FusionConfig{
			MinConfidence:        0.3,
			DisagreementFraction: 0.15,
		},
		Ball: BallConfig{
			MinConfidence: 0.4,
			SearchRadius:  0.2,
		},
		Angles: AnglesConfig{
			ConfidenceFloor: 0.5,
		},
		Scoring: ScoringConfig{
			ScoreFloor:      20,
			SeverityFactor:  1.5,
			LowBandFraction: 0.25,
		},
		Session: SessionConfig{
			TrendThreshold: 5,
		},
		Tiers: DefaultTiers(),
	}
}
