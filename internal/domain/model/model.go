// Package model contains domain models passed between pipeline stages.
package model

import (
	"time"

	"github.com/google/uuid"
)

// KeypointName identifies an anatomical landmark in the skeleton topology.
type KeypointName string

// Skeleton topology, versioned with the source adapters. Every adapter must
// report names drawn from this set.
const (
	Nose          KeypointName = "nose"
	LeftEye       KeypointName = "left_eye"
	RightEye      KeypointName = "right_eye"
	LeftEar       KeypointName = "left_ear"
	RightEar      KeypointName = "right_ear"
	LeftShoulder  KeypointName = "left_shoulder"
	RightShoulder KeypointName = "right_shoulder"
	LeftElbow     KeypointName = "left_elbow"
	RightElbow    KeypointName = "right_elbow"
	LeftWrist     KeypointName = "left_wrist"
	RightWrist    KeypointName = "right_wrist"
	LeftHip       KeypointName = "left_hip"
	RightHip      KeypointName = "right_hip"
	LeftKnee      KeypointName = "left_knee"
	RightKnee     KeypointName = "right_knee"
	LeftAnkle     KeypointName = "left_ankle"
	RightAnkle    KeypointName = "right_ankle"
)

// topology lists every landmark the fusion engine reconciles, in a fixed
// order so iteration is deterministic.
var topology = []KeypointName{
	Nose, LeftEye, RightEye, LeftEar, RightEar,
	LeftShoulder, RightShoulder, LeftElbow, RightElbow,
	LeftWrist, RightWrist, LeftHip, RightHip,
	LeftKnee, RightKnee, LeftAnkle, RightAnkle,
}

// Topology returns the ordered landmark list. Callers must not mutate it.
func Topology() []KeypointName {
	return topology
}

// KnownKeypoint reports whether name belongs to the topology.
func KnownKeypoint(name KeypointName) bool {
	for _, n := range topology {
		if n == name {
			return true
		}
	}
	return false
}

// Source identifies the detector that produced an observation. The set is
// open: new detectors join by emitting conforming ObservationSets.
type Source string

// FusionMethod records how a fused keypoint was produced.
type FusionMethod string

const (
	// MethodOriginal means a single source reported the keypoint and it was
	// adopted unchanged.
	MethodOriginal FusionMethod = "original"
	// MethodFused means multiple agreeing sources were merged into a
	// confidence-weighted centroid.
	MethodFused FusionMethod = "fused"
	// MethodOverride means the sources disagreed beyond the distance
	// threshold and the highest-confidence candidate won outright.
	MethodOverride FusionMethod = "highest-confidence-override"
)

// Keypoint is one landmark observation. Coordinates are normalized to image
// width/height, so x and y live in [0,1] regardless of resolution.
// A missing detection is represented by absence from the observation set,
// never by a zero-confidence entry.
type Keypoint struct {
	Name       KeypointName
	X          float64
	Y          float64
	Confidence float64 // always present, in [0,1]
	Source     Source
}

// ObservationSet is everything one source reported for one frame.
type ObservationSet struct {
	Source     Source
	FrameIndex int
	Keypoints  map[KeypointName]Keypoint
}

// FusedKeypoint is a reconciled landmark with its provenance.
type FusedKeypoint struct {
	Keypoint
	Method       FusionMethod
	Contributors []Source
}

// FusedSkeleton is the reconciled result for one frame. A landmark absent
// from Keypoints is explicitly absent: no candidate cleared the acceptance
// threshold. There are no implicit nulls.
type FusedSkeleton struct {
	FrameIndex        int
	Keypoints         map[KeypointName]FusedKeypoint
	OverallConfidence float64
}

// Absent reports whether the skeleton lacks a fused value for name.
func (s FusedSkeleton) Absent(name KeypointName) bool {
	_, ok := s.Keypoints[name]
	return !ok
}

// Usable reports whether downstream stages should trust this skeleton at
// all. Zero fused keypoints means "no usable skeleton", not an error.
func (s FusedSkeleton) Usable() bool {
	return len(s.Keypoints) > 0
}

// BallObservation is the primary ball detector's raw report for a frame.
type BallObservation struct {
	X          float64
	Y          float64
	Radius     float64
	Confidence float64
}

// BallMethod records which path resolved the ball position.
type BallMethod string

const (
	BallFromDetector BallMethod = "detector"
	BallFromFallback BallMethod = "fallback"
)

// BallPosition is the single resolved ball location for a frame.
type BallPosition struct {
	FrameIndex int
	X          float64
	Y          float64
	Radius     float64
	Method     BallMethod
	Confidence float64
}

// ProxyCandidate is one row of the deterministic color/shape proxy signal
// the external ball collaborator supplies for fallback resolution.
type ProxyCandidate struct {
	X      float64
	Y      float64
	Radius float64
	Score  float64
}

// AngleName identifies a derived biomechanical angle.
type AngleName string

const (
	LeftElbowAngle     AngleName = "left_elbow"
	RightElbowAngle    AngleName = "right_elbow"
	LeftKneeAngle      AngleName = "left_knee"
	RightKneeAngle     AngleName = "right_knee"
	LeftShoulderAngle  AngleName = "left_shoulder"
	RightShoulderAngle AngleName = "right_shoulder"
	LeftHipAngle       AngleName = "left_hip"
	RightHipAngle      AngleName = "right_hip"
	ShoulderTilt       AngleName = "shoulder_tilt"
	HipTilt            AngleName = "hip_tilt"
)

// AngleSet holds the angles derivable from one fused skeleton. Angles whose
// defining keypoints were missing or below the confidence floor are simply
// not present in the map.
type AngleSet struct {
	FrameIndex int
	Angles     map[AngleName]float64
}

// Category groups related metrics for scoring.
type Category string

const (
	UpperBody Category = "upper_body"
	LowerBody Category = "lower_body"
	Release   Category = "release"
	Balance   Category = "balance"
)

// Categories returns the known category set in a fixed order.
func Categories() []Category {
	return []Category{UpperBody, LowerBody, Release, Balance}
}

// Benchmark is the expected range for one metric within a tier.
type Benchmark struct {
	Optimal  float64  `koanf:"optimal"`
	Min      float64  `koanf:"min"`
	Max      float64  `koanf:"max"`
	Category Category `koanf:"category"`
}

// Width returns the benchmark range width.
func (b Benchmark) Width() float64 {
	return b.Max - b.Min
}

// Contains reports whether v lies inside [Min, Max].
func (b Benchmark) Contains(v float64) bool {
	return v >= b.Min && v <= b.Max
}

// Tier is a skill bracket's benchmark table. Tiers are loaded once at
// startup and never mutated, so they are safe to share across goroutines.
type Tier struct {
	Name    string
	Metrics map[AngleName]Benchmark
}

// Severity ranks how far a measurement strayed from its benchmark.
type Severity string

const (
	SeverityLow    Severity = "low"
	SeverityMedium Severity = "medium"
	SeverityHigh   Severity = "high"
)

// rank orders severities for sorting; higher sorts earlier.
func (s Severity) Rank() int {
	switch s {
	case SeverityHigh:
		return 3
	case SeverityMedium:
		return 2
	case SeverityLow:
		return 1
	default:
		return 0
	}
}

// Flaw is one detected deviation between a measured angle and its
// tier-expected range.
type Flaw struct {
	Metric        AngleName
	Category      Category
	Severity      Severity
	MeasuredValue float64
	Expected      Benchmark
	// Deviation is the absolute distance from the benchmark optimal, used
	// as the secondary flaw ordering key.
	Deviation float64
}

// AnalysisResult is the scored outcome for one frame. Immutable once
// created; corrections are recompute-and-replace, never in-place edits.
type AnalysisResult struct {
	ID                 string
	FrameIndex         int
	CapturedAt         time.Time
	Tier               string
	Angles             AngleSet
	CategoryScores     map[Category]float64
	Flaws              []Flaw // ordered by severity desc, then deviation desc
	OverallScore       float64
	SkeletonConfidence float64
}

// NewResultID returns a unique identifier for an analysis result.
func NewResultID() string {
	return uuid.NewString()
}

// FrameJob is the unit of asynchronous work: one frame's observations plus
// the routing needed to append its result to the right session.
type FrameJob struct {
	ID              string
	PlayerID        string
	SessionID       string
	Tier            string
	FrameIndex      int
	CapturedAt      time.Time
	Observations    []ObservationSet
	Ball            *BallObservation
	ProxyCandidates []ProxyCandidate
}

// Trend is the direction of change in score over a window.
type Trend string

const (
	TrendImproving Trend = "improving"
	TrendStable    Trend = "stable"
	TrendDeclining Trend = "declining"
)

// AchievementID names a milestone. Once unlocked for a player it is never
// revoked, even if later performance declines.
type AchievementID string

const (
	AchievementFirstAnalysis  AchievementID = "first_analysis"
	AchievementFiveSessions   AchievementID = "five_sessions"
	AchievementTenSessions    AchievementID = "ten_sessions"
	AchievementScore90        AchievementID = "score_90"
	AchievementImprovingTrend AchievementID = "improving_trend"
)

// SessionAggregate is derived from a session's result list on read. It is
// never persisted independently, which keeps it from going stale.
type SessionAggregate struct {
	TotalSessions     int
	TotalResults      int
	AverageScore      float64
	Trend             Trend
	CategoryStability map[Category]Trend
	IssueFrequency    map[Category]int
	Achievements      map[AchievementID]struct{}
}
