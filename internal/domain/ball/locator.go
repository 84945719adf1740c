// Package ball resolves a single ball position per frame from the primary
// detector's report, falling back to a deterministic search anchored at the
// shooter's hands.
package ball

import (
	"math"

	"github.com/baller70/BasketballAnalysisAssessmentApp-sub002/internal/domain/model"
)

// Default locator thresholds.
const (
	defaultMinConfidence = 0.4
	defaultSearchRadius  = 0.2
	defaultAnchorFloor   = 0.5
)

// Locator resolves ball positions. Stateless and safe for concurrent use.
type Locator struct {
	minConfidence float64
	searchRadius  float64
	anchorFloor   float64
}

// New creates a Locator with configuration options.
func New(opts ...Option) *Locator {
	l := &Locator{
		minConfidence: defaultMinConfidence,
		searchRadius:  defaultSearchRadius,
		anchorFloor:   defaultAnchorFloor,
	}
	for _, opt := range opts {
		opt(l)
	}
	return l
}

// Locate resolves at most one ball position for the frame.
//
// The primary detector wins when its confidence clears the gate. Otherwise
// the fallback scans the proxy candidates (a deterministic color/shape
// signal supplied by the detection collaborator) near the most confident
// fused wrist. When neither path succeeds the result is nil: a guessed
// default location would be worse than admitting absence.
func (l *Locator) Locate(
	primary *model.BallObservation,
	skeleton model.FusedSkeleton,
	candidates []model.ProxyCandidate,
) *model.BallPosition {
	if primary != nil && primary.Confidence >= l.minConfidence {
		return &model.BallPosition{
			FrameIndex: skeleton.FrameIndex,
			X:          primary.X,
			Y:          primary.Y,
			Radius:     primary.Radius,
			Method:     model.BallFromDetector,
			Confidence: primary.Confidence,
		}
	}
	return l.fallback(skeleton, candidates)
}

// fallback picks the best proxy candidate within the search radius of the
// wrist anchor. Ties break by distance to the anchor, then by coordinates,
// so identical inputs always yield the identical result.
func (l *Locator) fallback(skeleton model.FusedSkeleton, candidates []model.ProxyCandidate) *model.BallPosition {
	anchor, ok := l.anchor(skeleton)
	if !ok || len(candidates) == 0 {
		return nil
	}

	var best *model.ProxyCandidate
	var bestDist float64
	for i := range candidates {
		c := candidates[i]
		dist := math.Hypot(c.X-anchor.X, c.Y-anchor.Y)
		if dist > l.searchRadius {
			continue
		}
		if best == nil || better(c, dist, *best, bestDist) {
			best = &candidates[i]
			bestDist = dist
		}
	}
	if best == nil {
		return nil
	}
	return &model.BallPosition{
		FrameIndex: skeleton.FrameIndex,
		X:          best.X,
		Y:          best.Y,
		Radius:     best.Radius,
		Method:     model.BallFromFallback,
		Confidence: best.Score,
	}
}

// anchor returns the most confident wrist keypoint above the anchor floor.
// Ties prefer the left wrist for determinism.
func (l *Locator) anchor(skeleton model.FusedSkeleton) (model.FusedKeypoint, bool) {
	var anchor model.FusedKeypoint
	var found bool
	for _, name := range []model.KeypointName{model.LeftWrist, model.RightWrist} {
		kp, ok := skeleton.Keypoints[name]
		if !ok || kp.Confidence < l.anchorFloor {
			continue
		}
		if !found || kp.Confidence > anchor.Confidence {
			anchor = kp
			found = true
		}
	}
	return anchor, found
}

// better reports whether candidate a beats candidate b under the
// deterministic ordering: higher score, then smaller anchor distance, then
// lexicographically smaller (x, y).
func better(a model.ProxyCandidate, aDist float64, b model.ProxyCandidate, bDist float64) bool {
	if a.Score != b.Score {
		return a.Score > b.Score
	}
	if aDist != bDist {
		return aDist < bDist
	}
	if a.X != b.X {
		return a.X < b.X
	}
	return a.Y < b.Y
}
