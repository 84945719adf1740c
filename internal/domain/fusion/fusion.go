// Package fusion merges per-frame keypoint observations from independent
// detection sources into one reconciled skeleton.
package fusion

import (
	"fmt"
	"math"
	"sort"

	"github.com/baller70/BasketballAnalysisAssessmentApp-sub002/internal/domain/model"
)

// Default fusion thresholds.
const (
	defaultMinConfidence        = 0.3
	defaultDisagreementFraction = 0.15
)

// frameDiagonal is the diagonal length of the normalized [0,1]x[0,1] frame.
var frameDiagonal = math.Sqrt2

// Engine reconciles multi-source observations into fused skeletons. It is
// stateless apart from its thresholds and safe for concurrent use.
type Engine struct {
	minConfidence        float64
	disagreementFraction float64
}

// New creates an Engine with configuration options.
func New(opts ...Option) *Engine {
	e := &Engine{
		minConfidence:        defaultMinConfidence,
		disagreementFraction: defaultDisagreementFraction,
	}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// Fuse merges all ObservationSets for one frame into a FusedSkeleton.
// Every set must carry the same frame index; mixing frames is a caller bug
// and fails with ErrMismatchedFrame. Fuse is deterministic: identical input
// always produces identical output.
func (e *Engine) Fuse(sets []model.ObservationSet) (model.FusedSkeleton, error) {
	skeleton := model.FusedSkeleton{
		Keypoints: make(map[model.KeypointName]model.FusedKeypoint),
	}
	if len(sets) == 0 {
		return skeleton, nil
	}

	frame := sets[0].FrameIndex
	for _, s := range sets[1:] {
		if s.FrameIndex != frame {
			return model.FusedSkeleton{}, fmt.Errorf(
				"%w: got frames %d and %d", ErrMismatchedFrame, frame, s.FrameIndex)
		}
	}
	skeleton.FrameIndex = frame

	var confSum float64
	for _, name := range model.Topology() {
		candidates := e.collect(sets, name)
		if len(candidates) == 0 {
			// Explicitly absent: no interpolation, no placeholder.
			continue
		}
		fused := e.resolve(name, candidates)
		skeleton.Keypoints[name] = fused
		confSum += fused.Confidence
	}

	if len(skeleton.Keypoints) > 0 {
		skeleton.OverallConfidence = confSum / float64(len(skeleton.Keypoints))
	}
	return skeleton, nil
}

// collect gathers candidates for one landmark across all sources, dropping
// anything below the acceptance threshold. Candidates are ordered by source
// name so fusion stays deterministic regardless of input slice order.
func (e *Engine) collect(sets []model.ObservationSet, name model.KeypointName) []model.Keypoint {
	var candidates []model.Keypoint
	for _, s := range sets {
		kp, ok := s.Keypoints[name]
		if !ok {
			continue
		}
		if kp.Confidence < e.minConfidence {
			continue
		}
		kp.Name = name
		kp.Source = s.Source
		candidates = append(candidates, kp)
	}
	sort.Slice(candidates, func(i, j int) bool {
		return candidates[i].Source < candidates[j].Source
	})
	return candidates
}

// resolve turns one landmark's candidate list into a fused keypoint.
func (e *Engine) resolve(name model.KeypointName, candidates []model.Keypoint) model.FusedKeypoint {
	if len(candidates) == 1 {
		return model.FusedKeypoint{
			Keypoint:     candidates[0],
			Method:       model.MethodOriginal,
			Contributors: []model.Source{candidates[0].Source},
		}
	}

	if e.disagree(candidates) {
		// A far-off detection must not drag the fused point toward noise:
		// the single most confident candidate wins outright.
		best := candidates[0]
		for _, c := range candidates[1:] {
			if c.Confidence > best.Confidence {
				best = c
			}
		}
		return model.FusedKeypoint{
			Keypoint:     best,
			Method:       model.MethodOverride,
			Contributors: sources(candidates),
		}
	}

	var wx, wy, wsum, maxConf float64
	for _, c := range candidates {
		wx += c.X * c.Confidence
		wy += c.Y * c.Confidence
		wsum += c.Confidence
		if c.Confidence > maxConf {
			maxConf = c.Confidence
		}
	}
	return model.FusedKeypoint{
		Keypoint: model.Keypoint{
			Name: name,
			X:    wx / wsum,
			Y:    wy / wsum,
			// Max, not mean: one highly confident source must not be
			// diluted by a weaker one.
			Confidence: maxConf,
			Source:     "",
		},
		Method:       model.MethodFused,
		Contributors: sources(candidates),
	}
}

// disagree reports whether any candidate pair is separated by more than the
// configured fraction of the normalized frame diagonal.
func (e *Engine) disagree(candidates []model.Keypoint) bool {
	threshold := e.disagreementFraction * frameDiagonal
	for i := 0; i < len(candidates); i++ {
		for j := i + 1; j < len(candidates); j++ {
			if math.Hypot(candidates[i].X-candidates[j].X, candidates[i].Y-candidates[j].Y) > threshold {
				return true
			}
		}
	}
	return false
}

func sources(candidates []model.Keypoint) []model.Source {
	out := make([]model.Source, len(candidates))
	for i, c := range candidates {
		out[i] = c.Source
	}
	return out
}
