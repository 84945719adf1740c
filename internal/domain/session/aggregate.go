// Package session folds a time-ordered sequence of analysis results into
// longitudinal statistics: trend, category stability, issue frequency, and
// monotonic achievements.
package session

import (
	"fmt"
	"sort"

	"gonum.org/v1/gonum/stat"

	"github.com/baller70/BasketballAnalysisAssessmentApp-sub002/internal/domain/model"
)

// Default aggregation constants.
const (
	// defaultTrendThreshold is the score-point change between the earliest
	// and most recent thirds that counts as a real trend.
	defaultTrendThreshold = 5.0
	// minTrendResults is the smallest window a trend can be read from.
	// Below it the trend is stable by definition: insufficient data is not
	// an error.
	minTrendResults = 3
	// score thresholds for achievements.
	highScoreThreshold   = 90.0
	fiveSessionThreshold = 5
	tenSessionThreshold  = 10
)

// Option applies a configuration option to the Aggregator.
type Option func(*Aggregator)

// WithTrendThreshold sets the score delta that separates improving or
// declining from stable.
func WithTrendThreshold(t float64) Option {
	return func(a *Aggregator) {
		if t > 0 {
			a.trendThreshold = t
		}
	}
}

// Aggregator computes session aggregates. Stateless apart from its
// threshold; the only accumulating structure in the system is the session's
// append-only result list, which the caller owns.
type Aggregator struct {
	trendThreshold float64
}

// New creates an Aggregator with configuration options.
func New(opts ...Option) *Aggregator {
	a := &Aggregator{trendThreshold: defaultTrendThreshold}
	for _, opt := range opts {
		opt(a)
	}
	return a
}

// Aggregate folds results into a SessionAggregate.
//
// Results must already be ordered by frame index ascending; callers that
// parallelized per-frame analysis upstream must sort first (SortResults).
// Out-of-order input is rejected with ErrOutOfOrder rather than silently
// aggregated wrong.
//
// sessions is the subject's completed upload count and unlocked the
// subject's previously earned achievements; the returned set is always a
// superset of unlocked, never smaller.
func (a *Aggregator) Aggregate(
	results []model.AnalysisResult,
	sessions int,
	unlocked map[model.AchievementID]struct{},
) (model.SessionAggregate, error) {
	for i := 1; i < len(results); i++ {
		if results[i].FrameIndex < results[i-1].FrameIndex {
			return model.SessionAggregate{}, fmt.Errorf(
				"%w: frame %d after frame %d at position %d",
				ErrOutOfOrder, results[i].FrameIndex, results[i-1].FrameIndex, i)
		}
	}

	agg := model.SessionAggregate{
		TotalSessions:     sessions,
		TotalResults:      len(results),
		Trend:             model.TrendStable,
		CategoryStability: make(map[model.Category]Trend),
		IssueFrequency:    make(map[model.Category]int),
		Achievements:      make(map[model.AchievementID]struct{}, len(unlocked)),
	}
	for id := range unlocked {
		agg.Achievements[id] = struct{}{}
	}

	if len(results) > 0 {
		scores := make([]float64, len(results))
		for i, r := range results {
			scores[i] = r.OverallScore
		}
		agg.AverageScore = stat.Mean(scores, nil)
		agg.Trend = a.trend(scores)
	}

	for _, cat := range model.Categories() {
		var series []float64
		for _, r := range results {
			if s, ok := r.CategoryScores[cat]; ok {
				series = append(series, s)
			}
		}
		if len(series) > 0 {
			agg.CategoryStability[cat] = a.trend(series)
		}
	}

	for _, r := range results {
		for _, f := range r.Flaws {
			agg.IssueFrequency[f.Category]++
		}
	}

	a.unlock(&agg, results)
	return agg, nil
}

// Trend aliases the model type so callers reading stability maps don't need
// a second import.
type Trend = model.Trend

// trend compares the mean of the most recent third of the series against
// the earliest third.
func (a *Aggregator) trend(series []float64) model.Trend {
	if len(series) < minTrendResults {
		return model.TrendStable
	}
	third := len(series) / 3
	early := stat.Mean(series[:third], nil)
	recent := stat.Mean(series[len(series)-third:], nil)
	switch {
	case recent-early > a.trendThreshold:
		return model.TrendImproving
	case early-recent > a.trendThreshold:
		return model.TrendDeclining
	default:
		return model.TrendStable
	}
}

// unlock adds any newly earned achievements. The set is monotonic: nothing
// is ever removed, even if later performance declines.
func (a *Aggregator) unlock(agg *model.SessionAggregate, results []model.AnalysisResult) {
	if len(results) > 0 {
		agg.Achievements[model.AchievementFirstAnalysis] = struct{}{}
	}
	if agg.TotalSessions >= fiveSessionThreshold {
		agg.Achievements[model.AchievementFiveSessions] = struct{}{}
	}
	if agg.TotalSessions >= tenSessionThreshold {
		agg.Achievements[model.AchievementTenSessions] = struct{}{}
	}
	for _, r := range results {
		if r.OverallScore >= highScoreThreshold {
			agg.Achievements[model.AchievementScore90] = struct{}{}
			break
		}
	}
	if agg.Trend == model.TrendImproving {
		agg.Achievements[model.AchievementImprovingTrend] = struct{}{}
	}
}

// SortResults orders results by frame index ascending, breaking ties by
// capture time. Callers that fanned frame analysis out across workers use
// this before Aggregate.
func SortResults(results []model.AnalysisResult) {
	sort.SliceStable(results, func(i, j int) bool {
		if results[i].FrameIndex != results[j].FrameIndex {
			return results[i].FrameIndex < results[j].FrameIndex
		}
		return results[i].CapturedAt.Before(results[j].CapturedAt)
	})
}
