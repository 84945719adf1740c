// Package scoring compares derived joint angles against tier benchmark
// ranges, producing per-category scores and a ranked flaw list.
package scoring

import (
	"sort"

	"gonum.org/v1/gonum/stat"

	"github.com/baller70/BasketballAnalysisAssessmentApp-sub002/internal/domain/model"
)

// Default scoring configuration constants.
const (
	maxMetricScore = 100.0
	// defaultScoreFloor clamps a badly-off metric's score: a flawed but
	// visible shot still carries partial signal.
	defaultScoreFloor = 20.0
	// defaultSeverityFactor separates medium from high severity, as a
	// multiple of the benchmark range width.
	defaultSeverityFactor = 1.5
	// defaultLowBandFraction is the in-range deviation band (as a fraction
	// of range width) beyond which a low-severity flaw is emitted.
	defaultLowBandFraction = 0.25
)

// Option applies a configuration option to the Scorer.
type Option func(*Scorer)

// WithScoreFloor sets the per-metric score floor for out-of-range values.
func WithScoreFloor(floor float64) Option {
	return func(s *Scorer) {
		if floor >= 0 && floor < maxMetricScore {
			s.scoreFloor = floor
		}
	}
}

// WithSeverityFactor sets the range-width multiple separating medium from
// high severity flaws.
func WithSeverityFactor(f float64) Option {
	return func(s *Scorer) {
		if f > 0 {
			s.severityFactor = f
		}
	}
}

// WithLowBandFraction sets the in-range deviation band, as a fraction of
// the range width, beyond which a low-severity flaw is emitted.
func WithLowBandFraction(f float64) Option {
	return func(s *Scorer) {
		if f > 0 && f <= 1 {
			s.lowBandFraction = f
		}
	}
}

// Scorer scores angle sets against tier benchmark tables. Stateless apart
// from its thresholds and safe for concurrent use; the tier tables it reads
// are loaded once and never mutated.
type Scorer struct {
	scoreFloor      float64
	severityFactor  float64
	lowBandFraction float64
}

// New creates a Scorer with configuration options.
func New(opts ...Option) *Scorer {
	s := &Scorer{
		scoreFloor:      defaultScoreFloor,
		severityFactor:  defaultSeverityFactor,
		lowBandFraction: defaultLowBandFraction,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Score evaluates the angle set against the tier's benchmarks.
//
// Metrics in the tier without a computable angle are skipped, never
// imputed; their categories are down-weighted in the overall score in
// proportion to how much of the category was measurable. Flaws come back
// ordered by severity (high first), then absolute deviation from optimal
// (largest first); consumers rely on this for "top flaw" display.
func (s *Scorer) Score(angles model.AngleSet, tier model.Tier) model.AnalysisResult {
	perCategory := make(map[model.Category][]float64)
	measured := make(map[model.Category]int)
	total := make(map[model.Category]int)
	var flaws []model.Flaw

	for metric, bench := range tier.Metrics {
		total[bench.Category]++
		value, ok := angles.Angles[metric]
		if !ok {
			continue
		}
		measured[bench.Category]++
		perCategory[bench.Category] = append(perCategory[bench.Category], s.metricScore(value, bench))

		if flaw, flawed := s.classify(metric, value, bench); flawed {
			flaws = append(flaws, flaw)
		}
	}

	categoryScores := make(map[model.Category]float64, len(perCategory))
	for cat, scores := range perCategory {
		categoryScores[cat] = stat.Mean(scores, nil)
	}

	sortFlaws(flaws)

	return model.AnalysisResult{
		ID:             model.NewResultID(),
		FrameIndex:     angles.FrameIndex,
		Tier:           tier.Name,
		Angles:         angles,
		CategoryScores: categoryScores,
		Flaws:          flaws,
		OverallScore:   overall(categoryScores, measured, total),
	}
}

// metricScore maps a measured value to [floor, 100]: 100 at optimal,
// falling linearly with distance from optimal, bottoming out at the floor
// where the overshoot past the range edge reaches the high-severity
// boundary. The curve is monotone in distance-from-optimal, so moving
// closer to optimal never scores worse, and everything past the range edge
// stays clamped between the floor and the edge score.
func (s *Scorer) metricScore(value float64, bench model.Benchmark) float64 {
	allowed := bench.Optimal - bench.Min
	if value > bench.Optimal {
		allowed = bench.Max - bench.Optimal
	}
	deviation := value - bench.Optimal
	if deviation < 0 {
		deviation = -deviation
	}
	// Distance from optimal at which the score hits the floor: the room on
	// this side of the range plus the high-severity overshoot.
	floorDistance := allowed + s.severityFactor*bench.Width()
	if floorDistance <= 0 {
		if deviation == 0 {
			return maxMetricScore
		}
		return s.scoreFloor
	}
	raw := maxMetricScore - (maxMetricScore-s.scoreFloor)*deviation/floorDistance
	if raw < s.scoreFloor {
		return s.scoreFloor
	}
	return raw
}

// classify emits a flaw when the value strays from its benchmark: high or
// medium when outside the range depending on how far, low when inside the
// range but outside the acceptable band around optimal.
func (s *Scorer) classify(metric model.AngleName, value float64, bench model.Benchmark) (model.Flaw, bool) {
	deviation := value - bench.Optimal
	if deviation < 0 {
		deviation = -deviation
	}
	flaw := model.Flaw{
		Metric:        metric,
		Category:      bench.Category,
		MeasuredValue: value,
		Expected:      bench,
		Deviation:     deviation,
	}

	if !bench.Contains(value) {
		overshoot := bench.Min - value
		if value > bench.Max {
			overshoot = value - bench.Max
		}
		flaw.Severity = model.SeverityMedium
		if overshoot >= s.severityFactor*bench.Width() {
			flaw.Severity = model.SeverityHigh
		}
		return flaw, true
	}

	if deviation > s.lowBandFraction*bench.Width() {
		flaw.Severity = model.SeverityLow
		return flaw, true
	}
	return model.Flaw{}, false
}

// overall is the weighted mean of category scores where each category's
// weight is the fraction of its metrics that were measurable.
func overall(categoryScores map[model.Category]float64, measured, total map[model.Category]int) float64 {
	var weightedSum, weightSum float64
	for cat, score := range categoryScores {
		if total[cat] == 0 {
			continue
		}
		w := float64(measured[cat]) / float64(total[cat])
		weightedSum += score * w
		weightSum += w
	}
	if weightSum == 0 {
		return 0
	}
	return weightedSum / weightSum
}

// sortFlaws orders by severity desc, then deviation desc, then metric name
// for a deterministic tail.
func sortFlaws(flaws []model.Flaw) {
	sort.Slice(flaws, func(i, j int) bool {
		if flaws[i].Severity.Rank() != flaws[j].Severity.Rank() {
			return flaws[i].Severity.Rank() > flaws[j].Severity.Rank()
		}
		if flaws[i].Deviation != flaws[j].Deviation {
			return flaws[i].Deviation > flaws[j].Deviation
		}
		return flaws[i].Metric < flaws[j].Metric
	})
}
