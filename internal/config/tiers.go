package config

import (
	"fmt"

	"github.com/baller70/BasketballAnalysisAssessmentApp-sub002/internal/domain/model"
)

// requiredMetrics lists every metric a tier table must benchmark, with the
// category each belongs to. Categories are fixed across tiers; only the
// ranges vary by skill bracket.
var requiredMetrics = map[model.AngleName]model.Category{
	model.LeftElbowAngle:     model.Release,
	model.RightElbowAngle:    model.Release,
	model.LeftShoulderAngle:  model.UpperBody,
	model.RightShoulderAngle: model.UpperBody,
	model.LeftKneeAngle:      model.LowerBody,
	model.RightKneeAngle:     model.LowerBody,
	model.LeftHipAngle:       model.LowerBody,
	model.RightHipAngle:      model.LowerBody,
	model.ShoulderTilt:       model.Balance,
	model.HipTilt:            model.Balance,
}

// DefaultTiers returns the shipped benchmark tables. Ranges tighten as the
// bracket advances; optima stay anatomical constants.
func DefaultTiers() map[string]map[string]model.Benchmark {
	build := func(elbow, knee, shoulder, hip, shoulderTilt, hipTilt model.Benchmark) map[string]model.Benchmark {
		return map[string]model.Benchmark{
			string(model.LeftElbowAngle):     elbow,
			string(model.RightElbowAngle):    elbow,
			string(model.LeftShoulderAngle):  shoulder,
			string(model.RightShoulderAngle): shoulder,
			string(model.LeftKneeAngle):      knee,
			string(model.RightKneeAngle):     knee,
			string(model.LeftHipAngle):       hip,
			string(model.RightHipAngle):      hip,
			string(model.ShoulderTilt):       shoulderTilt,
			string(model.HipTilt):            hipTilt,
		}
	}
	return map[string]map[string]model.Benchmark{
		"beginner": build(
			model.Benchmark{Optimal: 90, Min: 70, Max: 110, Category: model.Release},
			model.Benchmark{Optimal: 140, Min: 110, Max: 165, Category: model.LowerBody},
			model.Benchmark{Optimal: 100, Min: 60, Max: 140, Category: model.UpperBody},
			model.Benchmark{Optimal: 165, Min: 130, Max: 180, Category: model.LowerBody},
			model.Benchmark{Optimal: 0, Min: -15, Max: 15, Category: model.Balance},
			model.Benchmark{Optimal: 0, Min: -12, Max: 12, Category: model.Balance},
		),
		"intermediate": build(
			model.Benchmark{Optimal: 90, Min: 80, Max: 100, Category: model.Release},
			model.Benchmark{Optimal: 140, Min: 120, Max: 160, Category: model.LowerBody},
			model.Benchmark{Optimal: 100, Min: 75, Max: 125, Category: model.UpperBody},
			model.Benchmark{Optimal: 165, Min: 145, Max: 180, Category: model.LowerBody},
			model.Benchmark{Optimal: 0, Min: -10, Max: 10, Category: model.Balance},
			model.Benchmark{Optimal: 0, Min: -8, Max: 8, Category: model.Balance},
		),
		"advanced": build(
			model.Benchmark{Optimal: 90, Min: 85, Max: 95, Category: model.Release},
			model.Benchmark{Optimal: 140, Min: 125, Max: 155, Category: model.LowerBody},
			model.Benchmark{Optimal: 100, Min: 85, Max: 115, Category: model.UpperBody},
			model.Benchmark{Optimal: 165, Min: 150, Max: 180, Category: model.LowerBody},
			model.Benchmark{Optimal: 0, Min: -6, Max: 6, Category: model.Balance},
			model.Benchmark{Optimal: 0, Min: -5, Max: 5, Category: model.Balance},
		),
	}
}

// ValidateTiers checks the configured benchmark tables and returns them as
// immutable domain tiers. Validation fails fast: a broken table must stop
// startup rather than silently mis-score every shot.
func (c *Config) ValidateTiers() (map[string]model.Tier, error) {
	if len(c.Tiers) == 0 {
		return nil, fmt.Errorf("%w: no tiers configured", ErrInvalidTierConfig)
	}
	out := make(map[string]model.Tier, len(c.Tiers))
	for name, table := range c.Tiers {
		tier := model.Tier{
			Name:    name,
			Metrics: make(map[model.AngleName]model.Benchmark, len(table)),
		}
		for metric, wantCat := range requiredMetrics {
			bench, ok := table[string(metric)]
			if !ok {
				return nil, fmt.Errorf("%w: tier %q missing metric %q",
					ErrInvalidTierConfig, name, metric)
			}
			if bench.Min >= bench.Max {
				return nil, fmt.Errorf("%w: tier %q metric %q has min %.2f >= max %.2f",
					ErrInvalidTierConfig, name, metric, bench.Min, bench.Max)
			}
			if bench.Optimal < bench.Min || bench.Optimal > bench.Max {
				return nil, fmt.Errorf("%w: tier %q metric %q optimal %.2f outside [%.2f, %.2f]",
					ErrInvalidTierConfig, name, metric, bench.Optimal, bench.Min, bench.Max)
			}
			if bench.Category == "" {
				bench.Category = wantCat
			}
			if !knownCategory(bench.Category) {
				return nil, fmt.Errorf("%w: tier %q metric %q has unknown category %q",
					ErrInvalidTierConfig, name, metric, bench.Category)
			}
			tier.Metrics[metric] = bench
		}
		out[name] = tier
	}
	return out, nil
}

func knownCategory(cat model.Category) bool {
	for _, c := range model.Categories() {
		if c == cat {
			return true
		}
	}
	return false
}
