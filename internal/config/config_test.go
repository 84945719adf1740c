package config_test

import (
	"testing"

	. "github.com/smartystreets/goconvey/convey"

	"github.com/baller70/BasketballAnalysisAssessmentApp-sub002/internal/config"
	"github.com/baller70/BasketballAnalysisAssessmentApp-sub002/internal/domain/model"
)

func TestDefaults(t *testing.T) {
	Convey("Given a default config", t, func() {
		cfg := config.New()

		Convey("Then thresholds carry the documented defaults", func() {
			So(cfg.Fusion.MinConfidence, ShouldEqual, 0.3)
			So(cfg.Fusion.DisagreementFraction, ShouldEqual, 0.15)
			So(cfg.Ball.MinConfidence, ShouldEqual, 0.4)
			So(cfg.Angles.ConfidenceFloor, ShouldEqual, 0.5)
			So(cfg.Scoring.ScoreFloor, ShouldEqual, 20.0)
			So(cfg.Scoring.SeverityFactor, ShouldEqual, 1.5)
			So(cfg.Session.TrendThreshold, ShouldEqual, 5.0)
		})

		Convey("Then the shipped tier tables validate", func() {
			tiers, err := cfg.ValidateTiers()
			So(err, ShouldBeNil)
			So(tiers, ShouldContainKey, "beginner")
			So(tiers, ShouldContainKey, "intermediate")
			So(tiers, ShouldContainKey, "advanced")
		})

		Convey("Then the intermediate elbow benchmark matches the coaching tables", func() {
			tiers, err := cfg.ValidateTiers()
			So(err, ShouldBeNil)
			elbow := tiers["intermediate"].Metrics[model.RightElbowAngle]
			So(elbow.Optimal, ShouldEqual, 90.0)
			So(elbow.Min, ShouldEqual, 80.0)
			So(elbow.Max, ShouldEqual, 100.0)
		})
	})
}

func TestValidateTiers(t *testing.T) {
	Convey("Given a config whose tier table is broken", t, func() {
		Convey("When a required metric is missing", func() {
			cfg := config.New()
			delete(cfg.Tiers["beginner"], string(model.LeftElbowAngle))
			_, err := cfg.ValidateTiers()

			Convey("Then validation fails fast with ErrInvalidTierConfig", func() {
				So(err, ShouldWrap, config.ErrInvalidTierConfig)
			})
		})

		Convey("When min is not below max", func() {
			cfg := config.New()
			bench := cfg.Tiers["beginner"][string(model.LeftKneeAngle)]
			bench.Min, bench.Max = bench.Max, bench.Min
			cfg.Tiers["beginner"][string(model.LeftKneeAngle)] = bench
			_, err := cfg.ValidateTiers()

			Convey("Then validation fails", func() {
				So(err, ShouldWrap, config.ErrInvalidTierConfig)
			})
		})

		Convey("When optimal sits outside the range", func() {
			cfg := config.New()
			bench := cfg.Tiers["advanced"][string(model.ShoulderTilt)]
			bench.Optimal = 45
			cfg.Tiers["advanced"][string(model.ShoulderTilt)] = bench
			_, err := cfg.ValidateTiers()

			Convey("Then validation fails", func() {
				So(err, ShouldWrap, config.ErrInvalidTierConfig)
			})
		})

		Convey("When the category is unknown", func() {
			cfg := config.New()
			bench := cfg.Tiers["beginner"][string(model.HipTilt)]
			bench.Category = "core"
			cfg.Tiers["beginner"][string(model.HipTilt)] = bench
			_, err := cfg.ValidateTiers()

			Convey("Then validation fails", func() {
				So(err, ShouldWrap, config.ErrInvalidTierConfig)
			})
		})

		Convey("When no tiers are configured at all", func() {
			cfg := config.New()
			cfg.Tiers = nil
			_, err := cfg.ValidateTiers()

			Convey("Then validation fails", func() {
				So(err, ShouldWrap, config.ErrInvalidTierConfig)
			})
		})
	})
}
