package config_test

import (
	"testing"

	. "github.com/smartystreets/goconvey/convey"

	"github.com/baller70/BasketballAnalysisAssessmentApp-sub002/internal/config"
)

func TestLoad(t *testing.T) {
	Convey("Given a clean environment", t, func() {
		Convey("When loading with no overrides", func() {
			cfg, err := config.Load()

			Convey("Then defaults apply and tiers validate", func() {
				So(err, ShouldBeNil)
				So(cfg.MetricsAddr, ShouldEqual, ":9090")
				So(cfg.QueueSize, ShouldEqual, 4096)
			})
		})

		Convey("When a flat env override is set", func() {
			t.Setenv("SHOTFORM_QUEUE_SIZE", "128")
			cfg, err := config.Load()

			Convey("Then it takes precedence over the default", func() {
				So(err, ShouldBeNil)
				So(cfg.QueueSize, ShouldEqual, 128)
			})
		})

		Convey("When a nested env override is set with a double underscore", func() {
			t.Setenv("SHOTFORM_FUSION__MIN_CONFIDENCE", "0.45")
			cfg, err := config.Load()

			Convey("Then the nested key is overridden", func() {
				So(err, ShouldBeNil)
				So(cfg.Fusion.MinConfidence, ShouldEqual, 0.45)
			})
		})

		Convey("When worker_count is overridden to an invalid value", func() {
			t.Setenv("SHOTFORM_WORKER_COUNT", "0")
			_, err := config.Load()

			Convey("Then loading fails", func() {
				So(err, ShouldWrap, config.ErrInvalidConfig)
			})
		})
	})
}
