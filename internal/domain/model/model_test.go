package model_test

import (
	"testing"

	. "github.com/smartystreets/goconvey/convey"

	"github.com/baller70/BasketballAnalysisAssessmentApp-sub002/internal/domain/model"
)

func TestTopology(t *testing.T) {
	Convey("Given the skeleton topology", t, func() {
		Convey("Then it covers all seventeen landmarks", func() {
			So(model.Topology(), ShouldHaveLength, 17)
		})

		Convey("Then every listed landmark is known", func() {
			for _, name := range model.Topology() {
				So(model.KnownKeypoint(name), ShouldBeTrue)
			}
			So(model.KnownKeypoint("tail"), ShouldBeFalse)
		})
	})
}

func TestBenchmark(t *testing.T) {
	Convey("Given a benchmark range", t, func() {
		b := model.Benchmark{Optimal: 90, Min: 80, Max: 100, Category: model.Release}

		Convey("Then width and containment follow the bounds", func() {
			So(b.Width(), ShouldEqual, 20.0)
			So(b.Contains(80), ShouldBeTrue)
			So(b.Contains(100), ShouldBeTrue)
			So(b.Contains(79.9), ShouldBeFalse)
			So(b.Contains(100.1), ShouldBeFalse)
		})
	})
}

func TestSeverityRank(t *testing.T) {
	Convey("Given the severity levels", t, func() {
		Convey("Then high outranks medium outranks low", func() {
			So(model.SeverityHigh.Rank(), ShouldBeGreaterThan, model.SeverityMedium.Rank())
			So(model.SeverityMedium.Rank(), ShouldBeGreaterThan, model.SeverityLow.Rank())
			So(model.Severity("bogus").Rank(), ShouldEqual, 0)
		})
	})
}

func TestFusedSkeleton(t *testing.T) {
	Convey("Given a skeleton with one fused keypoint", t, func() {
		s := model.FusedSkeleton{
			Keypoints: map[model.KeypointName]model.FusedKeypoint{
				model.Nose: {Keypoint: model.Keypoint{Name: model.Nose, Confidence: 0.8}},
			},
		}

		Convey("Then absence is explicit and the skeleton is usable", func() {
			So(s.Absent(model.Nose), ShouldBeFalse)
			So(s.Absent(model.LeftWrist), ShouldBeTrue)
			So(s.Usable(), ShouldBeTrue)
		})
	})

	Convey("Given an empty skeleton", t, func() {
		var s model.FusedSkeleton

		Convey("Then it is not usable", func() {
			So(s.Usable(), ShouldBeFalse)
		})
	})
}

func TestNewResultID(t *testing.T) {
	Convey("Given the result ID generator", t, func() {
		Convey("Then consecutive IDs are distinct and non-empty", func() {
			a, b := model.NewResultID(), model.NewResultID()
			So(a, ShouldNotBeEmpty)
			So(a, ShouldNotEqual, b)
		})
	})
}
