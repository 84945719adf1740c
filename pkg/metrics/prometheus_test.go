package metrics_test

import (
	"testing"

	"github.com/prometheus/client_golang/prometheus"
	. "github.com/smartystreets/goconvey/convey"

	"github.com/baller70/BasketballAnalysisAssessmentApp-sub002/pkg/metrics"
)

func TestManager(t *testing.T) {
	Convey("Given a manager on a fresh registry", t, func() {
		reg := prometheus.NewRegistry()
		m := metrics.NewManager(
			metrics.WithRegistry(reg),
			metrics.WithNamespace("testns"),
			metrics.WithSubsystem("pipeline"),
		)

		Convey("Then all metrics register under the configured names", func() {
			So(m, ShouldNotBeNil)
			families, err := reg.Gather()
			So(err, ShouldBeNil)

			names := make(map[string]struct{}, len(families))
			for _, f := range families {
				names[f.GetName()] = struct{}{}
			}
			So(names, ShouldContainKey, "testns_pipeline_frames_fused_total")
			So(names, ShouldContainKey, "testns_pipeline_overall_score")
			So(names, ShouldContainKey, "testns_pipeline_queue_size")
			So(names, ShouldContainKey, "testns_pipeline_worker_errors_total")
		})
	})
}

func TestGlobalHelpers(t *testing.T) {
	Convey("Given the global manager", t, func() {
		Convey("Then its registry is exposed for scraping", func() {
			So(metrics.Registry(), ShouldNotBeNil)
		})

		Convey("Then the recording helpers never panic", func() {
			So(func() {
				metrics.RecordFrameFused()
				metrics.RecordFrameRejected()
				metrics.RecordFusionOverride()
				metrics.ObserveKeypointsAbsent(3)
				metrics.RecordBallResolved("detector")
				metrics.RecordBallUnresolved()
				metrics.ObserveAnglesComputed(8)
				metrics.RecordFlaw("high")
				metrics.ObserveOverallScore(72.5)
				metrics.ObserveAnalysisDuration(0.004)
				metrics.RecordResultAppended()
				metrics.RecordAggregateBuilt()
				metrics.RecordDuplicateFrame()
				metrics.UpdateTrackedPlayers(2)
				metrics.RecordAchievementUnlocked()
				metrics.UpdateQueueSize(1)
				metrics.UpdateQueueCapacity(64)
				metrics.RecordQueueReject()
				metrics.UpdateWorkerCount(4)
				metrics.RecordWorkerError()
			}, ShouldNotPanic)
		})
	})
}
