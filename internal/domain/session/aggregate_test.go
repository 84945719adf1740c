package session_test

import (
	"testing"
	"time"

	. "github.com/smartystreets/goconvey/convey"

	"github.com/baller70/BasketballAnalysisAssessmentApp-sub002/internal/domain/model"
	"github.com/baller70/BasketballAnalysisAssessmentApp-sub002/internal/domain/session"
)

func results(scores ...float64) []model.AnalysisResult {
	out := make([]model.AnalysisResult, len(scores))
	for i, s := range scores {
		out[i] = model.AnalysisResult{
			ID:           model.NewResultID(),
			FrameIndex:   i,
			CapturedAt:   time.Unix(int64(1700000000+i), 0),
			OverallScore: s,
		}
	}
	return out
}

func noUnlocked() map[model.AchievementID]struct{} {
	return map[model.AchievementID]struct{}{}
}

func TestAggregator_Trend(t *testing.T) {
	Convey("Given an aggregator with the default trend threshold", t, func() {
		agg := session.New()

		Convey("When scores climb across the session", func() {
			out, err := agg.Aggregate(results(60, 62, 61, 85, 88, 90), 1, noUnlocked())

			Convey("Then the trend is improving", func() {
				So(err, ShouldBeNil)
				So(out.Trend, ShouldEqual, model.TrendImproving)
			})

			Convey("And the average reflects every result", func() {
				So(out.AverageScore, ShouldAlmostEqual, 74.333, 0.001)
				So(out.TotalResults, ShouldEqual, 6)
			})
		})

		Convey("When scores fall across the session", func() {
			out, err := agg.Aggregate(results(90, 88, 85, 61, 62, 60), 1, noUnlocked())

			Convey("Then the trend is declining", func() {
				So(err, ShouldBeNil)
				So(out.Trend, ShouldEqual, model.TrendDeclining)
			})
		})

		Convey("When scores barely move", func() {
			out, err := agg.Aggregate(results(70, 71, 69, 70, 72, 71), 1, noUnlocked())

			Convey("Then the trend is stable", func() {
				So(err, ShouldBeNil)
				So(out.Trend, ShouldEqual, model.TrendStable)
			})
		})

		Convey("When fewer than three results exist", func() {
			out, err := agg.Aggregate(results(10, 95), 1, noUnlocked())

			Convey("Then the trend is stable by definition", func() {
				So(err, ShouldBeNil)
				So(out.Trend, ShouldEqual, model.TrendStable)
			})
		})
	})
}

func TestAggregator_EmptySession(t *testing.T) {
	Convey("Given an empty session", t, func() {
		agg := session.New()
		out, err := agg.Aggregate(nil, 0, noUnlocked())

		Convey("Then a neutral aggregate is returned, not an error", func() {
			So(err, ShouldBeNil)
			So(out.TotalSessions, ShouldEqual, 0)
			So(out.TotalResults, ShouldEqual, 0)
			So(out.Trend, ShouldEqual, model.TrendStable)
			So(out.Achievements, ShouldBeEmpty)
			So(out.AverageScore, ShouldEqual, 0)
		})
	})
}

func TestAggregator_Ordering(t *testing.T) {
	Convey("Given results whose frame indices are not ascending", t, func() {
		agg := session.New()
		rs := results(60, 70, 80)
		rs[0].FrameIndex = 5

		Convey("When aggregated directly", func() {
			_, err := agg.Aggregate(rs, 1, noUnlocked())

			Convey("Then the input is rejected with ErrOutOfOrder", func() {
				So(err, ShouldWrap, session.ErrOutOfOrder)
			})
		})

		Convey("When sorted first", func() {
			session.SortResults(rs)
			out, err := agg.Aggregate(rs, 1, noUnlocked())

			Convey("Then aggregation succeeds", func() {
				So(err, ShouldBeNil)
				So(out.TotalResults, ShouldEqual, 3)
			})
		})
	})
}

func TestAggregator_CategoryStability(t *testing.T) {
	Convey("Given per-category scores that diverge over time", t, func() {
		agg := session.New()
		rs := results(70, 70, 70, 70, 70, 70)
		for i := range rs {
			rs[i].CategoryScores = map[model.Category]float64{
				model.Release:   float64(50 + i*8), // improving
				model.LowerBody: float64(90 - i*8), // declining
				model.Balance:   75,                // stable
			}
		}
		out, err := agg.Aggregate(rs, 1, noUnlocked())

		Convey("Then each category reports its own trend", func() {
			So(err, ShouldBeNil)
			So(out.CategoryStability[model.Release], ShouldEqual, model.TrendImproving)
			So(out.CategoryStability[model.LowerBody], ShouldEqual, model.TrendDeclining)
			So(out.CategoryStability[model.Balance], ShouldEqual, model.TrendStable)
		})
	})
}

func TestAggregator_IssueFrequency(t *testing.T) {
	Convey("Given flaws recurring across a session", t, func() {
		agg := session.New()
		rs := results(60, 60, 60)
		for i := range rs {
			rs[i].Flaws = []model.Flaw{
				{Metric: model.RightKneeAngle, Category: model.LowerBody, Severity: model.SeverityHigh},
			}
		}
		rs[0].Flaws = append(rs[0].Flaws, model.Flaw{
			Metric: model.ShoulderTilt, Category: model.Balance, Severity: model.SeverityLow,
		})
		out, err := agg.Aggregate(rs, 1, noUnlocked())

		Convey("Then occurrences are counted per category", func() {
			So(err, ShouldBeNil)
			So(out.IssueFrequency[model.LowerBody], ShouldEqual, 3)
			So(out.IssueFrequency[model.Balance], ShouldEqual, 1)
		})
	})
}

func TestAggregator_Achievements(t *testing.T) {
	Convey("Given an aggregator", t, func() {
		agg := session.New()

		Convey("When a first result is analyzed", func() {
			out, err := agg.Aggregate(results(50), 1, noUnlocked())

			Convey("Then first_analysis unlocks", func() {
				So(err, ShouldBeNil)
				So(out.Achievements, ShouldContainKey, model.AchievementFirstAnalysis)
			})
		})

		Convey("When the fifth session completes", func() {
			out, err := agg.Aggregate(results(50), 5, noUnlocked())

			Convey("Then five_sessions unlocks", func() {
				So(err, ShouldBeNil)
				So(out.Achievements, ShouldContainKey, model.AchievementFiveSessions)
			})
		})

		Convey("When a score reaches 90", func() {
			out, err := agg.Aggregate(results(91), 1, noUnlocked())

			Convey("Then score_90 unlocks", func() {
				So(err, ShouldBeNil)
				So(out.Achievements, ShouldContainKey, model.AchievementScore90)
			})
		})

		Convey("When performance later declines", func() {
			first, err := agg.Aggregate(results(91, 92, 93, 94, 95, 96), 1, noUnlocked())
			So(err, ShouldBeNil)
			So(first.Achievements, ShouldContainKey, model.AchievementScore90)

			second, err := agg.Aggregate(results(40, 35, 30, 25, 20, 15), 1, first.Achievements)

			Convey("Then previously unlocked achievements survive", func() {
				So(err, ShouldBeNil)
				So(second.Achievements, ShouldContainKey, model.AchievementScore90)
				So(second.Trend, ShouldEqual, model.TrendDeclining)
			})
		})
	})
}
