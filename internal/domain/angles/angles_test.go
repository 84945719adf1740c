package angles_test

import (
	"testing"

	. "github.com/smartystreets/goconvey/convey"

	"github.com/baller70/BasketballAnalysisAssessmentApp-sub002/internal/domain/angles"
	"github.com/baller70/BasketballAnalysisAssessmentApp-sub002/internal/domain/model"
)

func skeleton(frame int, kps map[model.KeypointName][3]float64) model.FusedSkeleton {
	s := model.FusedSkeleton{
		FrameIndex: frame,
		Keypoints:  make(map[model.KeypointName]model.FusedKeypoint, len(kps)),
	}
	for name, v := range kps {
		s.Keypoints[name] = model.FusedKeypoint{
			Keypoint: model.Keypoint{Name: name, X: v[0], Y: v[1], Confidence: v[2]},
			Method:   model.MethodOriginal,
		}
	}
	return s
}

func TestCalculator_ThreePointAngles(t *testing.T) {
	Convey("Given a calculator with the default confidence floor", t, func() {
		calc := angles.New()

		Convey("When shoulder, elbow, and wrist form a right angle", func() {
			s := skeleton(1, map[model.KeypointName][3]float64{
				model.LeftShoulder: {0.5, 0.2, 0.9},
				model.LeftElbow:    {0.5, 0.4, 0.9},
				model.LeftWrist:    {0.3, 0.4, 0.9},
			})
			set := calc.Compute(s)

			Convey("Then the elbow angle is exactly 90 degrees", func() {
				So(set.Angles[model.LeftElbowAngle], ShouldAlmostEqual, 90.0, 1e-9)
			})
		})

		Convey("When the three points are collinear", func() {
			s := skeleton(1, map[model.KeypointName][3]float64{
				model.RightHip:   {0.5, 0.5, 0.9},
				model.RightKnee:  {0.5, 0.65, 0.9},
				model.RightAnkle: {0.5, 0.8, 0.9},
			})
			set := calc.Compute(s)

			Convey("Then the knee angle is a straight 180 degrees", func() {
				So(set.Angles[model.RightKneeAngle], ShouldAlmostEqual, 180.0, 1e-9)
			})
		})

		Convey("When a defining keypoint is below the confidence floor", func() {
			s := skeleton(1, map[model.KeypointName][3]float64{
				model.LeftShoulder: {0.5, 0.2, 0.9},
				model.LeftElbow:    {0.5, 0.4, 0.4},
				model.LeftWrist:    {0.3, 0.4, 0.9},
			})
			set := calc.Compute(s)

			Convey("Then the angle is omitted, not zero or NaN", func() {
				_, ok := set.Angles[model.LeftElbowAngle]
				So(ok, ShouldBeFalse)
			})
		})

		Convey("When a defining keypoint is absent entirely", func() {
			s := skeleton(1, map[model.KeypointName][3]float64{
				model.LeftShoulder: {0.5, 0.2, 0.9},
				model.LeftElbow:    {0.5, 0.4, 0.9},
			})
			set := calc.Compute(s)

			Convey("Then the angle is omitted", func() {
				_, ok := set.Angles[model.LeftElbowAngle]
				So(ok, ShouldBeFalse)
			})
		})

		Convey("When two defining keypoints coincide", func() {
			s := skeleton(1, map[model.KeypointName][3]float64{
				model.LeftShoulder: {0.5, 0.4, 0.9},
				model.LeftElbow:    {0.5, 0.4, 0.9},
				model.LeftWrist:    {0.3, 0.4, 0.9},
			})
			set := calc.Compute(s)

			Convey("Then the degenerate angle is omitted rather than dividing by zero", func() {
				_, ok := set.Angles[model.LeftElbowAngle]
				So(ok, ShouldBeFalse)
			})
		})

		Convey("When computed over arbitrary valid inputs", func() {
			s := skeleton(1, map[model.KeypointName][3]float64{
				model.LeftShoulder: {0.51, 0.23, 0.9},
				model.LeftElbow:    {0.46, 0.38, 0.8},
				model.LeftWrist:    {0.52, 0.49, 0.7},
				model.LeftHip:      {0.49, 0.52, 0.9},
				model.LeftKnee:     {0.48, 0.7, 0.8},
				model.LeftAnkle:    {0.5, 0.88, 0.9},
			})
			set := calc.Compute(s)

			Convey("Then every three-point angle lies in [0, 180]", func() {
				for _, name := range []model.AngleName{
					model.LeftElbowAngle, model.LeftKneeAngle, model.LeftShoulderAngle, model.LeftHipAngle,
				} {
					deg, ok := set.Angles[name]
					So(ok, ShouldBeTrue)
					So(deg, ShouldBeGreaterThanOrEqualTo, 0)
					So(deg, ShouldBeLessThanOrEqualTo, 180)
				}
			})
		})
	})
}

func TestCalculator_TiltAngles(t *testing.T) {
	Convey("Given a calculator with the default confidence floor", t, func() {
		calc := angles.New()

		Convey("When the shoulders are level", func() {
			s := skeleton(2, map[model.KeypointName][3]float64{
				model.LeftShoulder:  {0.4, 0.3, 0.9},
				model.RightShoulder: {0.6, 0.3, 0.9},
			})
			set := calc.Compute(s)

			Convey("Then the shoulder tilt is zero", func() {
				So(set.Angles[model.ShoulderTilt], ShouldAlmostEqual, 0.0, 1e-9)
			})
		})

		Convey("When the left shoulder sits higher in the image", func() {
			s := skeleton(2, map[model.KeypointName][3]float64{
				model.LeftShoulder:  {0.4, 0.25, 0.9},
				model.RightShoulder: {0.6, 0.35, 0.9},
			})
			set := calc.Compute(s)

			Convey("Then the tilt is positive and within (-90, 90]", func() {
				tilt := set.Angles[model.ShoulderTilt]
				So(tilt, ShouldBeGreaterThan, 0)
				So(tilt, ShouldBeLessThanOrEqualTo, 90)
			})
		})

		Convey("When the right hip sits higher in the image", func() {
			s := skeleton(2, map[model.KeypointName][3]float64{
				model.LeftHip:  {0.45, 0.55, 0.9},
				model.RightHip: {0.55, 0.5, 0.9},
			})
			set := calc.Compute(s)

			Convey("Then the tilt is negative and within (-90, 90]", func() {
				tilt := set.Angles[model.HipTilt]
				So(tilt, ShouldBeLessThan, 0)
				So(tilt, ShouldBeGreaterThan, -90)
			})
		})

		Convey("When the pair is vertical", func() {
			s := skeleton(2, map[model.KeypointName][3]float64{
				model.LeftShoulder:  {0.5, 0.2, 0.9},
				model.RightShoulder: {0.5, 0.4, 0.9},
			})
			set := calc.Compute(s)

			Convey("Then the tilt folds to exactly 90, never -90", func() {
				So(set.Angles[model.ShoulderTilt], ShouldAlmostEqual, 90.0, 1e-9)
			})
		})
	})
}

func TestCalculator_UnusableSkeleton(t *testing.T) {
	Convey("Given an empty fused skeleton", t, func() {
		calc := angles.New()
		set := calc.Compute(model.FusedSkeleton{FrameIndex: 3})

		Convey("Then the angle set is empty, not an error", func() {
			So(set.FrameIndex, ShouldEqual, 3)
			So(set.Angles, ShouldBeEmpty)
		})
	})
}
