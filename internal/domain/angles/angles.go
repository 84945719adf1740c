// Package angles derives named biomechanical joint angles from a fused
// skeleton using fixed anatomical conventions.
package angles

import (
	"math"

	"github.com/baller70/BasketballAnalysisAssessmentApp-sub002/internal/domain/model"
)

// defaultConfidenceFloor is the per-keypoint confidence below which an
// angle's defining landmark is treated as unusable.
const defaultConfidenceFloor = 0.5

// threePoint defines an angle measured at Mid between the vectors to A and B.
type threePoint struct {
	name model.AngleName
	a    model.KeypointName
	mid  model.KeypointName
	b    model.KeypointName
}

// tilt defines a signed angle between the Left→Right line and horizontal.
type tilt struct {
	name  model.AngleName
	left  model.KeypointName
	right model.KeypointName
}

// Anatomical conventions: elbow is shoulder–elbow–wrist, knee is
// hip–knee–ankle, shoulder is hip–shoulder–elbow, hip is
// shoulder–hip–knee. Tilts compare the symmetric pair against horizontal.
var (
	threePointAngles = []threePoint{
		{model.LeftElbowAngle, model.LeftShoulder, model.LeftElbow, model.LeftWrist},
		{model.RightElbowAngle, model.RightShoulder, model.RightElbow, model.RightWrist},
		{model.LeftKneeAngle, model.LeftHip, model.LeftKnee, model.LeftAnkle},
		{model.RightKneeAngle, model.RightHip, model.RightKnee, model.RightAnkle},
		{model.LeftShoulderAngle, model.LeftHip, model.LeftShoulder, model.LeftElbow},
		{model.RightShoulderAngle, model.RightHip, model.RightShoulder, model.RightElbow},
		{model.LeftHipAngle, model.LeftShoulder, model.LeftHip, model.LeftKnee},
		{model.RightHipAngle, model.RightShoulder, model.RightHip, model.RightKnee},
	}
	tiltAngles = []tilt{
		{model.ShoulderTilt, model.LeftShoulder, model.RightShoulder},
		{model.HipTilt, model.LeftHip, model.RightHip},
	}
)

// Calculator computes angle sets. Stateless apart from its floor.
type Calculator struct {
	confidenceFloor float64
}

// New creates a Calculator with configuration options.
func New(opts ...Option) *Calculator {
	c := &Calculator{confidenceFloor: defaultConfidenceFloor}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Compute derives every computable angle from the skeleton. An angle whose
// defining keypoints are absent, below the floor, or geometrically
// degenerate (coincident points) is omitted, never reported as 0 or NaN.
func (c *Calculator) Compute(skeleton model.FusedSkeleton) model.AngleSet {
	set := model.AngleSet{
		FrameIndex: skeleton.FrameIndex,
		Angles:     make(map[model.AngleName]float64),
	}
	if !skeleton.Usable() {
		return set
	}

	for _, def := range threePointAngles {
		a, okA := c.point(skeleton, def.a)
		mid, okM := c.point(skeleton, def.mid)
		b, okB := c.point(skeleton, def.b)
		if !okA || !okM || !okB {
			continue
		}
		deg, ok := vertexAngle(a, mid, b)
		if !ok {
			continue
		}
		set.Angles[def.name] = deg
	}

	for _, def := range tiltAngles {
		left, okL := c.point(skeleton, def.left)
		right, okR := c.point(skeleton, def.right)
		if !okL || !okR {
			continue
		}
		deg, ok := tiltAngle(left, right)
		if !ok {
			continue
		}
		set.Angles[def.name] = deg
	}

	return set
}

func (c *Calculator) point(skeleton model.FusedSkeleton, name model.KeypointName) (model.Keypoint, bool) {
	kp, ok := skeleton.Keypoints[name]
	if !ok || kp.Confidence < c.confidenceFloor {
		return model.Keypoint{}, false
	}
	return kp.Keypoint, true
}

// vertexAngle computes the angle at mid between the vectors toward a and b,
// in degrees within [0, 180]. Degenerate (zero-length) vectors fail.
func vertexAngle(a, mid, b model.Keypoint) (float64, bool) {
	ux, uy := a.X-mid.X, a.Y-mid.Y
	vx, vy := b.X-mid.X, b.Y-mid.Y
	un := math.Hypot(ux, uy)
	vn := math.Hypot(vx, vy)
	if un == 0 || vn == 0 {
		return 0, false
	}
	cos := (ux*vx + uy*vy) / (un * vn)
	// Clamp against floating-point drift before the arccosine.
	cos = math.Max(-1, math.Min(1, cos))
	return math.Acos(cos) * 180 / math.Pi, true
}

// tiltAngle computes the signed angle of the left→right line against
// horizontal, in degrees within (-90, 90]. Positive means the left side
// sits higher in the image (smaller y, since y grows downward).
func tiltAngle(left, right model.Keypoint) (float64, bool) {
	dx := right.X - left.X
	dy := right.Y - left.Y
	if dx == 0 && dy == 0 {
		return 0, false
	}
	deg := math.Atan2(dy, dx) * 180 / math.Pi
	// Fold the line's direction into (-90, 90].
	if deg > 90 {
		deg -= 180
	} else if deg <= -90 {
		deg += 180
	}
	return deg, true
}
