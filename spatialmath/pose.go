// Package spatialmath defines spatial mathematical operations.
// Poses represent a position in 3D space and are represented by dual quaternions internally.
// Every joint algorithm is expressed with Compose, PoseInverse, PoseBetween, RotateVector and the
// Axis normality test.
package spatialmath

import (
	"fmt"
	"math"

	"github.com/golang/geo/r3"
	"gonum.org/v1/gonum/num/quat"
)

const defaultPoseEpsilon = 1e-6

// Pose represents a 6dof pose, position and orientation, with respect to the origin.
// The Point() method returns the position in (x,y,z) mm coordinates,
// and the Orientation() method returns an Orientation object, which has methods to parametrize
// the rotation in multiple different representations.
type Pose interface {
	Point() r3.Vector
	Orientation() Orientation
}

// NewZeroPose returns a pose at (0,0,0) with same orientation as whatever frame it is placed in.
func NewZeroPose() Pose {
	return newDualQuaternion()
}

// NewPose takes in a position and orientation and returns a Pose.
func NewPose(p r3.Vector, o Orientation) Pose {
	if o == nil {
		return NewPoseFromPoint(p)
	}
	q := newDualQuaternionFromRotation(o)
	q.SetTranslation(p)
	return q
}

// NewPoseFromOrientation takes in an orientation and returns a Pose with no translation.
func NewPoseFromOrientation(o Orientation) Pose {
	return newDualQuaternionFromRotation(o)
}

// NewPoseFromPoint takes in a cartesian (x,y,z) and stores it as a vector.
// It will have the same orientation as the frame it is in.
func NewPoseFromPoint(point r3.Vector) Pose {
	q := newDualQuaternion()
	q.SetTranslation(point)
	return q
}

// Compose takes in two poses and returns a pose that is the result of applying b in the frame of a.
// Compose(a, Compose(b, c)) == Compose(Compose(a, b), c).
func Compose(a, b Pose) Pose {
	aq := newDualQuaternionFromPose(a)
	bq := newDualQuaternionFromPose(b)
	result := &dualQuaternion{aq.Transformation(bq.Number)}

	// Normalization
	if vecLen := 1 / quat.Abs(result.Real); vecLen != 1 {
		result.Real = quat.Scale(vecLen, result.Real)
		result.Dual = quat.Scale(vecLen, result.Dual)
	}
	return result
}

// ComposeAll composes the given poses left to right.
func ComposeAll(poses ...Pose) Pose {
	result := NewZeroPose()
	for _, p := range poses {
		result = Compose(result, p)
	}
	return result
}

// PoseInverse will return the inverse of a pose. So if a given pose p is the pose of A relative to B, PoseInverse(p) will give
// the pose of B relative to A.
func PoseInverse(p Pose) Pose {
	return newDualQuaternionFromPose(p).Invert()
}

// PoseBetween returns the difference between two poses, that is, the pose which if composed with a
// would give b. This is b expressed relative to a.
func PoseBetween(a, b Pose) Pose {
	return Compose(PoseInverse(a), b)
}

// TransformPoint maps a point expressed in the frame of p into the frame p is expressed in.
func TransformPoint(p Pose, point r3.Vector) r3.Vector {
	return Compose(p, NewPoseFromPoint(point)).Point()
}

// PoseAlmostEqual will return a bool describing whether 2 poses are approximately the same.
func PoseAlmostEqual(a, b Pose) bool {
	return PoseAlmostEqualEps(a, b, defaultPoseEpsilon)
}

// PoseAlmostEqualEps will return a bool describing whether 2 poses are approximately the same.
func PoseAlmostEqualEps(a, b Pose, epsilon float64) bool {
	return R3VectorAlmostEqual(a.Point(), b.Point(), epsilon) &&
		OrientationAlmostEqualEps(a.Orientation(), b.Orientation(), epsilon)
}

// PoseAlmostCoincident will return a bool describing whether 2 poses approximately are at the same 3D coordinate location.
func PoseAlmostCoincident(a, b Pose) bool {
	return R3VectorAlmostEqual(a.Point(), b.Point(), defaultPoseEpsilon)
}

// R3VectorAlmostEqual compares two r3.Vector objects and returns if the all elementwise differences are less than epsilon.
func R3VectorAlmostEqual(a, b r3.Vector, epsilon float64) bool {
	return math.Abs(a.X-b.X) < epsilon && math.Abs(a.Y-b.Y) < epsilon && math.Abs(a.Z-b.Z) < epsilon
}

// PrettyPrint returns a human readable rendering of a pose: its point and its orientation vector in degrees.
func PrettyPrint(p Pose) string {
	pt := p.Point()
	ov := p.Orientation().OrientationVectorDegrees()
	return fmt.Sprintf("{X:%.3f Y:%.3f Z:%.3f OX:%.3f OY:%.3f OZ:%.3f Theta:%.3f°}",
		pt.X, pt.Y, pt.Z, ov.OX, ov.OY, ov.OZ, ov.Theta)
}
