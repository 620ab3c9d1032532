package joint

import (
	"github.com/golang/geo/r3"

	"github.com/partkit/assembly/referenceframe"
	spatial "github.com/partkit/assembly/spatialmath"
)

// decomposedAngleTolerance absorbs round off in angles recovered from a composed rotation.
const decomposedAngleTolerance = 1e-6

// BallParams are the parameters of a ball connect.
type BallParams struct {
	// Angles are intrinsic X, Y, Z rotations in degrees. Defaults to the minimum of each range.
	Angles *r3.Vector
}

// BallJoint is a spherical joint: the partner rotates freely about three nested axes.
type BallJoint struct {
	jointBase
	relative spatial.Pose
	ranges   [3]referenceframe.Limit
	plane    spatial.Plane
	angles   *r3.Vector
}

// NewBallJoint attaches a ball joint at the given global pose to the body. Each angle range defaults to
// [0, 360] degrees and the reference plane to XY.
func NewBallJoint(label string, body *Body, jointPose spatial.Pose, opts ...Option) (*BallJoint, error) {
	if body == nil {
		return nil, newConstructionError(label, "a body is required")
	}
	if jointPose == nil {
		jointPose = body.Placement()
	}
	o := applyOptions(opts)
	ranges := [3]referenceframe.Limit{
		referenceframe.DefaultAngularLimit,
		referenceframe.DefaultAngularLimit,
		referenceframe.DefaultAngularLimit,
	}
	if o.ballRanges != nil {
		ranges = *o.ballRanges
	}
	for i, l := range ranges {
		if err := validateLimit(label, ballAngleNames[i]+" range", l); err != nil {
			return nil, err
		}
	}
	plane := spatial.PlaneXY()
	if o.plane != nil {
		plane = *o.plane
	}
	j := &BallJoint{
		jointBase: jointBase{label: label, body: body},
		relative:  body.toLocal(jointPose),
		ranges:    ranges,
		plane:     plane,
	}
	if err := body.attach(j); err != nil {
		return nil, err
	}
	return j, nil
}

var ballAngleNames = [3]string{"angle_x", "angle_y", "angle_z"}

// Kind returns KindBall.
func (j *BallJoint) Kind() Kind {
	return KindBall
}

// Ranges returns the X, Y and Z angle limits.
func (j *BallJoint) Ranges() [3]referenceframe.Limit {
	return j.ranges
}

// ReferencePlane returns the plane zero rotation is measured from.
func (j *BallJoint) ReferencePlane() spatial.Plane {
	return j.plane
}

// RelativeGeometry returns the joint frame in the owning body's frame.
func (j *BallJoint) RelativeGeometry() spatial.Pose {
	return j.relative
}

// DoF returns the X, Y and Z angle limits.
func (j *BallJoint) DoF() []referenceframe.Limit {
	ranges := j.ranges
	return ranges[:]
}

// Inputs returns the angles of the last connect.
func (j *BallJoint) Inputs() []referenceframe.Input {
	if j.angles == nil {
		return nil
	}
	return referenceframe.JointInputs(j.angles.X, j.angles.Y, j.angles.Z)
}

// Angles returns the angles of the last connect, as supplied or defaulted.
func (j *BallJoint) Angles() (r3.Vector, bool) {
	if j.angles == nil {
		return r3.Vector{}, false
	}
	return *j.angles, true
}

// Connect rotates other's body about the joint center. The ranges are checked against the X, Y, Z
// angles recovered from the rotation after it is combined with the reference plane, not against the
// supplied angles.
func (j *BallJoint) Connect(other *RigidJoint, params BallParams) error {
	if other == nil {
		return errNilPartner
	}
	if err := checkPartner(j, other); err != nil {
		return err
	}
	angles := r3.Vector{X: j.ranges[0].Min, Y: j.ranges[1].Min, Z: j.ranges[2].Min}
	if params.Angles != nil {
		angles = *params.Angles
	}
	rotation := spatial.Compose(
		spatial.NewPoseFromOrientation(spatial.NewRotationXYZ(angles.X, angles.Y, angles.Z)),
		j.plane.Pose(),
	)
	decomposed := spatial.XYZAngles(rotation.Orientation())
	for i, v := range []float64{decomposed.X, decomposed.Y, decomposed.Z} {
		padded := referenceframe.Limit{
			Min: j.ranges[i].Min - decomposedAngleTolerance,
			Max: j.ranges[i].Max + decomposedAngleTolerance,
		}
		if !padded.Contains(v) {
			return newRangeError(ballAngleNames[i], v, j.ranges[i])
		}
	}
	placement := spatial.ComposeAll(
		j.body.Placement(),
		j.relative,
		rotation,
		spatial.PoseInverse(other.relative),
	)
	j.commit(other, placement)
	j.angles = &angles
	return nil
}
