package joint

import (
	"github.com/golang/geo/r3"

	"github.com/partkit/assembly/referenceframe"
	spatial "github.com/partkit/assembly/spatialmath"
)

// RevoluteParams are the parameters of a hinge connect.
type RevoluteParams struct {
	// Angle in degrees. Defaults to the minimum of the angle range.
	Angle *float64
}

// RevoluteJoint is a hinge: the partner rotates about an axis fixed to the body.
type RevoluteJoint struct {
	jointBase
	axis       spatial.Axis
	reference  r3.Vector
	angleRange referenceframe.Limit
	angle      *float64

	// reference expressed in the frame of axis.Pose()
	axisReference r3.Vector
}

// NewRevoluteJoint attaches a hinge about the given global axis to the body. The angle range defaults
// to [0, 360] degrees.
func NewRevoluteJoint(label string, body *Body, axis spatial.Axis, opts ...Option) (*RevoluteJoint, error) {
	if body == nil {
		return nil, newConstructionError(label, "a body is required")
	}
	axis, err := spatial.NewAxis(axis.Origin, axis.Direction)
	if err != nil {
		return nil, newConstructionError(label, "%v", err)
	}
	o := applyOptions(opts)
	angleRange := o.angleLimit()
	if err := validateLimit(label, "angle range", angleRange); err != nil {
		return nil, err
	}
	reference, err := o.resolveReference(label, body, axis)
	if err != nil {
		return nil, err
	}
	relAxis := body.toLocalAxis(axis)
	j := &RevoluteJoint{
		jointBase:  jointBase{label: label, body: body},
		axis:       relAxis,
		reference:  reference,
		angleRange: angleRange,
		axisReference: spatial.RotateVectorByOrientation(
			spatial.OrientationInverse(relAxis.Pose().Orientation()), reference),
	}
	if err := body.attach(j); err != nil {
		return nil, err
	}
	return j, nil
}

// Kind returns KindRevolute.
func (j *RevoluteJoint) Kind() Kind {
	return KindRevolute
}

// Axis returns the hinge axis in the owning body's frame.
func (j *RevoluteJoint) Axis() spatial.Axis {
	return j.axis
}

// Reference returns the zero angle direction in the owning body's frame.
func (j *RevoluteJoint) Reference() r3.Vector {
	return j.reference
}

// Range returns the angle limit.
func (j *RevoluteJoint) Range() referenceframe.Limit {
	return j.angleRange
}

// RelativeGeometry returns the axis frame in the owning body's frame.
func (j *RevoluteJoint) RelativeGeometry() spatial.Pose {
	return j.axis.Pose()
}

// DoF returns the angle limit.
func (j *RevoluteJoint) DoF() []referenceframe.Limit {
	return []referenceframe.Limit{j.angleRange}
}

// Inputs returns the angle of the last connect.
func (j *RevoluteJoint) Inputs() []referenceframe.Input {
	if j.angle == nil {
		return nil
	}
	return []referenceframe.Input{{Value: *j.angle}}
}

// Angle returns the angle of the last connect, as supplied or defaulted.
func (j *RevoluteJoint) Angle() (float64, bool) {
	if j.angle == nil {
		return 0, false
	}
	return *j.angle, true
}

// Connect swings other's body about the hinge axis to the given angle. The previous placement of other's
// body is discarded.
func (j *RevoluteJoint) Connect(other *RigidJoint, params RevoluteParams) error {
	if other == nil {
		return errNilPartner
	}
	if err := checkPartner(j, other); err != nil {
		return err
	}
	angle := j.angleRange.Min
	if params.Angle != nil {
		angle = *params.Angle
	}
	if err := checkRange("angle", angle, j.angleRange); err != nil {
		return err
	}
	rotation, err := j.rotation(angle)
	if err != nil {
		return err
	}
	placement := spatial.ComposeAll(
		j.body.Placement(),
		j.axis.Pose(),
		rotation,
		spatial.PoseInverse(other.relative),
	)
	j.commit(other, placement)
	j.angle = &angle
	return nil
}

// rotation returns the rotation about the axis frame's Z for the given angle. Zero is built as a full
// turn; the two give the same placement.
func (j *RevoluteJoint) rotation(angle float64) (spatial.Pose, error) {
	if angle == 0 {
		angle = 360
	}
	z := r3.Vector{Z: 1}
	plane, err := spatial.NewPlaneWithXDir(r3.Vector{}, spatial.RotateVector(j.axisReference, z, angle), z)
	if err != nil {
		return nil, err
	}
	return plane.Pose(), nil
}
