package joint

import (
	"github.com/golang/geo/r3"

	"github.com/partkit/assembly/referenceframe"
	spatial "github.com/partkit/assembly/spatialmath"
)

// CylindricalParams are the parameters of a screw connect. Each defaults to the midpoint of its range.
type CylindricalParams struct {
	Position *float64
	Angle    *float64
}

// CylindricalJoint is a screw: the partner slides along and spins about one axis, each within its own
// range.
type CylindricalJoint struct {
	jointBase
	axis            spatial.Axis
	reference       r3.Vector
	linearRange     referenceframe.Limit
	rotationalRange referenceframe.Limit
	position        *float64
	angle           *float64
}

// NewCylindricalJoint attaches a screw along the given global axis to the body. The position range
// defaults to [0, +Inf) and the angle range to [0, 360].
func NewCylindricalJoint(label string, body *Body, axis spatial.Axis, opts ...Option) (*CylindricalJoint, error) {
	if body == nil {
		return nil, newConstructionError(label, "a body is required")
	}
	axis, err := spatial.NewAxis(axis.Origin, axis.Direction)
	if err != nil {
		return nil, newConstructionError(label, "%v", err)
	}
	o := applyOptions(opts)
	linearRange, rotationalRange := o.positionLimit(), o.angleLimit()
	if err := validateLimit(label, "position range", linearRange); err != nil {
		return nil, err
	}
	if err := validateLimit(label, "angle range", rotationalRange); err != nil {
		return nil, err
	}
	reference, err := o.resolveReference(label, body, axis)
	if err != nil {
		return nil, err
	}
	j := &CylindricalJoint{
		jointBase:       jointBase{label: label, body: body},
		axis:            body.toLocalAxis(axis),
		reference:       reference,
		linearRange:     linearRange,
		rotationalRange: rotationalRange,
	}
	if err := body.attach(j); err != nil {
		return nil, err
	}
	return j, nil
}

// Kind returns KindCylindrical.
func (j *CylindricalJoint) Kind() Kind {
	return KindCylindrical
}

// Axis returns the screw axis in the owning body's frame.
func (j *CylindricalJoint) Axis() spatial.Axis {
	return j.axis
}

// Reference returns the zero angle direction in the owning body's frame.
func (j *CylindricalJoint) Reference() r3.Vector {
	return j.reference
}

// LinearRange returns the position limit.
func (j *CylindricalJoint) LinearRange() referenceframe.Limit {
	return j.linearRange
}

// RotationalRange returns the angle limit.
func (j *CylindricalJoint) RotationalRange() referenceframe.Limit {
	return j.rotationalRange
}

// RelativeGeometry returns the axis frame in the owning body's frame.
func (j *CylindricalJoint) RelativeGeometry() spatial.Pose {
	return j.axis.Pose()
}

// DoF returns the position limit followed by the angle limit.
func (j *CylindricalJoint) DoF() []referenceframe.Limit {
	return []referenceframe.Limit{j.linearRange, j.rotationalRange}
}

// Inputs returns the position and angle of the last connect.
func (j *CylindricalJoint) Inputs() []referenceframe.Input {
	if j.position == nil || j.angle == nil {
		return nil
	}
	return referenceframe.JointInputs(*j.position, *j.angle)
}

// Position returns the position of the last connect.
func (j *CylindricalJoint) Position() (float64, bool) {
	if j.position == nil {
		return 0, false
	}
	return *j.position, true
}

// Angle returns the angle of the last connect.
func (j *CylindricalJoint) Angle() (float64, bool) {
	if j.angle == nil {
		return 0, false
	}
	return *j.angle, true
}

// Connect moves other's body along the axis to the given position and spins it about the axis.
func (j *CylindricalJoint) Connect(other *RigidJoint, params CylindricalParams) error {
	if other == nil {
		return errNilPartner
	}
	if err := checkPartner(j, other); err != nil {
		return err
	}
	position := j.linearRange.Midpoint()
	if params.Position != nil {
		position = *params.Position
	}
	angle := j.rotationalRange.Midpoint()
	if params.Angle != nil {
		angle = *params.Angle
	}
	if err := checkRange("position", position, j.linearRange); err != nil {
		return err
	}
	if err := checkRange("angle", angle, j.rotationalRange); err != nil {
		return err
	}
	rotation, err := spinAbout(j.reference, j.axis.Direction, angle)
	if err != nil {
		return err
	}
	placement := spatial.ComposeAll(
		j.body.Placement(),
		spatial.NewPoseFromPoint(j.axis.PointAt(position)),
		rotation,
	)
	j.commit(other, placement)
	j.position, j.angle = &position, &angle
	return nil
}
