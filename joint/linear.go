package joint

import (
	"github.com/golang/geo/r3"

	"github.com/partkit/assembly/referenceframe"
	spatial "github.com/partkit/assembly/spatialmath"
)

// SliderParams are the parameters of a linear joint connected to a rigid joint.
type SliderParams struct {
	// Position in mm along the axis. Defaults to the midpoint of the position range.
	Position *float64
}

// PinSlotParams are the parameters of a linear joint connected to a revolute joint.
type PinSlotParams struct {
	// Position in mm along the axis. Defaults to the midpoint of the position range.
	Position *float64
	// Angle in degrees about the axis. Defaults to the minimum of the revolute joint's range.
	Angle *float64
}

// LinearJoint is a prismatic joint: the partner slides along an axis fixed to the body. Connected to a
// revolute joint it becomes a pin in a slot, which also spins about the axis.
type LinearJoint struct {
	jointBase
	axis          spatial.Axis
	positionRange referenceframe.Limit
	position      *float64
	angle         *float64
}

// NewLinearJoint attaches a slider along the given global axis to the body. The position range defaults
// to [0, +Inf), whose midpoint is not a usable default position.
func NewLinearJoint(label string, body *Body, axis spatial.Axis, opts ...Option) (*LinearJoint, error) {
	if body == nil {
		return nil, newConstructionError(label, "a body is required")
	}
	axis, err := spatial.NewAxis(axis.Origin, axis.Direction)
	if err != nil {
		return nil, newConstructionError(label, "%v", err)
	}
	o := applyOptions(opts)
	positionRange := o.positionLimit()
	if err := validateLimit(label, "position range", positionRange); err != nil {
		return nil, err
	}
	j := &LinearJoint{
		jointBase:     jointBase{label: label, body: body},
		axis:          body.toLocalAxis(axis),
		positionRange: positionRange,
	}
	if err := body.attach(j); err != nil {
		return nil, err
	}
	return j, nil
}

// Kind returns KindLinear.
func (j *LinearJoint) Kind() Kind {
	return KindLinear
}

// Axis returns the slide axis in the owning body's frame.
func (j *LinearJoint) Axis() spatial.Axis {
	return j.axis
}

// Range returns the position limit.
func (j *LinearJoint) Range() referenceframe.Limit {
	return j.positionRange
}

// RelativeGeometry returns the axis frame in the owning body's frame.
func (j *LinearJoint) RelativeGeometry() spatial.Pose {
	return j.axis.Pose()
}

// DoF returns the position limit.
func (j *LinearJoint) DoF() []referenceframe.Limit {
	return []referenceframe.Limit{j.positionRange}
}

// Inputs returns the position of the last connect.
func (j *LinearJoint) Inputs() []referenceframe.Input {
	if j.position == nil {
		return nil
	}
	return []referenceframe.Input{{Value: *j.position}}
}

// Position returns the position of the last connect, as supplied or defaulted.
func (j *LinearJoint) Position() (float64, bool) {
	if j.position == nil {
		return 0, false
	}
	return *j.position, true
}

// Angle returns the pin angle of the last connect. It is zero after a plain slider connect.
func (j *LinearJoint) Angle() (float64, bool) {
	if j.angle == nil {
		return 0, false
	}
	return *j.angle, true
}

func (j *LinearJoint) resolvePosition(p *float64) (float64, error) {
	position := j.positionRange.Midpoint()
	if p != nil {
		position = *p
	}
	if err := checkRange("position", position, j.positionRange); err != nil {
		return 0, err
	}
	return position, nil
}

func (j *LinearJoint) offset(position float64) spatial.Pose {
	return spatial.NewPoseFromPoint(j.axis.PointAt(position))
}

// ConnectRigid slides other's body along the axis to the given position with no rotation.
func (j *LinearJoint) ConnectRigid(other *RigidJoint, params SliderParams) error {
	if other == nil {
		return errNilPartner
	}
	if err := checkPartner(j, other); err != nil {
		return err
	}
	position, err := j.resolvePosition(params.Position)
	if err != nil {
		return err
	}
	placement := spatial.Compose(j.body.Placement(), j.offset(position))
	j.commit(other, placement)
	angle := 0.
	j.position, j.angle = &position, &angle
	return nil
}

// ConnectRevolute slides other's body along the axis to the given position and spins it about the
// axis by the given angle, measured from other's angle reference and limited by other's range.
func (j *LinearJoint) ConnectRevolute(other *RevoluteJoint, params PinSlotParams) error {
	if other == nil {
		return errNilPartner
	}
	if err := checkPartner(j, other); err != nil {
		return err
	}
	position, err := j.resolvePosition(params.Position)
	if err != nil {
		return err
	}
	angle := other.angleRange.Min
	if params.Angle != nil {
		angle = *params.Angle
	}
	if err := checkRange("angle", angle, other.angleRange); err != nil {
		return err
	}
	rotation, err := spinAbout(other.reference, other.axis.Direction, angle)
	if err != nil {
		return err
	}
	placement := spatial.ComposeAll(j.body.Placement(), j.offset(position), rotation)
	j.commit(other, placement)
	j.position, j.angle = &position, &angle
	return nil
}

// spinAbout returns the rotation whose Z is direction and whose X is reference turned about direction
// by angle degrees.
func spinAbout(reference, direction r3.Vector, angle float64) (spatial.Pose, error) {
	plane, err := spatial.NewPlaneWithXDir(r3.Vector{}, spatial.RotateVector(reference, direction, angle), direction)
	if err != nil {
		return nil, err
	}
	return plane.Pose(), nil
}
