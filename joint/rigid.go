package joint

import (
	"github.com/partkit/assembly/referenceframe"
	spatial "github.com/partkit/assembly/spatialmath"
)

// RigidJoint fixes two bodies to one another.
type RigidJoint struct {
	jointBase
	relative spatial.Pose
}

// NewRigidJoint attaches a rigid joint at the given global pose to the body.
func NewRigidJoint(label string, body *Body, jointPose spatial.Pose) (*RigidJoint, error) {
	if body == nil {
		return nil, newConstructionError(label, "a body is required")
	}
	if jointPose == nil {
		jointPose = body.Placement()
	}
	j := &RigidJoint{
		jointBase: jointBase{label: label, body: body},
		relative:  body.toLocal(jointPose),
	}
	if err := body.attach(j); err != nil {
		return nil, err
	}
	return j, nil
}

// Kind returns KindRigid.
func (j *RigidJoint) Kind() Kind {
	return KindRigid
}

// RelativeGeometry returns the joint frame in the owning body's frame.
func (j *RigidJoint) RelativeGeometry() spatial.Pose {
	return j.relative
}

// DoF returns no limits.
func (j *RigidJoint) DoF() []referenceframe.Limit {
	return []referenceframe.Limit{}
}

// Inputs returns no inputs.
func (j *RigidJoint) Inputs() []referenceframe.Input {
	if j.connectedTo == nil {
		return nil
	}
	return []referenceframe.Input{}
}

// Connect places other's body so that the two joint frames coincide.
func (j *RigidJoint) Connect(other *RigidJoint) error {
	if other == nil {
		return errNilPartner
	}
	if err := checkPartner(j, other); err != nil {
		return err
	}
	placement := spatial.ComposeAll(j.body.Placement(), j.relative, other.relative)
	j.commit(other, placement)
	return nil
}
