package assembly

import (
	"github.com/pkg/errors"

	"github.com/partkit/assembly/config"
	"github.com/partkit/assembly/joint"
	"github.com/partkit/assembly/referenceframe"
	spatial "github.com/partkit/assembly/spatialmath"
)

// AddJoint builds the joint described by the config on its body. Joint geometry in the config is in
// the body's own frame and is placed with the body's current placement.
func (a *Assembly) AddJoint(jc config.JointConfig) (joint.Joint, error) {
	a.mu.Lock()
	defer a.mu.Unlock()

	body, ok := a.bodies[jc.Body]
	if !ok {
		return nil, errors.Errorf("no body named %q", jc.Body)
	}
	kind, err := jc.Kind()
	if err != nil {
		return nil, err
	}
	attrs, err := jc.DecodeAttributes(kind)
	if err != nil {
		return nil, err
	}
	if err := attrs.Validate(); err != nil {
		return nil, err
	}
	placement := body.Placement()

	switch attrs := attrs.(type) {
	case *config.RigidAttributes:
		local, err := attrs.Pose.Pose()
		if err != nil {
			return nil, err
		}
		return built(joint.NewRigidJoint(jc.Name, body, spatial.Compose(placement, local)))
	case *config.RevoluteAttributes:
		axis, err := attrs.Axis.Axis()
		if err != nil {
			return nil, err
		}
		opts := []joint.Option{joint.WithAngleRange(attrs.Range.Limit(referenceframe.DefaultAngularLimit))}
		if attrs.AngleReference != nil {
			opts = append(opts, joint.WithAngleReference(
				spatial.RotateVectorByOrientation(placement.Orientation(), *attrs.AngleReference)))
		}
		return built(joint.NewRevoluteJoint(jc.Name, body, axis.Located(placement), opts...))
	case *config.LinearAttributes:
		axis, err := attrs.Axis.Axis()
		if err != nil {
			return nil, err
		}
		return built(joint.NewLinearJoint(jc.Name, body, axis.Located(placement),
			joint.WithPositionRange(attrs.Range.Limit(referenceframe.DefaultLinearLimit))))
	case *config.CylindricalAttributes:
		axis, err := attrs.Axis.Axis()
		if err != nil {
			return nil, err
		}
		opts := []joint.Option{
			joint.WithPositionRange(attrs.LinearRange.Limit(referenceframe.DefaultLinearLimit)),
			joint.WithAngleRange(attrs.RotationalRange.Limit(referenceframe.DefaultAngularLimit)),
		}
		if attrs.AngleReference != nil {
			opts = append(opts, joint.WithAngleReference(
				spatial.RotateVectorByOrientation(placement.Orientation(), *attrs.AngleReference)))
		}
		return built(joint.NewCylindricalJoint(jc.Name, body, axis.Located(placement), opts...))
	case *config.BallAttributes:
		local, err := attrs.Pose.Pose()
		if err != nil {
			return nil, err
		}
		ranges, err := attrs.Ranges()
		if err != nil {
			return nil, err
		}
		plane, err := attrs.PlaneOrDefault()
		if err != nil {
			return nil, err
		}
		return built(joint.NewBallJoint(jc.Name, body, spatial.Compose(placement, local),
			joint.WithAngleRanges(ranges[0], ranges[1], ranges[2]), joint.WithReferencePlane(plane)))
	}
	return nil, errors.Errorf("unsupported joint type %q", jc.Type)
}

// built returns a nil interface, not a typed nil pointer, when construction failed.
func built[T joint.Joint](j T, err error) (joint.Joint, error) {
	if err != nil {
		return nil, err
	}
	return j, nil
}
