package joint

import (
	"github.com/golang/geo/r3"

	"github.com/partkit/assembly/referenceframe"
	spatial "github.com/partkit/assembly/spatialmath"
)

type options struct {
	reference     *r3.Vector
	angleRange    *referenceframe.Limit
	positionRange *referenceframe.Limit
	ballRanges    *[3]referenceframe.Limit
	plane         *spatial.Plane
}

// Option configures a joint at construction. Options that do not apply to a joint kind are ignored.
type Option func(*options)

// WithAngleReference sets the global direction, normal to the joint axis, that angles are measured from.
// Applies to revolute and cylindrical joints.
func WithAngleReference(v r3.Vector) Option {
	return func(o *options) {
		o.reference = &v
	}
}

// WithAngleRange sets the angle limit in degrees. Applies to revolute and cylindrical joints.
func WithAngleRange(l referenceframe.Limit) Option {
	return func(o *options) {
		o.angleRange = &l
	}
}

// WithPositionRange sets the position limit in mm. Applies to linear and cylindrical joints.
func WithPositionRange(l referenceframe.Limit) Option {
	return func(o *options) {
		o.positionRange = &l
	}
}

// WithAngleRanges sets the X, Y and Z angle limits of a ball joint.
func WithAngleRanges(x, y, z referenceframe.Limit) Option {
	return func(o *options) {
		o.ballRanges = &[3]referenceframe.Limit{x, y, z}
	}
}

// WithReferencePlane sets the plane, in the body's frame, that a ball joint measures zero rotation from.
func WithReferencePlane(p spatial.Plane) Option {
	return func(o *options) {
		o.plane = &p
	}
}

func applyOptions(opts []Option) options {
	var o options
	for _, opt := range opts {
		opt(&o)
	}
	return o
}

func (o options) angleLimit() referenceframe.Limit {
	if o.angleRange == nil {
		return referenceframe.DefaultAngularLimit
	}
	return *o.angleRange
}

func (o options) positionLimit() referenceframe.Limit {
	if o.positionRange == nil {
		return referenceframe.DefaultLinearLimit
	}
	return *o.positionRange
}

// resolveReference checks the reference against the global axis and returns it in the body's frame.
// Without a reference, the X direction of the plane normal to the axis is used.
func (o options) resolveReference(label string, body *Body, axis spatial.Axis) (r3.Vector, error) {
	if o.reference == nil {
		plane, err := spatial.NewPlane(r3.Vector{}, axis.Direction)
		if err != nil {
			return r3.Vector{}, newConstructionError(label, "%v", err)
		}
		return body.toLocalVector(plane.XDir), nil
	}
	if !axis.IsNormalToVector(*o.reference) {
		return r3.Vector{}, newConstructionError(label, "angle reference %v must be normal to axis direction %v",
			*o.reference, axis.Direction)
	}
	return body.toLocalVector(o.reference.Normalize()), nil
}
