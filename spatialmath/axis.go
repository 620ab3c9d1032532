package spatialmath

import (
	"math"

	"github.com/golang/geo/r3"
	"github.com/pkg/errors"
)

// NormalTolerance is the largest absolute dot product between two unit directions that are still
// considered normal to one another.
const NormalTolerance = 1e-6

// Axis is a line in space: an origin point and a unit direction.
type Axis struct {
	Origin    r3.Vector
	Direction r3.Vector
}

// NewAxis returns an axis through origin along direction. The direction is normalized and may not be zero.
func NewAxis(origin, direction r3.Vector) (Axis, error) {
	if direction.Norm() < defaultPoseEpsilon {
		return Axis{}, errors.New("axis direction cannot be the zero vector")
	}
	return Axis{Origin: origin, Direction: direction.Normalize()}, nil
}

// AxisX is the world X axis.
func AxisX() Axis {
	return Axis{Direction: r3.Vector{X: 1}}
}

// AxisY is the world Y axis.
func AxisY() Axis {
	return Axis{Direction: r3.Vector{Y: 1}}
}

// AxisZ is the world Z axis.
func AxisZ() Axis {
	return Axis{Direction: r3.Vector{Z: 1}}
}

// IsNormal returns whether the two axes' directions are perpendicular.
func (a Axis) IsNormal(other Axis) bool {
	return a.IsNormalToVector(other.Direction)
}

// IsNormalToVector returns whether v is perpendicular to the axis direction. The zero vector is never normal.
func (a Axis) IsNormalToVector(v r3.Vector) bool {
	if v.Norm() < defaultPoseEpsilon {
		return false
	}
	return math.Abs(a.Direction.Normalize().Dot(v.Normalize())) <= NormalTolerance
}

// Pose returns the frame anchored at the axis origin whose Z axis is the axis direction.
func (a Axis) Pose() Pose {
	return Plane{Origin: a.Origin, XDir: defaultXDir(a.Direction.Normalize()), ZDir: a.Direction.Normalize()}.Pose()
}

// Located returns the axis moved by the given pose.
func (a Axis) Located(p Pose) Axis {
	return Axis{
		Origin:    TransformPoint(p, a.Origin),
		Direction: RotateVectorByOrientation(p.Orientation(), a.Direction).Normalize(),
	}
}

// PointAt returns the point the given distance along the axis from its origin.
func (a Axis) PointAt(distance float64) r3.Vector {
	return a.Origin.Add(a.Direction.Mul(distance))
}

// Reversed returns the axis with the same origin pointing the other way.
func (a Axis) Reversed() Axis {
	return Axis{Origin: a.Origin, Direction: a.Direction.Mul(-1)}
}
