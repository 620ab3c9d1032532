package spatialmath

import (
	"math"

	"github.com/golang/geo/r3"
	"github.com/pkg/errors"
)

// Plane is an oriented plane: an origin, a local X direction and a normal (local Z direction).
// XDir and ZDir are unit length and orthogonal.
type Plane struct {
	Origin r3.Vector
	XDir   r3.Vector
	ZDir   r3.Vector
}

// PlaneXY is the plane through the origin with normal +Z.
func PlaneXY() Plane {
	return Plane{XDir: r3.Vector{X: 1}, ZDir: r3.Vector{Z: 1}}
}

// PlaneYZ is the plane through the origin with normal +X.
func PlaneYZ() Plane {
	return Plane{XDir: r3.Vector{Y: 1}, ZDir: r3.Vector{X: 1}}
}

// PlaneZX is the plane through the origin with normal +Y.
func PlaneZX() Plane {
	return Plane{XDir: r3.Vector{Z: 1}, ZDir: r3.Vector{Y: 1}}
}

// NewPlane builds a plane from an origin and a normal, deriving the X direction the same way for every
// normal: the component of smallest magnitude is zeroed and the remaining two are swapped with one negated.
// For a normal of +Z this gives an X direction of +X.
func NewPlane(origin, zDir r3.Vector) (Plane, error) {
	if zDir.Norm() < defaultPoseEpsilon {
		return Plane{}, errors.New("plane normal cannot be the zero vector")
	}
	z := zDir.Normalize()
	return Plane{Origin: origin, XDir: defaultXDir(z), ZDir: z}, nil
}

// NewPlaneWithXDir builds a plane from an origin, an X direction and a normal. The X direction is projected
// onto the plane; it is an error for it to be parallel to the normal.
func NewPlaneWithXDir(origin, xDir, zDir r3.Vector) (Plane, error) {
	if zDir.Norm() < defaultPoseEpsilon {
		return Plane{}, errors.New("plane normal cannot be the zero vector")
	}
	z := zDir.Normalize()
	x := xDir.Sub(z.Mul(xDir.Dot(z)))
	if x.Norm() < defaultPoseEpsilon {
		return Plane{}, errors.Errorf("x direction %v is parallel to plane normal %v", xDir, zDir)
	}
	return Plane{Origin: origin, XDir: x.Normalize(), ZDir: z}, nil
}

// NewPlaneFromPose returns the XY plane of the given pose.
func NewPlaneFromPose(p Pose) Plane {
	rm := p.Orientation().RotationMatrix()
	return Plane{Origin: p.Point(), XDir: rm.Col(0), ZDir: rm.Col(2)}
}

// YDir returns the local Y direction of the plane.
func (p Plane) YDir() r3.Vector {
	return p.ZDir.Cross(p.XDir)
}

// Pose returns the pose whose origin is the plane origin and whose X and Z axes are the plane's.
func (p Plane) Pose() Pose {
	return NewPose(p.Origin, NewRotationMatrixFromColumns(p.XDir, p.YDir(), p.ZDir))
}

// Located returns the plane moved by the given pose.
func (p Plane) Located(pose Pose) Plane {
	return Plane{
		Origin: TransformPoint(pose, p.Origin),
		XDir:   RotateVectorByOrientation(pose.Orientation(), p.XDir),
		ZDir:   RotateVectorByOrientation(pose.Orientation(), p.ZDir),
	}
}

// Rotated returns the plane rotated about its own origin by intrinsic X, Y, Z angles in degrees.
func (p Plane) Rotated(x, y, z float64) Plane {
	local := Compose(p.Pose(), NewPoseFromOrientation(NewRotationXYZ(x, y, z)))
	return NewPlaneFromPose(local)
}

// defaultXDir picks a unit vector perpendicular to the unit normal z.
func defaultXDir(z r3.Vector) r3.Vector {
	ax, ay, az := math.Abs(z.X), math.Abs(z.Y), math.Abs(z.Z)
	var x r3.Vector
	switch {
	case ay <= ax && ay <= az:
		if ax > az {
			x = r3.Vector{X: -z.Z, Y: 0, Z: z.X}
		} else {
			x = r3.Vector{X: z.Z, Y: 0, Z: -z.X}
		}
	case ax <= ay && ax <= az:
		if ay > az {
			x = r3.Vector{X: 0, Y: -z.Z, Z: z.Y}
		} else {
			x = r3.Vector{X: 0, Y: z.Z, Z: -z.Y}
		}
	default:
		if ax > ay {
			x = r3.Vector{X: -z.Y, Y: z.X, Z: 0}
		} else {
			x = r3.Vector{X: z.Y, Y: -z.X, Z: 0}
		}
	}
	return x.Normalize()
}
