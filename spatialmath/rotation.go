package spatialmath

import (
	"math"

	"github.com/golang/geo/r3"
	"gonum.org/v1/gonum/num/quat"

	"github.com/partkit/assembly/utils"
)

// gimbalEpsilon is how close |sin(y)| may get to 1 before the XYZ decomposition treats the
// orientation as gimbal locked.
const gimbalEpsilon = 1e-9

// NewRotationXYZ returns the orientation made of intrinsic rotations about X, then the new Y, then the new Z.
// Angles are in degrees.
func NewRotationXYZ(x, y, z float64) Orientation {
	qx := (&R4AA{Theta: utils.DegToRad(x), RX: 1}).ToQuat()
	qy := (&R4AA{Theta: utils.DegToRad(y), RY: 1}).ToQuat()
	qz := (&R4AA{Theta: utils.DegToRad(z), RZ: 1}).ToQuat()
	q := quaternion(quat.Mul(quat.Mul(qx, qy), qz))
	return &q
}

// XYZAngles decomposes an orientation into the intrinsic X, Y, Z angles, in degrees, that NewRotationXYZ
// would need to rebuild it. X and Z are in (-180, 180], Y is in [-90, 90].
func XYZAngles(o Orientation) r3.Vector {
	rm := o.RotationMatrix()
	sy := utils.ClampF64(rm.At(0, 2), -1, 1)
	var x, y, z float64
	y = math.Asin(sy)
	if 1-math.Abs(sy) > gimbalEpsilon {
		x = math.Atan2(-rm.At(1, 2), rm.At(2, 2))
		z = math.Atan2(-rm.At(0, 1), rm.At(0, 0))
	} else {
		// gimbal lock, fold all of the remaining rotation into x
		x = math.Atan2(rm.At(2, 1), rm.At(1, 1))
	}
	return r3.Vector{X: utils.RadToDeg(x), Y: utils.RadToDeg(y), Z: utils.RadToDeg(z)}
}

// RotateVector rotates the free vector v about the given direction by the given number of degrees,
// following the right-hand rule.
func RotateVector(v, direction r3.Vector, degrees float64) r3.Vector {
	aa := &R4AA{Theta: utils.DegToRad(degrees), RX: direction.X, RY: direction.Y, RZ: direction.Z}
	return rotateVector(aa.ToQuat(), v)
}

// RotateVectorByOrientation applies an orientation to a free vector.
func RotateVectorByOrientation(o Orientation, v r3.Vector) r3.Vector {
	return rotateVector(Normalize(o.Quaternion()), v)
}
