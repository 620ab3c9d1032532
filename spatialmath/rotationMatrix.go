package spatialmath

import (
	"github.com/go-gl/mathgl/mgl64"
	"github.com/golang/geo/r3"
	"github.com/pkg/errors"
	"gonum.org/v1/gonum/num/quat"
)

// RotationMatrix is a 3x3 matrix in row major order.
// m[3*r + c] is the element in the r'th row and c'th column.
type RotationMatrix struct {
	mat [9]float64
}

// NewRotationMatrix creates the rotation matrix from a slice of floats (row major).
func NewRotationMatrix(m []float64) (*RotationMatrix, error) {
	if len(m) != 9 {
		return nil, errors.Errorf("input slice has %d elements, need exactly 9", len(m))
	}
	mat := [9]float64{}
	copy(mat[:], m)
	return &RotationMatrix{mat}, nil
}

// NewRotationMatrixFromColumns builds the rotation whose columns are the images of the X, Y and Z unit vectors.
func NewRotationMatrixFromColumns(x, y, z r3.Vector) *RotationMatrix {
	return &RotationMatrix{[9]float64{
		x.X, y.X, z.X,
		x.Y, y.Y, z.Y,
		x.Z, y.Z, z.Z,
	}}
}

// RotationMatrix returns the orientation in rotation matrix representation.
func (rm *RotationMatrix) RotationMatrix() *RotationMatrix {
	return rm
}

// Quaternion returns orientation in quaternion representation.
func (rm *RotationMatrix) Quaternion() quat.Number {
	// mgl64 matrices are column major
	m3 := mgl64.Mat3FromCols(
		mgl64.Vec3{rm.mat[0], rm.mat[3], rm.mat[6]},
		mgl64.Vec3{rm.mat[1], rm.mat[4], rm.mat[7]},
		mgl64.Vec3{rm.mat[2], rm.mat[5], rm.mat[8]},
	)
	q := mgl64.Mat4ToQuat(m3.Mat4())
	return Normalize(quat.Number{Real: q.W, Imag: q.X(), Jmag: q.Y(), Kmag: q.Z()})
}

// OrientationVectorRadians returns orientation as an orientation vector (in radians).
func (rm *RotationMatrix) OrientationVectorRadians() *OrientationVector {
	return QuatToOV(rm.Quaternion())
}

// OrientationVectorDegrees returns orientation as an orientation vector (in degrees).
func (rm *RotationMatrix) OrientationVectorDegrees() *OrientationVectorDegrees {
	return QuatToOVD(rm.Quaternion())
}

// AxisAngles returns the orientation in axis angle representation.
func (rm *RotationMatrix) AxisAngles() *R4AA {
	return QuatToR4AA(rm.Quaternion())
}

// EulerAngles returns orientation in Euler angle representation.
func (rm *RotationMatrix) EulerAngles() *EulerAngles {
	return QuatToEulerAngles(rm.Quaternion())
}

// At returns the float corresponding to the element at the specified location.
func (rm *RotationMatrix) At(row, col int) float64 {
	return rm.mat[row*3+col]
}

// Row returns the a 3 element vector corresponding to the specified row.
func (rm *RotationMatrix) Row(row int) r3.Vector {
	return r3.Vector{X: rm.mat[row*3], Y: rm.mat[row*3+1], Z: rm.mat[row*3+2]}
}

// Col returns the a 3 element vector corresponding to the specified column.
func (rm *RotationMatrix) Col(col int) r3.Vector {
	return r3.Vector{X: rm.mat[col], Y: rm.mat[col+3], Z: rm.mat[col+6]}
}
