package spatialmath

import (
	"math"
	"testing"

	"github.com/golang/geo/r3"
	"go.viam.com/test"
)

func TestBasicPoseConstruction(t *testing.T) {
	p := NewZeroPose()
	test.That(t, p.Point(), test.ShouldResemble, r3.Vector{0, 0, 0})
	test.That(t, OrientationAlmostEqual(p.Orientation(), NewZeroOrientation()), test.ShouldBeTrue)

	p = NewPoseFromPoint(r3.Vector{1, 2, 3})
	test.That(t, R3VectorAlmostEqual(p.Point(), r3.Vector{1, 2, 3}, eps), test.ShouldBeTrue)

	ov := &OrientationVectorDegrees{Theta: 30, OX: 1, OY: 0, OZ: 0}
	p = NewPose(r3.Vector{4, 5, 6}, ov)
	test.That(t, R3VectorAlmostEqual(p.Point(), r3.Vector{4, 5, 6}, eps), test.ShouldBeTrue)
	test.That(t, OrientationAlmostEqual(p.Orientation(), ov), test.ShouldBeTrue)

	p = NewPoseFromOrientation(ov)
	test.That(t, p.Point(), test.ShouldResemble, r3.Vector{0, 0, 0})

	p = NewPose(r3.Vector{1, 1, 1}, nil)
	test.That(t, OrientationAlmostEqual(p.Orientation(), NewZeroOrientation()), test.ShouldBeTrue)
}

func TestCompose(t *testing.T) {
	rot90z := NewPoseFromOrientation(&R4AA{Theta: math.Pi / 2, RZ: 1})
	moveX := NewPoseFromPoint(r3.Vector{X: 1})

	// translation expressed in a rotated frame
	p := Compose(rot90z, moveX)
	test.That(t, R3VectorAlmostEqual(p.Point(), r3.Vector{Y: 1}, eps), test.ShouldBeTrue)

	// rotation applied after a translation keeps the translation
	p = Compose(moveX, rot90z)
	test.That(t, R3VectorAlmostEqual(p.Point(), r3.Vector{X: 1}, eps), test.ShouldBeTrue)
	test.That(t, OrientationAlmostEqual(p.Orientation(), rot90z.Orientation()), test.ShouldBeTrue)

	a := NewPose(r3.Vector{1, 2, 3}, &OrientationVectorDegrees{Theta: 20, OX: 1, OY: 1, OZ: 1})
	b := NewPose(r3.Vector{-4, 0, 2}, &EulerAngles{Roll: 0.3, Pitch: -0.2, Yaw: 1.1})
	c := NewPose(r3.Vector{0, 7, -1}, &R4AA{Theta: 2.2, RX: 0, RY: 1, RZ: 0.5})
	test.That(t, PoseAlmostEqual(Compose(a, Compose(b, c)), Compose(Compose(a, b), c)), test.ShouldBeTrue)
	test.That(t, PoseAlmostEqual(ComposeAll(a, b, c), Compose(Compose(a, b), c)), test.ShouldBeTrue)
	test.That(t, PoseAlmostEqual(ComposeAll(), NewZeroPose()), test.ShouldBeTrue)
}

func TestPoseInverse(t *testing.T) {
	p := NewPose(r3.Vector{1, 2, 3}, &OrientationVectorDegrees{Theta: 75, OX: 0.3, OY: -1, OZ: 0.2})
	test.That(t, PoseAlmostEqual(Compose(p, PoseInverse(p)), NewZeroPose()), test.ShouldBeTrue)
	test.That(t, PoseAlmostEqual(Compose(PoseInverse(p), p), NewZeroPose()), test.ShouldBeTrue)
	test.That(t, PoseAlmostEqual(PoseInverse(PoseInverse(p)), p), test.ShouldBeTrue)

	inv := PoseInverse(NewPoseFromPoint(r3.Vector{X: 5}))
	test.That(t, R3VectorAlmostEqual(inv.Point(), r3.Vector{X: -5}, eps), test.ShouldBeTrue)
}

func TestPoseBetween(t *testing.T) {
	a := NewPose(r3.Vector{1, 0, 0}, &R4AA{Theta: math.Pi / 2, RZ: 1})
	b := NewPose(r3.Vector{1, 1, 0}, &R4AA{Theta: math.Pi / 2, RZ: 1})
	between := PoseBetween(a, b)
	// one unit along world +Y is one unit along a's local +X
	test.That(t, R3VectorAlmostEqual(between.Point(), r3.Vector{X: 1}, eps), test.ShouldBeTrue)
	test.That(t, PoseAlmostEqual(Compose(a, between), b), test.ShouldBeTrue)
}

func TestTransformPoint(t *testing.T) {
	p := NewPose(r3.Vector{0, 0, 10}, &R4AA{Theta: math.Pi, RX: 1})
	test.That(t, R3VectorAlmostEqual(TransformPoint(p, r3.Vector{Y: 1, Z: 1}), r3.Vector{Y: -1, Z: 9}, eps), test.ShouldBeTrue)
}

func TestPoseAlmostEqual(t *testing.T) {
	p1 := NewPoseFromPoint(r3.Vector{1, 2, 3})
	p2 := NewPoseFromPoint(r3.Vector{1, 2, 3.0000001})
	test.That(t, PoseAlmostEqual(p1, p2), test.ShouldBeTrue)
	test.That(t, PoseAlmostCoincident(p1, p2), test.ShouldBeTrue)
	test.That(t, PoseAlmostEqualEps(p1, p2, 1e-9), test.ShouldBeFalse)

	p3 := NewPose(r3.Vector{1, 2, 3}, &R4AA{Theta: 0.1, RZ: 1})
	test.That(t, PoseAlmostEqual(p1, p3), test.ShouldBeFalse)
	test.That(t, PoseAlmostCoincident(p1, p3), test.ShouldBeTrue)
}

func TestPrettyPrint(t *testing.T) {
	s := PrettyPrint(NewPoseFromPoint(r3.Vector{1, 2, 3}))
	test.That(t, s, test.ShouldContainSubstring, "X:1.000 Y:2.000 Z:3.000")
}

func TestPoseProtobuf(t *testing.T) {
	p := NewPose(r3.Vector{X: 1, Y: -2, Z: 3}, &R4AA{Theta: math.Pi / 3, RX: 1, RY: 1})
	pb := PoseToProtobuf(p)
	test.That(t, pb.X, test.ShouldAlmostEqual, 1)
	test.That(t, pb.Y, test.ShouldAlmostEqual, -2)
	test.That(t, pb.Z, test.ShouldAlmostEqual, 3)
	test.That(t, PoseAlmostEqual(NewPoseFromProtobuf(pb), p), test.ShouldBeTrue)
	test.That(t, PoseAlmostEqual(NewPoseFromProtobuf(nil), NewZeroPose()), test.ShouldBeTrue)
}
