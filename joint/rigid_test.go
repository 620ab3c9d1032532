package joint

import (
	"testing"

	"github.com/golang/geo/r3"
	"go.viam.com/test"

	spatial "github.com/partkit/assembly/spatialmath"
)

func TestRigidConnect(t *testing.T) {
	basePlacement := spatial.NewPose(r3.Vector{X: 1, Y: 1, Z: 1}, spatial.NewRotationXYZ(30, 0, 15))
	base := NewBody("base", basePlacement)
	sidePose := spatial.NewPose(r3.Vector{X: 6, Y: 1, Z: 6}, spatial.NewRotationXYZ(0, 90, 0))
	side, err := NewRigidJoint("side", base, sidePose)
	test.That(t, err, test.ShouldBeNil)

	armPlacement := spatial.NewPose(r3.Vector{X: -4, Y: 2}, spatial.NewRotationXYZ(0, 0, 45))
	arm := NewBody("fixed_arm", armPlacement)
	topPose := spatial.NewPose(r3.Vector{X: -4, Y: 2, Z: 5}, spatial.NewRotationXYZ(180, 0, 0))
	top, err := NewRigidJoint("top", arm, topPose)
	test.That(t, err, test.ShouldBeNil)

	test.That(t, spatial.PoseAlmostEqual(side.RelativeGeometry(), spatial.PoseBetween(basePlacement, sidePose)),
		test.ShouldBeTrue)
	test.That(t, side.DoF(), test.ShouldBeEmpty)
	test.That(t, side.Inputs(), test.ShouldBeNil)

	test.That(t, side.Connect(top), test.ShouldBeNil)
	expected := spatial.ComposeAll(basePlacement, side.RelativeGeometry(), top.RelativeGeometry())
	test.That(t, spatial.PoseAlmostEqual(arm.Placement(), expected), test.ShouldBeTrue)
	test.That(t, side.ConnectedTo(), test.ShouldEqual, top)
	test.That(t, top.ConnectedTo(), test.ShouldBeNil)
	test.That(t, side.Inputs(), test.ShouldBeEmpty)
	test.That(t, spatial.PoseAlmostEqual(base.Placement(), basePlacement), test.ShouldBeTrue)

	// idempotent
	test.That(t, side.Connect(top), test.ShouldBeNil)
	test.That(t, spatial.PoseAlmostEqual(arm.Placement(), expected), test.ShouldBeTrue)
}

func TestRigidConnectIdentityPartner(t *testing.T) {
	base := NewBody("base", spatial.NewPoseFromPoint(r3.Vector{Z: 2}))
	jointPose := spatial.NewPose(r3.Vector{X: 5, Z: 7}, spatial.NewRotationXYZ(0, 0, 90))
	socket, err := NewRigidJoint("socket", base, jointPose)
	test.That(t, err, test.ShouldBeNil)

	arm := NewBody("arm", nil)
	plug, err := NewRigidJoint("plug", arm, nil)
	test.That(t, err, test.ShouldBeNil)

	test.That(t, Connect(socket, plug, Params{}), test.ShouldBeNil)
	test.That(t, spatial.PoseAlmostEqual(arm.Placement(), jointPose), test.ShouldBeTrue)
}

func TestRigidSurvivesBodyMove(t *testing.T) {
	base := NewBody("base", nil)
	socket, err := NewRigidJoint("socket", base, spatial.NewPoseFromPoint(r3.Vector{X: 5}))
	test.That(t, err, test.ShouldBeNil)
	arm := NewBody("arm", nil)
	plug, err := NewRigidJoint("plug", arm, nil)
	test.That(t, err, test.ShouldBeNil)

	moved := spatial.NewPose(r3.Vector{Y: 10}, spatial.NewRotationXYZ(0, 0, 90))
	base.Locate(moved)
	test.That(t, socket.Connect(plug), test.ShouldBeNil)
	// the socket frame moves with the body: +X of the body is now +Y in the world
	test.That(t, spatial.R3VectorAlmostEqual(arm.Placement().Point(), r3.Vector{Y: 15}, 1e-9), test.ShouldBeTrue)
	test.That(t, spatial.OrientationAlmostEqual(arm.Placement().Orientation(), moved.Orientation()), test.ShouldBeTrue)
}
