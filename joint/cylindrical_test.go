package joint

import (
	"math"
	"testing"

	"github.com/golang/geo/r3"
	"go.viam.com/test"

	"github.com/partkit/assembly/referenceframe"
	spatial "github.com/partkit/assembly/spatialmath"
	"github.com/partkit/assembly/utils"
)

func newHole(t *testing.T) (*Body, *CylindricalJoint, *Body, *RigidJoint) {
	t.Helper()
	base := NewBody("base", spatial.NewPoseFromPoint(r3.Vector{Z: 5}))
	hole, err := NewCylindricalJoint("hole", base, spatial.Axis{Origin: r3.Vector{Z: 5}, Direction: r3.Vector{Z: 1}},
		WithPositionRange(referenceframe.Limit{Min: -10, Max: 10}))
	test.That(t, err, test.ShouldBeNil)
	screwArm := NewBody("screw_arm", spatial.NewPoseFromPoint(r3.Vector{X: 30}))
	screw, err := NewRigidJoint("screw", screwArm, spatial.NewPoseFromPoint(r3.Vector{X: 30, Z: 10}))
	test.That(t, err, test.ShouldBeNil)
	return base, hole, screwArm, screw
}

func TestCylindricalConnect(t *testing.T) {
	base, hole, screwArm, screw := newHole(t)
	test.That(t, hole.LinearRange(), test.ShouldResemble, referenceframe.Limit{Min: -10, Max: 10})
	test.That(t, hole.RotationalRange(), test.ShouldResemble, referenceframe.DefaultAngularLimit)
	test.That(t, hole.DoF(), test.ShouldHaveLength, 2)

	test.That(t, hole.Connect(screw, CylindricalParams{Position: utils.FloatPtr(-1), Angle: utils.FloatPtr(90)}),
		test.ShouldBeNil)
	expected := spatial.Compose(base.Placement(), spatial.NewPose(r3.Vector{Z: -1}, spatial.NewRotationXYZ(0, 0, 90)))
	test.That(t, spatial.PoseAlmostEqual(screwArm.Placement(), expected), test.ShouldBeTrue)
	test.That(t, referenceframe.InputValues(hole.Inputs()), test.ShouldResemble, []float64{-1, 90})
	test.That(t, hole.ConnectedTo(), test.ShouldEqual, screw)
}

func TestCylindricalDefaults(t *testing.T) {
	base, hole, screwArm, screw := newHole(t)
	test.That(t, Connect(hole, screw, Params{}), test.ShouldBeNil)
	position, ok := hole.Position()
	test.That(t, ok, test.ShouldBeTrue)
	test.That(t, position, test.ShouldEqual, 0.)
	angle, ok := hole.Angle()
	test.That(t, ok, test.ShouldBeTrue)
	test.That(t, angle, test.ShouldEqual, 180.)
	expected := spatial.Compose(base.Placement(), spatial.NewPoseFromOrientation(spatial.NewRotationXYZ(0, 0, 180)))
	test.That(t, spatial.PoseAlmostEqual(screwArm.Placement(), expected), test.ShouldBeTrue)
}

func TestCylindricalUnboundedDefault(t *testing.T) {
	base := NewBody("base", nil)
	hole, err := NewCylindricalJoint("hole", base, spatial.AxisZ())
	test.That(t, err, test.ShouldBeNil)
	test.That(t, hole.LinearRange(), test.ShouldResemble, referenceframe.DefaultLinearLimit)
	screwArm := NewBody("screw_arm", spatial.NewPoseFromPoint(r3.Vector{X: 4}))
	screw, err := NewRigidJoint("screw", screwArm, nil)
	test.That(t, err, test.ShouldBeNil)

	before := snapshotOf(hole, screwArm)
	err = hole.Connect(screw, CylindricalParams{Angle: utils.FloatPtr(90)})
	test.That(t, IsRangeError(err), test.ShouldBeTrue)
	test.That(t, err.Error(), test.ShouldContainSubstring, "position")
	requireUnchanged(t, before, hole, screwArm)
	test.That(t, math.IsNaN(screwArm.Placement().Point().X), test.ShouldBeFalse)

	test.That(t, hole.Connect(screw, CylindricalParams{Position: utils.FloatPtr(250)}), test.ShouldBeNil)
	test.That(t, spatial.R3VectorAlmostEqual(screwArm.Placement().Point(), r3.Vector{Z: 250}, 1e-9), test.ShouldBeTrue)
}

func TestCylindricalOutOfRange(t *testing.T) {
	_, hole, screwArm, screw := newHole(t)
	for _, params := range []CylindricalParams{
		{Position: utils.FloatPtr(10.5)},
		{Angle: utils.FloatPtr(-1)},
		{Position: utils.FloatPtr(0), Angle: utils.FloatPtr(361)},
	} {
		before := snapshotOf(hole, screwArm)
		err := hole.Connect(screw, params)
		test.That(t, IsRangeError(err), test.ShouldBeTrue)
		requireUnchanged(t, before, hole, screwArm)
	}
	_, ok := hole.Position()
	test.That(t, ok, test.ShouldBeFalse)
}

func TestCylindricalReference(t *testing.T) {
	base := NewBody("base", nil)
	_, err := NewCylindricalJoint("hole", base, spatial.AxisY(), WithAngleReference(r3.Vector{Y: -1}))
	test.That(t, IsConstructionError(err), test.ShouldBeTrue)

	hole, err := NewCylindricalJoint("hole", base, spatial.AxisZ(), WithAngleReference(r3.Vector{Y: 1}),
		WithPositionRange(referenceframe.Limit{Min: 0, Max: 4}))
	test.That(t, err, test.ShouldBeNil)
	arm := NewBody("arm", nil)
	screw, err := NewRigidJoint("screw", arm, nil)
	test.That(t, err, test.ShouldBeNil)
	test.That(t, hole.Connect(screw, CylindricalParams{Position: utils.FloatPtr(4), Angle: utils.FloatPtr(0)}),
		test.ShouldBeNil)
	expected := spatial.NewPose(r3.Vector{Z: 4}, spatial.NewRotationXYZ(0, 0, 90))
	test.That(t, spatial.PoseAlmostEqual(arm.Placement(), expected), test.ShouldBeTrue)
}

func TestCylindricalRejectsRevolutePlug(t *testing.T) {
	_, hole, _, _ := newHole(t)
	pinArm := NewBody("pin_arm", nil)
	pin, err := NewRevoluteJoint("pin", pinArm, spatial.AxisZ())
	test.That(t, err, test.ShouldBeNil)
	err = Connect(hole, pin, Params{})
	test.That(t, IsTypeMismatchError(err), test.ShouldBeTrue)
	test.That(t, err.Error(), test.ShouldContainSubstring, "cylindrical joint cannot be connected to a revolute joint")
}
