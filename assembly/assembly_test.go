package assembly

import (
	"context"
	"math"
	"testing"

	"github.com/golang/geo/r3"
	"github.com/pkg/errors"
	"go.uber.org/multierr"
	"go.viam.com/test"

	"github.com/partkit/assembly/config"
	"github.com/partkit/assembly/joint"
	"github.com/partkit/assembly/logging"
	spatial "github.com/partkit/assembly/spatialmath"
)

func vec(x, y, z float64) map[string]interface{} {
	return map[string]interface{}{"x": x, "y": y, "z": z}
}

func floatPtr(v float64) *float64 {
	return &v
}

// hingeScene has a rotated base carrying a hinge and an arm with a rigid joint.
func hingeScene() *config.Config {
	return &config.Config{
		Bodies: []config.BodyConfig{{Name: "base"}, {Name: "arm"}, {Name: "lid"}},
		Joints: []config.JointConfig{
			{
				Name: "hinge", Body: "base", Type: "revolute",
				Attributes: config.AttributeMap{
					"axis":  map[string]interface{}{"origin": vec(5, 5, 0), "direction": vec(0, 0, 1)},
					"range": map[string]interface{}{"min": 0.0, "max": 180.0},
				},
			},
			{Name: "top", Body: "base", Type: "rigid"},
			{Name: "corner", Body: "arm", Type: "rigid"},
			{Name: "bottom", Body: "lid", Type: "rigid"},
		},
		Connections: []config.ConnectionConfig{
			{Socket: "base:hinge", Plug: "arm:corner", Angle: floatPtr(90)},
			{Socket: "base:top", Plug: "lid:bottom"},
		},
	}
}

func mustPlacement(t *testing.T, a *Assembly, name string) spatial.Pose {
	t.Helper()
	body, ok := a.Body(name)
	test.That(t, ok, test.ShouldBeTrue)
	return body.Placement()
}

func mustJoint(t *testing.T, a *Assembly, ref string) joint.Joint {
	t.Helper()
	j, err := a.Joint(ref)
	test.That(t, err, test.ShouldBeNil)
	return j
}

// worldGeometry is where a joint currently sits in world coordinates.
func worldGeometry(j joint.Joint) spatial.Pose {
	return spatial.Compose(j.Body().Placement(), j.RelativeGeometry())
}

func TestDemo(t *testing.T) {
	logger, logs := logging.NewObservedTestLogger(t)
	cfg, err := DemoConfig()
	test.That(t, err, test.ShouldBeNil)
	test.That(t, cfg.Bodies, test.ShouldHaveLength, 7)
	test.That(t, cfg.Joints, test.ShouldHaveLength, 12)
	test.That(t, cfg.Connections, test.ShouldHaveLength, 6)

	a, err := NewFromConfig(cfg, logger)
	test.That(t, err, test.ShouldBeNil)
	test.That(t, a.BodyNames(), test.ShouldResemble,
		[]string{"ball", "base", "fixed_arm", "hinge_arm", "pin_arm", "screw_arm", "slider_arm"})
	test.That(t, a.ConnectAll(context.Background()), test.ShouldBeNil)
	test.That(t, logs.FilterMessage("assembly connected").Len(), test.ShouldEqual, 1)
	test.That(t, logs.FilterMessage("connected").Len(), test.ShouldEqual, 6)
	first := logs.FilterMessage("connecting").All()[0].ContextMap()
	test.That(t, first["scene"], test.ShouldEqual, "demo.yaml")
	test.That(t, first["socket"], test.ShouldEqual, "base:side")
	test.That(t, first["plug"], test.ShouldEqual, "fixed_arm:top")

	base := mustPlacement(t, a, "base")
	worldPoint := func(x, y, z float64) r3.Vector {
		return spatial.Compose(base, spatial.NewPoseFromPoint(r3.Vector{X: x, Y: y, Z: z})).Point()
	}

	t.Run("rigid", func(t *testing.T) {
		side := mustJoint(t, a, "base:side")
		top := mustJoint(t, a, "fixed_arm:top")
		expected := spatial.ComposeAll(base, side.RelativeGeometry(), top.RelativeGeometry())
		test.That(t, spatial.PoseAlmostEqual(mustPlacement(t, a, "fixed_arm"), expected), test.ShouldBeTrue)
		test.That(t, side.ConnectedTo(), test.ShouldEqual, top)
	})

	t.Run("revolute", func(t *testing.T) {
		corner := mustJoint(t, a, "hinge_arm:corner")
		test.That(t, spatial.R3VectorAlmostEqual(worldGeometry(corner).Point(), worldPoint(5, 5, 0), 1e-6),
			test.ShouldBeTrue)
		hinge, err := JointAs[*joint.RevoluteJoint](a, "base:hinge")
		test.That(t, err, test.ShouldBeNil)
		angle, ok := hinge.Angle()
		test.That(t, ok, test.ShouldBeTrue)
		test.That(t, angle, test.ShouldAlmostEqual, 90)
	})

	t.Run("slider", func(t *testing.T) {
		expected := spatial.Compose(base, spatial.NewPoseFromPoint(r3.Vector{X: 3, Y: 1.7, Z: 10}))
		test.That(t, spatial.PoseAlmostEqual(mustPlacement(t, a, "slider_arm"), expected), test.ShouldBeTrue)
	})

	t.Run("cylindrical", func(t *testing.T) {
		test.That(t, spatial.R3VectorAlmostEqual(mustPlacement(t, a, "screw_arm").Point(), worldPoint(0, -6, 5), 1e-6),
			test.ShouldBeTrue)
		hole := mustJoint(t, a, "base:hole").(*joint.CylindricalJoint)
		position, ok := hole.Position()
		test.That(t, ok, test.ShouldBeTrue)
		test.That(t, position, test.ShouldAlmostEqual, -1)
		angle, ok := hole.Angle()
		test.That(t, ok, test.ShouldBeTrue)
		test.That(t, angle, test.ShouldAlmostEqual, 90)
	})

	t.Run("pin slot", func(t *testing.T) {
		test.That(t, spatial.R3VectorAlmostEqual(mustPlacement(t, a, "pin_arm").Point(), worldPoint(1, -1.7, 10), 1e-6),
			test.ShouldBeTrue)
		slot := mustJoint(t, a, "base:slot").(*joint.LinearJoint)
		angle, ok := slot.Angle()
		test.That(t, ok, test.ShouldBeTrue)
		test.That(t, angle, test.ShouldAlmostEqual, 60)
	})

	t.Run("ball", func(t *testing.T) {
		socket := mustJoint(t, a, "base:socket")
		ball := mustJoint(t, a, "ball:ball")
		expected := spatial.Compose(worldGeometry(socket), spatial.NewPoseFromOrientation(spatial.NewRotationXYZ(10, 20, 30)))
		test.That(t, spatial.PoseAlmostEqual(worldGeometry(ball), expected), test.ShouldBeTrue)
		angles, ok := socket.(*joint.BallJoint).Angles()
		test.That(t, ok, test.ShouldBeTrue)
		test.That(t, spatial.R3VectorAlmostEqual(angles, r3.Vector{X: 10, Y: 20, Z: 30}, 1e-6), test.ShouldBeTrue)
	})

	t.Run("states", func(t *testing.T) {
		states := a.JointStates()
		test.That(t, states, test.ShouldHaveLength, 12)
		connected := 0
		for _, s := range states {
			if s.ConnectedTo != "" {
				connected++
			}
		}
		test.That(t, connected, test.ShouldEqual, 6)
		test.That(t, a.Placements(), test.ShouldHaveLength, 7)
		test.That(t, a.Placements()[1].Body, test.ShouldEqual, "base")
	})
}

func TestConnectAllStopsAtFirstFailure(t *testing.T) {
	cfg := hingeScene()
	cfg.Connections[0].Angle = floatPtr(200)
	a, err := NewFromConfig(cfg, logging.NewTestLogger(t))
	test.That(t, err, test.ShouldBeNil)

	err = a.ConnectAll(context.Background())
	test.That(t, err, test.ShouldNotBeNil)
	test.That(t, joint.IsRangeError(err), test.ShouldBeTrue)
	test.That(t, err.Error(), test.ShouldContainSubstring, "base:hinge -> arm:corner")

	test.That(t, spatial.PoseAlmostEqual(mustPlacement(t, a, "arm"), spatial.NewZeroPose()), test.ShouldBeTrue)
	test.That(t, mustJoint(t, a, "base:hinge").ConnectedTo(), test.ShouldBeNil)
	test.That(t, mustJoint(t, a, "base:top").ConnectedTo(), test.ShouldBeNil)
}

func TestConnectAllEarlierConnectionsStay(t *testing.T) {
	cfg := hingeScene()
	cfg.Connections = append(cfg.Connections, config.ConnectionConfig{Socket: "base:top", Plug: "arm:corner", Angle: floatPtr(1)})
	logger, logs := logging.NewObservedTestLogger(t)
	a, err := NewFromConfig(cfg, logger)
	test.That(t, err, test.ShouldBeNil)

	err = a.ConnectAll(context.Background())
	test.That(t, err, test.ShouldNotBeNil)
	test.That(t, err.Error(), test.ShouldContainSubstring, "rigid joints do not accept the angle parameter")
	test.That(t, mustJoint(t, a, "base:hinge").ConnectedTo(), test.ShouldNotBeNil)
	test.That(t, mustJoint(t, a, "base:top").ConnectedTo(), test.ShouldNotBeNil)
	test.That(t, logs.FilterMessage("connection failed").Len(), test.ShouldEqual, 1)
}

func TestConnectAllCanceled(t *testing.T) {
	a, err := NewFromConfig(hingeScene(), logging.NewTestLogger(t))
	test.That(t, err, test.ShouldBeNil)
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	err = a.ConnectAll(ctx)
	test.That(t, errors.Is(err, context.Canceled), test.ShouldBeTrue)
	test.That(t, mustJoint(t, a, "base:hinge").ConnectedTo(), test.ShouldBeNil)
}

func TestConnect(t *testing.T) {
	a, err := NewFromConfig(hingeScene(), logging.NewTestLogger(t))
	test.That(t, err, test.ShouldBeNil)
	ctx := context.Background()

	err = a.Connect(ctx, config.ConnectionConfig{Socket: "nobody:hinge", Plug: "arm:corner"})
	test.That(t, err, test.ShouldNotBeNil)
	test.That(t, err.Error(), test.ShouldContainSubstring, `no body named "nobody"`)

	err = a.Connect(ctx, config.ConnectionConfig{Socket: "base:hinge", Plug: "arm:elbow"})
	test.That(t, err, test.ShouldNotBeNil)
	test.That(t, err.Error(), test.ShouldContainSubstring, `body "arm" has no joint "elbow"`)

	err = a.Connect(ctx, config.ConnectionConfig{Socket: "base:hinge", Plug: "lid"})
	test.That(t, err, test.ShouldNotBeNil)

	_, err = JointAs[*joint.BallJoint](a, "base:hinge")
	test.That(t, err, test.ShouldNotBeNil)
	test.That(t, err.Error(), test.ShouldContainSubstring, "expected *joint.BallJoint but got *joint.RevoluteJoint")
	_, err = JointAs[*joint.BallJoint](a, "base")
	test.That(t, err, test.ShouldNotBeNil)

	err = a.Connect(ctx, config.ConnectionConfig{Socket: "arm:corner", Plug: "base:hinge"})
	test.That(t, joint.IsTypeMismatchError(err), test.ShouldBeTrue)

	test.That(t, a.Connect(ctx, config.ConnectionConfig{Socket: "base:hinge", Plug: "arm:corner"}), test.ShouldBeNil)
	angle, ok := mustJoint(t, a, "base:hinge").(*joint.RevoluteJoint).Angle()
	test.That(t, ok, test.ShouldBeTrue)
	test.That(t, angle, test.ShouldAlmostEqual, 0)
}

func TestNewFromConfigErrors(t *testing.T) {
	logger := logging.NewTestLogger(t)
	_, err := NewFromConfig(nil, logger)
	test.That(t, err, test.ShouldNotBeNil)

	cfg := hingeScene()
	cfg.Joints[1].Body = "missing"
	_, err = NewFromConfig(cfg, logger)
	test.That(t, err, test.ShouldNotBeNil)
	test.That(t, err.Error(), test.ShouldContainSubstring, "missing")

	cfg = hingeScene()
	cfg.Joints[0].Attributes["angle_reference"] = vec(0, 0, 1)
	cfg.Joints = append(cfg.Joints, config.JointConfig{
		Name: "slide", Body: "lid", Type: "cylindrical",
		Attributes: config.AttributeMap{
			"axis":            map[string]interface{}{"direction": vec(1, 0, 0)},
			"angle_reference": vec(1, 1, 0),
		},
	})
	_, err = NewFromConfig(cfg, logger)
	test.That(t, err, test.ShouldNotBeNil)
	errs := multierr.Errors(err)
	test.That(t, errs, test.ShouldHaveLength, 2)
	test.That(t, joint.IsConstructionError(errs[0]), test.ShouldBeTrue)
	test.That(t, errs[0].Error(), test.ShouldContainSubstring, `joint "base:hinge"`)
	test.That(t, errs[1].Error(), test.ShouldContainSubstring, `joint "lid:slide"`)
}

func TestJointGeometryIsBodyLocal(t *testing.T) {
	turned := spatial.NewPose(r3.Vector{X: 10}, &spatial.R4AA{Theta: math.Pi / 2, RZ: 1})
	a := New(logging.NewTestLogger(t))
	_, err := a.AddBody("base", turned)
	test.That(t, err, test.ShouldBeNil)

	j, err := a.AddJoint(config.JointConfig{
		Name: "hinge", Body: "base", Type: "revolute",
		Attributes: config.AttributeMap{
			"axis":            map[string]interface{}{"origin": vec(1, 0, 0), "direction": vec(1, 0, 0)},
			"angle_reference": vec(0, 1, 0),
		},
	})
	test.That(t, err, test.ShouldBeNil)
	hinge := j.(*joint.RevoluteJoint)
	test.That(t, spatial.R3VectorAlmostEqual(hinge.Axis().Origin, r3.Vector{X: 1}, 1e-6), test.ShouldBeTrue)
	test.That(t, spatial.R3VectorAlmostEqual(hinge.Axis().Direction, r3.Vector{X: 1}, 1e-6), test.ShouldBeTrue)
	test.That(t, spatial.R3VectorAlmostEqual(hinge.Reference(), r3.Vector{Y: 1}, 1e-6), test.ShouldBeTrue)

	j, err = a.AddJoint(config.JointConfig{
		Name: "side", Body: "base", Type: "rigid",
		Attributes: config.AttributeMap{"pose": map[string]interface{}{"translation": vec(0, 2, 0)}},
	})
	test.That(t, err, test.ShouldBeNil)
	test.That(t, spatial.R3VectorAlmostEqual(j.RelativeGeometry().Point(), r3.Vector{Y: 2}, 1e-6), test.ShouldBeTrue)
	test.That(t, spatial.R3VectorAlmostEqual(worldGeometry(j).Point(), r3.Vector{X: 8}, 1e-6), test.ShouldBeTrue)

	j, err = a.AddJoint(config.JointConfig{Name: "side", Body: "base", Type: "rigid"})
	test.That(t, joint.IsConstructionError(err), test.ShouldBeTrue)
	test.That(t, j == nil, test.ShouldBeTrue)
	j, err = a.AddJoint(config.JointConfig{
		Name: "tilted", Body: "base", Type: "revolute",
		Attributes: config.AttributeMap{
			"axis":            map[string]interface{}{"direction": vec(1, 0, 0)},
			"angle_reference": vec(1, 0, 0),
		},
	})
	test.That(t, joint.IsConstructionError(err), test.ShouldBeTrue)
	test.That(t, j == nil, test.ShouldBeTrue)
	_, err = a.AddJoint(config.JointConfig{Name: "x", Body: "base", Type: "hinge"})
	test.That(t, err, test.ShouldNotBeNil)
	_, err = a.AddJoint(config.JointConfig{Name: "x", Body: "nobody", Type: "rigid"})
	test.That(t, err, test.ShouldNotBeNil)
}

func TestAddBody(t *testing.T) {
	a := New(logging.NewTestLogger(t))
	_, err := a.AddBody("zeta", nil)
	test.That(t, err, test.ShouldBeNil)
	body, err := a.AddBody("alpha", spatial.NewPoseFromPoint(r3.Vector{Z: 3}))
	test.That(t, err, test.ShouldBeNil)
	test.That(t, body.Name(), test.ShouldEqual, "alpha")

	_, err = a.AddBody("alpha", nil)
	test.That(t, err, test.ShouldNotBeNil)
	_, err = a.AddBody("not valid", nil)
	test.That(t, err, test.ShouldNotBeNil)

	test.That(t, a.BodyNames(), test.ShouldResemble, []string{"alpha", "zeta"})
	got, ok := a.Body("alpha")
	test.That(t, ok, test.ShouldBeTrue)
	test.That(t, got, test.ShouldEqual, body)
	_, ok = a.Body("beta")
	test.That(t, ok, test.ShouldBeFalse)
	test.That(t, a.JointStates(), test.ShouldBeEmpty)

	placements := a.Placements()
	test.That(t, placements, test.ShouldHaveLength, 2)
	test.That(t, placements[0].Body, test.ShouldEqual, "alpha")
	test.That(t, placements[0].Pose.Point().Z, test.ShouldAlmostEqual, 3)
}

func TestNilLogger(t *testing.T) {
	a, err := NewFromConfig(hingeScene(), nil)
	test.That(t, err, test.ShouldBeNil)
	test.That(t, a.ConnectAll(context.Background()), test.ShouldBeNil)
	test.That(t, mustJoint(t, a, "base:hinge").ConnectedTo(), test.ShouldNotBeNil)

	a = New(nil)
	_, err = a.AddBody("base", nil)
	test.That(t, err, test.ShouldBeNil)
}
