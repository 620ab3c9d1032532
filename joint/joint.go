// Package joint models mechanical joints between rigid bodies. Connecting a socket joint to a plug joint
// computes a new global placement for the plug's body from the socket body's placement, the relative
// geometry both joints stored when they were built, and the connect parameters.
//
// Joints store their geometry in the owning body's frame, so a body may be moved after its joints are
// built. Nothing in this package locks; callers must serialize connects that can touch the same body.
package joint

import (
	"fmt"
	"strings"

	"github.com/golang/geo/r3"
	"github.com/pkg/errors"

	"github.com/partkit/assembly/referenceframe"
	spatial "github.com/partkit/assembly/spatialmath"
)

// Kind identifies one of the five joint variants.
type Kind int

// The joint variants.
const (
	KindRigid Kind = iota
	KindRevolute
	KindLinear
	KindCylindrical
	KindBall
)

var kindNames = map[Kind]string{
	KindRigid:       "rigid",
	KindRevolute:    "revolute",
	KindLinear:      "linear",
	KindCylindrical: "cylindrical",
	KindBall:        "ball",
}

func (k Kind) String() string {
	if name, ok := kindNames[k]; ok {
		return name
	}
	return fmt.Sprintf("Kind(%d)", int(k))
}

// ParseKind returns the kind with the given name.
func ParseKind(name string) (Kind, error) {
	for k, n := range kindNames {
		if strings.EqualFold(n, name) {
			return k, nil
		}
	}
	return 0, errors.Errorf("unknown joint type %q", name)
}

// Joint is implemented by RigidJoint, RevoluteJoint, LinearJoint, CylindricalJoint and BallJoint only.
type Joint interface {
	// Label is unique within the owning body.
	Label() string
	Body() *Body
	Kind() Kind
	// ConnectedTo returns the partner of the last successful connect made from this joint, or nil.
	// The partner does not record the link back.
	ConnectedTo() Joint
	// RelativeGeometry returns the joint frame in the owning body's frame.
	RelativeGeometry() spatial.Pose
	// DoF returns the limits of each degree of freedom of the joint.
	DoF() []referenceframe.Limit
	// Inputs returns the resolved parameters of the last successful connect, one per DoF, or nil.
	Inputs() []referenceframe.Input

	sealed()
}

type jointBase struct {
	label       string
	body        *Body
	connectedTo Joint
}

func (j *jointBase) Label() string {
	return j.label
}

func (j *jointBase) Body() *Body {
	return j.body
}

func (j *jointBase) ConnectedTo() Joint {
	return j.connectedTo
}

func (j *jointBase) sealed() {}

// commit moves the partner's body and records the partner. Every check must already have passed.
func (j *jointBase) commit(partner Joint, placement spatial.Pose) {
	partner.Body().Locate(placement)
	j.connectedTo = partner
}

var errNilPartner = errors.New("cannot connect to a nil joint")

func checkPartner(self, partner Joint) error {
	if partner.Body() == self.Body() {
		return ErrSameBody
	}
	return nil
}

func validateLimit(label, name string, l referenceframe.Limit) error {
	if err := l.Validate(); err != nil {
		return newConstructionError(label, "%s: %v", name, err)
	}
	return nil
}

// Params are the connect parameters accepted at the boundary. Unset fields take the joint's defaults.
type Params struct {
	Angle    *float64
	Position *float64
	Angles   *r3.Vector
}

func (p Params) reject(kind Kind, fields ...string) error {
	for _, f := range fields {
		var set bool
		switch f {
		case "angle":
			set = p.Angle != nil
		case "position":
			set = p.Position != nil
		case "angles":
			set = p.Angles != nil
		}
		if set {
			return errors.Errorf("%s joints do not accept the %s parameter", kind, f)
		}
	}
	return nil
}

// Connect dispatches a connect on the kinds of socket and plug. The accepted pairs are
// rigid-rigid, revolute-rigid, linear-rigid, linear-revolute, cylindrical-rigid and ball-rigid; any
// other pair returns a *TypeMismatchError without moving anything.
func Connect(socket, plug Joint, params Params) error {
	if socket == nil || plug == nil {
		return errors.New("socket and plug joints are required")
	}
	switch s := socket.(type) {
	case *RigidJoint:
		if p, ok := plug.(*RigidJoint); ok {
			if err := params.reject(KindRigid, "angle", "position", "angles"); err != nil {
				return err
			}
			return s.Connect(p)
		}
	case *RevoluteJoint:
		if p, ok := plug.(*RigidJoint); ok {
			if err := params.reject(KindRevolute, "position", "angles"); err != nil {
				return err
			}
			return s.Connect(p, RevoluteParams{Angle: params.Angle})
		}
	case *LinearJoint:
		if err := params.reject(KindLinear, "angles"); err != nil {
			return err
		}
		switch p := plug.(type) {
		case *RigidJoint:
			if err := params.reject(KindLinear, "angle"); err != nil {
				return err
			}
			return s.ConnectRigid(p, SliderParams{Position: params.Position})
		case *RevoluteJoint:
			return s.ConnectRevolute(p, PinSlotParams{Position: params.Position, Angle: params.Angle})
		}
	case *CylindricalJoint:
		if p, ok := plug.(*RigidJoint); ok {
			if err := params.reject(KindCylindrical, "angles"); err != nil {
				return err
			}
			return s.Connect(p, CylindricalParams{Position: params.Position, Angle: params.Angle})
		}
	case *BallJoint:
		if p, ok := plug.(*RigidJoint); ok {
			if err := params.reject(KindBall, "angle", "position"); err != nil {
				return err
			}
			return s.Connect(p, BallParams{Angles: params.Angles})
		}
	}
	return NewTypeMismatchError(socket.Kind(), plug.Kind())
}

// State is a read-only snapshot of a joint for reporting.
type State struct {
	Body             string
	Label            string
	Kind             Kind
	ConnectedTo      string
	RelativeGeometry spatial.Pose
	Limits           []referenceframe.Limit
	Angle            *float64
	Position         *float64
	Angles           *r3.Vector
}

// QualifiedName returns a joint reference in "body:label" form.
func QualifiedName(j Joint) string {
	return j.Body().Name() + ":" + j.Label()
}

// StateOf returns a snapshot of the joint.
func StateOf(j Joint) State {
	st := State{
		Body:             j.Body().Name(),
		Label:            j.Label(),
		Kind:             j.Kind(),
		RelativeGeometry: j.RelativeGeometry(),
		Limits:           j.DoF(),
	}
	if partner := j.ConnectedTo(); partner != nil {
		st.ConnectedTo = QualifiedName(partner)
	}
	switch v := j.(type) {
	case *RevoluteJoint:
		st.Angle = optional(v.Angle())
	case *LinearJoint:
		st.Position = optional(v.Position())
		st.Angle = optional(v.Angle())
	case *CylindricalJoint:
		st.Position = optional(v.Position())
		st.Angle = optional(v.Angle())
	case *BallJoint:
		if angles, ok := v.Angles(); ok {
			st.Angles = &angles
		}
	}
	return st
}

func optional(v float64, ok bool) *float64 {
	if !ok {
		return nil
	}
	return &v
}
