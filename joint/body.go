package joint

import (
	"sort"

	"github.com/golang/geo/r3"
	"github.com/google/uuid"
	"github.com/samber/lo"

	spatial "github.com/partkit/assembly/spatialmath"
)

// Body is a rigid part with a mutable global placement. It exclusively owns the joints attached to it,
// keyed by label.
type Body struct {
	id        uuid.UUID
	name      string
	placement spatial.Pose
	joints    map[string]Joint
}

// NewBody returns a body with the given name at the given placement. A nil placement is the origin.
func NewBody(name string, placement spatial.Pose) *Body {
	if placement == nil {
		placement = spatial.NewZeroPose()
	}
	return &Body{
		id:        uuid.New(),
		name:      name,
		placement: placement,
		joints:    map[string]Joint{},
	}
}

// ID returns the stable identity of the body.
func (b *Body) ID() uuid.UUID {
	return b.id
}

// Name returns the name of the body.
func (b *Body) Name() string {
	return b.name
}

// Placement returns the global placement of the body.
func (b *Body) Placement() spatial.Pose {
	return b.placement
}

// Locate moves the body to the given global placement. Joints keep their relative geometry.
func (b *Body) Locate(placement spatial.Pose) {
	b.placement = placement
}

// Joint returns the joint with the given label.
func (b *Body) Joint(label string) (Joint, bool) {
	j, ok := b.joints[label]
	return j, ok
}

// Joints returns every joint of the body ordered by label.
func (b *Body) Joints() []Joint {
	labels := b.Labels()
	out := make([]Joint, 0, len(labels))
	for _, l := range labels {
		out = append(out, b.joints[l])
	}
	return out
}

// Labels returns the sorted labels of the body's joints.
func (b *Body) Labels() []string {
	labels := lo.Keys(b.joints)
	sort.Strings(labels)
	return labels
}

// toLocal expresses a global pose in the body's own frame.
func (b *Body) toLocal(p spatial.Pose) spatial.Pose {
	return spatial.PoseBetween(b.placement, p)
}

// toLocalAxis expresses a global axis in the body's own frame.
func (b *Body) toLocalAxis(a spatial.Axis) spatial.Axis {
	return a.Located(spatial.PoseInverse(b.placement))
}

// toLocalVector expresses a global direction in the body's own frame.
func (b *Body) toLocalVector(v r3.Vector) r3.Vector {
	return spatial.RotateVectorByOrientation(spatial.OrientationInverse(b.placement.Orientation()), v)
}

func (b *Body) attach(j Joint) error {
	if _, ok := b.joints[j.Label()]; ok {
		return newConstructionError(j.Label(), "body %q already has a joint with this label", b.name)
	}
	b.joints[j.Label()] = j
	return nil
}
