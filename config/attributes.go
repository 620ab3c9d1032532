package config

import (
	"encoding/json"
	"reflect"

	"github.com/go-viper/mapstructure/v2"
	"github.com/golang/geo/r3"
	"github.com/pkg/errors"

	"github.com/partkit/assembly/joint"
	"github.com/partkit/assembly/referenceframe"
	spatial "github.com/partkit/assembly/spatialmath"
)

// AttributeMap is the untyped form of a joint's attributes as read from a scene file.
type AttributeMap map[string]interface{}

// Has returns whether the attribute is set.
func (am AttributeMap) Has(name string) bool {
	_, has := am[name]
	return has
}

// Attributes are the decoded, type specific attributes of a joint.
type Attributes interface {
	Validate() error
}

// RigidAttributes locate a rigid joint. A missing pose is the body origin.
type RigidAttributes struct {
	Pose *referenceframe.LinkConfig `json:"pose"`
}

// RevoluteAttributes describe a hinge.
type RevoluteAttributes struct {
	Axis           referenceframe.AxisConfig   `json:"axis"`
	AngleReference *r3.Vector                  `json:"angle_reference"`
	Range          *referenceframe.LimitConfig `json:"range"`
}

// LinearAttributes describe a slider.
type LinearAttributes struct {
	Axis  referenceframe.AxisConfig   `json:"axis"`
	Range *referenceframe.LimitConfig `json:"range"`
}

// CylindricalAttributes describe a screw.
type CylindricalAttributes struct {
	Axis            referenceframe.AxisConfig   `json:"axis"`
	AngleReference  *r3.Vector                  `json:"angle_reference"`
	LinearRange     *referenceframe.LimitConfig `json:"linear_range"`
	RotationalRange *referenceframe.LimitConfig `json:"rotational_range"`
}

// BallAttributes describe a ball joint.
type BallAttributes struct {
	Pose           *referenceframe.LinkConfig   `json:"pose"`
	AngleRanges    []referenceframe.LimitConfig `json:"angle_ranges"`
	ReferencePlane *referenceframe.PlaneConfig  `json:"reference_plane"`
}

// Validate checks the pose.
func (a *RigidAttributes) Validate() error {
	_, err := a.Pose.Pose()
	return err
}

// Validate checks the axis and range.
func (a *RevoluteAttributes) Validate() error {
	if _, err := a.Axis.Axis(); err != nil {
		return err
	}
	return a.Range.Limit(referenceframe.DefaultAngularLimit).Validate()
}

// Validate checks the axis and range.
func (a *LinearAttributes) Validate() error {
	if _, err := a.Axis.Axis(); err != nil {
		return err
	}
	return a.Range.Limit(referenceframe.DefaultLinearLimit).Validate()
}

// Validate checks the axis and both ranges.
func (a *CylindricalAttributes) Validate() error {
	if _, err := a.Axis.Axis(); err != nil {
		return err
	}
	if err := a.LinearRange.Limit(referenceframe.DefaultLinearLimit).Validate(); err != nil {
		return err
	}
	return a.RotationalRange.Limit(referenceframe.DefaultAngularLimit).Validate()
}

// Validate checks the pose, ranges and reference plane.
func (a *BallAttributes) Validate() error {
	if _, err := a.Pose.Pose(); err != nil {
		return err
	}
	if _, err := a.Ranges(); err != nil {
		return err
	}
	if a.ReferencePlane != nil {
		if _, err := a.ReferencePlane.Plane(); err != nil {
			return err
		}
	}
	return nil
}

// Ranges returns the X, Y and Z limits, defaulting each missing end.
func (a *BallAttributes) Ranges() ([3]referenceframe.Limit, error) {
	ranges := [3]referenceframe.Limit{
		referenceframe.DefaultAngularLimit,
		referenceframe.DefaultAngularLimit,
		referenceframe.DefaultAngularLimit,
	}
	if a.AngleRanges == nil {
		return ranges, nil
	}
	if len(a.AngleRanges) != 3 {
		return ranges, errors.Errorf("angle_ranges must have 3 entries, one per axis, got %d", len(a.AngleRanges))
	}
	for i := range ranges {
		ranges[i] = a.AngleRanges[i].Limit(referenceframe.DefaultAngularLimit)
		if err := ranges[i].Validate(); err != nil {
			return ranges, err
		}
	}
	return ranges, nil
}

// DecodeAttributes decodes the attributes into the struct for the given kind.
func (c JointConfig) DecodeAttributes(kind joint.Kind) (Attributes, error) {
	var attrs Attributes
	switch kind {
	case joint.KindRigid:
		attrs = &RigidAttributes{}
	case joint.KindRevolute:
		attrs = &RevoluteAttributes{}
	case joint.KindLinear:
		attrs = &LinearAttributes{}
	case joint.KindCylindrical:
		attrs = &CylindricalAttributes{}
	case joint.KindBall:
		attrs = &BallAttributes{}
	default:
		return nil, errors.Errorf("no attributes for joint kind %v", kind)
	}
	if err := decodeAttributeMap(c.Attributes, attrs); err != nil {
		return nil, errors.Wrapf(err, "cannot decode %s joint attributes", kind)
	}
	return attrs, nil
}

var rawMessageType = reflect.TypeOf(json.RawMessage{})

// rawMessageHook re-encodes the untyped value behind a json.RawMessage field, such as an orientation
// value, so it can be decoded later by its own type.
func rawMessageHook(from, to reflect.Type, data interface{}) (interface{}, error) {
	if to != rawMessageType || from == rawMessageType {
		return data, nil
	}
	return json.Marshal(data)
}

func decodeAttributeMap(attributes AttributeMap, out interface{}) error {
	decoder, err := mapstructure.NewDecoder(&mapstructure.DecoderConfig{
		TagName:     "json",
		Result:      out,
		DecodeHook:  rawMessageHook,
		ErrorUnused: true,
	})
	if err != nil {
		return err
	}
	return decoder.Decode(map[string]interface{}(attributes))
}

// PlaneOrDefault converts the reference plane, defaulting to XY.
func (a *BallAttributes) PlaneOrDefault() (spatial.Plane, error) {
	if a.ReferencePlane == nil {
		return spatial.PlaneXY(), nil
	}
	return a.ReferencePlane.Plane()
}
