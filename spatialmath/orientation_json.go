package spatialmath

import (
	"encoding/json"

	"github.com/pkg/errors"
	"gonum.org/v1/gonum/num/quat"
)

// OrientationType defines what orientation representations are known.
type OrientationType string

// The set of allowed representations for orientation.
const (
	NoOrientationType            = OrientationType("")
	OrientationVectorDegreesType = OrientationType("ov_degrees")
	OrientationVectorRadiansType = OrientationType("ov_radians")
	EulerAnglesType              = OrientationType("euler_angles")
	AxisAnglesType               = OrientationType("axis_angles")
	QuaternionType               = OrientationType("quaternion")
	RotationXYZType              = OrientationType("xyz_degrees")
)

// OrientationConfig holds the underlying type of orientation, and the value.
type OrientationConfig struct {
	Type  OrientationType `json:"type"`
	Value json.RawMessage `json:"value"`
}

type quaternionJSON struct {
	W float64 `json:"w"`
	X float64 `json:"x"`
	Y float64 `json:"y"`
	Z float64 `json:"z"`
}

type rotationXYZJSON struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
	Z float64 `json:"z"`
}

// NewOrientationConfig encodes the orientation interface to something serializable and human readable.
func NewOrientationConfig(o Orientation) (*OrientationConfig, error) {
	var (
		oType OrientationType
		value interface{}
	)
	switch ori := o.(type) {
	case *R4AA:
		oType, value = AxisAnglesType, ori
	case *OrientationVector:
		oType, value = OrientationVectorRadiansType, ori
	case *OrientationVectorDegrees:
		oType, value = OrientationVectorDegreesType, ori
	case *EulerAngles:
		oType, value = EulerAnglesType, ori
	case *quaternion:
		oType, value = QuaternionType, quaternionJSON{W: ori.Real, X: ori.Imag, Y: ori.Jmag, Z: ori.Kmag}
	default:
		return nil, errors.Errorf("do not know how to map Orientation type %T to json fields", o)
	}
	bytes, err := json.Marshal(value)
	if err != nil {
		return nil, err
	}
	return &OrientationConfig{Type: oType, Value: bytes}, nil
}

// ParseConfig will use the Type in OrientationConfig and convert into the correct struct that implements Orientation.
func (config *OrientationConfig) ParseConfig() (Orientation, error) {
	if config == nil {
		return NewZeroOrientation(), nil
	}
	switch config.Type {
	case NoOrientationType:
		return NewZeroOrientation(), nil
	case OrientationVectorDegreesType:
		o := NewOrientationVectorDegrees()
		if err := json.Unmarshal(config.Value, o); err != nil {
			return nil, err
		}
		return o, nil
	case OrientationVectorRadiansType:
		o := NewOrientationVector()
		if err := json.Unmarshal(config.Value, o); err != nil {
			return nil, err
		}
		return o, nil
	case AxisAnglesType:
		o := NewR4AA()
		if err := json.Unmarshal(config.Value, o); err != nil {
			return nil, err
		}
		return o, nil
	case EulerAnglesType:
		o := NewEulerAngles()
		if err := json.Unmarshal(config.Value, o); err != nil {
			return nil, err
		}
		return o, nil
	case QuaternionType:
		qj := quaternionJSON{W: 1}
		if err := json.Unmarshal(config.Value, &qj); err != nil {
			return nil, err
		}
		q := quaternion(Normalize(quat.Number{Real: qj.W, Imag: qj.X, Jmag: qj.Y, Kmag: qj.Z}))
		return &q, nil
	case RotationXYZType:
		var xyz rotationXYZJSON
		if err := json.Unmarshal(config.Value, &xyz); err != nil {
			return nil, err
		}
		return NewRotationXYZ(xyz.X, xyz.Y, xyz.Z), nil
	default:
		return nil, errors.Errorf("orientation type %s not recognized", config.Type)
	}
}
