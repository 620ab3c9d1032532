package referenceframe

import (
	"math"

	"github.com/golang/geo/r3"

	spatial "github.com/partkit/assembly/spatialmath"
)

// LinkConfig is a serializable pose: a translation in mm and an orientation.
type LinkConfig struct {
	Translation r3.Vector                  `json:"translation" mapstructure:"translation"`
	Orientation *spatial.OrientationConfig `json:"orientation,omitempty" mapstructure:"orientation"`
}

// NewLinkConfig constructs a config from a pose.
func NewLinkConfig(p spatial.Pose) (*LinkConfig, error) {
	orient, err := spatial.NewOrientationConfig(p.Orientation())
	if err != nil {
		return nil, err
	}
	return &LinkConfig{Translation: p.Point(), Orientation: orient}, nil
}

// Pose converts a LinkConfig into a pose. A nil config is the zero pose.
func (cfg *LinkConfig) Pose() (spatial.Pose, error) {
	if cfg == nil {
		return spatial.NewZeroPose(), nil
	}
	orient, err := cfg.Orientation.ParseConfig()
	if err != nil {
		return nil, err
	}
	return spatial.NewPose(cfg.Translation, orient), nil
}

// AxisConfig is a serializable axis.
type AxisConfig struct {
	Origin    r3.Vector `json:"origin" mapstructure:"origin"`
	Direction r3.Vector `json:"direction" mapstructure:"direction"`
}

// Axis converts the config into a normalized axis.
func (cfg AxisConfig) Axis() (spatial.Axis, error) {
	return spatial.NewAxis(cfg.Origin, cfg.Direction)
}

// PlaneConfig is a serializable plane. The X direction is optional.
type PlaneConfig struct {
	Origin r3.Vector  `json:"origin" mapstructure:"origin"`
	XDir   *r3.Vector `json:"x_dir,omitempty" mapstructure:"x_dir"`
	ZDir   r3.Vector  `json:"z_dir" mapstructure:"z_dir"`
}

// Plane converts the config into a plane.
func (cfg PlaneConfig) Plane() (spatial.Plane, error) {
	if cfg.XDir == nil {
		return spatial.NewPlane(cfg.Origin, cfg.ZDir)
	}
	return spatial.NewPlaneWithXDir(cfg.Origin, *cfg.XDir, cfg.ZDir)
}

// LimitConfig is a serializable limit where either end may be omitted.
type LimitConfig struct {
	Min *float64 `json:"min,omitempty" mapstructure:"min"`
	Max *float64 `json:"max,omitempty" mapstructure:"max"`
}

// Limit fills in missing ends from the given default. A nil config returns the default.
func (cfg *LimitConfig) Limit(def Limit) Limit {
	if cfg == nil {
		return def
	}
	out := def
	if cfg.Min != nil {
		out.Min = *cfg.Min
	}
	if cfg.Max != nil {
		out.Max = *cfg.Max
	}
	return out
}

// IsUnbounded reports whether either end of the limit is infinite.
func (l Limit) IsUnbounded() bool {
	return math.IsInf(l.Min, 0) || math.IsInf(l.Max, 0)
}
