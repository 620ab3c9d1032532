// Package referenceframe defines the ranges joints move within and the serializable configs used to
// describe poses, axes and planes in scene files.
package referenceframe

import (
	"encoding/json"
	"fmt"
	"math"

	"github.com/partkit/assembly/utils"
)

// Limit represents the limits of motion for a single degree of freedom, in degrees for rotations and
// millimeters for translations. Both ends are inclusive.
type Limit struct {
	Min float64
	Max float64
}

// DefaultAngularLimit is the range of a rotational degree of freedom when none is given.
var DefaultAngularLimit = Limit{Min: 0, Max: 360}

// DefaultLinearLimit is the range of a translational degree of freedom when none is given.
var DefaultLinearLimit = Limit{Min: 0, Max: math.Inf(1)}

// Validate returns an error if the limit is empty or not a number.
func (l Limit) Validate() error {
	if math.IsNaN(l.Min) || math.IsNaN(l.Max) {
		return NewLimitsError(l)
	}
	if l.Min > l.Max {
		return NewLimitsError(l)
	}
	return nil
}

// Contains returns whether min <= value <= max. Infinite and NaN values are never contained, so an
// unbounded end is open.
func (l Limit) Contains(value float64) bool {
	if math.IsInf(value, 0) || math.IsNaN(value) {
		return false
	}
	return l.Min <= value && value <= l.Max
}

// Midpoint returns the center of the limit. It is infinite for unbounded limits, and therefore not
// contained in them.
func (l Limit) Midpoint() float64 {
	return (l.Min + l.Max) / 2
}

func (l Limit) String() string {
	return fmt.Sprintf("[%g, %g]", l.Min, l.Max)
}

type limitJSON struct {
	Min *float64 `json:"min"`
	Max *float64 `json:"max"`
}

// MarshalJSON encodes infinite ends as null.
func (l Limit) MarshalJSON() ([]byte, error) {
	var out limitJSON
	if !math.IsInf(l.Min, 0) {
		out.Min = utils.FloatPtr(l.Min)
	}
	if !math.IsInf(l.Max, 0) {
		out.Max = utils.FloatPtr(l.Max)
	}
	return json.Marshal(out)
}

// UnmarshalJSON decodes a missing or null min as -Inf and a missing or null max as +Inf.
func (l *Limit) UnmarshalJSON(b []byte) error {
	var in limitJSON
	if err := json.Unmarshal(b, &in); err != nil {
		return err
	}
	l.Min, l.Max = math.Inf(-1), math.Inf(1)
	if in.Min != nil {
		l.Min = *in.Min
	}
	if in.Max != nil {
		l.Max = *in.Max
	}
	return nil
}

func limitsAlmostEqual(a, b []Limit) bool {
	if len(a) != len(b) {
		return false
	}

	const epsilon = 1e-5
	for idx, x := range a {
		if !utils.Float64AlmostEqual(x.Min, b[idx].Min, epsilon) ||
			!utils.Float64AlmostEqual(x.Max, b[idx].Max, epsilon) {
			return false
		}
	}

	return true
}

// LimitsAlmostEqual returns whether two sets of limits match to within floating point error.
func LimitsAlmostEqual(a, b []Limit) bool {
	return limitsAlmostEqual(a, b)
}
