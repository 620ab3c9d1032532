package referenceframe

import "github.com/samber/lo"

// Input is the value of one joint degree of freedom, in the order the joint reports its limits:
// degrees for angles and mm for positions.
type Input struct {
	Value float64
}

// JointInputs builds one Input per value.
func JointInputs(values ...float64) []Input {
	return lo.Map(values, func(v float64, _ int) Input { return Input{Value: v} })
}

// InputValues is the inverse of JointInputs.
func InputValues(inputs []Input) []float64 {
	return lo.Map(inputs, func(in Input, _ int) float64 { return in.Value })
}
