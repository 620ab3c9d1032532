package referenceframe

import (
	"testing"

	"go.viam.com/test"
)

func TestJointInputs(t *testing.T) {
	inputs := JointInputs(-1, 90)
	test.That(t, inputs, test.ShouldResemble, []Input{{Value: -1}, {Value: 90}})
	test.That(t, InputValues(inputs), test.ShouldResemble, []float64{-1, 90})
	test.That(t, JointInputs(), test.ShouldBeEmpty)
}
