package utils

import (
	"fmt"
	"testing"

	"go.viam.com/test"
)

type labeled interface {
	Label() string
}

type hinge string

func (h hinge) Label() string {
	return string(h)
}

func TestCast(t *testing.T) {
	h, err := Cast[labeled](hinge("base:hinge"))
	test.That(t, err, test.ShouldBeNil)
	test.That(t, h.Label(), test.ShouldEqual, "base:hinge")

	_, err = Cast[fmt.Stringer](hinge("base:hinge"))
	test.That(t, err, test.ShouldBeError, NewUnexpectedTypeError[fmt.Stringer](hinge("")))
	test.That(t, err.Error(), test.ShouldEqual, "expected fmt.Stringer but got utils.hinge")

	_, err = Cast[labeled](nil)
	test.That(t, err.Error(), test.ShouldEqual, "expected utils.labeled but got <nil>")

	n, err := Cast[float64](90)
	test.That(t, err.Error(), test.ShouldEqual, "expected float64 but got int")
	test.That(t, n, test.ShouldEqual, 0.0)
}
