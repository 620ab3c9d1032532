package referenceframe

import "github.com/pkg/errors"

// OOBErrString is a string that all out of bounds errors contain, so that they can be checked for
// distinct from other connect errors.
const OOBErrString = "input out of bounds"

// NewLimitsError is returned when a limit's minimum is above its maximum or either end is NaN.
func NewLimitsError(l Limit) error {
	return errors.Errorf("invalid limit %v: min must be less than or equal to max", l)
}

// NewOutOfBoundsError is returned when an input falls outside of its limit.
func NewOutOfBoundsError(name string, value float64, l Limit) error {
	return errors.Errorf("%s %.5f %s %v", name, value, OOBErrString, l)
}
