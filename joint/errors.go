package joint

import (
	"fmt"

	"github.com/pkg/errors"

	"github.com/partkit/assembly/referenceframe"
)

// ErrSameBody is returned when a joint is connected to another joint on its own body.
var ErrSameBody = errors.New("cannot connect two joints of the same body")

// ConstructionError is returned when a joint cannot be built from the given geometry or ranges.
type ConstructionError struct {
	Label  string
	Reason string
}

func (e *ConstructionError) Error() string {
	return fmt.Sprintf("cannot construct joint %q: %s", e.Label, e.Reason)
}

func newConstructionError(label, format string, args ...interface{}) error {
	return errors.WithStack(&ConstructionError{Label: label, Reason: fmt.Sprintf(format, args...)})
}

// TypeMismatchError is returned when a joint is connected to a partner kind it has no kinematics for.
type TypeMismatchError struct {
	Socket Kind
	Plug   Kind
}

func (e *TypeMismatchError) Error() string {
	return fmt.Sprintf("a %s joint cannot be connected to a %s joint", e.Socket, e.Plug)
}

// NewTypeMismatchError returns a TypeMismatchError for the given pair of kinds.
func NewTypeMismatchError(socket, plug Kind) error {
	return errors.WithStack(&TypeMismatchError{Socket: socket, Plug: plug})
}

// RangeError is returned when a supplied or defaulted joint parameter falls outside its limit.
type RangeError struct {
	Parameter string
	Value     float64
	Limit     referenceframe.Limit
}

func (e *RangeError) Error() string {
	return referenceframe.NewOutOfBoundsError(e.Parameter, e.Value, e.Limit).Error()
}

func newRangeError(parameter string, value float64, limit referenceframe.Limit) error {
	return errors.WithStack(&RangeError{Parameter: parameter, Value: value, Limit: limit})
}

// IsRangeError returns whether err is or wraps a RangeError.
func IsRangeError(err error) bool {
	var rangeErr *RangeError
	return errors.As(err, &rangeErr)
}

// IsTypeMismatchError returns whether err is or wraps a TypeMismatchError.
func IsTypeMismatchError(err error) bool {
	var mismatchErr *TypeMismatchError
	return errors.As(err, &mismatchErr)
}

// IsConstructionError returns whether err is or wraps a ConstructionError.
func IsConstructionError(err error) bool {
	var constructionErr *ConstructionError
	return errors.As(err, &constructionErr)
}

func checkRange(parameter string, value float64, limit referenceframe.Limit) error {
	if !limit.Contains(value) {
		return newRangeError(parameter, value, limit)
	}
	return nil
}
