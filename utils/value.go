package utils

// Cast returns v as a T. A mismatch, including a nil v, yields an unexpected type error naming both types.
func Cast[T any](v interface{}) (T, error) {
	if typed, ok := v.(T); ok {
		return typed, nil
	}
	var zero T
	return zero, NewUnexpectedTypeError[T](v)
}
