package convert

// ToPointer returns a pointer to the given value. Handy for optional
// range bounds declared inline.
func ToPointer[T any](v T) *T {
	return &v
}

// ToValue dereferences a pointer, returning the zero value when nil.
func ToValue[T any](v *T) T {
	if v == nil {
		var zero T
		return zero
	}
	return *v
}
