package model

// Optional is a tri-state patch field: absent, set to null, or set to a
// value. Partial updates built from Optional fields never confuse a
// legitimate zero value (temperature 0, released false, empty notes)
// with "not supplied".
type Optional[T any] struct {
	value T
	valid bool
	set   bool
}

// Set returns an Optional carrying v.
func Set[T any](v T) Optional[T] {
	return Optional[T]{value: v, valid: true, set: true}
}

// Null returns an Optional that explicitly clears the field.
func Null[T any]() Optional[T] {
	return Optional[T]{set: true}
}

// IsSet reports whether the field was supplied at all.
func (o Optional[T]) IsSet() bool { return o.set }

// IsNull reports whether the field was supplied as an explicit clear.
func (o Optional[T]) IsNull() bool { return o.set && !o.valid }

// Value returns the carried value and whether one is present.
func (o Optional[T]) Value() (T, bool) {
	return o.value, o.set && o.valid
}

// Arg returns the value in the form expected by a SQL placeholder:
// nil for an explicit clear, the value otherwise. Only meaningful when
// IsSet is true.
func (o Optional[T]) Arg() any {
	if !o.valid {
		return nil
	}
	return o.value
}
