// Package patch provides presence-aware values for partial updates.
//
// An Optional distinguishes a field that was not supplied from one that was supplied
// with its zero value, so clearing a nickname to "" differs from leaving it untouched.
package patch

import (
	"encoding/json"
	"reflect"
)

// Optional holds a value together with whether it was supplied.
// The zero value is unset.
type Optional[T any] struct {
	value T
	set   bool
}

// Set returns an Optional carrying v.
func Set[T any](v T) Optional[T] {
	return Optional[T]{value: v, set: true}
}

// IsSet reports whether a value was supplied.
func (o Optional[T]) IsSet() bool {
	return o.set
}

// Get returns the value and whether it was supplied.
func (o Optional[T]) Get() (T, bool) {
	return o.value, o.set
}

// Or returns the supplied value, or fallback when unset.
func (o Optional[T]) Or(fallback T) T {
	if !o.set {
		return fallback
	}
	return o.value
}

// UnmarshalJSON marks the value as supplied. A JSON null sets the zero value,
// which for pointer types means "clear".
func (o *Optional[T]) UnmarshalJSON(data []byte) error {
	o.set = true
	if string(data) == "null" {
		var zero T
		o.value = zero
		return nil
	}
	return json.Unmarshal(data, &o.value)
}

// MarshalJSON encodes the value, or null when unset.
func (o Optional[T]) MarshalJSON() ([]byte, error) {
	if !o.set {
		return []byte("null"), nil
	}
	return json.Marshal(o.value)
}

// ValidatorValue is a validator.CustomTypeFunc for Optional fields. Unset fields
// yield a nil pointer so "omitnil" skips them; set fields yield a pointer to the
// value so the remaining tags apply to it.
func ValidatorValue(field reflect.Value) any {
	o, ok := field.Interface().(interface{ validatorValue() any })
	if !ok {
		return nil
	}
	return o.validatorValue()
}

func (o Optional[T]) validatorValue() any {
	if !o.set {
		return (*T)(nil)
	}
	v := o.value
	return &v
}
