package shared

import (
	"github.com/oapi-codegen/nullable"
)

// Nullable is an optional JSON field that tells an absent key apart from an
// explicit null. Partial updates apply only the fields that were specified.
type Nullable[T any] struct {
	nullable.Nullable[T]
}

// NullableOf returns a specified, non-null value
func NullableOf[T any](v T) Nullable[T] {
	return Nullable[T]{nullable.NewNullableWithValue(v)}
}

// NullValue returns an explicit null
func NullValue[T any]() Nullable[T] {
	return Nullable[T]{nullable.NewNullNullable[T]()}
}

// MarshalJSON writes null for absent and null values
func (n Nullable[T]) MarshalJSON() ([]byte, error) {
	if !n.Present() {
		return []byte("null"), nil
	}
	return n.Nullable.MarshalJSON()
}

// Present reports whether the key carried a non-null value
func (n Nullable[T]) Present() bool {
	return n.IsSpecified() && !n.IsNull()
}

// Value returns the carried value, or the zero value when absent or null
func (n Nullable[T]) Value() T {
	v, _ := n.Get()
	return v
}

// Ptr returns a pointer to the value, or nil when absent or null
func (n Nullable[T]) Ptr() *T {
	v, err := n.Get()
	if err != nil {
		return nil
	}
	return &v
}

// ValidationValue exposes the value to struct validators: nil when absent
// or null, so omitempty rules skip it
func (n Nullable[T]) ValidationValue() any {
	if !n.Present() {
		return nil
	}
	return n.Value()
}

// Apply patches an optional field: current when the key was absent, nil
// when it was null, the new value otherwise
func (n Nullable[T]) Apply(current *T) *T {
	if !n.IsSpecified() {
		return current
	}
	return n.Ptr()
}
