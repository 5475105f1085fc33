// Package optional implements optional values.
package optional

import (
	"bytes"
	"encoding/json"
	"reflect"

	"github.com/lengocduc195/geovisit/internal/runtimex"
)

// Value is an optional value. The zero value of this structure
// is equivalent to the one you get when calling [None].
type Value[T any] struct {
	// indirect is the indirect pointer to the value.
	indirect *T
}

// None constructs an empty [Value].
func None[T any]() Value[T] {
	return Value[T]{nil}
}

// Some constructs a some [Value] unless T is a pointer and points to
// nil, in which case [Some] is equivalent to [None].
func Some[T any](value T) Value[T] {
	v := Value[T]{}
	maybeSetFromValue(&v, value)
	return v
}

// maybeSetFromValue sets the underlying value unless T is a pointer
// and points to nil in which case we set the Value to be empty.
func maybeSetFromValue[T any](v *Value[T], value T) {
	rv := reflect.ValueOf(value)
	if rv.Kind() == reflect.Pointer && rv.IsNil() {
		v.indirect = nil
		return
	}
	v.indirect = &value
}

// IsNone returns whether this [Value] is empty.
func (v Value[T]) IsNone() bool {
	return v.indirect == nil
}

// IsSome returns whether this [Value] is not empty.
func (v Value[T]) IsSome() bool {
	return !v.IsNone()
}

// Unwrap returns the underlying value or panics. In case of
// panic, the value passed to panic is an error.
func (v Value[T]) Unwrap() T {
	runtimex.Assert(v.IsSome(), "is none")
	return *v.indirect
}

// UnwrapOr returns the fallback if the [Value] is empty.
func (v Value[T]) UnwrapOr(fallback T) T {
	if v.IsNone() {
		return fallback
	}
	return v.Unwrap()
}

var _ json.Unmarshaler = &Value[int]{}

// UnmarshalJSON implements json.Unmarshaler. Note that a `null` JSON
// value always unmarshals to an empty [Value].
func (v *Value[T]) UnmarshalJSON(data []byte) error {
	if bytes.Equal(data, []byte(`null`)) {
		v.indirect = nil
		return nil
	}
	var value T
	if err := json.Unmarshal(data, &value); err != nil {
		v.indirect = nil
		return err
	}
	maybeSetFromValue(v, value)
	return nil
}

var _ json.Marshaler = Value[int]{}

// MarshalJSON implements json.Marshaler. An empty [Value]
// marshals to the `null` JSON value.
func (v Value[T]) MarshalJSON() ([]byte, error) {
	if v.IsNone() {
		return json.Marshal(nil)
	}
	return json.Marshal(*v.indirect)
}
