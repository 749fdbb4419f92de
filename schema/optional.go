package schema

import (
	"bytes"
	"encoding/json"
	"reflect"

	"github.com/samber/mo"
)

// Optional holds a value that the upstream API only sends for some records.
// A missing key and an explicit null both decode to an absent Optional, so
// callers can tell "not sent" apart from "sent but empty".
type Optional[T any] struct {
	mo.Option[T]
}

// Some returns a present Optional holding v.
func Some[T any](v T) Optional[T] {
	return Optional[T]{Option: mo.Some(v)}
}

// None returns an absent Optional.
func None[T any]() Optional[T] {
	return Optional[T]{Option: mo.None[T]()}
}

// MarshalJSON writes the held value, or null when absent.
func (o Optional[T]) MarshalJSON() ([]byte, error) {
	if v, ok := o.Get(); ok {
		return json.Marshal(v)
	}
	return []byte("null"), nil
}

// UnmarshalJSON implements json.Unmarshaler.
func (o *Optional[T]) UnmarshalJSON(b []byte) error {
	if bytes.Equal(bytes.TrimSpace(b), []byte("null")) {
		o.Option = mo.None[T]()
		return nil
	}

	var v T
	if err := json.Unmarshal(b, &v); err != nil {
		return err
	}
	o.Option = mo.Some(v)
	return nil
}

func (Optional[T]) valueType() reflect.Type {
	return reflect.TypeFor[T]()
}

// optional is satisfied by every Optional instantiation. The decoder uses it
// to find the allowlisted fields without a separate registry.
type optional interface {
	IsPresent() bool
	valueType() reflect.Type
}
