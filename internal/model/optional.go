package model

import (
	"bytes"
	"encoding/json"
)

// Opt is a value that may be absent. Language-model output is only partially
// well-formed, so fields the model may omit are carried as Opt instead of
// relying on zero values.
type Opt[T any] struct {
	value   T
	present bool
}

func Some[T any](v T) Opt[T] {
	return Opt[T]{value: v, present: true}
}

func None[T any]() Opt[T] {
	return Opt[T]{}
}

func (o Opt[T]) Get() (T, bool) {
	return o.value, o.present
}

func (o Opt[T]) Present() bool {
	return o.present
}

// OrZero returns the value, or T's zero value when absent.
func (o Opt[T]) OrZero() T {
	return o.value
}

func (o Opt[T]) Or(fallback T) T {
	if !o.present {
		return fallback
	}
	return o.value
}

func (o Opt[T]) MarshalJSON() ([]byte, error) {
	if !o.present {
		return []byte("null"), nil
	}
	return json.Marshal(o.value)
}

func (o *Opt[T]) UnmarshalJSON(data []byte) error {
	if bytes.Equal(bytes.TrimSpace(data), []byte("null")) {
		*o = None[T]()
		return nil
	}
	var v T
	if err := json.Unmarshal(data, &v); err != nil {
		return err
	}
	*o = Some(v)
	return nil
}
