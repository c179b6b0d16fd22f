package store

import "encoding/json"

// Optional distinguishes "field absent from the payload" from "field present
// with a null or zero value". Absent fields are skipped by updates; present
// fields are applied, including explicit nulls that clear a value.
type Optional[T any] struct {
	value T
	set   bool
}

func Some[T any](v T) Optional[T] {
	return Optional[T]{value: v, set: true}
}

func (o Optional[T]) Get() (T, bool) {
	return o.value, o.set
}

func (o Optional[T]) Set() bool {
	return o.set
}

// UnmarshalJSON only runs when the key is present, so presence alone marks the
// field as set. A JSON null leaves the zero value in place.
func (o *Optional[T]) UnmarshalJSON(data []byte) error {
	o.set = true
	if string(data) == "null" {
		var zero T
		o.value = zero
		return nil
	}
	return json.Unmarshal(data, &o.value)
}

func (o Optional[T]) MarshalJSON() ([]byte, error) {
	if !o.set {
		return []byte("null"), nil
	}
	return json.Marshal(o.value)
}
