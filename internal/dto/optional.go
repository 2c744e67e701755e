package dto

import (
	"bytes"
	"encoding/json"
)

// Optional distinguishes a JSON field that was absent from one that was
// explicitly null. Card updates are partial patches: absent fields are
// left untouched while explicit nulls clear nullable columns.
type Optional[T any] struct {
	Present bool
	Null    bool
	Value   T
}

var nullLiteral = []byte("null")

func (o *Optional[T]) UnmarshalJSON(data []byte) error {
	o.Present = true
	if bytes.Equal(data, nullLiteral) {
		o.Null = true
		return nil
	}
	return json.Unmarshal(data, &o.Value)
}

func (o Optional[T]) MarshalJSON() ([]byte, error) {
	if !o.Present || o.Null {
		return nullLiteral, nil
	}
	return json.Marshal(o.Value)
}

// Set reports whether the field carried a non-null value.
func (o Optional[T]) Set() bool {
	return o.Present && !o.Null
}
